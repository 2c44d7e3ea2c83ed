package importer

import (
	"context"
	"errors"
	"fmt"

	"github.com/alexanderramin/etude/internal/domain"
	"github.com/alexanderramin/etude/internal/export"
	"github.com/alexanderramin/etude/internal/service"
)

// Result counts what a restore changed.
type Result struct {
	Statuses int
	BPMs     int
	// SkippedLogs is the number of log entries in the document. The log
	// is append-only with store-assigned timestamps, so entries are never
	// replayed.
	SkippedLogs int
}

type Restorer struct {
	practice service.PracticeService
}

func NewRestorer(practice service.PracticeService) *Restorer {
	return &Restorer{practice: practice}
}

// Restore validates doc and writes its statuses and mastery BPMs for
// userID. Statuses overwrite the current value; BPMs only ever raise the
// current record. Nothing is written when validation fails.
func (r *Restorer) Restore(ctx context.Context, userID string, doc *export.Document) (Result, error) {
	if errs := ValidateDocument(doc); len(errs) > 0 {
		return Result{}, fmt.Errorf("%w: invalid export document: %w", domain.ErrInvalidDomainValue, errors.Join(errs...))
	}

	res := Result{SkippedLogs: len(doc.Logs)}
	for _, s := range doc.Statuses {
		current, err := r.practice.GetStatus(ctx, userID, s.ID)
		if err != nil {
			return res, err
		}
		if current == s.Status {
			continue
		}
		if err := r.practice.SetStatus(ctx, userID, s.ID, s.Status); err != nil {
			return res, fmt.Errorf("restoring status %s: %w", s.ID, err)
		}
		res.Statuses++
	}
	for _, b := range doc.BPMs {
		resp, err := r.practice.RaiseMasteryBPM(ctx, userID, b.ShapeID, b.BPM)
		if err != nil {
			return res, fmt.Errorf("restoring bpm %s: %w", b.ShapeID, err)
		}
		if resp.NewRecord {
			res.BPMs++
		}
	}
	return res, nil
}
