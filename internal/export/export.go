// Package export snapshots a user's progress into a portable document.
package export

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/alexanderramin/etude/internal/contract"
	"github.com/alexanderramin/etude/internal/domain"
	"github.com/alexanderramin/etude/internal/grade"
	"github.com/alexanderramin/etude/internal/identity"
	"github.com/alexanderramin/etude/internal/service"
	"github.com/fxamacker/cbor/v2"
	json "github.com/goccy/go-json"
	"golang.org/x/sync/errgroup"
	"gopkg.in/yaml.v3"
)

// DocumentVersion is bumped whenever Document changes shape.
const DocumentVersion = 1

type Format string

const (
	FormatYAML Format = "yaml"
	FormatJSON Format = "json"
	FormatCBOR Format = "cbor"
)

func ParseFormat(s string) (Format, error) {
	switch f := Format(s); f {
	case FormatYAML, FormatJSON, FormatCBOR:
		return f, nil
	case "yml":
		return FormatYAML, nil
	default:
		return "", fmt.Errorf("%w: export format %q", domain.ErrInvalidDomainValue, s)
	}
}

type StatusRecord struct {
	ID     string        `json:"id" yaml:"id" cbor:"id"`
	Status domain.Status `json:"status" yaml:"status" cbor:"status"`
}

type BPMRecord struct {
	ShapeID string `json:"shape_id" yaml:"shape_id" cbor:"shape_id"`
	BPM     int    `json:"bpm" yaml:"bpm" cbor:"bpm"`
}

type LogRecord struct {
	ID              string                `json:"id" yaml:"id" cbor:"id"`
	Kind            domain.LogKind        `json:"kind" yaml:"kind" cbor:"kind"`
	DurationMinutes int                   `json:"duration_minutes" yaml:"duration_minutes" cbor:"duration_minutes"`
	Items           []domain.ItemEnvelope `json:"items" yaml:"items" cbor:"items"`
	Notes           string                `json:"notes,omitempty" yaml:"notes,omitempty" cbor:"notes,omitempty"`
	CreatedAt       string                `json:"created_at" yaml:"created_at" cbor:"created_at"`
}

// Document is the exported form of one user's progress. Timestamps are
// RFC 3339 UTC strings so every codec renders them identically.
type Document struct {
	Version        int                `json:"version" yaml:"version" cbor:"version"`
	IdentitySchema int                `json:"identity_schema" yaml:"identity_schema" cbor:"identity_schema"`
	UserID         string             `json:"user_id" yaml:"user_id" cbor:"user_id"`
	ExportedAt     string             `json:"exported_at" yaml:"exported_at" cbor:"exported_at"`
	Standing       grade.Standing     `json:"standing" yaml:"standing" cbor:"standing"`
	Grades         []grade.Completion `json:"grades" yaml:"grades" cbor:"grades"`
	Statuses       []StatusRecord     `json:"statuses" yaml:"statuses" cbor:"statuses"`
	BPMs           []BPMRecord        `json:"bpms" yaml:"bpms" cbor:"bpms"`
	Logs           []LogRecord        `json:"logs" yaml:"logs" cbor:"logs"`
}

type Exporter struct {
	practice service.PracticeService
	sessions service.SessionLogService
	progress service.ProgressService
	now      func() time.Time
}

type Option func(*Exporter)

func WithClock(now func() time.Time) Option {
	return func(e *Exporter) { e.now = now }
}

func NewExporter(practice service.PracticeService, sessions service.SessionLogService, progress service.ProgressService, opts ...Option) *Exporter {
	e := &Exporter{practice: practice, sessions: sessions, progress: progress, now: time.Now}
	for _, o := range opts {
		o(e)
	}
	return e
}

// Build gathers userID's statuses, BPMs, log and grades concurrently.
func (e *Exporter) Build(ctx context.Context, userID string) (*Document, error) {
	doc := &Document{
		Version:        DocumentVersion,
		IdentitySchema: identity.SchemaVersion,
		UserID:         userID,
		ExportedAt:     e.now().UTC().Format(time.RFC3339),
	}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		views, err := e.practice.ListStatuses(gctx, userID)
		if err != nil {
			return err
		}
		doc.Statuses = make([]StatusRecord, 0, len(views))
		for _, v := range views {
			doc.Statuses = append(doc.Statuses, StatusRecord{ID: v.ID, Status: v.Status})
		}
		return nil
	})
	g.Go(func() error {
		views, err := e.practice.ListBPMs(gctx, userID)
		if err != nil {
			return err
		}
		doc.BPMs = make([]BPMRecord, 0, len(views))
		for _, v := range views {
			doc.BPMs = append(doc.BPMs, BPMRecord{ShapeID: v.ShapeID, BPM: v.BPM})
		}
		return nil
	})
	g.Go(func() error {
		entries, err := e.sessions.ListLog(gctx, userID, contract.ListLogRequest{})
		if err != nil {
			return err
		}
		doc.Logs = make([]LogRecord, 0, len(entries))
		for _, en := range entries {
			doc.Logs = append(doc.Logs, logRecord(en))
		}
		return nil
	})
	g.Go(func() error {
		resp, err := e.progress.Grades(gctx, userID)
		if err != nil {
			return err
		}
		doc.Grades = resp.Grades
		doc.Standing = resp.Standing
		return nil
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return doc, nil
}

func logRecord(e *domain.PracticeLogEntry) LogRecord {
	items := make([]domain.ItemEnvelope, 0, len(e.Items))
	for _, it := range e.Items {
		items = append(items, domain.Envelope(it))
	}
	return LogRecord{
		ID:              e.ID,
		Kind:            e.Kind(),
		DurationMinutes: e.DurationMinutes,
		Items:           items,
		Notes:           e.Notes,
		CreatedAt:       e.CreatedAt.UTC().Format(time.RFC3339Nano),
	}
}

var cborEnc, cborDec = func() (cbor.EncMode, cbor.DecMode) {
	enc, err := cbor.CoreDetEncOptions().EncMode()
	if err != nil {
		panic("export: CBOR encoder initialization failed: " + err.Error())
	}
	dec, err := cbor.DecOptions{}.DecMode()
	if err != nil {
		panic("export: CBOR decoder initialization failed: " + err.Error())
	}
	return enc, dec
}()

// Encode writes doc to w in format.
func Encode(w io.Writer, doc *Document, format Format) error {
	switch format {
	case FormatYAML:
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(doc); err != nil {
			return fmt.Errorf("encoding yaml: %w", err)
		}
		return enc.Close()
	case FormatJSON:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(doc)
	case FormatCBOR:
		return cborEnc.NewEncoder(w).Encode(doc)
	default:
		return fmt.Errorf("%w: export format %q", domain.ErrInvalidDomainValue, format)
	}
}

// Decode reads a document previously written by Encode.
func Decode(data []byte, format Format) (*Document, error) {
	var doc Document
	var err error
	switch format {
	case FormatYAML:
		err = yaml.Unmarshal(data, &doc)
	case FormatJSON:
		err = json.Unmarshal(data, &doc)
	case FormatCBOR:
		err = cborDec.Unmarshal(data, &doc)
	default:
		return nil, fmt.Errorf("%w: export format %q", domain.ErrInvalidDomainValue, format)
	}
	if err != nil {
		return nil, fmt.Errorf("decoding %s export: %w", format, err)
	}
	if doc.Version != DocumentVersion {
		return nil, fmt.Errorf("unsupported export version %d", doc.Version)
	}
	return &doc, nil
}
