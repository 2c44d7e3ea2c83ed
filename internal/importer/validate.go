// Package importer restores progress from an export document.
package importer

import (
	"fmt"
	"time"

	"github.com/alexanderramin/etude/internal/export"
	"github.com/alexanderramin/etude/internal/identity"
)

// ValidateDocument checks doc before anything is written.
// Returns a slice of all validation errors found.
func ValidateDocument(doc *export.Document) []error {
	var errs []error

	if doc.Version != export.DocumentVersion {
		errs = append(errs, fmt.Errorf("version: unsupported export version %d", doc.Version))
	}
	if doc.IdentitySchema != identity.SchemaVersion {
		errs = append(errs, fmt.Errorf("identity_schema: document uses schema %d, this build reads %d", doc.IdentitySchema, identity.SchemaVersion))
	}

	errs = append(errs, validateStatuses(doc.Statuses)...)
	errs = append(errs, validateBPMs(doc.BPMs)...)
	errs = append(errs, validateLogs(doc.Logs)...)

	return errs
}

func validateStatuses(records []export.StatusRecord) []error {
	var errs []error
	seen := make(map[string]bool, len(records))

	for i, r := range records {
		prefix := fmt.Sprintf("statuses[%d]", i)

		if _, err := identity.ValidateStatusKey(r.ID); err != nil {
			errs = append(errs, fmt.Errorf("%s.id: %w", prefix, err))
		} else if seen[r.ID] {
			errs = append(errs, fmt.Errorf("%s.id: duplicate id %q", prefix, r.ID))
		}
		seen[r.ID] = true

		if !r.Status.Valid() {
			errs = append(errs, fmt.Errorf("%s.status: invalid value %q", prefix, r.Status))
		}
	}

	return errs
}

func validateBPMs(records []export.BPMRecord) []error {
	var errs []error
	seen := make(map[string]bool, len(records))

	for i, r := range records {
		prefix := fmt.Sprintf("bpms[%d]", i)

		if _, err := identity.ValidateShapeKey(r.ShapeID); err != nil {
			errs = append(errs, fmt.Errorf("%s.shape_id: %w", prefix, err))
		} else if seen[r.ShapeID] {
			errs = append(errs, fmt.Errorf("%s.shape_id: duplicate id %q", prefix, r.ShapeID))
		}
		seen[r.ShapeID] = true

		if r.BPM <= 0 {
			errs = append(errs, fmt.Errorf("%s.bpm must be positive", prefix))
		}
	}

	return errs
}

func validateLogs(records []export.LogRecord) []error {
	var errs []error

	for i, r := range records {
		prefix := fmt.Sprintf("logs[%d]", i)

		if r.DurationMinutes < 0 {
			errs = append(errs, fmt.Errorf("%s.duration_minutes must not be negative", prefix))
		}
		if _, err := time.Parse(time.RFC3339, r.CreatedAt); err != nil {
			errs = append(errs, fmt.Errorf("%s.created_at: invalid timestamp %q", prefix, r.CreatedAt))
		}
		for j, env := range r.Items {
			if _, err := env.Item(); err != nil {
				errs = append(errs, fmt.Errorf("%s.items[%d]: %w", prefix, j, err))
			}
		}
	}

	return errs
}
