package repository

import (
	"context"
	"errors"

	"github.com/alexanderramin/etude/internal/domain"
)

// ErrNotFound is returned when a looked-up row does not exist.
var ErrNotFound = errors.New("not found")

// StatusRepo persists per-user practice statuses keyed by (userID, id).
// Untouched is represented by the absence of a row.
type StatusRepo interface {
	List(ctx context.Context, userID string) ([]domain.StatusEntry, error)
	Upsert(ctx context.Context, userID string, e domain.StatusEntry) error
	Delete(ctx context.Context, userID, id string) error
	DeleteFamily(ctx context.Context, userID string, family domain.Family) (int64, error)
}

// BPMRepo persists per-user mastery BPMs keyed by (userID, shapeID).
type BPMRepo interface {
	List(ctx context.Context, userID string) ([]domain.BPMEntry, error)
	// Get returns the stored BPM, 0 when absent.
	Get(ctx context.Context, userID, id string) (int, error)
	// Raise stores e.BPM only if it beats the stored value and reports
	// whether it did. The stored value never goes down.
	Raise(ctx context.Context, userID string, e domain.BPMEntry) (bool, error)
	Delete(ctx context.Context, userID, id string) error
	DeleteFamily(ctx context.Context, userID string, family domain.Family) (int64, error)
}

// PracticeLogRepo is the append-only practice log. Insert assigns the
// entry's ID and creation time.
type PracticeLogRepo interface {
	Insert(ctx context.Context, userID string, draft domain.LogDraft) (*domain.PracticeLogEntry, error)
	// List returns entries newest first; limit <= 0 means no limit.
	List(ctx context.Context, userID string, limit int) ([]*domain.PracticeLogEntry, error)
	GetByID(ctx context.Context, userID, id string) (*domain.PracticeLogEntry, error)
}

// SnapshotRecorder raises a mastery BPM and appends the snapshot log entry
// in a single transaction.
type SnapshotRecorder interface {
	RecordSnapshot(ctx context.Context, userID string, bpm domain.BPMEntry, draft domain.LogDraft) (SnapshotResult, error)
}

type SnapshotResult struct {
	Raised bool
	// BPM is the stored record once the transaction commits.
	BPM   int
	Entry *domain.PracticeLogEntry
}

// FamilyResetter removes every status and BPM of one family in a single
// transaction.
type FamilyResetter interface {
	ResetFamily(ctx context.Context, userID string, family domain.Family) (FamilyResetResult, error)
}

type FamilyResetResult struct {
	Statuses int64
	BPMs     int64
}
