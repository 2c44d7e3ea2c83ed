package app

import "github.com/alexanderramin/etude/internal/domain"

type LogSessionRequest struct {
	DurationMinutes int
	Items           []domain.PracticeItem
	Notes           string
}

// SnapshotRequest confirms that Item was played cleanly at its BPM.
type SnapshotRequest struct {
	Item  domain.PracticeItem
	Notes string
}

type SnapshotResponse struct {
	// Accepted is false when the debounce guard suppressed the submission.
	Accepted  bool
	NewRecord bool
	ShapeID   string
	BPM       int
	Entry     *domain.PracticeLogEntry
}

type ListLogRequest struct {
	Limit int
}
