package domain

import "time"

// PracticeLogEntry is one immutable entry of a user's practice log.
// DurationMinutes == 0 marks a snapshot (a BPM confirmation with no
// elapsed-time claim); a positive value marks a timed session.
type PracticeLogEntry struct {
	ID              string
	UserID          string
	DurationMinutes int
	Items           []PracticeItem
	Notes           string
	CreatedAt       time.Time
}

type LogKind string

const (
	LogSnapshot LogKind = "snapshot"
	LogSession  LogKind = "session"
)

func (e *PracticeLogEntry) Kind() LogKind {
	if e.DurationMinutes == 0 {
		return LogSnapshot
	}
	return LogSession
}

func (e *PracticeLogEntry) IsSnapshot() bool { return e.Kind() == LogSnapshot }

// LogDraft is the caller-supplied part of a log entry; ID and CreatedAt are
// assigned by the log store.
type LogDraft struct {
	DurationMinutes int
	Items           []PracticeItem
	Notes           string
}
