package domain

import "time"

// Status is the discrete mastery tier of a practice ID. Untouched is never
// stored: an absent entry means untouched.
type Status string

const (
	StatusUntouched Status = "untouched"
	StatusPracticed Status = "practiced"
	StatusMastered  Status = "mastered"
)

var allStatuses = []Status{StatusUntouched, StatusPracticed, StatusMastered}

func (s Status) Valid() bool { return valid(allStatuses, s) }
func (s Status) Token() string { return string(s) }

func ParseStatus(token string) (Status, error) { return parseToken(allStatuses, token, "status") }

// StatusEntry is one persisted status row.
type StatusEntry struct {
	ID        string
	Family    Family
	Status    Status
	UpdatedAt time.Time
}

// BPMEntry is one persisted mastery-BPM row, keyed by a shape ID.
type BPMEntry struct {
	ID        string
	Family    Family
	BPM       int
	UpdatedAt time.Time
}
