package repository

import (
	"time"
)

// timeLayout is fixed-width so lexical order of stored values matches
// chronological order on every engine.
const timeLayout = "2006-01-02T15:04:05.000000000Z"

func formatTime(t time.Time) string {
	return t.UTC().Format(timeLayout)
}

func parseTime(s string) (time.Time, error) {
	return time.Parse(timeLayout, s)
}

// nowUTC returns the current UTC time.
func nowUTC() time.Time {
	return time.Now().UTC()
}
