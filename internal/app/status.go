package app

import (
	"github.com/alexanderramin/etude/internal/domain"
	"github.com/alexanderramin/etude/internal/grade"
	"github.com/alexanderramin/etude/internal/recommend"
)

// StatusView is one status key with its decoded item.
type StatusView struct {
	ID     string
	Family domain.Family
	Status domain.Status
}

// BPMView is one shape key with its mastery BPM.
type BPMView struct {
	ShapeID string
	Family  domain.Family
	BPM     int
}

type RaiseBPMResponse struct {
	ShapeID   string
	BPM       int
	NewRecord bool
}

type FocusRequest struct {
	// Family restricts the suggestion; empty means every family.
	Family domain.Family
}

type FocusResponse struct {
	Focus    *recommend.NextFocus
	Standing grade.Standing
}

type GradesResponse struct {
	Grades   []grade.Completion
	Standing grade.Standing
}

type ClearFamilyResponse struct {
	Family   domain.Family
	Statuses int64
	BPMs     int64
}
