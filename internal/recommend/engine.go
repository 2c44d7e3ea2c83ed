// Package recommend picks the next practice focus from a user's statuses.
package recommend

import (
	"cmp"
	"slices"

	"github.com/alexanderramin/etude/internal/domain"
	"github.com/alexanderramin/etude/internal/grade"
	"github.com/alexanderramin/etude/internal/identity"
)

type Reason string

const (
	ReasonUntouched Reason = "untouched"
	ReasonReview    Reason = "review"
)

// NextFocus is a suggested target with enough structure to preselect it.
type NextFocus struct {
	ID     string
	Reason Reason
	// Tier is the effort rank: the first grade requiring a scale ID, or
	// the BPM checkpoint position (1-based) of an exercise ID.
	Tier   int
	Family domain.Family
	Item   domain.PracticeItem
}

type candidate struct {
	id     string
	family domain.Family
	tier   int
	order  int
	item   domain.PracticeItem
}

// Engine ranks every grade-10 ID once and scans that ranking per call.
type Engine struct {
	candidates []candidate
}

func NewEngine(c *grade.Curriculum) *Engine {
	ids, err := c.Required(grade.MaxLevel)
	if err != nil {
		panic(err)
	}
	cands := make([]candidate, 0, len(ids))
	for i, id := range ids {
		item, err := identity.ItemFromPracticeID(id)
		if err != nil {
			panic(err)
		}
		cand := candidate{id: id, family: item.Family(), order: i, item: item}
		switch it := item.(type) {
		case domain.ScalePractice:
			cand.tier = c.FirstRequiredBy(id)
		case domain.DohnanyiPractice:
			cand.tier = domain.BPMCheckpointIndex(domain.FamilyDohnanyi, it.BPM) + 1
		case domain.HanonPractice:
			cand.tier = domain.BPMCheckpointIndex(domain.FamilyHanon, it.BPM) + 1
		}
		cands = append(cands, cand)
	}
	slices.SortStableFunc(cands, func(a, b candidate) int {
		return cmp.Or(
			cmp.Compare(a.tier, b.tier),
			cmp.Compare(familyRank(a.family), familyRank(b.family)),
			cmp.Compare(a.order, b.order),
		)
	})
	return &Engine{candidates: cands}
}

func familyRank(f domain.Family) int {
	return slices.Index(domain.AllFamilies(), f)
}

// StatusReader is the read access suggestions need.
type StatusReader interface {
	Status(id string) domain.Status
}

// Suggest returns the lowest-effort untouched ID across all families, else
// the lowest-effort practiced ID for review, else nil when all is mastered.
func (e *Engine) Suggest(r StatusReader) *NextFocus {
	return e.suggest(r, func(candidate) bool { return true })
}

// SuggestIn restricts Suggest to one family.
func (e *Engine) SuggestIn(r StatusReader, family domain.Family) *NextFocus {
	return e.suggest(r, func(c candidate) bool { return c.family == family })
}

func (e *Engine) suggest(r StatusReader, include func(candidate) bool) *NextFocus {
	var review *candidate
	for i := range e.candidates {
		c := &e.candidates[i]
		if !include(*c) {
			continue
		}
		switch r.Status(c.id) {
		case domain.StatusUntouched:
			return c.focus(ReasonUntouched)
		case domain.StatusPracticed:
			if review == nil {
				review = c
			}
		}
	}
	if review != nil {
		return review.focus(ReasonReview)
	}
	return nil
}

func (c *candidate) focus(reason Reason) *NextFocus {
	return &NextFocus{ID: c.id, Reason: reason, Tier: c.tier, Family: c.family, Item: c.item}
}

// Len reports the number of ranked candidates.
func (e *Engine) Len() int { return len(e.candidates) }
