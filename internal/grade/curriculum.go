// Package grade expands the ten-grade curriculum into required practice
// IDs and measures completion against a user's statuses.
package grade

import (
	"fmt"

	"github.com/alexanderramin/etude/internal/catalog"
	"github.com/alexanderramin/etude/internal/domain"
	"github.com/alexanderramin/etude/internal/identity"
)

const (
	FirstLevel = 1
	MaxLevel   = 10
)

// Selection is the scale sub-selection of one of grades 1-9. Every listed
// dimension value is expanded by cartesian product over the catalog
// entries whose type is in Types.
type Selection struct {
	Types         []domain.ItemType
	Articulations []domain.Articulation
	Tempo         domain.TempoLevel
	Octaves       domain.Octaves
	Direction     domain.Direction
	Hands         domain.Hands
	Rhythms       []domain.Rhythm
	Accents       []domain.Accent
}

// SelectionFor returns the selection of level 1-9.
func SelectionFor(level int) (Selection, error) {
	if level < FirstLevel || level >= MaxLevel {
		return Selection{}, fmt.Errorf("%w: grade %d has no scale selection", domain.ErrInvalidDomainValue, level)
	}
	s := Selection{
		Articulations: []domain.Articulation{domain.Legato},
		Direction:     domain.DefaultDirection,
		Hands:         domain.HandsTogether,
		Rhythms:       []domain.Rhythm{domain.RhythmStraight},
		Accents:       []domain.Accent{domain.AccentNone},
	}
	switch level {
	case 1:
		s.Types = []domain.ItemType{domain.MajorArpeggio, domain.MinorArpeggio}
		s.Tempo, s.Octaves, s.Hands = domain.TempoSlow, 1, domain.HandsSeparately
	case 2:
		s.Types = []domain.ItemType{domain.Major, domain.HarmonicMinor}
		s.Tempo, s.Octaves, s.Hands = domain.TempoSlow, 1, domain.HandsSeparately
	case 3:
		s.Types = domain.ScaleTypes()
		s.Tempo, s.Octaves = domain.TempoModerate, 2
	case 4:
		s.Types = domain.ArpeggioTypes()
		s.Tempo, s.Octaves = domain.TempoModerate, 2
	case 5:
		s.Types = domain.ScaleTypes()
		s.Articulations = []domain.Articulation{domain.Legato, domain.Staccato}
		s.Tempo, s.Octaves = domain.TempoFast, 3
	case 6:
		s.Types = domain.ArpeggioTypes()
		s.Articulations = []domain.Articulation{domain.Legato, domain.Staccato}
		s.Tempo, s.Octaves = domain.TempoFast, 3
	case 7:
		s.Types = domain.ScaleTypes()
		s.Tempo, s.Octaves = domain.TempoFast, 4
	case 8:
		s.Types = domain.AllItemTypes()
		s.Tempo, s.Octaves = domain.TempoProfessional, 4
	case 9:
		s.Types = domain.AllItemTypes()
		s.Tempo, s.Octaves = domain.TempoProfessional, 4
		s.Accents = []domain.Accent{domain.AccentEvery2, domain.AccentEvery3, domain.AccentEvery4}
	}
	if level >= 7 {
		s.Rhythms = domain.AllRhythms()
	}
	return s, nil
}

// Expand lists the practice IDs a selection requires, in catalog order
// then ID field order.
func (s Selection) Expand(items []catalog.ScaleItem) []string {
	want := make(map[domain.ItemType]bool, len(s.Types))
	for _, t := range s.Types {
		want[t] = true
	}
	var ids []string
	seen := make(map[string]bool)
	for _, item := range items {
		if !want[item.Type] {
			continue
		}
		for _, art := range s.Articulations {
			for _, rhythm := range s.Rhythms {
				for _, accent := range s.Accents {
					id := identity.MustEncodePractice(domain.ScalePermutation{
						Key:          item.Key,
						Type:         item.Type,
						Articulation: art,
						Tempo:        s.Tempo,
						Octaves:      s.Octaves,
						Direction:    s.Direction,
						Hands:        s.Hands,
						Rhythm:       rhythm,
						Accent:       accent,
					})
					if !seen[id] {
						seen[id] = true
						ids = append(ids, id)
					}
				}
			}
		}
	}
	return ids
}

// Curriculum holds the expanded required-ID sets of all ten grades.
type Curriculum struct {
	required [MaxLevel + 1][]string
	first    map[string]int
}

// NewCurriculum expands every grade over the process-wide catalog.
func NewCurriculum() *Curriculum {
	return NewCurriculumFrom(catalog.Scales())
}

// NewCurriculumFrom expands every grade over items.
func NewCurriculumFrom(items []catalog.ScaleItem) *Curriculum {
	c := &Curriculum{first: make(map[string]int)}
	var union []string
	for level := FirstLevel; level < MaxLevel; level++ {
		sel, err := SelectionFor(level)
		if err != nil {
			panic(err)
		}
		ids := sel.Expand(items)
		c.required[level] = ids
		for _, id := range ids {
			if _, ok := c.first[id]; !ok {
				c.first[id] = level
				union = append(union, id)
			}
		}
	}
	for _, f := range []domain.Family{domain.FamilyDohnanyi, domain.FamilyHanon} {
		for _, ref := range catalog.Pairs(f) {
			id := identity.MustEncodeExercise(ref.Family, ref.Exercise, ref.BPM)
			if _, ok := c.first[id]; !ok {
				c.first[id] = MaxLevel
				union = append(union, id)
			}
		}
	}
	c.required[MaxLevel] = union
	return c
}

// Required returns a copy of the required IDs of level.
func (c *Curriculum) Required(level int) ([]string, error) {
	if level < FirstLevel || level > MaxLevel {
		return nil, fmt.Errorf("%w: grade %d", domain.ErrInvalidDomainValue, level)
	}
	out := make([]string, len(c.required[level]))
	copy(out, c.required[level])
	return out, nil
}

// FirstRequiredBy returns the lowest grade whose required set contains id,
// or 0 when no grade requires it.
func (c *Curriculum) FirstRequiredBy(id string) int {
	return c.first[id]
}
