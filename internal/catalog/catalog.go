// Package catalog enumerates the base practice entities: every scale and
// arpeggio item and every numbered finger exercise. Output order is stable
// and drives curriculum expansion and UI defaults.
package catalog

import (
	"github.com/alexanderramin/etude/internal/domain"
	"github.com/alexanderramin/etude/internal/identity"
)

// ScaleItem is one (key, type) catalog entry.
type ScaleItem struct {
	ID   string
	Key  domain.Key
	Type domain.ItemType
}

func (s ScaleItem) IsArpeggio() bool { return s.Type.IsArpeggio() }

// DefaultPermutation returns the item's default parameter selection.
func (s ScaleItem) DefaultPermutation() domain.ScalePermutation {
	return domain.DefaultPermutation(s.Key, s.Type)
}

// Exercise is one numbered exercise of a finger-exercise family.
type Exercise struct {
	Family  domain.Family
	Name    string
	ShapeID string
}

var scales = GenerateScaleCatalog()

// GenerateScaleCatalog builds the scale catalog: for each key the
// non-chromatic scale types, then the single C chromatic entry, then for
// each key the arpeggio types.
func GenerateScaleCatalog() []ScaleItem {
	keys := domain.AllKeys()
	out := make([]ScaleItem, 0, len(keys)*len(domain.AllItemTypes()))
	for _, k := range keys {
		for _, t := range domain.ScaleTypes() {
			if t == domain.Chromatic {
				continue
			}
			out = append(out, newScaleItem(k, t))
		}
	}
	out = append(out, newScaleItem(domain.KeyC, domain.Chromatic))
	for _, k := range keys {
		for _, t := range domain.ArpeggioTypes() {
			out = append(out, newScaleItem(k, t))
		}
	}
	return out
}

func newScaleItem(k domain.Key, t domain.ItemType) ScaleItem {
	return ScaleItem{ID: identity.ScaleItemID(k, t), Key: k, Type: t}
}

// Scales returns a copy of the process-wide scale catalog.
func Scales() []ScaleItem {
	out := make([]ScaleItem, len(scales))
	copy(out, scales)
	return out
}

// ScalesOfType returns the catalog entries whose type is one of types, in
// catalog order.
func ScalesOfType(types ...domain.ItemType) []ScaleItem {
	want := make(map[domain.ItemType]bool, len(types))
	for _, t := range types {
		want[t] = true
	}
	var out []ScaleItem
	for _, s := range scales {
		if want[s.Type] {
			out = append(out, s)
		}
	}
	return out
}

// LookupScale finds a catalog entry by its ScaleItem ID.
func LookupScale(id string) (ScaleItem, bool) {
	for _, s := range scales {
		if s.ID == id {
			return s, true
		}
	}
	return ScaleItem{}, false
}

func Dohnanyi() []Exercise { return exercises(domain.FamilyDohnanyi) }
func Hanon() []Exercise    { return exercises(domain.FamilyHanon) }

// Exercises returns the exercise list of f, or nil for the scale family.
func Exercises(f domain.Family) []Exercise {
	if !f.IsExercise() {
		return nil
	}
	return exercises(f)
}

func exercises(f domain.Family) []Exercise {
	names := domain.ExerciseNames(f)
	out := make([]Exercise, len(names))
	for i, n := range names {
		shape, err := identity.EncodeExerciseShape(f, n)
		if err != nil {
			panic(err)
		}
		out[i] = Exercise{Family: f, Name: n, ShapeID: shape}
	}
	return out
}

func DohnanyiPairs() []identity.ExerciseRef { return Pairs(domain.FamilyDohnanyi) }
func HanonPairs() []identity.ExerciseRef    { return Pairs(domain.FamilyHanon) }

// Pairs enumerates every (exercise, BPM checkpoint) pair of f, exercise-major.
func Pairs(f domain.Family) []identity.ExerciseRef {
	names := domain.ExerciseNames(f)
	targets := domain.BPMTargets(f)
	out := make([]identity.ExerciseRef, 0, len(names)*len(targets))
	for _, n := range names {
		for _, bpm := range targets {
			out = append(out, identity.ExerciseRef{Family: f, Exercise: n, BPM: bpm})
		}
	}
	return out
}
