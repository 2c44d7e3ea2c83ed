package domain

import (
	"fmt"
	"strconv"
)

// Family partitions every tracked ID into one of three practice families.
type Family string

const (
	FamilyScale    Family = "scale"
	FamilyDohnanyi Family = "dohnanyi"
	FamilyHanon    Family = "hanon"
)

var allFamilies = []Family{FamilyScale, FamilyDohnanyi, FamilyHanon}

func AllFamilies() []Family { return clone(allFamilies) }

func (f Family) Valid() bool { return valid(allFamilies, f) }
func (f Family) Token() string { return string(f) }

func (f Family) Label() string {
	switch f {
	case FamilyScale:
		return "Scales & Arpeggios"
	case FamilyDohnanyi:
		return "Dohnányi"
	case FamilyHanon:
		return "Hanon"
	default:
		return string(f)
	}
}

// IsExercise reports whether f is one of the numbered finger-exercise families.
func (f Family) IsExercise() bool {
	return f == FamilyDohnanyi || f == FamilyHanon
}

func ParseFamily(token string) (Family, error) { return parseToken(allFamilies, token, "family") }

const (
	DohnanyiExerciseCount = 12
	HanonExerciseCount    = 60
)

var (
	dohnanyiBPMTargets = []int{60, 80, 100, 120}
	hanonBPMTargets    = []int{60, 72, 88, 108, 120}
)

// ExerciseNames returns the ordered exercise names of an exercise family.
func ExerciseNames(f Family) []string {
	n := 0
	switch f {
	case FamilyDohnanyi:
		n = DohnanyiExerciseCount
	case FamilyHanon:
		n = HanonExerciseCount
	}
	names := make([]string, n)
	for i := range names {
		names[i] = strconv.Itoa(i + 1)
	}
	return names
}

// BPMTargets returns the ascending BPM checkpoints of an exercise family.
func BPMTargets(f Family) []int {
	switch f {
	case FamilyDohnanyi:
		return clone(dohnanyiBPMTargets)
	case FamilyHanon:
		return clone(hanonBPMTargets)
	}
	return nil
}

// ValidateExercise checks an exercise name against its family's enumeration.
func ValidateExercise(f Family, name string) error {
	if !f.IsExercise() {
		return fmt.Errorf("%w: %q is not an exercise family", ErrInvalidDomainValue, f)
	}
	n, err := strconv.Atoi(name)
	if err != nil || strconv.Itoa(n) != name || n < 1 || n > len(ExerciseNames(f)) {
		return fmt.Errorf("%w: %s exercise %q", ErrInvalidDomainValue, f, name)
	}
	return nil
}

// BPMCheckpointIndex returns the position of bpm in the family's checkpoints, or -1.
func BPMCheckpointIndex(f Family, bpm int) int {
	for i, t := range BPMTargets(f) {
		if t == bpm {
			return i
		}
	}
	return -1
}
