package identity

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/alexanderramin/etude/internal/domain"
)

// ExerciseRef names one numbered exercise, optionally at one BPM checkpoint.
// BPM is zero for exercise shapes.
type ExerciseRef struct {
	Family   domain.Family
	Exercise string
	BPM      int
}

// EncodeExercise returns the practice ID "{family}-{exercise}-{bpm}".
// bpm must be one of the family's checkpoints.
func EncodeExercise(f domain.Family, exercise string, bpm int) (string, error) {
	if err := domain.ValidateExercise(f, exercise); err != nil {
		return "", err
	}
	if domain.BPMCheckpointIndex(f, bpm) < 0 {
		return "", fmt.Errorf("%w: %s bpm %d is not a checkpoint", domain.ErrInvalidDomainValue, f, bpm)
	}
	return f.Token() + sep + exercise + sep + strconv.Itoa(bpm), nil
}

// EncodeExerciseShape returns the mastery-BPM key "{family}-{exercise}".
func EncodeExerciseShape(f domain.Family, exercise string) (string, error) {
	if err := domain.ValidateExercise(f, exercise); err != nil {
		return "", err
	}
	return f.Token() + sep + exercise, nil
}

// MustEncodeExercise is EncodeExercise for values taken from the catalogs.
func MustEncodeExercise(f domain.Family, exercise string, bpm int) string {
	id, err := EncodeExercise(f, exercise, bpm)
	if err != nil {
		panic(fmt.Sprintf("identity: %v", err))
	}
	return id
}

// ParseExercise is the exact inverse of EncodeExercise.
func ParseExercise(id string) (ExerciseRef, error) {
	parts := strings.Split(id, sep)
	if len(parts) != 3 {
		return ExerciseRef{}, malformed(id, "want 3 fields, got %d", len(parts))
	}
	f, err := exerciseFamily(id, parts[0])
	if err != nil {
		return ExerciseRef{}, err
	}
	if err := domain.ValidateExercise(f, parts[1]); err != nil {
		return ExerciseRef{}, malformed(id, "%v", err)
	}
	bpm, err := strconv.Atoi(parts[2])
	if err != nil || strconv.Itoa(bpm) != parts[2] {
		return ExerciseRef{}, malformed(id, "bpm %q is not canonical", parts[2])
	}
	if domain.BPMCheckpointIndex(f, bpm) < 0 {
		return ExerciseRef{}, malformed(id, "bpm %d is not a %s checkpoint", bpm, f)
	}
	return ExerciseRef{Family: f, Exercise: parts[1], BPM: bpm}, nil
}

// ParseExerciseShape is the exact inverse of EncodeExerciseShape.
func ParseExerciseShape(id string) (ExerciseRef, error) {
	parts := strings.Split(id, sep)
	if len(parts) != 2 {
		return ExerciseRef{}, malformed(id, "want 2 fields, got %d", len(parts))
	}
	f, err := exerciseFamily(id, parts[0])
	if err != nil {
		return ExerciseRef{}, err
	}
	if err := domain.ValidateExercise(f, parts[1]); err != nil {
		return ExerciseRef{}, malformed(id, "%v", err)
	}
	return ExerciseRef{Family: f, Exercise: parts[1]}, nil
}

// Item returns the practice item the reference selects.
func (r ExerciseRef) Item() domain.PracticeItem {
	if r.Family == domain.FamilyHanon {
		return domain.HanonPractice{Exercise: r.Exercise, BPM: r.BPM}
	}
	return domain.DohnanyiPractice{Exercise: r.Exercise, BPM: r.BPM}
}

func exerciseFamily(id, tok string) (domain.Family, error) {
	f := domain.Family(tok)
	if !f.IsExercise() {
		return "", malformed(id, "unknown exercise family %q", tok)
	}
	return f, nil
}
