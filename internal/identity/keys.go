package identity

import (
	"fmt"
	"strings"

	"github.com/alexanderramin/etude/internal/domain"
)

// Kind classifies a decoded identifier.
type Kind string

const (
	KindScaleItem     Kind = "scale-item"
	KindScalePractice Kind = "scale-practice"
	KindScaleShape    Kind = "scale-shape"
	KindExercise      Kind = "exercise-practice"
	KindExerciseShape Kind = "exercise-shape"
)

// FamilyOf returns the family an ID belongs to, judged by its prefix only.
// It does not validate the rest of the ID.
func FamilyOf(id string) domain.Family {
	for _, f := range []domain.Family{domain.FamilyDohnanyi, domain.FamilyHanon} {
		if strings.HasPrefix(id, f.Token()+sep) {
			return f
		}
	}
	return domain.FamilyScale
}

// PracticeID returns the status key of an item. Scale items key on their
// tempo level; the metronome BPM is not part of the ID.
func PracticeID(item domain.PracticeItem) (string, error) {
	switch it := item.(type) {
	case domain.ScalePractice:
		return EncodePractice(it.Permutation)
	case domain.DohnanyiPractice:
		return EncodeExercise(domain.FamilyDohnanyi, it.Exercise, it.BPM)
	case domain.HanonPractice:
		return EncodeExercise(domain.FamilyHanon, it.Exercise, it.BPM)
	default:
		return "", fmt.Errorf("%w: practice item %T", domain.ErrInvalidDomainValue, item)
	}
}

// ShapeID returns the mastery-BPM key of an item.
func ShapeID(item domain.PracticeItem) (string, error) {
	switch it := item.(type) {
	case domain.ScalePractice:
		return EncodeShape(ShapeOf(it.Permutation))
	case domain.DohnanyiPractice:
		return EncodeExerciseShape(domain.FamilyDohnanyi, it.Exercise)
	case domain.HanonPractice:
		return EncodeExerciseShape(domain.FamilyHanon, it.Exercise)
	default:
		return "", fmt.Errorf("%w: practice item %T", domain.ErrInvalidDomainValue, item)
	}
}

// ValidateStatusKey checks that id is a scale practice ID or an exercise
// practice ID and returns its family.
func ValidateStatusKey(id string) (domain.Family, error) {
	f := FamilyOf(id)
	var err error
	if f.IsExercise() {
		_, err = ParseExercise(id)
	} else {
		_, err = ParsePractice(id)
	}
	if err != nil {
		return "", err
	}
	return f, nil
}

// ValidateShapeKey checks that id is a scale shape ID or an exercise shape ID
// and returns its family.
func ValidateShapeKey(id string) (domain.Family, error) {
	f := FamilyOf(id)
	var err error
	if f.IsExercise() {
		_, err = ParseExerciseShape(id)
	} else {
		_, err = ParseShape(id)
	}
	if err != nil {
		return "", err
	}
	return f, nil
}

// ItemFromPracticeID rebuilds the practice item a status key denotes.
func ItemFromPracticeID(id string) (domain.PracticeItem, error) {
	if FamilyOf(id).IsExercise() {
		ref, err := ParseExercise(id)
		if err != nil {
			return nil, err
		}
		return ref.Item(), nil
	}
	p, err := ParsePractice(id)
	if err != nil {
		return nil, err
	}
	return domain.ScalePractice{Permutation: p, BPM: p.Tempo.TargetBPM()}, nil
}

// Decoded is the structured form of any identifier.
type Decoded struct {
	ID       string              `json:"id"`
	Kind     Kind                `json:"kind"`
	Family   domain.Family       `json:"family"`
	Envelope domain.ItemEnvelope `json:"item"`
}

// Decode parses id as whichever identifier family it belongs to.
func Decode(id string) (Decoded, error) {
	d := Decoded{ID: id, Family: FamilyOf(id)}
	if d.Family.IsExercise() {
		switch strings.Count(id, sep) {
		case 2:
			ref, err := ParseExercise(id)
			if err != nil {
				return Decoded{}, err
			}
			d.Kind = KindExercise
			d.Envelope = domain.Envelope(ref.Item())
		case 1:
			ref, err := ParseExerciseShape(id)
			if err != nil {
				return Decoded{}, err
			}
			d.Kind = KindExerciseShape
			d.Envelope = domain.Envelope(ref.Item())
		default:
			return Decoded{}, malformed(id, "unrecognized exercise identifier")
		}
		return d, nil
	}

	switch strings.Count(id, sep) + 1 {
	case len(practiceFields):
		p, err := ParsePractice(id)
		if err != nil {
			return Decoded{}, err
		}
		d.Kind = KindScalePractice
		d.Envelope = domain.Envelope(domain.ScalePractice{Permutation: p})
	case len(shapeFields):
		s, err := ParseShape(id)
		if err != nil {
			return Decoded{}, err
		}
		d.Kind = KindScaleShape
		d.Envelope = domain.Envelope(domain.ScalePractice{Permutation: s.WithTempo("")})
	case 2:
		key, typ, err := parseScaleItem(id)
		if err != nil {
			return Decoded{}, err
		}
		d.Kind = KindScaleItem
		d.Envelope = domain.ItemEnvelope{Family: domain.FamilyScale, Key: key.Token(), Type: typ.Token()}
	default:
		return Decoded{}, malformed(id, "unrecognized identifier")
	}
	return d, nil
}

func parseScaleItem(id string) (domain.Key, domain.ItemType, error) {
	parts := strings.Split(id, sep)
	key, err := domain.ParseKey(parts[0])
	if err != nil || key.Token() != parts[0] {
		return "", "", malformed(id, "bad key %q", parts[0])
	}
	typ, err := domain.ParseItemType(parts[1])
	if err != nil || typ.Token() != parts[1] {
		return "", "", malformed(id, "bad item type %q", parts[1])
	}
	if ScaleItemID(key, typ) != id {
		return "", "", malformed(id, "chromatic is only valid under C")
	}
	return key, typ, nil
}
