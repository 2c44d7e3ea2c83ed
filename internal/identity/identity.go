// Package identity maps practice parameter tuples to canonical string IDs
// and back.
//
// Field order is part of the persisted schema. Reordering, adding or
// removing a field changes every stored ID and must come with a bump of
// SchemaVersion and a data migration.
package identity

import (
	"fmt"
	"strings"

	"github.com/alexanderramin/etude/internal/domain"
)

// SchemaVersion identifies the field layout below.
const SchemaVersion = 1

const sep = "-"

type field int

const (
	fieldKey field = iota
	fieldType
	fieldArticulation
	fieldTempo
	fieldOctaves
	fieldDirection
	fieldHands
	fieldRhythm
	fieldAccent
)

// practiceFields is the layout of a scale practice ID (status key).
var practiceFields = []field{
	fieldKey, fieldType, fieldArticulation, fieldTempo, fieldOctaves,
	fieldDirection, fieldHands, fieldRhythm, fieldAccent,
}

// shapeFields is the layout of a permutation-shape ID (mastery-BPM key).
// Tempo is excluded so BPM ratchets per shape, not per tempo bucket.
var shapeFields = []field{
	fieldKey, fieldType, fieldArticulation, fieldDirection,
	fieldHands, fieldRhythm, fieldAccent, fieldOctaves,
}

// ScaleShape is a permutation without its tempo.
type ScaleShape struct {
	Key          domain.Key
	Type         domain.ItemType
	Articulation domain.Articulation
	Octaves      domain.Octaves
	Direction    domain.Direction
	Hands        domain.Hands
	Rhythm       domain.Rhythm
	Accent       domain.Accent
}

// ShapeOf drops the tempo of p.
func ShapeOf(p domain.ScalePermutation) ScaleShape {
	return ScaleShape{
		Key:          p.Key,
		Type:         p.Type,
		Articulation: p.Articulation,
		Octaves:      p.Octaves,
		Direction:    p.Direction,
		Hands:        p.Hands,
		Rhythm:       p.Rhythm,
		Accent:       p.Accent,
	}
}

// WithTempo completes a shape into a full permutation.
func (s ScaleShape) WithTempo(t domain.TempoLevel) domain.ScalePermutation {
	return domain.ScalePermutation{
		Key:          s.Key,
		Type:         s.Type,
		Articulation: s.Articulation,
		Tempo:        t,
		Octaves:      s.Octaves,
		Direction:    s.Direction,
		Hands:        s.Hands,
		Rhythm:       s.Rhythm,
		Accent:       s.Accent,
	}
}

// ScaleItemID is the ID of a catalog entry, "{Key}-{TypeToken}".
func ScaleItemID(key domain.Key, typ domain.ItemType) string {
	if typ == domain.Chromatic {
		key = domain.KeyC
	}
	return key.Token() + sep + typ.Token()
}

// EncodePractice returns the scale practice ID of p.
func EncodePractice(p domain.ScalePermutation) (string, error) {
	p = p.Normalize()
	if err := p.Validate(); err != nil {
		return "", err
	}
	return join(p, practiceFields), nil
}

// EncodeShape returns the permutation-shape ID of s.
func EncodeShape(s ScaleShape) (string, error) {
	p := s.WithTempo(domain.TempoSlow).Normalize()
	if err := p.Validate(); err != nil {
		return "", err
	}
	return join(p, shapeFields), nil
}

// MustEncodePractice is EncodePractice for values built from the closed enums.
func MustEncodePractice(p domain.ScalePermutation) string {
	id, err := EncodePractice(p)
	if err != nil {
		panic(fmt.Sprintf("identity: %v", err))
	}
	return id
}

// ParsePractice is the exact inverse of EncodePractice.
func ParsePractice(id string) (domain.ScalePermutation, error) {
	return split(id, practiceFields)
}

// ParseShape is the exact inverse of EncodeShape.
func ParseShape(id string) (ScaleShape, error) {
	p, err := split(id, shapeFields)
	if err != nil {
		return ScaleShape{}, err
	}
	return ShapeOf(p), nil
}

func join(p domain.ScalePermutation, layout []field) string {
	parts := make([]string, len(layout))
	for i, f := range layout {
		parts[i] = token(p, f)
	}
	return strings.Join(parts, sep)
}

func token(p domain.ScalePermutation, f field) string {
	switch f {
	case fieldKey:
		return p.Key.Token()
	case fieldType:
		return p.Type.Token()
	case fieldArticulation:
		return p.Articulation.Token()
	case fieldTempo:
		return p.Tempo.Token()
	case fieldOctaves:
		return p.Octaves.Token()
	case fieldDirection:
		return p.Direction.Token()
	case fieldHands:
		return p.Hands.Token()
	case fieldRhythm:
		return p.Rhythm.Token()
	case fieldAccent:
		return p.Accent.Token()
	}
	panic(fmt.Sprintf("identity: unknown field %d", f))
}

func split(id string, layout []field) (domain.ScalePermutation, error) {
	var p domain.ScalePermutation
	parts := strings.Split(id, sep)
	if len(parts) != len(layout) {
		return domain.ScalePermutation{}, malformed(id, "want %d fields, got %d", len(layout), len(parts))
	}
	for i, f := range layout {
		if err := set(&p, f, parts[i]); err != nil {
			return domain.ScalePermutation{}, malformed(id, "field %d: %v", i+1, err)
		}
	}
	if p.Type == domain.Chromatic && p.Key != domain.KeyC {
		return domain.ScalePermutation{}, malformed(id, "chromatic is only valid under C")
	}
	if !containsField(layout, fieldTempo) {
		p.Tempo = ""
	}
	return p, nil
}

// set parses one token strictly: display labels are not accepted inside IDs.
func set(p *domain.ScalePermutation, f field, tok string) error {
	var err error
	switch f {
	case fieldKey:
		p.Key, err = domain.ParseKey(tok)
	case fieldType:
		p.Type, err = domain.ParseItemType(tok)
	case fieldArticulation:
		p.Articulation, err = domain.ParseArticulation(tok)
	case fieldTempo:
		p.Tempo, err = domain.ParseTempoLevel(tok)
	case fieldOctaves:
		p.Octaves, err = domain.ParseOctaves(tok)
	case fieldDirection:
		p.Direction, err = domain.ParseDirection(tok)
	case fieldHands:
		p.Hands, err = domain.ParseHands(tok)
	case fieldRhythm:
		p.Rhythm, err = domain.ParseRhythm(tok)
	case fieldAccent:
		p.Accent, err = domain.ParseAccent(tok)
	}
	if err != nil {
		return err
	}
	if got := token(*p, f); got != tok {
		return fmt.Errorf("non-canonical token %q (want %q)", tok, got)
	}
	return nil
}

func containsField(layout []field, f field) bool {
	for _, x := range layout {
		if x == f {
			return true
		}
	}
	return false
}

func malformed(id, format string, args ...any) error {
	return fmt.Errorf("%w: %q: %s", domain.ErrMalformedIdentifier, id, fmt.Sprintf(format, args...))
}
