package domain

import (
	"fmt"

	json "github.com/goccy/go-json"
)

// ScalePermutation is one fully specified combination of scale practice
// parameters, tempo included.
type ScalePermutation struct {
	Key          Key
	Type         ItemType
	Articulation Articulation
	Tempo        TempoLevel
	Octaves      Octaves
	Direction    Direction
	Hands        Hands
	Rhythm       Rhythm
	Accent       Accent
}

// DefaultPermutation returns the default selection for a catalog entry.
func DefaultPermutation(key Key, typ ItemType) ScalePermutation {
	return ScalePermutation{
		Key:          key,
		Type:         typ,
		Articulation: Legato,
		Tempo:        TempoSlow,
		Octaves:      1,
		Direction:    DefaultDirection,
		Hands:        HandsSeparately,
		Rhythm:       RhythmStraight,
		Accent:       DefaultAccent,
	}
}

// Normalize applies the Chromatic rule: a chromatic scale exists only under C.
func (p ScalePermutation) Normalize() ScalePermutation {
	if p.Type == Chromatic {
		p.Key = KeyC
	}
	return p
}

func (p ScalePermutation) Validate() error {
	checks := []struct {
		ok   bool
		what string
		v    any
	}{
		{p.Key.Valid(), "key", p.Key},
		{p.Type.Valid(), "item type", p.Type},
		{p.Articulation.Valid(), "articulation", p.Articulation},
		{p.Tempo.Valid(), "tempo level", p.Tempo},
		{p.Octaves.Valid(), "octaves", p.Octaves},
		{p.Direction.Valid(), "direction", p.Direction},
		{p.Hands.Valid(), "hands", p.Hands},
		{p.Rhythm.Valid(), "rhythm", p.Rhythm},
		{p.Accent.Valid(), "accent", p.Accent},
	}
	for _, c := range checks {
		if !c.ok {
			return fmt.Errorf("%w: %s %q", ErrInvalidDomainValue, c.what, fmt.Sprint(c.v))
		}
	}
	return nil
}

func (p ScalePermutation) Label() string {
	return fmt.Sprintf("%s %s · %s · %s · %s · %s · hands %s · %s · accent %s",
		p.Key, p.Type, p.Articulation, p.Tempo, p.Octaves, p.Direction, p.Hands, p.Rhythm, p.Accent)
}

// PracticeItem is the active practice selection: exactly one of
// ScalePractice, DohnanyiPractice or HanonPractice.
type PracticeItem interface {
	Family() Family
	Label() string
	practiceItem()
}

// ScalePractice selects a scale permutation. BPM is the metronome setting;
// zero means the tempo level's target.
type ScalePractice struct {
	Permutation ScalePermutation
	BPM         int
}

type DohnanyiPractice struct {
	Exercise string
	BPM      int
}

type HanonPractice struct {
	Exercise string
	BPM      int
}

func (ScalePractice) Family() Family    { return FamilyScale }
func (DohnanyiPractice) Family() Family { return FamilyDohnanyi }
func (HanonPractice) Family() Family    { return FamilyHanon }

func (ScalePractice) practiceItem()    {}
func (DohnanyiPractice) practiceItem() {}
func (HanonPractice) practiceItem()    {}

// EffectiveBPM is the BPM the permutation is played at.
func (s ScalePractice) EffectiveBPM() int {
	if s.BPM > 0 {
		return s.BPM
	}
	return s.Permutation.Tempo.TargetBPM()
}

func (s ScalePractice) Label() string {
	return fmt.Sprintf("%s @ %d BPM", s.Permutation.Label(), s.EffectiveBPM())
}

func (d DohnanyiPractice) Label() string {
	return fmt.Sprintf("Dohnányi No. %s @ %d BPM", d.Exercise, d.BPM)
}

func (h HanonPractice) Label() string {
	return fmt.Sprintf("Hanon No. %s @ %d BPM", h.Exercise, h.BPM)
}

// ItemEnvelope is the flat, family-tagged wire form of a PracticeItem.
type ItemEnvelope struct {
	Family       Family `json:"family" yaml:"family" cbor:"family"`
	Key          string `json:"key,omitempty" yaml:"key,omitempty" cbor:"key,omitempty"`
	Type         string `json:"type,omitempty" yaml:"type,omitempty" cbor:"type,omitempty"`
	Articulation string `json:"articulation,omitempty" yaml:"articulation,omitempty" cbor:"articulation,omitempty"`
	Tempo        string `json:"tempo,omitempty" yaml:"tempo,omitempty" cbor:"tempo,omitempty"`
	Octaves      int    `json:"octaves,omitempty" yaml:"octaves,omitempty" cbor:"octaves,omitempty"`
	Direction    string `json:"direction,omitempty" yaml:"direction,omitempty" cbor:"direction,omitempty"`
	Hands        string `json:"hands,omitempty" yaml:"hands,omitempty" cbor:"hands,omitempty"`
	Rhythm       string `json:"rhythm,omitempty" yaml:"rhythm,omitempty" cbor:"rhythm,omitempty"`
	Accent       string `json:"accent,omitempty" yaml:"accent,omitempty" cbor:"accent,omitempty"`
	Exercise     string `json:"exercise,omitempty" yaml:"exercise,omitempty" cbor:"exercise,omitempty"`
	BPM          int    `json:"bpm,omitempty" yaml:"bpm,omitempty" cbor:"bpm,omitempty"`
}

// Envelope flattens an item into its wire form.
func Envelope(item PracticeItem) ItemEnvelope {
	switch it := item.(type) {
	case ScalePractice:
		p := it.Permutation
		return ItemEnvelope{
			Family:       FamilyScale,
			Key:          p.Key.Token(),
			Type:         p.Type.Token(),
			Articulation: p.Articulation.Token(),
			Tempo:        p.Tempo.Token(),
			Octaves:      int(p.Octaves),
			Direction:    p.Direction.Token(),
			Hands:        p.Hands.Token(),
			Rhythm:       p.Rhythm.Token(),
			Accent:       p.Accent.Token(),
			BPM:          it.BPM,
		}
	case DohnanyiPractice:
		return ItemEnvelope{Family: FamilyDohnanyi, Exercise: it.Exercise, BPM: it.BPM}
	case HanonPractice:
		return ItemEnvelope{Family: FamilyHanon, Exercise: it.Exercise, BPM: it.BPM}
	default:
		panic(fmt.Sprintf("domain: unknown practice item %T", item))
	}
}

// Item rebuilds and validates the tagged item. Tokens or display labels
// are accepted for every scale dimension.
func (e ItemEnvelope) Item() (PracticeItem, error) {
	if e.BPM < 0 {
		return nil, fmt.Errorf("%w: bpm %d", ErrInvalidDomainValue, e.BPM)
	}
	switch e.Family {
	case FamilyScale:
		p, err := e.permutation()
		if err != nil {
			return nil, err
		}
		return ScalePractice{Permutation: p.Normalize(), BPM: e.BPM}, nil
	case FamilyDohnanyi:
		if err := ValidateExercise(FamilyDohnanyi, e.Exercise); err != nil {
			return nil, err
		}
		return DohnanyiPractice{Exercise: e.Exercise, BPM: e.BPM}, nil
	case FamilyHanon:
		if err := ValidateExercise(FamilyHanon, e.Exercise); err != nil {
			return nil, err
		}
		return HanonPractice{Exercise: e.Exercise, BPM: e.BPM}, nil
	default:
		return nil, fmt.Errorf("%w: family %q", ErrInvalidDomainValue, e.Family)
	}
}

func (e ItemEnvelope) permutation() (ScalePermutation, error) {
	var (
		p   ScalePermutation
		err error
	)
	if p.Key, err = ParseKey(e.Key); err != nil {
		return p, err
	}
	if p.Type, err = ParseItemType(e.Type); err != nil {
		return p, err
	}
	if p.Articulation, err = ParseArticulation(e.Articulation); err != nil {
		return p, err
	}
	if p.Tempo, err = ParseTempoLevel(e.Tempo); err != nil {
		return p, err
	}
	p.Octaves = Octaves(e.Octaves)
	if !p.Octaves.Valid() {
		return p, fmt.Errorf("%w: octaves %d", ErrInvalidDomainValue, e.Octaves)
	}
	if p.Direction, err = ParseDirection(e.Direction); err != nil {
		return p, err
	}
	if p.Hands, err = ParseHands(e.Hands); err != nil {
		return p, err
	}
	if p.Rhythm, err = ParseRhythm(e.Rhythm); err != nil {
		return p, err
	}
	if p.Accent, err = ParseAccent(e.Accent); err != nil {
		return p, err
	}
	return p, nil
}

// MarshalItems encodes items as a JSON array of envelopes.
func MarshalItems(items []PracticeItem) ([]byte, error) {
	envs := make([]ItemEnvelope, 0, len(items))
	for _, it := range items {
		envs = append(envs, Envelope(it))
	}
	return json.Marshal(envs)
}

// UnmarshalItems decodes the output of MarshalItems.
func UnmarshalItems(data []byte) ([]PracticeItem, error) {
	if len(data) == 0 {
		return nil, nil
	}
	var envs []ItemEnvelope
	if err := json.Unmarshal(data, &envs); err != nil {
		return nil, fmt.Errorf("decoding practice items: %w", err)
	}
	items := make([]PracticeItem, 0, len(envs))
	for _, e := range envs {
		it, err := e.Item()
		if err != nil {
			return nil, err
		}
		items = append(items, it)
	}
	return items, nil
}
