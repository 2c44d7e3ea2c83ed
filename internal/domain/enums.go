package domain

import (
	"fmt"
	"strconv"
	"strings"
)

// Every dimension below is a closed, ordered set. Order matters: the first
// element is the UI default and catalog/curriculum iteration follows it.

type Key string

const (
	KeyC      Key = "C"
	KeyCSharp Key = "C#/Db"
	KeyD      Key = "D"
	KeyDSharp Key = "D#/Eb"
	KeyE      Key = "E"
	KeyF      Key = "F"
	KeyFSharp Key = "F#/Gb"
	KeyG      Key = "G"
	KeyGSharp Key = "G#/Ab"
	KeyA      Key = "A"
	KeyASharp Key = "A#/Bb"
	KeyB      Key = "B"
)

var allKeys = []Key{
	KeyC, KeyCSharp, KeyD, KeyDSharp, KeyE, KeyF,
	KeyFSharp, KeyG, KeyGSharp, KeyA, KeyASharp, KeyB,
}

func AllKeys() []Key { return clone(allKeys) }
func (k Key) Token() string { return string(k) }
func (k Key) Valid() bool { return valid(allKeys, k) }
func (k Key) String() string { return string(k) }

func ParseKey(token string) (Key, error) { return parseToken(allKeys, token, "key") }

// ItemType covers both scale and arpeggio types of a catalog entry.
type ItemType string

const (
	Major         ItemType = "Major"
	HarmonicMinor ItemType = "Harmonic Minor"
	MelodicMinor  ItemType = "Melodic Minor"
	Chromatic     ItemType = "Chromatic"
	MajorArpeggio ItemType = "Major Arpeggio"
	MinorArpeggio ItemType = "Minor Arpeggio"
	Dominant7th   ItemType = "Dominant 7th"
	Diminished7th ItemType = "Diminished 7th"
)

var (
	scaleTypes    = []ItemType{Major, HarmonicMinor, MelodicMinor, Chromatic}
	arpeggioTypes = []ItemType{MajorArpeggio, MinorArpeggio, Dominant7th, Diminished7th}
	allItemTypes  = append(clone(scaleTypes), arpeggioTypes...)
)

func ScaleTypes() []ItemType { return clone(scaleTypes) }
func ArpeggioTypes() []ItemType { return clone(arpeggioTypes) }
func AllItemTypes() []ItemType { return clone(allItemTypes) }

// Token is the label with spaces removed, as used inside IDs.
func (t ItemType) Token() string { return strings.ReplaceAll(string(t), " ", "") }
func (t ItemType) Valid() bool { return valid(allItemTypes, t) }
func (t ItemType) String() string { return string(t) }

func (t ItemType) IsArpeggio() bool {
	for _, a := range arpeggioTypes {
		if a == t {
			return true
		}
	}
	return false
}

func ParseItemType(token string) (ItemType, error) {
	return parseToken(allItemTypes, token, "item type")
}

type Articulation string

const (
	Legato   Articulation = "Legato"
	Staccato Articulation = "Staccato"
	Portato  Articulation = "Portato"
)

var allArticulations = []Articulation{Legato, Staccato, Portato}

func AllArticulations() []Articulation { return clone(allArticulations) }
func (a Articulation) Token() string { return string(a) }
func (a Articulation) Valid() bool { return valid(allArticulations, a) }
func (a Articulation) String() string { return string(a) }

func ParseArticulation(token string) (Articulation, error) {
	return parseToken(allArticulations, token, "articulation")
}

type TempoLevel string

const (
	TempoSlow         TempoLevel = "Slow"
	TempoModerate     TempoLevel = "Moderate"
	TempoFast         TempoLevel = "Fast"
	TempoProfessional TempoLevel = "Professional"
)

var allTempos = []TempoLevel{TempoSlow, TempoModerate, TempoFast, TempoProfessional}

func AllTempoLevels() []TempoLevel { return clone(allTempos) }
func (t TempoLevel) Token() string { return string(t) }
func (t TempoLevel) Valid() bool { return valid(allTempos, t) }
func (t TempoLevel) String() string { return string(t) }

// TargetBPM is the metronome setting a tempo level is practiced at.
func (t TempoLevel) TargetBPM() int {
	switch t {
	case TempoSlow:
		return 60
	case TempoModerate:
		return 80
	case TempoFast:
		return 100
	case TempoProfessional:
		return 120
	default:
		return 0
	}
}

func ParseTempoLevel(token string) (TempoLevel, error) {
	return parseToken(allTempos, token, "tempo level")
}

// Octaves is the range of a permutation, 1 through 4.
type Octaves int

var allOctaves = []Octaves{1, 2, 3, 4}

func AllOctaves() []Octaves { return clone(allOctaves) }
func (o Octaves) Token() string { return strconv.Itoa(int(o)) + "oct" }
func (o Octaves) Valid() bool { return valid(allOctaves, o) }
func (o Octaves) String() string {
	if o == 1 {
		return "1 octave"
	}
	return strconv.Itoa(int(o)) + " octaves"
}

func ParseOctaves(token string) (Octaves, error) {
	return parseToken(allOctaves, token, "octaves")
}

type Direction string

const (
	Ascending  Direction = "Ascending"
	Descending Direction = "Descending"
	Both       Direction = "Both"
	Contrary   Direction = "Contrary"
)

var allDirections = []Direction{Ascending, Descending, Both, Contrary}

// DefaultDirection is index 2 of the ordered set.
const DefaultDirection = Both

func AllDirections() []Direction { return clone(allDirections) }
func (d Direction) Token() string { return string(d) }
func (d Direction) Valid() bool { return valid(allDirections, d) }
func (d Direction) String() string { return string(d) }

func ParseDirection(token string) (Direction, error) {
	return parseToken(allDirections, token, "direction")
}

type Hands string

const (
	HandsSeparately  Hands = "Separately"
	HandsTogether    Hands = "Together"
	HandsAlternating Hands = "Alternating"
)

var allHands = []Hands{HandsSeparately, HandsTogether, HandsAlternating}

func AllHands() []Hands { return clone(allHands) }
func (h Hands) Token() string { return string(h) }
func (h Hands) Valid() bool { return valid(allHands, h) }
func (h Hands) String() string { return string(h) }

func ParseHands(token string) (Hands, error) { return parseToken(allHands, token, "hands") }

type Rhythm string

const (
	RhythmStraight Rhythm = "Straight"
	RhythmDotted   Rhythm = "Dotted"
	RhythmGroups3  Rhythm = "Groups of 3"
	RhythmGroups4  Rhythm = "Groups of 4"
)

var allRhythms = []Rhythm{RhythmStraight, RhythmDotted, RhythmGroups3, RhythmGroups4}

func AllRhythms() []Rhythm { return clone(allRhythms) }
func (r Rhythm) Token() string { return strings.ReplaceAll(strings.ReplaceAll(string(r), " of ", ""), " ", "") }
func (r Rhythm) Valid() bool { return valid(allRhythms, r) }
func (r Rhythm) String() string { return string(r) }

func ParseRhythm(token string) (Rhythm, error) { return parseToken(allRhythms, token, "rhythm") }

type Accent string

const (
	AccentEvery2 Accent = "Every 2nd"
	AccentEvery3 Accent = "Every 3rd"
	AccentEvery4 Accent = "Every 4th"
	AccentNone   Accent = "None"
)

var allAccents = []Accent{AccentEvery2, AccentEvery3, AccentEvery4, AccentNone}

// DefaultAccent is the neutral value at index 3.
const DefaultAccent = AccentNone

func AllAccents() []Accent { return clone(allAccents) }

func (a Accent) Token() string {
	switch a {
	case AccentEvery2:
		return "Every2"
	case AccentEvery3:
		return "Every3"
	case AccentEvery4:
		return "Every4"
	}
	return string(a)
}

func (a Accent) Valid() bool { return valid(allAccents, a) }
func (a Accent) String() string { return string(a) }

func ParseAccent(token string) (Accent, error) { return parseToken(allAccents, token, "accent") }

type tokenized interface {
	comparable
	Token() string
}

// parseToken accepts either the ID token or the display label.
func parseToken[T tokenized](values []T, token, what string) (T, error) {
	for _, v := range values {
		if v.Token() == token || fmt.Sprint(v) == token {
			return v, nil
		}
	}
	var zero T
	return zero, fmt.Errorf("%w: %s %q", ErrInvalidDomainValue, what, token)
}

// valid reports whether v is a member of its closed set.
func valid[T tokenized](values []T, v T) bool {
	for _, x := range values {
		if x == v {
			return true
		}
	}
	return false
}

func clone[T any](s []T) []T {
	out := make([]T, len(s))
	copy(out, s)
	return out
}
