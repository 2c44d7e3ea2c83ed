package cli

import (
	"fmt"

	"github.com/alexanderramin/etude/internal/domain"
	"github.com/spf13/pflag"
)

// itemFlags collects a practice item from command-line fields. Scale
// fields left empty fall back to the item's default permutation.
type itemFlags struct {
	family       string
	key          string
	itemType     string
	articulation string
	tempo        string
	octaves      int
	direction    string
	hands        string
	rhythm       string
	accent       string
	exercise     string
	bpm          int
}

func (f *itemFlags) register(fl *pflag.FlagSet) {
	fl.StringVar(&f.family, "family", string(domain.FamilyScale), "Family: scale, dohnanyi or hanon")
	fl.StringVar(&f.key, "key", "", "Key, e.g. C or F#/Gb")
	fl.StringVar(&f.itemType, "type", "", "Scale or arpeggio type, e.g. Major or MajorArpeggio")
	fl.StringVar(&f.articulation, "articulation", "", "Legato, Staccato or Portato")
	fl.StringVar(&f.tempo, "tempo", "", "Slow, Moderate, Fast or Professional")
	fl.IntVar(&f.octaves, "octaves", 0, "Octave span, 1 to 4")
	fl.StringVar(&f.direction, "direction", "", "Ascending, Descending, Both or Contrary")
	fl.StringVar(&f.hands, "hands", "", "Separately, Together or Alternating")
	fl.StringVar(&f.rhythm, "rhythm", "", "Straight, Dotted, Groups3 or Groups4")
	fl.StringVar(&f.accent, "accent", "", "None, Every2, Every3 or Every4")
	fl.StringVar(&f.exercise, "exercise", "", "Exercise number (dohnanyi, hanon)")
	fl.IntVar(&f.bpm, "bpm", 0, "Metronome BPM")
}

func (f *itemFlags) item() (domain.PracticeItem, error) {
	family, err := domain.ParseFamily(f.family)
	if err != nil {
		return nil, err
	}
	if family.IsExercise() {
		if f.exercise == "" {
			return nil, fmt.Errorf("%w: --exercise is required for %s", domain.ErrInvalidDomainValue, family)
		}
		return domain.ItemEnvelope{Family: family, Exercise: f.exercise, BPM: f.bpm}.Item()
	}

	if f.key == "" || f.itemType == "" {
		return nil, fmt.Errorf("%w: --key and --type are required for scales", domain.ErrInvalidDomainValue)
	}
	key, err := domain.ParseKey(f.key)
	if err != nil {
		return nil, err
	}
	typ, err := domain.ParseItemType(f.itemType)
	if err != nil {
		return nil, err
	}
	env := domain.Envelope(domain.ScalePractice{Permutation: domain.DefaultPermutation(key, typ), BPM: f.bpm})
	override(&env.Articulation, f.articulation)
	override(&env.Tempo, f.tempo)
	override(&env.Direction, f.direction)
	override(&env.Hands, f.hands)
	override(&env.Rhythm, f.rhythm)
	override(&env.Accent, f.accent)
	if f.octaves != 0 {
		env.Octaves = f.octaves
	}
	return env.Item()
}

func override(dst *string, v string) {
	if v != "" {
		*dst = v
	}
}
