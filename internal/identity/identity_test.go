package identity

import (
	"testing"

	"github.com/alexanderramin/etude/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func cMajorArp() domain.ScalePermutation {
	return domain.DefaultPermutation(domain.KeyC, domain.MajorArpeggio)
}

func TestEncodePractice_FieldOrder(t *testing.T) {
	id, err := EncodePractice(cMajorArp())
	require.NoError(t, err)
	assert.Equal(t, "C-MajorArpeggio-Legato-Slow-1oct-Both-Separately-Straight-None", id)
}

func TestEncodeShape_FieldOrder(t *testing.T) {
	p := cMajorArp()
	p.Rhythm = domain.RhythmGroups3
	p.Accent = domain.AccentEvery2
	id, err := EncodeShape(ShapeOf(p))
	require.NoError(t, err)
	assert.Equal(t, "C-MajorArpeggio-Legato-Both-Separately-Groups3-Every2-1oct", id)
}

func TestEncodeShape_IgnoresTempo(t *testing.T) {
	slow := cMajorArp()
	fast := slow
	fast.Tempo = domain.TempoProfessional
	assert.Equal(t, ShapeOf(slow), ShapeOf(fast))

	a, err := EncodeShape(ShapeOf(slow))
	require.NoError(t, err)
	b, err := EncodeShape(ShapeOf(fast))
	require.NoError(t, err)
	assert.Equal(t, a, b)
}

func TestPracticeRoundTrip_AllPermutations(t *testing.T) {
	n := 0
	for _, key := range domain.AllKeys() {
		for _, typ := range domain.AllItemTypes() {
			for _, art := range domain.AllArticulations() {
				for _, tempo := range domain.AllTempoLevels() {
					for _, oct := range domain.AllOctaves() {
						for _, dir := range domain.AllDirections() {
							for _, hands := range domain.AllHands() {
								for _, rhythm := range domain.AllRhythms() {
									for _, accent := range domain.AllAccents() {
										p := domain.ScalePermutation{
											Key: key, Type: typ, Articulation: art, Tempo: tempo,
											Octaves: oct, Direction: dir, Hands: hands, Rhythm: rhythm, Accent: accent,
										}
										id, err := EncodePractice(p)
										if err != nil {
											t.Fatalf("encode %+v: %v", p, err)
										}
										got, err := ParsePractice(id)
										if err != nil || got != p.Normalize() {
											t.Fatalf("round trip %q: got %+v, err %v", id, got, err)
										}
										n++
									}
								}
							}
						}
					}
				}
			}
		}
	}
	assert.Equal(t, 12*8*3*4*4*4*3*4*4, n)
}

func TestPracticeID_UniquePerScaleItem(t *testing.T) {
	seen := make(map[string]bool)
	for _, key := range domain.AllKeys() {
		for _, typ := range domain.AllItemTypes() {
			seen[MustEncodePractice(domain.DefaultPermutation(key, typ))] = true
		}
	}
	// chromatic under the 11 non-C keys collapses onto C-Chromatic.
	assert.Len(t, seen, 12*8-11)
}

func TestShapeRoundTrip_Sample(t *testing.T) {
	for _, typ := range domain.AllItemTypes() {
		for _, dir := range domain.AllDirections() {
			for _, oct := range domain.AllOctaves() {
				p := domain.DefaultPermutation(domain.KeyFSharp, typ)
				p.Direction = dir
				p.Octaves = oct
				s := ShapeOf(p.Normalize())
				id, err := EncodeShape(s)
				require.NoError(t, err)
				got, err := ParseShape(id)
				require.NoError(t, err)
				assert.Equal(t, s, got)
			}
		}
	}
}

func TestChromaticNormalization(t *testing.T) {
	p := domain.DefaultPermutation(domain.KeyG, domain.Chromatic)
	id, err := EncodePractice(p)
	require.NoError(t, err)
	assert.Equal(t, "C-Chromatic-Legato-Slow-1oct-Both-Separately-Straight-None", id)

	got, err := ParsePractice(id)
	require.NoError(t, err)
	assert.Equal(t, domain.KeyC, got.Key)
	assert.Equal(t, "C-Chromatic", ScaleItemID(domain.KeyG, domain.Chromatic))
}

func TestParsePractice_RejectsNonCanonicalChromatic(t *testing.T) {
	_, err := ParsePractice("G-Chromatic-Legato-Slow-1oct-Both-Separately-Straight-None")
	require.ErrorIs(t, err, domain.ErrMalformedIdentifier)
}

func TestParsePractice_Malformed(t *testing.T) {
	cases := map[string]string{
		"empty":            "",
		"too few fields":   "C-Major-Legato",
		"shape id":         "C-MajorArpeggio-Legato-Both-Separately-Straight-None-1oct",
		"unknown key":      "H-Major-Legato-Slow-1oct-Both-Separately-Straight-None",
		"label not token":  "C-Harmonic Minor-Legato-Slow-1oct-Both-Separately-Straight-None",
		"octave range":     "C-Major-Legato-Slow-5oct-Both-Separately-Straight-None",
		"fields swapped":   "C-Major-Slow-Legato-1oct-Both-Separately-Straight-None",
		"trailing garbage": "C-Major-Legato-Slow-1oct-Both-Separately-Straight-None-x",
	}
	for name, id := range cases {
		t.Run(name, func(t *testing.T) {
			got, err := ParsePractice(id)
			require.ErrorIs(t, err, domain.ErrMalformedIdentifier)
			assert.Equal(t, domain.ScalePermutation{}, got, "no partial tuple")
		})
	}
}

func TestParseShape_RejectsPracticeID(t *testing.T) {
	_, err := ParseShape(MustEncodePractice(cMajorArp()))
	require.ErrorIs(t, err, domain.ErrMalformedIdentifier)
}

func TestEncodePractice_InvalidValue(t *testing.T) {
	p := cMajorArp()
	p.Articulation = "Marcato"
	_, err := EncodePractice(p)
	require.ErrorIs(t, err, domain.ErrInvalidDomainValue)

	p = cMajorArp()
	p.Octaves = 0
	_, err = EncodeShape(ShapeOf(p))
	require.ErrorIs(t, err, domain.ErrInvalidDomainValue)
}

func TestMustEncodePractice_PanicsOnInvalid(t *testing.T) {
	assert.Panics(t, func() { MustEncodePractice(domain.ScalePermutation{}) })
}
