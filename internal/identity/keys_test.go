package identity

import (
	"testing"

	"github.com/alexanderramin/etude/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFamilyOf(t *testing.T) {
	assert.Equal(t, domain.FamilyDohnanyi, FamilyOf("dohnanyi-1-60"))
	assert.Equal(t, domain.FamilyHanon, FamilyOf("hanon-1"))
	assert.Equal(t, domain.FamilyScale, FamilyOf("C-Major"))
	assert.Equal(t, domain.FamilyScale, FamilyOf("hanonish"))
}

func TestPracticeAndShapeID_PerVariant(t *testing.T) {
	cases := []struct {
		item     domain.PracticeItem
		practice string
		shape    string
	}{
		{
			domain.ScalePractice{Permutation: cMajorArp(), BPM: 66},
			"C-MajorArpeggio-Legato-Slow-1oct-Both-Separately-Straight-None",
			"C-MajorArpeggio-Legato-Both-Separately-Straight-None-1oct",
		},
		{domain.DohnanyiPractice{Exercise: "5", BPM: 100}, "dohnanyi-5-100", "dohnanyi-5"},
		{domain.HanonPractice{Exercise: "60", BPM: 120}, "hanon-60-120", "hanon-60"},
	}
	for _, tc := range cases {
		got, err := PracticeID(tc.item)
		require.NoError(t, err)
		assert.Equal(t, tc.practice, got)

		got, err = ShapeID(tc.item)
		require.NoError(t, err)
		assert.Equal(t, tc.shape, got)
	}
}

func TestValidateKeys(t *testing.T) {
	f, err := ValidateStatusKey("hanon-3-72")
	require.NoError(t, err)
	assert.Equal(t, domain.FamilyHanon, f)

	f, err = ValidateShapeKey("C-MajorArpeggio-Legato-Both-Separately-Straight-None-1oct")
	require.NoError(t, err)
	assert.Equal(t, domain.FamilyScale, f)

	_, err = ValidateStatusKey("hanon-3")
	require.ErrorIs(t, err, domain.ErrMalformedIdentifier)
	_, err = ValidateShapeKey("C-MajorArpeggio-Legato-Slow-1oct-Both-Separately-Straight-None")
	require.ErrorIs(t, err, domain.ErrMalformedIdentifier)
}

func TestItemFromPracticeID(t *testing.T) {
	item, err := ItemFromPracticeID("D-Major-Staccato-Fast-3oct-Both-Together-Straight-None")
	require.NoError(t, err)
	sp, ok := item.(domain.ScalePractice)
	require.True(t, ok)
	assert.Equal(t, domain.KeyD, sp.Permutation.Key)
	assert.Equal(t, domain.Staccato, sp.Permutation.Articulation)
	assert.Equal(t, 100, sp.BPM)

	item, err = ItemFromPracticeID("dohnanyi-7-80")
	require.NoError(t, err)
	assert.Equal(t, domain.DohnanyiPractice{Exercise: "7", BPM: 80}, item)
}

func TestDecode_Kinds(t *testing.T) {
	cases := []struct {
		id   string
		kind Kind
	}{
		{"C#/Db-MelodicMinor", KindScaleItem},
		{"C#/Db-MelodicMinor-Portato-Moderate-2oct-Contrary-Alternating-Dotted-Every3", KindScalePractice},
		{"C#/Db-MelodicMinor-Portato-Contrary-Alternating-Dotted-Every3-2oct", KindScaleShape},
		{"hanon-9-88", KindExercise},
		{"dohnanyi-9", KindExerciseShape},
	}
	for _, tc := range cases {
		d, err := Decode(tc.id)
		require.NoError(t, err, tc.id)
		assert.Equal(t, tc.kind, d.Kind, tc.id)
		assert.Equal(t, tc.id, d.ID)
	}

	d, err := Decode("C#/Db-MelodicMinor-Portato-Contrary-Alternating-Dotted-Every3-2oct")
	require.NoError(t, err)
	assert.Empty(t, d.Envelope.Tempo)
	assert.Equal(t, 2, d.Envelope.Octaves)
}

func TestDecode_Malformed(t *testing.T) {
	for _, id := range []string{"", "C", "E-Chromatic", "C-Major-Legato", "hanon-1-2-3"} {
		_, err := Decode(id)
		assert.ErrorIs(t, err, domain.ErrMalformedIdentifier, id)
	}
}
