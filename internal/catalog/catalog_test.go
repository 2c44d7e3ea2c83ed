package catalog

import (
	"testing"

	"github.com/alexanderramin/etude/internal/domain"
	"github.com/alexanderramin/etude/internal/identity"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerateScaleCatalog_Size(t *testing.T) {
	items := GenerateScaleCatalog()
	assert.Len(t, items, 12*3+12*4+1)
}

func TestGenerateScaleCatalog_Order(t *testing.T) {
	items := GenerateScaleCatalog()
	assert.Equal(t, "C-Major", items[0].ID)
	assert.Equal(t, "C-HarmonicMinor", items[1].ID)
	assert.Equal(t, "C-MelodicMinor", items[2].ID)
	assert.Equal(t, "C#/Db-Major", items[3].ID)
	assert.Equal(t, "B-MelodicMinor", items[35].ID)
	assert.Equal(t, "C-Chromatic", items[36].ID)
	assert.Equal(t, "C-MajorArpeggio", items[37].ID)
	assert.Equal(t, "B-Diminished7th", items[84].ID)
}

func TestGenerateScaleCatalog_Idempotent(t *testing.T) {
	assert.Equal(t, GenerateScaleCatalog(), GenerateScaleCatalog())
	assert.Equal(t, GenerateScaleCatalog(), Scales())
}

func TestGenerateScaleCatalog_ChromaticOnlyUnderC(t *testing.T) {
	ids := make(map[string]bool)
	for _, s := range GenerateScaleCatalog() {
		assert.False(t, ids[s.ID], "duplicate %s", s.ID)
		ids[s.ID] = true
		if s.Type == domain.Chromatic {
			assert.Equal(t, domain.KeyC, s.Key)
		}
	}
	assert.Len(t, ScalesOfType(domain.Chromatic), 1)
}

func TestScales_ReturnsCopy(t *testing.T) {
	a := Scales()
	a[0].ID = "mutated"
	assert.Equal(t, "C-Major", Scales()[0].ID)
}

func TestScalesOfType(t *testing.T) {
	arps := ScalesOfType(domain.ArpeggioTypes()...)
	assert.Len(t, arps, 48)
	for _, s := range arps {
		assert.True(t, s.IsArpeggio())
	}
	assert.Len(t, ScalesOfType(domain.MajorArpeggio, domain.MinorArpeggio), 24)
}

func TestLookupScale(t *testing.T) {
	s, ok := LookupScale("G#/Ab-Dominant7th")
	require.True(t, ok)
	assert.Equal(t, domain.KeyGSharp, s.Key)
	assert.Equal(t, domain.Dominant7th, s.Type)

	_, ok = LookupScale("D-Chromatic")
	assert.False(t, ok)
}

func TestExercises(t *testing.T) {
	d := Dohnanyi()
	require.Len(t, d, 12)
	assert.Equal(t, "dohnanyi-1", d[0].ShapeID)

	h := Hanon()
	require.Len(t, h, 60)
	assert.Equal(t, "60", h[59].Name)

	assert.Nil(t, Exercises(domain.FamilyScale))
	assert.Equal(t, h, Exercises(domain.FamilyHanon))
}

func TestPairs(t *testing.T) {
	d := DohnanyiPairs()
	require.Len(t, d, 48)
	assert.Equal(t, identity.ExerciseRef{Family: domain.FamilyDohnanyi, Exercise: "1", BPM: 60}, d[0])
	assert.Equal(t, identity.ExerciseRef{Family: domain.FamilyDohnanyi, Exercise: "1", BPM: 80}, d[1])

	h := HanonPairs()
	require.Len(t, h, 300)
	assert.Equal(t, 120, h[len(h)-1].BPM)
}
