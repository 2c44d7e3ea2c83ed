package recommend

import (
	"testing"

	"github.com/alexanderramin/etude/internal/domain"
	"github.com/alexanderramin/etude/internal/grade"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type statusMap map[string]domain.Status

func (m statusMap) Status(id string) domain.Status {
	if s, ok := m[id]; ok {
		return s
	}
	return domain.StatusUntouched
}

var (
	curriculum = grade.NewCurriculum()
	engine     = NewEngine(curriculum)
)

func allIDs(t *testing.T) []string {
	t.Helper()
	ids, err := curriculum.Required(grade.MaxLevel)
	require.NoError(t, err)
	return ids
}

func TestSuggest_FreshStateStartsAtGradeOne(t *testing.T) {
	got := engine.Suggest(statusMap{})
	require.NotNil(t, got)
	assert.Equal(t, "C-MajorArpeggio-Legato-Slow-1oct-Both-Separately-Straight-None", got.ID)
	assert.Equal(t, ReasonUntouched, got.Reason)
	assert.Equal(t, 1, got.Tier)
	assert.Equal(t, domain.FamilyScale, got.Family)

	sp, ok := got.Item.(domain.ScalePractice)
	require.True(t, ok)
	assert.Equal(t, domain.MajorArpeggio, sp.Permutation.Type)
	assert.Equal(t, domain.HandsSeparately, sp.Permutation.Hands)
	assert.Equal(t, 60, sp.BPM)
}

func TestSuggest_TieBreaksByFamilyWithinTier(t *testing.T) {
	m := statusMap{}
	g1, _ := curriculum.Required(1)
	for _, id := range g1 {
		m[id] = domain.StatusMastered
	}
	got := engine.Suggest(m)
	require.NotNil(t, got)
	assert.Equal(t, "dohnanyi-1-60", got.ID, "first-checkpoint exercises share tier 1 and rank after scales")
	assert.Equal(t, domain.DohnanyiPractice{Exercise: "1", BPM: 60}, got.Item)
}

func TestSuggest_ReviewWhenNothingUntouched(t *testing.T) {
	ids := allIDs(t)
	m := statusMap{}
	for _, id := range ids {
		m[id] = domain.StatusMastered
	}
	m["hanon-5-88"] = domain.StatusPracticed
	m["dohnanyi-2-100"] = domain.StatusPracticed

	got := engine.Suggest(m)
	require.NotNil(t, got)
	assert.Equal(t, ReasonReview, got.Reason)
	assert.Equal(t, "dohnanyi-2-100", got.ID, "both are tier 3; dohnanyi ranks before hanon")
	assert.Equal(t, 3, got.Tier)
}

func TestSuggest_NilWhenEverythingMastered(t *testing.T) {
	m := statusMap{}
	for _, id := range allIDs(t) {
		m[id] = domain.StatusMastered
	}
	assert.Nil(t, engine.Suggest(m))
}

func TestSuggest_UntouchedBeatsEarlierReview(t *testing.T) {
	m := statusMap{"C-MajorArpeggio-Legato-Slow-1oct-Both-Separately-Straight-None": domain.StatusPracticed}
	got := engine.Suggest(m)
	require.NotNil(t, got)
	assert.Equal(t, ReasonUntouched, got.Reason)
	assert.Equal(t, "C-MinorArpeggio-Legato-Slow-1oct-Both-Separately-Straight-None", got.ID)
}

func TestSuggestIn_Family(t *testing.T) {
	got := engine.SuggestIn(statusMap{}, domain.FamilyHanon)
	require.NotNil(t, got)
	assert.Equal(t, "hanon-1-60", got.ID)
	assert.Equal(t, domain.HanonPractice{Exercise: "1", BPM: 60}, got.Item)

	m := statusMap{}
	for _, ex := range domain.ExerciseNames(domain.FamilyHanon) {
		m["hanon-"+ex+"-60"] = domain.StatusMastered
	}
	got = engine.SuggestIn(m, domain.FamilyHanon)
	require.NotNil(t, got)
	assert.Equal(t, "hanon-1-72", got.ID, "next checkpoint only after the whole lower tier")
	assert.Equal(t, 2, got.Tier)
}

func TestSuggest_Deterministic(t *testing.T) {
	m := statusMap{"hanon-1-60": domain.StatusPracticed}
	assert.Equal(t, engine.Suggest(m), engine.Suggest(m))
}

func TestEngine_Len(t *testing.T) {
	assert.Equal(t, 2159, engine.Len())
}
