package service

import (
	"testing"

	"github.com/alexanderramin/etude/internal/contract"
	"github.com/alexanderramin/etude/internal/domain"
	"github.com/alexanderramin/etude/internal/grade"
	"github.com/alexanderramin/etude/internal/recommend"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestProgress_FreshUser(t *testing.T) {
	f := newServiceFixture(t)
	resp, err := f.progress.Grades(ctxBG(), "u1")
	require.NoError(t, err)
	require.Len(t, resp.Grades, grade.MaxLevel)
	assert.Equal(t, 24, resp.Grades[0].Total)
	assert.Equal(t, 0, resp.Grades[0].Percent)
	assert.Equal(t, grade.LabelBeginner, resp.Standing.Label)

	focus, err := f.progress.Focus(ctxBG(), "u1", contract.FocusRequest{})
	require.NoError(t, err)
	require.NotNil(t, focus.Focus)
	assert.Equal(t, recommend.ReasonUntouched, focus.Focus.Reason)
	assert.Equal(t, mustRequired(t, 1)[0], focus.Focus.ID)
}

func TestProgress_MasteringGradeOne(t *testing.T) {
	f := newServiceFixture(t)
	for _, id := range mustRequired(t, 1) {
		require.NoError(t, f.practice.SetStatus(ctxBG(), "u1", id, domain.StatusMastered))
	}

	c, err := f.progress.Grade(ctxBG(), "u1", 1)
	require.NoError(t, err)
	assert.Equal(t, 100, c.Percent)
	assert.True(t, c.Complete())

	standing, err := f.progress.Standing(ctxBG(), "u1")
	require.NoError(t, err)
	assert.Equal(t, 1, standing.Current)
}

func TestProgress_FocusByFamily(t *testing.T) {
	f := newServiceFixture(t)
	require.NoError(t, f.practice.SetStatus(ctxBG(), "u1", "hanon-1-60", domain.StatusPracticed))

	resp, err := f.progress.Focus(ctxBG(), "u1", contract.FocusRequest{Family: domain.FamilyHanon})
	require.NoError(t, err)
	require.NotNil(t, resp.Focus)
	assert.Equal(t, domain.FamilyHanon, resp.Focus.Family)
	assert.Equal(t, "hanon-2-60", resp.Focus.ID)

	_, err = f.progress.Focus(ctxBG(), "u1", contract.FocusRequest{Family: "bach"})
	require.ErrorIs(t, err, domain.ErrInvalidDomainValue)
}

func TestProgress_GradeOutOfRange(t *testing.T) {
	f := newServiceFixture(t)
	_, err := f.progress.Grade(ctxBG(), "u1", 11)
	require.ErrorIs(t, err, domain.ErrInvalidDomainValue)
}

func TestProgress_RequiresUser(t *testing.T) {
	f := newServiceFixture(t)
	_, err := f.progress.Grades(ctxBG(), "")
	require.ErrorIs(t, err, domain.ErrNotAuthenticated)
}
