package repository_test

import (
	"context"
	"testing"

	"github.com/alexanderramin/etude/internal/domain"
	"github.com/alexanderramin/etude/internal/repository"
	"github.com/alexanderramin/etude/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const shapeID = "C-MajorArpeggio-Legato-Both-Separately-Straight-None-1oct"

func raise(t *testing.T, repo *repository.SQLBPMRepo, user, id string, family domain.Family, bpm int) bool {
	t.Helper()
	raised, err := repo.Raise(context.Background(), user, domain.BPMEntry{ID: id, Family: family, BPM: bpm})
	require.NoError(t, err)
	return raised
}

func TestBPMRepo_RaiseNeverLowers(t *testing.T) {
	repo := repository.NewSQLBPMRepo(testutil.NewTestDB(t))
	ctx := context.Background()

	assert.True(t, raise(t, repo, "u1", shapeID, domain.FamilyScale, 60))
	assert.True(t, raise(t, repo, "u1", shapeID, domain.FamilyScale, 72))
	assert.False(t, raise(t, repo, "u1", shapeID, domain.FamilyScale, 66), "lower value is rejected")
	assert.False(t, raise(t, repo, "u1", shapeID, domain.FamilyScale, 72), "equal value is not a record")

	got, err := repo.List(ctx, "u1")
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, 72, got[0].BPM)
}

func TestBPMRepo_Get(t *testing.T) {
	repo := repository.NewSQLBPMRepo(testutil.NewTestDB(t))
	ctx := context.Background()

	bpm, err := repo.Get(ctx, "u1", shapeID)
	require.NoError(t, err)
	assert.Equal(t, 0, bpm, "absent shape reads as 0")

	raise(t, repo, "u1", shapeID, domain.FamilyScale, 96)
	bpm, err = repo.Get(ctx, "u1", shapeID)
	require.NoError(t, err)
	assert.Equal(t, 96, bpm)

	bpm, err = repo.Get(ctx, "u2", shapeID)
	require.NoError(t, err)
	assert.Equal(t, 0, bpm)
}

func TestBPMRepo_DeleteAndDeleteFamily(t *testing.T) {
	repo := repository.NewSQLBPMRepo(testutil.NewTestDB(t))
	ctx := context.Background()

	raise(t, repo, "u1", shapeID, domain.FamilyScale, 60)
	raise(t, repo, "u1", "hanon-1", domain.FamilyHanon, 88)
	raise(t, repo, "u1", "hanon-2", domain.FamilyHanon, 72)

	require.NoError(t, repo.Delete(ctx, "u1", shapeID))
	n, err := repo.DeleteFamily(ctx, "u1", domain.FamilyHanon)
	require.NoError(t, err)
	assert.Equal(t, int64(2), n)

	got, err := repo.List(ctx, "u1")
	require.NoError(t, err)
	assert.Empty(t, got)
}

func TestBPMRepo_RejectsNonPositive(t *testing.T) {
	repo := repository.NewSQLBPMRepo(testutil.NewTestDB(t))
	_, err := repo.Raise(context.Background(), "u1", domain.BPMEntry{ID: shapeID, Family: domain.FamilyScale, BPM: 0})
	assert.Error(t, err)
}
