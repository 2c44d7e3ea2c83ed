package service

import (
	"testing"
	"time"

	"github.com/alexanderramin/etude/internal/contract"
	"github.com/alexanderramin/etude/internal/domain"
	"github.com/alexanderramin/etude/internal/identity"
	"github.com/alexanderramin/etude/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSubmitSnapshot_DuplicateWithinWindowIsSuppressed(t *testing.T) {
	f := newServiceFixture(t)
	req := contract.SnapshotRequest{Item: testutil.NewTestScalePractice(66)}

	first, err := f.sessions.SubmitSnapshot(ctxBG(), "u1", req)
	require.NoError(t, err)
	assert.True(t, first.Accepted)
	assert.True(t, first.NewRecord)
	require.NotNil(t, first.Entry)
	assert.True(t, first.Entry.IsSnapshot())

	f.clock.Advance(500 * time.Millisecond)
	second, err := f.sessions.SubmitSnapshot(ctxBG(), "u1", req)
	require.NoError(t, err)
	assert.False(t, second.Accepted)
	assert.Nil(t, second.Entry)

	entries, err := f.sessions.ListLog(ctxBG(), "u1", contract.ListLogRequest{})
	require.NoError(t, err)
	assert.Len(t, entries, 1)
}

func TestSubmitSnapshot_AcceptedAgainAfterWindow(t *testing.T) {
	f := newServiceFixture(t)
	req := contract.SnapshotRequest{Item: domain.HanonPractice{Exercise: "4", BPM: 88}}

	_, err := f.sessions.SubmitSnapshot(ctxBG(), "u1", req)
	require.NoError(t, err)
	f.clock.Advance(2 * time.Second)

	resp, err := f.sessions.SubmitSnapshot(ctxBG(), "u1", req)
	require.NoError(t, err)
	assert.True(t, resp.Accepted)
	assert.False(t, resp.NewRecord, "same bpm is not a new record")
	assert.Equal(t, "hanon-4", resp.ShapeID)

	bpm, err := f.practice.GetMasteryBPM(ctxBG(), "u1", "hanon-4")
	require.NoError(t, err)
	assert.Equal(t, 88, bpm)
}

func TestSubmitSnapshot_DifferentKeyInsideWindowIsSuppressed(t *testing.T) {
	f := newServiceFixture(t)
	_, err := f.sessions.SubmitSnapshot(ctxBG(), "u1", contract.SnapshotRequest{Item: testutil.NewTestScalePractice(60)})
	require.NoError(t, err)
	f.clock.Advance(200 * time.Millisecond)

	resp, err := f.sessions.SubmitSnapshot(ctxBG(), "u1", contract.SnapshotRequest{Item: testutil.NewTestScalePractice(72)})
	require.NoError(t, err)
	assert.False(t, resp.Accepted)
}

func TestSubmitSnapshot_GuardIsPerUser(t *testing.T) {
	f := newServiceFixture(t)
	req := contract.SnapshotRequest{Item: testutil.NewTestScalePractice(60)}
	a, err := f.sessions.SubmitSnapshot(ctxBG(), "alice", req)
	require.NoError(t, err)
	b, err := f.sessions.SubmitSnapshot(ctxBG(), "bob", req)
	require.NoError(t, err)
	assert.True(t, a.Accepted)
	assert.True(t, b.Accepted)
}

func TestSubmitSnapshot_FailedLogWriteRollsBackRecordAndReleasesGuard(t *testing.T) {
	f := newServiceFixture(t)
	req := contract.SnapshotRequest{Item: testutil.NewTestScalePractice(60)}
	shapeID, err := identity.ShapeID(req.Item)
	require.NoError(t, err)

	f.snapshots.FailOn(2)
	_, err = f.sessions.SubmitSnapshot(ctxBG(), "u1", req)
	require.ErrorIs(t, err, domain.ErrPersistenceUnavailable)

	bpm, err := f.practice.GetMasteryBPM(ctxBG(), "u1", shapeID)
	require.NoError(t, err)
	assert.Equal(t, 0, bpm, "bpm raise rolled back with the log insert")

	stored, err := f.bpms.Get(ctxBG(), "u1", shapeID)
	require.NoError(t, err)
	assert.Equal(t, 0, stored, "nothing persisted")

	f.snapshots.FailOn(0)
	resp, err := f.sessions.SubmitSnapshot(ctxBG(), "u1", req)
	require.NoError(t, err)
	assert.True(t, resp.Accepted, "retry right away after a failed write")
	assert.True(t, resp.NewRecord, "the retry sets the record")
}

func TestSubmitSnapshot_FailedBPMWriteLeavesNoEntry(t *testing.T) {
	f := newServiceFixture(t)
	f.snapshots.FailOn(1)
	_, err := f.sessions.SubmitSnapshot(ctxBG(), "u1", contract.SnapshotRequest{Item: testutil.NewTestScalePractice(60)})
	require.ErrorIs(t, err, domain.ErrPersistenceUnavailable)

	entries, err := f.sessions.ListLog(ctxBG(), "u1", contract.ListLogRequest{})
	require.NoError(t, err)
	assert.Empty(t, entries)
}

func TestSubmitSnapshot_Validation(t *testing.T) {
	f := newServiceFixture(t)
	_, err := f.sessions.SubmitSnapshot(ctxBG(), "u1", contract.SnapshotRequest{})
	require.ErrorIs(t, err, domain.ErrInvalidDomainValue)

	_, err = f.sessions.SubmitSnapshot(ctxBG(), "u1", contract.SnapshotRequest{Item: domain.DohnanyiPractice{Exercise: "3"}})
	require.ErrorIs(t, err, domain.ErrInvalidDomainValue)

	_, err = f.sessions.SubmitSnapshot(ctxBG(), "", contract.SnapshotRequest{Item: testutil.NewTestScalePractice(60)})
	require.ErrorIs(t, err, domain.ErrNotAuthenticated)
}

func TestLogSession(t *testing.T) {
	f := newServiceFixture(t)
	items := []domain.PracticeItem{testutil.NewTestScalePractice(0), domain.DohnanyiPractice{Exercise: "2", BPM: 80}}

	entry, err := f.sessions.LogSession(ctxBG(), "u1", contract.LogSessionRequest{DurationMinutes: 25, Items: items, Notes: "warmup"})
	require.NoError(t, err)
	assert.Equal(t, domain.LogSession, entry.Kind())
	assert.NotEmpty(t, entry.ID)

	_, err = f.sessions.LogSession(ctxBG(), "u1", contract.LogSessionRequest{DurationMinutes: 0})
	require.ErrorIs(t, err, domain.ErrInvalidDomainValue)
	_, err = f.sessions.LogSession(ctxBG(), "", contract.LogSessionRequest{DurationMinutes: 5})
	require.ErrorIs(t, err, domain.ErrNotAuthenticated)
}

func TestLogSession_FailedInsert(t *testing.T) {
	f := newServiceFixture(t)
	f.logs.FailWrites.Store(true)
	_, err := f.sessions.LogSession(ctxBG(), "u1", contract.LogSessionRequest{DurationMinutes: 10})
	require.ErrorIs(t, err, domain.ErrPersistenceUnavailable)
	assert.Equal(t, int32(1), f.logs.Inserts.Load())
}

func TestListLog_NewestFirstWithLimit(t *testing.T) {
	f := newServiceFixture(t)
	for _, m := range []int{10, 20, 30} {
		_, err := f.sessions.LogSession(ctxBG(), "u1", contract.LogSessionRequest{DurationMinutes: m})
		require.NoError(t, err)
	}

	entries, err := f.sessions.ListLog(ctxBG(), "u1", contract.NewListLogRequest(2))
	require.NoError(t, err)
	require.Len(t, entries, 2)
	assert.Equal(t, 30, entries[0].DurationMinutes)
	assert.Equal(t, 20, entries[1].DurationMinutes)
}

func TestLastTargetedBPM(t *testing.T) {
	f := newServiceFixture(t)
	item := testutil.NewTestScalePractice(0, testutil.WithTempo(domain.TempoModerate))
	shapeID, err := identity.ShapeID(item)
	require.NoError(t, err)

	bpm, err := f.sessions.LastTargetedBPM(ctxBG(), "u1", shapeID)
	require.NoError(t, err)
	assert.Equal(t, 0, bpm)

	_, err = f.sessions.LogSession(ctxBG(), "u1", contract.LogSessionRequest{DurationMinutes: 10, Items: []domain.PracticeItem{item}})
	require.NoError(t, err)
	faster := item
	faster.BPM = 92
	_, err = f.sessions.LogSession(ctxBG(), "u1", contract.LogSessionRequest{DurationMinutes: 10, Items: []domain.PracticeItem{faster}})
	require.NoError(t, err)

	bpm, err = f.sessions.LastTargetedBPM(ctxBG(), "u1", shapeID)
	require.NoError(t, err)
	assert.Equal(t, 92, bpm)

	_, err = f.sessions.LastTargetedBPM(ctxBG(), "u1", "C-Major")
	require.ErrorIs(t, err, domain.ErrMalformedIdentifier)
}
