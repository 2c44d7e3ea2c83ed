package service

import (
	"context"
	"testing"
	"time"

	"github.com/alexanderramin/etude/internal/grade"
	"github.com/alexanderramin/etude/internal/mastery"
	"github.com/alexanderramin/etude/internal/repository"
	"github.com/alexanderramin/etude/internal/testutil"
	"github.com/stretchr/testify/require"
)

type serviceFixture struct {
	statuses  *testutil.FlakyStatusRepo
	bpms      *testutil.FlakyBPMRepo
	logs      *testutil.FlakyLogRepo
	snapshots *testutil.FailOnNthExecUoW
	clock     *testutil.ManualClock
	stores    *StoreRegistry
	practice  PracticeService
	sessions  SessionLogService
	progress  ProgressService
}

var sharedCurriculum = grade.NewCurriculum()

func newServiceFixture(t *testing.T) *serviceFixture {
	t.Helper()
	database := testutil.NewTestDB(t)
	f := &serviceFixture{
		statuses: &testutil.FlakyStatusRepo{StatusRepo: repository.NewSQLStatusRepo(database)},
		bpms:     &testutil.FlakyBPMRepo{BPMRepo: repository.NewSQLBPMRepo(database)},
		clock:    testutil.NewManualClock(testutil.TestEpoch),
	}
	logClock := repository.WithLogClock(f.clock.Tick(time.Millisecond))
	f.logs = &testutil.FlakyLogRepo{
		PracticeLogRepo: repository.NewSQLPracticeLogRepo(database, logClock),
	}
	f.snapshots = testutil.NewFailOnNthExecUoW(testutil.NewTestUoW(database), 0, nil)
	backend := mastery.Backend{
		Statuses:  f.statuses,
		BPMs:      f.bpms,
		Resetter:  repository.NewSQLFamilyResetter(testutil.NewTestUoW(database)),
		Snapshots: repository.NewSQLSnapshotRecorder(f.snapshots, logClock),
	}
	f.stores = NewStoreRegistry(backend, mastery.WithClock(f.clock.Now))
	f.practice = NewPracticeService(f.stores)
	f.sessions = NewSessionLogService(f.stores, f.logs)
	f.progress = NewProgressService(f.stores, sharedCurriculum)
	return f
}

func ctxBG() context.Context { return context.Background() }

func mustRequired(t *testing.T, level int) []string {
	t.Helper()
	ids, err := sharedCurriculum.Required(level)
	require.NoError(t, err)
	return ids
}
