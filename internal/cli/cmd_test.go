package cli

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/alexanderramin/etude/internal/contract"
	"github.com/alexanderramin/etude/internal/domain"
	"github.com/alexanderramin/etude/internal/export"
	"github.com/alexanderramin/etude/internal/grade"
	"github.com/alexanderramin/etude/internal/mastery"
	"github.com/alexanderramin/etude/internal/repository"
	"github.com/alexanderramin/etude/internal/service"
	"github.com/alexanderramin/etude/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const (
	testUser     = "alice"
	arpPractice  = "C-MajorArpeggio-Legato-Slow-1oct-Both-Separately-Straight-None"
	arpShape     = "C-MajorArpeggio-Legato-Both-Separately-Straight-None-1oct"
	dMajorFastID = "D-Major-Legato-Fast-1oct-Both-Separately-Straight-None"
)

type cliFixture struct {
	app   *App
	clock *testutil.ManualClock
}

// testApp wires a full App backed by an in-memory DB for CLI integration tests.
func testApp(t *testing.T) *cliFixture {
	t.Helper()
	database := testutil.NewTestDB(t)
	clock := testutil.NewManualClock(testutil.TestEpoch)

	logClock := repository.WithLogClock(clock.Tick(time.Millisecond))
	stores := service.NewStoreRegistry(mastery.Backend{
		Statuses:  repository.NewSQLStatusRepo(database),
		BPMs:      repository.NewSQLBPMRepo(database),
		Resetter:  repository.NewSQLFamilyResetter(testutil.NewTestUoW(database)),
		Snapshots: repository.NewSQLSnapshotRecorder(testutil.NewTestUoW(database), logClock),
	}, mastery.WithClock(clock.Now))
	logs := repository.NewSQLPracticeLogRepo(database, logClock)

	practice := service.NewPracticeService(stores)
	sessions := service.NewSessionLogService(stores, logs)
	progress := service.NewProgressService(stores, grade.NewCurriculum())

	return &cliFixture{
		clock: clock,
		app: &App{
			Practice: practice,
			Sessions: sessions,
			Progress: progress,
			Exporter: export.NewExporter(practice, sessions, progress, export.WithClock(clock.Now)),
			User:     testUser,
			Version:  "1.2.3",
			Now:      clock.Now,
		},
	}
}

// executeCmd runs a cobra command and captures stdout/stderr.
func executeCmd(t *testing.T, app *App, args ...string) (string, error) {
	t.Helper()
	root := NewRootCmd(app)
	buf := new(bytes.Buffer)
	root.SetOut(buf)
	root.SetErr(buf)
	root.SetArgs(args)
	err := root.Execute()
	return buf.String(), err
}

func TestCatalogCmd(t *testing.T) {
	f := testApp(t)

	out, err := executeCmd(t, f.app, "catalog", "--family", "hanon")
	require.NoError(t, err)
	assert.Contains(t, out, "hanon-60")
	assert.NotContains(t, out, "C-Major")

	out, err = executeCmd(t, f.app, "catalog")
	require.NoError(t, err)
	assert.Contains(t, out, "C-Chromatic")
	assert.Contains(t, out, "dohnanyi-12")

	_, err = executeCmd(t, f.app, "catalog", "--family", "czerny")
	require.ErrorIs(t, err, domain.ErrInvalidDomainValue)
}

func TestIDDecodeCmd(t *testing.T) {
	f := testApp(t)

	out, err := executeCmd(t, f.app, "id", "decode", "hanon-12-88")
	require.NoError(t, err)
	assert.Contains(t, out, "exercise-practice")
	assert.Contains(t, out, "88")

	_, err = executeCmd(t, f.app, "id", "decode", "E-Chromatic")
	require.ErrorIs(t, err, domain.ErrMalformedIdentifier)
}

func TestIDEncodeCmd(t *testing.T) {
	f := testApp(t)

	tests := []struct {
		name string
		args []string
		want string
	}{
		{"scale practice", []string{"--key", "D", "--type", "Major", "--tempo", "Fast"}, dMajorFastID},
		{"scale shape", []string{"--key", "C", "--type", "MajorArpeggio", "--shape"}, arpShape},
		{"labels accepted", []string{"--key", "C", "--type", "Major Arpeggio", "--shape"}, arpShape},
		{"exercise practice", []string{"--family", "hanon", "--exercise", "12", "--bpm", "88"}, "hanon-12-88"},
		{"exercise shape", []string{"--family", "dohnanyi", "--exercise", "3", "--shape"}, "dohnanyi-3"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out, err := executeCmd(t, f.app, append([]string{"id", "encode"}, tt.args...)...)
			require.NoError(t, err)
			assert.Equal(t, tt.want+"\n", out)
		})
	}

	_, err := executeCmd(t, f.app, "id", "encode", "--family", "hanon", "--exercise", "12", "--bpm", "90")
	require.ErrorIs(t, err, domain.ErrInvalidDomainValue, "90 is not a checkpoint")

	_, err = executeCmd(t, f.app, "id", "encode", "--key", "D")
	require.ErrorIs(t, err, domain.ErrInvalidDomainValue)
}

func TestStatusCmds(t *testing.T) {
	f := testApp(t)

	out, err := executeCmd(t, f.app, "status", "get", arpPractice)
	require.NoError(t, err)
	assert.Contains(t, out, "Untouched")

	_, err = executeCmd(t, f.app, "status", "set", arpPractice, "mastered")
	require.NoError(t, err)
	_, err = executeCmd(t, f.app, "status", "set", "hanon-2-72", "practiced")
	require.NoError(t, err)

	out, err = executeCmd(t, f.app, "status", "get", arpPractice)
	require.NoError(t, err)
	assert.Contains(t, out, "Mastered")

	out, err = executeCmd(t, f.app, "status", "list", "--family", "hanon")
	require.NoError(t, err)
	assert.Contains(t, out, "hanon-2-72")
	assert.NotContains(t, out, arpPractice)

	_, err = executeCmd(t, f.app, "status", "set", arpPractice, "perfect")
	require.ErrorIs(t, err, domain.ErrInvalidDomainValue)
	_, err = executeCmd(t, f.app, "status", "get", arpShape)
	require.ErrorIs(t, err, domain.ErrMalformedIdentifier)
}

func TestUserFlag(t *testing.T) {
	f := testApp(t)
	f.app.User = ""

	_, err := executeCmd(t, f.app, "status", "get", arpPractice)
	require.ErrorIs(t, err, domain.ErrNotAuthenticated)

	_, err = executeCmd(t, f.app, "--user", "bob", "status", "set", arpPractice, "practiced")
	require.NoError(t, err)

	st, err := f.app.Practice.GetStatus(context.Background(), "bob", arpPractice)
	require.NoError(t, err)
	assert.Equal(t, domain.StatusPracticed, st)
}

func TestSetupHook(t *testing.T) {
	f := testApp(t)
	var got Options
	f.app.Setup = func(_ context.Context, _ *App, opts Options) error {
		got = opts
		return nil
	}

	_, err := executeCmd(t, f.app, "--config", "etude.yaml", "--db", "x.db", "version")
	require.NoError(t, err)
	assert.Equal(t, Options{ConfigPath: "etude.yaml", DBPath: "x.db"}, got)
}

func TestBPMCmds(t *testing.T) {
	f := testApp(t)

	out, err := executeCmd(t, f.app, "bpm", "raise", arpShape, "--bpm", "72")
	require.NoError(t, err)
	assert.Contains(t, out, "new record: 72 BPM")

	out, err = executeCmd(t, f.app, "bpm", "raise", arpShape, "--bpm", "66")
	require.NoError(t, err)
	assert.Contains(t, out, "Kept existing record 72 BPM")

	out, err = executeCmd(t, f.app, "bpm", "get", arpShape)
	require.NoError(t, err)
	assert.Contains(t, out, "72 BPM")

	out, err = executeCmd(t, f.app, "bpm", "list")
	require.NoError(t, err)
	assert.Contains(t, out, arpShape)

	_, err = executeCmd(t, f.app, "bpm", "reset", arpShape)
	require.NoError(t, err)
	out, err = executeCmd(t, f.app, "bpm", "list")
	require.NoError(t, err)
	assert.Contains(t, out, "No mastery BPMs recorded")

	_, err = executeCmd(t, f.app, "bpm", "raise", arpShape)
	require.Error(t, err, "--bpm is required")
}

func TestSnapshotCmd_Debounced(t *testing.T) {
	f := testApp(t)

	out, err := executeCmd(t, f.app, "snapshot", arpPractice)
	require.NoError(t, err)
	assert.Contains(t, out, "new record for "+arpShape+": 60 BPM")

	out, err = executeCmd(t, f.app, "snapshot", arpPractice)
	require.NoError(t, err)
	assert.Contains(t, out, "Duplicate snapshot")

	f.clock.Advance(2 * time.Second)
	out, err = executeCmd(t, f.app, "snapshot", arpPractice, "--bpm", "76")
	require.NoError(t, err)
	assert.Contains(t, out, "76 BPM")

	out, err = executeCmd(t, f.app, "bpm", "get", arpShape)
	require.NoError(t, err)
	assert.Contains(t, out, "76 BPM")
	assert.Contains(t, out, "last targeted at 76 BPM")

	entries, err := f.app.Sessions.ListLog(context.Background(), testUser, contract.NewListLogRequest(0))
	require.NoError(t, err)
	assert.Len(t, entries, 2)
}

func TestLogCmds(t *testing.T) {
	f := testApp(t)

	out, err := executeCmd(t, f.app, "log", "add", "--minutes", "25", "--item", "hanon-1-60", "--item", dMajorFastID, "--notes", "warmup")
	require.NoError(t, err)
	assert.Contains(t, out, "Logged 25m session")

	out, err = executeCmd(t, f.app, "log", "list")
	require.NoError(t, err)
	assert.Contains(t, out, "Hanon No. 1 @ 60 BPM (+1)")
	assert.Contains(t, out, "warmup")

	_, err = executeCmd(t, f.app, "log", "add", "--minutes", "0")
	require.ErrorIs(t, err, domain.ErrInvalidDomainValue)

	_, err = executeCmd(t, f.app, "log", "add", "--minutes", "10", "--item", "hanon-1")
	require.ErrorIs(t, err, domain.ErrMalformedIdentifier)
}

func TestGradesCmd(t *testing.T) {
	f := testApp(t)

	out, err := executeCmd(t, f.app, "grades")
	require.NoError(t, err)
	assert.Contains(t, out, "Beginner")
	assert.Contains(t, out, "0/24")

	out, err = executeCmd(t, f.app, "grades", "1")
	require.NoError(t, err)
	assert.Contains(t, out, "Grade 1")
	assert.Contains(t, out, "0/24 mastered")

	_, err = executeCmd(t, f.app, "grades", "11")
	require.ErrorIs(t, err, domain.ErrInvalidDomainValue)
	_, err = executeCmd(t, f.app, "grades", "one")
	require.ErrorIs(t, err, domain.ErrInvalidDomainValue)
}

func TestFocusCmd(t *testing.T) {
	f := testApp(t)

	out, err := executeCmd(t, f.app, "focus")
	require.NoError(t, err)
	assert.Contains(t, out, "NEXT FOCUS")

	out, err = executeCmd(t, f.app, "focus", "--family", "hanon")
	require.NoError(t, err)
	assert.Contains(t, out, "Hanon No. 1 @ 60 BPM")
}

func TestResetCmd(t *testing.T) {
	f := testApp(t)
	ctx := context.Background()
	require.NoError(t, f.app.Practice.SetStatus(ctx, testUser, "hanon-1-60", domain.StatusMastered))
	require.NoError(t, f.app.Practice.SetStatus(ctx, testUser, arpPractice, domain.StatusMastered))

	_, err := executeCmd(t, f.app, "reset", "hanon")
	require.ErrorIs(t, err, errResetNotConfirmed)

	out, err := executeCmd(t, f.app, "reset", "hanon", "--yes")
	require.NoError(t, err)
	assert.Contains(t, out, "1 statuses, 0 mastery BPMs")

	views, err := f.app.Practice.ListStatuses(ctx, testUser)
	require.NoError(t, err)
	require.Len(t, views, 1)
	assert.Equal(t, arpPractice, views[0].ID)
}

func TestExportCmd(t *testing.T) {
	f := testApp(t)
	require.NoError(t, f.app.Practice.SetStatus(context.Background(), testUser, "hanon-1-60", domain.StatusMastered))

	out, err := executeCmd(t, f.app, "export", "--format", "json")
	require.NoError(t, err)
	doc, err := export.Decode([]byte(out), export.FormatJSON)
	require.NoError(t, err)
	assert.Equal(t, testUser, doc.UserID)
	require.Len(t, doc.Statuses, 1)

	path := filepath.Join(t.TempDir(), "progress.cbor")
	_, err = executeCmd(t, f.app, "export", "-f", "cbor", "-o", path)
	require.NoError(t, err)
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	doc, err = export.Decode(data, export.FormatCBOR)
	require.NoError(t, err)
	assert.Equal(t, "hanon-1-60", doc.Statuses[0].ID)

	_, err = executeCmd(t, f.app, "export", "--format", "xml")
	require.ErrorIs(t, err, domain.ErrInvalidDomainValue)
}

func TestImportCmd_RoundTrip(t *testing.T) {
	src := testApp(t)
	ctx := context.Background()
	require.NoError(t, src.app.Practice.SetStatus(ctx, testUser, "hanon-1-60", domain.StatusMastered))
	_, err := src.app.Practice.RaiseMasteryBPM(ctx, testUser, arpShape, 88)
	require.NoError(t, err)

	path := filepath.Join(t.TempDir(), "progress.yaml")
	_, err = executeCmd(t, src.app, "export", "-o", path)
	require.NoError(t, err)

	dst := testApp(t)
	out, err := executeCmd(t, dst.app, "--user", "bob", "import", path)
	require.NoError(t, err)
	assert.Contains(t, out, "Restored 1 statuses and 1 mastery BPMs")

	bpm, err := dst.app.Practice.GetMasteryBPM(ctx, "bob", arpShape)
	require.NoError(t, err)
	assert.Equal(t, 88, bpm)

	_, err = executeCmd(t, dst.app, "import", filepath.Join(t.TempDir(), "missing.json"))
	require.Error(t, err)
}

func TestServeCmd(t *testing.T) {
	f := testApp(t)
	f.app.Addr = "127.0.0.1:9999"
	var gotAddr string
	f.app.Serve = func(_ context.Context, addr string) error {
		gotAddr = addr
		return nil
	}

	_, err := executeCmd(t, f.app, "serve")
	require.NoError(t, err)
	assert.Equal(t, "127.0.0.1:9999", gotAddr)

	_, err = executeCmd(t, f.app, "serve", "--addr", ":7000")
	require.NoError(t, err)
	assert.Equal(t, ":7000", gotAddr)
}

func TestVersionCmd(t *testing.T) {
	f := testApp(t)
	out, err := executeCmd(t, f.app, "version")
	require.NoError(t, err)
	assert.Equal(t, "etude 1.2.3\n", out)
}

func TestInteractiveCmds_RequireTerminal(t *testing.T) {
	f := testApp(t)
	_, err := executeCmd(t, f.app, "pick")
	require.ErrorIs(t, err, errNotInteractive)
	_, err = executeCmd(t, f.app, "timer")
	require.ErrorIs(t, err, errNotInteractive)
}
