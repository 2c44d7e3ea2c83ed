package main

import (
	"context"
	"database/sql"
	"fmt"
	"os"

	"github.com/alexanderramin/etude/internal/cli"
	"github.com/alexanderramin/etude/internal/config"
	"github.com/alexanderramin/etude/internal/db"
	"github.com/alexanderramin/etude/internal/export"
	"github.com/alexanderramin/etude/internal/grade"
	"github.com/alexanderramin/etude/internal/httpapi"
	"github.com/alexanderramin/etude/internal/identity"
	"github.com/alexanderramin/etude/internal/logging"
	"github.com/alexanderramin/etude/internal/mastery"
	"github.com/alexanderramin/etude/internal/repository"
	"github.com/alexanderramin/etude/internal/service"
	"github.com/mattn/go-isatty"
)

var version = "dev"

func main() {
	var database *sql.DB
	defer func() {
		if database != nil {
			database.Close()
		}
	}()

	app := &cli.App{Version: version}
	app.IsInteractive = func() bool {
		return isatty.IsTerminal(os.Stdin.Fd()) || isatty.IsCygwinTerminal(os.Stdin.Fd())
	}
	app.Setup = func(ctx context.Context, app *cli.App, opts cli.Options) error {
		conn, err := wire(ctx, app, opts)
		database = conn
		return err
	}

	if err := cli.NewRootCmd(app).Execute(); err != nil {
		if database != nil {
			database.Close()
		}
		os.Exit(1)
	}
}

func configPath(opts cli.Options) string {
	if opts.ConfigPath != "" {
		return opts.ConfigPath
	}
	if p := os.Getenv("ETUDE_CONFIG"); p != "" {
		return p
	}
	return config.DefaultPath()
}

// wire loads configuration and connects every service of app.
func wire(ctx context.Context, app *cli.App, opts cli.Options) (*sql.DB, error) {
	cfg, err := config.LoadConfig(configPath(opts))
	if err != nil {
		return nil, err
	}
	if opts.DBPath != "" {
		cfg.DB.Driver = db.DriverSQLite
		cfg.DB.Path = opts.DBPath
	}
	logger := logging.New(cfg.Log, os.Stderr)

	database, dialect, err := db.Open(ctx, cfg.DB.Driver, cfg.Target())
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}
	conn := dialect.Bind(database)
	if err := db.EnsureIdentitySchema(ctx, conn, identity.SchemaVersion); err != nil {
		return database, err
	}
	logger.Debug().Str("driver", dialect.String()).Msg("database ready")

	uow := db.NewUnitOfWork(database, dialect)
	stores := service.NewStoreRegistry(mastery.Backend{
		Statuses:  repository.NewSQLStatusRepo(conn),
		BPMs:      repository.NewSQLBPMRepo(conn),
		Resetter:  repository.NewSQLFamilyResetter(uow),
		Snapshots: repository.NewSQLSnapshotRecorder(uow),
	}, mastery.WithSnapshotWindow(cfg.SnapshotWindow()))
	observer := service.NewLogUseCaseObserver(logger)

	app.Practice = service.NewPracticeService(stores, observer)
	app.Sessions = service.NewSessionLogService(stores, repository.NewSQLPracticeLogRepo(conn), observer)
	app.Progress = service.NewProgressService(stores, grade.NewCurriculum())
	app.Exporter = export.NewExporter(app.Practice, app.Sessions, app.Progress)
	app.User = cfg.User
	app.Addr = cfg.HTTP.Addr

	server := httpapi.NewServer(httpapi.Services{
		Practice: app.Practice,
		Sessions: app.Sessions,
		Progress: app.Progress,
	}, logger, app.Version)
	app.Serve = server.ListenAndServe

	return database, nil
}
