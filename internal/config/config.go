// Package config loads etude's settings: defaults, then an optional YAML
// file, then ETUDE_* environment overrides.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/alexanderramin/etude/internal/db"
	"gopkg.in/yaml.v3"
)

type DBConfig struct {
	// Driver is "sqlite" or "postgres".
	Driver string `yaml:"driver"`
	// Path is the SQLite file, used when Driver is sqlite.
	Path string `yaml:"path"`
	// DSN is the connection string, used when Driver is postgres.
	DSN string `yaml:"dsn"`
}

type LogConfig struct {
	Level string `yaml:"level"`
	// Format is "auto", "console" or "json". Auto picks console on a TTY.
	Format string `yaml:"format"`
}

type HTTPConfig struct {
	Addr string `yaml:"addr"`
}

type Config struct {
	DB               DBConfig   `yaml:"db"`
	Log              LogConfig  `yaml:"log"`
	HTTP             HTTPConfig `yaml:"http"`
	User             string     `yaml:"user"`
	SnapshotWindowMs int        `yaml:"snapshot_window_ms"`
}

// Default returns the built-in configuration. The SQLite file lives under
// ~/.etude unless the home directory cannot be resolved.
func Default() Config {
	path := "etude.db"
	if home, err := os.UserHomeDir(); err == nil {
		path = filepath.Join(home, ".etude", "etude.db")
	}
	return Config{
		DB:               DBConfig{Driver: db.DriverSQLite, Path: path},
		Log:              LogConfig{Level: "info", Format: "auto"},
		HTTP:             HTTPConfig{Addr: "127.0.0.1:8080"},
		SnapshotWindowMs: 1000,
	}
}

// SnapshotWindow is the snapshot debounce window as a duration.
func (c Config) SnapshotWindow() time.Duration {
	return time.Duration(c.SnapshotWindowMs) * time.Millisecond
}

// Target returns the driver-specific open target: the file path for SQLite
// or the DSN for Postgres.
func (c Config) Target() string {
	if c.DB.Driver == db.DriverPostgres {
		return c.DB.DSN
	}
	return c.DB.Path
}

func (c Config) Validate() error {
	switch c.DB.Driver {
	case db.DriverSQLite:
		if c.DB.Path == "" {
			return errors.New("config: db.path is required for sqlite")
		}
	case db.DriverPostgres:
		if c.DB.DSN == "" {
			return errors.New("config: db.dsn is required for postgres")
		}
	default:
		return fmt.Errorf("config: unknown db driver %q", c.DB.Driver)
	}
	switch c.Log.Format {
	case "auto", "console", "json":
	default:
		return fmt.Errorf("config: unknown log format %q", c.Log.Format)
	}
	if c.SnapshotWindowMs <= 0 {
		return fmt.Errorf("config: snapshot_window_ms must be positive, got %d", c.SnapshotWindowMs)
	}
	return nil
}

// LoadConfig reads path (if non-empty) over the defaults and applies
// environment overrides. A missing file at the default location is not an
// error; a missing file named explicitly is.
func LoadConfig(path string) (Config, error) {
	cfg := Default()
	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return Config{}, fmt.Errorf("reading config: %w", err)
		}
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return Config{}, fmt.Errorf("parsing config %s: %w", path, err)
		}
	}

	if err := applyEnv(&cfg); err != nil {
		return Config{}, err
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func applyEnv(cfg *Config) error {
	if v := os.Getenv("ETUDE_DB"); v != "" {
		cfg.DB.Path = v
	}
	if v := os.Getenv("ETUDE_DB_DRIVER"); v != "" {
		cfg.DB.Driver = v
	}
	if v := os.Getenv("ETUDE_DB_DSN"); v != "" {
		cfg.DB.DSN = v
	}
	if v := os.Getenv("ETUDE_USER"); v != "" {
		cfg.User = v
	}
	if v := os.Getenv("ETUDE_ADDR"); v != "" {
		cfg.HTTP.Addr = v
	}
	if v := os.Getenv("ETUDE_LOG_LEVEL"); v != "" {
		cfg.Log.Level = v
	}
	if v := os.Getenv("ETUDE_LOG_FORMAT"); v != "" {
		cfg.Log.Format = v
	}
	if v := os.Getenv("ETUDE_SNAPSHOT_WINDOW_MS"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n <= 0 {
			return fmt.Errorf("config: ETUDE_SNAPSHOT_WINDOW_MS must be a positive integer, got %q", v)
		}
		cfg.SnapshotWindowMs = n
	}
	return nil
}

// DefaultPath returns ~/.etude/config.yaml when it exists, else "".
func DefaultPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	p := filepath.Join(home, ".etude", "config.yaml")
	if _, err := os.Stat(p); err != nil {
		return ""
	}
	return p
}
