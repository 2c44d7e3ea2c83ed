// Package logging builds the process logger.
package logging

import (
	"io"
	"os"
	"time"

	"github.com/alexanderramin/etude/internal/config"
	"github.com/mattn/go-isatty"
	"github.com/rs/zerolog"
)

// New returns a logger writing to w at cfg.Level. Format "auto" uses the
// console writer when w is a terminal and JSON otherwise. An unknown level
// falls back to info.
func New(cfg config.LogConfig, w io.Writer) zerolog.Logger {
	if w == nil {
		return zerolog.Nop()
	}
	level, err := zerolog.ParseLevel(cfg.Level)
	if err != nil || level == zerolog.NoLevel {
		level = zerolog.InfoLevel
	}

	out := w
	if useConsole(cfg.Format, w) {
		out = zerolog.ConsoleWriter{Out: w, TimeFormat: time.Kitchen, NoColor: !isTerminal(w)}
	}
	return zerolog.New(out).Level(level).With().Timestamp().Logger()
}

func useConsole(format string, w io.Writer) bool {
	switch format {
	case "console":
		return true
	case "json":
		return false
	default:
		return isTerminal(w)
	}
}

func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	if !ok {
		return false
	}
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}
