// Package logger builds the *slog.Logger used across arenito. Services log
// JSON or plain text; interactive commands log through charmbracelet/log.
package logger

import (
	"log/slog"
	"os"

	charmlog "github.com/charmbracelet/log"
)

// New creates a *slog.Logger from the given options. With no options it
// writes Info level text to os.Stdout.
func New(opts ...Option) *slog.Logger {
	o := options{level: slog.LevelInfo, out: os.Stdout}
	for _, opt := range opts {
		opt(&o)
	}
	if o.out == nil {
		o.out = os.Stdout
	}

	if o.format == FormatConsole {
		level := charmlog.InfoLevel
		if o.level <= slog.LevelDebug {
			level = charmlog.DebugLevel
		}
		return slog.New(charmlog.NewWithOptions(o.out, charmlog.Options{
			Level:           level,
			ReportTimestamp: true,
			ReportCaller:    o.source,
		}))
	}

	ho := &slog.HandlerOptions{Level: o.level, AddSource: o.source}
	if o.format == FormatJSON {
		return slog.New(slog.NewJSONHandler(o.out, ho))
	}
	return slog.New(slog.NewTextHandler(o.out, ho))
}

// Nop returns a logger that discards everything.
func Nop() *slog.Logger {
	return slog.New(slog.DiscardHandler)
}
