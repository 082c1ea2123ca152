package logger

import (
	"io"
	"log/slog"
)

// Format selects the handler New builds.
type Format int

const (
	// FormatText is slog's key=value handler.
	FormatText Format = iota
	// FormatJSON is slog's JSON handler, one record per line.
	FormatJSON
	// FormatConsole is the colorized charmbracelet/log handler for terminals.
	FormatConsole
)

// Option configures a logger created with New.
type Option func(*options)

type options struct {
	level  slog.Level
	format Format
	source bool
	out    io.Writer
}

// WithFormat picks the output format. The default is FormatText.
func WithFormat(f Format) Option {
	return func(o *options) { o.format = f }
}

// WithDebug lowers the level to Debug.
func WithDebug(debug bool) Option {
	return func(o *options) {
		o.level = slog.LevelInfo
		if debug {
			o.level = slog.LevelDebug
		}
	}
}

// WithWriter sends output to w instead of os.Stdout.
func WithWriter(w io.Writer) Option {
	return func(o *options) { o.out = w }
}

// WithSource records the caller's file:line.
func WithSource(source bool) Option {
	return func(o *options) { o.source = source }
}
