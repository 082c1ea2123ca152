package prompt

import (
	"context"
	_ "embed"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"sync/atomic"

	"github.com/fsnotify/fsnotify"
)

//go:embed instruction.md
var defaultInstruction string

// ErrEmptyInstruction is returned when an instruction asset has no content.
var ErrEmptyInstruction = errors.New("instruction is empty")

// Source provides the current behavioral instruction. Implementations must be
// safe for concurrent use.
type Source interface {
	Instruction() string
}

// Static is a Source that never changes.
type Static string

// Instruction returns s.
func (s Static) Instruction() string { return string(s) }

// Default returns the instruction shipped with the binary.
func Default() Static {
	return Static(defaultInstruction)
}

// FileSource reads the instruction from a file on disk and can follow edits
// to it with Watch.
type FileSource struct {
	path    string
	current atomic.Pointer[string]
	logger  *slog.Logger
}

// NewFileSource loads the instruction at path. The file must exist and be
// non-empty.
func NewFileSource(path string, logger *slog.Logger) (*FileSource, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, fmt.Errorf("resolving instruction path: %w", err)
	}

	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}

	fs := &FileSource{
		path:   abs,
		logger: logger,
	}

	text, err := readInstruction(abs)
	if err != nil {
		return nil, err
	}
	fs.current.Store(&text)

	return fs, nil
}

// Instruction returns the last successfully loaded instruction.
func (fs *FileSource) Instruction() string {
	return *fs.current.Load()
}

// Path returns the absolute path of the watched file.
func (fs *FileSource) Path() string {
	return fs.path
}

// Reload re-reads the file. On failure the previous instruction is kept.
func (fs *FileSource) Reload() error {
	text, err := readInstruction(fs.path)
	if err != nil {
		return err
	}
	fs.current.Store(&text)
	return nil
}

// Watch reloads the instruction whenever the file is written or replaced,
// until ctx is done. The parent directory is watched so editors that
// rename-over the file are followed.
func (fs *FileSource) Watch(ctx context.Context) error {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("creating instruction watcher: %w", err)
	}

	if err := watcher.Add(filepath.Dir(fs.path)); err != nil {
		_ = watcher.Close()
		return fmt.Errorf("watching %s: %w", filepath.Dir(fs.path), err)
	}

	go func() {
		defer watcher.Close()

		for {
			select {
			case <-ctx.Done():
				return

			case event, ok := <-watcher.Events:
				if !ok {
					return
				}
				if filepath.Clean(event.Name) != fs.path {
					continue
				}
				if event.Op&(fsnotify.Write|fsnotify.Create) == 0 {
					continue
				}

				if err := fs.Reload(); err != nil {
					fs.logger.Warn("keeping previous instruction",
						"path", fs.path,
						"error", err,
					)
					continue
				}
				fs.logger.Info("instruction reloaded", "path", fs.path)

			case err, ok := <-watcher.Errors:
				if !ok {
					return
				}
				fs.logger.Warn("instruction watcher error", "error", err)
			}
		}
	}()

	return nil
}

func readInstruction(path string) (string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("reading instruction: %w", err)
	}

	if strings.TrimSpace(string(data)) == "" {
		return "", fmt.Errorf("%s: %w", path, ErrEmptyInstruction)
	}

	return string(data), nil
}
