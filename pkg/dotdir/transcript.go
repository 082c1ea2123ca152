package dotdir

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/papercomputeco/arenito/pkg/conversation"
)

const (
	transcriptFile = "transcript.json"
)

// Transcript is the chat client's saved conversation, oldest turn first.
type Transcript struct {
	Target string               `json:"target,omitempty"`
	Turns  conversation.History `json:"turns"`
}

// LoadTranscript loads .arenito/transcript.json.
// Returns nil, nil if no transcript has been saved.
func (m *Manager) LoadTranscript(overrideDir string) (*Transcript, error) {
	dir, err := m.Target(overrideDir)
	if err != nil {
		return nil, err
	}

	data, err := os.ReadFile(filepath.Join(dir, transcriptFile))
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, nil
		}
		return nil, fmt.Errorf("reading transcript: %w", err)
	}

	t := &Transcript{}
	if err := json.Unmarshal(data, t); err != nil {
		return nil, fmt.Errorf("parsing transcript: %w", err)
	}

	return t, nil
}

// SaveTranscript writes the transcript with 0600 permissions.
func (m *Manager) SaveTranscript(t *Transcript, overrideDir string) error {
	if t == nil {
		return errors.New("cannot save nil transcript")
	}

	dir, err := m.Target(overrideDir)
	if err != nil {
		return err
	}

	data, err := json.MarshalIndent(t, "", "  ")
	if err != nil {
		return fmt.Errorf("marshaling transcript: %w", err)
	}

	if err := os.WriteFile(filepath.Join(dir, transcriptFile), data, 0o600); err != nil {
		return fmt.Errorf("writing transcript: %w", err)
	}

	return nil
}

// ClearTranscript removes the saved transcript.
// Returns nil if there was none.
func (m *Manager) ClearTranscript(overrideDir string) error {
	dir, err := m.Target(overrideDir)
	if err != nil {
		return err
	}

	if err := os.Remove(filepath.Join(dir, transcriptFile)); err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil
		}
		return fmt.Errorf("removing transcript: %w", err)
	}

	return nil
}
