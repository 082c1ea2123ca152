// Package credentials stores completion provider API keys in
// .arenito/credentials.toml and resolves them for the chat service.
package credentials

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/BurntSushi/toml"

	"github.com/papercomputeco/arenito/pkg/dotdir"
)

const (
	fileName    = "credentials.toml"
	fileVersion = 0
)

// envVars is the set of providers that need a key, and the environment
// variable that overrides the stored one.
var envVars = map[string]string{
	"gemini": "GEMINI_API_KEY",
}

// Manager reads and writes a single credentials.toml.
type Manager struct {
	path string
}

// NewManager resolves the .arenito/ directory (override first) and returns
// a Manager for the credentials file inside it.
func NewManager(override string) (*Manager, error) {
	dir, err := dotdir.NewManager().Target(override)
	if err != nil {
		return nil, err
	}
	return &Manager{path: filepath.Join(dir, fileName)}, nil
}

// Path is the absolute credentials.toml path.
func (m *Manager) Path() string {
	return m.path
}

// Read parses credentials.toml. A missing file reads as empty.
func (m *Manager) Read() (*File, error) {
	f := &File{Version: fileVersion}

	data, err := os.ReadFile(m.path)
	switch {
	case errors.Is(err, os.ErrNotExist):
	case err != nil:
		return nil, fmt.Errorf("reading credentials: %w", err)
	default:
		if err := toml.Unmarshal(data, f); err != nil {
			return nil, fmt.Errorf("parsing credentials: %w", err)
		}
	}

	if f.Keys == nil {
		f.Keys = map[string]Key{}
	}
	return f, nil
}

// Write replaces credentials.toml; the file is only readable by its owner.
func (m *Manager) Write(f *File) error {
	if f == nil {
		return errors.New("cannot save nil credentials")
	}

	var buf bytes.Buffer
	if err := toml.NewEncoder(&buf).Encode(f); err != nil {
		return fmt.Errorf("encoding credentials: %w", err)
	}
	if err := os.WriteFile(m.path, buf.Bytes(), 0o600); err != nil {
		return fmt.Errorf("writing credentials: %w", err)
	}
	return nil
}

func (m *Manager) update(fn func(keys map[string]Key)) error {
	f, err := m.Read()
	if err != nil {
		return err
	}
	fn(f.Keys)
	return m.Write(f)
}

// SetKey stores key for provider, replacing any previous one.
func (m *Manager) SetKey(provider, key string) error {
	return m.update(func(keys map[string]Key) {
		keys[provider] = Key{APIKey: key}
	})
}

// RemoveKey drops the stored key for provider. Removing an absent key is
// not an error.
func (m *Manager) RemoveKey(provider string) error {
	return m.update(func(keys map[string]Key) {
		delete(keys, provider)
	})
}

// GetKey returns the stored key for provider, or "" when there is none.
func (m *Manager) GetKey(provider string) (string, error) {
	f, err := m.Read()
	if err != nil {
		return "", err
	}
	return f.Keys[provider].APIKey, nil
}

// Entries lists the stored keys sorted by provider, masked for display.
func (m *Manager) Entries() ([]Entry, error) {
	f, err := m.Read()
	if err != nil {
		return nil, err
	}

	entries := make([]Entry, 0, len(f.Keys))
	for provider, k := range f.Keys {
		entries = append(entries, Entry{
			Provider: provider,
			EnvVar:   envVars[provider],
			Masked:   Mask(k.APIKey),
		})
	}
	slices.SortFunc(entries, func(a, b Entry) int {
		return strings.Compare(a.Provider, b.Provider)
	})
	return entries, nil
}

// Mask hides all but the first and last four characters of key. Keys too
// short to keep anything readable are fully masked.
func Mask(key string) string {
	if len(key) <= 8 {
		return strings.Repeat("*", len(key))
	}
	return key[:4] + strings.Repeat("*", len(key)-8) + key[len(key)-4:]
}

// EnvVarForProvider returns the environment variable that carries the
// provider's key, or "" for providers that need none.
func EnvVarForProvider(provider string) string {
	return envVars[provider]
}

// SupportedProviders returns the sorted names of providers that take a key.
func SupportedProviders() []string {
	names := make([]string, 0, len(envVars))
	for name := range envVars {
		names = append(names, name)
	}
	slices.Sort(names)
	return names
}

// IsSupportedProvider reports whether provider takes a stored key.
func IsSupportedProvider(provider string) bool {
	_, ok := envVars[provider]
	return ok
}
