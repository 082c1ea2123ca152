// Package providers builds completion providers by name.
package providers

import (
	"fmt"
	"net/http"
	"time"

	"github.com/papercomputeco/arenito/pkg/completion"
	"github.com/papercomputeco/arenito/pkg/completion/gemini"
	"github.com/papercomputeco/arenito/pkg/completion/ollama"
)

// Supported provider names
const (
	Gemini = gemini.Name
	Ollama = ollama.Name
)

// Config is the provider-independent construction input.
type Config struct {
	BaseURL    string
	Timeout    time.Duration
	HTTPClient *http.Client
}

// SupportedProviders returns the list of all supported provider names.
func SupportedProviders() []string {
	return []string{Gemini, Ollama}
}

// New creates the provider registered under name.
// Returns an error if the name is not recognized.
func New(name string, cfg Config) (completion.Provider, error) {
	switch name {
	case Gemini:
		return gemini.New(gemini.Config{
			BaseURL:    cfg.BaseURL,
			Timeout:    cfg.Timeout,
			HTTPClient: cfg.HTTPClient,
		}), nil
	case Ollama:
		return ollama.New(ollama.Config{
			BaseURL:    cfg.BaseURL,
			Timeout:    cfg.Timeout,
			HTTPClient: cfg.HTTPClient,
		}), nil
	default:
		return nil, fmt.Errorf("unknown provider: %q (supported: %v)", name, SupportedProviders())
	}
}
