// Package completion defines the provider-agnostic contract for turning an
// assembled prompt into answer text, together with its error taxonomy.
package completion

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/papercomputeco/arenito/pkg/prompt"
)

// ErrEmptyCompletion is returned when the provider call succeeded but the
// answer was empty or whitespace only.
var ErrEmptyCompletion = errors.New("provider returned an empty completion")

// Provider issues a single, blocking completion call. Implementations must be
// safe for concurrent use and must not serialize independent calls.
type Provider interface {
	// Name returns the canonical provider name (e.g. "gemini", "ollama").
	Name() string

	// RequiresCredential reports whether Request.APIKey must be set.
	RequiresCredential() bool

	// Complete sends the prompt and returns the trimmed answer text.
	// Errors are either *ProviderError or wrap ErrEmptyCompletion.
	Complete(ctx context.Context, req Request) (string, error)
}

// Request is one completion call.
type Request struct {
	APIKey  string
	Prompt  prompt.Prompt
	Options Options
}

// Options are the generation parameters forwarded to the provider.
// Nil pointers leave the provider default in place.
type Options struct {
	Model           string
	Temperature     *float64
	TopP            *float64
	TopK            *int
	MaxOutputTokens int
}

// ProviderError reports a failed provider call: transport failure, a
// malformed response, or an error the provider returned.
type ProviderError struct {
	Provider string
	Message  string
	Err      error
}

func (e *ProviderError) Error() string {
	return fmt.Sprintf("%s: %s", e.Provider, e.Message)
}

func (e *ProviderError) Unwrap() error {
	return e.Err
}

// NewProviderError wraps err as a ProviderError for the named provider. The
// diagnostic message is taken from err.
func NewProviderError(provider string, err error) *ProviderError {
	return &ProviderError{
		Provider: provider,
		Message:  err.Error(),
		Err:      err,
	}
}

// Finalize trims answer text and maps blank answers to ErrEmptyCompletion.
func Finalize(provider, text string) (string, error) {
	answer := strings.TrimSpace(text)
	if answer == "" {
		return "", fmt.Errorf("%s: %w", provider, ErrEmptyCompletion)
	}
	return answer, nil
}

// Classify returns err unchanged when it already belongs to the completion
// taxonomy, and wraps it as a ProviderError otherwise.
func Classify(provider string, err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, ErrEmptyCompletion) {
		return err
	}
	var perr *ProviderError
	if errors.As(err, &perr) {
		return err
	}
	return NewProviderError(provider, err)
}
