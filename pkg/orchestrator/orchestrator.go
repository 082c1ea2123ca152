// Package orchestrator runs one chat turn: it resolves the provider
// credential, bounds the caller's history, assembles the prompt and calls
// the completion provider.
package orchestrator

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/papercomputeco/arenito/pkg/completion"
	"github.com/papercomputeco/arenito/pkg/conversation"
	"github.com/papercomputeco/arenito/pkg/credentials"
	"github.com/papercomputeco/arenito/pkg/logger"
	"github.com/papercomputeco/arenito/pkg/prompt"
	"github.com/papercomputeco/arenito/pkg/utils"
)

// CredentialResolver returns the API key for a provider, or "" when none is
// configured. It is consulted on every turn.
type CredentialResolver interface {
	Resolve(provider string) (string, error)
}

// Config wires an Orchestrator.
type Config struct {
	Provider    completion.Provider
	Credentials CredentialResolver

	// Instruction supplies the behavioral instruction. Nil uses the
	// embedded default.
	Instruction prompt.Source

	// Window is the number of most recent well-formed turns forwarded.
	// Zero uses conversation.DefaultWindow.
	Window int

	Options completion.Options

	// Now overrides the clock, for tests.
	Now func() time.Time

	Logger *slog.Logger
}

// Answer is the normalized result of a turn.
type Answer struct {
	Text      string
	Timestamp time.Time
}

// Orchestrator is safe for concurrent use. It holds no per-turn state.
type Orchestrator struct {
	provider    completion.Provider
	credentials CredentialResolver
	instruction prompt.Source
	window      int
	options     completion.Options
	now         func() time.Time
	logger      *slog.Logger
}

// New creates an Orchestrator.
func New(cfg Config) (*Orchestrator, error) {
	if cfg.Provider == nil {
		return nil, errors.New("orchestrator requires a completion provider")
	}

	o := &Orchestrator{
		provider:    cfg.Provider,
		credentials: cfg.Credentials,
		instruction: cfg.Instruction,
		window:      cfg.Window,
		options:     cfg.Options,
		now:         cfg.Now,
		logger:      cfg.Logger,
	}
	if o.instruction == nil {
		o.instruction = prompt.Default()
	}
	if o.window == 0 {
		o.window = conversation.DefaultWindow
	}
	if o.now == nil {
		o.now = time.Now
	}
	if o.logger == nil {
		o.logger = logger.Nop()
	}

	return o, nil
}

// Provider returns the name of the configured provider.
func (o *Orchestrator) Provider() string {
	return o.provider.Name()
}

// Window returns the configured history window.
func (o *Orchestrator) Window() int {
	return o.window
}

// ProcessTurn answers message given the caller's history. Errors are a
// *ConfigurationError, a *completion.ProviderError, or wrap
// completion.ErrEmptyCompletion.
func (o *Orchestrator) ProcessTurn(ctx context.Context, message string, history conversation.History) (Answer, error) {
	name := o.provider.Name()

	var apiKey string
	if o.provider.RequiresCredential() {
		key, err := o.resolveCredential(name)
		if err != nil {
			return Answer{}, err
		}
		apiKey = key
	}

	window := conversation.Sanitize(history, o.window)
	p := prompt.Assemble(o.instruction.Instruction(), window, message)

	o.logger.Debug("processing turn",
		"provider", name,
		"history_in", len(history),
		"history_kept", len(window),
		"message", utils.Truncate(message, 80),
	)

	start := o.now()
	text, err := o.provider.Complete(ctx, completion.Request{
		APIKey:  apiKey,
		Prompt:  p,
		Options: o.options,
	})
	if err != nil {
		return Answer{}, completion.Classify(name, err)
	}

	// Providers already trim; the check covers implementations that don't.
	text, err = completion.Finalize(name, text)
	if err != nil {
		return Answer{}, err
	}

	at := o.now()
	if at.Before(start) {
		at = start
	}

	o.logger.Info("turn answered",
		"provider", name,
		"duration", at.Sub(start),
		"answer_len", len(text),
	)

	return Answer{Text: text, Timestamp: at}, nil
}

func (o *Orchestrator) resolveCredential(provider string) (string, error) {
	envVar := credentials.EnvVarForProvider(provider)
	if o.credentials == nil {
		return "", &ConfigurationError{Provider: provider, EnvVar: envVar}
	}

	key, err := o.credentials.Resolve(provider)
	if err != nil {
		return "", &ConfigurationError{Provider: provider, EnvVar: envVar, Err: err}
	}
	if key == "" {
		return "", &ConfigurationError{Provider: provider, EnvVar: envVar}
	}

	return key, nil
}
