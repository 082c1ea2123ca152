package credentials

import (
	"os"
	"strings"
)

// Resolver looks up a provider's API key at call time: the provider's
// environment variable first, then credentials.toml. Nothing is cached, so
// a key exported or stored after startup is picked up by the next call.
type Resolver struct {
	manager *Manager
	getenv  func(string) string
}

// NewResolver creates a Resolver. A nil manager resolves from the
// environment only.
func NewResolver(manager *Manager) *Resolver {
	return &Resolver{
		manager: manager,
		getenv:  os.Getenv,
	}
}

// WithEnv replaces the environment lookup, for tests.
func (r *Resolver) WithEnv(getenv func(string) string) *Resolver {
	r.getenv = getenv
	return r
}

// Resolve returns the API key for provider or "" when none is configured.
// Whitespace-only values count as unset.
func (r *Resolver) Resolve(provider string) (string, error) {
	if envVar := EnvVarForProvider(provider); envVar != "" {
		if key := strings.TrimSpace(r.getenv(envVar)); key != "" {
			return key, nil
		}
	}

	if r.manager == nil {
		return "", nil
	}

	key, err := r.manager.GetKey(provider)
	if err != nil {
		return "", err
	}

	return strings.TrimSpace(key), nil
}
