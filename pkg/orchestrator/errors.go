package orchestrator

import (
	"fmt"
)

// ConfigurationError reports that the provider cannot be called because its
// credential is not configured. No provider call is made when it is returned.
type ConfigurationError struct {
	Provider string

	// EnvVar is the environment variable that would supply the credential.
	EnvVar string

	// Err is set when resolving the credential itself failed.
	Err error
}

func (e *ConfigurationError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("resolving %s credential: %v", e.Provider, e.Err)
	}
	if e.EnvVar != "" {
		return fmt.Sprintf("missing %s credential: set %s or run 'arenito auth %s'", e.Provider, e.EnvVar, e.Provider)
	}
	return fmt.Sprintf("missing %s credential", e.Provider)
}

func (e *ConfigurationError) Unwrap() error {
	return e.Err
}
