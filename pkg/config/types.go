package config

import (
	"fmt"
	"strconv"
	"time"
)

// Config represents the persistent arenito configuration stored as
// config.toml in the .arenito/ directory. The TOML layout uses sections for
// logical grouping.
type Config struct {
	Version      int                `toml:"version"`
	Server       ServerConfig       `toml:"server"`
	Provider     ProviderConfig     `toml:"provider"`
	Generation   GenerationConfig   `toml:"generation"`
	Conversation ConversationConfig `toml:"conversation"`
	Instruction  InstructionConfig  `toml:"instruction"`
	Client       ClientConfig       `toml:"client"`
}

// ServerConfig holds API server settings.
type ServerConfig struct {
	Listen string `toml:"listen,omitempty"`
}

// ProviderConfig selects and reaches the completion provider.
type ProviderConfig struct {
	Name    string `toml:"name,omitempty"`
	Model   string `toml:"model,omitempty"`
	BaseURL string `toml:"base_url,omitempty"`

	// Timeout is a Go duration string bounding one provider call.
	Timeout string `toml:"timeout,omitempty"`
}

// GenerationConfig holds the sampling parameters sent with every turn.
// Nil values fall back to the defaults, so an explicit 0 survives a load.
type GenerationConfig struct {
	Temperature     *float64 `toml:"temperature,omitempty"`
	TopP            *float64 `toml:"top_p,omitempty"`
	TopK            *int     `toml:"top_k,omitempty"`
	MaxOutputTokens int      `toml:"max_output_tokens,omitempty"`
}

// ConversationConfig bounds the caller-supplied history.
type ConversationConfig struct {
	Window int `toml:"window,omitempty"`
}

// InstructionConfig overrides the embedded behavioral instruction.
type InstructionConfig struct {
	Path  string `toml:"path,omitempty"`
	Watch bool   `toml:"watch,omitempty"`
}

// ClientConfig holds settings for CLI commands that connect to a running
// arenito server (arenito chat, arenito catalog).
type ClientConfig struct {
	Target       string `toml:"target,omitempty"`
	HistoryLimit int    `toml:"history_limit,omitempty"`
}

// configKeyInfo maps a user-facing dotted key name to a getter and setter on *Config.
type configKeyInfo struct {
	get func(c *Config) string
	set func(c *Config, v string) error
}

func formatFloat(f *float64) string {
	if f == nil {
		return ""
	}
	return strconv.FormatFloat(*f, 'f', -1, 64)
}

func parseFloat(key, v string) (*float64, error) {
	f, err := strconv.ParseFloat(v, 64)
	if err != nil {
		return nil, fmt.Errorf("invalid value for %s: %w", key, err)
	}
	return &f, nil
}

func formatInt(n int) string {
	if n == 0 {
		return ""
	}
	return strconv.Itoa(n)
}

func parsePositiveInt(key, v string) (int, error) {
	n, err := strconv.Atoi(v)
	if err != nil {
		return 0, fmt.Errorf("invalid value for %s: %w", key, err)
	}
	if n <= 0 {
		return 0, fmt.Errorf("invalid value for %s: must be positive", key)
	}
	return n, nil
}

// configKeys is the authoritative map of all supported config keys.
// Keys use dotted notation matching the TOML section structure.
var configKeys = map[string]configKeyInfo{
	"server.listen": {
		get: func(c *Config) string { return c.Server.Listen },
		set: func(c *Config, v string) error { c.Server.Listen = v; return nil },
	},
	"provider.name": {
		get: func(c *Config) string { return c.Provider.Name },
		set: func(c *Config, v string) error { c.Provider.Name = v; return nil },
	},
	"provider.model": {
		get: func(c *Config) string { return c.Provider.Model },
		set: func(c *Config, v string) error { c.Provider.Model = v; return nil },
	},
	"provider.base_url": {
		get: func(c *Config) string { return c.Provider.BaseURL },
		set: func(c *Config, v string) error { c.Provider.BaseURL = v; return nil },
	},
	"provider.timeout": {
		get: func(c *Config) string { return c.Provider.Timeout },
		set: func(c *Config, v string) error {
			if _, err := time.ParseDuration(v); err != nil {
				return fmt.Errorf("invalid value for provider.timeout: %w", err)
			}
			c.Provider.Timeout = v
			return nil
		},
	},
	"generation.temperature": {
		get: func(c *Config) string { return formatFloat(c.Generation.Temperature) },
		set: func(c *Config, v string) error {
			f, err := parseFloat("generation.temperature", v)
			if err != nil {
				return err
			}
			c.Generation.Temperature = f
			return nil
		},
	},
	"generation.top_p": {
		get: func(c *Config) string { return formatFloat(c.Generation.TopP) },
		set: func(c *Config, v string) error {
			f, err := parseFloat("generation.top_p", v)
			if err != nil {
				return err
			}
			c.Generation.TopP = f
			return nil
		},
	},
	"generation.top_k": {
		get: func(c *Config) string {
			if c.Generation.TopK == nil {
				return ""
			}
			return strconv.Itoa(*c.Generation.TopK)
		},
		set: func(c *Config, v string) error {
			n, err := parsePositiveInt("generation.top_k", v)
			if err != nil {
				return err
			}
			c.Generation.TopK = &n
			return nil
		},
	},
	"generation.max_output_tokens": {
		get: func(c *Config) string { return formatInt(c.Generation.MaxOutputTokens) },
		set: func(c *Config, v string) error {
			n, err := parsePositiveInt("generation.max_output_tokens", v)
			if err != nil {
				return err
			}
			c.Generation.MaxOutputTokens = n
			return nil
		},
	},
	"conversation.window": {
		get: func(c *Config) string { return formatInt(c.Conversation.Window) },
		set: func(c *Config, v string) error {
			n, err := parsePositiveInt("conversation.window", v)
			if err != nil {
				return err
			}
			c.Conversation.Window = n
			return nil
		},
	},
	"instruction.path": {
		get: func(c *Config) string { return c.Instruction.Path },
		set: func(c *Config, v string) error { c.Instruction.Path = v; return nil },
	},
	"instruction.watch": {
		get: func(c *Config) string { return strconv.FormatBool(c.Instruction.Watch) },
		set: func(c *Config, v string) error {
			b, err := strconv.ParseBool(v)
			if err != nil {
				return fmt.Errorf("invalid value for instruction.watch: %w", err)
			}
			c.Instruction.Watch = b
			return nil
		},
	},
	"client.target": {
		get: func(c *Config) string { return c.Client.Target },
		set: func(c *Config, v string) error { c.Client.Target = v; return nil },
	},
	"client.history_limit": {
		get: func(c *Config) string { return formatInt(c.Client.HistoryLimit) },
		set: func(c *Config, v string) error {
			n, err := parsePositiveInt("client.history_limit", v)
			if err != nil {
				return err
			}
			c.Client.HistoryLimit = n
			return nil
		},
	},
}

// ProviderTimeout parses Provider.Timeout. An empty value is zero, which
// providers treat as their own default.
func (c *Config) ProviderTimeout() (time.Duration, error) {
	if c.Provider.Timeout == "" {
		return 0, nil
	}
	d, err := time.ParseDuration(c.Provider.Timeout)
	if err != nil {
		return 0, fmt.Errorf("invalid provider.timeout %q: %w", c.Provider.Timeout, err)
	}
	return d, nil
}
