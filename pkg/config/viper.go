package config

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/viper"

	"github.com/papercomputeco/arenito/pkg/dotdir"
)

// InitViper creates and returns a configured *viper.Viper.
// It sets defaults from NewDefaultConfig(), reads the config.toml file
// (if found via dotdir resolution), and binds environment variables
// with the ARENITO_ prefix.
//
// Config precedence (highest to lowest):
//  1. CLI flags (once bound via BindRegisteredFlags)
//  2. Environment variables (ARENITO_SERVER_LISTEN, ARENITO_PROVIDER_NAME, etc.)
//  3. config.toml file values
//  4. Defaults from NewDefaultConfig()
func InitViper(configDir string) (*viper.Viper, error) {
	v := viper.New()

	// 1. Register all defaults from NewDefaultConfig().
	setViperDefaults(v)

	// 2. Config file discovery via dotdir resolution.
	v.SetConfigName("config")
	v.SetConfigType("toml")

	ddm := dotdir.NewManager()
	target, err := ddm.Target(configDir)
	if err != nil {
		return nil, fmt.Errorf("resolving config dir: %w", err)
	}

	v.AddConfigPath(target)

	if err := v.ReadInConfig(); err != nil {
		// Config file not found errors are fine, defaults will apply.
		if !errors.As(err, &viper.ConfigFileNotFoundError{}) {
			return nil, fmt.Errorf("reading config: %w", err)
		}
	}

	// 3. Environment variables: ARENITO_SERVER_LISTEN, ARENITO_CONVERSATION_WINDOW, etc.
	v.SetEnvPrefix("ARENITO")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	return v, nil
}

// setViperDefaults registers defaults from NewDefaultConfig() into viper
// using dotted-key notation. This keeps defaults.go as the single source of truth.
func setViperDefaults(v *viper.Viper) {
	d := NewDefaultConfig()

	v.SetDefault("version", d.Version)

	// Server
	v.SetDefault("server.listen", d.Server.Listen)

	// Provider
	v.SetDefault("provider.name", d.Provider.Name)
	v.SetDefault("provider.model", d.Provider.Model)
	v.SetDefault("provider.base_url", d.Provider.BaseURL)
	v.SetDefault("provider.timeout", d.Provider.Timeout)

	// Generation
	v.SetDefault("generation.temperature", *d.Generation.Temperature)
	v.SetDefault("generation.top_p", *d.Generation.TopP)
	v.SetDefault("generation.top_k", *d.Generation.TopK)
	v.SetDefault("generation.max_output_tokens", d.Generation.MaxOutputTokens)

	// Conversation
	v.SetDefault("conversation.window", d.Conversation.Window)

	// Instruction
	v.SetDefault("instruction.path", d.Instruction.Path)
	v.SetDefault("instruction.watch", d.Instruction.Watch)

	// Client
	v.SetDefault("client.target", d.Client.Target)
	v.SetDefault("client.history_limit", d.Client.HistoryLimit)
}

// FromViper materializes the effective configuration from v, after flags,
// environment and file have been layered in.
func FromViper(v *viper.Viper) (*Config, error) {
	temperature := v.GetFloat64("generation.temperature")
	topP := v.GetFloat64("generation.top_p")
	topK := v.GetInt("generation.top_k")

	cfg := &Config{
		Version: v.GetInt("version"),
		Server: ServerConfig{
			Listen: v.GetString("server.listen"),
		},
		Provider: ProviderConfig{
			Name:    v.GetString("provider.name"),
			Model:   v.GetString("provider.model"),
			BaseURL: v.GetString("provider.base_url"),
			Timeout: v.GetString("provider.timeout"),
		},
		Generation: GenerationConfig{
			Temperature:     &temperature,
			TopP:            &topP,
			TopK:            &topK,
			MaxOutputTokens: v.GetInt("generation.max_output_tokens"),
		},
		Conversation: ConversationConfig{
			Window: v.GetInt("conversation.window"),
		},
		Instruction: InstructionConfig{
			Path:  v.GetString("instruction.path"),
			Watch: v.GetBool("instruction.watch"),
		},
		Client: ClientConfig{
			Target:       v.GetString("client.target"),
			HistoryLimit: v.GetInt("client.history_limit"),
		},
	}

	if _, err := cfg.ProviderTimeout(); err != nil {
		return nil, err
	}
	if cfg.Conversation.Window <= 0 {
		return nil, fmt.Errorf("invalid conversation.window %d: must be positive", cfg.Conversation.Window)
	}

	return cfg, nil
}
