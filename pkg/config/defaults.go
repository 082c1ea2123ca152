package config

const (
	defaultListen = ":8000"

	defaultProvider = "gemini"
	defaultModel    = "gemini-2.0-flash-exp"
	defaultTimeout  = "60s"

	defaultTemperature     = 0.7
	defaultTopP            = 0.95
	defaultTopK            = 40
	defaultMaxOutputTokens = 1024

	defaultWindow = 40

	defaultClientTarget       = "http://localhost:8000"
	defaultClientHistoryLimit = 60
)

// NewDefaultConfig returns a Config with sane defaults for all fields.
// This is the single source of truth for default values.
func NewDefaultConfig() *Config {
	temperature := defaultTemperature
	topP := defaultTopP
	topK := defaultTopK

	return &Config{
		Version: CurrentV,
		Server: ServerConfig{
			Listen: defaultListen,
		},
		Provider: ProviderConfig{
			Name:    defaultProvider,
			Model:   defaultModel,
			Timeout: defaultTimeout,
		},
		Generation: GenerationConfig{
			Temperature:     &temperature,
			TopP:            &topP,
			TopK:            &topK,
			MaxOutputTokens: defaultMaxOutputTokens,
		},
		Conversation: ConversationConfig{
			Window: defaultWindow,
		},
		Client: ClientConfig{
			Target:       defaultClientTarget,
			HistoryLimit: defaultClientHistoryLimit,
		},
	}
}
