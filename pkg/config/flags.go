package config

import (
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// Flag is the single source of truth for a CLI flag.
// Commands reference flags by registry key rather than hard-coding names,
// shorthands, defaults, and descriptions inline. This prevents flag drift
// when the same logical flag appears on multiple commands (e.g., --target
// on both "arenito chat" and "arenito catalog").
type Flag struct {
	// Name is the long flag name (e.g. "listen").
	Name string

	// Shorthand is the one-letter short flag (e.g. "l"). Empty for no shorthand.
	Shorthand string

	// ViperKey is the dotted config key this flag maps to (e.g. "server.listen").
	ViperKey string

	// Description is the help text shown in --help output.
	Description string
}

// FlagSet is a mapping of flag names to Flag structs that hold their name,
// shorthand, viper key, etc.
type FlagSet map[string]Flag

// Flag registry keys.
// Use these constants when calling AddStringFlag, AddIntFlag, AddBoolFlag
// and BindRegisteredFlags to avoid typos or drift from one command to another.
const (
	FlagListen       = "listen"
	FlagProvider     = "provider"
	FlagModel        = "model"
	FlagBaseURL      = "base-url"
	FlagTimeout      = "timeout"
	FlagWindow       = "window"
	FlagInstruction  = "instruction"
	FlagWatch        = "watch-instruction"
	FlagTarget       = "target"
	FlagHistoryLimit = "history-limit"
)

// Flags is the registry shared by every arenito command.
var Flags = FlagSet{
	FlagListen: {
		Name:        "listen",
		Shorthand:   "l",
		ViperKey:    "server.listen",
		Description: "Address for the API server to listen on",
	},
	FlagProvider: {
		Name:        "provider",
		Shorthand:   "p",
		ViperKey:    "provider.name",
		Description: "Completion provider (gemini, ollama)",
	},
	FlagModel: {
		Name:        "model",
		Shorthand:   "m",
		ViperKey:    "provider.model",
		Description: "Model name sent to the provider",
	},
	FlagBaseURL: {
		Name:        "base-url",
		ViperKey:    "provider.base_url",
		Description: "Override the provider endpoint",
	},
	FlagTimeout: {
		Name:        "timeout",
		ViperKey:    "provider.timeout",
		Description: "Maximum duration of one provider call",
	},
	FlagWindow: {
		Name:        "window",
		Shorthand:   "w",
		ViperKey:    "conversation.window",
		Description: "Number of recent history turns forwarded to the provider",
	},
	FlagInstruction: {
		Name:        "instruction",
		Shorthand:   "i",
		ViperKey:    "instruction.path",
		Description: "Path to an instruction file (default: embedded)",
	},
	FlagWatch: {
		Name:        "watch-instruction",
		ViperKey:    "instruction.watch",
		Description: "Reload the instruction file when it changes",
	},
	FlagTarget: {
		Name:        "target",
		Shorthand:   "t",
		ViperKey:    "client.target",
		Description: "Arenito API server URL",
	},
	FlagHistoryLimit: {
		Name:        "history-limit",
		ViperKey:    "client.history_limit",
		Description: "Number of turns the chat client keeps",
	},
}

// AddStringFlag registers a string flag on cmd from the given FlagSet.
// The flag's name, shorthand, default, and description all come from the
// FlagSet entry so they cannot drift across commands.
func AddStringFlag(cmd *cobra.Command, fs FlagSet, key string, target *string) {
	def, ok := fs[key]
	if !ok {
		return
	}

	defaultVal := defaultString(def.ViperKey)
	if def.Shorthand != "" {
		cmd.Flags().StringVarP(target, def.Name, def.Shorthand, defaultVal, def.Description)
	} else {
		cmd.Flags().StringVar(target, def.Name, defaultVal, def.Description)
	}
}

// AddIntFlag registers an int flag on cmd from the given FlagSet.
func AddIntFlag(cmd *cobra.Command, fs FlagSet, registryKey string, target *int) {
	def, ok := fs[registryKey]
	if !ok {
		return
	}

	defaultVal := defaultInt(def.ViperKey)
	if def.Shorthand != "" {
		cmd.Flags().IntVarP(target, def.Name, def.Shorthand, defaultVal, def.Description)
	} else {
		cmd.Flags().IntVar(target, def.Name, defaultVal, def.Description)
	}
}

// AddBoolFlag registers a bool flag on cmd from the given FlagSet.
func AddBoolFlag(cmd *cobra.Command, fs FlagSet, registryKey string, target *bool) {
	def, ok := fs[registryKey]
	if !ok {
		return
	}

	defaultVal := defaultBool(def.ViperKey)
	if def.Shorthand != "" {
		cmd.Flags().BoolVarP(target, def.Name, def.Shorthand, defaultVal, def.Description)
	} else {
		cmd.Flags().BoolVar(target, def.Name, defaultVal, def.Description)
	}
}

// BindRegisteredFlags binds already-registered flags to viper using definitions
// from the given FlagSet. Call this in PreRunE after InitViper to connect flags
// to the viper precedence chain (flag > env > config file > default).
func BindRegisteredFlags(v *viper.Viper, cmd *cobra.Command, fs FlagSet, registryKeys []string) {
	for _, registryKey := range registryKeys {
		def, ok := fs[registryKey]
		if !ok {
			continue
		}

		f := cmd.Flags().Lookup(def.Name)
		if f == nil {
			continue
		}

		_ = v.BindPFlag(def.ViperKey, f)
	}
}

// defaultString returns the default string value for a viper key from NewDefaultConfig.
func defaultString(viperKey string) string {
	v := viper.New()
	setViperDefaults(v)
	return v.GetString(viperKey)
}

// defaultInt returns the default int value for a viper key from NewDefaultConfig.
func defaultInt(viperKey string) int {
	v := viper.New()
	setViperDefaults(v)
	return v.GetInt(viperKey)
}

// defaultBool returns the default bool value for a viper key from NewDefaultConfig.
func defaultBool(viperKey string) bool {
	v := viper.New()
	setViperDefaults(v)
	return v.GetBool(viperKey)
}
