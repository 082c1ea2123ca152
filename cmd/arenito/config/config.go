// Package configcmder provides the config command for managing persistent
// arenito configuration stored in the .arenito/ directory.
package configcmder

import (
	"github.com/spf13/cobra"
)

const configLongDesc string = `Manage persistent arenito configuration.

Configuration is stored as config.toml in the .arenito/ directory and provides
default values for command flags. CLI flags and ARENITO_* environment
variables always take precedence over config file values.

Keys use dotted notation matching the TOML section structure:
  server.listen,
  provider.name, provider.model, provider.base_url, provider.timeout,
  generation.temperature, generation.top_p, generation.top_k,
  generation.max_output_tokens,
  conversation.window,
  instruction.path, instruction.watch,
  client.target, client.history_limit

Use subcommands to get, set, or list configuration values:
  arenito config set <key> <value>    Set a configuration value
  arenito config get <key>...         Get configuration values
  arenito config list                 List all configuration values

Examples:
  arenito config set provider.name ollama
  arenito config set generation.temperature 0.4
  arenito config get conversation.window
  arenito config list`

const configShortDesc string = "Manage persistent arenito configuration"

func NewConfigCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: configShortDesc,
		Long:  configLongDesc,
	}

	cmd.AddCommand(newSetCmd())
	cmd.AddCommand(newGetCmd())
	cmd.AddCommand(newListCmd())

	return cmd
}
