// Package arenitocmder
package arenitocmder

import (
	"github.com/spf13/cobra"

	authcmder "github.com/papercomputeco/arenito/cmd/arenito/auth"
	catalogcmder "github.com/papercomputeco/arenito/cmd/arenito/catalog"
	chatcmder "github.com/papercomputeco/arenito/cmd/arenito/chat"
	configcmder "github.com/papercomputeco/arenito/cmd/arenito/config"
	initcmder "github.com/papercomputeco/arenito/cmd/arenito/init"
	servecmder "github.com/papercomputeco/arenito/cmd/arenito/serve"
	versioncmder "github.com/papercomputeco/arenito/cmd/version"
)

const arenitoLongDesc string = `Arenito is a conversational sales agent for a sanitary sand business.

Run the server and talk to it:
  arenito serve         Run the API server
  arenito chat          Chat with Arenito in the terminal
  arenito catalog       Print the product catalog

Set things up:
  arenito init          Create a local .arenito/ directory
  arenito auth gemini   Store the Gemini API key
  arenito config        Manage persistent configuration`

const arenitoShortDesc string = "Arenito - sanitary sand sales agent"

func NewArenitoCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:          "arenito",
		Short:        arenitoShortDesc,
		Long:         arenitoLongDesc,
		SilenceUsage: true,
	}

	// Global flags
	cmd.PersistentFlags().BoolP("debug", "d", false, "Enable debug logging")
	cmd.PersistentFlags().String("config-dir", "", "Override path to .arenito/ config directory")

	// Add subcommands
	cmd.AddCommand(servecmder.NewServeCmd())
	cmd.AddCommand(chatcmder.NewChatCmd())
	cmd.AddCommand(catalogcmder.NewCatalogCmd())
	cmd.AddCommand(authcmder.NewAuthCmd())
	cmd.AddCommand(configcmder.NewConfigCmd())
	cmd.AddCommand(initcmder.NewInitCmd())
	cmd.AddCommand(versioncmder.NewVersionCmd())

	return cmd
}
