package configcmder

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/papercomputeco/arenito/pkg/cliui"
	"github.com/papercomputeco/arenito/pkg/config"
)

const listLongDesc string = `List all configuration values.

Displays every configuration key with its effective value from the
config.toml file stored in the .arenito/ directory. Values still at their
built-in default are marked as such.

Examples:
  arenito config list`

const listShortDesc string = "List all configuration values"

func newListCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "list",
		Short: listShortDesc,
		Long:  listLongDesc,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			configDir, _ := cmd.Flags().GetString("config-dir")
			return runList(configDir)
		},
	}

	return cmd
}

func runList(configDir string) error {
	cfger, err := config.NewConfiger(configDir)
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}

	fmt.Printf("\n  %s %s\n\n",
		cliui.KeyStyle.Render("Config file:"),
		cliui.DimStyle.Render(cfger.GetTarget()),
	)

	keys := config.ValidConfigKeys()

	maxLen := 0
	for _, k := range keys {
		if len(k) > maxLen {
			maxLen = len(k)
		}
	}

	for _, key := range keys {
		value, err := cfger.GetConfigValue(key)
		if err != nil {
			return err
		}
		def, err := config.DefaultConfigValue(key)
		if err != nil {
			return err
		}

		padded := fmt.Sprintf("%-*s", maxLen, key)
		switch {
		case value == "":
			fmt.Printf("  %s  %s\n", cliui.KeyStyle.Render(padded), cliui.DimStyle.Render("<not set>"))
		case value == def:
			fmt.Printf("  %s  %s %s\n", cliui.KeyStyle.Render(padded), cliui.ValueStyle.Render(value), cliui.DimStyle.Render("(default)"))
		default:
			fmt.Printf("  %s  %s\n", cliui.KeyStyle.Render(padded), cliui.ValueStyle.Render(value))
		}
	}
	fmt.Println()

	return nil
}
