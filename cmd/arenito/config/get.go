package configcmder

import (
	"fmt"
	"io"
	"slices"
	"strings"

	"github.com/spf13/cobra"

	"github.com/papercomputeco/arenito/pkg/cliui"
	"github.com/papercomputeco/arenito/pkg/config"
)

const getLongDesc string = `Get one or more configuration values.

Prints the effective value of each key from the config.toml file stored in
the .arenito/ directory. Keys use dotted notation matching the TOML section
structure; values still at their built-in default are marked as such.

Examples:
  arenito config get provider.name
  arenito config get generation.temperature generation.top_k`

const getShortDesc string = "Get configuration values"

func newGetCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "get <key> [key...]",
		Short: getShortDesc,
		Long:  getLongDesc,
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			configDir, _ := cmd.Flags().GetString("config-dir")
			return runGet(cmd.OutOrStdout(), args, configDir)
		},
		ValidArgsFunction: func(_ *cobra.Command, args []string, _ string) ([]string, cobra.ShellCompDirective) {
			remaining := make([]string, 0, len(config.ValidConfigKeys()))
			for _, k := range config.ValidConfigKeys() {
				if !slices.Contains(args, k) {
					remaining = append(remaining, k)
				}
			}
			return remaining, cobra.ShellCompDirectiveNoFileComp
		},
	}

	return cmd
}

func runGet(out io.Writer, keys []string, configDir string) error {
	// Validate everything up front so a typo in the last key prints nothing.
	for _, key := range keys {
		if !config.IsValidConfigKey(key) {
			return fmt.Errorf("unknown config key: %q\n\nValid keys: %s",
				key, strings.Join(config.ValidConfigKeys(), ", "))
		}
	}

	cfger, err := config.NewConfiger(configDir)
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}

	fmt.Fprintln(out)
	for _, key := range keys {
		value, err := cfger.GetConfigValue(key)
		if err != nil {
			return err
		}
		def, err := config.DefaultConfigValue(key)
		if err != nil {
			return err
		}

		switch {
		case value == "":
			fmt.Fprintf(out, "  %s  %s\n", cliui.KeyStyle.Render(key), cliui.DimStyle.Render("<not set>"))
		case value == def:
			fmt.Fprintf(out, "  %s  %s %s\n", cliui.KeyStyle.Render(key), cliui.ValueStyle.Render(value), cliui.DimStyle.Render("(default)"))
		default:
			fmt.Fprintf(out, "  %s  %s\n", cliui.KeyStyle.Render(key), cliui.ValueStyle.Render(value))
		}
	}
	fmt.Fprintln(out)

	return nil
}
