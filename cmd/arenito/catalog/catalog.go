// Package catalogcmder provides the catalog command, which prints products
// from a running arenito server.
package catalogcmder

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/papercomputeco/arenito/pkg/catalog"
	"github.com/papercomputeco/arenito/pkg/cliui"
	"github.com/papercomputeco/arenito/pkg/client"
	"github.com/papercomputeco/arenito/pkg/config"
)

type catalogCommander struct {
	flagTarget string
	configDir  string
	target     string
}

const catalogLongDesc string = `Print the sanitary sand catalog served by a running arenito server.

With no argument every format is listed; with a weight in kilograms only
that format is shown.

Examples:
  arenito catalog
  arenito catalog 20
  arenito catalog --target http://localhost:9000`

const catalogShortDesc string = "Print the product catalog"

func NewCatalogCmd() *cobra.Command {
	cmder := &catalogCommander{}

	cmd := &cobra.Command{
		Use:   "catalog [weight-kg]",
		Short: catalogShortDesc,
		Long:  catalogLongDesc,
		Args:  cobra.MaximumNArgs(1),
		PreRunE: func(cmd *cobra.Command, _ []string) error {
			cmder.configDir, _ = cmd.Flags().GetString("config-dir")

			v, err := config.InitViper(cmder.configDir)
			if err != nil {
				return fmt.Errorf("loading config: %w", err)
			}
			config.BindRegisteredFlags(v, cmd, config.Flags, []string{config.FlagTarget})

			cmder.target = v.GetString("client.target")
			return nil
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			weight := 0
			if len(args) == 1 {
				var err error
				weight, err = strconv.Atoi(args[0])
				if err != nil || weight <= 0 {
					return fmt.Errorf("invalid weight %q: must be a positive whole number of kilograms", args[0])
				}
			}
			return cmder.run(cmd.Context(), cmd.OutOrStdout(), weight)
		},
	}

	config.AddStringFlag(cmd, config.Flags, config.FlagTarget, &cmder.flagTarget)

	return cmd
}

// run prints one product when weight > 0, the whole catalog otherwise.
func (c *catalogCommander) run(ctx context.Context, out io.Writer, weight int) error {
	if ctx == nil {
		ctx = context.Background()
	}
	cl := client.New(c.target)

	var products []catalog.Product
	if weight > 0 {
		p, err := cl.Product(ctx, weight)
		if errors.Is(err, catalog.ErrNotFound) {
			return fmt.Errorf("no product of %d kg in the catalog", weight)
		}
		if err != nil {
			return err
		}
		products = []catalog.Product{p}
	} else {
		var err error
		products, err = cl.Catalog(ctx)
		if err != nil {
			return err
		}
	}

	fmt.Fprintf(out, "\n  %s\n\n", cliui.HeaderStyle.Render("Arena sanitaria"))
	for _, p := range products {
		fmt.Fprintf(out, "  %s  %s  %s\n",
			cliui.NameStyle.Render(fmt.Sprintf("%3d kg", p.WeightKg)),
			cliui.PriceStyle.Render(fmt.Sprintf("%8s", cliui.FormatCLP(p.PriceCLP))),
			cliui.DimStyle.Render(p.Description),
		)
	}
	fmt.Fprintln(out)

	return nil
}
