// Package initcmder provides the init command for initializing a local
// .arenito directory in the current working directory.
package initcmder

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/papercomputeco/arenito/pkg/cliui"
	"github.com/papercomputeco/arenito/pkg/config"
	"github.com/papercomputeco/arenito/pkg/dotdir"
)

const (
	configFile = "config.toml"

	remoteTimeout = 10 * time.Second
)

const initLongDesc string = `Initialize a new .arenito/ directory in the current working directory.

Creates a local .arenito/ directory that takes precedence over the default
~/.arenito/ directory for configuration, credentials and the chat transcript.
A config.toml with default values is written unless one already exists.

--preset writes a provider preset instead, replacing any existing
config.toml. It accepts a preset name (gemini, ollama) or an http(s) URL
serving a config.toml.

Examples:
  arenito init
  arenito init --preset ollama
  arenito init --preset https://example.com/arenito/config.toml`

const initShortDesc string = "Initialize a local .arenito/ directory"

type initCommander struct {
	preset string
}

func NewInitCmd() *cobra.Command {
	cmder := &initCommander{}

	cmd := &cobra.Command{
		Use:   "init",
		Short: initShortDesc,
		Long:  initLongDesc,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return cmder.run(cmd.Context())
		},
	}

	cmd.Flags().StringVar(&cmder.preset, "preset", "",
		fmt.Sprintf("Provider preset (%s) or URL of a config.toml", strings.Join(config.ValidPresetNames(), ", ")))

	return cmd
}

func (c *initCommander) run(ctx context.Context) error {
	if ctx == nil {
		ctx = context.Background()
	}

	dir, err := dotdir.LocalDir()
	if err != nil {
		return err
	}
	configPath := filepath.Join(dir, configFile)

	// Resolve the preset before touching disk so a bad preset leaves no trace.
	var cfg *config.Config
	if c.preset != "" {
		cfg, err = resolvePreset(ctx, c.preset)
		if err != nil {
			return err
		}
	}

	info, err := os.Stat(dir)
	existed := err == nil && info.IsDir()
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("creating .arenito directory: %w", err)
	}

	if cfg == nil {
		if _, err := os.Stat(configPath); err == nil {
			fmt.Printf("\n  %s Already initialized: %s\n\n", cliui.SuccessMark, cliui.DimStyle.Render(dir))
			return nil
		} else if !errors.Is(err, os.ErrNotExist) {
			return fmt.Errorf("checking config: %w", err)
		}
		cfg = config.NewDefaultConfig()
	}

	cfger, err := config.NewConfiger(dir)
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}
	if err := cfger.SaveConfig(cfg); err != nil {
		return err
	}

	verb := "Initialized"
	if existed {
		verb = "Updated"
	}
	fmt.Printf("\n  %s %s .arenito directory: %s\n", cliui.SuccessMark, verb, cliui.DimStyle.Render(dir))
	fmt.Printf("  %s %s %s\n\n",
		cliui.KeyStyle.Render("Provider:"),
		cliui.NameStyle.Render(cfg.Provider.Name),
		cliui.DimStyle.Render(cfg.Provider.Model),
	)
	return nil
}

func resolvePreset(ctx context.Context, preset string) (*config.Config, error) {
	if strings.HasPrefix(preset, "http://") || strings.HasPrefix(preset, "https://") {
		return fetchRemoteConfig(ctx, preset)
	}
	return config.PresetConfig(preset)
}

func fetchRemoteConfig(ctx context.Context, url string) (*config.Config, error) {
	ctx, cancel := context.WithTimeout(ctx, remoteTimeout)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("fetching remote config: %w", err)
	}

	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetching remote config: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("fetching remote config: HTTP %d", resp.StatusCode)
	}

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("reading remote config: %w", err)
	}

	return config.ParseConfigTOML(data)
}
