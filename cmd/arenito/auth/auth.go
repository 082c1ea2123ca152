// Package authcmder provides the auth command for storing API credentials.
package authcmder

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/papercomputeco/arenito/pkg/cliui"
	"github.com/papercomputeco/arenito/pkg/credentials"
)

const authLongDesc string = `Store API credentials for completion providers.

Credentials are stored in credentials.toml in the .arenito/ directory.
"arenito serve" reads them on every chat turn, after the provider's
environment variable (GEMINI_API_KEY for Gemini). A key exported in the
environment always wins over a stored one.

Supported providers: gemini

Examples:
  arenito auth gemini              Prompt for the Gemini API key
  arenito auth --list              List stored credentials
  arenito auth --remove gemini     Remove stored Gemini credentials
  echo $KEY | arenito auth gemini  Pipe API key from stdin`

const authShortDesc string = "Store API credentials for completion providers"

func NewAuthCmd() *cobra.Command {
	var listFlag bool
	var removeFlag string

	cmd := &cobra.Command{
		Use:   "auth [provider]",
		Short: authShortDesc,
		Long:  authLongDesc,
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			configDir, _ := cmd.Flags().GetString("config-dir")

			switch {
			case listFlag:
				return runList(configDir)
			case removeFlag != "":
				return runRemove(removeFlag, configDir)
			default:
				if len(args) == 0 {
					return fmt.Errorf("provider argument required\n\nSupported providers: %s",
						strings.Join(credentials.SupportedProviders(), ", "))
				}
				return runAuth(cmd.InOrStdin(), args[0], configDir)
			}
		},
		ValidArgsFunction: func(_ *cobra.Command, args []string, _ string) ([]string, cobra.ShellCompDirective) {
			if len(args) == 0 {
				return credentials.SupportedProviders(), cobra.ShellCompDirectiveNoFileComp
			}
			return nil, cobra.ShellCompDirectiveNoFileComp
		},
	}

	cmd.Flags().BoolVar(&listFlag, "list", false, "List stored credentials")
	cmd.Flags().StringVar(&removeFlag, "remove", "", "Remove stored credentials for a provider")

	return cmd
}

func runAuth(in io.Reader, provider, configDir string) error {
	provider = strings.ToLower(strings.TrimSpace(provider))

	if !credentials.IsSupportedProvider(provider) {
		return fmt.Errorf("unsupported provider: %q\n\nSupported providers: %s",
			provider, strings.Join(credentials.SupportedProviders(), ", "))
	}

	apiKey, err := readAPIKey(in, provider)
	if err != nil {
		return err
	}

	apiKey = strings.TrimSpace(apiKey)
	if apiKey == "" {
		return errors.New("API key cannot be empty")
	}

	mgr, err := credentials.NewManager(configDir)
	if err != nil {
		return fmt.Errorf("loading credentials: %w", err)
	}

	if err := mgr.SetKey(provider, apiKey); err != nil {
		return err
	}

	envVar := credentials.EnvVarForProvider(provider)
	fmt.Printf("\n  %s Stored %s credentials %s\n",
		cliui.SuccessMark,
		cliui.NameStyle.Render(provider),
		cliui.DimStyle.Render("("+envVar+" takes precedence when set)"),
	)

	if provider == "gemini" && !strings.HasPrefix(apiKey, "AIza") {
		fmt.Printf("\n  %s Gemini API keys usually start with AIza; double-check the key at aistudio.google.com.\n",
			cliui.WarnStyle.Render("!"))
	}

	fmt.Println()
	return nil
}

func runList(configDir string) error {
	mgr, err := credentials.NewManager(configDir)
	if err != nil {
		return fmt.Errorf("loading credentials: %w", err)
	}

	entries, err := mgr.Entries()
	if err != nil {
		return err
	}

	if len(entries) == 0 {
		fmt.Printf("\n  %s No stored credentials.\n", cliui.DimStyle.Render("●"))
		fmt.Printf("  Use 'arenito auth <provider>' to store credentials.\n")
		fmt.Printf("  Supported providers: %s\n\n", strings.Join(credentials.SupportedProviders(), ", "))
		return nil
	}

	fmt.Printf("\n  %s %s\n\n",
		cliui.HeaderStyle.Render("Stored credentials"),
		cliui.DimStyle.Render(mgr.Path()),
	)
	for _, e := range entries {
		line := fmt.Sprintf("  %s  %s  %s", cliui.SuccessMark, cliui.NameStyle.Render(e.Provider), cliui.ValueStyle.Render(e.Masked))
		if e.EnvVar != "" {
			line += "  " + cliui.DimStyle.Render("overridden by "+e.EnvVar)
		}
		fmt.Println(line)
	}
	fmt.Println()

	return nil
}

func runRemove(provider, configDir string) error {
	provider = strings.ToLower(strings.TrimSpace(provider))

	mgr, err := credentials.NewManager(configDir)
	if err != nil {
		return fmt.Errorf("loading credentials: %w", err)
	}

	if err := mgr.RemoveKey(provider); err != nil {
		return err
	}

	fmt.Printf("\n  %s Removed %s credentials.\n\n", cliui.SuccessMark, cliui.NameStyle.Render(provider))

	return nil
}

// readAPIKey reads an API key from in. A terminal gets a hidden-input prompt;
// anything else (a pipe, a buffer in tests) has its first line read.
func readAPIKey(in io.Reader, provider string) (string, error) {
	if f, ok := in.(*os.File); ok {
		fi, err := f.Stat()
		if err != nil {
			return "", fmt.Errorf("checking stdin: %w", err)
		}

		if fi.Mode()&os.ModeCharDevice != 0 {
			envVar := credentials.EnvVarForProvider(provider)
			fmt.Printf("Enter API key for %s (%s): ", provider, envVar)

			keyBytes, err := term.ReadPassword(int(f.Fd()))
			fmt.Println() // newline after hidden input
			if err != nil {
				return "", fmt.Errorf("reading API key: %w", err)
			}
			return string(keyBytes), nil
		}
	}

	scanner := bufio.NewScanner(in)
	if scanner.Scan() {
		return scanner.Text(), nil
	}
	if err := scanner.Err(); err != nil {
		return "", fmt.Errorf("reading stdin: %w", err)
	}
	return "", errors.New("no input received on stdin")
}
