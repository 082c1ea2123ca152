// Package servecmder provides the serve command that runs the arenito API
// server.
package servecmder

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/papercomputeco/arenito/api"
	"github.com/papercomputeco/arenito/pkg/catalog"
	"github.com/papercomputeco/arenito/pkg/completion"
	"github.com/papercomputeco/arenito/pkg/completion/providers"
	"github.com/papercomputeco/arenito/pkg/config"
	"github.com/papercomputeco/arenito/pkg/credentials"
	"github.com/papercomputeco/arenito/pkg/logger"
	"github.com/papercomputeco/arenito/pkg/orchestrator"
	"github.com/papercomputeco/arenito/pkg/prompt"
)

type serveCommander struct {
	flags struct {
		listen      string
		provider    string
		model       string
		baseURL     string
		timeout     string
		window      int
		instruction string
		watch       bool
	}

	configDir string
	logFile   string
	json      bool
	debug     bool

	cfg    *config.Config
	logger *slog.Logger
}

const serveLongDesc string = `Run the arenito API server.

The server answers customer questions about the sanitary sand catalog through
the configured completion provider and exposes:
  GET  /health                  Liveness check
  GET  /api/catalog             The full product catalog
  GET  /api/catalog/{weight}    One product by package weight in kg
  POST /api/chat                One conversational turn
  /mcp                          Catalog tools over MCP (streamable HTTP)

The Gemini key is read from GEMINI_API_KEY, then from credentials stored
with "arenito auth gemini", on every chat turn.

Flags override ARENITO_* environment variables, which override config.toml.

Examples:
  arenito serve
  arenito serve --listen :9000 --provider ollama --model llama3.2
  arenito serve --instruction ./instruction.md --watch-instruction
  arenito serve --log-file arenito.log`

const serveShortDesc string = "Run the arenito API server"

var serveFlags = []string{
	config.FlagListen,
	config.FlagProvider,
	config.FlagModel,
	config.FlagBaseURL,
	config.FlagTimeout,
	config.FlagWindow,
	config.FlagInstruction,
	config.FlagWatch,
}

func NewServeCmd() *cobra.Command {
	return newServeCmd(&serveCommander{})
}

func newServeCmd(cmder *serveCommander) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "serve",
		Short: serveShortDesc,
		Long:  serveLongDesc,
		Args:  cobra.NoArgs,
		PreRunE: func(cmd *cobra.Command, _ []string) error {
			cmder.configDir, _ = cmd.Flags().GetString("config-dir")

			v, err := config.InitViper(cmder.configDir)
			if err != nil {
				return fmt.Errorf("loading config: %w", err)
			}
			config.BindRegisteredFlags(v, cmd, config.Flags, serveFlags)

			cmder.cfg, err = config.FromViper(v)
			if err != nil {
				return fmt.Errorf("loading config: %w", err)
			}
			return nil
		},
		RunE: func(cmd *cobra.Command, _ []string) error {
			var err error
			cmder.debug, err = cmd.Flags().GetBool("debug")
			if err != nil {
				return fmt.Errorf("could not get debug flag: %w", err)
			}

			return cmder.run(cmd.Context())
		},
	}

	config.AddStringFlag(cmd, config.Flags, config.FlagListen, &cmder.flags.listen)
	config.AddStringFlag(cmd, config.Flags, config.FlagProvider, &cmder.flags.provider)
	config.AddStringFlag(cmd, config.Flags, config.FlagModel, &cmder.flags.model)
	config.AddStringFlag(cmd, config.Flags, config.FlagBaseURL, &cmder.flags.baseURL)
	config.AddStringFlag(cmd, config.Flags, config.FlagTimeout, &cmder.flags.timeout)
	config.AddIntFlag(cmd, config.Flags, config.FlagWindow, &cmder.flags.window)
	config.AddStringFlag(cmd, config.Flags, config.FlagInstruction, &cmder.flags.instruction)
	config.AddBoolFlag(cmd, config.Flags, config.FlagWatch, &cmder.flags.watch)

	cmd.Flags().StringVar(&cmder.logFile, "log-file", "", "Also append JSON logs to this file")
	cmd.Flags().BoolVar(&cmder.json, "json", false, "Log JSON to stdout instead of pretty output")

	return cmd
}

func (c *serveCommander) run(ctx context.Context) error {
	if ctx == nil {
		ctx = context.Background()
	}
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	var closeLog func() error
	var err error
	c.logger, closeLog, err = c.newLogger(os.Stdout)
	if err != nil {
		return err
	}
	defer func() { _ = closeLog() }()

	server, err := c.newServer(ctx)
	if err != nil {
		return err
	}

	errChan := make(chan error, 1)
	go func() {
		if err := server.Run(); err != nil {
			errChan <- fmt.Errorf("API server error: %w", err)
		}
	}()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
	defer signal.Stop(sigChan)

	select {
	case err := <-errChan:
		return err
	case sig := <-sigChan:
		c.logger.Info("received signal, shutting down", "signal", sig.String())
		return server.Shutdown()
	}
}

// newLogger builds the service logger. With --log-file the terminal output is
// kept and JSON records are appended to the file as well.
func (c *serveCommander) newLogger(stdout io.Writer) (*slog.Logger, func() error, error) {
	format := logger.FormatConsole
	if c.json {
		format = logger.FormatJSON
	}
	console := logger.New(
		logger.WithDebug(c.debug),
		logger.WithSource(c.debug),
		logger.WithFormat(format),
		logger.WithWriter(stdout),
	)
	if c.logFile == "" {
		return console, func() error { return nil }, nil
	}

	f, err := os.OpenFile(c.logFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o600)
	if err != nil {
		return nil, nil, fmt.Errorf("opening log file: %w", err)
	}

	file := logger.New(
		logger.WithDebug(c.debug),
		logger.WithFormat(logger.FormatJSON),
		logger.WithWriter(f),
	)
	return logger.Tee(console, file), f.Close, nil
}

// newServer wires the catalog, the completion provider and the orchestrator
// into an API server from the effective configuration.
func (c *serveCommander) newServer(ctx context.Context) (*api.Server, error) {
	timeout, err := c.cfg.ProviderTimeout()
	if err != nil {
		return nil, err
	}

	provider, err := providers.New(c.cfg.Provider.Name, providers.Config{
		BaseURL: c.cfg.Provider.BaseURL,
		Timeout: timeout,
	})
	if err != nil {
		return nil, err
	}

	credsManager, err := credentials.NewManager(c.configDir)
	if err != nil {
		return nil, fmt.Errorf("loading credentials: %w", err)
	}

	instruction, err := c.newInstruction(ctx)
	if err != nil {
		return nil, err
	}

	orch, err := orchestrator.New(orchestrator.Config{
		Provider:    provider,
		Credentials: credentials.NewResolver(credsManager),
		Instruction: instruction,
		Window:      c.cfg.Conversation.Window,
		Options: completion.Options{
			Model:           c.cfg.Provider.Model,
			Temperature:     c.cfg.Generation.Temperature,
			TopP:            c.cfg.Generation.TopP,
			TopK:            c.cfg.Generation.TopK,
			MaxOutputTokens: c.cfg.Generation.MaxOutputTokens,
		},
		Logger: c.logger,
	})
	if err != nil {
		return nil, fmt.Errorf("creating orchestrator: %w", err)
	}

	store := catalog.Default()
	c.logger.Debug("catalog loaded", "products", store.Len())

	return api.NewServer(api.Config{ListenAddr: c.cfg.Server.Listen}, store, orch, c.logger)
}

func (c *serveCommander) newInstruction(ctx context.Context) (prompt.Source, error) {
	path := c.cfg.Instruction.Path
	if path == "" {
		return prompt.Default(), nil
	}

	fs, err := prompt.NewFileSource(path, c.logger)
	if err != nil {
		return nil, fmt.Errorf("loading instruction: %w", err)
	}
	c.logger.Info("using instruction file", "path", fs.Path(), "watch", c.cfg.Instruction.Watch)

	if c.cfg.Instruction.Watch {
		if err := fs.Watch(ctx); err != nil {
			return nil, err
		}
	}

	return fs, nil
}
