// Package chatcmder provides the chat command, an interactive terminal client
// for a running arenito server.
package chatcmder

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strings"

	"github.com/spf13/cobra"

	"github.com/papercomputeco/arenito/pkg/cliui"
	"github.com/papercomputeco/arenito/pkg/client"
	"github.com/papercomputeco/arenito/pkg/config"
	"github.com/papercomputeco/arenito/pkg/dotdir"
	"github.com/papercomputeco/arenito/pkg/logger"
)

type chatCommander struct {
	flags struct {
		target       string
		historyLimit int
	}

	configDir string
	fresh     bool
	raw       bool
	debug     bool

	target       string
	historyLimit int

	ddm    *dotdir.Manager
	logger *slog.Logger
}

const chatLongDesc string = `Start an interactive chat with Arenito through a running arenito server.

The conversation is kept on this side and sent with every message; the
server holds no session state. After each answer the conversation is saved
to transcript.json in the .arenito/ directory, and the next "arenito chat"
resumes from it. Use --new to start over.

While chatting:
  /reset    Forget the conversation and start over
  /exit     Quit (Ctrl+D also works)

Examples:
  arenito chat
  arenito chat --new
  arenito chat --target http://localhost:9000`

const chatShortDesc string = "Chat with Arenito through a running server"

var chatFlags = []string{
	config.FlagTarget,
	config.FlagHistoryLimit,
}

func NewChatCmd() *cobra.Command {
	return newChatCmd(&chatCommander{})
}

func newChatCmd(cmder *chatCommander) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "chat",
		Short: chatShortDesc,
		Long:  chatLongDesc,
		Args:  cobra.NoArgs,
		PreRunE: func(cmd *cobra.Command, _ []string) error {
			cmder.configDir, _ = cmd.Flags().GetString("config-dir")

			v, err := config.InitViper(cmder.configDir)
			if err != nil {
				return fmt.Errorf("loading config: %w", err)
			}
			config.BindRegisteredFlags(v, cmd, config.Flags, chatFlags)

			cmder.target = v.GetString("client.target")
			cmder.historyLimit = v.GetInt("client.history_limit")
			return nil
		},
		RunE: func(cmd *cobra.Command, _ []string) error {
			var err error
			cmder.debug, err = cmd.Flags().GetBool("debug")
			if err != nil {
				return fmt.Errorf("could not get debug flag: %w", err)
			}

			return cmder.run(cmd.Context(), cmd.InOrStdin(), cmd.OutOrStdout())
		},
	}

	config.AddStringFlag(cmd, config.Flags, config.FlagTarget, &cmder.flags.target)
	config.AddIntFlag(cmd, config.Flags, config.FlagHistoryLimit, &cmder.flags.historyLimit)
	cmd.Flags().BoolVar(&cmder.fresh, "new", false, "Discard the saved conversation and start fresh")
	cmd.Flags().BoolVar(&cmder.raw, "raw", false, "Print answers as plain text instead of rendered markdown")

	return cmd
}

func (c *chatCommander) run(ctx context.Context, in io.Reader, out io.Writer) error {
	if ctx == nil {
		ctx = context.Background()
	}
	c.logger = logger.New(logger.WithDebug(c.debug), logger.WithFormat(logger.FormatConsole), logger.WithWriter(out))
	c.ddm = dotdir.NewManager()

	if c.fresh {
		if err := c.ddm.ClearTranscript(c.configDir); err != nil {
			return err
		}
	}

	transcript, err := c.ddm.LoadTranscript(c.configDir)
	if err != nil {
		return fmt.Errorf("loading transcript: %w", err)
	}

	cl := client.New(c.target)
	fmt.Fprintln(out)
	if transcript != nil && len(transcript.Turns) > 0 {
		fmt.Fprintf(out, "  %s Resuming conversation %s\n",
			cliui.SuccessMark,
			cliui.DimStyle.Render(fmt.Sprintf("(%d turns)", len(transcript.Turns))),
		)
		if transcript.Target != "" && transcript.Target != cl.Target() {
			fmt.Fprintf(out, "  %s %s\n", cliui.WarnStyle.Render("!"),
				cliui.DimStyle.Render("saved against "+transcript.Target))
		}
	} else {
		transcript = &dotdir.Transcript{}
		fmt.Fprintf(out, "  %s New conversation\n", cliui.DimStyle.Render("●"))
	}

	session := client.NewSession(cl, c.historyLimit, transcript.Turns)

	fmt.Fprintf(out, "  %s %s\n\n", cliui.KeyStyle.Render("Server:"), cliui.NameStyle.Render(cl.Target()))
	fmt.Fprintf(out, "  %s\n\n", cliui.DimStyle.Render("Escribe tu mensaje y presiona Enter. /reset para empezar de nuevo, /exit o Ctrl+D para salir."))

	scanner := bufio.NewScanner(in)
	for {
		fmt.Fprint(out, cliui.UserPrompt)
		if !scanner.Scan() {
			break
		}

		input := strings.TrimSpace(scanner.Text())
		switch input {
		case "":
			continue
		case "/exit":
			fmt.Fprintln(out)
			return nil
		case "/reset":
			session.Reset()
			if err := c.ddm.ClearTranscript(c.configDir); err != nil {
				return err
			}
			fmt.Fprintf(out, "  %s Conversation cleared\n\n", cliui.SuccessMark)
			continue
		}

		c.logger.Debug("sending chat turn", "target", cl.Target(), "history", len(session.History()))

		var answer string
		err := cliui.Step(out, cliui.DimStyle.Render("Arenito está escribiendo"), func() error {
			var err error
			answer, err = session.Send(ctx, input)
			return err
		})
		if err != nil {
			fmt.Fprintf(out, "  %s %s\n\n", cliui.FailMark, describe(err))
			continue
		}

		fmt.Fprintf(out, "%s%s\n", cliui.AssistantPrompt, c.render(answer))

		if err := c.ddm.SaveTranscript(&dotdir.Transcript{
			Target: cl.Target(),
			Turns:  session.History(),
		}, c.configDir); err != nil {
			c.logger.Warn("could not save transcript", "error", err)
		}
	}

	if err := scanner.Err(); err != nil {
		return fmt.Errorf("reading input: %w", err)
	}

	fmt.Fprintln(out)
	return nil
}

func (c *chatCommander) render(answer string) string {
	if c.raw {
		return answer + "\n"
	}
	rendered, err := cliui.RenderMarkdown(answer)
	if err != nil {
		c.logger.Debug("markdown rendering failed", "error", err)
		return answer + "\n"
	}
	return rendered
}

// describe prefers the server's own detail message over the wrapped error.
func describe(err error) string {
	var apiErr *client.APIError
	if errors.As(err, &apiErr) && apiErr.Detail != "" {
		return apiErr.Detail
	}
	return err.Error()
}
