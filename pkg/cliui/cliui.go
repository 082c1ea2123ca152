// Package cliui provides reusable terminal UI helpers (spinners, step indicators,
// styles, markdown rendering) for arenito CLI commands.
package cliui

import (
	"fmt"
	"io"
	"sync"
	"time"

	"github.com/charmbracelet/glamour"
	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
)

var (
	SuccessMark  = lipgloss.NewStyle().Foreground(lipgloss.Color("82")).Render("✓")
	FailMark     = lipgloss.NewStyle().Foreground(lipgloss.Color("196")).Render("✗")
	StepStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("245"))
	spinnerStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("214"))

	HeaderStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("214")).Bold(true)
	NameStyle   = lipgloss.NewStyle().Bold(true)
	KeyStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("75"))
	ValueStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("252"))
	DimStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("245"))
	WarnStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("214"))
	PriceStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("82")).Bold(true)

	UserPrompt      = lipgloss.NewStyle().Foreground(lipgloss.Color("82")).Bold(true).Render("tú> ")
	AssistantPrompt = lipgloss.NewStyle().Foreground(lipgloss.Color("214")).Render("arenito> ")
)

// spinnerFrames is the braille dot spinner.
var spinnerFrames = []string{"⣾", "⣽", "⣻", "⢿", "⡿", "⣟", "⣯", "⣷"}

// Step prints an animated spinner while fn runs, then replaces it with
// a ✓ or ✗ checkmark and elapsed time.
func Step(w io.Writer, msg string, fn func() error) error {
	done := make(chan struct{})
	stopped := make(chan struct{})
	var mu sync.Mutex

	go func() {
		defer close(stopped)
		frame := 0
		ticker := time.NewTicker(80 * time.Millisecond)
		defer ticker.Stop()

		for {
			mu.Lock()
			fmt.Fprintf(w, "\r  %s %s",
				spinnerStyle.Render(spinnerFrames[frame%len(spinnerFrames)]),
				msg,
			)
			mu.Unlock()

			select {
			case <-done:
				return
			case <-ticker.C:
				frame++
			}
		}
	}()

	start := time.Now()
	err := fn()
	elapsed := time.Since(start)

	close(done)
	<-stopped

	mu.Lock()
	fmt.Fprintf(w, "\r  %s %s %s\n",
		Mark(err),
		msg,
		StepStyle.Render(fmt.Sprintf("(%s)", FormatDuration(elapsed))),
	)
	mu.Unlock()

	return err
}

// Mark returns a ✓ for nil errors or ✗ for non-nil errors.
func Mark(err error) string {
	if err != nil {
		return FailMark
	}
	return SuccessMark
}

// FormatDuration formats a duration for display (e.g. "12ms" or "3.2s").
func FormatDuration(d time.Duration) string {
	if d < time.Second {
		return fmt.Sprintf("%dms", d.Milliseconds())
	}
	return fmt.Sprintf("%.1fs", d.Seconds())
}

// FormatCLP renders an integer peso amount the way the catalog prints it,
// with dot thousands separators: 13890 -> "$13.890".
func FormatCLP(amount int) string {
	sign := ""
	if amount < 0 {
		sign = "-"
		amount = -amount
	}

	digits := fmt.Sprintf("%d", amount)
	out := make([]byte, 0, len(digits)+len(digits)/3)
	for i := range len(digits) {
		if i > 0 && (len(digits)-i)%3 == 0 {
			out = append(out, '.')
		}
		out = append(out, digits[i])
	}

	return "$" + sign + string(out)
}

// RenderMarkdown renders markdown content for terminal display using glamour.
// NO_COLOR selects the plain style.
func RenderMarkdown(content string) (string, error) {
	style := glamour.WithAutoStyle()
	if termenv.EnvNoColor() {
		style = glamour.WithStandardStyle("notty")
	}

	r, err := glamour.NewTermRenderer(
		style,
		glamour.WithWordWrap(80),
	)
	if err != nil {
		return content, err
	}

	rendered, err := r.Render(content)
	if err != nil {
		return content, err
	}

	return rendered, nil
}
