// Package output renders solver results for the terminal and for machines.
package output

import (
	"fmt"
	"io"
	"os"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
	"golang.org/x/term"
	"golang.org/x/text/language"
)

// Mode selects how results are written.
type Mode string

// Output modes.
const (
	ModeAuto     Mode = ""
	ModeText     Mode = "text"
	ModeTable    Mode = "table"
	ModeJSON     Mode = "json"
	ModeYAML     Mode = "yaml"
	ModeMarkdown Mode = "markdown"
)

// Styles are the lipgloss styles used in text mode.
type Styles struct {
	Header lipgloss.Style
	Bold   lipgloss.Style
	Muted  lipgloss.Style
	Value  lipgloss.Style
	Error  lipgloss.Style
}

func newStyles(r *lipgloss.Renderer) *Styles {
	return &Styles{
		Header: r.NewStyle().Bold(true).Foreground(lipgloss.Color("12")),
		Bold:   r.NewStyle().Bold(true),
		Muted:  r.NewStyle().Foreground(lipgloss.Color("8")),
		Value:  r.NewStyle().Bold(true).Foreground(lipgloss.Color("10")),
		Error:  r.NewStyle().Foreground(lipgloss.Color("9")),
	}
}

// Renderer writes output in the configured mode.
type Renderer struct {
	w      io.Writer
	errW   io.Writer
	mode   Mode
	tty    bool
	locale language.Tag
	styles *Styles
}

// NewRenderer creates a renderer writing results to w and diagnostics to errW.
func NewRenderer(w, errW io.Writer, mode Mode) *Renderer {
	return NewRendererWithTTY(w, errW, isTerminal(w), mode)
}

// NewRendererWithTTY creates a renderer with an explicit terminal state.
// Styles are plain unless isTTY is set and NO_COLOR is not.
func NewRendererWithTTY(w, errW io.Writer, isTTY bool, mode Mode) *Renderer {
	lr := lipgloss.NewRenderer(w)
	if !isTTY || termenv.EnvNoColor() {
		lr.SetColorProfile(termenv.Ascii)
	}
	return &Renderer{
		w:      w,
		errW:   errW,
		mode:   mode,
		tty:    isTTY,
		locale: language.English,
		styles: newStyles(lr),
	}
}

// SetLocale sets the locale used to group digits on a terminal.
func (r *Renderer) SetLocale(locale string) error {
	tag, err := language.Parse(locale)
	if err != nil {
		return fmt.Errorf("invalid locale %q: %w", locale, err)
	}
	r.locale = tag
	return nil
}

// EffectiveMode resolves ModeAuto.
func (r *Renderer) EffectiveMode() Mode {
	if r.mode == ModeAuto {
		return ModeText
	}
	return r.mode
}

// IsTerminal reports whether results go to a terminal.
func (r *Renderer) IsTerminal() bool {
	return r.tty
}

// Styles returns the text mode styles.
func (r *Renderer) Styles() *Styles {
	return r.styles
}

// Writer returns the result writer.
func (r *Renderer) Writer() io.Writer {
	return r.w
}

// Println writes a line to the result writer.
func (r *Renderer) Println(a ...any) {
	_, _ = fmt.Fprintln(r.w, a...)
}

// Printf writes formatted output to the result writer.
func (r *Renderer) Printf(format string, a ...any) {
	_, _ = fmt.Fprintf(r.w, format, a...)
}

// Errorf writes a styled diagnostic to the error writer.
func (r *Renderer) Errorf(format string, a ...any) {
	_, _ = fmt.Fprintln(r.errW, r.styles.Error.Render(fmt.Sprintf(format, a...)))
}

func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	return ok && term.IsTerminal(int(f.Fd()))
}
