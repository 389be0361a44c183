package commands

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/chzyer/readline"
	"github.com/leapstack-labs/mathdaddy/internal/cli/config"
	"github.com/leapstack-labs/mathdaddy/pkg/eval"
	"github.com/leapstack-labs/mathdaddy/pkg/mathdaddy"
	"github.com/spf13/cobra"
	"golang.org/x/term"
)

const replPrompt = "mathdaddy> "

// REPLOptions holds options for the repl command.
type REPLOptions struct {
	HistoryFile string
}

// NewREPLCommand creates the repl command.
func NewREPLCommand() *cobra.Command {
	opts := &REPLOptions{}

	cmd := &cobra.Command{
		Use:   "repl",
		Short: "Solve statements interactively",
		Long: `Start an interactive session. Each line is solved as a statement.

Dot-commands manage the session; type .help to list them. Bindings added
with .bind last for the session only. When stdin is not a terminal, lines
are read from it without prompting.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runREPL(cmd, opts)
		},
	}

	cmd.Flags().StringVar(&opts.HistoryFile, "history", defaultHistoryFile(), "History file (empty to disable)")

	return cmd
}

func defaultHistoryFile() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".mathdaddy_history")
}

func runREPL(cmd *cobra.Command, opts *REPLOptions) error {
	cmdCtx, err := NewCommandContext(cmd)
	if err != nil {
		return err
	}
	sess := newREPLSession(cmdCtx)

	in := cmd.InOrStdin()
	if f, ok := in.(*os.File); !ok || !term.IsTerminal(int(f.Fd())) {
		return sess.runScript(in)
	}
	return sess.runInteractive(opts.HistoryFile)
}

// replSession is the state of one REPL run.
type replSession struct {
	cmdCtx   *CommandContext
	bindings eval.Bindings
	solver   *mathdaddy.Solver
}

func newREPLSession(cmdCtx *CommandContext) *replSession {
	s := &replSession{
		cmdCtx:   cmdCtx,
		bindings: eval.Bindings{},
	}
	for name, v := range cmdCtx.Cfg.Bindings {
		s.bindings[name] = v
	}
	s.rebuild()
	return s
}

// rebuild swaps in a solver over the session bindings.
func (s *replSession) rebuild() {
	s.solver = mathdaddy.New(mathdaddy.Config{
		Table:    s.cmdCtx.Solver.Table(),
		Bindings: s.bindings,
		Strict:   s.cmdCtx.Cfg.Strict,
		Logger:   s.cmdCtx.Logger,
	})
}

func (s *replSession) runInteractive(historyFile string) error {
	rl, err := readline.NewEx(&readline.Config{
		Prompt:          replPrompt,
		HistoryFile:     historyFile,
		AutoComplete:    s.completer(),
		InterruptPrompt: "^C",
		EOFPrompt:       ".quit",
	})
	if err != nil {
		return fmt.Errorf("failed to initialize REPL: %w", err)
	}
	defer func() { _ = rl.Close() }()

	r := s.cmdCtx.Renderer
	r.Println(r.Styles().Header.Render("mathdaddy REPL"))
	r.Println(r.Styles().Muted.Render("Type .help for commands, .quit to exit"))
	r.Println("")

	for {
		line, err := rl.Readline()
		if errors.Is(err, readline.ErrInterrupt) {
			continue
		}
		if errors.Is(err, io.EOF) {
			return nil
		}
		if err != nil {
			return err
		}

		if s.handleLine(line) {
			return nil
		}
		// Bindings may have changed.
		rl.Config.AutoComplete = s.completer()
	}
}

func (s *replSession) runScript(in io.Reader) error {
	scanner := bufio.NewScanner(in)
	for scanner.Scan() {
		if s.handleLine(scanner.Text()) {
			return nil
		}
	}
	return scanner.Err()
}

// handleLine solves or dispatches one line and reports whether to quit.
func (s *replSession) handleLine(line string) bool {
	line = strings.TrimSpace(line)
	if line == "" || strings.HasPrefix(line, "#") {
		return false
	}
	if strings.HasPrefix(line, ".") && !startsWithDigitAfterDot(line) {
		return s.handleDotCommand(line)
	}

	r := s.cmdCtx.Renderer
	res, err := s.solver.Solve(line)
	if err != nil {
		r.Errorf("Error: %v", err)
		return false
	}
	if err := r.RenderResult(res); err != nil {
		r.Errorf("Error: %v", err)
	}
	return false
}

// startsWithDigitAfterDot keeps ".5 + 1" a statement rather than a command.
func startsWithDigitAfterDot(line string) bool {
	return len(line) > 1 && line[1] >= '0' && line[1] <= '9'
}

func (s *replSession) handleDotCommand(line string) bool {
	r := s.cmdCtx.Renderer
	parts := strings.Fields(line)
	command := strings.ToLower(parts[0])

	switch command {
	case ".quit", ".exit":
		return true

	case ".help":
		printREPLHelp(r.Writer())

	case ".bind":
		if len(parts) < 2 {
			r.Errorf("Usage: .bind <name>=<value>")
			return false
		}
		name, v, err := config.ParseBinding(strings.Join(parts[1:], ""))
		if err != nil {
			r.Errorf("Error: %v", err)
			return false
		}
		if s.cmdCtx.Cfg.Strict {
			r.Errorf("Warning: strict mode ignores bindings")
		}
		s.bindings[name] = v
		s.rebuild()

	case ".unbind":
		if len(parts) != 2 {
			r.Errorf("Usage: .unbind <name>")
			return false
		}
		if _, ok := s.bindings[parts[1]]; !ok {
			r.Errorf("Error: %s is not bound", parts[1])
			return false
		}
		delete(s.bindings, parts[1])
		s.rebuild()

	case ".vars":
		if len(s.bindings) == 0 {
			r.Println("(no bindings)")
			return false
		}
		for _, name := range s.boundNames() {
			r.Printf("%s = %s\n", name, mathdaddy.FormatValue(s.bindings[name]))
		}

	case ".operators":
		if err := r.RenderOperators(s.solver.Table().Defs()); err != nil {
			r.Errorf("Error: %v", err)
		}

	case ".clear":
		r.Printf("\033[H\033[2J")

	default:
		r.Errorf("Unknown command: %s (type .help for commands)", command)
	}
	return false
}

func (s *replSession) boundNames() []string {
	names := make([]string, 0, len(s.bindings))
	for name := range s.bindings {
		names = append(names, name)
	}
	slices.Sort(names)
	return names
}

func printREPLHelp(w io.Writer) {
	help := `
Commands:
  .help                Show this help message
  .bind <name>=<value> Bind a symbol for this session
  .unbind <name>       Remove a binding
  .vars                List bindings
  .operators           Show the operator table
  .clear               Clear the screen
  .quit / .exit        Exit the REPL

Tips:
  - Infix, prefix and postfix statements are all accepted
  - Use arrow keys to navigate history
  - Tab completion works for dot-commands and bound symbols
`
	_, _ = fmt.Fprintln(w, help)
}

// completer completes dot-commands and bound symbols.
func (s *replSession) completer() *readline.PrefixCompleter {
	items := []readline.PrefixCompleterInterface{
		readline.PcItem(".help"),
		readline.PcItem(".bind"),
		readline.PcItem(".unbind", readline.PcItemDynamic(func(string) []string { return s.boundNames() })),
		readline.PcItem(".vars"),
		readline.PcItem(".operators"),
		readline.PcItem(".clear"),
		readline.PcItem(".quit"),
		readline.PcItem(".exit"),
	}
	for _, name := range s.boundNames() {
		items = append(items, readline.PcItem(name))
	}
	return readline.NewPrefixCompleter(items...)
}
