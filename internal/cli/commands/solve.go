package commands

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/leapstack-labs/mathdaddy/internal/cli/output"
	"github.com/spf13/cobra"
)

// SolveOptions holds options for the solve command.
type SolveOptions struct {
	Explain bool
}

// NewSolveCommand creates the solve command.
func NewSolveCommand() *cobra.Command {
	opts := &SolveOptions{}

	cmd := &cobra.Command{
		Use:   "solve [statement...]",
		Short: "Solve an arithmetic statement",
		Long: `Detect the notation of a statement, convert it to postfix and evaluate it.

Arguments are joined with spaces. With no arguments the statement is read
from stdin. Statements that start with an operator must follow --.`,
		Example: `  mathdaddy solve "3 + 4 * 2"
  mathdaddy solve -- "- 10 4"
  mathdaddy solve --bind x=2 "( x + 4 ) * 2"
  echo "3 2 +" | mathdaddy solve -o json`,
		Aliases: []string{"eval"},
		RunE: func(cmd *cobra.Command, args []string) error {
			return runSolve(cmd, args, opts)
		},
	}

	cmd.Flags().BoolVarP(&opts.Explain, "explain", "e", false, "Show the detected notation and postfix form (text output)")

	return cmd
}

func runSolve(cmd *cobra.Command, args []string, opts *SolveOptions) error {
	cmdCtx, err := NewCommandContext(cmd)
	if err != nil {
		return err
	}

	statement, err := statementFrom(cmd, args)
	if err != nil {
		return err
	}

	res, err := cmdCtx.Solver.Solve(statement)
	if err != nil {
		return err
	}

	r := cmdCtx.Renderer
	if opts.Explain && r.EffectiveMode() == output.ModeText {
		styles := r.Styles()
		r.Printf("%s %s\n", styles.Muted.Render("notation:"), res.Notation)
		r.Printf("%s %s\n", styles.Muted.Render("postfix: "), res.Postfix)
	}
	return r.RenderResult(res)
}

// statementFrom joins args, or reads stdin when there are none.
func statementFrom(cmd *cobra.Command, args []string) (string, error) {
	if len(args) > 0 {
		return strings.Join(args, " "), nil
	}
	data, err := io.ReadAll(cmd.InOrStdin())
	if err != nil {
		return "", fmt.Errorf("failed to read statement: %w", err)
	}
	statement := strings.TrimSpace(string(data))
	if statement == "" {
		return "", errors.New("no statement given")
	}
	return statement, nil
}
