package commands

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/leapstack-labs/mathdaddy/internal/cli/output"
	"github.com/leapstack-labs/mathdaddy/pkg/mathdaddy"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"
)

// statement is one line of a batch input.
type statement struct {
	line int
	text string
}

// NewBatchCommand creates the batch command.
func NewBatchCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "batch [file|-]",
		Short: "Solve one statement per line",
		Long: `Solve every line of a file, or of stdin when the file is - or omitted.

Blank lines and lines starting with # are skipped. Lines are solved
concurrently and reported in input order. The command fails when any
line fails.`,
		Example: `  mathdaddy batch statements.txt
  mathdaddy batch --workers 8 -o json statements.txt
  printf '3 + 4\n+ 3 2\n' | mathdaddy batch`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runBatch(cmd, args)
		},
	}

	cmd.Flags().Int("workers", 4, "Number of statements solved concurrently")

	return cmd
}

func runBatch(cmd *cobra.Command, args []string) error {
	cmdCtx, err := NewCommandContext(cmd)
	if err != nil {
		return err
	}

	in := cmd.InOrStdin()
	if len(args) == 1 && args[0] != "-" {
		f, err := os.Open(args[0])
		if err != nil {
			return fmt.Errorf("failed to open %s: %w", args[0], err)
		}
		defer func() { _ = f.Close() }()
		in = f
	}

	statements, err := readStatements(in)
	if err != nil {
		return err
	}

	outcomes, err := solveAll(cmd.Context(), cmdCtx.Solver, statements, cmdCtx.Cfg.Batch.Workers)
	if err != nil {
		return err
	}
	if err := cmdCtx.Renderer.RenderBatch(outcomes); err != nil {
		return err
	}

	var failed int
	for _, o := range outcomes {
		if o.Err != nil {
			failed++
		}
	}
	cmdCtx.Logger.Debug("batch finished", "statements", len(outcomes), "failed", failed)
	if failed > 0 {
		return fmt.Errorf("%d of %d statements failed", failed, len(outcomes))
	}
	return nil
}

// readStatements returns the non-blank, non-comment lines of r.
func readStatements(r io.Reader) ([]statement, error) {
	var out []statement
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	line := 0
	for scanner.Scan() {
		line++
		text := strings.TrimSpace(scanner.Text())
		if text == "" || strings.HasPrefix(text, "#") {
			continue
		}
		out = append(out, statement{line: line, text: text})
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("failed to read statements: %w", err)
	}
	return out, nil
}

// solveAll solves statements with at most workers in flight. A failing
// statement is reported in its outcome and does not stop the others.
func solveAll(ctx context.Context, solver *mathdaddy.Solver, statements []statement, workers int) ([]output.Outcome, error) {
	if ctx == nil {
		ctx = context.Background()
	}
	outcomes := make([]output.Outcome, len(statements))

	eg, egctx := errgroup.WithContext(ctx)
	eg.SetLimit(max(workers, 1))
	for i, st := range statements {
		eg.Go(func() error {
			if err := egctx.Err(); err != nil {
				return err
			}
			res, err := solver.Solve(st.text)
			outcomes[i] = output.Outcome{Line: st.line, Statement: st.text, Result: res, Err: err}
			return nil
		})
	}
	if err := eg.Wait(); err != nil {
		return nil, err
	}
	return outcomes, nil
}
