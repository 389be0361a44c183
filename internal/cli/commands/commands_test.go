// Package commands_test provides tests for CLI command creation and execution.
package commands

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/leapstack-labs/mathdaddy/internal/cli/config"
	clitest "github.com/leapstack-labs/mathdaddy/internal/cli/testutil"
	"github.com/leapstack-labs/mathdaddy/pkg/core"
	"github.com/leapstack-labs/mathdaddy/pkg/mathdaddy"
	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// useConfig loads yaml as the current configuration for one test.
func useConfig(t *testing.T, yaml string) *config.Config {
	t.Helper()
	config.ResetConfig()
	t.Cleanup(config.ResetConfig)

	path := filepath.Join(t.TempDir(), config.ConfigFileName)
	require.NoError(t, os.WriteFile(path, []byte(yaml), 0o600))
	cfg, err := config.LoadConfig(path, nil)
	require.NoError(t, err)
	return cfg
}

// useDefaults clears any loaded configuration for one test.
func useDefaults(t *testing.T) {
	t.Helper()
	config.ResetConfig()
	t.Cleanup(config.ResetConfig)
}

func execute(cmd *cobra.Command, stdin string, args ...string) (string, string, error) {
	out, errOut := new(bytes.Buffer), new(bytes.Buffer)
	cmd.SetIn(strings.NewReader(stdin))
	cmd.SetOut(out)
	cmd.SetErr(errOut)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), errOut.String(), err
}

func TestNewSolveCommand(t *testing.T) {
	cmd := NewSolveCommand()

	assert.Equal(t, "solve [statement...]", cmd.Use)
	assert.NotEmpty(t, cmd.Short, "Short should not be empty")
	assert.NotEmpty(t, cmd.Example, "Example should not be empty")
	assert.NotNil(t, cmd.Flags().Lookup("explain"))
	assert.Equal(t, "eval", cmd.Aliases[0])
}

func TestSolveCommand(t *testing.T) {
	tests := []struct {
		name  string
		stdin string
		args  []string
		want  string
	}{
		{"infix", "", []string{"3 + 4 * 2"}, "11\n"},
		{"joined args", "", []string{"(", "3", "+", "4", ")", "*", "2"}, "14\n"},
		{"prefix after --", "", []string{"--", "- 10 4"}, "6\n"},
		{"postfix", "", []string{"3 2 +"}, "5\n"},
		{"stdin", "  3 2 +\n", nil, "5\n"},
		{"decimal", "", []string{".5 + 1"}, "1.5\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			useDefaults(t)
			out, _, err := execute(NewSolveCommand(), tt.stdin, tt.args...)
			require.NoError(t, err)
			assert.Equal(t, tt.want, out)
		})
	}
}

func TestSolveCommand_Explain(t *testing.T) {
	useDefaults(t)
	out, _, err := execute(NewSolveCommand(), "", "-e", "2 ^ 3 ^ 2")
	require.NoError(t, err)
	assert.Contains(t, out, "notation: infix")
	assert.Contains(t, out, "2 3 ^ 2 ^")
	assert.True(t, strings.HasSuffix(out, "64\n"), out)
	clitest.AssertNoANSI(t, out)
}

func TestSolveCommand_Errors(t *testing.T) {
	useDefaults(t)

	_, _, err := execute(NewSolveCommand(), "", "( 3 + 4")
	assert.ErrorIs(t, err, core.ErrUnbalancedParentheses)

	_, _, err = execute(NewSolveCommand(), "", "3 + x")
	assert.ErrorIs(t, err, core.ErrUnresolvedSymbol)

	_, _, err = execute(NewSolveCommand(), "   \n")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "no statement given")
}

func TestSolveCommand_Config(t *testing.T) {
	useConfig(t, "output: json\nright_assoc_power: true\nbindings:\n  x: 2\n")

	out, _, err := execute(NewSolveCommand(), "", "x ^ 3 ^ 2")
	require.NoError(t, err)

	var got mathdaddy.Result
	require.NoError(t, json.Unmarshal([]byte(out), &got))
	assert.Equal(t, "512", got.Display)
	assert.Equal(t, "x 3 2 ^ ^", got.Postfix)
	assert.Equal(t, "x ^ 3 ^ 2", got.Statement)
}

func TestSolveCommand_Strict(t *testing.T) {
	useConfig(t, "strict: true\nbindings:\n  x: 2\n")

	_, _, err := execute(NewSolveCommand(), "", "3 + x")
	assert.ErrorIs(t, err, core.ErrUnresolvedSymbol)
}

func TestConvertCommand(t *testing.T) {
	useDefaults(t)

	out, _, err := execute(NewConvertCommand(), "", "a * ( b + c ) / d")
	require.NoError(t, err)
	assert.Equal(t, "a b c + d / *\n", out)

	_, _, err = execute(NewConvertCommand(), "", ") 1 (")
	assert.ErrorIs(t, err, core.ErrUnbalancedParentheses)
}

func TestConvertCommand_Markdown(t *testing.T) {
	useConfig(t, "output: markdown\n")

	out, _, err := execute(NewConvertCommand(), "", "--", "+ 3 x")
	require.NoError(t, err)
	assert.Contains(t, out, "**prefix**: `3 x +`")
	assert.Contains(t, out, "| 3 | SYMBOL | `x` | 5 |")
}

func TestOperatorsCommand(t *testing.T) {
	useConfig(t, "right_assoc_power: true\noutput: markdown\n")

	out, _, err := execute(NewOperatorsCommand(), "")
	require.NoError(t, err)
	assert.Contains(t, out, "| `^` | power | 5 | binary | right |")
	assert.Contains(t, out, "| `√` | sqrt | 6 | unary | left |")
	clitest.AssertValidMarkdownTable(t, out)
}

func TestNewBatchCommand(t *testing.T) {
	cmd := NewBatchCommand()

	assert.Equal(t, "batch [file|-]", cmd.Use)
	assert.NotEmpty(t, cmd.Short, "Short should not be empty")
	assert.NotNil(t, cmd.Flags().Lookup("workers"))
}

func TestBatchCommand(t *testing.T) {
	useDefaults(t)
	path := clitest.WriteStatements(t, "3 + 4", "", "# comment", "+ 3 2", "3 +")

	out, _, err := execute(NewBatchCommand(), "", path)
	require.Error(t, err)
	assert.Equal(t, "1 of 3 statements failed", err.Error())

	lines := strings.Split(strings.TrimSpace(out), "\n")
	require.Len(t, lines, 3)
	assert.Equal(t, "1: 3 + 4 = 7", lines[0])
	assert.Equal(t, "4: + 3 2 = 5", lines[1])
	assert.True(t, strings.HasPrefix(lines[2], "5: 3 + error: stack underflow"), lines[2])
}

func TestBatchCommand_Stdin(t *testing.T) {
	useConfig(t, "output: json\n")

	out, _, err := execute(NewBatchCommand(), "1 + 1\n( 3 + 4 ) * 2\n", "-")
	require.NoError(t, err)

	var got []map[string]any
	require.NoError(t, json.Unmarshal([]byte(out), &got))
	require.Len(t, got, 2)
	assert.Equal(t, "2", got[0]["value"])
	assert.Equal(t, "14", got[1]["value"])
	assert.EqualValues(t, 2, got[1]["line"])
}

func TestBatchCommand_MissingFile(t *testing.T) {
	useDefaults(t)
	_, _, err := execute(NewBatchCommand(), "", filepath.Join(t.TempDir(), "missing.txt"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to open")
}

func TestSolveAll_PreservesOrder(t *testing.T) {
	var statements []statement
	for i := 1; i <= 100; i++ {
		statements = append(statements, statement{line: i, text: fmt.Sprintf("%d * 2", i)})
	}

	outcomes, err := solveAll(context.Background(), mathdaddy.New(mathdaddy.Config{}), statements, 3)
	require.NoError(t, err)
	require.Len(t, outcomes, 100)
	for i, o := range outcomes {
		require.NoError(t, o.Err)
		assert.Equal(t, i+1, o.Line)
		assert.Equal(t, float64(2*(i+1)), o.Result.Value)
	}
}

func TestSolveAll_Cancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := solveAll(ctx, mathdaddy.New(mathdaddy.Config{}), []statement{{line: 1, text: "1 + 1"}}, 1)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestReadStatements(t *testing.T) {
	got, err := readStatements(strings.NewReader("  1 + 1  \n\n# skip\n2 3 *\n"))
	require.NoError(t, err)
	assert.Equal(t, []statement{{line: 1, text: "1 + 1"}, {line: 4, text: "2 3 *"}}, got)
}

func TestNewREPLCommand(t *testing.T) {
	cmd := NewREPLCommand()

	assert.Equal(t, "repl", cmd.Use)
	assert.NotEmpty(t, cmd.Short, "Short should not be empty")
	assert.NotNil(t, cmd.Flags().Lookup("history"))
}

func TestREPLCommand_Script(t *testing.T) {
	useDefaults(t)

	script := strings.Join([]string{
		"3 + 4",
		".bind x = 2",
		"x * 10",
		".vars",
		".unbind x",
		"x",
		".bogus",
		".quit",
		"1 + 1",
	}, "\n")

	out, errOut, err := execute(NewREPLCommand(), script, "--history", "")
	require.NoError(t, err)
	assert.Equal(t, "7\n20\nx = 2\n", out)
	assert.Contains(t, errOut, "unresolved symbol")
	assert.Contains(t, errOut, "Unknown command: .bogus")
}

func TestREPLSession(t *testing.T) {
	cfg := useConfig(t, "bindings:\n  rate: 0.5\n")
	tr := clitest.NewTestRendererText()
	sess := newREPLSession(&CommandContext{
		Cfg:      cfg,
		Logger:   config.GetLogger(context.Background()),
		Solver:   NewSolver(cfg, nil),
		Renderer: tr.Renderer,
	})

	assert.False(t, sess.handleLine("100 * rate"))
	assert.Equal(t, "50\n", tr.Output())

	tr.Reset()
	assert.False(t, sess.handleLine(".bind"))
	assert.Contains(t, tr.ErrorOutput(), "Usage: .bind")

	tr.Reset()
	assert.False(t, sess.handleLine(".bind 9=1"))
	assert.Contains(t, tr.ErrorOutput(), "invalid binding name")

	tr.Reset()
	assert.False(t, sess.handleLine(".unbind nope"))
	assert.Contains(t, tr.ErrorOutput(), "nope is not bound")

	tr.Reset()
	assert.False(t, sess.handleLine(".help"))
	assert.Contains(t, tr.Output(), ".bind <name>=<value>")

	assert.True(t, sess.handleLine(".EXIT"))

	// Session bindings never leak back into the config.
	assert.False(t, sess.handleLine(".bind extra=1"))
	assert.NotContains(t, cfg.Bindings, "extra")
	assert.Equal(t, []string{"extra", "rate"}, sess.boundNames())
	assert.NotNil(t, sess.completer())
}

func TestNewServeCommand(t *testing.T) {
	cmd := NewServeCommand()

	assert.Equal(t, "serve", cmd.Use)
	assert.NotEmpty(t, cmd.Short, "Short should not be empty")
	for _, flag := range []string{"addr", "watch", "shutdown-timeout"} {
		assert.NotNil(t, cmd.Flags().Lookup(flag), "flag %q should exist", flag)
	}
}

func TestNewSolver(t *testing.T) {
	cfg := config.Default()
	cfg.RightAssocPower = true
	cfg.Bindings["n"] = 3

	solver := NewSolver(cfg, nil)
	res, err := solver.Solve("2 ^ n ^ 2")
	require.NoError(t, err)
	assert.Equal(t, 512.0, res.Value)

	cfg.Strict = true
	_, err = NewSolver(cfg, nil).Solve("2 ^ n ^ 2")
	assert.ErrorIs(t, err, core.ErrUnresolvedSymbol)
}
