package commands

import (
	"github.com/spf13/cobra"
)

// NewOperatorsCommand creates the operators command.
func NewOperatorsCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "operators",
		Short: "List the operator table",
		Long: `List every operator with its precedence, arity and associativity.

Higher precedence binds tighter. --right-assoc-power changes the
associativity of ^.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cmdCtx, err := NewCommandContext(cmd)
			if err != nil {
				return err
			}
			return cmdCtx.Renderer.RenderOperators(cmdCtx.Solver.Table().Defs())
		},
	}
}
