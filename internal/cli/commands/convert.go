package commands

import (
	"github.com/spf13/cobra"
)

// NewConvertCommand creates the convert command.
func NewConvertCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "convert [statement...]",
		Short: "Convert a statement to postfix without evaluating it",
		Long: `Tokenize a statement, detect its notation and print the postfix form.

Symbols do not need bindings: nothing is evaluated. Use -o table to see
every token with its column.`,
		Example: `  mathdaddy convert "a * ( b + c ) / d"
  mathdaddy convert -o table -- "+ 3 * 4 2"`,
		RunE: func(cmd *cobra.Command, args []string) error {
			cmdCtx, err := NewCommandContext(cmd)
			if err != nil {
				return err
			}

			statement, err := statementFrom(cmd, args)
			if err != nil {
				return err
			}

			conv, err := cmdCtx.Solver.Convert(statement)
			if err != nil {
				return err
			}
			return cmdCtx.Renderer.RenderConversion(conv)
		},
	}
	return cmd
}
