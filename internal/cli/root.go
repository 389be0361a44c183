// Package cli provides the command-line interface for mathdaddy.
package cli

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/leapstack-labs/mathdaddy/internal/cli/commands"
	"github.com/leapstack-labs/mathdaddy/internal/cli/config"
	"github.com/leapstack-labs/mathdaddy/internal/cli/output"
	"github.com/spf13/cobra"
)

var cfgFile string

// Version information (set at build time).
var (
	Version   = "0.1.0"
	BuildDate = "unknown"
	GitCommit = "unknown"
)

// NewRootCmd creates and returns the root command.
func NewRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "mathdaddy",
		Short: "mathdaddy - arithmetic in any notation",
		Long: `mathdaddy evaluates arithmetic statements written in infix, prefix or
postfix notation.

The notation is detected from where the operators sit, the statement is
converted to postfix and the postfix sequence is evaluated.`,
		Version: Version,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			// Skip config loading for help and completion commands
			if cmd.Name() == "help" || cmd.Name() == "completion" || cmd.Name() == "__complete" {
				return nil
			}

			// Flags() holds the command's own flags merged with the inherited persistent ones.
			cfg, err := config.LoadConfig(cfgFile, cmd.Flags())
			if err != nil {
				return err
			}

			logger := NewLogger(cmd.ErrOrStderr(), cfg.Verbose)
			ctx := cmd.Context()
			if ctx == nil {
				ctx = context.Background()
			}
			cmd.SetContext(context.WithValue(ctx, config.LoggerKey(), logger))

			if configFile := config.GetConfigFileUsed(); configFile != "" {
				logger.Debug("using config file", "path", configFile)
			}

			return nil
		},
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	// Set version template
	rootCmd.SetVersionTemplate(`{{.Name}} {{.Version}}
`)

	// Global persistent flags
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default: ./mathdaddy.yaml, searched upward)")
	rootCmd.PersistentFlags().BoolP("verbose", "v", false, "Verbose output")
	rootCmd.PersistentFlags().StringP("output", "o", config.DefaultOutput, "Output format (text|table|json|yaml|markdown)")
	rootCmd.PersistentFlags().Bool("strict", false, "Treat every symbol as unresolved, ignoring bindings")
	rootCmd.PersistentFlags().Bool("right-assoc-power", false, "Group ^ right to left (2 ^ 3 ^ 2 = 512)")
	rootCmd.PersistentFlags().StringArray("bind", nil, "Bind a symbol to a value, name=value (repeatable)")
	rootCmd.PersistentFlags().String("locale", config.DefaultLocale, "Locale for digit grouping on a terminal")

	// Register completion for output flag
	_ = rootCmd.RegisterFlagCompletionFunc("output", func(_ *cobra.Command, _ []string, _ string) ([]string, cobra.ShellCompDirective) {
		return config.OutputFormats, cobra.ShellCompDirectiveNoFileComp
	})

	// Add subcommands
	rootCmd.AddCommand(commands.NewVersionCommand(Version, GitCommit, BuildDate))
	rootCmd.AddCommand(commands.NewSolveCommand())
	rootCmd.AddCommand(commands.NewConvertCommand())
	rootCmd.AddCommand(commands.NewREPLCommand())
	rootCmd.AddCommand(commands.NewBatchCommand())
	rootCmd.AddCommand(commands.NewServeCommand())
	rootCmd.AddCommand(commands.NewOperatorsCommand())
	rootCmd.AddCommand(NewCompletionCommand())

	return rootCmd
}

// Execute runs the root command.
func Execute() error {
	rootCmd := NewRootCmd()
	if err := rootCmd.Execute(); err != nil {
		r := output.NewRenderer(os.Stdout, os.Stderr, output.ModeText)
		r.Errorf("Error: %v", err)
		return err
	}
	return nil
}

// NewLogger creates the CLI logger. Info and above always reach w; verbose
// adds debug output.
func NewLogger(w io.Writer, verbose bool) *slog.Logger {
	level := slog.LevelInfo
	if verbose {
		level = slog.LevelDebug
	}
	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: level}))
}

// NewCompletionCommand creates the completion command.
func NewCompletionCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "completion [bash|zsh|fish|powershell]",
		Short: "Generate shell completion scripts",
		Long: fmt.Sprintf(`Generate shell completion scripts for mathdaddy.

To load completions:

Bash:
  $ source <(%[1]s completion bash)

Zsh:
  $ %[1]s completion zsh > "${fpath[1]}/_%[1]s"

Fish:
  $ %[1]s completion fish | source

PowerShell:
  PS> %[1]s completion powershell | Out-String | Invoke-Expression
`, "mathdaddy"),
		DisableFlagsInUseLine: true,
		ValidArgs:             []string{"bash", "zsh", "fish", "powershell"},
		Args:                  cobra.MatchAll(cobra.ExactArgs(1), cobra.OnlyValidArgs),
		RunE: func(cmd *cobra.Command, args []string) error {
			out := cmd.OutOrStdout()
			switch args[0] {
			case "bash":
				return cmd.Root().GenBashCompletion(out)
			case "zsh":
				return cmd.Root().GenZshCompletion(out)
			case "fish":
				return cmd.Root().GenFishCompletion(out, true)
			case "powershell":
				return cmd.Root().GenPowerShellCompletionWithDesc(out)
			}
			return nil
		},
	}
	return cmd
}
