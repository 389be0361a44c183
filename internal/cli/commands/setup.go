package commands

import (
	"log/slog"

	"github.com/leapstack-labs/mathdaddy/internal/cli/config"
	"github.com/leapstack-labs/mathdaddy/internal/cli/output"
	"github.com/leapstack-labs/mathdaddy/pkg/core"
	"github.com/leapstack-labs/mathdaddy/pkg/mathdaddy"
	"github.com/spf13/cobra"
)

// CommandContext holds common dependencies for CLI commands.
type CommandContext struct {
	Cfg      *config.Config
	Logger   *slog.Logger
	Solver   *mathdaddy.Solver
	Renderer *output.Renderer
}

// NewCommandContext creates a CommandContext with a solver and renderer
// built from the loaded configuration.
func NewCommandContext(cmd *cobra.Command) (*CommandContext, error) {
	cfg := getConfig()
	logger := config.GetLogger(cmd.Context())

	r := output.NewRenderer(cmd.OutOrStdout(), cmd.ErrOrStderr(), output.Mode(cfg.OutputFormat))
	if err := r.SetLocale(cfg.Locale); err != nil {
		return nil, err
	}

	return &CommandContext{
		Cfg:      cfg,
		Logger:   logger,
		Solver:   NewSolver(cfg, logger),
		Renderer: r,
	}, nil
}

// NewSolver builds a solver from configuration.
func NewSolver(cfg *config.Config, logger *slog.Logger) *mathdaddy.Solver {
	var opts []core.TableOption
	if cfg.RightAssocPower {
		opts = append(opts, core.WithRightAssociativePower())
	}
	return mathdaddy.New(mathdaddy.Config{
		Table:    core.DefaultOperatorTable(opts...),
		Bindings: cfg.Bindings,
		Strict:   cfg.Strict,
		Logger:   logger,
	})
}

// getConfig returns the current configuration, or defaults when no
// configuration was loaded.
func getConfig() *config.Config {
	if cfg := config.GetCurrentConfig(); cfg != nil {
		return cfg
	}
	return config.Default()
}
