package commands

import (
	"context"
	"os/signal"
	"syscall"

	"github.com/leapstack-labs/mathdaddy/internal/cli/config"
	"github.com/leapstack-labs/mathdaddy/internal/server"
	"github.com/leapstack-labs/mathdaddy/pkg/mathdaddy"
	"github.com/spf13/cobra"
)

// NewServeCommand creates the serve command.
func NewServeCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the solver over HTTP",
		Long: `Start an HTTP server exposing the solver.

Routes:
  POST /solve      {"statement": "..."}
  GET  /solve?q=   statement in the query string
  POST /convert    postfix form and tokens, no evaluation
  GET  /convert?q=
  GET  /operators  the operator table
  GET  /events     server-sent reload events
  GET  /healthz

With --watch the config file is watched and the solver is rebuilt when it
changes. A config file that fails to load keeps the previous solver.`,
		Example: `  mathdaddy serve --addr :8723
  mathdaddy serve --config mathdaddy.yaml --watch`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cmdCtx, err := NewCommandContext(cmd)
			if err != nil {
				return err
			}

			configFile := config.GetConfigFileUsed()
			if cmdCtx.Cfg.Server.Watch && configFile == "" {
				cmdCtx.Logger.Warn("--watch has no effect without a config file")
			}

			flags := cmd.Flags()
			srv := server.New(server.Config{
				Addr:            cmdCtx.Cfg.Server.Addr,
				ShutdownTimeout: cmdCtx.Cfg.Server.ShutdownTimeout,
				Solver:          cmdCtx.Solver,
				Watch:           cmdCtx.Cfg.Server.Watch,
				ConfigFile:      configFile,
				Reload: func() (*mathdaddy.Solver, error) {
					cfg, err := config.LoadConfig(configFile, flags)
					if err != nil {
						return nil, err
					}
					return NewSolver(cfg, cmdCtx.Logger), nil
				},
				Logger: cmdCtx.Logger,
			})

			ctx := cmd.Context()
			if ctx == nil {
				ctx = context.Background()
			}
			ctx, stop := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM)
			defer stop()

			return srv.Serve(ctx)
		},
	}

	cmd.Flags().String("addr", config.DefaultServerAddr, "Address to listen on")
	cmd.Flags().Bool("watch", false, "Reload the solver when the config file changes")
	cmd.Flags().Duration("shutdown-timeout", config.DefaultShutdownTimeout, "Grace period for in-flight requests on shutdown")

	return cmd
}
