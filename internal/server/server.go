// Package server exposes the solver over HTTP.
package server

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"path/filepath"
	"sync/atomic"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/leapstack-labs/mathdaddy/pkg/mathdaddy"
	"golang.org/x/sync/errgroup"
)

// ReloadFunc builds a fresh solver, typically from a re-read config file.
type ReloadFunc func() (*mathdaddy.Solver, error)

// Config holds configuration for the solve server.
type Config struct {
	Addr string
	// ShutdownTimeout bounds graceful shutdown (optional, 5s if zero)
	ShutdownTimeout time.Duration
	// Solver serves requests until the first reload (optional, uses a default solver if nil)
	Solver *mathdaddy.Solver
	// Watch reloads the solver when ConfigFile changes
	Watch      bool
	ConfigFile string
	Reload     ReloadFunc
	Logger     *slog.Logger
}

// Server serves solve requests. The active solver is swapped atomically on
// reload, so in-flight requests finish with the solver they started with.
type Server struct {
	addr            string
	shutdownTimeout time.Duration
	watch           bool
	configFile      string
	reload          ReloadFunc
	logger          *slog.Logger

	solver     atomic.Pointer[mathdaddy.Solver]
	generation atomic.Uint64
	events     *broadcaster
	bound      atomic.Pointer[net.Addr]
}

// New creates a new solve server.
func New(cfg Config) *Server {
	logger := cfg.Logger
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	solver := cfg.Solver
	if solver == nil {
		solver = mathdaddy.New(mathdaddy.Config{Logger: logger})
	}

	shutdownTimeout := cfg.ShutdownTimeout
	if shutdownTimeout <= 0 {
		shutdownTimeout = 5 * time.Second
	}

	s := &Server{
		addr:            cfg.Addr,
		shutdownTimeout: shutdownTimeout,
		watch:           cfg.Watch,
		configFile:      cfg.ConfigFile,
		reload:          cfg.Reload,
		logger:          logger,
		events:          newBroadcaster(),
	}
	s.solver.Store(solver)
	return s
}

// Solver returns the active solver.
func (s *Server) Solver() *mathdaddy.Solver {
	return s.solver.Load()
}

// Generation counts successful reloads.
func (s *Server) Generation() uint64 {
	return s.generation.Load()
}

// Addr returns the listening address once Serve has bound, or nil.
func (s *Server) Addr() net.Addr {
	if a := s.bound.Load(); a != nil {
		return *a
	}
	return nil
}

// Reload swaps in a solver built by the reload function and notifies
// event subscribers. The previous solver stays active on error.
func (s *Server) Reload() error {
	if s.reload == nil {
		return errors.New("no reload function configured")
	}
	solver, err := s.reload()
	if err != nil {
		return fmt.Errorf("reload failed: %w", err)
	}
	s.solver.Store(solver)
	gen := s.generation.Add(1)
	s.logger.Info("solver reloaded", "generation", gen)
	s.events.Broadcast(gen)
	return nil
}

// Handler returns the HTTP handler with all routes mounted.
func (s *Server) Handler() http.Handler {
	r := chi.NewMux()
	r.Use(
		middleware.RequestID,
		middleware.Logger,
		middleware.Recoverer,
	)
	s.routes(r)
	return r
}

// Serve starts the server and blocks until the context is cancelled.
func (s *Server) Serve(ctx context.Context) error {
	ln, err := net.Listen("tcp", s.addr)
	if err != nil {
		return fmt.Errorf("failed to listen on %s: %w", s.addr, err)
	}
	addr := ln.Addr()
	s.bound.Store(&addr)
	s.logger.Info("starting solve server", "addr", addr.String())

	eg, egctx := errgroup.WithContext(ctx)

	srv := &http.Server{
		Handler: s.Handler(),
		BaseContext: func(_ net.Listener) context.Context {
			return egctx
		},
		ReadHeaderTimeout: 10 * time.Second,
	}

	// Start config watcher if enabled
	if s.watch && s.configFile != "" {
		watcher, err := s.newConfigWatcher()
		if err != nil {
			_ = ln.Close()
			return err
		}
		eg.Go(func() error {
			return s.watchConfig(egctx, watcher)
		})
	}

	// Start HTTP server
	eg.Go(func() error {
		if err := srv.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("server error: %w", err)
		}
		return nil
	})

	// Graceful shutdown
	eg.Go(func() error {
		<-egctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), s.shutdownTimeout)
		defer cancel()

		s.logger.Debug("shutting down solve server...")
		s.events.Close()
		return srv.Shutdown(shutdownCtx)
	})

	return eg.Wait()
}

// newConfigWatcher watches the config file's directory. Editors often
// replace the file instead of writing it in place.
func (s *Server) newConfigWatcher() (*fsnotify.Watcher, error) {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("failed to create watcher: %w", err)
	}
	if err := watcher.Add(filepath.Dir(s.configFile)); err != nil {
		_ = watcher.Close()
		return nil, fmt.Errorf("failed to watch %s: %w", s.configFile, err)
	}
	return watcher, nil
}

// watchConfig reloads the solver when the config file changes.
func (s *Server) watchConfig(ctx context.Context, watcher *fsnotify.Watcher) error {
	defer func() { _ = watcher.Close() }()

	target := filepath.Clean(s.configFile)

	// Debounce timer
	var debounceTimer *time.Timer
	defer func() {
		if debounceTimer != nil {
			debounceTimer.Stop()
		}
	}()

	for {
		select {
		case <-ctx.Done():
			return nil

		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if event.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Rename) == 0 {
				continue
			}
			if filepath.Clean(event.Name) != target {
				continue
			}

			if debounceTimer != nil {
				debounceTimer.Stop()
			}
			debounceTimer = time.AfterFunc(100*time.Millisecond, func() {
				s.logger.Debug("config changed, reloading", "file", event.Name)
				if err := s.Reload(); err != nil {
					s.logger.Error("reload failed, keeping previous solver", "error", err)
				}
			})

		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			s.logger.Error("watcher error", "error", err)
		}
	}
}
