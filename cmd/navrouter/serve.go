package main

import (
	"context"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"github.com/vango-dev/navrouter/internal/config"
	"github.com/vango-dev/navrouter/internal/errors"
	"github.com/vango-dev/navrouter/pkg/bridge"
	"github.com/vango-dev/navrouter/pkg/middleware"
	"github.com/vango-dev/navrouter/pkg/router"
	"github.com/vango-dev/navrouter/pkg/routestate"
)

func serveCmd(load configLoader) *cobra.Command {
	var addr string

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the browser history bridge",
		Long: `Run the browser history bridge server.

Pages that load /navrouter.js connect over a WebSocket and keep a
server-side route store in sync with their history. Each route change
is logged.

Examples:
  navrouter serve
  navrouter serve --addr=:9090`,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := load()
			if err != nil {
				return err
			}
			if addr != "" {
				cfg.Bridge.Addr = addr
			}
			ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()
			return runServe(ctx, cmd, cfg)
		},
	}

	cmd.Flags().StringVarP(&addr, "addr", "a", "", "Listen address (default from config)")
	return cmd
}

// bridgeConfig translates configuration into bridge options.
func bridgeConfig(cfg *config.Config, cmd *cobra.Command) bridge.Config {
	logger := newLogger(cmd.ErrOrStderr(), cfg)

	var mw []router.Middleware
	if cfg.Metrics.Enabled {
		mw = append(mw, middleware.Prometheus(middleware.WithNamespace(cfg.Metrics.Namespace)))
	}
	if cfg.Tracing.Enabled {
		mw = append(mw, middleware.OpenTelemetry(middleware.WithTracerName(cfg.Tracing.TracerName)))
	}

	return bridge.Config{
		Path:             cfg.Bridge.Path,
		AllowedOrigins:   cfg.Bridge.AllowedOrigins,
		WriteTimeout:     cfg.Bridge.WriteTimeout,
		EnableMetrics:    cfg.Metrics.Enabled,
		NavigatorOptions: []router.NavigatorOption{router.WithMiddleware(mw...)},
		Logger:           logger,
		OnSession: func(s *bridge.Session) {
			log := logger.With("session_id", s.ID)
			s.Store.Subscribe(func(st routestate.State) {
				log.Info("route changed", "url", st.URL)
			})
		},
	}
}

func runServe(ctx context.Context, cmd *cobra.Command, cfg *config.Config) error {
	bcfg := bridgeConfig(cfg, cmd)
	srv := &http.Server{
		Addr:              cfg.Bridge.Addr,
		Handler:           bridge.New(bcfg),
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		errCh <- srv.ListenAndServe()
	}()
	success(cmd.OutOrStdout(), "bridge listening on %s%s", cfg.Bridge.Addr, cfg.Bridge.Path)

	select {
	case err := <-errCh:
		return errors.New("E301").Wrap(err)
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return errors.New("E301").Wrap(err)
	}
	bcfg.Logger.Info("bridge stopped")
	return nil
}
