package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/desertthunder/musicdb/internal/server"
	"github.com/desertthunder/musicdb/internal/shared"
	"github.com/desertthunder/musicdb/internal/web"
	"github.com/urfave/cli/v3"
)

// Serve runs the album frontend until interrupted.
func (r *Runner) Serve(ctx context.Context, cmd *cli.Command) error {
	cfg := *r.config
	if port := cmd.Int("port"); port > 0 {
		cfg.Server.Port = port
	}
	if cmd.Bool("dev-proxy") {
		cfg.Server.DevProxy = true
	}
	if err := cfg.Validate(); err != nil {
		return err
	}

	router, err := r.frontendRouter(&cfg)
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	return server.Serve(ctx, cfg.Server.Addr(), router, r.logger)
}

// frontendRouter mounts the dev proxy (when enabled) ahead of the views.
func (r *Runner) frontendRouter(cfg *shared.Config) (*server.BasicRouter, error) {
	router := server.NewBasicRouter()
	router.Use(server.RequestID(), server.Logging(r.logger), server.Recover(r.logger))

	if cfg.Server.DevProxy {
		proxy, err := server.NewDevProxy(cfg.Proxy.Target, cfg.Proxy.Prefixes, r.logger)
		if err != nil {
			return nil, err
		}
		router.Handler(proxy)
		r.logger.Info("dev proxy enabled", "target", proxy.Target(), "prefixes", cfg.Proxy.Prefixes)
	}

	app, err := web.NewApp(r.catalog, shared.WithLogger(r.logger, "component", "web"))
	if err != nil {
		return nil, fmt.Errorf("failed to create frontend: %w", err)
	}
	app.Mount(router)

	return router, nil
}
