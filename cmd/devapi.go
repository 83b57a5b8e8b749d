package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/desertthunder/musicdb/internal/devapi"
	"github.com/desertthunder/musicdb/internal/repositories"
	"github.com/desertthunder/musicdb/internal/server"
	"github.com/desertthunder/musicdb/internal/shared"
	"github.com/urfave/cli/v3"
)

// DevAPIServe serves the album backend from the local SQLite database until interrupted.
func (r *Runner) DevAPIServe(ctx context.Context, cmd *cli.Command) error {
	config := r.loadConfig(cmd.String("config"))

	db, err := r.openDatabase(config)
	if err != nil {
		return err
	}
	defer db.Close()

	repo := repositories.NewAlbumRepository(db)

	if cmd.Bool("seed") {
		albums, _, _, err := repo.Counts(ctx)
		if err != nil {
			return fmt.Errorf("failed to count albums: %w", err)
		}
		if albums == 0 {
			res, err := repositories.Seed(ctx, db, repositories.SampleCatalogue)
			if err != nil {
				return fmt.Errorf("failed to seed database: %w", err)
			}
			r.logger.Info("seeded sample catalogue", "albums", res.Albums, "songs", res.Songs, "tracks", res.Tracks)
		}
	}

	router := server.NewBasicRouter()
	router.Use(server.RequestID(), server.Logging(r.logger), server.Recover(r.logger))
	router.Handler(devapi.NewHandler(repo, shared.WithLogger(r.logger, "component", "devapi")))

	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	addr := fmt.Sprintf("%s:%d", config.Server.Host, cmd.Int("port"))
	return server.Serve(ctx, addr, router, r.logger)
}

// DevAPISeed replaces the local catalogue with the sample albums.
func (r *Runner) DevAPISeed(ctx context.Context, cmd *cli.Command) error {
	config := r.loadConfig(cmd.String("config"))

	db, err := r.openDatabase(config)
	if err != nil {
		return err
	}
	defer db.Close()

	res, err := repositories.Seed(ctx, db, repositories.SampleCatalogue)
	if err != nil {
		return fmt.Errorf("failed to seed database: %w", err)
	}

	r.writePlainHeader("Seed Complete")
	r.writePlain("Albums: %d\n", res.Albums)
	r.writePlain("Songs:  %d\n", res.Songs)
	return r.writePlain("Tracks: %d\n", res.Tracks)
}
