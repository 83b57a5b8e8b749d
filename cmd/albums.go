package main

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/desertthunder/musicdb/internal/formatter"
	"github.com/desertthunder/musicdb/internal/shared"
	"github.com/desertthunder/musicdb/internal/tasks"
	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"
	"github.com/urfave/cli/v3"
)

// AlbumsList prints every album as a table, or as JSON with --json.
func (r *Runner) AlbumsList(ctx context.Context, cmd *cli.Command) error {
	albums, err := r.catalog.ListAlbums(ctx)
	if err != nil {
		return fmt.Errorf("%w: %v", shared.ErrAPIRequest, err)
	}

	if cmd.Bool("json") {
		return r.writeJSON(albums, true)
	}

	if len(albums) == 0 {
		return r.writePlain("No albums\n")
	}

	tw := table.NewWriter()
	tw.SetOutputMirror(r.output)
	tw.SetStyle(table.StyleLight)
	tw.AppendHeader(table.Row{"ID", "Title", "Artist", "Price"})
	for _, a := range albums {
		tw.AppendRow(table.Row{a.ID, a.Title, a.Artist, "$" + a.PriceText()})
	}
	tw.SetColumnConfigs([]table.ColumnConfig{
		{Number: 1, Align: text.AlignRight},
		{Number: 4, Align: text.AlignRight},
	})
	tw.Render()
	return nil
}

// AlbumsShow prints one album with its tracklist.
func (r *Runner) AlbumsShow(ctx context.Context, cmd *cli.Command) error {
	id := strings.TrimSpace(cmd.StringArg("id"))
	if id == "" {
		return fmt.Errorf("%w: album id", shared.ErrMissingArgument)
	}

	album, err := r.catalog.GetAlbum(ctx, id)
	if err != nil {
		return fmt.Errorf("%w: %v", shared.ErrAPIRequest, err)
	}

	if cmd.Bool("json") {
		return r.writeJSON(album, true)
	}

	r.writePlainHeader(album.Title)
	r.writePlain("Artist: %s\n", album.Artist)
	if album.HasReleaseYear() {
		r.writePlain("Released: %d\n", album.ReleaseYear)
	}
	if album.Description != "" {
		r.writePlainln("%s", album.Description)
	}

	r.writePlainln("Tracklist")
	if len(album.Tracks) == 0 {
		return r.writePlain("No tracks\n")
	}
	for _, t := range album.Tracks {
		if err := r.writePlain("  %s\n", t.Label()); err != nil {
			return err
		}
	}
	return nil
}

// AlbumsExport fetches album details concurrently and writes them in the chosen format.
func (r *Runner) AlbumsExport(ctx context.Context, cmd *cli.Command) error {
	format, err := formatter.ParseFormat(cmd.String("format"))
	if err != nil {
		return err
	}

	opts := tasks.ExportOpts{
		Format:     format,
		Output:     cmd.String("output"),
		IDs:        cmd.StringSlice("id"),
		NumWorkers: cmd.Int("workers"),
		RateLimit:  cmd.Float("rate"),
	}

	progress := make(chan tasks.ProgressUpdate, 16)
	done := make(chan struct{})
	go func() {
		defer close(done)
		for update := range progress {
			r.logger.Info(update.Message, "phase", update.Phase, "step", update.Step, "total", update.Total)
		}
	}()

	start := time.Now()
	result, err := r.engine.Run(ctx, progress, opts)
	close(progress)
	<-done
	if err != nil {
		return fmt.Errorf("export failed: %w", err)
	}

	for _, f := range result.Failures() {
		r.logger.Warn("album skipped", "id", f.ID, "album", f.Name(), "error", f.Error)
	}

	r.writePlainHeader("Export Complete")
	r.writePlain("Format:   %s\n", format)
	r.writePlain("Albums:   %d exported, %d failed\n", result.SuccessCount, result.FailedCount)
	r.writePlain("Duration: %s\n", time.Since(start).Round(time.Millisecond))
	return r.writePlain("Output:   %s\n", result.Path)
}
