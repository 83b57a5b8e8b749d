// package tasks implements bulk album operations against the album backend.
package tasks

import (
	"context"
	"fmt"
	"sync/atomic"

	"github.com/desertthunder/musicdb/internal/formatter"
	"github.com/desertthunder/musicdb/internal/models"
	"github.com/desertthunder/musicdb/internal/services"
	"github.com/desertthunder/musicdb/internal/shared"
	"golang.org/x/sync/errgroup"
	"golang.org/x/time/rate"
)

const (
	DefaultWorkers   = 5
	MaxWorkers       = 10
	DefaultRateLimit = 5.0
)

// ExportOpts contains configuration for an album export.
type ExportOpts struct {
	Format     formatter.Format // Export format; empty collects without writing
	Output     string           // Output path (default: [formatter.DefaultPath])
	IDs        []string         // Albums to export; empty exports the whole list
	NumWorkers int              // Concurrent detail fetches (default: 5, max: 10)
	RateLimit  float64          // Detail fetches per second (default: 5)
}

func (o *ExportOpts) defaults() {
	if o.NumWorkers <= 0 {
		o.NumWorkers = DefaultWorkers
	}
	if o.NumWorkers > MaxWorkers {
		o.NumWorkers = MaxWorkers
	}
	if o.RateLimit <= 0 {
		o.RateLimit = DefaultRateLimit
	}
}

// AlbumResult is the outcome of fetching one album's detail projection.
type AlbumResult struct {
	ID    string
	Title string        // list title, known before the detail fetch
	Album *models.Album // nil when the fetch failed
	Error error
}

// Name is the best available display name for the album.
func (r AlbumResult) Name() string {
	if r.Album != nil && r.Album.Title != "" {
		return r.Album.Title
	}
	if r.Title != "" {
		return r.Title
	}
	return fmt.Sprintf("album %s", r.ID)
}

// ExportResult contains all data from an export run. Results keep list order.
type ExportResult struct {
	Results      []AlbumResult
	SuccessCount int
	FailedCount  int
	Path         string // file written, empty when no format was requested
}

// Albums returns the successfully fetched albums in list order.
func (r *ExportResult) Albums() []models.Album {
	albums := make([]models.Album, 0, r.SuccessCount)
	for _, res := range r.Results {
		if res.Album != nil {
			albums = append(albums, *res.Album)
		}
	}
	return albums
}

// Failures returns the results whose fetch failed.
func (r *ExportResult) Failures() []AlbumResult {
	var failed []AlbumResult
	for _, res := range r.Results {
		if res.Error != nil {
			failed = append(failed, res)
		}
	}
	return failed
}

// ExportEngine fetches album details in bulk and writes them through the formatter.
type ExportEngine struct {
	catalog services.Catalog
}

// NewExportEngine creates an ExportEngine reading from catalog.
func NewExportEngine(catalog services.Catalog) *ExportEngine {
	return &ExportEngine{catalog: catalog}
}

// Run collects the requested albums and writes them in opts.Format.
//
// Per-album fetch failures are recorded on the result and do not abort the run.
// A failed list fetch or a canceled context does.
func (e *ExportEngine) Run(ctx context.Context, progress chan<- ProgressUpdate, opts ExportOpts) (*ExportResult, error) {
	result, err := e.Collect(ctx, progress, opts)
	if err != nil {
		return result, err
	}

	if opts.Format == "" {
		return result, nil
	}

	albums := result.Albums()
	e.sendProgress(progress, writeExportUpdate(string(opts.Format), len(albums)))

	path, err := formatter.WriteExport(opts.Format, albums, opts.Output)
	if err != nil {
		return result, fmt.Errorf("export completed but failed to write output: %w", err)
	}
	result.Path = path
	return result, nil
}

// Collect fetches the detail projection of every requested album concurrently.
func (e *ExportEngine) Collect(ctx context.Context, progress chan<- ProgressUpdate, opts ExportOpts) (*ExportResult, error) {
	if e.catalog == nil {
		return nil, fmt.Errorf("%w: catalog not initialized", shared.ErrServiceUnavailable)
	}
	opts.defaults()

	targets, err := e.targets(ctx, progress, opts.IDs)
	if err != nil {
		return nil, err
	}

	result := &ExportResult{Results: make([]AlbumResult, len(targets))}
	limiter := rate.NewLimiter(rate.Limit(opts.RateLimit), 1)

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(opts.NumWorkers)

	var completed atomic.Int32
	for i, target := range targets {
		g.Go(func() error {
			if err := limiter.Wait(gctx); err != nil {
				return err
			}

			res := target
			res.Album, res.Error = e.catalog.GetAlbum(gctx, target.ID)
			if res.Error != nil && gctx.Err() != nil {
				return gctx.Err()
			}
			result.Results[i] = res

			step := int(completed.Add(1))
			if res.Error != nil {
				e.sendProgress(progress, albumFailedUpdate(step, len(targets), res))
			} else {
				e.sendProgress(progress, albumFetchedUpdate(step, len(targets), res))
			}
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, fmt.Errorf("export canceled: %w", err)
	}

	for _, res := range result.Results {
		if res.Error != nil {
			result.FailedCount++
		} else {
			result.SuccessCount++
		}
	}
	return result, nil
}

// targets resolves the albums to fetch: the given ids, or the whole list in list order.
func (e *ExportEngine) targets(ctx context.Context, progress chan<- ProgressUpdate, ids []string) ([]AlbumResult, error) {
	if len(ids) > 0 {
		targets := make([]AlbumResult, len(ids))
		for i, id := range ids {
			targets[i] = AlbumResult{ID: id}
		}
		return targets, nil
	}

	e.sendProgress(progress, fetchListUpdate())

	albums, err := e.catalog.ListAlbums(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch album list: %w", err)
	}

	targets := make([]AlbumResult, len(albums))
	for i, a := range albums {
		targets[i] = AlbumResult{ID: a.ID, Title: a.Title}
	}
	return targets, nil
}

// sendProgress sends a progress update through the channel without blocking.
func (e *ExportEngine) sendProgress(progress chan<- ProgressUpdate, update ProgressUpdate) {
	if progress == nil {
		return
	}
	select {
	case progress <- update:
	default:
	}
}
