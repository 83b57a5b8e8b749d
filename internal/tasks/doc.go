// Package tasks runs bulk album operations with progress reporting.
//
// # Export
//
// [ExportEngine.Run] resolves the albums to export (explicit ids, or the whole list projection), fetches every
// detail projection concurrently through a services.Catalog, and writes the normalized albums with the formatter.
//
// Fetches run in an errgroup bounded by [ExportOpts.NumWorkers] and are throttled by a token bucket limiter
// ([ExportOpts.RateLimit] per second). A single album failing is recorded on its [AlbumResult] and the run carries
// on. Results always keep list order, whatever order the fetches finish in.
//
// # Progress Reporting
//
// Operations send [ProgressUpdate] values on an optional channel. Sends never block: when the channel is full the
// update is dropped.
package tasks
