// Package services talks to the album backend and exposes the catalogue to the views.
//
// # API Client
//
// [APIService] issues GET requests with an explicit JSON Accept header. [APIService.GetJSON]
// fails with an [*HTTPError] for any non-2xx status, whose message is "HTTP <status>". It wraps
// [shared.ErrHTTPStatus]. There are no retries and no client timeout. Cancellation follows the caller's context.
//
// # Request Cache
//
// [RequestCache] is an explicitly scoped cache of resolved fetches, created once per process and
// handed to every view at construction. Views invalidate their own key on mount, so a navigation
// always starts a fresh fetch cycle while repeated renders within the same mount reuse the result.
//
// # Catalog
//
// [Catalog] is what the web views and the TUI consume. [AlbumService] implements it on top of
// the client, the cache and the normalization in the models package:
//   - GET /api/albums/      → []models.AlbumSummary (cache key "albums")
//   - GET /api/albums/{id}/ → *models.Album         (cache key "album:{id}")
package services
