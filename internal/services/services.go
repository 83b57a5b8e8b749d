package services

import (
	"context"

	"github.com/desertthunder/musicdb/internal/models"
)

// Catalog defines read access to the album backend as consumed by the views.
type Catalog interface {
	// ListAlbums fetches the list projection of every album.
	ListAlbums(ctx context.Context) ([]models.AlbumSummary, error)

	// GetAlbum fetches and normalizes the detail projection of one album.
	GetAlbum(ctx context.Context, id string) (*models.Album, error)

	// Invalidate drops a cached result so the next call fetches again.
	Invalidate(key string)
}

// ListCacheKey is the cache key of the album list fetch.
const ListCacheKey = "albums"

// AlbumCacheKey returns the cache key of a single album fetch.
func AlbumCacheKey(id string) string {
	return "album:" + id
}
