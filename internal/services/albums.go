package services

import (
	"context"
	"net/url"

	"github.com/desertthunder/musicdb/internal/models"
)

// AlbumService implements [Catalog] against the album backend.
type AlbumService struct {
	api   *APIService
	cache *RequestCache
}

var _ Catalog = (*AlbumService)(nil)

// NewAlbumService creates an AlbumService. A nil cache disables caching.
func NewAlbumService(api *APIService, cache *RequestCache) *AlbumService {
	return &AlbumService{api: api, cache: cache}
}

// ListAlbums fetches GET /api/albums/.
func (s *AlbumService) ListAlbums(ctx context.Context) ([]models.AlbumSummary, error) {
	return fetchAs(s.cache, ListCacheKey, func() ([]models.AlbumSummary, error) {
		body, err := s.api.GetJSON(ctx, "/api/albums/")
		if err != nil {
			return nil, err
		}
		return models.NormalizeAlbumList(body)
	})
}

// GetAlbum fetches GET /api/albums/{id}/ and normalizes the tracklist.
//
// The route id is used when the body carries no id of its own.
func (s *AlbumService) GetAlbum(ctx context.Context, id string) (*models.Album, error) {
	return fetchAs(s.cache, AlbumCacheKey(id), func() (*models.Album, error) {
		body, err := s.api.GetJSON(ctx, "/api/albums/"+url.PathEscape(id)+"/")
		if err != nil {
			return nil, err
		}

		album, err := models.NormalizeAlbum(body)
		if err != nil {
			return nil, err
		}
		if album.ID == "" {
			album.ID = id
		}
		return album, nil
	})
}

// Invalidate drops the cached result for key.
func (s *AlbumService) Invalidate(key string) {
	if s.cache != nil {
		s.cache.Invalidate(key)
	}
}
