// Package devapi serves the fixture album catalogue over the same REST shapes as the album backend,
// so the frontend can be developed without the real backend running.
//
//	GET /api/albums/       → [{id, title, artist, price, ...}]
//	GET /api/albums/{id}/  → {id, title, artist, description, release_year, release_date, tracks: [...]}
//
// Each track entry is {id, position, song: {id, title, duration}}. Unknown albums answer 404 with
// {"detail": "Not found."}.
package devapi

import (
	"context"
	"errors"
	"net/http"
	"strconv"

	"github.com/charmbracelet/log"
	"github.com/desertthunder/musicdb/internal/repositories"
	"github.com/desertthunder/musicdb/internal/server"
	"github.com/desertthunder/musicdb/internal/shared"
	"github.com/goccy/go-json"
)

// Store is the catalogue read by the [Handler].
type Store interface {
	List(ctx context.Context) ([]repositories.AlbumRecord, error)
	Get(ctx context.Context, id int64) (*repositories.AlbumDetail, error)
}

var _ Store = (*repositories.AlbumRepository)(nil)

// AlbumJSON is the list projection on the wire.
type AlbumJSON struct {
	ID          int64   `json:"id"`
	Title       string  `json:"title"`
	Artist      string  `json:"artist"`
	Description string  `json:"description"`
	Price       string  `json:"price"`
	Format      string  `json:"format"`
	ReleaseDate *string `json:"release_date"`
	ReleaseYear *int    `json:"release_year"`
	Slug        string  `json:"slug"`
}

// AlbumDetailJSON is the detail projection on the wire.
type AlbumDetailJSON struct {
	AlbumJSON
	TotalPlaytime int         `json:"total_playtime"`
	Tracks        []TrackJSON `json:"tracks"`
}

// TrackJSON is one tracklist entry on the wire.
type TrackJSON struct {
	ID       int64    `json:"id"`
	Position *int     `json:"position"`
	Song     SongJSON `json:"song"`
}

// SongJSON is the song nested in a [TrackJSON].
type SongJSON struct {
	ID       int64  `json:"id"`
	Title    string `json:"title"`
	Duration int    `json:"duration"`
}

// Handler serves the fixture catalogue. Implements [server.Handler].
type Handler struct {
	store  Store
	logger *log.Logger
}

var _ server.Handler = (*Handler)(nil)

// NewHandler creates a Handler reading from store.
func NewHandler(store Store, logger *log.Logger) *Handler {
	if logger == nil {
		logger = log.Default()
	}
	return &Handler{store: store, logger: logger}
}

// Routes returns the HTTP routes this handler serves.
func (h *Handler) Routes() []string {
	return []string{"GET /api/albums/{$}", "GET /api/albums/{id}/{$}"}
}

// ServeHTTP answers the list route, or the detail route when an id is present.
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if id := r.PathValue("id"); id != "" {
		h.albumDetail(w, r, id)
		return
	}
	h.albumList(w, r)
}

func (h *Handler) albumList(w http.ResponseWriter, r *http.Request) {
	albums, err := h.store.List(r.Context())
	if err != nil {
		h.fail(w, r, err)
		return
	}

	body := make([]AlbumJSON, len(albums))
	for i, a := range albums {
		body[i] = albumJSON(a)
	}
	writeJSON(w, http.StatusOK, body)
}

func (h *Handler) albumDetail(w http.ResponseWriter, r *http.Request, rawID string) {
	id, err := strconv.ParseInt(rawID, 10, 64)
	if err != nil {
		writeJSON(w, http.StatusNotFound, map[string]string{"detail": "Not found."})
		return
	}

	detail, err := h.store.Get(r.Context(), id)
	if err != nil {
		h.fail(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, albumDetailJSON(detail))
}

func (h *Handler) fail(w http.ResponseWriter, r *http.Request, err error) {
	if errors.Is(err, shared.ErrAlbumNotFound) {
		writeJSON(w, http.StatusNotFound, map[string]string{"detail": "Not found."})
		return
	}
	h.logger.Error("catalogue query failed", "path", r.URL.Path, "error", err, "request_id", server.RequestIDFrom(r.Context()))
	writeJSON(w, http.StatusInternalServerError, map[string]string{"detail": "Internal server error."})
}

func albumJSON(a repositories.AlbumRecord) AlbumJSON {
	out := AlbumJSON{
		ID:          a.ID,
		Title:       a.Title,
		Artist:      a.Artist,
		Description: a.Description,
		Price:       shared.FormatPrice(a.Price),
		Format:      a.Format,
		Slug:        a.Slug,
	}
	if a.ReleaseDate != "" {
		date := a.ReleaseDate
		out.ReleaseDate = &date
	}
	if year := a.ReleaseYear(); year > 0 {
		out.ReleaseYear = &year
	}
	return out
}

func albumDetailJSON(d *repositories.AlbumDetail) AlbumDetailJSON {
	out := AlbumDetailJSON{AlbumJSON: albumJSON(d.AlbumRecord), Tracks: make([]TrackJSON, len(d.Tracklist))}
	for i, entry := range d.Tracklist {
		out.Tracks[i] = TrackJSON{
			ID:       entry.ID,
			Position: entry.Position,
			Song: SongJSON{
				ID:       entry.Song.ID,
				Title:    entry.Song.Title,
				Duration: entry.Song.RunningTime,
			},
		}
		out.TotalPlaytime += entry.Song.RunningTime
	}
	return out
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}
