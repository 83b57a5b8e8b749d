package web

import (
	"context"
	"fmt"
	"html/template"
	"net/http"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/desertthunder/musicdb/internal/server"
	"github.com/desertthunder/musicdb/internal/services"
)

// Fragment endpoints loaded by the page shells.
const (
	AlbumListFragment   = "/views/albums"
	AlbumDetailFragment = "/views/albums/"
)

const siteTitle = "MusicDB"

// App serves the album frontend views over a [services.Catalog].
type App struct {
	catalog   services.Catalog
	templates *template.Template
	logger    *log.Logger
}

// NewApp parses the embedded templates and creates an App.
func NewApp(catalog services.Catalog, logger *log.Logger) (*App, error) {
	t, err := parseTemplates()
	if err != nil {
		return nil, fmt.Errorf("failed to parse templates: %w", err)
	}
	if logger == nil {
		logger = log.Default()
	}
	return &App{catalog: catalog, templates: t, logger: logger}, nil
}

// Mount registers the view routes on r.
func (a *App) Mount(r server.Router) {
	r.Handle(http.MethodGet, "/{$}", http.HandlerFunc(a.albumListPage))
	r.Handle(http.MethodGet, "/albums/{id}", http.HandlerFunc(a.albumDetailPage))
	r.Handle(http.MethodGet, AlbumListFragment, http.HandlerFunc(a.albumListFragment))
	r.Handle(http.MethodGet, AlbumDetailFragment+"{id}", http.HandlerFunc(a.albumDetailFragment))
	r.Handle(http.MethodGet, "/", http.HandlerFunc(a.emptyPage))
}

// AlbumList resolves the album list view with a single fetch.
func (a *App) AlbumList(ctx context.Context) AlbumListView {
	view := AlbumListView{BaseViewModel: BaseViewModel{Target: "album-list", Source: AlbumListFragment}}

	albums, err := a.catalog.ListAlbums(ctx)
	if err != nil {
		a.fetchFailed(ctx, "albums", err)
		view.fail(err)
		return view
	}

	view.State = StateSuccess
	view.Albums = albums
	return view
}

// AlbumDetail resolves the album detail view for id with a single fetch.
func (a *App) AlbumDetail(ctx context.Context, id string) AlbumDetailView {
	view := AlbumDetailView{
		BaseViewModel: BaseViewModel{Target: "album-detail", Source: AlbumDetailFragment + id},
		AlbumID:       id,
	}

	album, err := a.catalog.GetAlbum(ctx, id)
	if err != nil {
		a.fetchFailed(ctx, "album "+id, err)
		view.fail(err)
		return view
	}

	view.State = StateSuccess
	view.Album = album
	return view
}

func (a *App) albumListPage(w http.ResponseWriter, r *http.Request) {
	a.catalog.Invalidate(services.ListCacheKey)

	if resolveInline(r) {
		a.respond(w, r, a.AlbumList(r.Context()))
		return
	}

	view := AlbumListView{BaseViewModel: BaseViewModel{State: StateLoading, Target: "album-list", Source: AlbumListFragment}}
	a.respond(w, r, view)
}

func (a *App) albumDetailPage(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	a.catalog.Invalidate(services.AlbumCacheKey(id))

	if resolveInline(r) {
		a.respond(w, r, a.AlbumDetail(r.Context(), id))
		return
	}

	view := AlbumDetailView{
		BaseViewModel: BaseViewModel{State: StateLoading, Target: "album-detail", Source: AlbumDetailFragment + id},
		AlbumID:       id,
	}
	a.respond(w, r, view)
}

func (a *App) albumListFragment(w http.ResponseWriter, r *http.Request) {
	a.fragment(w, a.AlbumList(r.Context()))
}

func (a *App) albumDetailFragment(w http.ResponseWriter, r *http.Request) {
	a.fragment(w, a.AlbumDetail(r.Context(), r.PathValue("id")))
}

// emptyPage renders the page container with no view for paths no route claims.
func (a *App) emptyPage(w http.ResponseWriter, r *http.Request) {
	a.page(w, Page{Title: siteTitle})
}

// respond writes the view alone for htmx requests and wrapped in the page otherwise.
func (a *App) respond(w http.ResponseWriter, r *http.Request, view View) {
	if isHTMXRequest(r) {
		a.fragment(w, view)
		return
	}
	a.page(w, Page{Title: title(view), View: view})
}

func (a *App) page(w http.ResponseWriter, p Page) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := render(w, a.templates, "page", p); err != nil {
		a.renderFailed(w, err)
	}
}

// fragment writes the view alone. Error views still answer 200 so htmx swaps the alert in.
func (a *App) fragment(w http.ResponseWriter, view View) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := render(w, a.templates, "view", view); err != nil {
		a.renderFailed(w, err)
	}
}

func (a *App) renderFailed(w http.ResponseWriter, err error) {
	a.logger.Error("render failed", "error", err)
	http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
}

func (a *App) fetchFailed(ctx context.Context, what string, err error) {
	if ctx.Err() != nil {
		a.logger.Debug("fetch abandoned", "resource", what, "request_id", server.RequestIDFrom(ctx))
		return
	}
	a.logger.Warn("fetch failed", "resource", what, "error", err, "request_id", server.RequestIDFrom(ctx))
}

func title(view View) string {
	switch v := view.(type) {
	case AlbumDetailView:
		if v.Album != nil && v.Album.Title != "" {
			return v.Album.Title + " · " + siteTitle
		}
		return "Album · " + siteTitle
	default:
		return "Albums · " + siteTitle
	}
}

func isHTMXRequest(r *http.Request) bool {
	return strings.EqualFold(r.Header.Get("HX-Request"), "true")
}

func resolveInline(r *http.Request) bool {
	return isHTMXRequest(r) || r.URL.Query().Get("render") == "inline"
}
