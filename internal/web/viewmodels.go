package web

import "github.com/desertthunder/musicdb/internal/models"

// ViewState is the lifecycle state of a view.
type ViewState int

const (
	StateLoading ViewState = iota
	StateSuccess
	StateError
)

func (s ViewState) String() string {
	switch s {
	case StateLoading:
		return "loading"
	case StateSuccess:
		return "success"
	case StateError:
		return "error"
	default:
		return "unknown"
	}
}

// View is a view model rendered inside the page container.
type View interface {
	Kind() string
}

// BaseViewModel carries the state shared by every view.
type BaseViewModel struct {
	State        ViewState
	ErrorMessage string
	Source       string // fragment URL fetched while loading
	Target       string // element id swapped by the fragment
}

func (b BaseViewModel) Loading() bool { return b.State == StateLoading }
func (b BaseViewModel) Failed() bool  { return b.State == StateError }

// fail moves the view to [StateError] with err's message.
func (b *BaseViewModel) fail(err error) {
	b.State = StateError
	b.ErrorMessage = err.Error()
}

// AlbumListView is the album list view model.
type AlbumListView struct {
	BaseViewModel

	Albums []models.AlbumSummary
}

func (AlbumListView) Kind() string { return "albums" }

// AlbumDetailView is the album detail view model.
type AlbumDetailView struct {
	BaseViewModel

	AlbumID string
	Album   *models.Album
}

func (AlbumDetailView) Kind() string { return "album" }

// Page is the full document around a view. A nil View renders an empty container.
type Page struct {
	Title string
	View  View
}
