package ui

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/list"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/desertthunder/musicdb/internal/models"
	"github.com/desertthunder/musicdb/internal/services"
)

// ViewState represents the current view in the TUI.
type ViewState int

const (
	AlbumListView ViewState = iota
	AlbumDetailView
)

// FetchState is the lifecycle of a view's single fetch.
type FetchState int

const (
	Loading FetchState = iota
	Success
	Failed
)

// Model represents the TUI application state.
type Model struct {
	ctx     context.Context
	view    ViewState
	catalog services.Catalog
	width   int
	height  int
	mount   int // bumped on every view mount; results from older mounts are dropped

	albumList  list.Model
	albums     []models.AlbumSummary
	listState  FetchState
	listErr    error
	selectedID string
	album      *models.Album
	albumState FetchState
	albumErr   error

	spinner spinner.Model
	help    help.Model
	keys    keyMap
}

// NewModel creates a new TUI model reading from catalog.
func NewModel(ctx context.Context, catalog services.Catalog) *Model {
	l := list.New(nil, list.NewDefaultDelegate(), 0, 0)
	l.Title = "Albums"
	l.SetShowHelp(false)

	return &Model{
		ctx:       ctx,
		view:      AlbumListView,
		catalog:   catalog,
		albumList: l,
		spinner:   spinner.New(spinner.WithSpinner(spinner.Dot)),
		help:      help.New(),
		keys:      newKeyMap(),
	}
}

// Init mounts the album list view.
func (m *Model) Init() tea.Cmd {
	return tea.Batch(m.spinner.Tick, m.openList())
}

// Update handles incoming messages and updates the model state.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.albumList.SetSize(max(msg.Width-4, 0), max(msg.Height-4, 0))
		return m, nil

	case tea.KeyMsg:
		switch m.view {
		case AlbumListView:
			return m.handleListKeys(msg)
		case AlbumDetailView:
			return m.handleDetailKeys(msg)
		}

	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd

	case albumsFetchedMsg:
		if m.view != AlbumListView || msg.mount != m.mount || m.listState != Loading {
			return m, nil
		}
		if msg.err != nil {
			m.listState, m.listErr = Failed, msg.err
			return m, nil
		}
		m.listState = Success
		m.albums = msg.albums
		return m, m.albumList.SetItems(albumItems(msg.albums))

	case albumFetchedMsg:
		if m.view != AlbumDetailView || msg.mount != m.mount || msg.id != m.selectedID || m.albumState != Loading {
			return m, nil
		}
		if msg.err != nil {
			m.albumState, m.albumErr = Failed, msg.err
			return m, nil
		}
		m.albumState = Success
		m.album = msg.album
		return m, nil
	}

	if m.view == AlbumListView && m.listState == Success {
		var cmd tea.Cmd
		m.albumList, cmd = m.albumList.Update(msg)
		return m, cmd
	}
	return m, nil
}

// View renders the UI based on the current view state.
func (m *Model) View() string {
	switch m.view {
	case AlbumListView:
		return m.renderAlbumList()
	case AlbumDetailView:
		return m.renderAlbumDetail()
	default:
		return ""
	}
}

func (m *Model) handleListKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if m.albumList.FilterState() == list.Filtering {
		var cmd tea.Cmd
		m.albumList, cmd = m.albumList.Update(msg)
		return m, cmd
	}

	switch {
	case key.Matches(msg, m.keys.quit):
		return m, tea.Quit
	case key.Matches(msg, m.keys.refresh):
		return m, m.openList()
	case key.Matches(msg, m.keys.enter):
		if m.listState != Success {
			return m, nil
		}
		if item, ok := m.albumList.SelectedItem().(albumItem); ok {
			return m, m.openAlbum(item.album.ID)
		}
		return m, nil
	}

	if m.listState != Success {
		return m, nil
	}

	var cmd tea.Cmd
	m.albumList, cmd = m.albumList.Update(msg)
	return m, cmd
}

func (m *Model) handleDetailKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.quit):
		return m, tea.Quit
	case key.Matches(msg, m.keys.back):
		return m, m.openList()
	case key.Matches(msg, m.keys.refresh):
		return m, m.openAlbum(m.selectedID)
	}
	return m, nil
}

// openList mounts the album list view and starts its fetch.
func (m *Model) openList() tea.Cmd {
	m.mount++
	m.view = AlbumListView
	m.listState = Loading
	m.listErr = nil
	m.selectedID = ""
	return m.fetchAlbums()
}

// openAlbum mounts the album detail view for id and starts its fetch.
func (m *Model) openAlbum(id string) tea.Cmd {
	m.mount++
	m.view = AlbumDetailView
	m.selectedID = id
	m.album = nil
	m.albumState = Loading
	m.albumErr = nil
	return m.fetchAlbum(id)
}

func (m *Model) fetchAlbums() tea.Cmd {
	mount := m.mount
	return func() tea.Msg {
		m.catalog.Invalidate(services.ListCacheKey)
		albums, err := m.catalog.ListAlbums(m.ctx)
		return albumsFetchedMsg{mount: mount, albums: albums, err: err}
	}
}

func (m *Model) fetchAlbum(id string) tea.Cmd {
	mount := m.mount
	return func() tea.Msg {
		m.catalog.Invalidate(services.AlbumCacheKey(id))
		album, err := m.catalog.GetAlbum(m.ctx, id)
		return albumFetchedMsg{mount: mount, id: id, album: album, err: err}
	}
}

func (m *Model) renderAlbumList() string {
	helpView := m.help.ShortHelpView([]key.Binding{m.keys.enter, m.keys.refresh, m.keys.quit})

	switch m.listState {
	case Loading:
		return fmt.Sprintf("%s Loading albums...\n\n%s", m.spinner.View(), helpView)
	case Failed:
		return fmt.Sprintf("%s\n\n%s", styles.alert.Render(m.listErr.Error()), helpView)
	}

	if len(m.albums) == 0 {
		return fmt.Sprintf("%s\n%s\n\n%s", styles.title.Render("Albums"), styles.muted.Render("No albums"), helpView)
	}
	return fmt.Sprintf("%s\n\n%s", m.albumList.View(), helpView)
}

func (m *Model) renderAlbumDetail() string {
	helpView := m.help.ShortHelpView([]key.Binding{m.keys.back, m.keys.refresh, m.keys.quit})

	switch m.albumState {
	case Loading:
		return fmt.Sprintf("%s Loading album...\n\n%s", m.spinner.View(), helpView)
	case Failed:
		return fmt.Sprintf("%s\n\n%s", styles.alert.Render(m.albumErr.Error()), helpView)
	}

	if m.album == nil {
		return fmt.Sprintf("%s\n\n%s", styles.notice.Render("Album not found"), helpView)
	}

	var b strings.Builder
	b.WriteString(styles.title.Render(m.album.Title))
	b.WriteString("\n")
	fmt.Fprintf(&b, "%s %s\n", styles.label.Render("Artist:"), m.album.Artist)
	if m.album.HasReleaseYear() {
		fmt.Fprintf(&b, "%s %d\n", styles.label.Render("Released:"), m.album.ReleaseYear)
	}
	if m.album.Description != "" {
		fmt.Fprintf(&b, "\n%s\n", m.album.Description)
	}

	b.WriteString("\n")
	b.WriteString(styles.section.Render("Tracklist"))
	b.WriteString("\n")
	if len(m.album.Tracks) == 0 {
		b.WriteString(styles.muted.Render("No tracks"))
		b.WriteString("\n")
	}
	for _, t := range m.album.Tracks {
		b.WriteString("  ")
		b.WriteString(t.Label())
		b.WriteString("\n")
	}

	return fmt.Sprintf("%s\n%s", b.String(), helpView)
}
