package ui

import (
	"context"
	"errors"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/desertthunder/musicdb/internal/models"
	"github.com/desertthunder/musicdb/internal/services"
	tu "github.com/desertthunder/musicdb/internal/testing"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestModel(catalog services.Catalog) *Model {
	m := NewModel(context.Background(), catalog)
	m.Update(tea.WindowSizeMsg{Width: 100, Height: 40})
	return m
}

func runes(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func testCatalog() *tu.FakeCatalog {
	return &tu.FakeCatalog{
		Albums: []models.AlbumSummary{
			{ID: "1", Title: "Blue Train", Artist: "John Coltrane", Price: 12.5},
			{ID: "3", Title: "Discovery", Artist: "Daft Punk", Price: 15},
		},
		Details: map[string]*models.Album{
			"1": {ID: "1", Title: "Blue Train", Artist: "John Coltrane", Tracks: []models.Track{}},
		},
	}
}

func TestModel(t *testing.T) {
	t.Run("Starts Loading The List", func(t *testing.T) {
		m := newTestModel(testCatalog())

		assert.Equal(t, AlbumListView, m.view)
		assert.Equal(t, Loading, m.listState)
		assert.Contains(t, m.View(), "Loading albums")
	})

	t.Run("Fetch Invalidates Before Fetching", func(t *testing.T) {
		catalog := testCatalog()
		m := newTestModel(catalog)

		msg := m.fetchAlbums()()

		fetched, ok := msg.(albumsFetchedMsg)
		require.True(t, ok)
		assert.Len(t, fetched.albums, 2)
		assert.Equal(t, []string{services.ListCacheKey}, catalog.Invalidated)
		assert.Equal(t, 1, catalog.ListCalls)
	})

	t.Run("List Success", func(t *testing.T) {
		catalog := testCatalog()
		m := newTestModel(catalog)
		m.Update(m.fetchAlbums()())

		assert.Equal(t, Success, m.listState)
		view := m.View()
		assert.Contains(t, view, "Blue Train")
		assert.Contains(t, view, "$12.50")
	})

	t.Run("List Error Shows The Message", func(t *testing.T) {
		m := newTestModel(&tu.FakeCatalog{Err: errors.New("HTTP 503")})
		m.Update(m.fetchAlbums()())

		assert.Equal(t, Failed, m.listState)
		assert.Contains(t, m.View(), "HTTP 503")
	})

	t.Run("Empty List", func(t *testing.T) {
		m := newTestModel(&tu.FakeCatalog{})
		m.Update(m.fetchAlbums()())

		assert.Contains(t, m.View(), "No albums")
	})

	t.Run("Enter Opens The Selected Album", func(t *testing.T) {
		catalog := testCatalog()
		m := newTestModel(catalog)
		m.Update(m.fetchAlbums()())

		_, cmd := m.Update(tea.KeyMsg{Type: tea.KeyEnter})
		require.NotNil(t, cmd)
		assert.Equal(t, AlbumDetailView, m.view)
		assert.Equal(t, "1", m.selectedID)
		assert.Contains(t, m.View(), "Loading album")

		m.Update(cmd())
		assert.Equal(t, Success, m.albumState)
		assert.Contains(t, catalog.Invalidated, services.AlbumCacheKey("1"))

		view := m.View()
		assert.Contains(t, view, "Blue Train")
		assert.Contains(t, view, "Artist:")
		assert.Contains(t, view, "No tracks")
	})

	t.Run("Detail Lists Tracks In Order", func(t *testing.T) {
		catalog := testCatalog()
		catalog.Details["3"] = &models.Album{
			ID: "3", Title: "Discovery", Artist: "Daft Punk", ReleaseYear: 2001,
			Tracks: []models.Track{
				{Key: "30", Position: 1, Title: "One More Time", Duration: tu.IntPtr(320)},
				{Key: "1", Position: 2, Title: models.UntitledTrack},
			},
		}
		m := newTestModel(catalog)
		m.Update(m.openAlbum("3")())

		view := m.View()
		assert.Contains(t, view, "1. One More Time — 5:20")
		assert.Contains(t, view, "2. (untitled)")
		assert.Contains(t, view, "2001")
		assert.NotContains(t, view, "No tracks")
	})

	t.Run("Detail Error", func(t *testing.T) {
		m := newTestModel(testCatalog())
		m.Update(m.openAlbum("404")())

		assert.Equal(t, Failed, m.albumState)
		assert.Contains(t, m.View(), "HTTP 404")
	})

	t.Run("Stale Results Are Dropped", func(t *testing.T) {
		m := newTestModel(testCatalog())
		m.Update(m.fetchAlbums()())

		fetch := m.openAlbum("1")
		m.Update(tea.KeyMsg{Type: tea.KeyEsc})
		assert.Equal(t, AlbumListView, m.view)

		m.Update(fetch())
		assert.Nil(t, m.album)
		assert.Equal(t, Loading, m.listState)
	})

	t.Run("Reopening The Same Album Drops The Earlier Result", func(t *testing.T) {
		catalog := testCatalog()
		m := newTestModel(catalog)
		m.Update(m.fetchAlbums()())

		first := m.openAlbum("1")()

		_, back := m.Update(tea.KeyMsg{Type: tea.KeyEsc})
		require.NotNil(t, back)
		m.Update(back())
		require.Equal(t, Success, m.listState)

		catalog.Details["1"] = &models.Album{ID: "1", Title: "Blue Train (Remastered)", Artist: "John Coltrane"}
		_, reopen := m.Update(tea.KeyMsg{Type: tea.KeyEnter})
		require.NotNil(t, reopen)
		assert.Equal(t, "1", m.selectedID)

		m.Update(first)
		assert.Equal(t, Loading, m.albumState)
		assert.Nil(t, m.album)

		m.Update(reopen())
		require.Equal(t, Success, m.albumState)
		assert.Equal(t, "Blue Train (Remastered)", m.album.Title)
	})

	t.Run("Back Remounts The List", func(t *testing.T) {
		catalog := testCatalog()
		m := newTestModel(catalog)
		m.Update(m.openAlbum("1")())

		_, cmd := m.Update(tea.KeyMsg{Type: tea.KeyEsc})
		require.NotNil(t, cmd)
		m.Update(cmd())

		assert.Equal(t, AlbumListView, m.view)
		assert.Equal(t, Success, m.listState)
		assert.Equal(t, 1, catalog.ListCalls)
	})

	t.Run("Quit", func(t *testing.T) {
		m := newTestModel(testCatalog())
		_, cmd := m.Update(runes("q"))
		require.NotNil(t, cmd)
		assert.Equal(t, tea.Quit(), cmd())
	})
}
