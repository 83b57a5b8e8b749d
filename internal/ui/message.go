package ui

import (
	tea "github.com/charmbracelet/bubbletea"
	"github.com/desertthunder/musicdb/internal/models"
)

var (
	_ tea.Msg = albumsFetchedMsg{}
	_ tea.Msg = albumFetchedMsg{}
)

// albumsFetchedMsg settles the album list view mounted as mount.
type albumsFetchedMsg struct {
	mount  int
	albums []models.AlbumSummary
	err    error
}

// albumFetchedMsg settles the album detail view for id mounted as mount.
type albumFetchedMsg struct {
	mount int
	id    string
	album *models.Album
	err   error
}
