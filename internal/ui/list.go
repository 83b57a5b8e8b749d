package ui

import (
	"fmt"

	"github.com/charmbracelet/bubbles/list"
	"github.com/desertthunder/musicdb/internal/models"
)

var _ list.Item = albumItem{}

// albumItem wraps [models.AlbumSummary] to implement [list.Item].
type albumItem struct {
	album models.AlbumSummary
}

func (i albumItem) FilterValue() string { return i.album.Title + " " + i.album.Artist }
func (i albumItem) Title() string       { return i.album.Title }
func (i albumItem) Description() string {
	return fmt.Sprintf("%s • $%s", i.album.Artist, i.album.PriceText())
}

func albumItems(albums []models.AlbumSummary) []list.Item {
	items := make([]list.Item, len(albums))
	for i, a := range albums {
		items[i] = albumItem{album: a}
	}
	return items
}
