package ui

import (
	"github.com/charmbracelet/lipgloss"
)

var styles = newPalette(paletteColors{
	heading: "#7D56F4",
	section: "#04B575",
	alert:   "#FF5F5F",
	notice:  "#FFA500",
	muted:   "#626262",
})

type paletteColors struct {
	heading, section, alert, notice, muted string
}

// Palette holds the album browser's styles, one per role.
type Palette struct {
	title   lipgloss.Style // album or list heading
	section lipgloss.Style // "Tracklist"
	alert   lipgloss.Style // fetch failed
	notice  lipgloss.Style // album not found
	muted   lipgloss.Style // empty states and help
	label   lipgloss.Style // "Artist:", "Released:"
}

func newPalette(c paletteColors) *Palette {
	fg := func(hex string) lipgloss.Style {
		return lipgloss.NewStyle().Foreground(lipgloss.Color(hex))
	}
	return &Palette{
		title:   fg(c.heading).Bold(true).MarginBottom(1),
		section: fg(c.section).Bold(true),
		alert:   fg(c.alert).Bold(true).Border(lipgloss.NormalBorder(), false, false, false, true).PaddingLeft(1),
		notice:  fg(c.notice),
		muted:   fg(c.muted).Italic(true),
		label:   fg(c.muted).Bold(true),
	}
}
