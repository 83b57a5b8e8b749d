package models

import (
	"strconv"

	"github.com/desertthunder/musicdb/internal/shared"
)

// UntitledTrack is the title used when a track carries no title at any accepted location.
const UntitledTrack = "(untitled)"

// AlbumSummary is the list projection of an album.
type AlbumSummary struct {
	ID     string  `json:"id"`
	Title  string  `json:"title"`
	Artist string  `json:"artist"`
	Price  float64 `json:"price"`
}

// PriceText formats the price with exactly two decimal places.
func (a AlbumSummary) PriceText() string {
	return shared.FormatPrice(a.Price)
}

// Album is the detail projection of an album.
type Album struct {
	ID          string  `json:"id"`
	Title       string  `json:"title"`
	Artist      string  `json:"artist"`
	Description string  `json:"description,omitempty"`
	ReleaseYear int     `json:"release_year,omitempty"` // 0 when neither release_year nor release_date is usable
	Tracks      []Track `json:"tracks"`
}

// HasReleaseYear reports whether a release year could be resolved.
func (a Album) HasReleaseYear() bool {
	return a.ReleaseYear > 0
}

// Track is one normalized tracklist entry.
type Track struct {
	Key      string `json:"key"`      // entry id, or the positional index when absent
	Position int    `json:"position"` // explicit position, or the 1-based index when absent
	Title    string `json:"title"`
	Duration *int   `json:"duration"` // seconds, nil when unknown
}

// DurationText formats the duration as "m:ss", or returns "" when the duration is unknown.
func (t Track) DurationText() string {
	if t.Duration == nil {
		return ""
	}
	return shared.FormatDuration(*t.Duration)
}

// Label renders the track as "position. title" followed by " — m:ss" when the duration is known.
func (t Track) Label() string {
	label := strconv.Itoa(t.Position) + ". " + t.Title
	if d := t.DurationText(); d != "" {
		label += " — " + d
	}
	return label
}
