package models

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/desertthunder/musicdb/internal/shared"
	"github.com/tidwall/gjson"
)

// trackCollectionKeys lists the accepted names for the tracklist, in precedence order.
var trackCollectionKeys = []string{"tracks", "tracklist"}

// NormalizeAlbumList decodes a list projection body.
//
// Prices may arrive as JSON numbers or numeric strings.
func NormalizeAlbumList(raw []byte) ([]AlbumSummary, error) {
	if !gjson.ValidBytes(raw) {
		return nil, shared.ErrMalformedJSON
	}

	root := gjson.ParseBytes(raw)
	if !root.IsArray() {
		return nil, fmt.Errorf("%w: expected an array of albums", shared.ErrMalformedJSON)
	}

	items := root.Array()
	albums := make([]AlbumSummary, 0, len(items))
	for _, item := range items {
		albums = append(albums, AlbumSummary{
			ID:     item.Get("id").String(),
			Title:  item.Get("title").String(),
			Artist: item.Get("artist").String(),
			Price:  item.Get("price").Float(),
		})
	}

	return albums, nil
}

// NormalizeAlbum builds an [Album] from a detail projection body.
func NormalizeAlbum(raw []byte) (*Album, error) {
	if !gjson.ValidBytes(raw) {
		return nil, shared.ErrMalformedJSON
	}

	root := gjson.ParseBytes(raw)
	if !root.IsObject() {
		return nil, fmt.Errorf("%w: expected an album object", shared.ErrMalformedJSON)
	}

	album := &Album{
		ID:          present(root.Get("id")).String(),
		Title:       root.Get("title").String(),
		Artist:      root.Get("artist").String(),
		Description: root.Get("description").String(),
		ReleaseYear: ReleaseYear(root),
		Tracks:      NormalizeTracks(trackCollection(root)),
	}

	return album, nil
}

// trackCollection returns the first accepted tracklist field, or an empty result when none is an array.
func trackCollection(root gjson.Result) gjson.Result {
	for _, key := range trackCollectionKeys {
		if v := root.Get(key); v.IsArray() {
			return v
		}
	}
	return gjson.Result{}
}

// NormalizeTracks converts tracklist entries into [Track] values, keeping their order.
//
// A collection that is not an array yields no tracks.
func NormalizeTracks(collection gjson.Result) []Track {
	if !collection.IsArray() {
		return []Track{}
	}

	entries := collection.Array()
	tracks := make([]Track, 0, len(entries))
	for i, entry := range entries {
		tracks = append(tracks, normalizeTrack(i, entry))
	}
	return tracks
}

func normalizeTrack(idx int, entry gjson.Result) Track {
	track := Track{
		Key:      strconv.Itoa(idx),
		Position: idx + 1,
		Title:    UntitledTrack,
	}

	if id := present(entry.Get("id")); id.Exists() {
		track.Key = id.String()
	}

	if pos, ok := wholeNumber(entry.Get("position")); ok {
		track.Position = pos
	}

	song := entry.Get("song")
	if !song.IsObject() {
		song = gjson.Result{}
	}

	if title := firstPresent(song.Get("title"), entry.Get("title")); title.Exists() {
		track.Title = title.String()
	}

	if d, ok := wholeNumber(firstPresent(song.Get("duration"), entry.Get("duration"), entry.Get("length"))); ok {
		track.Duration = &d
	}

	return track
}

// ReleaseYear resolves the explicit release_year, then the year of release_date, then 0.
func ReleaseYear(root gjson.Result) int {
	if y := present(root.Get("release_year")); y.Exists() {
		if year := int(y.Int()); year > 0 {
			return year
		}
	}

	date := strings.TrimSpace(root.Get("release_date").String())
	if date == "" {
		return 0
	}

	if t, err := time.Parse(time.DateOnly, date); err == nil {
		return t.Year()
	}
	if t, err := time.Parse(time.RFC3339, date); err == nil {
		return t.Year()
	}

	prefix, _, _ := strings.Cut(date, "-")
	if year, err := strconv.Atoi(prefix); err == nil && year > 0 {
		return year
	}
	return 0
}

// present treats JSON null the same as an absent field.
func present(r gjson.Result) gjson.Result {
	if r.Type == gjson.Null {
		return gjson.Result{}
	}
	return r
}

// firstPresent returns the first candidate that exists and is not null.
func firstPresent(candidates ...gjson.Result) gjson.Result {
	for _, c := range candidates {
		if c = present(c); c.Exists() {
			return c
		}
	}
	return gjson.Result{}
}

// wholeNumber reads a JSON number or a numeric string.
func wholeNumber(r gjson.Result) (int, bool) {
	switch r.Type {
	case gjson.Number:
		return int(r.Int()), true
	case gjson.String:
		if n, err := strconv.Atoi(strings.TrimSpace(r.Str)); err == nil {
			return n, true
		}
	}
	return 0, false
}
