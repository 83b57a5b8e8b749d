// package formatter provides functions to export album data to various formats (CSV, Markdown, plain text, JSON)
package formatter

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"strconv"
	"strings"

	"github.com/desertthunder/musicdb/internal/models"
	"github.com/desertthunder/musicdb/internal/shared"
	"github.com/samber/lo"
)

// Format names an export format.
type Format string

const (
	CSV      Format = "csv"
	Markdown Format = "markdown"
	Text     Format = "text"
	JSON     Format = "json"
)

// Formats lists every supported export format.
var Formats = []Format{CSV, Markdown, Text, JSON}

// ParseFormat resolves a format name, accepting "md" and "txt" as aliases.
func ParseFormat(s string) (Format, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "csv":
		return CSV, nil
	case "markdown", "md":
		return Markdown, nil
	case "text", "txt":
		return Text, nil
	case "json":
		return JSON, nil
	}
	return "", fmt.Errorf("%w: unknown format %q (want one of %s)", shared.ErrInvalidArgument, s,
		strings.Join(lo.Map(Formats, func(f Format, _ int) string { return string(f) }), ", "))
}

// ExportToCSV converts albums to CSV with one row per track:
// Album ID, Album, Artist, Released, Position, Track, Duration.
//
// Albums without tracks still get one row with empty track columns.
func ExportToCSV(albums []models.Album) ([]byte, error) {
	var buf bytes.Buffer
	writer := csv.NewWriter(&buf)

	headers := []string{"Album ID", "Album", "Artist", "Released", "Position", "Track", "Duration"}
	if err := writer.Write(headers); err != nil {
		return nil, fmt.Errorf("failed to write CSV headers: %w", err)
	}

	for _, album := range albums {
		prefix := []string{album.ID, album.Title, album.Artist, releaseText(album)}

		if len(album.Tracks) == 0 {
			if err := writer.Write(append(prefix, "", "", "")); err != nil {
				return nil, fmt.Errorf("failed to write CSV record: %w", err)
			}
			continue
		}

		for _, track := range album.Tracks {
			record := append(slices.Clone(prefix), strconv.Itoa(track.Position), track.Title, track.DurationText())
			if err := writer.Write(record); err != nil {
				return nil, fmt.Errorf("failed to write CSV record: %w", err)
			}
		}
	}

	writer.Flush()
	if err := writer.Error(); err != nil {
		return nil, fmt.Errorf("CSV writer error: %w", err)
	}

	return buf.Bytes(), nil
}

// ExportToMarkdown converts albums to a Markdown catalogue with one section per album.
func ExportToMarkdown(albums []models.Album) ([]byte, error) {
	var buf bytes.Buffer

	buf.WriteString("# Albums\n\n")
	buf.WriteString(fmt.Sprintf("**Albums**: %d\n", len(albums)))
	buf.WriteString(fmt.Sprintf("**Tracks**: %d\n\n", lo.SumBy(albums, func(a models.Album) int { return len(a.Tracks) })))

	for _, album := range albums {
		buf.WriteString(fmt.Sprintf("## %s\n\n", album.Title))
		buf.WriteString(fmt.Sprintf("**Artist**: %s\n", album.Artist))
		if album.HasReleaseYear() {
			buf.WriteString(fmt.Sprintf("**Released**: %d\n", album.ReleaseYear))
		}
		if length, ok := TotalDuration(album); ok {
			buf.WriteString(fmt.Sprintf("**Length**: %s\n", shared.FormatDuration(length)))
		}
		buf.WriteString("\n")

		if album.Description != "" {
			buf.WriteString(album.Description + "\n\n")
		}

		buf.WriteString("### Tracklist\n\n")
		if len(album.Tracks) == 0 {
			buf.WriteString("No tracks\n\n")
			continue
		}
		for _, label := range lo.Map(album.Tracks, func(t models.Track, _ int) string { return t.Label() }) {
			buf.WriteString("- " + label + "\n")
		}
		buf.WriteString("\n")
	}

	return buf.Bytes(), nil
}

// ExportToText converts albums to plain text format
func ExportToText(albums []models.Album) ([]byte, error) {
	var buf bytes.Buffer

	for i, album := range albums {
		if i > 0 {
			buf.WriteString("\n")
		}
		buf.WriteString(fmt.Sprintf("Album: %s\n", album.Title))
		buf.WriteString(fmt.Sprintf("Artist: %s\n", album.Artist))
		if album.HasReleaseYear() {
			buf.WriteString(fmt.Sprintf("Released: %d\n", album.ReleaseYear))
		}
		buf.WriteString(fmt.Sprintf("Tracks: %d\n", len(album.Tracks)))

		for _, track := range album.Tracks {
			buf.WriteString("  " + track.Label() + "\n")
		}
	}

	return buf.Bytes(), nil
}

// ExportToJSON renders the normalized albums as indented JSON.
func ExportToJSON(albums []models.Album) ([]byte, error) {
	return shared.MarshalJSON(albums, true)
}

// TotalDuration sums the known track durations. ok is false when no track has one.
func TotalDuration(album models.Album) (int, bool) {
	known := lo.Filter(album.Tracks, func(t models.Track, _ int) bool { return t.Duration != nil })
	if len(known) == 0 {
		return 0, false
	}
	return lo.SumBy(known, func(t models.Track) int { return *t.Duration }), true
}

// Export renders albums in format.
func Export(format Format, albums []models.Album) ([]byte, error) {
	switch format {
	case CSV:
		return ExportToCSV(albums)
	case Markdown:
		return ExportToMarkdown(albums)
	case Text:
		return ExportToText(albums)
	case JSON:
		return ExportToJSON(albums)
	}
	return nil, fmt.Errorf("%w: unknown format %q", shared.ErrInvalidArgument, format)
}

// DefaultPath is the file an export is written to when no path is given.
func DefaultPath(format Format) string {
	switch format {
	case Markdown:
		return filepath.Join("albums", "README.md")
	case Text:
		return "albums.txt"
	default:
		return "albums." + string(format)
	}
}

// WriteExport renders albums in format and writes them to path, creating parent directories as needed.
//
// Defaults to [DefaultPath] when path is empty. Returns the path written.
func WriteExport(format Format, albums []models.Album, path string) (string, error) {
	if path == "" {
		path = DefaultPath(format)
	}

	data, err := Export(format, albums)
	if err != nil {
		return "", fmt.Errorf("failed to generate %s: %w", format, err)
	}

	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return "", fmt.Errorf("failed to create directory: %w", err)
		}
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return "", fmt.Errorf("failed to write %s file: %w", format, err)
	}

	return path, nil
}

func releaseText(album models.Album) string {
	if !album.HasReleaseYear() {
		return ""
	}
	return strconv.Itoa(album.ReleaseYear)
}
