package formatter

import (
	"encoding/csv"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/desertthunder/musicdb/internal/models"
	"github.com/desertthunder/musicdb/internal/shared"
	th "github.com/desertthunder/musicdb/internal/testing"
)

func testAlbums() []models.Album {
	return []models.Album{
		{
			ID:          "3",
			Title:       "Discovery",
			Artist:      "Daft Punk",
			Description: "Second studio album",
			ReleaseYear: 2001,
			Tracks: []models.Track{
				{Key: "30", Position: 1, Title: "One More Time", Duration: th.IntPtr(320)},
				{Key: "31", Position: 2, Title: "Aerodynamic", Duration: th.IntPtr(125)},
				{Key: "2", Position: 3, Title: models.UntitledTrack},
			},
		},
		{
			ID:     "7",
			Title:  "Silence, Mostly",
			Artist: "Nobody",
			Tracks: []models.Track{},
		},
	}
}

func TestExporters(t *testing.T) {
	t.Run("ExportToCSV", func(t *testing.T) {
		data, err := ExportToCSV(testAlbums())
		if err != nil {
			t.Fatalf("ExportToCSV failed: %v", err)
		}

		records, err := csv.NewReader(strings.NewReader(string(data))).ReadAll()
		if err != nil {
			t.Fatalf("output is not valid CSV: %v", err)
		}

		if len(records) != 5 {
			t.Fatalf("expected header + 4 rows, got %d", len(records))
		}
		if strings.Join(records[0], ",") != "Album ID,Album,Artist,Released,Position,Track,Duration" {
			t.Errorf("CSV headers = %v", records[0])
		}
		if got := strings.Join(records[1], "|"); got != "3|Discovery|Daft Punk|2001|1|One More Time|5:20" {
			t.Errorf("first row = %s", got)
		}
		if got := records[3][6]; got != "" {
			t.Errorf("unknown duration should be empty, got %q", got)
		}
		if got := strings.Join(records[4], "|"); got != "7|Silence, Mostly|Nobody||||" {
			t.Errorf("trackless album row = %s", got)
		}
	})

	t.Run("ExportToMarkdown", func(t *testing.T) {
		data, err := ExportToMarkdown(testAlbums())
		if err != nil {
			t.Fatalf("ExportToMarkdown failed: %v", err)
		}
		output := string(data)

		for _, want := range []string{
			"# Albums",
			"**Albums**: 2",
			"**Tracks**: 3",
			"## Discovery",
			"**Artist**: Daft Punk",
			"**Released**: 2001",
			"**Length**: 7:25",
			"Second studio album",
			"- 1. One More Time — 5:20",
			"- 3. (untitled)",
			"## Silence, Mostly",
			"No tracks",
		} {
			if !strings.Contains(output, want) {
				t.Errorf("Markdown missing %q", want)
			}
		}

		if strings.Count(output, "**Released**") != 1 {
			t.Errorf("release year should only be shown when known")
		}
	})

	t.Run("ExportToText", func(t *testing.T) {
		data, err := ExportToText(testAlbums())
		if err != nil {
			t.Fatalf("ExportToText failed: %v", err)
		}
		output := string(data)

		if !strings.Contains(output, "Album: Discovery\nArtist: Daft Punk\nReleased: 2001\nTracks: 3\n") {
			t.Errorf("Text header wrong, got: %s", output)
		}
		if !strings.Contains(output, "  2. Aerodynamic — 2:05\n") {
			t.Errorf("Text missing track line")
		}
		if !strings.Contains(output, "Album: Silence, Mostly\nArtist: Nobody\nTracks: 0\n") {
			t.Errorf("Text missing trackless album")
		}
	})

	t.Run("ExportToJSON", func(t *testing.T) {
		data, err := ExportToJSON(testAlbums())
		if err != nil {
			t.Fatalf("ExportToJSON failed: %v", err)
		}
		output := string(data)

		if !strings.Contains(output, `"title": "Discovery"`) {
			t.Errorf("JSON missing title, got: %s", output)
		}
		if !strings.Contains(output, `"duration": null`) {
			t.Errorf("JSON should keep unknown durations as null")
		}
	})

	t.Run("TotalDuration", func(t *testing.T) {
		albums := testAlbums()

		if total, ok := TotalDuration(albums[0]); !ok || total != 445 {
			t.Errorf("TotalDuration = %d, %v; want 445, true", total, ok)
		}
		if _, ok := TotalDuration(albums[1]); ok {
			t.Errorf("TotalDuration should report no known durations")
		}
	})
}

func TestParseFormat(t *testing.T) {
	cases := map[string]Format{
		"csv":      CSV,
		"CSV":      CSV,
		"markdown": Markdown,
		"md":       Markdown,
		"text":     Text,
		" txt ":    Text,
		"json":     JSON,
	}
	for in, want := range cases {
		got, err := ParseFormat(in)
		if err != nil || got != want {
			t.Errorf("ParseFormat(%q) = %q, %v; want %q", in, got, err, want)
		}
	}

	_, err := ParseFormat("xml")
	if !errors.Is(err, shared.ErrInvalidArgument) {
		t.Errorf("expected ErrInvalidArgument, got %v", err)
	}
	if err != nil && !strings.Contains(err.Error(), "csv, markdown, text, json") {
		t.Errorf("error should list formats, got %v", err)
	}
}

func TestWriteExport(t *testing.T) {
	t.Run("WithDefaultPath", func(t *testing.T) {
		t.Chdir(t.TempDir())

		for _, format := range Formats {
			path, err := WriteExport(format, testAlbums(), "")
			if err != nil {
				t.Fatalf("WriteExport(%s) failed: %v", format, err)
			}
			if path != DefaultPath(format) {
				t.Errorf("path = %s, want %s", path, DefaultPath(format))
			}
			if _, err := os.Stat(path); err != nil {
				t.Errorf("expected %s to exist: %v", path, err)
			}
		}

		if _, err := os.Stat(filepath.Join("albums", "README.md")); err != nil {
			t.Errorf("markdown export should create its directory: %v", err)
		}
	})

	t.Run("WithCustomPath", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "nested", "catalogue.csv")

		written, err := WriteExport(CSV, testAlbums(), path)
		if err != nil {
			t.Fatalf("WriteExport failed: %v", err)
		}
		if written != path {
			t.Errorf("written = %s, want %s", written, path)
		}

		content, err := os.ReadFile(path)
		if err != nil {
			t.Fatalf("read export: %v", err)
		}
		if !strings.Contains(string(content), "One More Time") {
			t.Errorf("export missing track title")
		}
	})

	t.Run("UnknownFormat", func(t *testing.T) {
		_, err := WriteExport(Format("xml"), testAlbums(), filepath.Join(t.TempDir(), "a.xml"))
		if !errors.Is(err, shared.ErrInvalidArgument) {
			t.Errorf("expected ErrInvalidArgument, got %v", err)
		}
	})
}
