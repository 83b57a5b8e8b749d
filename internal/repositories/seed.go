package repositories

import (
	"context"
	"database/sql"
	"fmt"
)

// SampleAlbum is an album of the sample catalogue with its songs in tracklist order.
type SampleAlbum struct {
	Album AlbumRecord
	Songs []SongRecord
}

// SampleCatalogue is the catalogue loaded by [Seed].
var SampleCatalogue = []SampleAlbum{
	{
		Album: AlbumRecord{
			Title:       "Dripping Stereo",
			Description: "An eclectic mix of dripping sounds.",
			Artist:      "Test Artist",
			Price:       9.99,
			Format:      FormatDigital,
			ReleaseDate: "2024-05-01",
		},
		Songs: []SongRecord{{Title: "Track One", RunningTime: 180}, {Title: "Track Two", RunningTime: 200}},
	},
	{
		Album: AlbumRecord{
			Title:       "Music for Cats",
			Description: "Soothing tunes for feline friends.",
			Artist:      "Test Artist",
			Price:       12.50,
			Format:      FormatVinyl,
			ReleaseDate: "2023-11-15",
		},
		Songs: []SongRecord{{Title: "Track Three", RunningTime: 220}, {Title: "Track Four", RunningTime: 210}},
	},
	{
		Album: AlbumRecord{
			Title:       "My Red House",
			Description: "Indie vibes from the red house.",
			Artist:      "Various Artists",
			Price:       14.99,
			Format:      FormatCD,
			ReleaseDate: "2020-08-20",
		},
		Songs: []SongRecord{{Title: "Track Five", RunningTime: 240}},
	},
}

// SeedResult summarizes the catalogue after seeding.
type SeedResult struct {
	Albums int
	Songs  int
	Tracks int
}

// Seed empties the catalogue and loads catalogue in one transaction.
func Seed(ctx context.Context, db *sql.DB, catalogue []SampleAlbum) (*SeedResult, error) {
	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	for _, table := range []string{"album_tracklist_items", "songs", "albums"} {
		if _, err := tx.ExecContext(ctx, "DELETE FROM "+table); err != nil {
			return nil, fmt.Errorf("failed to clear %s: %w", table, err)
		}
	}

	repo := NewAlbumRepository(tx)
	for _, sample := range catalogue {
		album := sample.Album
		if err := repo.Create(ctx, &album); err != nil {
			return nil, fmt.Errorf("failed to seed %q: %w", album.Title, err)
		}

		for i, s := range sample.Songs {
			song := s
			if err := repo.AddSong(ctx, &song); err != nil {
				return nil, fmt.Errorf("failed to seed song %q: %w", song.Title, err)
			}
			position := i + 1
			if _, err := repo.AddTrack(ctx, album.ID, song.ID, &position); err != nil {
				return nil, fmt.Errorf("failed to seed track %q: %w", song.Title, err)
			}
		}
	}

	albums, songs, tracks, err := repo.Counts(ctx)
	if err != nil {
		return nil, err
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("failed to commit seed transaction: %w", err)
	}
	return &SeedResult{Albums: albums, Songs: songs, Tracks: tracks}, nil
}
