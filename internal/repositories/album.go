package repositories

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/desertthunder/musicdb/internal/shared"
)

// Album formats stored in the catalogue.
const (
	FormatDigital = "DD"
	FormatCD      = "CD"
	FormatVinyl   = "VL"
)

// AlbumRecord is a row of the albums table.
type AlbumRecord struct {
	ID          int64
	Title       string
	Description string
	Artist      string
	Price       float64
	Format      string
	ReleaseDate string // YYYY-MM-DD, empty when unknown
	Slug        string
}

// ReleaseYear returns the year of ReleaseDate, or 0.
func (a AlbumRecord) ReleaseYear() int {
	d, err := time.Parse(time.DateOnly, a.ReleaseDate)
	if err != nil {
		return 0
	}
	return d.Year()
}

// Validate checks the constraints the schema also enforces.
func (a AlbumRecord) Validate() error {
	switch {
	case a.Title == "":
		return fmt.Errorf("%w: album title is required", shared.ErrInvalidInput)
	case a.Artist == "":
		return fmt.Errorf("%w: album artist is required", shared.ErrInvalidInput)
	case a.Price < 0 || a.Price > 999.99:
		return fmt.Errorf("%w: album price %.2f out of range", shared.ErrInvalidInput, a.Price)
	}
	if a.ReleaseDate != "" {
		if _, err := time.Parse(time.DateOnly, a.ReleaseDate); err != nil {
			return fmt.Errorf("%w: release date %q", shared.ErrInvalidInput, a.ReleaseDate)
		}
	}
	return nil
}

// SongRecord is a row of the songs table.
type SongRecord struct {
	ID          int64
	Title       string
	RunningTime int // seconds, at least 10
}

// TracklistEntry is a tracklist item joined to its song.
type TracklistEntry struct {
	ID       int64
	Position *int // nil when the item has no position
	Song     SongRecord
}

// AlbumDetail is an album with its ordered tracklist.
type AlbumDetail struct {
	AlbumRecord
	Tracklist []TracklistEntry
}

// AlbumRepository persists the fixture catalogue.
type AlbumRepository struct {
	db Querier
}

// NewAlbumRepository creates a new AlbumRepository with the given database connection
func NewAlbumRepository(db Querier) *AlbumRepository {
	return &AlbumRepository{db: db}
}

// Create inserts album, filling in its ID and, when empty, its slug and format.
func (r *AlbumRepository) Create(ctx context.Context, album *AlbumRecord) error {
	if err := album.Validate(); err != nil {
		return fmt.Errorf("validation failed: %w", err)
	}
	if album.Slug == "" {
		album.Slug = Slugify(album.Title)
	}
	if album.Format == "" {
		album.Format = FormatDigital
	}

	query := `
		INSERT INTO albums (title, description, artist, price, format, release_date, slug)
		VALUES (?, ?, ?, ?, ?, ?, ?)
	`

	res, err := r.db.ExecContext(ctx, query,
		album.Title,
		album.Description,
		album.Artist,
		album.Price,
		album.Format,
		nullString(album.ReleaseDate),
		album.Slug,
	)
	if err != nil {
		return fmt.Errorf("failed to insert album: %w", err)
	}

	album.ID, err = res.LastInsertId()
	if err != nil {
		return fmt.Errorf("failed to read album id: %w", err)
	}
	return nil
}

// List returns every album ordered by id.
func (r *AlbumRepository) List(ctx context.Context) ([]AlbumRecord, error) {
	query := `
		SELECT id, title, description, artist, price, format, release_date, slug
		FROM albums
		ORDER BY id
	`

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to query albums: %w", err)
	}
	defer rows.Close()

	albums := []AlbumRecord{}
	for rows.Next() {
		album, err := scanAlbum(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan album: %w", err)
		}
		albums = append(albums, *album)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate albums: %w", err)
	}
	return albums, nil
}

// Get returns the album with its tracklist ordered by position, then item id. Unpositioned items sort last.
func (r *AlbumRepository) Get(ctx context.Context, id int64) (*AlbumDetail, error) {
	query := `
		SELECT id, title, description, artist, price, format, release_date, slug
		FROM albums
		WHERE id = ?
	`

	album, err := scanAlbum(r.db.QueryRowContext(ctx, query, id))
	if err != nil {
		return nil, notFound(err, id)
	}

	tracklist, err := r.Tracklist(ctx, id)
	if err != nil {
		return nil, err
	}
	return &AlbumDetail{AlbumRecord: *album, Tracklist: tracklist}, nil
}

// Tracklist returns the album's tracklist items joined to their songs.
func (r *AlbumRepository) Tracklist(ctx context.Context, albumID int64) ([]TracklistEntry, error) {
	query := `
		SELECT t.id, t.position, s.id, s.title, s.running_time
		FROM album_tracklist_items t
		JOIN songs s ON s.id = t.song_id
		WHERE t.album_id = ?
		ORDER BY t.position IS NULL, t.position, t.id
	`

	rows, err := r.db.QueryContext(ctx, query, albumID)
	if err != nil {
		return nil, fmt.Errorf("failed to query tracklist: %w", err)
	}
	defer rows.Close()

	entries := []TracklistEntry{}
	for rows.Next() {
		var (
			entry    TracklistEntry
			position sql.NullInt64
		)
		if err := rows.Scan(&entry.ID, &position, &entry.Song.ID, &entry.Song.Title, &entry.Song.RunningTime); err != nil {
			return nil, fmt.Errorf("failed to scan tracklist item: %w", err)
		}
		if position.Valid {
			p := int(position.Int64)
			entry.Position = &p
		}
		entries = append(entries, entry)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate tracklist: %w", err)
	}
	return entries, nil
}

// AddSong inserts song, filling in its ID.
func (r *AlbumRepository) AddSong(ctx context.Context, song *SongRecord) error {
	if song.Title == "" {
		return fmt.Errorf("validation failed: %w: song title is required", shared.ErrInvalidInput)
	}
	if song.RunningTime < 10 {
		return fmt.Errorf("validation failed: %w: song must be at least 10 seconds long", shared.ErrInvalidInput)
	}

	res, err := r.db.ExecContext(ctx, `INSERT INTO songs (title, running_time) VALUES (?, ?)`, song.Title, song.RunningTime)
	if err != nil {
		return fmt.Errorf("failed to insert song: %w", err)
	}

	song.ID, err = res.LastInsertId()
	if err != nil {
		return fmt.Errorf("failed to read song id: %w", err)
	}
	return nil
}

// AddTrack places a song on an album's tracklist. position may be nil.
//
// A song appears at most once per album.
func (r *AlbumRepository) AddTrack(ctx context.Context, albumID, songID int64, position *int) (int64, error) {
	var pos sql.NullInt64
	if position != nil {
		pos = sql.NullInt64{Int64: int64(*position), Valid: true}
	}

	res, err := r.db.ExecContext(ctx,
		`INSERT INTO album_tracklist_items (album_id, song_id, position) VALUES (?, ?, ?)`,
		albumID, songID, pos,
	)
	if err != nil {
		return 0, fmt.Errorf("failed to insert tracklist item: %w", err)
	}
	return res.LastInsertId()
}

// Counts returns the number of albums, songs, and tracklist items.
func (r *AlbumRepository) Counts(ctx context.Context) (albums, songs, tracks int, err error) {
	query := `
		SELECT
			(SELECT COUNT(*) FROM albums),
			(SELECT COUNT(*) FROM songs),
			(SELECT COUNT(*) FROM album_tracklist_items)
	`
	err = r.db.QueryRowContext(ctx, query).Scan(&albums, &songs, &tracks)
	if err != nil {
		err = fmt.Errorf("failed to count catalogue: %w", err)
	}
	return
}

type scanner interface {
	Scan(dest ...any) error
}

func scanAlbum(row scanner) (*AlbumRecord, error) {
	var (
		album       AlbumRecord
		releaseDate sql.NullString
	)
	err := row.Scan(
		&album.ID,
		&album.Title,
		&album.Description,
		&album.Artist,
		&album.Price,
		&album.Format,
		&releaseDate,
		&album.Slug,
	)
	if err != nil {
		return nil, err
	}
	album.ReleaseDate = releaseDate.String
	return &album, nil
}

func nullString(s string) sql.NullString {
	return sql.NullString{String: s, Valid: s != ""}
}
