// Package repositories implements SQLite persistence for the fixture album catalogue.
//
// The catalogue backs the local development API only: albums, songs, and the tracklist items joining them.
//
// Key Implementations:
//   - [AlbumRepository] : Album, song, and tracklist persistence
//   - [Seed] : Resets the catalogue and loads the sample albums
//
// Repositories run against anything satisfying [Querier], so the same code works on a *sql.DB or inside a *sql.Tx.
package repositories
