// Package models defines the album catalogue data model and the normalization that turns backend JSON into it.
//
// The backend returns two projections of an album:
//   - [AlbumSummary] : the list projection (id, title, artist, price)
//   - [Album] : the detail projection with an ordered [Track] list
//
// Detail bodies are loosely shaped. [NormalizeAlbum] accepts a union of input
// shapes and resolves each field with a fixed precedence: nested field, then
// flat field, then default. Track order always follows the backend.
package models
