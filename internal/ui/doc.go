// Package ui implements an interactive terminal album browser using bubbletea's Elm architecture.
//
// The TUI mirrors the web frontend's two views:
//  1. [AlbumListView] : Browse the album catalogue
//  2. [AlbumDetailView] : Read one album's details and tracklist
//
// Each view starts loading, issues one fetch through a services.Catalog, and settles as success or error.
// Opening a view drops its cached fetch first, so every visit shows fresh data. Results that arrive after
// the user has moved to another view are discarded.
//
// Keyboard navigation uses vim-style bindings (j/k, enter, esc, r, q) with contextual help displayed via charmbracelet/bubbles/help.
package ui
