package tasks

import (
	"fmt"
)

// ProgressUpdate represents a progress event during a long-running operation.
//
// Used to send real-time updates to the CLI or UI layer for display.
type ProgressUpdate struct {
	Phase   Phase  // Operation phase
	Step    int    // Current step number within phase
	Total   int    // Total steps in this phase
	Message string // Human-readable message for display
	Data    any    // Optional phase-specific data for advanced UIs
}

// Operation phase enumeration
type Phase int

const (
	FetchList Phase = iota
	FetchAlbum
	WriteExport
)

func (p Phase) String() string {
	switch p {
	case FetchList:
		return "fetch_list"
	case FetchAlbum:
		return "fetch_album"
	case WriteExport:
		return "write_export"
	default:
		return ""
	}
}

func fetchListUpdate() ProgressUpdate {
	return ProgressUpdate{
		Phase:   FetchList,
		Step:    1,
		Total:   1,
		Message: "Fetching album list...",
	}
}

func albumFetchedUpdate(step, total int, res AlbumResult) ProgressUpdate {
	return ProgressUpdate{
		Phase:   FetchAlbum,
		Step:    step,
		Total:   total,
		Message: fmt.Sprintf("Fetched %s", res.Name()),
		Data:    res,
	}
}

func albumFailedUpdate(step, total int, res AlbumResult) ProgressUpdate {
	return ProgressUpdate{
		Phase:   FetchAlbum,
		Step:    step,
		Total:   total,
		Message: fmt.Sprintf("Failed to fetch %s: %v", res.Name(), res.Error),
		Data:    res,
	}
}

func writeExportUpdate(format string, count int) ProgressUpdate {
	return ProgressUpdate{
		Phase:   WriteExport,
		Step:    1,
		Total:   1,
		Message: fmt.Sprintf("Writing %d albums as %s...", count, format),
	}
}
