package tasks

import (
	"fmt"

	"trackshift/internal/spotify"
)

// ProgressUpdate represents a progress event during a long-running operation.
//
// Used to send real-time updates to the CLI layer for display.
type ProgressUpdate struct {
	Phase   Phase  // Operation phase
	Step    int    // Current step number within phase
	Total   int    // Total steps in this phase
	Message string // Human-readable message for display
	Data    any    // Optional phase-specific data
}

// Operation phase enumeration
type Phase int

const (
	FetchLiked Phase = iota
	FetchPlaylists
	FetchTracks
	SaveLiked
	CreatePlaylist
	AddTracks
)

func (p Phase) String() string {
	switch p {
	case FetchLiked:
		return "fetch_liked"
	case FetchPlaylists:
		return "fetch_playlists"
	case FetchTracks:
		return "fetch_tracks"
	case SaveLiked:
		return "save_liked"
	case CreatePlaylist:
		return "create_playlist"
	case AddTracks:
		return "add_tracks"
	default:
		return ""
	}
}

func fetchLikedUpdate() ProgressUpdate {
	return ProgressUpdate{
		Phase:   FetchLiked,
		Step:    1,
		Total:   1,
		Message: "Fetching liked songs from source account...",
	}
}

func likedFoundUpdate(count int) ProgressUpdate {
	return ProgressUpdate{
		Phase:   FetchLiked,
		Step:    1,
		Total:   1,
		Message: fmt.Sprintf("Found %d liked songs", count),
	}
}

func saveLikedUpdate(count int) ProgressUpdate {
	return ProgressUpdate{
		Phase:   SaveLiked,
		Step:    1,
		Total:   1,
		Message: fmt.Sprintf("Saving %d liked songs to destination...", count),
	}
}

func fetchPlaylistsUpdate() ProgressUpdate {
	return ProgressUpdate{
		Phase:   FetchPlaylists,
		Step:    1,
		Total:   1,
		Message: "Fetching owned playlists from source account...",
	}
}

func playlistsFoundUpdate(count int) ProgressUpdate {
	return ProgressUpdate{
		Phase:   FetchPlaylists,
		Step:    1,
		Total:   1,
		Message: fmt.Sprintf("Found %d playlists to transfer", count),
	}
}

func fetchTracksUpdate(step, total int, pl spotify.Playlist) ProgressUpdate {
	return ProgressUpdate{
		Phase:   FetchTracks,
		Step:    step,
		Total:   total,
		Message: fmt.Sprintf("[%d/%d] Reading tracks: %s", step, total, pl.Name),
		Data:    pl,
	}
}

func createPlaylistUpdate(step, total int, name string) ProgressUpdate {
	return ProgressUpdate{
		Phase:   CreatePlaylist,
		Step:    step,
		Total:   total,
		Message: fmt.Sprintf("[%d/%d] Creating playlist: %s", step, total, name),
	}
}

func addTracksUpdate(step, total int, name string, count int) ProgressUpdate {
	return ProgressUpdate{
		Phase:   AddTracks,
		Step:    step,
		Total:   total,
		Message: fmt.Sprintf("[%d/%d] Adding %d tracks to %s", step, total, count, name),
	}
}

func playlistDoneUpdate(step, total int, res PlaylistResult) ProgressUpdate {
	status := "✓"
	if !res.Success {
		status = "✗"
	}
	return ProgressUpdate{
		Phase:   AddTracks,
		Step:    step,
		Total:   total,
		Message: fmt.Sprintf("[%d/%d] %s %s: %d/%d tracks", step, total, status, res.Name, res.TracksTotal-res.TracksFailed, res.TracksTotal),
		Data:    res,
	}
}
