// package tasks implements the library transfer operations between two accounts.
//
// The core abstraction is Engine, which sequences reads from a source account
// against writes to a destination account, one content type at a time.
// Operations emit progress updates via channels for non-blocking status
// reporting to the CLI layer.
package tasks

import (
	"context"
	"fmt"

	"github.com/charmbracelet/log"
	"trackshift/internal/spotify"
)

// Library is the account surface the engine transfers between. Both sides of
// a transfer are the same service, so one interface covers reads and writes.
type Library interface {
	LikedTracks(ctx context.Context) ([]spotify.Track, error)
	OwnedPlaylists(ctx context.Context) ([]spotify.Playlist, error)
	PlaylistTracks(ctx context.Context, playlistID string) ([]spotify.Track, error)
	LikeTracks(ctx context.Context, ids []string) (int, error)
	CreatePlaylist(ctx context.Context, userID, name, description string, public bool) (string, error)
	AddTracks(ctx context.Context, playlistID string, ids []string) (int, error)
}

// sampleSize caps how many tracks a liked-songs result keeps for the log.
const sampleSize = 10

// LikedResult summarizes one liked-songs transfer.
type LikedResult struct {
	Success     bool            `json:"success"`
	Transferred int             `json:"transferred"`
	Failed      int             `json:"failed"`
	Tracks      []spotify.Track `json:"tracks,omitempty"` // sample for the log
}

// PlaylistResult summarizes one playlist within a playlists transfer.
type PlaylistResult struct {
	Name         string `json:"name"`
	TracksTotal  int    `json:"tracks_total"`
	TracksFailed int    `json:"tracks_failed"`
	Success      bool   `json:"success"`
	Error        string `json:"error,omitempty"`
}

// PlaylistsResult summarizes a playlists transfer across all playlists.
type PlaylistsResult struct {
	Success     bool             `json:"success"`
	Transferred int              `json:"transferred"`
	Failed      int              `json:"failed"`
	Results     []PlaylistResult `json:"results,omitempty"`
}

// Engine sequences reader and writer calls per content type and direction.
//
// No intermediate state is persisted: a crash mid-transfer leaves no
// resumable checkpoint, and re-running re-reads and re-writes from scratch,
// duplicating already-transferred content on the destination. That is
// accepted behavior.
type Engine struct {
	logger *log.Logger
}

// NewEngine creates an Engine. A nil logger disables diagnostics.
func NewEngine(logger *log.Logger) *Engine {
	if logger == nil {
		logger = log.New(nil)
	}
	return &Engine{logger: logger}
}

// sendProgress sends a progress update through the channel without blocking.
// Uses select with default to ensure progress reporting never blocks execution.
func (e *Engine) sendProgress(progress chan<- ProgressUpdate, update ProgressUpdate) {
	if progress == nil {
		return
	}
	select {
	case progress <- update:
	default:
	}
}

// TransferLikedSongs reads every liked track from source and saves the ids to
// dest. A source with no liked tracks short-circuits to a successful
// zero-count result without issuing any write. Transport failures on either
// side abort the transfer and propagate.
func (e *Engine) TransferLikedSongs(ctx context.Context, progress chan<- ProgressUpdate, source, dest Library) (*LikedResult, error) {
	e.sendProgress(progress, fetchLikedUpdate())

	tracks, err := source.LikedTracks(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to read liked songs: %w", err)
	}

	if len(tracks) == 0 {
		return &LikedResult{Success: true}, nil
	}

	e.sendProgress(progress, likedFoundUpdate(len(tracks)))

	ids := make([]string, len(tracks))
	for i, t := range tracks {
		ids[i] = t.ID
	}

	e.sendProgress(progress, saveLikedUpdate(len(ids)))

	failed, err := dest.LikeTracks(ctx, ids)
	if err != nil {
		return nil, fmt.Errorf("failed to save liked songs: %w", err)
	}

	result := &LikedResult{
		Success:     failed == 0,
		Transferred: len(ids) - failed,
		Failed:      failed,
		Tracks:      tracks[:min(sampleSize, len(tracks))],
	}

	e.logger.Info("liked songs transferred", "transferred", result.Transferred, "failed", result.Failed)
	return result, nil
}

// TransferPlaylists recreates the source account's owned playlists on the
// destination. When filter is non-empty only the listed playlist ids are
// considered. Playlists with no tracks are skipped entirely.
//
// A failure inside a single playlist (reading its tracks, creating the copy,
// or a transport error while adding) is recorded as a failed sub-result and
// processing continues with the next playlist; only reading the playlist
// listing itself aborts the whole transfer.
func (e *Engine) TransferPlaylists(ctx context.Context, progress chan<- ProgressUpdate, source, dest Library, destUserID string, filter []string) (*PlaylistsResult, error) {
	e.sendProgress(progress, fetchPlaylistsUpdate())

	playlists, err := source.OwnedPlaylists(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to read playlists: %w", err)
	}

	if len(filter) > 0 {
		selected := make(map[string]bool, len(filter))
		for _, id := range filter {
			selected[id] = true
		}
		kept := playlists[:0]
		for _, pl := range playlists {
			if selected[pl.ID] {
				kept = append(kept, pl)
			}
		}
		playlists = kept
	}

	if len(playlists) == 0 {
		return &PlaylistsResult{Success: true}, nil
	}

	e.sendProgress(progress, playlistsFoundUpdate(len(playlists)))

	result := &PlaylistsResult{}
	total := len(playlists)

	for i, pl := range playlists {
		res := e.transferPlaylist(ctx, progress, source, dest, destUserID, pl, i+1, total)
		if res == nil {
			continue // empty playlist, nothing to record
		}

		result.Results = append(result.Results, *res)
		e.sendProgress(progress, playlistDoneUpdate(i+1, total, *res))
	}

	for _, res := range result.Results {
		if res.Success {
			result.Transferred++
		} else {
			result.Failed++
		}
	}
	result.Success = result.Failed == 0

	return result, nil
}

// transferPlaylist copies a single playlist, reporting nil for empty sources.
func (e *Engine) transferPlaylist(ctx context.Context, progress chan<- ProgressUpdate, source, dest Library, destUserID string, pl spotify.Playlist, step, total int) *PlaylistResult {
	e.sendProgress(progress, fetchTracksUpdate(step, total, pl))

	tracks, err := source.PlaylistTracks(ctx, pl.ID)
	if err != nil {
		e.logger.Warn("failed to read playlist tracks", "playlist", pl.Name, "error", err)
		return &PlaylistResult{Name: pl.Name, Error: err.Error()}
	}

	if len(tracks) == 0 {
		return nil
	}

	name := fmt.Sprintf("%s (Transferred)", pl.Name)
	description := fmt.Sprintf("Transferred from %s - %s", pl.Name, pl.Description)

	e.sendProgress(progress, createPlaylistUpdate(step, total, name))

	newID, err := dest.CreatePlaylist(ctx, destUserID, name, description, pl.Public)
	if err != nil {
		e.logger.Warn("failed to create playlist", "playlist", pl.Name, "error", err)
		return &PlaylistResult{Name: pl.Name, Error: err.Error()}
	}

	ids := make([]string, len(tracks))
	for i, t := range tracks {
		ids[i] = t.ID
	}

	e.sendProgress(progress, addTracksUpdate(step, total, name, len(ids)))

	failed, err := dest.AddTracks(ctx, newID, ids)
	if err != nil {
		e.logger.Warn("failed to add tracks", "playlist", pl.Name, "error", err)
		return &PlaylistResult{Name: pl.Name, TracksTotal: len(ids), Error: err.Error()}
	}

	return &PlaylistResult{
		Name:         pl.Name,
		TracksTotal:  len(ids),
		TracksFailed: failed,
		Success:      failed == 0,
	}
}
