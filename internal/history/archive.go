package history

import (
	"database/sql"
	"fmt"
	"time"

	"trackshift/internal/shared"
)

// Archive records transfer runs in a sqlite database so past runs can be
// listed and filtered without parsing the JSON log.
type Archive struct {
	db *sql.DB
}

const archiveSchema = `
	CREATE TABLE IF NOT EXISTS transfers (
		id TEXT PRIMARY KEY,
		source TEXT NOT NULL,
		destination TEXT NOT NULL,
		content_type TEXT NOT NULL,
		liked_transferred INTEGER NOT NULL DEFAULT 0,
		liked_failed INTEGER NOT NULL DEFAULT 0,
		playlists_transferred INTEGER NOT NULL DEFAULT 0,
		playlists_failed INTEGER NOT NULL DEFAULT 0,
		success INTEGER NOT NULL,
		created_at TIMESTAMP NOT NULL
	)
`

// Run is one archived transfer run.
type Run struct {
	ID                   string
	Source               string
	Destination          string
	ContentType          string
	LikedTransferred     int
	LikedFailed          int
	PlaylistsTransferred int
	PlaylistsFailed      int
	Success              bool
	CreatedAt            time.Time
}

// NewArchive creates an Archive on the given database, creating the
// transfers table when absent.
func NewArchive(db *sql.DB) (*Archive, error) {
	if _, err := db.Exec(archiveSchema); err != nil {
		return nil, fmt.Errorf("failed to create transfers table: %w", err)
	}
	return &Archive{db: db}, nil
}

// Record inserts one run derived from a log entry.
func (a *Archive) Record(entry Entry) error {
	run := Run{
		ID:          shared.GenerateID(),
		Source:      entry.Source,
		Destination: entry.Destination,
		ContentType: entry.ContentType,
		Success:     true,
		CreatedAt:   time.Now(),
	}

	if entry.LikedSongs != nil {
		run.LikedTransferred = entry.LikedSongs.Transferred
		run.LikedFailed = entry.LikedSongs.Failed
		run.Success = run.Success && entry.LikedSongs.Success
	}
	if entry.Playlists != nil {
		run.PlaylistsTransferred = entry.Playlists.Transferred
		run.PlaylistsFailed = entry.Playlists.Failed
		run.Success = run.Success && entry.Playlists.Success
	}

	query := `
		INSERT INTO transfers (
			id, source, destination, content_type,
			liked_transferred, liked_failed,
			playlists_transferred, playlists_failed,
			success, created_at
		)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`

	_, err := a.db.Exec(query,
		run.ID,
		run.Source,
		run.Destination,
		run.ContentType,
		run.LikedTransferred,
		run.LikedFailed,
		run.PlaylistsTransferred,
		run.PlaylistsFailed,
		run.Success,
		run.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to insert transfer run: %w", err)
	}

	return nil
}

// List returns archived runs, newest first, up to limit (0 for all).
func (a *Archive) List(limit int) ([]Run, error) {
	query := `
		SELECT
			id, source, destination, content_type,
			liked_transferred, liked_failed,
			playlists_transferred, playlists_failed,
			success, created_at
		FROM transfers
		ORDER BY created_at DESC
	`
	args := []any{}
	if limit > 0 {
		query += " LIMIT ?"
		args = append(args, limit)
	}

	rows, err := a.db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query transfer runs: %w", err)
	}
	defer rows.Close()

	var runs []Run
	for rows.Next() {
		var run Run
		if err := rows.Scan(
			&run.ID,
			&run.Source,
			&run.Destination,
			&run.ContentType,
			&run.LikedTransferred,
			&run.LikedFailed,
			&run.PlaylistsTransferred,
			&run.PlaylistsFailed,
			&run.Success,
			&run.CreatedAt,
		); err != nil {
			return nil, fmt.Errorf("failed to scan transfer run: %w", err)
		}
		runs = append(runs, run)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate transfer runs: %w", err)
	}

	return runs, nil
}
