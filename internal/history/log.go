// package history persists transfer outcomes: a human-inspectable JSON log
// plus a sqlite archive queried by the history command.
package history

import (
	"encoding/json"
	"fmt"
	"os"
	"time"

	"trackshift/internal/tasks"
)

// Entry is one appended transfer record.
type Entry struct {
	Source      string                 `json:"source"`
	Destination string                 `json:"destination"`
	ContentType string                 `json:"content_type"`
	LikedSongs  *tasks.LikedResult     `json:"liked_songs,omitempty"`
	Playlists   *tasks.PlaylistsResult `json:"playlists,omitempty"`
	Timestamp   string                 `json:"timestamp"`
}

// Log is the JSON transfer log: an ordered array of entries, rewritten in
// full on each append. Entries are never mutated after being written.
type Log struct {
	path string
}

// NewLog creates a Log backed by the file at path.
func NewLog(path string) *Log {
	return &Log{path: path}
}

// Append stamps the entry with the current time and writes it after all
// existing entries. A missing file starts an empty log.
func (l *Log) Append(entry Entry) error {
	entries, err := l.Entries()
	if err != nil {
		return err
	}

	entry.Timestamp = time.Now().Format(time.RFC3339)
	entries = append(entries, entry)

	data, err := json.MarshalIndent(entries, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal transfer log: %w", err)
	}

	if err := os.WriteFile(l.path, data, 0644); err != nil {
		return fmt.Errorf("failed to write transfer log: %w", err)
	}

	return nil
}

// Entries reads the full log, oldest first.
func (l *Log) Entries() ([]Entry, error) {
	data, err := os.ReadFile(l.path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to read transfer log: %w", err)
	}

	var entries []Entry
	if err := json.Unmarshal(data, &entries); err != nil {
		return nil, fmt.Errorf("failed to parse transfer log %s: %w", l.path, err)
	}

	return entries, nil
}

// Path returns the backing file path.
func (l *Log) Path() string {
	return l.path
}
