package history

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"
	"time"

	"trackshift/internal/tasks"
)

func TestLog(t *testing.T) {
	t.Run("Missing File Is Empty Log", func(t *testing.T) {
		log := NewLog(filepath.Join(t.TempDir(), "history.json"))

		entries, err := log.Entries()
		if err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
		if len(entries) != 0 {
			t.Errorf("expected empty log, got %d entries", len(entries))
		}
	})

	t.Run("Append Preserves Existing Entries", func(t *testing.T) {
		log := NewLog(filepath.Join(t.TempDir(), "history.json"))

		first := Entry{
			Source:      "Account 1",
			Destination: "Account 2",
			ContentType: "liked",
			LikedSongs:  &tasks.LikedResult{Success: true, Transferred: 10},
		}
		second := Entry{
			Source:      "Account 2",
			Destination: "Account 1",
			ContentType: "playlists",
			Playlists:   &tasks.PlaylistsResult{Success: false, Transferred: 1, Failed: 2},
		}

		if err := log.Append(first); err != nil {
			t.Fatalf("failed to append: %v", err)
		}
		if err := log.Append(second); err != nil {
			t.Fatalf("failed to append: %v", err)
		}

		entries, err := log.Entries()
		if err != nil {
			t.Fatalf("failed to read entries: %v", err)
		}

		if len(entries) != 2 {
			t.Fatalf("expected 2 entries, got %d", len(entries))
		}
		if entries[0].Source != "Account 1" || entries[1].Source != "Account 2" {
			t.Errorf("expected append order preserved, got %+v", entries)
		}
		if entries[0].LikedSongs == nil || entries[0].LikedSongs.Transferred != 10 {
			t.Errorf("expected liked result round-tripped, got %+v", entries[0].LikedSongs)
		}
		if entries[1].Playlists == nil || entries[1].Playlists.Failed != 2 {
			t.Errorf("expected playlists result round-tripped, got %+v", entries[1].Playlists)
		}
	})

	t.Run("Timestamps Stamped On Append", func(t *testing.T) {
		log := NewLog(filepath.Join(t.TempDir(), "history.json"))

		if err := log.Append(Entry{Source: "Account 1", Destination: "Account 2", ContentType: "liked"}); err != nil {
			t.Fatalf("failed to append: %v", err)
		}

		entries, _ := log.Entries()
		if len(entries) != 1 {
			t.Fatal("expected one entry")
		}

		stamp, err := time.Parse(time.RFC3339, entries[0].Timestamp)
		if err != nil {
			t.Fatalf("timestamp is not RFC3339: %v", err)
		}
		if time.Since(stamp) > time.Minute {
			t.Errorf("timestamp not recent: %v", stamp)
		}
	})

	t.Run("File Is Readable JSON Array", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "history.json")
		log := NewLog(path)
		log.Append(Entry{Source: "Account 1", Destination: "Account 2", ContentType: "all"})

		data, err := os.ReadFile(path)
		if err != nil {
			t.Fatalf("failed to read log file: %v", err)
		}

		var raw []map[string]any
		if err := json.Unmarshal(data, &raw); err != nil {
			t.Fatalf("log file is not a JSON array: %v", err)
		}
		if raw[0]["content_type"] != "all" {
			t.Errorf("unexpected file contents: %v", raw)
		}
	})

	t.Run("Corrupt File", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "history.json")
		os.WriteFile(path, []byte("nope"), 0644)

		log := NewLog(path)
		if _, err := log.Entries(); err == nil {
			t.Error("expected error for corrupt log")
		}
		if err := log.Append(Entry{}); err == nil {
			t.Error("expected append to refuse a corrupt log")
		}
	})
}
