package history

import (
	"testing"

	"trackshift/internal/shared"
	"trackshift/internal/tasks"
)

func newTestArchive(t *testing.T) *Archive {
	t.Helper()

	db, err := shared.NewDatabase(":memory:")
	if err != nil {
		t.Fatalf("failed to open database: %v", err)
	}
	t.Cleanup(func() { db.Close() })

	archive, err := NewArchive(db)
	if err != nil {
		t.Fatalf("failed to create archive: %v", err)
	}
	return archive
}

func TestArchive(t *testing.T) {
	t.Run("Empty Archive", func(t *testing.T) {
		archive := newTestArchive(t)

		runs, err := archive.List(0)
		if err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
		if len(runs) != 0 {
			t.Errorf("expected no runs, got %d", len(runs))
		}
	})

	t.Run("Record And List", func(t *testing.T) {
		archive := newTestArchive(t)

		err := archive.Record(Entry{
			Source:      "Account 1",
			Destination: "Account 2",
			ContentType: "all",
			LikedSongs:  &tasks.LikedResult{Success: true, Transferred: 40, Failed: 0},
			Playlists:   &tasks.PlaylistsResult{Success: false, Transferred: 3, Failed: 1},
		})
		if err != nil {
			t.Fatalf("failed to record: %v", err)
		}

		runs, err := archive.List(0)
		if err != nil {
			t.Fatalf("failed to list: %v", err)
		}
		if len(runs) != 1 {
			t.Fatalf("expected 1 run, got %d", len(runs))
		}

		run := runs[0]
		if run.ID == "" {
			t.Error("expected generated run id")
		}
		if run.LikedTransferred != 40 || run.PlaylistsFailed != 1 {
			t.Errorf("unexpected counts: %+v", run)
		}
		if run.Success {
			t.Error("expected overall failure when any side failed")
		}
	})

	t.Run("Success Requires All Sides", func(t *testing.T) {
		archive := newTestArchive(t)

		archive.Record(Entry{
			Source:      "Account 1",
			Destination: "Account 2",
			ContentType: "liked",
			LikedSongs:  &tasks.LikedResult{Success: true, Transferred: 5},
		})

		runs, _ := archive.List(0)
		if len(runs) != 1 || !runs[0].Success {
			t.Errorf("expected successful run, got %+v", runs)
		}
	})

	t.Run("Limit", func(t *testing.T) {
		archive := newTestArchive(t)

		for range 5 {
			archive.Record(Entry{Source: "Account 1", Destination: "Account 2", ContentType: "liked"})
		}

		runs, err := archive.List(3)
		if err != nil {
			t.Fatalf("failed to list: %v", err)
		}
		if len(runs) != 3 {
			t.Errorf("expected limit applied, got %d runs", len(runs))
		}
	})
}
