package main

import (
	"context"

	"github.com/urfave/cli/v3"
	"trackshift/internal/history"
	"trackshift/internal/shared"
)

// historyCommand lists past transfer runs
func historyCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:  "history",
		Usage: "List past transfer runs",
		Flags: []cli.Flag{
			&cli.IntFlag{
				Name:    "limit",
				Aliases: []string{"n"},
				Usage:   "Maximum number of runs to show (0 for all)",
				Value:   20,
			},
			&cli.BoolFlag{
				Name:  "json",
				Usage: "Print the full JSON transfer log instead of the archive",
			},
		},
		Action: r.History,
	}
}

// History lists archived runs newest first, or dumps the JSON transfer log
// with per-playlist detail when --json is set.
func (r *Runner) History(ctx context.Context, cmd *cli.Command) error {
	if cmd.Bool("json") {
		entries, err := history.NewLog(r.config.Settings.Files.History).Entries()
		if err != nil {
			return err
		}
		return r.writeJSON(entries, true)
	}

	db, err := shared.NewDatabase(r.config.Settings.Database.Path)
	if err != nil {
		return err
	}
	defer db.Close()

	archive, err := history.NewArchive(db)
	if err != nil {
		return err
	}

	runs, err := archive.List(int(cmd.Int("limit")))
	if err != nil {
		return err
	}

	if len(runs) == 0 {
		r.writePlain("No transfers recorded yet.\n")
		return nil
	}

	r.writePlainHeader("Transfer History")
	for _, run := range runs {
		status := "✓"
		if !run.Success {
			status = "✗"
		}
		r.writePlain("%s %s  %s → %s  [%s]\n", status, run.CreatedAt.Format("2006-01-02 15:04"), run.Source, run.Destination, run.ContentType)
		if run.ContentType == contentLiked || run.ContentType == contentAll {
			r.writePlain("    liked: %d transferred, %d failed\n", run.LikedTransferred, run.LikedFailed)
		}
		if run.ContentType == contentPlaylists || run.ContentType == contentAll {
			r.writePlain("    playlists: %d transferred, %d failed\n", run.PlaylistsTransferred, run.PlaylistsFailed)
		}
	}

	return nil
}
