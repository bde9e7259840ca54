package main

import (
	"context"
	"fmt"

	"github.com/urfave/cli/v3"
	"trackshift/internal/history"
	"trackshift/internal/shared"
	"trackshift/internal/tasks"
	"trackshift/internal/ui"
)

const (
	contentLiked     = "liked"
	contentPlaylists = "playlists"
	contentAll       = "all"
)

// transferCommand moves library content between the two accounts
func transferCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:  "transfer",
		Usage: "Transfer library content between accounts",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "direction",
				Aliases: []string{"d"},
				Usage:   "Transfer direction (1to2, 2to1, or both); prompts when omitted",
			},
			&cli.StringFlag{
				Name:    "content",
				Aliases: []string{"t"},
				Usage:   "Content to transfer (liked, playlists, or all); prompts when omitted",
			},
			&cli.StringSliceFlag{
				Name:    "playlist",
				Aliases: []string{"p"},
				Usage:   "Only transfer the playlist with this ID (repeatable)",
			},
			&cli.BoolFlag{
				Name:  "json",
				Usage: "Output the transfer record as JSON",
			},
		},
		Action: r.Transfer,
	}
}

// Transfer runs one or two directed transfers of the selected content.
// Missing direction or content flags fall back to interactive menus.
func (r *Runner) Transfer(ctx context.Context, cmd *cli.Command) error {
	direction, err := r.resolveDirection(cmd.String("direction"))
	if err != nil {
		return err
	}

	content, err := r.resolveContent(cmd.String("content"))
	if err != nil {
		return err
	}

	filter := cmd.StringSlice("playlist")
	asJSON := cmd.Bool("json")

	type leg struct{ source, dest shared.AccountConfig }

	var legs []leg
	switch direction {
	case "1to2":
		legs = []leg{{r.config.Account1, r.config.Account2}}
	case "2to1":
		legs = []leg{{r.config.Account2, r.config.Account1}}
	case "both":
		legs = []leg{
			{r.config.Account1, r.config.Account2},
			{r.config.Account2, r.config.Account1},
		}
	}

	for _, l := range legs {
		if err := r.runTransfer(ctx, l.source, l.dest, content, filter, asJSON); err != nil {
			return err
		}
	}

	return nil
}

// resolveDirection validates the flag value or prompts with a menu.
func (r *Runner) resolveDirection(flag string) (string, error) {
	switch flag {
	case "1to2", "2to1", "both":
		return flag, nil
	case "":
	default:
		return "", fmt.Errorf("%w: invalid direction %q (must be 1to2, 2to1, or both)", shared.ErrInvalidArgument, flag)
	}

	choice, err := ui.Choose("Transfer direction", []ui.Option{
		{Label: "Account 1 → Account 2"},
		{Label: "Account 2 → Account 1"},
		{Label: "Both directions", Desc: "runs 1→2 then 2→1"},
	})
	if err != nil {
		return "", err
	}

	return []string{"1to2", "2to1", "both"}[choice], nil
}

// resolveContent validates the flag value or prompts with a menu.
func (r *Runner) resolveContent(flag string) (string, error) {
	switch flag {
	case contentLiked, contentPlaylists, contentAll:
		return flag, nil
	case "":
	default:
		return "", fmt.Errorf("%w: invalid content %q (must be liked, playlists, or all)", shared.ErrInvalidArgument, flag)
	}

	choice, err := ui.Choose("Content to transfer", []ui.Option{
		{Label: "Liked songs"},
		{Label: "Playlists", Desc: "playlists owned by the source account"},
		{Label: "Everything"},
	})
	if err != nil {
		return "", err
	}

	return []string{contentLiked, contentPlaylists, contentAll}[choice], nil
}

// runTransfer performs one directed transfer and records the outcome.
func (r *Runner) runTransfer(ctx context.Context, source, dest shared.AccountConfig, content string, filter []string, asJSON bool) error {
	r.logger.Info("starting transfer", "source", source.Name, "dest", dest.Name, "content", content)
	r.writePlainHeader(fmt.Sprintf("Transfer: %s → %s", source.Name, dest.Name))

	for _, account := range []shared.AccountConfig{source, dest} {
		if _, err := r.flow(account).Authorize(ctx); err != nil {
			return fmt.Errorf("failed to authorize %s: %w", account.Name, err)
		}
	}

	sourceClient, err := r.client(ctx, source)
	if err != nil {
		return err
	}
	destClient, err := r.client(ctx, dest)
	if err != nil {
		return err
	}

	destUser, err := destClient.CurrentUser(ctx)
	if err != nil {
		return fmt.Errorf("failed to look up %s profile: %w", dest.Name, err)
	}

	// Create progress channel and goroutine to handle updates
	progressCh := make(chan tasks.ProgressUpdate, 50)
	done := make(chan struct{})
	go func() {
		defer close(done)
		for update := range progressCh {
			switch update.Phase {
			case tasks.FetchLiked, tasks.FetchPlaylists:
				r.writePlain("📥 %s\n", update.Message)
			case tasks.SaveLiked:
				r.writePlain("💾 %s\n", update.Message)
			case tasks.FetchTracks:
				r.writePlain("\n📥 %s\n", update.Message)
			case tasks.CreatePlaylist:
				r.writePlain("📝 %s\n", update.Message)
			case tasks.AddTracks:
				r.writePlain("   %s\n", update.Message)
			}
		}
	}()

	entry := history.Entry{
		Source:      source.Name,
		Destination: dest.Name,
		ContentType: content,
	}

	var runErr error

	if content == contentLiked || content == contentAll {
		entry.LikedSongs, runErr = r.engine.TransferLikedSongs(ctx, progressCh, sourceClient, destClient)
	}

	if runErr == nil && (content == contentPlaylists || content == contentAll) {
		entry.Playlists, runErr = r.engine.TransferPlaylists(ctx, progressCh, sourceClient, destClient, destUser.ID, filter)
	}

	close(progressCh)
	<-done

	if runErr != nil {
		return runErr
	}

	r.record(entry)

	if asJSON {
		return r.writeJSON(entry, true)
	}

	r.writePlainln("Transfer Complete")

	if entry.LikedSongs != nil {
		r.writePlain("Liked songs: %d transferred, %d failed\n", entry.LikedSongs.Transferred, entry.LikedSongs.Failed)
	}

	if entry.Playlists != nil {
		r.writePlain("Playlists:   %d transferred, %d failed\n", entry.Playlists.Transferred, entry.Playlists.Failed)
		for _, res := range entry.Playlists.Results {
			if res.Success {
				r.writePlain("  ✓ %s (%d tracks)\n", res.Name, res.TracksTotal-res.TracksFailed)
			} else if res.Error != "" {
				r.writePlain("  ✗ %s: %s\n", res.Name, res.Error)
			} else {
				r.writePlain("  ✗ %s (%d of %d tracks failed)\n", res.Name, res.TracksFailed, res.TracksTotal)
			}
		}
	}

	return nil
}

// record appends the entry to the JSON log and the sqlite archive. Recording
// failures are logged but never fail a transfer that already happened.
func (r *Runner) record(entry history.Entry) {
	transferLog := history.NewLog(r.config.Settings.Files.History)
	if err := transferLog.Append(entry); err != nil {
		r.logger.Warn("failed to append transfer log", "error", err)
	}

	db, err := shared.NewDatabase(r.config.Settings.Database.Path)
	if err != nil {
		r.logger.Warn("failed to open transfer archive", "error", err)
		return
	}
	defer db.Close()

	shared.ConfigureDatabase(db, r.config.Settings.Database.MaxOpenConns, r.config.Settings.Database.MaxIdleConns)

	archive, err := history.NewArchive(db)
	if err != nil {
		r.logger.Warn("failed to prepare transfer archive", "error", err)
		return
	}

	if err := archive.Record(entry); err != nil {
		r.logger.Warn("failed to record transfer run", "error", err)
	}
}
