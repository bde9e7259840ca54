package main

import (
	"context"

	"github.com/urfave/cli/v3"
	"trackshift/internal/shared"
)

// accountInfo is the JSON shape for the accounts command.
type accountInfo struct {
	Account     string `json:"account"`
	UserID      string `json:"user_id"`
	DisplayName string `json:"display_name"`
	Followers   int    `json:"followers"`
	LikedSongs  int    `json:"liked_songs"`
	Playlists   int    `json:"playlists"`
}

// accountsCommand shows profile and library counts for authorized accounts
func accountsCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:  "accounts",
		Usage: "Show profile and library counts for both accounts",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "account",
				Aliases: []string{"a"},
				Usage:   "Account to inspect (1, 2, or both)",
				Value:   "both",
			},
			&cli.BoolFlag{
				Name:  "json",
				Usage: "Output JSON",
			},
		},
		Action: r.Accounts,
	}
}

// Accounts looks up each selected account's profile, liked songs count, and
// owned playlist count. Accounts that fail to authorize are reported and
// skipped rather than aborting the command.
func (r *Runner) Accounts(ctx context.Context, cmd *cli.Command) error {
	selected := cmd.String("account")
	asJSON := cmd.Bool("json")

	var accounts []shared.AccountConfig
	switch selected {
	case "both":
		accounts = []shared.AccountConfig{r.config.Account1, r.config.Account2}
	default:
		account, err := r.account(selected)
		if err != nil {
			return err
		}
		accounts = []shared.AccountConfig{account}
	}

	var infos []accountInfo

	for _, account := range accounts {
		info, err := r.accountInfo(ctx, account)
		if err != nil {
			r.logger.Warn("failed to inspect account", "account", account.Name, "error", err)
			r.writePlain("✗ %s: %v\n", account.Name, err)
			r.writePlain("  Run `trackshift auth --account %s` to authorize. If the problem persists,\n", account.Key)
			r.writePlain("  delete %s and authorize again.\n", r.store.Path())
			continue
		}

		if asJSON {
			infos = append(infos, *info)
			continue
		}

		r.writePlainHeader(account.Name)
		r.writePlain("User:      %s (%s)\n", info.DisplayName, info.UserID)
		r.writePlain("Followers: %d\n", info.Followers)
		r.writePlain("Liked:     %d songs\n", info.LikedSongs)
		r.writePlain("Playlists: %d owned\n", info.Playlists)
	}

	if asJSON {
		return r.writeJSON(infos, true)
	}

	return nil
}

func (r *Runner) accountInfo(ctx context.Context, account shared.AccountConfig) (*accountInfo, error) {
	client, err := r.client(ctx, account)
	if err != nil {
		return nil, err
	}

	user, err := client.CurrentUser(ctx)
	if err != nil {
		return nil, err
	}

	liked, err := client.LikedTracks(ctx)
	if err != nil {
		return nil, err
	}

	playlists, err := client.OwnedPlaylists(ctx)
	if err != nil {
		return nil, err
	}

	return &accountInfo{
		Account:     account.Name,
		UserID:      user.ID,
		DisplayName: user.DisplayName,
		Followers:   user.Followers.Total,
		LikedSongs:  len(liked),
		Playlists:   len(playlists),
	}, nil
}
