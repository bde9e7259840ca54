package main

import (
	"context"

	"github.com/urfave/cli/v3"
	"trackshift/internal/shared"
)

// authCommand authorizes one or both accounts
func authCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:  "auth",
		Usage: "Authorize accounts with Spotify using OAuth2",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "account",
				Aliases: []string{"a"},
				Usage:   "Account to authorize (1, 2, or both)",
				Value:   "both",
			},
		},
		Action: r.Auth,
	}
}

// Auth runs the authorization flow for the selected accounts. An account with
// a working stored refresh token is reported as already authorized without
// opening a browser.
func (r *Runner) Auth(ctx context.Context, cmd *cli.Command) error {
	selected := cmd.String("account")

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

	for i, account := range accounts {
		if i > 0 {
			r.waitForEnter("\nPress Enter to authorize " + account.Name + "...")
		}

		r.writePlainHeader("Authorizing " + account.Name)

		if _, err := r.flow(account).Authorize(ctx); err != nil {
			return err
		}

		r.writePlain("✓ %s authorized\n", account.Name)
	}

	r.writePlainln("Refresh tokens saved to %s", r.store.Path())
	return nil
}
