package main

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/urfave/cli/v3"
	"trackshift/internal/shared"
	"trackshift/internal/tokens"
)

const settingsFile = "trackshift.toml"

func main() {
	logger := shared.NewLogger(nil)

	config, err := shared.LoadConfig(settingsFile)
	if err != nil {
		var missing *shared.MissingEnvError
		if errors.As(err, &missing) {
			fmt.Fprintln(os.Stderr, "Missing required environment variables:")
			for _, v := range missing.Vars {
				fmt.Fprintf(os.Stderr, "  - %s\n", v)
			}
			fmt.Fprintln(os.Stderr, "\nSet them in the environment or in a .env file in the working directory.")
			os.Exit(1)
		}
		logger.Fatalf("configuration error: %v", err)
	}

	store, err := tokens.NewStore(config.Settings.Files.Tokens)
	if err != nil {
		logger.Fatalf("failed to load token store: %v", err)
	}

	runner := NewRunner(RunnerOpts{
		Config: config,
		Store:  store,
		Logger: logger,
	})

	app := &cli.Command{
		Name:     "trackshift",
		Usage:    "Transfer a Spotify library between two accounts",
		Version:  "0.3.0",
		Commands: runner.register(),
	}

	if err := app.Run(context.Background(), os.Args); err != nil {
		if errors.Is(err, shared.ErrCancelled) {
			logger.Warn("cancelled")
			os.Exit(0)
		}
		logger.Fatalf("application error: %v", err)
	}
}
