// submodule cmd contains command definitions
package main

import (
	"context"

	"github.com/urfave/cli/v3"
	"trackshift/internal/shared"
)

// setupCommand writes the default settings file for editing
func setupCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:  "setup",
		Usage: "Write a default settings file",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "config",
				Aliases: []string{"c"},
				Usage:   "Path for the settings file",
				Value:   settingsFile,
			},
		},
		Action: r.Setup,
	}
}

// Setup creates a settings file at the configured path.
func (r *Runner) Setup(ctx context.Context, cmd *cli.Command) error {
	path := cmd.String("config")

	if err := shared.CreateSettingsFile(path); err != nil {
		return err
	}

	r.writePlain("Created %s\n", path)
	r.writePlain("Edit it to change file paths, timeouts, or the write rate.\n")
	return nil
}
