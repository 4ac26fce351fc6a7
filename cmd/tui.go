package main

import (
	"context"

	"github.com/itzgeebee/top-movies/internal/ui"
	"github.com/urfave/cli/v3"
)

// Tui opens the interactive terminal browser for the ranked movie list.
func (r *Runner) Tui(ctx context.Context, cmd *cli.Command) error {
	logger := r.commandLogger(cmd, "tui")
	config := r.loadConfig(cmd)

	movies, db, err := r.openRepository(config)
	if err != nil {
		return err
	}
	defer db.Close()

	logger.Debug("opening terminal browser")
	return ui.Run(movies.ListRanked)
}
