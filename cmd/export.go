package main

import (
	"context"

	"github.com/itzgeebee/top-movies/internal/formatter"
	"github.com/urfave/cli/v3"
)

// Export writes the ranked movie list in the requested format to a file or stdout.
func (r *Runner) Export(ctx context.Context, cmd *cli.Command) error {
	logger := r.commandLogger(cmd, "export")
	config := r.loadConfig(cmd)
	format := cmd.String("format")
	output := cmd.String("output")

	movies, db, err := r.openRepository(config)
	if err != nil {
		return err
	}
	defer db.Close()

	ranked, err := movies.ListRanked(ctx)
	if err != nil {
		return err
	}

	if output == "" {
		data, err := formatter.Export(ranked, format)
		if err != nil {
			return err
		}
		return r.writePlain("%s", data)
	}

	if err := formatter.WriteExport(ranked, format, output); err != nil {
		return err
	}

	logger.Info("export written", "format", format, "path", output, "movies", len(ranked))
	return nil
}
