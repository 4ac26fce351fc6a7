package main

import (
	"context"
	"fmt"
	"os"

	"github.com/itzgeebee/top-movies/internal/shared"
	"github.com/urfave/cli/v3"
)

// SetupDatabase creates the config file when missing, initializes the
// database and runs migrations.
func (r *Runner) SetupDatabase(ctx context.Context, cmd *cli.Command) error {
	logger := r.commandLogger(cmd, "setup")
	configPath := cmd.String("config")

	if _, err := os.Stat(configPath); os.IsNotExist(err) {
		logger.Info("config file not found, creating from template", "path", configPath)
		if err := shared.CreateConfigFile(configPath); err != nil {
			return fmt.Errorf("failed to create config file: %w", err)
		}
	}

	config := r.loadConfig(cmd)

	logger.Info("initializing database", "driver", config.Database.Driver, "dsn", config.Database.DSN)

	_, db, err := r.openRepository(config)
	if err != nil {
		return err
	}
	defer db.Close()

	r.writePlain("✓ setup complete\n")
	r.writePlain("Database ready at: %s\n", config.Database.DSN)
	r.writePlain("Next: export TMDB_API_KEY and run 'top-movies serve'\n")

	return nil
}
