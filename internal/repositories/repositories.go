// package repositories provides the persistence layer for tracked movies.
//
// MovieRepository implements the CRUD surface over database/sql with the
// driver chosen at startup (sqlite or postgres), handling ID assignment via
// a sequence table and the ranking writes the listing view performs.
package repositories

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/itzgeebee/top-movies/internal/shared"
)

// nextSequence atomically increments and returns the next movie ID within
// the caller's transaction, so Create always knows the assigned ID without
// relying on driver-specific last-insert-id support.
func nextSequence(ctx context.Context, tx *sql.Tx, driver string) (int64, error) {
	_, err := tx.ExecContext(ctx, "UPDATE movies_sequence SET value = value + 1 WHERE id = 1")
	if err != nil {
		return 0, fmt.Errorf("failed to increment sequence: %w", err)
	}

	var sequence int64
	err = tx.QueryRowContext(ctx, "SELECT value FROM movies_sequence WHERE id = 1").Scan(&sequence)
	if err != nil {
		return 0, fmt.Errorf("failed to get sequence value: %w", err)
	}

	return sequence, nil
}

// rebind adapts a "?" placeholder query to the repository's driver.
func rebind(driver, query string) string {
	return shared.Rebind(driver, query)
}
