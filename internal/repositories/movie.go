package repositories

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/itzgeebee/top-movies/internal/models"
	"github.com/itzgeebee/top-movies/internal/shared"
)

const movieColumns = "id, title, year, description, rating, ranking, review, img_url, created_at, updated_at"

// MovieRepository handles CRUD operations for [models.Movie].
//
// All operations run in an implicit single-statement transaction scope
// unless noted otherwise. There is no optimistic-concurrency check: two
// concurrent edits of the same record are last-writer-wins.
type MovieRepository struct {
	db     *sql.DB
	driver string
}

// NewMovieRepository creates a MovieRepository over the given connection.
// driver must match the driver the connection was opened with.
func NewMovieRepository(db *sql.DB, driver string) *MovieRepository {
	return &MovieRepository{db: db, driver: driver}
}

// Create inserts a new movie, assigning its ID from the sequence table and
// applying the creation defaults (rating 0, review "None"). The assigned ID
// is written back to m.
func (r *MovieRepository) Create(ctx context.Context, m *models.Movie) error {
	if m.Review == "" {
		m.Review = models.DefaultReview
	}
	if err := m.Validate(); err != nil {
		return err
	}

	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	id, err := nextSequence(ctx, tx, r.driver)
	if err != nil {
		return err
	}

	now := time.Now()
	m.ID = id
	m.CreatedAt = now
	m.UpdatedAt = now

	query := rebind(r.driver, `
		INSERT INTO movies (id, title, year, description, rating, ranking, review, img_url, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`)

	_, err = tx.ExecContext(ctx, query,
		m.ID, m.Title, m.Year, m.Description, m.Rating, m.Ranking, m.Review, m.ImgURL, m.CreatedAt, m.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to insert movie: %w", err)
	}

	return tx.Commit()
}

// Get retrieves a movie by ID.
func (r *MovieRepository) Get(ctx context.Context, id int64) (*models.Movie, error) {
	query := rebind(r.driver, "SELECT "+movieColumns+" FROM movies WHERE id = ?")
	return r.scanOne(r.db.QueryRowContext(ctx, query, id))
}

// GetByTitle retrieves the first movie with the given title, lowest ID first.
func (r *MovieRepository) GetByTitle(ctx context.Context, title string) (*models.Movie, error) {
	query := rebind(r.driver, "SELECT "+movieColumns+" FROM movies WHERE title = ? ORDER BY id LIMIT 1")
	return r.scanOne(r.db.QueryRowContext(ctx, query, title))
}

// List retrieves every movie in insertion order. The store itself guarantees
// no other ordering; callers that need one must sort explicitly.
func (r *MovieRepository) List(ctx context.Context) ([]*models.Movie, error) {
	rows, err := r.db.QueryContext(ctx, "SELECT "+movieColumns+" FROM movies ORDER BY id ASC")
	if err != nil {
		return nil, fmt.Errorf("failed to query movies: %w", err)
	}
	defer rows.Close()

	var movies []*models.Movie
	for rows.Next() {
		m, err := scanMovie(rows.Scan)
		if err != nil {
			return nil, err
		}
		movies = append(movies, m)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("row iteration error: %w", err)
	}

	return movies, nil
}

// ListRanked implements the listing operation: fetch all movies, recompute
// the dense ranking from ratings, persist the new rankings, and return the
// originally fetched sequence annotated with them. The returned order is the
// fetch order, not the rank order.
func (r *MovieRepository) ListRanked(ctx context.Context) ([]*models.Movie, error) {
	movies, err := r.List(ctx)
	if err != nil {
		return nil, err
	}

	changes := models.Rank(movies)
	if err := r.UpdateRankings(ctx, changes); err != nil {
		return nil, err
	}

	models.ApplyRanks(movies, changes)
	return movies, nil
}

// UpdateReview overwrites a movie's rating and review and returns a fresh
// snapshot of the updated row. No other fields change.
func (r *MovieRepository) UpdateReview(ctx context.Context, id int64, rating float64, review string) (*models.Movie, error) {
	query := rebind(r.driver, "UPDATE movies SET rating = ?, review = ?, updated_at = ? WHERE id = ?")

	result, err := r.db.ExecContext(ctx, query, rating, review, time.Now(), id)
	if err != nil {
		return nil, fmt.Errorf("failed to update movie: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return nil, fmt.Errorf("failed to get affected rows: %w", err)
	}
	if rows == 0 {
		return nil, fmt.Errorf("%w: id %d", shared.ErrMovieNotFound, id)
	}

	return r.Get(ctx, id)
}

// UpdateRankings persists a batch of ranking assignments in one transaction.
func (r *MovieRepository) UpdateRankings(ctx context.Context, changes []models.RankChange) error {
	if len(changes) == 0 {
		return nil
	}

	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	query := rebind(r.driver, "UPDATE movies SET ranking = ? WHERE id = ?")
	for _, c := range changes {
		if _, err := tx.ExecContext(ctx, query, c.Ranking, c.ID); err != nil {
			return fmt.Errorf("failed to update ranking for movie %d: %w", c.ID, err)
		}
	}

	return tx.Commit()
}

// Delete removes a movie by ID. Deleting an already-deleted movie reports
// [shared.ErrMovieNotFound].
func (r *MovieRepository) Delete(ctx context.Context, id int64) error {
	query := rebind(r.driver, "DELETE FROM movies WHERE id = ?")

	result, err := r.db.ExecContext(ctx, query, id)
	if err != nil {
		return fmt.Errorf("failed to delete movie: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get affected rows: %w", err)
	}
	if rows == 0 {
		return fmt.Errorf("%w: id %d", shared.ErrMovieNotFound, id)
	}

	return nil
}

// scanOne scans a single [sql.Row] into a [models.Movie].
func (r *MovieRepository) scanOne(row *sql.Row) (*models.Movie, error) {
	m, err := scanMovie(row.Scan)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, shared.ErrMovieNotFound
	}
	if err != nil {
		return nil, err
	}
	return m, nil
}

// scanMovie scans one row's columns into a [models.Movie] via the given scan function.
func scanMovie(scan func(dest ...any) error) (*models.Movie, error) {
	var m models.Movie

	err := scan(&m.ID, &m.Title, &m.Year, &m.Description, &m.Rating, &m.Ranking, &m.Review, &m.ImgURL, &m.CreatedAt, &m.UpdatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, err
	}
	if err != nil {
		return nil, fmt.Errorf("failed to scan movie: %w", err)
	}

	return &m, nil
}
