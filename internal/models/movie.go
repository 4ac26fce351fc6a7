package models

import (
	"fmt"
	"time"

	"github.com/itzgeebee/top-movies/internal/shared"
)

// MaxDescriptionLen bounds the stored synopsis length, in runes.
const MaxDescriptionLen = 255

// DefaultReview is the sentinel review text a movie carries until its first edit.
const DefaultReview = "None"

// Movie represents one tracked film.
//
// ID is assigned by the repository on creation and immutable afterwards.
// Ranking is derived: it is recomputed from Rating across all records before
// every listing view and is not independently authoritative.
type Movie struct {
	ID          int64
	Title       string
	Year        string
	Description string
	Rating      float64
	Ranking     int
	Review      string
	ImgURL      string
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// Validate checks the fields a record must carry before it is persisted.
// Rating bounds are deliberately not checked here: the storage layer accepts
// any float, only the edit form enforces [0,10].
func (m *Movie) Validate() error {
	if m.Title == "" {
		return fmt.Errorf("%w: title must not be empty", shared.ErrInvalidInput)
	}
	if len([]rune(m.Description)) > MaxDescriptionLen {
		return fmt.Errorf("%w: description exceeds %d characters", shared.ErrInvalidInput, MaxDescriptionLen)
	}
	return nil
}

// Truncate clamps free-form text to at most n runes.
func Truncate(s string, n int) string {
	runes := []rune(s)
	if len(runes) <= n {
		return s
	}
	return string(runes[:n])
}
