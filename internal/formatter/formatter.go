// package formatter exports the tracked movie list to various formats (CSV, Markdown, plain text, JSON)
package formatter

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"os"
	"sort"
	"strconv"

	"github.com/itzgeebee/top-movies/internal/models"
	"github.com/itzgeebee/top-movies/internal/shared"
)

// sortByRanking returns a copy of movies ordered best-first (ranking 1 on top).
func sortByRanking(movies []*models.Movie) []*models.Movie {
	sorted := make([]*models.Movie, len(movies))
	copy(sorted, movies)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].Ranking < sorted[j].Ranking
	})
	return sorted
}

// ExportToCSV converts the movie list to CSV with columns: ID, Ranking, Title, Year, Rating, Review.
func ExportToCSV(movies []*models.Movie) ([]byte, error) {
	var buf bytes.Buffer
	writer := csv.NewWriter(&buf)

	headers := []string{"ID", "Ranking", "Title", "Year", "Rating", "Review"}
	if err := writer.Write(headers); err != nil {
		return nil, fmt.Errorf("failed to write CSV headers: %w", err)
	}

	for _, movie := range sortByRanking(movies) {
		record := []string{
			strconv.FormatInt(movie.ID, 10),
			strconv.Itoa(movie.Ranking),
			movie.Title,
			movie.Year,
			strconv.FormatFloat(movie.Rating, 'f', -1, 64),
			movie.Review,
		}
		if err := writer.Write(record); err != nil {
			return nil, fmt.Errorf("failed to write CSV record: %w", err)
		}
	}

	writer.Flush()
	if err := writer.Error(); err != nil {
		return nil, fmt.Errorf("CSV writer error: %w", err)
	}

	return buf.Bytes(), nil
}

// ExportToMarkdown converts the movie list to a Markdown document with poster links.
func ExportToMarkdown(movies []*models.Movie) ([]byte, error) {
	var buf bytes.Buffer

	buf.WriteString("# My Top Movies\n\n")
	buf.WriteString(fmt.Sprintf("**Movies**: %d\n\n", len(movies)))

	for _, movie := range sortByRanking(movies) {
		buf.WriteString(fmt.Sprintf("%d. **%s** (%s) — %.1f/10\n", movie.Ranking, movie.Title, movie.Year, movie.Rating))
		if movie.Review != "" && movie.Review != models.DefaultReview {
			buf.WriteString(fmt.Sprintf("   > %s\n", movie.Review))
		}
		if movie.ImgURL != "" {
			buf.WriteString(fmt.Sprintf("   [poster](%s)\n", movie.ImgURL))
		}
	}

	return buf.Bytes(), nil
}

// ExportToText converts the movie list to plain text.
func ExportToText(movies []*models.Movie) ([]byte, error) {
	var buf bytes.Buffer

	buf.WriteString(fmt.Sprintf("My Top Movies (%d)\n\n", len(movies)))

	for _, movie := range sortByRanking(movies) {
		buf.WriteString(fmt.Sprintf("%d. %s (%s) - %.1f/10\n", movie.Ranking, movie.Title, movie.Year, movie.Rating))
	}

	return buf.Bytes(), nil
}

// ExportToJSON converts the movie list to pretty-printed JSON.
func ExportToJSON(movies []*models.Movie) ([]byte, error) {
	return shared.MarshalJSON(sortByRanking(movies), true)
}

// Export formats the movie list in the named format: "csv", "markdown", "text" or "json".
func Export(movies []*models.Movie, format string) ([]byte, error) {
	switch format {
	case "csv":
		return ExportToCSV(movies)
	case "markdown", "md":
		return ExportToMarkdown(movies)
	case "text", "txt":
		return ExportToText(movies)
	case "json":
		return ExportToJSON(movies)
	default:
		return nil, fmt.Errorf("%w: unknown export format %q", shared.ErrInvalidArgument, format)
	}
}

// WriteExport formats the movie list and writes it to path.
func WriteExport(movies []*models.Movie, format, path string) error {
	data, err := Export(movies, format)
	if err != nil {
		return err
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write export file: %w", err)
	}

	return nil
}
