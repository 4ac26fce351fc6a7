package ui

import (
	"fmt"

	"github.com/charmbracelet/bubbles/list"
	"github.com/itzgeebee/top-movies/internal/models"
)

var _ list.Item = movieItem{}

// movieItem wraps [models.Movie] to implement [list.Item].
type movieItem struct {
	movie *models.Movie
}

func (i movieItem) FilterValue() string { return i.movie.Title }

func (i movieItem) Title() string {
	return fmt.Sprintf("#%d %s (%s)", i.movie.Ranking, i.movie.Title, i.movie.Year)
}

func (i movieItem) Description() string {
	desc := fmt.Sprintf("%.1f/10", i.movie.Rating)
	if i.movie.Review != "" && i.movie.Review != models.DefaultReview {
		desc = fmt.Sprintf("%s • %s", desc, i.movie.Review)
	}
	return desc
}
