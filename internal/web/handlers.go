package web

import (
	"fmt"
	"net/http"
	"strconv"

	"github.com/itzgeebee/top-movies/internal/models"
	"github.com/itzgeebee/top-movies/internal/server"
	"github.com/itzgeebee/top-movies/internal/services"
	"github.com/itzgeebee/top-movies/internal/shared"
)

// Home renders the movie list. Rankings are recomputed from ratings and
// persisted on every view; the page shows movies in fetch order with the
// fresh ranking numbers.
func (h *Handlers) Home(w http.ResponseWriter, r *http.Request) {
	movies, err := h.movies.ListRanked(r.Context())
	if err != nil {
		h.fail(w, r, err)
		return
	}

	h.render(w, http.StatusOK, "index.html", struct {
		Movies []*models.Movie
	}{movies})
}

// editPage is the view model for the edit form.
type editPage struct {
	Movie *models.Movie
	Form  models.ReviewForm
}

// Edit shows the rating + review form on GET and persists it on a valid
// POST. Invalid input re-renders the form with field errors and changes
// nothing.
func (h *Handlers) Edit(w http.ResponseWriter, r *http.Request) {
	id, err := queryID(r)
	if err != nil {
		h.fail(w, r, err)
		return
	}

	if r.Method == http.MethodGet {
		movie, err := h.movies.Get(r.Context(), id)
		if err != nil {
			h.fail(w, r, err)
			return
		}
		h.render(w, http.StatusOK, "edit.html", editPage{Movie: movie, Form: models.ReviewForm{Errors: models.FieldErrors{}}})
		return
	}

	if err := r.ParseForm(); err != nil {
		h.fail(w, r, fmt.Errorf("%w: %v", shared.ErrInvalidInput, err))
		return
	}

	form := models.ParseReviewForm(r.PostForm)
	if !form.Valid() {
		movie, err := h.movies.Get(r.Context(), id)
		if err != nil {
			h.fail(w, r, err)
			return
		}
		h.render(w, http.StatusOK, "edit.html", editPage{Movie: movie, Form: form})
		return
	}

	if _, err := h.movies.UpdateReview(r.Context(), id, form.Rating, form.Review); err != nil {
		h.fail(w, r, err)
		return
	}

	http.Redirect(w, r, "/", http.StatusSeeOther)
}

// Delete removes a movie and redirects to the list. No confirmation step.
func (h *Handlers) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := queryID(r)
	if err != nil {
		h.fail(w, r, err)
		return
	}

	if err := h.movies.Delete(r.Context(), id); err != nil {
		h.fail(w, r, err)
		return
	}

	http.Redirect(w, r, "/", http.StatusSeeOther)
}

// candidate pairs a search result with its resolved poster URL for display.
type candidate struct {
	services.MovieSummary
	ImgURL string
}

// addPage is the view model for the search form.
type addPage struct {
	Form models.SearchForm
}

// Add shows the search form on GET and runs the metadata search on a valid
// POST, rendering the candidate list exactly as the API returned it.
func (h *Handlers) Add(w http.ResponseWriter, r *http.Request) {
	if r.Method == http.MethodGet {
		h.render(w, http.StatusOK, "add.html", addPage{Form: models.SearchForm{Errors: models.FieldErrors{}}})
		return
	}

	if err := r.ParseForm(); err != nil {
		h.fail(w, r, fmt.Errorf("%w: %v", shared.ErrInvalidInput, err))
		return
	}

	form := models.ParseSearchForm(r.PostForm)
	if !form.Valid() {
		h.render(w, http.StatusOK, "add.html", addPage{Form: form})
		return
	}

	results, err := h.metadata.Search(r.Context(), form.NewMovie)
	if err != nil {
		h.fail(w, r, err)
		return
	}

	candidates := make([]candidate, len(results))
	for i, result := range results {
		candidates[i] = candidate{MovieSummary: result, ImgURL: h.metadata.ImageURL(result.PosterPath)}
	}

	h.render(w, http.StatusOK, "select.html", struct {
		Query      string
		Candidates []candidate
	}{form.NewMovie, candidates})
}

// Select fetches the detail record for the chosen candidate, creates the
// movie with its creation defaults (rating 0, review "None", placeholder
// ranking corrected on the next list view) and redirects straight to the
// edit form for the new record.
func (h *Handlers) Select(w http.ResponseWriter, r *http.Request) {
	externalID, err := strconv.ParseInt(server.Param(r, "id"), 10, 64)
	if err != nil {
		h.fail(w, r, fmt.Errorf("%w: select id must be an integer", shared.ErrInvalidInput))
		return
	}

	detail, err := h.metadata.FetchDetail(r.Context(), externalID)
	if err != nil {
		h.fail(w, r, err)
		return
	}

	movie := &models.Movie{
		Title:       detail.OriginalTitle,
		Year:        detail.Year(),
		Description: models.Truncate(detail.Overview, models.MaxDescriptionLen),
		Rating:      0,
		Ranking:     1,
		Review:      models.DefaultReview,
		ImgURL:      h.metadata.ImageURL(detail.PosterPath),
	}

	if err := h.movies.Create(r.Context(), movie); err != nil {
		h.fail(w, r, err)
		return
	}

	http.Redirect(w, r, fmt.Sprintf("/edit?id=%d", movie.ID), http.StatusSeeOther)
}

// queryID parses the required "id" query parameter.
func queryID(r *http.Request) (int64, error) {
	raw := r.URL.Query().Get("id")
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("%w: id query parameter must be an integer", shared.ErrInvalidInput)
	}
	return id, nil
}
