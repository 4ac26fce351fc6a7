package web_test

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/itzgeebee/top-movies/internal/models"
	"github.com/itzgeebee/top-movies/internal/repositories"
	"github.com/itzgeebee/top-movies/internal/server"
	"github.com/itzgeebee/top-movies/internal/services"
	"github.com/itzgeebee/top-movies/internal/shared"
	mock "github.com/itzgeebee/top-movies/internal/testing"
	"github.com/itzgeebee/top-movies/internal/web"
)

type testApp struct {
	router   *server.Router
	movies   *repositories.MovieRepository
	metadata *mock.MockMetadataService
}

func newTestApp(t *testing.T) *testApp {
	t.Helper()

	db, err := shared.NewDatabase("sqlite3", ":memory:")
	if err != nil {
		t.Fatalf("failed to create test database: %v", err)
	}
	t.Cleanup(func() { db.Close() })

	if err := shared.RunMigrations(db, "sqlite3"); err != nil {
		t.Fatalf("failed to run migrations: %v", err)
	}

	movies := repositories.NewMovieRepository(db, "sqlite3")
	metadata := &mock.MockMetadataService{}

	handlers, err := web.NewHandlers(movies, metadata, shared.NewLogger(io.Discard))
	if err != nil {
		t.Fatalf("failed to create handlers: %v", err)
	}

	router := server.NewRouter()
	router.Use(server.RequestID())
	router.Handler(handlers)

	return &testApp{router: router, movies: movies, metadata: metadata}
}

func (app *testApp) get(t *testing.T, path string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, path, nil)
	rec := httptest.NewRecorder()
	app.router.ServeHTTP(rec, req)
	return rec
}

func (app *testApp) postForm(t *testing.T, path string, form url.Values) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	rec := httptest.NewRecorder()
	app.router.ServeHTTP(rec, req)
	return rec
}

func (app *testApp) createMovie(t *testing.T, title string, rating float64) *models.Movie {
	t.Helper()
	m := &models.Movie{Title: title, Year: "1999", Description: "desc", Rating: rating, Ranking: 1, ImgURL: "https://img.example/p.jpg"}
	if err := app.movies.Create(context.Background(), m); err != nil {
		t.Fatalf("failed to create movie: %v", err)
	}
	return m
}

func TestHome(t *testing.T) {
	t.Run("RendersMoviesAndPersistsRankings", func(t *testing.T) {
		app := newTestApp(t)
		low := app.createMovie(t, "Low Rated", 2)
		high := app.createMovie(t, "High Rated", 9)

		rec := app.get(t, "/")

		if rec.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d", rec.Code)
		}
		body := rec.Body.String()
		if !strings.Contains(body, "Low Rated") || !strings.Contains(body, "High Rated") {
			t.Error("expected both movies on the page")
		}

		got, err := app.movies.Get(context.Background(), high.ID)
		if err != nil {
			t.Fatalf("failed to fetch movie: %v", err)
		}
		if got.Ranking != 1 {
			t.Errorf("expected ranking 1 persisted for the top movie, got %d", got.Ranking)
		}
		if got, _ := app.movies.Get(context.Background(), low.ID); got.Ranking != 2 {
			t.Errorf("expected ranking 2 persisted for the low movie, got %d", got.Ranking)
		}
	})

	t.Run("EmptyList", func(t *testing.T) {
		app := newTestApp(t)

		rec := app.get(t, "/")

		if rec.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d", rec.Code)
		}
		if !strings.Contains(rec.Body.String(), "No movies yet") {
			t.Error("expected empty-state message")
		}
	})
}

func TestEdit(t *testing.T) {
	t.Run("GetRendersForm", func(t *testing.T) {
		app := newTestApp(t)
		m := app.createMovie(t, "The Matrix", 0)

		rec := app.get(t, fmt.Sprintf("/edit?id=%d", m.ID))

		if rec.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d", rec.Code)
		}
		body := rec.Body.String()
		if !strings.Contains(body, "The Matrix") || !strings.Contains(body, `name="Rating"`) {
			t.Error("expected the edit form for the movie")
		}
	})

	t.Run("MissingID", func(t *testing.T) {
		app := newTestApp(t)

		if rec := app.get(t, "/edit"); rec.Code != http.StatusBadRequest {
			t.Errorf("expected 400, got %d", rec.Code)
		}
	})

	t.Run("UnknownID", func(t *testing.T) {
		app := newTestApp(t)

		if rec := app.get(t, "/edit?id=42"); rec.Code != http.StatusNotFound {
			t.Errorf("expected 404, got %d", rec.Code)
		}
	})

	t.Run("ValidPostPersistsAndRedirects", func(t *testing.T) {
		app := newTestApp(t)
		m := app.createMovie(t, "The Matrix", 0)

		rec := app.postForm(t, fmt.Sprintf("/edit?id=%d", m.ID), url.Values{"Rating": {"8.5"}, "Review": {"Great"}})

		if rec.Code != http.StatusSeeOther {
			t.Fatalf("expected redirect, got %d", rec.Code)
		}
		if loc := rec.Header().Get("Location"); loc != "/" {
			t.Errorf("expected redirect to /, got %q", loc)
		}

		got, err := app.movies.Get(context.Background(), m.ID)
		if err != nil {
			t.Fatalf("failed to fetch movie: %v", err)
		}
		if got.Rating != 8.5 || got.Review != "Great" {
			t.Errorf("edit not persisted: rating=%v review=%q", got.Rating, got.Review)
		}
		if got.Title != m.Title || got.Year != m.Year {
			t.Error("edit touched fields other than rating and review")
		}
	})

	t.Run("NonFiniteRatingRejectedWithoutPersistence", func(t *testing.T) {
		app := newTestApp(t)
		m := app.createMovie(t, "The Matrix", 0)

		rec := app.postForm(t, fmt.Sprintf("/edit?id=%d", m.ID), url.Values{"Rating": {"NaN"}, "Review": {"Great"}})

		if rec.Code != http.StatusOK {
			t.Fatalf("expected re-rendered form, got %d", rec.Code)
		}
		if !strings.Contains(rec.Body.String(), "please enter a number between 0 and 10") {
			t.Error("expected the validation message on the page")
		}

		got, _ := app.movies.Get(context.Background(), m.ID)
		if got.Rating != 0 || got.Review != models.DefaultReview {
			t.Errorf("invalid submission must not persist: rating=%v review=%q", got.Rating, got.Review)
		}
	})

	t.Run("OutOfRangeRatingRejectedWithoutPersistence", func(t *testing.T) {
		app := newTestApp(t)
		m := app.createMovie(t, "The Matrix", 0)

		rec := app.postForm(t, fmt.Sprintf("/edit?id=%d", m.ID), url.Values{"Rating": {"11"}, "Review": {"Great"}})

		if rec.Code != http.StatusOK {
			t.Fatalf("expected re-rendered form, got %d", rec.Code)
		}
		if !strings.Contains(rec.Body.String(), "please enter a number between 0 and 10") {
			t.Error("expected the validation message on the page")
		}

		got, _ := app.movies.Get(context.Background(), m.ID)
		if got.Rating != 0 || got.Review != models.DefaultReview {
			t.Errorf("invalid submission must not persist: rating=%v review=%q", got.Rating, got.Review)
		}
	})
}

func TestDelete(t *testing.T) {
	t.Run("RemovesAndRedirects", func(t *testing.T) {
		app := newTestApp(t)
		m := app.createMovie(t, "The Matrix", 0)

		rec := app.get(t, fmt.Sprintf("/delete?id=%d", m.ID))

		if rec.Code != http.StatusSeeOther {
			t.Fatalf("expected redirect, got %d", rec.Code)
		}

		if _, err := app.movies.Get(context.Background(), m.ID); !errors.Is(err, shared.ErrMovieNotFound) {
			t.Errorf("expected movie gone, got %v", err)
		}
	})

	t.Run("UnknownID", func(t *testing.T) {
		app := newTestApp(t)

		if rec := app.get(t, "/delete?id=42"); rec.Code != http.StatusNotFound {
			t.Errorf("expected 404, got %d", rec.Code)
		}
	})
}

func TestAdd(t *testing.T) {
	t.Run("GetRendersSearchForm", func(t *testing.T) {
		app := newTestApp(t)

		rec := app.get(t, "/add")

		if rec.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d", rec.Code)
		}
		if !strings.Contains(rec.Body.String(), `name="New_movie"`) {
			t.Error("expected the search form")
		}
	})

	t.Run("BlankQueryRejected", func(t *testing.T) {
		app := newTestApp(t)

		rec := app.postForm(t, "/add", url.Values{"New_movie": {"  "}})

		if rec.Code != http.StatusOK {
			t.Fatalf("expected re-rendered form, got %d", rec.Code)
		}
		if !strings.Contains(rec.Body.String(), "This field is required.") {
			t.Error("expected the validation message on the page")
		}
		if len(app.metadata.SearchQueries) != 0 {
			t.Error("blank query must not reach the metadata service")
		}
	})

	t.Run("SearchRendersCandidatesInAPIOrder", func(t *testing.T) {
		app := newTestApp(t)
		app.metadata.SearchResults = []services.MovieSummary{
			{ID: 27205, Title: "Inception", PosterPath: "/incep.jpg", ReleaseDate: "2010-07-15"},
			{ID: 64956, Title: "Inception: The Cobol Job", ReleaseDate: "2010-12-07"},
		}

		rec := app.postForm(t, "/add", url.Values{"New_movie": {"Inception"}})

		if rec.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d", rec.Code)
		}
		if len(app.metadata.SearchQueries) != 1 || app.metadata.SearchQueries[0] != "Inception" {
			t.Errorf("expected exact query passed through, got %v", app.metadata.SearchQueries)
		}

		body := rec.Body.String()
		first := strings.Index(body, "/select/27205")
		second := strings.Index(body, "/select/64956")
		if first == -1 || second == -1 {
			t.Fatal("expected select links for both candidates")
		}
		if first > second {
			t.Error("candidates must render in API order")
		}
	})

	t.Run("UpstreamFailure", func(t *testing.T) {
		app := newTestApp(t)
		app.metadata.SearchErr = fmt.Errorf("%w: status 500", shared.ErrUpstream)

		if rec := app.postForm(t, "/add", url.Values{"New_movie": {"Inception"}}); rec.Code != http.StatusBadGateway {
			t.Errorf("expected 502, got %d", rec.Code)
		}
	})
}

func TestSelect(t *testing.T) {
	t.Run("CreatesMovieWithDefaultsAndRedirectsToEdit", func(t *testing.T) {
		app := newTestApp(t)
		app.metadata.Detail = &services.MovieDetail{
			OriginalTitle: "The Matrix",
			PosterPath:    "/matrix.jpg",
			ReleaseDate:   "1999-03-31",
			Overview:      "A hacker discovers reality is a simulation.",
		}

		rec := app.get(t, "/select/603")

		if rec.Code != http.StatusSeeOther {
			t.Fatalf("expected redirect, got %d", rec.Code)
		}
		if len(app.metadata.DetailIDs) != 1 || app.metadata.DetailIDs[0] != 603 {
			t.Errorf("expected detail fetch for 603, got %v", app.metadata.DetailIDs)
		}

		loc := rec.Header().Get("Location")
		if !strings.HasPrefix(loc, "/edit?id=") {
			t.Fatalf("expected redirect to the edit form, got %q", loc)
		}

		created, err := app.movies.GetByTitle(context.Background(), "The Matrix")
		if err != nil {
			t.Fatalf("expected movie created: %v", err)
		}
		if created.Rating != 0 || created.Review != models.DefaultReview {
			t.Errorf("expected creation defaults, got rating=%v review=%q", created.Rating, created.Review)
		}
		if created.Year != "1999" {
			t.Errorf("expected year 1999, got %q", created.Year)
		}
		if loc != fmt.Sprintf("/edit?id=%d", created.ID) {
			t.Errorf("redirect %q does not target the new record %d", loc, created.ID)
		}
	})

	t.Run("NonIntegerID", func(t *testing.T) {
		app := newTestApp(t)

		if rec := app.get(t, "/select/abc"); rec.Code != http.StatusBadRequest {
			t.Errorf("expected 400, got %d", rec.Code)
		}
	})

	t.Run("UpstreamFailure", func(t *testing.T) {
		app := newTestApp(t)
		app.metadata.DetailErr = fmt.Errorf("%w: status 404", shared.ErrUpstream)

		if rec := app.get(t, "/select/603"); rec.Code != http.StatusBadGateway {
			t.Errorf("expected 502, got %d", rec.Code)
		}
	})

	t.Run("LongOverviewTruncated", func(t *testing.T) {
		app := newTestApp(t)
		app.metadata.Detail = &services.MovieDetail{
			OriginalTitle: "Wordy",
			ReleaseDate:   "2001-01-01",
			Overview:      strings.Repeat("a", models.MaxDescriptionLen+100),
		}

		if rec := app.get(t, "/select/1"); rec.Code != http.StatusSeeOther {
			t.Fatalf("expected redirect, got %d", rec.Code)
		}

		created, err := app.movies.GetByTitle(context.Background(), "Wordy")
		if err != nil {
			t.Fatalf("expected movie created: %v", err)
		}
		if len(created.Description) != models.MaxDescriptionLen {
			t.Errorf("expected description clamped to %d, got %d", models.MaxDescriptionLen, len(created.Description))
		}
	})
}
