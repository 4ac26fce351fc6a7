package services_test

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/itzgeebee/top-movies/internal/services"
	"github.com/itzgeebee/top-movies/internal/shared"
	mock "github.com/itzgeebee/top-movies/internal/testing"
)

func newTestClient(t *testing.T, handler http.HandlerFunc) *services.Client {
	t.Helper()

	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	client, err := services.NewClient(services.ClientConfig{
		BaseURL:      srv.URL,
		APIKey:       "test-key",
		ImageBaseURL: "https://image.tmdb.org/t/p/w500",
		RateLimit:    1000,
	})
	if err != nil {
		t.Fatalf("failed to create client: %v", err)
	}
	return client
}

func TestClientSearch(t *testing.T) {
	ctx := context.Background()

	t.Run("PassesQueryAndKeyVerbatim", func(t *testing.T) {
		var gotPath, gotQuery, gotKey string
		client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
			gotPath = r.URL.Path
			gotQuery = r.URL.Query().Get("query")
			gotKey = r.URL.Query().Get("api_key")
			json.NewEncoder(w).Encode(map[string]any{"results": []any{}})
		})

		if _, err := client.Search(ctx, "Inception"); err != nil {
			t.Fatalf("search failed: %v", err)
		}

		if gotPath != "/search/movie" {
			t.Errorf("expected path /search/movie, got %s", gotPath)
		}
		if gotQuery != "Inception" {
			t.Errorf("expected query %q, got %q", "Inception", gotQuery)
		}
		if gotKey != "test-key" {
			t.Errorf("expected configured api key, got %q", gotKey)
		}
	})

	t.Run("SurfacesResultsUnmodified", func(t *testing.T) {
		payload := `{"results": [
			{"id": 27205, "title": "Inception", "poster_path": "/incep.jpg", "release_date": "2010-07-15"},
			{"id": 64956, "title": "Inception: The Cobol Job", "poster_path": "/cobol.jpg", "release_date": "2010-12-07"}
		]}`
		client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
			w.Write([]byte(payload))
		})

		results, err := client.Search(ctx, "Inception")
		if err != nil {
			t.Fatalf("search failed: %v", err)
		}

		if len(results) != 2 {
			t.Fatalf("expected 2 results, got %d", len(results))
		}
		if results[0].ID != 27205 || results[1].ID != 64956 {
			t.Error("result order must match the API response")
		}
		if results[0].PosterPath != "/incep.jpg" {
			t.Errorf("unexpected poster path %q", results[0].PosterPath)
		}
	})

	t.Run("EmptyQueryRejectedWithoutRequest", func(t *testing.T) {
		called := false
		client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
			called = true
		})

		_, err := client.Search(ctx, "   ")
		if !errors.Is(err, shared.ErrInvalidInput) {
			t.Errorf("expected ErrInvalidInput, got %v", err)
		}
		if called {
			t.Error("empty query must not reach the API")
		}
	})

	t.Run("Non2xxWrapsUpstream", func(t *testing.T) {
		client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusUnauthorized)
		})

		_, err := client.Search(ctx, "Inception")
		if !errors.Is(err, shared.ErrUpstream) {
			t.Errorf("expected ErrUpstream, got %v", err)
		}
	})

	t.Run("MalformedJSONWrapsUpstream", func(t *testing.T) {
		client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
			w.Write([]byte("<html>not json</html>"))
		})

		_, err := client.Search(ctx, "Inception")
		if !errors.Is(err, shared.ErrUpstream) {
			t.Errorf("expected ErrUpstream, got %v", err)
		}
	})

	t.Run("TransportErrorWrapsUpstream", func(t *testing.T) {
		transport := mock.NewMockRoundTripper(nil, errors.New("connection refused"))
		client, err := services.NewClient(services.ClientConfig{
			BaseURL:    "https://api.example",
			APIKey:     "test-key",
			RateLimit:  1000,
			HTTPClient: &http.Client{Transport: transport},
		})
		if err != nil {
			t.Fatalf("failed to create client: %v", err)
		}

		_, err = client.Search(ctx, "Inception")
		if !errors.Is(err, shared.ErrUpstream) {
			t.Errorf("expected ErrUpstream, got %v", err)
		}
	})
}

func TestClientFetchDetail(t *testing.T) {
	ctx := context.Background()

	t.Run("ExtractsDetailFields", func(t *testing.T) {
		var gotPath, gotLanguage string
		client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
			gotPath = r.URL.Path
			gotLanguage = r.URL.Query().Get("language")
			w.Write([]byte(`{
				"original_title": "The Matrix",
				"poster_path": "/matrix.jpg",
				"release_date": "1999-03-31",
				"overview": "A hacker discovers reality is a simulation."
			}`))
		})

		detail, err := client.FetchDetail(ctx, 603)
		if err != nil {
			t.Fatalf("detail fetch failed: %v", err)
		}

		if gotPath != "/movie/603" {
			t.Errorf("expected path /movie/603, got %s", gotPath)
		}
		if gotLanguage != "en-US" {
			t.Errorf("expected default language en-US, got %q", gotLanguage)
		}
		if detail.OriginalTitle != "The Matrix" {
			t.Errorf("unexpected title %q", detail.OriginalTitle)
		}
		if detail.Year() != "1999" {
			t.Errorf("expected year 1999, got %q", detail.Year())
		}
	})

	t.Run("Non2xxWrapsUpstream", func(t *testing.T) {
		client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusNotFound)
		})

		_, err := client.FetchDetail(ctx, 603)
		if !errors.Is(err, shared.ErrUpstream) {
			t.Errorf("expected ErrUpstream, got %v", err)
		}
	})
}

func TestClientImageURL(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {})

	if got := client.ImageURL("/poster.jpg"); got != "https://image.tmdb.org/t/p/w500/poster.jpg" {
		t.Errorf("unexpected image URL %q", got)
	}
	if got := client.ImageURL(""); got != "" {
		t.Errorf("expected empty URL for empty poster path, got %q", got)
	}
}

func TestNewClient(t *testing.T) {
	t.Run("RequiresAPIKey", func(t *testing.T) {
		_, err := services.NewClient(services.ClientConfig{BaseURL: "https://api.example"})
		if !errors.Is(err, shared.ErrMissingCredentials) {
			t.Errorf("expected ErrMissingCredentials, got %v", err)
		}
	})

	t.Run("RequiresBaseURL", func(t *testing.T) {
		_, err := services.NewClient(services.ClientConfig{APIKey: "k"})
		if !errors.Is(err, shared.ErrMissingConfig) {
			t.Errorf("expected ErrMissingConfig, got %v", err)
		}
	})
}

func TestMovieDetailYear(t *testing.T) {
	cases := []struct {
		date string
		want string
	}{
		{"1999-03-31", "1999"},
		{"1999", "1999"},
		{"", ""},
	}

	for _, tc := range cases {
		d := services.MovieDetail{ReleaseDate: tc.date}
		if got := d.Year(); got != tc.want {
			t.Errorf("Year(%q): expected %q, got %q", tc.date, tc.want, got)
		}
	}
}
