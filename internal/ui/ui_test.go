package ui

import (
	"context"
	"errors"
	"testing"

	"github.com/itzgeebee/top-movies/internal/models"
)

func staticLoader(movies []*models.Movie, err error) Loader {
	return func(ctx context.Context) ([]*models.Movie, error) {
		return movies, err
	}
}

func containsKey(keys []string, want string) bool {
	for _, k := range keys {
		if k == want {
			return true
		}
	}
	return false
}

func TestNewModel(t *testing.T) {
	m := NewModel(staticLoader(nil, nil))

	if !containsKey(m.list.KeyMap.CursorUp.Keys(), "k") {
		t.Error("expected vim-style up binding on the list")
	}
	if !containsKey(m.list.KeyMap.CursorDown.Keys(), "j") {
		t.Error("expected vim-style down binding on the list")
	}

	if m.list.AdditionalShortHelpKeys == nil {
		t.Fatal("expected extra help bindings on the list")
	}
	extra := m.list.AdditionalShortHelpKeys()
	if len(extra) != 2 {
		t.Fatalf("expected refresh and quit in the help line, got %d bindings", len(extra))
	}
}

func TestModelUpdate(t *testing.T) {
	t.Run("LoadedMoviesBestFirst", func(t *testing.T) {
		m := NewModel(staticLoader(nil, nil))

		updated, _ := m.Update(moviesLoadedMsg{movies: []*models.Movie{
			{ID: 1, Title: "Middling", Year: "2005", Rating: 5, Ranking: 2},
			{ID: 2, Title: "Best", Year: "1999", Rating: 9.5, Ranking: 1},
		}})
		m = updated.(Model)

		items := m.list.Items()
		if len(items) != 2 {
			t.Fatalf("expected 2 items, got %d", len(items))
		}
		if got := items[0].(movieItem).Title(); got != "#1 Best (1999)" {
			t.Errorf("expected best movie first, got %q", got)
		}
		if m.loading {
			t.Error("expected loading cleared after the list arrives")
		}
	})

	t.Run("LoadFailureShownInView", func(t *testing.T) {
		m := NewModel(staticLoader(nil, nil))

		updated, _ := m.Update(moviesLoadedMsg{err: errors.New("database gone")})
		m = updated.(Model)

		view := m.View()
		if view == "" || m.err == nil {
			t.Error("expected the load error surfaced in the view")
		}
	})
}

func TestMovieItemDescription(t *testing.T) {
	plain := movieItem{movie: &models.Movie{Rating: 7.5, Review: models.DefaultReview}}
	if got := plain.Description(); got != "7.5/10" {
		t.Errorf("placeholder review must not appear, got %q", got)
	}

	reviewed := movieItem{movie: &models.Movie{Rating: 9, Review: "A classic"}}
	if got := reviewed.Description(); got != "9.0/10 • A classic" {
		t.Errorf("unexpected description %q", got)
	}
}
