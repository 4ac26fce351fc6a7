package ui

import (
	"context"
	"sort"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/itzgeebee/top-movies/internal/models"
)

// Loader fetches the movie list with rankings recomputed, typically
// MovieRepository.ListRanked.
type Loader func(ctx context.Context) ([]*models.Movie, error)

// moviesLoadedMsg carries a completed load into Update.
type moviesLoadedMsg struct {
	movies []*models.Movie
	err    error
}

// Model is the bubbletea model for the ranked movie browser.
type Model struct {
	list    list.Model
	keys    keyMap
	load    Loader
	err     error
	loading bool
}

// NewModel creates the TUI model over the given loader.
func NewModel(load Loader) Model {
	keys := newKeyMap()

	delegate := list.NewDefaultDelegate()
	delegate.Styles.SelectedTitle = styles.ok
	delegate.Styles.SelectedDesc = styles.help

	l := list.New([]list.Item{}, delegate, 0, 0)
	l.Title = "My Top Movies"
	l.Styles.Title = styles.title
	l.SetShowStatusBar(false)
	l.KeyMap.CursorUp = keys.up
	l.KeyMap.CursorDown = keys.down
	l.AdditionalShortHelpKeys = keys.ShortHelp
	l.AdditionalFullHelpKeys = keys.ShortHelp

	return Model{
		list:    l,
		keys:    keys,
		load:    load,
		loading: true,
	}
}

func (m Model) Init() tea.Cmd {
	return m.fetch
}

// fetch loads the ranked list off the update loop.
func (m Model) fetch() tea.Msg {
	movies, err := m.load(context.Background())
	return moviesLoadedMsg{movies: movies, err: err}
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.list.SetSize(msg.Width, msg.Height-2)
		return m, nil

	case tea.KeyMsg:
		switch {
		case key.Matches(msg, m.keys.quit):
			return m, tea.Quit
		case key.Matches(msg, m.keys.refresh):
			m.loading = true
			return m, m.fetch
		}

	case moviesLoadedMsg:
		m.loading = false
		m.err = msg.err
		if msg.err == nil {
			m.list.SetItems(movieItems(msg.movies))
		}
		return m, nil
	}

	var cmd tea.Cmd
	m.list, cmd = m.list.Update(msg)
	return m, cmd
}

func (m Model) View() string {
	if m.err != nil {
		return styles.err.Render("error: "+m.err.Error()) + "\n" + styles.help.Render("r to retry, q to quit")
	}
	if m.loading {
		return styles.help.Render("loading movies...")
	}
	return m.list.View()
}

// movieItems converts movies into list items ordered best-first.
func movieItems(movies []*models.Movie) []list.Item {
	sorted := make([]*models.Movie, len(movies))
	copy(sorted, movies)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].Ranking < sorted[j].Ranking
	})

	items := make([]list.Item, len(sorted))
	for i, movie := range sorted {
		items[i] = movieItem{movie: movie}
	}
	return items
}

// Run starts the TUI program and blocks until it exits.
func Run(load Loader) error {
	program := tea.NewProgram(NewModel(load), tea.WithAltScreen())
	_, err := program.Run()
	return err
}
