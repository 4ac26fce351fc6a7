// Package web implements the server-rendered HTML surface of the movie tracker.
//
// Five handlers over embedded html/template views:
//
//	GET  /            ranked list (recomputes and persists rankings)
//	GET  /edit        rating + review form     POST /edit    validate, persist, redirect
//	*    /delete      delete by id, redirect
//	GET  /add         search form              POST /add     metadata search, candidate list
//	*    /select/:id  detail fetch, create record, redirect to /edit
//
// Form validation failures re-render the form with field messages and change
// no state. Typed failures map to status pages: movie not found to 404,
// metadata API failure to 502, malformed ids to 400. Nothing is retried.
package web

import (
	"bytes"
	"embed"
	"errors"
	"fmt"
	"html/template"
	"net/http"

	"github.com/charmbracelet/log"
	"github.com/itzgeebee/top-movies/internal/repositories"
	"github.com/itzgeebee/top-movies/internal/server"
	"github.com/itzgeebee/top-movies/internal/services"
	"github.com/itzgeebee/top-movies/internal/shared"
)

//go:embed templates/*.html
var templateFS embed.FS

// Handlers holds the dependencies of the HTTP surface.
type Handlers struct {
	movies   *repositories.MovieRepository
	metadata services.MetadataService
	logger   *log.Logger
	tmpl     *template.Template
}

// NewHandlers parses the embedded templates and wires the handler set.
func NewHandlers(movies *repositories.MovieRepository, metadata services.MetadataService, logger *log.Logger) (*Handlers, error) {
	tmpl, err := template.ParseFS(templateFS, "templates/*.html")
	if err != nil {
		return nil, fmt.Errorf("failed to parse templates: %w", err)
	}

	if logger == nil {
		logger = shared.NewLogger(nil)
	}

	return &Handlers{
		movies:   movies,
		metadata: metadata,
		logger:   logger,
		tmpl:     tmpl,
	}, nil
}

// Register wires all routes onto the router.
func (h *Handlers) Register(r *server.Router) {
	r.Handle(http.MethodGet, "/", http.HandlerFunc(h.Home))
	r.HandleFunc("/edit", h.Edit)
	r.HandleFunc("/delete", h.Delete)
	r.HandleFunc("/add", h.Add)
	r.HandleFunc("/select/:id", h.Select)
}

// render executes a template into a buffer before writing, so a template
// fault never produces a half-written page.
func (h *Handlers) render(w http.ResponseWriter, status int, name string, data any) {
	var buf bytes.Buffer
	if err := h.tmpl.ExecuteTemplate(&buf, name, data); err != nil {
		h.logger.Error("template execution failed", "template", name, "error", err)
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	buf.WriteTo(w)
}

// fail maps a typed failure to its status page. No recovery is attempted.
func (h *Handlers) fail(w http.ResponseWriter, r *http.Request, err error) {
	h.logger.Error("request failed",
		"id", server.RequestIDFrom(r.Context()),
		"path", r.URL.Path,
		"error", err,
	)

	switch {
	case errors.Is(err, shared.ErrMovieNotFound):
		h.renderError(w, http.StatusNotFound, "That movie is not in your list.")
	case errors.Is(err, shared.ErrUpstream):
		h.renderError(w, http.StatusBadGateway, "The movie database is unavailable.")
	case errors.Is(err, shared.ErrInvalidInput):
		h.renderError(w, http.StatusBadRequest, "Invalid request.")
	default:
		h.renderError(w, http.StatusInternalServerError, "Something went wrong.")
	}
}

func (h *Handlers) renderError(w http.ResponseWriter, status int, message string) {
	h.render(w, status, "error.html", struct {
		Status  int
		Text    string
		Message string
	}{status, http.StatusText(status), message})
}
