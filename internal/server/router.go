package server

import (
	"net/http"

	"github.com/julienschmidt/httprouter"
)

// Router routes HTTP requests with middleware support.
//
// Uses [httprouter.Router] internally, which gives the select route its
// integer path parameter.
type Router struct {
	mux         *httprouter.Router
	middlewares []Middleware
}

// NewRouter creates a new [Router] instance.
func NewRouter() *Router {
	mux := httprouter.New()
	mux.HandleMethodNotAllowed = true
	return &Router{
		mux:         mux,
		middlewares: []Middleware{},
	}
}

// Use adds [Middleware] to the router's middleware stack, applied in the order it's added.
func (r *Router) Use(middleware ...Middleware) {
	r.middlewares = append(r.middlewares, middleware...)
}

// Handle registers a handler for the specified HTTP method and path,
// wrapped with all registered middleware. Path parameters (e.g. ":id")
// are available to the handler via [Param].
func (r *Router) Handle(method, path string, handler http.Handler) {
	r.mux.Handler(method, path, r.Apply(handler))
}

// HandleFunc registers a handler function for GET and POST on the same path,
// matching the form-driven routes the app serves.
func (r *Router) HandleFunc(path string, handler http.HandlerFunc) {
	r.Handle(http.MethodGet, path, handler)
	r.Handle(http.MethodPost, path, handler)
}

// Handler registers a custom [Handler] implementation.
func (r *Router) Handler(handler Handler) {
	handler.Register(r)
}

// ServeHTTP implements [http.Handler] for the entire router.
func (r *Router) ServeHTTP(w http.ResponseWriter, req *http.Request) {
	r.mux.ServeHTTP(w, req)
}

// Apply wraps a handler with all registered middleware.
//
// Middleware is applied in reverse order (last added wraps first).
func (r *Router) Apply(handler http.Handler) http.Handler {
	wrapped := handler

	for i := len(r.middlewares) - 1; i >= 0; i-- {
		wrapped = r.middlewares[i](wrapped)
	}

	return wrapped
}

// Param returns the named path parameter of the matched route, or "" when absent.
func Param(req *http.Request, name string) string {
	return httprouter.ParamsFromContext(req.Context()).ByName(name)
}
