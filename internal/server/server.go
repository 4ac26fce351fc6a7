// package server contains routing and middleware for the movie tracking web app
package server

import (
	"net/http"
)

// Middleware wraps an http.Handler and returns a new http.Handler with additional behavior.
type Middleware func(http.Handler) http.Handler

// Handler defines the interface for HTTP request handlers.
// Implementations register their own routes on a [Router].
type Handler interface {
	Register(r *Router)
}
