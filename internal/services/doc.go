// Package services wraps the external movie metadata HTTP API (TMDB-shaped).
//
// [Client] issues the two read-only calls the app needs: a title search and
// a by-id detail fetch. Calls are paced by a [rate.Limiter] and optionally
// served from a redis read-through cache; there is no retry and no schema
// validation beyond JSON decoding. Any transport failure, non-2xx status or
// undecodable body wraps [shared.ErrUpstream] and propagates to the caller.
package services
