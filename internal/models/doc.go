// Package models defines the data model for the movie tracking web app.
//
// [Movie] is the sole persisted entity. [Rank] derives the dense ranking
// that the listing view recomputes on every request, and the form types
// ([ReviewForm], [SearchForm]) validate user input before any state change.
package models
