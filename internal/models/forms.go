package models

import (
	"math"
	"net/url"
	"strconv"
	"strings"
)

// FieldErrors maps form field names to validation messages for re-rendering.
type FieldErrors map[string]string

// ReviewForm is the rating + review edit form.
//
// Field names match the submitted form: "Rating" and "Review".
type ReviewForm struct {
	Rating    float64
	RawRating string
	Review    string
	Errors    FieldErrors
}

// ParseReviewForm decodes and validates the submitted edit form. A form with
// a non-empty Errors map must not be persisted.
func ParseReviewForm(values url.Values) ReviewForm {
	form := ReviewForm{
		RawRating: strings.TrimSpace(values.Get("Rating")),
		Review:    strings.TrimSpace(values.Get("Review")),
		Errors:    FieldErrors{},
	}

	if form.RawRating == "" {
		form.Errors["Rating"] = "This field is required."
	} else {
		rating, err := strconv.ParseFloat(form.RawRating, 64)
		switch {
		case err != nil:
			form.Errors["Rating"] = "please enter a number between 0 and 10"
		case math.IsNaN(rating) || math.IsInf(rating, 0) || rating < 0 || rating > 10:
			form.Errors["Rating"] = "please enter a number between 0 and 10"
		default:
			form.Rating = rating
		}
	}

	if form.Review == "" {
		form.Errors["Review"] = "This field is required."
	}

	return form
}

// Valid reports whether the form passed validation.
func (f ReviewForm) Valid() bool {
	return len(f.Errors) == 0
}

// SearchForm is the free-text movie search form.
//
// The field name matches the submitted form: "New_movie".
type SearchForm struct {
	NewMovie string
	Errors   FieldErrors
}

// ParseSearchForm decodes and validates the submitted search form.
func ParseSearchForm(values url.Values) SearchForm {
	form := SearchForm{
		NewMovie: strings.TrimSpace(values.Get("New_movie")),
		Errors:   FieldErrors{},
	}

	if form.NewMovie == "" {
		form.Errors["New_movie"] = "This field is required."
	}

	return form
}

// Valid reports whether the form passed validation.
func (f SearchForm) Valid() bool {
	return len(f.Errors) == 0
}
