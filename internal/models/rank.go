package models

import (
	"slices"
	"sort"
)

// RankChange is one ranking assignment produced by [Rank], persisted via
// the movie repository.
type RankChange struct {
	ID      int64
	Ranking int
}

// Rank computes the dense ranking for a set of movies.
//
// The movies are stable-sorted ascending by rating (ties keep the caller's
// order, which for the repository is insertion order) and assigned rankings
// N, N-1, ..., 1 in that sequence, so the highest-rated movie ends up with
// ranking 1. The input slice is not reordered.
func Rank(movies []*Movie) []RankChange {
	sorted := slices.Clone(movies)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].Rating < sorted[j].Rating
	})

	n := len(sorted)
	changes := make([]RankChange, n)
	for i, m := range sorted {
		changes[i] = RankChange{ID: m.ID, Ranking: n - i}
	}
	return changes
}

// ApplyRanks annotates movies in place with the given assignments, leaving
// the slice order untouched. The listing view renders the fetch order, not
// the rank order; any visual re-sorting is up to the template.
func ApplyRanks(movies []*Movie, changes []RankChange) {
	byID := make(map[int64]int, len(changes))
	for _, c := range changes {
		byID[c.ID] = c.Ranking
	}
	for _, m := range movies {
		if ranking, ok := byID[m.ID]; ok {
			m.Ranking = ranking
		}
	}
}
