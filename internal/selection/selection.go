// Package selection implements the notable-post selection policy.
//
// All three operations are pure functions over a slice of posts; none of
// them mutates its input. Sorting is stable, so ties keep input order and
// repeated runs over the same input pick the same posts.
package selection

import (
	"sort"

	"github.com/jjf3/heated-rivalry-tracker/internal/models"
)

// PickTrailer returns the trailer post with the most comments, or false
// when no post carries the trailer flag. The first occurrence wins ties.
func PickTrailer(posts []models.Post) (models.Post, bool) {
	var best models.Post
	found := false

	for _, p := range posts {
		if !p.IsTrailer {
			continue
		}
		if !found || p.NumComments > best.NumComments {
			best = p
			found = true
		}
	}

	return best, found
}

// PickOthers returns up to n posts that are neither episode threads nor the
// trailer, ordered by comment count with score as tiebreaker. Episode posts
// are excluded here explicitly; classification alone does not make the two
// classes exclusive.
func PickOthers(posts []models.Post, n int) []models.Post {
	candidates := make([]models.Post, 0, len(posts))
	for _, p := range posts {
		if p.IsEpisode() || p.IsTrailer {
			continue
		}
		candidates = append(candidates, p)
	}

	sort.SliceStable(candidates, func(i, j int) bool {
		if candidates[i].NumComments != candidates[j].NumComments {
			return candidates[i].NumComments > candidates[j].NumComments
		}
		return candidates[i].Score > candidates[j].Score
	})

	if n < 0 {
		n = 0
	}
	if len(candidates) > n {
		candidates = candidates[:n]
	}
	return candidates
}

// EpisodePosts returns every post with an episode code, sorted ascending by
// (code, creation time). Codes are zero-padded at classification time, so
// lexicographic order equals numeric order.
func EpisodePosts(posts []models.Post) []models.Post {
	eps := make([]models.Post, 0, len(posts))
	for _, p := range posts {
		if p.IsEpisode() {
			eps = append(eps, p)
		}
	}

	sort.SliceStable(eps, func(i, j int) bool {
		if eps[i].EpisodeCode != eps[j].EpisodeCode {
			return eps[i].EpisodeCode < eps[j].EpisodeCode
		}
		return eps[i].CreatedUTC < eps[j].CreatedUTC
	})

	return eps
}
