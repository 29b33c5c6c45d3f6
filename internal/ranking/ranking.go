// Package ranking defines the total orderings over posts used by the feed.
//
// The hot score decays a post's cumulative vote score by its age:
//
//	hot = score / (ageHours + 2)^1.5
//
// The +2 offset and the 1.5 gravity exponent are tuning constants carried
// over from the product requirements, not derived here. All functions take
// the evaluation time as an argument so they stay pure and testable.
package ranking

import (
	"math"
	"sort"
	"time"
)

// Mode selects one of the feed orderings.
type Mode string

const (
	ModeHot Mode = "hot"
	ModeNew Mode = "new"
	ModeTop Mode = "top"
)

// Hot score tuning constants.
const (
	agePad  = 2.0
	gravity = 1.5
)

// ValidMode reports whether s names a known ordering.
func ValidMode(s string) bool {
	switch Mode(s) {
	case ModeHot, ModeNew, ModeTop:
		return true
	}
	return false
}

// Post carries the fields an ordering depends on.
type Post struct {
	ID        int64
	Score     int
	CreatedAt time.Time
}

// HotScore computes the time-decayed ranking value for a post. Age is
// fractional hours, clamped at zero so clock skew between the caller's
// now and a freshly stored created_at cannot produce a negative decay base.
func HotScore(score int, createdAt, now time.Time) float64 {
	ageHours := now.Sub(createdAt).Hours()
	if ageHours < 0 {
		ageHours = 0
	}
	return float64(score) / math.Pow(ageHours+agePad, gravity)
}

// Rank returns post IDs in descending order for the given mode. Ties are
// broken by descending post ID so the ordering is total and deterministic.
func Rank(posts []Post, mode Mode, now time.Time) []int64 {
	sorted := make([]Post, len(posts))
	copy(sorted, posts)

	var less func(a, b Post) bool
	switch mode {
	case ModeNew:
		less = func(a, b Post) bool { return a.CreatedAt.After(b.CreatedAt) }
	case ModeTop:
		less = func(a, b Post) bool { return a.Score > b.Score }
	default: // ModeHot
		less = func(a, b Post) bool {
			return HotScore(a.Score, a.CreatedAt, now) > HotScore(b.Score, b.CreatedAt, now)
		}
	}

	sort.Slice(sorted, func(i, j int) bool {
		a, b := sorted[i], sorted[j]
		if less(a, b) {
			return true
		}
		if less(b, a) {
			return false
		}
		return a.ID > b.ID
	})

	ids := make([]int64, len(sorted))
	for i, p := range sorted {
		ids[i] = p.ID
	}
	return ids
}
