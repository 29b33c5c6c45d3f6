package ranking

import (
	"math"
	"testing"
	"time"
)

var rankNow = time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)

func hoursAgo(h float64) time.Time {
	return rankNow.Add(-time.Duration(h * float64(time.Hour)))
}

func TestValidMode(t *testing.T) {
	tests := []struct {
		name     string
		mode     string
		expected bool
	}{
		{"hot", "hot", true},
		{"new", "new", true},
		{"top", "top", true},
		{"empty", "", false},
		{"unknown", "trending", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ValidMode(tt.mode); got != tt.expected {
				t.Errorf("ValidMode(%q) = %v, want %v", tt.mode, got, tt.expected)
			}
		})
	}
}

func TestHotScore(t *testing.T) {
	tests := []struct {
		name      string
		score     int
		ageHours  float64
		expected  float64
	}{
		// 10 / 2^1.5
		{"fresh post", 10, 0, 10 / math.Pow(2, 1.5)},
		// 12 / 50^1.5
		{"two day old post", 12, 48, 12 / math.Pow(50, 1.5)},
		{"negative score decays too", -6, 1, -6 / math.Pow(3, 1.5)},
		{"zero score", 0, 5, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := HotScore(tt.score, hoursAgo(tt.ageHours), rankNow)
			if math.Abs(got-tt.expected) > 1e-9 {
				t.Errorf("HotScore() = %v, want %v", got, tt.expected)
			}
		})
	}
}

func TestHotScoreClampsFutureTimestamps(t *testing.T) {
	// A created_at slightly ahead of now must behave like age zero.
	future := rankNow.Add(30 * time.Minute)
	got := HotScore(8, future, rankNow)
	want := HotScore(8, rankNow, rankNow)
	if got != want {
		t.Errorf("HotScore(future) = %v, want %v", got, want)
	}
}

func TestRankNew(t *testing.T) {
	posts := []Post{
		{ID: 1, Score: 100, CreatedAt: hoursAgo(10)},
		{ID: 2, Score: 0, CreatedAt: hoursAgo(1)},
		{ID: 3, Score: 5, CreatedAt: hoursAgo(5)},
	}

	got := Rank(posts, ModeNew, rankNow)
	want := []int64{2, 3, 1}
	assertOrder(t, got, want)
}

func TestRankTop(t *testing.T) {
	posts := []Post{
		{ID: 1, Score: 3, CreatedAt: hoursAgo(1)},
		{ID: 2, Score: 30, CreatedAt: hoursAgo(100)},
		{ID: 3, Score: -2, CreatedAt: hoursAgo(2)},
	}

	got := Rank(posts, ModeTop, rankNow)
	want := []int64{2, 1, 3}
	assertOrder(t, got, want)
}

func TestRankHot(t *testing.T) {
	// Hand-computed: 10/2^1.5 ≈ 3.54 beats 12/50^1.5 ≈ 0.034 even though
	// the older post has the higher raw score.
	posts := []Post{
		{ID: 1, Score: 12, CreatedAt: hoursAgo(48)},
		{ID: 2, Score: 10, CreatedAt: hoursAgo(0)},
	}

	got := Rank(posts, ModeHot, rankNow)
	want := []int64{2, 1}
	assertOrder(t, got, want)
}

func TestRankTieBreaksByDescendingID(t *testing.T) {
	created := hoursAgo(3)
	posts := []Post{
		{ID: 7, Score: 4, CreatedAt: created},
		{ID: 9, Score: 4, CreatedAt: created},
		{ID: 8, Score: 4, CreatedAt: created},
	}

	for _, mode := range []Mode{ModeHot, ModeNew, ModeTop} {
		got := Rank(posts, mode, rankNow)
		want := []int64{9, 8, 7}
		for i := range want {
			if got[i] != want[i] {
				t.Errorf("Rank(%s) = %v, want %v", mode, got, want)
				break
			}
		}
	}
}

func TestRankDoesNotMutateInput(t *testing.T) {
	posts := []Post{
		{ID: 1, Score: 1, CreatedAt: hoursAgo(9)},
		{ID: 2, Score: 2, CreatedAt: hoursAgo(1)},
	}

	Rank(posts, ModeTop, rankNow)
	if posts[0].ID != 1 || posts[1].ID != 2 {
		t.Errorf("Rank mutated its input: %v", posts)
	}
}

func assertOrder(t *testing.T, got, want []int64) {
	t.Helper()
	if len(got) != len(want) {
		t.Fatalf("Rank returned %d ids, want %d", len(got), len(want))
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("Rank order = %v, want %v", got, want)
		}
	}
}
