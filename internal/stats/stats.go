// Package stats derives summary statistics and chart series from a user's
// problem records. All functions are pure: they take the reference instant
// as a parameter, never read the clock, and never mutate their input.
package stats

import (
	"math"
	"sort"
	"time"

	"github.com/solvetrack/solvetrack/internal/domain"
)

// Stats summarizes a user's practice activity.
type Stats struct {
	Total         int `json:"total"`
	Solved        int `json:"solved"`
	SolveRate     int `json:"solve_rate"`
	Last7Days     int `json:"last_7_days"`
	CurrentStreak int `json:"current_streak"`
}

// Compute derives totals, solve rate, recent activity, and the current
// streak from records.
//
// Last7Days uses a rolling 7x24h window ending at now (inclusive), while the
// streak counts consecutive calendar days; the two metrics intentionally use
// different window semantics.
func Compute(records []domain.Problem, now time.Time) Stats {
	s := Stats{Total: len(records)}

	windowStart := now.Add(-7 * 24 * time.Hour)
	for _, r := range records {
		if r.Status != domain.StatusSolved {
			continue
		}
		s.Solved++
		if r.SolvedAt != nil && !r.SolvedAt.Before(windowStart) && !r.SolvedAt.After(now) {
			s.Last7Days++
		}
	}

	if s.Total > 0 {
		s.SolveRate = int(math.Round(100 * float64(s.Solved) / float64(s.Total)))
	}
	s.CurrentStreak = currentStreak(records, now)

	return s
}

// currentStreak counts consecutive calendar days, ending today or yesterday,
// on which at least one record was solved. Dates are taken in now's location.
func currentStreak(records []domain.Problem, now time.Time) int {
	seen := make(map[time.Time]bool)
	for _, r := range records {
		if r.Status != domain.StatusSolved || r.SolvedAt == nil {
			continue
		}
		seen[dayOf(*r.SolvedAt, now.Location())] = true
	}
	if len(seen) == 0 {
		return 0
	}

	days := make([]time.Time, 0, len(seen))
	for d := range seen {
		days = append(days, d)
	}
	sort.Slice(days, func(i, j int) bool { return days[i].After(days[j]) })

	today := dayOf(now, now.Location())
	yesterday := today.AddDate(0, 0, -1)
	if !days[0].Equal(today) && !days[0].Equal(yesterday) {
		return 0
	}

	streak := 1
	for i := 1; i < len(days); i++ {
		if !days[i].Equal(days[i-1].AddDate(0, 0, -1)) {
			break
		}
		streak++
	}
	return streak
}

// dayOf truncates t to its calendar date in loc.
func dayOf(t time.Time, loc *time.Location) time.Time {
	t = t.In(loc)
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, loc)
}
