package stats

import (
	"testing"
	"time"

	"github.com/solvetrack/solvetrack/internal/domain"
)

var testNow = time.Date(2026, 8, 31, 15, 0, 0, 0, time.UTC)

// solvedAt builds a Solved record whose SolvedAt is daysAgo calendar days
// before testNow.
func solvedAt(daysAgo int) domain.Problem {
	ts := testNow.AddDate(0, 0, -daysAgo)
	return domain.Problem{Status: domain.StatusSolved, SolvedAt: &ts}
}

// ============================================================================
// Compute Tests
// ============================================================================

func TestCompute_Empty(t *testing.T) {
	s := Compute(nil, testNow)

	if s.Total != 0 || s.Solved != 0 || s.SolveRate != 0 || s.Last7Days != 0 || s.CurrentStreak != 0 {
		t.Errorf("Compute(nil) = %+v, want all zero", s)
	}
}

func TestCompute_Totals(t *testing.T) {
	records := []domain.Problem{
		solvedAt(0),
		solvedAt(1),
		{Status: domain.StatusTodo},
		{Status: domain.StatusInProgress},
	}

	s := Compute(records, testNow)

	if s.Total != 4 {
		t.Errorf("Total = %d, want 4", s.Total)
	}
	if s.Solved != 2 {
		t.Errorf("Solved = %d, want 2", s.Solved)
	}
	if s.SolveRate != 50 {
		t.Errorf("SolveRate = %d, want 50", s.SolveRate)
	}
}

func TestCompute_SolveRateRounds(t *testing.T) {
	// 1 of 3 solved: 33.33 rounds to 33; 2 of 3: 66.67 rounds to 67.
	oneOfThree := []domain.Problem{
		solvedAt(0),
		{Status: domain.StatusTodo},
		{Status: domain.StatusTodo},
	}
	if s := Compute(oneOfThree, testNow); s.SolveRate != 33 {
		t.Errorf("SolveRate = %d, want 33", s.SolveRate)
	}

	twoOfThree := []domain.Problem{
		solvedAt(0),
		solvedAt(1),
		{Status: domain.StatusTodo},
	}
	if s := Compute(twoOfThree, testNow); s.SolveRate != 67 {
		t.Errorf("SolveRate = %d, want 67", s.SolveRate)
	}
}

func TestCompute_Last7DaysRollingWindow(t *testing.T) {
	inside := testNow.Add(-7*24*time.Hour + time.Minute)
	boundary := testNow.Add(-7 * 24 * time.Hour)
	outside := testNow.Add(-7*24*time.Hour - time.Minute)
	future := testNow.Add(time.Hour)

	records := []domain.Problem{
		{Status: domain.StatusSolved, SolvedAt: &inside},
		{Status: domain.StatusSolved, SolvedAt: &boundary},
		{Status: domain.StatusSolved, SolvedAt: &outside},
		{Status: domain.StatusSolved, SolvedAt: &future},
		{Status: domain.StatusSolved}, // solved without a timestamp
	}

	s := Compute(records, testNow)

	// inside and the inclusive window start count; a record solved after now
	// or carrying no timestamp does not.
	if s.Last7Days != 2 {
		t.Errorf("Last7Days = %d, want 2", s.Last7Days)
	}
	if s.Solved != 5 {
		t.Errorf("Solved = %d, want 5 (window must not affect the solved total)", s.Solved)
	}
}

func TestCompute_Last7DaysIgnoresUnsolved(t *testing.T) {
	ts := testNow.Add(-time.Hour)
	records := []domain.Problem{
		{Status: domain.StatusReviewed, SolvedAt: &ts},
		{Status: domain.StatusInProgress, SolvedAt: &ts},
	}

	if s := Compute(records, testNow); s.Last7Days != 0 {
		t.Errorf("Last7Days = %d, want 0 for non-Solved records", s.Last7Days)
	}
}

// ============================================================================
// Streak Tests
// ============================================================================

func TestCurrentStreak_ConsecutiveDays(t *testing.T) {
	records := []domain.Problem{solvedAt(0), solvedAt(1), solvedAt(2)}

	if got := Compute(records, testNow).CurrentStreak; got != 3 {
		t.Errorf("CurrentStreak = %d, want 3", got)
	}
}

func TestCurrentStreak_EndsYesterday(t *testing.T) {
	records := []domain.Problem{solvedAt(1), solvedAt(2)}

	if got := Compute(records, testNow).CurrentStreak; got != 2 {
		t.Errorf("CurrentStreak = %d, want 2 (streak ending yesterday still counts)", got)
	}
}

func TestCurrentStreak_BrokenByGap(t *testing.T) {
	records := []domain.Problem{solvedAt(0), solvedAt(2), solvedAt(3)}

	if got := Compute(records, testNow).CurrentStreak; got != 1 {
		t.Errorf("CurrentStreak = %d, want 1 (gap at yesterday breaks the run)", got)
	}
}

func TestCurrentStreak_StaleActivity(t *testing.T) {
	records := []domain.Problem{solvedAt(2), solvedAt(3), solvedAt(4)}

	if got := Compute(records, testNow).CurrentStreak; got != 0 {
		t.Errorf("CurrentStreak = %d, want 0 (most recent solve is before yesterday)", got)
	}
}

func TestCurrentStreak_MultipleSolvesPerDay(t *testing.T) {
	records := []domain.Problem{solvedAt(0), solvedAt(0), solvedAt(0), solvedAt(1)}

	if got := Compute(records, testNow).CurrentStreak; got != 2 {
		t.Errorf("CurrentStreak = %d, want 2 (same-day solves count once)", got)
	}
}

func TestCurrentStreak_IgnoresUnsolved(t *testing.T) {
	ts := testNow
	records := []domain.Problem{{Status: domain.StatusTodo, SolvedAt: &ts}}

	if got := Compute(records, testNow).CurrentStreak; got != 0 {
		t.Errorf("CurrentStreak = %d, want 0 (only Solved records extend the streak)", got)
	}
}

// ============================================================================
// Charts Tests
// ============================================================================

func TestDifficultyBreakdown_OmitsZeroBuckets(t *testing.T) {
	records := []domain.Problem{
		{Difficulty: domain.DifficultyEasy},
		{Difficulty: domain.DifficultyHard},
		{Difficulty: domain.DifficultyHard},
	}

	c := ComputeCharts(records, testNow)

	if len(c.DifficultyBreakdown) != 2 {
		t.Fatalf("difficulty buckets = %d, want 2 (Medium omitted)", len(c.DifficultyBreakdown))
	}
	if c.DifficultyBreakdown[0].Difficulty != domain.DifficultyEasy || c.DifficultyBreakdown[0].Count != 1 {
		t.Errorf("bucket[0] = %+v, want Easy/1", c.DifficultyBreakdown[0])
	}
	if c.DifficultyBreakdown[1].Difficulty != domain.DifficultyHard || c.DifficultyBreakdown[1].Count != 2 {
		t.Errorf("bucket[1] = %+v, want Hard/2", c.DifficultyBreakdown[1])
	}
}

func TestTopicBreakdown_OrderAndCap(t *testing.T) {
	var records []domain.Problem
	// Ten topics: t0 appears 10 times, t1 nine times, ... t9 once.
	for i := 0; i < 10; i++ {
		topic := string(rune('a'+i)) + "-topic"
		for j := 0; j < 10-i; j++ {
			records = append(records, domain.Problem{Topic: topic})
		}
	}

	c := ComputeCharts(records, testNow)

	if len(c.TopicBreakdown) != 8 {
		t.Fatalf("topic buckets = %d, want 8", len(c.TopicBreakdown))
	}
	if c.TopicBreakdown[0].Topic != "a-topic" || c.TopicBreakdown[0].Count != 10 {
		t.Errorf("top topic = %+v, want a-topic/10", c.TopicBreakdown[0])
	}
	for i := 1; i < len(c.TopicBreakdown); i++ {
		if c.TopicBreakdown[i].Count > c.TopicBreakdown[i-1].Count {
			t.Errorf("topic breakdown not sorted by count at %d: %+v", i, c.TopicBreakdown)
		}
	}
}

func TestTopicBreakdown_AlphabeticalTieBreak(t *testing.T) {
	records := []domain.Problem{
		{Topic: "Graphs"},
		{Topic: "Arrays"},
		{Topic: "Trees"},
	}

	c := ComputeCharts(records, testNow)

	want := []string{"Arrays", "Graphs", "Trees"}
	for i, topic := range want {
		if c.TopicBreakdown[i].Topic != topic {
			t.Errorf("topic[%d] = %q, want %q", i, c.TopicBreakdown[i].Topic, topic)
		}
	}
}

func TestDailyActivity_ZeroFilled(t *testing.T) {
	records := []domain.Problem{solvedAt(0), solvedAt(0), solvedAt(3)}

	c := ComputeCharts(records, testNow)

	if len(c.DailyActivity) != 30 {
		t.Fatalf("daily activity length = %d, want 30", len(c.DailyActivity))
	}

	first := c.DailyActivity[0]
	last := c.DailyActivity[len(c.DailyActivity)-1]
	if first.Date != "2026-08-02" {
		t.Errorf("first date = %q, want 2026-08-02", first.Date)
	}
	if last.Date != "2026-08-31" {
		t.Errorf("last date = %q, want 2026-08-31 (series ends today)", last.Date)
	}
	if last.Solved != 2 {
		t.Errorf("today's count = %d, want 2", last.Solved)
	}

	total := 0
	for _, d := range c.DailyActivity {
		total += d.Solved
	}
	if total != 3 {
		t.Errorf("summed activity = %d, want 3", total)
	}
}

func TestDailyActivity_IgnoresOldSolves(t *testing.T) {
	records := []domain.Problem{solvedAt(0), solvedAt(45)}

	c := ComputeCharts(records, testNow)

	total := 0
	for _, d := range c.DailyActivity {
		total += d.Solved
	}
	if total != 1 {
		t.Errorf("summed activity = %d, want 1 (solve outside the window excluded)", total)
	}
}

func TestComputeCharts_Empty(t *testing.T) {
	c := ComputeCharts(nil, testNow)

	if len(c.DifficultyBreakdown) != 0 {
		t.Errorf("difficulty buckets = %d, want 0", len(c.DifficultyBreakdown))
	}
	if len(c.TopicBreakdown) != 0 {
		t.Errorf("topic buckets = %d, want 0", len(c.TopicBreakdown))
	}
	if len(c.DailyActivity) != 30 {
		t.Errorf("daily activity length = %d, want 30 even with no records", len(c.DailyActivity))
	}
}
