package stats

import (
	"sort"
	"time"

	"github.com/solvetrack/solvetrack/internal/domain"
)

// activityDays is the length of the daily activity series.
const activityDays = 30

// DifficultyCount is one difficulty bucket for charting.
type DifficultyCount struct {
	Difficulty domain.Difficulty `json:"difficulty"`
	Count      int               `json:"count"`
}

// TopicCount is one topic bucket for charting.
type TopicCount struct {
	Topic string `json:"topic"`
	Count int    `json:"count"`
}

// DayActivity is the solve count for a single calendar day.
type DayActivity struct {
	Date   string `json:"date"`
	Solved int    `json:"solved"`
}

// Charts holds the three chart series for the dashboard.
type Charts struct {
	DifficultyBreakdown []DifficultyCount `json:"difficulty_breakdown"`
	TopicBreakdown      []TopicCount      `json:"topic_breakdown"`
	DailyActivity       []DayActivity     `json:"daily_activity"`
}

// maxTopics caps the topic breakdown for readable charts.
const maxTopics = 8

// ComputeCharts derives the difficulty, topic, and daily-activity series
// from records. Difficulty buckets with zero count are omitted; topics are
// ordered by descending count (ties alphabetically) and truncated to the top
// eight; the daily series always has exactly 30 zero-filled entries, oldest
// first and ending on now's calendar date.
func ComputeCharts(records []domain.Problem, now time.Time) Charts {
	return Charts{
		DifficultyBreakdown: difficultyBreakdown(records),
		TopicBreakdown:      topicBreakdown(records),
		DailyActivity:       dailyActivity(records, now),
	}
}

func difficultyBreakdown(records []domain.Problem) []DifficultyCount {
	counts := make(map[domain.Difficulty]int)
	for _, r := range records {
		counts[r.Difficulty]++
	}

	var out []DifficultyCount
	for _, d := range domain.Difficulties {
		if counts[d] > 0 {
			out = append(out, DifficultyCount{Difficulty: d, Count: counts[d]})
		}
	}
	return out
}

func topicBreakdown(records []domain.Problem) []TopicCount {
	counts := make(map[string]int)
	for _, r := range records {
		counts[r.Topic]++
	}

	out := make([]TopicCount, 0, len(counts))
	for topic, n := range counts {
		out = append(out, TopicCount{Topic: topic, Count: n})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Count != out[j].Count {
			return out[i].Count > out[j].Count
		}
		return out[i].Topic < out[j].Topic
	})

	if len(out) > maxTopics {
		out = out[:maxTopics]
	}
	return out
}

func dailyActivity(records []domain.Problem, now time.Time) []DayActivity {
	loc := now.Location()
	today := dayOf(now, loc)
	start := today.AddDate(0, 0, -(activityDays - 1))

	perDay := make(map[time.Time]int)
	for _, r := range records {
		if r.SolvedAt == nil {
			continue
		}
		perDay[dayOf(*r.SolvedAt, loc)]++
	}

	out := make([]DayActivity, activityDays)
	for i := range out {
		day := start.AddDate(0, 0, i)
		out[i] = DayActivity{
			Date:   day.Format("2006-01-02"),
			Solved: perDay[day],
		}
	}
	return out
}
