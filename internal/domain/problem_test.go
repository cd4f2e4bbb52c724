package domain

import (
	"testing"
	"time"
)

func TestParseDifficulty(t *testing.T) {
	tests := []struct {
		input string
		want  Difficulty
	}{
		{"Easy", DifficultyEasy},
		{"medium", DifficultyMedium},
		{"HARD", DifficultyHard},
		{"", DifficultyEasy},
		{"Impossible", DifficultyEasy},
	}

	for _, tt := range tests {
		if got := ParseDifficulty(tt.input); got != tt.want {
			t.Errorf("ParseDifficulty(%q) = %q, want %q", tt.input, got, tt.want)
		}
	}
}

func TestParseStatus(t *testing.T) {
	tests := []struct {
		input string
		want  Status
	}{
		{"Todo", StatusTodo},
		{"in progress", StatusInProgress},
		{"SOLVED", StatusSolved},
		{"reviewed", StatusReviewed},
		{"", StatusTodo},
		{"Abandoned", StatusTodo},
	}

	for _, tt := range tests {
		if got := ParseStatus(tt.input); got != tt.want {
			t.Errorf("ParseStatus(%q) = %q, want %q", tt.input, got, tt.want)
		}
	}
}

func TestApplyStatus_EnteringSolvedStamps(t *testing.T) {
	now := time.Date(2026, 8, 31, 12, 0, 0, 0, time.UTC)
	p := Problem{Status: StatusInProgress}

	p.ApplyStatus(StatusSolved, now)

	if p.Status != StatusSolved {
		t.Errorf("Status = %q, want Solved", p.Status)
	}
	if p.SolvedAt == nil || !p.SolvedAt.Equal(now) {
		t.Errorf("SolvedAt = %v, want %v", p.SolvedAt, now)
	}
}

func TestApplyStatus_StayingSolvedKeepsTimestamp(t *testing.T) {
	original := time.Date(2026, 8, 1, 9, 0, 0, 0, time.UTC)
	now := time.Date(2026, 8, 31, 12, 0, 0, 0, time.UTC)
	p := Problem{Status: StatusSolved, SolvedAt: &original}

	p.ApplyStatus(StatusSolved, now)

	if p.SolvedAt == nil || !p.SolvedAt.Equal(original) {
		t.Errorf("SolvedAt = %v, want original %v", p.SolvedAt, original)
	}
}

func TestApplyStatus_LeavingSolvedClears(t *testing.T) {
	solved := time.Date(2026, 8, 1, 9, 0, 0, 0, time.UTC)
	now := time.Date(2026, 8, 31, 12, 0, 0, 0, time.UTC)
	p := Problem{Status: StatusSolved, SolvedAt: &solved}

	p.ApplyStatus(StatusTodo, now)

	if p.Status != StatusTodo {
		t.Errorf("Status = %q, want Todo", p.Status)
	}
	if p.SolvedAt != nil {
		t.Errorf("SolvedAt = %v, want nil after leaving Solved", p.SolvedAt)
	}
}
