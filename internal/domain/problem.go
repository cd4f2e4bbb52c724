// Package domain defines the problem-tracking entities shared by the
// storage, codec, and web layers.
package domain

import (
	"strings"
	"time"

	"github.com/google/uuid"
)

// Difficulty classifies how hard a tracked problem is.
type Difficulty string

const (
	DifficultyEasy   Difficulty = "Easy"
	DifficultyMedium Difficulty = "Medium"
	DifficultyHard   Difficulty = "Hard"
)

// Difficulties lists all difficulties in display order.
var Difficulties = []Difficulty{DifficultyEasy, DifficultyMedium, DifficultyHard}

// Status tracks where a problem sits in the practice workflow.
type Status string

const (
	StatusTodo       Status = "Todo"
	StatusInProgress Status = "In Progress"
	StatusSolved     Status = "Solved"
	StatusReviewed   Status = "Reviewed"
)

// Statuses lists all statuses in workflow order.
var Statuses = []Status{StatusTodo, StatusInProgress, StatusSolved, StatusReviewed}

// ParseDifficulty matches s against the known difficulties, ignoring case.
// Unrecognized values coerce to Easy rather than failing.
func ParseDifficulty(s string) Difficulty {
	for _, d := range Difficulties {
		if strings.EqualFold(s, string(d)) {
			return d
		}
	}
	return DifficultyEasy
}

// ParseStatus matches s against the known statuses, ignoring case.
// Unrecognized values coerce to Todo rather than failing.
func ParseStatus(s string) Status {
	for _, st := range Statuses {
		if strings.EqualFold(s, string(st)) {
			return st
		}
	}
	return StatusTodo
}

// Problem is one tracked coding problem. A zero ID means the record has not
// been persisted yet. Every record belongs to exactly one user; ownership is
// enforced at the storage layer.
type Problem struct {
	ID          uuid.UUID  `json:"id"`
	UserID      string     `json:"user_id"`
	Title       string     `json:"title"`
	Platform    string     `json:"platform"`
	Difficulty  Difficulty `json:"difficulty"`
	Topic       string     `json:"topic"`
	Status      Status     `json:"status"`
	ProblemURL  *string    `json:"problem_url,omitempty"`
	SolutionURL *string    `json:"solution_url,omitempty"`
	Notes       *string    `json:"notes,omitempty"`
	SolvedAt    *time.Time `json:"solved_at,omitempty"`
	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at"`
}

// ApplyStatus sets the status and keeps SolvedAt consistent with it:
// entering Solved stamps the transition time, leaving Solved clears it.
// A record already Solved keeps its original timestamp.
func (p *Problem) ApplyStatus(next Status, now time.Time) {
	switch {
	case next == StatusSolved && p.Status != StatusSolved:
		t := now
		p.SolvedAt = &t
	case next != StatusSolved:
		p.SolvedAt = nil
	}
	p.Status = next
}
