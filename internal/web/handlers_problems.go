package web

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/solvetrack/solvetrack/internal/domain"
	"github.com/solvetrack/solvetrack/internal/store"
	ownmw "github.com/solvetrack/solvetrack/internal/web/middleware"
)

// problemRequest is the JSON body for create and update.
// Difficulty and status are coerced, not validated: unrecognized values
// become Easy and Todo, matching the CSV import behavior.
type problemRequest struct {
	Title       string  `json:"title"`
	Platform    string  `json:"platform"`
	Difficulty  string  `json:"difficulty"`
	Topic       string  `json:"topic"`
	Status      string  `json:"status"`
	ProblemURL  *string `json:"problem_url"`
	SolutionURL *string `json:"solution_url"`
	Notes       *string `json:"notes"`
}

// validate checks the required text fields.
func (pr *problemRequest) validate() []string {
	var missing []string
	if strings.TrimSpace(pr.Title) == "" {
		missing = append(missing, "title")
	}
	if strings.TrimSpace(pr.Platform) == "" {
		missing = append(missing, "platform")
	}
	if strings.TrimSpace(pr.Topic) == "" {
		missing = append(missing, "topic")
	}
	return missing
}

// handleListProblems returns the caller's records, optionally filtered by
// status, difficulty, topic, and a free-text search.
func (s *Server) handleListProblems(w http.ResponseWriter, r *http.Request) {
	userID := ownmw.UserID(r.Context())

	f := store.Filter{
		Status:     r.URL.Query().Get("status"),
		Difficulty: r.URL.Query().Get("difficulty"),
		Topic:      r.URL.Query().Get("topic"),
		Search:     r.URL.Query().Get("search"),
	}

	records, err := s.store.List(r.Context(), userID, f)
	if err != nil {
		respondError(w, r, http.StatusInternalServerError, "STORE_FAILED", "failed to load problems", err)
		return
	}
	if records == nil {
		records = []domain.Problem{}
	}

	writeJSON(w, map[string]any{
		"problems": records,
		"count":    len(records),
	})
}

// handleCreateProblem persists a new record for the caller.
func (s *Server) handleCreateProblem(w http.ResponseWriter, r *http.Request) {
	userID := ownmw.UserID(r.Context())

	var req problemRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, r, http.StatusBadRequest, "BAD_REQUEST", "invalid JSON body", err)
		return
	}
	if missing := req.validate(); len(missing) > 0 {
		respondError(w, r, http.StatusBadRequest, "VALIDATION_FAILED",
			"missing required fields: "+strings.Join(missing, ", "), nil)
		return
	}

	p := domain.Problem{
		UserID:      userID,
		Title:       req.Title,
		Platform:    req.Platform,
		Difficulty:  domain.ParseDifficulty(req.Difficulty),
		Topic:       req.Topic,
		ProblemURL:  emptyToNil(req.ProblemURL),
		SolutionURL: emptyToNil(req.SolutionURL),
		Notes:       emptyToNil(req.Notes),
	}
	p.ApplyStatus(domain.ParseStatus(req.Status), time.Now())

	if err := s.store.Insert(r.Context(), &p); err != nil {
		respondError(w, r, http.StatusInternalServerError, "STORE_FAILED", "failed to save problem", err)
		return
	}

	s.invalidateStats(r.Context(), userID)

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)
	json.NewEncoder(w).Encode(p)
}

// handleUpdateProblem replaces the mutable fields of an existing record.
// SolvedAt follows status transitions: entering Solved stamps it, leaving
// Solved clears it, staying Solved keeps the original timestamp.
func (s *Server) handleUpdateProblem(w http.ResponseWriter, r *http.Request) {
	userID := ownmw.UserID(r.Context())

	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		respondError(w, r, http.StatusBadRequest, "BAD_REQUEST", "invalid problem id", err)
		return
	}

	var req problemRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, r, http.StatusBadRequest, "BAD_REQUEST", "invalid JSON body", err)
		return
	}
	if missing := req.validate(); len(missing) > 0 {
		respondError(w, r, http.StatusBadRequest, "VALIDATION_FAILED",
			"missing required fields: "+strings.Join(missing, ", "), nil)
		return
	}

	p, err := s.store.Get(r.Context(), userID, id)
	if errors.Is(err, store.ErrNotFound) {
		respondError(w, r, http.StatusNotFound, "NOT_FOUND", "problem not found", nil)
		return
	}
	if err != nil {
		respondError(w, r, http.StatusInternalServerError, "STORE_FAILED", "failed to load problem", err)
		return
	}

	p.Title = req.Title
	p.Platform = req.Platform
	p.Difficulty = domain.ParseDifficulty(req.Difficulty)
	p.Topic = req.Topic
	p.ProblemURL = emptyToNil(req.ProblemURL)
	p.SolutionURL = emptyToNil(req.SolutionURL)
	p.Notes = emptyToNil(req.Notes)
	p.ApplyStatus(domain.ParseStatus(req.Status), time.Now())

	if err := s.store.Update(r.Context(), &p); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			respondError(w, r, http.StatusNotFound, "NOT_FOUND", "problem not found", nil)
			return
		}
		respondError(w, r, http.StatusInternalServerError, "STORE_FAILED", "failed to update problem", err)
		return
	}

	s.invalidateStats(r.Context(), userID)
	writeJSON(w, p)
}

// handleDeleteProblem removes one of the caller's records.
func (s *Server) handleDeleteProblem(w http.ResponseWriter, r *http.Request) {
	userID := ownmw.UserID(r.Context())

	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		respondError(w, r, http.StatusBadRequest, "BAD_REQUEST", "invalid problem id", err)
		return
	}

	err = s.store.Delete(r.Context(), userID, id)
	if errors.Is(err, store.ErrNotFound) {
		respondError(w, r, http.StatusNotFound, "NOT_FOUND", "problem not found", nil)
		return
	}
	if err != nil {
		respondError(w, r, http.StatusInternalServerError, "STORE_FAILED", "failed to delete problem", err)
		return
	}

	s.invalidateStats(r.Context(), userID)
	w.WriteHeader(http.StatusNoContent)
}

// emptyToNil treats an explicit empty string the same as an absent field.
func emptyToNil(s *string) *string {
	if s == nil || *s == "" {
		return nil
	}
	return s
}
