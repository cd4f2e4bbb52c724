package web

import (
	"net/http"
	"time"

	"github.com/solvetrack/solvetrack/internal/stats"
	"github.com/solvetrack/solvetrack/internal/store"
	ownmw "github.com/solvetrack/solvetrack/internal/web/middleware"
)

// handleStats returns the caller's summary statistics, served from the
// stats cache when one is configured.
func (s *Server) handleStats(w http.ResponseWriter, r *http.Request) {
	userID := ownmw.UserID(r.Context())

	if s.cache != nil {
		if cached, ok := s.cache.GetStats(r.Context(), userID); ok {
			writeJSON(w, cached)
			return
		}
	}

	records, err := s.store.List(r.Context(), userID, store.Filter{})
	if err != nil {
		respondError(w, r, http.StatusInternalServerError, "STORE_FAILED", "failed to load problems", err)
		return
	}

	result := stats.Compute(records, time.Now())
	if s.cache != nil {
		s.cache.SetStats(r.Context(), userID, result)
	}
	writeJSON(w, result)
}

// handleCharts returns the caller's chart series, served from the stats
// cache when one is configured.
func (s *Server) handleCharts(w http.ResponseWriter, r *http.Request) {
	userID := ownmw.UserID(r.Context())

	if s.cache != nil {
		if cached, ok := s.cache.GetCharts(r.Context(), userID); ok {
			writeJSON(w, cached)
			return
		}
	}

	records, err := s.store.List(r.Context(), userID, store.Filter{})
	if err != nil {
		respondError(w, r, http.StatusInternalServerError, "STORE_FAILED", "failed to load problems", err)
		return
	}

	result := stats.ComputeCharts(records, time.Now())
	if s.cache != nil {
		s.cache.SetCharts(r.Context(), userID, result)
	}
	writeJSON(w, result)
}
