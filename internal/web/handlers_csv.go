package web

import (
	"errors"
	"fmt"
	"io"
	"mime"
	"net/http"
	"strings"
	"time"

	"github.com/solvetrack/solvetrack/internal/csvcodec"
	"github.com/solvetrack/solvetrack/internal/domain"
	"github.com/solvetrack/solvetrack/internal/logging"
	"github.com/solvetrack/solvetrack/internal/store"
	ownmw "github.com/solvetrack/solvetrack/internal/web/middleware"
)

// handleExport downloads the caller's records as a CSV attachment.
// The same list filters apply, so a filtered table view exports exactly
// what it shows.
func (s *Server) handleExport(w http.ResponseWriter, r *http.Request) {
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

	filename := fmt.Sprintf("problems_%s.csv", time.Now().Format("20060102_150405"))
	w.Header().Set("Content-Type", "text/csv")
	w.Header().Set("Content-Disposition", fmt.Sprintf(`attachment; filename="%s"`, filename))
	io.WriteString(w, csvcodec.Export(records))
}

// importResponse reports an import outcome: "imported N, skipped M".
type importResponse struct {
	Imported int `json:"imported"`
	Skipped  int `json:"skipped"`
}

// handleImport parses a CSV payload, persists the valid rows for the
// caller, and reports how many rows were imported and skipped. The payload
// is either a multipart form with a "file" field or a raw CSV body.
func (s *Server) handleImport(w http.ResponseWriter, r *http.Request) {
	userID := ownmw.UserID(r.Context())

	text, err := readImportBody(r, s.cfg.Import.MaxBodyBytes)
	if err != nil {
		respondError(w, r, http.StatusBadRequest, "BAD_REQUEST", "could not read import payload", err)
		return
	}

	result, err := csvcodec.Import(text)
	if err != nil {
		s.respondImportError(w, r, err)
		return
	}

	if len(result.Records) > s.cfg.Import.MaxRows {
		respondError(w, r, http.StatusRequestEntityTooLarge, "CSV_TOO_MANY_ROWS",
			fmt.Sprintf("import exceeds the %d row limit", s.cfg.Import.MaxRows), nil)
		return
	}

	records := make([]*domain.Problem, len(result.Records))
	for i := range result.Records {
		result.Records[i].UserID = userID
		records[i] = &result.Records[i]
	}

	imported, err := s.store.InsertBatch(r.Context(), records)
	if err != nil {
		respondError(w, r, http.StatusInternalServerError, "STORE_FAILED", "failed to save imported problems", err)
		return
	}

	s.invalidateStats(r.Context(), userID)

	logging.FromContext(r.Context()).Info("csv import",
		"user_id", userID,
		"imported", imported,
		"skipped", result.Skipped,
	)
	writeJSON(w, importResponse{Imported: imported, Skipped: result.Skipped})
}

// respondImportError maps codec failures to stable error codes.
func (s *Server) respondImportError(w http.ResponseWriter, r *http.Request, err error) {
	var missing *csvcodec.MissingColumnsError
	switch {
	case errors.Is(err, csvcodec.ErrMalformedInput):
		respondError(w, r, http.StatusBadRequest, "CSV_MALFORMED", err.Error(), nil)
	case errors.As(err, &missing):
		respondError(w, r, http.StatusBadRequest, "CSV_MISSING_COLUMNS", missing.Error(), nil)
	case errors.Is(err, csvcodec.ErrNoValidRows):
		respondError(w, r, http.StatusBadRequest, "CSV_NO_VALID_ROWS", err.Error(), nil)
	default:
		respondError(w, r, http.StatusInternalServerError, "INTERNAL", "import failed", err)
	}
}

// readImportBody extracts CSV text from a multipart "file" field or the raw
// request body, capped at maxBytes either way.
func readImportBody(r *http.Request, maxBytes int64) (string, error) {
	r.Body = http.MaxBytesReader(nil, r.Body, maxBytes)

	mediaType, _, _ := mime.ParseMediaType(r.Header.Get("Content-Type"))
	if strings.HasPrefix(mediaType, "multipart/") {
		if err := r.ParseMultipartForm(maxBytes); err != nil {
			return "", fmt.Errorf("parse multipart form: %w", err)
		}
		file, _, err := r.FormFile("file")
		if err != nil {
			return "", fmt.Errorf("missing file field: %w", err)
		}
		defer file.Close()

		data, err := io.ReadAll(file)
		if err != nil {
			return "", fmt.Errorf("read uploaded file: %w", err)
		}
		return string(data), nil
	}

	data, err := io.ReadAll(r.Body)
	if err != nil {
		return "", fmt.Errorf("read request body: %w", err)
	}
	return string(data), nil
}
