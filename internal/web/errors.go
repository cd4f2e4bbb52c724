package web

// errors.go provides unified error response handling for the web layer.
//
// Every error is logged server-side with full technical detail and the
// request ID for correlation, while the client receives a sanitized message
// plus a stable machine-readable code.
//
// Codes:
//
//	AUTH_*              - issued by the auth middleware
//	BAD_REQUEST         - malformed JSON body or parameters
//	VALIDATION_FAILED   - a required field is missing or empty
//	NOT_FOUND           - record absent or owned by another user
//	CSV_MALFORMED       - import input too short to contain data
//	CSV_MISSING_COLUMNS - required import headers absent (message lists them)
//	CSV_NO_VALID_ROWS   - every import row failed row-level validation
//	CSV_TOO_MANY_ROWS   - import exceeds the configured row cap
//	RATE_LIMITED        - per-IP rate limit exceeded
//	STORE_FAILED        - the database rejected the operation
//	INTERNAL            - anything else

import (
	"encoding/json"
	"net/http"

	"github.com/solvetrack/solvetrack/internal/logging"
)

// ErrorResponse is the JSON structure for API error responses.
type ErrorResponse struct {
	Error string `json:"error"`
	Code  string `json:"code"`
}

// respondError logs err with request context and writes a sanitized JSON
// error to the client. err may be nil when there is no technical cause
// beyond the message itself.
func respondError(w http.ResponseWriter, r *http.Request, statusCode int, code, message string, err error) {
	logger := logging.FromContext(r.Context())

	args := []any{
		"path", r.URL.Path,
		"method", r.Method,
		"status", statusCode,
		"code", code,
	}
	if err != nil {
		args = append(args, "error", err.Error())
	}
	logger.Error("request error", args...)

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	json.NewEncoder(w).Encode(ErrorResponse{
		Error: message,
		Code:  code,
	})
}
