package csvcodec

import (
	"strings"
	"time"

	"github.com/solvetrack/solvetrack/internal/domain"
)

// requiredColumns must all be present in the header row for an import to
// proceed. Extra columns are ignored; order does not matter.
var requiredColumns = []string{"title", "platform", "difficulty", "topic"}

// dateLayouts are the accepted solved_at forms, tried in order. The export
// format comes first so round-trips never fall through to the looser
// spreadsheet layouts.
var dateLayouts = []string{
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02",
	"2006/01/02",
	"01/02/2006",
	"1/2/2006",
	"1.2.2006",
}

// Result holds the outcome of an import: the rows that validated, and a
// count of rows that were skipped so the caller can report
// "imported N, skipped M" without aborting the whole operation.
type Result struct {
	Records []domain.Problem
	Skipped int
}

// Import parses CSV text into problem records.
//
// Hard failures: ErrMalformedInput when fewer than two non-empty lines
// remain, *MissingColumnsError when a required header is absent, and
// ErrNoValidRows when every data row was skipped. Everything else degrades
// gracefully: unrecognized difficulty/status values default to Easy/Todo,
// empty optional fields become nil, unparseable solved_at values become nil,
// and a row missing any required value is counted in Result.Skipped.
//
// Returned records carry no ID, owner, or timestamps; the caller assigns
// those before persisting.
func Import(text string) (Result, error) {
	lines := splitLines(text)
	if len(lines) < 2 {
		return Result{}, ErrMalformedInput
	}

	headers := parseHeaders(lines[0])
	if missing := missingColumns(headers); len(missing) > 0 {
		return Result{}, &MissingColumnsError{Columns: missing}
	}

	var result Result
	for _, line := range lines[1:] {
		fields := splitFields(line)

		rec, ok := buildRecord(headers, fields)
		if !ok {
			result.Skipped++
			continue
		}
		result.Records = append(result.Records, rec)
	}

	if len(result.Records) == 0 {
		return Result{}, ErrNoValidRows
	}
	return result, nil
}

// splitLines breaks text into non-empty lines. Blank lines anywhere in the
// input are skipped, not treated as empty rows.
func splitLines(text string) []string {
	var lines []string
	for _, line := range strings.Split(text, "\n") {
		line = strings.TrimSuffix(line, "\r")
		if strings.TrimSpace(line) == "" {
			continue
		}
		lines = append(lines, line)
	}
	return lines
}

// parseHeaders splits the header line and normalizes each name: trimmed,
// surrounding quotes stripped, lowercased for case-insensitive matching.
func parseHeaders(line string) []string {
	fields := splitFields(line)
	for i, f := range fields {
		fields[i] = strings.ToLower(strings.TrimSpace(f))
	}
	return fields
}

func missingColumns(headers []string) []string {
	present := make(map[string]bool, len(headers))
	for _, h := range headers {
		present[h] = true
	}
	var missing []string
	for _, col := range requiredColumns {
		if !present[col] {
			missing = append(missing, col)
		}
	}
	return missing
}

// splitFields splits a line on commas outside quotes. Inside quotes a comma
// is literal and a doubled quote is an escaped literal quote. An unmatched
// quote toggles quoted mode for the rest of the field rather than failing.
func splitFields(line string) []string {
	var fields []string
	var cur strings.Builder
	inQuotes := false

	for i := 0; i < len(line); i++ {
		c := line[i]
		switch {
		case c == '"':
			if inQuotes && i+1 < len(line) && line[i+1] == '"' {
				cur.WriteByte('"')
				i++
			} else {
				inQuotes = !inQuotes
			}
		case c == ',' && !inQuotes:
			fields = append(fields, cur.String())
			cur.Reset()
		default:
			cur.WriteByte(c)
		}
	}
	fields = append(fields, cur.String())
	return fields
}

// buildRecord maps parsed fields to header names positionally and applies
// the per-field coercion rules. It reports ok=false when a required value is
// empty after coercion, which skips the row without failing the import.
func buildRecord(headers, fields []string) (domain.Problem, bool) {
	byName := make(map[string]string, len(headers))
	for i, h := range headers {
		if i >= len(fields) {
			break
		}
		byName[h] = fields[i]
	}

	rec := domain.Problem{
		Title:       byName["title"],
		Platform:    byName["platform"],
		Topic:       byName["topic"],
		Difficulty:  domain.ParseDifficulty(byName["difficulty"]),
		Status:      domain.ParseStatus(byName["status"]),
		ProblemURL:  optionalString(byName["problem_url"]),
		SolutionURL: optionalString(byName["solution_url"]),
		Notes:       optionalString(byName["notes"]),
		SolvedAt:    parseDate(byName["solved_at"]),
	}

	if rec.Title == "" || rec.Platform == "" || rec.Topic == "" || rec.Difficulty == "" {
		return domain.Problem{}, false
	}
	return rec, true
}

// optionalString coerces an empty string to nil.
func optionalString(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}

// parseDate returns nil unless s is non-empty and parses as a known layout.
func parseDate(s string) *time.Time {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil
	}
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return &t
		}
	}
	return nil
}
