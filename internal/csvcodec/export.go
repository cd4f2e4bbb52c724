// Package csvcodec converts problem records to and from CSV text.
//
// The export and import sides share one dialect: fields are split on commas
// outside quotes, a doubled quote inside a quoted field is a literal quote,
// and a field is quoted on output only when it contains a comma, a quote, or
// a newline. Import is deliberately lenient (unmatched quotes, ragged rows,
// unknown headers) so files edited by hand or exported from spreadsheets
// still load; hard failures are limited to the cases in errors.go.
package csvcodec

import (
	"strings"
	"time"

	"github.com/solvetrack/solvetrack/internal/domain"
)

// Header is the fixed export column order. Import accepts these columns in
// any order and ignores columns it does not recognize.
var Header = []string{
	"title", "platform", "difficulty", "topic", "status",
	"problem_url", "solution_url", "notes", "solved_at", "created_at",
}

// timeFormat is the timestamp layout written on export. Import accepts it
// back along with the more common spreadsheet date forms.
const timeFormat = time.RFC3339

// Export serializes records as CSV text with the fixed Header row.
// Nil optional fields serialize to empty strings. The output re-parses via
// Import to equivalent field values for any value that does not collide with
// the import-side defaulting rules.
func Export(records []domain.Problem) string {
	var b strings.Builder
	b.WriteString(strings.Join(Header, ","))
	b.WriteByte('\n')

	for _, r := range records {
		fields := [...]string{
			r.Title,
			r.Platform,
			string(r.Difficulty),
			r.Topic,
			string(r.Status),
			derefString(r.ProblemURL),
			derefString(r.SolutionURL),
			derefString(r.Notes),
			formatTimePtr(r.SolvedAt),
			formatTime(r.CreatedAt),
		}
		for i, f := range fields {
			fields[i] = escapeField(f)
		}
		b.WriteString(strings.Join(fields[:], ","))
		b.WriteByte('\n')
	}

	return b.String()
}

// escapeField wraps v in double quotes, doubling internal quotes, if and
// only if it contains a comma, a double quote, or a newline.
func escapeField(v string) string {
	if !strings.ContainsAny(v, ",\"\n") {
		return v
	}
	return `"` + strings.ReplaceAll(v, `"`, `""`) + `"`
}

func derefString(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

func formatTime(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.Format(timeFormat)
}

func formatTimePtr(t *time.Time) string {
	if t == nil {
		return ""
	}
	return formatTime(*t)
}
