package csvcodec

import (
	"errors"
	"fmt"
	"strings"
)

// ErrMalformedInput means the text is structurally too short to contain
// data: fewer than two non-empty lines (header plus at least one row).
var ErrMalformedInput = errors.New("csv input must contain a header row and at least one data row")

// ErrNoValidRows means every data row failed per-row validation and was
// skipped. The caller gets nothing to persist, so this is a hard failure
// rather than a skip count.
var ErrNoValidRows = errors.New("no valid rows found in csv input")

// MissingColumnsError reports required headers absent from the input.
type MissingColumnsError struct {
	Columns []string
}

func (e *MissingColumnsError) Error() string {
	return fmt.Sprintf("missing required columns: %s", strings.Join(e.Columns, ", "))
}
