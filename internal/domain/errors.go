package domain

import (
	"errors"
	"fmt"
	"strings"
)

// SchemaError reports empty input, a missing required column, or a row whose
// value cannot be used. Row is the 1-based data row, 0 when not row-specific.
type SchemaError struct {
	Field  string
	Row    int
	Reason string
}

func (e *SchemaError) Error() string {
	var b strings.Builder
	b.WriteString("schema error")
	if e.Field != "" {
		fmt.Fprintf(&b, ": field %q", e.Field)
	}
	if e.Row > 0 {
		fmt.Fprintf(&b, " row %d", e.Row)
	}
	if e.Reason != "" {
		b.WriteString(": ")
		b.WriteString(e.Reason)
	}
	return b.String()
}

// EmptyResultError reports that every sample fell outside coverage.
type EmptyResultError struct {
	Total int
}

func (e *EmptyResultError) Error() string {
	return fmt.Sprintf("no usable data: all %d samples outside TEMPO coverage", e.Total)
}

// MissingColumnError reports advisory input without the zone-level columns.
type MissingColumnError struct {
	Columns []string
}

func (e *MissingColumnError) Error() string {
	return fmt.Sprintf("missing required columns: %s", strings.Join(e.Columns, ", "))
}

// Error kinds reported by ErrorKind.
const (
	KindSchema        = "schema"
	KindEmptyResult   = "empty_result"
	KindMissingColumn = "missing_column"
	KindOther         = "error"
)

// ErrorKind classifies err into a stable label for metrics and status
// mapping. It returns "" for a nil error.
func ErrorKind(err error) string {
	var (
		schemaErr  *SchemaError
		emptyErr   *EmptyResultError
		missingErr *MissingColumnError
	)
	switch {
	case err == nil:
		return ""
	case errors.As(err, &schemaErr):
		return KindSchema
	case errors.As(err, &emptyErr):
		return KindEmptyResult
	case errors.As(err, &missingErr):
		return KindMissingColumn
	default:
		return KindOther
	}
}
