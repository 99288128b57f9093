package charts

import (
	"fmt"
	"strings"
)

// MissingFieldError is returned when a record lacks a value a chart needs.
type MissingFieldError struct {
	Record string
	Fields []string
}

func (e *MissingFieldError) Error() string {
	return fmt.Sprintf("record %q is missing required fields: %s", e.Record, strings.Join(e.Fields, ", "))
}
