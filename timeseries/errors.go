package timeseries

import (
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrNoData is returned when a CSV source has a header but no data rows.
	ErrNoData = errors.New("no data rows found in CSV")

	// ErrLengthMismatch is returned when a column length differs from the index length.
	ErrLengthMismatch = errors.New("column length does not match index length")

	// ErrUnsortedIndex is returned when timestamps are not strictly increasing.
	ErrUnsortedIndex = errors.New("timestamps must be strictly increasing")

	// ErrNoColumns is returned when a series is built without any value column.
	ErrNoColumns = errors.New("series needs at least one column")
)

// ParseError reports a failure to turn CSV input into a Series.
// Line is the 1-based line of the input (0 when the error is not tied to a row).
type ParseError struct {
	Source string
	Line   int
	Column string
	Value  string
	Err    error
}

func (e *ParseError) Error() string {
	var b strings.Builder
	b.WriteString("parse ")
	if e.Source != "" {
		b.WriteString(e.Source)
	} else {
		b.WriteString("csv")
	}
	if e.Line > 0 {
		fmt.Fprintf(&b, ": line %d", e.Line)
	}
	if e.Column != "" {
		fmt.Fprintf(&b, ": column %q", e.Column)
	}
	if e.Value != "" {
		fmt.Fprintf(&b, ": value %q", e.Value)
	}
	if e.Err != nil {
		b.WriteString(": ")
		b.WriteString(e.Err.Error())
	}
	return b.String()
}

func (e *ParseError) Unwrap() error {
	return e.Err
}

// MissingColumnError reports a reference to a column the series does not carry.
type MissingColumnError struct {
	Column    string
	Available []string
}

func (e *MissingColumnError) Error() string {
	return fmt.Sprintf("column %q not found (available: %s)", e.Column, strings.Join(e.Available, ", "))
}
