package timeseries

import (
	"fmt"
	"math"
	"sort"
	"time"

	"github.com/guregu/null/v6"
)

// Column is a named sequence of optional values aligned with a series index.
type Column struct {
	Name   string
	Values []null.Float
}

// Series represents a time-indexed table with one or more named columns.
// Timestamps are strictly increasing; every column has one cell per timestamp.
type Series struct {
	Name       string
	Timestamps []time.Time
	Columns    []Column
}

// New creates a validated series. Columns must match the index length,
// carry unique non-empty names, and timestamps must be strictly increasing.
func New(name string, timestamps []time.Time, columns ...Column) (*Series, error) {
	if len(columns) == 0 {
		return nil, ErrNoColumns
	}
	for i := 1; i < len(timestamps); i++ {
		if !timestamps[i].After(timestamps[i-1]) {
			return nil, fmt.Errorf("%w: %s follows %s", ErrUnsortedIndex,
				timestamps[i].Format(time.RFC3339), timestamps[i-1].Format(time.RFC3339))
		}
	}
	seen := make(map[string]bool, len(columns))
	for _, c := range columns {
		if c.Name == "" {
			return nil, fmt.Errorf("column name must not be empty")
		}
		if seen[c.Name] {
			return nil, fmt.Errorf("duplicate column %q", c.Name)
		}
		seen[c.Name] = true
		if len(c.Values) != len(timestamps) {
			return nil, fmt.Errorf("%w: column %q has %d values, index has %d",
				ErrLengthMismatch, c.Name, len(c.Values), len(timestamps))
		}
	}
	return &Series{
		Name:       name,
		Timestamps: timestamps,
		Columns:    columns,
	}, nil
}

// FromValues creates a single-column series from plain floats.
// NaN and infinite values become missing cells.
func FromValues(name, column string, timestamps []time.Time, values []float64) (*Series, error) {
	cells := make([]null.Float, len(values))
	for i, v := range values {
		cells[i] = Value(v)
	}
	return New(name, timestamps, Column{Name: column, Values: cells})
}

// Value wraps v as a present cell, or a missing one when v is NaN or infinite.
func Value(v float64) null.Float {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return null.Float{}
	}
	return null.FloatFrom(v)
}

// Missing returns an absent cell.
func Missing() null.Float {
	return null.Float{}
}

// Len returns the number of timestamps in the series.
func (s *Series) Len() int {
	return len(s.Timestamps)
}

// Width returns the number of columns.
func (s *Series) Width() int {
	return len(s.Columns)
}

// ColumnNames returns the column names in order.
func (s *Series) ColumnNames() []string {
	names := make([]string, len(s.Columns))
	for i, c := range s.Columns {
		names[i] = c.Name
	}
	return names
}

// Column returns the column with the given name.
func (s *Series) Column(name string) (*Column, error) {
	for i := range s.Columns {
		if s.Columns[i].Name == name {
			return &s.Columns[i], nil
		}
	}
	return nil, &MissingColumnError{Column: name, Available: s.ColumnNames()}
}

// Select returns a new series holding copies of the named columns.
func (s *Series) Select(names ...string) (*Series, error) {
	cols := make([]Column, 0, len(names))
	for _, name := range names {
		c, err := s.Column(name)
		if err != nil {
			return nil, err
		}
		cols = append(cols, c.Copy())
	}
	return New(s.Name, copyTimes(s.Timestamps), cols...)
}

// Rename returns a copy of the series with columns relabelled in order.
func (s *Series) Rename(labels ...string) (*Series, error) {
	if len(labels) != len(s.Columns) {
		return nil, fmt.Errorf("rename: %d labels for %d columns", len(labels), len(s.Columns))
	}
	cols := make([]Column, len(s.Columns))
	for i, c := range s.Columns {
		cols[i] = c.Copy()
		cols[i].Name = labels[i]
	}
	return New(s.Name, copyTimes(s.Timestamps), cols...)
}

// Slice returns a slice of the series from start to end (exclusive).
func (s *Series) Slice(start, end int) *Series {
	if start < 0 {
		start = 0
	}
	if end > s.Len() {
		end = s.Len()
	}
	if start >= end {
		start, end = 0, 0
	}

	cols := make([]Column, len(s.Columns))
	for i, c := range s.Columns {
		values := make([]null.Float, end-start)
		copy(values, c.Values[start:end])
		cols[i] = Column{Name: c.Name, Values: values}
	}

	return &Series{
		Name:       s.Name,
		Timestamps: copyTimes(s.Timestamps[start:end]),
		Columns:    cols,
	}
}

// Head returns the first n rows.
func (s *Series) Head(n int) *Series {
	return s.Slice(0, n)
}

// Copy creates a deep copy of the series.
func (s *Series) Copy() *Series {
	return s.Slice(0, s.Len())
}

// Start returns the first timestamp, or the zero time for an empty series.
func (s *Series) Start() time.Time {
	if s.Len() == 0 {
		return time.Time{}
	}
	return s.Timestamps[0]
}

// End returns the last timestamp, or the zero time for an empty series.
func (s *Series) End() time.Time {
	if s.Len() == 0 {
		return time.Time{}
	}
	return s.Timestamps[s.Len()-1]
}

// Equal reports whether both series carry the same index, column names and cells.
// The series name is ignored.
func (s *Series) Equal(o *Series) bool {
	if s.Len() != o.Len() || s.Width() != o.Width() {
		return false
	}
	for i, t := range s.Timestamps {
		if !t.Equal(o.Timestamps[i]) {
			return false
		}
	}
	for i, c := range s.Columns {
		oc := o.Columns[i]
		if c.Name != oc.Name {
			return false
		}
		for j, v := range c.Values {
			if !sameCell(v, oc.Values[j]) {
				return false
			}
		}
	}
	return true
}

func sameCell(a, b null.Float) bool {
	if a.Valid != b.Valid {
		return false
	}
	return !a.Valid || a.Float64 == b.Float64
}

func copyTimes(ts []time.Time) []time.Time {
	out := make([]time.Time, len(ts))
	copy(out, ts)
	return out
}

// Copy creates a deep copy of the column.
func (c Column) Copy() Column {
	values := make([]null.Float, len(c.Values))
	copy(values, c.Values)
	return Column{Name: c.Name, Values: values}
}

// Len returns the number of cells including missing ones.
func (c *Column) Len() int {
	return len(c.Values)
}

// Count returns the number of present cells.
func (c *Column) Count() int {
	n := 0
	for _, v := range c.Values {
		if v.Valid {
			n++
		}
	}
	return n
}

// Valid returns the present values in index order.
func (c *Column) Valid() []float64 {
	out := make([]float64, 0, len(c.Values))
	for _, v := range c.Values {
		if v.Valid {
			out = append(out, v.Float64)
		}
	}
	return out
}

// Mean calculates the arithmetic mean of the present values.
func (c *Column) Mean() float64 {
	values := c.Valid()
	if len(values) == 0 {
		return math.NaN()
	}
	sum := 0.0
	for _, v := range values {
		sum += v
	}
	return sum / float64(len(values))
}

// Variance calculates the sample variance of the present values.
func (c *Column) Variance() float64 {
	values := c.Valid()
	if len(values) < 2 {
		return math.NaN()
	}
	mean := c.Mean()
	sumSq := 0.0
	for _, v := range values {
		diff := v - mean
		sumSq += diff * diff
	}
	return sumSq / float64(len(values)-1)
}

// Std calculates the sample standard deviation of the present values.
func (c *Column) Std() float64 {
	return math.Sqrt(c.Variance())
}

// Min returns the minimum present value.
func (c *Column) Min() float64 {
	values := c.Valid()
	if len(values) == 0 {
		return math.NaN()
	}
	min := values[0]
	for _, v := range values[1:] {
		if v < min {
			min = v
		}
	}
	return min
}

// Max returns the maximum present value.
func (c *Column) Max() float64 {
	values := c.Valid()
	if len(values) == 0 {
		return math.NaN()
	}
	max := values[0]
	for _, v := range values[1:] {
		if v > max {
			max = v
		}
	}
	return max
}

// Median returns the median present value.
func (c *Column) Median() float64 {
	sorted := c.Valid()
	if len(sorted) == 0 {
		return math.NaN()
	}
	sort.Float64s(sorted)

	n := len(sorted)
	if n%2 == 0 {
		return (sorted[n/2-1] + sorted[n/2]) / 2
	}
	return sorted[n/2]
}
