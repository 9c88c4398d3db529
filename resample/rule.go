package resample

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

var (
	// ErrUnknownFrequency is returned when a frequency name cannot be parsed.
	ErrUnknownFrequency = errors.New("unknown frequency")

	// ErrUnknownAggregation is returned when an aggregation name cannot be parsed.
	ErrUnknownAggregation = errors.New("unknown aggregation")

	// ErrUnknownLabel is returned when a label name cannot be parsed.
	ErrUnknownLabel = errors.New("unknown period label")
)

// Frequency is a target sampling frequency.
type Frequency int

const (
	Daily Frequency = iota + 1
	Weekly
	Monthly
	Annual
	QuarterStart
)

var frequencyNames = map[Frequency]string{
	Daily:        "daily",
	Weekly:       "weekly",
	Monthly:      "monthly",
	Annual:       "annual",
	QuarterStart: "quarter_start",
}

// Aliases accepted by ParseFrequency besides the canonical names.
var frequencyAliases = map[string]Frequency{
	"d":         Daily,
	"day":       Daily,
	"w":         Weekly,
	"week":      Weekly,
	"m":         Monthly,
	"month":     Monthly,
	"a":         Annual,
	"y":         Annual,
	"yearly":    Annual,
	"year":      Annual,
	"qs":        QuarterStart,
	"quarterly": QuarterStart,
	"quarter":   QuarterStart,
}

// ParseFrequency parses a frequency name such as "weekly" or an alias such as "W" or "QS".
func ParseFrequency(s string) (Frequency, error) {
	key := strings.ToLower(strings.TrimSpace(s))
	for f, name := range frequencyNames {
		if name == key {
			return f, nil
		}
	}
	if f, ok := frequencyAliases[key]; ok {
		return f, nil
	}
	return 0, fmt.Errorf("%w: %q", ErrUnknownFrequency, s)
}

func (f Frequency) String() string {
	if name, ok := frequencyNames[f]; ok {
		return name
	}
	return fmt.Sprintf("Frequency(%d)", int(f))
}

// MarshalText implements encoding.TextMarshaler.
func (f Frequency) MarshalText() ([]byte, error) {
	if _, ok := frequencyNames[f]; !ok {
		return nil, fmt.Errorf("%w: %d", ErrUnknownFrequency, int(f))
	}
	return []byte(f.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (f *Frequency) UnmarshalText(text []byte) error {
	v, err := ParseFrequency(string(text))
	if err != nil {
		return err
	}
	*f = v
	return nil
}

// Start returns the first day of the period containing t, at midnight UTC.
// The calendar date is read in t's own location, so records carrying
// different UTC offsets still fall in the period their date names.
// Weeks start on Monday; quarters start in January, April, July and October.
func (f Frequency) Start(t time.Time) time.Time {
	y, m, d := t.Date()
	switch f {
	case Daily:
		return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
	case Weekly:
		offset := (int(t.Weekday()) + 6) % 7
		return time.Date(y, m, d-offset, 0, 0, 0, 0, time.UTC)
	case Monthly:
		return time.Date(y, m, 1, 0, 0, 0, 0, time.UTC)
	case Annual:
		return time.Date(y, time.January, 1, 0, 0, 0, 0, time.UTC)
	case QuarterStart:
		q := (int(m) - 1) / 3
		return time.Date(y, time.Month(q*3+1), 1, 0, 0, 0, 0, time.UTC)
	}
	return t
}

// Next returns the start of the period following the one starting at start.
func (f Frequency) Next(start time.Time) time.Time {
	switch f {
	case Daily:
		return start.AddDate(0, 0, 1)
	case Weekly:
		return start.AddDate(0, 0, 7)
	case Monthly:
		return start.AddDate(0, 1, 0)
	case Annual:
		return start.AddDate(1, 0, 0)
	case QuarterStart:
		return start.AddDate(0, 3, 0)
	}
	return start
}

// End returns the last calendar day of the period starting at start.
func (f Frequency) End(start time.Time) time.Time {
	return f.Next(start).AddDate(0, 0, -1)
}

// Aggregation selects how records inside one period collapse to one value.
type Aggregation int

const (
	// First keeps the earliest present value of each column.
	First Aggregation = iota + 1
	// Last keeps the latest present value of each column.
	Last
	// PctChange keeps the latest value, then takes the percent change
	// between consecutive periods.
	PctChange
)

var aggregationNames = map[Aggregation]string{
	First:     "first",
	Last:      "last",
	PctChange: "pct_change",
}

// ParseAggregation parses "first", "last" or "pct_change".
func ParseAggregation(s string) (Aggregation, error) {
	key := strings.ToLower(strings.TrimSpace(s))
	key = strings.ReplaceAll(key, "-", "_")
	for a, name := range aggregationNames {
		if name == key {
			return a, nil
		}
	}
	return 0, fmt.Errorf("%w: %q", ErrUnknownAggregation, s)
}

func (a Aggregation) String() string {
	if name, ok := aggregationNames[a]; ok {
		return name
	}
	return fmt.Sprintf("Aggregation(%d)", int(a))
}

// MarshalText implements encoding.TextMarshaler.
func (a Aggregation) MarshalText() ([]byte, error) {
	if _, ok := aggregationNames[a]; !ok {
		return nil, fmt.Errorf("%w: %d", ErrUnknownAggregation, int(a))
	}
	return []byte(a.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (a *Aggregation) UnmarshalText(text []byte) error {
	v, err := ParseAggregation(string(text))
	if err != nil {
		return err
	}
	*a = v
	return nil
}

// Label chooses which end of a period names it in the output index.
type Label int

const (
	// LabelStart stamps each period with its first day. This is the default.
	LabelStart Label = iota
	// LabelEnd stamps each period with its last day (Sunday for weeks,
	// month end, December 31, quarter end).
	LabelEnd
)

func (l Label) String() string {
	if l == LabelEnd {
		return "end"
	}
	return "start"
}

// MarshalText implements encoding.TextMarshaler.
func (l Label) MarshalText() ([]byte, error) {
	return []byte(l.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (l *Label) UnmarshalText(text []byte) error {
	switch strings.ToLower(strings.TrimSpace(string(text))) {
	case "", "start":
		*l = LabelStart
	case "end":
		*l = LabelEnd
	default:
		return fmt.Errorf("%w: %q", ErrUnknownLabel, string(text))
	}
	return nil
}

// Rule pairs a target frequency with an aggregation policy.
type Rule struct {
	Frequency   Frequency   `yaml:"frequency"`
	Aggregation Aggregation `yaml:"aggregation"`
	Label       Label       `yaml:"label,omitempty"`
}

// Validate reports whether the rule names a known frequency and aggregation.
func (r Rule) Validate() error {
	if _, ok := frequencyNames[r.Frequency]; !ok {
		return fmt.Errorf("%w: %d", ErrUnknownFrequency, int(r.Frequency))
	}
	if _, ok := aggregationNames[r.Aggregation]; !ok {
		return fmt.Errorf("%w: %d", ErrUnknownAggregation, int(r.Aggregation))
	}
	if r.Label != LabelStart && r.Label != LabelEnd {
		return fmt.Errorf("%w: %d", ErrUnknownLabel, int(r.Label))
	}
	return nil
}

func (r Rule) String() string {
	s := r.Frequency.String() + "/" + r.Aggregation.String()
	if r.Label == LabelEnd {
		s += "/end"
	}
	return s
}

// label returns the output timestamp for the period starting at start.
func (r Rule) label(start time.Time) time.Time {
	if r.Label == LabelEnd {
		return r.Frequency.End(start)
	}
	return start
}
