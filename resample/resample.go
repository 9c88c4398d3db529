package resample

import (
	"time"

	"github.com/guregu/null/v6"

	"github.com/sartorproj/econseries/timeseries"
)

// Resample converts series to the rule's frequency.
//
// Records are bucketed into periods; the output index covers every period
// from the one holding the first record to the one holding the last, so it is
// uniformly spaced. A period without a present value for a column yields a
// missing cell. Nothing is interpolated. Output timestamps are midnight UTC
// on the period's first (or, with LabelEnd, last) calendar day.
//
// With First or Last, applying the same rule to its own output returns an
// equal series.
func Resample(series *timeseries.Series, rule Rule) (*timeseries.Series, error) {
	if err := rule.Validate(); err != nil {
		return nil, err
	}

	starts := grid(series, rule.Frequency)
	pos := make(map[time.Time]int, len(starts))
	for i, start := range starts {
		pos[start] = i
	}

	// bucket[i] is the period index of record i
	bucket := make([]int, series.Len())
	for i, ts := range series.Timestamps {
		bucket[i] = pos[rule.Frequency.Start(ts)]
	}

	cols := make([]timeseries.Column, len(series.Columns))
	for j, c := range series.Columns {
		values := make([]null.Float, len(starts))
		for i, v := range c.Values {
			if !v.Valid {
				continue
			}
			b := bucket[i]
			switch rule.Aggregation {
			case First:
				if !values[b].Valid {
					values[b] = v
				}
			case Last, PctChange:
				values[b] = v
			}
		}
		if rule.Aggregation == PctChange {
			values = timeseries.PercentChange(values)
		}
		cols[j] = timeseries.Column{Name: c.Name, Values: values}
	}

	index := make([]time.Time, len(starts))
	for i, start := range starts {
		index[i] = rule.label(start)
	}

	return timeseries.New(series.Name, index, cols...)
}

// AsFreq conforms series to freq using the first value of each period.
// With Daily this yields one row per calendar day between the first and last
// record, gaps left missing.
func AsFreq(series *timeseries.Series, freq Frequency) (*timeseries.Series, error) {
	return Resample(series, Rule{Frequency: freq, Aggregation: First})
}

// grid returns the start of every period spanned by series. Period starts
// come from calendar dates, which need not follow instant order when offsets
// differ, so the bounds are the earliest and latest start of any record.
func grid(series *timeseries.Series, freq Frequency) []time.Time {
	if series.Len() == 0 {
		return nil
	}
	first := freq.Start(series.Timestamps[0])
	last := first
	for _, ts := range series.Timestamps[1:] {
		start := freq.Start(ts)
		if start.Before(first) {
			first = start
		}
		if start.After(last) {
			last = start
		}
	}

	var starts []time.Time
	for t := first; !t.After(last); t = freq.Next(t) {
		starts = append(starts, t)
	}
	return starts
}
