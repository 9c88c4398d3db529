package timeseries

import (
	"errors"
	"fmt"
	"sort"
	"time"

	"github.com/guregu/null/v6"
)

// ErrNothingToAlign is returned when Align is called without input series.
var ErrNothingToAlign = errors.New("align needs at least one series")

// Align outer-joins series on their timestamps. The result index is the
// sorted union of every input index; each input column becomes an output
// column holding its values where the input has that timestamp and missing
// cells elsewhere. Frequencies are not reconciled: resample first when the
// inputs sit on different grids.
//
// labels, when non-empty, renames the output columns in order and must have
// one entry per input column.
func Align(name string, labels []string, series ...*Series) (*Series, error) {
	if len(series) == 0 {
		return nil, ErrNothingToAlign
	}

	width := 0
	for _, s := range series {
		width += s.Width()
	}
	if len(labels) > 0 && len(labels) != width {
		return nil, fmt.Errorf("align: %d labels for %d columns", len(labels), width)
	}

	index := unionIndex(series)
	pos := make(map[time.Time]int, len(index))
	for i, ts := range index {
		pos[instant(ts)] = i
	}

	cols := make([]Column, 0, width)
	for _, s := range series {
		for _, c := range s.Columns {
			values := make([]null.Float, len(index))
			for i, ts := range s.Timestamps {
				values[pos[instant(ts)]] = c.Values[i]
			}
			label := c.Name
			if len(labels) > 0 {
				label = labels[len(cols)]
			}
			cols = append(cols, Column{Name: label, Values: values})
		}
	}

	return New(name, index, cols...)
}

func unionIndex(series []*Series) []time.Time {
	seen := make(map[time.Time]bool)
	var index []time.Time
	for _, s := range series {
		for _, ts := range s.Timestamps {
			key := instant(ts)
			if seen[key] {
				continue
			}
			seen[key] = true
			index = append(index, ts)
		}
	}
	sort.Slice(index, func(i, j int) bool {
		return index[i].Before(index[j])
	})
	return index
}

// instant returns a map key identifying the moment ts denotes, whatever its
// location, over the full range of time.Time.
func instant(ts time.Time) time.Time {
	return ts.Round(0).UTC()
}
