package timeseries

import (
	"github.com/guregu/null/v6"
)

// PercentChange returns the period-over-period growth of values in percent:
// 100 * (v[t] - v[t-1]) / v[t-1].
// The first cell is missing, as is any cell whose own value or baseline is
// missing, and any cell with a zero baseline.
func PercentChange(values []null.Float) []null.Float {
	out := make([]null.Float, len(values))
	for t := 1; t < len(values); t++ {
		prev, cur := values[t-1], values[t]
		if !prev.Valid || !cur.Valid || prev.Float64 == 0 {
			continue
		}
		out[t] = Value(100 * (cur.Float64 - prev.Float64) / prev.Float64)
	}
	return out
}

// PctChange applies PercentChange to every column of the series.
// The index is kept, so the result has the same length as s.
func (s *Series) PctChange() *Series {
	cols := make([]Column, len(s.Columns))
	for i, c := range s.Columns {
		cols[i] = Column{Name: c.Name, Values: PercentChange(c.Values)}
	}
	return &Series{
		Name:       s.Name + "_pct_change",
		Timestamps: copyTimes(s.Timestamps),
		Columns:    cols,
	}
}
