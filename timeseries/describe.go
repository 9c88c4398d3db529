package timeseries

import (
	"fmt"
	"io"
	"strconv"
	"strings"
	"text/tabwriter"

	"github.com/dustin/go-humanize"
)

// ColumnSummary holds descriptive statistics of one column.
type ColumnSummary struct {
	Name    string
	NonNull int
	Mean    float64
	Std     float64
	Min     float64
	Median  float64
	Max     float64
}

// Summary describes a series: its extent and per-column statistics.
type Summary struct {
	Name    string
	Entries int
	Start   string
	End     string
	Columns []ColumnSummary
}

// Describe summarizes the series. Statistics skip missing cells.
func (s *Series) Describe() *Summary {
	sum := &Summary{
		Name:    s.Name,
		Entries: s.Len(),
		Columns: make([]ColumnSummary, len(s.Columns)),
	}
	if s.Len() > 0 {
		sum.Start = s.Start().Format("2006-01-02")
		sum.End = s.End().Format("2006-01-02")
	}
	for i := range s.Columns {
		c := &s.Columns[i]
		sum.Columns[i] = ColumnSummary{
			Name:    c.Name,
			NonNull: c.Count(),
			Mean:    c.Mean(),
			Std:     c.Std(),
			Min:     c.Min(),
			Median:  c.Median(),
			Max:     c.Max(),
		}
	}
	return sum
}

// String renders the summary as an aligned text table.
func (sum *Summary) String() string {
	var b strings.Builder
	sum.WriteTo(&b)
	return b.String()
}

// WriteTo writes the summary as an aligned text table.
func (sum *Summary) WriteTo(w io.Writer) (int64, error) {
	var b strings.Builder
	fmt.Fprintf(&b, "%s: %s entries", sum.Name, humanize.Comma(int64(sum.Entries)))
	if sum.Entries > 0 {
		fmt.Fprintf(&b, ", %s to %s", sum.Start, sum.End)
	}
	b.WriteString("\n")

	tw := tabwriter.NewWriter(&b, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "column\tnon-null\tmean\tstd\tmin\tmedian\tmax")
	for _, c := range sum.Columns {
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\t%s\t%s\n",
			c.Name, humanize.Comma(int64(c.NonNull)),
			formatStat(c.Mean), formatStat(c.Std), formatStat(c.Min), formatStat(c.Median), formatStat(c.Max))
	}
	tw.Flush()

	n, err := io.WriteString(w, b.String())
	return int64(n), err
}

// Table renders the rows of the series as an aligned text table,
// with missing cells shown as NaN.
func (s *Series) Table() string {
	var b strings.Builder
	tw := tabwriter.NewWriter(&b, 0, 0, 2, ' ', tabwriter.AlignRight)
	fmt.Fprintf(tw, "date\t%s\t\n", strings.Join(s.ColumnNames(), "\t"))
	for i, ts := range s.Timestamps {
		fields := make([]string, len(s.Columns))
		for j, c := range s.Columns {
			fields[j] = "NaN"
			if v := c.Values[i]; v.Valid {
				fields[j] = strconv.FormatFloat(v.Float64, 'f', -1, 64)
			}
		}
		fmt.Fprintf(tw, "%s\t%s\t\n", ts.Format("2006-01-02"), strings.Join(fields, "\t"))
	}
	tw.Flush()
	return b.String()
}

func formatStat(v float64) string {
	return strconv.FormatFloat(v, 'f', 4, 64)
}
