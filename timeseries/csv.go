package timeseries

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/guregu/null/v6"
)

// CSVOptions holds options for CSV loading.
type CSVOptions struct {
	DateColumn string   // Column holding the timestamps (default: "date")
	Columns    []string // Value columns to keep (default: every other column)
	DateFormat string   // Preferred date layout (default: "2006-01-02")
	Delimiter  rune     // Field delimiter (default: ',')
	Name       string   // Series name (default: file base name)
}

// DefaultCSVOptions returns default options for CSV loading.
func DefaultCSVOptions() *CSVOptions {
	return &CSVOptions{
		DateColumn: "date",
		DateFormat: "2006-01-02",
		Delimiter:  ',',
	}
}

// Layouts tried after CSVOptions.DateFormat, in order.
var dateLayouts = []string{
	"2006-01-02",
	"2006-01-02 15:04:05",
	"2006-01-02T15:04:05",
	time.RFC3339,
	"2006/01/02",
	"01/02/2006",
	"02-Jan-2006",
	"2006-01",
	"2006",
}

// Cells read as missing values.
var missingTokens = map[string]bool{
	"":     true,
	"NA":   true,
	"N/A":  true,
	"NaN":  true,
	"nan":  true,
	"null": true,
	".":    true,
}

// LoadCSV loads a series from a CSV file.
func LoadCSV(filename string, opts *CSVOptions) (*Series, error) {
	if opts == nil {
		opts = DefaultCSVOptions()
	}

	file, err := os.Open(filename)
	if err != nil {
		return nil, err
	}
	defer file.Close()

	o := *opts
	if o.Name == "" {
		o.Name = strings.TrimSuffix(filepath.Base(filename), filepath.Ext(filename))
	}
	s, err := LoadCSVFromReader(file, &o)
	var pe *ParseError
	if errors.As(err, &pe) && pe.Source == "" {
		pe.Source = filename
	}
	return s, err
}

// LoadCSVFromReader loads a series from an io.Reader.
// The first record is the header. Rows are sorted by timestamp.
func LoadCSVFromReader(r io.Reader, opts *CSVOptions) (*Series, error) {
	if opts == nil {
		opts = DefaultCSVOptions()
	}
	dateColumn := opts.DateColumn
	if dateColumn == "" {
		dateColumn = "date"
	}

	reader := csv.NewReader(r)
	if opts.Delimiter != 0 {
		reader.Comma = opts.Delimiter
	}
	reader.TrimLeadingSpace = true

	header, err := reader.Read()
	if err == io.EOF {
		return nil, &ParseError{Err: ErrNoData}
	}
	if err != nil {
		return nil, csvError(err)
	}
	for i := range header {
		header[i] = strings.TrimSpace(strings.TrimPrefix(header[i], "\ufeff"))
	}

	dateIdx := -1
	for i, h := range header {
		if h == dateColumn {
			dateIdx = i
			break
		}
	}
	if dateIdx == -1 {
		return nil, &ParseError{Line: 1, Column: dateColumn, Err: &MissingColumnError{Column: dateColumn, Available: header}}
	}

	valueIdx, err := valueColumns(header, dateIdx, opts.Columns)
	if err != nil {
		return nil, &ParseError{Line: 1, Err: err}
	}

	type row struct {
		ts    time.Time
		line  int
		cells []null.Float
	}
	var rows []row

	for {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, csvError(err)
		}
		line, _ := reader.FieldPos(0)

		dateStr := strings.TrimSpace(record[dateIdx])
		ts, err := parseDate(dateStr, opts.DateFormat)
		if err != nil {
			return nil, &ParseError{Line: line, Column: dateColumn, Value: dateStr, Err: err}
		}

		cells := make([]null.Float, len(valueIdx))
		for j, idx := range valueIdx {
			raw := strings.TrimSpace(record[idx])
			if missingTokens[raw] {
				continue
			}
			v, err := strconv.ParseFloat(raw, 64)
			if err != nil {
				return nil, &ParseError{Line: line, Column: header[idx], Value: raw, Err: errors.New("not a number")}
			}
			cells[j] = Value(v)
		}
		rows = append(rows, row{ts: ts, line: line, cells: cells})
	}

	if len(rows) == 0 {
		return nil, &ParseError{Err: ErrNoData}
	}

	sort.SliceStable(rows, func(a, b int) bool {
		return rows[a].ts.Before(rows[b].ts)
	})

	timestamps := make([]time.Time, len(rows))
	cols := make([]Column, len(valueIdx))
	for j, idx := range valueIdx {
		cols[j] = Column{Name: header[idx], Values: make([]null.Float, len(rows))}
	}
	for i, r := range rows {
		if i > 0 && r.ts.Equal(timestamps[i-1]) {
			return nil, &ParseError{Line: r.line, Column: dateColumn, Value: r.ts.Format(opts.dateLayout()),
				Err: errors.New("duplicate timestamp")}
		}
		timestamps[i] = r.ts
		for j := range cols {
			cols[j].Values[i] = r.cells[j]
		}
	}

	return New(opts.Name, timestamps, cols...)
}

// SaveCSV writes a series to a CSV file with the date column first.
// Missing cells are written as empty fields.
func SaveCSV(series *Series, filename string) error {
	file, err := os.Create(filename)
	if err != nil {
		return err
	}
	defer file.Close()

	if err := WriteCSV(file, series); err != nil {
		return err
	}
	return file.Close()
}

// WriteCSV writes a series as CSV to w.
func WriteCSV(w io.Writer, series *Series) error {
	writer := csv.NewWriter(w)

	header := append([]string{"date"}, series.ColumnNames()...)
	if err := writer.Write(header); err != nil {
		return err
	}

	record := make([]string, len(header))
	for i, ts := range series.Timestamps {
		record[0] = ts.Format("2006-01-02")
		for j, c := range series.Columns {
			record[j+1] = ""
			if v := c.Values[i]; v.Valid {
				record[j+1] = strconv.FormatFloat(v.Float64, 'f', -1, 64)
			}
		}
		if err := writer.Write(record); err != nil {
			return err
		}
	}

	writer.Flush()
	return writer.Error()
}

func (o *CSVOptions) dateLayout() string {
	if o.DateFormat != "" {
		return o.DateFormat
	}
	return "2006-01-02"
}

func valueColumns(header []string, dateIdx int, wanted []string) ([]int, error) {
	if len(wanted) == 0 {
		idx := make([]int, 0, len(header)-1)
		for i := range header {
			if i != dateIdx {
				idx = append(idx, i)
			}
		}
		if len(idx) == 0 {
			return nil, ErrNoColumns
		}
		return idx, nil
	}

	idx := make([]int, 0, len(wanted))
	for _, name := range wanted {
		found := -1
		for i, h := range header {
			if h == name && i != dateIdx {
				found = i
				break
			}
		}
		if found == -1 {
			return nil, &MissingColumnError{Column: name, Available: header}
		}
		idx = append(idx, found)
	}
	return idx, nil
}

func parseDate(s, preferred string) (time.Time, error) {
	if preferred != "" {
		if ts, err := time.Parse(preferred, s); err == nil {
			return ts, nil
		}
	}
	for _, layout := range dateLayouts {
		if ts, err := time.Parse(layout, s); err == nil {
			return ts, nil
		}
	}
	return time.Time{}, fmt.Errorf("unrecognized date")
}

func csvError(err error) error {
	var ce *csv.ParseError
	if errors.As(err, &ce) {
		return &ParseError{Line: ce.Line, Err: ce.Err}
	}
	return &ParseError{Err: err}
}
