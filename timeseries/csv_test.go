package timeseries

import (
	"bytes"
	"errors"
	"math"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadCSVFromReader(t *testing.T) {
	csvData := `date,value
2020-01-01,100
2020-01-02,101
2020-01-03,102
2020-01-04,103
2020-01-05,104`

	series, err := LoadCSVFromReader(strings.NewReader(csvData), nil)
	require.NoError(t, err)

	assert.Equal(t, 5, series.Len())
	assert.Equal(t, []string{"value"}, series.ColumnNames())
	assert.Equal(t, []float64{100, 101, 102, 103, 104}, series.Columns[0].Valid())
	assert.Equal(t, time.Date(2020, 1, 1, 0, 0, 0, 0, time.UTC), series.Start())
	assert.Equal(t, time.Date(2020, 1, 5, 0, 0, 0, 0, time.UTC), series.End())
}

func TestLoadCSVWithNAValues(t *testing.T) {
	csvData := `date,value
2020-01-01,100
2020-01-02,NA
2020-01-03,102
2020-01-04,NaN
2020-01-05,`

	series, err := LoadCSVFromReader(strings.NewReader(csvData), nil)
	require.NoError(t, err)

	// rows are kept, cells are missing
	assert.Equal(t, 5, series.Len())
	c := series.Columns[0]
	assert.Equal(t, 2, c.Count())
	assert.False(t, c.Values[1].Valid)
	assert.False(t, c.Values[3].Valid)
	assert.False(t, c.Values[4].Valid)
}

func TestLoadCSVMultipleColumns(t *testing.T) {
	csvData := `Beer,date,Cement,Gas
100,2020-01-01,200,50
110,2020-01-02,210,55
120,2020-01-03,220,60`

	series, err := LoadCSVFromReader(strings.NewReader(csvData), nil)
	require.NoError(t, err)
	assert.Equal(t, []string{"Beer", "Cement", "Gas"}, series.ColumnNames())

	opts := DefaultCSVOptions()
	opts.Columns = []string{"Cement"}
	series, err = LoadCSVFromReader(strings.NewReader(csvData), opts)
	require.NoError(t, err)
	assert.Equal(t, []string{"Cement"}, series.ColumnNames())
	assert.Equal(t, []float64{200, 210, 220}, series.Columns[0].Valid())
}

func TestLoadCSVQuotedFields(t *testing.T) {
	csvData := `"date","close"
"2020-01-01","1000000"
"2020-01-02","1000100"
"2020-01-03","1000200"`

	series, err := LoadCSVFromReader(strings.NewReader(csvData), nil)
	require.NoError(t, err)
	assert.Equal(t, 3, series.Len())
	assert.Equal(t, 1000100.0, series.Columns[0].Values[1].Float64)
}

func TestLoadCSVSortsRows(t *testing.T) {
	csvData := `date,value
2020-01-03,3
2020-01-01,1
2020-01-02,2`

	series, err := LoadCSVFromReader(strings.NewReader(csvData), nil)
	require.NoError(t, err)
	assert.Equal(t, []float64{1, 2, 3}, series.Columns[0].Valid())
	for i := 1; i < series.Len(); i++ {
		assert.True(t, series.Timestamps[i].After(series.Timestamps[i-1]))
	}
}

func TestLoadCSVDateFormats(t *testing.T) {
	testCases := []struct {
		name    string
		csvData string
	}{
		{"ISO format", "date,y\n2020-01-01,100\n2020-01-02,101"},
		{"Year only", "date,y\n2020,100\n2021,101"},
		{"Year month", "date,y\n2020-01,100\n2020-02,101"},
		{"US format", "date,y\n01/31/2020,100\n02/29/2020,101"},
		{"Timestamp", "date,y\n2020-01-01 09:30:00,100\n2020-01-01 16:00:00,101"},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			series, err := LoadCSVFromReader(strings.NewReader(tc.csvData), nil)
			require.NoError(t, err)
			assert.Equal(t, 2, series.Len())
		})
	}
}

func TestLoadCSVCustomDateColumn(t *testing.T) {
	opts := DefaultCSVOptions()
	opts.DateColumn = "DATE"
	opts.Delimiter = ';'

	series, err := LoadCSVFromReader(strings.NewReader("DATE;djia\n2020-01-02;28868.8\n2020-01-03;28634.88"), opts)
	require.NoError(t, err)
	assert.Equal(t, []string{"djia"}, series.ColumnNames())
}

func TestLoadCSVErrors(t *testing.T) {
	tests := []struct {
		name    string
		csvData string
		line    int
	}{
		{"missing date column", "day,value\n2020-01-01,1", 1},
		{"bad date", "date,value\n2020-01-01,1\nyesterday,2", 3},
		{"bad number", "date,value\n2020-01-01,1\n2020-01-02,abc", 3},
		{"ragged row", "date,value\n2020-01-01,1,7", 2},
		{"duplicate date", "date,value\n2020-01-01,1\n2020-01-01,2", 3},
		{"header only", "date,value\n", 0},
		{"empty", "", 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := LoadCSVFromReader(strings.NewReader(tt.csvData), nil)
			var pe *ParseError
			require.ErrorAs(t, err, &pe)
			assert.Equal(t, tt.line, pe.Line)
		})
	}
}

func TestLoadCSVMissingDateColumnIsMissingColumn(t *testing.T) {
	_, err := LoadCSVFromReader(strings.NewReader("day,value\n2020-01-01,1"), nil)

	var mce *MissingColumnError
	require.True(t, errors.As(err, &mce))
	assert.Equal(t, "date", mce.Column)
	assert.Equal(t, []string{"day", "value"}, mce.Available)
}

func TestLoadCSVMissingValueColumn(t *testing.T) {
	opts := DefaultCSVOptions()
	opts.Columns = []string{"close"}

	_, err := LoadCSVFromReader(strings.NewReader("date,open\n2020-01-01,1"), opts)
	var mce *MissingColumnError
	assert.ErrorAs(t, err, &mce)
}

func TestLoadCSVFileIsDeterministic(t *testing.T) {
	path := filepath.Join(t.TempDir(), "gdp_growth.csv")
	require.NoError(t, os.WriteFile(path, []byte("date,gdp_growth\n1966-01-01,10.1\n1966-04-01,\n1966-07-01,2.8\n"), 0o644))

	first, err := LoadCSV(path, nil)
	require.NoError(t, err)
	second, err := LoadCSV(path, nil)
	require.NoError(t, err)

	assert.Equal(t, "gdp_growth", first.Name)
	assert.True(t, first.Equal(second))
}

func TestLoadCSVFileParseErrorNamesSource(t *testing.T) {
	path := filepath.Join(t.TempDir(), "djia.csv")
	require.NoError(t, os.WriteFile(path, []byte("date,djia\nnope,1\n"), 0o644))

	_, err := LoadCSV(path, nil)
	var pe *ParseError
	require.ErrorAs(t, err, &pe)
	assert.Equal(t, path, pe.Source)
	assert.Contains(t, err.Error(), "line 2")
}

func TestWriteCSVRoundTrip(t *testing.T) {
	csvData := "date,value\n2020-01-01,1.5\n2020-01-02,\n2020-01-03,3\n"
	series, err := LoadCSVFromReader(strings.NewReader(csvData), nil)
	require.NoError(t, err)

	var buf bytes.Buffer
	require.NoError(t, WriteCSV(&buf, series))
	assert.Equal(t, csvData, buf.String())
}

func TestSaveCSV(t *testing.T) {
	ts := days(jan1, 3)
	s, err := New("prices", ts,
		Column{Name: "open", Values: cells(1, 2, 3)},
		Column{Name: "close", Values: cells(1.5, math.NaN(), 3.5)},
	)
	require.NoError(t, err)

	path := filepath.Join(t.TempDir(), "prices.csv")
	require.NoError(t, SaveCSV(s, path))

	opts := DefaultCSVOptions()
	opts.Columns = []string{"close"}
	closes, err := LoadCSV(path, opts)
	require.NoError(t, err)
	assert.Equal(t, []string{"close"}, closes.ColumnNames())
	assert.Equal(t, ts, closes.Timestamps)
	assert.Equal(t, []float64{1.5, 3.5}, closes.Columns[0].Valid())
	assert.False(t, closes.Columns[0].Values[1].Valid)
}
