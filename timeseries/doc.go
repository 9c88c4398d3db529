// Package timeseries provides time-indexed tables and the operations that
// build and combine them.
//
// A Series carries a strictly increasing timestamp index and one or more
// named columns. Every cell is a null.Float, so a missing observation is an
// explicit absent value rather than a NaN that arithmetic silently carries.
//
// # Creating a Series
//
// Build a series from explicit cells or plain floats:
//
//	s, err := timeseries.New("gdp", timestamps,
//	    timeseries.Column{Name: "growth", Values: cells})
//
//	s, err := timeseries.FromValues("djia", "close", timestamps, closes)
//
// New validates the index order, column lengths and column names.
//
// # Loading from CSV
//
// The date column (default "date") becomes the index, every other column is
// parsed as a number:
//
//	series, err := timeseries.LoadCSV("gdp_growth.csv", nil)
//
//	// Pick columns and a date column name
//	opts := timeseries.DefaultCSVOptions()
//	opts.DateColumn = "ds"
//	opts.Columns = []string{"close"}
//	series, err := timeseries.LoadCSV("djia.csv", opts)
//
// A malformed or missing date, a malformed number or a broken CSV record is
// reported as *ParseError. A missing date column is a *ParseError wrapping a
// *MissingColumnError, so errors.As matches both.
//
// # Derived Series
//
// Period-over-period growth in percent:
//
//	returns := quarterly.PctChange()
//
// The first cell, and any cell with a missing or zero baseline, is missing.
//
// # Alignment
//
// Outer-join series on their timestamps and label the columns:
//
//	data, err := timeseries.Align("gdp_vs_djia",
//	    []string{"GDP growth", "DJIA quarterly return"}, gdp, returns)
//
// # Summaries
//
// Describe reports entries, date range and column statistics, skipping
// missing cells:
//
//	fmt.Print(series.Describe())
//	fmt.Print(series.Head(10).Table())
package timeseries
