// Package resample converts series between sampling frequencies.
//
// A Rule names the target Frequency, the Aggregation applied inside each
// period, and whether periods are stamped by their first or last day:
//
//	weekly, err := resample.Resample(djia, resample.Rule{
//	    Frequency:   resample.Weekly,
//	    Aggregation: resample.First,
//	})
//
//	// Quarterly returns: last value per quarter, then percent change
//	returns, err := resample.Resample(djia, resample.Rule{
//	    Frequency:   resample.QuarterStart,
//	    Aggregation: resample.PctChange,
//	})
//
// # Periods
//
//   - Daily: calendar days
//   - Weekly: Monday through Sunday
//   - Monthly: calendar months
//   - Annual: calendar years
//   - QuarterStart: quarters beginning in January, April, July and October
//
// Periods are labelled by their first day unless Rule.Label is LabelEnd, in
// which case the last day names them (Sunday, month end, December 31, quarter
// end). Both labellings bucket records identically.
//
// # Missing Values
//
// First and Last skip missing cells inside a period. A period with no present
// value yields a missing cell. PctChange leaves a cell missing when the
// previous period is missing or zero.
//
// Frequencies and aggregations parse from names and pandas-style aliases
// ("W", "M", "A", "QS"), and implement encoding.TextUnmarshaler so they can be
// read from YAML.
package resample
