// Package econseries loads, resamples, aligns and charts economic time series.
//
// The module is organized as a small pipeline:
//
//   - timeseries: the Series type with per-cell optional values, CSV loading,
//     percent change, outer-join alignment and summaries
//   - resample: frequency conversion (daily, weekly, monthly, annual,
//     quarter start) with first, last or percent-change aggregation
//   - stats: autocorrelation with Bartlett bands, Ljung-Box, Durbin-Watson,
//     ADF and KPSS diagnostics
//   - chart: line charts, correlograms and safe file naming
//   - pipeline: a plan of steps run over named datasets
//
// # Quick Start
//
//	djia, err := timeseries.LoadCSV("djia.csv", nil)
//	if err != nil {
//	    return err
//	}
//
//	returns, err := resample.Resample(djia, resample.Rule{
//	    Frequency:   resample.QuarterStart,
//	    Aggregation: resample.PctChange,
//	})
//
//	gdp, err := timeseries.LoadCSV("gdp_growth.csv", nil)
//	aligned, err := timeseries.Align("quarterly",
//	    []string{"GDP Growth", "DJIA Quarterly Returns"}, gdp, returns)
//
//	path, err := chart.SaveLines("out", aligned,
//	    chart.DefaultOptions("DJIA Quarterly Returns and GDP Growth"))
//
// The econseries command runs the same steps from a built-in plan or a YAML
// plan file; see the pipeline package.
package econseries
