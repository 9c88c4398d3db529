// Package stats provides autocorrelation analysis for time series.
//
// # Autocorrelation Function
//
// ACF works on plain values; Correlogram works on a series column, dropping
// missing cells first:
//
//	acf := stats.ACF(values, 20)
//
//	result, err := stats.Correlogram(gdp, "growth", 20)
//	// result.Values, result.Bands, result.Significant()
//
// # Confidence Bands
//
// Correlogram reports two bounds. ConfBounds is the white-noise bound
// 1.96/sqrt(n). Bands holds Bartlett's per-lag half-widths, which grow with
// the squared autocorrelation of lower lags and are the bands drawn on the
// correlogram chart.
//
//	significant := stats.SignificantLags(result.Values, result.ConfBounds)
//
// # Portmanteau Diagnostics
//
//	// Ljung-Box test: H0 is no autocorrelation up to the given lag
//	lb := stats.LjungBox(values, 20, 0)
//
//	// Durbin-Watson statistic for first-order autocorrelation
//	dw := stats.DurbinWatson(residuals)
//
// # Stationarity
//
// ADF tests for a unit root, KPSS for level stationarity. They answer
// opposite null hypotheses and are reported side by side:
//
//	adf := stats.ADF(values, 0)   // IsStationary when H0 (unit root) is rejected
//	kpss := stats.KPSS(values, 0) // IsStationary when H0 (stationary) holds
package stats
