package stats

import (
	"errors"
	"math"

	"github.com/sartorproj/econseries/timeseries"
)

// ErrTooShort is returned when a column has too few present values to correlate.
var ErrTooShort = errors.New("not enough observations for autocorrelation")

// ErrConstant is returned when a column has zero variance.
var ErrConstant = errors.New("constant series has no autocorrelation")

// z-value of the two-sided 95% interval.
const z95 = 1.959963984540054

// ACF calculates the Autocorrelation Function of values.
// Returns ACF values for lags 0 to maxLag, or nil if values are constant.
func ACF(values []float64, maxLag int) []float64 {
	n := len(values)
	if maxLag >= n {
		maxLag = n - 1
	}
	if maxLag < 0 {
		return nil
	}

	mean := 0.0
	for _, v := range values {
		mean += v
	}
	mean /= float64(n)

	variance := 0.0
	for _, v := range values {
		diff := v - mean
		variance += diff * diff
	}

	if variance == 0 {
		return nil
	}

	acf := make([]float64, maxLag+1)
	for k := 0; k <= maxLag; k++ {
		sum := 0.0
		for i := k; i < n; i++ {
			sum += (values[i] - mean) * (values[i-k] - mean)
		}
		acf[k] = sum / variance
	}

	return acf
}

// BartlettBands returns the half-width of the 95% confidence interval for
// each ACF lag under Bartlett's formula: the band widens with the
// accumulated squared autocorrelation of lower lags. Lag 0 has width 0.
func BartlettBands(acf []float64, n int) []float64 {
	bands := make([]float64, len(acf))
	if n == 0 {
		return bands
	}
	cum := 0.0
	for k := 1; k < len(acf); k++ {
		if k > 1 {
			cum += acf[k-1] * acf[k-1]
		}
		bands[k] = z95 * math.Sqrt((1+2*cum)/float64(n))
	}
	return bands
}

// ACFResult represents the result of ACF analysis of one column.
type ACFResult struct {
	Column     string
	N          int // present observations used
	Dropped    int // missing cells skipped
	Lags       []int
	Values     []float64
	Bands      []float64 // Bartlett 95% half-widths per lag
	ConfBounds float64   // white-noise 95% bound (1.96/sqrt(n))
	LjungBox   *LjungBoxResult
	DW         *DurbinWatsonResult
	ADF        *ADFResult
	KPSS       *KPSSResult
}

// Correlogram computes the ACF of a column up to maxLag together with its
// confidence bands, portmanteau and stationarity diagnostics. Missing cells
// are dropped before correlating. Diagnostics that need more observations
// than available are left nil.
func Correlogram(series *timeseries.Series, column string, maxLag int) (*ACFResult, error) {
	c, err := series.Column(column)
	if err != nil {
		return nil, err
	}
	values := c.Valid()
	if len(values) < 2 {
		return nil, ErrTooShort
	}

	acf := ACF(values, maxLag)
	if acf == nil {
		return nil, ErrConstant
	}

	lags := make([]int, len(acf))
	for i := range lags {
		lags[i] = i
	}

	n := len(values)
	return &ACFResult{
		Column:     column,
		N:          n,
		Dropped:    c.Len() - n,
		Lags:       lags,
		Values:     acf,
		Bands:      BartlettBands(acf, n),
		ConfBounds: z95 / math.Sqrt(float64(n)),
		LjungBox:   LjungBox(values, len(acf)-1, 0),
		DW:         DurbinWatson(demean(values)),
		ADF:        ADF(values, 0),
		KPSS:       KPSS(values, 0),
	}, nil
}

// SignificantLags returns the lags where ACF values exceed confidence bounds.
func SignificantLags(values []float64, confBound float64) []int {
	var significant []int
	for i := 1; i < len(values); i++ { // Skip lag 0
		if math.Abs(values[i]) > confBound {
			significant = append(significant, i)
		}
	}
	return significant
}

// Significant returns the lags whose ACF value lies outside its Bartlett band.
func (r *ACFResult) Significant() []int {
	var lags []int
	for k := 1; k < len(r.Values); k++ {
		if math.Abs(r.Values[k]) > r.Bands[k] {
			lags = append(lags, k)
		}
	}
	return lags
}

func demean(values []float64) []float64 {
	mean := 0.0
	for _, v := range values {
		mean += v
	}
	mean /= float64(len(values))
	out := make([]float64, len(values))
	for i, v := range values {
		out[i] = v - mean
	}
	return out
}
