package stats

import (
	"math"
)

// ADFResult represents the result of an Augmented Dickey-Fuller test.
type ADFResult struct {
	Statistic    float64
	PValue       float64
	Lags         int
	NObs         int
	IsStationary bool
}

// ADF performs the Augmented Dickey-Fuller unit root test on values with a
// constant term. The null hypothesis is a unit root; a p-value below 0.05
// rejects it. maxLag <= 0 selects floor((n-1)^(1/3)) lagged differences.
// Returns nil when there are too few observations or the regression is singular.
func ADF(values []float64, maxLag int) *ADFResult {
	n := len(values)
	if n < 10 {
		return nil
	}
	if maxLag <= 0 {
		maxLag = int(math.Floor(math.Pow(float64(n-1), 1.0/3.0)))
	}
	if maxLag >= n-1 {
		maxLag = n - 2
	}

	diff := make([]float64, n-1)
	for i := 1; i < n; i++ {
		diff[i-1] = values[i] - values[i-1]
	}

	nObs := n - maxLag - 1
	if nObs < 10 {
		return nil
	}

	// dy[t] = a + b*y[t] + sum(c_j * dy[t-j])
	y := make([]float64, nObs)
	x := make([][]float64, nObs)
	for i := 0; i < nObs; i++ {
		t := i + maxLag
		y[i] = diff[t]
		row := make([]float64, 2+maxLag)
		row[0] = 1
		row[1] = values[t]
		for j := 1; j <= maxLag; j++ {
			row[1+j] = diff[t-j]
		}
		x[i] = row
	}

	coeffs, se := olsRegression(x, y)
	if len(coeffs) < 2 || len(se) < 2 || se[1] == 0 {
		return nil
	}

	stat := coeffs[1] / se[1]
	p := adfPValue(stat)
	return &ADFResult{
		Statistic:    stat,
		PValue:       p,
		Lags:         maxLag,
		NObs:         nObs,
		IsStationary: p < 0.05,
	}
}

// KPSSResult represents the result of a KPSS level stationarity test.
type KPSSResult struct {
	Statistic    float64
	PValue       float64
	Lags         int
	IsStationary bool
}

// KPSS performs the Kwiatkowski-Phillips-Schmidt-Shin test for level
// stationarity. The null hypothesis is stationarity, so a p-value below 0.05
// rejects it. nlags <= 0 selects ceil(12*(n/100)^(1/4)) Newey-West lags.
func KPSS(values []float64, nlags int) *KPSSResult {
	n := len(values)
	if n < 10 {
		return nil
	}
	if nlags <= 0 {
		nlags = int(math.Ceil(12 * math.Pow(float64(n)/100, 0.25)))
	}
	if nlags >= n {
		nlags = n - 1
	}

	resid := demean(values)

	// long-run variance with Bartlett weights
	s2 := 0.0
	for _, r := range resid {
		s2 += r * r
	}
	s2 /= float64(n)
	for l := 1; l <= nlags; l++ {
		cov := 0.0
		for i := l; i < n; i++ {
			cov += resid[i] * resid[i-l]
		}
		cov /= float64(n)
		s2 += 2 * (1 - float64(l)/float64(nlags+1)) * cov
	}
	if s2 <= 0 {
		return nil
	}

	eta, cum := 0.0, 0.0
	for _, r := range resid {
		cum += r
		eta += cum * cum
	}
	stat := eta / (float64(n) * float64(n) * s2)

	p := kpssPValue(stat)
	return &KPSSResult{
		Statistic:    stat,
		PValue:       p,
		Lags:         nlags,
		IsStationary: p >= 0.05,
	}
}

// olsRegression fits y on x by ordinary least squares and returns the
// coefficients with their standard errors.
func olsRegression(x [][]float64, y []float64) (coeffs, stdErrors []float64) {
	n := len(y)
	if n == 0 || len(x) != n {
		return nil, nil
	}
	k := len(x[0])

	xtx := make([][]float64, k)
	for i := range xtx {
		xtx[i] = make([]float64, k)
	}
	xty := make([]float64, k)
	for i := 0; i < n; i++ {
		for j := 0; j < k; j++ {
			xty[j] += x[i][j] * y[i]
			for l := 0; l < k; l++ {
				xtx[j][l] += x[i][j] * x[i][l]
			}
		}
	}

	inv := invertMatrix(xtx)
	if inv == nil {
		return nil, nil
	}

	coeffs = make([]float64, k)
	for i := 0; i < k; i++ {
		for j := 0; j < k; j++ {
			coeffs[i] += inv[i][j] * xty[j]
		}
	}
	if n <= k {
		return coeffs, nil
	}

	sse := 0.0
	for i := 0; i < n; i++ {
		pred := 0.0
		for j := 0; j < k; j++ {
			pred += coeffs[j] * x[i][j]
		}
		r := y[i] - pred
		sse += r * r
	}
	s2 := sse / float64(n-k)
	stdErrors = make([]float64, k)
	for i := 0; i < k; i++ {
		stdErrors[i] = math.Sqrt(s2 * inv[i][i])
	}
	return coeffs, stdErrors
}

// invertMatrix inverts a square matrix by Gauss-Jordan elimination with
// partial pivoting. Returns nil for a singular matrix.
func invertMatrix(m [][]float64) [][]float64 {
	n := len(m)
	if n == 0 {
		return nil
	}

	aug := make([][]float64, n)
	for i := range aug {
		aug[i] = make([]float64, 2*n)
		copy(aug[i][:n], m[i])
		aug[i][n+i] = 1
	}

	for i := 0; i < n; i++ {
		pivot := i
		for k := i + 1; k < n; k++ {
			if math.Abs(aug[k][i]) > math.Abs(aug[pivot][i]) {
				pivot = k
			}
		}
		aug[i], aug[pivot] = aug[pivot], aug[i]
		if math.Abs(aug[i][i]) < 1e-10 {
			return nil
		}

		p := aug[i][i]
		for j := range aug[i] {
			aug[i][j] /= p
		}
		for k := 0; k < n; k++ {
			if k == i {
				continue
			}
			f := aug[k][i]
			for j := range aug[k] {
				aug[k][j] -= f * aug[i][j]
			}
		}
	}

	out := make([][]float64, n)
	for i := range out {
		out[i] = append([]float64(nil), aug[i][n:]...)
	}
	return out
}

// adfPValue maps an ADF statistic (constant, no trend) to an approximate
// p-value from the asymptotic MacKinnon critical values.
func adfPValue(stat float64) float64 {
	switch {
	case stat < -3.96:
		return 0.001
	case stat < -3.43:
		return 0.01
	case stat < -2.86:
		return 0.05
	case stat < -2.57:
		return 0.10
	case stat < -1.94:
		return 0.25
	case stat < -1.62:
		return 0.50
	default:
		return math.Min(0.5+(stat+1.62)*0.25, 0.99)
	}
}

// kpssPValue maps a level KPSS statistic to an approximate p-value.
// Critical values: 10% 0.347, 5% 0.463, 1% 0.739.
func kpssPValue(stat float64) float64 {
	switch {
	case stat > 0.739:
		return 0.01
	case stat > 0.463:
		return 0.05
	case stat > 0.347:
		return 0.10
	default:
		return 0.10 + (0.347-stat)*0.5
	}
}
