// Package stats holds the descriptive statistics computed over listing columns.
//
// Every function returns Undefined (0) instead of an error or NaN when the
// result has no meaning for the input: empty data, a single observation for
// a spread, mismatched lengths, or a zero-variance column in a correlation.
// Inputs are never modified.
package stats

import (
	"math"
	"sort"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"
)

// Undefined is the sentinel returned when a statistic cannot be computed.
const Undefined = 0.0

// Mean returns the arithmetic mean of data, or Undefined for empty input.
func Mean(data []float64) float64 {
	if len(data) == 0 {
		return Undefined
	}
	return floats.Sum(data) / float64(len(data))
}

// StdDev returns the population standard deviation (divides by N).
// Fewer than two values yield Undefined.
func StdDev(data []float64) float64 {
	if len(data) < 2 {
		return Undefined
	}
	_, std := stat.PopMeanStdDev(data, nil)
	return std
}

// Pearson returns the product-moment correlation of x and y. Mismatched or
// empty inputs and zero-variance columns yield Undefined.
func Pearson(x, y []float64) float64 {
	if len(x) == 0 || len(x) != len(y) {
		return Undefined
	}
	mx, my := Mean(x), Mean(y)
	var sxy, sxx, syy float64
	for i := range x {
		dx := x[i] - mx
		dy := y[i] - my
		sxy += dx * dy
		sxx += dx * dx
		syy += dy * dy
	}
	if sxx == 0 || syy == 0 {
		return Undefined
	}
	// take roots before multiplying; sxx*syy overflows near 1e160 each
	den := math.Sqrt(sxx) * math.Sqrt(syy)
	if den == 0 || math.IsInf(den, 0) {
		return Undefined
	}
	r := sxy / den
	if math.IsNaN(r) {
		return Undefined
	}
	// rounding can push |r| a hair past 1
	return math.Max(-1, math.Min(1, r))
}

// Summary describes a single column.
type Summary struct {
	Count  int     `json:"count" yaml:"count"`
	Min    float64 `json:"min" yaml:"min"`
	Max    float64 `json:"max" yaml:"max"`
	Mean   float64 `json:"mean" yaml:"mean"`
	StdDev float64 `json:"std_dev" yaml:"std_dev"`
}

// Summarize computes count, range, mean and population standard deviation.
func Summarize(data []float64) Summary {
	s := Summary{Count: len(data), Mean: Mean(data), StdDev: StdDev(data)}
	if len(data) > 0 {
		s.Min = floats.Min(data)
		s.Max = floats.Max(data)
	}
	return s
}

// LinearFit returns the least-squares slope and intercept of y on x.
// Inputs Pearson would reject, or a constant x, yield Undefined for both.
func LinearFit(x, y []float64) (slope, intercept float64) {
	if len(x) < 2 || len(x) != len(y) || StdDev(x) == 0 {
		return Undefined, Undefined
	}
	alpha, beta := stat.LinearRegression(x, y, nil, false)
	return beta, alpha
}

// Matrix is a symmetric correlation matrix over named columns.
type Matrix struct {
	Columns []string    `json:"columns" yaml:"columns"`
	Values  [][]float64 `json:"values" yaml:"values"` // row-major, Values[i][j]
}

// Pair is one off-diagonal entry of a Matrix.
type Pair struct {
	A string  `json:"a" yaml:"a"`
	B string  `json:"b" yaml:"b"`
	R float64 `json:"r" yaml:"r"`
}

// Correlations builds the pairwise Pearson matrix for cols, which must align
// with names. The diagonal is 1 for columns with variance and Undefined otherwise.
func Correlations(names []string, cols [][]float64) Matrix {
	n := len(cols)
	m := Matrix{Columns: append([]string(nil), names...), Values: make([][]float64, n)}
	for i := range m.Values {
		m.Values[i] = make([]float64, n)
	}
	for i := 0; i < n; i++ {
		if StdDev(cols[i]) > 0 {
			m.Values[i][i] = 1
		}
		for j := i + 1; j < n; j++ {
			r := Pearson(cols[i], cols[j])
			m.Values[i][j] = r
			m.Values[j][i] = r
		}
	}
	return m
}

// Get returns the correlation between two named columns.
func (m Matrix) Get(a, b string) (float64, bool) {
	i, j := -1, -1
	for k, c := range m.Columns {
		if c == a {
			i = k
		}
		if c == b {
			j = k
		}
	}
	if i < 0 || j < 0 {
		return 0, false
	}
	return m.Values[i][j], true
}

// Pairs lists the upper triangle ordered by |r| descending, then by name.
func (m Matrix) Pairs() []Pair {
	var pairs []Pair
	n := len(m.Columns)
	for i := 0; i < n; i++ {
		for j := i + 1; j < n; j++ {
			pairs = append(pairs, Pair{A: m.Columns[i], B: m.Columns[j], R: m.Values[i][j]})
		}
	}
	sort.SliceStable(pairs, func(i, j int) bool {
		ai := math.Abs(pairs[i].R)
		aj := math.Abs(pairs[j].R)
		if ai == aj {
			return pairs[i].A+pairs[i].B < pairs[j].A+pairs[j].B
		}
		return ai > aj
	})
	return pairs
}
