// Public domain.

// Package uncert estimates uncertainty of fitted phase curve parameters by
// Monte Carlo sampling.
//
// Samples are drawn from the multivariate normal distribution of the
// linear coefficients, converted to physical parameters, and summarized
// by percentiles at the one, two and three sigma points of a normal
// distribution.
package uncert

import (
	"errors"
	"fmt"
	"math"

	"github.com/montanaflynn/stats"
	"gonum.org/v1/gonum/mat"

	"github.com/soniakeys/hg1g2/internal/hgconv"
)

// Sample count limits.  Percentiles at the three sigma points need at
// least MinSamples; MaxSamples bounds memory.
const (
	DefaultSamples = 100000
	MinSamples     = 1000
	MaxSamples     = 10000000
)

// Levels are the percentiles reported, at -3, -2, -1, +1, +2, +3 sigma.
var Levels = [6]float64{0.13499, 2.27501, 15.8655, 84.1345, 97.725, 99.865}

// Row labels of Summary.Table.
var RowNames = [8]string{"mean", "median", "-3sigma", "-2sigma", "-1sigma", "+1sigma", "+2sigma", "+3sigma"}

var (
	ErrParamCount  = errors.New("uncert: parameter vector must have length 2 or 3")
	ErrCovShape    = errors.New("uncert: covariance dimension does not match parameters")
	ErrSampleCount = errors.New("uncert: sample count out of range")
	ErrCovariance  = errors.New("uncert: covariance not positive semidefinite")
)

// Rand is the random source used for sampling.  *rand.Rand of
// golang.org/x/exp/rand satisfies it.
type Rand interface {
	NormFloat64() float64
}

// Estimator draws Monte Carlo samples.  It is not safe for concurrent use
// since it consumes its random source; use one Estimator per goroutine.
type Estimator struct {
	rnd     Rand
	samples int
}

// New creates an Estimator drawing n samples per estimate.
func New(rnd Rand, n int) (*Estimator, error) {
	if n < MinSamples || n > MaxSamples {
		return nil, fmt.Errorf("%w: %d, want %d to %d",
			ErrSampleCount, n, MinSamples, MaxSamples)
	}
	return &Estimator{rnd, n}, nil
}

// Summary holds column-wise statistics of converted samples, one column
// per physical parameter.
type Summary struct {
	Mean       []float64
	Median     []float64
	Percentile [6][]float64 // at Levels
}

// Table returns the summary as 8 rows in RowNames order.
func (s *Summary) Table() [][]float64 {
	t := make([][]float64, 0, 8)
	t = append(t, s.Mean, s.Median)
	for _, p := range s.Percentile {
		t = append(t, p)
	}
	return t
}

// system converts between physical parameters and linear coefficients.
type system struct {
	toLinear   func(p []float64) []float64
	toPhysical func(a []float64) []float64
}

var (
	hg1g2 = system{
		toLinear: func(p []float64) []float64 {
			a := hgconv.FromHG1G2([3]float64{p[0], p[1], p[2]})
			return a[:]
		},
		toPhysical: func(a []float64) []float64 {
			p := hgconv.ToHG1G2([3]float64{a[0], a[1], a[2]})
			return p[:]
		},
	}
	hg12 = system{
		toLinear: func(p []float64) []float64 {
			a := hgconv.FromHG12([2]float64{p[0], p[1]})
			return a[:]
		},
		toPhysical: func(a []float64) []float64 {
			p := hgconv.ToHG12([2]float64{a[0], a[1]})
			return p[:]
		},
	}
)

// Estimate samples the distribution of physical parameters params (H, G1,
// G2 or H, G12) given cov, the covariance of the corresponding linear
// coefficients.
func (e *Estimator) Estimate(params []float64, cov mat.Symmetric) (*Summary, error) {
	var sys system
	switch len(params) {
	case 3:
		sys = hg1g2
	case 2:
		sys = hg12
	default:
		return nil, fmt.Errorf("%w: got %d", ErrParamCount, len(params))
	}
	m := len(params)
	if cov == nil || cov.SymmetricDim() != m {
		return nil, ErrCovShape
	}
	l, err := factor(cov)
	if err != nil {
		return nil, err
	}
	mean := sys.toLinear(params)

	// cols[j][i] is parameter j of sample i
	cols := make([][]float64, m)
	for j := range cols {
		cols[j] = make([]float64, e.samples)
	}
	z := make([]float64, m)
	a := make([]float64, m)
	for i := 0; i < e.samples; i++ {
		for j := range z {
			z[j] = e.rnd.NormFloat64()
		}
		for r := range a {
			s := mean[r]
			for c := range z {
				s += l.At(r, c) * z[c]
			}
			a[r] = s
		}
		for j, v := range sys.toPhysical(a) {
			cols[j][i] = v
		}
	}
	return summarize(cols)
}

// factor returns l with l lᵀ = cov.  Positive definite input uses
// Cholesky; semidefinite input falls back to an eigen decomposition with
// l = V sqrt(Λ).
func factor(cov mat.Symmetric) (mat.Matrix, error) {
	var chol mat.Cholesky
	if chol.Factorize(cov) {
		var l mat.TriDense
		chol.LTo(&l)
		return &l, nil
	}
	n := cov.SymmetricDim()
	var eig mat.EigenSym
	if !eig.Factorize(cov, true) {
		return nil, fmt.Errorf("%w: eigen decomposition failed", ErrCovariance)
	}
	vals := eig.Values(nil)
	var vecs mat.Dense
	eig.VectorsTo(&vecs)
	var scale float64
	for _, v := range vals {
		scale = math.Max(scale, math.Abs(v))
	}
	l := mat.NewDense(n, n, nil)
	for c, v := range vals {
		if v < -1e-12*scale {
			return nil, fmt.Errorf("%w: eigenvalue %g", ErrCovariance, v)
		}
		s := math.Sqrt(math.Max(v, 0))
		for r := 0; r < n; r++ {
			l.Set(r, c, vecs.At(r, c)*s)
		}
	}
	return l, nil
}

func summarize(cols [][]float64) (*Summary, error) {
	m := len(cols)
	s := &Summary{
		Mean:   make([]float64, m),
		Median: make([]float64, m),
	}
	for k := range s.Percentile {
		s.Percentile[k] = make([]float64, m)
	}
	dev := make([]float64, len(cols[0]))
	for j, col := range cols {
		// mean about the first sample, exact when samples are identical
		for i, v := range col {
			dev[i] = v - col[0]
		}
		d, err := stats.Mean(dev)
		if err != nil {
			return nil, err
		}
		s.Mean[j] = col[0] + d
		if s.Median[j], err = stats.Median(col); err != nil {
			return nil, err
		}
		for k, lv := range Levels {
			if s.Percentile[k][j], err = stats.Percentile(col, lv); err != nil {
				return nil, err
			}
		}
	}
	return s, nil
}
