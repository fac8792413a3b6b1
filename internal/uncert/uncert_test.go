// Public domain.

package uncert_test

import (
	"fmt"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	xrand "golang.org/x/exp/rand"
	"gonum.org/v1/gonum/mat"

	"github.com/soniakeys/hg1g2/internal/hgconv"
	"github.com/soniakeys/hg1g2/internal/uncert"
)

func newEstimator(t *testing.T, seed uint64, n int) *uncert.Estimator {
	t.Helper()
	rnd := xrand.New(&xrand.PCGSource{})
	rnd.Seed(seed)
	e, err := uncert.New(rnd, n)
	require.NoError(t, err)
	return e
}

func ExampleSummary_Table() {
	rnd := xrand.New(&xrand.PCGSource{})
	rnd.Seed(3)
	e, err := uncert.New(rnd, uncert.MinSamples)
	if err != nil {
		fmt.Println(err)
		return
	}
	// no uncertainty at all
	s, err := e.Estimate([]float64{15, .3}, mat.NewSymDense(2, nil))
	if err != nil {
		fmt.Println(err)
		return
	}
	for i, row := range s.Table() {
		fmt.Printf("%-8s %.2f %.2f\n", uncert.RowNames[i], row[0], row[1])
	}
	// Output:
	// mean     15.00 0.30
	// median   15.00 0.30
	// -3sigma  15.00 0.30
	// -2sigma  15.00 0.30
	// -1sigma  15.00 0.30
	// +1sigma  15.00 0.30
	// +2sigma  15.00 0.30
	// +3sigma  15.00 0.30
}

func TestZeroCovariance(t *testing.T) {
	for _, p := range [][]float64{{15, .3, .2}, {11.5, .45}} {
		e := newEstimator(t, 3, 5000)
		s, err := e.Estimate(p, mat.NewSymDense(len(p), nil))
		require.NoError(t, err)
		tab := s.Table()
		require.Len(t, tab, 8)
		for i, row := range tab {
			require.Len(t, row, len(p))
			assert.Equal(t, s.Mean, row, "row %s", uncert.RowNames[i])
		}
		for j := range p {
			assert.InDelta(t, p[j], s.Mean[j], 1e-12)
		}
	}
}

func TestParamCount(t *testing.T) {
	e := newEstimator(t, 3, uncert.MinSamples)
	for _, n := range []int{0, 1, 4} {
		_, err := e.Estimate(make([]float64, n), mat.NewSymDense(n+1, nil))
		assert.ErrorIs(t, err, uncert.ErrParamCount, "length %d", n)
	}
	_, err := e.Estimate([]float64{15, .3, .2}, mat.NewSymDense(2, nil))
	assert.ErrorIs(t, err, uncert.ErrCovShape)
	_, err = e.Estimate([]float64{15, .3, .2}, nil)
	assert.ErrorIs(t, err, uncert.ErrCovShape)
}

func TestSampleCount(t *testing.T) {
	rnd := xrand.New(&xrand.PCGSource{})
	for _, n := range []int{0, uncert.MinSamples - 1, uncert.MaxSamples + 1} {
		_, err := uncert.New(rnd, n)
		assert.ErrorIs(t, err, uncert.ErrSampleCount, "%d", n)
	}
}

func TestNotSemidefinite(t *testing.T) {
	e := newEstimator(t, 3, uncert.MinSamples)
	cov := mat.NewSymDense(2, []float64{1e-16, 0, 0, -1e-16})
	_, err := e.Estimate([]float64{15, .3}, cov)
	assert.ErrorIs(t, err, uncert.ErrCovariance)
}

// Percentiles bracket the fitted values in order, and the ±1 sigma spread
// of the linear coefficients matches the covariance.
func TestSpread(t *testing.T) {
	p := []float64{15, .3, .2}
	a := hgconv.FromHG1G2([3]float64{15, .3, .2})
	// 1% relative standard deviation, independent coefficients
	cov := mat.NewSymDense(3, nil)
	for i := range a {
		cov.SetSym(i, i, a[i]*a[i]*1e-4)
	}
	e := newEstimator(t, 7, 40000)
	s, err := e.Estimate(p, cov)
	require.NoError(t, err)
	for j := range p {
		prev := s.Percentile[0][j]
		for k := 1; k < len(s.Percentile); k++ {
			assert.GreaterOrEqual(t, s.Percentile[k][j], prev, "param %d level %d", j, k)
			prev = s.Percentile[k][j]
		}
		assert.Less(t, s.Percentile[2][j], s.Median[j])
		assert.Greater(t, s.Percentile[3][j], s.Median[j])
	}
	// H is near linear in the coefficient sum for small spreads:
	// σH ≈ 2.5/ln10 · σx/x
	x := a[0] + a[1] + a[2]
	sx := 0.
	for i := range a {
		sx += a[i] * a[i] * 1e-4
	}
	want := 1.0857362047581296 * math.Sqrt(sx) / x
	got := (s.Percentile[3][0] - s.Percentile[2][0]) / 2
	assert.InDelta(t, want, got, want*.05)
	assert.InDelta(t, 15, s.Median[0], .002)
}

func TestRepeatable(t *testing.T) {
	cov := mat.NewSymDense(2, []float64{1e-16, 2e-17, 2e-17, 4e-17})
	s1, err := newEstimator(t, 11, 2000).Estimate([]float64{14, .5}, cov)
	require.NoError(t, err)
	s2, err := newEstimator(t, 11, 2000).Estimate([]float64{14, .5}, cov)
	require.NoError(t, err)
	assert.Equal(t, s1, s2)
}
