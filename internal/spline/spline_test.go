// Public domain.

package spline_test

import (
	"fmt"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/soniakeys/hg1g2/internal/spline"
)

func ExampleSpline_Eval() {
	s, err := spline.New([]float64{0, 1, 2}, []float64{0, 1, 0}, 1, -1)
	if err != nil {
		fmt.Println(err)
		return
	}
	for _, x := range []float64{0, .5, 1, 1.5, 2} {
		y, _ := s.Eval(x)
		fmt.Printf("%.3f %.4f\n", x, y)
	}
	// Output:
	// 0.000 0.0000
	// 0.500 0.6250
	// 1.000 1.0000
	// 1.500 0.6250
	// 2.000 0.0000
}

func TestKnotValues(t *testing.T) {
	x := []float64{0, 1, 2}
	y := []float64{0, 1, 0}
	s, err := spline.New(x, y, 1, -1)
	require.NoError(t, err)
	for i := range x {
		v, err := s.Eval(x[i])
		require.NoError(t, err)
		assert.Equal(t, y[i], v, "knot %d", i)
	}
}

func TestEndDerivsPinned(t *testing.T) {
	s, err := spline.New([]float64{0, .3, 1, 2, 4}, []float64{1, .8, .6, .4, .2}, -.1, .05)
	require.NoError(t, err)
	d := s.Derivs()
	require.Len(t, d, 5)
	assert.Equal(t, -.1, d[0])
	assert.InDelta(t, .05, d[4], 1e-15)
}

// A cubic spline reproduces a straight line when the end slopes agree
// with it.
func TestLinearReproduction(t *testing.T) {
	x := []float64{0, .5, 2, 3, 7}
	y := make([]float64, len(x))
	for i, xi := range x {
		y[i] = 2*xi + 1
	}
	s, err := spline.New(x, y, 2, 2)
	require.NoError(t, err)
	for _, d := range s.Derivs() {
		assert.InDelta(t, 2, d, 1e-12)
	}
	for xi := 0.; xi <= 7; xi += .25 {
		v, err := s.Eval(xi)
		require.NoError(t, err)
		assert.InDelta(t, 2*xi+1, v, 1e-12, "x = %g", xi)
	}
}

// C¹ continuity: one-sided difference quotients agree at interior knots.
func TestInteriorSmoothness(t *testing.T) {
	x := []float64{0, 1, 2.5, 3, 5}
	y := []float64{1, .3, .7, .2, 0}
	s, err := spline.New(x, y, 0, 0)
	require.NoError(t, err)
	const h = 1e-6
	for _, k := range x[1 : len(x)-1] {
		lo, err := s.Eval(k - h)
		require.NoError(t, err)
		mid, err := s.Eval(k)
		require.NoError(t, err)
		hi, err := s.Eval(k + h)
		require.NoError(t, err)
		assert.InDelta(t, (mid-lo)/h, (hi-mid)/h, 1e-4, "knot %g", k)
	}
}

func TestOutOfSupport(t *testing.T) {
	s, err := spline.New([]float64{1, 2, 3}, []float64{0, 1, 0}, 0, 0)
	require.NoError(t, err)
	for _, x := range []float64{.999, 3.0001, math.NaN(), math.Inf(1)} {
		_, err := s.Eval(x)
		assert.ErrorIs(t, err, spline.ErrOutOfSupport, "x = %g", x)
	}
	lo, hi := s.Domain()
	assert.Equal(t, 1., lo)
	assert.Equal(t, 3., hi)
}

func TestBadKnots(t *testing.T) {
	cases := []struct {
		name string
		x, y []float64
	}{
		{"single", []float64{1}, []float64{1}},
		{"length", []float64{1, 2}, []float64{1}},
		{"order", []float64{1, 3, 2}, []float64{0, 0, 0}},
		{"repeat", []float64{1, 1, 2}, []float64{0, 0, 0}},
		{"nan", []float64{1, math.NaN()}, []float64{0, 0}},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			_, err := spline.New(c.x, c.y, 0, 0)
			assert.ErrorIs(t, err, spline.ErrKnots)
		})
	}
}

func TestInputsCopied(t *testing.T) {
	x := []float64{0, 1}
	y := []float64{0, 1}
	s, err := spline.New(x, y, 1, 1)
	require.NoError(t, err)
	x[1] = 5
	y[1] = 5
	v, err := s.Eval(1)
	require.NoError(t, err)
	assert.Equal(t, 1., v)
	k := s.Knots()
	k[0] = -1
	assert.Equal(t, []float64{0, 1}, s.Knots())
}
