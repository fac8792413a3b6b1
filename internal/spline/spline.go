// Public domain.

// Package spline implements clamped cubic Hermite splines.
//
// A spline interpolates values given at strictly increasing knots, with
// first derivatives prescribed at the two ends.  Derivatives at interior
// knots are solved once, at construction, so that the interpolant is C¹.
package spline

import (
	"errors"
	"fmt"
	"math"
	"sort"
)

var (
	// ErrOutOfSupport is returned by Eval for x outside [first knot, last knot].
	ErrOutOfSupport = errors.New("spline: value not in spline support")

	// ErrKnots is returned by New for knot or value sequences that cannot
	// define a spline.
	ErrKnots = errors.New("spline: invalid knots")
)

// Spline is a clamped cubic spline.  It is immutable after New.
type Spline struct {
	knots []float64
	yval  []float64
	deriv []float64 // first derivative at each knot
}

// New constructs a spline through points (x[i], y[i]) with first derivative
// dStart at x[0] and dEnd at x[len(x)-1].
//
// Knots must be finite and strictly increasing, and there must be at least
// two of them.
func New(x, y []float64, dStart, dEnd float64) (*Spline, error) {
	n := len(x)
	switch {
	case n < 2:
		return nil, fmt.Errorf("%w: need at least 2 knots, got %d", ErrKnots, n)
	case len(y) != n:
		return nil, fmt.Errorf("%w: %d knots but %d values", ErrKnots, n, len(y))
	}
	for i, xi := range x {
		if math.IsNaN(xi) || math.IsInf(xi, 0) ||
			math.IsNaN(y[i]) || math.IsInf(y[i], 0) {
			return nil, fmt.Errorf("%w: non-finite point %d", ErrKnots, i)
		}
		if i > 0 && !(xi > x[i-1]) {
			return nil, fmt.Errorf("%w: knots not increasing at %d", ErrKnots, i)
		}
	}
	s := &Spline{
		knots: append([]float64{}, x...),
		yval:  append([]float64{}, y...),
	}
	s.deriv = solveDerivs(s.knots, s.yval, dStart, dEnd)
	return s, nil
}

// solveDerivs solves the tridiagonal system for knot derivatives.
//
// Row 0 and row n-1 pin the end derivatives; interior rows enforce
// continuity of the second derivative.  Thomas algorithm, O(n).
func solveDerivs(x, y []float64, dStart, dEnd float64) []float64 {
	n := len(x)
	a := make([]float64, n)
	b := make([]float64, n)
	c := make([]float64, n)
	r := make([]float64, n)
	b[0] = 1
	r[0] = dStart
	for i := 1; i < n-1; i++ {
		h0 := x[i] - x[i-1]
		h1 := x[i+1] - x[i]
		a[i] = 1 / h0
		b[i] = 2/h0 + 2/h1
		c[i] = 1 / h1
		r[i] += 3 * (y[i] - y[i-1]) / (h0 * h0)
		r[i] += 3 * (y[i+1] - y[i]) / (h1 * h1)
	}
	b[n-1] = 1
	r[n-1] = dEnd

	// forward elimination
	gamma := make([]float64, n)
	u := make([]float64, n)
	beta := b[0]
	u[0] = r[0] / beta
	for i := 1; i < n; i++ {
		gamma[i] = c[i-1] / beta
		beta = b[i] - a[i]*gamma[i]
		u[i] = (r[i] - a[i]*u[i-1]) / beta
	}
	// back substitution
	for i := n - 2; i >= 0; i-- {
		u[i] -= gamma[i+1] * u[i+1]
	}
	return u
}

// Eval returns the value of the spline at x.
func (s *Spline) Eval(x float64) (float64, error) {
	last := len(s.knots) - 1
	if !(x >= s.knots[0] && x <= s.knots[last]) { // also catches NaN
		return 0, fmt.Errorf("%w: %g", ErrOutOfSupport, x)
	}
	// segment i with knots[i] <= x < knots[i+1].  the last knot itself
	// evaluates on the final segment.
	i := sort.SearchFloat64s(s.knots, x)
	if s.knots[i] > x {
		i--
	}
	if i == last {
		i--
	}
	x1, x2 := s.knots[i], s.knots[i+1]
	y1, y2 := s.yval[i], s.yval[i+1]
	d1, d2 := s.deriv[i], s.deriv[i+1]
	xd := x2 - x1
	yd := y2 - y1
	a := d1*xd - yd
	b := -d2*xd + yd
	t := (x - x1) / xd
	return (1-t)*y1 + t*y2 + t*(1-t)*(a*(1-t)+b*t), nil
}

// Domain returns the first and last knots.
func (s *Spline) Domain() (lower, upper float64) {
	return s.knots[0], s.knots[len(s.knots)-1]
}

// Knots returns a copy of the knot sequence.
func (s *Spline) Knots() []float64 {
	return append([]float64{}, s.knots...)
}

// Derivs returns a copy of the solved first derivatives at the knots.
func (s *Spline) Derivs() []float64 {
	return append([]float64{}, s.deriv...)
}
