// Public domain.

package hgfit

import (
	"fmt"
	"math"
)

// DefaultMagErr is the magnitude error, in magnitudes, applied to every
// point when no error is specified.
const DefaultMagErr = .03

// Errors holds magnitude errors for a fit, normalized from either a single
// value or one value per point.
//
// The zero value means no error was specified; DefaultMagErr applies.
// An explicitly specified error of zero is invalid and is never replaced
// by the default.
type Errors struct {
	scalar float64
	each   []float64
	set    bool
}

// ErrorsFromScalar applies magnitude error e to all points.
func ErrorsFromScalar(e float64) Errors {
	return Errors{scalar: e, set: true}
}

// ErrorsFromSlice gives one magnitude error per point.
func ErrorsFromSlice(e []float64) Errors {
	return Errors{each: append([]float64{}, e...), set: true}
}

// Specified reports whether errors were given explicitly.
func (e Errors) Specified() bool { return e.set }

// expand returns one validated error per point.
func (e Errors) expand(n int) ([]float64, error) {
	out := make([]float64, n)
	switch {
	case !e.set:
		for i := range out {
			out[i] = DefaultMagErr
		}
		return out, nil
	case e.each == nil:
		if !validErr(e.scalar) {
			return nil, fmt.Errorf("%w: %g", ErrBadError, e.scalar)
		}
		for i := range out {
			out[i] = e.scalar
		}
		return out, nil
	case len(e.each) != n:
		return nil, fmt.Errorf("%w: %d errors for %d points",
			ErrErrorCount, len(e.each), n)
	}
	for i, v := range e.each {
		if !validErr(v) {
			return nil, fmt.Errorf("%w: %g at point %d", ErrBadError, v, i)
		}
		out[i] = v
	}
	return out, nil
}

func validErr(e float64) bool {
	return e > 0 && !math.IsInf(e, 1)
}
