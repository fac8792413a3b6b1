// Public domain.

// Package piecewise implements functions defined piece by piece over
// disjoint closed intervals of the real line.
package piecewise

import (
	"errors"
	"fmt"
	"reflect"

	"github.com/soniakeys/hg1g2/internal/spline"
)

var (
	ErrDegenerateInterval = errors.New("piecewise: degenerate interval")
	ErrOverlap            = errors.New("piecewise: overlapping intervals")
	ErrUndefinedAtPoint   = errors.New("piecewise: function not defined at point")
	ErrInvalidPayload     = errors.New("piecewise: value must be a function or numeric constant")
)

// Payload is the function bound to one interval.  The set of payloads is
// closed: Constant, Linear, Segment and Func.
type Payload interface {
	eval(x float64) (float64, error)
}

// Constant is a payload returning the same value everywhere.
type Constant float64

func (c Constant) eval(float64) (float64, error) { return float64(c), nil }

// Linear is the payload Intercept + Slope*x.
type Linear struct {
	Intercept, Slope float64
}

func (l Linear) eval(x float64) (float64, error) { return l.Intercept + l.Slope*x, nil }

// Segment is a payload evaluating a spline.
type Segment struct {
	*spline.Spline
}

func (s Segment) eval(x float64) (float64, error) { return s.Eval(x) }

// Func is a payload wrapping an arbitrary function of one variable.
type Func func(float64) float64

func (f Func) eval(x float64) (float64, error) { return f(x), nil }

// Interval is one piece of a Function.
type Interval struct {
	Lower, Upper float64
	Payload      Payload
}

// Function is a piecewise defined function.  The zero value is an empty
// function, defined nowhere.
type Function struct {
	pieces []Interval
}

// Add adds a new piece on [lower, upper].
//
// Reversed bounds are swapped.  Pieces may touch at endpoints but must not
// otherwise overlap.
func (f *Function) Add(lower, upper float64, p Payload) error {
	if p == nil {
		return ErrInvalidPayload
	}
	if lower > upper {
		lower, upper = upper, lower
	} else if !(lower < upper) {
		return fmt.Errorf("%w: (%g, %g)", ErrDegenerateInterval, lower, upper)
	}
	for _, q := range f.pieces {
		if lower < q.Upper && q.Lower < upper {
			return fmt.Errorf("%w: (%g, %g) (%g, %g)",
				ErrOverlap, lower, upper, q.Lower, q.Upper)
		}
	}
	f.pieces = append(f.pieces, Interval{lower, upper, p})
	return nil
}

// Set binds v to [lower, upper].
//
// V may be a Payload, a func(float64) float64, or a number of any integer
// or floating point kind, which becomes a Constant.
func (f *Function) Set(lower, upper float64, v interface{}) error {
	switch t := v.(type) {
	case Payload:
		return f.Add(lower, upper, t)
	case func(float64) float64:
		if t == nil {
			return ErrInvalidPayload
		}
		return f.Add(lower, upper, Func(t))
	}
	if v == nil {
		return ErrInvalidPayload
	}
	switch rv := reflect.ValueOf(v); rv.Kind() {
	case reflect.Float32, reflect.Float64:
		return f.Add(lower, upper, Constant(rv.Float()))
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return f.Add(lower, upper, Constant(rv.Int()))
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		return f.Add(lower, upper, Constant(rv.Uint()))
	}
	return fmt.Errorf("%w: %T", ErrInvalidPayload, v)
}

// Eval returns the value of the function at x, evaluated on the first
// piece containing x.
func (f *Function) Eval(x float64) (float64, error) {
	for _, q := range f.pieces {
		if q.Lower <= x && x <= q.Upper {
			return q.Payload.eval(x)
		}
	}
	return 0, fmt.Errorf("%w: %g", ErrUndefinedAtPoint, x)
}

// Intervals returns a copy of the pieces in the order they were added.
func (f *Function) Intervals() []Interval {
	return append([]Interval{}, f.pieces...)
}
