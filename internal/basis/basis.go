// Public domain.

// Package basis defines the three phase angle basis functions of the
// H, G1, G2 magnitude system.
//
// The knots, values and end derivatives below are a published photometric
// calibration and must not be altered.  Tables are in degrees; functions
// take phase angle in radians.
package basis

import (
	"fmt"
	"sync"

	"github.com/soniakeys/unit"

	"github.com/soniakeys/hg1g2/internal/piecewise"
	"github.com/soniakeys/hg1g2/internal/spline"
)

// Version identifies the basis tables.
const Version = "20101000"

// N is the number of basis functions.
const N = 3

// Basis holds the basis functions φ1, φ2, φ3.  It is read-only after New
// and safe for concurrent use.
type Basis struct {
	Functions [N]*piecewise.Function
	Version   string
}

func rad(deg float64) float64 { return unit.AngleFromDeg(deg).Rad() }

func rads(deg []float64) []float64 {
	r := make([]float64, len(deg))
	for i, d := range deg {
		r[i] = rad(d)
	}
	return r
}

// piece is one literal table entry.
type piece struct {
	lo, hi float64 // degrees
	p      piecewise.Payload
}

// New constructs the default basis.
func New() (*Basis, error) {
	r7 := rad(7.5)
	r30 := rad(30)
	r150 := rad(150)

	wide := []float64{7.5, 30, 60, 90, 120, 150}
	s1, err := spline.New(rads(wide),
		[]float64{0.75, 0.33486, 0.134106, 0.0511048, 0.0214657, 0.0036397},
		-1.90986, -0.0913286)
	if err != nil {
		return nil, fmt.Errorf("basis phi1: %w", err)
	}
	s2, err := spline.New(rads(wide),
		[]float64{0.925, 0.628842, 0.317555, 0.127164, 0.0223739, 0.000165057},
		-0.572958, -8.6573138e-8)
	if err != nil {
		return nil, fmt.Errorf("basis phi2: %w", err)
	}
	s3, err := spline.New(rads([]float64{0, 0.3, 1, 2, 4, 8, 12, 20, 30}),
		[]float64{1, 0.833812, 0.577354, 0.421448, 0.231742, 0.103482, 0.0617335, 0.016107, 0},
		-0.106301, 0)
	if err != nil {
		return nil, fmt.Errorf("basis phi3: %w", err)
	}

	tables := [N][]piece{
		{
			{0, r7, piecewise.Linear{Intercept: 1, Slope: -1.90985931710274}},
			{r7, r150, piecewise.Segment{Spline: s1}},
		},
		{
			{0, r7, piecewise.Linear{Intercept: 1, Slope: -0.572957795130823}},
			{r7, r150, piecewise.Segment{Spline: s2}},
		},
		{
			{0, r30, piecewise.Segment{Spline: s3}},
			{r30, r150, piecewise.Constant(0)},
		},
	}
	b := &Basis{Version: Version}
	for i, t := range tables {
		f := new(piecewise.Function)
		for _, pc := range t {
			if err := f.Add(pc.lo, pc.hi, pc.p); err != nil {
				return nil, fmt.Errorf("basis phi%d: %w", i+1, err)
			}
		}
		b.Functions[i] = f
	}
	return b, nil
}

var (
	defaultOnce  sync.Once
	defaultBasis *Basis
)

// Default returns a shared instance of the default basis.
//
// The basis is literal data so failure to construct it is a programming
// error and panics.
func Default() *Basis {
	defaultOnce.Do(func() {
		b, err := New()
		if err != nil {
			panic(err)
		}
		defaultBasis = b
	})
	return defaultBasis
}

// Eval returns φ(i+1) at phase angle x, in radians.
func (b *Basis) Eval(i int, x float64) (float64, error) {
	if i < 0 || i >= N {
		return 0, fmt.Errorf("basis: no function %d", i)
	}
	return b.Functions[i].Eval(x)
}

// EvalVector returns [φ1(x), φ2(x), φ3(x)], x in radians.
func (b *Basis) EvalVector(x float64) (v [N]float64, err error) {
	for i, f := range b.Functions {
		if v[i], err = f.Eval(x); err != nil {
			return v, err
		}
	}
	return v, nil
}
