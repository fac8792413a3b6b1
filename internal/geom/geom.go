// Public domain.

// Package geom, observing geometry needed to reduce photometry.
package geom

import (
	"errors"
	"math"

	"github.com/soniakeys/coord"
	"github.com/soniakeys/meeus/v3/illum"
	"github.com/soniakeys/unit"
)

// ErrGeometry is returned for distances or vectors that do not form a
// triangle with the Sun.
var ErrGeometry = errors.New("geom: invalid sun-object-observer geometry")

// PhaseAngle computes the phase angle from distances.
//
// Args:
//   r = sun-object distance
//   delta = observer-object distance
//   rObs = sun-observer distance
//
// All distances in the same unit, typically AU.
func PhaseAngle(r, delta, rObs float64) (unit.Angle, error) {
	if !(r > 0 && delta > 0 && rObs > 0) {
		return 0, ErrGeometry
	}
	// law of cosines is undefined for sides that do not close
	if rObs > r+delta || r > delta+rObs || delta > r+rObs {
		return 0, ErrGeometry
	}
	return illum.PhaseAngle(r, delta, rObs), nil
}

// PhaseAngleVec computes the phase angle from the sun-object vector sov and
// the observer-object vector oov.
//
// Returns also the magnitudes of the two vectors, sun-object distance r
// and observer-object distance delta.
func PhaseAngleVec(sov, oov *coord.Cart) (psi unit.Angle, r, delta float64, err error) {
	r = math.Sqrt(sov.Square())
	delta = math.Sqrt(oov.Square())
	if !(r > 0 && delta > 0) {
		return 0, 0, 0, ErrGeometry
	}
	cospsi := oov.Dot(sov) / (r * delta)
	// clamp rounding excursions
	cospsi = math.Max(-1, math.Min(1, cospsi))
	return unit.Angle(math.Acos(cospsi)), r, delta, nil
}

// ReducedMag reduces apparent magnitude v to unit sun and observer
// distances r and delta, in AU.
func ReducedMag(v, r, delta float64) float64 {
	return v - 5*math.Log10(r*delta)
}
