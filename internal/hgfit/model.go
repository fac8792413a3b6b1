// Public domain.

package hgfit

import (
	"fmt"
	"math"

	"github.com/soniakeys/unit"

	"github.com/soniakeys/hg1g2/internal/hgconv"
)

func (f *Fitter) phi(angle float64, degrees bool) (phi [3]float64, err error) {
	if degrees {
		angle = unit.AngleFromDeg(angle).Rad()
	}
	if phi, err = f.basis.EvalVector(angle); err != nil {
		return phi, fmt.Errorf("%w: %v", ErrPhaseRange, err)
	}
	return phi, nil
}

// MagHG1G2 returns the reduced magnitude predicted by H, G1, G2 parameters
// p at a phase angle.
func (f *Fitter) MagHG1G2(p [3]float64, angle float64, degrees bool) (float64, error) {
	phi, err := f.phi(angle, degrees)
	if err != nil {
		return 0, err
	}
	a := hgconv.FromHG1G2(p)
	return -2.5 * math.Log10(a[0]*phi[0]+a[1]*phi[1]+a[2]*phi[2]), nil
}

// MagHG12 returns the reduced magnitude predicted by H, G12 parameters p
// at a phase angle, under calibration family fx of the Fitter.
func (f *Fitter) MagHG12(p [2]float64, fx int, angle float64, degrees bool) (float64, error) {
	if fx < 0 || fx >= len(f.families) {
		return 0, fmt.Errorf("%w: index %d", ErrNoFamily, fx)
	}
	phi, err := f.phi(angle, degrees)
	if err != nil {
		return 0, err
	}
	g1, g2 := f.families[fx].gamma(phi)
	a := hgconv.FromHG12(p)
	return -2.5 * math.Log10(a[0]*g1+a[1]*g2), nil
}

// Residuals returns observed minus computed magnitudes for a fit result
// over the data it was fit to, and their rms.
func (f *Fitter) Residuals(r *Result, data []Point, degrees bool) (res []float64, rms float64, err error) {
	res = make([]float64, len(data))
	var ss float64
	for i, p := range data {
		var m float64
		switch len(r.Params) {
		case 3:
			m, err = f.MagHG1G2([3]float64{r.Params[0], r.Params[1], r.Params[2]}, p.Angle, degrees)
		case 2:
			m, err = f.MagHG12([2]float64{r.Params[0], r.Params[1]}, r.Family, p.Angle, degrees)
		default:
			err = fmt.Errorf("hgfit: result has %d parameters", len(r.Params))
		}
		if err != nil {
			return nil, 0, err
		}
		res[i] = p.Mag - m
		ss += res[i] * res[i]
	}
	if len(data) > 0 {
		rms = math.Sqrt(ss / float64(len(data)))
	}
	return res, rms, nil
}
