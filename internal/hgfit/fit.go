// Public domain.

// Package hgfit fits the H, G1, G2 and H, G12 phase curve systems to
// magnitude observations.
//
// Both fits are weighted linear least squares in flux.  Observations are
// projected onto the basis functions of package basis, coefficients are
// solved, and then converted to physical parameters by package hgconv.
package hgfit

import (
	"errors"
	"fmt"
	"math"

	"github.com/soniakeys/unit"
	"gonum.org/v1/gonum/mat"

	"github.com/soniakeys/hg1g2/internal/basis"
	"github.com/soniakeys/hg1g2/internal/hgconv"
)

var (
	ErrPhaseRange   = errors.New("hgfit: phase angle outside 0 to 150 degrees")
	ErrBadMag       = errors.New("hgfit: magnitude not finite")
	ErrBadError     = errors.New("hgfit: magnitude error must be positive and finite")
	ErrErrorCount   = errors.New("hgfit: number of errors does not match number of points")
	ErrTooFewPoints = errors.New("hgfit: fewer points than parameters")
	ErrSingular     = errors.New("hgfit: normal matrix singular")
	ErrNoFlux       = errors.New("hgfit: fitted zero phase flux not positive")
	ErrNoFamily     = errors.New("hgfit: no calibration families")
)

// maxPhase is the upper end of the basis domain.
var maxPhase = unit.AngleFromDeg(150).Rad()

// Point is a single observation.  Angle is phase angle, in degrees or
// radians according to the degrees argument of the fit methods.  Mag is
// reduced magnitude.
type Point struct {
	Angle, Mag float64
}

// Result is the outcome of a fit.
type Result struct {
	Coeffs []float64     // linear coefficients a1, a2[, a3]
	Cov    *mat.SymDense // covariance of Coeffs
	Params []float64     // H, G1, G2 or H, G12
	RSS    float64       // weighted residual sum of squares
	Family int           // index of selected family for H, G12; -1 for H, G1, G2
}

// Fitter holds the basis and the H, G12 calibration table used for fits.
// It is read-only and safe for concurrent use.
type Fitter struct {
	basis    *basis.Basis
	families []Family
}

// New creates a Fitter.  A nil basis selects basis.Default() and empty
// families select LegacyFamilies.
func New(b *basis.Basis, families []Family) *Fitter {
	if b == nil {
		b = basis.Default()
	}
	if len(families) == 0 {
		families = LegacyFamilies
	}
	return &Fitter{b, append([]Family{}, families...)}
}

// Families returns the calibration table of the Fitter.
func (f *Fitter) Families() []Family {
	return append([]Family{}, f.families...)
}

// workspace holds per point quantities shared by both fits.
type workspace struct {
	phi    [][basis.N]float64
	sigma  []float64 // flux domain error
	target []float64
}

func (f *Fitter) prepare(data []Point, e Errors, degrees bool, nPar int) (*workspace, error) {
	n := len(data)
	if n < nPar {
		return nil, fmt.Errorf("%w: %d points, %d parameters",
			ErrTooFewPoints, n, nPar)
	}
	errs, err := e.expand(n)
	if err != nil {
		return nil, err
	}
	w := &workspace{
		phi:    make([][basis.N]float64, n),
		sigma:  make([]float64, n),
		target: make([]float64, n),
	}
	for i, p := range data {
		x := p.Angle
		if degrees {
			x = unit.AngleFromDeg(x).Rad()
		}
		if !(x >= 0 && x <= maxPhase) {
			return nil, fmt.Errorf("%w: point %d, %g", ErrPhaseRange, i, p.Angle)
		}
		if math.IsNaN(p.Mag) || math.IsInf(p.Mag, 0) {
			return nil, fmt.Errorf("%w: point %d", ErrBadMag, i)
		}
		if w.phi[i], err = f.basis.EvalVector(x); err != nil {
			return nil, fmt.Errorf("%w: point %d: %v", ErrPhaseRange, i, err)
		}
		flux := math.Pow(10, -0.4*p.Mag)
		q := math.Pow(10, 0.4*errs[i]) - 1
		w.sigma[i] = flux * q
		w.target[i] = 1 / q
	}
	return w, nil
}

// FitHG1G2 fits the H, G1, G2 system.
//
// Result.Params is H, G1, G2; Result.Cov is the covariance of a1, a2, a3.
func (f *Fitter) FitHG1G2(data []Point, e Errors, degrees bool) (*Result, error) {
	w, err := f.prepare(data, e, degrees, basis.N)
	if err != nil {
		return nil, err
	}
	a := mat.NewDense(len(data), basis.N, nil)
	for i, phi := range w.phi {
		for j, v := range phi {
			a.Set(i, j, v/w.sigma[i])
		}
	}
	coef, cov, rss, err := leastSquares(a, w.target)
	if err != nil {
		return nil, err
	}
	c := [3]float64{coef[0], coef[1], coef[2]}
	if !(c[0]+c[1]+c[2] > 0) {
		return nil, ErrNoFlux
	}
	p := hgconv.ToHG1G2(c)
	return &Result{
		Coeffs: coef,
		Cov:    cov,
		Params: p[:],
		RSS:    rss,
		Family: -1,
	}, nil
}

// FitHG12 fits the H, G12 system.
//
// Each calibration family is fit and the one with the smallest residual
// sum of squares is selected, the first on a tie.  Result.Params is H, G12;
// Result.Cov is the covariance of a1, a2.
func (f *Fitter) FitHG12(data []Point, e Errors, degrees bool) (*Result, error) {
	if len(f.families) == 0 {
		return nil, ErrNoFamily
	}
	w, err := f.prepare(data, e, degrees, 2)
	if err != nil {
		return nil, err
	}
	var best *Result
	var firstErr error
	a := mat.NewDense(len(data), 2, nil)
	for fx, fam := range f.families {
		for i, phi := range w.phi {
			g1, g2 := fam.gamma(phi)
			a.Set(i, 0, g1/w.sigma[i])
			a.Set(i, 1, g2/w.sigma[i])
		}
		coef, cov, rss, err := leastSquares(a, w.target)
		if err != nil {
			if firstErr == nil {
				firstErr = fmt.Errorf("family %d: %w", fx, err)
			}
			continue
		}
		if best == nil || rss < best.RSS {
			best = &Result{Coeffs: coef, Cov: cov, RSS: rss, Family: fx}
		}
	}
	if best == nil {
		return nil, firstErr
	}
	if !(best.Coeffs[0] > 0) {
		return nil, ErrNoFlux
	}
	p := hgconv.ToHG12([2]float64{best.Coeffs[0], best.Coeffs[1]})
	best.Params = p[:]
	return best, nil
}

// leastSquares solves min |a x - b| and returns x, the covariance
// (aᵀa)⁻¹ and the residual sum of squares.
func leastSquares(a *mat.Dense, b []float64) (x []float64, cov *mat.SymDense, rss float64, err error) {
	_, k := a.Dims()
	var ata mat.SymDense
	ata.SymOuterK(1, a.T())
	var chol mat.Cholesky
	if ok := chol.Factorize(&ata); !ok {
		return nil, nil, 0, ErrSingular
	}
	cov = mat.NewSymDense(k, nil)
	if err = chol.InverseTo(cov); err != nil {
		return nil, nil, 0, fmt.Errorf("%w: %v", ErrSingular, err)
	}

	bv := mat.NewVecDense(len(b), b)
	var qr mat.QR
	qr.Factorize(a)
	var xv mat.VecDense
	if err = qr.SolveVecTo(&xv, false, bv); err != nil {
		return nil, nil, 0, fmt.Errorf("%w: %v", ErrSingular, err)
	}
	var r mat.VecDense
	r.MulVec(a, &xv)
	r.SubVec(&r, bv)

	x = make([]float64, k)
	for i := range x {
		x[i] = xv.AtVec(i)
	}
	return x, cov, mat.Dot(&r, &r), nil
}
