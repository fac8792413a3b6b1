// Public domain.

package hgconv_test

import (
	"fmt"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	xrand "golang.org/x/exp/rand"

	"github.com/soniakeys/hg1g2/internal/hgconv"
)

func ExampleFromHG1G2() {
	a := hgconv.FromHG1G2([3]float64{15, .3, .2})
	fmt.Printf("%.4e %.4e %.4e\n", a[0], a[1], a[2])
	p := hgconv.ToHG1G2(a)
	fmt.Printf("%.6f %.6f %.6f\n", p[0], p[1], p[2])
	// Output:
	// 3.0000e-07 2.0000e-07 5.0000e-07
	// 15.000000 0.300000 0.200000
}

func relEq(t *testing.T, want, got float64, msg string) {
	t.Helper()
	if math.Abs(got-want) > 1e-9*math.Abs(want) {
		t.Errorf("%s: got %g, want %g", msg, got, want)
	}
}

func TestRoundTripHG1G2(t *testing.T) {
	rnd := xrand.New(&xrand.PCGSource{})
	rnd.Seed(3)
	for n := 0; n < 1000; n++ {
		a := [3]float64{rnd.Float64() + 1e-3, rnd.Float64() + 1e-3, rnd.Float64() + 1e-3}
		b := hgconv.FromHG1G2(hgconv.ToHG1G2(a))
		for i := range a {
			relEq(t, a[i], b[i], fmt.Sprint("a", i+1))
		}
	}
}

func TestRoundTripHG12(t *testing.T) {
	rnd := xrand.New(&xrand.PCGSource{})
	rnd.Seed(3)
	for n := 0; n < 1000; n++ {
		a := [2]float64{rnd.Float64() + 1e-3, rnd.Float64() + 1e-3}
		b := hgconv.FromHG12(hgconv.ToHG12(a))
		for i := range a {
			relEq(t, a[i], b[i], fmt.Sprint("a", i+1))
		}
	}
}

func TestG1G2Sum(t *testing.T) {
	a := hgconv.FromHG1G2([3]float64{7, .6, .4})
	assert.InDelta(t, 0, a[2], 1e-18)
	p := hgconv.ToHG1G2([3]float64{1, 0, 0})
	assert.Equal(t, [3]float64{0, 1, 0}, p)
}

func TestHG12Constant(t *testing.T) {
	for _, h := range []float64{-2, 0, 3.5, 15, 22} {
		a := hgconv.FromHG12([2]float64{h, .5})
		assert.InDelta(t, math.Pow(10, -.4*h), a[0], 1e-13*a[0], "H %g", h)
		assert.InDelta(t, a[0]/2, a[1], 1e-13*a[0])
	}
}
