// Public domain.

// Package hgconv converts between the linear coefficients fitted to
// phase curves and the physical magnitude system parameters.
//
// Coefficients a1, a2, a3 weight basis functions φ1, φ2, φ3 in the H, G1, G2
// system.  Coefficients a1, a2 weight the combined functions of the H, G12
// system.
package hgconv

import "math"

// ln10 * 0.4, so that exp(-k*H) = 10^(-0.4*H).
const k = 0.9210340371976184

// ToHG1G2 converts a1, a2, a3 to H, G1, G2.
func ToHG1G2(a [3]float64) (p [3]float64) {
	x := a[0] + a[1] + a[2]
	p[0] = -2.5 * math.Log10(x)
	p[1] = a[0] / x
	p[2] = a[1] / x
	return
}

// FromHG1G2 converts H, G1, G2 to a1, a2, a3.
func FromHG1G2(p [3]float64) (a [3]float64) {
	s := math.Pow(10, -0.4*p[0])
	a[0] = s * p[1]
	a[1] = s * p[2]
	a[2] = s * (1 - p[1] - p[2])
	return
}

// ToHG12 converts a1, a2 to H, G12.
func ToHG12(a [2]float64) (p [2]float64) {
	p[0] = -2.5 * math.Log10(a[0])
	p[1] = a[1] / a[0]
	return
}

// FromHG12 converts H, G12 to a1, a2.
func FromHG12(p [2]float64) (a [2]float64) {
	a[0] = math.Exp(-k * p[0])
	a[1] = a[0] * p[1]
	return
}
