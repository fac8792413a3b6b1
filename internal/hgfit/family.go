// Public domain.

package hgfit

// Family is one linear parameterization of G1 and G2 in terms of G12:
//
//	G1 = B0 + B1*G12
//	G2 = G0 + G1*G12
//
// Coefficient G1 of the struct is the slope of the G2 relation; the names
// follow the published tables.
type Family struct {
	B1 float64 `yaml:"b1"`
	B0 float64 `yaml:"b0"`
	G1 float64 `yaml:"g1"`
	G0 float64 `yaml:"g0"`
}

// LegacyFamilies are the two published calibrations of the H, G12 system,
// the first for G12 below about 0.2, the second above.
var LegacyFamilies = []Family{
	{B1: 0.7527, B0: 0.06164, G1: -0.9612, G0: 0.6270},
	{B1: 0.9529, B0: 0.02162, G1: -0.6125, G0: 0.5572},
}

// gamma combines basis values phi into the two H, G12 basis values.
func (f Family) gamma(phi [3]float64) (g1, g2 float64) {
	g1 = f.B0*phi[0] + f.G0*phi[1] + (1-f.B0-f.G0)*phi[2]
	g2 = f.B1*phi[0] + f.G1*phi[1] - (f.B1+f.G1)*phi[2]
	return
}
