// Package ipsat implements the impact parameter dependent saturation model of
// a single nucleon. It is the elementary amplitude the optical Glauber nucleus
// is built from. The gluon density is the initial condition of the fit; it is
// not DGLAP evolved.
package ipsat

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/integrate/quad"

	"github.com/wildstyl3r/subnucleon/internal/constants"
)

type Parameters struct {
	C       float64
	Mu0     float64 // [GeV]
	LambdaG float64
	Ag      float64
	Mc      float64 // [GeV] charm mass the parameters were fitted with
	B       float64 // proton width [GeV^{-2}]
}

// fit with saturation (exponentiated)
func Saturated() Parameters {
	return Parameters{C: 2.2894, Mu0: math.Sqrt(1.1), LambdaG: 0.08289, Ag: 2.1953, Mc: 1.3528, B: 4}
}

// fit of the linearised model
func NonSaturated() Parameters {
	return Parameters{C: 4.2974, Mu0: math.Sqrt(1.1), LambdaG: -0.006657, Ag: 3.0391, Mc: 1.3504, B: 4}
}

const (
	bIntegrationPoints = 120
	bIntegrationWidths = 8. // in units of sqrt(2B)
)

type Dipole struct {
	Parameters
	saturation bool
}

func New(p Parameters, saturation bool) *Dipole {
	return &Dipole{Parameters: p, saturation: saturation}
}

// NewVersion returns the parameter set matching the flag, as used on the command line.
func NewVersion(saturation bool) *Dipole {
	if saturation {
		return New(Saturated(), true)
	}
	return New(NonSaturated(), false)
}

func (d *Dipole) IsSaturated() bool {
	return d.saturation
}

func (d *Dipole) MuSqr(r float64) float64 {
	return d.Mu0*d.Mu0 + d.C/(r*r)
}

// one loop running coupling
func (d *Dipole) Alphas(muSqr float64) float64 {
	return 12. * math.Pi / ((33. - 2.*constants.Nf) * math.Log(muSqr/(constants.LambdaQCD*constants.LambdaQCD)))
}

func (d *Dipole) XG(x, muSqr float64) float64 {
	if x >= 1 {
		return 0
	}
	return d.Ag * math.Pow(x, -d.LambdaG) * math.Pow(1.-x, 5.6)
}

// ProtonProfile is the Gaussian transverse profile T_p(b), normalised to 1 in 2D.
func (d *Dipole) ProtonProfile(b float64) float64 {
	return math.Exp(-b*b/(2.*d.B)) / (2. * math.Pi * d.B)
}

// Omega is the opacity pi^2/(2 Nc) r^2 alpha_s x g T_p(b).
func (d *Dipole) Omega(r, b, xpom float64) float64 {
	if r == 0 {
		return 0
	}
	muSqr := d.MuSqr(r)
	return math.Pi * math.Pi / (2. * constants.Nc) * r * r * d.Alphas(muSqr) * d.XG(xpom, muSqr) * d.ProtonProfile(b)
}

func (d *Dipole) N(r, b, xpom float64) float64 {
	omega := d.Omega(r, b, xpom)
	if d.saturation {
		return 1. - math.Exp(-omega)
	}
	return omega
}

// BIntegrated returns \int d^2b N(r, b); twice this is the dipole-proton cross section.
func (d *Dipole) BIntegrated(r, xpom float64) float64 {
	bMax := bIntegrationWidths * math.Sqrt(2.*d.B)
	return 2. * math.Pi * quad.Fixed(func(b float64) float64 {
		return b * d.N(r, b, xpom)
	}, 0, bMax, bIntegrationPoints, quad.Legendre{}, 0)
}

func (d *Dipole) InfoStr() string {
	kind := "ipsat"
	if !d.saturation {
		kind = "ipnonsat"
	}
	return fmt.Sprintf("%s C=%g mu0=%g lambda_g=%g A_g=%g m_c=%g B_p=%g", kind, d.C, d.Mu0, d.LambdaG, d.Ag, d.Mc, d.B)
}
