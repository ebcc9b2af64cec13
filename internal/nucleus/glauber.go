package nucleus

import (
	"fmt"
	"log"
	"math"

	"github.com/wildstyl3r/subnucleon/internal/constants"
	"github.com/wildstyl3r/subnucleon/internal/dipole"
	"github.com/wildstyl3r/subnucleon/internal/utils"
)

// Elementary is the dipole-nucleon amplitude the nucleus is built from.
type Elementary interface {
	// BIntegrated is \int d^2b N(r, b) at momentum fraction xpom
	BIntegrated(r, xpom float64) float64
	IsSaturated() bool
}

// Glauber is a smooth nucleus in the optical limit (Kowalski-Teaney):
// N = 1 - exp(-A/2 T_A(b) sigma_dip(r)), sigma_dip = 2 \int d^2b N_p(r, b).
type Glauber struct {
	a          int
	elementary Elementary
	thickness  *Thickness
}

func checkGlauber(a int, elementary Elementary) error {
	if !elementary.IsSaturated() {
		return dipole.Configurationf("optical Glauber nucleus does not support the non-saturated nucleon amplitude")
	}
	if a < constants.MinGlauberA {
		return dipole.Configurationf("optical Glauber nucleus assumes large A, got A=%d (need >= %d)", a, constants.MinGlauberA)
	}
	return nil
}

// NewGlauber tabulates the Woods-Saxon thickness of the nucleus with mass number a.
func NewGlauber(a int, elementary Elementary) (*Glauber, error) {
	if err := checkGlauber(a, elementary); err != nil {
		return nil, err
	}
	return &Glauber{a: a, elementary: elementary, thickness: NewThickness(NewWoodsSaxon(a).T)}, nil
}

// NewGlauberWithThickness uses a thickness function prepared by the caller.
func NewGlauberWithThickness(a int, elementary Elementary, thickness *Thickness) (*Glauber, error) {
	if err := checkGlauber(a, elementary); err != nil {
		return nil, err
	}
	return &Glauber{a: a, elementary: elementary, thickness: thickness}, nil
}

func (g *Glauber) Amplitude(xpom float64, q1, q2 [2]float64) float64 {
	r := math.Hypot(q1[0]-q2[0], q1[1]-q2[1])
	b := math.Hypot(0.5*(q1[0]+q2[0]), 0.5*(q1[1]+q2[1]))
	return g.AmplitudeRB(xpom, r, b)
}

// AmplitudeRB is the amplitude for dipole size r at impact parameter b.
func (g *Glauber) AmplitudeRB(xpom, r, b float64) float64 {
	sigma := 2. * g.elementary.BIntegrated(r, xpom)
	if sigma < 0 {
		log.Printf("negative dipole-nucleon cross section sigma=%g, r=%g, xpom=%g", sigma, r, xpom)
	}
	ta := g.thickness.Evaluate(b)
	res := 1. - math.Exp(-0.5*float64(g.a)*ta*sigma)
	if res < 0 || res > 1 {
		log.Printf("Glauber nucleus amplitude out of [0,1]: %g, r=%g, b=%g, T(b)=%g", res, r, b, ta)
	}
	return res
}

// SaturationScale returns Q_s^2 = 2/r_s^2 with N(r_s, b) = 1 - exp(-1/2),
// or 0 when no dipole up to maxDipoleSize reaches it (outside the nucleus).
func (g *Glauber) SaturationScale(xpom, b float64) float64 {
	target := 1. - math.Exp(-0.5)
	if g.AmplitudeRB(xpom, maxDipoleSize, b) < target {
		return 0
	}
	_, rs := utils.BinarySearch(func(r float64) bool {
		return g.AmplitudeRB(xpom, r, b) >= target
	}, 0, maxDipoleSize, 1e-6)
	return 2. / (rs * rs)
}

const maxDipoleSize = 100. // [GeV^{-1}]

func (g *Glauber) Thickness() *Thickness {
	return g.thickness
}

func (g *Glauber) A() int {
	return g.a
}

func (g *Glauber) InfoStr() string {
	return fmt.Sprintf("Optical Glauber nucleus, A=%d", g.a)
}

func (g *Glauber) InitializeTarget() {}
