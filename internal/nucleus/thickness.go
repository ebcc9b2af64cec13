package nucleus

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/integrate/quad"
	"gonum.org/v1/gonum/interp"

	"github.com/wildstyl3r/subnucleon/internal/constants"
)

const densityPoints = 200

// WoodsSaxon is the nuclear density normalised to one nucleon, lengths in GeV^{-1}.
type WoodsSaxon struct {
	A     int
	R     float64
	Delta float64
	rho0  float64
}

func NewWoodsSaxon(a int) WoodsSaxon {
	cbrtA := math.Cbrt(float64(a))
	ws := WoodsSaxon{
		A:     a,
		R:     (1.12*cbrtA - 0.86/cbrtA) * constants.FmGeV,
		Delta: constants.WoodsSaxonDelta * constants.FmGeV,
		rho0:  1,
	}
	norm := quad.Fixed(func(r float64) float64 {
		return 4. * math.Pi * r * r * ws.Density(r)
	}, 0, ws.cutoff(), densityPoints, quad.Legendre{}, 0)
	ws.rho0 = 1. / norm
	return ws
}

// density is negligible (e^{-20}) beyond
func (ws WoodsSaxon) cutoff() float64 {
	return ws.R + 20.*ws.Delta
}

func (ws WoodsSaxon) Density(r float64) float64 {
	return ws.rho0 / (1. + math.Exp((r-ws.R)/ws.Delta))
}

// T is the thickness \int dz rho(sqrt(b^2 + z^2)), so that \int d^2b T(b) = 1.
func (ws WoodsSaxon) T(b float64) float64 {
	rMax := ws.cutoff()
	if b >= rMax {
		return 0
	}
	zMax := math.Sqrt(rMax*rMax - b*b)
	return 2. * quad.Fixed(func(z float64) float64 {
		return ws.Density(math.Hypot(b, z))
	}, 0, zMax, densityPoints, quad.Legendre{}, 0)
}

// Thickness interpolates T_A(b) from a table fixed at construction. Outside the
// tabulated range it is exactly zero.
type Thickness struct {
	bMin, bMax float64
	fit        interp.FritschButland
}

// NewThickness tabulates ta on [0, ThicknessBMax) with step ThicknessBStep.
func NewThickness(ta func(b float64) float64) *Thickness {
	n := int(math.Round(constants.ThicknessBMax / constants.ThicknessBStep))
	bs := floats.Span(make([]float64, n), 0, float64(n-1)*constants.ThicknessBStep)
	ts := make([]float64, n)
	for i := range bs {
		ts[i] = ta(bs[i])
	}
	t, err := NewThicknessTable(bs, ts)
	if err != nil {
		panic(err) // the grid above is valid by construction
	}
	return t
}

// NewThicknessTable fits a precomputed table. bs must be strictly increasing.
func NewThicknessTable(bs, ts []float64) (*Thickness, error) {
	if len(bs) < 2 {
		return nil, fmt.Errorf("thickness table needs at least 2 points, got %d", len(bs))
	}
	if len(bs) != len(ts) {
		return nil, fmt.Errorf("thickness table has %d b values and %d T values", len(bs), len(ts))
	}
	for i := 1; i < len(bs); i++ {
		if !(bs[i] > bs[i-1]) {
			return nil, fmt.Errorf("thickness table b values not increasing at row %d", i+1)
		}
	}
	for i := range ts {
		if ts[i] < 0 || math.IsNaN(ts[i]) {
			return nil, fmt.Errorf("invalid thickness %g at b=%g", ts[i], bs[i])
		}
	}
	t := &Thickness{bMin: bs[0], bMax: bs[len(bs)-1]}
	if err := t.fit.Fit(bs, ts); err != nil {
		return nil, err
	}
	return t, nil
}

// Evaluate is zero outside the table and for NaN b.
func (t *Thickness) Evaluate(b float64) float64 {
	if math.IsNaN(b) || b < t.bMin || b > t.bMax {
		return 0
	}
	return t.fit.Predict(b)
}

func (t *Thickness) Range() (bMin, bMax float64) {
	return t.bMin, t.bMax
}
