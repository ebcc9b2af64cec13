// Package target builds the dipole amplitude selected by a target configuration.
package target

import (
	"fmt"

	"github.com/wildstyl3r/subnucleon/internal/config"
	"github.com/wildstyl3r/subnucleon/internal/dipole"
	"github.com/wildstyl3r/subnucleon/internal/ipsat"
	"github.com/wildstyl3r/subnucleon/internal/lattice"
	"github.com/wildstyl3r/subnucleon/internal/nucleus"
	"github.com/wildstyl3r/subnucleon/internal/utils"
)

// New constructs one of the closed set of targets. Each call builds a fresh,
// independent instance.
func New(p config.TargetParameters) (dipole.Amplitude, error) {
	kind, err := dipole.ParseKind(p.Kind)
	if err != nil {
		return nil, err
	}
	var amp dipole.Amplitude
	switch kind {
	case dipole.Lattice:
		amp, err = lattice.NewModel(p.File)
	case dipole.Glauber:
		amp, err = newGlauber(p)
	default:
		err = dipole.Configurationf("no constructor for %v", kind)
	}
	if err != nil {
		return nil, err
	}
	amp.InitializeTarget()
	return amp, nil
}

func newGlauber(p config.TargetParameters) (dipole.Amplitude, error) {
	saturation, err := p.Saturation()
	if err != nil {
		return nil, err
	}
	elementary := ipsat.NewVersion(saturation)
	if p.ThicknessFile == "" {
		return nucleus.NewGlauber(p.A, elementary)
	}

	rows, err := utils.ReadFloatPairs(p.ThicknessFile)
	if err != nil {
		return nil, &dipole.ResourceError{Path: p.ThicknessFile, Err: err}
	}
	bs, ts := make([]float64, len(rows)), make([]float64, len(rows))
	for i := range rows {
		bs[i], ts[i] = rows[i][0], rows[i][1]
	}
	thickness, err := nucleus.NewThicknessTable(bs, ts)
	if err != nil {
		return nil, &dipole.ResourceError{Path: p.ThicknessFile, Err: fmt.Errorf("invalid thickness table: %w", err)}
	}
	return nucleus.NewGlauberWithThickness(p.A, elementary, thickness)
}
