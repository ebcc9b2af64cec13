package lattice

import (
	"fmt"

	"github.com/wildstyl3r/subnucleon/internal/constants"
	"github.com/wildstyl3r/subnucleon/internal/wilson"
)

// Model is the dipole amplitude of an IP-Glasma target
// N = 1 - 1/Nc Re Tr U(q1) U^dagger(q2), with U taken from the closest grid point.
// The configuration is a single snapshot, so xpom does not enter.
type Model struct {
	file string
	grid *Grid
}

func NewModel(file string) (*Model, error) {
	g, err := Load(file)
	if err != nil {
		return nil, err
	}
	return &Model{file: file, grid: g}, nil
}

// NewModelFromGrid wraps an already loaded grid.
func NewModelFromGrid(g *Grid) *Model {
	return &Model{file: "<memory>", grid: g}
}

func (m *Model) Amplitude(xpom float64, q1, q2 [2]float64) float64 {
	quark := m.WilsonLine(q1[0], q1[1])
	antiquark := wilson.Dagger(m.WilsonLine(q2[0], q2[1]))
	prod := wilson.Mul(quark, antiquark)
	return 1 - real(wilson.Trace(prod))/constants.Nc
}

func (m *Model) WilsonLine(x, y float64) wilson.Matrix {
	return m.grid.Nearest(x, y)
}

// Trace is the raw trace of the Wilson line nearest to p.
func (m *Model) Trace(p [2]float64) complex128 {
	return wilson.Trace(m.WilsonLine(p[0], p[1]))
}

func (m *Model) Grid() *Grid {
	return m.grid
}

func (m *Model) InfoStr() string {
	nx, ny := m.grid.Dims()
	return fmt.Sprintf("IPGlasma, file %s, grid %d x %d, step %g", m.file, nx, ny, m.grid.XStep())
}

func (m *Model) InitializeTarget() {}
