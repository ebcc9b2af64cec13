package lattice

import (
	"fmt"
	"math"
	"math/cmplx"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wildstyl3r/subnucleon/internal/dipole"
	"github.com/wildstyl3r/subnucleon/internal/wilson"
)

func siteLine(x, y float64, m wilson.Matrix) string {
	var b strings.Builder
	fmt.Fprintf(&b, "%g %g", x, y)
	for row := range 3 {
		for col := range 3 {
			fmt.Fprintf(&b, " %.17g %.17g", real(m[row][col]), imag(m[row][col]))
		}
	}
	return b.String()
}

func writeFile(t *testing.T, lines []string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "wilsonlines.dat")
	require.NoError(t, os.WriteFile(path, []byte(strings.Join(lines, "\n")+"\n"), 0o644))
	return path
}

// phase rotation in the color (0,1) plane, unitary for every angle
func rotation(theta float64) wilson.Matrix {
	c, s := complex(math.Cos(theta), 0), complex(math.Sin(theta), 0)
	return wilson.Matrix{
		{c, -s, 0},
		{s, c, 0},
		{0, 0, cmplx.Exp(complex(0, theta))},
	}
}

func regularFile(t *testing.T, xs, ys []float64, fill func(i, j int) wilson.Matrix) string {
	t.Helper()
	lines := []string{"# x y [fm] Re Im (0,0) (0,1) ...", ""}
	for i, x := range xs {
		for j, y := range ys {
			lines = append(lines, siteLine(x, y, fill(i, j)))
		}
	}
	return writeFile(t, lines)
}

func TestLoad(t *testing.T) {
	t.Run("identity grid", func(t *testing.T) {
		path := regularFile(t, []float64{0, 1}, []float64{0, 1}, func(i, j int) wilson.Matrix { return wilson.Identity() })
		g, err := Load(path)
		require.NoError(t, err)
		nx, ny := g.Dims()
		assert.Equal(t, 2, nx)
		assert.Equal(t, 2, ny)
		assert.Equal(t, 4, g.Len())
		assert.Equal(t, wilson.Identity(), g.At(1, 1))
	})

	t.Run("axes and bounds", func(t *testing.T) {
		xs := []float64{-1.5, -0.5, 0.5, 1.5}
		ys := []float64{-1, 0, 1}
		path := regularFile(t, xs, ys, func(i, j int) wilson.Matrix { return rotation(float64(10*i + j)) })
		g, err := Load(path)
		require.NoError(t, err)
		if diff := cmp.Diff(xs, g.xs, cmpopts.EquateApprox(0, 1e-12)); diff != "" {
			t.Errorf("x axis mismatch (-want +got):\n%s", diff)
		}
		if diff := cmp.Diff(ys, g.ys, cmpopts.EquateApprox(0, 1e-12)); diff != "" {
			t.Errorf("y axis mismatch (-want +got):\n%s", diff)
		}
		assert.Equal(t, -1.5, g.MinX())
		assert.Equal(t, 1.5, g.MaxX())
		assert.Equal(t, 1.0, g.XStep())
		assert.Equal(t, -1.0, g.MinY())
		assert.Equal(t, 1.0, g.MaxY())
		assert.Equal(t, 1.0, g.YStep())

		// element order is row-major Re Im pairs
		want := rotation(float64(10*2 + 1))
		got := g.At(2, 1)
		for row := range 3 {
			for col := range 3 {
				assert.InDelta(t, real(want[row][col]), real(got[row][col]), 1e-15)
				assert.InDelta(t, imag(want[row][col]), imag(got[row][col]), 1e-15)
			}
		}
	})

	t.Run("skips comments and short lines", func(t *testing.T) {
		id := wilson.Identity()
		path := writeFile(t, []string{
			"# comment that is long enough to be parsed otherwise",
			siteLine(0, 0, id),
			"",
			"   ",
			"0 1 2",
			siteLine(0, 1, id),
		})
		g, err := Load(path)
		require.NoError(t, err)
		assert.Equal(t, 2, g.Len())
	})

	t.Run("missing file", func(t *testing.T) {
		_, err := Load(filepath.Join(t.TempDir(), "absent.dat"))
		require.Error(t, err)
		assert.ErrorIs(t, err, dipole.ErrResource)
		assert.ErrorIs(t, err, os.ErrNotExist)
	})

	t.Run("malformed line", func(t *testing.T) {
		path := writeFile(t, []string{
			siteLine(0, 0, wilson.Identity()),
			"0 1 1 0 0 0 0 0 0 0 1 0 0 0",
		})
		_, err := Load(path)
		require.Error(t, err)
		assert.ErrorIs(t, err, dipole.ErrResource)
		var re *dipole.ResourceError
		require.ErrorAs(t, err, &re)
		assert.Equal(t, 2, re.Line)
	})

	t.Run("unparsable number", func(t *testing.T) {
		line := siteLine(0, 0, wilson.Identity())
		path := writeFile(t, []string{strings.Replace(line, "0 0", "0 zero", 1)})
		_, err := Load(path)
		assert.ErrorIs(t, err, dipole.ErrResource)
	})

	t.Run("empty file", func(t *testing.T) {
		_, err := Load(writeFile(t, []string{"# nothing here"}))
		assert.ErrorIs(t, err, dipole.ErrResource)
	})

	t.Run("y-major scan is rejected", func(t *testing.T) {
		id := wilson.Identity()
		path := writeFile(t, []string{
			siteLine(0, 0, id),
			siteLine(1, 0, id),
			siteLine(0, 1, id),
			siteLine(1, 1, id),
		})
		_, err := Load(path)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "irregular grid")
	})

	t.Run("missing site is rejected", func(t *testing.T) {
		id := wilson.Identity()
		path := writeFile(t, []string{
			siteLine(0, 0, id),
			siteLine(0, 1, id),
			siteLine(1, 0, id),
		})
		_, err := Load(path)
		assert.ErrorIs(t, err, dipole.ErrResource)
	})
}

func TestFindIndex(t *testing.T) {
	coords := []float64{-2, -1, 0, 0.5, 3, 7}

	assert.Equal(t, 0, FindIndex(-100, coords))
	assert.Equal(t, 5, FindIndex(100, coords))
	assert.Equal(t, 2, FindIndex(0, coords))
	assert.Equal(t, 0, FindIndex(-1.5, coords), "ties resolve to the lower index")
	assert.Equal(t, 3, FindIndex(1.75, coords), "ties resolve to the lower index")
	assert.Equal(t, 4, FindIndex(1.76, coords))
	assert.Equal(t, 0, FindIndex(5, []float64{1}))

	t.Run("minimises distance", func(t *testing.T) {
		for q := -3.0; q <= 8; q += 0.037 {
			i := FindIndex(q, coords)
			for j := range coords {
				assert.LessOrEqual(t, math.Abs(coords[i]-q), math.Abs(coords[j]-q), "q=%g i=%d j=%d", q, i, j)
			}
		}
	})
}

func TestModelAmplitude(t *testing.T) {
	t.Run("identity lattice", func(t *testing.T) {
		path := regularFile(t, []float64{0, 1}, []float64{0, 1}, func(i, j int) wilson.Matrix { return wilson.Identity() })
		m, err := NewModel(path)
		require.NoError(t, err)
		assert.Equal(t, 0.0, m.Amplitude(0.01, [2]float64{0, 0}, [2]float64{1, 1}))
		assert.Equal(t, complex(3, 0), m.Trace([2]float64{0.2, 0.9}))
	})

	xs := []float64{-1, -0.5, 0, 0.5, 1}
	fill := func(i, j int) wilson.Matrix { return rotation(0.3*float64(i) - 0.7*float64(j)) }
	path := regularFile(t, xs, xs, fill)
	m, err := NewModel(path)
	require.NoError(t, err)

	t.Run("same position vanishes for unitary lines", func(t *testing.T) {
		for _, p := range [][2]float64{{0, 0}, {-0.9, 0.4}, {0.26, -0.74}, {5, 5}} {
			assert.InDelta(t, 0, m.Amplitude(0.01, p, p), 1e-14)
		}
	})

	t.Run("matches direct evaluation", func(t *testing.T) {
		q1, q2 := [2]float64{-0.45, 0.1}, [2]float64{0.6, -0.95}
		u1, u2 := fill(1, 2), fill(3, 0)
		want := real(1 - wilson.Trace(wilson.Mul(u1, wilson.Dagger(u2)))/3)
		assert.InDelta(t, want, m.Amplitude(0.01, q1, q2), 1e-14)
		assert.Equal(t, m.Amplitude(0.01, q1, q2), m.Amplitude(0.5, q1, q2), "xpom does not enter")
	})

	t.Run("outside the grid clamps to the edge", func(t *testing.T) {
		assert.Equal(t, fill(4, 0), m.WilsonLine(10, -10))
		assert.Equal(t, m.Amplitude(0.01, [2]float64{1, 1}, [2]float64{-1, -1}),
			m.Amplitude(0.01, [2]float64{20, 3}, [2]float64{-4, -30}))
	})

	assert.Contains(t, m.InfoStr(), "5 x 5")
	m.InitializeTarget()
}
