package wilson

import (
	"math"
	"math/cmplx"
	"testing"

	"github.com/stretchr/testify/assert"
)

var (
	generic = Matrix{
		{1 + 2i, -0.5 + 0i, 3i},
		{0.25 - 1i, 2, -1 + 1i},
		{0, 4 - 3i, 0.5 + 0.5i},
	}
	other = Matrix{
		{-1i, 2 + 1i, 0.75},
		{3, -2i, 1 - 1i},
		{0.5 + 2i, 0, -1},
	}
)

// rotation in the (0,1) color plane with a phase on the third component
func unitary(theta, phi float64) Matrix {
	c, s := complex(math.Cos(theta), 0), complex(math.Sin(theta), 0)
	return Matrix{
		{c, -s, 0},
		{s, c, 0},
		{0, 0, cmplx.Exp(complex(0, phi))},
	}
}

func closeTo(t *testing.T, want, got complex128) {
	t.Helper()
	assert.InDelta(t, real(want), real(got), 1e-12)
	assert.InDelta(t, imag(want), imag(got), 1e-12)
}

func TestIdentityMul(t *testing.T) {
	assert.Equal(t, generic, Mul(Identity(), generic))
	assert.Equal(t, generic, Mul(generic, Identity()))
	assert.Equal(t, complex(3, 0), Trace(Identity()))
}

func TestDagger(t *testing.T) {
	d := Dagger(generic)
	assert.Equal(t, cmplx.Conj(generic[0][2]), d[2][0])
	assert.Equal(t, cmplx.Conj(generic[2][1]), d[1][2])
	assert.Equal(t, generic, Dagger(d), "conjugating twice is a no-op")

	t.Run("trace of conjugate is conjugate of trace", func(t *testing.T) {
		for _, m := range []Matrix{generic, other, unitary(0.3, 1.1)} {
			closeTo(t, cmplx.Conj(Trace(m)), Trace(Dagger(m)))
		}
	})
}

func TestTraceCyclic(t *testing.T) {
	closeTo(t, Trace(Mul(generic, other)), Trace(Mul(other, generic)))
	u := unitary(1.2, -0.4)
	closeTo(t, Trace(Mul(u, generic)), Trace(Mul(generic, u)))
}

func TestUnitaryProduct(t *testing.T) {
	u := unitary(0.7, 2.3)
	p := u.Mul(u.Dagger())
	closeTo(t, complex(3, 0), p.Trace())
	for i := range 3 {
		for j := range 3 {
			if i == j {
				closeTo(t, 1, p[i][j])
			} else {
				closeTo(t, 0, p[i][j])
			}
		}
	}
}

func TestOperandsNotMutated(t *testing.T) {
	a, b := generic, other
	_ = Mul(a, b)
	_ = Dagger(a)
	assert.Equal(t, generic, a)
	assert.Equal(t, other, b)
}
