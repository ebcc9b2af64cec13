package wilson

import "math/cmplx"

// 3×3 complex matrix (row-major), an SU(3) Wilson line when read from a lattice file
type Matrix [3][3]complex128

func Identity() Matrix {
	return Matrix{
		{1, 0, 0},
		{0, 1, 0},
		{0, 0, 1},
	}
}

func Mul(a, b Matrix) Matrix {
	var c Matrix
	for i := range 3 {
		for j := range 3 {
			var sum complex128
			for k := range 3 {
				sum += a[i][k] * b[k][j]
			}
			c[i][j] = sum
		}
	}
	return c
}

// Dagger returns the Hermitian conjugate.
func Dagger(a Matrix) Matrix {
	var d Matrix
	for i := range 3 {
		for j := range 3 {
			d[i][j] = cmplx.Conj(a[j][i])
		}
	}
	return d
}

func Trace(a Matrix) complex128 {
	return a[0][0] + a[1][1] + a[2][2]
}

func (a Matrix) Mul(b Matrix) Matrix { return Mul(a, b) }
func (a Matrix) Dagger() Matrix      { return Dagger(a) }
func (a Matrix) Trace() complex128   { return Trace(a) }
