// Copyright 2024 The ABACUS Orbital Generation Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package cmat implements the small amount of complex dense linear algebra
// the spillage engine needs (mo-jy overlaps are complex in general) on top
// of gonum/mat real matrices, rather than carrying a full complex BLAS
// dependency for a handful of operations. Every matrix is split into a
// real and an imaginary gonum Dense of identical shape.
package cmat

import (
	"github.com/cpmech/gosl/chk"
	"gonum.org/v1/gonum/mat"
)

// Dense is a complex dense matrix stored as separate real and imaginary
// gonum matrices.
type Dense struct {
	R, I *mat.Dense
}

// NewDense returns a zero-valued rows-by-cols complex matrix.
func NewDense(rows, cols int) *Dense {
	return &Dense{R: mat.NewDense(rows, cols, nil), I: mat.NewDense(rows, cols, nil)}
}

// NewDenseFromComplex builds a Dense from row-major complex128 data.
func NewDenseFromComplex(rows, cols int, data []complex128) *Dense {
	re := make([]float64, len(data))
	im := make([]float64, len(data))
	for i, v := range data {
		re[i] = real(v)
		im[i] = imag(v)
	}
	return &Dense{R: mat.NewDense(rows, cols, re), I: mat.NewDense(rows, cols, im)}
}

// Dims returns the matrix's row and column count.
func (d *Dense) Dims() (int, int) { return d.R.Dims() }

// At returns the (i,j) entry.
func (d *Dense) At(i, j int) complex128 { return complex(d.R.At(i, j), d.I.At(i, j)) }

// Set assigns the (i,j) entry.
func (d *Dense) Set(i, j int, v complex128) {
	d.R.Set(i, j, real(v))
	d.I.Set(i, j, imag(v))
}

// ConjTranspose returns the conjugate transpose of d.
func (d *Dense) ConjTranspose() *Dense {
	rows, cols := d.Dims()
	out := NewDense(cols, rows)
	out.R.CloneFrom(d.R.T())
	out.I.CloneFrom(d.I.T())
	out.I.Scale(-1, out.I)
	return out
}

// MulReal returns a*b where a is complex (m x k) and b is real (k x n).
func MulReal(a *Dense, b *mat.Dense) *Dense {
	ar, ac := a.Dims()
	br, bc := b.Dims()
	if ac != br {
		chk.Panic("ERR_SHAPE: cmat.MulReal: a is %dx%d, b is %dx%d", ar, ac, br, bc)
	}
	out := NewDense(ar, bc)
	out.R.Mul(a.R, b)
	out.I.Mul(a.I, b)
	return out
}

// MulConjTransposeLeft returns a^H * b for two complex matrices a (k x m)
// and b (k x n), both with k rows.
func MulConjTransposeLeft(a, b *Dense) *Dense {
	ak, am := a.Dims()
	bk, bn := b.Dims()
	if ak != bk {
		chk.Panic("ERR_SHAPE: cmat.MulConjTransposeLeft: a is %dx%d, b is %dx%d", ak, am, bk, bn)
	}
	out := NewDense(am, bn)
	var t1, t2 mat.Dense
	t1.Mul(a.R.T(), b.R)
	t2.Mul(a.I.T(), b.I)
	out.R.Add(&t1, &t2)
	t1.Mul(a.R.T(), b.I)
	t2.Mul(a.I.T(), b.R)
	out.I.Sub(&t1, &t2)
	return out
}

// Add returns a+b.
func Add(a, b *Dense) *Dense {
	rows, cols := a.Dims()
	out := NewDense(rows, cols)
	out.R.Add(a.R, b.R)
	out.I.Add(a.I, b.I)
	return out
}

// Sub returns a-b.
func Sub(a, b *Dense) *Dense {
	rows, cols := a.Dims()
	out := NewDense(rows, cols)
	out.R.Sub(a.R, b.R)
	out.I.Sub(a.I, b.I)
	return out
}

// Scale returns s*a for a real scalar s.
func Scale(s float64, a *Dense) *Dense {
	rows, cols := a.Dims()
	out := NewDense(rows, cols)
	out.R.Scale(s, a.R)
	out.I.Scale(s, a.I)
	return out
}

// FromReal embeds a real gonum matrix as a complex matrix with zero
// imaginary part.
func FromReal(a *mat.Dense) *Dense {
	rows, cols := a.Dims()
	out := NewDense(rows, cols)
	out.R.CloneFrom(a)
	return out
}

// RFrobFull returns Re(tr(a^H b)), the real part of the full Frobenius
// inner product of a and b, which must share shape.
func RFrobFull(a, b *Dense) float64 {
	rows, cols := a.Dims()
	sum := 0.0
	for i := 0; i < rows; i++ {
		for j := 0; j < cols; j++ {
			av, bv := a.At(i, j), b.At(i, j)
			sum += real(av)*real(bv) + imag(av)*imag(bv)
		}
	}
	return sum
}

// RFrobRows returns, for each row i, Re(sum_j conj(a[i,j]) * b[i,j]). a and
// b must share shape. This is the per-band variant of RFrobFull used when
// the frozen-subspace contribution to spillage is needed one band at a
// time rather than summed over all bands.
func RFrobRows(a, b *Dense) []float64 {
	rows, cols := a.Dims()
	out := make([]float64, rows)
	for i := 0; i < rows; i++ {
		sum := 0.0
		for j := 0; j < cols; j++ {
			av, bv := a.At(i, j), b.At(i, j)
			sum += real(av)*real(bv) + imag(av)*imag(bv)
		}
		out[i] = sum
	}
	return out
}
