// Copyright 2024 The ABACUS Orbital Generation Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package cmat

import (
	"math"
	"testing"

	"gonum.org/v1/gonum/mat"
)

func TestMulRealAndConjTranspose(t *testing.T) {
	a := NewDenseFromComplex(2, 2, []complex128{1 + 1i, 2 - 1i, 0 + 2i, 3})
	b := mat.NewDense(2, 2, []float64{1, 0, 0, 1}) // identity
	got := MulReal(a, b)
	for i := 0; i < 2; i++ {
		for j := 0; j < 2; j++ {
			if got.At(i, j) != a.At(i, j) {
				t.Fatalf("MulReal by identity changed (%d,%d): got %v want %v", i, j, got.At(i, j), a.At(i, j))
			}
		}
	}
	ct := a.ConjTranspose()
	if ct.At(0, 1) != complex(real(a.At(1, 0)), -imag(a.At(1, 0))) {
		t.Fatalf("ConjTranspose mismatch: %v", ct.At(0, 1))
	}
}

func TestMulConjTransposeLeftHermitian(t *testing.T) {
	a := NewDenseFromComplex(3, 2, []complex128{1 + 1i, 2, 0 - 1i, 1, 3 + 2i, 0.5})
	prod := MulConjTransposeLeft(a, a)
	rows, cols := prod.Dims()
	for i := 0; i < rows; i++ {
		for j := 0; j < cols; j++ {
			want := complex(real(prod.At(j, i)), -imag(prod.At(j, i)))
			if got := prod.At(i, j); math.Abs(real(got)-real(want)) > 1e-9 || math.Abs(imag(got)-imag(want)) > 1e-9 {
				t.Fatalf("a^H a not hermitian at (%d,%d): %v vs %v", i, j, got, want)
			}
		}
	}
}

func TestRFrobRowsMatchesFull(t *testing.T) {
	a := NewDenseFromComplex(2, 2, []complex128{1 + 1i, 2, 0 - 1i, 1})
	b := NewDenseFromComplex(2, 2, []complex128{1, 0 + 1i, 2, 3 - 1i})
	rows := RFrobRows(a, b)
	sum := 0.0
	for _, v := range rows {
		sum += v
	}
	if math.Abs(sum-RFrobFull(a, b)) > 1e-12 {
		t.Fatalf("sum of rows %v != full %v", sum, RFrobFull(a, b))
	}
}

func TestRightDivideRealRoundTrip(t *testing.T) {
	den := mat.NewDense(2, 2, []float64{4, 1, 1, 3})
	num := FromReal(den) // num = den, so num*den^-1 should be identity
	x, err := RightDivideReal(num, den)
	if err != nil {
		t.Fatal(err)
	}
	for i := 0; i < 2; i++ {
		for j := 0; j < 2; j++ {
			want := 0.0
			if i == j {
				want = 1.0
			}
			if math.Abs(real(x.At(i, j))-want) > 1e-9 {
				t.Fatalf("(%d,%d): got %v want %v", i, j, x.At(i, j), want)
			}
		}
	}
}

func TestRightDivideRealSingular(t *testing.T) {
	den := mat.NewDense(2, 2, []float64{1, 1, 1, 1}) // rank-deficient
	num := FromReal(den)
	if _, err := RightDivideReal(num, den); err == nil {
		t.Fatal("expected ERR_SINGULAR_OVERLAP")
	}
}
