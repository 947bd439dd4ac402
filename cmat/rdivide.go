// Copyright 2024 The ABACUS Orbital Generation Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package cmat

import (
	"github.com/cpmech/gosl/chk"
	"gonum.org/v1/gonum/mat"
)

// RightDivideReal returns num * den^-1 where num is complex (m x n) and den
// is real, symmetric and positive-definite (n x n) — the shape every
// overlap-normal-equation denominator (W, FF, S) takes in this engine. It
// fails with ERR_SINGULAR_OVERLAP if den is not positive-definite.
func RightDivideReal(num *Dense, den *mat.Dense) (*Dense, error) {
	n, _ := den.Dims()
	sym := mat.NewSymDense(n, nil)
	for i := 0; i < n; i++ {
		for j := i; j < n; j++ {
			sym.SetSym(i, j, 0.5*(den.At(i, j)+den.At(j, i)))
		}
	}
	var chol mat.Cholesky
	if ok := chol.Factorize(sym); !ok {
		return nil, chk.Err("ERR_SINGULAR_OVERLAP: denominator matrix is not positive-definite")
	}
	var inv mat.Dense
	if err := chol.InverseTo(&inv); err != nil {
		return nil, chk.Err("ERR_SINGULAR_OVERLAP: %v", err)
	}
	return MulReal(num, &inv), nil
}
