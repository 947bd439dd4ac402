// Copyright 2024 The ABACUS Orbital Generation Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package spillage

import (
	"gonum.org/v1/gonum/mat"

	"github.com/kirk0830/abacus-orbital-generation/cmat"
)

// sliceRows returns the rows of d at the given indices, in order.
func sliceRows(d *cmat.Dense, ibands []int) *cmat.Dense {
	_, cols := d.Dims()
	out := cmat.NewDense(len(ibands), cols)
	for i, b := range ibands {
		for j := 0; j < cols; j++ {
			out.Set(i, j, d.At(b, j))
		}
	}
	return out
}

// symmetrizeReal returns a + a.T for a square real matrix — the
// swap_last_two(.)^H correction dW receives (real matrices are their own
// conjugate).
func symmetrizeReal(a *mat.Dense) *mat.Dense {
	rows, cols := a.Dims()
	out := mat.NewDense(rows, cols, nil)
	out.Add(a, a.T())
	return out
}

// productDaoM returns dao * m for the real (ao x mu) dao_jy slice and the
// real (mu x ao) basis matrix m, both per-coefficient-leaf quantities
// that feed the dW term of the gradient (§4.G.5).
func productDaoM(dao, m *mat.Dense) *mat.Dense {
	var out mat.Dense
	out.Mul(dao, m)
	return &out
}
