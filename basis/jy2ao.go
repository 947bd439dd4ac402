// Copyright 2024 The ABACUS Orbital Generation Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package basis

import (
	"github.com/cpmech/gosl/chk"
	"gonum.org/v1/gonum/blas/blas64"
	"gonum.org/v1/gonum/mat"

	"github.com/kirk0830/abacus-orbital-generation/nest"
	"github.com/kirk0830/abacus-orbital-generation/qnum"
)

// Jy2Ao returns the block-diagonal real matrix mapping the spherical-wave
// basis to the pseudo-atomic-orbital basis specified by coef. Each block
// corresponds to a single (itype, iatom, l, menc) slot and has shape
// (nbes[itype][l], nzeta[itype][l]); its columns are coef[itype][l][zeta]
// zero-padded to nbes[itype][l] rows. A (itype,l) with no zetas produces
// an empty column block of that slot's row height.
//
// rcut is accepted for interface parity with the rest of the spillage
// pipeline (every caller threads a common cutoff radius through its
// calls); the transform itself is a pure zero-padding/reindexing of coef
// and does not evaluate it.
func Jy2Ao(coef nest.Coef, natom, lmax []int, nbesSpec NbesSpec, rcut float64) (*mat.Dense, error) {
	if len(natom) != len(lmax) || len(coef) != len(natom) {
		return nil, chk.Err("ERR_SHAPE: jy2ao: len(natom)=%d len(lmax)=%d len(coef)=%d must agree", len(natom), len(lmax), len(coef))
	}
	nbes, err := nbesSpec.resolve(lmax)
	if err != nil {
		return nil, err
	}

	lin2comp, _, err := qnum.IndexMap(natom, lmax, nil)
	if err != nil {
		return nil, err
	}

	nrows, ncols := 0, 0
	type block struct {
		rowOff, colOff, nb, nz int
		col                    [][]float64 // zeta rows, length <= nb
	}
	blocks := make([]block, 0, len(lin2comp))
	for _, c := range lin2comp {
		nb := nbes[c.Itype][c.L]
		var rows [][]float64
		if c.L < len(coef[c.Itype]) {
			rows = coef[c.Itype][c.L]
		}
		nz := len(rows)
		blocks = append(blocks, block{rowOff: nrows, colOff: ncols, nb: nb, nz: nz, col: rows})
		nrows += nb
		ncols += nz
	}

	if nrows == 0 || ncols == 0 {
		// mat.NewDense panics on a zero dimension (ErrZeroLength); a
		// fully-unfrozen or fully-empty request is legitimate here, so
		// build the raw matrix directly instead of going through it.
		m := new(mat.Dense)
		m.SetRawMatrix(blas64.General{Rows: nrows, Cols: ncols, Stride: max(ncols, 1)})
		return m, nil
	}

	m := mat.NewDense(nrows, ncols, nil)
	for _, b := range blocks {
		for zeta, row := range b.col {
			if len(row) > b.nb {
				return nil, chk.Err("ERR_SHAPE: jy2ao: coefficient row has length %d, exceeds nbes=%d", len(row), b.nb)
			}
			for q, v := range row {
				m.Set(b.rowOff+q, b.colOff+zeta, v)
			}
		}
	}
	return m, nil
}
