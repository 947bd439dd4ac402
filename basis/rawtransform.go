// Copyright 2024 The ABACUS Orbital Generation Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package basis

import (
	"github.com/cpmech/gosl/chk"

	"github.com/kirk0830/abacus-orbital-generation/bessel"
	"github.com/kirk0830/abacus-orbital-generation/nest"
)

// RawBasisTransformCoef builds the coefficient tensor that, fed through
// Jy2Ao with nbes=nbesRaw, produces the matrix mapping the raw truncated
// spherical-Bessel basis onto either the reduced or the normalized basis
// (§4.F step 2 / the one-time conversion every loaded configuration goes
// through on add). It is broadcast identically over every species: each
// species' transform depends only on l, rcut and nbesRaw.
//
// Reduced: coef[itype][l] has nbesRaw-1 rows (one per reduced basis
// vector), each of length nbesRaw — the transpose of jl_reduce(l,
// nbesRaw, rcut). Normalized: coef[itype][l] has nbesRaw rows, each a
// one-hot scaled by 1/jl_raw_norm(l, q, rcut).
func RawBasisTransformCoef(ntype int, lmax []int, nbesRaw int, rcut float64, reduced bool) (nest.Coef, error) {
	if len(lmax) != ntype {
		return nil, chk.Err("ERR_SHAPE: RawBasisTransformCoef: len(lmax)=%d, want ntype=%d", len(lmax), ntype)
	}
	c := make(nest.Coef, ntype)
	for it := 0; it < ntype; it++ {
		byL := make([][][]float64, lmax[it]+1)
		for l := 0; l <= lmax[it]; l++ {
			var rows [][]float64
			if reduced {
				red, err := bessel.Reduce(l, nbesRaw, rcut)
				if err != nil {
					return nil, err
				}
				_, nz := red.Dims()
				rows = make([][]float64, nz)
				for z := 0; z < nz; z++ {
					row := make([]float64, nbesRaw)
					for q := 0; q < nbesRaw; q++ {
						row[q] = red.At(q, z)
					}
					rows[z] = row
				}
			} else {
				rows = make([][]float64, nbesRaw)
				for q := 0; q < nbesRaw; q++ {
					norm, err := bessel.RawNorm(l, q, rcut)
					if err != nil {
						return nil, err
					}
					row := make([]float64, nbesRaw)
					row[q] = 1 / norm
					rows[q] = row
				}
			}
			byL[l] = rows
		}
		c[it] = byL
	}
	return c, nil
}
