// Copyright 2024 The ABACUS Orbital Generation Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package bessel

import "github.com/cpmech/gosl/chk"

// BuildRaw evaluates chi_{l,zeta}(r) = sum_q coef[zeta][q] * j_l(z_{l,q+1} r/rcut) / RawNorm(l,q,rcut)
// on the given grid r, for every zeta row of coef. coef[zeta] must have
// length equal to the number of raw functions used.
func BuildRaw(l int, coef [][]float64, rcut float64, r []float64) ([][]float64, error) {
	if len(coef) == 0 {
		return nil, nil
	}
	nbes := len(coef[0])
	zeros := make([]float64, nbes)
	norms := make([]float64, nbes)
	for q := 0; q < nbes; q++ {
		z, err := Zero(l, q+1)
		if err != nil {
			return nil, err
		}
		norm, err := RawNorm(l, q, rcut)
		if err != nil {
			return nil, err
		}
		zeros[q] = z
		norms[q] = norm
	}
	out := make([][]float64, len(coef))
	for zeta, row := range coef {
		if len(row) != nbes {
			return nil, chk.Err("ERR_SHAPE: build_raw ragged coefficient rows: row %d has length %d, want %d", zeta, len(row), nbes)
		}
		vals := make([]float64, len(r))
		for i, ri := range r {
			s := 0.0
			for q := 0; q < nbes; q++ {
				if ri > rcut {
					continue
				}
				s += row[q] / norms[q] * J(l, zeros[q]*ri/rcut)
			}
			vals[i] = s
		}
		out[zeta] = vals
	}
	return out, nil
}

// BuildReduced evaluates chi_{l,zeta}(r) for coefficients expressed in the
// reduced (end-smoothed) basis of size N-1, by first mapping them back to
// the raw basis through Reduce(l, N, rcut), whose columns are coefficients
// of the unnormalized j_l(z_{l,q} r/rcut), then scaling each by
// RawNorm(l,q,rcut) into the normalized coefficients BuildRaw expects.
func BuildReduced(l int, coef [][]float64, rcut float64, r []float64, nRaw int) ([][]float64, error) {
	red, err := Reduce(l, nRaw, rcut)
	if err != nil {
		return nil, err
	}
	norms := make([]float64, nRaw)
	for i := range norms {
		norm, err := RawNorm(l, i, rcut)
		if err != nil {
			return nil, err
		}
		norms[i] = norm
	}
	rawCoef := make([][]float64, len(coef))
	for zeta, row := range coef {
		if len(row) != nRaw-1 {
			return nil, chk.Err("ERR_SHAPE: build_reduced coefficient row %d has length %d, want %d", zeta, len(row), nRaw-1)
		}
		rr := make([]float64, nRaw)
		for i := 0; i < nRaw; i++ {
			s := 0.0
			for q := 0; q < nRaw-1; q++ {
				s += red.At(i, q) * row[q]
			}
			rr[i] = s * norms[i]
		}
		rawCoef[zeta] = rr
	}
	return BuildRaw(l, rawCoef, rcut, r)
}
