// Copyright 2024 The ABACUS Orbital Generation Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package bessel

import (
	"math"

	"github.com/cpmech/gosl/chk"
	"gonum.org/v1/gonum/mat"
)

// Reduce returns the N x (N-1) real matrix jl_reduce(l, N, rcut) whose
// columns are linear combinations of the first N raw truncated-Bessel
// radial functions of angular momentum l such that each combination and
// its first radial derivative vanish at r=rcut.
//
// Every raw radial function u_q(r) = j_l(z_{l,q} r/rcut) already
// vanishes at r=rcut by construction (z_{l,q} is a zero of j_l), so the
// only constraint a reduced combination must additionally satisfy is
// that its derivative vanishes there too. That is a single linear
// functional w^T c = 0 on the coefficient vector c, with
// w_q = z_{l,q} * j_l'(z_{l,q}). The N-1 columns returned form an
// orthogonal basis of the hyperplane {c : w^T c = 0} with respect to
// the inner product induced by the (diagonal) Gram matrix of the raw
// basis under ∫ r^2 (.)(.) dr, which is exactly the inner product in
// which the raw basis itself is orthogonal. Because that Gram matrix is
// diagonal, orthogonality of the reduced columns under the physical
// radial inner product is therefore preserved.
func Reduce(l, n int, rcut float64) (*mat.Dense, error) {
	if n < 2 {
		return nil, chk.Err("ERR_SHAPE: jl_reduce requires at least 2 raw functions, got N=%d", n)
	}
	z := make([]float64, n)
	w := make([]float64, n)
	d := make([]float64, n) // diagonal Gram weights (squared raw norms)
	for q := 0; q < n; q++ {
		zq, err := Zero(l, q+1)
		if err != nil {
			return nil, err
		}
		z[q] = zq
		w[q] = zq * dJ(l, zq)
		norm, err := RawNorm(l, q, rcut)
		if err != nil {
			return nil, err
		}
		d[q] = norm * norm
	}

	// scale = w^T D^-1 w
	dinvW := make([]float64, n)
	scale := 0.0
	for q := 0; q < n; q++ {
		dinvW[q] = w[q] / d[q]
		scale += w[q] * dinvW[q]
	}

	// seed vectors: project e_q onto the hyperplane w^T c = 0 under the
	// D-metric, for q = 0..n-2.
	cols := make([][]float64, n-1)
	for q := 0; q < n-1; q++ {
		v := make([]float64, n)
		v[q] = 1
		coef := w[q] / scale
		for i := 0; i < n; i++ {
			v[i] -= coef * dinvW[i]
		}
		cols[q] = v
	}

	// modified Gram-Schmidt under the D-metric, normalizing each column.
	dotD := func(a, b []float64) float64 {
		s := 0.0
		for i := range a {
			s += a[i] * d[i] * b[i]
		}
		return s
	}
	for q := 0; q < n-1; q++ {
		for p := 0; p < q; p++ {
			proj := dotD(cols[q], cols[p])
			for i := 0; i < n; i++ {
				cols[q][i] -= proj * cols[p][i]
			}
		}
		norm2 := dotD(cols[q], cols[q])
		if norm2 <= 0 {
			return nil, chk.Err("ERR_SHAPE: jl_reduce degenerate column %d for l=%d N=%d", q, l, n)
		}
		inv := 1 / math.Sqrt(norm2)
		for i := 0; i < n; i++ {
			cols[q][i] *= inv
		}
	}

	m := mat.NewDense(n, n-1, nil)
	for q := 0; q < n-1; q++ {
		for i := 0; i < n; i++ {
			m.Set(i, q, cols[q][i])
		}
	}
	return m, nil
}
