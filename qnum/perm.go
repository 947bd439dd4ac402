// Copyright 2024 The ABACUS Orbital Generation Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package qnum

import "sort"

// PermZetaM returns a permutation p of flat indices such that, for an
// array A laid out according to lin2comp's (..., l, menc, q) ordering,
// the array gathered as B[j] = A[p[j]] is laid out in (..., l, q, menc)
// order instead. This is needed because upstream LCAO S/T matrices ship
// with q varying slower than menc, while the spillage engine works
// internally with menc varying slower than q.
func PermZetaM(lin2comp []Comp) []int {
	n := len(lin2comp)
	order := make([]int, n)
	for i := range order {
		order[i] = i
	}
	sort.SliceStable(order, func(a, b int) bool {
		ca, cb := lin2comp[order[a]], lin2comp[order[b]]
		if ca.Itype != cb.Itype {
			return ca.Itype < cb.Itype
		}
		if ca.Iatom != cb.Iatom {
			return ca.Iatom < cb.Iatom
		}
		if ca.L != cb.L {
			return ca.L < cb.L
		}
		if ca.Q != cb.Q {
			return ca.Q < cb.Q
		}
		return ca.Menc < cb.Menc
	})
	return order
}
