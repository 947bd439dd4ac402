// Copyright 2024 The ABACUS Orbital Generation Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package nest implements flatten/nest/merge over the ragged nested
// coefficient container used throughout the spillage engine, together
// with a retained "shape pattern" sufficient to reverse the flattening
// (§4.C of the design).
package nest

import "github.com/cpmech/gosl/chk"

// Coef is a 4-level ragged container indexed Coef[itype][l][zeta][q].
// len(Coef[itype][l]) is the number of zetas for (itype,l); every zeta
// row for a fixed (itype,l) must have the same length (shorter rows are
// not auto-padded here — padding to nbes happens in package basis).
type Coef [][][][]float64

// LShape records the shape of one (itype,l) block: how many zeta rows
// and how long each row is.
type LShape struct {
	Nzeta int
	Nq    int
}

// Pattern is a machine-readable description of the ragged shape of a
// Coef, sufficient to reverse Flatten via Nest.
type Pattern struct {
	Types [][]LShape // Types[itype][l]
}

// Flatten performs a depth-first enumeration of coefficients from a Coef,
// in (itype, l, zeta, q) order.
func Flatten(c Coef) []float64 {
	var out []float64
	for _, byL := range c {
		for _, byZeta := range byL {
			for _, row := range byZeta {
				out = append(out, row...)
			}
		}
	}
	return out
}

// NestPat computes the shape pattern of c.
func NestPat(c Coef) Pattern {
	pat := Pattern{Types: make([][]LShape, len(c))}
	for it, byL := range c {
		pat.Types[it] = make([]LShape, len(byL))
		for l, byZeta := range byL {
			nq := 0
			if len(byZeta) > 0 {
				nq = len(byZeta[0])
			}
			pat.Types[it][l] = LShape{Nzeta: len(byZeta), Nq: nq}
		}
	}
	return pat
}

// NumLeaves returns the number of scalar leaves a pattern demands.
func (p Pattern) NumLeaves() int {
	n := 0
	for _, byL := range p.Types {
		for _, s := range byL {
			n += s.Nzeta * s.Nq
		}
	}
	return n
}

// Nest rebuilds a Coef from a flat sequence and a pattern. It fails with
// ERR_SHAPE if len(xs) does not match the number of leaves pat demands.
func Nest(xs []float64, pat Pattern) (Coef, error) {
	if len(xs) != pat.NumLeaves() {
		return nil, chk.Err("ERR_SHAPE: nest: len(xs)=%d does not match pattern's %d leaves", len(xs), pat.NumLeaves())
	}
	c := make(Coef, len(pat.Types))
	i := 0
	for it, byL := range pat.Types {
		c[it] = make([][][]float64, len(byL))
		for l, s := range byL {
			c[it][l] = make([][]float64, s.Nzeta)
			for z := 0; z < s.Nzeta; z++ {
				row := make([]float64, s.Nq)
				copy(row, xs[i:i+s.Nq])
				i += s.Nq
				c[it][l][z] = row
			}
		}
	}
	return c, nil
}

// Merge concatenates two Coef tensors along the zeta axis (depth=2),
// gluing additional zeta tiers onto an existing coefficient set — the
// only merge depth with a physically meaningful operation in this
// domain: itype and l are structural axes fixed by the system being
// described, and q is a basis-size axis that cannot be concatenated
// without changing what each zeta row means. For every (itype,l), a and
// b must agree on Nq; their zeta rows are concatenated a-then-b.
func Merge(a, b Coef, depth int) (Coef, error) {
	if depth != 2 {
		return nil, chk.Err("ERR_SHAPE: merge: only the zeta axis (depth=2) has a defined merge in this domain, got depth=%d", depth)
	}
	if len(a) != len(b) {
		return nil, chk.Err("ERR_SHAPE: merge: itype count mismatch %d vs %d", len(a), len(b))
	}
	out := make(Coef, len(a))
	for it := range a {
		if len(a[it]) != len(b[it]) {
			return nil, chk.Err("ERR_SHAPE: merge: itype %d has %d l-blocks vs %d", it, len(a[it]), len(b[it]))
		}
		out[it] = make([][][]float64, len(a[it]))
		for l := range a[it] {
			aRows, bRows := a[it][l], b[it][l]
			nqA, nqB := 0, 0
			if len(aRows) > 0 {
				nqA = len(aRows[0])
			}
			if len(bRows) > 0 {
				nqB = len(bRows[0])
			}
			if len(aRows) > 0 && len(bRows) > 0 && nqA != nqB {
				return nil, chk.Err("ERR_SHAPE: merge: itype=%d l=%d has nq=%d vs nq=%d", it, l, nqA, nqB)
			}
			merged := make([][]float64, 0, len(aRows)+len(bRows))
			merged = append(merged, aRows...)
			merged = append(merged, bRows...)
			out[it][l] = merged
		}
	}
	return out, nil
}
