// Copyright 2024 The ABACUS Orbital Generation Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package basis implements the block-diagonal basis transformation matrix
// mapping the spherical-wave basis to a pseudo-atomic-orbital basis
// (§4.D of the design).
package basis

import "github.com/cpmech/gosl/chk"

// NbesSpec is the number of spherical-wave radial functions accepted by
// Jy2Ao in any of its three equivalent forms: a single scalar broadcast
// to every (itype,l), a per-l list broadcast over itype, or a fully
// resolved per-(itype,l) nested list.
type NbesSpec struct {
	scalar   *int
	perL     []int
	perTypeL [][]int
}

// NbesScalar broadcasts a single radial-function count to every species
// and angular momentum.
func NbesScalar(n int) NbesSpec { return NbesSpec{scalar: &n} }

// NbesPerL gives nbes[l], broadcast over species.
func NbesPerL(n []int) NbesSpec { return NbesSpec{perL: n} }

// NbesPerTypeL gives nbes[itype][l] directly.
func NbesPerTypeL(n [][]int) NbesSpec { return NbesSpec{perTypeL: n} }

// resolve expands spec into nbes[itype][l] given lmax per species.
func (s NbesSpec) resolve(lmax []int) ([][]int, error) {
	out := make([][]int, len(lmax))
	switch {
	case s.scalar != nil:
		for it, lm := range lmax {
			row := make([]int, lm+1)
			for l := range row {
				row[l] = *s.scalar
			}
			out[it] = row
		}
	case s.perL != nil:
		for it, lm := range lmax {
			if len(s.perL) < lm+1 {
				return nil, chk.Err("ERR_SHAPE: nbes per-l list has length %d, need at least lmax+1=%d for species %d", len(s.perL), lm+1, it)
			}
			row := make([]int, lm+1)
			copy(row, s.perL[:lm+1])
			out[it] = row
		}
	case s.perTypeL != nil:
		if len(s.perTypeL) != len(lmax) {
			return nil, chk.Err("ERR_SHAPE: nbes per-type-l list has %d species, want %d", len(s.perTypeL), len(lmax))
		}
		for it, lm := range lmax {
			if len(s.perTypeL[it]) != lm+1 {
				return nil, chk.Err("ERR_SHAPE: nbes[%d] has length %d, want lmax+1=%d", it, len(s.perTypeL[it]), lm+1)
			}
			out[it] = s.perTypeL[it]
		}
	default:
		return nil, chk.Err("ERR_SHAPE: nbes spec is empty")
	}
	return out, nil
}
