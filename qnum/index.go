// Copyright 2024 The ABACUS Orbital Generation Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package qnum implements the index algebra relating composite
// quantum-number tuples (species, atom, angular momentum, magnetic index,
// radial index) to flat offsets, and the permutations between the index
// orderings used by different matrix sources (§4.B of the design).
package qnum

import "github.com/cpmech/gosl/chk"

// Comp is a composite quantum-number tuple (itype, iatom, l, menc[, q]).
// Q is -1 when the tuple addresses a PAO-side slot with no radial index
// (the zeta axis is carried separately by the coefficient tensor, not by
// this tuple).
type Comp struct {
	Itype int
	Iatom int
	L     int
	Menc  int
	Q     int
}

// HasQ reports whether this tuple carries a radial (spherical-wave) index.
func (c Comp) HasQ() bool { return c.Q >= 0 }

// Menc encodes a magnetic quantum number m into the spec's m_enc scheme:
// m_enc = 2|m| - [m>0], so m = 0, +1, -1, +2, -2, ... maps to 0, 1, 2, 3, 4, ...
func Menc(m int) int {
	if m > 0 {
		return 2*m - 1
	}
	return 2 * (-m)
}

// Nao returns the number of atomic orbitals (ignoring any radial/zeta
// multiplicity): sum over species of natom[itype] * (lmax[itype]+1)^2.
func Nao(natom, lmax []int) int {
	n := 0
	for it := range natom {
		n += natom[it] * (lmax[it] + 1) * (lmax[it] + 1)
	}
	return n
}

// IndexMap returns the bijection between composite quantum-number tuples,
// enumerated in lexicographic order over (itype, iatom, l, menc[, q]), and
// a flat offset 0..N-1.
//
// When nbesPerTL is nil the innermost axis is menc alone and the result
// describes the PAO side (one slot per (itype,iatom,l,menc) block; the
// zeta multiplicity within a block is carried by the coefficient tensor,
// not by this index). When nbesPerTL is given (nbesPerTL[itype][l] is the
// number of radial functions for that species/angular-momentum pair) the
// innermost axis is q and the result describes the spherical-wave side.
func IndexMap(natom, lmax []int, nbesPerTL [][]int) (lin2comp []Comp, comp2lin map[Comp]int, err error) {
	if len(natom) != len(lmax) {
		return nil, nil, chk.Err("ERR_SHAPE: IndexMap: len(natom)=%d != len(lmax)=%d", len(natom), len(lmax))
	}
	if nbesPerTL != nil && len(nbesPerTL) != len(natom) {
		return nil, nil, chk.Err("ERR_SHAPE: IndexMap: len(nbesPerTL)=%d != len(natom)=%d", len(nbesPerTL), len(natom))
	}

	for it, na := range natom {
		if nbesPerTL != nil && len(nbesPerTL[it]) != lmax[it]+1 {
			return nil, nil, chk.Err("ERR_SHAPE: IndexMap: nbesPerTL[%d] has %d entries, want lmax+1=%d", it, len(nbesPerTL[it]), lmax[it]+1)
		}
		for ia := 0; ia < na; ia++ {
			for l := 0; l <= lmax[it]; l++ {
				nm := 2*l + 1
				if nbesPerTL == nil {
					for m := 0; m < nm; m++ {
						lin2comp = append(lin2comp, Comp{Itype: it, Iatom: ia, L: l, Menc: m, Q: -1})
					}
					continue
				}
				nq := nbesPerTL[it][l]
				for m := 0; m < nm; m++ {
					for q := 0; q < nq; q++ {
						lin2comp = append(lin2comp, Comp{Itype: it, Iatom: ia, L: l, Menc: m, Q: q})
					}
				}
			}
		}
	}

	comp2lin = make(map[Comp]int, len(lin2comp))
	for i, c := range lin2comp {
		comp2lin[c] = i
	}
	return lin2comp, comp2lin, nil
}
