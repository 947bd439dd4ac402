// Copyright 2024 The ABACUS Orbital Generation Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package spillage

import (
	"gonum.org/v1/gonum/mat"

	"github.com/kirk0830/abacus-orbital-generation/basis"
	"github.com/kirk0830/abacus-orbital-generation/cmat"
	"github.com/kirk0830/abacus-orbital-generation/nest"
)

// TabFrozen tabulates the frozen-subspace contribution to the spillage
// (§4.G.3) for every configuration in the engine, given a single frozen
// coefficient tensor shared across all of them. A nil coefFrozen means no
// orbitals are frozen: mirroring _tab_frozen's early return, every config
// then gets a zero spill_frozen and a nil mo_Pfrozen_jy, which the
// GeneralizeSpillage/TabDeriv guards already treat as a no-op.
func (e *Engine) TabFrozen(coefFrozen nest.Coef) error {
	e.spillFrozen = make([][]float64, len(e.Configs))
	e.moPfrozenJy = make([][2][]*cmat.Dense, len(e.Configs))

	if coefFrozen == nil {
		for iconf, cfg := range e.Configs {
			e.spillFrozen[iconf] = make([]float64, cfg.Nbands)
		}
		return nil
	}

	for iconf, cfg := range e.Configs {
		j, err := basis.Jy2Ao(coefFrozen, cfg.Natom, cfg.Lmax, basis.NbesScalar(cfg.Nbes), cfg.Rcut)
		if err != nil {
			return err
		}

		spillFrozen := make([]float64, cfg.Nbands)
		var pf [2][]*cmat.Dense
		for k := 0; k < cfg.Nk; k++ {
			var ff [2]*mat.Dense
			var mf [2]*cmat.Dense
			for c := 0; c < 2; c++ {
				ff[c] = sandwich(j, cfg.JyJy[c][k])
				mf[c] = cmat.MulReal(cfg.MoJy[c][k], j)
			}
			mfDual, err := cmat.RightDivideReal(mf[0], ff[0])
			if err != nil {
				return err
			}

			var jtJy mat.Dense
			jtJy.Mul(j.T(), cfg.JyJy[1][k])
			pfc1 := cmat.MulReal(mfDual, &jtJy)
			var jtJy0 mat.Dense
			jtJy0.Mul(j.T(), cfg.JyJy[0][k])
			pfc0 := cmat.MulReal(mfDual, &jtJy0)
			pf[0] = append(pf[0], pfc0)
			pf[1] = append(pf[1], pfc1)

			a := cmat.MulReal(mfDual, ff[1])
			rows1 := cmat.RFrobRows(a, mfDual)
			rows2 := cmat.RFrobRows(mfDual, mf[1])
			for b := 0; b < cfg.Nbands; b++ {
				spillFrozen[b] += cfg.Wk[k] * (rows1[b] - 2*rows2[b])
			}
		}
		e.spillFrozen[iconf] = spillFrozen
		e.moPfrozenJy[iconf] = pf
	}
	return nil
}
