// Copyright 2024 The ABACUS Orbital Generation Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package spillage

import (
	"gonum.org/v1/gonum/mat"

	"github.com/cpmech/gosl/chk"

	"github.com/kirk0830/abacus-orbital-generation/basis"
	"github.com/kirk0830/abacus-orbital-generation/cmat"
	"github.com/kirk0830/abacus-orbital-generation/nest"
)

// TabDeriv tabulates <ao|jy> and <ao|op|jy> derivatives w.r.t. every
// coefficient leaf of coefShape (§4.G.4). Only the shape of coefShape
// matters — its leaf values are never read — and TabFrozen must have been
// called first since the frozen-subspace projector enters the
// mo_Qfrozen_dao correction. Recompute this whenever the frozen set or
// the optimization coefficient's nesting shape changes; between
// optimizer iterations where only values change, the existing tables
// remain valid.
func (e *Engine) TabDeriv(coefShape nest.Coef) error {
	if e.moPfrozenJy == nil {
		return chk.Err("ERR_SHAPE: TabDeriv called before TabFrozen")
	}
	pat := nest.NestPat(coefShape)
	n := pat.NumLeaves()

	e.daoJy = make([][2][][]*mat.Dense, len(e.Configs))
	e.moQfrozenDao = make([][2][][]*cmat.Dense, len(e.Configs))

	for iconf, cfg := range e.Configs {
		var dao [2][][]*mat.Dense
		var mqd [2][][]*cmat.Dense
		for c := 0; c < 2; c++ {
			dao[c] = make([][]*mat.Dense, n)
			mqd[c] = make([][]*cmat.Dense, n)
		}

		xs := make([]float64, n)
		for i := 0; i < n; i++ {
			xs[i] = 1
			ei, err := nest.Nest(xs, pat)
			xs[i] = 0
			if err != nil {
				return err
			}
			ji, err := basis.Jy2Ao(ei, cfg.Natom, cfg.Lmax, basis.NbesScalar(cfg.Nbes), cfg.Rcut)
			if err != nil {
				return err
			}
			for c := 0; c < 2; c++ {
				dao[c][i] = make([]*mat.Dense, cfg.Nk)
				mqd[c][i] = make([]*cmat.Dense, cfg.Nk)
				for k := 0; k < cfg.Nk; k++ {
					var d mat.Dense
					d.Mul(ji.T(), cfg.JyJy[c][k])
					dao[c][i][k] = &d

					m := cmat.MulReal(cfg.MoJy[c][k], ji)
					if e.moPfrozenJy[iconf][c] != nil {
						m = cmat.Sub(m, cmat.MulReal(e.moPfrozenJy[iconf][c][k], ji))
					}
					mqd[c][i][k] = m
				}
			}
		}
		e.daoJy[iconf] = dao
		e.moQfrozenDao[iconf] = mqd
	}
	e.derivPat = pat
	return nil
}
