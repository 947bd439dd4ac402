// Copyright 2024 The ABACUS Orbital Generation Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package spillage

import (
	"github.com/cpmech/gosl/chk"

	"github.com/kirk0830/abacus-orbital-generation/basis"
	"github.com/kirk0830/abacus-orbital-generation/cmat"
	"github.com/kirk0830/abacus-orbital-generation/nest"
)

// GeneralizeSpillage evaluates the generalized spillage (§4.G.2) for
// configuration iconf at the given coefficient tensor and band subset,
// optionally with its analytic gradient (§4.G.5). TabFrozen must have
// been called; TabDeriv must additionally have been called, with a
// matching coefficient shape, if withGrad is true.
func (e *Engine) GeneralizeSpillage(iconf int, coef nest.Coef, ibands []int, withGrad bool) (float64, nest.Coef, error) {
	if iconf < 0 || iconf >= len(e.Configs) {
		return 0, nil, chk.Err("ERR_SHAPE: GeneralizeSpillage: iconf=%d out of range", iconf)
	}
	if e.moPfrozenJy == nil {
		return 0, nil, chk.Err("ERR_SHAPE: GeneralizeSpillage: TabFrozen has not been called")
	}
	cfg := e.Configs[iconf]
	nb := len(ibands)
	if nb == 0 {
		return 0, nil, chk.Err("ERR_SHAPE: GeneralizeSpillage: ibands is empty")
	}

	m, err := basis.Jy2Ao(coef, cfg.Natom, cfg.Lmax, basis.NbesScalar(cfg.Nbes), cfg.Rcut)
	if err != nil {
		return 0, nil, err
	}

	var grad []float64
	if withGrad {
		if e.moQfrozenDao == nil {
			return 0, nil, chk.Err("ERR_SHAPE: GeneralizeSpillage: TabDeriv has not been called")
		}
		grad = make([]float64, e.derivPat.NumLeaves())
	}

	spill := 0.0
	for k := 0; k < cfg.Nk; k++ {
		wk := cfg.Wk[k]

		v0 := cmat.MulReal(sliceRows(cfg.MoJy[0][k], ibands), m)
		v1 := cmat.MulReal(sliceRows(cfg.MoJy[1][k], ibands), m)
		w0 := sandwich(m, cfg.JyJy[0][k])
		w1 := sandwich(m, cfg.JyJy[1][k])

		if pf := e.moPfrozenJy[iconf]; pf[0] != nil {
			v0 = cmat.Sub(v0, cmat.MulReal(sliceRows(pf[0][k], ibands), m))
			v1 = cmat.Sub(v1, cmat.MulReal(sliceRows(pf[1][k], ibands), m))
		}

		vDual, err := cmat.RightDivideReal(v0, w0)
		if err != nil {
			return 0, nil, err
		}
		vDagV := cmat.MulConjTransposeLeft(vDual, vDual)

		momoSum := 0.0
		for _, b := range ibands {
			momoSum += cfg.MoMo[1][k][b]
		}
		term := cmat.RFrobFull(cmat.FromReal(w1), vDagV) - 2*cmat.RFrobFull(vDual, v1)
		spill += wk * (momoSum + term)

		if withGrad {
			otherNum := cmat.Sub(cmat.MulReal(vDual, w1), v1)
			other, err := cmat.RightDivideReal(otherNum, w0)
			if err != nil {
				return 0, nil, err
			}

			for i := 0; i < len(grad); i++ {
				dW0 := symmetrizeReal(productDaoM(e.daoJy[iconf][0][i][k], m))
				dW1 := symmetrizeReal(productDaoM(e.daoJy[iconf][1][i][k], m))
				dV0 := sliceRows(e.moQfrozenDao[iconf][0][i][k], ibands)
				dV1 := sliceRows(e.moQfrozenDao[iconf][1][i][k], ibands)

				t1 := cmat.RFrobFull(cmat.FromReal(dW1), vDagV)
				t2 := cmat.RFrobFull(vDual, dV1)

				inner := cmat.Sub(dV0, cmat.MulReal(vDual, dW0))
				t3 := cmat.RFrobFull(inner, other)

				grad[i] += wk * (t1 - 2*t2 + 2*t3)
			}
		}
	}

	for _, b := range ibands {
		spill += e.spillFrozen[iconf][b]
	}
	spill /= float64(nb)

	var gradCoef nest.Coef
	if withGrad {
		for i := range grad {
			grad[i] /= float64(nb)
		}
		gradCoef, err = nest.Nest(grad, e.derivPat)
		if err != nil {
			return 0, nil, err
		}
	}
	return spill, gradCoef, nil
}

