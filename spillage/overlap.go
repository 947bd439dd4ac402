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

// OverlapSpillage evaluates the plain overlap spillage (§4.G.1) directly
// from a configuration's c=0 slice, with no precomputed tables. It exists
// solely to cross-check the generalized spillage: when a configuration's
// operator slice equals its overlap slice (jy_jy[1]==jy_jy[0], etc.), the
// two must agree (testable property 5).
func OverlapSpillage(cfg *Config, coef, coefFrozen nest.Coef, ibands []int) (float64, error) {
	m, err := basis.Jy2Ao(coef, cfg.Natom, cfg.Lmax, basis.NbesScalar(cfg.Nbes), cfg.Rcut)
	if err != nil {
		return 0, err
	}

	spill := 0.0
	for k := 0; k < cfg.Nk; k++ {
		wk := cfg.Wk[k]
		for _, b := range ibands {
			spill += wk * cfg.MoMo[0][k][b]
		}

		moJy := sliceRows(cfg.MoJy[0][k], ibands)
		v := cmat.MulReal(moJy, m)
		w := sandwich(m, cfg.JyJy[0][k])

		if coefFrozen != nil {
			jf, err := basis.Jy2Ao(coefFrozen, cfg.Natom, cfg.Lmax, basis.NbesScalar(cfg.Nbes), cfg.Rcut)
			if err != nil {
				return 0, err
			}
			x := cmat.MulReal(moJy, jf)
			s := sandwich(jf, cfg.JyJy[0][k])
			xDual, err := cmat.RightDivideReal(x, s)
			if err != nil {
				return 0, err
			}

			var jfTjyJy, jfTjyJyM mat.Dense
			jfTjyJy.Mul(jf.T(), cfg.JyJy[0][k])
			jfTjyJyM.Mul(&jfTjyJy, m)
			v = cmat.Sub(v, cmat.MulReal(xDual, &jfTjyJyM))
			spill -= wk * cmat.RFrobFull(xDual, x)
		}

		vDual, err := cmat.RightDivideReal(v, w)
		if err != nil {
			return 0, err
		}
		spill -= wk * cmat.RFrobFull(vDual, v)
	}
	return spill / float64(len(ibands)), nil
}
