// Copyright 2024 The ABACUS Orbital Generation Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package initgen extracts an initial guess for the spherical-Bessel
// expansion coefficients from a single-atom reference's molecular-orbital
// / spherical-wave overlap, by eigen-decomposing the per-angular-momentum
// ⟨jy|mo⟩⟨mo|jy⟩ block and QR-orthonormalizing the top eigenvectors
// (§4.F of the design).
package initgen

import (
	"sort"

	"github.com/cpmech/gosl/chk"
	"gonum.org/v1/gonum/mat"

	"github.com/kirk0830/abacus-orbital-generation/basis"
	"github.com/kirk0830/abacus-orbital-generation/bessel"
	"github.com/kirk0830/abacus-orbital-generation/cmat"
)

// Generate returns, for each l in 0..len(nzeta)-1, a (nzeta[l] x
// nbesGen[l]) coefficient matrix seeding the optimizer, in the reduced or
// normalized basis selected by reduced. moJy[k] is the single-atom
// reference's <mo|jy(raw)> overlap at k-point k, shape (nbands,
// nao*nbesRaw) with nao=(lmax+1)^2.
func Generate(nzeta []int, ecut float64, lmax int, rcut float64, nbesRaw int, moJy []*cmat.Dense, wk []float64, reduced bool) ([][][]float64, error) {
	lmaxGen := len(nzeta) - 1
	if lmaxGen > lmax {
		return nil, chk.Err("ERR_NZETA_EXCEEDS: initgen: requested lmax=%d exceeds reference lmax=%d", lmaxGen, lmax)
	}

	nbesGen := make([]int, lmaxGen+1)
	for l := 0; l <= lmaxGen; l++ {
		n, err := bessel.Nbes(l, rcut, ecut)
		if err != nil {
			return nil, err
		}
		if n <= 0 || n > nbesRaw {
			return nil, chk.Err("ERR_NZETA_EXCEEDS: initgen: nbes(l=%d)=%d not in (0,%d]", l, n, nbesRaw)
		}
		if nzeta[l] > n {
			return nil, chk.Err("ERR_NZETA_EXCEEDS: initgen: nzeta[%d]=%d exceeds available basis %d", l, nzeta[l], n)
		}
		nbesGen[l] = n
	}

	transform, err := basis.RawBasisTransformCoef(1, []int{lmax}, nbesRaw, rcut, reduced)
	if err != nil {
		return nil, err
	}
	m, err := basis.Jy2Ao(transform, []int{1}, []int{lmax}, basis.NbesScalar(nbesRaw), rcut)
	if err != nil {
		return nil, err
	}
	nbesNow := nbesRaw
	if reduced {
		nbesNow--
	}

	nk := len(moJy)
	y := make([]*cmat.Dense, nk)
	for k := 0; k < nk; k++ {
		y[k] = cmat.MulReal(moJy[k], m)
	}
	nbands, _ := y[0].Dims()

	out := make([][][]float64, lmaxGen+1)
	for l := 0; l <= lmaxGen; l++ {
		aoLo := l * l
		colBase := aoLo * nbesNow
		mBlock := 2*l + 1
		nb := nbesGen[l]

		a := mat.NewSymDense(nb, nil)
		for k := 0; k < nk; k++ {
			yl := cmat.NewDense(nbands*mBlock, nb)
			for band := 0; band < nbands; band++ {
				for mIdx := 0; mIdx < mBlock; mIdx++ {
					row := band*mBlock + mIdx
					colOff := colBase + mIdx*nbesNow
					for q := 0; q < nb; q++ {
						yl.Set(row, q, y[k].At(band, colOff+q))
					}
				}
			}
			prod := cmat.MulConjTransposeLeft(yl, yl)
			for i := 0; i < nb; i++ {
				for j := i; j < nb; j++ {
					a.SetSym(i, j, a.At(i, j)+wk[k]*prod.R.At(i, j))
				}
			}
		}

		var eig mat.EigenSym
		if ok := eig.Factorize(a, true); !ok {
			return nil, chk.Err("ERR_SINGULAR_OVERLAP: initgen: eigendecomposition of <jy|mo><mo|jy> failed for l=%d", l)
		}
		vals := eig.Values(nil)
		var vecs mat.Dense
		eig.VectorsTo(&vecs)

		order := make([]int, nb)
		for i := range order {
			order[i] = i
		}
		sort.Slice(order, func(i, j int) bool { return vals[order[i]] > vals[order[j]] })

		raw := mat.NewDense(nb, nzeta[l], nil)
		for col := 0; col < nzeta[l]; col++ {
			src := order[col]
			for row := 0; row < nb; row++ {
				raw.Set(row, col, vecs.At(row, src))
			}
		}

		var qr mat.QR
		qr.Factorize(raw)
		var q mat.Dense
		qr.QTo(&q)

		rows := make([][]float64, nzeta[l])
		for zeta := 0; zeta < nzeta[l]; zeta++ {
			row := make([]float64, nb)
			for qi := 0; qi < nb; qi++ {
				row[qi] = q.At(qi, zeta)
			}
			rows[zeta] = row
		}
		out[l] = rows
	}
	return out, nil
}
