// Copyright 2024 The ABACUS Orbital Generation Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package spillage implements the generalized-spillage engine: per-
// configuration state, frozen-subspace and coefficient-derivative
// tabulation, and the spillage value with its analytic gradient
// (§4.G of the design).
package spillage

import (
	"github.com/cpmech/gosl/chk"
	"gonum.org/v1/gonum/mat"

	"github.com/kirk0830/abacus-orbital-generation/basis"
	"github.com/kirk0830/abacus-orbital-generation/cmat"
	"github.com/kirk0830/abacus-orbital-generation/dataset"
	"github.com/kirk0830/abacus-orbital-generation/nest"
	"github.com/kirk0830/abacus-orbital-generation/qnum"
)

// Config is one reference configuration's system parameters and overlaps,
// already converted from the raw spherical-Bessel basis the loader
// returns into the reduced or normalized basis the engine optimizes in.
// Nbes is the basis size after that conversion (one fewer than the raw
// count when the engine is in reduced mode).
type Config struct {
	Natom  []int
	Lmax   []int
	Nbes   int
	Rcut   float64
	Nk     int
	Nbands int
	Wk     []float64

	MoMo [2][][]float64     // [c][k][band]
	MoJy [2][]*cmat.Dense   // [c][k]: (nbands, nao*nbes)
	JyJy [2][]*mat.Dense    // [c][k]: (nao*nbes, nao*nbes), real

	Lin2Comp []qnum.Comp
}

// Engine is the generalized-spillage engine: an ordered sequence of
// configurations sharing a common cutoff radius and basis variant, plus
// the tables tab_frozen / tab_deriv fill in.
type Engine struct {
	Reduced bool

	Configs []*Config
	rcut    *float64

	spillFrozen  [][]float64          // [iconf][band]
	moPfrozenJy  [][2][]*cmat.Dense   // [iconf][c][k]
	daoJy        [][2][][]*mat.Dense  // [iconf][c][i][k], real
	moQfrozenDao [][2][][]*cmat.Dense // [iconf][c][i][k]
	derivPat     nest.Pattern
}

// New returns an empty engine operating in the reduced (true) or
// normalized (false) spherical-Bessel basis.
func New(reduced bool) *Engine {
	return &Engine{Reduced: reduced}
}

// Add loads a pair of overlap/operator orb_matrix files, checks they
// describe the same system, converts their overlaps into the engine's
// basis, and appends the resulting configuration.
func (e *Engine) Add(fileOv, fileOp string, weight [2]float64) error {
	ov, err := dataset.LoadOrbMat(fileOv)
	if err != nil {
		return err
	}
	op, err := dataset.LoadOrbMat(fileOp)
	if err != nil {
		return err
	}
	if err := dataset.AssertConsistency(ov, op); err != nil {
		return err
	}
	if e.rcut == nil {
		r := ov.Rcut
		e.rcut = &r
	} else if *e.rcut != ov.Rcut {
		return chk.Err("ERR_INCONSISTENT: engine rcut=%v, config rcut=%v", *e.rcut, ov.Rcut)
	}

	transform, err := basis.RawBasisTransformCoef(ov.Ntype, ov.Lmax, ov.Nbes, ov.Rcut, e.Reduced)
	if err != nil {
		return err
	}
	c, err := basis.Jy2Ao(transform, ov.Natom, ov.Lmax, basis.NbesScalar(ov.Nbes), ov.Rcut)
	if err != nil {
		return err
	}

	nbes := ov.Nbes
	if e.Reduced {
		nbes--
	}

	cfg := &Config{
		Natom:    ov.Natom,
		Lmax:     ov.Lmax,
		Nbes:     nbes,
		Rcut:     ov.Rcut,
		Nk:       ov.Nk,
		Nbands:   ov.Nbands,
		Wk:       ov.Wk,
		Lin2Comp: ov.Lin2Comp,
	}
	for k := 0; k < ov.Nk; k++ {
		cfg.MoMo[0] = append(cfg.MoMo[0], ov.MoMo[k])
		combo := make([]float64, ov.Nbands)
		for b := range combo {
			combo[b] = weight[0]*ov.MoMo[k][b] + weight[1]*op.MoMo[k][b]
		}
		cfg.MoMo[1] = append(cfg.MoMo[1], combo)

		cfg.MoJy[0] = append(cfg.MoJy[0], cmat.MulReal(ov.MoJy[k], c))
		moJyOp := cmat.Add(cmat.Scale(weight[0], ov.MoJy[k]), cmat.Scale(weight[1], op.MoJy[k]))
		cfg.MoJy[1] = append(cfg.MoJy[1], cmat.MulReal(moJyOp, c))

		cfg.JyJy[0] = append(cfg.JyJy[0], sandwich(c, ov.JyJy[k]))
		jyJyOp := combineReal(ov.JyJy[k], op.JyJy[k], weight[0], weight[1])
		cfg.JyJy[1] = append(cfg.JyJy[1], sandwich(c, jyJyOp))
	}
	e.Configs = append(e.Configs, cfg)
	return nil
}

// sandwich returns c.T * x * c for real matrices.
func sandwich(c, x *mat.Dense) *mat.Dense {
	var tmp, out mat.Dense
	tmp.Mul(c.T(), x)
	out.Mul(&tmp, c)
	return &out
}

func combineReal(a, b *mat.Dense, wa, wb float64) *mat.Dense {
	rows, cols := a.Dims()
	out := mat.NewDense(rows, cols, nil)
	out.Scale(wa, a)
	var bs mat.Dense
	bs.Scale(wb, b)
	out.Add(out, &bs)
	return out
}
