// Copyright 2024 The ABACUS Orbital Generation Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package optimize drives the generalized-spillage engine through a
// config-parallel bound-constrained quasi-Newton minimization, then
// orthonormalizes the result per (itype, angular momentum) (§4.H of the
// design).
package optimize

import (
	"context"

	"github.com/cpmech/gosl/chk"
	"golang.org/x/sync/errgroup"
	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/gonum/optimize"

	"github.com/kirk0830/abacus-orbital-generation/nest"
	"github.com/kirk0830/abacus-orbital-generation/spillage"
)

// Options controls the L-BFGS driver. Ftol/Gtol/MaxIter/MaxCor mirror
// scipy's L-BFGS-B options of the same name; NThreads caps the
// config-level worker pool (0 means unbounded).
type Options struct {
	Ftol     float64
	Gtol     float64
	MaxIter  int
	MaxCor   int
	NThreads int
}

// Run minimizes the average generalized spillage over the configurations
// named by iconfs (one ibands slice per entry, same length) starting from
// coefInit, with coefFrozen held fixed (nil for no frozen orbitals). It
// calls e.TabFrozen and e.TabDeriv once before optimizing — TabDeriv only
// reads coefInit's nesting shape, never its values — and orthonormalizes
// the zetas of every (itype, l) block before returning.
func Run(e *spillage.Engine, coefInit, coefFrozen nest.Coef, iconfs []int, ibands [][]int, opts Options) (nest.Coef, error) {
	if len(iconfs) != len(ibands) {
		return nil, chk.Err("ERR_SHAPE: optimize.Run: len(iconfs)=%d != len(ibands)=%d", len(iconfs), len(ibands))
	}
	if err := e.TabFrozen(coefFrozen); err != nil {
		return nil, err
	}
	if err := e.TabDeriv(coefInit); err != nil {
		return nil, err
	}

	pat := nest.NestPat(coefInit)
	nconf := len(iconfs)

	// evalBoth runs every configuration's spillage+gradient concurrently,
	// bounded by opts.NThreads, then reduces in index order so the
	// sum-then-average is deterministic regardless of goroutine finish
	// order (§5).
	var evalErr error
	evalBoth := func(x []float64) (float64, []float64) {
		coef, err := nest.Nest(x, pat)
		if err != nil {
			evalErr = err
			return 0, make([]float64, len(x))
		}

		spills := make([]float64, nconf)
		grads := make([][]float64, nconf)

		g, ctx := errgroup.WithContext(context.Background())
		if opts.NThreads > 0 {
			g.SetLimit(opts.NThreads)
		}
		for j := 0; j < nconf; j++ {
			j := j
			g.Go(func() error {
				select {
				case <-ctx.Done():
					return ctx.Err()
				default:
				}
				f, gradCoef, err := e.GeneralizeSpillage(iconfs[j], coef, ibands[j], true)
				if err != nil {
					return err
				}
				spills[j] = f
				grads[j] = nest.Flatten(gradCoef)
				return nil
			})
		}
		if err := g.Wait(); err != nil {
			evalErr = err
			return 0, make([]float64, len(x))
		}

		fSum := 0.0
		for _, f := range spills {
			fSum += f
		}
		gSum := make([]float64, len(x))
		for _, gr := range grads {
			for i, v := range gr {
				gSum[i] += v
			}
		}
		n := float64(nconf)
		for i := range gSum {
			gSum[i] /= n
		}
		return fSum / n, gSum
	}

	// Box bounds [-1,1]: clamp the evaluation point into the feasible
	// region, then zero the gradient component of any coordinate sitting
	// on a bound whose unconstrained descent direction would leave it —
	// a projected-gradient adaptation of L-BFGS-B, since gonum/optimize
	// has no native box-constrained method.
	clampedEval := func(x []float64) (float64, []float64) {
		cx := make([]float64, len(x))
		for i, v := range x {
			switch {
			case v < -1:
				cx[i] = -1
			case v > 1:
				cx[i] = 1
			default:
				cx[i] = v
			}
		}
		f, g := evalBoth(cx)
		for i := range g {
			if (cx[i] <= -1 && g[i] > 0) || (cx[i] >= 1 && g[i] < 0) {
				g[i] = 0
			}
		}
		return f, g
	}

	problem := optimize.Problem{
		Func: func(x []float64) float64 {
			f, _ := clampedEval(x)
			return f
		},
		Grad: func(grad, x []float64) {
			_, g := clampedEval(x)
			copy(grad, g)
		},
	}

	x0 := nest.Flatten(coefInit)
	method := &optimize.LBFGS{Store: opts.MaxCor}
	settings := &optimize.Settings{
		GradientThreshold: opts.Gtol,
		MajorIterations:   opts.MaxIter,
		Converger:         &optimize.FunctionConverge{Absolute: opts.Ftol, Iterations: 10},
	}

	result, err := optimize.Minimize(problem, x0, settings, method)
	if evalErr != nil {
		return nil, evalErr
	}
	if err != nil && result == nil {
		return nil, chk.Err("ERR_OPT_DIVERGED: optimize.Run: %v", err)
	}

	xOpt := x0
	var diverged error
	if result != nil {
		xOpt = result.X
		if result.Status != optimize.Success && result.Status != optimize.FunctionConvergence && result.Status != optimize.GradientThreshold {
			diverged = chk.Err("ERR_OPT_DIVERGED: optimize.Run: status=%v", result.Status)
		}
	}

	coefOpt, err := nest.Nest(xOpt, pat)
	if err != nil {
		return nil, err
	}
	orthonormalize(coefOpt)

	if diverged != nil {
		return coefOpt, diverged
	}
	return coefOpt, nil
}

// orthonormalize replaces, in place, every (itype, l) block with an
// orthonormal basis spanning the same subspace: Q,R = qr(coef.T), coef =
// Q.T (property 7). Blocks with no zetas are left untouched.
func orthonormalize(coef nest.Coef) {
	for it, byL := range coef {
		for l, byZeta := range byL {
			nz := len(byZeta)
			if nz == 0 {
				continue
			}
			nq := len(byZeta[0])
			raw := mat.NewDense(nq, nz, nil)
			for zeta, row := range byZeta {
				for q, v := range row {
					raw.Set(q, zeta, v)
				}
			}
			var qr mat.QR
			qr.Factorize(raw)
			var q mat.Dense
			qr.QTo(&q)

			for zeta := 0; zeta < nz; zeta++ {
				row := make([]float64, nq)
				for qi := 0; qi < nq; qi++ {
					row[qi] = q.At(qi, zeta)
				}
				coef[it][l][zeta] = row
			}
		}
	}
}
