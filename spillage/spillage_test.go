// Copyright 2024 The ABACUS Orbital Generation Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package spillage

import (
	"math"
	"testing"

	"github.com/cpmech/gosl/rnd"
	"gonum.org/v1/gonum/mat"

	"github.com/kirk0830/abacus-orbital-generation/cmat"
	"github.com/kirk0830/abacus-orbital-generation/nest"
)

// randSPD returns a random n x n symmetric positive-definite matrix.
func randSPD(n int) *mat.Dense {
	raw := mat.NewDense(n, n, nil)
	for i := 0; i < n; i++ {
		for j := 0; j < n; j++ {
			raw.Set(i, j, rnd.Float64(-1, 1))
		}
	}
	var out mat.Dense
	out.Mul(raw.T(), raw)
	for i := 0; i < n; i++ {
		out.Set(i, i, out.At(i, i)+float64(n))
	}
	return &out
}

func randComplexDense(rows, cols int) *cmat.Dense {
	data := make([]complex128, rows*cols)
	for i := range data {
		data[i] = complex(rnd.Float64(-1, 1), rnd.Float64(-1, 1))
	}
	return cmat.NewDenseFromComplex(rows, cols, data)
}

// buildTestConfig builds a single-type, single-atom, l=0 configuration
// with nao*nbes=3, nbands=2, nk=1, with op==overlap (c=1 == c=0) so the
// generalized spillage must match the overlap spillage.
func buildTestConfig() *Config {
	rnd.Init(7)
	const mu, nbands = 3, 2
	jyJy := randSPD(mu)
	moJy := randComplexDense(nbands, mu)
	moMo := []float64{0.7, 1.3}

	return &Config{
		Natom:  []int{1},
		Lmax:   []int{0},
		Nbes:   mu,
		Rcut:   7.0,
		Nk:     1,
		Nbands: nbands,
		Wk:     []float64{1.0},
		MoMo:   [2][][]float64{{moMo}, {moMo}},
		MoJy:   [2][]*cmat.Dense{{moJy}, {moJy}},
		JyJy:   [2][]*mat.Dense{{jyJy}, {jyJy}},
	}
}

func testCoef() nest.Coef {
	return nest.Coef{
		{ // itype 0
			{ // l=0
				{0.6, -0.2, 0.1},
				{0.1, 0.5, -0.3},
			},
		},
	}
}

func TestGeneralizeSpillageMatchesOverlapSpillage(t *testing.T) {
	cfg := buildTestConfig()
	e := &Engine{Reduced: true, Configs: []*Config{cfg}}
	if err := e.TabFrozen(nil); err != nil {
		t.Fatal(err)
	}
	coef := testCoef()
	if err := e.TabDeriv(coef); err != nil {
		t.Fatal(err)
	}

	got, _, err := e.GeneralizeSpillage(0, coef, []int{0, 1}, false)
	if err != nil {
		t.Fatal(err)
	}
	want, err := OverlapSpillage(cfg, coef, nil, []int{0, 1})
	if err != nil {
		t.Fatal(err)
	}
	if math.Abs(got-want) > 1e-9 {
		t.Fatalf("generalized spillage %.12f != overlap spillage %.12f", got, want)
	}
}

func TestGeneralizeSpillageGradientMatchesCentralDifference(t *testing.T) {
	cfg := buildTestConfig()
	e := &Engine{Reduced: true, Configs: []*Config{cfg}}
	if err := e.TabFrozen(nil); err != nil {
		t.Fatal(err)
	}
	coef := testCoef()
	if err := e.TabDeriv(coef); err != nil {
		t.Fatal(err)
	}

	_, grad, err := e.GeneralizeSpillage(0, coef, []int{0, 1}, true)
	if err != nil {
		t.Fatal(err)
	}
	pat := nest.NestPat(coef)
	gotFlat := nest.Flatten(grad)
	flat := nest.Flatten(coef)

	const h = 1e-6
	for i := range flat {
		plus := append([]float64(nil), flat...)
		minus := append([]float64(nil), flat...)
		plus[i] += h
		minus[i] -= h
		cPlus, err := nest.Nest(plus, pat)
		if err != nil {
			t.Fatal(err)
		}
		cMinus, err := nest.Nest(minus, pat)
		if err != nil {
			t.Fatal(err)
		}
		fPlus, _, err := e.GeneralizeSpillage(0, cPlus, []int{0, 1}, false)
		if err != nil {
			t.Fatal(err)
		}
		fMinus, _, err := e.GeneralizeSpillage(0, cMinus, []int{0, 1}, false)
		if err != nil {
			t.Fatal(err)
		}
		cd := (fPlus - fMinus) / (2 * h)
		if math.Abs(cd-gotFlat[i]) > 1e-5 {
			t.Fatalf("coef %d: analytic grad %.8f vs central-difference %.8f", i, gotFlat[i], cd)
		}
	}
}
