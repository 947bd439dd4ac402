// Copyright 2024 The ABACUS Orbital Generation Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package dataset

import (
	"github.com/cpmech/gosl/chk"
	"github.com/cpmech/gosl/io"
	"gonum.org/v1/gonum/mat"

	"github.com/kirk0830/abacus-orbital-generation/cmat"
	"github.com/kirk0830/abacus-orbital-generation/qnum"
)

// OrbMat holds one reference configuration's system parameters and
// overlaps, as read from an orb_matrix file.
type OrbMat struct {
	Ntype   int
	Natom   []int
	EcutWfc float64
	EcutJlq float64
	Rcut    float64
	Lmax    []int
	Nk      int
	Nbands  int
	Nbes    int
	Nao     int
	Kpt     [][3]float64
	Wk      []float64

	// MoJy[k] has shape (nbands, nao*nbes): <mo|jy>, conjugated from the
	// <jy|mo> overlap ABACUS writes.
	MoJy []*cmat.Dense
	// JyJy[k] has shape (nao*nbes, nao*nbes): <jy|jy>, real.
	JyJy []*mat.Dense
	// MoMo[k][b] is <mo_b|mo_b> at k-point k.
	MoMo [][]float64

	Lin2Comp []qnum.Comp
	Comp2Lin map[qnum.Comp]int
}

// LoadOrbMat reads and parses an orb_matrix file at path. Malformed
// content (missing labels, wrong token counts, non-numeric values)
// surfaces as ERR_MALFORMED_DATASET.
func LoadOrbMat(path string) (om *OrbMat, err error) {
	defer func() {
		if r := recover(); r != nil {
			if e, ok := r.(error); ok {
				err = e
			} else {
				err = chk.Err("ERR_MALFORMED_DATASET: %v", r)
			}
		}
	}()
	text := io.ReadFile(path)
	return parseOrbMat(string(text))
}

func parseOrbMat(text string) (*OrbMat, error) {
	t := tokenize(text)

	om := &OrbMat{}
	om.Ntype = t.beforeInt("ntype")

	ecutIdx := t.indexOf("ecutwfc")
	for i, label := range t[:ecutIdx] {
		if label == "na" {
			if i == 0 {
				chk.Panic("ERR_MALFORMED_DATASET: \"na\" token has no preceding value")
			}
			om.Natom = append(om.Natom, mustAtoi(t[i-1]))
		}
	}
	if len(om.Natom) != om.Ntype {
		return nil, chk.Err("ERR_MALFORMED_DATASET: found %d \"na\" entries, want ntype=%d", len(om.Natom), om.Ntype)
	}

	om.EcutWfc = t.beforeFloat("ecutwfc")
	om.EcutJlq = t.beforeFloat("ecutwfc_jlq")
	om.Rcut = t.beforeFloat("rcut_Jlq")

	lmax0 := t.beforeInt("lmax")
	om.Lmax = make([]int, om.Ntype)
	for i := range om.Lmax {
		om.Lmax[i] = lmax0
	}

	om.Nk = t.beforeInt("nks")
	om.Nbands = t.beforeInt("nbands")
	om.Nbes = t.beforeInt("ne")

	kinfo := mustFloats(t.section("WEIGHT_OF_KPOINTS"))
	if len(kinfo) != 4*om.Nk {
		return nil, chk.Err("ERR_MALFORMED_DATASET: WEIGHT_OF_KPOINTS has %d values, want %d", len(kinfo), 4*om.Nk)
	}
	om.Kpt = make([][3]float64, om.Nk)
	om.Wk = make([]float64, om.Nk)
	for k := 0; k < om.Nk; k++ {
		om.Kpt[k] = [3]float64{kinfo[4*k], kinfo[4*k+1], kinfo[4*k+2]}
		om.Wk[k] = kinfo[4*k+3]
	}

	lin2comp, comp2lin, err := qnum.IndexMap(om.Natom, om.Lmax, nil)
	if err != nil {
		return nil, err
	}
	om.Lin2Comp, om.Comp2Lin = lin2comp, comp2lin
	om.Nao = len(lin2comp)

	if err := om.readMoJy(t); err != nil {
		return nil, err
	}
	if err := om.readJyJy(t); err != nil {
		return nil, err
	}
	if err := om.readMoMo(t); err != nil {
		return nil, err
	}
	return om, nil
}

// readMoJy parses <OVERLAP_Q>, a flat list of (re,im) pairs reshaped to
// (nk, nbands, nao*nbes) and conjugated: ABACUS writes <jy|mo>, and this
// engine works with <mo|jy>.
func (om *OrbMat) readMoJy(t tokens) error {
	n := om.Nao * om.Nbes
	raw := mustFloats(t.section("OVERLAP_Q"))
	want := 2 * om.Nk * om.Nbands * n
	if len(raw) != want {
		return chk.Err("ERR_MALFORMED_DATASET: OVERLAP_Q has %d values, want %d", len(raw), want)
	}
	om.MoJy = make([]*cmat.Dense, om.Nk)
	i := 0
	for k := 0; k < om.Nk; k++ {
		data := make([]complex128, om.Nbands*n)
		for j := range data {
			data[j] = complex(raw[i], -raw[i+1]) // conjugate <jy|mo> -> <mo|jy>
			i += 2
		}
		om.MoJy[k] = cmat.NewDenseFromComplex(om.Nbands, n, data)
	}
	return nil
}

// readJyJy parses <OVERLAP_Sq>, a flat list of (re,im) pairs reshaped to
// (nk, nao, nao, nbes, nbes). The overlap between jY functions is real by
// construction; a residual imaginary part beyond tolerance indicates a
// malformed file. The (nao,nao,nbes,nbes) block is then permuted to
// (nao,nbes,nao,nbes) and reshaped to the (nao*nbes, nao*nbes) layout used
// throughout the rest of the engine.
func (om *OrbMat) readJyJy(t tokens) error {
	const imagTol = 1e-12
	nao, nbes := om.Nao, om.Nbes
	raw := mustFloats(t.section("OVERLAP_Sq"))
	want := 2 * om.Nk * nao * nao * nbes * nbes
	if len(raw) != want {
		return chk.Err("ERR_MALFORMED_DATASET: OVERLAP_Sq has %d values, want %d", len(raw), want)
	}
	om.JyJy = make([]*mat.Dense, om.Nk)
	i := 0
	for k := 0; k < om.Nk; k++ {
		block := make([][][][]float64, nao)
		for a := range block {
			block[a] = make([][][]float64, nao)
			for b := range block[a] {
				block[a][b] = make([][]float64, nbes)
				for p := range block[a][b] {
					block[a][b][p] = make([]float64, nbes)
					for q := 0; q < nbes; q++ {
						re, im := raw[i], raw[i+1]
						i += 2
						if im > imagTol || im < -imagTol {
							return chk.Err("ERR_MALFORMED_DATASET: OVERLAP_Sq has non-negligible imaginary part %v", im)
						}
						block[a][b][p][q] = re
					}
				}
			}
		}
		n := nao * nbes
		m := mat.NewDense(n, n, nil)
		for a := 0; a < nao; a++ {
			for p := 0; p < nbes; p++ {
				row := a*nbes + p
				for b := 0; b < nao; b++ {
					for q := 0; q < nbes; q++ {
						col := b*nbes + q
						m.Set(row, col, block[a][b][p][q])
					}
				}
			}
		}
		om.JyJy[k] = m
	}
	return nil
}

// readMoMo parses <OVERLAP_V>, a flat list of real <mo|mo> diagonal
// overlaps reshaped to (nk, nbands).
func (om *OrbMat) readMoMo(t tokens) error {
	raw := mustFloats(t.section("OVERLAP_V"))
	want := om.Nk * om.Nbands
	if len(raw) != want {
		return chk.Err("ERR_MALFORMED_DATASET: OVERLAP_V has %d values, want %d", len(raw), want)
	}
	om.MoMo = make([][]float64, om.Nk)
	for k := 0; k < om.Nk; k++ {
		om.MoMo[k] = append([]float64(nil), raw[k*om.Nbands:(k+1)*om.Nbands]...)
	}
	return nil
}
