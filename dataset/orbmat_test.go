// Copyright 2024 The ABACUS Orbital Generation Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package dataset

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

// buildOrbMat synthesizes a minimal orb_matrix file for ntype=1,
// natom=[2], lmax=0, nk=1, nbands=2, nbes=2 (nao=2, n=nao*nbes=4). Every
// complex section is filled with sequentially increasing real parts, so
// the raw fill order can be checked directly against the parsed layout.
// The idx-th OVERLAP_Q pair has imaginary part idx+1 (so its conjugation
// is observable); OVERLAP_Sq has zero imaginary parts.
func buildOrbMat() (text string, nao, nbes, nbands, nk int) {
	nao, nbes, nbands, nk = 2, 2, 2, 1
	var b strings.Builder
	fmt.Fprintf(&b, "1 ntype\n2 na\n40.0 ecutwfc\n40.0 ecutwfc_jlq\n7.0 rcut_Jlq\n0 lmax\n")
	fmt.Fprintf(&b, "%d nks\n%d nbands\n%d ne\n", nk, nbands, nbes)
	fmt.Fprintf(&b, "<WEIGHT_OF_KPOINTS>\n0.0 0.0 0.0 1.0\n</WEIGHT_OF_KPOINTS>\n")

	n := nao * nbes
	fmt.Fprintf(&b, "<OVERLAP_Q>\n")
	for i := 0; i < nbands*n; i++ {
		fmt.Fprintf(&b, "%d %d ", i, i+1)
	}
	fmt.Fprintf(&b, "\n</OVERLAP_Q>\n")

	fmt.Fprintf(&b, "<OVERLAP_Sq>\n")
	for idx := 0; idx < nao*nao*nbes*nbes; idx++ {
		fmt.Fprintf(&b, "%d 0.0 ", idx)
	}
	fmt.Fprintf(&b, "\n</OVERLAP_Sq>\n")

	fmt.Fprintf(&b, "<OVERLAP_V>\n")
	for i := 0; i < nk*nbands; i++ {
		fmt.Fprintf(&b, "1.0 ")
	}
	fmt.Fprintf(&b, "\n</OVERLAP_V>\n")
	return b.String(), nao, nbes, nbands, nk
}

func TestParseOrbMatShapes(t *testing.T) {
	text, nao, nbes, nbands, nk := buildOrbMat()
	om, err := parseOrbMat(text)
	if err != nil {
		t.Fatal(err)
	}
	if om.Nao != nao || om.Nbes != nbes || om.Nbands != nbands || om.Nk != nk {
		t.Fatalf("dims mismatch: nao=%d nbes=%d nbands=%d nk=%d", om.Nao, om.Nbes, om.Nbands, om.Nk)
	}
	rows, cols := om.MoJy[0].Dims()
	if rows != nbands || cols != nao*nbes {
		t.Fatalf("mo_jy shape = (%d,%d), want (%d,%d)", rows, cols, nbands, nao*nbes)
	}
	rows, cols = om.JyJy[0].Dims()
	if rows != nao*nbes || cols != nao*nbes {
		t.Fatalf("jy_jy shape = (%d,%d), want (%d,%d)", rows, cols, nao*nbes, nao*nbes)
	}
	if len(om.MoMo[0]) != nbands {
		t.Fatalf("mo_mo length = %d, want %d", len(om.MoMo[0]), nbands)
	}
	if om.Wk[0] != 1.0 {
		t.Fatalf("wk = %v, want 1.0", om.Wk[0])
	}
}

// TestParseOrbMatMoJyConjugated checks that mo_jy is conjugated from the
// raw <jy|mo> values: the file stores <jy|mo>, and the parser must return
// <mo|jy> = conj(<jy|mo>): the real part is kept and the imaginary part
// (idx+1 in the fixture) comes back negated.
func TestParseOrbMatMoJyConjugated(t *testing.T) {
	text, nao, nbes, _, _ := buildOrbMat()
	om, err := parseOrbMat(text)
	if err != nil {
		t.Fatal(err)
	}
	n := nao * nbes
	for band := 0; band < om.Nbands; band++ {
		for col := 0; col < n; col++ {
			idx := band*n + col
			want := float64(idx)
			if got := real(om.MoJy[0].At(band, col)); got != want {
				t.Fatalf("mo_jy[%d,%d] = %v, want %v", band, col, got, want)
			}
			if got, want := imag(om.MoJy[0].At(band, col)), -float64(idx+1); got != want {
				t.Fatalf("imag mo_jy[%d,%d] = %v, want %v", band, col, got, want)
			}
		}
	}
}

// TestParseOrbMatJyJyPermutation checks the (nao,nao,nbes,nbes) ->
// (nao,nbes,nao,nbes) permutation: raw element (a,b,p,q) must land at
// jy_jy[a*nbes+p, b*nbes+q].
func TestParseOrbMatJyJyPermutation(t *testing.T) {
	text, nao, nbes, _, _ := buildOrbMat()
	om, err := parseOrbMat(text)
	if err != nil {
		t.Fatal(err)
	}
	idx := 0
	for a := 0; a < nao; a++ {
		for b := 0; b < nao; b++ {
			for p := 0; p < nbes; p++ {
				for q := 0; q < nbes; q++ {
					want := float64(idx)
					idx++
					row, col := a*nbes+p, b*nbes+q
					if got := om.JyJy[0].At(row, col); got != want {
						t.Fatalf("jy_jy[%d,%d] (from a=%d b=%d p=%d q=%d) = %v, want %v", row, col, a, b, p, q, got, want)
					}
				}
			}
		}
	}
}

func TestParseOrbMatMissingLabel(t *testing.T) {
	text, _, _, _, _ := buildOrbMat()
	broken := strings.Replace(text, "nbands", "NBANDS", 1)
	path := filepath.Join(t.TempDir(), "orb_matrix.dat")
	if err := os.WriteFile(path, []byte(broken), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, err := LoadOrbMat(path); err == nil {
		t.Fatal("expected ERR_MALFORMED_DATASET on missing label")
	}
}

func TestAssertConsistencyDetectsRcutMismatch(t *testing.T) {
	text, _, _, _, _ := buildOrbMat()
	a, err := parseOrbMat(text)
	if err != nil {
		t.Fatal(err)
	}
	b, err := parseOrbMat(strings.Replace(text, "7.0 rcut_Jlq", "8.0 rcut_Jlq", 1))
	if err != nil {
		t.Fatal(err)
	}
	if err := AssertConsistency(a, b); err == nil {
		t.Fatal("expected ERR_INCONSISTENT on rcut mismatch")
	}
}
