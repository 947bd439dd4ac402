// Copyright 2024 The ABACUS Orbital Generation Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package orbfile serializes an optimized coefficient tensor for a single
// species into the plaintext orbital file format: a header followed by
// one tabulated chi(r) block per (l, zeta) (§6 of the design).
package orbfile

import (
	"bufio"
	"fmt"
	"io"
	"os"

	"github.com/cpmech/gosl/chk"

	"github.com/kirk0830/abacus-orbital-generation/bessel"
)

// Header carries the scalar fields written before the tabulated blocks.
type Header struct {
	Element string
	Ecut    float64
	Rcut    float64
	Nzeta   []int // per angular momentum
	Dr      float64
	Ngrid   int
}

// Write serializes coef (indexed coef[l][zeta][q], a single species'
// block of a Coef tensor) to w as a header followed by one chi(r) block
// per (l, zeta), in row-major order over the grid r=0, dr, 2*dr, ....
// reduced selects whether coef is expressed in the reduced (nRaw-1) or
// raw/normalized (nRaw) spherical-Bessel basis.
func Write(w io.Writer, h Header, coef [][][]float64, nRaw int, reduced bool) error {
	if len(coef) != len(h.Nzeta) {
		return chk.Err("ERR_SHAPE: orbfile.Write: len(coef)=%d != len(Nzeta)=%d", len(coef), len(h.Nzeta))
	}
	bw := bufio.NewWriter(w)

	fmt.Fprintf(bw, "Element\t%s\n", h.Element)
	fmt.Fprintf(bw, "Energy Cutoff(Ry)\t%.6f\n", h.Ecut)
	fmt.Fprintf(bw, "Radius Cutoff(a.u.)\t%.6f\n", h.Rcut)
	fmt.Fprintf(bw, "Lmax\t%d\n", len(h.Nzeta)-1)
	for l, nz := range h.Nzeta {
		fmt.Fprintf(bw, "Number of Sorbital-->L=%d\t%d\n", l, nz)
	}
	fmt.Fprintf(bw, "Mesh\t%d\n", h.Ngrid)
	fmt.Fprintf(bw, "dr\t%.6f\n", h.Dr)

	r := make([]float64, h.Ngrid)
	for i := range r {
		r[i] = float64(i) * h.Dr
	}

	for l, byZeta := range coef {
		if len(byZeta) != h.Nzeta[l] {
			return chk.Err("ERR_SHAPE: orbfile.Write: l=%d has %d zeta rows, want %d", l, len(byZeta), h.Nzeta[l])
		}
		var chis [][]float64
		var err error
		if reduced {
			chis, err = bessel.BuildReduced(l, byZeta, h.Rcut, r, nRaw)
		} else {
			chis, err = bessel.BuildRaw(l, byZeta, h.Rcut, r)
		}
		if err != nil {
			return err
		}
		for zeta, vals := range chis {
			fmt.Fprintf(bw, "Type\tL\tZeta\n")
			fmt.Fprintf(bw, "0\t%d\t%d\n", l, zeta)
			for i, v := range vals {
				fmt.Fprintf(bw, "%.14e", v)
				if (i+1)%4 == 0 || i == len(vals)-1 {
					fmt.Fprintln(bw)
				} else {
					fmt.Fprint(bw, "\t")
				}
			}
		}
	}
	return bw.Flush()
}

// WriteFile is Write against a file path, creating or truncating it.
func WriteFile(path string, h Header, coef [][][]float64, nRaw int, reduced bool) error {
	f, err := os.Create(path)
	if err != nil {
		return chk.Err("ERR_MALFORMED_DATASET: orbfile.WriteFile: %v", err)
	}
	defer f.Close()
	return Write(f, h, coef, nRaw, reduced)
}
