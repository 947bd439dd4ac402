// Copyright 2024 The ABACUS Orbital Generation Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package orbfile

import (
	"bytes"
	"strings"
	"testing"
)

func TestWriteProducesOneBlockPerLZeta(t *testing.T) {
	h := Header{
		Element: "Si",
		Ecut:    40.0,
		Rcut:    7.0,
		Nzeta:   []int{2, 1},
		Dr:      0.01,
		Ngrid:   20,
	}
	coef := [][][]float64{
		{ // l=0
			{1, 0, 0},
			{0, 1, 0},
		},
		{ // l=1
			{1, 0, 0},
		},
	}

	var buf bytes.Buffer
	if err := Write(&buf, h, coef, 3, false); err != nil {
		t.Fatal(err)
	}
	out := buf.String()

	if !strings.Contains(out, "Element\tSi\n") {
		t.Fatalf("missing element header: %q", out)
	}
	count := strings.Count(out, "Type\tL\tZeta\n")
	if count != 3 {
		t.Fatalf("expected 3 chi(r) blocks (2 at l=0, 1 at l=1), got %d", count)
	}
}

func TestWriteRejectsShapeMismatch(t *testing.T) {
	h := Header{Nzeta: []int{1, 1}}
	coef := [][][]float64{{{1}}} // only one l block, header expects two
	var buf bytes.Buffer
	if err := Write(&buf, h, coef, 2, false); err == nil {
		t.Fatal("expected ERR_SHAPE, got nil")
	}
}
