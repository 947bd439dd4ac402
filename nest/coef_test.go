// Copyright 2024 The ABACUS Orbital Generation Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package nest

import (
	"reflect"
	"testing"
)

func sample() Coef {
	return Coef{
		{ // itype 0
			{{1, 2, 3}, {4, 5, 6}}, // l=0: 2 zeta x 3 q
			{{7, 8}},               // l=1: 1 zeta x 2 q
		},
		{ // itype 1
			{}, // l=0: no zeta
		},
	}
}

func TestRoundTrip(t *testing.T) {
	c := sample()
	pat := NestPat(c)
	flat := Flatten(c)
	got, err := Nest(flat, pat)
	if err != nil {
		t.Fatal(err)
	}
	if !reflect.DeepEqual(c, got) {
		t.Fatalf("round trip mismatch:\n  got=%v\n want=%v", got, c)
	}
}

func TestNestLengthMismatch(t *testing.T) {
	c := sample()
	pat := NestPat(c)
	_, err := Nest(Flatten(c)[:len(Flatten(c))-1], pat)
	if err == nil {
		t.Fatal("expected ERR_SHAPE on length mismatch")
	}
}

func TestMergeZeta(t *testing.T) {
	a := Coef{{{{1, 2}}}}
	b := Coef{{{{3, 4}, {5, 6}}}}
	merged, err := Merge(a, b, 2)
	if err != nil {
		t.Fatal(err)
	}
	want := Coef{{{{1, 2}, {3, 4}, {5, 6}}}}
	if !reflect.DeepEqual(merged, want) {
		t.Fatalf("merged=%v want=%v", merged, want)
	}
}

func TestMergeNqMismatch(t *testing.T) {
	a := Coef{{{{1, 2}}}}
	b := Coef{{{{3, 4, 5}}}}
	if _, err := Merge(a, b, 2); err == nil {
		t.Fatal("expected ERR_SHAPE on nq mismatch")
	}
}
