// Copyright 2024 The ABACUS Orbital Generation Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package qnum

import "testing"

func TestIndexMapRoundTripPAO(t *testing.T) {
	natom := []int{2, 1}
	lmax := []int{2, 1}
	lin2comp, comp2lin, err := IndexMap(natom, lmax, nil)
	if err != nil {
		t.Fatal(err)
	}
	want := Nao(natom, lmax)
	if len(lin2comp) != want {
		t.Fatalf("len(lin2comp)=%d, want Nao=%d", len(lin2comp), want)
	}
	for flat, c := range lin2comp {
		got, ok := comp2lin[c]
		if !ok || got != flat {
			t.Fatalf("round trip failed at flat=%d: comp2lin[%v]=%d,%v", flat, c, got, ok)
		}
	}
}

func TestIndexMapLexicographic(t *testing.T) {
	natom := []int{2}
	lmax := []int{2}
	lin2comp, _, err := IndexMap(natom, lmax, nil)
	if err != nil {
		t.Fatal(err)
	}
	for i := 1; i < len(lin2comp); i++ {
		a, b := lin2comp[i-1], lin2comp[i]
		if tupleLess(b, a) {
			t.Fatalf("not lexicographic at %d: %v then %v", i, a, b)
		}
	}
}

func tupleLess(a, b Comp) bool {
	if a.Itype != b.Itype {
		return a.Itype < b.Itype
	}
	if a.Iatom != b.Iatom {
		return a.Iatom < b.Iatom
	}
	if a.L != b.L {
		return a.L < b.L
	}
	return a.Menc < b.Menc
}

func TestIndexMapWithQ(t *testing.T) {
	natom := []int{1}
	lmax := []int{1}
	nbes := [][]int{{3, 2}}
	lin2comp, comp2lin, err := IndexMap(natom, lmax, nbes)
	if err != nil {
		t.Fatal(err)
	}
	want := 1*3 + 3*2 // l=0: 1 m * 3 q; l=1: 3 m * 2 q
	if len(lin2comp) != want {
		t.Fatalf("len=%d want %d", len(lin2comp), want)
	}
	for flat, c := range lin2comp {
		if comp2lin[c] != flat {
			t.Fatalf("round trip failed at %d", flat)
		}
	}
}

func TestPermZetaM(t *testing.T) {
	natom := []int{1}
	lmax := []int{1}
	nbes := [][]int{{2, 2}}
	lin2comp, _, err := IndexMap(natom, lmax, nbes)
	if err != nil {
		t.Fatal(err)
	}
	p := PermZetaM(lin2comp)
	if len(p) != len(lin2comp) {
		t.Fatalf("perm length mismatch")
	}
	seen := make(map[int]bool)
	for _, idx := range p {
		if idx < 0 || idx >= len(lin2comp) || seen[idx] {
			t.Fatalf("perm is not a bijection: idx=%d", idx)
		}
		seen[idx] = true
	}
	// the gathered sequence should be sorted with q varying slower than menc
	for j := 1; j < len(p); j++ {
		prev, cur := lin2comp[p[j-1]], lin2comp[p[j]]
		if prev.L == cur.L && prev.Q == cur.Q && cur.Menc < prev.Menc {
			t.Fatalf("menc should increase within fixed (l,q) block: %v then %v", prev, cur)
		}
	}
}
