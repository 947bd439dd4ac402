// Copyright 2024 The ABACUS Orbital Generation Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package dataset reads "orb_matrix" overlap files — the plaintext format
// ABACUS emits holding reference PW/LCAO overlaps — and checks that a set
// of such files describes a consistent set of reference configurations
// (§4.E of the design).
package dataset

import (
	"strconv"
	"strings"

	"github.com/cpmech/gosl/chk"
)

// tokens is a whitespace-split view of an orb_matrix file, with the label
// lookups read_orb_mat relies on (first occurrence of a label token, the
// values immediately preceding or the bracketed range immediately
// following it).
type tokens []string

func tokenize(text string) tokens {
	return tokens(strings.Fields(strings.ReplaceAll(text, "\n", " ")))
}

// indexOf returns the index of the first occurrence of label, panicking
// with ERR_MALFORMED_DATASET if absent.
func (t tokens) indexOf(label string) int {
	for i, s := range t {
		if s == label {
			return i
		}
	}
	chk.Panic("ERR_MALFORMED_DATASET: label %q not found", label)
	panic("unreachable")
}

// before returns the token immediately preceding the first occurrence of
// label, as its own scalar value (e.g. "3 ntype" -> before("ntype") == "3").
func (t tokens) before(label string) string {
	i := t.indexOf(label)
	if i == 0 {
		chk.Panic("ERR_MALFORMED_DATASET: label %q has no preceding value", label)
	}
	return t[i-1]
}

func (t tokens) beforeInt(label string) int       { return mustAtoi(t.before(label)) }
func (t tokens) beforeFloat(label string) float64 { return mustAtof(t.before(label)) }

// section returns the tokens strictly between "<NAME>" and "</NAME>".
func (t tokens) section(name string) []string {
	start := t.indexOf("<" + name + ">")
	end := t.indexOf("</" + name + ">")
	if end <= start {
		chk.Panic("ERR_MALFORMED_DATASET: section %q has no valid range", name)
	}
	return t[start+1 : end]
}

func mustAtoi(s string) int {
	v, err := strconv.Atoi(s)
	if err != nil {
		chk.Panic("ERR_MALFORMED_DATASET: %q is not an integer", s)
	}
	return v
}

func mustAtof(s string) float64 {
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		chk.Panic("ERR_MALFORMED_DATASET: %q is not a float", s)
	}
	return v
}

func mustFloats(ss []string) []float64 {
	out := make([]float64, len(ss))
	for i, s := range ss {
		out[i] = mustAtof(s)
	}
	return out
}
