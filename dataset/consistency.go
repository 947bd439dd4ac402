// Copyright 2024 The ABACUS Orbital Generation Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package dataset

import (
	"reflect"

	"github.com/cpmech/gosl/chk"
)

// AssertConsistency checks that a and b describe overlaps taken from the
// same system: same composite index map, same cutoff radius, same
// k-points and weights. It is the check every pair of MO-jY / gradient
// files belonging to one reference configuration must pass before their
// overlaps are combined.
func AssertConsistency(a, b *OrbMat) error {
	if !reflect.DeepEqual(a.Lin2Comp, b.Lin2Comp) {
		return chk.Err("ERR_INCONSISTENT: composite index maps differ")
	}
	if a.Rcut != b.Rcut {
		return chk.Err("ERR_INCONSISTENT: rcut differs: %v vs %v", a.Rcut, b.Rcut)
	}
	if len(a.Wk) != len(b.Wk) {
		return chk.Err("ERR_INCONSISTENT: k-point count differs: %d vs %d", len(a.Wk), len(b.Wk))
	}
	for k := range a.Wk {
		if a.Wk[k] != b.Wk[k] {
			return chk.Err("ERR_INCONSISTENT: k-point weight %d differs: %v vs %v", k, a.Wk[k], b.Wk[k])
		}
		if a.Kpt[k] != b.Kpt[k] {
			return chk.Err("ERR_INCONSISTENT: k-point %d differs: %v vs %v", k, a.Kpt[k], b.Kpt[k])
		}
	}
	return nil
}
