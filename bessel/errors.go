// Copyright 2024 The ABACUS Orbital Generation Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package bessel

import "github.com/cpmech/gosl/chk"

// maxSupportedL and maxSupportedN bound the (l,n) region in which jl_zero is considered
// supported. Outside this region the asymptotic expansion used to seed
// Newton's method is no longer trustworthy.
const (
	maxSupportedL = 12
	maxSupportedN = 500
)

// ErrOutOfRange constructs the ERR_BESSEL_OUT_OF_RANGE error for a request
// that falls outside the supported (l,n) table/asymptotic region.
func ErrOutOfRange(l, n int) error {
	return chk.Err("ERR_BESSEL_OUT_OF_RANGE: zero request (l=%d, n=%d) exceeds supported region (l<=%d, n<=%d)", l, n, maxSupportedL, maxSupportedN)
}
