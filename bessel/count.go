// Copyright 2024 The ABACUS Orbital Generation Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package bessel

import "math"

// Nbes returns the number of truncated spherical Bessel radial functions
// of angular momentum l admitted by a cutoff radius rcut and kinetic
// energy cutoff ecut: the count of zeros z_{l,q} with (z_{l,q}/rcut)^2 <= ecut.
func Nbes(l int, rcut, ecut float64) (int, error) {
	kmax := rcut * math.Sqrt(ecut)
	n := 0
	for {
		z, err := Zero(l, n+1)
		if err != nil {
			return 0, err
		}
		if z > kmax {
			return n, nil
		}
		n++
		if n > maxSupportedN {
			return n, nil
		}
	}
}

// RawNorm returns the normalization constant of the q-th (0-indexed) raw
// truncated spherical Bessel radial function of angular momentum l:
// jl_raw_norm(l,q,rcut) = (rcut^1.5/sqrt(2)) * |j_{l+1}(z_{l,q+1})|.
func RawNorm(l, q int, rcut float64) (float64, error) {
	z, err := Zero(l, q+1)
	if err != nil {
		return 0, err
	}
	return math.Pow(rcut, 1.5) / math.Sqrt2 * math.Abs(J(l+1, z)), nil
}
