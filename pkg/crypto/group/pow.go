// This Source Code Form is subject to the terms of the MIT License.
// If a copy of the MIT License was not distributed with this
// file, you can obtain one at https://opensource.org/licenses/MIT.
//
// Copyright (c) DUSK NETWORK. All rights reserved.

package group

// Pow returns base^e in the scalar field of g using left-to-right
// square-and-multiply. A zero exponent is rejected with ErrZeroExponent.
func Pow(g Group, base Scalar, e uint32) (Scalar, error) {
	if e == 0 {
		return nil, ErrZeroExponent
	}

	acc := g.NewScalar().SetOne()
	for i := 31; i >= 0; i-- {
		acc.Mul(acc, acc)
		if e>>uint(i)&1 == 1 {
			acc.Mul(acc, base)
		}
	}
	return acc, nil
}
