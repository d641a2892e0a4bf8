// This Source Code Form is subject to the terms of the MIT License.
// If a copy of the MIT License was not distributed with this
// file, you can obtain one at https://opensource.org/licenses/MIT.
//
// Copyright (c) DUSK NETWORK. All rights reserved.

// Package pairing evaluates the optimal ate pairing of BLS12-381 on the
// elements of group.G1 and group.G2.
package pairing

import (
	bls12381 "github.com/consensys/gnark-crypto/ecc/bls12-381"
	"github.com/dusk-network/dusk-punchcard/pkg/crypto/group"
	"github.com/pkg/errors"
)

// GTSize is the length of an encoded target group element.
const GTSize = bls12381.SizeOfGT

// GT is an element of the target group.
type GT struct {
	e bls12381.GT
}

// Pair computes e(a, b). a must come from group.G1 and b from group.G2.
func Pair(a, b group.Element) (*GT, error) {
	p, ok := a.(*group.G1Point)
	if !ok {
		return nil, errors.New("pairing: first argument is not a g1 element")
	}
	q, ok := b.(*group.G2Point)
	if !ok {
		return nil, errors.New("pairing: second argument is not a g2 element")
	}

	e, err := bls12381.Pair([]bls12381.G1Affine{p.G1Affine}, []bls12381.G2Affine{q.G2Affine})
	if err != nil {
		return nil, errors.Wrap(err, "pairing: miller loop")
	}
	return &GT{e: e}, nil
}

// IsEqual reports whether t and o are the same element.
func (t *GT) IsEqual(o *GT) bool {
	return t.e.Equal(&o.e)
}

// Bytes returns the GTSize byte encoding of t.
func (t *GT) Bytes() []byte {
	b := t.e.Bytes()
	return b[:]
}

// Decode parses an encoded GT element.
func Decode(data []byte) (*GT, error) {
	if len(data) != GTSize {
		return nil, errors.Wrapf(group.ErrMalformedEncoding, "pairing: gt element of %d bytes", len(data))
	}

	t := new(GT)
	if err := t.e.SetBytes(data); err != nil {
		return nil, errors.Wrap(group.ErrMalformedEncoding, err.Error())
	}
	return t, nil
}
