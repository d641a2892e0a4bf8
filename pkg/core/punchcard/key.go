// This Source Code Form is subject to the terms of the MIT License.
// If a copy of the MIT License was not distributed with this
// file, you can obtain one at https://opensource.org/licenses/MIT.
//
// Copyright (c) DUSK NETWORK. All rights reserved.

package punchcard

import (
	"crypto/rand"
	"io"

	"github.com/dusk-network/dusk-punchcard/pkg/crypto/dleq"
	"github.com/dusk-network/dusk-punchcard/pkg/crypto/group"
	"github.com/pkg/errors"
)

// Key is the server punching key x together with its public key Y = g^x.
// x never leaves the Key.
type Key struct {
	suite Suite
	x     group.Scalar
	pub   group.Element
	rnd   io.Reader
}

// NewKey samples a fresh key for suite. Proof nonces are drawn from the
// same reader; a nil reader means crypto/rand.
func NewKey(suite Suite, rnd io.Reader) (*Key, error) {
	if rnd == nil {
		rnd = rand.Reader
	}

	x, err := suite.Group.RandomScalar(rnd)
	if err != nil {
		return nil, errors.Wrap(err, "sampling server key")
	}

	return &Key{
		suite: suite,
		x:     x,
		pub:   suite.Group.NewElement().Exp(suite.Group.Generator(), x),
		rnd:   rnd,
	}, nil
}

// For returns the same secret exponent bound to another suite. Both suites
// must share a scalar field, as the two source groups of a pairing do.
func (k *Key) For(suite Suite) *Key {
	x := suite.Group.NewScalar().Set(k.x)
	return &Key{
		suite: suite,
		x:     x,
		pub:   suite.Group.NewElement().Exp(suite.Group.Generator(), x),
		rnd:   k.rnd,
	}
}

// Suite returns the suite the key is bound to.
func (k *Key) Suite() Suite {
	return k.suite
}

// PublicKey returns the encoded public key.
func (k *Key) PublicKey() []byte {
	return group.Encode(k.pub)
}

// Punch raises rep to x and proves it did so with the same x as the public
// key.
func (k *Key) Punch(rep []byte) ([]byte, *dleq.Proof, error) {
	in, err := k.suite.decode(rep, "representative")
	if err != nil {
		return nil, nil, err
	}

	out := k.suite.Group.NewElement().Exp(in, k.x)

	st := dleq.Statement{PublicKey: k.pub, Input: in, Output: out}
	proof, err := dleq.Prove(k.suite.Group, k.suite.ChallengeTag, k.x, st, k.rnd)
	if err != nil {
		return nil, nil, errors.Wrap(err, "proving punch")
	}

	return group.Encode(out), proof, nil
}

// Expected returns H(secret)^(x^n), the representative an honest card
// punched n times unmasks to.
func (k *Key) Expected(secret [SecretSize]byte, n uint32) (group.Element, error) {
	if n == 0 {
		return nil, ErrZeroPunches
	}

	e, err := group.Pow(k.suite.Group, k.x, n)
	if err != nil {
		return nil, err
	}

	h, err := k.suite.HashSecret(secret)
	if err != nil {
		return nil, err
	}

	return k.suite.Group.NewElement().Exp(h, e), nil
}
