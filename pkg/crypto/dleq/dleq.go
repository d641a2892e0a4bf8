// This Source Code Form is subject to the terms of the MIT License.
// If a copy of the MIT License was not distributed with this
// file, you can obtain one at https://opensource.org/licenses/MIT.
//
// Copyright (c) DUSK NETWORK. All rights reserved.

// Package dleq implements a non-interactive Chaum-Pedersen proof that two
// group elements were raised to the same secret exponent:
//
//	Y = g^x  and  N = M^x
//
// The prover samples β, commits to V = g^β and W = M^β, derives the
// challenge c = H(Y ‖ M ‖ N ‖ V ‖ W) under a domain separation tag and
// responds with z = β + x·c. The verifier accepts iff g^z == V·Y^c and
// M^z == W·N^c.
package dleq

import (
	"errors"
	"io"

	"github.com/dusk-network/dusk-punchcard/pkg/crypto/group"
)

// ErrInvalidProof is returned by Verify when either equation fails.
var ErrInvalidProof = errors.New("invalid dleq proof")

// Proof is a Chaum-Pedersen proof (V, W, z).
type Proof struct {
	V group.Element
	W group.Element
	Z group.Scalar
}

// Statement is the public part of a proof: the public key Y = g^x, the
// input M and the output N = M^x.
type Statement struct {
	PublicKey group.Element
	Input     group.Element
	Output    group.Element
}

func challenge(g group.Group, dst []byte, st Statement, v, w group.Element) (group.Scalar, error) {
	size := g.ElementLength()
	msg := make([]byte, 0, 5*size)
	for _, e := range []group.Element{st.PublicKey, st.Input, st.Output, v, w} {
		msg = append(msg, group.Encode(e)...)
	}
	return g.HashToScalar(msg, dst)
}

// Prove produces a proof that st.Output == st.Input^x and
// st.PublicKey == g^x. The nonce is drawn from rnd.
func Prove(g group.Group, dst []byte, x group.Scalar, st Statement, rnd io.Reader) (*Proof, error) {
	beta, err := g.RandomScalar(rnd)
	if err != nil {
		return nil, err
	}

	v := g.NewElement().Exp(g.Generator(), beta)
	w := g.NewElement().Exp(st.Input, beta)

	c, err := challenge(g, dst, st, v, w)
	if err != nil {
		return nil, err
	}

	z := g.NewScalar().Mul(x, c)
	z.Add(z, beta)

	return &Proof{V: v, W: w, Z: z}, nil
}

// Verify checks p against st. It returns ErrInvalidProof when the proof
// does not hold.
func Verify(g group.Group, dst []byte, st Statement, p *Proof) error {
	if p == nil || p.V == nil || p.W == nil || p.Z == nil {
		return ErrInvalidProof
	}

	c, err := challenge(g, dst, st, p.V, p.W)
	if err != nil {
		return err
	}

	// g^z == V·Y^c
	lhs := g.NewElement().Exp(g.Generator(), p.Z)
	rhs := g.NewElement().Exp(st.PublicKey, c)
	rhs.Mul(p.V, rhs)
	if !lhs.IsEqual(rhs) {
		return ErrInvalidProof
	}

	// M^z == W·N^c
	lhs.Exp(st.Input, p.Z)
	rhs.Exp(st.Output, c)
	rhs.Mul(p.W, rhs)
	if !lhs.IsEqual(rhs) {
		return ErrInvalidProof
	}

	return nil
}
