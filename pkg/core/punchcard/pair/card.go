// This Source Code Form is subject to the terms of the MIT License.
// If a copy of the MIT License was not distributed with this
// file, you can obtain one at https://opensource.org/licenses/MIT.
//
// Copyright (c) DUSK NETWORK. All rights reserved.

package pair

import (
	"crypto/rand"
	"io"

	"github.com/dusk-network/dusk-punchcard/pkg/core/punchcard"
	"github.com/dusk-network/dusk-punchcard/pkg/crypto/dleq"
	"github.com/dusk-network/dusk-punchcard/pkg/crypto/group"
	"github.com/dusk-network/dusk-punchcard/pkg/crypto/pairing"
	"github.com/pkg/errors"
)

// Card is a mergeable punch card made of a G1 half and a G2 half sharing
// one secret. It is not safe for concurrent use.
type Card struct {
	secret [punchcard.SecretSize]byte
	g1     *punchcard.Card
	g2     *punchcard.Card
}

// NewCard creates a card with a random secret. A nil reader means
// crypto/rand.
func NewCard(rnd io.Reader) (*Card, error) {
	if rnd == nil {
		rnd = rand.Reader
	}

	var secret [punchcard.SecretSize]byte
	if _, err := io.ReadFull(rnd, secret[:]); err != nil {
		return nil, errors.Wrap(err, "sampling card secret")
	}

	g1, err := punchcard.NewCardWithSecret(G1Suite, secret, rnd)
	if err != nil {
		return nil, err
	}

	g2, err := punchcard.NewCardWithSecret(G2Suite, secret, rnd)
	if err != nil {
		return nil, err
	}

	return &Card{secret: secret, g1: g1, g2: g2}, nil
}

// Representatives returns the current masked representatives of both
// halves.
func (c *Card) Representatives() ([]byte, []byte) {
	return c.g1.Representative(), c.g2.Representative()
}

// Count returns the number of verified punches. It panics with
// punchcard.ErrInconsistentState if the halves were punched a different
// number of times.
func (c *Card) Count() uint32 {
	n1, n2 := c.g1.Count(), c.g2.Count()
	if n1 != n2 {
		panic(errors.Wrapf(punchcard.ErrInconsistentState, "halves punched %d and %d times", n1, n2))
	}
	return n1
}

// VerifyAndRemask checks the punch of both halves and only then advances
// them. If either proof fails neither half changes and the current
// representatives are returned with the error.
func (c *Card) VerifyAndRemask(new1, new2, pub1, pub2 []byte, proof1, proof2 *dleq.Proof) ([]byte, []byte, error) {
	c.Count()

	p1, err := c.g1.VerifyPunch(new1, pub1, proof1)
	if err != nil {
		rep1, rep2 := c.Representatives()
		return rep1, rep2, err
	}

	p2, err := c.g2.VerifyPunch(new2, pub2, proof2)
	if err != nil {
		rep1, rep2 := c.Representatives()
		return rep1, rep2, err
	}

	if err := p1.Apply(); err != nil {
		rep1, rep2 := c.Representatives()
		return rep1, rep2, err
	}

	if err := p2.Apply(); err != nil {
		panic(errors.Wrap(punchcard.ErrInconsistentState, err.Error()))
	}

	rep1, rep2 := c.Representatives()
	return rep1, rep2, nil
}

// MergeRedeem unmasks c and other and pairs the G1 half of c with the G2 half
// of other. Both cards become unusable. The server verifies the result
// against both secrets and the sum of both punch counts.
func (c *Card) MergeRedeem(other *Card) ([punchcard.SecretSize]byte, [punchcard.SecretSize]byte, []byte, error) {
	var none [punchcard.SecretSize]byte

	if other == nil || other == c || other.secret == c.secret {
		return none, none, nil, errors.Wrap(punchcard.ErrRedemptionRejected, "a card can not be merged with itself")
	}

	if c.g1.Redeemed() || other.g1.Redeemed() {
		return none, none, nil, punchcard.ErrCardRedeemed
	}

	c.Count()
	other.Count()

	secretA, a, err := c.g1.UnmaskRedeem()
	if err != nil {
		return none, none, nil, err
	}

	secretB, b, err := other.g2.UnmaskRedeem()
	if err != nil {
		return none, none, nil, err
	}

	// the remaining halves are burnt with their cards
	_, _, _ = c.g2.UnmaskRedeem()
	_, _, _ = other.g1.UnmaskRedeem()

	ea, err := group.DecodeElement(group.G1, a)
	if err != nil {
		return none, none, nil, err
	}

	eb, err := group.DecodeElement(group.G2, b)
	if err != nil {
		return none, none, nil, err
	}

	merged, err := pairing.Pair(ea, eb)
	if err != nil {
		return none, none, nil, err
	}

	return secretA, secretB, merged.Bytes(), nil
}
