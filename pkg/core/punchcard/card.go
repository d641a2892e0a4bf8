// This Source Code Form is subject to the terms of the MIT License.
// If a copy of the MIT License was not distributed with this
// file, you can obtain one at https://opensource.org/licenses/MIT.
//
// Copyright (c) DUSK NETWORK. All rights reserved.

package punchcard

import (
	"crypto/rand"
	"io"

	"github.com/dusk-network/dusk-punchcard/pkg/core/ledger"
	"github.com/dusk-network/dusk-punchcard/pkg/crypto/dleq"
	"github.com/dusk-network/dusk-punchcard/pkg/crypto/group"
	"github.com/pkg/errors"
)

// SecretSize is the length of a card secret.
const SecretSize = ledger.SecretSize

// Card is the client side of a punch card. The server only ever sees the
// masked representative H(secret)^(mask · x^count), which is re-randomized
// after every punch so that consecutive punches can not be linked.
//
// A Card is not safe for concurrent use.
type Card struct {
	suite Suite
	rnd   io.Reader

	secret [SecretSize]byte
	mask   group.Scalar
	rep    group.Element

	count    uint32
	redeemed bool
}

// NewCard creates a card with a random secret. A nil reader means
// crypto/rand.
func NewCard(suite Suite, rnd io.Reader) (*Card, error) {
	if rnd == nil {
		rnd = rand.Reader
	}

	var secret [SecretSize]byte
	if _, err := io.ReadFull(rnd, secret[:]); err != nil {
		return nil, errors.Wrap(err, "sampling card secret")
	}

	return NewCardWithSecret(suite, secret, rnd)
}

// NewCardWithSecret creates a card around a caller-chosen secret.
func NewCardWithSecret(suite Suite, secret [SecretSize]byte, rnd io.Reader) (*Card, error) {
	if rnd == nil {
		rnd = rand.Reader
	}

	h, err := suite.HashSecret(secret)
	if err != nil {
		return nil, err
	}

	mask, err := suite.Group.RandomScalar(rnd)
	if err != nil {
		return nil, errors.Wrap(err, "sampling mask")
	}

	return &Card{
		suite:  suite,
		rnd:    rnd,
		secret: secret,
		mask:   mask,
		rep:    suite.Group.NewElement().Exp(h, mask),
	}, nil
}

// Representative returns the encoding of the current masked representative.
func (c *Card) Representative() []byte {
	return group.Encode(c.rep)
}

// Count returns the number of verified punches.
func (c *Card) Count() uint32 {
	return c.count
}

// Redeemed reports whether UnmaskRedeem was called.
func (c *Card) Redeemed() bool {
	return c.redeemed
}

// Punch is a verified, not yet applied, card transition.
type Punch struct {
	card  *Card
	base  group.Element
	mask  group.Scalar
	rep   group.Element
	count uint32
}

// Representative returns the representative the card will hold once the
// punch is applied.
func (p *Punch) Representative() []byte {
	return group.Encode(p.rep)
}

// Apply commits the punch to its card. A punch is applied at most once and
// only to the state it was verified against.
func (p *Punch) Apply() error {
	c := p.card
	if c.redeemed {
		return ErrCardRedeemed
	}
	if c.rep != p.base || c.count+1 != p.count {
		return errors.Wrap(ErrProofRejected, "punch verified against a stale representative")
	}

	c.mask = p.mask
	c.rep = p.rep
	c.count = p.count
	return nil
}

// VerifyPunch checks the server's answer to the current representative
// without modifying the card. On success it returns the pending transition:
// the punched representative is unmasked and masked again with a fresh mask.
func (c *Card) VerifyPunch(newRep, publicKey []byte, proof *dleq.Proof) (*Punch, error) {
	if c.redeemed {
		return nil, ErrCardRedeemed
	}

	out, err := c.suite.decode(newRep, "punched representative")
	if err != nil {
		return nil, err
	}

	pub, err := c.suite.decode(publicKey, "public key")
	if err != nil {
		return nil, err
	}

	st := dleq.Statement{PublicKey: pub, Input: c.rep, Output: out}
	if err := dleq.Verify(c.suite.Group, c.suite.ChallengeTag, st, proof); err != nil {
		if err == dleq.ErrInvalidProof {
			return nil, errors.Wrapf(ErrProofRejected, "%s: punch %d", c.suite.Name, c.count+1)
		}
		return nil, err
	}

	g := c.suite.Group
	inv := g.NewScalar().Inv(c.mask)
	unmasked := g.NewElement().Exp(out, inv)

	mask, err := g.RandomScalar(c.rnd)
	if err != nil {
		return nil, errors.Wrap(err, "sampling mask")
	}

	return &Punch{
		card:  c,
		base:  c.rep,
		mask:  mask,
		rep:   g.NewElement().Exp(unmasked, mask),
		count: c.count + 1,
	}, nil
}

// VerifyAndRemask checks the server's punch and, if the proof holds,
// advances the card and returns the new representative. On failure the card
// is unchanged and its current representative is returned with the error.
func (c *Card) VerifyAndRemask(newRep, publicKey []byte, proof *dleq.Proof) ([]byte, error) {
	p, err := c.VerifyPunch(newRep, publicKey, proof)
	if err != nil {
		return c.Representative(), err
	}

	if err := p.Apply(); err != nil {
		return c.Representative(), err
	}
	return c.Representative(), nil
}

// UnmaskRedeem removes the mask and returns the secret with the unmasked
// representative H(secret)^(x^count). The card can not be used afterwards.
func (c *Card) UnmaskRedeem() ([SecretSize]byte, []byte, error) {
	if c.redeemed {
		return [SecretSize]byte{}, nil, ErrCardRedeemed
	}

	g := c.suite.Group
	inv := g.NewScalar().Inv(c.mask)
	final := g.NewElement().Exp(c.rep, inv)

	c.redeemed = true
	return c.secret, group.Encode(final), nil
}
