// This Source Code Form is subject to the terms of the MIT License.
// If a copy of the MIT License was not distributed with this
// file, you can obtain one at https://opensource.org/licenses/MIT.
//
// Copyright (c) DUSK NETWORK. All rights reserved.

package pair

import (
	"io"

	"github.com/dusk-network/dusk-punchcard/pkg/core/ledger"
	"github.com/dusk-network/dusk-punchcard/pkg/core/punchcard"
	"github.com/dusk-network/dusk-punchcard/pkg/crypto/dleq"
	"github.com/dusk-network/dusk-punchcard/pkg/crypto/pairing"
	"github.com/pkg/errors"
)

// Server punches both halves of pair cards with one secret exponent and
// redeems merged cards. It is safe for concurrent use as long as its random
// source is.
type Server struct {
	k1     *punchcard.Key
	k2     *punchcard.Key
	ledger ledger.Ledger
}

// NewServer creates a server with a fresh key x, published as g1^x and
// g2^x.
func NewServer(l ledger.Ledger, rnd io.Reader) (*Server, error) {
	if l == nil {
		return nil, punchcard.ErrNoLedger
	}

	k1, err := punchcard.NewKey(G1Suite, rnd)
	if err != nil {
		return nil, err
	}

	log.Debug("server key generated")
	return &Server{k1: k1, k2: k1.For(G2Suite), ledger: l}, nil
}

// PublicKeys returns the encoded public keys in G1 and G2.
func (s *Server) PublicKeys() ([]byte, []byte) {
	return s.k1.PublicKey(), s.k2.PublicKey()
}

// Punch punches both halves of a card.
func (s *Server) Punch(rep1, rep2 []byte) ([]byte, []byte, *dleq.Proof, *dleq.Proof, error) {
	new1, proof1, err := s.k1.Punch(rep1)
	if err != nil {
		return nil, nil, nil, nil, err
	}

	new2, proof2, err := s.k2.Punch(rep2)
	if err != nil {
		return nil, nil, nil, nil, err
	}

	log.Trace("card punched")
	return new1, new2, proof1, proof2, nil
}

// Verify redeems two merged cards with secrets secretA and secretB punched
// numPunches times in total. On success both secrets are recorded in the
// ledger together; if either was already spent neither is recorded.
func (s *Server) Verify(merged []byte, secretA, secretB [punchcard.SecretSize]byte, numPunches uint32) (bool, error) {
	if numPunches == 0 {
		return false, punchcard.ErrZeroPunches
	}

	if secretA == secretB {
		return false, errors.Wrap(punchcard.ErrRedemptionRejected, "both halves carry the same secret")
	}

	got, err := pairing.Decode(merged)
	if err != nil {
		return false, err
	}

	a, err := s.k1.Expected(secretA, numPunches)
	if err != nil {
		return false, err
	}

	b, err := G2Suite.HashSecret(secretB)
	if err != nil {
		return false, err
	}

	expected, err := pairing.Pair(a, b)
	if err != nil {
		return false, err
	}

	if !got.IsEqual(expected) {
		log.WithField("punches", numPunches).Debug("redemption rejected")
		return false, errors.Wrapf(punchcard.ErrRedemptionRejected, "merged value does not match %d punches", numPunches)
	}

	fresh, err := s.ledger.Spend(secretA, secretB)
	if err != nil {
		return false, errors.Wrap(err, "recording redemption")
	}

	if !fresh {
		log.WithField("punches", numPunches).Debug("double spend rejected")
		return false, punchcard.ErrDoubleSpend
	}

	log.WithField("punches", numPunches).Debug("cards redeemed")
	return true, nil
}

// Redeemed returns the number of secrets in the ledger.
func (s *Server) Redeemed() (int, error) {
	return s.ledger.Count()
}
