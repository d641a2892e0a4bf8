// This Source Code Form is subject to the terms of the MIT License.
// If a copy of the MIT License was not distributed with this
// file, you can obtain one at https://opensource.org/licenses/MIT.
//
// Copyright (c) DUSK NETWORK. All rights reserved.

package punchcard

import (
	"io"

	"github.com/dusk-network/dusk-punchcard/pkg/core/ledger"
	"github.com/dusk-network/dusk-punchcard/pkg/crypto/dleq"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
)

var log = logrus.WithField("process", "punchcard")

// Server punches cards and redeems them against a ledger of spent secrets.
// It is safe for concurrent use as long as its random source is.
type Server struct {
	key    *Key
	ledger ledger.Ledger
}

// NewServer creates a server with a fresh key. The ledger is owned by the
// server from now on.
func NewServer(suite Suite, l ledger.Ledger, rnd io.Reader) (*Server, error) {
	if l == nil {
		return nil, ErrNoLedger
	}

	key, err := NewKey(suite, rnd)
	if err != nil {
		return nil, err
	}

	log.WithField("suite", suite.Name).Debug("server key generated")
	return &Server{key: key, ledger: l}, nil
}

// PublicKey returns the encoded public key Y = g^x.
func (s *Server) PublicKey() []byte {
	return s.key.PublicKey()
}

// Punch returns rep^x and a proof that the same x was used as for the
// public key. It does not touch the ledger.
func (s *Server) Punch(rep []byte) ([]byte, *dleq.Proof, error) {
	newRep, proof, err := s.key.Punch(rep)
	if err != nil {
		log.WithError(err).Debug("punch refused")
		return nil, nil, err
	}

	log.Trace("card punched")
	return newRep, proof, nil
}

// Verify redeems a card. It returns true only if finalRep equals
// H(secret)^(x^numPunches) and secret was not redeemed before, in which case
// the secret is recorded in the ledger. On any mismatch the ledger is left
// untouched.
func (s *Server) Verify(finalRep []byte, secret [SecretSize]byte, numPunches uint32) (bool, error) {
	if numPunches == 0 {
		return false, ErrZeroPunches
	}

	got, err := s.key.suite.decode(finalRep, "final representative")
	if err != nil {
		return false, err
	}

	expected, err := s.key.Expected(secret, numPunches)
	if err != nil {
		return false, err
	}

	if !got.IsEqual(expected) {
		log.WithField("punches", numPunches).Debug("redemption rejected")
		return false, errors.Wrapf(ErrRedemptionRejected, "representative does not match %d punches", numPunches)
	}

	fresh, err := s.ledger.Spend(secret)
	if err != nil {
		return false, errors.Wrap(err, "recording redemption")
	}

	if !fresh {
		log.WithField("punches", numPunches).Debug("double spend rejected")
		return false, ErrDoubleSpend
	}

	log.WithField("punches", numPunches).Debug("card redeemed")
	return true, nil
}

// Redeemed returns the number of secrets in the ledger.
func (s *Server) Redeemed() (int, error) {
	return s.ledger.Count()
}

// Has reports whether secret was already redeemed.
func (s *Server) Has(secret [SecretSize]byte) (bool, error) {
	return s.ledger.Has(secret)
}
