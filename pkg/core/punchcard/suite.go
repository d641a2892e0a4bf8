// This Source Code Form is subject to the terms of the MIT License.
// If a copy of the MIT License was not distributed with this
// file, you can obtain one at https://opensource.org/licenses/MIT.
//
// Copyright (c) DUSK NETWORK. All rights reserved.

package punchcard

import (
	"github.com/dusk-network/dusk-punchcard/pkg/crypto/group"
	"github.com/pkg/errors"
)

// Suite binds a group to the domain separation tags used for hashing card
// secrets and for deriving proof challenges.
type Suite struct {
	Name  string
	Group group.Group

	// HashTag separates H(secret) from any other hash-to-group use.
	HashTag []byte
	// ChallengeTag separates punch proof challenges.
	ChallengeTag []byte
}

// Ristretto255 is the single-group suite.
var Ristretto255 = Suite{
	Name:         "ristretto255",
	Group:        group.Ristretto255,
	HashTag:      []byte("punchcard-v1/ristretto255/hash-to-group"),
	ChallengeTag: []byte("punchcard-v1/ristretto255/challenge"),
}

// ErrUnknownSuite is returned by SuiteByName.
var ErrUnknownSuite = errors.New("unknown suite")

// SuiteByName returns a registered single-group suite.
func SuiteByName(name string) (Suite, error) {
	switch name {
	case Ristretto255.Name:
		return Ristretto255, nil
	}
	return Suite{}, errors.Wrap(ErrUnknownSuite, name)
}

// HashSecret maps a card secret into the suite's group.
func (s Suite) HashSecret(secret [SecretSize]byte) (group.Element, error) {
	return s.Group.HashToElement(secret[:], s.HashTag)
}

func (s Suite) decode(data []byte, what string) (group.Element, error) {
	e, err := group.DecodeElement(s.Group, data)
	if err != nil {
		return nil, errors.Wrapf(err, "%s: decoding %s", s.Name, what)
	}
	return e, nil
}
