// This Source Code Form is subject to the terms of the MIT License.
// If a copy of the MIT License was not distributed with this
// file, you can obtain one at https://opensource.org/licenses/MIT.
//
// Copyright (c) DUSK NETWORK. All rights reserved.

// Package pair implements mergeable punch cards over BLS12-381. A card has
// one half in G1 and one in G2, both derived from the same secret and
// punched in lockstep. At redemption the G1 half of one card is paired with
// the G2 half of another, so the server redeems both cards at once for the
// sum of their punches.
package pair

import (
	"github.com/dusk-network/dusk-punchcard/pkg/core/punchcard"
	"github.com/dusk-network/dusk-punchcard/pkg/crypto/group"
	"github.com/sirupsen/logrus"
)

var log = logrus.WithField("process", "punchcard/pair")

var (
	// G1Suite is the suite of the first half of a card.
	G1Suite = punchcard.Suite{
		Name:         "bls12-381/g1",
		Group:        group.G1,
		HashTag:      []byte("PUNCHCARD-V01-CS01-with-BLS12381G1_XMD:SHA-256_SSWU_RO_"),
		ChallengeTag: []byte("PUNCHCARD-V01-CS03-challenge-G1"),
	}

	// G2Suite is the suite of the second half of a card.
	G2Suite = punchcard.Suite{
		Name:         "bls12-381/g2",
		Group:        group.G2,
		HashTag:      []byte("PUNCHCARD-V01-CS02-with-BLS12381G2_XMD:SHA-256_SSWU_RO_"),
		ChallengeTag: []byte("PUNCHCARD-V01-CS04-challenge-G2"),
	}
)
