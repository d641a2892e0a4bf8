// This Source Code Form is subject to the terms of the MIT License.
// If a copy of the MIT License was not distributed with this
// file, you can obtain one at https://opensource.org/licenses/MIT.
//
// Copyright (c) DUSK NETWORK. All rights reserved.

package pair

import (
	"testing"

	"github.com/dusk-network/dusk-punchcard/pkg/core/ledger/lite"
	"github.com/dusk-network/dusk-punchcard/pkg/core/punchcard"
	"github.com/dusk-network/dusk-punchcard/pkg/crypto/pairing"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newServer(t *testing.T) *Server {
	s, err := NewServer(lite.New(), nil)
	require.NoError(t, err)
	return s
}

func newCard(t *testing.T) *Card {
	c, err := NewCard(nil)
	require.NoError(t, err)
	return c
}

func punch(t *testing.T, s *Server, c *Card, times int) {
	pub1, pub2 := s.PublicKeys()
	for i := 0; i < times; i++ {
		rep1, rep2 := c.Representatives()
		new1, new2, proof1, proof2, err := s.Punch(rep1, rep2)
		require.NoError(t, err)
		_, _, err = c.VerifyAndRemask(new1, new2, pub1, pub2, proof1, proof2)
		require.NoError(t, err)
	}
}

func TestMergeFivePlusFive(t *testing.T) {
	s := newServer(t)
	a, b := newCard(t), newCard(t)

	punch(t, s, a, 5)
	punch(t, s, b, 5)
	n := a.Count() + b.Count()
	require.Equal(t, uint32(10), n)

	secretA, secretB, merged, err := a.MergeRedeem(b)
	require.NoError(t, err)
	assert.Len(t, merged, pairing.GTSize)

	ok, err := s.Verify(merged, secretA, secretB, n)
	require.NoError(t, err)
	assert.True(t, ok)

	redeemed, err := s.Redeemed()
	require.NoError(t, err)
	assert.Equal(t, 2, redeemed)

	ok, err = s.Verify(merged, secretA, secretB, n)
	assert.False(t, ok)
	assert.Equal(t, punchcard.ErrDoubleSpend, err)
}

func TestUnevenMerge(t *testing.T) {
	s := newServer(t)
	a, b := newCard(t), newCard(t)

	punch(t, s, a, 2)
	punch(t, s, b, 7)

	secretA, secretB, merged, err := a.MergeRedeem(b)
	require.NoError(t, err)

	ok, err := s.Verify(merged, secretA, secretB, 8)
	assert.False(t, ok)
	assert.True(t, errors.Is(err, punchcard.ErrRedemptionRejected))

	ok, err = s.Verify(merged, secretA, secretB, 9)
	require.NoError(t, err)
	assert.True(t, ok)
}

func TestSwappedHalvesRejected(t *testing.T) {
	s := newServer(t)
	a, b := newCard(t), newCard(t)
	punch(t, s, a, 5)
	punch(t, s, b, 5)

	secretA, secretB, merged, err := a.MergeRedeem(b)
	require.NoError(t, err)

	ok, err := s.Verify(merged, secretB, secretA, 10)
	assert.False(t, ok)
	assert.True(t, errors.Is(err, punchcard.ErrRedemptionRejected))

	// nothing was spent by the failed attempt
	redeemed, err := s.Redeemed()
	require.NoError(t, err)
	assert.Equal(t, 0, redeemed)
}

func TestSameSecretRejected(t *testing.T) {
	s := newServer(t)
	a, b := newCard(t), newCard(t)
	punch(t, s, a, 1)
	punch(t, s, b, 1)

	secretA, _, merged, err := a.MergeRedeem(b)
	require.NoError(t, err)

	ok, err := s.Verify(merged, secretA, secretA, 2)
	assert.False(t, ok)
	assert.True(t, errors.Is(err, punchcard.ErrRedemptionRejected))

	c := newCard(t)
	_, _, _, err = c.MergeRedeem(c)
	assert.True(t, errors.Is(err, punchcard.ErrRedemptionRejected))
}

func TestPartiallySpentMerge(t *testing.T) {
	s := newServer(t)
	a, b, c := newCard(t), newCard(t), newCard(t)
	punch(t, s, a, 1)
	punch(t, s, b, 1)

	secretA, secretB, merged, err := a.MergeRedeem(b)
	require.NoError(t, err)
	ok, err := s.Verify(merged, secretA, secretB, 2)
	require.NoError(t, err)
	require.True(t, ok)

	// a valid merged value for a fresh secret and the spent secretB
	secretC, _, _, err := c.MergeRedeem(newCard(t))
	require.NoError(t, err)
	left, err := s.k1.Expected(secretC, 2)
	require.NoError(t, err)
	right, err := G2Suite.HashSecret(secretB)
	require.NoError(t, err)
	forged, err := pairing.Pair(left, right)
	require.NoError(t, err)

	ok, err = s.Verify(forged.Bytes(), secretC, secretB, 2)
	assert.False(t, ok)
	assert.Equal(t, punchcard.ErrDoubleSpend, err)

	// secretC must not have been recorded on its own
	redeemed, err := s.Redeemed()
	require.NoError(t, err)
	assert.Equal(t, 2, redeemed)
}

func TestRejectedHalfLeavesBothUntouched(t *testing.T) {
	s := newServer(t)
	other := newServer(t)
	c := newCard(t)
	punch(t, s, c, 1)

	pub1, pub2 := s.PublicKeys()
	rep1, rep2 := c.Representatives()

	new1, _, proof1, _, err := s.Punch(rep1, rep2)
	require.NoError(t, err)
	_, new2, _, proof2, err := other.Punch(rep1, rep2)
	require.NoError(t, err)

	got1, got2, err := c.VerifyAndRemask(new1, new2, pub1, pub2, proof1, proof2)
	assert.True(t, errors.Is(err, punchcard.ErrProofRejected))
	assert.Equal(t, rep1, got1)
	assert.Equal(t, rep2, got2)
	assert.Equal(t, uint32(1), c.Count())
}

func TestDivergingHalvesPanic(t *testing.T) {
	s := newServer(t)
	c := newCard(t)

	new1, proof1, err := s.k1.Punch(c.g1.Representative())
	require.NoError(t, err)
	_, err = c.g1.VerifyAndRemask(new1, s.k1.PublicKey(), proof1)
	require.NoError(t, err)

	assert.Panics(t, func() { c.Count() })

	rep1, rep2 := c.Representatives()
	n1, n2, p1, p2, err := s.Punch(rep1, rep2)
	require.NoError(t, err)
	pub1, pub2 := s.PublicKeys()
	assert.Panics(t, func() {
		_, _, _ = c.VerifyAndRemask(n1, n2, pub1, pub2, p1, p2)
	})
}

func TestMergeRedeemedCard(t *testing.T) {
	s := newServer(t)
	a, b, c := newCard(t), newCard(t), newCard(t)
	punch(t, s, a, 1)
	punch(t, s, b, 1)
	punch(t, s, c, 1)

	_, _, _, err := a.MergeRedeem(b)
	require.NoError(t, err)

	_, _, _, err = c.MergeRedeem(b)
	assert.Equal(t, punchcard.ErrCardRedeemed, err)

	_, _, _, err = a.MergeRedeem(c)
	assert.Equal(t, punchcard.ErrCardRedeemed, err)

	// c was not touched by the refused merges
	assert.False(t, c.g1.Redeemed())
	assert.False(t, c.g2.Redeemed())
}

func TestZeroPunches(t *testing.T) {
	s := newServer(t)
	a, b := newCard(t), newCard(t)

	secretA, secretB, merged, err := a.MergeRedeem(b)
	require.NoError(t, err)

	ok, err := s.Verify(merged, secretA, secretB, 0)
	assert.False(t, ok)
	assert.Equal(t, punchcard.ErrZeroPunches, err)
}
