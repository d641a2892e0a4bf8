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

var (
	// ErrMalformedEncoding is returned when a representative, public key or
	// proof does not decode.
	ErrMalformedEncoding = group.ErrMalformedEncoding

	// ErrProofRejected is returned when a punch proof does not verify. The
	// card is left untouched.
	ErrProofRejected = errors.New("punch proof rejected")

	// ErrRedemptionRejected is returned when a redemption is refused.
	ErrRedemptionRejected = errors.New("redemption rejected")

	// ErrDoubleSpend is returned when a valid redemption reuses a secret
	// already in the ledger. It wraps ErrRedemptionRejected.
	ErrDoubleSpend = errors.WithMessage(ErrRedemptionRejected, "double spend")

	// ErrZeroPunches is returned when redeeming a card that was never
	// punched.
	ErrZeroPunches = errors.New("number of punches must be positive")

	// ErrCardRedeemed is returned by any operation on a card that was
	// already redeemed.
	ErrCardRedeemed = errors.New("card already redeemed")

	// ErrInconsistentState signals a broken internal invariant. It is only
	// ever raised through panic.
	ErrInconsistentState = errors.New("inconsistent card state")

	// ErrNoLedger is returned when a server is created without a ledger.
	ErrNoLedger = errors.New("server requires a ledger")
)
