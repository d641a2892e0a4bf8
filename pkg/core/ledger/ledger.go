// This Source Code Form is subject to the terms of the MIT License.
// If a copy of the MIT License was not distributed with this
// file, you can obtain one at https://opensource.org/licenses/MIT.
//
// Copyright (c) DUSK NETWORK. All rights reserved.

// Package ledger keeps the set of punch card secrets that have already been
// redeemed. Storage backends register themselves as drivers, the same way
// database/sql drivers do, and are selected by name at runtime.
package ledger

import (
	"crypto/rand"

	"github.com/pkg/errors"
)

// SecretSize is the length of a card secret.
const SecretSize = 32

// Ledger is a grow-only set of redeemed card secrets.
//
// Implementations must be safe for concurrent use, and Spend must check and
// insert as one atomic step: of any number of concurrent calls spending the
// same secret, exactly one returns true.
type Ledger interface {
	// Spend inserts all secrets if none of them is present and reports
	// whether it did so. If any secret is already present, or the same
	// secret appears twice in the call, nothing is inserted and false is
	// returned.
	Spend(secrets ...[SecretSize]byte) (bool, error)

	// Has reports whether secret is present. It never inserts.
	Has(secret [SecretSize]byte) (bool, error)

	// Count returns the number of stored secrets.
	Count() (int, error)

	Close() error
}

// Driver opens ledgers of a given backend.
type Driver interface {
	// Name is the unique identifier the driver is registered under.
	Name() string

	// Open returns a ledger stored under dir. Drivers that keep the set in
	// memory ignore dir.
	Open(dir string) (Ledger, error)
}

// Open is a shorthand for looking a driver up and opening a ledger with it.
func Open(driverName, dir string) (Ledger, error) {
	drv, err := From(driverName)
	if err != nil {
		return nil, err
	}

	l, err := drv.Open(dir)
	if err != nil {
		return nil, errors.Wrapf(err, "ledger: opening %s at %q", driverName, dir)
	}

	log.WithField("driver", driverName).Debug("ledger opened")
	return l, nil
}

// Preload fills l with n random secrets. It is used to measure lookups
// against a ledger of realistic size.
func Preload(l Ledger, n int) error {
	var secret [SecretSize]byte
	for i := 0; i < n; i++ {
		if _, err := rand.Read(secret[:]); err != nil {
			return errors.Wrap(err, "ledger: sampling preload entry")
		}

		if _, err := l.Spend(secret); err != nil {
			return errors.Wrapf(err, "ledger: preloading entry %d", i)
		}
	}

	log.WithField("entries", n).Debug("ledger preloaded")
	return nil
}

// HasDuplicates reports whether the same secret appears more than once in
// secrets. Drivers use it to refuse self-colliding batches.
func HasDuplicates(secrets [][SecretSize]byte) bool {
	for i := range secrets {
		for j := i + 1; j < len(secrets); j++ {
			if secrets[i] == secrets[j] {
				return true
			}
		}
	}
	return false
}
