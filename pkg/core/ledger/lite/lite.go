// This Source Code Form is subject to the terms of the MIT License.
// If a copy of the MIT License was not distributed with this
// file, you can obtain one at https://opensource.org/licenses/MIT.
//
// Copyright (c) DUSK NETWORK. All rights reserved.

// Package lite is an in-memory ledger driver. Its contents are lost on
// Close.
package lite

import (
	"github.com/dusk-network/dusk-punchcard/pkg/core/ledger"
	"github.com/dusk-network/dusk-punchcard/pkg/util/nativeutils/hashset"
	log "github.com/sirupsen/logrus"
)

// DriverName is the unique identifier for the lite driver.
const DriverName = "lite"

type driver struct{}

func (driver) Open(string) (ledger.Ledger, error) {
	return New(), nil
}

func (driver) Name() string {
	return DriverName
}

func init() {
	if err := ledger.Register(driver{}); err != nil {
		log.Panic(err)
	}
}

// Ledger keeps spent secrets in a hashset.SafeSet.
type Ledger struct {
	set *hashset.SafeSet
}

// New returns an empty in-memory ledger.
func New() *Ledger {
	return &Ledger{set: hashset.NewSafe()}
}

// Spend implements ledger.Ledger.
func (l *Ledger) Spend(secrets ...[ledger.SecretSize]byte) (bool, error) {
	if ledger.HasDuplicates(secrets) {
		return false, nil
	}

	entries := make([][]byte, len(secrets))
	for i := range secrets {
		entries[i] = secrets[i][:]
	}
	return l.set.AddAll(entries...), nil
}

// Has implements ledger.Ledger.
func (l *Ledger) Has(secret [ledger.SecretSize]byte) (bool, error) {
	return l.set.Has(secret[:]), nil
}

// Count implements ledger.Ledger.
func (l *Ledger) Count() (int, error) {
	return l.set.Size(), nil
}

// Close implements ledger.Ledger.
func (l *Ledger) Close() error {
	return nil
}
