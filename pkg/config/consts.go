// This Source Code Form is subject to the terms of the MIT License.
// If a copy of the MIT License was not distributed with this
// file, you can obtain one at https://opensource.org/licenses/MIT.
//
// Copyright (c) DUSK NETWORK. All rights reserved.

package config

// A single point of constants definition
const (
	// Version is the semantic version of the punchcard tool.
	Version = "v0.3.0"

	// DefaultLedgerDriver keeps redeemed secrets in memory.
	DefaultLedgerDriver = "lite"

	// DefaultLedgerDir is where persistent ledger drivers keep their files.
	DefaultLedgerDir = "punchcard-ledger"

	// DefaultSuite is the group the single-group benchmark runs over.
	DefaultSuite = "ristretto255"

	// DefaultPunches is the number of punches per card in benchmarks, as in
	// the canonical ten punch scenario.
	DefaultPunches = 10

	// DefaultCards is the number of cards issued per benchmark run.
	DefaultCards = 100

	// DefaultWorkers is the size of the redemption worker pool.
	DefaultWorkers = 4
)
