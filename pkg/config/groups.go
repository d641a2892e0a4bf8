// This Source Code Form is subject to the terms of the MIT License.
// If a copy of the MIT License was not distributed with this
// file, you can obtain one at https://opensource.org/licenses/MIT.
//
// Copyright (c) DUSK NETWORK. All rights reserved.

package config

type loggerConfiguration struct {
	Level  string
	Output string
	Format string
}

// pkg/core/ledger package configs.
type ledgerConfiguration struct {
	Driver string
	Dir    string

	// Preload is the number of synthetic entries written to the ledger
	// before a benchmark starts.
	Preload int
}

// cmd/punchcard benchmark configs.
type benchConfiguration struct {
	Suite   string
	Punches uint32
	Cards   int
	Workers int
}
