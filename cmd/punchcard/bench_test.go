// This Source Code Form is subject to the terms of the MIT License.
// If a copy of the MIT License was not distributed with this
// file, you can obtain one at https://opensource.org/licenses/MIT.
//
// Copyright (c) DUSK NETWORK. All rights reserved.

package main

import (
	"bytes"
	"context"
	"io/ioutil"
	"os"
	"testing"

	cfg "github.com/dusk-network/dusk-punchcard/pkg/config"
	"github.com/dusk-network/dusk-punchcard/pkg/core/ledger"
	"github.com/dusk-network/dusk-punchcard/pkg/core/ledger/lite"
	"github.com/dusk-network/dusk-punchcard/pkg/core/punchcard"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRunBench(t *testing.T) {
	l := lite.New()

	r, err := runBench(context.Background(), punchcard.Ristretto255, l, benchParams{cards: 6, punches: 3, workers: 3})
	require.NoError(t, err)

	n, err := l.Count()
	require.NoError(t, err)
	assert.Equal(t, 6, n)

	var buf bytes.Buffer
	r.render(&buf)
	for _, phase := range []string{"server setup", "card setup", "punch", "unmask", "redeem", "lookup"} {
		assert.Contains(t, buf.String(), phase)
	}
}

func TestRunPairBench(t *testing.T) {
	l := lite.New()

	// an odd card count is rounded down
	r, err := runPairBench(context.Background(), l, benchParams{cards: 5, punches: 2, workers: 2})
	require.NoError(t, err)
	assert.Contains(t, r.title, "4 cards")

	n, err := l.Count()
	require.NoError(t, err)
	assert.Equal(t, 4, n)

	_, err = runPairBench(context.Background(), l, benchParams{cards: 1, punches: 2, workers: 1})
	assert.Error(t, err)
}

func TestSetupWithPreload(t *testing.T) {
	prev := cfg.Get()
	defer cfg.Mock(&prev)

	dir, err := ioutil.TempDir("", "punchcard_cmd_")
	require.NoError(t, err)
	defer os.RemoveAll(dir)

	s, err := setup([]string{"--ledger.driver", "bunt", "--ledger.dir", dir, "--ledger.preload", "25", "--logger.level", "error"})
	require.NoError(t, err)
	defer s.Close()

	n, err := s.ledger.Count()
	require.NoError(t, err)
	assert.Equal(t, 25, n)
}

func TestSetupUnknownDriver(t *testing.T) {
	prev := cfg.Get()
	defer cfg.Mock(&prev)

	_, err := setup([]string{"--ledger.driver", "nosuchdriver"})
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "nosuchdriver")
}

func TestParamsFromConfig(t *testing.T) {
	prev := cfg.Get()
	defer cfg.Mock(&prev)

	r := prev
	r.Bench.Workers = 0
	cfg.Mock(&r)

	p, err := paramsFromConfig()
	require.NoError(t, err)
	assert.Equal(t, 1, p.workers)

	r.Bench.Punches = 0
	_, err = paramsFromConfig()
	assert.Error(t, err)
}

func TestDriversRegistered(t *testing.T) {
	assert.Equal(t, []string{"bunt", "heavy", "lite", "storm"}, ledger.Drivers())
}
