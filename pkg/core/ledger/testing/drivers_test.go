// This Source Code Form is subject to the terms of the MIT License.
// If a copy of the MIT License was not distributed with this
// file, you can obtain one at https://opensource.org/licenses/MIT.
//
// Copyright (c) DUSK NETWORK. All rights reserved.

package test

import (
	"crypto/rand"
	"fmt"
	"io/ioutil"
	"os"
	"sync/atomic"
	"testing"

	"github.com/dusk-network/dusk-punchcard/pkg/core/ledger"
	_ "github.com/dusk-network/dusk-punchcard/pkg/core/ledger/bunt"
	_ "github.com/dusk-network/dusk-punchcard/pkg/core/ledger/heavy"
	_ "github.com/dusk-network/dusk-punchcard/pkg/core/ledger/lite"
	_ "github.com/dusk-network/dusk-punchcard/pkg/core/ledger/stormdb"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/sync/errgroup"
)

// l is the ledger under test, opened by TestMain for each driver.
var l ledger.Ledger

// TestMain defines the minimum requirements that each Driver must satisfy.
// Every test in this package runs once per registered driver.
//
// Note TestMain must clean up all resources on completion
func TestMain(m *testing.M) {
	var code int
	// Run on all registered drivers.
	for _, driverName := range ledger.Drivers() {
		code = testDriver(m, driverName)
		// the exit code might be needed on proper CI execution
		if code != 0 {
			os.Exit(code)
		}
	}
	os.Exit(code)
}

// testDriver executes all tests (declared in this file) in the context of a
// driver specified by driverName
func testDriver(m *testing.M, driverName string) int {
	storeDir, err := ioutil.TempDir(os.TempDir(), driverName+"_temp_ledger_")
	if err != nil {
		fmt.Println(err)
		return 1
	}

	// Cleanup backend files only when running in testing mode
	defer os.RemoveAll(storeDir)

	l, err = ledger.Open(driverName, storeDir)
	if err != nil {
		fmt.Println(err)
		return 1
	}

	defer func() {
		_ = l.Close()
		l = nil
	}()

	return m.Run()
}

func randomSecret(t *testing.T) [ledger.SecretSize]byte {
	var s [ledger.SecretSize]byte
	_, err := rand.Read(s[:])
	require.NoError(t, err)
	return s
}

func TestSpend(t *testing.T) {
	s := randomSecret(t)

	found, err := l.Has(s)
	require.NoError(t, err)
	assert.False(t, found)

	fresh, err := l.Spend(s)
	require.NoError(t, err)
	assert.True(t, fresh)

	found, err = l.Has(s)
	require.NoError(t, err)
	assert.True(t, found)

	// second spend of the same secret is refused
	fresh, err = l.Spend(s)
	require.NoError(t, err)
	assert.False(t, fresh)
}

func TestSpendAllOrNothing(t *testing.T) {
	a, b, c := randomSecret(t), randomSecret(t), randomSecret(t)

	fresh, err := l.Spend(b)
	require.NoError(t, err)
	require.True(t, fresh)

	before, err := l.Count()
	require.NoError(t, err)

	// b is spent, so a must not be inserted
	fresh, err = l.Spend(a, b)
	require.NoError(t, err)
	assert.False(t, fresh)

	found, err := l.Has(a)
	require.NoError(t, err)
	assert.False(t, found)

	after, err := l.Count()
	require.NoError(t, err)
	assert.Equal(t, before, after)

	fresh, err = l.Spend(a, c)
	require.NoError(t, err)
	assert.True(t, fresh)

	after, err = l.Count()
	require.NoError(t, err)
	assert.Equal(t, before+2, after)
}

func TestSpendDuplicateInBatch(t *testing.T) {
	s := randomSecret(t)

	fresh, err := l.Spend(s, s)
	require.NoError(t, err)
	assert.False(t, fresh)

	found, err := l.Has(s)
	require.NoError(t, err)
	assert.False(t, found)
}

// TestConcurrentSpend checks that among many goroutines racing to spend
// the same secret exactly one wins.
func TestConcurrentSpend(t *testing.T) {
	const racers = 16

	for round := 0; round < 8; round++ {
		s := randomSecret(t)

		var winners int32
		var g errgroup.Group
		for i := 0; i < racers; i++ {
			g.Go(func() error {
				fresh, err := l.Spend(s)
				if err != nil {
					return err
				}
				if fresh {
					atomic.AddInt32(&winners, 1)
				}
				return nil
			})
		}

		require.NoError(t, g.Wait())
		assert.Equal(t, int32(1), winners)
	}
}

func TestPreload(t *testing.T) {
	before, err := l.Count()
	require.NoError(t, err)

	require.NoError(t, ledger.Preload(l, 100))

	after, err := l.Count()
	require.NoError(t, err)
	assert.Equal(t, before+100, after)
}
