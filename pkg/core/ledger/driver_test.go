// This Source Code Form is subject to the terms of the MIT License.
// If a copy of the MIT License was not distributed with this
// file, you can obtain one at https://opensource.org/licenses/MIT.
//
// Copyright (c) DUSK NETWORK. All rights reserved.

package ledger

import (
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeDriver struct{ name string }

func (f fakeDriver) Name() string { return f.name }
func (f fakeDriver) Open(string) (Ledger, error) { return nil, errors.New("not implemented") }

func TestRegister(t *testing.T) {
	require.NoError(t, Register(fakeDriver{"fake"}))
	assert.Error(t, Register(fakeDriver{"fake"}))
	assert.Error(t, Register(nil))

	assert.Contains(t, Drivers(), "fake")

	d, err := From("fake")
	require.NoError(t, err)
	assert.Equal(t, "fake", d.Name())

	_, err = From("missing")
	assert.True(t, errors.Is(err, ErrUnknownDriver))

	_, err = Open("fake", "")
	assert.Error(t, err)
}

func TestHasDuplicates(t *testing.T) {
	var a, b [SecretSize]byte
	b[0] = 1

	assert.False(t, HasDuplicates(nil))
	assert.False(t, HasDuplicates([][SecretSize]byte{a, b}))
	assert.True(t, HasDuplicates([][SecretSize]byte{a, b, a}))
}
