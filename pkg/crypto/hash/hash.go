// This Source Code Form is subject to the terms of the MIT License.
// If a copy of the MIT License was not distributed with this
// file, you can obtain one at https://opensource.org/licenses/MIT.
//
// Copyright (c) DUSK NETWORK. All rights reserved.

// Package hash provides the domain separated extendable output hashing used
// to derive points and scalars in prime-order groups without a native
// hash-to-field.
package hash

import (
	"encoding/binary"

	"golang.org/x/crypto/sha3"
)

// MaxDSTLength is the largest domain separation tag accepted by Shake256.
const MaxDSTLength = 255

// Shake256 fills out with SHAKE256(len(dst) || dst || len(m0) || m0 || ...).
// Every input is length prefixed so distinct (dst, msgs) tuples never collide.
func Shake256(out, dst []byte, msgs ...[]byte) {
	if len(dst) > MaxDSTLength {
		panic("hash: domain separation tag too long")
	}

	h := sha3.NewShake256()
	_, _ = h.Write([]byte{byte(len(dst))})
	_, _ = h.Write(dst)

	var l [8]byte
	for _, m := range msgs {
		binary.LittleEndian.PutUint64(l[:], uint64(len(m)))
		_, _ = h.Write(l[:])
		_, _ = h.Write(m)
	}

	_, _ = h.Read(out)
}
