// This Source Code Form is subject to the terms of the MIT License.
// If a copy of the MIT License was not distributed with this
// file, you can obtain one at https://opensource.org/licenses/MIT.
//
// Copyright (c) DUSK NETWORK. All rights reserved.

package dleq

import (
	"github.com/dusk-network/dusk-punchcard/pkg/crypto/group"
	"github.com/pkg/errors"
)

// Size returns the length of an encoded proof over g.
func Size(g group.Group) int {
	return 2*g.ElementLength() + g.ScalarLength()
}

// MarshalBinary encodes the proof as V ‖ W ‖ z.
func (p *Proof) MarshalBinary() ([]byte, error) {
	buf := group.Encode(p.V)
	buf = append(buf, group.Encode(p.W)...)

	z, err := p.Z.MarshalBinary()
	if err != nil {
		return nil, err
	}
	return append(buf, z...), nil
}

// Decode parses a proof over g from its V ‖ W ‖ z encoding.
func Decode(g group.Group, data []byte) (*Proof, error) {
	if len(data) != Size(g) {
		return nil, errors.Wrapf(group.ErrMalformedEncoding, "dleq: proof of %d bytes, expected %d", len(data), Size(g))
	}

	el := g.ElementLength()

	v, err := group.DecodeElement(g, data[:el])
	if err != nil {
		return nil, errors.Wrap(err, "dleq: decoding V")
	}

	w, err := group.DecodeElement(g, data[el:2*el])
	if err != nil {
		return nil, errors.Wrap(err, "dleq: decoding W")
	}

	z, err := group.DecodeScalar(g, data[2*el:])
	if err != nil {
		return nil, errors.Wrap(err, "dleq: decoding z")
	}

	return &Proof{V: v, W: w, Z: z}, nil
}
