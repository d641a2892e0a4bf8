// This Source Code Form is subject to the terms of the MIT License.
// If a copy of the MIT License was not distributed with this
// file, you can obtain one at https://opensource.org/licenses/MIT.
//
// Copyright (c) DUSK NETWORK. All rights reserved.

package group

import (
	"io"
	"math/big"

	ristretto "github.com/bwesterb/go-ristretto"
	"github.com/dusk-network/dusk-punchcard/pkg/crypto/hash"
	"github.com/pkg/errors"
)

const ristrettoSize = 32

// ristrettoOrder is l = 2^252 + 27742317777372353535851937790883648493.
var ristrettoOrder, _ = new(big.Int).SetString("7237005577332262213973186563042994240857116359379907606001950938285454250989", 10)

// Ristretto255 is the prime-order group built on Edwards25519 with the
// Ristretto encoding. Elements and scalars encode to 32 bytes.
var Ristretto255 Group = ristrettoGroup{}

type ristrettoGroup struct{}

func (ristrettoGroup) Name() string { return "ristretto255" }

func (ristrettoGroup) NewElement() Element {
	e := new(ristrettoElement)
	e.p.SetZero()
	return e
}

func (ristrettoGroup) NewScalar() Scalar {
	s := new(ristrettoScalar)
	s.s.SetZero()
	return s
}

func (ristrettoGroup) Generator() Element {
	e := new(ristrettoElement)
	e.p.SetBase()
	return e
}

func (ristrettoGroup) RandomScalar(rnd io.Reader) (Scalar, error) {
	var buf [64]byte
	s := new(ristrettoScalar)
	for {
		if err := readFull(rnd, buf[:]); err != nil {
			return nil, errors.Wrap(err, "ristretto255: sampling scalar")
		}
		s.s.SetReduced(&buf)
		if !s.IsZero() {
			return s, nil
		}
	}
}

// HashToElement maps 64 bytes of SHAKE256 output through two Elligator2
// evaluations and adds the results, so the output is indistinguishable from
// a uniform element.
func (ristrettoGroup) HashToElement(msg, dst []byte) (Element, error) {
	var digest [64]byte
	hash.Shake256(digest[:], dst, msg)

	var lo, hi [32]byte
	copy(lo[:], digest[:32])
	copy(hi[:], digest[32:])

	var p1, p2 ristretto.Point
	p1.SetElligator(&lo)
	p2.SetElligator(&hi)

	e := new(ristrettoElement)
	e.p.Add(&p1, &p2)
	return e, nil
}

func (ristrettoGroup) HashToScalar(msg, dst []byte) (Scalar, error) {
	var digest [64]byte
	hash.Shake256(digest[:], dst, msg)

	s := new(ristrettoScalar)
	s.s.SetReduced(&digest)
	return s, nil
}

func (ristrettoGroup) ElementLength() int { return ristrettoSize }
func (ristrettoGroup) ScalarLength() int  { return ristrettoSize }

type ristrettoElement struct {
	p ristretto.Point
}

func toRistrettoElement(e Element) *ristrettoElement {
	re, ok := e.(*ristrettoElement)
	if !ok {
		panic("group: element is not a ristretto255 element")
	}
	return re
}

func (e *ristrettoElement) Mul(a, b Element) Element {
	e.p.Add(&toRistrettoElement(a).p, &toRistrettoElement(b).p)
	return e
}

func (e *ristrettoElement) Exp(a Element, s Scalar) Element {
	e.p.ScalarMult(&toRistrettoElement(a).p, &toRistrettoScalar(s).s)
	return e
}

func (e *ristrettoElement) Set(a Element) Element {
	e.p = toRistrettoElement(a).p
	return e
}

func (e *ristrettoElement) IsEqual(b Element) bool {
	return e.p.Equals(&toRistrettoElement(b).p)
}

func (e *ristrettoElement) MarshalBinary() ([]byte, error) {
	var buf [ristrettoSize]byte
	e.p.BytesInto(&buf)
	return buf[:], nil
}

func (e *ristrettoElement) UnmarshalBinary(data []byte) error {
	if len(data) != ristrettoSize {
		return errors.Wrapf(ErrMalformedEncoding, "ristretto255: point of %d bytes", len(data))
	}

	var buf [ristrettoSize]byte
	copy(buf[:], data)

	var p ristretto.Point
	if !p.SetBytes(&buf) {
		return errors.Wrap(ErrMalformedEncoding, "ristretto255: point not on curve")
	}
	e.p = p
	return nil
}

type ristrettoScalar struct {
	s ristretto.Scalar
}

func toRistrettoScalar(s Scalar) *ristrettoScalar {
	rs, ok := s.(*ristrettoScalar)
	if !ok {
		panic("group: scalar is not a ristretto255 scalar")
	}
	return rs
}

func (s *ristrettoScalar) Add(a, b Scalar) Scalar {
	s.s.Add(&toRistrettoScalar(a).s, &toRistrettoScalar(b).s)
	return s
}

func (s *ristrettoScalar) Mul(a, b Scalar) Scalar {
	s.s.Mul(&toRistrettoScalar(a).s, &toRistrettoScalar(b).s)
	return s
}

func (s *ristrettoScalar) Inv(a Scalar) Scalar {
	s.s.Inverse(&toRistrettoScalar(a).s)
	return s
}

func (s *ristrettoScalar) Set(a Scalar) Scalar {
	s.s = toRistrettoScalar(a).s
	return s
}

func (s *ristrettoScalar) SetOne() Scalar {
	s.s.SetOne()
	return s
}

func (s *ristrettoScalar) IsZero() bool {
	var zero ristretto.Scalar
	zero.SetZero()
	return s.s.Equals(&zero)
}

func (s *ristrettoScalar) IsEqual(b Scalar) bool {
	return s.s.Equals(&toRistrettoScalar(b).s)
}

func (s *ristrettoScalar) MarshalBinary() ([]byte, error) {
	var buf [ristrettoSize]byte
	s.s.BytesInto(&buf)
	return buf[:], nil
}

// UnmarshalBinary accepts only the canonical little-endian encoding of a
// value below the group order.
func (s *ristrettoScalar) UnmarshalBinary(data []byte) error {
	if len(data) != ristrettoSize {
		return errors.Wrapf(ErrMalformedEncoding, "ristretto255: scalar of %d bytes", len(data))
	}

	var buf [ristrettoSize]byte
	copy(buf[:], data)

	if new(big.Int).SetBytes(reversed(buf[:])).Cmp(ristrettoOrder) >= 0 {
		return errors.Wrap(ErrMalformedEncoding, "ristretto255: scalar not reduced")
	}

	s.s.SetBytes(&buf)
	return nil
}

func reversed(b []byte) []byte {
	out := make([]byte, len(b))
	for i := range b {
		out[len(b)-1-i] = b[i]
	}
	return out
}
