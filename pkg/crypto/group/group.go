// This Source Code Form is subject to the terms of the MIT License.
// If a copy of the MIT License was not distributed with this
// file, you can obtain one at https://opensource.org/licenses/MIT.
//
// Copyright (c) DUSK NETWORK. All rights reserved.

// Package group abstracts the prime-order groups the punch card protocol runs
// over. Groups are written multiplicatively: Mul is the group operation and
// Exp raises an element to a scalar power, regardless of the additive
// notation the underlying curve library uses.
//
// Implementations are provided for Ristretto255 (bwesterb/go-ristretto) and
// for the two source groups of BLS12-381 (consensys/gnark-crypto).
package group

import (
	"errors"
	"io"
)

var (
	// ErrMalformedEncoding is returned when bytes do not decode to a canonical
	// group element or scalar.
	ErrMalformedEncoding = errors.New("malformed group encoding")

	// ErrZeroExponent is returned by Pow for a zero exponent.
	ErrZeroExponent = errors.New("zero exponent")
)

// Group is a cyclic group of prime order together with its scalar field.
type Group interface {
	// Name identifies the group, e.g. "ristretto255".
	Name() string

	// NewElement returns the identity element.
	NewElement() Element
	// NewScalar returns the zero scalar.
	NewScalar() Scalar
	// Generator returns a fresh copy of the fixed generator.
	Generator() Element

	// RandomScalar samples a uniform non-zero scalar from rnd.
	RandomScalar(rnd io.Reader) (Scalar, error)

	// HashToElement deterministically maps msg to an element under the
	// domain separation tag dst.
	HashToElement(msg, dst []byte) (Element, error)
	// HashToScalar deterministically maps msg to a scalar under dst.
	HashToScalar(msg, dst []byte) (Scalar, error)

	// ElementLength is the size of an encoded element.
	ElementLength() int
	// ScalarLength is the size of an encoded scalar.
	ScalarLength() int
}

// Element is a group element. Methods set the receiver and return it so
// calls can be chained; arguments are never modified.
type Element interface {
	// Mul sets e = a · b.
	Mul(a, b Element) Element
	// Exp sets e = a^s.
	Exp(a Element, s Scalar) Element
	// Set sets e = a.
	Set(a Element) Element
	// IsEqual reports whether e and b are the same element.
	IsEqual(b Element) bool

	MarshalBinary() ([]byte, error)
	UnmarshalBinary(data []byte) error
}

// Scalar is an element of the scalar field of a Group.
type Scalar interface {
	// Add sets s = a + b.
	Add(a, b Scalar) Scalar
	// Mul sets s = a · b.
	Mul(a, b Scalar) Scalar
	// Inv sets s = 1/a. The inverse of zero is zero.
	Inv(a Scalar) Scalar
	// Set sets s = a.
	Set(a Scalar) Scalar
	// SetOne sets s = 1.
	SetOne() Scalar
	IsZero() bool
	IsEqual(b Scalar) bool

	MarshalBinary() ([]byte, error)
	UnmarshalBinary(data []byte) error
}

// DecodeElement decodes data as an element of g.
func DecodeElement(g Group, data []byte) (Element, error) {
	e := g.NewElement()
	if err := e.UnmarshalBinary(data); err != nil {
		return nil, err
	}
	return e, nil
}

// DecodeScalar decodes data as a scalar of g.
func DecodeScalar(g Group, data []byte) (Scalar, error) {
	s := g.NewScalar()
	if err := s.UnmarshalBinary(data); err != nil {
		return nil, err
	}
	return s, nil
}

// Encode returns the canonical encoding of e. Implementations never fail to
// encode a valid element, so the error is dropped.
func Encode(e Element) []byte {
	b, _ := e.MarshalBinary()
	return b
}

func readFull(rnd io.Reader, buf []byte) error {
	_, err := io.ReadFull(rnd, buf)
	return err
}
