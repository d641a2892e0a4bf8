// This Source Code Form is subject to the terms of the MIT License.
// If a copy of the MIT License was not distributed with this
// file, you can obtain one at https://opensource.org/licenses/MIT.
//
// Copyright (c) DUSK NETWORK. All rights reserved.

package group

import (
	"io"
	"math/big"

	bls12381 "github.com/consensys/gnark-crypto/ecc/bls12-381"
	"github.com/consensys/gnark-crypto/ecc/bls12-381/fr"
	"github.com/pkg/errors"
)

var (
	// G1 is the first source group of BLS12-381. Elements encode to 48 bytes.
	G1 Group = g1Group{}
	// G2 is the second source group of BLS12-381. Elements encode to 96 bytes.
	G2 Group = g2Group{}
)

// frGroup carries the scalar field shared by G1 and G2.
type frGroup struct{}

func (frGroup) NewScalar() Scalar { return new(FrScalar) }

func (frGroup) RandomScalar(rnd io.Reader) (Scalar, error) {
	// 48 bytes reduced mod r keeps the bias below 2^-128.
	var buf [48]byte
	s := new(FrScalar)
	for {
		if err := readFull(rnd, buf[:]); err != nil {
			return nil, errors.Wrap(err, "bls12-381: sampling scalar")
		}
		s.e.SetBytes(buf[:])
		if !s.e.IsZero() {
			return s, nil
		}
	}
}

func (frGroup) HashToScalar(msg, dst []byte) (Scalar, error) {
	els, err := fr.Hash(msg, dst, 1)
	if err != nil {
		return nil, errors.Wrap(err, "bls12-381: hash to field")
	}
	return &FrScalar{e: els[0]}, nil
}

func (frGroup) ScalarLength() int { return fr.Bytes }

type g1Group struct{ frGroup }

func (g1Group) Name() string { return "bls12-381/g1" }
func (g1Group) NewElement() Element { return new(G1Point) }
func (g1Group) ElementLength() int { return bls12381.SizeOfG1AffineCompressed }
func (g1Group) Generator() Element {
	_, _, g1, _ := bls12381.Generators()
	return &G1Point{G1Affine: g1}
}

func (g1Group) HashToElement(msg, dst []byte) (Element, error) {
	p, err := bls12381.HashToG1(msg, dst)
	if err != nil {
		return nil, errors.Wrap(err, "bls12-381: hash to g1")
	}
	return &G1Point{G1Affine: p}, nil
}

type g2Group struct{ frGroup }

func (g2Group) Name() string { return "bls12-381/g2" }
func (g2Group) NewElement() Element { return new(G2Point) }
func (g2Group) ElementLength() int { return bls12381.SizeOfG2AffineCompressed }
func (g2Group) Generator() Element {
	_, _, _, g2 := bls12381.Generators()
	return &G2Point{G2Affine: g2}
}

func (g2Group) HashToElement(msg, dst []byte) (Element, error) {
	p, err := bls12381.HashToG2(msg, dst)
	if err != nil {
		return nil, errors.Wrap(err, "bls12-381: hash to g2")
	}
	return &G2Point{G2Affine: p}, nil
}

// G1Point is an element of G1. It is exported so the pairing can reach the
// affine coordinates.
type G1Point struct {
	bls12381.G1Affine
}

func toG1(e Element) *G1Point {
	p, ok := e.(*G1Point)
	if !ok {
		panic("group: element is not a bls12-381 g1 element")
	}
	return p
}

func (e *G1Point) Mul(a, b Element) Element {
	var ja, jb bls12381.G1Jac
	ja.FromAffine(&toG1(a).G1Affine)
	jb.FromAffine(&toG1(b).G1Affine)
	ja.AddAssign(&jb)
	e.G1Affine.FromJacobian(&ja)
	return e
}

func (e *G1Point) Exp(a Element, s Scalar) Element {
	e.G1Affine.ScalarMultiplication(&toG1(a).G1Affine, toFr(s).BigInt())
	return e
}

func (e *G1Point) Set(a Element) Element {
	e.G1Affine = toG1(a).G1Affine
	return e
}

func (e *G1Point) IsEqual(b Element) bool {
	return e.G1Affine.Equal(&toG1(b).G1Affine)
}

func (e *G1Point) MarshalBinary() ([]byte, error) {
	b := e.G1Affine.Bytes()
	return b[:], nil
}

// UnmarshalBinary accepts only compressed encodings of points in the prime
// order subgroup.
func (e *G1Point) UnmarshalBinary(data []byte) error {
	if len(data) != bls12381.SizeOfG1AffineCompressed {
		return errors.Wrapf(ErrMalformedEncoding, "bls12-381: g1 point of %d bytes", len(data))
	}

	var p bls12381.G1Affine
	if _, err := p.SetBytes(data); err != nil {
		return errors.Wrap(ErrMalformedEncoding, err.Error())
	}
	e.G1Affine = p
	return nil
}

// G2Point is an element of G2.
type G2Point struct {
	bls12381.G2Affine
}

func toG2(e Element) *G2Point {
	p, ok := e.(*G2Point)
	if !ok {
		panic("group: element is not a bls12-381 g2 element")
	}
	return p
}

func (e *G2Point) Mul(a, b Element) Element {
	var ja, jb bls12381.G2Jac
	ja.FromAffine(&toG2(a).G2Affine)
	jb.FromAffine(&toG2(b).G2Affine)
	ja.AddAssign(&jb)
	e.G2Affine.FromJacobian(&ja)
	return e
}

func (e *G2Point) Exp(a Element, s Scalar) Element {
	e.G2Affine.ScalarMultiplication(&toG2(a).G2Affine, toFr(s).BigInt())
	return e
}

func (e *G2Point) Set(a Element) Element {
	e.G2Affine = toG2(a).G2Affine
	return e
}

func (e *G2Point) IsEqual(b Element) bool {
	return e.G2Affine.Equal(&toG2(b).G2Affine)
}

func (e *G2Point) MarshalBinary() ([]byte, error) {
	b := e.G2Affine.Bytes()
	return b[:], nil
}

func (e *G2Point) UnmarshalBinary(data []byte) error {
	if len(data) != bls12381.SizeOfG2AffineCompressed {
		return errors.Wrapf(ErrMalformedEncoding, "bls12-381: g2 point of %d bytes", len(data))
	}

	var p bls12381.G2Affine
	if _, err := p.SetBytes(data); err != nil {
		return errors.Wrap(ErrMalformedEncoding, err.Error())
	}
	e.G2Affine = p
	return nil
}

// FrScalar is an element of the BLS12-381 scalar field. Its encoding is 32
// bytes little-endian, matching the Ristretto255 scalar layout.
type FrScalar struct {
	e fr.Element
}

func toFr(s Scalar) *FrScalar {
	f, ok := s.(*FrScalar)
	if !ok {
		panic("group: scalar is not a bls12-381 scalar")
	}
	return f
}

// BigInt returns the scalar as a new big.Int.
func (s *FrScalar) BigInt() *big.Int {
	return s.e.BigInt(new(big.Int))
}

func (s *FrScalar) Add(a, b Scalar) Scalar {
	s.e.Add(&toFr(a).e, &toFr(b).e)
	return s
}

func (s *FrScalar) Mul(a, b Scalar) Scalar {
	s.e.Mul(&toFr(a).e, &toFr(b).e)
	return s
}

func (s *FrScalar) Inv(a Scalar) Scalar {
	s.e.Inverse(&toFr(a).e)
	return s
}

func (s *FrScalar) Set(a Scalar) Scalar {
	s.e.Set(&toFr(a).e)
	return s
}

func (s *FrScalar) SetOne() Scalar {
	s.e.SetOne()
	return s
}

func (s *FrScalar) IsZero() bool { return s.e.IsZero() }

func (s *FrScalar) IsEqual(b Scalar) bool {
	return s.e.Equal(&toFr(b).e)
}

func (s *FrScalar) MarshalBinary() ([]byte, error) {
	be := s.e.Bytes()
	return reversed(be[:]), nil
}

func (s *FrScalar) UnmarshalBinary(data []byte) error {
	if len(data) != fr.Bytes {
		return errors.Wrapf(ErrMalformedEncoding, "bls12-381: scalar of %d bytes", len(data))
	}

	be := reversed(data)
	if new(big.Int).SetBytes(be).Cmp(fr.Modulus()) >= 0 {
		return errors.Wrap(ErrMalformedEncoding, "bls12-381: scalar not reduced")
	}

	s.e.SetBytes(be)
	return nil
}
