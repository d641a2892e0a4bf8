// This Source Code Form is subject to the terms of the MIT License.
// If a copy of the MIT License was not distributed with this
// file, you can obtain one at https://opensource.org/licenses/MIT.
//
// Copyright (c) DUSK NETWORK. All rights reserved.

package group

import (
	"crypto/rand"
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var groups = []Group{Ristretto255, G1, G2}

func randomScalar(t *testing.T, g Group) Scalar {
	s, err := g.RandomScalar(rand.Reader)
	require.NoError(t, err)
	return s
}

func TestEncodingLengths(t *testing.T) {
	for _, g := range groups {
		t.Run(g.Name(), func(t *testing.T) {
			s := randomScalar(t, g)
			e := g.NewElement().Exp(g.Generator(), s)

			assert.Len(t, Encode(e), g.ElementLength())
			sb, err := s.MarshalBinary()
			require.NoError(t, err)
			assert.Len(t, sb, g.ScalarLength())
		})
	}
}

func TestElementRoundTrip(t *testing.T) {
	for _, g := range groups {
		t.Run(g.Name(), func(t *testing.T) {
			e := g.NewElement().Exp(g.Generator(), randomScalar(t, g))

			d, err := DecodeElement(g, Encode(e))
			require.NoError(t, err)
			assert.True(t, d.IsEqual(e))

			id, err := DecodeElement(g, Encode(g.NewElement()))
			require.NoError(t, err)
			assert.True(t, id.IsEqual(g.NewElement()))
		})
	}
}

func TestScalarRoundTrip(t *testing.T) {
	for _, g := range groups {
		t.Run(g.Name(), func(t *testing.T) {
			s := randomScalar(t, g)
			b, _ := s.MarshalBinary()

			d, err := DecodeScalar(g, b)
			require.NoError(t, err)
			assert.True(t, d.IsEqual(s))
		})
	}
}

func TestMalformedEncoding(t *testing.T) {
	for _, g := range groups {
		t.Run(g.Name(), func(t *testing.T) {
			_, err := DecodeElement(g, make([]byte, g.ElementLength()-1))
			assert.True(t, errors.Is(err, ErrMalformedEncoding))

			// all-ones is never a canonical point or scalar
			junk := make([]byte, g.ElementLength())
			for i := range junk {
				junk[i] = 0xff
			}
			_, err = DecodeElement(g, junk)
			assert.True(t, errors.Is(err, ErrMalformedEncoding))

			junk = junk[:g.ScalarLength()]
			_, err = DecodeScalar(g, junk)
			assert.True(t, errors.Is(err, ErrMalformedEncoding))

			_, err = DecodeScalar(g, nil)
			assert.True(t, errors.Is(err, ErrMalformedEncoding))
		})
	}
}

func TestExpMulConsistency(t *testing.T) {
	for _, g := range groups {
		t.Run(g.Name(), func(t *testing.T) {
			a := randomScalar(t, g)
			b := randomScalar(t, g)
			gen := g.Generator()

			// g^a · g^b == g^(a+b)
			lhs := g.NewElement().Mul(g.NewElement().Exp(gen, a), g.NewElement().Exp(gen, b))
			rhs := g.NewElement().Exp(gen, g.NewScalar().Add(a, b))
			assert.True(t, lhs.IsEqual(rhs))

			// (g^a)^b == g^(a·b)
			lhs = g.NewElement().Exp(g.NewElement().Exp(gen, a), b)
			rhs = g.NewElement().Exp(gen, g.NewScalar().Mul(a, b))
			assert.True(t, lhs.IsEqual(rhs))

			// (g^a)^(1/a) == g
			inv := g.NewScalar().Inv(a)
			lhs = g.NewElement().Exp(g.NewElement().Exp(gen, a), inv)
			assert.True(t, lhs.IsEqual(gen))
		})
	}
}

func TestHashToElement(t *testing.T) {
	for _, g := range groups {
		t.Run(g.Name(), func(t *testing.T) {
			msg := []byte("card secret")

			a, err := g.HashToElement(msg, []byte("tag-a"))
			require.NoError(t, err)
			b, err := g.HashToElement(msg, []byte("tag-a"))
			require.NoError(t, err)
			c, err := g.HashToElement(msg, []byte("tag-b"))
			require.NoError(t, err)

			assert.True(t, a.IsEqual(b))
			assert.False(t, a.IsEqual(c))
			assert.False(t, a.IsEqual(g.NewElement()))
		})
	}
}

func TestHashToScalar(t *testing.T) {
	for _, g := range groups {
		t.Run(g.Name(), func(t *testing.T) {
			a, err := g.HashToScalar([]byte("m"), []byte("tag"))
			require.NoError(t, err)
			b, err := g.HashToScalar([]byte("m"), []byte("tag"))
			require.NoError(t, err)
			c, err := g.HashToScalar([]byte("n"), []byte("tag"))
			require.NoError(t, err)

			assert.True(t, a.IsEqual(b))
			assert.False(t, a.IsEqual(c))
		})
	}
}

func TestPow(t *testing.T) {
	for _, g := range groups {
		t.Run(g.Name(), func(t *testing.T) {
			x := randomScalar(t, g)

			expected := g.NewScalar().SetOne()
			for n := uint32(1); n <= 20; n++ {
				expected.Mul(expected, x)
				got, err := Pow(g, x, n)
				require.NoError(t, err)
				assert.True(t, got.IsEqual(expected), "n=%d", n)
			}

			_, err := Pow(g, x, 0)
			assert.Equal(t, ErrZeroExponent, err)
		})
	}
}

func TestPowLargeExponent(t *testing.T) {
	g := Ristretto255
	x := randomScalar(t, g)

	// x^(2^31) · x == x^(2^31+1)
	big, err := Pow(g, x, 1<<31)
	require.NoError(t, err)
	next, err := Pow(g, x, 1<<31+1)
	require.NoError(t, err)
	assert.True(t, g.NewScalar().Mul(big, x).IsEqual(next))
}

func TestMismatchedGroupsPanic(t *testing.T) {
	assert.Panics(t, func() {
		Ristretto255.NewElement().Mul(G1.Generator(), G1.Generator())
	})
}

func BenchmarkPow(b *testing.B) {
	for _, g := range groups {
		x, _ := g.RandomScalar(rand.Reader)
		b.Run(g.Name(), func(b *testing.B) {
			for i := 0; i < b.N; i++ {
				_, _ = Pow(g, x, 10)
			}
		})
	}
}
