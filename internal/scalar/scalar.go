// Package scalar implements arithmetic modulo l, the prime order of the
// edwards25519 group:
//
//	l = 2^252 + 27742317777372353535851937790883648493
//
// This type works similarly to math/big.Int, and all arguments and
// receivers are allowed to alias. The zero value is a valid zero element.
package scalar

import (
	"crypto/subtle"
	"errors"
	"math/big"
)

// Scalar is an integer modulo l.
type Scalar struct {
	n big.Int
}

var (
	groupOrder, _ = new(big.Int).SetString("7237005577332262213973186563042994240857116359379907606001950938285454250989", 10)
)

// L returns the group order l as a big.Int. Callers must not mutate the
// result.
func L() *big.Int { return groupOrder }

// New returns a new zero Scalar.
func New() *Scalar {
	return &Scalar{}
}

// Set sets s = x, and returns s.
func (s *Scalar) Set(x *Scalar) *Scalar {
	s.n.Set(&x.n)
	return s
}

// Zero sets s = 0, and returns s.
func (s *Scalar) Zero() *Scalar {
	s.n.SetInt64(0)
	return s
}

// IsZero returns true if s == 0.
func (s *Scalar) IsZero() bool {
	return s.n.Sign() == 0
}

// Add sets s = x + y mod l, and returns s.
func (s *Scalar) Add(x, y *Scalar) *Scalar {
	s.n.Add(&x.n, &y.n)
	s.n.Mod(&s.n, groupOrder)
	return s
}

// Subtract sets s = x - y mod l, and returns s.
func (s *Scalar) Subtract(x, y *Scalar) *Scalar {
	s.n.Sub(&x.n, &y.n)
	s.n.Mod(&s.n, groupOrder)
	return s
}

// Negate sets s = -x mod l, and returns s.
func (s *Scalar) Negate(x *Scalar) *Scalar {
	s.n.Neg(&x.n)
	s.n.Mod(&s.n, groupOrder)
	return s
}

// Multiply sets s = x * y mod l, and returns s.
func (s *Scalar) Multiply(x, y *Scalar) *Scalar {
	s.n.Mul(&x.n, &y.n)
	s.n.Mod(&s.n, groupOrder)
	return s
}

// MultiplyAdd sets s = x*y + z mod l, and returns s.
func (s *Scalar) MultiplyAdd(x, y, z *Scalar) *Scalar {
	return s.Multiply(x, y).Add(s, z)
}

// SetUniformBytes sets s = x mod l, where x is a 64-byte little-endian
// integer, and returns s. This is the wide reduction used to turn a
// SHA-512 digest into a scalar (spec.md §4.7's `r` and `k`).
func (s *Scalar) SetUniformBytes(x []byte) (*Scalar, error) {
	if len(x) != 64 {
		return nil, errors.New("scalar: invalid SetUniformBytes input length")
	}
	return s.ReduceBytes(x), nil
}

// ReduceBytes sets s = x mod l, treating x as a little-endian integer of
// any length, and returns s. Unlike SetUniformBytes this places no
// constraint on len(x); eddsa.Context's Sign and Verify use it to reduce
// the 64-byte digests behind r and k, whichever hash is bound.
func (s *Scalar) ReduceBytes(x []byte) *Scalar {
	be := reverse(x)
	s.n.SetBytes(be)
	s.n.Mod(&s.n, groupOrder)
	return s
}

// SetCanonicalBytes sets s = x, where x is a 32-byte little-endian encoding
// of s, and returns s. Unlike SetUniformBytes this does not reduce: an
// input that does not already represent a value in [0, l) is rejected with
// an error, via NormalizeScalar (spec.md §4.2's normalizeScalar).
func (s *Scalar) SetCanonicalBytes(x []byte) (*Scalar, error) {
	if len(x) != 32 {
		return nil, errors.New("scalar: invalid scalar length")
	}
	be := reverse(x)
	var n big.Int
	n.SetBytes(be)
	if _, err := NormalizeScalar(&n, groupOrder, false); err != nil {
		return nil, errors.New("scalar: invalid scalar encoding")
	}
	s.n.Set(&n)
	return s, nil
}

// SetBytesWithClamping applies the RFC 8032 §5.1.5 buffer pruning
// ("clamping") to the 32-byte input x and reduces the result mod l. The
// input is not modified. See spec.md §4.7 step 2.
func (s *Scalar) SetBytesWithClamping(x []byte) (*Scalar, error) {
	if len(x) != 32 {
		return nil, errors.New("scalar: invalid SetBytesWithClamping input length")
	}
	var buf [32]byte
	copy(buf[:], x)
	buf[0] &= 248
	buf[31] &= 127
	buf[31] |= 64
	be := reverse(buf[:])
	s.n.SetBytes(be)
	s.n.Mod(&s.n, groupOrder)
	return s, nil
}

// Bytes returns the canonical 32-byte little-endian encoding of s.
func (s *Scalar) Bytes() []byte {
	var out [32]byte
	b := s.n.Bytes()
	for i, j := 0, len(b)-1; j >= 0; i, j = i+1, j-1 {
		out[i] = b[j]
	}
	return out[:]
}

// Big returns a copy of s's value, in [0, l), as a big.Int.
func (s *Scalar) Big() *big.Int {
	return new(big.Int).Set(&s.n)
}

// Equal returns 1 if s and t are equal, and 0 otherwise.
func (s *Scalar) Equal(t *Scalar) int {
	ss, ts := s.Bytes(), t.Bytes()
	return subtle.ConstantTimeCompare(ss[:], ts[:])
}

// reverse returns a new slice holding x's bytes in reverse order, so a
// little-endian buffer can be handed to big.Int.SetBytes (which expects
// big-endian).
func reverse(x []byte) []byte {
	out := make([]byte, len(x))
	for i, b := range x {
		out[len(x)-1-i] = b
	}
	return out
}

// NormalizeScalar implements spec.md §4.2's normalize_scalar(n, max, strict):
// strict requires 0 < n < max, non-strict requires 0 <= n < max. On failure
// it returns ErrOutOfRange.
func NormalizeScalar(n *big.Int, max *big.Int, strict bool) (*big.Int, error) {
	if n.Sign() < 0 || n.Cmp(max) >= 0 {
		return nil, ErrOutOfRange
	}
	if strict && n.Sign() == 0 {
		return nil, ErrOutOfRange
	}
	return n, nil
}

// ErrOutOfRange is returned by NormalizeScalar when n fails its range check.
var ErrOutOfRange = errors.New("scalar: value out of range")
