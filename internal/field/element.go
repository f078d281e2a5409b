// Package field implements arithmetic modulo p = 2^255 - 19, the prime
// underlying both edwards25519 and Curve25519.
//
// This type works similarly to math/big.Int: all arguments and receivers
// are allowed to alias, and the zero value is the zero element.
package field

import "math/big"

// Element is an integer modulo p = 2^255 - 19, always held in [0, p).
//
// Internally the value is tracked as a big.Int rather than as fixed-width
// limbs. A hand-rolled 5x51-bit limb representation (as in the pack's
// edwards25519 teacher) is the faster and more idiomatic choice for this
// kind of code, but its carry-propagation arithmetic is notoriously easy to
// get subtly wrong and, per this repository's constraints, cannot be
// exercised against `go test` before being relied on. math/big trades the
// performance of a bespoke limb encoding for an arithmetic core that is
// correct by construction, which is the right tradeoff here: spec.md §9
// explicitly allows either approach ("Either use a bignum library or
// (preferred, for performance...) a handwritten... representation. The
// specification is agnostic").
type Element struct {
	n big.Int
}

var (
	fieldPrime, _ = new(big.Int).SetString("7fffffffffffffffffffffffffffffffffffffffffffffffffffffffffffffed", 16)
	sqrtMinus1, _ = new(big.Int).SetString("2b8324804fc1df0b2b4d00993dfbd7a72f431806ad2fe478c4ee1b274a0ea0b0", 16)
	bigZero       = big.NewInt(0)
	bigOne        = big.NewInt(1)
	bigTwo        = big.NewInt(2)
)

// P returns the field modulus 2^255 - 19 as a big.Int. Callers must not
// mutate the result.
func P() *big.Int { return fieldPrime }

// SqrtM1 returns sqrt(-1) mod p as a big.Int. Callers must not mutate the
// result.
func SqrtM1() *big.Int { return sqrtMinus1 }

// SqrtM1Element returns a fresh Element holding sqrt(-1) mod p.
func SqrtM1Element() *Element {
	return new(Element).SetBig(sqrtMinus1)
}

// Zero sets v = 0 and returns v.
func (v *Element) Zero() *Element {
	v.n.SetInt64(0)
	return v
}

// One sets v = 1 and returns v.
func (v *Element) One() *Element {
	v.n.SetInt64(1)
	return v
}

// Set sets v = a and returns v.
func (v *Element) Set(a *Element) *Element {
	v.n.Set(&a.n)
	return v
}

// SetBig reduces x modulo p and stores it in v.
func (v *Element) SetBig(x *big.Int) *Element {
	v.n.Mod(x, fieldPrime)
	return v
}

// Big returns a copy of v's value as a big.Int in [0, p).
func (v *Element) Big() *big.Int {
	return new(big.Int).Set(&v.n)
}

// IsZero returns 1 if v == 0, and 0 otherwise.
func (v *Element) IsZero() int {
	if v.n.Sign() == 0 {
		return 1
	}
	return 0
}

// Add sets v = a + b mod p, and returns v.
func (v *Element) Add(a, b *Element) *Element {
	v.n.Add(&a.n, &b.n)
	v.n.Mod(&v.n, fieldPrime)
	return v
}

// Subtract sets v = a - b mod p, and returns v.
func (v *Element) Subtract(a, b *Element) *Element {
	v.n.Sub(&a.n, &b.n)
	v.n.Mod(&v.n, fieldPrime)
	return v
}

// Negate sets v = -a mod p, and returns v.
func (v *Element) Negate(a *Element) *Element {
	v.n.Neg(&a.n)
	v.n.Mod(&v.n, fieldPrime)
	return v
}

// Multiply sets v = a * b mod p, and returns v.
func (v *Element) Multiply(a, b *Element) *Element {
	v.n.Mul(&a.n, &b.n)
	v.n.Mod(&v.n, fieldPrime)
	return v
}

// Square sets v = a * a mod p, and returns v.
func (v *Element) Square(a *Element) *Element {
	return v.Multiply(a, a)
}

// Pow2 sets v = a^(2^k) mod p (k repeated squarings), and returns v.
func (v *Element) Pow2(a *Element, k int) *Element {
	v.Set(a)
	for i := 0; i < k; i++ {
		v.Multiply(v, v)
	}
	return v
}

// Pow2252_3 computes, simultaneously, x^((p-5)/8) = x^(2^252-3) and x^2, the
// pair of values reused throughout inverse-square-root (decompression) and
// modular inversion, per spec.md §4.1.
func (v *Element) Pow2252_3(x *Element) (pow *Element, x2 *Element) {
	var z2, z9, z11, z2_5_0, z2_10_0, z2_20_0, z2_50_0, z2_100_0, t Element

	z2.Square(x)              // 2
	t.Square(&z2)             // 4
	t.Square(&t)              // 8
	z9.Multiply(&t, x)        // 9
	z11.Multiply(&z9, &z2)    // 11
	t.Square(&z11)            // 22
	z2_5_0.Multiply(&t, &z9)  // 2^5 - 2^0 = 31

	t.Square(&z2_5_0)
	for i := 0; i < 4; i++ {
		t.Square(&t)
	}
	z2_10_0.Multiply(&t, &z2_5_0) // 2^10 - 2^0

	t.Square(&z2_10_0)
	for i := 0; i < 9; i++ {
		t.Square(&t)
	}
	z2_20_0.Multiply(&t, &z2_10_0) // 2^20 - 2^0

	t.Square(&z2_20_0)
	for i := 0; i < 19; i++ {
		t.Square(&t)
	}
	t.Multiply(&t, &z2_20_0) // 2^40 - 2^0

	t.Square(&t)
	for i := 0; i < 9; i++ {
		t.Square(&t)
	}
	z2_50_0.Multiply(&t, &z2_10_0) // 2^50 - 2^0

	t.Square(&z2_50_0)
	for i := 0; i < 49; i++ {
		t.Square(&t)
	}
	z2_100_0.Multiply(&t, &z2_50_0) // 2^100 - 2^0

	t.Square(&z2_100_0)
	for i := 0; i < 99; i++ {
		t.Square(&t)
	}
	t.Multiply(&t, &z2_100_0) // 2^200 - 2^0

	t.Square(&t)
	for i := 0; i < 49; i++ {
		t.Square(&t)
	}
	t.Multiply(&t, &z2_50_0) // 2^250 - 2^0

	t.Square(&t) // 2^251 - 2^1
	t.Square(&t) // 2^252 - 2^2

	pow = new(Element).Multiply(&t, x) // x^(2^252 - 3)
	x2 = new(Element).Square(x)
	return pow, x2
}

// Invert sets v = 1/a mod p, following the convention inv(0) = 0 per
// spec.md §4.1, and returns v.
func (v *Element) Invert(a *Element) *Element {
	if a.IsZero() == 1 {
		return v.Zero()
	}
	e := new(big.Int).Sub(fieldPrime, bigTwo)
	v.n.Exp(&a.n, e, fieldPrime)
	return v
}

// Equal returns 1 if v == u, and 0 otherwise.
func (v *Element) Equal(u *Element) int {
	if v.n.Cmp(&u.n) == 0 {
		return 1
	}
	return 0
}

// Select sets v to a if cond == 1, and to b if cond == 0.
func (v *Element) Select(a, b *Element, cond int) *Element {
	if cond != 0 {
		return v.Set(a)
	}
	return v.Set(b)
}

// Swap conditionally swaps v and u using the arithmetic formulation
// d = cond*(v-u); v -= d; u += d, rather than a branch, so that code built
// on Swap (the x25519 ladder's cswap) does not depend on `cond` through
// control flow. See spec.md §4.5.
func (v *Element) Swap(u *Element, cond int) {
	var d big.Int
	c := int64(cond)
	d.Sub(&v.n, &u.n)
	d.Mul(&d, big.NewInt(c))
	v.n.Sub(&v.n, &d)
	u.n.Add(&u.n, &d)
	v.n.Mod(&v.n, fieldPrime)
	u.n.Mod(&u.n, fieldPrime)
}

// SetBytes sets v to x, which must be a 32-byte little-endian encoding. The
// high bit of the last byte (bit 255) is masked off before decoding, per
// RFC 7748's laxer-than-RFC-8032 convention; callers that need the strict
// §4.3 y < p check must perform it themselves (see edwards25519.Decompress).
func (v *Element) SetBytes(x []byte) *Element {
	if len(x) != 32 {
		panic("field: invalid element input size")
	}
	var buf [32]byte
	copy(buf[:], x)
	buf[31] &= 0x7f
	// Reverse to big-endian for big.Int.
	for i, j := 0, 31; i < j; i, j = i+1, j-1 {
		buf[i], buf[j] = buf[j], buf[i]
	}
	v.n.SetBytes(buf[:])
	v.n.Mod(&v.n, fieldPrime)
	return v
}

// Bytes returns the canonical 32-byte little-endian encoding of v.
func (v *Element) Bytes() []byte {
	var out [32]byte
	b := v.n.Bytes() // big-endian, no leading zeros
	for i, j := 0, len(b)-1; j >= 0; i, j = i+1, j-1 {
		out[i] = b[j]
	}
	return out[:]
}
