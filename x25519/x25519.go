// Package x25519 implements the X25519 Diffie-Hellman function (RFC 7748)
// over Curve25519, the Montgomery curve birationally equivalent to
// edwards25519.
package x25519

import (
	"errors"
	"math/big"

	"github.com/libitx/eddy/internal/field"
)

// ErrInvalidKey is returned by X25519 when the computed shared secret is
// the all-zero string, which happens only when one of the inputs is a
// small-order (low-order) point. Per spec.md §4.5 this is treated as a
// hard error rather than silently returned.
var ErrInvalidKey = errors.New("x25519: low-order point produced an all-zero shared secret")

// basePointU is the Curve25519 base point's u-coordinate, u = 9.
var basePointU = [32]byte{9}

// ScalarBaseMult computes X25519(scalar, basePointU), returning the
// resulting 32-byte u-coordinate.
func ScalarBaseMult(scalar []byte) ([]byte, error) {
	return X25519(scalar, basePointU[:])
}

// X25519 implements the function of the same name from RFC 7748 §5: it
// clamps scalar, decodes u, runs the constant-time Montgomery ladder, and
// returns the resulting u-coordinate.
func X25519(scalar, u []byte) ([]byte, error) {
	if len(scalar) != 32 {
		return nil, errors.New("x25519: invalid scalar length")
	}
	if len(u) != 32 {
		return nil, errors.New("x25519: invalid u-coordinate length")
	}

	k := clamp(scalar)

	var uElem field.Element
	uElem.SetBytes(u)

	out := ladder(k, &uElem)

	outBytes := out.Bytes()
	allZero := true
	for _, b := range outBytes {
		if b != 0 {
			allZero = false
			break
		}
	}
	if allZero {
		return nil, ErrInvalidKey
	}
	return outBytes, nil
}

// clamp applies RFC 7748 §5's buffer pruning to a copy of scalar.
func clamp(scalar []byte) []byte {
	var k [32]byte
	copy(k[:], scalar)
	k[0] &= 248
	k[31] &= 127
	k[31] |= 64
	return k[:]
}

// ladder runs the Montgomery ladder described in RFC 7748 §5, using the
// field package's arithmetic Swap (not a branch) to implement cswap, and
// returns x2/z2 as the resulting u-coordinate.
func ladder(k []byte, u *field.Element) *field.Element {
	x1 := new(field.Element).Set(u)
	x2 := new(field.Element).One()
	z2 := new(field.Element).Zero()
	x3 := new(field.Element).Set(u)
	z3 := new(field.Element).One()

	swap := 0
	a24 := bigElementA24()

	for t := 254; t >= 0; t-- {
		kT := int(bitAt(k, t))
		swap ^= kT
		cswap(swap, x2, x3)
		cswap(swap, z2, z3)
		swap = kT

		var a, aa, b, bb, e, c, d, da, cb field.Element
		a.Add(x2, z2)
		aa.Square(&a)
		b.Subtract(x2, z2)
		bb.Square(&b)
		e.Subtract(&aa, &bb)
		c.Add(x3, z3)
		d.Subtract(x3, z3)
		da.Multiply(&d, &a)
		cb.Multiply(&c, &b)

		var sum, diff, diffSq field.Element
		sum.Add(&da, &cb)
		x3.Square(&sum)

		diff.Subtract(&da, &cb)
		diffSq.Square(&diff)
		z3.Multiply(x1, &diffSq)

		x2.Multiply(&aa, &bb)

		var eA24 field.Element
		eA24.Multiply(&e, a24)
		eA24.Add(&eA24, &aa)
		z2.Multiply(&e, &eA24)
	}
	cswap(swap, x2, x3)
	cswap(swap, z2, z3)

	var zInv, result field.Element
	zInv.Invert(z2)
	result.Multiply(x2, &zInv)
	return &result
}

// cswap swaps a and b in place when swap == 1, using field.Element.Swap's
// arithmetic (not branching) conditional-swap.
func cswap(swap int, a, b *field.Element) {
	a.Swap(b, swap)
}

// bitAt returns bit i (0 = least significant) of the little-endian byte
// string k.
func bitAt(k []byte, i int) byte {
	return (k[i/8] >> uint(i%8)) & 1
}

var a24Elem *field.Element

// bigElementA24 returns the Montgomery curve constant a24 = (486662-2)/4 =
// 121665, used in the ladder step.
func bigElementA24() *field.Element {
	if a24Elem == nil {
		a24Elem = new(field.Element).SetBig(big.NewInt(121665))
	}
	return a24Elem
}
