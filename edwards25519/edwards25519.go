// Package edwards25519 implements the twisted Edwards curve
//
//	-x^2 + y^2 = 1 + d*x^2*y^2  (mod p = 2^255 - 19)
//
// used by Ed25519, in both affine and extended projective coordinates. See
// DESIGN.md for how this is grounded on the pack's extended-coordinate
// point-arithmetic teacher.
package edwards25519

import (
	"errors"
	"math/big"

	"github.com/libitx/eddy/internal/field"
)

// ErrInvalidPoint is returned when a 32-byte string does not decode to a
// point on the curve.
var ErrInvalidPoint = errors.New("edwards25519: invalid point encoding")

// A is the curve coefficient a = -1 mod p.
var A = new(field.Element).Negate(new(field.Element).One())

// D is the curve coefficient d = -121665/121666 mod p.
var D = func() *field.Element {
	num := new(field.Element).Negate(bigElement(121665))
	den := new(field.Element).Invert(bigElement(121666))
	return new(field.Element).Multiply(num, den)
}()

func bigElement(v int64) *field.Element {
	return new(field.Element).SetBig(big.NewInt(v))
}

// baseCompressed is the standard RFC 8032 base point B, compressed: y = 4/5
// mod p with the positive-x sign bit.
var baseCompressed = []byte{
	0x58, 0x66, 0x66, 0x66, 0x66, 0x66, 0x66, 0x66,
	0x66, 0x66, 0x66, 0x66, 0x66, 0x66, 0x66, 0x66,
	0x66, 0x66, 0x66, 0x66, 0x66, 0x66, 0x66, 0x66,
	0x66, 0x66, 0x66, 0x66, 0x66, 0x66, 0x66, 0x66,
}

// Base returns the standard generator point B of the prime-order subgroup,
// in extended coordinates.
func Base() *ExtendedPoint {
	aff, err := Decompress(baseCompressed)
	if err != nil {
		panic("edwards25519: invalid hardcoded base point")
	}
	return new(ExtendedPoint).FromAffine(aff)
}

// AffinePoint is a point (x, y) on the curve, represented in affine
// coordinates.
type AffinePoint struct {
	X, Y field.Element
}

// NewIdentityAffine returns the affine identity element (0, 1).
func NewIdentityAffine() *AffinePoint {
	p := &AffinePoint{}
	p.X.Zero()
	p.Y.One()
	return p
}

// IsOnCurve reports whether (x, y) satisfies -x^2 + y^2 = 1 + d*x^2*y^2.
func IsOnCurve(x, y *field.Element) bool {
	var x2, y2, lhs, dxy, rhs field.Element
	x2.Square(x)
	y2.Square(y)
	lhs.Subtract(&y2, &x2)

	dxy.Multiply(D, &x2)
	dxy.Multiply(&dxy, &y2)
	rhs.Add(new(field.Element).One(), &dxy)

	return lhs.Equal(&rhs) == 1
}

// Equal reports whether p and q represent the same point.
func (p *AffinePoint) Equal(q *AffinePoint) bool {
	return p.X.Equal(&q.X) == 1 && p.Y.Equal(&q.Y) == 1
}

// Negate sets p = -q and returns p. The negation of (x, y) is (-x, y).
func (p *AffinePoint) Negate(q *AffinePoint) *AffinePoint {
	p.X.Negate(&q.X)
	p.Y.Set(&q.Y)
	return p
}

// Compress returns the 32-byte little-endian encoding of p: the y
// coordinate with the sign of x folded into the top bit, per RFC 8032
// §5.1.2.
func (p *AffinePoint) Compress() []byte {
	out := p.Y.Bytes()
	if isNegative(&p.X) {
		out[31] |= 0x80
	}
	return out
}

// isNegative reports the sign bit used throughout RFC 8032: the parity of
// the canonical little-endian encoding's least significant bit.
func isNegative(e *field.Element) bool {
	b := e.Bytes()
	return b[0]&1 == 1
}

// Decompress decodes a 32-byte compressed point, recovering x from y and
// the sign bit, following spec.md §4.3's u/v/v^3/v^7-based square root
// recovery with the sqrt(-1) correction branch. It returns ErrInvalidPoint
// if the encoding does not correspond to a point on the curve.
func Decompress(in []byte) (*AffinePoint, error) {
	if len(in) != 32 {
		return nil, ErrInvalidPoint
	}
	sign := in[31]&0x80 != 0

	var buf [32]byte
	copy(buf[:], in)
	buf[31] &= 0x7f

	var y field.Element
	y.SetBytes(buf[:])
	// Reject non-canonical y >= p: SetBytes already reduces mod p, so
	// recompute the canonical bytes and compare to the masked input.
	if !bytesEqual(y.Bytes(), buf[:]) {
		return nil, ErrInvalidPoint
	}

	// u = y^2 - 1, v = d*y^2 + 1
	var y2, u, v field.Element
	y2.Square(&y)
	u.Subtract(&y2, new(field.Element).One())
	v.Multiply(D, &y2)
	v.Add(&v, new(field.Element).One())

	// x = (u/v)^((p+3)/8), computed via u*v^3*(u*v^7)^((p-5)/8).
	var v3, v7, uv3, uv7 field.Element
	v3.Multiply(&v, &v)
	v3.Multiply(&v3, &v) // v^3
	v7.Multiply(&v3, &v3)
	v7.Multiply(&v7, &v) // v^7
	uv3.Multiply(&u, &v3)
	uv7.Multiply(&u, &v7)

	pow, _ := new(field.Element).Pow2252_3(&uv7)
	var x field.Element
	x.Multiply(&uv3, pow)

	// Check x^2 * v == u; if not, try x * sqrt(-1).
	var check, x2 field.Element
	x2.Square(&x)
	check.Multiply(&x2, &v)
	if check.Equal(&u) != 1 {
		var negCheck field.Element
		negCheck.Negate(&u)
		if check.Equal(&negCheck) != 1 {
			return nil, ErrInvalidPoint
		}
		x.Multiply(&x, field.SqrtM1Element())
	}

	if x.IsZero() == 1 && sign {
		// x == 0 only has one valid sign, the non-negative one.
		return nil, ErrInvalidPoint
	}
	if isNegative(&x) != sign {
		x.Negate(&x)
	}

	p := &AffinePoint{X: x, Y: y}
	if !IsOnCurve(&p.X, &p.Y) {
		return nil, ErrInvalidPoint
	}
	return p, nil
}

func bytesEqual(a, b []byte) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}
