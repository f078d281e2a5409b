package edwards25519

import "github.com/libitx/eddy/internal/field"

// ExtendedPoint is a point on the curve in extended twisted-Edwards
// coordinates (X, Y, Z, T), where x = X/Z, y = Y/Z and x*y = T/Z. This is
// the representation used for point addition and scalar multiplication;
// see spec.md §4.4. Addition uses the add-2008-hwcd-3 formula, which is
// unified (it also handles q == r), and doubling uses the HWCD §3.3
// dedicated-doubling formula.
type ExtendedPoint struct {
	X, Y, Z, T field.Element
}

// NewIdentity returns the extended-coordinates identity point (0, 1, 1, 0).
func NewIdentity() *ExtendedPoint {
	p := &ExtendedPoint{}
	p.X.Zero()
	p.Y.One()
	p.Z.One()
	p.T.Zero()
	return p
}

// FromAffine lifts an affine point into extended coordinates: Z = 1,
// T = x*y.
func (p *ExtendedPoint) FromAffine(a *AffinePoint) *ExtendedPoint {
	p.X.Set(&a.X)
	p.Y.Set(&a.Y)
	p.Z.One()
	p.T.Multiply(&a.X, &a.Y)
	return p
}

// ToAffine projects p back to affine coordinates, dividing through by Z.
// If Z is such that its inverse times Z does not come back to 1, the point
// was malformed; spec.md §4.4 calls for a defensive check here rather than
// silently returning garbage.
func (p *ExtendedPoint) ToAffine() (*AffinePoint, error) {
	var zInv, check field.Element
	zInv.Invert(&p.Z)
	check.Multiply(&zInv, &p.Z)
	if check.Equal(new(field.Element).One()) != 1 {
		return nil, ErrInvalidPoint
	}
	a := &AffinePoint{}
	a.X.Multiply(&p.X, &zInv)
	a.Y.Multiply(&p.Y, &zInv)
	return a, nil
}

// Equal reports whether p and q represent the same point, comparing
// X/Z == X'/Z' and Y/Z == Y'/Z' via cross-multiplication (avoiding an
// inversion).
func (p *ExtendedPoint) Equal(q *ExtendedPoint) bool {
	var lx, rx, ly, ry field.Element
	lx.Multiply(&p.X, &q.Z)
	rx.Multiply(&q.X, &p.Z)
	ly.Multiply(&p.Y, &q.Z)
	ry.Multiply(&q.Y, &p.Z)
	return lx.Equal(&rx) == 1 && ly.Equal(&ry) == 1
}

// Negate sets p = -q and returns p: (-X, Y, Z, -T).
func (p *ExtendedPoint) Negate(q *ExtendedPoint) *ExtendedPoint {
	p.X.Negate(&q.X)
	p.Y.Set(&q.Y)
	p.Z.Set(&q.Z)
	p.T.Negate(&q.T)
	return p
}

// Add sets p = q + r using the add-2008-hwcd-3 formula specialized to
// a = -1, and returns p.
//
//	A = (Y1-X1)*(Y2-X2)
//	B = (Y1+X1)*(Y2+X2)
//	C = T1*2d*T2
//	D = Z1*2*Z2
//	E = B-A
//	F = D-C
//	G = D+C
//	H = B+A
//	X3 = E*F
//	Y3 = G*H
//	T3 = E*H
//	Z3 = F*G
func (p *ExtendedPoint) Add(q, r *ExtendedPoint) *ExtendedPoint {
	var a, b, c, d, e, f, g, h field.Element
	var t1, t2 field.Element

	t1.Subtract(&q.Y, &q.X)
	t2.Subtract(&r.Y, &r.X)
	a.Multiply(&t1, &t2)

	t1.Add(&q.Y, &q.X)
	t2.Add(&r.Y, &r.X)
	b.Multiply(&t1, &t2)

	c.Multiply(&q.T, &r.T)
	c.Multiply(&c, doubledD())

	d.Multiply(&q.Z, &r.Z)
	d.Add(&d, &d)

	e.Subtract(&b, &a)
	f.Subtract(&d, &c)
	g.Add(&d, &c)
	h.Add(&b, &a)

	p.X.Multiply(&e, &f)
	p.Y.Multiply(&g, &h)
	p.T.Multiply(&e, &h)
	p.Z.Multiply(&f, &g)
	return p
}

// Subtract sets p = q - r, and returns p.
func (p *ExtendedPoint) Subtract(q, r *ExtendedPoint) *ExtendedPoint {
	var negR ExtendedPoint
	negR.Negate(r)
	return p.Add(q, &negR)
}

// Double sets p = 2*q using the HWCD §3.3 dedicated-doubling formula
// specialized to a = -1, and returns p.
//
//	A = X1^2
//	B = Y1^2
//	C = 2*Z1^2
//	H = A+B
//	E = H-(X1+Y1)^2
//	G = A-B
//	F = C+G
//	X3 = E*F
//	Y3 = G*H
//	T3 = E*H
//	Z3 = F*G
func (p *ExtendedPoint) Double(q *ExtendedPoint) *ExtendedPoint {
	var a, b, c, g, h, e, f field.Element
	var xy, xySquared field.Element

	a.Square(&q.X)
	b.Square(&q.Y)
	c.Square(&q.Z)
	c.Add(&c, &c)

	h.Add(&a, &b)
	xy.Add(&q.X, &q.Y)
	xySquared.Square(&xy)
	e.Subtract(&h, &xySquared)
	g.Subtract(&a, &b)
	f.Add(&c, &g)

	p.X.Multiply(&e, &f)
	p.Y.Multiply(&g, &h)
	p.T.Multiply(&e, &h)
	p.Z.Multiply(&f, &g)
	return p
}

var twoD *field.Element

func doubledD() *field.Element {
	if twoD == nil {
		twoD = new(field.Element).Add(D, D)
	}
	return twoD
}

// ScalarMul sets p = [k]q using right-to-left double-and-add over the bits
// of k's little-endian byte encoding, per spec.md §4.4. This is variable
// time in k, matching spec.md §1's explicit non-goal of a constant-time
// Edwards multiply.
func (p *ExtendedPoint) ScalarMul(q *ExtendedPoint, k []byte) *ExtendedPoint {
	result := NewIdentity()
	addend := &ExtendedPoint{}
	addend.X.Set(&q.X)
	addend.Y.Set(&q.Y)
	addend.Z.Set(&q.Z)
	addend.T.Set(&q.T)

	for _, kb := range k {
		b := kb
		for i := 0; i < 8; i++ {
			if b&1 == 1 {
				result.Add(result, addend)
			}
			addend.Double(addend)
			b >>= 1
		}
	}
	p.Set(result)
	return p
}

// Set sets p = q and returns p.
func (p *ExtendedPoint) Set(q *ExtendedPoint) *ExtendedPoint {
	p.X.Set(&q.X)
	p.Y.Set(&q.Y)
	p.Z.Set(&q.Z)
	p.T.Set(&q.T)
	return p
}
