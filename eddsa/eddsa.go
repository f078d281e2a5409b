// Package eddsa implements the Ed25519 signature scheme (RFC 8032) on top
// of edwards25519's curve arithmetic, parameterized by a pluggable hash
// function (spec.md §9's "Context object" design).
package eddsa

import (
	"crypto/rand"
	"crypto/sha512"
	"errors"
	"hash"
	"io"

	"github.com/libitx/eddy/edwards25519"
	"github.com/libitx/eddy/internal/field"
	"github.com/libitx/eddy/internal/scalar"
	"github.com/libitx/eddy/x25519"
)

// Sentinel errors. Callers that need the package-independent ErrorKind
// taxonomy of spec.md §7 should match against these with errors.Is; the
// root eddy package does exactly that when composing its public API.
var (
	ErrMalformedSeed      = errors.New("eddsa: seed must be exactly 32 bytes")
	ErrMalformedPublicKey = errors.New("eddsa: public key is not a valid compressed point")
	ErrMalformedSignature = errors.New("eddsa: signature must be exactly 64 bytes")
	ErrInvalidSignature   = errors.New("eddsa: malformed signature (R or s does not decode)")
)

// HashFunc constructs a new hash.Hash, the same shape as the standard
// library's hash constructors (sha512.New, sha512.New512_256, ...).
type HashFunc func() hash.Hash

// Context binds a hash function to the sign/verify operations. The zero
// value is not usable; construct one with NewContext.
type Context struct {
	hash HashFunc
}

// NewContext returns a Context bound to h. A nil h defaults to SHA-512,
// the RFC 8032 default and this package's normal case.
func NewContext(h HashFunc) *Context {
	if h == nil {
		h = sha512.New
	}
	return &Context{hash: h}
}

// Default is the package-wide Context using SHA-512, for callers that
// don't need a custom hash binding.
var Default = NewContext(nil)

// PublicKey is a 32-byte compressed edwards25519 point.
type PublicKey struct {
	point edwards25519.ExtendedPoint
	bytes [32]byte
}

// Bytes returns the 32-byte compressed encoding of the public key.
func (pk *PublicKey) Bytes() []byte {
	out := make([]byte, 32)
	copy(out, pk.bytes[:])
	return out
}

// Point returns the public key's underlying curve point.
func (pk *PublicKey) Point() *edwards25519.ExtendedPoint {
	return &pk.point
}

// ParsePublicKey decodes a 32-byte compressed public key. It returns
// ErrMalformedPublicKey for a wrong-length input and the underlying
// edwards25519.ErrInvalidPoint when the bytes are the right length but do
// not decode to a point on the curve, so callers can tell a length error
// from an invalid-point error.
func ParsePublicKey(b []byte) (*PublicKey, error) {
	if len(b) != 32 {
		return nil, ErrMalformedPublicKey
	}
	aff, err := edwards25519.Decompress(b)
	if err != nil {
		return nil, err
	}
	pk := &PublicKey{}
	copy(pk.bytes[:], b)
	pk.point.FromAffine(aff)
	return pk, nil
}

// PrivateKey is a 32-byte seed together with its expanded signing scalar,
// nonce prefix, and cached public key.
type PrivateKey struct {
	seed    [32]byte
	scalar  *scalar.Scalar
	clamped [32]byte
	prefix  []byte
	pub     *PublicKey
}

// Seed returns the 32-byte seed this key was derived from.
func (sk *PrivateKey) Seed() []byte {
	out := make([]byte, 32)
	copy(out, sk.seed[:])
	return out
}

// Public returns the public key paired with sk.
func (sk *PrivateKey) Public() *PublicKey {
	return sk.pub
}

// Scalar returns the clamped, expanded private scalar `a` (reduced mod l)
// used for signing (spec.md §4.7 step 2). X25519 shared-secret derivation
// uses the unreduced clamped bytes instead.
func (sk *PrivateKey) Scalar() *scalar.Scalar {
	return sk.scalar
}

// expand implements RFC 8032 §5.1.5 steps 1-3: hash the seed, clamp the
// first half into the signing scalar, and keep the second half as the
// nonce-derivation prefix.
//
// The RFC assumes a 64-byte hash output, matching SHA-512. To honor
// spec.md §9's pluggable-hash design note for hash functions with a
// different digest size, digests shorter than 64 bytes are expanded with a
// simple one-byte domain-separated counter until 64 bytes are available;
// SHA-512 itself never takes this branch.
//
// The clamped 32 bytes are returned both as the mod-l signing scalar
// (what Ed25519 point multiplication actually needs, since B has order l)
// and verbatim, unreduced, for SharedSecret's X25519 conversion, which
// expects the raw clamped integer rather than its reduction mod l.
func (c *Context) expand(seed []byte) (sc *scalar.Scalar, clamped [32]byte, prefix []byte, err error) {
	digest := c.digest64(seed)

	var rawClamped [32]byte
	copy(rawClamped[:], digest[:32])
	rawClamped[0] &= 248
	rawClamped[31] &= 127
	rawClamped[31] |= 64

	sc, err = new(scalar.Scalar).SetBytesWithClamping(digest[:32])
	if err != nil {
		return nil, clamped, nil, err
	}
	prefix = append([]byte(nil), digest[32:64]...)
	return sc, rawClamped, prefix, nil
}

func (c *Context) digest64(parts ...[]byte) []byte {
	h := c.hash()
	if h.Size() >= 64 {
		for _, p := range parts {
			h.Write(p)
		}
		return h.Sum(nil)[:64]
	}

	var buf []byte
	for counter := byte(0); len(buf) < 64; counter++ {
		h := c.hash()
		h.Write([]byte{counter})
		for _, p := range parts {
			h.Write(p)
		}
		buf = append(buf, h.Sum(nil)...)
	}
	return buf[:64]
}

// NewPrivateKeyFromSeed derives the full private key (signing scalar,
// prefix, public key) from a 32-byte seed.
func (c *Context) NewPrivateKeyFromSeed(seed []byte) (*PrivateKey, error) {
	if len(seed) != 32 {
		return nil, ErrMalformedSeed
	}
	sc, clamped, prefix, err := c.expand(seed)
	if err != nil {
		return nil, err
	}

	var point edwards25519.ExtendedPoint
	point.ScalarMul(edwards25519.Base(), sc.Bytes())
	aff, err := point.ToAffine()
	if err != nil {
		return nil, err
	}

	pub := &PublicKey{point: point}
	copy(pub.bytes[:], aff.Compress())

	sk := &PrivateKey{scalar: sc, clamped: clamped, prefix: prefix, pub: pub}
	copy(sk.seed[:], seed)
	return sk, nil
}

// GenerateKey generates a new private key using entropy from rnd. A nil
// rnd defaults to crypto/rand.Reader.
func (c *Context) GenerateKey(rnd io.Reader) (*PrivateKey, error) {
	if rnd == nil {
		rnd = rand.Reader
	}
	var seed [32]byte
	if _, err := io.ReadFull(rnd, seed[:]); err != nil {
		return nil, err
	}
	return c.NewPrivateKeyFromSeed(seed[:])
}

// Signature is a 64-byte Ed25519 signature, R || s.
type Signature struct {
	R [32]byte
	S [32]byte
}

// Bytes returns the 64-byte encoding of the signature.
func (s *Signature) Bytes() []byte {
	out := make([]byte, 64)
	copy(out[:32], s.R[:])
	copy(out[32:], s.S[:])
	return out
}

// ParseSignature decodes a 64-byte signature.
func ParseSignature(b []byte) (*Signature, error) {
	if len(b) != 64 {
		return nil, ErrMalformedSignature
	}
	sig := &Signature{}
	copy(sig.R[:], b[:32])
	copy(sig.S[:], b[32:])
	return sig, nil
}

// Sign signs message with sk, following RFC 8032 §5.1.6:
//
//	r = H(prefix || M) mod l
//	R = [r]B
//	k = H(R || A || M) mod l
//	s = (r + k*a) mod l
func (c *Context) Sign(sk *PrivateKey, message []byte) (*Signature, error) {
	rDigest := c.digest64(sk.prefix, message)
	r := new(scalar.Scalar).ReduceBytes(rDigest)

	var rPoint edwards25519.ExtendedPoint
	rPoint.ScalarMul(edwards25519.Base(), r.Bytes())
	rAff, err := rPoint.ToAffine()
	if err != nil {
		return nil, err
	}
	rEnc := rAff.Compress()

	kDigest := c.digest64(rEnc, sk.pub.bytes[:], message)
	k := new(scalar.Scalar).ReduceBytes(kDigest)

	s := new(scalar.Scalar).MultiplyAdd(k, sk.scalar, r)

	sig := &Signature{}
	copy(sig.R[:], rEnc)
	copy(sig.S[:], s.Bytes())
	return sig, nil
}

// Verify checks sig against message and pub, following RFC 8032 §5.1.7's
// cofactored variant (spec.md §4.7 step 3):
//
//	k = H(R || A || M) mod l
//	accept iff [8]*(R + [k]*A - [s]*B) == neutral
//
// The explicit cofactor multiplication absorbs any small-order component of
// R or A, so no separate small-subgroup filter is needed (spec.md §9's
// "Low-order subgroup" note) — a signature built from a torsion-shifted R
// still verifies as long as the cofactorless equation would have held on
// the prime-order component.
//
// It returns (false, nil) for a well-formed but invalid signature, and a
// non-nil error only when sig or s is malformed — spec.md §9's resolved
// open question on the decode-error/false asymmetry.
func (c *Context) Verify(pub *PublicKey, message []byte, sig *Signature) (bool, error) {
	sBig, err := new(scalar.Scalar).SetCanonicalBytes(sig.S[:])
	if err != nil {
		return false, ErrInvalidSignature
	}

	rAff, err := edwards25519.Decompress(sig.R[:])
	if err != nil {
		return false, ErrInvalidSignature
	}
	var rPoint edwards25519.ExtendedPoint
	rPoint.FromAffine(rAff)

	kDigest := c.digest64(sig.R[:], pub.bytes[:], message)
	k := new(scalar.Scalar).ReduceBytes(kDigest)

	var sB, kA, rPlusKA, diff edwards25519.ExtendedPoint
	sB.ScalarMul(edwards25519.Base(), sBig.Bytes())
	kA.ScalarMul(&pub.point, k.Bytes())
	rPlusKA.Add(&rPoint, &kA)
	diff.Subtract(&rPlusKA, &sB)

	var lhs edwards25519.ExtendedPoint
	lhs.Double(&diff)
	lhs.Double(&lhs)
	lhs.Double(&lhs)

	return lhs.Equal(edwards25519.NewIdentity()), nil
}

// montgomeryU converts an edwards25519 affine y-coordinate to the
// birationally equivalent Curve25519 u-coordinate: u = (1+y)/(1-y) mod p,
// per spec.md §4.5.
func montgomeryU(y *field.Element) []byte {
	var num, den, u field.Element
	num.Add(y, new(field.Element).One())
	den.Subtract(new(field.Element).One(), y)
	den.Invert(&den)
	u.Multiply(&num, &den)
	return u.Bytes()
}

// SharedSecret derives an X25519 shared secret between sk and peer's
// Edwards public key, by converting both to their Montgomery form and
// running the X25519 function with sk's clamped scalar. This is the
// Ed25519-keys-for-DH construction described in spec.md §4.7's
// get_shared_secret.
func (c *Context) SharedSecret(sk *PrivateKey, peer *PublicKey) ([]byte, error) {
	aff, err := peer.point.ToAffine()
	if err != nil {
		return nil, err
	}
	u := montgomeryU(&aff.Y)
	return x25519.X25519(sk.clamped[:], u)
}
