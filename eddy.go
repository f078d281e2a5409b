// Package eddy is a pure Go implementation of Ed25519 signatures (RFC
// 8032) and X25519 key agreement (RFC 7748) over edwards25519/Curve25519.
//
// The cryptographic core (internal/field, internal/scalar, edwards25519,
// x25519, eddsa) has no dependency outside the standard library. This
// top-level package is a thin, dependency-free composition of those
// packages into the operation set described by the library's external
// interface: generate a keypair, derive a public key, sign, verify, and
// derive an X25519 shared secret.
package eddy

import (
	"errors"
	"io"
	"math/big"

	"github.com/libitx/eddy/eddsa"
	"github.com/libitx/eddy/edwards25519"
	"github.com/libitx/eddy/internal/field"
	"github.com/libitx/eddy/internal/scalar"
	"github.com/libitx/eddy/x25519"
)

// Context binds a hash function (default SHA-512) to the signing
// operations, per spec.md §9's constructor-argument design. The zero
// value is not usable; use NewContext.
type Context struct {
	inner *eddsa.Context
}

// NewContext returns a Context using h as its hash function. Passing nil
// selects SHA-512, the RFC 8032 default.
func NewContext(h eddsa.HashFunc) *Context {
	return &Context{inner: eddsa.NewContext(h)}
}

// defaultContext is used by the package-level convenience functions below.
var defaultContext = NewContext(nil)

// KeyPair is a matched private/public key, as returned by GenerateKey.
type KeyPair struct {
	Private *eddsa.PrivateKey
	Public  *eddsa.PublicKey
}

// GenerateKey creates a new random key pair using entropy from rnd (nil
// selects crypto/rand.Reader).
func (c *Context) GenerateKey(rnd io.Reader) (*KeyPair, error) {
	sk, err := c.inner.GenerateKey(rnd)
	if err != nil {
		return nil, wrapErr(ErrInvalidKey, "generate key", err)
	}
	return &KeyPair{Private: sk, Public: sk.Public()}, nil
}

// GenerateKey is the package-level convenience form of Context.GenerateKey.
func GenerateKey(rnd io.Reader) (*KeyPair, error) { return defaultContext.GenerateKey(rnd) }

// PrivateKeyFromSeed reconstructs a private key (and its public key) from
// a 32-byte seed.
func (c *Context) PrivateKeyFromSeed(seed []byte) (*eddsa.PrivateKey, error) {
	sk, err := c.inner.NewPrivateKeyFromSeed(seed)
	if err != nil {
		return nil, wrapErr(ErrInvalidKey, "private key from seed", err)
	}
	return sk, nil
}

// PrivateKeyFromSeed is the package-level convenience form.
func PrivateKeyFromSeed(seed []byte) (*eddsa.PrivateKey, error) {
	return defaultContext.PrivateKeyFromSeed(seed)
}

// Pubkey returns sk's public key.
func (c *Context) Pubkey(sk *eddsa.PrivateKey) *eddsa.PublicKey { return sk.Public() }

// Pubkey is the package-level convenience form.
func Pubkey(sk *eddsa.PrivateKey) *eddsa.PublicKey { return sk.Public() }

// ParsePublicKey decodes a 32-byte compressed public key.
func ParsePublicKey(b []byte) (*eddsa.PublicKey, error) {
	pk, err := eddsa.ParsePublicKey(b)
	if err != nil {
		return nil, wrapErr(ErrInvalidPoint, "parse public key", err)
	}
	return pk, nil
}

// Sign signs message with sk.
func (c *Context) Sign(sk *eddsa.PrivateKey, message []byte) (*eddsa.Signature, error) {
	sig, err := c.inner.Sign(sk, message)
	if err != nil {
		return nil, wrapErr(ErrInvalidKey, "sign", err)
	}
	return sig, nil
}

// Sign is the package-level convenience form of Context.Sign.
func Sign(sk *eddsa.PrivateKey, message []byte) (*eddsa.Signature, error) {
	return defaultContext.Sign(sk, message)
}

// Verify reports whether sig is a valid signature over message by pub. It
// returns a non-nil error only when sig's R or s does not decode, never for a
// well-formed-but-invalid signature — see spec.md §9's resolved open
// question on this asymmetry.
func (c *Context) Verify(pub *eddsa.PublicKey, message []byte, sig *eddsa.Signature) (bool, error) {
	ok, err := c.inner.Verify(pub, message, sig)
	if err != nil {
		return false, wrapErr(ErrInvalidSignature, "verify", err)
	}
	return ok, nil
}

// Verify is the package-level convenience form of Context.Verify.
func Verify(pub *eddsa.PublicKey, message []byte, sig *eddsa.Signature) (bool, error) {
	return defaultContext.Verify(pub, message, sig)
}

// SharedSecret derives an X25519 shared secret between sk and peer, using
// the Ed25519-to-X25519 birational conversion (spec.md §4.7).
func (c *Context) SharedSecret(sk *eddsa.PrivateKey, peer *eddsa.PublicKey) ([]byte, error) {
	secret, err := c.inner.SharedSecret(sk, peer)
	if err != nil {
		return nil, wrapErr(ErrInvalidKey, "shared secret", err)
	}
	return secret, nil
}

// SharedSecret is the package-level convenience form.
func SharedSecret(sk *eddsa.PrivateKey, peer *eddsa.PublicKey) ([]byte, error) {
	return defaultContext.SharedSecret(sk, peer)
}

// X25519 runs the raw RFC 7748 Diffie-Hellman function on scalar and u,
// for callers that want the primitive directly rather than through an
// Ed25519 key pair.
func X25519(scalarBytes, u []byte) ([]byte, error) {
	out, err := x25519.X25519(scalarBytes, u)
	if err != nil {
		return nil, wrapErr(ErrInvalidKey, "x25519", err)
	}
	return out, nil
}

// Params is the set of domain parameters of the edwards25519/Curve25519
// pair, exposed for diagnostics and interoperability testing (spec.md §6).
type Params struct {
	P      []byte // the field prime, 2^255 - 19
	A      []byte // curve coefficient a = -1 mod p
	D      []byte // curve coefficient d = -121665/121666 mod p
	Gx, Gy []byte // base point coordinates
	L      []byte // group order
	H      int    // cofactor
	Sqrtm1 []byte // sqrt(-1) mod p
}

// GetParams returns the library's domain parameters.
func GetParams() Params {
	base := edwards25519.Base()
	aff, err := base.ToAffine()
	if err != nil {
		panic("eddy: invalid hardcoded base point")
	}
	le := func(n *big.Int) []byte {
		out := make([]byte, 32)
		b := n.Bytes()
		for i := range b {
			out[i] = b[len(b)-1-i]
		}
		return out
	}
	return Params{
		P:      le(field.P()),
		A:      edwards25519.A.Bytes(),
		D:      edwards25519.D.Bytes(),
		Gx:     aff.X.Bytes(),
		Gy:     aff.Y.Bytes(),
		L:      le(scalar.L()),
		H:      8,
		Sqrtm1: le(field.SqrtM1()),
	}
}

// IsOnCurve reports whether the compressed point p decodes to a point
// actually on the curve, without otherwise using the result. It's a
// standalone validity check for callers that only need a boolean,
// supplementing the error-returning Decompress used internally.
func IsOnCurve(p []byte) bool {
	_, err := edwards25519.Decompress(p)
	return err == nil
}

func wrapErr(kind ErrorKind, desc string, cause error) error {
	switch {
	case errors.Is(cause, eddsa.ErrMalformedSeed),
		errors.Is(cause, eddsa.ErrMalformedPublicKey),
		errors.Is(cause, eddsa.ErrMalformedSignature):
		kind = ErrDecode
	case errors.Is(cause, eddsa.ErrInvalidSignature):
		kind = ErrInvalidSignature
	case errors.Is(cause, edwards25519.ErrInvalidPoint):
		kind = ErrInvalidPoint
	case errors.Is(cause, x25519.ErrInvalidKey):
		kind = ErrInvalidKey
	}
	return newError(kind, desc, cause)
}
