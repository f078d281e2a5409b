package eddy

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestGenerateSignVerify(t *testing.T) {
	kp, err := GenerateKey(nil)
	require.NoError(t, err)

	sig, err := Sign(kp.Private, []byte("the eddy library"))
	require.NoError(t, err)

	ok, err := Verify(kp.Public, []byte("the eddy library"), sig)
	require.NoError(t, err)
	require.True(t, ok)
}

func TestVerifyMalformedPubkeyReturnsErrInvalidPoint(t *testing.T) {
	garbage := make([]byte, 32)
	for i := range garbage {
		garbage[i] = 0xff
	}
	_, err := ParsePublicKey(garbage)
	require.Error(t, err)

	var e Error
	require.True(t, errors.As(err, &e))
	require.Equal(t, ErrInvalidPoint, e.Err)
}

func TestSharedSecretRoundtrip(t *testing.T) {
	alice, err := GenerateKey(nil)
	require.NoError(t, err)
	bob, err := GenerateKey(nil)
	require.NoError(t, err)

	s1, err := SharedSecret(alice.Private, bob.Public)
	require.NoError(t, err)
	s2, err := SharedSecret(bob.Private, alice.Public)
	require.NoError(t, err)
	require.Equal(t, s1, s2)
}

func TestEncodeDecodeRoundtrip(t *testing.T) {
	data := []byte{0xde, 0xad, 0xbe, 0xef}

	for _, enc := range []Encoding{EncodingRaw, EncodingBase16, EncodingHex, EncodingBase64} {
		s, err := Encode(enc, data)
		require.NoError(t, err)
		back, err := Decode(enc, s)
		require.NoError(t, err)
		require.Equal(t, data, back)
	}
}

func TestGetParams(t *testing.T) {
	p := GetParams()
	require.Equal(t, 8, p.H)
	require.NotEmpty(t, p.P)
	require.NotEmpty(t, p.L)
}

func TestIsOnCurve(t *testing.T) {
	kp, err := GenerateKey(nil)
	require.NoError(t, err)
	require.True(t, IsOnCurve(kp.Public.Bytes()))

	garbage := make([]byte, 32)
	for i := range garbage {
		garbage[i] = 0xff
	}
	require.False(t, IsOnCurve(garbage))
}
