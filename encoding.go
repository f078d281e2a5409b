package eddy

import (
	"encoding/base64"
	"encoding/hex"
	"strings"
)

// Encoding names one of the byte-string encodings the CLI accepts on
// input and produces on output, per spec.md §6/§9's polymorphic encoding
// design note. These are plain text encodings, not cryptographic choices,
// so they're handled with the standard library's encoding/hex and
// encoding/base64 directly.
type Encoding string

const (
	EncodingRaw    Encoding = "raw"    // unencoded bytes
	EncodingBase16 Encoding = "base16" // uppercase hex, RFC 4648 §8
	EncodingHex    Encoding = "hex"    // lowercase hex
	EncodingBase64 Encoding = "base64" // standard base64, RFC 4648 §4
)

// Encode renders b using enc.
func Encode(enc Encoding, b []byte) (string, error) {
	switch enc {
	case EncodingRaw:
		return string(b), nil
	case EncodingBase16:
		return strings.ToUpper(hex.EncodeToString(b)), nil
	case EncodingHex:
		return hex.EncodeToString(b), nil
	case EncodingBase64:
		return base64.StdEncoding.EncodeToString(b), nil
	default:
		return "", newError(ErrDecode, "unknown encoding "+string(enc), nil)
	}
}

// Decode parses s as enc and returns the raw bytes.
func Decode(enc Encoding, s string) ([]byte, error) {
	switch enc {
	case EncodingRaw:
		return []byte(s), nil
	case EncodingBase16, EncodingHex:
		b, err := hex.DecodeString(s)
		if err != nil {
			return nil, newError(ErrDecode, "invalid hex encoding", err)
		}
		return b, nil
	case EncodingBase64:
		b, err := base64.StdEncoding.DecodeString(s)
		if err != nil {
			return nil, newError(ErrDecode, "invalid base64 encoding", err)
		}
		return b, nil
	default:
		return nil, newError(ErrDecode, "unknown encoding "+string(enc), nil)
	}
}
