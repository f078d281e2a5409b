package scalar

import (
	"math/big"
	"testing"

	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"
	"github.com/stretchr/testify/require"
)

func TestAddSubtract(t *testing.T) {
	a := New()
	a.n.SetInt64(5)
	b := New()
	b.n.SetInt64(3)

	var sum, back Scalar
	sum.Add(a, b)
	back.Subtract(&sum, b)
	require.Equal(t, 1, back.Equal(a))
}

func TestSetBytesWithClamping(t *testing.T) {
	var in [32]byte
	for i := range in {
		in[i] = 0xff
	}
	s, err := New().SetBytesWithClamping(in[:])
	require.NoError(t, err)

	b := s.Big()
	require.True(t, b.Cmp(groupOrder) < 0)
	require.True(t, b.Sign() > 0)
}

func TestSetCanonicalBytesRejectsOutOfRange(t *testing.T) {
	big32 := make([]byte, 32)
	lBytes := groupOrder.Bytes() // big-endian
	for i, j := 0, len(lBytes)-1; j >= 0; i, j = i+1, j-1 {
		big32[i] = lBytes[j]
	}
	_, err := New().SetCanonicalBytes(big32)
	require.Error(t, err)
}

func TestBytesRoundtrip(t *testing.T) {
	s := New()
	s.n.SetInt64(123456789)
	b := s.Bytes()
	s2, err := New().SetCanonicalBytes(b)
	require.NoError(t, err)
	require.Equal(t, 1, s.Equal(s2))
}

func TestMultiplyAdd(t *testing.T) {
	x := New()
	x.n.SetInt64(7)
	y := New()
	y.n.SetInt64(6)
	z := New()
	z.n.SetInt64(5)

	var got Scalar
	got.MultiplyAdd(x, y, z)

	want := new(big.Int).Mul(big.NewInt(7), big.NewInt(6))
	want.Add(want, big.NewInt(5))
	want.Mod(want, groupOrder)
	require.Equal(t, 0, got.Big().Cmp(want))
}

func TestScalarProperties(t *testing.T) {
	parameters := gopter.DefaultTestParameters()
	parameters.MinSuccessfulTests = 100
	props := gopter.NewProperties(parameters)

	reducedGen := gen.SliceOfN(64, gen.UInt8()).Map(func(bs []uint8) *Scalar {
		b := make([]byte, 64)
		for i, v := range bs {
			b[i] = byte(v)
		}
		return New().ReduceBytes(b)
	})

	props.Property("bytes round-trip through SetCanonicalBytes", prop.ForAll(
		func(s *Scalar) bool {
			back, err := New().SetCanonicalBytes(s.Bytes())
			return err == nil && back.Equal(s) == 1
		},
		reducedGen,
	))

	props.Property("a + b - b == a", prop.ForAll(
		func(a, b *Scalar) bool {
			var sum, back Scalar
			sum.Add(a, b)
			back.Subtract(&sum, b)
			return back.Equal(a) == 1
		},
		reducedGen, reducedGen,
	))

	props.Property("clamped bytes always fall below the group order", prop.ForAll(
		func(bs []uint8) bool {
			if len(bs) != 32 {
				return true
			}
			b := make([]byte, 32)
			for i, v := range bs {
				b[i] = byte(v)
			}
			s, err := New().SetBytesWithClamping(b)
			if err != nil {
				return false
			}
			return s.Big().Cmp(groupOrder) < 0 && s.Big().Sign() >= 0
		},
		gen.SliceOfN(32, gen.UInt8()),
	))

	props.TestingRun(t)
}

func TestNormalizeScalar(t *testing.T) {
	max := big.NewInt(10)
	_, err := NormalizeScalar(big.NewInt(0), max, true)
	require.Error(t, err)
	_, err = NormalizeScalar(big.NewInt(0), max, false)
	require.NoError(t, err)
	_, err = NormalizeScalar(big.NewInt(10), max, false)
	require.Error(t, err)
	_, err = NormalizeScalar(big.NewInt(-1), max, false)
	require.Error(t, err)
}
