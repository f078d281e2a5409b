package field

import (
	"math/big"
	"testing"

	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"
	"github.com/stretchr/testify/require"
)

func TestAddSubtractRoundtrip(t *testing.T) {
	a := new(Element).SetBig(big.NewInt(12345))
	b := new(Element).SetBig(big.NewInt(6789))

	var sum, back Element
	sum.Add(a, b)
	back.Subtract(&sum, b)
	require.Equal(t, 1, back.Equal(a))
}

func TestMultiplyInvert(t *testing.T) {
	a := new(Element).SetBig(big.NewInt(424242))
	var inv, prod Element
	inv.Invert(a)
	prod.Multiply(a, &inv)
	require.Equal(t, 1, prod.Equal(new(Element).One()))
}

func TestInvertZero(t *testing.T) {
	var zero, inv Element
	zero.Zero()
	inv.Invert(&zero)
	require.Equal(t, 1, inv.IsZero())
}

func TestNegate(t *testing.T) {
	a := new(Element).SetBig(big.NewInt(7))
	var neg, sum Element
	neg.Negate(a)
	sum.Add(a, &neg)
	require.Equal(t, 1, sum.IsZero())
}

func TestBytesRoundtrip(t *testing.T) {
	a := new(Element).SetBig(big.NewInt(0x0102030405060708))
	b := new(Element).SetBytes(a.Bytes())
	require.Equal(t, 1, a.Equal(b))
}

func TestSwap(t *testing.T) {
	a := new(Element).SetBig(big.NewInt(1))
	b := new(Element).SetBig(big.NewInt(2))

	a.Swap(b, 0)
	require.Equal(t, int64(1), a.Big().Int64())
	require.Equal(t, int64(2), b.Big().Int64())

	a.Swap(b, 1)
	require.Equal(t, int64(2), a.Big().Int64())
	require.Equal(t, int64(1), b.Big().Int64())
}

func TestPow2252_3MatchesExponentiation(t *testing.T) {
	x := new(Element).SetBig(big.NewInt(999))
	pow, x2 := new(Element).Pow2252_3(x)

	e := new(big.Int).Sub(P(), big.NewInt(5))
	e.Div(e, big.NewInt(8))
	want := new(Element).SetBig(new(big.Int).Exp(x.Big(), e, P()))
	require.Equal(t, 1, pow.Equal(want))

	var wantX2 Element
	wantX2.Multiply(x, x)
	require.Equal(t, 1, x2.Equal(&wantX2))
}

func TestFieldProperties(t *testing.T) {
	parameters := gopter.DefaultTestParameters()
	parameters.MinSuccessfulTests = 100
	props := gopter.NewProperties(parameters)

	elementGen := gen.UInt64().Map(func(v uint64) *Element {
		return new(Element).SetBig(new(big.Int).SetUint64(v))
	})

	props.Property("a + b - b == a", prop.ForAll(
		func(a, b *Element) bool {
			var sum, back Element
			sum.Add(a, b)
			back.Subtract(&sum, b)
			return back.Equal(a) == 1
		},
		elementGen, elementGen,
	))

	props.Property("a * inv(a) == 1 for a != 0", prop.ForAll(
		func(a *Element) bool {
			if a.IsZero() == 1 {
				return true
			}
			var inv, prod Element
			inv.Invert(a)
			prod.Multiply(a, &inv)
			return prod.Equal(new(Element).One()) == 1
		},
		elementGen,
	))

	props.Property("bytes round-trip", prop.ForAll(
		func(a *Element) bool {
			b := new(Element).SetBytes(a.Bytes())
			return b.Equal(a) == 1
		},
		elementGen,
	))

	props.TestingRun(t)
}
