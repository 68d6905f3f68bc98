package curves

import (
	"math/big"
	"testing"

	"github.com/decred/dcrd/dcrec/secp256k1/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fixtureCurve is y² = x³ + x + 1 over F_11.
func fixtureCurve() *Curve {
	return NewCurve(big.NewInt(11), big.NewInt(1), big.NewInt(1))
}

func TestNewCurveReducesCoefficients(t *testing.T) {
	c := NewCurve(big.NewInt(11), big.NewInt(-1), big.NewInt(23))
	assert.Equal(t, int64(10), c.A().Int64())
	assert.Equal(t, int64(1), c.B().Int64())

	a := big.NewInt(5)
	c = NewCurve(big.NewInt(11), a, big.NewInt(1))
	a.SetInt64(7)
	assert.Equal(t, int64(5), c.A().Int64(), "NewCurve must copy its inputs")
}

func TestPolynomial(t *testing.T) {
	c := fixtureCurve()
	want := []int64{1, 3, 0, 9, 3, 10, 3, 10, 4, 2, 10}
	for x, rhs := range want {
		assert.Equal(t, rhs, c.Polynomial(big.NewInt(int64(x))).Int64(), "x=%d", x)
	}
}

func TestIsOnCurve(t *testing.T) {
	c := fixtureCurve()

	assert.True(t, c.IsOnCurve(Infinity()))
	assert.True(t, c.IsOnCurve(NewPointInt64(3, 8)))
	assert.True(t, c.IsOnCurve(NewPointInt64(2, 0)))
	assert.False(t, c.IsOnCurve(NewPointInt64(3, 7)))
	assert.False(t, c.IsOnCurve(NewPointInt64(0, 0)))
	assert.False(t, c.IsOnCurve(NewPointInt64(14, 8)), "coordinates must be reduced")
	assert.False(t, c.IsOnCurve(NewPointInt64(-8, 8)))
}

func TestDiscriminant(t *testing.T) {
	c := fixtureCurve()
	// 4 + 27 = 31 ≡ 9 (mod 11)
	assert.Equal(t, int64(9), c.Discriminant().Int64())
	assert.False(t, c.IsSingular())

	cusp := NewCurve(big.NewInt(11), big.NewInt(0), big.NewInt(0))
	assert.True(t, cusp.IsSingular())
}

func TestCurveEqualAndName(t *testing.T) {
	c := fixtureCurve()
	assert.True(t, c.Equal(NewCurve(big.NewInt(11), big.NewInt(12), big.NewInt(1))))
	assert.False(t, c.Equal(NewCurve(big.NewInt(13), big.NewInt(1), big.NewInt(1))))

	assert.Equal(t, "y^2 = x^3 + 1x + 1 (mod 11)", c.Name())

	s, _ := Secp256k1()
	assert.Equal(t, "secp256k1", s.Name())
}

func TestPointValues(t *testing.T) {
	var zero Point
	assert.True(t, zero.IsInfinity(), "zero value is the identity")
	assert.Nil(t, zero.X())
	assert.Equal(t, "O", zero.String())

	origin := NewPointInt64(0, 0)
	assert.False(t, origin.IsInfinity())
	assert.False(t, origin.Equal(Infinity()))
	assert.Equal(t, "(0,0)", origin.String())

	x := big.NewInt(3)
	pt := NewPoint(x, big.NewInt(8))
	x.SetInt64(4)
	pt.X().SetInt64(5)
	assert.Equal(t, int64(3), pt.X().Int64(), "points must not share coordinates with callers")

	assert.Equal(t, "(0,1),(3,8),O", Points{NewPointInt64(0, 1), NewPointInt64(3, 8), Infinity()}.String())
}

func TestSecp256k1ScalarMult(t *testing.T) {
	c, g := Secp256k1()
	ref := secp256k1.S256()

	require.True(t, c.IsOnCurve(g))
	assert.False(t, c.IsSingular())

	huge, _ := new(big.Int).SetString("c0ffee2b8b9a2e4d61f5b0a4a9e5f1b2c3d4e5f60718293a4b5c6d7e8f901234", 16)
	for _, k := range []*big.Int{big.NewInt(1), big.NewInt(2), big.NewInt(3), big.NewInt(7), big.NewInt(255), huge} {
		got, err := c.ScalarMult(k, g)
		require.NoError(t, err)

		wantX, wantY := ref.ScalarBaseMult(k.Bytes())
		assert.Equal(t, 0, got.X().Cmp(wantX), "k=%s", k)
		assert.Equal(t, 0, got.Y().Cmp(wantY), "k=%s", k)
		assert.True(t, c.IsOnCurve(got))
	}

	// (n-1)·G = -G and n·G = O.
	n := ref.Params().N
	got, err := c.ScalarMult(new(big.Int).Sub(n, one), g)
	require.NoError(t, err)
	assert.True(t, got.Equal(c.Negate(g)))

	got, err = c.ScalarMult(n, g)
	require.NoError(t, err)
	assert.True(t, got.IsInfinity())
}
