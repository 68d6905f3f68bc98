// Package modular implements the extended Euclidean algorithm and modular
// inversion on arbitrary-precision integers.
package modular

import (
	"math/big"

	"github.com/smallyu/go-ec-elgamal/pkg/ecelgamal"
)

var one = big.NewInt(1)

// ExtendedGCD returns g, x, y such that a*x + b*y = g = gcd(a, b).
//
// It recurses on (b, a mod b), so the depth is O(log min(a, b)).
// Inputs are expected to be non-negative.
func ExtendedGCD(a, b *big.Int) (g, x, y *big.Int) {
	if b.Sign() == 0 {
		return new(big.Int).Set(a), big.NewInt(1), big.NewInt(0)
	}

	q, r := new(big.Int).QuoRem(a, b, new(big.Int))
	g, x1, y1 := ExtendedGCD(b, r)

	// x = y1, y = x1 - (a/b)*y1
	x = y1
	y = new(big.Int).Mul(q, y1)
	y.Sub(x1, y)
	return g, x, y
}

// ModularInverse returns x in [0, m) with a*x ≡ 1 (mod m).
// a may be negative or larger than m; it is reduced first.
// It returns a *ecelgamal.NoInverseError when gcd(a, m) != 1.
func ModularInverse(a, m *big.Int) (*big.Int, error) {
	if m.Sign() <= 0 {
		return nil, ecelgamal.NewNoInverseError(a, m)
	}

	reduced := Mod(a, m)
	g, x, _ := ExtendedGCD(reduced, m)
	if g.Cmp(one) != 0 {
		return nil, ecelgamal.NewNoInverseError(a, m)
	}

	return x.Mod(x, m), nil
}

// Mod returns a mod m in [0, m) as a new integer. m must be positive.
func Mod(a, m *big.Int) *big.Int {
	// big.Int.Mod is Euclidean, the result is never negative.
	return new(big.Int).Mod(a, m)
}
