package curves

import (
	"math/big"

	"github.com/pkg/errors"

	"github.com/smallyu/go-ec-elgamal/internal/crypto/modular"
)

// Negate returns -pt: the point at infinity maps to itself and (x, y) maps
// to (x, p - y mod p).
func (c *Curve) Negate(pt Point) Point {
	if pt.IsInfinity() {
		return pt
	}

	y := new(big.Int).Sub(c.p, pt.y)
	y.Mod(y, c.p)

	return Point{x: new(big.Int).Set(pt.x), y: y, affine: true}
}

// Double returns 2·pt. A point with y = 0 has a vertical tangent and doubles
// to the point at infinity.
func (c *Curve) Double(pt Point) (Point, error) {
	if pt.IsInfinity() || pt.y.Sign() == 0 {
		return Infinity(), nil
	}

	// λ = (3x² + a) / 2y
	denominator := new(big.Int).Mul(two, pt.y)
	inv, err := modular.ModularInverse(denominator, c.p)
	if err != nil {
		return Point{}, errors.Wrapf(err, "double %s", pt)
	}

	lambda := new(big.Int).Mul(pt.x, pt.x)
	lambda.Mul(lambda, three)
	lambda.Add(lambda, c.a)
	lambda.Mul(lambda, inv)
	lambda.Mod(lambda, c.p)

	// x' = λ² - 2x
	x := new(big.Int).Mul(lambda, lambda)
	x.Sub(x, new(big.Int).Mul(two, pt.x))
	x.Mod(x, c.p)

	// y' = λ(x - x') - y
	y := new(big.Int).Sub(pt.x, x)
	y.Mul(y, lambda)
	y.Sub(y, pt.y)
	y.Mod(y, c.p)

	return Point{x: x, y: y, affine: true}, nil
}

// Add returns p + q under the chord-tangent law.
//
// A failed modular inverse is returned as an error wrapping
// ecelgamal.ErrNoInverse; it cannot happen for a prime modulus and points on
// the curve.
func (c *Curve) Add(p, q Point) (Point, error) {
	if p.IsInfinity() {
		return q, nil
	}
	if q.IsInfinity() {
		return p, nil
	}
	if p.Equal(q) {
		return c.Double(p)
	}

	// Mutual inverses: x1 = x2 and y1 + y2 ≡ 0.
	if p.x.Cmp(q.x) == 0 {
		sum := new(big.Int).Add(p.y, q.y)
		if sum.Mod(sum, c.p).Sign() == 0 {
			return Infinity(), nil
		}
	}

	// λ = (y2 - y1) / (x2 - x1)
	dx := new(big.Int).Sub(q.x, p.x)
	inv, err := modular.ModularInverse(dx, c.p)
	if err != nil {
		return Point{}, errors.Wrapf(err, "add %s + %s", p, q)
	}

	lambda := new(big.Int).Sub(q.y, p.y)
	lambda.Mul(lambda, inv)
	lambda.Mod(lambda, c.p)

	// x3 = λ² - x1 - x2
	x := new(big.Int).Mul(lambda, lambda)
	x.Sub(x, p.x)
	x.Sub(x, q.x)
	x.Mod(x, c.p)

	// y3 = λ(x1 - x3) - y1
	y := new(big.Int).Sub(p.x, x)
	y.Mul(y, lambda)
	y.Sub(y, p.y)
	y.Mod(y, c.p)

	return Point{x: x, y: y, affine: true}, nil
}

// Subtract returns p - q.
func (c *Curve) Subtract(p, q Point) (Point, error) {
	return c.Add(p, c.Negate(q))
}

// ScalarMult returns k·pt using double-and-add from the least significant
// bit of k. 0·pt is the point at infinity; a negative k multiplies -pt by |k|.
// The cost is O(log k) group operations.
func (c *Curve) ScalarMult(k *big.Int, pt Point) (Point, error) {
	if k.Sign() < 0 {
		return c.ScalarMult(new(big.Int).Neg(k), c.Negate(pt))
	}

	n := new(big.Int).Set(k)
	result := Infinity()
	addend := pt

	var err error
	for n.Sign() > 0 {
		if n.Bit(0) == 1 {
			result, err = c.Add(result, addend)
			if err != nil {
				return Point{}, errors.Wrapf(err, "scalar mult by %s", k)
			}
		}

		addend, err = c.Double(addend)
		if err != nil {
			return Point{}, errors.Wrapf(err, "scalar mult by %s", k)
		}
		n.Rsh(n, 1)
	}

	return result, nil
}
