package curves

import (
	"math/big"
)

// EnumeratePoints lists every affine point of y² = x³ + ax + b over F_p in
// x-major, y-ascending order. The point at infinity is not included.
//
// It visits all p² coordinate pairs. This is a teaching-scale routine: for
// cryptographic moduli use Curve.YAt instead.
func EnumeratePoints(p, a, b *big.Int) Points {
	return NewCurve(p, a, b).Points()
}

// Points enumerates the affine points of c. See EnumeratePoints.
func (c *Curve) Points() Points {
	// y² mod p for every y, computed once and compared against each x.
	squares := make([]*big.Int, 0)
	for y := new(big.Int); y.Cmp(c.p) < 0; y.Add(y, one) {
		sq := new(big.Int).Mul(y, y)
		squares = append(squares, sq.Mod(sq, c.p))
	}

	var points Points
	for x := new(big.Int); x.Cmp(c.p) < 0; x.Add(x, one) {
		rhs := c.Polynomial(x)
		for y, sq := range squares {
			if sq.Cmp(rhs) == 0 {
				points = append(points, Point{
					x:      new(big.Int).Set(x),
					y:      big.NewInt(int64(y)),
					affine: true,
				})
			}
		}
	}
	return points
}

// YAt returns the smallest y in [0, p) such that (x, y) is on the curve, and
// false when x³ + ax + b is not a square mod p. The point (x, y) it describes
// is the first point with that x-coordinate in enumeration order.
//
// It costs one modular square root, so it works for any field size.
func (c *Curve) YAt(x *big.Int) (*big.Int, bool) {
	if !c.inField(x) {
		return nil, false
	}

	rhs := c.Polynomial(x)
	if rhs.Sign() == 0 {
		return new(big.Int), true
	}

	// In F_2 every element is its own square root.
	if c.p.Cmp(two) == 0 {
		return rhs, true
	}
	if c.p.Bit(0) == 0 {
		return nil, false
	}

	y := new(big.Int).ModSqrt(rhs, c.p)
	if y == nil {
		return nil, false
	}

	// ModSqrt assumes a prime modulus; confirm the root before trusting it.
	check := new(big.Int).Mul(y, y)
	if check.Mod(check, c.p).Cmp(rhs) != 0 {
		return nil, false
	}

	if neg := new(big.Int).Sub(c.p, y); neg.Cmp(y) < 0 {
		y = neg
	}
	return y, true
}
