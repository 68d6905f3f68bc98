// Package curves implements short Weierstrass curves y² = x³ + ax + b over a
// prime field F_p: the point type, the group law, point enumeration and a
// byte encoding for points.
//
// All arithmetic uses math/big, so products such as x·x·x and λ·λ never
// overflow. Enumeration is O(p²) and only meant for small demonstration
// fields; YAt computes points on demand for larger ones.
//
// The modulus is trusted to be prime and the curve to be non-singular.
// Nothing in this package checks either.
package curves

import (
	"fmt"
	"math/big"

	"github.com/decred/dcrd/dcrec/secp256k1/v4"
)

var (
	one   = big.NewInt(1)
	two   = big.NewInt(2)
	three = big.NewInt(3)
)

// Curve holds the parameters of y² = x³ + ax + b (mod p).
// A Curve is immutable once created.
type Curve struct {
	name    string
	p, a, b *big.Int
}

// NewCurve copies p, a and b and reduces a and b into [0, p).
// p must be greater than one.
func NewCurve(p, a, b *big.Int) *Curve {
	return NewNamedCurve("", p, a, b)
}

// NewNamedCurve is NewCurve with a name used for logging.
func NewNamedCurve(name string, p, a, b *big.Int) *Curve {
	modulus := new(big.Int).Set(p)
	return &Curve{
		name: name,
		p:    modulus,
		a:    new(big.Int).Mod(a, modulus),
		b:    new(big.Int).Mod(b, modulus),
	}
}

// Secp256k1 returns the secp256k1 curve and its base point.
func Secp256k1() (*Curve, Point) {
	params := secp256k1.S256().Params()
	c := NewNamedCurve("secp256k1", params.P, big.NewInt(0), params.B)
	return c, NewPoint(params.Gx, params.Gy)
}

// Name returns the curve name, or a description of the parameters.
func (c *Curve) Name() string {
	if c.name != "" {
		return c.name
	}
	return c.String()
}

// P returns a copy of the field modulus.
func (c *Curve) P() *big.Int { return new(big.Int).Set(c.p) }

// A returns a copy of the linear coefficient.
func (c *Curve) A() *big.Int { return new(big.Int).Set(c.a) }

// B returns a copy of the constant coefficient.
func (c *Curve) B() *big.Int { return new(big.Int).Set(c.b) }

// Polynomial returns x³ + ax + b mod p.
func (c *Curve) Polynomial(x *big.Int) *big.Int {
	x3 := new(big.Int).Mul(x, x)
	x3.Add(x3, c.a) // x² + a
	x3.Mul(x3, x)   // x³ + ax
	x3.Add(x3, c.b) // x³ + ax + b

	return x3.Mod(x3, c.p)
}

// IsOnCurve reports whether pt is the point at infinity or an affine point
// with coordinates in [0, p) that satisfies the curve equation.
func (c *Curve) IsOnCurve(pt Point) bool {
	if pt.IsInfinity() {
		return true
	}
	if !c.inField(pt.x) || !c.inField(pt.y) {
		return false
	}

	y2 := new(big.Int).Mul(pt.y, pt.y)
	y2.Mod(y2, c.p)

	return c.Polynomial(pt.x).Cmp(y2) == 0
}

// Discriminant returns 4a³ + 27b² mod p. The curve is singular when it is zero.
func (c *Curve) Discriminant() *big.Int {
	a3 := new(big.Int).Exp(c.a, three, nil)
	a3.Mul(a3, big.NewInt(4))

	b2 := new(big.Int).Mul(c.b, c.b)
	b2.Mul(b2, big.NewInt(27))

	d := a3.Add(a3, b2)
	return d.Mod(d, c.p)
}

// IsSingular reports whether the discriminant vanishes. It is a helper for
// callers validating their input; the group operations never call it.
func (c *Curve) IsSingular() bool {
	return c.Discriminant().Sign() == 0
}

// Equal reports whether both curves have the same p, a and b.
func (c *Curve) Equal(o *Curve) bool {
	return c.p.Cmp(o.p) == 0 && c.a.Cmp(o.a) == 0 && c.b.Cmp(o.b) == 0
}

func (c *Curve) String() string {
	return fmt.Sprintf("y^2 = x^3 + %sx + %s (mod %s)", c.a, c.b, c.p)
}

func (c *Curve) inField(v *big.Int) bool {
	return v.Sign() >= 0 && v.Cmp(c.p) < 0
}
