package curves

import (
	"fmt"
	"math/big"
)

// Point is either an affine point (x, y) or the point at infinity, the
// identity of the group. The zero value is the point at infinity, so an
// affine (0, 0) is never mistaken for it.
//
// Points are values: the coordinates are copied on the way in and out.
type Point struct {
	x, y   *big.Int
	affine bool
}

// Infinity returns the point at infinity.
func Infinity() Point {
	return Point{}
}

// NewPoint returns the affine point (x, y). It does not check that the point
// lies on any curve; use Curve.IsOnCurve for that.
func NewPoint(x, y *big.Int) Point {
	return Point{
		x:      new(big.Int).Set(x),
		y:      new(big.Int).Set(y),
		affine: true,
	}
}

// NewPointInt64 is NewPoint for small coordinates.
func NewPointInt64(x, y int64) Point {
	return Point{
		x:      big.NewInt(x),
		y:      big.NewInt(y),
		affine: true,
	}
}

// IsInfinity reports whether p is the identity.
func (p Point) IsInfinity() bool {
	return !p.affine
}

// X returns a copy of the x-coordinate, or nil for the point at infinity.
func (p Point) X() *big.Int {
	if !p.affine {
		return nil
	}
	return new(big.Int).Set(p.x)
}

// Y returns a copy of the y-coordinate, or nil for the point at infinity.
func (p Point) Y() *big.Int {
	if !p.affine {
		return nil
	}
	return new(big.Int).Set(p.y)
}

// Equal reports whether p and q are the same point.
func (p Point) Equal(q Point) bool {
	if p.affine != q.affine {
		return false
	}
	if !p.affine {
		return true
	}
	return p.x.Cmp(q.x) == 0 && p.y.Cmp(q.y) == 0
}

func (p Point) String() string {
	if !p.affine {
		return "O"
	}
	return fmt.Sprintf("(%s,%s)", p.x, p.y)
}

// Points is an ordered list of points.
type Points []Point

// String renders the list the way the points are enumerated, e.g. "(0,1),(0,10)".
func (ps Points) String() string {
	var out []byte
	for i, p := range ps {
		if i > 0 {
			out = append(out, ',')
		}
		out = append(out, p.String()...)
	}
	return string(out)
}

// Contains reports whether q is in the list.
func (ps Points) Contains(q Point) bool {
	for _, p := range ps {
		if p.Equal(q) {
			return true
		}
	}
	return false
}
