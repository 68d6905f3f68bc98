// Package message maps a positive integer onto a curve point and back.
//
// A message m is scaled by a blinding factor h = floor(p / M), where M is
// the least power of two not below m, and the first curve point whose
// x-coordinate is at least m·h carries the message. Decoding returns
// floor(x / h), which recovers m as long as the search stayed below (m+1)·h.
package message

import (
	"math/big"

	"github.com/pkg/errors"

	"github.com/smallyu/go-ec-elgamal/internal/crypto/curves"
	"github.com/smallyu/go-ec-elgamal/pkg/ecelgamal"
)

var one = big.NewInt(1)

// Encoded is a message together with the values used to place it on the curve.
type Encoded struct {
	Message *big.Int
	M       *big.Int // least power of two >= Message
	H       *big.Int // blinding factor floor(p / M)
	X0      *big.Int // Message·H, the first candidate x-coordinate
	Point   curves.Point
}

// BlindingFactor returns M and h for message m over a field of size p.
// It fails with ErrInvalidMessage when m <= 0 and ErrEncodingRange when h is zero.
func BlindingFactor(m, p *big.Int) (M, h *big.Int, err error) {
	if m == nil || m.Sign() <= 0 {
		return nil, nil, errors.Wrapf(ecelgamal.ErrInvalidMessage, "got %v", m)
	}

	M = new(big.Int).Set(one)
	for M.Cmp(m) < 0 {
		M.Lsh(M, 1)
	}

	h = new(big.Int).Quo(p, M)
	if h.Sign() == 0 {
		return nil, nil, errors.Wrapf(ecelgamal.ErrEncodingRange, "message %s needs M=%s > p=%s", m, M, p)
	}
	return M, h, nil
}

// Encode places m on the curve using an enumeration of its points, which
// must be in x-ascending order as produced by curves.EnumeratePoints. The
// point chosen is the first one with x >= m·h.
func Encode(m *big.Int, c *curves.Curve, points curves.Points) (*Encoded, error) {
	p := c.P()
	M, h, err := BlindingFactor(m, p)
	if err != nil {
		return nil, err
	}

	x0 := new(big.Int).Mul(m, h)

	// Candidates run from x0 up to p-1; the scan never wraps around the field.
	for _, pt := range points {
		if pt.IsInfinity() {
			continue
		}
		x := pt.X()
		if x.Cmp(x0) >= 0 && x.Cmp(p) < 0 {
			return newEncoded(m, M, h, x0, pt), nil
		}
	}

	return nil, errors.Wrapf(ecelgamal.ErrEncodingNotFound, "no point with x >= %s on %s", x0, c)
}

// EncodeOnCurve is Encode without an enumeration: candidate x-coordinates
// from m·h up to p-1 are tried with a modular square root. It selects the
// same point as Encode over the full enumeration.
func EncodeOnCurve(m *big.Int, c *curves.Curve) (*Encoded, error) {
	p := c.P()
	M, h, err := BlindingFactor(m, p)
	if err != nil {
		return nil, err
	}

	x0 := new(big.Int).Mul(m, h)
	for x := new(big.Int).Set(x0); x.Cmp(p) < 0; x.Add(x, one) {
		if y, ok := c.YAt(x); ok {
			return newEncoded(m, M, h, x0, curves.NewPoint(x, y)), nil
		}
	}

	return nil, errors.Wrapf(ecelgamal.ErrEncodingNotFound, "no point with x >= %s on %s", x0, c)
}

// Decode returns floor(x / h) for the x-coordinate of pt.
func Decode(pt curves.Point, h *big.Int) (*big.Int, error) {
	if h == nil || h.Sign() <= 0 {
		return nil, errors.Wrapf(ecelgamal.ErrEncodingRange, "blinding factor %v", h)
	}
	if pt.IsInfinity() {
		return nil, errors.Wrap(ecelgamal.ErrInvalidPoint, "cannot decode the point at infinity")
	}
	return new(big.Int).Quo(pt.X(), h), nil
}

// Decode recovers the message from e.Point.
func (e *Encoded) Decode() (*big.Int, error) {
	return Decode(e.Point, e.H)
}

func newEncoded(m, M, h, x0 *big.Int, pt curves.Point) *Encoded {
	return &Encoded{
		Message: new(big.Int).Set(m),
		M:       M,
		H:       h,
		X0:      x0,
		Point:   pt,
	}
}
