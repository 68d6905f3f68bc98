package curves

import (
	"math/big"

	"github.com/pkg/errors"

	"github.com/smallyu/go-ec-elgamal/pkg/ecelgamal"
)

const (
	tagInfinity     = 0x00
	tagUncompressed = 0x04
)

// ByteLen returns the number of bytes used for one coordinate.
func (c *Curve) ByteLen() int {
	return (c.p.BitLen() + 7) / 8
}

// Marshal encodes pt as a single 0x00 byte for the point at infinity, or as
// 0x04 || X || Y with both coordinates left-padded to ByteLen bytes.
// Coordinates are reduced into [0, p) before encoding.
func (c *Curve) Marshal(pt Point) []byte {
	if pt.IsInfinity() {
		return []byte{tagInfinity}
	}

	size := c.ByteLen()
	out := make([]byte, 1+2*size)
	out[0] = tagUncompressed
	new(big.Int).Mod(pt.x, c.p).FillBytes(out[1 : 1+size])
	new(big.Int).Mod(pt.y, c.p).FillBytes(out[1+size:])
	return out
}

// Unmarshal decodes a point produced by Marshal. It rejects malformed input
// and points that are not on c with an error wrapping ecelgamal.ErrInvalidPoint.
func (c *Curve) Unmarshal(data []byte) (Point, error) {
	if len(data) == 1 && data[0] == tagInfinity {
		return Infinity(), nil
	}

	size := c.ByteLen()
	if len(data) != 1+2*size || data[0] != tagUncompressed {
		return Point{}, errors.Wrapf(ecelgamal.ErrInvalidPoint, "invalid encoding length %d, expected %d", len(data), 1+2*size)
	}

	pt := Point{
		x:      new(big.Int).SetBytes(data[1 : 1+size]),
		y:      new(big.Int).SetBytes(data[1+size:]),
		affine: true,
	}
	if !c.IsOnCurve(pt) {
		return Point{}, errors.Wrapf(ecelgamal.ErrInvalidPoint, "%s on %s", pt, c)
	}
	return pt, nil
}
