// Package elgamal implements Diffie-Hellman key agreement and ElGamal
// encryption over the curves package.
//
// Party A encrypts an encoded message point Qm for party B as
//
//	C1 = Qm + dA·(dB·G),  C2 = dA·G
//
// and B recovers Qm = C1 - dB·C2. Both sides reach the same shared secret
// because scalar multiplication of one base point commutes.
package elgamal

import (
	"fmt"
	"math/big"

	"github.com/pkg/errors"

	"github.com/smallyu/go-ec-elgamal/internal/crypto/curves"
	"github.com/smallyu/go-ec-elgamal/internal/crypto/message"
)

// KeyPair is a private scalar d and its public point d·G.
type KeyPair struct {
	Private *big.Int
	Public  curves.Point
}

// NewKeyPair derives the public point for d. d is used as given, without
// reduction modulo the group order.
func NewKeyPair(c *curves.Curve, g curves.Point, d *big.Int) (*KeyPair, error) {
	pub, err := PublicKey(c, g, d)
	if err != nil {
		return nil, err
	}
	return &KeyPair{Private: new(big.Int).Set(d), Public: pub}, nil
}

// PublicKey returns d·G.
func PublicKey(c *curves.Curve, g curves.Point, d *big.Int) (curves.Point, error) {
	pub, err := c.ScalarMult(d, g)
	if err != nil {
		return curves.Point{}, errors.Wrap(err, "public key")
	}
	return pub, nil
}

// SharedSecret returns d·other, where other is the peer's public point.
func SharedSecret(c *curves.Curve, d *big.Int, other curves.Point) (curves.Point, error) {
	secret, err := c.ScalarMult(d, other)
	if err != nil {
		return curves.Point{}, errors.Wrap(err, "shared secret")
	}
	return secret, nil
}

// Ciphertext is the pair sent from A to B: C1 = Qm + dA·dB·G and C2 = dA·G.
type Ciphertext struct {
	C1 curves.Point
	C2 curves.Point
}

func (ct *Ciphertext) String() string {
	return fmt.Sprintf("{%s,%s}", ct.C1, ct.C2)
}

// EncryptPoint encrypts qm from the holder of dA to the owner of peerPublic.
// It also returns the shared secret it used.
func EncryptPoint(c *curves.Curve, g curves.Point, dA *big.Int, peerPublic, qm curves.Point) (*Ciphertext, curves.Point, error) {
	secret, err := SharedSecret(c, dA, peerPublic)
	if err != nil {
		return nil, curves.Point{}, err
	}

	c1, err := c.Add(qm, secret)
	if err != nil {
		return nil, curves.Point{}, errors.Wrap(err, "encrypt")
	}

	c2, err := PublicKey(c, g, dA)
	if err != nil {
		return nil, curves.Point{}, err
	}

	return &Ciphertext{C1: c1, C2: c2}, secret, nil
}

// Encrypt runs A's side end to end: it derives dB·G, encodes m against the
// enumerated points and encrypts the encoded point.
func Encrypt(c *curves.Curve, g curves.Point, points curves.Points, dA, dB, m *big.Int) (*Ciphertext, *message.Encoded, error) {
	dBG, err := PublicKey(c, g, dB)
	if err != nil {
		return nil, nil, err
	}

	enc, err := message.Encode(m, c, points)
	if err != nil {
		return nil, nil, errors.Wrap(err, "encode message")
	}

	ct, _, err := EncryptPoint(c, g, dA, dBG, enc.Point)
	if err != nil {
		return nil, nil, err
	}
	return ct, enc, nil
}

// DecryptPoint returns Qm = C1 - dB·C2.
func DecryptPoint(c *curves.Curve, ct *Ciphertext, dB *big.Int) (curves.Point, error) {
	secret, err := SharedSecret(c, dB, ct.C2)
	if err != nil {
		return curves.Point{}, err
	}

	qm, err := c.Subtract(ct.C1, secret)
	if err != nil {
		return curves.Point{}, errors.Wrap(err, "decrypt")
	}
	return qm, nil
}

// Decrypt recovers the message from ct with B's private scalar and the
// blinding factor h used by the sender.
func Decrypt(c *curves.Curve, ct *Ciphertext, dB, h *big.Int) (*big.Int, error) {
	qm, err := DecryptPoint(c, ct, dB)
	if err != nil {
		return nil, err
	}

	m, err := message.Decode(qm, h)
	if err != nil {
		return nil, errors.Wrap(err, "decode message")
	}
	return m, nil
}
