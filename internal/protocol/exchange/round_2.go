package exchange

import (
	"math/big"

	"github.com/pkg/errors"
	"go.uber.org/zap"

	"github.com/smallyu/go-ec-elgamal/internal/crypto/curves"
	"github.com/smallyu/go-ec-elgamal/internal/crypto/message"
	"github.com/smallyu/go-ec-elgamal/internal/protocol/elgamal"
	"github.com/smallyu/go-ec-elgamal/pkg/ecelgamal"
)

// round2 processes the peer's public key. The sender encrypts and finishes;
// the receiver waits for the ciphertext.
func (s *state) round2(msg ecelgamal.Message) (ecelgamal.StateMachine, []ecelgamal.Message, error) {
	peer, err := s.unmarshalPoint(msg.Payload())
	if err != nil {
		return nil, nil, ecelgamal.NewBlame(msg.From(), "peer public key", err)
	}
	if peer.IsInfinity() {
		return nil, nil, ecelgamal.NewBlame(msg.From(), "peer public key",
			invalidMsg(errors.Wrap(ecelgamal.ErrInvalidPoint, "point at infinity")))
	}
	s.result.PeerPublic = peer

	s.result.Secret, err = elgamal.SharedSecret(s.cfg.Curve, s.key.Private, peer)
	if err != nil {
		return nil, nil, err
	}

	if s.cfg.Role == Receiver {
		s.round = 2
		return s, nil, nil
	}

	enc, err := s.encode()
	if err != nil {
		return nil, nil, errors.Wrap(err, "encode message")
	}

	ct, _, err := elgamal.EncryptPoint(s.cfg.Curve, s.cfg.Generator, s.key.Private, peer, enc.Point)
	if err != nil {
		return nil, nil, err
	}

	s.result.Encoded = enc
	s.result.Ciphertext = ct
	s.result.Message = new(big.Int).Set(s.cfg.Message)
	s.done = true

	out := &ExchangeMessage{
		FromParty:  s.cfg.PartyID,
		ToParty:    s.cfg.Peer,
		Data:       s.marshalCiphertext(ct, enc.H),
		TypeString: TypeCiphertext,
		RoundNum:   2,
	}

	s.logger.Info("sent ciphertext", zap.Stringer("c1", ct.C1), zap.Stringer("h", enc.H))
	return s, []ecelgamal.Message{out}, nil
}

func (s *state) encode() (*message.Encoded, error) {
	if s.cfg.Points != nil {
		return message.Encode(s.cfg.Message, s.cfg.Curve, s.cfg.Points)
	}
	return message.EncodeOnCurve(s.cfg.Message, s.cfg.Curve)
}

// finish decrypts the sender's ciphertext.
func (s *state) finish(msg ecelgamal.Message) (ecelgamal.StateMachine, []ecelgamal.Message, error) {
	c1, h, err := s.unmarshalCiphertext(msg.Payload())
	if err != nil {
		return nil, nil, ecelgamal.NewBlame(msg.From(), "ciphertext", err)
	}

	ct := &elgamal.Ciphertext{C1: c1, C2: s.result.PeerPublic}
	m, err := elgamal.Decrypt(s.cfg.Curve, ct, s.key.Private, h)
	if err != nil {
		return nil, nil, ecelgamal.NewBlame(msg.From(), "undecryptable ciphertext", invalidMsg(err))
	}

	s.result.Ciphertext = ct
	s.result.Message = m
	s.done = true

	s.logger.Info("recovered message", zap.Stringer("message", m))
	return s, nil, nil
}

// The round 2 payload is the encoding of C1 followed by h as big-endian
// bytes.
func (s *state) marshalCiphertext(ct *elgamal.Ciphertext, h *big.Int) []byte {
	return append(s.cfg.Curve.Marshal(ct.C1), h.Bytes()...)
}

func (s *state) unmarshalCiphertext(data []byte) (c1 curves.Point, h *big.Int, err error) {
	if len(data) == 0 {
		return curves.Point{}, nil, errors.Wrap(ecelgamal.ErrInvalidMsg, "empty ciphertext")
	}

	n := 1
	if data[0] != 0x00 {
		n += 2 * s.cfg.Curve.ByteLen()
	}
	if len(data) <= n {
		return curves.Point{}, nil, errors.Wrapf(ecelgamal.ErrInvalidMsg, "ciphertext too short: %d bytes", len(data))
	}

	c1, err = s.unmarshalPoint(data[:n])
	if err != nil {
		return curves.Point{}, nil, errors.Wrap(err, "ciphertext")
	}

	h = new(big.Int).SetBytes(data[n:])
	if h.Sign() == 0 {
		return curves.Point{}, nil, errors.Wrap(ecelgamal.ErrInvalidMsg, "zero blinding factor")
	}
	return c1, h, nil
}
