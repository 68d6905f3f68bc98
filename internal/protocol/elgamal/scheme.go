package elgamal

import (
	"math/big"

	"github.com/pkg/errors"
	"go.uber.org/zap"

	"github.com/smallyu/go-ec-elgamal/internal/crypto/curves"
	"github.com/smallyu/go-ec-elgamal/internal/crypto/message"
	"github.com/smallyu/go-ec-elgamal/pkg/ecelgamal"
)

// Transcript records every intermediate value of a run, in the order they
// are produced.
type Transcript struct {
	Curve     *curves.Curve
	Generator curves.Point
	Points    curves.Points

	PublicA curves.Point // dA·G
	PublicB curves.Point // dB·G
	SecretA curves.Point // dA·(dB·G)
	SecretB curves.Point // dB·(dA·G)

	Encoded    *message.Encoded
	Ciphertext *Ciphertext
	Decrypted  curves.Point
	Message    *big.Int
}

// Scheme binds a curve and base point and runs the full exchange between
// A and B.
type Scheme struct {
	curve     *curves.Curve
	generator curves.Point
	cache     *curves.PointCache
	logger    *zap.Logger
}

type Option func(*Scheme)

// WithLogger sets the logger. Private scalars are never logged.
func WithLogger(logger *zap.Logger) Option {
	return func(s *Scheme) {
		s.logger = logger
	}
}

// WithPointCache enumerates points through pc instead of on every run.
func WithPointCache(pc *curves.PointCache) Option {
	return func(s *Scheme) {
		s.cache = pc
	}
}

// NewScheme returns a Scheme over c with base point g. g must lie on c.
func NewScheme(c *curves.Curve, g curves.Point, opts ...Option) (*Scheme, error) {
	if g.IsInfinity() || !c.IsOnCurve(g) {
		return nil, errors.Wrapf(ecelgamal.ErrInvalidPoint, "generator %s is not on %s", g, c)
	}

	s := &Scheme{
		curve:     c,
		generator: g,
		logger:    zap.NewNop(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s, nil
}

// NewSchemeFromParameters builds the curve and base point from params.
func NewSchemeFromParameters(params *ecelgamal.Parameters, opts ...Option) (*Scheme, error) {
	if err := params.Validate(); err != nil {
		return nil, err
	}

	c := curves.NewCurve(params.Curve.P.Int, params.Curve.A.Int, params.Curve.B.Int)
	g := curves.NewPoint(params.Generator.X.Int, params.Generator.Y.Int)
	return NewScheme(c, g, opts...)
}

func (s *Scheme) Curve() *curves.Curve { return s.curve }

func (s *Scheme) Generator() curves.Point { return s.generator }

// Points enumerates the affine points of the curve.
func (s *Scheme) Points() curves.Points {
	if s.cache != nil {
		return s.cache.Points(s.curve)
	}
	return s.curve.Points()
}

// KeyPair derives a key pair on the scheme's base point.
func (s *Scheme) KeyPair(d *big.Int) (*KeyPair, error) {
	return NewKeyPair(s.curve, s.generator, d)
}

// Run performs key agreement, encryption of m from A to B and decryption.
//
// On error the returned transcript holds every value computed before the
// failing step; it is nil only when nothing was computed.
func (s *Scheme) Run(dA, dB, m *big.Int) (*Transcript, error) {
	log := s.logger.With(zap.Stringer("curve", s.curve), zap.Stringer("generator", s.generator))

	t := &Transcript{
		Curve:     s.curve,
		Generator: s.generator,
		Points:    s.Points(),
	}
	log.Debug("enumerated points", zap.Int("count", len(t.Points)))

	a, err := s.KeyPair(dA)
	if err != nil {
		return t, errors.Wrap(err, "party A")
	}
	t.PublicA = a.Public

	b, err := s.KeyPair(dB)
	if err != nil {
		return t, errors.Wrap(err, "party B")
	}
	t.PublicB = b.Public
	log.Debug("derived public keys", zap.Stringer("dAG", t.PublicA), zap.Stringer("dBG", t.PublicB))

	if t.SecretA, err = SharedSecret(s.curve, a.Private, b.Public); err != nil {
		return t, errors.Wrap(err, "party A")
	}
	if t.SecretB, err = SharedSecret(s.curve, b.Private, a.Public); err != nil {
		return t, errors.Wrap(err, "party B")
	}
	if !t.SecretA.Equal(t.SecretB) {
		log.Warn("shared secrets differ", zap.Stringer("secretA", t.SecretA), zap.Stringer("secretB", t.SecretB))
	}

	if t.Encoded, err = message.Encode(m, s.curve, t.Points); err != nil {
		return t, errors.Wrap(err, "encode message")
	}
	log.Debug("encoded message",
		zap.Stringer("M", t.Encoded.M),
		zap.Stringer("h", t.Encoded.H),
		zap.Stringer("Qm", t.Encoded.Point))

	if t.Ciphertext, _, err = EncryptPoint(s.curve, s.generator, a.Private, b.Public, t.Encoded.Point); err != nil {
		return t, err
	}

	if t.Decrypted, err = DecryptPoint(s.curve, t.Ciphertext, b.Private); err != nil {
		return t, err
	}
	if t.Message, err = message.Decode(t.Decrypted, t.Encoded.H); err != nil {
		return t, errors.Wrap(err, "decode message")
	}

	log.Info("exchange complete",
		zap.Stringer("ciphertext", t.Ciphertext),
		zap.Stringer("message", t.Message))
	return t, nil
}

// Run executes a full exchange described by params.
func Run(params *ecelgamal.Parameters, opts ...Option) (*Transcript, error) {
	s, err := NewSchemeFromParameters(params, opts...)
	if err != nil {
		return nil, err
	}
	return s.Run(params.PrivateA.Int, params.PrivateB.Int, params.Message.Int)
}
