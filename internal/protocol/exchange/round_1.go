package exchange

import (
	"github.com/pkg/errors"
	"go.uber.org/zap"

	"github.com/smallyu/go-ec-elgamal/internal/protocol/elgamal"
	"github.com/smallyu/go-ec-elgamal/pkg/ecelgamal"
)

// round1 derives the local key pair and broadcasts the public point.
func (s *state) round1() (ecelgamal.StateMachine, []ecelgamal.Message, error) {
	key, err := elgamal.NewKeyPair(s.cfg.Curve, s.cfg.Generator, s.cfg.Private)
	if err != nil {
		return nil, nil, errors.Wrap(err, "round 1")
	}
	s.key = key
	s.result.Public = key.Public

	msg := &ExchangeMessage{
		FromParty:  s.cfg.PartyID,
		IsBcast:    true,
		Data:       s.cfg.Curve.Marshal(key.Public),
		TypeString: TypePublicKey,
		RoundNum:   1,
	}

	s.logger.Debug("broadcast public key", zap.Stringer("public", key.Public))
	return s, []ecelgamal.Message{msg}, nil
}
