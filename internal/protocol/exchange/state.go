// Package exchange runs EC-ElGamal between two parties as a message driven
// state machine.
//
// Round 1: both parties broadcast their public key d·G.
// Round 2: the sender encrypts its message under the shared secret and
// sends C1 together with the blinding factor h. C2 is the sender's round 1
// public key. The receiver decrypts and exposes the message as its result.
package exchange

import (
	"fmt"

	"github.com/pkg/errors"
	"go.uber.org/zap"

	"github.com/smallyu/go-ec-elgamal/internal/crypto/curves"
	"github.com/smallyu/go-ec-elgamal/internal/protocol/elgamal"
	"github.com/smallyu/go-ec-elgamal/pkg/ecelgamal"
)

var roundTypes = map[int]string{
	1: TypePublicKey,
	2: TypeCiphertext,
}

type state struct {
	cfg    *Config
	logger *zap.Logger

	// Current round number (1-based)
	round int
	done  bool

	key    *elgamal.KeyPair
	result *Result

	// Messages received in the current round, keyed by sender ID.
	receivedMsgs map[string]ecelgamal.Message
}

// NewStateMachine validates cfg and executes round 1, returning the public
// key broadcast.
func NewStateMachine(cfg *Config) (ecelgamal.StateMachine, []ecelgamal.Message, error) {
	if err := validate(cfg); err != nil {
		return nil, nil, err
	}

	logger := cfg.Logger
	if logger == nil {
		logger = zap.NewNop()
	}

	s := &state{
		cfg: cfg,
		logger: logger.With(
			zap.String("party", cfg.PartyID.ID()),
			zap.Stringer("role", cfg.Role)),
		round:        1,
		result:       &Result{},
		receivedMsgs: make(map[string]ecelgamal.Message),
	}

	return s.round1()
}

func validate(cfg *Config) error {
	switch {
	case cfg == nil:
		return errors.Wrap(ecelgamal.ErrInvalidParameters, "nil config")
	case cfg.PartyID == nil || cfg.Peer == nil:
		return errors.Wrap(ecelgamal.ErrInvalidParameters, "both parties are required")
	case cfg.PartyID.ID() == cfg.Peer.ID():
		return errors.Wrapf(ecelgamal.ErrInvalidParameters, "peer has our own id %q", cfg.PartyID.ID())
	case cfg.Curve == nil:
		return errors.Wrap(ecelgamal.ErrInvalidParameters, "curve is required")
	case cfg.Private == nil:
		return errors.Wrap(ecelgamal.ErrInvalidParameters, "private scalar is required")
	case cfg.Generator.IsInfinity() || !cfg.Curve.IsOnCurve(cfg.Generator):
		return errors.Wrapf(ecelgamal.ErrInvalidPoint, "generator %s is not on %s", cfg.Generator, cfg.Curve)
	}

	switch cfg.Role {
	case Sender:
		if cfg.Message == nil || cfg.Message.Sign() <= 0 {
			return errors.Wrapf(ecelgamal.ErrInvalidMessage, "got %v", cfg.Message)
		}
	case Receiver:
	default:
		return errors.Wrapf(ecelgamal.ErrInvalidParameters, "unknown role %d", cfg.Role)
	}
	return nil
}

func (s *state) Update(msg ecelgamal.Message) (ecelgamal.StateMachine, []ecelgamal.Message, error) {
	if s.done {
		return nil, nil, ecelgamal.ErrProtocolDone
	}

	if msg == nil || msg.From() == nil {
		return nil, nil, errors.Wrap(ecelgamal.ErrInvalidMsg, "message without sender")
	}

	if msg.RoundNumber() != uint32(s.round) {
		return nil, nil, errors.Wrapf(ecelgamal.ErrInvalidMsg,
			"received message for round %d, expected %d", msg.RoundNumber(), s.round)
	}
	if want := roundTypes[s.round]; msg.Type() != want {
		return nil, nil, errors.Wrapf(ecelgamal.ErrInvalidMsg,
			"received %q in round %d, expected %q", msg.Type(), s.round, want)
	}

	senderID := msg.From().ID()
	if senderID == s.cfg.PartyID.ID() {
		return s, nil, nil // looped back
	}
	if senderID != s.cfg.Peer.ID() {
		return nil, nil, errors.Wrapf(ecelgamal.ErrInvalidMsg, "unexpected sender %s", senderID)
	}
	if to := msg.To(); to != nil && to.ID() != s.cfg.PartyID.ID() {
		return nil, nil, errors.Wrapf(ecelgamal.ErrInvalidMsg, "message addressed to %s", to.ID())
	}
	if _, exists := s.receivedMsgs[senderID]; exists {
		return nil, nil, errors.Wrapf(ecelgamal.ErrInvalidMsg, "duplicate message from party %s", senderID)
	}
	s.receivedMsgs[senderID] = msg

	return s.nextRound()
}

func (s *state) nextRound() (ecelgamal.StateMachine, []ecelgamal.Message, error) {
	msg := s.receivedMsgs[s.cfg.Peer.ID()]
	s.receivedMsgs = make(map[string]ecelgamal.Message)

	switch s.round {
	case 1:
		return s.round2(msg)
	case 2:
		return s.finish(msg)
	default:
		return nil, nil, errors.Errorf("unknown round %d", s.round)
	}
}

func (s *state) Result() interface{} {
	if !s.done {
		return nil
	}
	return s.result
}

func (s *state) Details() string {
	if s.done {
		return "Exchange Done"
	}
	return fmt.Sprintf("Exchange Round %d", s.round)
}

func (s *state) unmarshalPoint(data []byte) (curves.Point, error) {
	pt, err := s.cfg.Curve.Unmarshal(data)
	if err != nil {
		return curves.Point{}, invalidMsg(err)
	}
	return pt, nil
}

// invalidMsg marks err as caused by a bad payload while keeping err in the
// chain.
func invalidMsg(err error) error {
	return fmt.Errorf("%w: %w", ecelgamal.ErrInvalidMsg, err)
}
