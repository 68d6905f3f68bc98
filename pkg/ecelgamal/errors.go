package ecelgamal

import (
	"fmt"
	"math/big"

	"github.com/pkg/errors"
)

// Errors returned by the curve arithmetic, the message encoder and the
// exchange protocol. Callers match them with errors.Is.
var (
	ErrNoInverse         = errors.New("modular inverse does not exist")
	ErrInvalidMessage    = errors.New("message must be a positive integer")
	ErrEncodingRange     = errors.New("message too large for field: blinding factor is zero")
	ErrEncodingNotFound  = errors.New("no curve point found for encoded message")
	ErrInvalidPoint      = errors.New("point is not on the curve")
	ErrInvalidParameters = errors.New("invalid parameters")

	ErrInvalidMsg   = errors.New("invalid message received")
	ErrProtocolDone = errors.New("protocol already finished")
)

// NoInverseError reports the operands of a failed modular inversion.
// It unwraps to ErrNoInverse.
type NoInverseError struct {
	Value   *big.Int
	Modulus *big.Int
}

func (e *NoInverseError) Error() string {
	return fmt.Sprintf("%s: %s mod %s", ErrNoInverse.Error(), e.Value, e.Modulus)
}

func (e *NoInverseError) Unwrap() error {
	return ErrNoInverse
}

// NewNoInverseError copies its operands so later mutation by the caller
// does not change the report.
func NewNoInverseError(value, modulus *big.Int) *NoInverseError {
	return &NoInverseError{
		Value:   new(big.Int).Set(value),
		Modulus: new(big.Int).Set(modulus),
	}
}

// Blame represents an error caused by a specific party, such as a
// malformed or off-curve payload.
type Blame struct {
	PartyID PartyID
	Reason  string
	Err     error
}

func (b *Blame) Error() string {
	if b.Err != nil {
		return fmt.Sprintf("blame party %s: %s: %v", b.PartyID.ID(), b.Reason, b.Err)
	}
	return fmt.Sprintf("blame party %s: %s", b.PartyID.ID(), b.Reason)
}

func (b *Blame) Unwrap() error {
	return b.Err
}

// NewBlame creates a new Blame error.
func NewBlame(party PartyID, reason string, err error) *Blame {
	return &Blame{
		PartyID: party,
		Reason:  reason,
		Err:     err,
	}
}
