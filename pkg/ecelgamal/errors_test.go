package ecelgamal

import (
	"math/big"
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
)

func TestNoInverseError(t *testing.T) {
	value := big.NewInt(4)
	modulus := big.NewInt(8)
	err := NewNoInverseError(value, modulus)

	// The report must not follow later mutation of the operands.
	value.SetInt64(99)

	assert.Equal(t, "modular inverse does not exist: 4 mod 8", err.Error())
	assert.True(t, errors.Is(err, ErrNoInverse))

	wrapped := errors.Wrap(err, "add points")
	var target *NoInverseError
	assert.True(t, errors.As(wrapped, &target))
	assert.Equal(t, int64(4), target.Value.Int64())
	assert.Equal(t, int64(8), target.Modulus.Int64())
}

type testParty string

func (p testParty) ID() string      { return string(p) }
func (p testParty) Moniker() string { return string(p) }

func TestBlame(t *testing.T) {
	cause := errors.Wrap(ErrInvalidPoint, "(1,1)")
	err := NewBlame(testParty("A"), "peer public key", cause)

	assert.Equal(t, "blame party A: peer public key: (1,1): point is not on the curve", err.Error())
	assert.True(t, errors.Is(err, ErrInvalidPoint))

	var blame *Blame
	assert.True(t, errors.As(errors.Wrap(err, "round 2"), &blame))
	assert.Equal(t, "A", blame.PartyID.ID())

	bare := NewBlame(testParty("B"), "silent", nil)
	assert.Equal(t, "blame party B: silent", bare.Error())
	assert.Nil(t, bare.Unwrap())
}
