package exchange

import (
	"math/big"

	"go.uber.org/zap"

	"github.com/smallyu/go-ec-elgamal/internal/crypto/curves"
	"github.com/smallyu/go-ec-elgamal/internal/crypto/message"
	"github.com/smallyu/go-ec-elgamal/internal/protocol/elgamal"
	"github.com/smallyu/go-ec-elgamal/pkg/ecelgamal"
)

// Message types.
const (
	TypePublicKey  = "ExchangeRound1"
	TypeCiphertext = "ExchangeRound2"
)

// Role selects which side of the exchange a party plays.
type Role int

const (
	// Sender encrypts Config.Message for the peer (party A).
	Sender Role = iota
	// Receiver decrypts the peer's ciphertext (party B).
	Receiver
)

func (r Role) String() string {
	switch r {
	case Sender:
		return "sender"
	case Receiver:
		return "receiver"
	default:
		return "unknown"
	}
}

// Config describes the local party.
type Config struct {
	PartyID ecelgamal.PartyID
	Peer    ecelgamal.PartyID
	Role    Role

	Curve     *curves.Curve
	Generator curves.Point
	Private   *big.Int

	// Message is the plaintext to send. Sender only.
	Message *big.Int
	// Points is the enumeration used to encode Message. When nil the sender
	// searches the curve directly, which is the only option on large fields.
	Points curves.Points

	Logger *zap.Logger
}

// Result is the output of a finished exchange.
type Result struct {
	Public     curves.Point
	PeerPublic curves.Point
	Secret     curves.Point
	Ciphertext *elgamal.Ciphertext

	// Encoded is set on the sender.
	Encoded *message.Encoded
	// Message is the plaintext sent or recovered.
	Message *big.Int
}

// ExchangeMessage is a concrete implementation of ecelgamal.Message.
type ExchangeMessage struct {
	FromParty  ecelgamal.PartyID
	ToParty    ecelgamal.PartyID
	IsBcast    bool
	Data       []byte
	TypeString string
	RoundNum   uint32
}

func (m *ExchangeMessage) Type() string {
	return m.TypeString
}

func (m *ExchangeMessage) From() ecelgamal.PartyID {
	return m.FromParty
}

func (m *ExchangeMessage) To() ecelgamal.PartyID {
	return m.ToParty
}

func (m *ExchangeMessage) IsBroadcast() bool {
	return m.IsBcast
}

func (m *ExchangeMessage) Payload() []byte {
	return m.Data
}

func (m *ExchangeMessage) RoundNumber() uint32 {
	return m.RoundNum
}
