package ecelgamal

// PartyID represents a participant in the two-party exchange.
// It must be unique within a session.
type PartyID interface {
	// ID returns the unique string identifier for the party.
	ID() string

	// Moniker returns a human-readable name for the party (optional).
	Moniker() string
}

// Message is the generic interface for all exchange messages.
type Message interface {
	// Type returns a string identifier for the message type.
	Type() string

	// From returns the sender's PartyID.
	From() PartyID

	// To returns the intended recipient.
	// If nil, the message is treated as a broadcast message.
	To() PartyID

	// IsBroadcast returns true if the message is intended for all parties.
	IsBroadcast() bool

	// Payload returns the serialized data of the message.
	Payload() []byte

	// RoundNumber returns the protocol round this message belongs to.
	RoundNumber() uint32
}

// StateMachine drives one party through the exchange.
// It follows a functional state transition pattern.
type StateMachine interface {
	// Update applies an incoming message to the current state.
	// It returns:
	// - next: The new state machine (nil if protocol finished or failed).
	// - out: A slice of messages to be sent to the peer.
	// - err: An error if the transition failed.
	Update(msg Message) (next StateMachine, out []Message, err error)

	// Result returns the final output of the protocol.
	// Returns nil if the protocol is not yet finished.
	Result() interface{}

	// Details returns metadata about the current state (e.g., "Exchange Round 2").
	Details() string
}
