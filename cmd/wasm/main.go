//go:build js && wasm

package main

import (
	"encoding/hex"
	"encoding/json"
	"fmt"
	"math/big"
	"syscall/js"

	"github.com/smallyu/go-ec-elgamal/internal/crypto/curves"
	"github.com/smallyu/go-ec-elgamal/internal/protocol/exchange"
	"github.com/smallyu/go-ec-elgamal/pkg/ecelgamal"
)

// Active state machines keyed by session handle.
var sessions = make(map[string]ecelgamal.StateMachine)

func main() {
	c := make(chan struct{})

	fmt.Println("Go EC-ElGamal WASM Initialized")

	js.Global().Set("GoECElGamal", map[string]interface{}{
		"NewExchange": js.FuncOf(NewExchange),
		"Update":      js.FuncOf(Update),
		"Result":      js.FuncOf(Result),
	})

	<-c
}

// Integers cross the JS boundary as decimal or 0x-prefixed strings so that
// values beyond 2^53 survive.
type paramsInput struct {
	PartyID   string `json:"partyID"`
	PeerID    string `json:"peerID"`
	SessionID string `json:"sessionID"`
	Role      string `json:"role"`
	Curve     struct {
		P string `json:"p"`
		A string `json:"a"`
		B string `json:"b"`
	} `json:"curve"`
	Generator struct {
		X string `json:"x"`
		Y string `json:"y"`
	} `json:"generator"`
	Private string `json:"private"`
	Message string `json:"message"`
}

type messageDTO struct {
	From        string `json:"from"`
	To          string `json:"to,omitempty"`
	IsBroadcast bool   `json:"isBroadcast"`
	Data        string `json:"data"` // hex
	Type        string `json:"type"`
	Round       uint32 `json:"round"`
}

// NewExchange starts a session.
// Arguments:
// 0: JSON string of parameters
// Returns:
// JSON { sessionID, messages } or an "error: ..." string
func NewExchange(this js.Value, args []js.Value) interface{} {
	if len(args) != 1 {
		return "error: expected 1 argument (jsonParams)"
	}

	var input paramsInput
	if err := json.Unmarshal([]byte(args[0].String()), &input); err != nil {
		return fmt.Sprintf("error: invalid json: %v", err)
	}

	cfg, err := input.config()
	if err != nil {
		return fmt.Sprintf("error: %v", err)
	}

	sm, outMsgs, err := exchange.NewStateMachine(cfg)
	if err != nil {
		return fmt.Sprintf("error: failed to create state machine: %v", err)
	}

	handle := fmt.Sprintf("%s-%s", input.PartyID, input.SessionID)
	sessions[handle] = sm

	resp := map[string]interface{}{
		"sessionID": handle,
		"messages":  encodeMessages(outMsgs),
	}
	respBytes, _ := json.Marshal(resp)
	return string(respBytes)
}

func (in *paramsInput) config() (*exchange.Config, error) {
	var role exchange.Role
	switch in.Role {
	case "sender":
		role = exchange.Sender
	case "receiver":
		role = exchange.Receiver
	default:
		return nil, fmt.Errorf("unknown role %q", in.Role)
	}

	ints := map[string]*big.Int{}
	for name, s := range map[string]string{
		"curve.p": in.Curve.P, "curve.a": in.Curve.A, "curve.b": in.Curve.B,
		"generator.x": in.Generator.X, "generator.y": in.Generator.Y,
		"private": in.Private,
	} {
		v, ok := new(big.Int).SetString(s, 0)
		if !ok {
			return nil, fmt.Errorf("cannot parse %s %q", name, s)
		}
		ints[name] = v
	}

	cfg := &exchange.Config{
		PartyID:   &SimplePartyID{IDVal: in.PartyID},
		Peer:      &SimplePartyID{IDVal: in.PeerID},
		Role:      role,
		Curve:     curves.NewCurve(ints["curve.p"], ints["curve.a"], ints["curve.b"]),
		Generator: curves.NewPoint(ints["generator.x"], ints["generator.y"]),
		Private:   ints["private"],
	}
	if role == exchange.Sender {
		m, ok := new(big.Int).SetString(in.Message, 0)
		if !ok {
			return nil, fmt.Errorf("cannot parse message %q", in.Message)
		}
		cfg.Message = m
	}
	return cfg, nil
}

// Update processes an incoming message.
// Arguments:
// 0: Session ID (string)
// 1: JSON string of message
// Returns:
// JSON array of output messages
func Update(this js.Value, args []js.Value) interface{} {
	if len(args) != 2 {
		return "error: expected 2 arguments (sessionID, jsonMsg)"
	}

	sessionID := args[0].String()
	sm, ok := sessions[sessionID]
	if !ok {
		return "error: session not found"
	}

	var dto messageDTO
	if err := json.Unmarshal([]byte(args[1].String()), &dto); err != nil {
		return fmt.Sprintf("error: invalid message json: %v", err)
	}

	data, err := hex.DecodeString(dto.Data)
	if err != nil {
		return fmt.Sprintf("error: invalid hex data: %v", err)
	}

	msg := &exchange.ExchangeMessage{
		FromParty:  &SimplePartyID{IDVal: dto.From},
		IsBcast:    dto.IsBroadcast,
		Data:       data,
		TypeString: dto.Type,
		RoundNum:   dto.Round,
	}
	if dto.To != "" {
		msg.ToParty = &SimplePartyID{IDVal: dto.To}
	}

	next, outMsgs, err := sm.Update(msg)
	if err != nil {
		return fmt.Sprintf("error: update failed: %v", err)
	}
	sessions[sessionID] = next

	return marshalMessages(outMsgs)
}

// Result returns the session result once finished.
// Arguments:
// 0: Session ID (string)
// Returns:
// JSON string or null
func Result(this js.Value, args []js.Value) interface{} {
	if len(args) != 1 {
		return "error: expected 1 argument (sessionID)"
	}
	sm, ok := sessions[args[0].String()]
	if !ok {
		return "error: session not found"
	}

	res, ok := sm.Result().(*exchange.Result)
	if !ok || res == nil {
		return nil
	}

	out := map[string]interface{}{
		"public":     res.Public.String(),
		"peerPublic": res.PeerPublic.String(),
		"secret":     res.Secret.String(),
		"message":    res.Message.String(),
	}
	if res.Ciphertext != nil {
		out["ciphertext"] = res.Ciphertext.String()
	}
	resBytes, err := json.Marshal(out)
	if err != nil {
		return fmt.Sprintf("error: marshal result failed: %v", err)
	}
	return string(resBytes)
}

// Helpers

type SimplePartyID struct {
	IDVal string
}

func (p *SimplePartyID) ID() string      { return p.IDVal }
func (p *SimplePartyID) Moniker() string { return p.IDVal }

func encodeMessages(msgs []ecelgamal.Message) []messageDTO {
	out := make([]messageDTO, 0, len(msgs))
	for _, m := range msgs {
		dto := messageDTO{
			From:        m.From().ID(),
			IsBroadcast: m.IsBroadcast(),
			Data:        hex.EncodeToString(m.Payload()),
			Type:        m.Type(),
			Round:       m.RoundNumber(),
		}
		if to := m.To(); to != nil {
			dto.To = to.ID()
		}
		out = append(out, dto)
	}
	return out
}

func marshalMessages(msgs []ecelgamal.Message) string {
	b, _ := json.Marshal(encodeMessages(msgs))
	return string(b)
}
