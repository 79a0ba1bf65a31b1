// Package protocol defines the JSON frames pushed to spectators.
package protocol

import (
	"encoding/json"
	"fmt"
)

// Envelope wraps every frame on the spectator socket. Seq increases by
// one per frame so a client can spot gaps after a reconnect.
type Envelope struct {
	Type    string          `json:"type"`
	Seq     uint64          `json:"seq"`
	Payload json.RawMessage `json:"payload,omitempty"`
}

// NewEnvelope encodes payload under typ.
func NewEnvelope(typ string, seq uint64, payload interface{}) (Envelope, error) {
	data, err := json.Marshal(payload)
	if err != nil {
		return Envelope{}, fmt.Errorf("encode %s payload: %w", typ, err)
	}
	return Envelope{Type: typ, Seq: seq, Payload: data}, nil
}

// Decode unmarshals the payload into v.
func (e Envelope) Decode(v interface{}) error {
	if len(e.Payload) == 0 {
		return fmt.Errorf("%s frame has no payload", e.Type)
	}
	return json.Unmarshal(e.Payload, v)
}
