// Copyright (c) 2025 The sarco-ledger developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package tx

import (
	"encoding/json"

	"github.com/sarcophagus-org/sarco-ledger/sarco"
)

// Payload is the typed body of an event emitted by a builtin contract.
type Payload interface {
	EventName() string
}

// Event is a log emitted by a builtin contract.
type Event struct {
	Address sarco.Address // the emitting contract
	Payload Payload
}

// Name returns the event name.
func (e *Event) Name() string {
	return e.Payload.EventName()
}

// Topic returns the signature hash of the event name.
func (e *Event) Topic() sarco.Bytes32 {
	return sarco.Keccak256([]byte(e.Name()))
}

// MarshalJSON implements json.Marshaler.
func (e *Event) MarshalJSON() ([]byte, error) {
	return json.Marshal(&struct {
		Address sarco.Address `json:"address"`
		Name    string        `json:"name"`
		Data    Payload       `json:"data"`
	}{e.Address, e.Name(), e.Payload})
}

// Events slice of events.
type Events []*Event

// Filter returns events named name.
func (es Events) Filter(name string) Events {
	var out Events
	for _, e := range es {
		if e.Name() == name {
			out = append(out, e)
		}
	}
	return out
}
