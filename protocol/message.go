package protocol

import (
	"encoding/json"
	"errors"
	"fmt"
)

// A frame that cannot be decoded. Logged by the receiver, never fatal to
// the channel.
var ErrMalformedMessage = errors.New("malformed message")

// A well-formed element whose kind is outside the known vocabulary.
// Receivers ignore these.
var ErrUnknownKind = errors.New("unknown element kind")

const (
	TypeInit   = "init"
	TypeUpdate = "update"
	TypeClick  = "click"
	TypeInput  = "input"
	TypeChange = "change"
)

// ServerMessage is an authoritative state push: the full snapshot sent on
// connect, or a single element update.
type ServerMessage interface {
	serverMessage()
}

// Init carries the complete element snapshot. Each element's own id is
// its identity.
type Init struct {
	Elements []Element
}

// Update carries one element. The top-level id is authoritative for
// routing; the embedded element id is informational.
type Update struct {
	Id      string
	Element Element
}

func (self *Init) serverMessage()   {}
func (self *Update) serverMessage() {}

// ClientMessage is a user interaction forwarded upstream.
type ClientMessage interface {
	clientMessage()
}

// ClickEvent has no payload beyond the identity.
type ClickEvent struct {
	Id string `json:"id"`
}

// InputEvent carries the raw value on every edit.
type InputEvent struct {
	Id    string `json:"id"`
	Value string `json:"value"`
}

// ChangeEvent carries a committed value. The payload type follows the
// widget kind: bool for checkbox and radio, number for slider and
// number, string for input commits.
type ChangeEvent struct {
	Id    string `json:"id"`
	Value any    `json:"value"`
}

func (self *ClickEvent) clientMessage()  {}
func (self *InputEvent) clientMessage()  {}
func (self *ChangeEvent) clientMessage() {}

func (self *Init) MarshalJSON() ([]byte, error) {
	elements := self.Elements
	if elements == nil {
		elements = []Element{}
	}
	return json.Marshal(struct {
		Type     string    `json:"type"`
		Elements []Element `json:"elements"`
	}{TypeInit, elements})
}

func (self *Update) MarshalJSON() ([]byte, error) {
	return json.Marshal(struct {
		Type    string  `json:"type"`
		Id      string  `json:"id"`
		Element Element `json:"element"`
	}{TypeUpdate, self.Id, self.Element})
}

func (self *ClickEvent) MarshalJSON() ([]byte, error) {
	return json.Marshal(struct {
		Type string `json:"type"`
		Id   string `json:"id"`
	}{TypeClick, self.Id})
}

func (self *InputEvent) MarshalJSON() ([]byte, error) {
	return json.Marshal(struct {
		Type  string `json:"type"`
		Id    string `json:"id"`
		Value string `json:"value"`
	}{TypeInput, self.Id, self.Value})
}

func (self *ChangeEvent) MarshalJSON() ([]byte, error) {
	return json.Marshal(struct {
		Type  string `json:"type"`
		Id    string `json:"id"`
		Value any    `json:"value"`
	}{TypeChange, self.Id, self.Value})
}

func MarshalServerMessage(message ServerMessage) ([]byte, error) {
	return json.Marshal(message)
}

func MarshalClientMessage(message ClientMessage) ([]byte, error) {
	return json.Marshal(message)
}

// UnmarshalServerMessage decodes one inbound frame. Unknown-kind entries
// inside an init are dropped; an update for an unknown kind returns
// ErrUnknownKind.
func UnmarshalServerMessage(data []byte) (ServerMessage, error) {
	var probe struct {
		Type     string            `json:"type"`
		Id       string            `json:"id"`
		Elements []json.RawMessage `json:"elements"`
		Element  json.RawMessage   `json:"element"`
	}
	if err := json.Unmarshal(data, &probe); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformedMessage, err)
	}

	switch probe.Type {
	case TypeInit:
		elements := []Element{}
		for _, raw := range probe.Elements {
			element, err := UnmarshalElement(raw)
			if err != nil {
				if errors.Is(err, ErrUnknownKind) {
					continue
				}
				return nil, err
			}
			elements = append(elements, element)
		}
		return &Init{Elements: elements}, nil
	case TypeUpdate:
		if probe.Element == nil {
			return nil, fmt.Errorf("%w: update without element", ErrMalformedMessage)
		}
		element, err := UnmarshalElement(probe.Element)
		if err != nil {
			return nil, err
		}
		return &Update{Id: probe.Id, Element: element}, nil
	default:
		return nil, fmt.Errorf("%w: type %q", ErrMalformedMessage, probe.Type)
	}
}

// UnmarshalClientMessage decodes one interaction frame on the server side.
func UnmarshalClientMessage(data []byte) (ClientMessage, error) {
	var probe struct {
		Type  string `json:"type"`
		Id    string `json:"id"`
		Value any    `json:"value"`
	}
	if err := json.Unmarshal(data, &probe); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformedMessage, err)
	}

	switch probe.Type {
	case TypeClick:
		return &ClickEvent{Id: probe.Id}, nil
	case TypeInput:
		value, ok := probe.Value.(string)
		if !ok {
			return nil, fmt.Errorf("%w: input value must be a string", ErrMalformedMessage)
		}
		return &InputEvent{Id: probe.Id, Value: value}, nil
	case TypeChange:
		return &ChangeEvent{Id: probe.Id, Value: probe.Value}, nil
	default:
		return nil, fmt.Errorf("%w: type %q", ErrMalformedMessage, probe.Type)
	}
}
