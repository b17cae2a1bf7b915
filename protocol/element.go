package protocol

import (
	"encoding/json"
	"fmt"
)

// Kind tags the seven element variants on the wire.
type Kind string

const (
	KindButton   Kind = "button"
	KindText     Kind = "text"
	KindInput    Kind = "input"
	KindCheckbox Kind = "checkbox"
	KindSlider   Kind = "slider"
	KindRadio    Kind = "radio"
	KindNumber   Kind = "number"
)

// Element is the sealed union over the seven element kinds.
// Dispatch sites type switch over the concrete types, which enumerate
// the full wire vocabulary.
type Element interface {
	ElementId() string
	ElementKind() Kind
	element()
}

// A clickable button. Carries only its label text.
type Button struct {
	Id   string `json:"id"`
	Text string `json:"text"`
}

// Read-only text.
type Text struct {
	Id   string `json:"id"`
	Text string `json:"text"`
}

// Free-form text entry.
type Input struct {
	Id    string `json:"id"`
	Value string `json:"value"`
}

type Checkbox struct {
	Id      string `json:"id"`
	Checked bool   `json:"checked"`
}

// A bounded range control. Min and max are required on the wire,
// step is optional.
type Slider struct {
	Id    string   `json:"id"`
	Value float64  `json:"value"`
	Min   float64  `json:"min"`
	Max   float64  `json:"max"`
	Step  *float64 `json:"step"`
}

// One member of a mutually exclusive group. Group exclusivity is a
// rendering concern; the protocol carries each radio independently.
type Radio struct {
	Id      string `json:"id"`
	Name    string `json:"name"`
	Value   string `json:"value"`
	Checked bool   `json:"checked"`
}

// Numeric entry with optional bounds.
type Number struct {
	Id    string   `json:"id"`
	Value float64  `json:"value"`
	Min   *float64 `json:"min"`
	Max   *float64 `json:"max"`
	Step  *float64 `json:"step"`
}

func (self *Button) ElementId() string   { return self.Id }
func (self *Text) ElementId() string     { return self.Id }
func (self *Input) ElementId() string    { return self.Id }
func (self *Checkbox) ElementId() string { return self.Id }
func (self *Slider) ElementId() string   { return self.Id }
func (self *Radio) ElementId() string    { return self.Id }
func (self *Number) ElementId() string   { return self.Id }

func (self *Button) ElementKind() Kind   { return KindButton }
func (self *Text) ElementKind() Kind     { return KindText }
func (self *Input) ElementKind() Kind    { return KindInput }
func (self *Checkbox) ElementKind() Kind { return KindCheckbox }
func (self *Slider) ElementKind() Kind   { return KindSlider }
func (self *Radio) ElementKind() Kind    { return KindRadio }
func (self *Number) ElementKind() Kind   { return KindNumber }

func (self *Button) element()   {}
func (self *Text) element()     {}
func (self *Input) element()    {}
func (self *Checkbox) element() {}
func (self *Slider) element()   {}
func (self *Radio) element()    {}
func (self *Number) element()   {}

func (self *Button) MarshalJSON() ([]byte, error) {
	type alias Button
	return json.Marshal(struct {
		Kind Kind `json:"kind"`
		*alias
	}{KindButton, (*alias)(self)})
}

func (self *Text) MarshalJSON() ([]byte, error) {
	type alias Text
	return json.Marshal(struct {
		Kind Kind `json:"kind"`
		*alias
	}{KindText, (*alias)(self)})
}

func (self *Input) MarshalJSON() ([]byte, error) {
	type alias Input
	return json.Marshal(struct {
		Kind Kind `json:"kind"`
		*alias
	}{KindInput, (*alias)(self)})
}

func (self *Checkbox) MarshalJSON() ([]byte, error) {
	type alias Checkbox
	return json.Marshal(struct {
		Kind Kind `json:"kind"`
		*alias
	}{KindCheckbox, (*alias)(self)})
}

func (self *Slider) MarshalJSON() ([]byte, error) {
	type alias Slider
	return json.Marshal(struct {
		Kind Kind `json:"kind"`
		*alias
	}{KindSlider, (*alias)(self)})
}

func (self *Radio) MarshalJSON() ([]byte, error) {
	type alias Radio
	return json.Marshal(struct {
		Kind Kind `json:"kind"`
		*alias
	}{KindRadio, (*alias)(self)})
}

func (self *Number) MarshalJSON() ([]byte, error) {
	type alias Number
	return json.Marshal(struct {
		Kind Kind `json:"kind"`
		*alias
	}{KindNumber, (*alias)(self)})
}

// UnmarshalElement decodes one tagged element. A syntactically valid
// object with a kind outside the seven known variants returns
// ErrUnknownKind so callers can skip it without treating the frame as
// malformed.
func UnmarshalElement(data []byte) (Element, error) {
	var probe struct {
		Kind Kind `json:"kind"`
	}
	if err := json.Unmarshal(data, &probe); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformedMessage, err)
	}

	var element Element
	switch probe.Kind {
	case KindButton:
		element = &Button{}
	case KindText:
		element = &Text{}
	case KindInput:
		element = &Input{}
	case KindCheckbox:
		element = &Checkbox{}
	case KindSlider:
		element = &Slider{}
	case KindRadio:
		element = &Radio{}
	case KindNumber:
		element = &Number{}
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownKind, probe.Kind)
	}

	if err := json.Unmarshal(data, element); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformedMessage, err)
	}
	return element, nil
}
