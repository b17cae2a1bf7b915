package uiwire

import (
	"github.com/uiwire/uiwire/protocol"
)

// Adapter is the rendering side of one widget. The sync layer never
// touches visuals; it verifies the declared kind and hands absolute
// state to the kind-specific setter.
//
// Setters must be idempotent: applying the same state twice leaves the
// adapter in the same visible state as applying it once.
type Adapter interface {
	ElementKind() protocol.Kind
}

// Setter for button labels and read-only text.
type TextSetter interface {
	SetText(text string)
}

// Setter for text entry contents.
type ValueSetter interface {
	SetValue(value string)
}

// Setter for checkbox state.
type CheckSetter interface {
	SetChecked(checked bool)
}

// Setter for the full slider range state.
type SliderSetter interface {
	SetSlider(state protocol.Slider)
}

// Setter for radio state including group membership.
type RadioSetter interface {
	SetRadio(state protocol.Radio)
}

// Setter for numeric entry state including optional bounds.
type NumberSetter interface {
	SetNumber(state protocol.Number)
}

// Interaction source capabilities. An adapter exposes the ones its
// widget kind can emit; the forwarder registers one callback per
// exposed capability at attach time. This replaces loose event-name
// coupling with a typed contract.

// ClickSource emits activation events with no payload.
type ClickSource interface {
	OnClick(callback func())
}

// InputSource emits the raw value on every edit.
type InputSource interface {
	OnInput(callback func(value string))
}

// ChangeSource emits the committed value, e.g. on release or blur.
// The payload type follows the widget kind: bool, float64 or string.
type ChangeSource interface {
	OnChange(callback func(value any))
}
