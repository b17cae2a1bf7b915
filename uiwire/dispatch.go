package uiwire

import (
	"github.com/golang/glog"

	"github.com/uiwire/uiwire/protocol"
)

// Dispatcher routes inbound server messages to adapters. An init is a
// sequence of individual applies keyed by each element's own id; an
// update is one apply keyed by the top-level id.
//
// Misses and kind mismatches are benign races between the server push
// and the local view state. They are logged and discarded, never
// raised.
type Dispatcher struct {
	registry *Registry
}

func NewDispatcher(registry *Registry) *Dispatcher {
	return &Dispatcher{
		registry: registry,
	}
}

func (self *Dispatcher) Handle(message protocol.ServerMessage) {
	switch m := message.(type) {
	case *protocol.Init:
		for _, element := range m.Elements {
			self.apply(element.ElementId(), element)
		}
	case *protocol.Update:
		self.apply(m.Id, m.Element)
	}
}

func (self *Dispatcher) apply(identity string, element protocol.Element) {
	adapter, ok := self.registry.Lookup(identity)
	if !ok {
		glog.V(1).Infof("[d]unknown identity %s\n", identity)
		return
	}
	if element.ElementKind() != adapter.ElementKind() {
		glog.V(1).Infof("[d]kind mismatch %s %s!=%s\n", identity, element.ElementKind(), adapter.ElementKind())
		return
	}

	// setters take absolute state so a repeated apply is a no-op
	switch el := element.(type) {
	case *protocol.Button:
		if setter, ok := adapter.(TextSetter); ok {
			setter.SetText(el.Text)
		}
	case *protocol.Text:
		if setter, ok := adapter.(TextSetter); ok {
			setter.SetText(el.Text)
		}
	case *protocol.Input:
		if setter, ok := adapter.(ValueSetter); ok {
			setter.SetValue(el.Value)
		}
	case *protocol.Checkbox:
		if setter, ok := adapter.(CheckSetter); ok {
			setter.SetChecked(el.Checked)
		}
	case *protocol.Slider:
		if setter, ok := adapter.(SliderSetter); ok {
			setter.SetSlider(*el)
		}
	case *protocol.Radio:
		if setter, ok := adapter.(RadioSetter); ok {
			setter.SetRadio(*el)
		}
	case *protocol.Number:
		if setter, ok := adapter.(NumberSetter); ok {
			setter.SetNumber(*el)
		}
	}
}
