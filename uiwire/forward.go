package uiwire

import (
	"github.com/uiwire/uiwire/protocol"
)

// SendFunction submits one outbound message. Whether it is actually
// transmitted depends on the connection state; the forwarder never
// buffers or coalesces.
type SendFunction func(message protocol.ClientMessage)

// Forwarder turns local widget interactions into outbound protocol
// messages tagged with the widget's resolved identity. Every event
// produces exactly one message, in event order.
type Forwarder struct {
	send SendFunction
}

func NewForwarder(send SendFunction) *Forwarder {
	return &Forwarder{
		send: send,
	}
}

// Hook registers one callback per interaction capability the adapter
// exposes. Runs once, at attach time.
func (self *Forwarder) Hook(identity string, adapter Adapter) {
	if source, ok := adapter.(ClickSource); ok {
		source.OnClick(func() {
			self.send(&protocol.ClickEvent{Id: identity})
		})
	}
	if source, ok := adapter.(InputSource); ok {
		source.OnInput(func(value string) {
			self.send(&protocol.InputEvent{Id: identity, Value: value})
		})
	}
	if source, ok := adapter.(ChangeSource); ok {
		source.OnChange(func(value any) {
			self.send(&protocol.ChangeEvent{Id: identity, Value: value})
		})
	}
}
