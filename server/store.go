package server

import (
	"sync"

	"github.com/golang/glog"

	"github.com/uiwire/uiwire/protocol"
	"github.com/uiwire/uiwire/uiwire"
)

const subscriptionBufferSize = 100

type ClickHandlerFunction func()

type InputHandlerFunction func(value string)

type BoolHandlerFunction func(value bool)

type NumberHandlerFunction func(value float64)

// Store owns the authoritative element state. Elements are keyed by
// identity; Update replaces the stored element and broadcasts it to
// every subscribed session. Interaction handlers are registered per
// identity and invoked when a client forwards an event.
type Store struct {
	mutex sync.Mutex

	elements map[string]protocol.Element
	// insertion order, so init snapshots are deterministic
	order []string

	clickHandlers  map[string]ClickHandlerFunction
	inputHandlers  map[string]InputHandlerFunction
	boolHandlers   map[string]BoolHandlerFunction
	numberHandlers map[string]NumberHandlerFunction

	subscriptions *uiwire.CallbackList[chan protocol.ServerMessage]
}

func NewStore() *Store {
	return &Store{
		elements:       map[string]protocol.Element{},
		clickHandlers:  map[string]ClickHandlerFunction{},
		inputHandlers:  map[string]InputHandlerFunction{},
		boolHandlers:   map[string]BoolHandlerFunction{},
		numberHandlers: map[string]NumberHandlerFunction{},
		subscriptions:  uiwire.NewCallbackList[chan protocol.ServerMessage](),
	}
}

// Set inserts or replaces an element without notifying sessions. Used
// while assembling the initial state.
func (self *Store) Set(element protocol.Element) {
	self.mutex.Lock()
	defer self.mutex.Unlock()
	self.set(element)
}

func (self *Store) set(element protocol.Element) {
	elementId := element.ElementId()
	if _, ok := self.elements[elementId]; !ok {
		self.order = append(self.order, elementId)
	}
	self.elements[elementId] = element
}

// Update replaces an element and broadcasts the change to every
// connected session. Sessions that cannot keep up drop the update;
// they resync from init on their next connect.
func (self *Store) Update(element protocol.Element) {
	self.mutex.Lock()
	self.set(element)
	self.mutex.Unlock()

	message := &protocol.Update{
		Id:      element.ElementId(),
		Element: element,
	}
	for _, subscription := range self.subscriptions.Get() {
		select {
		case subscription <- message:
		default:
			glog.Infof("[st]drop update %s (slow session)\n", element.ElementId())
		}
	}
}

// Elements snapshots the current state in insertion order.
func (self *Store) Elements() []protocol.Element {
	self.mutex.Lock()
	defer self.mutex.Unlock()
	elements := make([]protocol.Element, 0, len(self.order))
	for _, elementId := range self.order {
		elements = append(elements, self.elements[elementId])
	}
	return elements
}

func (self *Store) Element(elementId string) (protocol.Element, bool) {
	self.mutex.Lock()
	defer self.mutex.Unlock()
	element, ok := self.elements[elementId]
	return element, ok
}

func (self *Store) OnClick(elementId string, handler ClickHandlerFunction) {
	self.mutex.Lock()
	defer self.mutex.Unlock()
	self.clickHandlers[elementId] = handler
}

func (self *Store) OnInput(elementId string, handler InputHandlerFunction) {
	self.mutex.Lock()
	defer self.mutex.Unlock()
	self.inputHandlers[elementId] = handler
}

// OnCheckedChange registers a change handler for checkbox and radio
// elements.
func (self *Store) OnCheckedChange(elementId string, handler BoolHandlerFunction) {
	self.mutex.Lock()
	defer self.mutex.Unlock()
	self.boolHandlers[elementId] = handler
}

// OnValueChange registers a change handler for slider and number
// elements.
func (self *Store) OnValueChange(elementId string, handler NumberHandlerFunction) {
	self.mutex.Lock()
	defer self.mutex.Unlock()
	self.numberHandlers[elementId] = handler
}

// HandleClient routes one forwarded interaction. Handlers run outside
// the store lock. Events for unknown identities or with payloads that
// do not match the element kind are discarded.
func (self *Store) HandleClient(message protocol.ClientMessage) {
	switch m := message.(type) {
	case *protocol.ClickEvent:
		self.mutex.Lock()
		handler := self.clickHandlers[m.Id]
		self.mutex.Unlock()
		if handler != nil {
			handler()
		}
	case *protocol.InputEvent:
		self.mutex.Lock()
		handler := self.inputHandlers[m.Id]
		self.mutex.Unlock()
		if handler != nil {
			handler(m.Value)
		}
	case *protocol.ChangeEvent:
		self.handleChange(m.Id, m.Value)
	}
}

// handleChange coerces the committed value by the element kind the way
// the protocol defines it: bool for checkbox and radio, number for
// slider and number.
func (self *Store) handleChange(elementId string, value any) {
	self.mutex.Lock()
	element := self.elements[elementId]
	boolHandler := self.boolHandlers[elementId]
	numberHandler := self.numberHandlers[elementId]
	self.mutex.Unlock()

	if element == nil {
		glog.V(1).Infof("[st]change for unknown identity %s\n", elementId)
		return
	}

	switch element.(type) {
	case *protocol.Checkbox, *protocol.Radio:
		checked, ok := value.(bool)
		if !ok {
			glog.V(1).Infof("[st]change payload mismatch %s\n", elementId)
			return
		}
		if boolHandler != nil {
			boolHandler(checked)
		}
	case *protocol.Slider, *protocol.Number:
		number, ok := value.(float64)
		if !ok {
			glog.V(1).Infof("[st]change payload mismatch %s\n", elementId)
			return
		}
		if numberHandler != nil {
			numberHandler(number)
		}
	}
}

// Subscribe opens a buffered update stream for one session. The caller
// must Unsubscribe when the session ends.
func (self *Store) Subscribe() (int, chan protocol.ServerMessage) {
	subscription := make(chan protocol.ServerMessage, subscriptionBufferSize)
	subscriptionId := self.subscriptions.Add(subscription)
	return subscriptionId, subscription
}

func (self *Store) Unsubscribe(subscriptionId int) {
	self.subscriptions.Remove(subscriptionId)
}
