package server

import (
	"github.com/uiwire/uiwire/protocol"
)

// ScopedStore is a view of a Store that prefixes every identity with a
// dot-joined scope path, mirroring the client-side scope containers.
// Sections built against different scopes can reuse local ids freely.
type ScopedStore struct {
	store *Store
	path  string
}

func (self *Store) Scope(name string) *ScopedStore {
	return &ScopedStore{
		store: self,
		path:  name,
	}
}

func (self *ScopedStore) Scope(name string) *ScopedStore {
	return &ScopedStore{
		store: self.store,
		path:  self.path + "." + name,
	}
}

func (self *ScopedStore) Identity(localId string) string {
	return self.path + "." + localId
}

func (self *ScopedStore) Set(element protocol.Element) {
	self.store.Set(withIdentity(element, self.Identity(element.ElementId())))
}

func (self *ScopedStore) Update(element protocol.Element) {
	self.store.Update(withIdentity(element, self.Identity(element.ElementId())))
}

func (self *ScopedStore) Element(localId string) (protocol.Element, bool) {
	return self.store.Element(self.Identity(localId))
}

func (self *ScopedStore) OnClick(localId string, handler ClickHandlerFunction) {
	self.store.OnClick(self.Identity(localId), handler)
}

func (self *ScopedStore) OnInput(localId string, handler InputHandlerFunction) {
	self.store.OnInput(self.Identity(localId), handler)
}

func (self *ScopedStore) OnCheckedChange(localId string, handler BoolHandlerFunction) {
	self.store.OnCheckedChange(self.Identity(localId), handler)
}

func (self *ScopedStore) OnValueChange(localId string, handler NumberHandlerFunction) {
	self.store.OnValueChange(self.Identity(localId), handler)
}

// withIdentity copies an element under a new identity.
func withIdentity(element protocol.Element, identity string) protocol.Element {
	switch el := element.(type) {
	case *protocol.Button:
		out := *el
		out.Id = identity
		return &out
	case *protocol.Text:
		out := *el
		out.Id = identity
		return &out
	case *protocol.Input:
		out := *el
		out.Id = identity
		return &out
	case *protocol.Checkbox:
		out := *el
		out.Id = identity
		return &out
	case *protocol.Slider:
		out := *el
		out.Id = identity
		return &out
	case *protocol.Radio:
		out := *el
		out.Id = identity
		return &out
	case *protocol.Number:
		out := *el
		out.Id = identity
		return &out
	}
	return element
}
