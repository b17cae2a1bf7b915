package uiwire

import (
	"sort"
	"sync"

	"github.com/golang/glog"

	"golang.org/x/exp/maps"
)

// Registry maps resolved identities to live adapters. All reads and
// writes of widget state go through here.
//
// Registration is last-write-wins. Replacing a live adapter is valid
// (e.g. a re-attached view) but logs a diagnostic so duplicate-id
// authoring errors stay visible.
type Registry struct {
	mutex    sync.Mutex
	adapters map[string]Adapter
}

func NewRegistry() *Registry {
	return &Registry{
		adapters: map[string]Adapter{},
	}
}

func (self *Registry) Register(identity string, adapter Adapter) {
	self.mutex.Lock()
	defer self.mutex.Unlock()
	if previous, ok := self.adapters[identity]; ok {
		glog.Warningf("[r]replace %s %s->%s\n", identity, previous.ElementKind(), adapter.ElementKind())
	}
	self.adapters[identity] = adapter
}

// Lookup misses are non-fatal. The caller logs and discards.
func (self *Registry) Lookup(identity string) (Adapter, bool) {
	self.mutex.Lock()
	defer self.mutex.Unlock()
	adapter, ok := self.adapters[identity]
	return adapter, ok
}

func (self *Registry) Identities() []string {
	self.mutex.Lock()
	defer self.mutex.Unlock()
	identities := maps.Keys(self.adapters)
	sort.Strings(identities)
	return identities
}
