package uiwire

import (
	"strings"
)

// Scope is a named grouping node in the render tree. Scopes nest, and
// every named ancestor contributes one segment to the identity of any
// widget inside it. A scope with an empty name is a transparent
// grouping container and contributes nothing.
//
// Scopes do not move after placement, so an identity resolved at attach
// time is stable for the widget's lifetime.
type Scope struct {
	parent *Scope
	name   string
}

func NewScope(name string) *Scope {
	return &Scope{
		name: name,
	}
}

// Child creates a nested scope.
func (self *Scope) Child(name string) *Scope {
	return &Scope{
		parent: self,
		name:   name,
	}
}

func (self *Scope) Name() string {
	return self.name
}

// Path is the dot-joined chain of named ancestors, root first,
// including this scope. Empty when no ancestor is named.
func (self *Scope) Path() string {
	segments := []string{}
	for scope := self; scope != nil; scope = scope.parent {
		if scope.name != "" {
			segments = append(segments, scope.name)
		}
	}
	// collected widget-to-root, reverse to root-to-widget
	for i, j := 0, len(segments)-1; i < j; i, j = i+1, j-1 {
		segments[i], segments[j] = segments[j], segments[i]
	}
	return strings.Join(segments, ".")
}

// ResolveIdentity computes the globally unique identity for a widget
// with the given local id under a scope. A nil or fully unnamed scope
// chain yields the bare local id.
func ResolveIdentity(scope *Scope, localId string) string {
	if scope == nil {
		return localId
	}
	path := scope.Path()
	if path == "" {
		return localId
	}
	return path + "." + localId
}
