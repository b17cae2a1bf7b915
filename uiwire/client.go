package uiwire

import (
	"context"
)

// Client is the explicit context object the host application constructs
// and passes around. It wires the registry, dispatcher, forwarder and
// connection together; there is no package-level singleton.
//
// Widget state is not persisted; after any reconnect it is rebuilt
// entirely from the server's next init.
type Client struct {
	ctx    context.Context
	cancel context.CancelFunc

	registry   *Registry
	dispatcher *Dispatcher
	forwarder  *Forwarder
	conn       *Conn
}

func NewClientWithDefaults(ctx context.Context, url string) *Client {
	return NewClient(ctx, url, nil, DefaultConnSettings())
}

func NewClient(
	ctx context.Context,
	url string,
	auth *ClientAuth,
	settings *ConnSettings,
) *Client {
	cancelCtx, cancel := context.WithCancel(ctx)

	registry := NewRegistry()
	dispatcher := NewDispatcher(registry)
	conn := NewConn(cancelCtx, url, auth, dispatcher.Handle, settings)
	forwarder := NewForwarder(conn.Send)

	return &Client{
		ctx:        cancelCtx,
		cancel:     cancel,
		registry:   registry,
		dispatcher: dispatcher,
		forwarder:  forwarder,
		conn:       conn,
	}
}

// Attach resolves the widget's identity from its scope, registers the
// adapter, and hooks its interaction sources. Returns the resolved
// identity. Resolution runs exactly once per widget.
func (self *Client) Attach(scope *Scope, localId string, adapter Adapter) string {
	identity := ResolveIdentity(scope, localId)
	self.registry.Register(identity, adapter)
	self.forwarder.Hook(identity, adapter)
	return identity
}

func (self *Client) Registry() *Registry {
	return self.registry
}

func (self *Client) ConnState() ConnState {
	return self.conn.State()
}

func (self *Client) AddStateCallback(callback StateFunction) int {
	return self.conn.AddStateCallback(callback)
}

func (self *Client) RemoveStateCallback(callbackId int) {
	self.conn.RemoveStateCallback(callbackId)
}

// Close tears down the channel and stops dispatch; frames arriving
// after Close never reach the adapters.
func (self *Client) Close() {
	self.cancel()
	self.conn.Close()
}
