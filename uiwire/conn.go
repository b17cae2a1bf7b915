package uiwire

import (
	"context"
	"errors"
	"net/http"
	"sync"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/golang/glog"
	"github.com/gorilla/websocket"

	"github.com/uiwire/uiwire/protocol"
)

// ConnState is the connection lifecycle state. Transitions are
// connecting -> open on handshake, open -> closed on any channel error
// or clean close, and closed -> connecting after a fixed delay,
// unconditionally. There is no backoff growth and no retry cap;
// reconnection runs until the context is cancelled.
type ConnState string

const (
	ConnStateConnecting ConnState = "connecting"
	ConnStateOpen       ConnState = "open"
	ConnStateClosed     ConnState = "closed"
)

type StateFunction func(state ConnState)

type ReceiveFunction func(message protocol.ServerMessage)

type ConnSettings struct {
	WsHandshakeTimeout time.Duration
	ReconnectTimeout   time.Duration
	WriteTimeout       time.Duration
}

func DefaultConnSettings() *ConnSettings {
	return &ConnSettings{
		WsHandshakeTimeout: 2 * time.Second,
		ReconnectTimeout:   2000 * time.Millisecond,
		WriteTimeout:       5 * time.Second,
	}
}

// ClientAuth optionally identifies the client to the server. The token
// is sent as a bearer header on dial and parsed unverified for a
// client_id claim used to label log lines.
type ClientAuth struct {
	ByJwt string
}

func (self *ClientAuth) ClientId() (Id, error) {
	parser := jwt.NewParser()
	token, _, err := parser.ParseUnverified(self.ByJwt, jwt.MapClaims{})
	if err != nil {
		return Id{}, err
	}
	claims := token.Claims.(jwt.MapClaims)
	if clientIdStr, ok := claims["client_id"].(string); ok {
		return ParseId(clientIdStr)
	}
	return Id{}, errors.New("missing client_id claim")
}

// Conn owns the duplex channel lifecycle. It dials, pumps inbound
// frames to the receive function in strict arrival order, and on any
// loss schedules a reconnect after the fixed delay.
type Conn struct {
	ctx    context.Context
	cancel context.CancelFunc

	url     string
	auth    *ClientAuth
	receive ReceiveFunction

	settings *ConnSettings

	sessionId Id

	stateMutex sync.Mutex
	state      ConnState
	ws         *websocket.Conn

	writeMutex sync.Mutex

	stateCallbacks *CallbackList[StateFunction]
}

func NewConn(
	ctx context.Context,
	url string,
	auth *ClientAuth,
	receive ReceiveFunction,
	settings *ConnSettings,
) *Conn {
	cancelCtx, cancel := context.WithCancel(ctx)

	sessionId := NewId()
	if auth != nil {
		if clientId, err := auth.ClientId(); err == nil {
			sessionId = clientId
		}
	}

	conn := &Conn{
		ctx:            cancelCtx,
		cancel:         cancel,
		url:            url,
		auth:           auth,
		receive:        receive,
		settings:       settings,
		sessionId:      sessionId,
		state:          ConnStateConnecting,
		stateCallbacks: NewCallbackList[StateFunction](),
	}
	go conn.run()
	return conn
}

func (self *Conn) run() {
	defer func() {
		self.cancel()
		self.setState(ConnStateClosed, nil)
	}()

	header := http.Header{}
	if self.auth != nil {
		header.Set("Authorization", "Bearer "+self.auth.ByJwt)
	}

	for {
		self.setState(ConnStateConnecting, nil)
		dialer := &websocket.Dialer{
			HandshakeTimeout: self.settings.WsHandshakeTimeout,
		}
		ws, _, err := dialer.DialContext(self.ctx, self.url, header)
		if err != nil {
			glog.Infof("[c]connect error %s = %s\n", self.sessionId, err)
			// the fixed delay starts when the attempt fails
			self.setState(ConnStateClosed, nil)
			reconnect := NewReconnect(self.settings.ReconnectTimeout)
			select {
			case <-self.ctx.Done():
				return
			case <-reconnect.After():
				continue
			}
		}

		self.setState(ConnStateOpen, ws)
		glog.V(2).Infof("[c]open %s\n", self.sessionId)

		self.pump(ws)

		ws.Close()

		// the fixed delay starts when the channel is lost
		self.setState(ConnStateClosed, nil)
		reconnect := NewReconnect(self.settings.ReconnectTimeout)
		select {
		case <-self.ctx.Done():
			return
		case <-reconnect.After():
		}
	}
}

// pump reads frames until the channel is lost. Frames decode and
// dispatch on this single goroutine, so inbound messages are handled
// strictly in arrival order.
func (self *Conn) pump(ws *websocket.Conn) {
	for {
		select {
		case <-self.ctx.Done():
			return
		default:
		}

		messageType, data, err := ws.ReadMessage()
		if err != nil {
			glog.Infof("[cr]%s<- error = %s\n", self.sessionId, err)
			return
		}

		switch messageType {
		case websocket.TextMessage:
			message, err := protocol.UnmarshalServerMessage(data)
			if err != nil {
				if errors.Is(err, protocol.ErrUnknownKind) {
					glog.V(2).Infof("[cr]ignore %s<- = %s\n", self.sessionId, err)
				} else {
					// malformed frames are logged, the channel stays open
					glog.Infof("[cr]malformed %s<- = %s\n", self.sessionId, err)
				}
				continue
			}
			self.receive(message)
		default:
			glog.V(2).Infof("[cr]other=%d %s<-\n", messageType, self.sessionId)
		}
	}
}

// Send serializes and transmits only while open. Otherwise it drops
// the message silently; there is no outbound queue and no replay on
// reconnect. Calls are serialized, so frames go out in call order.
func (self *Conn) Send(message protocol.ClientMessage) {
	self.stateMutex.Lock()
	ws := self.ws
	open := self.state == ConnStateOpen
	self.stateMutex.Unlock()

	if !open {
		glog.V(2).Infof("[cs]drop %s->\n", self.sessionId)
		return
	}

	data, err := protocol.MarshalClientMessage(message)
	if err != nil {
		glog.Infof("[cs]marshal error %s = %s\n", self.sessionId, err)
		return
	}

	self.writeMutex.Lock()
	defer self.writeMutex.Unlock()
	ws.SetWriteDeadline(time.Now().Add(self.settings.WriteTimeout))
	if err := ws.WriteMessage(websocket.TextMessage, data); err != nil {
		// the read pump sees the same failure and drives the reconnect
		glog.Infof("[cs]%s-> error = %s\n", self.sessionId, err)
		ws.Close()
		return
	}
	glog.V(2).Infof("[cs]%s->\n", self.sessionId)
}

func (self *Conn) State() ConnState {
	self.stateMutex.Lock()
	defer self.stateMutex.Unlock()
	return self.state
}

// AddStateCallback registers a connection-status observer, e.g. for a
// "disconnected" indicator. The callback fires on every transition.
func (self *Conn) AddStateCallback(callback StateFunction) int {
	return self.stateCallbacks.Add(callback)
}

func (self *Conn) RemoveStateCallback(callbackId int) {
	self.stateCallbacks.Remove(callbackId)
}

func (self *Conn) setState(state ConnState, ws *websocket.Conn) {
	self.stateMutex.Lock()
	changed := self.state != state
	self.state = state
	self.ws = ws
	self.stateMutex.Unlock()

	if changed {
		for _, callback := range self.stateCallbacks.Get() {
			callback(state)
		}
	}
}

// Close cancels the lifecycle: any live channel is torn down and no
// further reconnect is attempted.
func (self *Conn) Close() {
	self.cancel()

	self.stateMutex.Lock()
	ws := self.ws
	self.stateMutex.Unlock()
	if ws != nil {
		// unblock the read pump
		ws.Close()
	}
}
