package server

import (
	"context"
	"net/http"
	"time"

	"github.com/golang/glog"
	"github.com/gorilla/websocket"

	"github.com/uiwire/uiwire/protocol"
	"github.com/uiwire/uiwire/uiwire"
)

type HandlerSettings struct {
	WriteTimeout time.Duration
}

func DefaultHandlerSettings() *HandlerSettings {
	return &HandlerSettings{
		WriteTimeout: 5 * time.Second,
	}
}

// Handler upgrades /ws requests and runs one sync session per
// connection: init snapshot first, then broadcast updates downstream
// and forwarded interactions upstream until either side closes.
type Handler struct {
	store    *Store
	settings *HandlerSettings
	upgrader websocket.Upgrader
}

func NewHandler(store *Store) *Handler {
	return NewHandlerWithSettings(store, DefaultHandlerSettings())
}

func NewHandlerWithSettings(store *Store, settings *HandlerSettings) *Handler {
	return &Handler{
		store:    store,
		settings: settings,
		upgrader: websocket.Upgrader{
			// the page and the socket are served from the same origin
			CheckOrigin: func(r *http.Request) bool {
				return true
			},
		},
	}
}

func (self *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	ws, err := self.upgrader.Upgrade(w, r, nil)
	if err != nil {
		glog.Infof("[s]upgrade error = %s\n", err)
		return
	}
	defer ws.Close()

	sessionId := uiwire.NewId()
	glog.V(2).Infof("[s]open %s\n", sessionId)

	handleCtx, handleCancel := context.WithCancel(r.Context())
	defer handleCancel()

	// the session state is reconstructed entirely from this init
	init := &protocol.Init{
		Elements: self.store.Elements(),
	}
	if err := self.write(ws, init); err != nil {
		glog.Infof("[s]init error %s = %s\n", sessionId, err)
		return
	}

	subscriptionId, updates := self.store.Subscribe()
	defer self.store.Unsubscribe(subscriptionId)

	go func() {
		defer func() {
			handleCancel()
			ws.Close()
		}()

		for {
			select {
			case <-handleCtx.Done():
				return
			case message := <-updates:
				if err := self.write(ws, message); err != nil {
					glog.V(2).Infof("[s]%s-> error = %s\n", sessionId, err)
					return
				}
			}
		}
	}()

	for {
		messageType, data, err := ws.ReadMessage()
		if err != nil {
			glog.V(2).Infof("[s]%s<- error = %s\n", sessionId, err)
			return
		}
		if messageType != websocket.TextMessage {
			continue
		}

		message, err := protocol.UnmarshalClientMessage(data)
		if err != nil {
			// malformed interactions are skipped, the session stays up
			glog.Infof("[s]malformed %s<- = %s\n", sessionId, err)
			continue
		}
		self.store.HandleClient(message)
	}
}

func (self *Handler) write(ws *websocket.Conn, message protocol.ServerMessage) error {
	data, err := protocol.MarshalServerMessage(message)
	if err != nil {
		return err
	}
	ws.SetWriteDeadline(time.Now().Add(self.settings.WriteTimeout))
	return ws.WriteMessage(websocket.TextMessage, data)
}
