package uiwire

import (
	"context"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/go-playground/assert/v2"
	"github.com/gorilla/websocket"

	"github.com/uiwire/uiwire/protocol"
)

type syncTextAdapter struct {
	mutex sync.Mutex
	text  string
}

func (self *syncTextAdapter) ElementKind() protocol.Kind {
	return protocol.KindText
}

func (self *syncTextAdapter) SetText(text string) {
	self.mutex.Lock()
	defer self.mutex.Unlock()
	self.text = text
}

func (self *syncTextAdapter) Text() string {
	self.mutex.Lock()
	defer self.mutex.Unlock()
	return self.text
}

func TestClientAttach(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// nothing listens here; attach does not depend on the channel
	client := NewClient(ctx, "ws://127.0.0.1:1", nil, testConnSettings())
	defer client.Close()

	form := NewScope("form")
	status := &testTextAdapter{}
	identity := client.Attach(form, "status", status)
	assert.Equal(t, identity, "form.status")

	adapter, ok := client.Registry().Lookup("form.status")
	assert.Equal(t, ok, true)
	assert.Equal(t, adapter == Adapter(status), true)

	bare := &testTextAdapter{}
	assert.Equal(t, client.Attach(nil, "status", bare), "status")
}

func TestClientCloseStopsDispatch(t *testing.T) {
	release := make(chan struct{})
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ws, err := testUpgrader.Upgrade(w, r, nil)
		if err != nil {
			return
		}
		defer ws.Close()

		before := `{"type":"update","id":"status","element":{"kind":"text","id":"status","text":"before"}}`
		if err := ws.WriteMessage(websocket.TextMessage, []byte(before)); err != nil {
			return
		}

		<-release
		after := `{"type":"update","id":"status","element":{"kind":"text","id":"status","text":"after"}}`
		ws.WriteMessage(websocket.TextMessage, []byte(after))
		for {
			if _, _, err := ws.ReadMessage(); err != nil {
				return
			}
		}
	}))
	defer server.Close()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	client := NewClient(ctx, testWsUrl(server), nil, testConnSettings())

	status := &syncTextAdapter{}
	client.Attach(nil, "status", status)

	deadline := time.Now().Add(5 * time.Second)
	for status.Text() != "before" {
		if time.Now().After(deadline) {
			t.Fatal("first update never applied")
		}
		time.Sleep(10 * time.Millisecond)
	}

	client.Close()
	// give the teardown time to reach the read pump
	time.Sleep(100 * time.Millisecond)

	// a frame arriving after Close must not reach the adapter
	close(release)
	time.Sleep(300 * time.Millisecond)
	assert.Equal(t, status.Text(), "before")
}
