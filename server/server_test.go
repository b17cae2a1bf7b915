package server

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/uiwire/uiwire/protocol"
	"github.com/uiwire/uiwire/termadapter"
	"github.com/uiwire/uiwire/uiwire"
)

func testClientSettings() *uiwire.ConnSettings {
	return &uiwire.ConnSettings{
		WsHandshakeTimeout: 1 * time.Second,
		ReconnectTimeout:   200 * time.Millisecond,
		WriteTimeout:       1 * time.Second,
	}
}

func TestRouterPage(t *testing.T) {
	store := NewStore()
	config := DefaultRouterConfig()
	config.Title = "uiwire test"
	config.BodyHtml = `<ui-button id="counter"></ui-button>`

	server := httptest.NewServer(NewRouter(store, config))
	defer server.Close()

	res, err := http.Get(server.URL + "/")
	require.NoError(t, err)
	defer res.Body.Close()
	require.Equal(t, http.StatusOK, res.StatusCode)

	body, err := io.ReadAll(res.Body)
	require.NoError(t, err)
	assert.Contains(t, string(body), "<title>uiwire test</title>")
	assert.Contains(t, string(body), `<ui-button id="counter"></ui-button>`)
}

func TestSyncEndToEnd(t *testing.T) {
	store := NewStore()
	store.Set(&protocol.Button{Id: "counter", Text: "Click Me!"})
	store.Set(&protocol.Text{Id: "count", Text: "0 clicks"})

	clicks := make(chan struct{}, 16)
	store.OnClick("counter", func() {
		clicks <- struct{}{}
		store.Update(&protocol.Text{Id: "count", Text: "1 clicks"})
	})

	settings := store.Scope("settings")
	settings.Set(&protocol.Slider{Id: "volume", Value: 50, Min: 0, Max: 100})
	volumes := make(chan float64, 16)
	settings.OnValueChange("volume", func(value float64) {
		volumes <- value
	})

	config := DefaultRouterConfig()
	server := httptest.NewServer(NewRouter(store, config))
	defer server.Close()
	url := "ws" + strings.TrimPrefix(server.URL, "http") + "/ws"

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	client := uiwire.NewClient(ctx, url, nil, testClientSettings())
	defer client.Close()

	counter := termadapter.NewButton()
	count := termadapter.NewText()
	client.Attach(nil, "counter", counter)
	client.Attach(nil, "count", count)

	scope := uiwire.NewScope("settings")
	volume := termadapter.NewSlider()
	client.Attach(scope, "volume", volume)

	// init reconstructs the widget state
	require.Eventually(t, func() bool {
		return counter.Text() == "Click Me!" && count.Text() == "0 clicks" && volume.State().Value == 50
	}, 5*time.Second, 10*time.Millisecond)

	// a local click forwards upstream and the handler's update flows back
	counter.Click()
	select {
	case <-clicks:
	case <-time.After(5 * time.Second):
		t.Fatal("click never reached the server")
	}
	require.Eventually(t, func() bool {
		return count.Text() == "1 clicks"
	}, 5*time.Second, 10*time.Millisecond)

	// committed slider values coerce to float64 on the server
	volume.Slide(75)
	select {
	case value := <-volumes:
		assert.Equal(t, 75.0, value)
	case <-time.After(5 * time.Second):
		t.Fatal("change never reached the server")
	}
}

func TestSyncReconnectResumesFromInit(t *testing.T) {
	store := NewStore()
	store.Set(&protocol.Text{Id: "status", Text: "Ready"})

	config := DefaultRouterConfig()
	handler := NewRouter(store, config)

	listener := httptest.NewServer(handler)
	url := "ws" + strings.TrimPrefix(listener.URL, "http") + "/ws"

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	client := uiwire.NewClient(ctx, url, nil, testClientSettings())
	defer client.Close()

	states := make(chan uiwire.ConnState, 64)
	client.AddStateCallback(func(state uiwire.ConnState) {
		states <- state
	})

	status := termadapter.NewText()
	client.Attach(nil, "status", status)

	require.Eventually(t, func() bool {
		return status.Text() == "Ready"
	}, 5*time.Second, 10*time.Millisecond)

	// kill every session; the client must come back on its own
	store.Update(&protocol.Text{Id: "status", Text: "Updated"})
	require.Eventually(t, func() bool {
		return status.Text() == "Updated"
	}, 5*time.Second, 10*time.Millisecond)

	listener.CloseClientConnections()

	sawClosed := false
	deadline := time.After(5 * time.Second)
	for !sawClosed {
		select {
		case state := <-states:
			if state == uiwire.ConnStateClosed {
				sawClosed = true
			}
		case <-deadline:
			t.Fatal("channel loss never observed")
		}
	}

	// after reconnect the state rebuilds entirely from the next init
	store.Update(&protocol.Text{Id: "status", Text: "Recovered"})
	require.Eventually(t, func() bool {
		return status.Text() == "Recovered"
	}, 10*time.Second, 10*time.Millisecond)

	listener.Close()
}
