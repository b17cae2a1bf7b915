package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"sync/atomic"
	"syscall"
	"time"

	"github.com/docopt/docopt-go"

	"github.com/uiwire/uiwire/protocol"
	"github.com/uiwire/uiwire/server"
	"github.com/uiwire/uiwire/termadapter"
	"github.com/uiwire/uiwire/uiwire"
)

const DefaultListen = "127.0.0.1:3000"
const DefaultUrl = "ws://127.0.0.1:3000/ws"

func main() {
	usage := fmt.Sprintf(
		`uiwire demo.

Usage:
    uidemo serve [--listen=<listen>]
    uidemo watch [--url=<url>]

Options:
    -h --help            Show this screen.
    --listen=<listen>    Listen address [default: %s].
    --url=<url>          Sync channel url [default: %s].`,
		DefaultListen,
		DefaultUrl,
	)

	opts, err := docopt.ParseArgs(usage, os.Args[1:], "0.1.0")
	if err != nil {
		panic(err)
	}

	if serve_, _ := opts.Bool("serve"); serve_ {
		serve(opts)
	} else if watch_, _ := opts.Bool("watch"); watch_ {
		watch(opts)
	}
}

func serve(opts docopt.Opts) {
	listen, err := opts.String("--listen")
	if err != nil {
		listen = DefaultListen
	}

	store := server.NewStore()

	var clicks atomic.Int64
	store.Set(&protocol.Button{Id: "counter", Text: "Click Me!"})
	store.Set(&protocol.Text{Id: "count", Text: "0 clicks"})
	store.OnClick("counter", func() {
		store.Update(&protocol.Text{Id: "count", Text: fmt.Sprintf("%d clicks", clicks.Add(1))})
	})

	store.Set(&protocol.Input{Id: "name"})
	store.Set(&protocol.Text{Id: "greeting", Text: "Type your name above..."})
	store.OnInput("name", func(value string) {
		store.Update(&protocol.Text{Id: "greeting", Text: "Hello, " + value + "!"})
	})

	settings := store.Scope("settings")
	step := 1.0
	settings.Set(&protocol.Slider{Id: "volume", Value: 50, Min: 0, Max: 100, Step: &step})
	settings.Set(&protocol.Text{Id: "level", Text: "volume 50"})
	settings.OnValueChange("volume", func(value float64) {
		settings.Update(&protocol.Text{Id: "level", Text: fmt.Sprintf("volume %g", value)})
	})

	body := `
        <div class="container">
            <ui-button id="counter"></ui-button>
            <ui-text id="count"></ui-text>
            <ui-input id="name"></ui-input>
            <ui-text id="greeting"></ui-text>
            <ui-scope name="settings">
                <ui-slider id="volume"></ui-slider>
                <ui-text id="level"></ui-text>
            </ui-scope>
        </div>
    `
	config := server.DefaultRouterConfig()
	config.Title = "uiwire demo"
	config.BodyHtml = body

	fmt.Printf("Serving on http://%s\n", listen)
	if err := http.ListenAndServe(listen, server.NewRouter(store, config)); err != nil {
		panic(err)
	}
}

func watch(opts docopt.Opts) {
	url, err := opts.String("--url")
	if err != nil {
		url = DefaultUrl
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	client := uiwire.NewClientWithDefaults(ctx, url)
	defer client.Close()

	client.AddStateCallback(func(state uiwire.ConnState) {
		fmt.Printf("connection: %s\n", state)
	})

	counter := termadapter.NewButton()
	count := termadapter.NewText()
	name := termadapter.NewInput()
	greeting := termadapter.NewText()
	client.Attach(nil, "counter", counter)
	client.Attach(nil, "count", count)
	client.Attach(nil, "name", name)
	client.Attach(nil, "greeting", greeting)

	settings := uiwire.NewScope("settings")
	volume := termadapter.NewSlider()
	level := termadapter.NewText()
	client.Attach(settings, "volume", volume)
	client.Attach(settings, "level", level)

	views := []interface{ View() string }{
		counter, count, name, greeting, volume, level,
	}

	sigs := make(chan os.Signal, 1)
	signal.Notify(sigs, syscall.SIGINT, syscall.SIGTERM)

	ticker := time.NewTicker(1 * time.Second)
	defer ticker.Stop()
	for {
		select {
		case <-sigs:
			return
		case <-ticker.C:
			lines := []string{}
			for _, view := range views {
				lines = append(lines, view.View())
			}
			fmt.Printf("%s\n\n", strings.Join(lines, "\n"))
		}
	}
}
