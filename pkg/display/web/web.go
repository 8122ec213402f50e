// Package web provides a display.Driver that streams frames to
// websocket clients, which may pause, resume and step the emulator.
//
// Frames are hashed with xxhash and kept in a cache mirrored by every
// client, so that a repeated frame costs only its cache index, and may
// be compressed with brotli.
package web

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"time"

	"github.com/thelolagemann/dmgcore/pkg/display"
	"github.com/thelolagemann/dmgcore/pkg/display/event"
)

// Web serves frames over websockets at Addr.
type Web struct {
	addr        string
	compression bool

	emu    display.Emulator
	hub    *hub
	server *http.Server

	listener net.Listener
	ready    chan struct{}
}

func init() {
	w := New(":8090")
	display.Install("web", w, []display.DriverOption{
		{
			Name:        "addr",
			Default:     ":8090",
			Value:       &w.addr,
			Description: "The address to serve frames on",
			Type:        "string",
		},
		{
			Name:        "compression",
			Default:     false,
			Value:       &w.compression,
			Description: "Compress frames with brotli",
			Type:        "bool",
		},
	})
}

// New returns a driver listening on addr once started.
func New(addr string) *Web {
	return &Web{
		addr:  addr,
		ready: make(chan struct{}),
	}
}

// Initialize attaches the driver to emu.
func (w *Web) Initialize(emu display.Emulator) {
	w.emu = emu
}

// Addr blocks until the driver is listening, and returns the address
// it listens on.
func (w *Web) Addr() net.Addr {
	<-w.ready
	return w.listener.Addr()
}

// Start serves websocket clients, broadcasting at most 60 frames a
// second, until fb is closed or a Quit event is received.
func (w *Web) Start(fb <-chan []byte, events <-chan event.Event) error {
	ln, err := net.Listen("tcp", w.addr)
	if err != nil {
		return fmt.Errorf("web: %w", err)
	}

	w.hub = newHub(w.emu, w.compression)
	mux := http.NewServeMux()
	mux.HandleFunc("/", w.hub.serveWs)
	w.server = &http.Server{Handler: mux, ReadHeaderTimeout: 10 * time.Second}
	w.listener = ln
	close(w.ready)

	go w.hub.run()
	defer w.hub.stop()

	serveErr := make(chan error, 1)
	go func() {
		serveErr <- w.server.Serve(ln)
	}()

	t := time.NewTicker(time.Second / 60)
	defer t.Stop()

	var frames <-chan []byte
	for {
		select {
		case <-t.C:
			frames = fb
		case frame, ok := <-frames:
			if !ok {
				return w.Stop()
			}
			msg, err := w.hub.encode(frame)
			if err != nil {
				w.Stop()
				return fmt.Errorf("web: %w", err)
			}
			w.hub.send(msg)
			frames = nil
		case e, ok := <-events:
			if !ok {
				events = nil
				continue
			}
			switch e.Type {
			case event.Quit:
				return w.Stop()
			case event.Title:
				title := e.Data.(string)
				w.hub.title.Store(title)
				w.hub.send(append([]byte{TitleInfo}, title...))
			}
		case err := <-serveErr:
			if errors.Is(err, http.ErrServerClosed) {
				return nil
			}
			return fmt.Errorf("web: %w", err)
		}
	}
}

// Stop shuts the server down.
func (w *Web) Stop() error {
	if w.server == nil {
		return nil
	}
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	return w.server.Shutdown(ctx)
}
