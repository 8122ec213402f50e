package web

import (
	"bytes"
	"encoding/binary"
	"strings"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/google/brotli/go/cbrotli"
	"github.com/gorilla/websocket"

	"github.com/thelolagemann/dmgcore/internal/ppu"
	"github.com/thelolagemann/dmgcore/pkg/display/event"
	"github.com/thelolagemann/dmgcore/pkg/log"
)

type emulator struct {
	log.Logger

	paused atomic.Bool
	steps  atomic.Int32
}

func (e *emulator) Pause()       { e.paused.Store(true) }
func (e *emulator) Resume()      { e.paused.Store(false) }
func (e *emulator) Paused() bool { return e.paused.Load() }
func (e *emulator) TogglePause() { e.paused.Store(!e.paused.Load()) }
func (e *emulator) StepFrame()   { e.steps.Add(1) }

func newEmulator() *emulator {
	return &emulator{Logger: log.NewNullLogger()}
}

func testFrame(b uint8) []byte {
	frame := make([]byte, ppu.FrameSize)
	for i := range frame {
		frame[i] = b
	}
	return frame
}

func TestCache(t *testing.T) {
	c := newCache(2)
	if c.index(1) != -1 {
		t.Errorf("expected an empty cache to miss")
	}

	if i := c.add(1, []byte{1}, false); i != 0 {
		t.Errorf("expected index 0, got %d", i)
	}
	c.add(2, []byte{2}, true)
	if c.index(1) != 0 || c.index(2) != 1 {
		t.Errorf("expected both frames to be cached")
	}

	// the oldest entry is replaced
	c.add(3, []byte{3}, false)
	if c.index(1) != -1 || c.index(3) != 0 {
		t.Errorf("expected 3 to replace 1")
	}

	var n int
	c.entries(func(i int, e cacheEntry) { n++ })
	if n != 2 {
		t.Errorf("expected 2 entries, got %d", n)
	}
}

func TestHub_Encode(t *testing.T) {
	h := newHub(newEmulator(), true)
	frame := testFrame(0x64)

	msg, err := h.encode(frame)
	if err != nil {
		t.Fatal(err)
	}
	if msg[0] != Frame || binary.LittleEndian.Uint16(msg[1:]) != 0 || msg[3] != 1 {
		t.Fatalf("expected a compressed frame at index 0, got % x", msg[:4])
	}
	decoded, err := cbrotli.Decode(msg[4:])
	if err != nil {
		t.Fatal(err)
	}
	if !bytes.Equal(decoded, frame) {
		t.Errorf("expected the frame to survive compression")
	}

	msg, err = h.encode(frame)
	if err != nil {
		t.Fatal(err)
	}
	if !bytes.Equal(msg, []byte{FrameCache, 0, 0}) {
		t.Errorf("expected a repeated frame to be sent from the cache, got % x", msg)
	}

	h.compression.Store(false)
	msg, _ = h.encode(testFrame(0xC8))
	if msg[0] != Frame || binary.LittleEndian.Uint16(msg[1:]) != 1 || msg[3] != 0 || len(msg) != ppu.FrameSize+4 {
		t.Errorf("expected an uncompressed frame at index 1, got % x", msg[:4])
	}
}

func TestHub_Info(t *testing.T) {
	emu := newEmulator()
	h := newHub(emu, false)
	if h.info() != 0 {
		t.Errorf("expected no bits set, got %08b", h.info())
	}
	emu.Pause()
	h.compression.Store(true)
	if h.info() != 0b11 {
		t.Errorf("expected paused and compression bits, got %08b", h.info())
	}
}

func dial(t *testing.T, w *Web) *websocket.Conn {
	t.Helper()
	conn, _, err := websocket.DefaultDialer.Dial("ws://"+w.Addr().String()+"/", nil)
	if err != nil {
		t.Fatal(err)
	}
	return conn
}

// next reads the next message, skipping the periodic ServerInfo.
func next(t *testing.T, conn *websocket.Conn) []byte {
	t.Helper()
	for {
		conn.SetReadDeadline(time.Now().Add(5 * time.Second))
		_, msg, err := conn.ReadMessage()
		if err != nil {
			t.Fatal(err)
		}
		if len(msg) > 0 && msg[0] != ServerInfo {
			return msg
		}
	}
}

func TestWeb(t *testing.T) {
	emu := newEmulator()
	w := New("127.0.0.1:0")
	w.Initialize(emu)

	fb := make(chan []byte)
	events := make(chan event.Event)
	done := make(chan error, 1)
	go func() {
		done <- w.Start(fb, events)
	}()

	conn := dial(t, w)
	defer conn.Close()
	if msg := next(t, conn); !bytes.Equal(msg, []byte{ClientInfo, 0, 1}) {
		t.Fatalf("expected client info for client 1, got % x", msg)
	}

	events <- event.NewTitle("TETRIS")
	if msg := next(t, conn); msg[0] != TitleInfo || string(msg[1:]) != "TETRIS" {
		t.Errorf("expected the title, got %q", msg)
	}

	frame := testFrame(0x42)
	fb <- frame
	msg := next(t, conn)
	if msg[0] != Frame || msg[3] != 0 || !bytes.Equal(msg[4:], frame) {
		t.Errorf("expected the uncompressed frame, got % x", msg[:4])
	}
	fb <- frame
	if msg := next(t, conn); !bytes.Equal(msg, []byte{FrameCache, 0, 0}) {
		t.Errorf("expected the frame from the cache, got % x", msg)
	}

	conn.WriteMessage(websocket.BinaryMessage, []byte{Pause})
	if msg := next(t, conn); !bytes.Equal(msg, []byte{ClientInfo, 0b01, 1}) {
		t.Errorf("expected the paused state to be broadcast, got % x", msg)
	}
	if !emu.Paused() {
		t.Errorf("expected the emulator to be paused")
	}

	conn.WriteMessage(websocket.BinaryMessage, []byte{Step})
	next(t, conn)
	if emu.steps.Load() != 1 {
		t.Errorf("expected a single frame to be stepped, got %d", emu.steps.Load())
	}

	// a late client is synchronized
	late := dial(t, w)
	defer late.Close()
	if msg := next(t, late); !bytes.Equal(msg, []byte{ClientInfo, 0b01, 2}) {
		t.Errorf("expected client info for client 2, got % x", msg)
	}
	if msg := next(t, late); string(msg[1:]) != "TETRIS" {
		t.Errorf("expected the title, got %q", msg)
	}
	if msg := next(t, late); msg[0] != Frame || !bytes.Equal(msg[4:], frame) {
		t.Errorf("expected the cached frame, got % x", msg[:4])
	}

	close(fb)
	select {
	case err := <-done:
		if err != nil {
			t.Errorf("expected a clean shutdown, got %v", err)
		}
	case <-time.After(5 * time.Second):
		t.Fatal("expected Start to return once the framebuffer is closed")
	}
}

func TestWeb_Quit(t *testing.T) {
	w := New("127.0.0.1:0")
	w.Initialize(newEmulator())

	events := make(chan event.Event, 1)
	done := make(chan error, 1)
	go func() {
		done <- w.Start(make(chan []byte), events)
	}()
	w.Addr()

	events <- event.NewQuit()
	select {
	case err := <-done:
		if err != nil {
			t.Errorf("expected a clean shutdown, got %v", err)
		}
	case <-time.After(5 * time.Second):
		t.Fatal("expected Start to return on Quit")
	}
}

// lockedBuffer is written by the hub and client goroutines while
// the test reads it.
type lockedBuffer struct {
	mu  sync.Mutex
	buf bytes.Buffer
}

func (b *lockedBuffer) Write(p []byte) (int, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.Write(p)
}

func (b *lockedBuffer) String() string {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.String()
}

func TestWeb_Logging(t *testing.T) {
	var out lockedBuffer
	logger, err := log.New(log.Config{Level: "info", Output: &out})
	if err != nil {
		t.Fatal(err)
	}

	w := New("127.0.0.1:0")
	w.Initialize(&emulator{Logger: logger})

	fb := make(chan []byte)
	done := make(chan error, 1)
	go func() {
		done <- w.Start(fb, make(chan event.Event))
	}()

	conn := dial(t, w)
	next(t, conn)
	if !strings.Contains(out.String(), "web: client 1 connected") {
		t.Errorf("expected the connection to be logged, got %q", out.String())
	}

	conn.Close()
	deadline := time.Now().Add(5 * time.Second)
	for !strings.Contains(out.String(), "web: client 1 disconnected") {
		if time.Now().After(deadline) {
			t.Fatalf("expected the disconnection to be logged, got %q", out.String())
		}
		time.Sleep(10 * time.Millisecond)
	}

	close(fb)
	if err := <-done; err != nil {
		t.Errorf("expected a clean shutdown, got %v", err)
	}
}
