package web

import (
	"encoding/binary"
	"fmt"
	"net/http"
	"sync"
	"sync/atomic"
	"time"

	"github.com/cespare/xxhash"
	"github.com/google/brotli/go/cbrotli"
	"github.com/gorilla/websocket"

	"github.com/thelolagemann/dmgcore/internal/types"
	"github.com/thelolagemann/dmgcore/pkg/display"
	"github.com/thelolagemann/dmgcore/pkg/log"
)

type hub struct {
	clients map[*client]bool
	emu     display.Emulator
	log     log.Logger

	broadcast            chan []byte
	register, unregister chan *client
	done                 chan struct{}

	compression atomic.Bool
	quality     int
	frameCache  *cache
	currentID   uint8
	title       atomic.Value

	mu sync.Mutex
}

func newHub(emu display.Emulator, compression bool) *hub {
	h := &hub{
		clients:    make(map[*client]bool),
		emu:        emu,
		broadcast:  make(chan []byte, 16),
		register:   make(chan *client),
		unregister: make(chan *client),
		done:       make(chan struct{}),
		quality:    7,
		frameCache: newCache(64),
		log:        log.NewNullLogger(),
	}
	if emu != nil {
		h.log = emu
	}
	h.compression.Store(compression)
	h.title.Store("")
	return h
}

// run handles registration and broadcasting until stop is called.
// Every second the round trip time of each client is broadcast.
func (h *hub) run() {
	t := time.NewTicker(time.Second)
	defer t.Stop()

	for {
		select {
		case <-h.done:
			for c := range h.clients {
				delete(h.clients, c)
				close(c.send)
			}
			return
		case c := <-h.register:
			h.clients[c] = true
		case c := <-h.unregister:
			// is this client still registered
			if _, ok := h.clients[c]; ok {
				delete(h.clients, c)
				close(c.send)
				h.log.Infof("web: client %d disconnected", c.id)
			}
		case msg := <-h.broadcast:
			for c := range h.clients {
				select {
				case c.send <- msg:
				default:
					// too slow to keep up
					delete(h.clients, c)
					close(c.send)
					h.log.Warnf("web: dropping client %d, too slow to keep up", c.id)
				}
			}
		case <-t.C:
			data := []byte{ServerInfo}
			for c := range h.clients {
				data = append(data, c.id)
				data = binary.LittleEndian.AppendUint16(data, uint16(c.rtt.Load()/1000))
			}
			for c := range h.clients {
				select {
				case c.send <- data:
				default:
				}
			}
		}
	}
}

func (h *hub) stop() {
	close(h.done)
}

// send queues msg to be broadcast to every client.
func (h *hub) send(msg []byte) {
	select {
	case h.broadcast <- msg:
	case <-h.done:
	}
}

func (h *hub) remove(c *client) {
	select {
	case h.unregister <- c:
	case <-h.done:
	}
}

// info returns a byte of information containing the various
// hub settings. The byte is constructed as follows:
//
//	Bit 0: Emulator paused
//	Bit 1: Compression enabled
func (h *hub) info() byte {
	info := uint8(0)
	if h.emu != nil && h.emu.Paused() {
		info |= types.Bit0
	}
	if h.compression.Load() {
		info |= types.Bit1
	}
	return info
}

// encode returns the message for frame. A frame already in the cache
// is sent as its index alone.
func (h *hub) encode(frame []byte) ([]byte, error) {
	hash := xxhash.Sum64(frame)
	if idx := h.frameCache.index(hash); idx != -1 {
		return binary.LittleEndian.AppendUint16([]byte{FrameCache}, uint16(idx)), nil
	}

	output, compressed := frame, h.compression.Load()
	if compressed {
		var err error
		output, err = cbrotli.Encode(frame, cbrotli.WriterOptions{Quality: h.quality})
		if err != nil {
			return nil, fmt.Errorf("compressing frame: %w", err)
		}
	} else {
		output = append([]byte(nil), frame...)
	}

	idx := h.frameCache.add(hash, output, compressed)
	return frameMessage(idx, output, compressed), nil
}

func frameMessage(idx int, output []byte, compressed bool) []byte {
	msg := append(make([]byte, 0, len(output)+4), Frame)
	msg = binary.LittleEndian.AppendUint16(msg, uint16(idx))
	if compressed {
		msg = append(msg, 1)
	} else {
		msg = append(msg, 0)
	}
	return append(msg, output...)
}

// serveWs upgrades the connection to a websocket and registers a new
// client, synchronizing the frame cache and title to it.
func (h *hub) serveWs(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Access-Control-Allow-Origin", "*")

	// upgrade the connection to a websocket connection
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		// Upgrade has already replied with an error
		h.log.Debugf("web: upgrading %s: %v", r.RemoteAddr, err)
		return
	}

	h.mu.Lock()
	h.currentID++
	c := &client{
		hub:  h,
		conn: conn,
		send: make(chan []byte, 256),
		id:   h.currentID,
	}
	h.mu.Unlock()
	h.log.Infof("web: client %d connected from %s", c.id, r.RemoteAddr)

	// queue the initial data information before registering, so that
	// nothing broadcast can overtake it
	c.send <- []byte{ClientInfo, h.info(), c.id}
	if title := h.title.Load().(string); title != "" {
		c.send <- append([]byte{TitleInfo}, title...)
	}
	h.frameCache.entries(func(i int, e cacheEntry) {
		select {
		case c.send <- frameMessage(i, e.data, e.compressed):
		default:
		}
	})

	select {
	case h.register <- c:
	case <-h.done:
		conn.Close()
		return
	}

	// spawn read/write pumps
	go c.readPump()
	go c.writePump()
}

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024 * 16,
	WriteBufferSize: 1024 * 16,
	CheckOrigin: func(r *http.Request) bool {
		return true
	},
}
