package web

import (
	"sync/atomic"
	"time"

	"github.com/gorilla/websocket"
)

const writeWait = 10 * time.Second

type client struct {
	hub  *hub
	conn *websocket.Conn
	send chan []byte
	id   uint8

	// rtt is the smoothed round trip time in microseconds
	rtt atomic.Uint32
}

// readPump applies the control messages read from the client, until
// the connection is closed.
func (c *client) readPump() {
	// deferred function to handle unregistering client
	// and closing connection
	defer func() {
		c.hub.remove(c)
		c.conn.Close()
	}()

	for {
		_, message, err := c.conn.ReadMessage()
		if err != nil {
			return // connection closed
		}
		if len(message) == 0 {
			continue
		}

		switch message[0] {
		case Pause:
			c.hub.emu.Pause()
		case Resume:
			c.hub.emu.Resume()
		case Step:
			c.hub.emu.StepFrame()
		case Compression:
			if len(message) < 2 {
				continue
			}
			c.hub.compression.Store(message[1] == 1)
		case Closing:
			return
		default:
			continue
		}

		// let every client know the new state
		c.hub.send([]byte{ClientInfo, c.hub.info(), c.id})
	}
}

// writePump writes queued messages to the client until the hub closes
// the send channel, sampling the round trip time after every write.
func (c *client) writePump() {
	defer c.conn.Close()

	for message := range c.send {
		c.conn.SetWriteDeadline(time.Now().Add(writeWait))
		if err := c.conn.WriteMessage(websocket.BinaryMessage, message); err != nil {
			return
		}

		// update average latency
		if rtt, err := tcpRTT(c.conn.UnderlyingConn()); err == nil {
			avg := c.rtt.Load()
			c.rtt.Store((avg*9 + uint32(rtt/time.Microsecond)) / 10)
		}
	}

	c.conn.SetWriteDeadline(time.Now().Add(writeWait))
	c.conn.WriteMessage(websocket.CloseMessage, []byte{})
}
