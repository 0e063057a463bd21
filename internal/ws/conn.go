// Package ws is the websocket transport adapter: upgrading HTTP
// connections, running the read/write pumps, and feeding frames into
// the dispatcher. Grounded on the teacher's internal/adapters/signal
// package (WsSignalConn, writePump/readPump), generalized from raw
// core.Frame values to arbitrary JSON []byte payloads.
package ws

import (
	"errors"
	"sync"

	"github.com/gorilla/websocket"
)

// ErrBackpressure is returned by TrySend when a connection's outbound
// buffer is full; the caller (broadcast.Broadcaster) treats this as "drop and
// log", never as a reason to block the sender.
var ErrBackpressure = errors.New("backpressure")

// sendBufferSize bounds how many outbound frames queue before a slow
// reader starts losing snapshots.
const sendBufferSize = 32

// Conn wraps one upgraded websocket connection as a core.Subscriber.
type Conn struct {
	conn *websocket.Conn
	send chan []byte

	mu     sync.RWMutex
	closed bool
}

func NewConn(raw *websocket.Conn) *Conn {
	return &Conn{
		conn: raw,
		send: make(chan []byte, sendBufferSize),
	}
}

// TrySend is non-blocking: it either enqueues payload for writePump or
// reports ErrBackpressure / a closed-connection error immediately.
func (c *Conn) TrySend(payload []byte) error {
	c.mu.RLock()
	defer c.mu.RUnlock()
	if c.closed {
		return errors.New("connection closed")
	}
	select {
	case c.send <- payload:
		return nil
	default:
		return ErrBackpressure
	}
}

// Close is idempotent: closing an already-closed Conn is a no-op.
func (c *Conn) Close() {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.closed {
		return
	}
	c.closed = true
	close(c.send)
	_ = c.conn.Close()
}
