package liveview

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/coder/websocket"

	"leveled/mapdata"
)

// WriteTimeout bounds each write to a client
const WriteTimeout = 3 * time.Second

// client is one connected viewer. send holds at most the newest snapshot
// not yet written; an older one still waiting is replaced.
type client struct {
	send chan []byte
}

// offer queues msg for the client. Offers are made with the hub's mutex
// held, so there is a single sender and the send below never blocks.
func (c *client) offer(msg []byte) {
	select {
	case <-c.send:
	default:
	}
	c.send <- msg
}

// Hub keeps the connected clients and the latest snapshot. It is safe for
// concurrent use. Publishing never waits on the network: every client
// writes from its own Stream call.
type Hub struct {
	mu      sync.Mutex
	clients map[*client]struct{}
	last    []byte
	seq     uint64
	log     *slog.Logger
}

// NewHub returns a hub with no clients and no snapshot.
func NewHub() *Hub {
	return &Hub{
		clients: make(map[*client]struct{}),
		log:     mapdata.Logger().With("component", "liveview"),
	}
}

// Stream sends snapshots to conn until ctx is done or a write fails. The
// latest snapshot, if any, goes out first. A client too slow to keep up
// skips the snapshots published while it was writing and gets the newest.
func (h *Hub) Stream(ctx context.Context, conn *websocket.Conn) error {
	c := &client{send: make(chan []byte, 1)}
	h.mu.Lock()
	h.clients[c] = struct{}{}
	if h.last != nil {
		c.offer(h.last)
	}
	h.mu.Unlock()
	defer h.remove(c)

	for {
		select {
		case <-ctx.Done():
			return nil
		case msg := <-c.send:
			wctx, cancel := context.WithTimeout(ctx, WriteTimeout)
			err := conn.Write(wctx, websocket.MessageText, msg)
			cancel()
			if err != nil {
				h.log.Debug("drop client", "err", err)
				return fmt.Errorf("write snapshot: %w", err)
			}
		}
	}
}

func (h *Hub) remove(c *client) {
	h.mu.Lock()
	delete(h.clients, c)
	h.mu.Unlock()
}

// Len returns the number of connected clients.
func (h *Hub) Len() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.clients)
}

// Last returns the latest published snapshot as JSON, or nil.
func (h *Hub) Last() []byte {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.last
}

// Publish numbers s, keeps it as the latest snapshot and queues it for every
// client.
func (h *Hub) Publish(s Snapshot) error {
	h.mu.Lock()
	defer h.mu.Unlock()

	h.seq++
	s.Seq = h.seq
	msg, err := json.Marshal(s)
	if err != nil {
		return fmt.Errorf("marshal snapshot: %w", err)
	}
	h.last = msg

	for c := range h.clients {
		c.offer(msg)
	}
	return nil
}
