// Package feed pushes committed equipment status changes to connected desk
// staff over websockets.
package feed

import (
	"encoding/json"
	"log"
	"sync"
	"time"

	"equiplend/internal/domain"

	"github.com/gorilla/websocket"
)

const (
	writeWait    = 10 * time.Second
	pingInterval = 30 * time.Second
	sendBuffer   = 64
)

// client owns one connection. Only its writePump writes to conn.
type client struct {
	actorID int64
	conn    *websocket.Conn
	send    chan []byte
}

// Hub keeps one connection per actor. A newer connection replaces the older
// one.
type Hub struct {
	clients map[int64]*client
	mutex   sync.RWMutex
}

func NewHub() *Hub {
	return &Hub{
		clients: make(map[int64]*client),
	}
}

// Register starts the writer of a new connection. An existing connection of
// the same actor is closed.
func (h *Hub) Register(actorID int64, conn *websocket.Conn) *client {
	c := &client{actorID: actorID, conn: conn, send: make(chan []byte, sendBuffer)}

	h.mutex.Lock()
	if old, exists := h.clients[actorID]; exists {
		close(old.send)
	}
	h.clients[actorID] = c
	h.mutex.Unlock()

	go c.writePump()
	return c
}

// Unregister drops c if it is still the actor's current connection.
func (h *Hub) Unregister(actorID int64, c *client) {
	h.mutex.Lock()
	if cur, exists := h.clients[actorID]; exists && cur == c {
		delete(h.clients, actorID)
		close(c.send)
	}
	h.mutex.Unlock()

	_ = c.conn.Close()
}

// Publish queues ev for every connected actor and never blocks on a
// connection. A client whose buffer is full misses the event.
func (h *Hub) Publish(ev domain.StatusEvent) {
	data, err := json.Marshal(ev)
	if err != nil {
		log.Printf("feed_marshal_failed type=%s error=%v", ev.Type, err)
		return
	}

	h.mutex.RLock()
	defer h.mutex.RUnlock()

	for id, c := range h.clients {
		select {
		case c.send <- data:
		default:
			log.Printf("feed_event_dropped actor_id=%d type=%s", id, ev.Type)
		}
	}
}

func (h *Hub) OnlineCount() int {
	h.mutex.RLock()
	defer h.mutex.RUnlock()

	return len(h.clients)
}

func (h *Hub) Close() {
	h.mutex.Lock()
	defer h.mutex.Unlock()

	for id, c := range h.clients {
		close(c.send)
		delete(h.clients, id)
	}
}

// writePump drains send and pings on an interval. It closes the connection
// once send is closed or a write fails.
func (c *client) writePump() {
	ticker := time.NewTicker(pingInterval)
	defer func() {
		ticker.Stop()
		_ = c.conn.Close()
	}()

	for {
		select {
		case msg, ok := <-c.send:
			_ = c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if !ok {
				_ = c.conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}
			if err := c.conn.WriteMessage(websocket.TextMessage, msg); err != nil {
				log.Printf("feed_write_failed actor_id=%d error=%v", c.actorID, err)
				return
			}
		case <-ticker.C:
			_ = c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}
