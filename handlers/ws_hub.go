package handlers

import (
	"sync/atomic"
	"time"

	"github.com/gorilla/websocket"
)

// Time allowed to write a control frame to the peer.
const writeWait = 10 * time.Second

// Connection represents a WebSocket connection and the participant it
// belongs to. The connection supervisor owns it; everything else refers
// to the participant by ID.
type Connection struct {
	ws       *websocket.Conn
	send     chan []byte
	playerID string

	// alive is set by pong receipt and cleared by the heartbeat sweep.
	alive atomic.Bool
}

// ping sends a control-frame ping. WriteControl is safe to call
// concurrently with the write pump.
func (c *Connection) ping() {
	if c.ws == nil {
		return
	}
	_ = c.ws.WriteControl(websocket.PingMessage, nil, time.Now().Add(writeWait))
}

// broadcastMessage is one fan-out request: identical bytes to every open
// connection except the excluded sender.
type broadcastMessage struct {
	data      []byte
	excludeID string
}

// Hub maintains the set of active connections and fans messages out to
// them. Delivery is best-effort: a recipient whose send buffer is full
// misses the message, and a connection that is actually dead is left for
// the liveness monitor to reap.
type Hub struct {
	connections map[*Connection]bool

	broadcast  chan broadcastMessage
	register   chan *Connection
	unregister chan *Connection
}

func newHub() *Hub {
	return &Hub{
		connections: make(map[*Connection]bool),
		broadcast:   make(chan broadcastMessage),
		register:    make(chan *Connection),
		unregister:  make(chan *Connection),
	}
}

// run owns the connection set. It never touches relay state, so pushing
// to the hub channels while holding the relay mutex cannot deadlock.
func (h *Hub) run() {
	for {
		select {
		case connection := <-h.register:
			h.connections[connection] = true
		case connection := <-h.unregister:
			if _, ok := h.connections[connection]; ok {
				delete(h.connections, connection)
				close(connection.send)
			}
		case message := <-h.broadcast:
			for connection := range h.connections {
				if connection.playerID == message.excludeID {
					continue
				}
				// A full buffer loses the message, never the
				// connection; dead peers are reaped by the heartbeat.
				select {
				case connection.send <- message.data:
				default:
				}
			}
		}
	}
}
