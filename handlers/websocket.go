package handlers

import (
	"net/http"

	"github.com/gorilla/websocket"
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin:     func(r *http.Request) bool { return true },
}

// WsHandler is the protocol boundary: it accepts a connection, mints the
// participant ID, registers the record and runs the read loop until the
// connection goes away.
func (r *Relay) WsHandler(w http.ResponseWriter, req *http.Request) {
	conn, err := upgrader.Upgrade(w, req, nil)
	if err != nil {
		r.log.Errorw("websocket upgrade failed", "error", err)
		return
	}

	id := newPlayerID()
	c := &Connection{ws: conn, send: make(chan []byte, 256), playerID: id}
	c.alive.Store(true)
	conn.SetPongHandler(func(string) error {
		c.alive.Store(true)
		return nil
	})

	r.addParticipant(c)
	r.log.Infow("player connected", "player", id, "remote", conn.RemoteAddr().String())

	go r.writePump(c)
	r.readPump(c)
}

func (r *Relay) readPump(c *Connection) {
	defer func() {
		r.dropParticipant(c.playerID)
		r.hub.unregister <- c
		c.ws.Close()
		r.log.Infow("player disconnected", "player", c.playerID)
	}()

	for {
		_, message, err := c.ws.ReadMessage()
		if err != nil {
			break
		}
		r.processMessage(c.playerID, message)
	}
}

func (r *Relay) writePump(c *Connection) {
	defer c.ws.Close()

	for message := range c.send {
		if err := c.ws.WriteMessage(websocket.TextMessage, message); err != nil {
			r.log.Debugw("write failed", "player", c.playerID, "error", err)
			break
		}
	}
}
