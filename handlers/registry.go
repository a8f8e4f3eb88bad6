package handlers

import (
	"encoding/json"
	"time"

	"github.com/virtualsim/relay-backend/models"
)

// addParticipant registers a new connection: creates the registry record
// with defaults, queues the join payload (own ID plus the full roster
// snapshot) ahead of any broadcast, announces the connection to the hub
// and tells everyone else about the arrival.
func (r *Relay) addParticipant(c *Connection) {
	r.mu.Lock()
	defer r.mu.Unlock()

	p := models.NewPlayer(c.playerID, models.PlayerColors[len(r.players)%len(models.PlayerColors)])
	r.players[p.ID] = p
	r.order = append(r.order, p.ID)
	r.conns[p.ID] = c

	// The send buffer is filled before the hub learns about this
	// connection, so the join payload is always the first message the
	// client reads.
	r.sendTo(p.ID, models.JoinMessage{
		Type:    models.MsgJoin,
		YourID:  p.ID,
		Players: r.snapshotLocked(),
	})
	r.hub.register <- c
	r.broadcastLocked(models.PlayerJoinedMessage{Type: models.MsgPlayerJoined, Player: *p}, p.ID)
}

// handleUpdate overwrites only the supplied, well-typed fields and
// refreshes the activity timestamp. Fields that are missing or carry the
// wrong JSON type are left unchanged rather than rejecting the message.
func (r *Relay) handleUpdate(id string, fields map[string]any) {
	r.mu.Lock()
	defer r.mu.Unlock()

	p, ok := r.players[id]
	if !ok {
		return
	}
	if name, ok := fields["name"].(string); ok {
		p.Name = name
	}
	if x, ok := fields["x"].(float64); ok {
		p.X = x
	}
	if y, ok := fields["y"].(float64); ok {
		p.Y = y
	}
	if level, ok := fields["level"].(float64); ok {
		p.Level = int(level)
	}
	if color, ok := fields["color"].(float64); ok {
		p.Color = int(color)
	}
	p.LastSeen = time.Now().UnixMilli()

	r.broadcastLocked(models.PlayerUpdateMessage{Type: models.MsgPlayerUpdate, Player: *p}, id)
}

// dropParticipant runs the full cleanup cascade for a closed connection:
// registry, queues, lobbies, departure broadcast. Safe to call more than
// once for the same ID.
func (r *Relay) dropParticipant(id string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.conns, id)
	r.removeLocked(id)
}

// removeLocked removes id from the registry, every queue and every
// lobby. The departure broadcast is sent only when a registry record was
// actually removed, so repeated removal stays a no-op. The connection
// entry is left to the caller: a stale participant's transport may still
// be open.
func (r *Relay) removeLocked(id string) {
	_, existed := r.players[id]
	delete(r.players, id)
	if existed {
		for i, pid := range r.order {
			if pid == id {
				r.order = append(r.order[:i], r.order[i+1:]...)
				break
			}
		}
	}
	r.removeFromQueuesLocked(id)
	r.removeFromLobbiesLocked(id)
	if existed {
		r.broadcastLocked(models.PlayerLeftMessage{Type: models.MsgPlayerLeft, ID: id}, "")
	}
}

// snapshotLocked returns every registry record in join order.
func (r *Relay) snapshotLocked() []models.Player {
	players := make([]models.Player, 0, len(r.players))
	for _, id := range r.order {
		players = append(players, *r.players[id])
	}
	return players
}

// sendTo queues a point-to-point message for one participant. Delivery
// is best-effort: an unknown ID or a full send buffer is not an error.
func (r *Relay) sendTo(id string, payload any) {
	c, ok := r.conns[id]
	if !ok {
		return
	}
	data, err := json.Marshal(payload)
	if err != nil {
		r.log.Errorw("marshal failed", "player", id, "error", err)
		return
	}
	select {
	case c.send <- data:
	default:
		r.log.Debugw("send buffer full, dropping message", "player", id)
	}
}

// broadcastLocked hands identical bytes to the hub for fan-out to every
// open connection except excludeID. Called with mu held so broadcasts
// leave in the same order the state changes were applied.
func (r *Relay) broadcastLocked(payload any, excludeID string) {
	data, err := json.Marshal(payload)
	if err != nil {
		r.log.Errorw("marshal failed", "error", err)
		return
	}
	r.hub.broadcast <- broadcastMessage{data: data, excludeID: excludeID}
}
