package handlers

import (
	"encoding/json"

	"github.com/virtualsim/relay-backend/models"
)

// processMessage dispatches one inbound payload by its type field.
// Malformed JSON and unknown types are dropped without closing the
// connection: a client that sends a bad request simply gets no reply.
func (r *Relay) processMessage(id string, raw []byte) {
	var data map[string]any
	if err := json.Unmarshal(raw, &data); err != nil {
		r.log.Debugw("dropping malformed message", "player", id, "error", err)
		return
	}
	msgType, _ := data["type"].(string)

	switch msgType {
	case models.MsgUpdate:
		r.handleUpdate(id, data)
	case models.MsgMatchmakingJoin:
		mode, _ := data["mode"].(string)
		r.handleMatchmakingJoin(id, mode)
	case models.MsgMatchmakingLeave:
		r.handleMatchmakingLeave(id)
	case models.MsgMatchmakingStatus:
		r.handleMatchmakingStatus(id)
	case models.MsgGetMyLobby:
		r.handleGetMyLobby(id)
	default:
		r.log.Debugw("unhandled message type", "player", id, "type", msgType)
	}
}
