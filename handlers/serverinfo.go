package handlers

import (
	"net/http"

	"github.com/virtualsim/relay-backend/config"
	"github.com/virtualsim/relay-backend/models"
	"github.com/virtualsim/relay-backend/utils"
)

type relayStatus struct {
	Game          string `json:"game"`
	Server        string `json:"server"`
	PlayersOnline int    `json:"playersOnline"`
	Message       string `json:"message"`
}

type serverInfo struct {
	WsURL     string   `json:"wsUrl"`
	Status    string   `json:"status"`
	GameModes []string `json:"gameModes"`
}

type gameModeList struct {
	GameModes []models.GameModeInfo `json:"gameModes"`
}

// Status reports the relay itself: one server, one shared world.
func (r *Relay) Status(w http.ResponseWriter, req *http.Request) {
	utils.HandleSuccess(w, models.SuccessResponse(relayStatus{
		Game:          "Virtual Sim",
		Server:        "ONE",
		PlayersOnline: r.PlayerCount(),
		Message:       "This is the only server. Everyone plays here.",
	}))
}

// ServerInfo serves the canonical WebSocket URL clients should connect
// to, plus the fixed game-mode list.
func ServerInfo(cfg *config.Config) http.HandlerFunc {
	return func(w http.ResponseWriter, req *http.Request) {
		utils.HandleSuccess(w, models.SuccessResponse(serverInfo{
			WsURL:     cfg.WSURL,
			Status:    "ok",
			GameModes: models.GameModes,
		}))
	}
}

// GameModes serves the static game-mode metadata for the matchmaking UI.
func GameModes(w http.ResponseWriter, req *http.Request) {
	utils.HandleSuccess(w, models.SuccessResponse(gameModeList{GameModes: models.GameModeCatalog}))
}
