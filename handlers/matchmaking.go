package handlers

import (
	"time"

	"github.com/virtualsim/relay-backend/models"
)

// handleMatchmakingJoin puts a participant in the queue for mode.
// Queue and lobby membership is exclusive, so any prior membership is
// dropped first. Unknown modes are ignored without a reply.
func (r *Relay) handleMatchmakingJoin(id, mode string) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.players[id]; !ok {
		return
	}
	if !models.ValidGameMode(mode) {
		return
	}

	r.removeFromQueuesLocked(id)
	r.removeFromLobbiesLocked(id)
	r.queues[mode] = append(r.queues[mode], id)

	r.sendTo(id, models.MatchmakingQueuedMessage{
		Type:      models.MsgMatchmakingQueued,
		Mode:      mode,
		QueueSize: len(r.queues[mode]),
	})
	r.checkFormationLocked(mode)
}

// handleMatchmakingLeave drops the participant from every queue and
// lobby and confirms.
func (r *Relay) handleMatchmakingLeave(id string) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.players[id]; !ok {
		return
	}
	r.removeFromQueuesLocked(id)
	r.removeFromLobbiesLocked(id)
	r.sendTo(id, models.MatchmakingLeftMessage{Type: models.MsgMatchmakingLeft})
}

// handleMatchmakingStatus replies with queue size and waiting-lobby
// count per mode.
func (r *Relay) handleMatchmakingStatus(id string) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.players[id]; !ok {
		return
	}
	status := make(map[string]models.ModeStatus, len(models.GameModes))
	for _, mode := range models.GameModes {
		waiting := 0
		for _, lobby := range r.lobbies {
			if lobby.Mode == mode && lobby.State == models.LobbyWaiting {
				waiting++
			}
		}
		status[mode] = models.ModeStatus{
			QueueSize:     len(r.queues[mode]),
			ActiveLobbies: waiting,
		}
	}
	r.sendTo(id, models.MatchmakingStatusMessage{Type: models.MsgMatchmakingStatus, Status: status})
}

// handleGetMyLobby replies with the lobby the participant currently
// occupies, or null.
func (r *Relay) handleGetMyLobby(id string) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.players[id]; !ok {
		return
	}
	var mine *models.Lobby
	for _, lobby := range r.lobbies {
		for _, lp := range lobby.Players {
			if lp.ID == id {
				mine = lobby
				break
			}
		}
	}
	r.sendTo(id, models.MyLobbyMessage{Type: models.MsgMyLobby, Lobby: mine})
}

func (r *Relay) removeFromQueuesLocked(id string) {
	for mode, queue := range r.queues {
		for i, pid := range queue {
			if pid == id {
				r.queues[mode] = append(queue[:i], queue[i+1:]...)
				break
			}
		}
	}
}

// removeFromLobbiesLocked takes id out of any lobby it occupies. A
// waiting lobby that drops below the minimum viable size is disbanded
// and its remaining members notified exactly once; otherwise the
// remaining members get the updated roster.
func (r *Relay) removeFromLobbiesLocked(id string) {
	for lobbyID, lobby := range r.lobbies {
		idx := -1
		for i, lp := range lobby.Players {
			if lp.ID == id {
				idx = i
				break
			}
		}
		if idx == -1 {
			continue
		}
		lobby.Players = append(lobby.Players[:idx], lobby.Players[idx+1:]...)

		if lobby.State == models.LobbyWaiting && len(lobby.Players) < r.settings.MinLobbySize {
			delete(r.lobbies, lobbyID)
			for _, lp := range lobby.Players {
				r.sendTo(lp.ID, models.LobbyDisbandedMessage{Type: models.MsgLobbyDisbanded, LobbyID: lobbyID})
			}
			r.log.Infow("lobby disbanded", "lobby", lobbyID, "mode", lobby.Mode)
			continue
		}

		rebalanceTeams(lobby)
		for _, lp := range lobby.Players {
			r.sendTo(lp.ID, models.LobbyMessage{Type: models.MsgLobbyUpdate, Lobby: *lobby})
		}
	}
}

// rebalanceTeams restores the team-size invariant (difference at most
// one) after a removal, flipping members from the back of the larger
// team so earlier assignments stay put.
func rebalanceTeams(lobby *models.Lobby) {
	alpha, bravo := lobby.TeamCounts()
	for i := len(lobby.Players) - 1; i >= 0 && alpha-bravo > 1; i-- {
		if lobby.Players[i].Team == models.TeamAlpha {
			lobby.Players[i].Team = models.TeamBravo
			alpha--
			bravo++
		}
	}
	for i := len(lobby.Players) - 1; i >= 0 && bravo-alpha > 1; i-- {
		if lobby.Players[i].Team == models.TeamBravo {
			lobby.Players[i].Team = models.TeamAlpha
			bravo--
			alpha++
		}
	}
}

// checkFormationLocked forms a lobby when the mode's queue has reached
// the minimum viable size: up to MaxLobbySize participants leave the
// queue in arrival order, teams are assigned greedily and every member
// is notified. Large enough lobbies get an auto-start timer.
func (r *Relay) checkFormationLocked(mode string) {
	queue := r.queues[mode]
	if len(queue) < r.settings.MinLobbySize {
		return
	}

	n := len(queue)
	if n > r.settings.MaxLobbySize {
		n = r.settings.MaxLobbySize
	}
	members := queue[:n]
	r.queues[mode] = append([]string(nil), queue[n:]...)

	lobby := &models.Lobby{
		ID:        newLobbyID(),
		Mode:      mode,
		State:     models.LobbyWaiting,
		CreatedAt: time.Now().UnixMilli(),
	}
	for _, id := range members {
		name := "Player"
		if p, ok := r.players[id]; ok {
			name = p.Name
		}
		lobby.Players = append(lobby.Players, models.LobbyPlayer{
			ID:   id,
			Team: lobby.NextTeam(),
			Name: name,
		})
	}
	r.lobbies[lobby.ID] = lobby

	for _, lp := range lobby.Players {
		r.sendTo(lp.ID, models.LobbyMessage{Type: models.MsgLobbyCreated, Lobby: *lobby})
	}
	r.log.Infow("lobby created", "lobby", lobby.ID, "mode", mode, "size", len(lobby.Players))

	if len(lobby.Players) >= r.settings.AutoStartThreshold || len(lobby.Players) >= r.settings.MaxLobbySize {
		lobbyID := lobby.ID
		time.AfterFunc(r.settings.AutoStartDelay, func() { r.startLobbyGame(lobbyID) })
	}
}

// startLobbyGame fires when an auto-start timer elapses. The lobby is
// re-validated first: if it is gone or no longer waiting the transition
// is a no-op.
func (r *Relay) startLobbyGame(lobbyID string) {
	r.mu.Lock()
	defer r.mu.Unlock()

	lobby, ok := r.lobbies[lobbyID]
	if !ok || lobby.State != models.LobbyWaiting {
		return
	}
	lobby.State = models.LobbyInGame
	lobby.StartedAt = time.Now().UnixMilli()

	for _, lp := range lobby.Players {
		r.sendTo(lp.ID, models.LobbyMessage{Type: models.MsgLobbyGameStart, Lobby: *lobby})
	}
	r.log.Infow("lobby game started", "lobby", lobbyID, "mode", lobby.Mode, "size", len(lobby.Players))
}
