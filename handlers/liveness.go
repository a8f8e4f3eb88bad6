package handlers

import (
	"time"

	"github.com/virtualsim/relay-backend/models"
)

// sweepLoop drives the three periodic jobs: lobby formation for queues
// that are already viable, staleness pruning, and the heartbeat.
func (r *Relay) sweepLoop() {
	defer r.wg.Done()

	formation := time.NewTicker(r.settings.FormationInterval)
	defer formation.Stop()
	stale := time.NewTicker(r.settings.StaleSweepInterval)
	defer stale.Stop()
	heartbeat := time.NewTicker(r.settings.HeartbeatInterval)
	defer heartbeat.Stop()

	for {
		select {
		case <-formation.C:
			r.sweepFormation()
		case <-stale.C:
			r.sweepStale()
		case <-heartbeat.C:
			r.sweepHeartbeat()
		case <-r.stop:
			return
		}
	}
}

// sweepFormation re-runs the formation check for every mode whose queue
// meets the minimum, so participants who joined one at a time are not
// starved waiting for another join event.
func (r *Relay) sweepFormation() {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, mode := range models.GameModes {
		if len(r.queues[mode]) >= r.settings.MinLobbySize {
			r.checkFormationLocked(mode)
		}
	}
}

// sweepStale removes participants whose last activity is older than the
// staleness threshold. The transport may still be open: the record and
// all queue/lobby membership go away regardless, and the heartbeat deals
// with the connection itself.
func (r *Relay) sweepStale() {
	now := time.Now().UnixMilli()
	cutoff := r.settings.StaleAfter.Milliseconds()

	r.mu.Lock()
	defer r.mu.Unlock()

	var staleIDs []string
	for id, p := range r.players {
		if now-p.LastSeen > cutoff {
			staleIDs = append(staleIDs, id)
		}
	}
	for _, id := range staleIDs {
		r.log.Infow("pruning stale player", "player", id)
		r.removeLocked(id)
	}
}

// sweepHeartbeat terminates connections that did not answer the previous
// ping and pings the rest. Termination runs the full cleanup cascade.
func (r *Relay) sweepHeartbeat() {
	r.mu.Lock()
	defer r.mu.Unlock()

	for id, c := range r.conns {
		if !c.alive.Load() {
			r.log.Infow("heartbeat failed, dropping connection", "player", id)
			delete(r.conns, id)
			r.removeLocked(id)
			// Closing the send channel makes the write pump exit and
			// close the socket.
			r.hub.unregister <- c
			continue
		}
		c.alive.Store(false)
		c.ping()
	}
}
