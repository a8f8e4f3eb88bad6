package handlers

import (
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/virtualsim/relay-backend/models"
)

// Settings are the matchmaking and liveness knobs. Production uses
// DefaultSettings; tests shorten the intervals.
type Settings struct {
	MinLobbySize       int
	MaxLobbySize       int
	AutoStartThreshold int
	AutoStartDelay     time.Duration
	FormationInterval  time.Duration
	StaleSweepInterval time.Duration
	StaleAfter         time.Duration
	HeartbeatInterval  time.Duration
}

func DefaultSettings() Settings {
	return Settings{
		MinLobbySize:       2,
		MaxLobbySize:       10,
		AutoStartThreshold: 6,
		AutoStartDelay:     5 * time.Second,
		FormationInterval:  2 * time.Second,
		StaleSweepInterval: 15 * time.Second,
		StaleAfter:         60 * time.Second,
		HeartbeatInterval:  30 * time.Second,
	}
}

// Relay is the single shared world: one participant registry, one set of
// per-mode queues, one set of active lobbies. mu guards all three and is
// held for the duration of each logical operation, which is what makes
// the maps safe without finer-grained locking.
type Relay struct {
	settings Settings
	log      *zap.SugaredLogger
	hub      *Hub

	mu      sync.Mutex
	players map[string]*models.Player
	order   []string // registry iteration order = join order
	conns   map[string]*Connection
	queues  map[string][]string // mode -> waiting player IDs, arrival order
	lobbies map[string]*models.Lobby

	stop     chan struct{}
	stopOnce sync.Once
	wg       sync.WaitGroup
}

func NewRelay(settings Settings, log *zap.SugaredLogger) *Relay {
	r := &Relay{
		settings: settings,
		log:      log,
		hub:      newHub(),
		players:  make(map[string]*models.Player),
		conns:    make(map[string]*Connection),
		queues:   make(map[string][]string),
		lobbies:  make(map[string]*models.Lobby),
		stop:     make(chan struct{}),
	}
	go r.hub.run()
	r.wg.Add(1)
	go r.sweepLoop()
	return r
}

// Close stops the periodic sweeps. Open connections are not torn down;
// the process is expected to exit shortly after.
func (r *Relay) Close() {
	r.stopOnce.Do(func() { close(r.stop) })
	r.wg.Wait()
}

// PlayerCount reports the number of registered participants.
func (r *Relay) PlayerCount() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.players)
}

func newPlayerID() string {
	return "p_" + uuid.NewString()
}

func newLobbyID() string {
	return "lobby_" + uuid.NewString()
}
