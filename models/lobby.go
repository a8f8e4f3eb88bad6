package models

const (
	TeamAlpha = "Alpha"
	TeamBravo = "Bravo"
)

// Lobby states. In this subsystem in_game is terminal: match completion
// is signalled by an external collaborator, not the relay.
const (
	LobbyWaiting = "waiting"
	LobbyInGame  = "in_game"
)

// LobbyPlayer is one roster slot: a participant ID, its team and the
// display name captured at formation time.
type LobbyPlayer struct {
	ID   string `json:"id"`
	Team string `json:"team"`
	Name string `json:"name"`
}

// Lobby is a formed, team-assigned group of participants.
type Lobby struct {
	ID        string        `json:"id"`
	Mode      string        `json:"mode"`
	Players   []LobbyPlayer `json:"players"`
	State     string        `json:"state"`
	CreatedAt int64         `json:"createdAt"`
	StartedAt int64         `json:"startedAt,omitempty"`
}

// TeamCounts returns the current Alpha and Bravo roster sizes.
func (l *Lobby) TeamCounts() (alpha, bravo int) {
	for _, p := range l.Players {
		if p.Team == TeamAlpha {
			alpha++
		} else {
			bravo++
		}
	}
	return alpha, bravo
}

// NextTeam picks the team for the next joining member: the smaller side,
// Alpha on ties.
func (l *Lobby) NextTeam() string {
	alpha, bravo := l.TeamCounts()
	if alpha > bravo {
		return TeamBravo
	}
	return TeamAlpha
}
