package models

// Game modes accepted by matchmaking_join. Anything else is ignored.
const (
	ModeTDM              = "TDM"
	ModeDomination       = "Domination"
	ModeCTF              = "CTF"
	ModeSearchAndDestroy = "SearchAndDestroy"
	ModeZombies          = "Zombies"
)

var GameModes = []string{ModeTDM, ModeDomination, ModeCTF, ModeSearchAndDestroy, ModeZombies}

func ValidGameMode(mode string) bool {
	for _, m := range GameModes {
		if m == mode {
			return true
		}
	}
	return false
}

// GameModeInfo is the static matchmaking metadata served to clients.
type GameModeInfo struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Teams       int    `json:"teams"`
	MaxPlayers  int    `json:"maxPlayers"`
	MinToStart  int    `json:"minToStart"`
	Description string `json:"description"`
}

var GameModeCatalog = []GameModeInfo{
	{ID: ModeTDM, Name: "Team Deathmatch", Teams: 2, MaxPlayers: 10, MinToStart: 2, Description: "5v5 elimination"},
	{ID: ModeDomination, Name: "Domination", Teams: 2, MaxPlayers: 10, MinToStart: 2, Description: "Capture and hold zones"},
	{ID: ModeCTF, Name: "Capture the Flag", Teams: 2, MaxPlayers: 10, MinToStart: 2, Description: "Steal the enemy flag"},
	{ID: ModeSearchAndDestroy, Name: "Search & Destroy", Teams: 2, MaxPlayers: 10, MinToStart: 2, Description: "Attack/defend objectives"},
	{ID: ModeZombies, Name: "Zombies", Teams: 1, MaxPlayers: 10, MinToStart: 2, Description: "Co-op wave survival"},
}
