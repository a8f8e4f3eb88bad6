package models

// WebSocket message type discriminators. Every payload, inbound or
// outbound, carries one in its "type" field.
const (
	// Server -> client.
	MsgJoin              = "join"
	MsgPlayerJoined      = "player_joined"
	MsgPlayerUpdate      = "player_update"
	MsgPlayerLeft        = "player_left"
	MsgMatchmakingQueued = "matchmaking_queued"
	MsgMatchmakingLeft   = "matchmaking_left"
	MsgLobbyCreated      = "lobby_created"
	MsgLobbyUpdate       = "lobby_update"
	MsgLobbyGameStart    = "lobby_game_start"
	MsgLobbyDisbanded    = "lobby_disbanded"
	MsgMyLobby           = "my_lobby"

	// Client -> server. matchmaking_status is used in both directions.
	MsgUpdate            = "update"
	MsgMatchmakingJoin   = "matchmaking_join"
	MsgMatchmakingLeave  = "matchmaking_leave"
	MsgMatchmakingStatus = "matchmaking_status"
	MsgGetMyLobby        = "get_my_lobby"
)

// JoinMessage is the handshake sent to a newly connected participant:
// its own ID plus the full roster snapshot, itself included.
type JoinMessage struct {
	Type    string   `json:"type"`
	YourID  string   `json:"yourId"`
	Players []Player `json:"players"`
}

type PlayerJoinedMessage struct {
	Type   string `json:"type"`
	Player Player `json:"player"`
}

type PlayerUpdateMessage struct {
	Type   string `json:"type"`
	Player Player `json:"player"`
}

type PlayerLeftMessage struct {
	Type string `json:"type"`
	ID   string `json:"id"`
}

type MatchmakingQueuedMessage struct {
	Type      string `json:"type"`
	Mode      string `json:"mode"`
	QueueSize int    `json:"queueSize"`
}

type MatchmakingLeftMessage struct {
	Type string `json:"type"`
}

// ModeStatus is the per-mode slice of a matchmaking_status reply.
type ModeStatus struct {
	QueueSize     int `json:"queueSize"`
	ActiveLobbies int `json:"activeLobbies"`
}

type MatchmakingStatusMessage struct {
	Type   string                `json:"type"`
	Status map[string]ModeStatus `json:"status"`
}

// LobbyMessage carries a full lobby payload; it serves lobby_created,
// lobby_update and lobby_game_start.
type LobbyMessage struct {
	Type  string `json:"type"`
	Lobby Lobby  `json:"lobby"`
}

type LobbyDisbandedMessage struct {
	Type    string `json:"type"`
	LobbyID string `json:"lobbyId"`
}

// MyLobbyMessage answers get_my_lobby; Lobby is null when the
// participant is in no lobby.
type MyLobbyMessage struct {
	Type  string `json:"type"`
	Lobby *Lobby `json:"lobby"`
}
