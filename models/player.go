package models

import "time"

// PlayerColors is the fixed palette cycled through as players join.
var PlayerColors = []int{0xff6b6b, 0x4ecdc4, 0xffe66d, 0x95e1d3, 0xf38181, 0xaa96da, 0xfcbad3, 0xa8d8ea}

// Player is the public state of one connected participant. The registry
// owns the record; every other component refers to it by ID only.
type Player struct {
	ID       string  `json:"id"`
	Name     string  `json:"name"`
	X        float64 `json:"x"`
	Y        float64 `json:"y"`
	Level    int     `json:"level"`
	Color    int     `json:"color"`
	LastSeen int64   `json:"lastSeen"`
}

func NewPlayer(id string, color int) *Player {
	return &Player{
		ID:       id,
		Name:     "Player",
		Level:    1,
		Color:    color,
		LastSeen: time.Now().UnixMilli(),
	}
}
