package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNextTeamBalancesGreedily(t *testing.T) {
	lobby := &Lobby{}
	var teams []string
	for i := 0; i < 5; i++ {
		team := lobby.NextTeam()
		teams = append(teams, team)
		lobby.Players = append(lobby.Players, LobbyPlayer{Team: team})
	}
	assert.Equal(t, []string{TeamAlpha, TeamBravo, TeamAlpha, TeamBravo, TeamAlpha}, teams)

	alpha, bravo := lobby.TeamCounts()
	assert.Equal(t, 3, alpha)
	assert.Equal(t, 2, bravo)
}

func TestValidGameMode(t *testing.T) {
	for _, mode := range GameModes {
		assert.True(t, ValidGameMode(mode))
	}
	assert.False(t, ValidGameMode("BattleRoyale"))
	assert.False(t, ValidGameMode(""))
	assert.False(t, ValidGameMode("tdm"))
}
