package engine

import (
	"uno/game"
)

// Player owns a hand and delegates its choices to an agent.
type Player struct {
	Name  string
	Agent Agent
	Hand  game.Hand
}

func NewPlayer(agent Agent) *Player {
	return &Player{
		Name:  agent.Name(),
		Agent: agent,
	}
}

func (p *Player) HasWon() bool {
	return len(p.Hand) == 0
}
