package engine

import (
	"uno/game"

	"golang.org/x/exp/rand"
)

// Agent chooses which card a player plays. The engine only calls Step when the
// hand holds at least one card playable on open, and Step must return one of them.
type Agent interface {
	Name() string
	Step(hand game.Hand, open game.Card) game.Card
	// Reset is called once at the start of every game
	Reset()
}

// Observer is an agent that follows every change of the open card: the starter,
// its own plays and the opponent's plays.
type Observer interface {
	Observe(open game.Card)
}

// Learner is an agent whose model can be persisted.
type Learner interface {
	Agent
	SaveModel(path string) error
}

// RandomAgent plays a uniformly random playable card.
type RandomAgent struct {
	rng *rand.Rand
}

const RandomAgentName = "random"

func NewRandomAgent(rng *rand.Rand) *RandomAgent {
	return &RandomAgent{rng: rng}
}

func (a *RandomAgent) Name() string {
	return RandomAgentName
}

func (a *RandomAgent) Step(hand game.Hand, open game.Card) game.Card {
	playable := hand.Playable(open)
	return playable[a.rng.Intn(len(playable))]
}

func (a *RandomAgent) Reset() {}
