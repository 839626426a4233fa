package engine

import (
	"time"

	"uno/experiments/metrics"
	"uno/game"

	"github.com/pkg/errors"
	"github.com/rs/zerolog"
	"golang.org/x/exp/rand"
)

type Option func(g *Game)

// Outcome is the result of a finished game.
type Outcome struct {
	Winner     string // "" if the turn limit was reached
	Turns      int    // Completed turn resolutions
	TurnNumber int    // Number of the last turn; extra turns keep the number
	Starter    game.Card
}

// Game drives two players from the deal to the first empty hand.
type Game struct {
	players [2]*Player
	deck    *game.Deck
	open    game.Card
	rules   Rules
	rng     *rand.Rand
	logger  zerolog.Logger
	metrics metrics.Collector
	metric  metrics.GameMetric
	turns   int
}

func WithRules(rules Rules) Option {
	return func(g *Game) {
		g.rules = rules
	}
}

func WithRand(rng *rand.Rand) Option {
	return func(g *Game) {
		if rng != nil {
			g.rng = rng
		}
	}
}

func WithLogger(logger zerolog.Logger) Option {
	return func(g *Game) {
		g.logger = logger
	}
}

func WithCollector(collector metrics.Collector) Option {
	return func(g *Game) {
		if collector != nil {
			g.metrics = collector
		}
	}
}

// WithDeck replaces the fresh shuffled deck, e.g. with a stacked one.
func WithDeck(deck *game.Deck) Option {
	return func(g *Game) {
		g.deck = deck
	}
}

// NewGame resets both agents, deals the hands and flips the starting open card.
// Player 1 acts first.
func NewGame(player1, player2 *Player, options ...Option) (*Game, error) {
	g := &Game{ // Default values
		players: [2]*Player{player1, player2},
		rules:   DefaultRules(),
		logger:  zerolog.Nop(),
		metrics: metrics.NewDummyCollector(),
	}
	for _, option := range options {
		option(g)
	}
	if err := g.rules.Validate(); err != nil {
		return nil, err
	}
	if g.rng == nil {
		g.rng = rand.New(rand.NewSource(uint64(time.Now().UnixNano())))
	}
	if g.deck == nil {
		g.deck = game.NewStandardDeck(g.rng)
	}

	for _, p := range g.players {
		p.Hand = p.Hand[:0]
		p.Agent.Reset()
	}
	for i := 0; i < g.rules.HandSize; i++ {
		for _, p := range g.players {
			if _, err := g.draw(p); err != nil {
				return nil, errors.WithMessage(err, "failed to deal")
			}
		}
	}
	if err := g.flipStarter(); err != nil {
		return nil, errors.WithMessage(err, "failed to flip starter")
	}
	return g, nil
}

func (g *Game) flipStarter() error {
	for {
		card, err := g.deck.Draw()
		if err != nil {
			return err
		}
		// The open card is the top of the discard pile
		g.deck.Discard(card)
		if !g.rules.NumericStarter || card.Value.IsNumeric() {
			g.open = card
			g.logger.Debug().Msgf("initial open card is %s", card)
			g.reveal()
			return nil
		}
		g.logger.Debug().Msgf("initial open card %s has to be numeric", card)
	}
}

// reveal reports the current open card to the observing agents.
func (g *Game) reveal() {
	for _, p := range g.players {
		if o, ok := p.Agent.(Observer); ok {
			o.Observe(g.open)
		}
	}
}

// Open returns the card that defines what may be played.
func (g *Game) Open() game.Card {
	return g.open
}

func (g *Game) Players() [2]*Player {
	return g.players
}

// CardCount counts every card in the piles and the hands.
func (g *Game) CardCount() int {
	return g.deck.Len() + g.deck.DiscardLen() + len(g.players[0].Hand) + len(g.players[1].Hand)
}

// Metric returns what the collector recorded once the game is over.
func (g *Game) Metric() metrics.GameMetric {
	return g.metric
}

// Play resolves turns until a hand is empty.
func (g *Game) Play() (Outcome, error) {
	g.metrics.Start(g.players[0].Name, g.players[1].Name)
	starter := g.open

	turn := 0
	for {
		if g.rules.MaxTurns > 0 && g.turns >= g.rules.MaxTurns {
			g.logger.Debug().Msgf("stopped after %d turns (no winner yet)", g.turns)
			g.metric = g.metrics.Complete("", g.deck.Reshuffles())
			return g.outcome("", turn, starter), nil
		}

		active, passive := g.players[turn%2], g.players[(turn+1)%2]
		g.logger.Debug().Msgf("---------- TURN %d ---------- %s to play on %s", turn+g.rules.FirstTurnNumber, active.Name, g.open)

		result, err := g.takeTurn(active, passive)
		if err != nil {
			return Outcome{}, errors.WithMessagef(err, "turn %d", g.turns+1)
		}
		g.turns++
		g.metrics.AddTurn()
		if result.chain > 0 {
			g.metrics.AddPenaltyChain(result.chain)
		}

		for _, p := range []*Player{active, passive} {
			if p.HasWon() {
				g.logger.Debug().Msgf("%s has won", p.Name)
				g.metric = g.metrics.Complete(p.Name, g.deck.Reshuffles())
				return g.outcome(p.Name, turn, starter), nil
			}
		}

		if g.extraTurn(result) {
			g.logger.Debug().Msgf("%s has another turn", active.Name)
			continue
		}
		turn++
	}
}

func (g *Game) extraTurn(result turnResult) bool {
	if !result.played {
		return false
	}
	if g.rules.ExtraTurnOnSkip && (result.card.Value == game.Skip || result.card.Value == game.Reverse) {
		return true
	}
	return g.rules.ExtraTurnOnEvenChain && result.chain > 0 && result.chain%2 == 0
}

func (g *Game) outcome(winner string, turn int, starter game.Card) Outcome {
	return Outcome{
		Winner:     winner,
		Turns:      g.turns,
		TurnNumber: turn + g.rules.FirstTurnNumber,
		Starter:    starter,
	}
}
