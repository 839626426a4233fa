package evolution

import (
	"uno/agent/strategic"
	"uno/engine"

	"github.com/pkg/errors"
)

// Fitness scores an individual. seed is private to the evaluation so that
// concurrent evaluations never share a random stream.
type Fitness func(agent *strategic.Agent, seed uint64) (int, error)

// Opponent builds the adversary of one fitness evaluation. A nil Opponent plays
// uniformly random legal cards.
type Opponent func(seed uint64) (engine.Agent, error)

// TournamentFitness counts the games the individual wins in a tournament of the
// given length against a fresh opponent.
func TournamentFitness(games int, opponent Opponent, rules *engine.Rules) Fitness {
	return func(agent *strategic.Agent, seed uint64) (int, error) {
		var adversary engine.Agent
		if opponent != nil {
			var err error
			if adversary, err = opponent(seed); err != nil {
				return 0, errors.WithMessagef(err, "failed to build the opponent of %s", agent.ID())
			}
		}
		result, err := engine.RunTournament(engine.TournamentConfig{
			Iterations: games,
			Agent1:     agent,
			Agent2:     adversary,
			Seed:       seed,
			Rules:      rules,
		})
		if err != nil {
			return 0, errors.WithMessagef(err, "failed to evaluate %s", agent.ID())
		}
		return result.Wins(agent.Name()), nil
	}
}
