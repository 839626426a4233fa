package engine

import (
	"time"

	"uno/experiments/metrics"
	"uno/meta"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"golang.org/x/exp/rand"
)

type TournamentConfig struct {
	Iterations int
	Agent1     Agent
	Agent2     Agent  // nil plays uniformly random legal cards
	Verbose    bool   // Narrate every turn through the global logger
	Seed       uint64 // 0 seeds from the clock
	Rules      *Rules // nil uses DefaultRules
	Metrics    bool   // Collect a GameMetric per game
}

type Result struct {
	RunID    string
	Winners  []string // Winner name per game, "" if the turn limit was hit
	Turns    []int    // Turn resolutions per game
	Starters []string // Name of the agent acting first per game
	Elapsed  time.Duration
	Games    []metrics.GameMetric
}

// Wins counts the games won by the agent with the given name.
func (r *Result) Wins(name string) int {
	wins := 0
	for _, w := range r.Winners {
		if w == name {
			wins++
		}
	}
	return wins
}

func (r *Result) MeanTurns() float64 {
	if len(r.Turns) == 0 {
		return 0
	}
	total := 0
	for _, t := range r.Turns {
		total += t
	}
	return float64(total) / float64(len(r.Turns))
}

// RunTournament plays Iterations games between the two agents. Agent1 acts first
// in even iterations and Agent2 in odd ones.
func RunTournament(cfg TournamentConfig) (*Result, error) {
	if cfg.Iterations <= 0 {
		return nil, meta.Invalid("Iterations", "must be positive, got %d", cfg.Iterations)
	}
	if cfg.Agent1 == nil {
		return nil, meta.Invalid("Agent1", "is required")
	}
	rules := DefaultRules()
	if cfg.Rules != nil {
		rules = *cfg.Rules
	}
	seed := cfg.Seed
	if seed == 0 {
		seed = uint64(time.Now().UnixNano())
	}
	rng := rand.New(rand.NewSource(seed))

	agent2 := cfg.Agent2
	if agent2 == nil {
		agent2 = NewRandomAgent(rand.New(rand.NewSource(rng.Uint64())))
	}
	if agent2.Name() == cfg.Agent1.Name() {
		return nil, meta.Invalid("Agent2", "shares the name %q with Agent1", agent2.Name())
	}

	logger := zerolog.Nop()
	if cfg.Verbose {
		logger = log.Logger
	}

	result := &Result{
		RunID:    uuid.NewString(),
		Winners:  make([]string, 0, cfg.Iterations),
		Turns:    make([]int, 0, cfg.Iterations),
		Starters: make([]string, 0, cfg.Iterations),
	}
	log.Debug().Msgf("tournament %s: %s vs %s for %d games", result.RunID, cfg.Agent1.Name(), agent2.Name(), cfg.Iterations)

	start := time.Now()
	for i := 0; i < cfg.Iterations; i++ {
		first, second := cfg.Agent1, agent2
		if i%2 == 1 {
			first, second = agent2, cfg.Agent1
		}

		options := []Option{WithRules(rules), WithRand(rng), WithLogger(logger)}
		if cfg.Metrics {
			options = append(options, WithCollector(metrics.NewCollector()))
		}
		g, err := NewGame(NewPlayer(first), NewPlayer(second), options...)
		if err != nil {
			return nil, errors.WithMessagef(err, "game %d", i+1)
		}
		outcome, err := g.Play()
		if err != nil {
			return nil, errors.WithMessagef(err, "game %d", i+1)
		}

		result.Winners = append(result.Winners, outcome.Winner)
		result.Turns = append(result.Turns, outcome.Turns)
		result.Starters = append(result.Starters, first.Name())
		if cfg.Metrics {
			result.Games = append(result.Games, g.Metric())
		}
	}
	result.Elapsed = time.Since(start)

	log.Debug().Msgf("tournament %s finished in %s", result.RunID, result.Elapsed)
	return result, nil
}
