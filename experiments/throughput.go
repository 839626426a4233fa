package experiments

import (
	"sync"
	"time"

	"uno/agent"
	"uno/config"
	"uno/engine"

	"github.com/pkg/errors"
	"github.com/rs/zerolog/log"
)

// Throughput is the simulation speed reached with a number of goroutines.
type Throughput struct {
	Goroutines  int
	Games       int
	Elapsed     time.Duration
	GamesPerSec float64
}

// RunThroughputExperiment plays games between two agents spread over an
// increasing number of goroutines. Every goroutine owns its agents and games.
func RunThroughputExperiment(cfg config.Config, agent1, agent2 string, games int, goroutines []int) ([]Throughput, error) {
	if games <= 0 {
		return nil, errors.Errorf("games must be positive, got %d", games)
	}
	log.Info().Msgf("starting throughput experiment: %s vs %s, %d games per run...", agent1, agent2, games)

	results := make([]Throughput, 0, len(goroutines))
	for _, n := range goroutines {
		if n <= 0 {
			return nil, errors.Errorf("goroutines must be positive, got %d", n)
		}
		elapsed, err := runParallel(cfg, agent1, agent2, games, n)
		if err != nil {
			return nil, err
		}
		t := Throughput{
			Goroutines:  n,
			Games:       games,
			Elapsed:     elapsed,
			GamesPerSec: float64(games) / elapsed.Seconds(),
		}
		results = append(results, t)
		log.Info().Msgf("completed %d games on %d goroutines in %s (%.0f games/s)", t.Games, t.Goroutines, t.Elapsed, t.GamesPerSec)
	}
	return results, nil
}

func runParallel(cfg config.Config, config1, config2 string, games, goroutines int) (time.Duration, error) {
	errs := make([]error, goroutines)
	rules := cfg.Rules

	var wg sync.WaitGroup
	start := time.Now()
	for i := 0; i < goroutines; i++ {
		// Spread the remainder over the first goroutines
		share := games / goroutines
		if i < games%goroutines {
			share++
		}
		if share == 0 {
			continue
		}
		wg.Add(1)
		go func(i, share int) {
			defer wg.Done()
			seed := cfg.Seed + uint64(i)*2 + 1
			agent1, err := agent.NewSeeded(config1, seed)
			if err != nil {
				errs[i] = err
				return
			}
			agent2, err := agent.NewSeeded(config2, seed+1)
			if err != nil {
				errs[i] = err
				return
			}
			_, errs[i] = engine.RunTournament(engine.TournamentConfig{
				Iterations: share,
				Agent1:     agent1,
				Agent2:     agent2,
				Seed:       seed,
				Rules:      &rules,
			})
		}(i, share)
	}
	wg.Wait()
	elapsed := time.Since(start)

	for _, err := range errs {
		if err != nil {
			return 0, err
		}
	}
	return elapsed, nil
}
