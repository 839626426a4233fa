package experiments

import (
	"os"
	"path/filepath"
	"time"

	"uno/agent"
	"uno/agent/qlearning"
	"uno/agent/strategic"
	"uno/config"
	"uno/engine"
	"uno/evolution"
	"uno/experiments/metrics"

	"github.com/pkg/errors"
	"github.com/rs/zerolog/log"
	"golang.org/x/exp/rand"
)

// Model file names inside the model directory.
const (
	LearnerModel   = "qlearning"
	StrategicModel = "strategic.pb"
)

// Match summarises one tournament of the pipeline.
type Match struct {
	Name      string
	Agent1    string
	Agent2    string
	Games     int
	Wins1     int
	Wins2     int
	MeanTurns float64
}

type Report struct {
	Dir           string // Directory of the metric records
	Matches       []Match
	Winner        *strategic.Agent // nil if the search is disabled
	WinnerChanged []int
}

// Run trains a learner against each configured opponent, tunes the strategic
// agent and evaluates the tuned agent against the random agent. Models go to
// the model directory, the learner trained against opponent o to
// <LearnerModel>_<o>, and per-game records to a new directory under the output
// directory.
func Run(cfg config.Config) (*Report, error) {
	seed := cfg.Seed
	if seed == 0 {
		seed = uint64(time.Now().UnixNano())
	}
	rng := rand.New(rand.NewSource(seed))

	writer, err := metrics.NewWriter(cfg.OutputDir, "training")
	if err != nil {
		return nil, err
	}
	if err := os.MkdirAll(cfg.ModelDir, 0755); err != nil {
		return nil, errors.Wrap(err, "failed to create model directory")
	}
	report := &Report{Dir: writer.Dir()}
	log.Info().Msgf("starting training run with seed %d, records in %s", seed, writer.Dir())

	if cfg.Training.Games > 0 && cfg.Training.Learner == "" {
		return nil, errors.New("training needs a learner")
	}

	// Every opponent trains a learner of its own. The first one is the
	// search's learner opponent.
	var learner *qlearning.Agent
	if cfg.Training.Games > 0 {
		for i, opponentConfig := range cfg.Training.Opponents {
			trainee, err := newLearner(cfg, rng.Uint64())
			if err != nil {
				return nil, err
			}
			opponent, err := agent.NewSeeded(opponentConfig, rng.Uint64())
			if err != nil {
				return nil, errors.WithMessagef(err, "training opponent %d", i+1)
			}
			name := "train_" + opponent.Name()
			match, err := play(writer, cfg, name, trainee, opponent, cfg.Training.Games, rng.Uint64())
			if err != nil {
				return nil, err
			}
			report.Matches = append(report.Matches, match)

			model := filepath.Join(cfg.ModelDir, LearnerModel+"_"+opponent.Name())
			if err := trainee.SaveModel(model); err != nil {
				return nil, err
			}
			log.Info().Msgf("stored learner model %s", model)
			if learner == nil {
				learner = trainee
			}
		}
	}
	if learner == nil && cfg.Training.Learner != "" {
		if learner, err = newLearner(cfg, rng.Uint64()); err != nil {
			return nil, err
		}
	}

	if !cfg.Search.Enabled {
		return report, nil
	}
	winner, changes, err := search(writer, cfg, learner, rng.Uint64())
	if err != nil {
		return nil, err
	}
	report.Winner, report.WinnerChanged = winner, changes

	if cfg.Search.EvaluationGames > 0 {
		random := engine.NewRandomAgent(rand.New(rand.NewSource(rng.Uint64())))
		match, err := play(writer, cfg, "evaluation", winner, random, cfg.Search.EvaluationGames, rng.Uint64())
		if err != nil {
			return nil, err
		}
		report.Matches = append(report.Matches, match)
	}
	return report, nil
}

func newLearner(cfg config.Config, seed uint64) (*qlearning.Agent, error) {
	a, err := agent.NewSeeded(cfg.Training.Learner, seed)
	if err != nil {
		return nil, errors.WithMessage(err, "learner")
	}
	learner, ok := a.(*qlearning.Agent)
	if !ok {
		return nil, errors.Errorf("learner %q is not a q-learning agent", cfg.Training.Learner)
	}
	return learner, nil
}

func search(writer *metrics.Writer, cfg config.Config, learner *qlearning.Agent, seed uint64) (*strategic.Agent, []int, error) {
	a, err := agent.NewSeeded(cfg.Search.Agent, seed)
	if err != nil {
		return nil, nil, errors.WithMessage(err, "search agent")
	}
	adam, ok := a.(*strategic.Agent)
	if !ok {
		return nil, nil, errors.Errorf("search agent %q is not a strategic agent", cfg.Search.Agent)
	}

	var opponent evolution.Opponent
	switch cfg.Search.Opponent {
	case "", engine.RandomAgentName:
	case config.LearnerOpponent:
		if learner == nil {
			return nil, nil, errors.New("search opponent is the learner but no learner is configured")
		}
		opponent = func(seed uint64) (engine.Agent, error) {
			return learner.Clone(seed), nil
		}
	default:
		if _, err := agent.NewSeeded(cfg.Search.Opponent, seed); err != nil {
			return nil, nil, errors.WithMessage(err, "search opponent")
		}
		opponent = func(seed uint64) (engine.Agent, error) {
			return agent.NewSeeded(cfg.Search.Opponent, seed)
		}
	}

	rules := cfg.Rules
	s, err := evolution.New(evolution.Config{
		Seed:            adam,
		Generations:     cfg.Search.Generations,
		PopulationSize:  cfg.Search.PopulationSize,
		Fitness:         evolution.TournamentFitness(cfg.Search.FitnessGames, opponent, &rules),
		CarryOver:       cfg.Search.CarryOver,
		MutationCoeff:   cfg.Search.MutationCoeff,
		FitnessFraction: cfg.Search.FitnessFraction,
		Workers:         cfg.Search.Workers,
		RandSeed:        seed,
	})
	if err != nil {
		return nil, nil, err
	}
	winner, err := s.Run()
	if err != nil {
		return nil, nil, err
	}

	records := make([]metrics.GenerationRecord, 0, len(s.Metrics()))
	for _, m := range s.Metrics() {
		records = append(records, metrics.GenerationRecord{Run: s.RunID(), GenerationMetric: m})
	}
	if err := writer.WriteGenerationRecords("search", records); err != nil {
		return nil, nil, err
	}

	model := filepath.Join(cfg.ModelDir, StrategicModel)
	if err := winner.SaveModel(model); err != nil {
		return nil, nil, err
	}
	log.Info().Msgf("stored search winner %s with genome %v in %s", winner.ID(), winner.Genome(), model)
	return winner, s.WinnerChanged(), nil
}

// play runs one tournament and stores its game records under name.
func play(writer *metrics.Writer, cfg config.Config, name string, agent1, agent2 engine.Agent, games int, seed uint64) (Match, error) {
	log.Info().Msgf("starting %s: %s vs %s for %d games...", name, agent1.Name(), agent2.Name(), games)
	rules := cfg.Rules
	result, err := engine.RunTournament(engine.TournamentConfig{
		Iterations: games,
		Agent1:     agent1,
		Agent2:     agent2,
		Verbose:    cfg.Verbose,
		Seed:       seed,
		Rules:      &rules,
		Metrics:    true,
	})
	if err != nil {
		return Match{}, errors.WithMessage(err, name)
	}

	records := make([]metrics.GameRecord, 0, len(result.Games))
	for i, m := range result.Games {
		records = append(records, metrics.GameRecord{ID: i + 1, Run: result.RunID, GameMetric: m})
	}
	if err := writer.WriteGameRecords(name, records); err != nil {
		return Match{}, err
	}

	match := Match{
		Name:      name,
		Agent1:    agent1.Name(),
		Agent2:    agent2.Name(),
		Games:     games,
		Wins1:     result.Wins(agent1.Name()),
		Wins2:     result.Wins(agent2.Name()),
		MeanTurns: result.MeanTurns(),
	}
	log.Info().Msgf("completed %s in %s: %s won %d, %s won %d, %.1f turns per game",
		name, result.Elapsed, match.Agent1, match.Wins1, match.Agent2, match.Wins2, match.MeanTurns)
	return match, nil
}
