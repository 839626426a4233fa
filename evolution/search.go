package evolution

import (
	"math"
	"time"

	"uno/agent/strategic"
	"uno/experiments/metrics"
	"uno/meta"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"github.com/rs/zerolog/log"
	"golang.org/x/exp/rand"
	"golang.org/x/exp/slices"
)

type Config struct {
	Seed            *strategic.Agent // First individual of the first generation
	Generations     int
	PopulationSize  int
	Fitness         Fitness
	CarryOver       int     // Fittest individuals copied into the next generation
	MutationCoeff   float64 // In (0, 1)
	FitnessFraction float64 // Share of the ranked generation allowed to reproduce, in (0, 1]
	Workers         int     // Concurrent fitness evaluations, 0 uses runtime.NumCPU
	RandSeed        uint64  // 0 seeds from the clock
}

func DefaultConfig() Config {
	return Config{
		Generations:     10,
		PopulationSize:  50,
		CarryOver:       10,
		MutationCoeff:   0.25,
		FitnessFraction: 0.25,
		Workers:         meta.WORKERS,
	}
}

func (c Config) validate() error {
	switch {
	case c.Seed == nil:
		return meta.Invalid("Seed", "is required")
	case c.Fitness == nil:
		return meta.Invalid("Fitness", "is required")
	case c.Generations <= 0:
		return meta.Invalid("Generations", "must be positive, got %d", c.Generations)
	case c.PopulationSize <= 0:
		return meta.Invalid("PopulationSize", "must be positive, got %d", c.PopulationSize)
	case c.CarryOver < 0 || c.CarryOver >= c.PopulationSize:
		return meta.Invalid("CarryOver", "must be in [0, %d), got %d", c.PopulationSize, c.CarryOver)
	case c.MutationCoeff <= 0 || c.MutationCoeff >= 1:
		return meta.Invalid("MutationCoeff", "must be in (0, 1), got %v", c.MutationCoeff)
	case c.FitnessFraction <= 0 || c.FitnessFraction > 1:
		return meta.Invalid("FitnessFraction", "must be in (0, 1], got %v", c.FitnessFraction)
	case c.fit() < 2:
		return meta.Invalid("FitnessFraction", "leaves %d of %d individuals to reproduce, need at least one pair", c.fit(), c.PopulationSize)
	case c.Workers < 0:
		return meta.Invalid("Workers", "must not be negative, got %d", c.Workers)
	}
	return nil
}

// fit is the even number of ranked individuals allowed to reproduce.
func (c Config) fit() int {
	fit := int(math.Floor(c.FitnessFraction * float64(c.PopulationSize)))
	return fit - fit%2
}

// Individual is a scored member of a generation.
type Individual struct {
	Agent *strategic.Agent
	Wins  int
}

// Search evolves the genome of the strategic agent.
type Search struct {
	cfg        Config
	runID      string
	rng        *rand.Rand
	evaluator  *evaluator
	population []*strategic.Agent
	generation int
	winner     *strategic.Agent
	changes    []int
	metrics    []metrics.GenerationMetric
}

// New validates the configuration and creates the first generation.
func New(cfg Config) (*Search, error) {
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	seed := cfg.RandSeed
	if seed == 0 {
		seed = uint64(time.Now().UnixNano())
	}
	rng := rand.New(rand.NewSource(seed))
	return &Search{
		cfg:        cfg,
		runID:      uuid.NewString(),
		rng:        rng,
		evaluator:  newEvaluator(cfg.Fitness, cfg.Workers),
		population: Genesis(cfg.Seed, cfg.PopulationSize, cfg.MutationCoeff, rng),
	}, nil
}

// Run evaluates Generations generations, regenerating the population between
// them, and returns the fittest individual of the last one.
func (s *Search) Run() (*strategic.Agent, error) {
	log.Info().Msgf("search %s: %d generations of %d individuals", s.runID, s.cfg.Generations, s.cfg.PopulationSize)
	for g := 0; g < s.cfg.Generations; g++ {
		ranked, err := s.RunGeneration()
		if err != nil {
			return nil, err
		}
		if g < s.cfg.Generations-1 {
			s.population = s.Regenerate(ranked)
		}
	}
	log.Info().Msgf("search %s: winner %s changed in generations %v", s.runID, s.winner.ID(), s.changes)
	return s.winner, nil
}

// RunGeneration scores the current population and returns it ranked by
// descending wins. Individuals with equal wins keep their population order.
func (s *Search) RunGeneration() ([]Individual, error) {
	start := time.Now()
	seeds := make([]uint64, len(s.population))
	for i := range seeds {
		seeds[i] = s.rng.Uint64()
	}
	wins, err := s.evaluator.evaluate(s.population, seeds)
	if err != nil {
		return nil, errors.WithMessagef(err, "generation %d", s.generation)
	}

	ranked := make([]Individual, len(s.population))
	total := 0
	for i, agent := range s.population {
		ranked[i] = Individual{Agent: agent, Wins: wins[i]}
		total += wins[i]
	}
	slices.SortStableFunc(ranked, func(a, b Individual) int {
		return b.Wins - a.Wins
	})

	best := ranked[0]
	changed := s.winner == nil || s.winner.ID() != best.Agent.ID()
	if changed {
		s.changes = append(s.changes, s.generation)
		s.winner = best.Agent
	}

	metric := metrics.GenerationMetric{
		Generation:    s.generation,
		BestWins:      best.Wins,
		MeanWins:      float64(total) / float64(len(ranked)),
		BestID:        best.Agent.ID().String(),
		WinnerChanged: changed,
		Duration:      time.Since(start),
	}
	s.metrics = append(s.metrics, metric)
	log.Info().Msgf("generation %d: best %s with %d wins, mean %.2f wins (%s)",
		metric.Generation, metric.BestID, metric.BestWins, metric.MeanWins, metric.Duration)

	s.generation++
	return ranked, nil
}

// Regenerate builds the next population from a ranked generation: the CarryOver
// fittest individuals unchanged, then children of the fittest pairs.
func (s *Search) Regenerate(ranked []Individual) []*strategic.Agent {
	next := make([]*strategic.Agent, 0, s.cfg.PopulationSize)
	for _, ind := range ranked[:s.cfg.CarryOver] {
		next = append(next, ind.Agent)
	}

	mothers, fathers := pairs(ranked, s.cfg.fit())
	name := s.cfg.Seed.Name()
	for i := 0; len(next) < s.cfg.PopulationSize; i++ {
		mother, father := mothers[i%len(mothers)], fathers[i%len(fathers)]
		child := Reproduce(mother.Genome(), father.Genome(), s.cfg.MutationCoeff, s.rng)
		next = append(next, newIndividual(name, child, s.rng))
	}
	return next
}

func (s *Search) RunID() string {
	return s.runID
}

// Population returns the individuals of the generation to be evaluated next.
func (s *Search) Population() []*strategic.Agent {
	return s.population
}

// Winner returns the fittest individual of the last evaluated generation.
func (s *Search) Winner() *strategic.Agent {
	return s.winner
}

// WinnerChanged lists the generations whose fittest individual differed from
// the previous generation's, starting with generation 0.
func (s *Search) WinnerChanged() []int {
	return s.changes
}

func (s *Search) Metrics() []metrics.GenerationMetric {
	return s.metrics
}
