package qlearning

import (
	"math"
	"time"

	"uno/game"
	"uno/meta"

	"github.com/pkg/errors"
	"github.com/rs/zerolog/log"
	"golang.org/x/exp/rand"
)

const DefaultName = "q-learning"

type Config struct {
	Name           string   `mapstructure:"name"`
	Epsilon        float64  `mapstructure:"epsilon"` // Probability of a random legal action
	Gamma          float64  `mapstructure:"gamma"`   // Discount of the next estimate
	Alpha          float64  `mapstructure:"alpha"`   // Step size, 0 decays with 1/visits
	AlphaFloor     float64  `mapstructure:"alpha_floor"`
	AlphaUnvisited float64  `mapstructure:"alpha_unvisited"`
	Model          string   `mapstructure:"model"` // Table path prefix, "" for a fresh model
	Learn          bool     `mapstructure:"learn"`
	Seed           uint64   `mapstructure:"seed"` // 0 seeds from the clock
	Rewards        *Rewards `mapstructure:"-"`
}

func DefaultConfig() Config {
	return Config{
		Name:           DefaultName,
		Epsilon:        0.1,
		Gamma:          0.2,
		Alpha:          0,
		AlphaFloor:     0.05,
		AlphaUnvisited: 0.99,
		Learn:          true,
	}
}

func (c Config) validate() error {
	if c.Name == "" {
		return meta.Invalid("Name", "is required")
	}
	for _, p := range []struct {
		field string
		value float64
	}{
		{"Epsilon", c.Epsilon},
		{"Gamma", c.Gamma},
		{"Alpha", c.Alpha},
		{"AlphaFloor", c.AlphaFloor},
		{"AlphaUnvisited", c.AlphaUnvisited},
	} {
		if p.value < 0 || p.value > 1 {
			return meta.Invalid(p.field, "must be in [0, 1], got %v", p.value)
		}
	}
	return nil
}

// Agent picks actions epsilon-greedily from a value table and learns it with a
// one-step temporal-difference update.
type Agent struct {
	cfg     Config
	q       *Table
	visits  *Table
	rewards Rewards
	rng     *rand.Rand

	prevState  game.State
	prevAction game.Action
	hasPrev    bool
}

// New creates an agent. A model that cannot be loaded is replaced by fresh
// tables.
func New(cfg Config) (*Agent, error) {
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	seed := cfg.Seed
	if seed == 0 {
		seed = uint64(time.Now().UnixNano())
	}
	a := &Agent{
		cfg:     cfg,
		q:       NewTable(),
		visits:  NewTable(),
		rewards: DefaultRewards(),
		rng:     rand.New(rand.NewSource(seed)),
	}
	if cfg.Rewards != nil {
		a.rewards = *cfg.Rewards
	}
	if cfg.Model != "" {
		q, visits, err := Load(cfg.Model)
		if err != nil {
			log.Warn().Err(err).Msgf("existing model %s could not be loaded, a new model is being created", cfg.Model)
		} else {
			a.q, a.visits = q, visits
		}
	}
	return a, nil
}

func (a *Agent) Name() string {
	return a.cfg.Name
}

// Step chooses a legal action for the hand, credits the previous action when
// learning and returns a playable card of the chosen category.
func (a *Agent) Step(hand game.Hand, open game.Card) game.Card {
	playable := hand.Playable(open)
	state := game.EncodeState(hand, open, a.rng)
	legal := game.EncodeActions(playable).Legal()
	if len(legal) == 0 {
		panic("qlearning: step without a playable card")
	}

	action := a.choose(state, legal)

	if a.cfg.Learn {
		if a.hasPrev {
			a.Update(a.prevState, a.prevAction, state, action)
		}
		a.prevState, a.prevAction, a.hasPrev = state, action, true
	}

	card, _ := game.CardFor(action, playable)
	return card
}

func (a *Agent) choose(state game.State, legal []game.Action) game.Action {
	if a.rng.Float64() < a.cfg.Epsilon {
		return legal[a.rng.Intn(len(legal))]
	}

	// Shuffle first so that ties resolve uniformly at random
	a.rng.Shuffle(len(legal), func(i, j int) {
		legal[i], legal[j] = legal[j], legal[i]
	})
	best, bestValue := legal[0], math.Inf(-1)
	for _, action := range legal {
		if v := a.q.Get(state, action); v > bestValue {
			best, bestValue = action, v
		}
	}
	return best
}

// Update moves the estimate of (prevState, prevAction) towards its immediate
// reward plus the discounted estimate of (state, action).
func (a *Agent) Update(prevState game.State, prevAction game.Action, state game.State, action game.Action) {
	alpha := a.stepSize(prevState, prevAction)
	reward := a.rewards.Reward(prevState, prevAction)
	prevQ := a.q.Get(prevState, prevAction)
	nextQ := a.q.Get(state, action)

	a.q.Set(prevState, prevAction, (1-alpha)*prevQ+alpha*(reward+a.cfg.Gamma*nextQ))
	a.visits.Add(prevState, prevAction, 1)
}

func (a *Agent) stepSize(s game.State, action game.Action) float64 {
	if a.cfg.Alpha != 0 {
		return a.cfg.Alpha
	}
	alpha := a.cfg.AlphaUnvisited
	if n := a.visits.Get(s, action); n != 0 {
		alpha = 1 / n
	}
	return max(alpha, a.cfg.AlphaFloor)
}

// Reset forgets the previous action; the tables persist across games.
func (a *Agent) Reset() {
	a.hasPrev = false
}

// SetLearn switches updates on or off.
func (a *Agent) SetLearn(learn bool) {
	a.cfg.Learn = learn
	a.hasPrev = false
}

// Clone returns a frozen agent sharing this agent's tables, with its own random
// generator seeded from seed. Clones of a frozen agent may play concurrently.
func (a *Agent) Clone(seed uint64) *Agent {
	clone := &Agent{
		cfg:     a.cfg,
		q:       a.q,
		visits:  a.visits,
		rewards: a.rewards,
		rng:     rand.New(rand.NewSource(seed)),
	}
	clone.cfg.Learn = false
	return clone
}

func (a *Agent) Config() Config {
	return a.cfg
}

func (a *Agent) Q(s game.State, action game.Action) float64 {
	return a.q.Get(s, action)
}

func (a *Agent) Visits(s game.State, action game.Action) float64 {
	return a.visits.Get(s, action)
}

// SaveModel writes the tables to path, or to the configured model if path is "".
func (a *Agent) SaveModel(path string) error {
	if path == "" {
		path = a.cfg.Model
	}
	if path == "" {
		return errors.New("no model path to save to")
	}
	return errors.WithMessagef(Save(path, a.q, a.visits), "failed to save model %s", path)
}
