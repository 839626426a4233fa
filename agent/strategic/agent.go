package strategic

import (
	"math"
	"time"

	"uno/game"
	"uno/meta"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"github.com/rs/zerolog/log"
	"golang.org/x/exp/rand"
)

const DefaultName = "strategic"

type Config struct {
	Name       string    `mapstructure:"name"`
	Model      string    `mapstructure:"model"`      // Genome file, tried before Parameters
	Parameters []float64 `mapstructure:"parameters"` // Explicit genome
	Seed       uint64    `mapstructure:"seed"`       // 0 seeds from the clock
}

func DefaultConfig() Config {
	g := DefaultGenome()
	return Config{
		Name:       DefaultName,
		Parameters: g[:],
	}
}

// Agent plays the playable card with the highest rating under its genome.
type Agent struct {
	id     uuid.UUID
	name   string
	model  string
	genome Genome
	rng    *rand.Rand

	seen      Seen
	cardCount int
	observed  bool      // The game reports open card changes through Observe
	last      game.Card // Open card after the agent's last play
	hasLast   bool
}

// New creates an agent from a stored genome, falling back to the explicit
// parameters when the model cannot be loaded.
func New(cfg Config) (*Agent, error) {
	if cfg.Name == "" {
		return nil, meta.Invalid("Name", "is required")
	}

	var genome Genome
	loaded := false
	if cfg.Model != "" {
		g, err := LoadGenome(cfg.Model)
		if err != nil {
			log.Warn().Err(err).Msgf("no genome found at %s, will use specified parameters", cfg.Model)
		} else {
			genome, loaded = g, true
		}
	}
	if !loaded {
		if cfg.Parameters == nil {
			return nil, meta.Invalid("Parameters", "no model was found and no parameters were specified")
		}
		if len(cfg.Parameters) != meta.GENOME_SIZE {
			return nil, meta.Invalid("Parameters", "has %d weights, want %d", len(cfg.Parameters), meta.GENOME_SIZE)
		}
		copy(genome[:], cfg.Parameters)
	}
	if err := genome.validate(); err != nil {
		return nil, err
	}

	seed := cfg.Seed
	if seed == 0 {
		seed = uint64(time.Now().UnixNano())
	}
	a := NewFromGenome(cfg.Name, genome, rand.New(rand.NewSource(seed)))
	a.model = cfg.Model
	return a, nil
}

// NewFromGenome creates an agent with a fresh identity.
func NewFromGenome(name string, genome Genome, rng *rand.Rand) *Agent {
	return &Agent{
		id:     uuid.New(),
		name:   name,
		genome: genome,
		rng:    rng,
	}
}

func (a *Agent) Name() string {
	return a.name
}

func (a *Agent) ID() uuid.UUID {
	return a.id
}

func (a *Agent) Genome() Genome {
	return a.genome
}

// Step returns the best rated playable card. Ties go to the card that comes
// first in the hand.
//
// Unless the game reports open card changes through Observe, Step infers them:
// the incoming open card counts unless it is still the agent's own last play,
// and the returned card counts as the next change.
func (a *Agent) Step(hand game.Hand, open game.Card) game.Card {
	playable := hand.Playable(open)
	if len(playable) == 0 {
		panic("strategic: step without a playable card")
	}
	if !a.observed && !(a.hasLast && open == a.last) {
		a.seen.Add(open)
	}
	a.cardCount++

	var best game.Card
	bestScore := math.Inf(-1)
	for _, card := range playable {
		if score := a.rate(card, hand); score > bestScore {
			best, bestScore = card, score
		}
	}

	if !a.observed {
		a.last, a.hasLast = best, true
		if best.Value.IsWild() {
			a.last.Color = a.resolve(best, hand)
		}
		a.seen.Add(a.last)
	}
	return best
}

// Observe records a change of the open card.
func (a *Agent) Observe(open game.Card) {
	a.observed = true
	a.seen.Add(open)
}

// resolve returns the color a wild card takes when played out of hand.
func (a *Agent) resolve(card game.Card, hand game.Hand) game.Color {
	rest := make(game.Hand, len(hand))
	copy(rest, hand)
	rest.Remove(card)
	return rest.MajorityColor(a.rng)
}

func (a *Agent) rate(card game.Card, hand game.Hand) float64 {
	color := card.Color
	if card.Value.IsWild() {
		color = a.resolve(card, hand)
	}
	return Rate(card, color, hand, &a.seen, a.cardCount, a.genome)
}

// Reset clears the per-game counters. The genome is kept.
func (a *Agent) Reset() {
	a.seen = Seen{}
	a.cardCount = 0
	a.observed = false
	a.hasLast = false
}

// SaveModel writes the genome to path, or to the configured model if path is "".
func (a *Agent) SaveModel(path string) error {
	if path == "" {
		path = a.model
	}
	if path == "" {
		return errors.New("no model path to save to")
	}
	return SaveGenome(path, a.genome)
}
