package engine

import (
	"uno/meta"
)

// Rules holds the knobs on which variants of the game disagree.
type Rules struct {
	HandSize int `yaml:"hand_size"`
	// NumericStarter redraws the first open card until it is a numeric card.
	// Rejected cards go to the discard pile.
	NumericStarter bool `yaml:"numeric_starter"`
	// FirstTurnNumber is the number reported for the first turn (0 or 1).
	FirstTurnNumber int `yaml:"first_turn_number"`
	// ExtraTurnOnSkip gives the player of a skip or reverse another turn.
	ExtraTurnOnSkip bool `yaml:"extra_turn_on_skip"`
	// ExtraTurnOnEvenChain gives the initiator of a penalty chain another turn
	// when the chain came back to them.
	ExtraTurnOnEvenChain bool `yaml:"extra_turn_on_even_chain"`
	// MaxTurns ends a game without winner after that many turns (0 = unlimited).
	MaxTurns int `yaml:"max_turns"`
}

func DefaultRules() Rules {
	return Rules{
		HandSize:             meta.HAND_SIZE,
		NumericStarter:       true,
		FirstTurnNumber:      1,
		ExtraTurnOnSkip:      true,
		ExtraTurnOnEvenChain: true,
	}
}

// Validate reports the first invalid rule.
func (r Rules) Validate() error {
	if r.HandSize <= 0 {
		return meta.Invalid("HandSize", "must be positive, got %d", r.HandSize)
	}
	if 2*r.HandSize >= meta.DECK_SIZE {
		return meta.Invalid("HandSize", "%d cards per player do not leave a starter", r.HandSize)
	}
	if r.FirstTurnNumber != 0 && r.FirstTurnNumber != 1 {
		return meta.Invalid("FirstTurnNumber", "must be 0 or 1, got %d", r.FirstTurnNumber)
	}
	if r.MaxTurns < 0 {
		return meta.Invalid("MaxTurns", "must not be negative, got %d", r.MaxTurns)
	}
	return nil
}
