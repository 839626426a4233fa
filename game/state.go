package game

import (
	"golang.org/x/exp/rand"
)

// Feature indices of a State.
const (
	FeatOpen = iota
	// Held cards per action category: numeric cards per color (capped at 2),
	// special and wild cards (capped at 1).
	FeatRed
	FeatGreen
	FeatBlue
	FeatYellow
	FeatSkip
	FeatReverse
	FeatDrawTwo
	FeatDrawFour
	FeatColorChange
	// Playable cards per color and special category (capped at 1).
	FeatRedPlayable
	FeatGreenPlayable
	FeatBluePlayable
	FeatYellowPlayable
	FeatSkipPlayable
	FeatReversePlayable
	FeatDrawTwoPlayable
	NumFeatures
)

const numPlayableFeatures = NumFeatures - FeatRedPlayable

// State is the discrete view of a hand against the open card used as the key of
// the learning agent's tables.
type State [NumFeatures]uint8

func heldFeature(a Action) int {
	return FeatRed + int(a)
}

func playableFeature(a Action) (int, bool) {
	if int(a) >= numPlayableFeatures {
		return 0, false
	}
	return FeatRedPlayable + int(a), true
}

func heldCap(a Action) uint8 {
	if a <= ActYellow {
		return 2
	}
	return 1
}

// EncodeState derives the state of hand against open. Card order within the hand
// does not matter. A wild open color is replaced by a random color so the state
// space stays finite.
func EncodeState(hand Hand, open Card, rng *rand.Rand) State {
	var s State
	color := open.Color
	if color == Wild {
		color = Colors[rng.Intn(len(Colors))]
	}
	s[FeatOpen] = uint8(color)

	for _, card := range hand {
		a := ActionOf(card)
		f := heldFeature(a)
		if s[f] < heldCap(a) {
			s[f]++
		}
		if !card.Playable(open) {
			continue
		}
		if f, ok := playableFeature(a); ok {
			s[f] = 1
		}
	}
	return s
}

// Held returns the capped number of held cards of the action's category.
func (s State) Held(a Action) uint8 {
	return s[heldFeature(a)]
}

// EnumerateStates lists every state EncodeState can produce, i.e. all feature
// combinations where a category is only playable if it is held.
func EnumerateStates() []State {
	states := []State{{}}
	expand := func(feature int, limit uint8, allowed func(State, uint8) bool) {
		next := make([]State, 0, len(states)*int(limit+1))
		for _, s := range states {
			for v := uint8(0); v <= limit; v++ {
				if allowed != nil && !allowed(s, v) {
					continue
				}
				s[feature] = v
				next = append(next, s)
			}
		}
		states = next
	}

	expand(FeatOpen, uint8(len(Colors)-1), nil)
	for _, a := range Actions {
		expand(heldFeature(a), heldCap(a), nil)
	}
	for _, a := range Actions {
		if f, ok := playableFeature(a); ok {
			expand(f, 1, func(s State, v uint8) bool {
				return v == 0 || s.Held(a) > 0
			})
		}
	}
	return states
}

func (s State) valid() bool {
	if s[FeatOpen] >= uint8(len(Colors)) {
		return false
	}
	for _, a := range Actions {
		if s.Held(a) > heldCap(a) {
			return false
		}
		f, ok := playableFeature(a)
		if !ok {
			continue
		}
		if s[f] > 1 || (s[f] == 1 && s.Held(a) == 0) {
			return false
		}
	}
	return true
}
