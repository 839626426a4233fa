package qlearning

import (
	"uno/game"
)

// Rewards is the fixed immediate desirability of playing an action in a state.
type Rewards struct {
	Base [game.NumActions]float64
	// KeepColor is added for a numeric card of a color held at least twice.
	KeepColor float64
	// WildWaste is added for a wild card played while a colored card was playable.
	WildWaste float64
}

func DefaultRewards() Rewards {
	return Rewards{
		Base: [game.NumActions]float64{
			game.ActRed:         1,
			game.ActGreen:       1,
			game.ActBlue:        1,
			game.ActYellow:      1,
			game.ActSkip:        2,
			game.ActReverse:     2,
			game.ActDrawTwo:     3,
			game.ActDrawFour:    3,
			game.ActColorChange: 1,
		},
		KeepColor: 1,
		WildWaste: -2,
	}
}

func (r Rewards) Reward(s game.State, a game.Action) float64 {
	reward := r.Base[a]
	switch {
	case a <= game.ActYellow:
		if s.Held(a) >= 2 {
			reward += r.KeepColor
		}
	case a == game.ActDrawFour || a == game.ActColorChange:
		for f := game.FeatRedPlayable; f < game.NumFeatures; f++ {
			if s[f] > 0 {
				reward += r.WildWaste
				break
			}
		}
	}
	return reward
}
