package game

import "fmt"

// Action is the category of card a player plays: a numeric card of one color, a
// colored special card, or a wild card.
type Action uint8

const (
	ActRed Action = iota
	ActGreen
	ActBlue
	ActYellow
	ActSkip
	ActReverse
	ActDrawTwo
	ActDrawFour
	ActColorChange
	NumActions = iota
)

// Actions lists every action in table column order.
var Actions = [NumActions]Action{
	ActRed, ActGreen, ActBlue, ActYellow,
	ActSkip, ActReverse, ActDrawTwo,
	ActDrawFour, ActColorChange,
}

var actionNames = [NumActions]string{"RED", "GRE", "BLU", "YEL", "SKI", "REV", "PL2", "PL4", "COL"}

func (a Action) String() string {
	if int(a) < NumActions {
		return actionNames[a]
	}
	return fmt.Sprintf("Action(%d)", uint8(a))
}

// ParseAction is the inverse of Action.String.
func ParseAction(s string) (Action, bool) {
	for i, name := range actionNames {
		if name == s {
			return Action(i), true
		}
	}
	return 0, false
}

// ActionOf maps a card to its action category.
func ActionOf(card Card) Action {
	if card.Value.IsNumeric() {
		return Action(card.Color)
	}
	return ActSkip + Action(card.Value-Skip)
}

// ActionSet flags which actions are legal.
type ActionSet [NumActions]bool

// EncodeActions derives the legal actions from the playable part of a hand.
func EncodeActions(playable []Card) ActionSet {
	var set ActionSet
	for _, card := range playable {
		set[ActionOf(card)] = true
	}
	return set
}

// Legal lists the legal actions in table column order.
func (s ActionSet) Legal() []Action {
	var legal []Action
	for _, a := range Actions {
		if s[a] {
			legal = append(legal, a)
		}
	}
	return legal
}

// CardFor returns the first playable card belonging to the action's category.
func CardFor(a Action, playable []Card) (Card, bool) {
	for _, card := range playable {
		if ActionOf(card) == a {
			return card, true
		}
	}
	return Card{}, false
}
