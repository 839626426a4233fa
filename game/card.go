package game

import "fmt"

type Color uint8

const (
	Red Color = iota
	Green
	Blue
	Yellow
	Wild
)

// Colors lists the four playable colors in enumeration order.
var Colors = [...]Color{Red, Green, Blue, Yellow}

var colorNames = [...]string{"RED", "GRE", "BLU", "YEL", "WILD"}

func (c Color) String() string {
	if int(c) < len(colorNames) {
		return colorNames[c]
	}
	return fmt.Sprintf("Color(%d)", uint8(c))
}

func (c Color) IsWild() bool {
	return c == Wild
}

// ParseColor is the inverse of Color.String.
func ParseColor(s string) (Color, bool) {
	for i, name := range colorNames {
		if name == s {
			return Color(i), true
		}
	}
	return 0, false
}

type Value uint8

// Values 0..9 are numeric cards.
const (
	Skip Value = iota + 10
	Reverse
	DrawTwo
	DrawFour
	ColorChange
)

const numValues = int(ColorChange) + 1

var specialNames = [...]string{"SKI", "REV", "PL2", "PL4", "COL"}

func (v Value) String() string {
	if v.IsNumeric() {
		return fmt.Sprintf("%d", uint8(v))
	}
	if int(v) < numValues {
		return specialNames[v-Skip]
	}
	return fmt.Sprintf("Value(%d)", uint8(v))
}

func (v Value) IsNumeric() bool {
	return v <= 9
}

// IsWild reports whether cards of this value may be played on anything.
func (v Value) IsWild() bool {
	return v == DrawFour || v == ColorChange
}

// IsPenalty reports whether the value starts a penalty chain.
func (v Value) IsPenalty() bool {
	return v == DrawTwo || v == DrawFour
}

// Penalty is the number of cards a penalty card forces per chain link.
func (v Value) Penalty() int {
	switch v {
	case DrawTwo:
		return 2
	case DrawFour:
		return 4
	default:
		return 0
	}
}

// ParseValue is the inverse of Value.String.
func ParseValue(s string) (Value, bool) {
	if len(s) == 1 && s[0] >= '0' && s[0] <= '9' {
		return Value(s[0] - '0'), true
	}
	for i, name := range specialNames {
		if name == s {
			return Skip + Value(i), true
		}
	}
	return 0, false
}

// Card is an immutable (color, value) pair. Wild cards carry color Wild in every
// pile; the color chosen when one is played lives on the game's open card only.
type Card struct {
	Color Color
	Value Value
}

func (c Card) String() string {
	return c.Color.String() + " " + c.Value.String()
}

// IsPlayable reports whether a card of the given color and value may be played
// on an open card with openColor and openValue.
func IsPlayable(card Card, openColor Color, openValue Value) bool {
	return card.Color == openColor || card.Value == openValue || card.Value.IsWild()
}

// Playable reports whether c may be played on open.
func (c Card) Playable(open Card) bool {
	return IsPlayable(c, open.Color, open.Value)
}

// StandardCards returns the 108 cards of a standard deck in build order.
func StandardCards() []Card {
	cards := make([]Card, 0, 108)
	for copies := 0; copies < 2; copies++ {
		for _, c := range Colors {
			for v := Value(1); v <= 9; v++ {
				cards = append(cards, Card{Color: c, Value: v})
			}
		}
	}
	for copies := 0; copies < 2; copies++ {
		for _, c := range Colors {
			for _, v := range []Value{Skip, Reverse, DrawTwo} {
				cards = append(cards, Card{Color: c, Value: v})
			}
		}
	}
	for _, c := range Colors {
		cards = append(cards, Card{Color: c, Value: 0})
	}
	for copies := 0; copies < 4; copies++ {
		cards = append(cards, Card{Color: Wild, Value: ColorChange}, Card{Color: Wild, Value: DrawFour})
	}
	return cards
}
