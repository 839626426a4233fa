package game

import (
	"fmt"

	"github.com/pkg/errors"
)

// ErrDeckExhausted is returned when a draw finds both the draw and the discard pile
// empty. With 108 cards in play this means the card accounting is broken.
var ErrDeckExhausted = errors.New("draw and discard piles are both empty")

// IllegalMoveError reports a card an agent chose that it may not play.
type IllegalMoveError struct {
	Player string
	Card   Card
	Reason string
}

func (e *IllegalMoveError) Error() string {
	return fmt.Sprintf("illegal move by %s: %s %s", e.Player, e.Card, e.Reason)
}
