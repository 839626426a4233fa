package game

import (
	"golang.org/x/exp/rand"
)

// Deck holds the draw pile and the discard pile. The top of the draw pile is the
// end of the slice.
type Deck struct {
	cards      []Card
	discarded  []Card
	rng        *rand.Rand
	reshuffles int
}

// NewStandardDeck returns a shuffled 108-card deck.
func NewStandardDeck(rng *rand.Rand) *Deck {
	d := NewDeck(StandardCards(), rng)
	d.shuffle()
	return d
}

// NewDeck returns a deck whose draw pile is cards as given, last card on top.
func NewDeck(cards []Card, rng *rand.Rand) *Deck {
	pile := make([]Card, len(cards))
	copy(pile, cards)
	return &Deck{cards: pile, rng: rng}
}

func (d *Deck) shuffle() {
	d.rng.Shuffle(len(d.cards), func(i, j int) {
		d.cards[i], d.cards[j] = d.cards[j], d.cards[i]
	})
}

// Draw pops the top card. An empty draw pile is refilled from the discard pile,
// shuffled, only at the moment a draw needs it.
func (d *Deck) Draw() (Card, error) {
	if len(d.cards) == 0 {
		if len(d.discarded) == 0 {
			return Card{}, ErrDeckExhausted
		}
		d.cards = d.discarded
		d.discarded = nil
		d.shuffle()
		d.reshuffles++
	}
	card := d.cards[len(d.cards)-1]
	d.cards = d.cards[:len(d.cards)-1]
	return card, nil
}

// Discard puts a card on the discard pile. Legality is the caller's business.
func (d *Deck) Discard(card Card) {
	d.discarded = append(d.discarded, card)
}

func (d *Deck) Len() int {
	return len(d.cards)
}

func (d *Deck) DiscardLen() int {
	return len(d.discarded)
}

// Reshuffles counts how many times the discard pile became the draw pile.
func (d *Deck) Reshuffles() int {
	return d.reshuffles
}

// Discarded returns a copy of the discard pile, oldest first.
func (d *Deck) Discarded() []Card {
	out := make([]Card, len(d.discarded))
	copy(out, d.discarded)
	return out
}
