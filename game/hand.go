package game

import (
	"golang.org/x/exp/rand"
)

// Hand is the multiset of cards owned by one player. Iteration order is draw order.
type Hand []Card

// Playable returns the cards of h that may be played on open, in hand order.
func (h Hand) Playable(open Card) []Card {
	var playable []Card
	for _, card := range h {
		if card.Playable(open) {
			playable = append(playable, card)
		}
	}
	return playable
}

// Contains reports whether the hand holds at least one card equal to card.
func (h Hand) Contains(card Card) bool {
	return h.index(card) >= 0
}

func (h Hand) index(card Card) int {
	for i, c := range h {
		if c == card {
			return i
		}
	}
	return -1
}

// IndexOfValue returns the position of the first card with value v, or -1.
func (h Hand) IndexOfValue(v Value) int {
	for i, c := range h {
		if c.Value == v {
			return i
		}
	}
	return -1
}

// Remove takes exactly one card equal to card out of the hand.
func (h *Hand) Remove(card Card) bool {
	i := h.index(card)
	if i < 0 {
		return false
	}
	hand := *h
	*h = append(hand[:i], hand[i+1:]...)
	return true
}

// MajorityColor picks the color held most often. Ties go to the color that comes
// first in Colors. A hand without colored cards gets a random color.
func (h Hand) MajorityColor(rng *rand.Rand) Color {
	var counts [len(Colors)]int
	total := 0
	for _, card := range h {
		if card.Color != Wild {
			counts[card.Color]++
			total++
		}
	}
	if total == 0 {
		return Colors[rng.Intn(len(Colors))]
	}
	best := Colors[0]
	for _, c := range Colors[1:] {
		if counts[c] > counts[best] {
			best = c
		}
	}
	return best
}
