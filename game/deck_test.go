package game

import (
	"testing"

	"github.com/stretchr/testify/require"
	"golang.org/x/exp/rand"
)

func TestDeckDraw(t *testing.T) {
	t.Run("drawing from the top", func(t *testing.T) {
		d := NewDeck([]Card{{Red, 1}, {Blue, 2}}, rand.New(rand.NewSource(1)))

		card, err := d.Draw()

		require.NoError(t, err)
		require.Equal(t, Card{Blue, 2}, card, "Top of the pile is the end of the slice")
		require.Equal(t, 1, d.Len())
	})

	t.Run("reshuffling the discard pile once when exhausted", func(t *testing.T) {
		d := NewDeck([]Card{{Red, 1}}, rand.New(rand.NewSource(1)))
		_, err := d.Draw()
		require.NoError(t, err)
		d.Discard(Card{Green, 3})
		d.Discard(Card{Yellow, 4})
		d.Discard(Card{Blue, 5})
		require.Equal(t, 0, d.Reshuffles(), "Reshuffle must wait for a draw on an empty pile")

		_, err = d.Draw()

		require.NoError(t, err)
		require.Equal(t, 1, d.Reshuffles(), "Exactly one reshuffle")
		require.Equal(t, 0, d.DiscardLen(), "Discard pile is empty after the reshuffle")
		require.Equal(t, 2, d.Len())

		_, err = d.Draw()
		require.NoError(t, err)
		_, err = d.Draw()
		require.NoError(t, err)
		require.Equal(t, 1, d.Reshuffles(), "Remaining reshuffled cards do not trigger another one")
	})

	t.Run("failing when both piles are empty", func(t *testing.T) {
		d := NewDeck(nil, rand.New(rand.NewSource(1)))

		_, err := d.Draw()

		require.ErrorIs(t, err, ErrDeckExhausted)
	})

	t.Run("conserving cards across reshuffles", func(t *testing.T) {
		d := NewStandardDeck(rand.New(rand.NewSource(7)))
		var held []Card
		for i := 0; i < 300; i++ {
			card, err := d.Draw()
			require.NoError(t, err)
			held = append(held, card)
			if len(held) > 5 {
				d.Discard(held[0])
				held = held[1:]
			}
			require.Equal(t, 108, d.Len()+d.DiscardLen()+len(held), "Card count must stay constant")
		}
		require.Greater(t, d.Reshuffles(), 0)
	})
}

func TestHand(t *testing.T) {
	rng := rand.New(rand.NewSource(3))

	t.Run("playable cards keep hand order", func(t *testing.T) {
		h := Hand{{Blue, 5}, {Red, 1}, {Wild, ColorChange}, {Green, 2}, {Red, 9}}

		got := h.Playable(Card{Red, 5})

		require.Equal(t, []Card{{Blue, 5}, {Red, 1}, {Wild, ColorChange}, {Red, 9}}, got)
	})

	t.Run("removing exactly one card", func(t *testing.T) {
		h := Hand{{Red, 1}, {Blue, 2}, {Red, 1}}

		require.True(t, h.Remove(Card{Red, 1}))
		require.Equal(t, Hand{{Blue, 2}, {Red, 1}}, h)
		require.False(t, h.Remove(Card{Green, 1}), "Missing cards cannot be removed")
		require.Len(t, h, 2)
	})

	t.Run("majority color with ties in enumeration order", func(t *testing.T) {
		require.Equal(t, Blue, Hand{{Blue, 1}, {Blue, 2}, {Red, 3}}.MajorityColor(rng))
		require.Equal(t, Green, Hand{{Yellow, 1}, {Green, 2}, {Wild, DrawFour}}.MajorityColor(rng))
	})

	t.Run("majority color without colored cards", func(t *testing.T) {
		c := Hand{{Wild, DrawFour}}.MajorityColor(rng)
		require.NotEqual(t, Wild, c, "A real color must be chosen")
	})
}
