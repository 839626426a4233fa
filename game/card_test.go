package game

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestStandardCards(t *testing.T) {
	cards := StandardCards()
	require.Len(t, cards, 108, "Standard deck should hold 108 cards")

	counts := map[Card]int{}
	for _, c := range cards {
		counts[c]++
	}
	for _, c := range Colors {
		require.Equal(t, 1, counts[Card{c, 0}], "One zero per color")
		require.Equal(t, 2, counts[Card{c, 7}], "Two of each 1-9 per color")
		require.Equal(t, 2, counts[Card{c, Skip}], "Two skips per color")
		require.Equal(t, 2, counts[Card{c, Reverse}], "Two reverses per color")
		require.Equal(t, 2, counts[Card{c, DrawTwo}], "Two draw-twos per color")
	}
	require.Equal(t, 4, counts[Card{Wild, ColorChange}], "Four color changes")
	require.Equal(t, 4, counts[Card{Wild, DrawFour}], "Four draw-fours")
}

func TestIsPlayable(t *testing.T) {
	open := Card{Red, 5}

	t.Run("matching color", func(t *testing.T) {
		require.True(t, Card{Red, 9}.Playable(open))
		require.True(t, Card{Red, Skip}.Playable(open))
	})

	t.Run("matching value", func(t *testing.T) {
		require.True(t, Card{Blue, 5}.Playable(open))
	})

	t.Run("wild cards", func(t *testing.T) {
		require.True(t, Card{Wild, ColorChange}.Playable(open))
		require.True(t, Card{Wild, DrawFour}.Playable(open))
	})

	t.Run("no match", func(t *testing.T) {
		require.False(t, Card{Blue, 4}.Playable(open))
		require.False(t, Card{Green, DrawTwo}.Playable(open))
	})

	t.Run("special on special", func(t *testing.T) {
		require.True(t, IsPlayable(Card{Green, DrawTwo}, Blue, DrawTwo))
	})
}

func TestParseRoundTrip(t *testing.T) {
	for _, c := range StandardCards() {
		color, ok := ParseColor(c.Color.String())
		require.True(t, ok)
		require.Equal(t, c.Color, color)

		value, ok := ParseValue(c.Value.String())
		require.True(t, ok)
		require.Equal(t, c.Value, value)
	}
	_, ok := ParseValue("SKIP")
	require.False(t, ok, "Only the short names are valid")
}
