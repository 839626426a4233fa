package strategic

import (
	"os"
	"path/filepath"
	"testing"

	"uno/engine"
	"uno/game"
	"uno/meta"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/require"
	"golang.org/x/exp/rand"
)

func newAgent(genome Genome) *Agent {
	return NewFromGenome(DefaultName, genome, rand.New(rand.NewSource(1)))
}

func TestRate(t *testing.T) {
	hand := game.Hand{
		{Color: game.Red, Value: 5},
		{Color: game.Red, Value: 7},
		{Color: game.Red, Value: 9},
		{Color: game.Blue, Value: 5},
		{Color: game.Green, Value: game.Skip},
	}

	t.Run("numeric card weighs color and value matches", func(t *testing.T) {
		genome := Genome{GeneColor: 2, GeneValue: 3}
		seen := &Seen{}
		seen.Add(game.Card{Color: game.Red, Value: 1})
		seen.Add(game.Card{Color: game.Green, Value: 5})
		seen.Add(game.Card{Color: game.Green, Value: 5})

		score := Rate(hand[0], game.Red, hand, seen, 0, genome)

		// 2 other reds seen once, 1 other five seen twice
		require.Equal(t, 2*2*2.0+3*1*3.0, score)
	})

	t.Run("special card adds its bonus", func(t *testing.T) {
		var genome Genome
		genome[GeneSkip] = 1.5
		genome[GeneSkipPerCard] = 0.5
		genome[GeneDrawFour] = 100

		score := Rate(hand[4], game.Green, hand, &Seen{}, 4, genome)
		require.Equal(t, 1.5+0.5*4, score)
	})

	t.Run("gene layout pairs each special value", func(t *testing.T) {
		for v, gene := range map[game.Value]int{
			game.Skip:        GeneSkip,
			game.Reverse:     GeneReverse,
			game.DrawTwo:     GeneDrawTwo,
			game.DrawFour:    GeneDrawFour,
			game.ColorChange: GeneColorChange,
		} {
			i, ok := specialIndex(v)
			require.True(t, ok)
			require.Equal(t, gene, 2*i, "Constant term of %s", v)
			require.Equal(t, gene+1, 2*i+1, "Card count factor of %s", v)
		}
		_, ok := specialIndex(9)
		require.False(t, ok)
	})
}

func TestStep(t *testing.T) {
	t.Run("plays the best rated playable card", func(t *testing.T) {
		a := newAgent(Genome{GeneColor: 1, GeneValue: 1})
		hand := game.Hand{
			{Color: game.Red, Value: 5},
			{Color: game.Blue, Value: 3},
			{Color: game.Blue, Value: 4},
			{Color: game.Blue, Value: 6},
		}

		card := a.Step(hand, game.Card{Color: game.Blue, Value: 5})
		require.Equal(t, game.Card{Color: game.Blue, Value: 3}, card)
	})

	t.Run("ties go to the first playable card", func(t *testing.T) {
		a := newAgent(Genome{})
		hand := game.Hand{
			{Color: game.Green, Value: 1},
			{Color: game.Red, Value: 2},
			{Color: game.Green, Value: 2},
		}

		card := a.Step(hand, game.Card{Color: game.Green, Value: 2})
		require.Equal(t, hand[0], card)
	})

	t.Run("wild cards are rated with their resolved color", func(t *testing.T) {
		var genome Genome
		genome[GeneColor] = 1
		a := newAgent(genome)
		wild := game.Card{Color: game.Wild, Value: game.ColorChange}
		hand := game.Hand{wild, {Color: game.Yellow, Value: 1}, {Color: game.Yellow, Value: 2}, {Color: game.Red, Value: 8}}

		// The wild takes yellow and matches two cards, red eight matches none
		card := a.Step(hand, game.Card{Color: game.Red, Value: 9})
		require.Equal(t, wild, card)
	})

	t.Run("never returns an unplayable card", func(t *testing.T) {
		rng := rand.New(rand.NewSource(3))
		a := newAgent(DefaultGenome())
		for i := 0; i < 200; i++ {
			deck := game.NewStandardDeck(rng)
			hand := game.Hand{}
			for j := 0; j < 7; j++ {
				card, err := deck.Draw()
				require.NoError(t, err)
				hand = append(hand, card)
			}
			open := game.Card{Color: hand[0].Color, Value: 4}
			if open.Color == game.Wild {
				open.Color = game.Red
			}
			require.True(t, a.Step(hand, open).Playable(open))
		}
	})

	t.Run("reset clears the counters but not the genome", func(t *testing.T) {
		a := newAgent(DefaultGenome())
		a.Observe(game.Card{Color: game.Red, Value: 2})
		a.Step(game.Hand{{Color: game.Red, Value: 1}}, game.Card{Color: game.Red, Value: 2})
		require.Equal(t, 1, a.cardCount)
		require.Equal(t, 1, a.seen.Colors[game.Red])

		a.Reset()
		require.Zero(t, a.cardCount)
		require.Equal(t, Seen{}, a.seen)
		require.False(t, a.observed)
		require.False(t, a.hasLast)
		require.Equal(t, DefaultGenome(), a.Genome())
	})

	t.Run("counts every open card once without observation", func(t *testing.T) {
		a := newAgent(DefaultGenome())
		red7 := game.Card{Color: game.Red, Value: 7}
		hand := game.Hand{red7, {Color: game.Green, Value: 1}}

		card := a.Step(hand, game.Card{Color: game.Red, Value: 3})
		require.Equal(t, red7, card)
		hand.Remove(card)

		// The opponent answered with red eight, the agent plays red one
		a.Step(append(hand, game.Card{Color: game.Red, Value: 1}), game.Card{Color: game.Red, Value: 8})
		require.Equal(t, 4, a.seen.Colors[game.Red])
		require.Equal(t, 2, a.cardCount)
	})

	t.Run("does not count its own play again when the opponent drew", func(t *testing.T) {
		a := newAgent(DefaultGenome())
		red7 := game.Card{Color: game.Red, Value: 7}

		card := a.Step(game.Hand{red7, {Color: game.Green, Value: 1}}, game.Card{Color: game.Red, Value: 3})
		require.Equal(t, red7, card)
		require.Equal(t, 2, a.seen.Colors[game.Red])

		// The opponent drew without playing, the open card is still the agent's
		a.Step(game.Hand{{Color: game.Red, Value: 1}}, card)
		require.Equal(t, 3, a.seen.Colors[game.Red])
		require.Equal(t, 1, a.seen.Values[7])
	})

	t.Run("counts a wild under its resolved color", func(t *testing.T) {
		a := newAgent(DefaultGenome())
		wild := game.Card{Color: game.Wild, Value: game.ColorChange}
		hand := game.Hand{wild, {Color: game.Blue, Value: 2}, {Color: game.Blue, Value: 4}}

		card := a.Step(hand, game.Card{Color: game.Green, Value: 9})
		require.Equal(t, wild, card)
		require.Equal(t, 1, a.seen.Colors[game.Blue])
		require.Zero(t, a.seen.Colors[game.Wild])
		require.Equal(t, 1, a.seen.Values[game.ColorChange])
	})

	t.Run("observed cards replace inference", func(t *testing.T) {
		a := newAgent(DefaultGenome())
		a.Observe(game.Card{Color: game.Red, Value: 3})
		card := a.Step(game.Hand{{Color: game.Red, Value: 7}}, game.Card{Color: game.Red, Value: 3})
		a.Observe(card)
		a.Observe(game.Card{Color: game.Red, Value: 8})

		require.Equal(t, 3, a.seen.Colors[game.Red])
		require.Equal(t, 1, a.cardCount)
	})

	t.Run("panics without a playable card", func(t *testing.T) {
		a := newAgent(DefaultGenome())
		require.Panics(t, func() {
			a.Step(game.Hand{{Color: game.Blue, Value: 1}}, game.Card{Color: game.Red, Value: 3})
		})
	})
}

func TestNew(t *testing.T) {
	t.Run("no model and no parameters", func(t *testing.T) {
		_, err := New(Config{Name: DefaultName})

		var configErr *meta.ConfigError
		require.True(t, errors.As(err, &configErr))
		require.Equal(t, "Parameters", configErr.Field)
	})

	t.Run("wrong number of parameters", func(t *testing.T) {
		_, err := New(Config{Name: DefaultName, Parameters: []float64{1, 2}})
		require.Error(t, err)
	})

	t.Run("missing model falls back to parameters", func(t *testing.T) {
		cfg := DefaultConfig()
		cfg.Model = filepath.Join(t.TempDir(), "missing.pb")
		a, err := New(cfg)

		require.NoError(t, err)
		require.Equal(t, DefaultGenome(), a.Genome())
	})

	t.Run("stored genome wins over parameters", func(t *testing.T) {
		model := filepath.Join(t.TempDir(), "genome.pb")
		genome := Genome{0.5, -1, 2, 3, 4, 5, 6, 7, 8, 9, 10, 11.25}
		require.NoError(t, newAgent(genome).SaveModel(model))

		cfg := DefaultConfig()
		cfg.Model = model
		a, err := New(cfg)
		require.NoError(t, err)
		require.Equal(t, genome, a.Genome())
	})

	t.Run("identities are unique", func(t *testing.T) {
		require.NotEqual(t, newAgent(Genome{}).ID(), newAgent(Genome{}).ID())
	})
}

func TestLoadGenome(t *testing.T) {
	t.Run("corrupted file", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "genome.pb")
		require.NoError(t, os.WriteFile(path, []byte{0xff, 0xff, 0xff}, 0644))

		_, err := LoadGenome(path)
		require.Error(t, err)
	})

	t.Run("no path to save to", func(t *testing.T) {
		require.Error(t, newAgent(Genome{}).SaveModel(""))
	})
}

// firstPlayable plays the first playable card in hand.
type firstPlayable struct{}

func (firstPlayable) Name() string { return "opponent" }

func (firstPlayable) Step(hand game.Hand, open game.Card) game.Card {
	return hand.Playable(open)[0]
}

func (firstPlayable) Reset() {}

func TestObserveInGame(t *testing.T) {
	// Bottom to top: the deal alternates from the top, the starter comes last
	cards := []game.Card{
		{Color: game.Red, Value: 3},
		{Color: game.Red, Value: 8},
		{Color: game.Green, Value: 1},
		{Color: game.Red, Value: game.Skip},
		{Color: game.Red, Value: 7},
	}
	rules := engine.DefaultRules()
	rules.HandSize = 2
	rules.ExtraTurnOnSkip = true
	rng := rand.New(rand.NewSource(1))

	a := newAgent(DefaultGenome())
	g, err := engine.NewGame(engine.NewPlayer(a), engine.NewPlayer(firstPlayable{}), engine.WithRules(rules),
		engine.WithDeck(game.NewDeck(cards, rng)))
	require.NoError(t, err)

	outcome, err := g.Play()
	require.NoError(t, err)
	require.Equal(t, "opponent", outcome.Winner)

	// The opponent's skip and red eight both count although the agent never
	// got another turn
	require.Equal(t, 4, a.seen.Colors[game.Red])
	require.Equal(t, 1, a.seen.Values[game.Skip])
	require.Equal(t, 1, a.cardCount)
}
