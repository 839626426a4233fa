package strategic

import (
	"math"

	"uno/game"
	"uno/meta"
)

// Genome indices. Each special value i in 1..5 owns the constant term at 2i and
// the card-count factor at 2i+1.
const (
	GeneColor = iota
	GeneValue
	GeneSkip
	GeneSkipPerCard
	GeneReverse
	GeneReversePerCard
	GeneDrawTwo
	GeneDrawTwoPerCard
	GeneDrawFour
	GeneDrawFourPerCard
	GeneColorChange
	GeneColorChangePerCard
)

// Genome is the weight vector of the card rating.
type Genome [meta.GENOME_SIZE]float64

// DefaultGenome weights every term equally.
func DefaultGenome() Genome {
	var g Genome
	for i := range g {
		g[i] = 1
	}
	return g
}

func specialIndex(v game.Value) (int, bool) {
	if v < game.Skip {
		return 0, false
	}
	return 1 + int(v-game.Skip), true
}

// Seen counts the open cards revealed during one game.
type Seen struct {
	Colors [len(game.Colors) + 1]int // Indexed by game.Color, Wild included
	Values [game.ColorChange + 1]int // Indexed by game.Value
}

func (s *Seen) Add(card game.Card) {
	s.Colors[card.Color]++
	s.Values[card.Value]++
}

// Rate scores playing card out of hand. The hand counts exclude the card itself,
// and color is the color the card would take when played, which differs from
// card.Color only for wild cards.
func Rate(card game.Card, color game.Color, hand game.Hand, seen *Seen, cardCount int, genome Genome) float64 {
	sameColor, sameValue := 0, 0
	skipped := false
	for _, c := range hand {
		if c == card && !skipped {
			skipped = true
			continue
		}
		if c.Color == color {
			sameColor++
		}
		if c.Value == card.Value {
			sameValue++
		}
	}

	score := genome[GeneColor]*float64(sameColor)*float64(1+seen.Colors[color]) +
		genome[GeneValue]*float64(sameValue)*float64(1+seen.Values[card.Value])
	if i, ok := specialIndex(card.Value); ok {
		score += genome[2*i] + genome[2*i+1]*float64(cardCount)
	}
	return score
}

func (g Genome) validate() error {
	for i, w := range g {
		if math.IsNaN(w) || math.IsInf(w, 0) {
			return meta.Invalid("Parameters", "gene %d is not finite", i)
		}
	}
	return nil
}
