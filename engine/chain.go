package engine

import (
	"uno/game"
)

type chainState int

const (
	awaitOpponent  chainState = iota // Opponent may counter the last penalty card
	awaitInitiator                   // Initiator may counter the opponent's counter
	settle                           // Nobody countered, the liable player draws
	chainWon                         // A counter emptied a hand
)

// resolvePenalty runs the counter chain of a penalty card played by initiator and
// returns its length. Each counter flips who is liable, so an even count sends
// count*penalty cards back to the initiator and an odd count to the opponent.
func (g *Game) resolvePenalty(initiator, opponent *Player, kind game.Value) (int, error) {
	count := 1
	state := awaitOpponent
	for {
		switch state {
		case awaitOpponent:
			if !g.counter(opponent, kind) {
				state = settle
				break
			}
			count++
			state = awaitInitiator
			if opponent.HasWon() {
				state = chainWon
			}

		case awaitInitiator:
			if !g.counter(initiator, kind) {
				state = settle
				break
			}
			count++
			state = awaitOpponent
			if initiator.HasWon() {
				state = chainWon
			}

		case settle:
			liable := opponent
			if count%2 == 0 {
				liable = initiator
			}
			penalty := count * kind.Penalty()
			g.logger.Debug().Msgf("%s has to draw %d cards", liable.Name, penalty)
			for i := 0; i < penalty; i++ {
				if _, err := g.draw(liable); err != nil {
					return count, err
				}
			}
			return count, nil

		case chainWon:
			return count, nil
		}
	}
}

// counter plays the first card of the given penalty kind in p's hand, if any.
// Counters go to the discard pile without changing the open card.
func (g *Game) counter(p *Player, kind game.Value) bool {
	i := p.Hand.IndexOfValue(kind)
	if i < 0 {
		return false
	}
	card := p.Hand[i]
	p.Hand = append(p.Hand[:i], p.Hand[i+1:]...)
	g.deck.Discard(card)
	g.logger.Debug().Msgf("%s counters with %s", p.Name, card)
	return true
}
