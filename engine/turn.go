package engine

import (
	"uno/game"

	"github.com/pkg/errors"
)

type turnResult struct {
	played bool // false if the player drew and still could not play
	card   game.Card
	chain  int // Length of the penalty chain started by card, 0 if none
}

// takeTurn lets active play a card, drawing once if nothing is playable, and
// settles a penalty card against passive.
func (g *Game) takeTurn(active, passive *Player) (turnResult, error) {
	var result turnResult

	if len(active.Hand.Playable(g.open)) == 0 {
		g.logger.Debug().Msgf("%s has no playable card", active.Name)
		if _, err := g.draw(active); err != nil {
			return result, err
		}
		if len(active.Hand.Playable(g.open)) == 0 {
			return result, nil
		}
	}

	card, err := g.play(active)
	if err != nil {
		return result, err
	}
	result.played, result.card = true, card

	if active.HasWon() || passive.HasWon() {
		return result, nil
	}

	if card.Value.IsPenalty() {
		result.chain, err = g.resolvePenalty(active, passive, card.Value)
		if err != nil {
			return result, err
		}
	}
	return result, nil
}

// play asks the agent for a card and moves it from the hand to the discard pile.
func (g *Game) play(p *Player) (game.Card, error) {
	view := make(game.Hand, len(p.Hand))
	copy(view, p.Hand)
	card := p.Agent.Step(view, g.open)

	if !card.Playable(g.open) {
		return card, &game.IllegalMoveError{Player: p.Name, Card: card, Reason: "is not playable on " + g.open.String()}
	}
	if !p.Hand.Remove(card) {
		return card, &game.IllegalMoveError{Player: p.Name, Card: card, Reason: "is not in hand"}
	}
	g.deck.Discard(card)
	g.logger.Debug().Msgf("%s plays %s", p.Name, card)

	g.open = card
	if card.Color == game.Wild {
		g.open.Color = p.Hand.MajorityColor(g.rng)
		g.logger.Debug().Msgf("%s chooses %s", p.Name, g.open.Color)
	}
	g.reveal()
	return card, nil
}

func (g *Game) draw(p *Player) (game.Card, error) {
	card, err := g.deck.Draw()
	if err != nil {
		return card, errors.WithMessagef(err, "%s cannot draw", p.Name)
	}
	p.Hand = append(p.Hand, card)
	g.logger.Debug().Msgf("%s draws %s", p.Name, card)
	return card, nil
}
