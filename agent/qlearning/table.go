package qlearning

import (
	"strings"

	"uno/game"

	"golang.org/x/exp/slices"
)

type row = [game.NumActions]float64

// Table maps (state, action) pairs to a scalar. Pairs never written read as 0,
// so a fresh table behaves like a dense table over game.EnumerateStates()
// initialised to zero.
type Table struct {
	rows map[game.State]*row
}

func NewTable() *Table {
	return &Table{rows: make(map[game.State]*row)}
}

func (t *Table) Get(s game.State, a game.Action) float64 {
	if r, ok := t.rows[s]; ok {
		return r[a]
	}
	return 0
}

func (t *Table) Set(s game.State, a game.Action, v float64) {
	t.row(s)[a] = v
}

func (t *Table) Add(s game.State, a game.Action, delta float64) {
	t.row(s)[a] += delta
}

func (t *Table) row(s game.State) *row {
	r, ok := t.rows[s]
	if !ok {
		r = new(row)
		t.rows[s] = r
	}
	return r
}

// Len counts the states with at least one written entry.
func (t *Table) Len() int {
	return len(t.rows)
}

// States lists the written states ordered by key.
func (t *Table) States() []game.State {
	states := make([]game.State, 0, len(t.rows))
	for s := range t.rows {
		states = append(states, s)
	}
	slices.SortFunc(states, func(a, b game.State) int {
		return strings.Compare(a.Key(), b.Key())
	})
	return states
}
