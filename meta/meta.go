// meta/meta.go
package meta

// HAND_SIZE defines the number of cards dealt to each player.
const HAND_SIZE = 7

// DECK_SIZE defines the number of cards in a standard deck.
const DECK_SIZE = 108

// GENOME_SIZE defines the number of weights of a strategic agent.
const GENOME_SIZE = 12

// WORKERS defines the default number of goroutines for fitness evaluation (0 = NumCPU).
const WORKERS = 0
