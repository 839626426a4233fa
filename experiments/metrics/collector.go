package metrics

import (
	"time"
)

// GameMetric summarises one simulated game.
type GameMetric struct {
	Player1       string // Name of the agent acting first
	Player2       string
	Winner        string // "" if the game hit the turn limit
	Turns         int    // Turn resolutions, extra turns included
	PenaltyChains int
	LongestChain  int
	Reshuffles    int
	StartTime     time.Time
	EndTime       time.Time
	Duration      time.Duration
}

// GenerationMetric summarises one generation of the evolutionary search.
type GenerationMetric struct {
	Generation    int
	BestWins      int
	MeanWins      float64
	BestID        string
	WinnerChanged bool
	Duration      time.Duration
}

// Collector records the events of a single game.
type Collector interface {
	Start(player1, player2 string)
	AddTurn()
	AddPenaltyChain(count int)
	Complete(winner string, reshuffles int) GameMetric
}

type collector struct {
	metric GameMetric
}

func NewCollector() Collector {
	return &collector{}
}

func (m *collector) Start(player1, player2 string) {
	m.metric = GameMetric{
		Player1:   player1,
		Player2:   player2,
		StartTime: time.Now(),
	}
}

func (m *collector) AddTurn() {
	m.metric.Turns++
}

func (m *collector) AddPenaltyChain(count int) {
	m.metric.PenaltyChains++
	m.metric.LongestChain = max(m.metric.LongestChain, count)
}

func (m *collector) Complete(winner string, reshuffles int) GameMetric {
	m.metric.Winner = winner
	m.metric.Reshuffles = reshuffles
	m.metric.EndTime = time.Now()
	m.metric.Duration = m.metric.EndTime.Sub(m.metric.StartTime)
	return m.metric
}

type dummyCollector struct{}

func NewDummyCollector() Collector {
	return &dummyCollector{}
}

func (m *dummyCollector) Start(player1, player2 string)                      {}
func (m *dummyCollector) AddTurn()                                           {}
func (m *dummyCollector) AddPenaltyChain(count int)                          {}
func (m *dummyCollector) Complete(winner string, reshuffles int) GameMetric { return GameMetric{} }
