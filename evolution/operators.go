package evolution

import (
	"math"

	"uno/agent/strategic"

	"golang.org/x/exp/rand"
)

// Genesis returns the first population: the seed itself followed by size-1
// individuals whose genes are drawn from N(seed gene, coeff).
func Genesis(seed *strategic.Agent, size int, coeff float64, rng *rand.Rand) []*strategic.Agent {
	population := make([]*strategic.Agent, 0, size)
	population = append(population, seed)
	parent := seed.Genome()
	for len(population) < size {
		var genome strategic.Genome
		for i, gene := range parent {
			genome[i] = gene + coeff*rng.NormFloat64()
		}
		population = append(population, newIndividual(seed.Name(), genome, rng))
	}
	return population
}

// Reproduce draws each child gene from a normal distribution centered between
// the parents. The deviation is the parents' distance from that center divided
// by coeff, at least 0.1 if the center is 0.
func Reproduce(mother, father strategic.Genome, coeff float64, rng *rand.Rand) strategic.Genome {
	var child strategic.Genome
	for i := range child {
		mu := (mother[i] + father[i]) / 2
		sigma := math.Abs(mother[i]-mu) / coeff
		if mu == 0 {
			sigma = max(sigma, 0.1)
		}
		child[i] = mu + sigma*rng.NormFloat64()
	}
	return child
}

// pairs splits the fittest individuals of a ranked generation into mothers
// (even ranks) and fathers (odd ranks) of equal length.
func pairs(ranked []Individual, fit int) (mothers, fathers []*strategic.Agent) {
	if fit%2 != 0 {
		fit--
	}
	for i := 0; i < fit; i++ {
		if i%2 == 0 {
			mothers = append(mothers, ranked[i].Agent)
		} else {
			fathers = append(fathers, ranked[i].Agent)
		}
	}
	return mothers, fathers
}

func newIndividual(name string, genome strategic.Genome, rng *rand.Rand) *strategic.Agent {
	return strategic.NewFromGenome(name, genome, rand.New(rand.NewSource(rng.Uint64())))
}
