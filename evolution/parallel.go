package evolution

import (
	"runtime"
	"sync"

	"uno/agent/strategic"
)

type task struct {
	index int
	agent *strategic.Agent
	seed  uint64
}

type result struct {
	index int
	wins  int
	err   error
}

// evaluator scores a population with a fixed number of goroutines. Every
// individual is evaluated by exactly one worker.
type evaluator struct {
	workers int
	fitness Fitness
}

func newEvaluator(fitness Fitness, workers int) *evaluator {
	if workers <= 0 {
		workers = runtime.NumCPU()
	}
	return &evaluator{
		workers: workers,
		fitness: fitness,
	}
}

// evaluate returns the wins per individual in population order. seeds[i] is
// handed to the evaluation of population[i]. The first failing individual in
// population order determines the error.
func (e *evaluator) evaluate(population []*strategic.Agent, seeds []uint64) ([]int, error) {
	tasks := make(chan task, len(population))
	results := make(chan result, len(population))

	var wg sync.WaitGroup
	for i := 0; i < min(e.workers, len(population)); i++ {
		wg.Add(1)
		go e.worker(tasks, results, &wg)
	}

	for i, agent := range population {
		tasks <- task{index: i, agent: agent, seed: seeds[i]}
	}
	close(tasks)

	go func() {
		wg.Wait()
		close(results)
	}()

	wins := make([]int, len(population))
	errs := make([]error, len(population))
	for r := range results {
		wins[r.index] = r.wins
		errs[r.index] = r.err
	}
	for _, err := range errs {
		if err != nil {
			return nil, err
		}
	}
	return wins, nil
}

func (e *evaluator) worker(tasks <-chan task, results chan<- result, wg *sync.WaitGroup) {
	defer wg.Done()

	for t := range tasks {
		wins, err := e.fitness(t.agent, t.seed)
		results <- result{index: t.index, wins: wins, err: err}
	}
}
