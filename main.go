package main

import (
	"flag"
	"fmt"
	"os"
	"strconv"
	"strings"

	"uno/agent"
	"uno/config"
	"uno/engine"
	"uno/experiments"

	"github.com/mattn/go-isatty"
	"github.com/pkg/errors"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

func main() {
	mode := flag.String("mode", "train", "train, tournament or throughput")
	configPath := flag.String("config", "", "YAML configuration file")
	envFile := flag.String("env", ".env", "Optional env file")
	agent1 := flag.String("agent1", "qlearning", "First agent, e.g. qlearning:epsilon=0.1,model=models/qlearning")
	agent2 := flag.String("agent2", "random", "Second agent")
	games := flag.Int("games", 1000, "Games per tournament")
	verbose := flag.Bool("verbose", false, "Narrate every turn")
	goroutines := flag.String("goroutines", "1,2,4,8", "Comma-separated goroutine counts for the throughput experiment")
	flag.Parse()

	cfg, err := config.Load(*configPath, *envFile)
	if err != nil {
		fmt.Fprintf(os.Stderr, "%v\n", err)
		os.Exit(2)
	}
	cfg.Verbose = cfg.Verbose || *verbose
	setupLogging(cfg)

	switch *mode {
	case "train":
		err = train(cfg)
	case "tournament":
		err = tournament(cfg, *agent1, *agent2, *games)
	case "throughput":
		err = throughput(cfg, *agent1, *agent2, *games, *goroutines)
	default:
		err = errors.Errorf("unknown mode %q", *mode)
	}
	if err != nil {
		log.Fatal().Err(err).Msgf("%s failed", *mode)
	}
}

func setupLogging(cfg config.Config) {
	level, _ := cfg.Level() // Validated by config.Load
	if cfg.Verbose {
		level = min(level, zerolog.DebugLevel)
	}
	zerolog.SetGlobalLevel(level)
	if isatty.IsTerminal(os.Stderr.Fd()) {
		log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr})
	}
}

func train(cfg config.Config) error {
	report, err := experiments.Run(cfg)
	if err != nil {
		return err
	}
	for _, m := range report.Matches {
		log.Info().Msgf("%s: %s %d - %d %s", m.Name, m.Agent1, m.Wins1, m.Wins2, m.Agent2)
	}
	if report.Winner != nil {
		log.Info().Msgf("search winner %s changed in generations %v", report.Winner.ID(), report.WinnerChanged)
	}
	return nil
}

func tournament(cfg config.Config, config1, config2 string, games int) error {
	agent1, err := agent.New(config1)
	if err != nil {
		return err
	}
	agent2, err := agent.New(config2)
	if err != nil {
		return err
	}
	result, err := engine.RunTournament(engine.TournamentConfig{
		Iterations: games,
		Agent1:     agent1,
		Agent2:     agent2,
		Verbose:    cfg.Verbose,
		Seed:       cfg.Seed,
		Rules:      &cfg.Rules,
	})
	if err != nil {
		return err
	}
	log.Info().Msgf("%s won %d, %s won %d of %d games in %s (%.1f turns per game)",
		agent1.Name(), result.Wins(agent1.Name()), agent2.Name(), result.Wins(agent2.Name()),
		games, result.Elapsed, result.MeanTurns())

	for _, a := range []engine.Agent{agent1, agent2} {
		if learner, ok := a.(engine.Learner); ok {
			if err := learner.SaveModel(""); err != nil {
				log.Debug().Err(err).Msgf("model of %s not saved", a.Name())
			}
		}
	}
	return nil
}

func throughput(cfg config.Config, config1, config2 string, games int, goroutines string) error {
	counts := []int{}
	for _, field := range strings.Split(goroutines, ",") {
		n, err := strconv.Atoi(strings.TrimSpace(field))
		if err != nil {
			return errors.Errorf("invalid goroutine count %q", field)
		}
		counts = append(counts, n)
	}
	_, err := experiments.RunThroughputExperiment(cfg, config1, config2, games, counts)
	return err
}
