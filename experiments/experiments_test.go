package experiments

import (
	"path/filepath"
	"testing"

	"uno/config"

	"github.com/stretchr/testify/require"
)

func testConfig(t *testing.T) config.Config {
	cfg := config.Default()
	cfg.Seed = 11
	cfg.ModelDir = filepath.Join(t.TempDir(), "models")
	cfg.OutputDir = t.TempDir()
	cfg.Training.Games = 4
	cfg.Search.FitnessGames = 2
	cfg.Search.Generations = 2
	cfg.Search.PopulationSize = 6
	cfg.Search.CarryOver = 2
	cfg.Search.FitnessFraction = 0.5
	cfg.Search.Workers = 2
	cfg.Search.EvaluationGames = 4
	return cfg
}

func TestRun(t *testing.T) {
	t.Run("full pipeline", func(t *testing.T) {
		cfg := testConfig(t)
		report, err := Run(cfg)
		require.NoError(t, err)

		require.Len(t, report.Matches, 3)
		require.Equal(t, "train_random", report.Matches[0].Name)
		require.Equal(t, "train_strategic", report.Matches[1].Name)
		require.Equal(t, "evaluation", report.Matches[2].Name)
		for _, m := range report.Matches {
			require.LessOrEqual(t, m.Wins1+m.Wins2, m.Games)
		}
		require.NotNil(t, report.Winner)
		require.Equal(t, 0, report.WinnerChanged[0])

		for _, file := range []string{"train_random_games.csv", "train_strategic_games.csv", "search_generations.csv", "evaluation_games.csv"} {
			require.FileExists(t, filepath.Join(report.Dir, file))
		}
		for _, opponent := range []string{"random", "strategic"} {
			model := filepath.Join(cfg.ModelDir, LearnerModel+"_"+opponent)
			require.FileExists(t, model+"-q.csv")
			require.FileExists(t, model+"-visits.csv")
		}
		require.NoFileExists(t, filepath.Join(cfg.ModelDir, LearnerModel+"-q.csv"), "Learners are not merged")
		require.FileExists(t, filepath.Join(cfg.ModelDir, StrategicModel))
	})

	t.Run("training only", func(t *testing.T) {
		cfg := testConfig(t)
		cfg.Search.Enabled = false
		cfg.Training.Opponents = []string{"random"}

		report, err := Run(cfg)
		require.NoError(t, err)
		require.Len(t, report.Matches, 1)
		require.Nil(t, report.Winner)
	})

	t.Run("learner must be a learning agent", func(t *testing.T) {
		cfg := testConfig(t)
		cfg.Training.Learner = "random"

		_, err := Run(cfg)
		require.Error(t, err)
	})

	t.Run("agents need distinct names", func(t *testing.T) {
		cfg := testConfig(t)
		cfg.Training.Opponents = []string{"qlearning"}

		_, err := Run(cfg)
		require.Error(t, err)
	})
}

func TestRunThroughputExperiment(t *testing.T) {
	cfg := config.Default()
	results, err := RunThroughputExperiment(cfg, "random", "strategic", 6, []int{1, 4, 8})

	require.NoError(t, err)
	require.Len(t, results, 3)
	for _, r := range results {
		require.Equal(t, 6, r.Games)
		require.Positive(t, r.GamesPerSec)
	}

	_, err = RunThroughputExperiment(cfg, "random", "random", 2, []int{1})
	require.Error(t, err, "Tournaments reject agents of the same name")
}
