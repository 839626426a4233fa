// Package config loads the settings of a training run from a YAML file, an
// optional .env file and the environment.
package config

import (
	"bytes"
	"io/fs"
	"os"
	"strconv"

	"uno/engine"
	"uno/meta"

	"github.com/joho/godotenv"
	"github.com/pkg/errors"
	"github.com/rs/zerolog"
	"gopkg.in/yaml.v3"
)

// Environment variables that override the file.
const (
	EnvLogLevel = "UNO_LOG_LEVEL"
	EnvModelDir = "UNO_MODEL_DIR"
	EnvSeed     = "UNO_SEED"
)

type Config struct {
	LogLevel  string       `yaml:"log_level"`
	ModelDir  string       `yaml:"model_dir"`  // Learned tables and genomes
	OutputDir string       `yaml:"output_dir"` // Metric records
	Seed      uint64       `yaml:"seed"`       // 0 seeds from the clock
	Verbose   bool         `yaml:"verbose"`    // Narrate every game
	Rules     engine.Rules `yaml:"rules"`
	Training  Training     `yaml:"training"`
	Search    Search       `yaml:"search"`
}

// Training trains a separate learner against each opponent.
type Training struct {
	Games     int      `yaml:"games"`     // Per opponent
	Learner   string   `yaml:"learner"`   // Agent configuration
	Opponents []string `yaml:"opponents"` // Agent configurations
}

// Search tunes the strategic agent.
type Search struct {
	Enabled         bool    `yaml:"enabled"`
	Agent           string  `yaml:"agent"`    // Configuration of the first individual
	Opponent        string  `yaml:"opponent"` // Agent configuration, or "learner" for the frozen learner of the first training opponent
	FitnessGames    int     `yaml:"fitness_games"`
	Generations     int     `yaml:"generations"`
	PopulationSize  int     `yaml:"population_size"`
	CarryOver       int     `yaml:"carry_over"`
	MutationCoeff   float64 `yaml:"mutation_coeff"`
	FitnessFraction float64 `yaml:"fitness_fraction"`
	Workers         int     `yaml:"workers"`
	EvaluationGames int     `yaml:"evaluation_games"` // Games of the winner against the random agent
}

// LearnerOpponent selects the trained learner as the search opponent.
const LearnerOpponent = "learner"

func Default() Config {
	return Config{
		LogLevel:  zerolog.LevelInfoValue,
		ModelDir:  "models",
		OutputDir: "data",
		Rules:     engine.DefaultRules(),
		Training: Training{
			Games:     1000,
			Learner:   "qlearning:epsilon=0.1,gamma=0.2,alpha=0",
			Opponents: []string{"random", "strategic"},
		},
		Search: Search{
			Enabled:         true,
			Agent:           "strategic",
			Opponent:        LearnerOpponent,
			FitnessGames:    50,
			Generations:     10,
			PopulationSize:  50,
			CarryOver:       10,
			MutationCoeff:   0.25,
			FitnessFraction: 0.25,
			Workers:         meta.WORKERS,
			EvaluationGames: 1000,
		},
	}
}

// Load reads the YAML file at path on top of the defaults, then applies the
// environment. An empty path skips the file. The env files are loaded into the
// environment first without overriding variables that are already set; missing
// env files are ignored.
func Load(path string, envFiles ...string) (Config, error) {
	cfg := Default()
	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return cfg, errors.Wrapf(err, "failed to read config %s", path)
		}
		decoder := yaml.NewDecoder(bytes.NewReader(data))
		decoder.KnownFields(true)
		if err := decoder.Decode(&cfg); err != nil {
			return cfg, errors.Wrapf(err, "failed to parse config %s", path)
		}
	}

	for _, file := range envFiles {
		if err := godotenv.Load(file); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return cfg, errors.Wrapf(err, "failed to load env file %s", file)
		}
	}
	if err := cfg.applyEnv(); err != nil {
		return cfg, err
	}
	return cfg, cfg.Validate()
}

func (c *Config) applyEnv() error {
	if v := os.Getenv(EnvLogLevel); v != "" {
		c.LogLevel = v
	}
	if v := os.Getenv(EnvModelDir); v != "" {
		c.ModelDir = v
	}
	if v := os.Getenv(EnvSeed); v != "" {
		seed, err := strconv.ParseUint(v, 10, 64)
		if err != nil {
			return meta.Invalid(EnvSeed, "%q is not an unsigned integer", v)
		}
		c.Seed = seed
	}
	return nil
}

// Level returns the parsed log level.
func (c Config) Level() (zerolog.Level, error) {
	level, err := zerolog.ParseLevel(c.LogLevel)
	if err != nil {
		return zerolog.NoLevel, meta.Invalid("LogLevel", "%q is not a log level", c.LogLevel)
	}
	return level, nil
}

func (c Config) Validate() error {
	if _, err := c.Level(); err != nil {
		return err
	}
	if err := c.Rules.Validate(); err != nil {
		return err
	}
	if c.Training.Games < 0 {
		return meta.Invalid("Training.Games", "must not be negative, got %d", c.Training.Games)
	}
	if c.Training.Games > 0 && c.Training.Learner == "" {
		return meta.Invalid("Training.Learner", "is required")
	}
	if c.Search.Enabled {
		if c.Search.Agent == "" {
			return meta.Invalid("Search.Agent", "is required")
		}
		if c.Search.FitnessGames <= 0 {
			return meta.Invalid("Search.FitnessGames", "must be positive, got %d", c.Search.FitnessGames)
		}
		if c.Search.Opponent == LearnerOpponent && c.Training.Learner == "" {
			return meta.Invalid("Search.Opponent", "needs a learner")
		}
	}
	return nil
}
