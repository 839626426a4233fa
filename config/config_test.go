package config

import (
	"os"
	"path/filepath"
	"testing"

	"uno/meta"

	"github.com/pkg/errors"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"
)

func writeFile(t *testing.T, name, content string) string {
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func TestLoad(t *testing.T) {
	t.Run("defaults without a file", func(t *testing.T) {
		cfg, err := Load("")
		require.NoError(t, err)
		require.Equal(t, Default(), cfg)
	})

	t.Run("file overrides defaults", func(t *testing.T) {
		path := writeFile(t, "uno.yaml", `
log_level: debug
seed: 42
rules:
  numeric_starter: false
  max_turns: 500
training:
  games: 10
  opponents: [random]
search:
  generations: 2
  population_size: 8
  carry_over: 2
`)
		cfg, err := Load(path)
		require.NoError(t, err)

		require.Equal(t, uint64(42), cfg.Seed)
		require.False(t, cfg.Rules.NumericStarter)
		require.Equal(t, 500, cfg.Rules.MaxTurns)
		require.Equal(t, 7, cfg.Rules.HandSize, "Unset rules keep their default")
		require.Equal(t, []string{"random"}, cfg.Training.Opponents)
		require.Equal(t, Default().Training.Learner, cfg.Training.Learner)
		require.Equal(t, 8, cfg.Search.PopulationSize)

		level, err := cfg.Level()
		require.NoError(t, err)
		require.Equal(t, zerolog.DebugLevel, level)
	})

	t.Run("unknown fields are rejected", func(t *testing.T) {
		_, err := Load(writeFile(t, "uno.yaml", "generations: 3\n"))
		require.Error(t, err)
	})

	t.Run("missing file", func(t *testing.T) {
		_, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
		require.Error(t, err)
	})

	t.Run("environment overrides the file", func(t *testing.T) {
		t.Setenv(EnvModelDir, "/tmp/models")
		t.Setenv(EnvSeed, "7")
		cfg, err := Load(writeFile(t, "uno.yaml", "seed: 42\nmodel_dir: here\n"))

		require.NoError(t, err)
		require.Equal(t, "/tmp/models", cfg.ModelDir)
		require.Equal(t, uint64(7), cfg.Seed)
	})

	t.Run("env file fills the environment", func(t *testing.T) {
		t.Setenv(EnvLogLevel, "")
		require.NoError(t, os.Unsetenv(EnvLogLevel))
		envFile := writeFile(t, ".env", EnvLogLevel+"=warn\n")

		cfg, err := Load("", envFile, filepath.Join(t.TempDir(), "missing.env"))
		require.NoError(t, err)
		require.Equal(t, "warn", cfg.LogLevel)
	})

	t.Run("invalid environment", func(t *testing.T) {
		for _, tc := range []struct {
			env, value, field string
		}{
			{EnvSeed, "-1", EnvSeed},
			{EnvLogLevel, "loud", "LogLevel"},
		} {
			t.Run(tc.env, func(t *testing.T) {
				t.Setenv(tc.env, tc.value)
				_, err := Load("")

				var configErr *meta.ConfigError
				require.True(t, errors.As(err, &configErr))
				require.Equal(t, tc.field, configErr.Field)
			})
		}
	})

	t.Run("invalid rules", func(t *testing.T) {
		_, err := Load(writeFile(t, "uno.yaml", "rules:\n  first_turn_number: 3\n"))
		require.Error(t, err)
	})
}
