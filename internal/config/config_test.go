package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	cfg := Load()
	require.NotNil(t, cfg)

	assert.InDelta(t, 1e-6, cfg.Solver.Epsilon, 1e-12)
	assert.InDelta(t, 300.0, cfg.Solver.TimeLimitSeconds, 1e-12)
	assert.Equal(t, 1000, cfg.Solver.MaxIterations)
	assert.Equal(t, "simplex", cfg.Solver.Engine)
	assert.Equal(t, "info", cfg.Logging.Level)
	assert.Equal(t, "console", cfg.Logging.Format)
}

func TestLoad_EnvOverride(t *testing.T) {
	t.Setenv("SOLVER_ENGINE", "golp")
	t.Setenv("SOLVER_MAX_ITERATIONS", "250")
	t.Setenv("LOG_LEVEL", "debug")

	cfg := Load()
	assert.Equal(t, "golp", cfg.Solver.Engine)
	assert.Equal(t, 250, cfg.Solver.MaxIterations)
	assert.Equal(t, "debug", cfg.Logging.Level)
}
