package config_test

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/TUE-EE-ES/modular-flow-shop-scheduler-sub000/dd"
	"github.com/TUE-EE-ES/modular-flow-shop-scheduler-sub000/internal/config"
	"github.com/TUE-EE-ES/modular-flow-shop-scheduler-sub000/schedule"
)

func TestLoad_MissingFileUsesDefaults(t *testing.T) {
	cfg, err := config.Load(filepath.Join(t.TempDir(), "absent.yaml"))
	require.NoError(t, err)

	def := config.DefaultSolver()
	assert.Equal(t, def.Strategy, cfg.Strategy)
	assert.Equal(t, def.Weights, cfg.Weights)
	assert.Equal(t, def.DDPolicy, cfg.DDPolicy)
}

func TestLoad_FileOverridesDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "solver.yaml")
	contents := []byte("strategy: dd\nweights:\n  flex: 0.75\n  prod: 0.25\n  tie: 0.01\ndd-policy: best\nbudget: 5s\n")
	require.NoError(t, os.WriteFile(path, contents, 0o644))

	cfg, err := config.Load(path)
	require.NoError(t, err)

	assert.Equal(t, schedule.DecisionDiagramStrategy, cfg.Strategy)
	assert.Equal(t, 0.75, cfg.Weights.Flex)
	assert.Equal(t, 0.25, cfg.Weights.Prod)
	assert.Equal(t, dd.BestPolicy, cfg.DDPolicy)
	assert.Equal(t, 5*time.Second, cfg.Budget)
}

func TestLoad_EnvOverridesFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "solver.yaml")
	require.NoError(t, os.WriteFile(path, []byte("strategy: forward\n"), 0o644))

	t.Setenv("SCHEDULER_STRATEGY", "dd")

	cfg, err := config.Load(path)
	require.NoError(t, err)

	assert.Equal(t, schedule.DecisionDiagramStrategy, cfg.Strategy)
}

func TestToOptions_CarriesAllFields(t *testing.T) {
	cfg := config.DefaultSolver()
	cfg.Budget = 2 * time.Second

	opts := cfg.ToOptions()
	assert.Equal(t, cfg.Strategy, opts.Strategy)
	assert.Equal(t, cfg.Weights, opts.Weights)
	assert.Equal(t, cfg.DDPolicy, opts.DDPolicy)
	assert.Equal(t, cfg.Budget, opts.Budget)
}
