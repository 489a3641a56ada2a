package config

import (
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultIsValid(t *testing.T) {
	cfg := Default()
	require.NoError(t, cfg.Validate())
	assert.Equal(t, 28, cfg.Pathfinding.MaxPathLength)
	assert.Equal(t, 10, cfg.Pathfinding.RetryBudget)
	assert.Equal(t, 1000, cfg.Pathfinding.SoftBlockCost)
}

func TestParseOverridesDefaults(t *testing.T) {
	cfg, err := Parse([]byte(`
pathfinding:
  max_path_length: 64
  max_expansions: 5000
log:
  level: debug
`))
	require.NoError(t, err)
	assert.Equal(t, 64, cfg.Pathfinding.MaxPathLength)
	assert.Equal(t, 5000, cfg.Pathfinding.MaxExpansions)
	assert.Equal(t, 10, cfg.Pathfinding.RetryBudget, "unset keys keep defaults")
	assert.Equal(t, 20.0, cfg.Simulation.TickRate)

	lvl, err := cfg.Log.SlogLevel()
	require.NoError(t, err)
	assert.Equal(t, slog.LevelDebug, lvl)
}

func TestParseEmptyDocument(t *testing.T) {
	cfg, err := Parse(nil)
	require.NoError(t, err)
	assert.Equal(t, Default(), cfg)
}

func TestParseRejects(t *testing.T) {
	tests := []struct {
		name string
		yaml string
	}{
		{"unknown key", "pathfinding:\n  max_pathlength: 3\n"},
		{"zero path length", "pathfinding:\n  max_path_length: 0\n"},
		{"negative retry", "pathfinding:\n  retry_budget: -1\n"},
		{"soft block too cheap", "pathfinding:\n  soft_block_cost: 2\n"},
		{"bad tick rate", "simulation:\n  tick_rate: 0\n"},
		{"bad level", "log:\n  level: loud\n"},
		{"not yaml", "pathfinding: [\n"},
	}
	for _, tc := range tests {
		_, err := Parse([]byte(tc.yaml))
		assert.Error(t, err, tc.name)
	}
}

func TestLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "engine.yaml")
	require.NoError(t, os.WriteFile(path, []byte("pathfinding:\n  retry_budget: 3\n"), 0644))

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, 3, cfg.Pathfinding.RetryBudget)

	_, err = Load(filepath.Join(t.TempDir(), "absent.yaml"))
	assert.Error(t, err)
}
