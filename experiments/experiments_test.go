package experiments

import (
	"os"
	"othello/experiments/metrics"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestRunMinimaxVsRandom(t *testing.T) {
	if testing.Short() {
		t.Skip("plays full minimax games")
	}

	dir, err := RunMinimaxVsRandom(2, t.TempDir())

	require.NoError(t, err)
	for _, name := range []string{"agent_configs.csv", "game_records.csv", "move_records.csv"} {
		info, err := os.Stat(filepath.Join(dir, name))
		require.NoError(t, err, "%s should be written", name)
		require.Positive(t, info.Size())
	}
}

func TestCreateAgent(t *testing.T) {
	require.NotNil(t, createAgent(metrics.AgentConfig{Kind: "minimax"}))
	require.NotNil(t, createAgent(metrics.AgentConfig{Kind: "random", Seed: 1}))
	require.NotNil(t, createAgent(metrics.AgentConfig{Kind: "remote", URL: "http://localhost:8080"}))
	require.Panics(t, func() { createAgent(metrics.AgentConfig{Kind: "mcts"}) })
}
