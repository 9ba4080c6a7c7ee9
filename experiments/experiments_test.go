package experiments

import (
	"context"
	"encoding/csv"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestLoadSetup(t *testing.T) {
	path := filepath.Join(t.TempDir(), "setup.yaml")
	err := os.WriteFile(path, []byte(`
output: out
runs:
  - game: switches
    strategy: differential
    goroutines: 2
    duration: 250ms
    prune: true
  - playouts: 10
`), 0644)
	require.NoError(t, err)

	setup, err := LoadSetup(path)

	require.NoError(t, err)
	require.Equal(t, "out", setup.Output)
	require.Len(t, setup.Runs, 2)
	require.Equal(t, Config{
		ID: 1, Game: "switches", Strategy: "differential", Goroutines: 2,
		Duration: 250 * time.Millisecond, Prune: true, Seed: 1,
	}, setup.Runs[0])
	second := setup.Runs[1]
	require.Equal(t, 2, second.ID)
	require.Equal(t, "tictactoe", second.Game, "Defaults should fill missing fields")
	require.Equal(t, "full", second.Strategy)
	require.Zero(t, second.Duration, "A playout budget alone bounds the run")

	_, err = LoadSetup(filepath.Join(t.TempDir(), "missing.yaml"))
	require.Error(t, err)
}

func TestRun(t *testing.T) {
	for _, strategy := range []string{"full", "differential"} {
		t.Run(strategy, func(t *testing.T) {
			cfg := Config{ID: 1, Game: "tictactoe", Strategy: strategy, Goroutines: 4, Playouts: 40}

			record, err := Run(context.Background(), cfg)

			require.NoError(t, err)
			require.Equal(t, int64(40), record.Playouts, "The playout budget should be spent exactly")
			require.Positive(t, record.Evaluation.Propagations)
			require.Positive(t, record.Evaluation.Transitions)
			require.Positive(t, record.Components)
		})
	}

	t.Run("duration bounds the run", func(t *testing.T) {
		cfg := Config{Game: "switches", Goroutines: 2, Duration: 20 * time.Millisecond, Prune: true, Factor: true}

		record, err := Run(context.Background(), cfg)

		require.NoError(t, err)
		require.Positive(t, record.Playouts)
		require.Positive(t, record.Evaluation.Duration)
		require.Less(t, record.Evaluation.Duration, 5*time.Second)
	})

	t.Run("unknown game", func(t *testing.T) {
		_, err := Run(context.Background(), Config{Game: "chess", Playouts: 1})

		require.Error(t, err)
	})
}

func TestRunAll(t *testing.T) {
	w, err := NewWriter(t.TempDir())
	require.NoError(t, err)
	configs := []Config{
		{ID: 1, Game: "tictactoe", Strategy: "full", Goroutines: 1, Playouts: 5},
		{ID: 2, Game: "tictactoe", Strategy: "differential", Goroutines: 1, Playouts: 5},
	}

	records, err := RunAll(context.Background(), configs, w)

	require.NoError(t, err)
	require.Len(t, records, 2)
	for name, rows := range map[string]int{"run_configs.csv": 3, "run_records.csv": 3} {
		f, err := os.Open(filepath.Join(w.Dir(), name))
		require.NoError(t, err)
		lines, err := csv.NewReader(f).ReadAll()
		f.Close()
		require.NoError(t, err)
		require.Len(t, lines, rows, "%s should hold a header and one row per run", name)
	}

	f, err := os.Open(filepath.Join(w.Dir(), "run_records.csv"))
	require.NoError(t, err)
	defer f.Close()
	lines, err := csv.NewReader(f).ReadAll()
	require.NoError(t, err)
	require.Equal(t, "elapsed", lines[0][3])
	for _, row := range lines[1:] {
		elapsed, err := time.ParseDuration(row[3])
		require.NoError(t, err)
		require.Positive(t, elapsed, "The measured run duration should be written")
	}
}

func TestWriter(t *testing.T) {
	w, err := NewWriter(t.TempDir())
	require.NoError(t, err)
	require.NoError(t, w.WriteConfigs([]Config{{ID: 1, Game: "tictactoe"}}))

	require.NoError(t, os.RemoveAll(w.Dir()))

	require.Error(t, w.WriteConfigs([]Config{{ID: 1, Game: "tictactoe"}}), "Failed writes must not be reported as success")
	require.Error(t, w.WriteRecords(nil))
}
