package metrics

import (
	"encoding/csv"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestWriterCreatesRunDirectory(t *testing.T) {
	base := t.TempDir()

	w, err := NewWriter(base)

	require.NoError(t, err)
	require.DirExists(t, w.Dir())
	require.Equal(t, base, filepath.Dir(w.Dir()))
}

func TestWriteGameRecords(t *testing.T) {
	w, err := NewWriter(t.TempDir())
	require.NoError(t, err)

	start := time.Date(2026, 8, 1, 12, 0, 0, 0, time.UTC)
	records := []GameRecord{
		{ID: 0, GameMetric: GameMetric{
			Agent:     "mcts",
			Win:       true,
			Rounds:    12,
			Turns:     87,
			StartTime: start,
			EndTime:   start.Add(3 * time.Second),
			Duration:  3 * time.Second,
		}},
		{ID: 1, GameMetric: GameMetric{Agent: "random", HitMoveCap: true}},
	}

	require.NoError(t, w.WriteGameRecords(records))

	rows := readCSV(t, filepath.Join(w.Dir(), "game_records.csv"))
	require.Len(t, rows, 3)
	require.Equal(t, []string{"id", "agent", "win", "rounds", "turns", "hit_move_cap",
		"start_time", "end_time", "duration"}, rows[0])
	require.Equal(t, "0", rows[1][0])
	require.Equal(t, "mcts", rows[1][1])
	require.Equal(t, "true", rows[1][2])
	require.Equal(t, "12", rows[1][3])
	require.Equal(t, "3s", rows[1][8])
	require.Equal(t, "true", rows[2][5], "move-cap cutoff is recorded")
}

func TestWriteMoveRecords(t *testing.T) {
	w, err := NewWriter(t.TempDir())
	require.NoError(t, err)

	records := []MoveRecord{
		{Game: 0, MoveMetric: MoveMetric{
			Step:   3,
			Phase:  "PLAYER",
			Action: "MOVE to=B",
			SearchMetric: SearchMetric{
				Duration:     250 * time.Millisecond,
				Episodes:     1000,
				FullPlayouts: 42,
			},
		}},
	}

	require.NoError(t, w.WriteMoveRecords(records))

	rows := readCSV(t, filepath.Join(w.Dir(), "move_records.csv"))
	require.Len(t, rows, 2)
	require.Equal(t, []string{"game", "step", "phase", "action", "duration",
		"episodes", "full_playouts"}, rows[0])
	require.Equal(t, []string{"0", "3", "PLAYER", "MOVE to=B", "250ms", "1000", "42"}, rows[1])
}

func readCSV(t *testing.T, path string) [][]string {
	t.Helper()
	f, err := os.Open(path)
	require.NoError(t, err)
	defer f.Close()
	rows, err := csv.NewReader(f).ReadAll()
	require.NoError(t, err)
	return rows
}

func TestCollectorCounts(t *testing.T) {
	c := NewCollector()
	c.Start(4, 50)
	for i := 0; i < 10; i++ {
		c.AddEpisode()
	}
	c.AddFullPlayout()
	c.AddFullPlayout()

	m := c.Complete()

	require.Equal(t, 4, m.Goroutines)
	require.Equal(t, 50, m.Cutoff)
	require.Equal(t, 10, m.Episodes)
	require.Equal(t, 2, m.FullPlayouts)
	require.GreaterOrEqual(t, m.Duration, time.Duration(0))
}
