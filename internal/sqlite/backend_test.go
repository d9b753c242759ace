package sqlite

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aiham/dymaxion/pkg/types"
)

var epoch = time.Date(2026, 3, 14, 12, 0, 0, 0, time.UTC)

func game(puzzle string, took time.Duration, swaps int) types.GameRecord {
	return types.GameRecord{
		Puzzle:    puzzle,
		Swaps:     swaps,
		StartedAt: epoch,
		SolvedAt:  epoch.Add(took),
	}
}

func attached(t *testing.T, dir string) *Backend {
	t.Helper()
	b := NewBackend()
	require.NoError(t, b.Attach(types.Config{Backend: types.BackendSQLite, DataDir: dir}))
	t.Cleanup(func() { b.Detach() })
	return b
}

func TestBackend_Attach(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "nested", "data")
	b := attached(t, dir)

	assert.FileExists(t, filepath.Join(dir, dbFile))
	info, err := os.Stat(filepath.Join(dir, gamesJSONL))
	require.NoError(t, err)
	assert.Zero(t, info.Size())

	err = b.Attach(types.Config{Backend: types.BackendSQLite, DataDir: dir})
	assert.ErrorIs(t, err, types.ErrAlreadyAttached)
}

func TestBackend_AttachInvalidConfig(t *testing.T) {
	b := NewBackend()
	assert.ErrorIs(t, b.Attach(types.Config{DataDir: t.TempDir()}), types.ErrBackendEmpty)
}

func TestBackend_Detach(t *testing.T) {
	b := attached(t, t.TempDir())

	require.NoError(t, b.Detach())
	require.NoError(t, b.Detach(), "detach is idempotent")

	_, err := b.Record(game("nara", time.Minute, 10))
	assert.ErrorIs(t, err, types.ErrRecorderDetached)
	_, err = b.List(types.RecordFilter{})
	assert.ErrorIs(t, err, types.ErrRecorderDetached)
	_, err = b.Stats()
	assert.ErrorIs(t, err, types.ErrRecorderDetached)
}

func TestBackend_Record(t *testing.T) {
	dir := t.TempDir()
	b := attached(t, dir)

	id, err := b.Record(game("nara", 90*time.Second, 14))
	require.NoError(t, err)
	parsed, err := uuid.Parse(id)
	require.NoError(t, err)
	assert.Equal(t, uuid.Version(7), parsed.Version())

	data, err := os.ReadFile(filepath.Join(dir, gamesJSONL))
	require.NoError(t, err)
	assert.Equal(t, 1, strings.Count(string(data), "\n"))
	assert.Contains(t, string(data), `"game_id":"`+id+`"`)
	assert.Contains(t, string(data), `"duration_ns":90000000000`)

	got, err := b.List(types.RecordFilter{})
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, id, got[0].ID)
	assert.Equal(t, 14, got[0].Swaps)
	assert.True(t, got[0].StartedAt.Equal(epoch))
	assert.Equal(t, 90*time.Second, got[0].Duration())
}

func TestBackend_RecordRejects(t *testing.T) {
	b := attached(t, t.TempDir())

	tests := []struct {
		name string
		rec  types.GameRecord
	}{
		{"no puzzle", game("", time.Minute, 1)},
		{"negative swaps", game("nara", time.Minute, -1)},
		{"solved before start", game("nara", -time.Minute, 1)},
		{"zero start", types.GameRecord{Puzzle: "nara"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := b.Record(tt.rec)
			assert.ErrorIs(t, err, types.ErrInvalidRecord)
		})
	}

	rec := game("nara", time.Minute, 3)
	rec.ID = "fixed-id"
	id, err := b.Record(rec)
	require.NoError(t, err)
	assert.Equal(t, "fixed-id", id)
	_, err = b.Record(rec)
	assert.ErrorIs(t, err, types.ErrInvalidRecord, "duplicate id")
}

func TestBackend_List(t *testing.T) {
	b := attached(t, t.TempDir())
	for _, g := range []types.GameRecord{
		game("nara", 3*time.Minute, 30),
		game("himeji", time.Minute, 12),
		game("nara", 2*time.Minute, 20),
		game("nara", 4*time.Minute, 40),
	} {
		_, err := b.Record(g)
		require.NoError(t, err)
	}

	tests := []struct {
		name   string
		filter types.RecordFilter
		swaps  []int
	}{
		{"all fastest first", types.RecordFilter{}, []int{12, 20, 30, 40}},
		{"one puzzle", types.RecordFilter{Puzzle: "nara"}, []int{20, 30, 40}},
		{"limited", types.RecordFilter{Puzzle: "nara", Limit: 2}, []int{20, 30}},
		{"unknown puzzle", types.RecordFilter{Puzzle: "kiyomizu"}, nil},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := b.List(tt.filter)
			require.NoError(t, err)
			var swaps []int
			for _, g := range got {
				swaps = append(swaps, g.Swaps)
			}
			assert.Equal(t, tt.swaps, swaps)
		})
	}
}

func TestBackend_Stats(t *testing.T) {
	b := attached(t, t.TempDir())

	stats, err := b.Stats()
	require.NoError(t, err)
	assert.Empty(t, stats)

	for _, g := range []types.GameRecord{
		game("nara", 3*time.Minute, 30),
		game("nara", 2*time.Minute, 21),
		game("himeji", time.Minute, 12),
	} {
		_, err := b.Record(g)
		require.NoError(t, err)
	}

	stats, err = b.Stats()
	require.NoError(t, err)
	assert.Equal(t, []types.PuzzleStats{
		{Puzzle: "himeji", Games: 1, Best: time.Minute, MeanSwaps: 12},
		{Puzzle: "nara", Games: 2, Best: 2 * time.Minute, MeanSwaps: 25.5},
	}, stats)
}

func TestBackend_ReattachRebuildsFromJSONL(t *testing.T) {
	dir := t.TempDir()

	b := NewBackend()
	cfg := types.Config{Backend: types.BackendSQLite, DataDir: dir}
	require.NoError(t, b.Attach(cfg))
	id, err := b.Record(game("nara", time.Minute, 9))
	require.NoError(t, err)
	require.NoError(t, b.Detach())

	// The database is disposable; games.jsonl alone restores it.
	require.NoError(t, os.Remove(filepath.Join(dir, dbFile)))

	b2 := attached(t, dir)
	got, err := b2.List(types.RecordFilter{})
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, id, got[0].ID)

	_, err = b2.Record(game("nara", 2*time.Minute, 11))
	require.NoError(t, err)
	lines, err := readJSONL(filepath.Join(dir, gamesJSONL))
	require.NoError(t, err)
	assert.Len(t, lines, 2)
}
