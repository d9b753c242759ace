package sqlite

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aiham/dymaxion/pkg/types"
)

func TestReadJSONL(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  int
	}{
		{"empty file", "", 0},
		{"two records", "{\"a\":1}\n{\"a\":2}\n", 2},
		{"blank lines skipped", "{\"a\":1}\n\n\n{\"a\":2}", 2},
		{"malformed lines skipped", "{\"a\":1}\n{not json\n{\"a\":3}\n", 2},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), gamesJSONL)
			require.NoError(t, os.WriteFile(path, []byte(tt.input), 0o644))

			lines, err := readJSONL(path)
			require.NoError(t, err)
			assert.Len(t, lines, tt.want)
		})
	}
}

func TestReadJSONLMissingFile(t *testing.T) {
	lines, err := readJSONL(filepath.Join(t.TempDir(), "absent.jsonl"))
	require.NoError(t, err)
	assert.Empty(t, lines)
}

func TestWriteJSONLReplacesAtomically(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, gamesJSONL)
	require.NoError(t, os.WriteFile(path, []byte("{\"old\":true}\n"), 0o644))

	lines := []json.RawMessage{json.RawMessage(`{"a":1}`), json.RawMessage(`{"a":2}`)}
	require.NoError(t, writeJSONL(path, lines))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "{\"a\":1}\n{\"a\":2}\n", string(data))

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	require.Len(t, entries, 1, "no temp files left behind")
}

func TestWriteJSONLMissingDir(t *testing.T) {
	err := writeJSONL(filepath.Join(t.TempDir(), "missing", gamesJSONL), nil)
	assert.Error(t, err)
}

func TestGameJSONTimestamps(t *testing.T) {
	local := time.FixedZone("JST", 9*60*60)
	rec := types.GameRecord{
		ID:        "g1",
		Puzzle:    "miyajima",
		Swaps:     17,
		Shuffles:  1,
		StartedAt: time.Date(2026, 4, 1, 21, 0, 0, 123456789, local),
	}
	rec.SolvedAt = rec.StartedAt.Add(95 * time.Second)

	g := toGameJSON(rec)
	assert.Equal(t, "2026-04-01T12:00:00.123456789Z", g.StartedAt)
	assert.Equal(t, int64(95*time.Second), g.DurationNS)

	back, err := g.record()
	require.NoError(t, err)
	assert.True(t, back.StartedAt.Equal(rec.StartedAt))
	assert.Equal(t, rec.Duration(), back.Duration())

	g.SolvedAt = "yesterday"
	_, err = g.record()
	assert.Error(t, err)
}
