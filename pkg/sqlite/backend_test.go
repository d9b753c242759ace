package sqlite

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aiham/dymaxion/pkg/types"
)

func TestNewRecorder(t *testing.T) {
	rec := NewRecorder()
	require.NoError(t, rec.Attach(types.Config{Backend: types.BackendSQLite, DataDir: t.TempDir()}))
	defer rec.Detach()

	start := time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC)
	id, err := rec.Record(types.GameRecord{
		Puzzle:    "nara",
		Swaps:     12,
		StartedAt: start,
		SolvedAt:  start.Add(90 * time.Second),
	})
	require.NoError(t, err)
	assert.NotEmpty(t, id)

	games, err := rec.List(types.RecordFilter{})
	require.NoError(t, err)
	require.Len(t, games, 1)
	assert.Equal(t, id, games[0].ID)
	assert.ErrorIs(t, rec.Attach(types.Config{Backend: types.BackendSQLite, DataDir: t.TempDir()}), types.ErrAlreadyAttached)
}
