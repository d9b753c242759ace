// Package sqlite exposes the SQLite history backend behind types.Recorder
// while keeping the storage details internal.
package sqlite

import (
	"github.com/aiham/dymaxion/internal/sqlite"
	"github.com/aiham/dymaxion/pkg/types"
)

// NewRecorder returns an unattached SQLite recorder. Call Attach with a
// Config whose Backend is types.BackendSQLite before recording games.
//
//	rec := sqlite.NewRecorder()
//	err := rec.Attach(types.Config{
//	    Backend: types.BackendSQLite,
//	    DataDir: ".dymaxion-db",
//	})
//	defer rec.Detach()
func NewRecorder() types.Recorder {
	return sqlite.NewBackend()
}
