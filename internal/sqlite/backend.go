// Package sqlite stores completed games. games.jsonl in the data directory
// is the source of truth; a SQLite database rebuilt from it on every Attach
// answers List and Stats queries.
package sqlite

import (
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	_ "modernc.org/sqlite"

	"github.com/aiham/dymaxion/pkg/types"
)

// Backend implements types.Recorder.
type Backend struct {
	mu       sync.RWMutex
	attached bool
	config   types.Config
	db       *sql.DB
	path     string
	lines    []json.RawMessage
}

var _ types.Recorder = (*Backend)(nil)

// NewBackend creates a detached backend. Call Attach before use.
func NewBackend() *Backend {
	return &Backend{}
}

// Attach creates DataDir if needed, rebuilds the database from games.jsonl
// and creates an empty games.jsonl when none exists.
// Returns ErrAlreadyAttached if already attached.
func (b *Backend) Attach(config types.Config) error {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.attached {
		return types.ErrAlreadyAttached
	}
	if err := config.Validate(); err != nil {
		return err
	}

	dataDir := config.DataDir
	if dataDir == "" {
		dataDir = "."
	}
	if err := os.MkdirAll(dataDir, 0o755); err != nil {
		return fmt.Errorf("creating data dir: %w", err)
	}

	dbPath := filepath.Join(dataDir, dbFile)
	if err := os.Remove(dbPath); err != nil && !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("removing stale database: %w", err)
	}
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return fmt.Errorf("opening database: %w", err)
	}
	db.SetMaxOpenConns(1)

	for _, ddl := range schemaDDL {
		if _, err := db.Exec(ddl); err != nil {
			db.Close()
			return fmt.Errorf("creating schema: %w", err)
		}
	}

	path := filepath.Join(dataDir, gamesJSONL)
	lines, err := readJSONL(path)
	if err != nil {
		db.Close()
		return err
	}
	if _, err := os.Stat(path); errors.Is(err, os.ErrNotExist) {
		if err := writeJSONL(path, nil); err != nil {
			db.Close()
			return fmt.Errorf("initializing %s: %w", gamesJSONL, err)
		}
	}
	if _, err := loadGames(db, lines); err != nil {
		db.Close()
		return fmt.Errorf("load JSONL: %w", err)
	}

	b.db = db
	b.config = config
	b.path = path
	b.lines = lines
	b.attached = true
	return nil
}

// Detach closes the database. Detach is idempotent.
func (b *Backend) Detach() error {
	b.mu.Lock()
	defer b.mu.Unlock()

	if !b.attached {
		return nil
	}
	b.attached = false
	b.lines = nil
	db := b.db
	b.db = nil
	return db.Close()
}

// Record validates rec, assigns an ID when it has none, appends it to
// games.jsonl and indexes it.
func (b *Backend) Record(rec types.GameRecord) (string, error) {
	b.mu.Lock()
	defer b.mu.Unlock()

	if !b.attached {
		return "", types.ErrRecorderDetached
	}
	if err := rec.Validate(); err != nil {
		return "", err
	}
	if rec.ID == "" {
		rec.ID = generateUUID()
	} else {
		var n int
		if err := b.db.QueryRow("SELECT COUNT(*) FROM games WHERE game_id = ?", rec.ID).Scan(&n); err != nil {
			return "", fmt.Errorf("checking game id: %w", err)
		}
		if n > 0 {
			return "", fmt.Errorf("%w: duplicate id %s", types.ErrInvalidRecord, rec.ID)
		}
	}

	g := toGameJSON(rec)
	line, err := json.Marshal(g)
	if err != nil {
		return "", fmt.Errorf("encoding game: %w", err)
	}
	lines := append(b.lines[:len(b.lines):len(b.lines)], line)
	if err := writeJSONL(b.path, lines); err != nil {
		return "", fmt.Errorf("persisting %s: %w", gamesJSONL, err)
	}
	b.lines = lines

	// games.jsonl already holds the record; a failed insert is repaired by
	// the next Attach.
	if _, err := b.db.Exec(insertGameSQL, g.args()...); err != nil {
		return rec.ID, fmt.Errorf("indexing game %s: %w", rec.ID, err)
	}
	return rec.ID, nil
}

// List returns games fastest first, ties broken by solve time.
func (b *Backend) List(filter types.RecordFilter) ([]types.GameRecord, error) {
	b.mu.RLock()
	defer b.mu.RUnlock()

	if !b.attached {
		return nil, types.ErrRecorderDetached
	}

	query := "SELECT " + strings.Join(gameColumns, ", ") + " FROM games"
	var args []any
	if filter.Puzzle != "" {
		query += " WHERE puzzle = ?"
		args = append(args, filter.Puzzle)
	}
	query += " ORDER BY duration_ns ASC, solved_at ASC"
	if filter.Limit > 0 {
		query += " LIMIT ?"
		args = append(args, filter.Limit)
	}

	rows, err := b.db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("querying games: %w", err)
	}
	defer rows.Close()

	var out []types.GameRecord
	for rows.Next() {
		var g gameJSON
		if err := rows.Scan(&g.GameID, &g.Puzzle, &g.Swaps, &g.Shuffles, &g.StartedAt, &g.SolvedAt, &g.DurationNS); err != nil {
			return nil, fmt.Errorf("scanning game: %w", err)
		}
		rec, err := g.record()
		if err != nil {
			return nil, err
		}
		out = append(out, rec)
	}
	return out, rows.Err()
}

// Stats aggregates games per puzzle.
func (b *Backend) Stats() ([]types.PuzzleStats, error) {
	b.mu.RLock()
	defer b.mu.RUnlock()

	if !b.attached {
		return nil, types.ErrRecorderDetached
	}

	rows, err := b.db.Query(`SELECT puzzle, COUNT(*), MIN(duration_ns), AVG(swaps)
FROM games GROUP BY puzzle ORDER BY puzzle`)
	if err != nil {
		return nil, fmt.Errorf("querying stats: %w", err)
	}
	defer rows.Close()

	var out []types.PuzzleStats
	for rows.Next() {
		var (
			s    types.PuzzleStats
			best int64
		)
		if err := rows.Scan(&s.Puzzle, &s.Games, &best, &s.MeanSwaps); err != nil {
			return nil, fmt.Errorf("scanning stats: %w", err)
		}
		s.Best = time.Duration(best)
		out = append(out, s)
	}
	return out, rows.Err()
}

// generateUUID generates a UUID v7 for game IDs.
func generateUUID() string {
	id, err := uuid.NewV7()
	if err != nil {
		return uuid.New().String()
	}
	return id.String()
}
