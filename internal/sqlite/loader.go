package sqlite

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"strings"
)

// loadGames inserts the games.jsonl lines into the games table in one
// transaction. Lines that do not decode, fail validation or repeat an ID are
// skipped; unknown fields are ignored. Returns the number of rows inserted.
func loadGames(db *sql.DB, lines []json.RawMessage) (int, error) {
	tx, err := db.Begin()
	if err != nil {
		return 0, fmt.Errorf("beginning load transaction: %w", err)
	}
	defer tx.Rollback()

	stmt, err := tx.Prepare(insertGameSQL)
	if err != nil {
		return 0, fmt.Errorf("preparing insert: %w", err)
	}
	defer stmt.Close()

	loaded := 0
	for _, line := range lines {
		var g gameJSON
		if err := json.Unmarshal(line, &g); err != nil {
			continue
		}
		rec, err := g.record()
		if err != nil || g.GameID == "" || rec.Validate() != nil {
			continue
		}
		// Recompute so a hand-edited duration cannot disagree with the timestamps.
		g.DurationNS = int64(rec.Duration())
		if _, err := stmt.Exec(g.args()...); err != nil {
			continue
		}
		loaded++
	}

	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("committing load transaction: %w", err)
	}
	return loaded, nil
}

var insertGameSQL = fmt.Sprintf(
	"INSERT INTO games (%s) VALUES (%s)",
	strings.Join(gameColumns, ", "),
	strings.TrimSuffix(strings.Repeat("?, ", len(gameColumns)), ", "),
)
