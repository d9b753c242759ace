package sqlite

// File names inside DataDir.
const (
	gamesJSONL = "games.jsonl"
	dbFile     = "dymaxion.db"
)

// Schema DDL. The database is rebuilt from games.jsonl on every Attach, so
// there are no migrations.
const (
	createGames = `CREATE TABLE games (
    game_id TEXT PRIMARY KEY,
    puzzle TEXT NOT NULL,
    swaps INTEGER NOT NULL,
    shuffles INTEGER NOT NULL,
    started_at TEXT NOT NULL,
    solved_at TEXT NOT NULL,
    duration_ns INTEGER NOT NULL
);`

	idxGamesPuzzle   = `CREATE INDEX idx_games_puzzle ON games(puzzle);`
	idxGamesDuration = `CREATE INDEX idx_games_duration ON games(puzzle, duration_ns);`
)

var schemaDDL = []string{
	createGames,
	idxGamesPuzzle,
	idxGamesDuration,
}

// gameColumns is the column order shared by inserts and selects.
var gameColumns = []string{"game_id", "puzzle", "swaps", "shuffles", "started_at", "solved_at", "duration_ns"}
