package sqlite

import (
	"fmt"
	"time"

	"github.com/aiham/dymaxion/pkg/types"
)

// gameJSON is one line of games.jsonl.
type gameJSON struct {
	GameID     string `json:"game_id"`
	Puzzle     string `json:"puzzle"`
	Swaps      int    `json:"swaps"`
	Shuffles   int    `json:"shuffles"`
	StartedAt  string `json:"started_at"`
	SolvedAt   string `json:"solved_at"`
	DurationNS int64  `json:"duration_ns"`
}

func toGameJSON(rec types.GameRecord) gameJSON {
	return gameJSON{
		GameID:     rec.ID,
		Puzzle:     rec.Puzzle,
		Swaps:      rec.Swaps,
		Shuffles:   rec.Shuffles,
		StartedAt:  rec.StartedAt.UTC().Format(time.RFC3339Nano),
		SolvedAt:   rec.SolvedAt.UTC().Format(time.RFC3339Nano),
		DurationNS: int64(rec.Duration()),
	}
}

func (g gameJSON) record() (types.GameRecord, error) {
	started, err := time.Parse(time.RFC3339Nano, g.StartedAt)
	if err != nil {
		return types.GameRecord{}, fmt.Errorf("game %s started_at: %w", g.GameID, err)
	}
	solved, err := time.Parse(time.RFC3339Nano, g.SolvedAt)
	if err != nil {
		return types.GameRecord{}, fmt.Errorf("game %s solved_at: %w", g.GameID, err)
	}
	return types.GameRecord{
		ID:        g.GameID,
		Puzzle:    g.Puzzle,
		Swaps:     g.Swaps,
		Shuffles:  g.Shuffles,
		StartedAt: started,
		SolvedAt:  solved,
	}, nil
}

// args returns the values in gameColumns order.
func (g gameJSON) args() []any {
	return []any{g.GameID, g.Puzzle, g.Swaps, g.Shuffles, g.StartedAt, g.SolvedAt, g.DurationNS}
}
