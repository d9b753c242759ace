package types

import "time"

// GameRecord describes one completed game.
type GameRecord struct {
	ID        string    `json:"id"`
	Puzzle    string    `json:"puzzle"`
	Swaps     int       `json:"swaps"`
	Shuffles  int       `json:"shuffles"`
	StartedAt time.Time `json:"started_at"`
	SolvedAt  time.Time `json:"solved_at"`
}

// Duration is the time from the first shuffle to the solving swap.
func (r GameRecord) Duration() time.Duration {
	return r.SolvedAt.Sub(r.StartedAt)
}

// Validate checks the fields a recorder needs. ID may be empty; the recorder
// assigns one.
func (r GameRecord) Validate() error {
	if r.Puzzle == "" || r.Swaps < 0 || r.Shuffles < 0 {
		return ErrInvalidRecord
	}
	if r.StartedAt.IsZero() || r.SolvedAt.Before(r.StartedAt) {
		return ErrInvalidRecord
	}
	return nil
}

// RecordFilter narrows Recorder.List. Zero values match everything.
type RecordFilter struct {
	Puzzle string
	Limit  int
}

// PuzzleStats aggregates the completed games of one puzzle.
type PuzzleStats struct {
	Puzzle    string        `json:"puzzle"`
	Games     int           `json:"games"`
	Best      time.Duration `json:"best"`
	MeanSwaps float64       `json:"mean_swaps"`
}

// Recorder stores completed games. Callers attach to a backend, record and
// query games, and detach when done.
type Recorder interface {
	// Attach opens the backend described by config.
	// Returns ErrAlreadyAttached if called while attached.
	Attach(config Config) error

	// Detach releases backend resources. Idempotent.
	Detach() error

	// Record stores a completed game and returns its ID. An empty ID is
	// replaced with a new UUID v7.
	Record(rec GameRecord) (string, error)

	// List returns records ordered fastest first.
	List(filter RecordFilter) ([]GameRecord, error)

	// Stats returns per-puzzle aggregates ordered by puzzle name.
	Stats() ([]PuzzleStats, error)
}
