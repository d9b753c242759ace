// Package puzzle holds the mutable assignment of pieces to board slots. A
// State is created solved, changes only through Swap and Shuffle, and checks
// every move against the topology table.
//
// State is not safe for concurrent use; callers serialize mutations.
package puzzle

import (
	"fmt"
	"math/rand/v2"

	"github.com/aiham/dymaxion/pkg/topology"
	"github.com/aiham/dymaxion/pkg/types"
)

// Status is the observable state of a puzzle.
type Status int

// Puzzle statuses.
const (
	InProgress Status = iota + 1
	Solved
)

// String returns the lower-case status name.
func (s Status) String() string {
	switch s {
	case InProgress:
		return "in_progress"
	case Solved:
		return "solved"
	default:
		return fmt.Sprintf("status(%d)", int(s))
	}
}

// Assignment maps each slot to the ID of the piece it holds. Index 0 is
// unused so that Assignment[slot] reads naturally.
type Assignment [types.SlotCount + 1]types.Slot

// Solved reports whether every slot holds its own piece.
func (a Assignment) Solved() bool {
	for _, s := range types.AllSlots() {
		if a[s] != s {
			return false
		}
	}
	return true
}

// State is the slot-to-piece mapping of one puzzle.
type State struct {
	table  *topology.Table
	rng    *rand.Rand
	pieces map[types.Slot]*types.Piece // keyed by piece ID
	slots  Assignment
}

// Option configures a State.
type Option func(*State)

// WithTopology replaces the default Dymaxion table.
func WithTopology(t *topology.Table) Option {
	return func(s *State) { s.table = t }
}

// WithRand sets the random source used by Shuffle.
func WithRand(r *rand.Rand) Option {
	return func(s *State) { s.rng = r }
}

// New takes ownership of one piece per slot and places each piece in the
// slot matching its ID, so the new State is solved. Returns
// ErrIncompletePieceSet unless the IDs cover every slot exactly once.
func New(pieces []types.Piece, opts ...Option) (*State, error) {
	if len(pieces) != types.SlotCount {
		return nil, fmt.Errorf("%w: got %d pieces, want %d", types.ErrIncompletePieceSet, len(pieces), types.SlotCount)
	}

	s := &State{pieces: make(map[types.Slot]*types.Piece, types.SlotCount)}
	for _, opt := range opts {
		opt(s)
	}
	if s.table == nil {
		s.table = topology.Default()
	}
	if s.rng == nil {
		s.rng = rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64()))
	}

	for _, p := range pieces {
		if !p.ID.Valid() {
			return nil, fmt.Errorf("%w: piece id %d out of range", types.ErrIncompletePieceSet, p.ID)
		}
		if _, dup := s.pieces[p.ID]; dup {
			return nil, fmt.Errorf("%w: piece id %d repeated", types.ErrIncompletePieceSet, p.ID)
		}
		piece := p
		piece.Slot = p.ID
		s.pieces[p.ID] = &piece
		s.slots[p.ID] = p.ID
	}
	return s, nil
}

// Topology returns the table the state checks moves against.
func (s *State) Topology() *topology.Table {
	return s.table
}

// IsSolved reports whether every slot holds the piece whose ID matches it.
func (s *State) IsSolved() bool {
	if s.pieces == nil {
		return false
	}
	return s.slots.Solved()
}

// Status returns Solved or InProgress.
func (s *State) Status() Status {
	if s.IsSolved() {
		return Solved
	}
	return InProgress
}

// Swap exchanges the pieces in slots a and b and returns both pieces with
// their new slots. The slots must share a shape category. Swapping a slot
// with itself succeeds and changes nothing.
func (s *State) Swap(a, b types.Slot) ([2]types.Piece, error) {
	if s.pieces == nil {
		return [2]types.Piece{}, types.ErrStateDestroyed
	}
	if !a.Valid() || !b.Valid() {
		return [2]types.Piece{}, fmt.Errorf("%w: swap %d and %d", types.ErrInvalidSlot, a, b)
	}
	if !s.table.CanSwap(a, b) {
		return [2]types.Piece{}, fmt.Errorf("%w: swap %d and %d", types.ErrIncompatibleShape, a, b)
	}

	pa, pb := s.pieces[s.slots[a]], s.pieces[s.slots[b]]
	pa.Slot, pb.Slot = b, a
	s.slots[a], s.slots[b] = pb.ID, pa.ID
	return [2]types.Piece{*pa, *pb}, nil
}

// Shuffle deals the pieces of every shufflable category into that category's
// pool at random; pieces in fixed categories stay where they are. Slots are
// visited in ascending order and each draws one unused target from its pool,
// which gives a uniform permutation within each category. The identity
// permutation is a legal outcome.
//
// Returns ErrShuffleExhausted if a pool runs dry, which means the topology
// table is inconsistent; the assignment is left unchanged in that case.
func (s *State) Shuffle() (Assignment, error) {
	if s.pieces == nil {
		return Assignment{}, types.ErrStateDestroyed
	}

	avail := make(map[types.ShapeCategory][]types.Slot)
	for _, c := range s.table.Categories() {
		if s.table.Shufflable(c) {
			avail[c] = s.table.Pool(c)
		}
	}

	var next Assignment
	for _, slot := range types.AllSlots() {
		pieceID := s.slots[slot]
		c, err := s.table.CategoryOf(slot)
		if err != nil {
			return Assignment{}, err
		}
		pool, ok := avail[c]
		if !ok {
			next[slot] = pieceID
			continue
		}

		var target types.Slot
		switch len(pool) {
		case 0:
			return Assignment{}, fmt.Errorf("%w: no %s target left for slot %d", types.ErrShuffleExhausted, c, slot)
		case 1:
			target = pool[0]
		default:
			target = pool[s.rng.IntN(len(pool))]
		}
		avail[c] = removeSlot(pool, target)
		next[target] = pieceID
	}

	s.slots = next
	for _, slot := range types.AllSlots() {
		s.pieces[next[slot]].Slot = slot
	}
	return next, nil
}

func removeSlot(pool []types.Slot, target types.Slot) []types.Slot {
	out := pool[:0]
	for _, s := range pool {
		if s != target {
			out = append(out, s)
		}
	}
	return out
}

// Assignment returns a snapshot of the slot-to-piece mapping.
func (s *State) Assignment() Assignment {
	return s.slots
}

// PieceAt returns the piece currently in slot.
func (s *State) PieceAt(slot types.Slot) (types.Piece, error) {
	if s.pieces == nil {
		return types.Piece{}, types.ErrStateDestroyed
	}
	if !slot.Valid() {
		return types.Piece{}, fmt.Errorf("%w: %d", types.ErrInvalidSlot, slot)
	}
	return *s.pieces[s.slots[slot]], nil
}

// SlotOf returns the slot currently holding the piece with the given ID.
func (s *State) SlotOf(pieceID types.Slot) (types.Slot, error) {
	if s.pieces == nil {
		return 0, types.ErrStateDestroyed
	}
	p, ok := s.pieces[pieceID]
	if !ok {
		return 0, fmt.Errorf("%w: piece %d", types.ErrInvalidSlot, pieceID)
	}
	return p.Slot, nil
}

// Pieces returns copies of all pieces ordered by ID.
func (s *State) Pieces() []types.Piece {
	if s.pieces == nil {
		return nil
	}
	out := make([]types.Piece, 0, types.SlotCount)
	for _, id := range types.AllSlots() {
		out = append(out, *s.pieces[id])
	}
	return out
}

// Destroy releases every piece. Later calls fail with ErrStateDestroyed.
func (s *State) Destroy() {
	s.pieces = nil
	s.slots = Assignment{}
}
