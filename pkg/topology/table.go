// Package topology describes the fixed Dymaxion board: the layout position,
// triangle shape and orientation of each of the 23 slots, and which slots
// may exchange pieces.
//
// A Table is immutable after construction and safe to share between
// goroutines and puzzle states.
package topology

import (
	"fmt"
	"slices"

	"github.com/aiham/dymaxion/pkg/types"
)

// Entry is the static description of one slot.
type Entry struct {
	Pos      types.Coord
	Category types.ShapeCategory
	Flipped  bool
}

// Table maps every slot to its Entry and holds the shuffle pools: the target
// slots that the pieces of each shufflable category are dealt into.
type Table struct {
	entries [types.SlotCount + 1]Entry
	pools   map[types.ShapeCategory][]types.Slot
}

// dymaxionEntries is the board as drawn on the Dymaxion map. Slot 22 is the
// down-pointing isosceles that overlaps slot 21 at the same grid cell.
var dymaxionEntries = map[types.Slot]Entry{
	1:  {Pos: types.Coord{Col: 2, Row: 0}, Category: types.Equilateral, Flipped: true},
	2:  {Pos: types.Coord{Col: 3, Row: 0}, Category: types.Equilateral},
	3:  {Pos: types.Coord{Col: 4, Row: 0}, Category: types.Equilateral, Flipped: true},
	4:  {Pos: types.Coord{Col: 7, Row: 0}, Category: types.Equilateral},
	5:  {Pos: types.Coord{Col: 9, Row: 0}, Category: types.Equilateral},
	6:  {Pos: types.Coord{Col: 1, Row: 1}, Category: types.Equilateral, Flipped: true},
	7:  {Pos: types.Coord{Col: 2, Row: 1}, Category: types.Equilateral},
	8:  {Pos: types.Coord{Col: 3, Row: 1}, Category: types.Equilateral, Flipped: true},
	9:  {Pos: types.Coord{Col: 4, Row: 1}, Category: types.Equilateral},
	10: {Pos: types.Coord{Col: 5, Row: 1}, Category: types.Equilateral, Flipped: true},
	11: {Pos: types.Coord{Col: 6, Row: 1}, Category: types.Equilateral},
	12: {Pos: types.Coord{Col: 7, Row: 1}, Category: types.Equilateral, Flipped: true},
	13: {Pos: types.Coord{Col: 8, Row: 1}, Category: types.Equilateral},
	14: {Pos: types.Coord{Col: 9, Row: 1}, Category: types.Equilateral, Flipped: true},
	15: {Pos: types.Coord{Col: 1, Row: 2}, Category: types.Equilateral},
	16: {Pos: types.Coord{Col: 4, Row: 2}, Category: types.Equilateral, Flipped: true},
	17: {Pos: types.Coord{Col: 6, Row: 2}, Category: types.Equilateral, Flipped: true},
	18: {Pos: types.Coord{Col: 7, Row: 2}, Category: types.Equilateral},
	19: {Pos: types.Coord{Col: 10, Row: 1}, Category: types.LeftLeaning},
	20: {Pos: types.Coord{Col: 0, Row: 2}, Category: types.RightLeaning, Flipped: true},
	21: {Pos: types.Coord{Col: 2, Row: 2}, Category: types.Isosceles, Flipped: true},
	22: {Pos: types.Coord{Col: 2, Row: 2}, Category: types.IsoscelesDown},
	23: {Pos: types.Coord{Col: 3, Row: 2}, Category: types.Isosceles},
}

var dymaxionPools = map[types.ShapeCategory][]types.Slot{
	types.Equilateral: {1, 2, 3, 4, 5, 6, 7, 8, 9, 10, 11, 12, 13, 14, 15, 16, 17, 18},
	types.Isosceles:   {21, 23},
}

var defaultTable = mustTable(dymaxionEntries, dymaxionPools)

// Default returns the Dymaxion board table. The returned Table is shared and
// must not be modified.
func Default() *Table {
	return defaultTable
}

func mustTable(entries map[types.Slot]Entry, pools map[types.ShapeCategory][]types.Slot) *Table {
	t, err := NewTable(entries, pools)
	if err != nil {
		panic("dymaxion topology failed validation: " + err.Error())
	}
	return t
}

// NewTable builds a Table from one Entry per slot and the shuffle pools.
// Categories without a pool are fixed: their pieces never move. Every pool
// slot must exist and carry the pool's category. A pool smaller than its
// category is accepted here and surfaces as ErrShuffleExhausted on shuffle.
func NewTable(entries map[types.Slot]Entry, pools map[types.ShapeCategory][]types.Slot) (*Table, error) {
	t := &Table{pools: make(map[types.ShapeCategory][]types.Slot, len(pools))}

	for _, s := range types.AllSlots() {
		e, ok := entries[s]
		if !ok {
			return nil, fmt.Errorf("topology: slot %d has no entry", s)
		}
		if e.Category < types.Equilateral || e.Category > types.IsoscelesDown {
			return nil, fmt.Errorf("topology: slot %d has unknown category %d", s, int(e.Category))
		}
		t.entries[s] = e
	}
	if len(entries) != types.SlotCount {
		return nil, fmt.Errorf("topology: %d entries, expected %d", len(entries), types.SlotCount)
	}

	for c, pool := range pools {
		seen := make(map[types.Slot]bool, len(pool))
		for _, s := range pool {
			if !s.Valid() {
				return nil, fmt.Errorf("topology: %s pool: %w: %d", c, types.ErrInvalidSlot, s)
			}
			if seen[s] {
				return nil, fmt.Errorf("topology: %s pool lists slot %d twice", c, s)
			}
			if t.entries[s].Category != c {
				return nil, fmt.Errorf("topology: %s pool holds slot %d of category %s", c, s, t.entries[s].Category)
			}
			seen[s] = true
		}
		t.pools[c] = slices.Clone(pool)
	}
	return t, nil
}

// Entry returns the full description of a slot.
func (t *Table) Entry(s types.Slot) (Entry, error) {
	if !s.Valid() {
		return Entry{}, fmt.Errorf("%w: %d", types.ErrInvalidSlot, s)
	}
	return t.entries[s], nil
}

// CategoryOf returns the shape category of a slot.
func (t *Table) CategoryOf(s types.Slot) (types.ShapeCategory, error) {
	e, err := t.Entry(s)
	return e.Category, err
}

// OrientationOf reports whether the slot's triangle is drawn flipped.
func (t *Table) OrientationOf(s types.Slot) (bool, error) {
	e, err := t.Entry(s)
	return e.Flipped, err
}

// PositionOf returns the slot's column and row on the layout grid.
func (t *Table) PositionOf(s types.Slot) (types.Coord, error) {
	e, err := t.Entry(s)
	return e.Pos, err
}

// CanSwap reports whether the pieces in a and b may be exchanged: both slots
// exist and share a shape category. Orientation does not matter.
func (t *Table) CanSwap(a, b types.Slot) bool {
	if !a.Valid() || !b.Valid() {
		return false
	}
	return t.entries[a].Category == t.entries[b].Category
}

// Slots returns the slots of a category in ascending order.
func (t *Table) Slots(c types.ShapeCategory) []types.Slot {
	var slots []types.Slot
	for _, s := range types.AllSlots() {
		if t.entries[s].Category == c {
			slots = append(slots, s)
		}
	}
	return slots
}

// Shufflable reports whether pieces of the category are moved by a shuffle.
func (t *Table) Shufflable(c types.ShapeCategory) bool {
	_, ok := t.pools[c]
	return ok
}

// Pool returns a copy of the shuffle targets for the category, or nil for a
// fixed category.
func (t *Table) Pool(c types.ShapeCategory) []types.Slot {
	return slices.Clone(t.pools[c])
}

// Categories returns the categories present on the board, in enum order.
func (t *Table) Categories() []types.ShapeCategory {
	present := make(map[types.ShapeCategory]bool)
	for _, s := range types.AllSlots() {
		present[t.entries[s].Category] = true
	}
	var out []types.ShapeCategory
	for c := types.Equilateral; c <= types.IsoscelesDown; c++ {
		if present[c] {
			out = append(out, c)
		}
	}
	return out
}
