package topology

import (
	"maps"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aiham/dymaxion/pkg/types"
)

func TestDefaultCategories(t *testing.T) {
	tbl := Default()

	tests := []struct {
		category types.ShapeCategory
		slots    []types.Slot
	}{
		{types.Equilateral, []types.Slot{1, 2, 3, 4, 5, 6, 7, 8, 9, 10, 11, 12, 13, 14, 15, 16, 17, 18}},
		{types.LeftLeaning, []types.Slot{19}},
		{types.RightLeaning, []types.Slot{20}},
		{types.Isosceles, []types.Slot{21, 23}},
		{types.IsoscelesDown, []types.Slot{22}},
		{types.EquilateralFlippedDown, nil},
	}
	for _, tt := range tests {
		t.Run(tt.category.String(), func(t *testing.T) {
			assert.Equal(t, tt.slots, tbl.Slots(tt.category))
		})
	}

	assert.Equal(t, []types.ShapeCategory{
		types.Equilateral, types.RightLeaning, types.LeftLeaning, types.Isosceles, types.IsoscelesDown,
	}, tbl.Categories())
}

func TestLookupsRejectInvalidSlot(t *testing.T) {
	tbl := Default()
	for _, s := range []types.Slot{0, -1, 24, 100} {
		_, err := tbl.CategoryOf(s)
		assert.ErrorIs(t, err, types.ErrInvalidSlot)
		_, err = tbl.OrientationOf(s)
		assert.ErrorIs(t, err, types.ErrInvalidSlot)
		_, err = tbl.PositionOf(s)
		assert.ErrorIs(t, err, types.ErrInvalidSlot)
	}
}

func TestLookups(t *testing.T) {
	tbl := Default()

	flipped, err := tbl.OrientationOf(1)
	require.NoError(t, err)
	assert.True(t, flipped)

	flipped, err = tbl.OrientationOf(2)
	require.NoError(t, err)
	assert.False(t, flipped)

	pos, err := tbl.PositionOf(19)
	require.NoError(t, err)
	assert.Equal(t, types.Coord{Col: 10, Row: 1}, pos)

	cat, err := tbl.CategoryOf(22)
	require.NoError(t, err)
	assert.Equal(t, types.IsoscelesDown, cat)
}

func TestCanSwapMatchesCategory(t *testing.T) {
	tbl := Default()
	for _, a := range types.AllSlots() {
		for _, b := range types.AllSlots() {
			ca, _ := tbl.CategoryOf(a)
			cb, _ := tbl.CategoryOf(b)
			assert.Equal(t, ca == cb, tbl.CanSwap(a, b), "slots %d and %d", a, b)
		}
	}
	assert.False(t, tbl.CanSwap(0, 1))
	assert.False(t, tbl.CanSwap(23, 24))
	assert.False(t, tbl.CanSwap(21, 22), "down isosceles is fixed")
}

func TestShufflable(t *testing.T) {
	tbl := Default()
	assert.True(t, tbl.Shufflable(types.Equilateral))
	assert.True(t, tbl.Shufflable(types.Isosceles))
	assert.False(t, tbl.Shufflable(types.LeftLeaning))
	assert.False(t, tbl.Shufflable(types.RightLeaning))
	assert.False(t, tbl.Shufflable(types.IsoscelesDown))

	pool := tbl.Pool(types.Isosceles)
	pool[0] = 99
	assert.Equal(t, []types.Slot{21, 23}, tbl.Pool(types.Isosceles), "Pool returns a copy")
	assert.Nil(t, tbl.Pool(types.RightLeaning))
}

func TestNewTableValidation(t *testing.T) {
	t.Run("missing slot", func(t *testing.T) {
		entries := maps.Clone(dymaxionEntries)
		delete(entries, 7)
		_, err := NewTable(entries, dymaxionPools)
		assert.Error(t, err)
	})

	t.Run("extra slot", func(t *testing.T) {
		entries := maps.Clone(dymaxionEntries)
		entries[24] = Entry{Category: types.Equilateral}
		_, err := NewTable(entries, dymaxionPools)
		assert.Error(t, err)
	})

	t.Run("pool slot of wrong category", func(t *testing.T) {
		pools := map[types.ShapeCategory][]types.Slot{types.Isosceles: {21, 22}}
		_, err := NewTable(dymaxionEntries, pools)
		assert.Error(t, err)
	})

	t.Run("pool slot out of range", func(t *testing.T) {
		pools := map[types.ShapeCategory][]types.Slot{types.Isosceles: {21, 30}}
		_, err := NewTable(dymaxionEntries, pools)
		assert.ErrorIs(t, err, types.ErrInvalidSlot)
	})

	t.Run("short pool is accepted", func(t *testing.T) {
		pools := map[types.ShapeCategory][]types.Slot{types.Isosceles: {21}}
		tbl, err := NewTable(dymaxionEntries, pools)
		require.NoError(t, err)
		assert.Equal(t, []types.Slot{21}, tbl.Pool(types.Isosceles))
	})
}

func TestGeometry(t *testing.T) {
	g := Geometry{PieceSize: 150}

	origin, err := g.SlotOrigin(Default(), 1)
	require.NoError(t, err)
	assert.InDelta(t, 150.0, origin.X, 1e-9)
	assert.InDelta(t, 0.0, origin.Y, 1e-9)

	origin, err = g.SlotOrigin(Default(), 15)
	require.NoError(t, err)
	assert.InDelta(t, 75.0, origin.X, 1e-9)
	assert.InDelta(t, 300-2*150*0.08217, origin.Y, 1e-9)

	w, h := g.BoardSize()
	assert.InDelta(t, 900.0, w, 1e-9)
	assert.InDelta(t, 450-2*150*0.08217, h, 1e-9)

	_, err = g.SlotOrigin(Default(), 0)
	assert.ErrorIs(t, err, types.ErrInvalidSlot)
}

func TestRotation(t *testing.T) {
	tbl := Default()

	angle, err := Rotation(tbl, 1, 2)
	require.NoError(t, err)
	assert.InDelta(t, math.Pi, angle, 1e-12)

	angle, err = Rotation(tbl, 1, 3)
	require.NoError(t, err)
	assert.Zero(t, angle)

	_, err = Rotation(tbl, 1, 0)
	assert.ErrorIs(t, err, types.ErrInvalidSlot)
}
