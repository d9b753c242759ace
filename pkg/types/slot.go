package types

import "fmt"

// SlotCount is the number of fixed positions on the Dymaxion board.
const SlotCount = 23

// Slot names one of the 23 fixed board positions, numbered from 1.
type Slot int

// Valid reports whether s is a board position.
func (s Slot) Valid() bool {
	return s >= 1 && s <= SlotCount
}

// AllSlots returns every board slot in ascending order.
func AllSlots() []Slot {
	slots := make([]Slot, 0, SlotCount)
	for s := Slot(1); s <= SlotCount; s++ {
		slots = append(slots, s)
	}
	return slots
}

// ShapeCategory is the triangle shape of a slot. Pieces only move between
// slots of the same category.
type ShapeCategory int

// Shape categories. EquilateralFlippedDown is the shape of the logo tile that
// sits beside the board; no board slot carries it.
const (
	Equilateral ShapeCategory = iota + 1
	EquilateralFlippedDown
	RightLeaning
	LeftLeaning
	Isosceles
	IsoscelesDown
)

var categoryNames = map[ShapeCategory]string{
	Equilateral:            "equilateral",
	EquilateralFlippedDown: "equilateral_flipped_down",
	RightLeaning:           "right_leaning",
	LeftLeaning:            "left_leaning",
	Isosceles:              "isosceles",
	IsoscelesDown:          "isosceles_down",
}

// String returns the snake_case name used in CLI and JSON output.
func (c ShapeCategory) String() string {
	if name, ok := categoryNames[c]; ok {
		return name
	}
	return fmt.Sprintf("category(%d)", int(c))
}

// MarshalText implements encoding.TextMarshaler.
func (c ShapeCategory) MarshalText() ([]byte, error) {
	return []byte(c.String()), nil
}

// Coord is a column/row position on the board layout grid.
type Coord struct {
	Col int `json:"col"`
	Row int `json:"row"`
}
