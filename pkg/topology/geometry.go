package topology

import (
	"math"

	"github.com/aiham/dymaxion/pkg/types"
)

// Layout ratios of the Dymaxion artwork. Neighbouring triangles overlap by
// half a tile horizontally and by yGap of a tile vertically.
const (
	xGap = 0.5
	yGap = 0.08217

	boardColumns = 12
	boardRows    = 3
)

// LogoPosition is the grid cell of the logo tile drawn beside the board.
var LogoPosition = types.Coord{Col: 9, Row: 2}

// LogoCategory is the shape of the logo tile.
const LogoCategory = types.EquilateralFlippedDown

// Point is a pixel position relative to the board origin.
type Point struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// Geometry converts layout coordinates into pixel positions for square tiles
// of PieceSize pixels.
type Geometry struct {
	PieceSize float64
}

// Origin returns the top-left pixel of the tile at c.
func (g Geometry) Origin(c types.Coord) Point {
	s := g.PieceSize
	return Point{
		X: float64(c.Col) * s * xGap,
		Y: float64(c.Row)*s - s*yGap*float64(c.Row),
	}
}

// SlotOrigin returns the top-left pixel of the tile in slot s.
func (g Geometry) SlotOrigin(t *Table, s types.Slot) (Point, error) {
	pos, err := t.PositionOf(s)
	if err != nil {
		return Point{}, err
	}
	return g.Origin(pos), nil
}

// BoardSize returns the width and height of the board in pixels.
func (g Geometry) BoardSize() (float64, float64) {
	s := g.PieceSize
	return s * xGap * boardColumns, s*boardRows - s*yGap*(boardRows-1)
}

// Rotation returns the angle a piece turns through when it moves from one
// slot to another: π when the orientations differ, otherwise 0.
func Rotation(t *Table, from, to types.Slot) (float64, error) {
	a, err := t.OrientationOf(from)
	if err != nil {
		return 0, err
	}
	b, err := t.OrientationOf(to)
	if err != nil {
		return 0, err
	}
	if a != b {
		return math.Pi, nil
	}
	return 0, nil
}
