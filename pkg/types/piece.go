package types

// Piece is a movable tile. ID is the slot the tile belongs to when the
// picture is complete and never changes; Slot is where the tile sits now.
type Piece struct {
	ID    Slot   `json:"id"`
	Image string `json:"image"`
	Slot  Slot   `json:"slot"`
}

// Home reports whether the piece occupies its own slot.
func (p Piece) Home() bool {
	return p.ID == p.Slot
}
