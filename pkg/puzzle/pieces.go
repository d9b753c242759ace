package puzzle

import "github.com/aiham/dymaxion/pkg/types"

// NewPieceSet returns one piece per slot, in slot order, with image paths
// produced by image.
func NewPieceSet(image func(id types.Slot) string) []types.Piece {
	pieces := make([]types.Piece, 0, types.SlotCount)
	for _, id := range types.AllSlots() {
		pieces = append(pieces, types.Piece{ID: id, Image: image(id), Slot: id})
	}
	return pieces
}
