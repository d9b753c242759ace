package cli

import (
	"cmp"
	"fmt"
	"io"
	"slices"
	"strings"

	"github.com/aiham/dymaxion/pkg/puzzle"
	"github.com/aiham/dymaxion/pkg/topology"
	"github.com/aiham/dymaxion/pkg/types"
)

// placement is one slot of an assignment in JSON output.
type placement struct {
	Slot  types.Slot `json:"slot"`
	Piece types.Slot `json:"piece"`
}

func placements(a puzzle.Assignment) []placement {
	out := make([]placement, 0, types.SlotCount)
	for _, s := range types.AllSlots() {
		out = append(out, placement{Slot: s, Piece: a[s]})
	}
	return out
}

// renderBoard prints the assignment one layout row per line as
// slot:piece pairs ordered by column. Pieces in their own slot are marked
// with '*'.
func renderBoard(w io.Writer, t *topology.Table, a puzzle.Assignment) {
	rows := map[int][]types.Slot{}
	maxRow := 0
	for _, s := range types.AllSlots() {
		pos, err := t.PositionOf(s)
		if err != nil {
			continue
		}
		rows[pos.Row] = append(rows[pos.Row], s)
		maxRow = max(maxRow, pos.Row)
	}

	for r := 0; r <= maxRow; r++ {
		slots := rows[r]
		slices.SortFunc(slots, func(x, y types.Slot) int {
			px, _ := t.PositionOf(x)
			py, _ := t.PositionOf(y)
			return cmp.Or(cmp.Compare(px.Col, py.Col), cmp.Compare(x, y))
		})
		cells := make([]string, len(slots))
		for i, s := range slots {
			mark := " "
			if a[s] == s {
				mark = "*"
			}
			cells[i] = fmt.Sprintf("%2d:%-2d%s", s, a[s], mark)
		}
		fmt.Fprintln(w, strings.TrimRight(strings.Join(cells, " "), " "))
	}
}
