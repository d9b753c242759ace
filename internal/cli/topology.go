package cli

import (
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/aiham/dymaxion/pkg/topology"
	"github.com/aiham/dymaxion/pkg/types"
)

type slotInfo struct {
	Slot       types.Slot          `json:"slot"`
	Category   types.ShapeCategory `json:"category"`
	Flipped    bool                `json:"flipped"`
	Position   types.Coord         `json:"position"`
	Shufflable bool                `json:"shufflable"`
}

func newTopologyCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "topology",
		Short: "Print the board slots and their shapes",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			table := topology.Default()
			slots := make([]slotInfo, 0, types.SlotCount)
			for _, s := range types.AllSlots() {
				e, err := table.Entry(s)
				if err != nil {
					return sysError(err)
				}
				slots = append(slots, slotInfo{
					Slot:       s,
					Category:   e.Category,
					Flipped:    e.Flipped,
					Position:   e.Pos,
					Shufflable: table.Shufflable(e.Category),
				})
			}

			if a.flags.jsonMode {
				return writeJSON(cmd, slots)
			}
			w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
			fmt.Fprintln(w, "SLOT\tCATEGORY\tFLIPPED\tCOL\tROW\tSHUFFLED")
			for _, s := range slots {
				fmt.Fprintf(w, "%d\t%s\t%t\t%d\t%d\t%t\n", s.Slot, s.Category, s.Flipped, s.Position.Col, s.Position.Row, s.Shufflable)
			}
			return w.Flush()
		},
	}
}
