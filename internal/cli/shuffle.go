package cli

import (
	"fmt"
	"math/rand/v2"

	"github.com/spf13/cobra"

	"github.com/aiham/dymaxion/pkg/puzzle"
	"github.com/aiham/dymaxion/pkg/topology"
	"github.com/aiham/dymaxion/pkg/types"
)

type shuffleResult struct {
	Seed       uint64      `json:"seed"`
	Home       int         `json:"home"`
	Assignment []placement `json:"assignment"`
}

func newShuffleCmd(a *app) *cobra.Command {
	var seed uint64
	cmd := &cobra.Command{
		Use:   "shuffle",
		Short: "Deal a shuffled board",
		Long: "Shuffle a solved board once and print which piece lands in each slot.\n" +
			"The same --seed always deals the same board.",
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if seed == 0 {
				seed = rand.Uint64()
			}
			table := topology.Default()
			st, err := puzzle.New(
				puzzle.NewPieceSet(func(types.Slot) string { return "" }),
				puzzle.WithTopology(table),
				puzzle.WithRand(rand.New(rand.NewPCG(seed, seed))),
			)
			if err != nil {
				return sysError(err)
			}
			assignment, err := st.Shuffle()
			if err != nil {
				return sysError(err)
			}

			res := shuffleResult{Seed: seed, Assignment: placements(assignment)}
			for _, p := range res.Assignment {
				if p.Slot == p.Piece {
					res.Home++
				}
			}
			a.logger.Debug("shuffled", "seed", seed, "home", res.Home)

			if a.flags.jsonMode {
				return writeJSON(cmd, res)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "seed %d, %d of %d pieces home\n", seed, res.Home, types.SlotCount)
			renderBoard(cmd.OutOrStdout(), table, assignment)
			return nil
		},
	}
	cmd.Flags().Uint64Var(&seed, "seed", 0, "random seed (default: random)")
	return cmd
}
