package cli

import (
	"errors"
	"fmt"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"

	"github.com/aiham/dymaxion/pkg/types"
)

func newScoresCmd(a *app) *cobra.Command {
	var (
		filter types.RecordFilter
		stats  bool
	)
	cmd := &cobra.Command{
		Use:   "scores",
		Short: "List completed games, fastest first",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if filter.Limit < 0 {
				return userError(errors.New("--limit must not be negative"))
			}
			backend, err := a.attachBackend()
			if err != nil {
				return err
			}
			defer backend.Detach()

			if stats {
				return a.printStats(cmd, backend)
			}
			return a.printGames(cmd, backend, filter)
		},
	}
	cmd.Flags().StringVar(&filter.Puzzle, "puzzle", "", "only games of this puzzle")
	cmd.Flags().IntVar(&filter.Limit, "limit", 10, "maximum number of games (0 for all)")
	cmd.Flags().BoolVar(&stats, "stats", false, "print per-puzzle aggregates instead")
	return cmd
}

func (a *app) printGames(cmd *cobra.Command, r types.Recorder, filter types.RecordFilter) error {
	games, err := r.List(filter)
	if err != nil {
		return sysError(err)
	}
	if a.flags.jsonMode {
		if games == nil {
			games = []types.GameRecord{}
		}
		return writeJSON(cmd, games)
	}
	if len(games) == 0 {
		fmt.Fprintln(cmd.OutOrStdout(), "No games recorded.")
		return nil
	}

	w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "PUZZLE\tTIME\tSWAPS\tSHUFFLES\tSOLVED")
	for _, g := range games {
		fmt.Fprintf(w, "%s\t%s\t%d\t%d\t%s\n", g.Puzzle, g.Duration().Round(time.Second), g.Swaps, g.Shuffles, g.SolvedAt.Local().Format(time.DateTime))
	}
	return w.Flush()
}

func (a *app) printStats(cmd *cobra.Command, r types.Recorder) error {
	stats, err := r.Stats()
	if err != nil {
		return sysError(err)
	}
	if a.flags.jsonMode {
		if stats == nil {
			stats = []types.PuzzleStats{}
		}
		return writeJSON(cmd, stats)
	}
	if len(stats) == 0 {
		fmt.Fprintln(cmd.OutOrStdout(), "No games recorded.")
		return nil
	}

	w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "PUZZLE\tGAMES\tBEST\tMEAN SWAPS")
	for _, s := range stats {
		fmt.Fprintf(w, "%s\t%d\t%s\t%.1f\n", s.Puzzle, s.Games, s.Best.Round(time.Second), s.MeanSwaps)
	}
	return w.Flush()
}
