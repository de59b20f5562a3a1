package cmd

import (
	"errors"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/stefnotch/sudoku-practice/internal/engine"
	"github.com/stefnotch/sudoku-practice/internal/grid"
)

var (
	watchVariant    string
	watchCages      []string
	watchClues      []string
	watchCandidates bool
	watchDelay      time.Duration
)

func init() {
	watchCmd := &cobra.Command{
		Use:   "watch [puzzle]",
		Short: "Step through deduction round by round",
		Long: `Watch prints the grid after every deduction round, with a fixed delay
between rounds, until the puzzle is solved or stalls. Interrupt with Ctrl-C.

With no puzzle argument and no --set flags, watch steps the built-in
non-consecutive demo puzzle: an empty grid with the single clue (3,6)=2.

Examples:
  sudoku-practice watch
  sudoku-practice watch --delay 100ms --variant standard 53..7....6..195....98....6.8...6...34..8.3..17...2...6.6....28....419..5....8..79`,
		Args: cobra.MaximumNArgs(1),
		RunE: runWatch,
	}

	watchCmd.Flags().StringVar(&watchVariant, "variant", "nonconsecutive", variantHelp())
	watchCmd.Flags().StringArrayVar(&watchCages, "cage", nil, `Extra constraint region as "x,y x,y ..." (repeatable)`)
	watchCmd.Flags().StringArrayVar(&watchClues, "set", nil, `Initial clue as "x,y=d" (repeatable)`)
	watchCmd.Flags().BoolVar(&watchCandidates, "candidates", true, "Show the candidate mini-grids each round")
	watchCmd.Flags().DurationVar(&watchDelay, "delay", 400*time.Millisecond, "Delay between rounds")

	rootCmd.AddCommand(watchCmd)
}

func runWatch(cmd *cobra.Command, args []string) error {
	if len(args) == 0 && len(watchClues) == 0 {
		// The demo instance: one clue, digit 2 at (3,6).
		watchClues = []string{"3,6=2"}
	}

	g, err := buildPuzzle(args, watchVariant, watchCages, watchClues)
	if err != nil {
		return err
	}

	eng := engine.New(g)
	printFrame(g, 0)

	ctx := cmd.Context()
	for {
		select {
		case <-ctx.Done():
			fmt.Println("interrupted")
			return nil
		case <-time.After(watchDelay):
		}

		changed, err := eng.Round()
		printFrame(g, eng.Stats().Rounds)
		if err != nil {
			if errors.Is(err, engine.ErrContradiction) {
				return fmt.Errorf("puzzle is inconsistent: %w", err)
			}
			return err
		}
		if !changed {
			break
		}
	}

	if g.EmptyCount() == 0 {
		fmt.Printf("Solved (%s)\n", eng.Stats())
	} else {
		fmt.Printf("Stalled with %d unsolved cells (%s)\n", g.EmptyCount(), eng.Stats())
	}
	return nil
}

// printFrame draws one animation frame.
func printFrame(g *grid.Grid, round int) {
	fmt.Printf("--- round %d (%d unsolved) ---\n", round, g.EmptyCount())
	if watchCandidates {
		fmt.Println(g.FormatCandidates())
	} else {
		fmt.Println(g.Format())
	}
}
