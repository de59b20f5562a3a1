package cmd

import (
	"context"
	"fmt"
	"time"

	"github.com/pkg/profile"
	"github.com/spf13/cobra"

	"github.com/stefnotch/sudoku-practice/internal/engine"
)

var (
	solveVariant    string
	solveCages      []string
	solveClues      []string
	solveCandidates bool
	solveTimeout    time.Duration
	solveProfile    bool
)

func init() {
	solveCmd := &cobra.Command{
		Use:   "solve [puzzle]",
		Short: "Solve a puzzle by propagation to a fixpoint",
		Long: `Solve runs deduction rounds back-to-back until the grid stops changing.

The optional puzzle argument is an 81-character string, row by row, with
'.' or '0' for empty cells. Clues can also be given cell by cell with
repeated --set flags. A puzzle the passes cannot finish stalls; that is
reported as a normal outcome, with the remaining pencil marks shown when
--candidates is set.

Examples:
  sudoku-practice solve 53..7....6..195....98....6.8...6...34..8.3..17...2...6.6....28....419..5....8..79
  sudoku-practice solve --variant nonconsecutive --set 3,6=2
  sudoku-practice solve --cage "0,0 1,0 2,0 2,1" --candidates`,
		Args: cobra.MaximumNArgs(1),
		RunE: runSolve,
	}

	solveCmd.Flags().StringVar(&solveVariant, "variant", "standard", variantHelp())
	solveCmd.Flags().StringArrayVar(&solveCages, "cage", nil, `Extra constraint region as "x,y x,y ..." (repeatable)`)
	solveCmd.Flags().StringArrayVar(&solveClues, "set", nil, `Initial clue as "x,y=d" (repeatable)`)
	solveCmd.Flags().BoolVar(&solveCandidates, "candidates", false, "Show remaining candidates when the puzzle stalls")
	solveCmd.Flags().DurationVar(&solveTimeout, "timeout", 10*time.Second, "Solve timeout")
	solveCmd.Flags().BoolVar(&solveProfile, "cpuprofile", false, "Write a CPU profile for the solve")

	rootCmd.AddCommand(solveCmd)
}

func runSolve(cmd *cobra.Command, args []string) error {
	if solveProfile {
		defer profile.Start().Stop()
	}

	g, err := buildPuzzle(args, solveVariant, solveCages, solveClues)
	if err != nil {
		return err
	}

	eng := engine.New(g)
	ctx, cancel := context.WithTimeout(cmd.Context(), solveTimeout)
	defer cancel()

	if err := eng.Run(ctx); err != nil {
		return fmt.Errorf("solve failed: %w", err)
	}

	fmt.Println(g.Format())
	if g.EmptyCount() == 0 {
		fmt.Printf("Solved (%s)\n", eng.Stats())
	} else {
		fmt.Printf("Stalled with %d unsolved cells (%s)\n", g.EmptyCount(), eng.Stats())
		if solveCandidates {
			fmt.Println()
			fmt.Println(g.FormatCandidates())
		}
	}
	return nil
}
