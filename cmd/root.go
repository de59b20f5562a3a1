package cmd

import (
	"context"
	"fmt"
	"os"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

var (
	logLevel string
	logJSON  bool
)

var rootCmd = &cobra.Command{
	Use:   "sudoku-practice",
	Short: "Constraint-propagation Sudoku solver",
	Long: `sudoku-practice solves 9x9 Sudoku and Sudoku-variant puzzles by pure
constraint propagation: naked and hidden singles, pointing-set elimination,
and variant topology rules. It never guesses: puzzles that need search
stall with their remaining pencil marks shown.`,
	SilenceUsage:      true,
	PersistentPreRunE: setupLogging,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "warning", "Log level (trace, debug, info, warning, error)")
	rootCmd.PersistentFlags().BoolVar(&logJSON, "log-json", false, "Emit logs as JSON")
}

// setupLogging configures the process-wide logrus logger from the root flags.
func setupLogging(cmd *cobra.Command, args []string) error {
	level, err := logrus.ParseLevel(logLevel)
	if err != nil {
		return fmt.Errorf("invalid log level %q: %w", logLevel, err)
	}
	logrus.SetLevel(level)
	if logJSON {
		logrus.SetFormatter(&logrus.JSONFormatter{})
	}
	return nil
}

// Execute runs the root command with the given context.
func Execute(ctx context.Context) {
	if err := rootCmd.ExecuteContext(ctx); err != nil {
		os.Exit(1)
	}
}
