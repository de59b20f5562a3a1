package engine

import (
	"fmt"
	"time"
)

// Stats tallies what the engine deduced and how long it took.
type Stats struct {
	// Rounds is the number of completed deduction rounds.
	Rounds int

	// NakedSingles and HiddenSingles count cell promotions per technique.
	NakedSingles  int
	HiddenSingles int

	// UnitEliminations, PointingEliminations, and RuleEliminations count
	// individual candidate flags removed by each pass.
	UnitEliminations     int
	PointingEliminations int
	RuleEliminations     int

	// Elapsed is total time spent inside Round.
	Elapsed time.Duration
}

// Solved returns the total number of cells the engine promoted.
func (s Stats) Solved() int {
	return s.NakedSingles + s.HiddenSingles
}

// String returns a one-line summary.
func (s Stats) String() string {
	return fmt.Sprintf("rounds=%d naked=%d hidden=%d unit=%d pointing=%d rule=%d elapsed=%s",
		s.Rounds, s.NakedSingles, s.HiddenSingles,
		s.UnitEliminations, s.PointingEliminations, s.RuleEliminations,
		s.Elapsed.Round(time.Microsecond))
}
