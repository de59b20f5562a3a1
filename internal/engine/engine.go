// Package engine implements the constraint-propagation passes that drive a
// puzzle toward a solution: local reduction (naked and hidden singles plus
// unit elimination), rule exclusion, and pointing-set elimination.
//
// The engine never searches. Puzzles that need guessing stall at a fixpoint
// with unsolved cells remaining; that is normal termination, not an error.
package engine

import (
	"context"
	"errors"
	"fmt"
	"math/bits"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/stefnotch/sudoku-practice/internal/grid"
)

// ErrContradiction is returned when a naked-single promotion would place a
// digit already solved elsewhere in the region under iteration. It means
// the puzzle is inconsistent (or an earlier pass mis-deduced); the engine
// latches it and refuses to propagate further.
var ErrContradiction = errors.New("contradiction")

// maxRounds bounds Run against a pass that keeps reporting change.
// Monotonicity makes a real fixpoint arrive far earlier.
const maxRounds = grid.CellCount * grid.GridSize

// Engine drives deduction rounds over one shared Grid.
// Not safe for concurrent use: exactly one goroutine may own the engine
// and its grid at a time.
type Engine struct {
	grid  *grid.Grid
	log   logrus.FieldLogger
	err   error
	stats Stats
}

// New creates an engine for the given grid.
func New(g *grid.Grid) *Engine {
	return &Engine{
		grid: g,
		log:  logrus.StandardLogger(),
	}
}

// SetLogger replaces the engine's logger. nil is ignored.
func (e *Engine) SetLogger(log logrus.FieldLogger) {
	if log != nil {
		e.log = log
	}
}

// Grid returns the grid the engine mutates.
func (e *Engine) Grid() *grid.Grid {
	return e.grid
}

// Stats returns the deduction tallies accumulated so far.
func (e *Engine) Stats() Stats {
	return e.stats
}

// Err returns the latched contradiction, if any.
func (e *Engine) Err() error {
	return e.err
}

// Round performs one frame's worth of deduction: one local-reduction pass,
// one rule-exclusion pass, one pointing-set pass. It reports whether the
// grid changed.
//
// A contradiction latches: every later Round returns the same error without
// touching the grid.
func (e *Engine) Round() (bool, error) {
	if e.err != nil {
		return false, e.err
	}

	start := time.Now()
	defer func() {
		e.stats.Elapsed += time.Since(start)
	}()

	changed, err := e.localReduction()
	if err != nil {
		e.err = err
		e.log.WithError(err).Error("propagation halted")
		return changed, err
	}
	if e.ruleExclusion() {
		changed = true
	}
	if e.pointingSets() {
		changed = true
	}

	e.stats.Rounds++
	return changed, nil
}

// Run drives rounds back-to-back until a fixpoint (fully solved or
// stalled; both return nil), a contradiction, or ctx cancellation.
func (e *Engine) Run(ctx context.Context) error {
	for range maxRounds {
		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}

		changed, err := e.Round()
		if err != nil {
			return err
		}
		if !changed {
			return nil
		}
	}
	return nil
}

// localReduction is the basic deduction pass. It sweeps every region in
// supply order and every member cell in region order:
//
//  1. an unsolved cell with exactly one candidate is promoted to that
//     digit, after checking the current region does not already hold it;
//  2. a solved cell has its candidate set cleared;
//  3. a solved cell's value is removed from the candidates of the whole
//     region, whatever the region's size.
//
// A second sweep over full regions then applies hidden singles: a digit
// not yet solved in the region with exactly one carrier cell is
// force-solved there, discarding the cell's other candidates.
func (e *Engine) localReduction() (bool, error) {
	g := e.grid
	changed := false

	for _, r := range g.Regions() {
		for _, pos := range r.Cells() {
			if g.ValueAt(pos) == grid.EmptyCell {
				mask := g.CandidatesMaskAt(pos)
				if bits.OnesCount(mask) == 1 {
					val := bits.TrailingZeros(mask) + 1
					if g.RegionHasValue(r, val) {
						x, y := grid.XY(pos)
						return changed, fmt.Errorf("%w: digit %d at (%d,%d) already placed in region %d",
							ErrContradiction, val, x, y, r.ID())
					}
					g.SetForce(pos, val)
					changed = true
					e.stats.NakedSingles++
					e.debugSolve("naked single", pos, val, r.ID())
				}
			}

			val := g.ValueAt(pos)
			if val == grid.EmptyCell {
				continue
			}
			if g.ClearCandidates(pos) {
				changed = true
			}
			for _, other := range r.Cells() {
				if g.Exclude(other, val) {
					changed = true
					e.stats.UnitEliminations++
				}
			}
		}
	}

	for _, r := range g.Regions() {
		if !r.Full() {
			continue
		}
		for val := 1; val <= grid.GridSize; val++ {
			if g.RegionHasValue(r, val) {
				continue
			}
			carriers := 0
			carrier := grid.InvalidCell
			for _, pos := range r.Cells() {
				if g.HasCandidate(pos, val) {
					carriers++
					carrier = pos
				}
			}
			if carriers == 1 {
				g.SetForce(carrier, val)
				changed = true
				e.stats.HiddenSingles++
				e.debugSolve("hidden single", carrier, val, r.ID())
			}
		}
	}

	return changed, nil
}

// ruleExclusion applies each of the variant's topology rules once.
func (e *Engine) ruleExclusion() bool {
	g := e.grid
	changed := false
	for _, rule := range g.Rules() {
		before := g.CandidateCount()
		if rule.Exclude(g) {
			changed = true
			removed := before - g.CandidateCount()
			e.stats.RuleEliminations += removed
			e.log.WithFields(logrus.Fields{
				"pass":    "rule",
				"rule":    rule.Name(),
				"removed": removed,
			}).Debug("rule exclusion")
		}
	}
	return changed
}

// pointingSets is the generalized pointing pair/triple and box-line
// reduction pass. For each full region and digit not solved there, it takes
// the carrier cells still offering that digit and looks for another full
// region containing all of them; the digit is then confined to the regions'
// intersection, so it is removed from the rest of the overlapping region.
//
// Candidate overlap regions are only those containing the first carrier.
// That anchor choice can miss overlaps the other carriers would reveal; it
// is kept deliberately for compatibility.
//
// This pass only removes candidates, it never solves a cell.
func (e *Engine) pointingSets() bool {
	g := e.grid
	regions := g.Regions()
	changed := false

	var carriers []int
	var inSet [grid.CellCount]bool

	for _, r := range regions {
		if !r.Full() {
			continue
		}
		for val := 1; val <= grid.GridSize; val++ {
			if g.RegionHasValue(r, val) {
				continue
			}

			carriers = carriers[:0]
			for _, pos := range r.Cells() {
				if g.HasCandidate(pos, val) {
					carriers = append(carriers, pos)
				}
			}
			if len(carriers) == 0 {
				continue
			}

			for _, overlapID := range g.RegionsAt(carriers[0]) {
				overlap := regions[overlapID]
				if overlap.ID() == r.ID() || !overlap.Full() {
					continue
				}
				if g.RegionHasValue(overlap, val) {
					continue
				}
				if !containsAll(g, overlapID, carriers[1:]) {
					continue
				}

				for _, pos := range carriers {
					inSet[pos] = true
				}
				removed := 0
				for _, pos := range overlap.Cells() {
					if !inSet[pos] && g.Exclude(pos, val) {
						removed++
					}
				}
				for _, pos := range carriers {
					inSet[pos] = false
				}

				if removed > 0 {
					changed = true
					e.stats.PointingEliminations += removed
					e.log.WithFields(logrus.Fields{
						"pass":    "pointing",
						"digit":   val,
						"region":  r.ID(),
						"overlap": overlapID,
						"removed": removed,
					}).Debug("pointing set")
				}
			}
		}
	}

	return changed
}

// containsAll reports whether every given position belongs to the region
// with the given id, checked through the grid's inverse index.
func containsAll(g *grid.Grid, regionID int, positions []int) bool {
	for _, pos := range positions {
		found := false
		for _, id := range g.RegionsAt(pos) {
			if id == regionID {
				found = true
				break
			}
		}
		if !found {
			return false
		}
	}
	return true
}

// debugSolve logs a promotion at debug level.
func (e *Engine) debugSolve(kind string, pos, val, regionID int) {
	x, y := grid.XY(pos)
	e.log.WithFields(logrus.Fields{
		"pass":   "local",
		"digit":  val,
		"x":      x,
		"y":      y,
		"region": regionID,
	}).Debug(kind)
}
