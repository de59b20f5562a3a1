package engine

import (
	"context"
	"errors"
	"testing"

	"github.com/stefnotch/sudoku-practice/internal/grid"
)

// solution is a complete, valid standard Sudoku grid.
const solution = "123456789" +
	"456789123" +
	"789123456" +
	"231564897" +
	"564897231" +
	"897231564" +
	"312645978" +
	"645978312" +
	"978312645"

// blankRow returns solution with the given row replaced by dots.
func blankRow(row int) string {
	s := []byte(solution)
	for x := range grid.GridSize {
		s[grid.MakePos(x, row)] = '.'
	}
	return string(s)
}

func mustGrid(t *testing.T, v *grid.Variant) *grid.Grid {
	t.Helper()
	g, err := grid.New(v)
	if err != nil {
		t.Fatal(err)
	}
	return g
}

// snapshot captures the full grid state: solved values and candidate masks.
func snapshot(g *grid.Grid) [grid.CellCount][2]uint {
	var s [grid.CellCount][2]uint
	for pos := range grid.CellCount {
		s[pos][0] = uint(g.ValueAt(pos))
		s[pos][1] = g.CandidatesMaskAt(pos)
	}
	return s
}

// checkSolvedCellsHaveNoCandidates asserts the solved-implies-empty invariant.
func checkSolvedCellsHaveNoCandidates(t *testing.T, g *grid.Grid) {
	t.Helper()
	for pos := range grid.CellCount {
		if g.ValueAt(pos) != grid.EmptyCell && g.CandidatesMaskAt(pos) != 0 {
			x, y := grid.XY(pos)
			t.Fatalf("solved cell (%d,%d) still has candidates %09b", x, y, g.CandidatesMaskAt(pos))
		}
	}
}

func TestNakedSingleCompletesUnit(t *testing.T) {
	g := mustGrid(t, nil)
	// Eight cells of row 0 solved to 1..8; the ninth starts with all nine
	// candidates and must become 9 within a single round: unit elimination
	// strips 1..8, then naked-single promotion fires in the same sweep.
	for x := range 8 {
		if err := g.SetCell(x, 0, x+1); err != nil {
			t.Fatal(err)
		}
	}

	eng := New(g)
	changed, err := eng.Round()
	if err != nil {
		t.Fatal(err)
	}
	if !changed {
		t.Fatal("round reported no change")
	}
	if got := g.Get(8, 0); got != 9 {
		t.Fatalf("expected (8,0)=9, got %d", got)
	}
	checkSolvedCellsHaveNoCandidates(t, g)
	if eng.Stats().NakedSingles == 0 {
		t.Error("expected a naked-single promotion in the stats")
	}
}

func TestHiddenSinglePromotes(t *testing.T) {
	g := mustGrid(t, nil)
	// Digit 9 carried only by (0,0) in row 0; (0,0) keeps other candidates
	// too, so the promotion must come from the hidden-single sweep.
	for x := 1; x < grid.GridSize; x++ {
		g.Exclude(grid.MakePos(x, 0), 9)
	}

	eng := New(g)
	if _, err := eng.Round(); err != nil {
		t.Fatal(err)
	}
	if got := g.Get(0, 0); got != 9 {
		t.Fatalf("expected (0,0)=9, got %d", got)
	}
	checkSolvedCellsHaveNoCandidates(t, g)
	if eng.Stats().HiddenSingles == 0 {
		t.Error("expected a hidden-single promotion in the stats")
	}
}

func TestContradictionLatches(t *testing.T) {
	g := mustGrid(t, nil)
	// (0,0) is forced down to the single candidate 5 while (5,0) is already
	// solved to 5. Row 0 is the first region swept and (0,0) its first
	// cell, so the promotion must trip over the existing 5.
	if err := g.SetCell(5, 0, 5); err != nil {
		t.Fatal(err)
	}
	for d := 1; d <= 9; d++ {
		if d != 5 {
			g.Exclude(grid.MakePos(0, 0), d)
		}
	}

	eng := New(g)
	_, err := eng.Round()
	if !errors.Is(err, ErrContradiction) {
		t.Fatalf("expected ErrContradiction, got %v", err)
	}
	if !errors.Is(eng.Err(), ErrContradiction) {
		t.Error("contradiction was not latched")
	}

	// Latched: later rounds return the same error without touching the grid.
	before := snapshot(g)
	changed, err := eng.Round()
	if !errors.Is(err, ErrContradiction) {
		t.Fatalf("expected latched ErrContradiction, got %v", err)
	}
	if changed {
		t.Error("latched round reported change")
	}
	if snapshot(g) != before {
		t.Error("latched round mutated the grid")
	}
	if err := eng.Run(context.Background()); !errors.Is(err, ErrContradiction) {
		t.Errorf("Run after latch: expected ErrContradiction, got %v", err)
	}
}

func TestPointingSetConfinesDigit(t *testing.T) {
	g := mustGrid(t, nil)
	// Digit 1 in box 0 is confined to row 0: remove it from the box's
	// cells in rows 1 and 2.
	for y := 1; y <= 2; y++ {
		for x := 0; x <= 2; x++ {
			g.Exclude(grid.MakePos(x, y), 1)
		}
	}

	eng := New(g)
	if _, err := eng.Round(); err != nil {
		t.Fatal(err)
	}

	// The rest of row 0 must lose candidate 1.
	for x := 3; x < grid.GridSize; x++ {
		if g.HasCandidate(grid.MakePos(x, 0), 1) {
			t.Errorf("(%d,0) still has candidate 1", x)
		}
	}
	// Nothing outside the row intersection may lose it.
	if !g.HasCandidate(grid.MakePos(0, 3), 1) {
		t.Error("(0,3) lost candidate 1")
	}
	if !g.HasCandidate(grid.MakePos(3, 1), 1) {
		t.Error("(3,1) lost candidate 1")
	}
	// No cell was promoted: the pass removes candidates only.
	if g.EmptyCount() != grid.CellCount {
		t.Error("pointing pass solved a cell")
	}
	if eng.Stats().PointingEliminations != 6 {
		t.Errorf("expected 6 pointing eliminations, got %d", eng.Stats().PointingEliminations)
	}
}

func TestRunSolvesBlankedRow(t *testing.T) {
	g, err := grid.NewFromString(blankRow(4), nil)
	if err != nil {
		t.Fatal(err)
	}

	eng := New(g)
	if err := eng.Run(context.Background()); err != nil {
		t.Fatal(err)
	}
	if g.EmptyCount() != 0 {
		t.Fatalf("expected full solve, %d cells left", g.EmptyCount())
	}
	if got := g.String(); got != solution {
		t.Errorf("wrong solution:\nwant %s\ngot  %s", solution, got)
	}
	checkSolvedCellsHaveNoCandidates(t, g)
}

func TestRunStallsOnUnderconstrainedPuzzle(t *testing.T) {
	v, err := grid.LookupVariant("nonconsecutive")
	if err != nil {
		t.Fatal(err)
	}
	g := mustGrid(t, v)
	if err := g.SetCell(3, 6, 2); err != nil {
		t.Fatal(err)
	}

	eng := New(g)
	if err := eng.Run(context.Background()); err != nil {
		t.Fatalf("stall must be normal termination, got %v", err)
	}
	if g.EmptyCount() == 0 {
		t.Fatal("one clue cannot solve a puzzle")
	}
	// The adjacency rule still pruned around the clue.
	if g.HasCandidate(grid.MakePos(2, 6), 2) || g.HasCandidate(grid.MakePos(3, 5), 3) {
		t.Error("expected non-consecutive eliminations around (3,6)")
	}
	if eng.Stats().RuleEliminations == 0 {
		t.Error("expected rule eliminations in the stats")
	}
}

func TestFixpointIsIdempotent(t *testing.T) {
	g, err := grid.NewFromString(blankRow(4), nil)
	if err != nil {
		t.Fatal(err)
	}
	eng := New(g)
	if err := eng.Run(context.Background()); err != nil {
		t.Fatal(err)
	}

	before := snapshot(g)
	changed, err := eng.Round()
	if err != nil {
		t.Fatal(err)
	}
	if changed {
		t.Error("round at fixpoint reported change")
	}
	if snapshot(g) != before {
		t.Error("round at fixpoint mutated the grid")
	}
}

func TestRoundsAreMonotone(t *testing.T) {
	g, err := grid.NewFromString(
		"53..7....6..195....98....6.8...6...34..8.3..17...2...6.6....28....419..5....8..79", nil)
	if err != nil {
		t.Fatal(err)
	}

	eng := New(g)
	prev := snapshot(g)
	for {
		changed, err := eng.Round()
		if err != nil {
			t.Fatal(err)
		}
		cur := snapshot(g)
		for pos := range grid.CellCount {
			if prev[pos][0] != uint(grid.EmptyCell) && cur[pos][0] != prev[pos][0] {
				t.Fatalf("cell %d reverted from %d to %d", pos, prev[pos][0], cur[pos][0])
			}
			if cur[pos][1]&^prev[pos][1] != 0 {
				t.Fatalf("cell %d regained candidates: %09b -> %09b", pos, prev[pos][1], cur[pos][1])
			}
		}
		prev = cur
		if !changed {
			break
		}
	}
	checkSolvedCellsHaveNoCandidates(t, g)
}

func TestRunHonorsContext(t *testing.T) {
	g := mustGrid(t, nil)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	eng := New(g)
	if err := eng.Run(ctx); !errors.Is(err, context.Canceled) {
		t.Fatalf("expected context.Canceled, got %v", err)
	}
}

func TestSmallCageParticipatesInElimination(t *testing.T) {
	v := grid.StandardVariant()
	// A 3-cell cage: a solved member removes its digit from the others,
	// even though the cage is too small for hidden singles.
	v.AddRegion([]grid.Coord{{X: 0, Y: 0}, {X: 4, Y: 4}, {X: 8, Y: 8}})
	g := mustGrid(t, v)
	if err := g.SetCell(0, 0, 7); err != nil {
		t.Fatal(err)
	}

	eng := New(g)
	if _, err := eng.Round(); err != nil {
		t.Fatal(err)
	}
	if g.HasCandidate(grid.MakePos(4, 4), 7) {
		t.Error("(4,4) still has candidate 7 despite sharing a cage with a solved 7")
	}
	if g.HasCandidate(grid.MakePos(8, 8), 7) {
		t.Error("(8,8) still has candidate 7 despite sharing a cage with a solved 7")
	}
}

func BenchmarkRun(b *testing.B) {
	const puzzle = "53..7....6..195....98....6.8...6...34..8.3..17...2...6.6....28....419..5....8..79"
	for i := 0; i < b.N; i++ {
		g, err := grid.NewFromString(puzzle, nil)
		if err != nil {
			b.Fatal(err)
		}
		if err := New(g).Run(context.Background()); err != nil {
			b.Fatal(err)
		}
	}
}
