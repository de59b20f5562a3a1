package grid

import (
	"fmt"
	"strings"
)

// Special cell values
const (
	EmptyCell   = 0
	InvalidCell = -1
	GridSize    = 9
	CellCount   = 81
)

// Bitmask values
const (
	allNine = 511
)

// cell is one grid position: the digits still possible here and the
// placed digit, if any.
// Bit i of candidates represents digit i+1 (bit 0 = digit 1, bit 8 = digit 9).
type cell struct {
	candidates uint
	value      int
}

// Grid represents a 9x9 Sudoku-variant board: 81 cells, each carrying a
// candidate set and an optional solved value, plus the constraint regions
// the puzzle is played under.
//
// A Grid is the only mutable puzzle state and is not safe for concurrent
// use; exactly one goroutine may drive it at a time.
type Grid struct {
	cells [CellCount]cell

	// regions describes the constraint regions of the puzzle, indexed by
	// region id. Set at construction time and never mutated; clones share
	// the slice.
	regions []Region

	// regionsAt maps a cell position to the ids of the regions containing
	// it. Built once at construction; region membership never changes.
	regionsAt [CellCount][]int

	// rules are topology constraints applied outside the region model,
	// e.g. the non-consecutive neighbor rule.
	rules []Rule

	// emptyCount tracks unsolved cells for quick completion checks.
	emptyCount int
}

// New creates an empty Grid for the given variant.
// If v is nil, the standard 27-region variant is used.
// Every cell starts unsolved with all nine candidates set.
func New(v *Variant) (*Grid, error) {
	if v == nil {
		v = StandardVariant()
	}

	g := &Grid{
		emptyCount: CellCount,
		rules:      v.rules,
	}
	for pos := range CellCount {
		g.cells[pos].candidates = allNine
	}

	g.regions = make([]Region, 0, len(v.regions))
	for id, coords := range v.regions {
		cells := make([]int, len(coords))
		for i, c := range coords {
			pos := MakePos(c.X, c.Y)
			if pos == InvalidCell {
				return nil, fmt.Errorf("%w: region %d cell %d is (%d,%d)",
					ErrInvalidRegion, id, i, c.X, c.Y)
			}
			cells[i] = pos
		}
		g.regions = append(g.regions, Region{id: id, cells: cells})
		for _, pos := range cells {
			g.regionsAt[pos] = append(g.regionsAt[pos], id)
		}
	}

	return g, nil
}

// NewFromString creates a Grid from an 81-character string for the given variant.
// Use '.' or '0' for empty cells, '1'-'9' for clues.
// If v is nil, the standard variant is used.
func NewFromString(s string, v *Variant) (*Grid, error) {
	if len(s) != CellCount {
		return nil, fmt.Errorf("string must be exactly %d characters, got %d", CellCount, len(s))
	}

	g, err := New(v)
	if err != nil {
		return nil, err
	}
	for pos := range CellCount {
		ch := s[pos]
		switch ch {
		case '.', '0':
			// Empty cell, already initialized
		case '1', '2', '3', '4', '5', '6', '7', '8', '9':
			g.setForce(pos, int(ch-'0'))
		default:
			return nil, fmt.Errorf("invalid character '%c' at position %d", ch, pos)
		}
	}
	return g, nil
}

// Clone creates an independent copy of the Grid.
// Regions, rules, and the inverse index are shared; all are immutable
// after construction.
func (g *Grid) Clone() *Grid {
	if g == nil {
		return nil
	}
	clone := *g
	return &clone
}

// Regions returns the constraint regions, indexed by region id.
// The returned slice is shared and must not be modified.
func (g *Grid) Regions() []Region {
	return g.regions
}

// RegionsAt returns the ids of the regions containing the given position.
// The returned slice is shared and must not be modified.
func (g *Grid) RegionsAt(pos int) []int {
	if !isValidPosition(pos) {
		return nil
	}
	return g.regionsAt[pos]
}

// RegionHasValue reports whether any cell of the region is solved to val.
func (g *Grid) RegionHasValue(r Region, val int) bool {
	for _, pos := range r.cells {
		if g.cells[pos].value == val {
			return true
		}
	}
	return false
}

// Rules returns the variant's topology rules.
func (g *Grid) Rules() []Rule {
	return g.rules
}

// SetCell places value 1-9 at (x, y) as a manual override: the cell's
// candidates are cleared and its value set unconditionally, with no check
// against the constraint regions. Choosing a digit consistent with the
// puzzle is the caller's responsibility. Overriding an already-solved cell
// replaces its value; there is no way to return a cell to unsolved.
func (g *Grid) SetCell(x, y, val int) error {
	pos := MakePos(x, y)
	if pos == InvalidCell {
		return fmt.Errorf("%w: (%d,%d) must be in range [0, %d)", ErrInvalidPosition, x, y, GridSize)
	}
	if err := validateValue(val); err != nil {
		return err
	}
	g.setForce(pos, val)
	return nil
}

// SetForce solves the cell at pos to val, clearing its candidates.
// No validation is performed; use only with in-range arguments and when
// certain the deduction is sound.
func (g *Grid) SetForce(pos, val int) {
	g.setForce(pos, val)
}

func (g *Grid) setForce(pos, val int) {
	if g.cells[pos].value == EmptyCell {
		g.emptyCount--
	}
	g.cells[pos].value = val
	g.cells[pos].candidates = 0
}

// Exclude clears candidate val from the cell at pos and reports whether
// the candidate was present. Out-of-range positions are ignored.
func (g *Grid) Exclude(pos, val int) bool {
	if !isValidPosition(pos) {
		return false
	}
	mask := uint(1 << (val - 1))
	if g.cells[pos].candidates&mask == 0 {
		return false
	}
	g.cells[pos].candidates &^= mask
	return true
}

// ClearCandidates empties the candidate set of the cell at pos and reports
// whether any candidate was cleared. Idempotent on already-cleared cells.
func (g *Grid) ClearCandidates(pos int) bool {
	if !isValidPosition(pos) {
		return false
	}
	if g.cells[pos].candidates == 0 {
		return false
	}
	g.cells[pos].candidates = 0
	return true
}

// Get returns the solved value at (x, y), EmptyCell if unsolved.
// Returns InvalidCell for out-of-range coordinates.
func (g *Grid) Get(x, y int) int {
	pos := MakePos(x, y)
	if pos == InvalidCell {
		return InvalidCell
	}
	return g.cells[pos].value
}

// ValueAt returns the solved value at a linear position, EmptyCell if
// unsolved. Returns InvalidCell for invalid positions.
func (g *Grid) ValueAt(pos int) int {
	if !isValidPosition(pos) {
		return InvalidCell
	}
	return g.cells[pos].value
}

// CandidatesMaskAt returns the candidate bitmask of the cell at pos.
// Solved cells and invalid positions return 0.
func (g *Grid) CandidatesMaskAt(pos int) uint {
	if !isValidPosition(pos) {
		return 0
	}
	return g.cells[pos].candidates
}

// GetCandidatesMask returns the candidate bitmask of the cell at (x, y).
func (g *Grid) GetCandidatesMask(x, y int) uint {
	return g.CandidatesMaskAt(MakePos(x, y))
}

// HasCandidate reports whether the cell at pos still carries val as a candidate.
func (g *Grid) HasCandidate(pos, val int) bool {
	return g.CandidatesMaskAt(pos)&uint(1<<(val-1)) != 0
}

// GetCandidates returns a slice of candidates 1-9 for the cell at (x, y).
// Solved cells return an empty slice.
func (g *Grid) GetCandidates(x, y int) []int {
	mask := g.GetCandidatesMask(x, y)
	candidates := make([]int, 0, 9)
	for num := 1; num <= 9; num++ {
		if mask&uint(1<<(num-1)) != 0 {
			candidates = append(candidates, num)
		}
	}
	return candidates
}

// EmptyCount returns the number of unsolved cells.
func (g *Grid) EmptyCount() int {
	return g.emptyCount
}

// ClueCount returns the number of solved cells.
func (g *Grid) ClueCount() int {
	return CellCount - g.emptyCount
}

// CandidateCount returns the total number of candidate flags still set
// across the whole grid. It shrinks monotonically as deduction proceeds.
func (g *Grid) CandidateCount() int {
	count := 0
	for pos := range CellCount {
		mask := g.cells[pos].candidates
		for mask != 0 {
			mask &= mask - 1
			count++
		}
	}
	return count
}

// String returns the grid as an 81-character string.
// Empty cells are represented as '.', solved cells as '1'-'9'.
func (g *Grid) String() string {
	var sb strings.Builder
	sb.Grow(CellCount)

	for _, c := range g.cells {
		if c.value == EmptyCell {
			sb.WriteByte('.')
		} else {
			sb.WriteByte('0' + byte(c.value))
		}
	}

	return sb.String()
}

// Format returns a human-readable grid representation with box lines.
func (g *Grid) Format() string {
	var sb strings.Builder
	line := "+-------+-------+-------+\n"
	sb.WriteString(line)

	for y := range GridSize {
		sb.WriteString("| ")
		for x := range GridSize {
			val := g.Get(x, y)
			if val == EmptyCell {
				sb.WriteByte('.')
			} else {
				sb.WriteByte('0' + byte(val))
			}
			sb.WriteByte(' ')

			if (x+1)%3 == 0 {
				sb.WriteString("| ")
			}
		}
		sb.WriteString("\n")

		if (y+1)%3 == 0 {
			sb.WriteString(line)
		}
	}

	return sb.String()
}

// FormatCandidates returns the pencil-mark view: each cell is a 3x3
// mini-grid with candidate digit d drawn at column (d-1)%3, row (d-1)/3.
// Solved cells show their value at the center of the mini-grid.
func (g *Grid) FormatCandidates() string {
	var sb strings.Builder
	line := "+-------------+-------------+-------------+\n"
	sb.WriteString(line)

	for y := range GridSize {
		for sub := range 3 {
			sb.WriteString("| ")
			for x := range GridSize {
				pos := MakePos(x, y)
				if v := g.cells[pos].value; v != EmptyCell {
					if sub == 1 {
						sb.WriteByte(' ')
						sb.WriteByte('0' + byte(v))
						sb.WriteByte(' ')
					} else {
						sb.WriteString("   ")
					}
				} else {
					for i := range 3 {
						d := sub*3 + i + 1
						if g.cells[pos].candidates&uint(1<<(d-1)) != 0 {
							sb.WriteByte('0' + byte(d))
						} else {
							sb.WriteByte('.')
						}
					}
				}
				sb.WriteByte(' ')
				if (x+1)%3 == 0 {
					sb.WriteString("| ")
				}
			}
			sb.WriteString("\n")
		}
		if (y+1)%3 == 0 {
			sb.WriteString(line)
		} else {
			sb.WriteString("|             |             |             |\n")
		}
	}

	return sb.String()
}

// Precomputed lookup tables for coordinate mapping.
// These are variant-independent: positions are always laid out row-major,
// only region membership varies and is stored per Grid.
var (
	posToX [CellCount]int
	posToY [CellCount]int
)

// MakePos transforms grid coordinates into a linear position.
// x is the column and y the row, both in [0, 9).
// Returns InvalidCell if x and/or y are out of range.
func MakePos(x, y int) int {
	if x < 0 || x >= GridSize || y < 0 || y >= GridSize {
		return InvalidCell
	}
	return GridSize*y + x
}

// XY is the inverse of MakePos.
func XY(pos int) (x, y int) {
	return posToX[pos], posToY[pos]
}

// init initializes lookup tables for position-to-x and position-to-y.
func init() {
	for pos := range CellCount {
		posToX[pos] = pos % GridSize
		posToY[pos] = pos / GridSize
	}
}
