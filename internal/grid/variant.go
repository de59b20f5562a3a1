package grid

import (
	"fmt"
	"slices"
)

// Variant bundles the raw region data and topology rules that define a
// puzzle flavor. It is the hand-off point from whatever generates region
// shapes: the engine consumes variants, it never produces them.
type Variant struct {
	// Name is a human-readable identifier, e.g. "standard".
	Name string

	regions [][]Coord
	rules   []Rule
}

// NewVariant creates a Variant from raw region data.
// Regions keep their supply order; region ids are assigned from it when a
// Grid is constructed.
func NewVariant(name string, regions [][]Coord) *Variant {
	return &Variant{Name: name, regions: regions}
}

// AddRegion appends an extra constraint region, e.g. a variant cage.
// Regions of any size are accepted; only size-9 regions take part in
// hidden-single and pointing-set deduction.
func (v *Variant) AddRegion(cells []Coord) {
	v.regions = append(v.regions, cells)
}

// AddRule appends a topology rule applied each round after local reduction.
func (v *Variant) AddRule(r Rule) {
	v.rules = append(v.rules, r)
}

// RegionCount returns the number of regions the variant supplies.
func (v *Variant) RegionCount() int {
	return len(v.regions)
}

// StandardVariant returns a classic Sudoku: 27 regions, no extra rules.
func StandardVariant() *Variant {
	return NewVariant("standard", Standard())
}

// NonConsecutiveVariant returns the standard regions plus the rule that
// orthogonally adjacent cells must not hold consecutive digits.
func NonConsecutiveVariant() *Variant {
	v := NewVariant("nonconsecutive", Standard())
	v.AddRule(NonConsecutive{})
	return v
}

// variants is the registry of built-in puzzle flavors.
var variants = map[string]func() *Variant{
	"standard":         StandardVariant,
	"nonconsecutive":   NonConsecutiveVariant,
	"jigsaw-zigzag":    func() *Variant { return jigsawVariant("jigsaw-zigzag", jigsawZigzag) },
	"jigsaw-staircase": func() *Variant { return jigsawVariant("jigsaw-staircase", jigsawStaircase) },
}

// Variants returns the names of the built-in variants in sorted order.
func Variants() []string {
	names := make([]string, 0, len(variants))
	for name := range variants {
		names = append(names, name)
	}
	slices.Sort(names)
	return names
}

// LookupVariant returns a fresh copy of the named built-in variant.
// Each call returns an independent Variant so callers may add cage
// regions and rules without affecting the registry.
func LookupVariant(name string) (*Variant, error) {
	ctor, ok := variants[name]
	if !ok {
		return nil, fmt.Errorf("%w: %q (have %v)", ErrUnknownVariant, name, Variants())
	}
	return ctor(), nil
}

// Jigsaw region maps. Each is an [81]int where the value at index
// pos (y*9+x) is the irregular region number (0-8) that cell belongs to.
// Rows and columns stay as in standard Sudoku; the 9 irregular regions
// replace the 3x3 boxes.
//
// Invariants (verified at package init):
//   - Exactly 9 regions numbered 0-8, each with exactly 9 cells.
//   - Each region is orthogonally contiguous.
var (
	// "Zigzag": wide diagonal stripes that zigzag across the grid.
	//   0 0 0 1 1 1 2 2 2
	//   0 0 1 1 1 2 2 2 2
	//   0 1 1 1 3 3 3 2 2
	//   0 3 3 3 3 3 3 4 4
	//   0 5 5 5 6 6 6 4 4
	//   0 5 5 5 6 6 6 4 4
	//   7 5 5 5 6 6 6 4 4
	//   7 7 7 7 8 8 8 8 4
	//   7 7 7 7 8 8 8 8 8
	jigsawZigzag = [CellCount]int{
		0, 0, 0, 1, 1, 1, 2, 2, 2,
		0, 0, 1, 1, 1, 2, 2, 2, 2,
		0, 1, 1, 1, 3, 3, 3, 2, 2,
		0, 3, 3, 3, 3, 3, 3, 4, 4,
		0, 5, 5, 5, 6, 6, 6, 4, 4,
		0, 5, 5, 5, 6, 6, 6, 4, 4,
		7, 5, 5, 5, 6, 6, 6, 4, 4,
		7, 7, 7, 7, 8, 8, 8, 8, 4,
		7, 7, 7, 7, 8, 8, 8, 8, 8,
	}

	// "Staircase": regions step diagonally, like a descending stair.
	//   0 0 0 1 1 1 2 2 2
	//   0 0 1 1 1 2 2 2 2
	//   0 0 1 1 3 3 3 2 2
	//   0 0 1 3 3 3 4 4 4
	//   5 5 5 3 3 3 4 4 4
	//   5 5 5 6 6 6 6 4 4
	//   5 5 5 6 6 6 6 6 4
	//   7 7 7 7 8 8 8 8 8
	//   7 7 7 7 7 8 8 8 8
	jigsawStaircase = [CellCount]int{
		0, 0, 0, 1, 1, 1, 2, 2, 2,
		0, 0, 1, 1, 1, 2, 2, 2, 2,
		0, 0, 1, 1, 3, 3, 3, 2, 2,
		0, 0, 1, 3, 3, 3, 4, 4, 4,
		5, 5, 5, 3, 3, 3, 4, 4, 4,
		5, 5, 5, 6, 6, 6, 6, 4, 4,
		5, 5, 5, 6, 6, 6, 6, 6, 4,
		7, 7, 7, 7, 8, 8, 8, 8, 8,
		7, 7, 7, 7, 7, 8, 8, 8, 8,
	}
)

// jigsawVariant builds a Variant from a region map: the 9 rows, the 9
// columns, then the 9 irregular regions in region-number order.
func jigsawVariant(name string, regionMap [CellCount]int) *Variant {
	regions := make([][]Coord, 0, 27)
	regions = append(regions, Standard()[:18]...)

	var irregular [GridSize][]Coord
	for pos := range CellCount {
		r := regionMap[pos]
		x, y := XY(pos)
		irregular[r] = append(irregular[r], Coord{X: x, Y: y})
	}
	regions = append(regions, irregular[:]...)

	return NewVariant(name, regions)
}

// validateRegionMap checks that a jigsaw region map assigns exactly 9
// cells to each of the regions 0-8 and that every region is orthogonally
// connected (flood fill from its first cell).
func validateRegionMap(regionMap [CellCount]int) error {
	var counts [GridSize]int
	var first [GridSize]int
	for pos := range CellCount {
		r := regionMap[pos]
		if r < 0 || r > 8 {
			return fmt.Errorf("cell %d has out-of-range region %d (must be 0-8)", pos, r)
		}
		if counts[r] == 0 {
			first[r] = pos
		}
		counts[r]++
	}
	for r := range GridSize {
		if counts[r] != GridSize {
			return fmt.Errorf("region %d has %d cells, expected %d", r, counts[r], GridSize)
		}
	}

	for r := range GridSize {
		visited := [CellCount]bool{}
		queue := [CellCount]int{}
		head, tail := 0, 0

		queue[tail] = first[r]
		tail++
		visited[first[r]] = true
		visitedCount := 1

		for head < tail {
			pos := queue[head]
			head++
			x, y := XY(pos)

			neighbors := [4]int{
				MakePos(x, y-1),
				MakePos(x, y+1),
				MakePos(x-1, y),
				MakePos(x+1, y),
			}
			for _, nb := range neighbors {
				if nb == InvalidCell || visited[nb] || regionMap[nb] != r {
					continue
				}
				visited[nb] = true
				visitedCount++
				queue[tail] = nb
				tail++
			}
		}

		if visitedCount != GridSize {
			return fmt.Errorf("region %d is not contiguous (%d of %d cells reachable from cell %d)",
				r, visitedCount, GridSize, first[r])
		}
	}
	return nil
}

// init validates the hand-crafted jigsaw maps so a bad edit surfaces immediately.
func init() {
	for name, regionMap := range map[string][CellCount]int{
		"jigsaw-zigzag":    jigsawZigzag,
		"jigsaw-staircase": jigsawStaircase,
	} {
		if err := validateRegionMap(regionMap); err != nil {
			panic("grid: " + name + ": " + err.Error())
		}
	}
}
