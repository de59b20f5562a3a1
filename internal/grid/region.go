package grid

// Coord is a grid coordinate at the region-supplier boundary:
// x is the column and y the row, both in [0, 9).
type Coord struct {
	X, Y int
}

// Region is an identified, ordered collection of cell positions forming
// one constraint unit. Regions of size 9 are "full" units eligible for
// hidden-single and pointing-set deduction; other sizes participate only
// in basic elimination. Regions are immutable after construction.
//
// A region never owns cells, it only references their positions.
type Region struct {
	id    int
	cells []int
}

// ID returns the region's identifier, assigned in supply order.
func (r Region) ID() int {
	return r.id
}

// Size returns the number of positions in the region.
func (r Region) Size() int {
	return len(r.cells)
}

// Full reports whether the region is a full 9-cell unit.
func (r Region) Full() bool {
	return len(r.cells) == GridSize
}

// Cells returns the region's positions in supply order.
// The returned slice is shared and must not be modified.
func (r Region) Cells() []int {
	return r.cells
}

// Coords returns the region's positions as coordinates, in supply order.
func (r Region) Coords() []Coord {
	coords := make([]Coord, len(r.cells))
	for i, pos := range r.cells {
		coords[i].X, coords[i].Y = XY(pos)
	}
	return coords
}

// Standard returns the 27 canonical constraint regions in supply order:
// the 9 rows top to bottom, the 9 columns left to right, then the 9
// 3x3 boxes in row-major box order.
func Standard() [][]Coord {
	regions := make([][]Coord, 0, 27)

	for y := range GridSize {
		row := make([]Coord, GridSize)
		for x := range GridSize {
			row[x] = Coord{X: x, Y: y}
		}
		regions = append(regions, row)
	}

	for x := range GridSize {
		col := make([]Coord, GridSize)
		for y := range GridSize {
			col[y] = Coord{X: x, Y: y}
		}
		regions = append(regions, col)
	}

	for box := range GridSize {
		cells := make([]Coord, 0, GridSize)
		bx, by := 3*(box%3), 3*(box/3)
		for dy := range 3 {
			for dx := range 3 {
				cells = append(cells, Coord{X: bx + dx, Y: by + dy})
			}
		}
		regions = append(regions, cells)
	}

	return regions
}
