package grid

// Rule is a variant constraint expressed directly on grid topology rather
// than through regions. Rules only remove candidates; they never solve a
// cell.
type Rule interface {
	// Name identifies the rule in logs and variant descriptions.
	Name() string

	// Exclude removes candidates implied by the rule and reports whether
	// anything changed.
	Exclude(g *Grid) bool
}

// NonConsecutive forbids orthogonally adjacent cells from holding
// consecutive digits: a solved v removes v-1, v, and v+1 from the up-to-two
// vertical and up-to-two horizontal neighbors, clipped at the grid edge.
//
// The sweep is over a literal 9x9 orthogonal neighborhood and does not
// consult the region list. The clipped range includes the solved cell
// itself; excluding from it is a no-op since its candidates are already
// cleared.
type NonConsecutive struct{}

// Name implements Rule.
func (NonConsecutive) Name() string {
	return "nonconsecutive"
}

// Exclude implements Rule.
func (NonConsecutive) Exclude(g *Grid) bool {
	changed := false
	for y := range GridSize {
		for x := range GridSize {
			v := g.cells[MakePos(x, y)].value
			if v == EmptyCell {
				continue
			}
			for w := max(v-1, 1); w <= min(v+1, GridSize); w++ {
				for xx := max(x-1, 0); xx <= min(x+1, GridSize-1); xx++ {
					if g.Exclude(MakePos(xx, y), w) {
						changed = true
					}
				}
				for yy := max(y-1, 0); yy <= min(y+1, GridSize-1); yy++ {
					if g.Exclude(MakePos(x, yy), w) {
						changed = true
					}
				}
			}
		}
	}
	return changed
}
