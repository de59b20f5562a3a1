package grid

import (
	"errors"
	"fmt"
)

var (
	ErrInvalidPosition = errors.New("position out of bounds")
	ErrInvalidValue    = errors.New("value must be between 1-9")
	ErrInvalidRegion   = errors.New("region coordinate out of bounds")
	ErrUnknownVariant  = errors.New("unknown variant")
)

// IsValid reports whether no region holds the same solved digit twice.
// Empty cells are ignored. Duplicate positions within a region are counted
// once.
func (g *Grid) IsValid() bool {
	var seen [CellCount]int // round tag per position, avoids clearing between regions
	for ri := range g.regions {
		tag := ri + 1
		var mask uint
		for _, pos := range g.regions[ri].cells {
			if seen[pos] == tag {
				continue
			}
			seen[pos] = tag

			val := g.cells[pos].value
			if val == EmptyCell {
				continue
			}
			bit := uint(1 << (val - 1))
			if mask&bit != 0 {
				return false
			}
			mask |= bit
		}
	}
	return true
}

// isValidPosition reports whether a linear position is in bounds.
func isValidPosition(pos int) bool {
	return pos >= 0 && pos < CellCount
}

// isValidValue reports whether a digit is valid for a Sudoku cell.
func isValidValue(val int) bool {
	return val >= 1 && val <= 9
}

// validateValue checks that a value is a Sudoku digit (1-9).
func validateValue(val int) error {
	if !isValidValue(val) {
		return fmt.Errorf("%w: got %d", ErrInvalidValue, val)
	}
	return nil
}
