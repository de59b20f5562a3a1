package cmd

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/stefnotch/sudoku-practice/internal/grid"
)

// parseCoord parses "x,y" with x,y in [0,9).
func parseCoord(s string) (grid.Coord, error) {
	parts := strings.Split(strings.TrimSpace(s), ",")
	if len(parts) != 2 {
		return grid.Coord{}, fmt.Errorf("invalid coordinate %q (use format like '3,6')", s)
	}
	x, err := strconv.Atoi(strings.TrimSpace(parts[0]))
	if err != nil {
		return grid.Coord{}, fmt.Errorf("invalid coordinate x: %w", err)
	}
	y, err := strconv.Atoi(strings.TrimSpace(parts[1]))
	if err != nil {
		return grid.Coord{}, fmt.Errorf("invalid coordinate y: %w", err)
	}
	return grid.Coord{X: x, Y: y}, nil
}

// parseClue parses a clue flag "x,y=d".
func parseClue(s string) (grid.Coord, int, error) {
	parts := strings.Split(s, "=")
	if len(parts) != 2 {
		return grid.Coord{}, 0, fmt.Errorf("invalid clue %q (use format like '3,6=2')", s)
	}
	c, err := parseCoord(parts[0])
	if err != nil {
		return grid.Coord{}, 0, err
	}
	val, err := strconv.Atoi(strings.TrimSpace(parts[1]))
	if err != nil {
		return grid.Coord{}, 0, fmt.Errorf("invalid clue digit: %w", err)
	}
	return c, val, nil
}

// parseCage parses a cage flag: whitespace-separated coordinates like
// "0,0 1,0 1,1".
func parseCage(s string) ([]grid.Coord, error) {
	fields := strings.Fields(s)
	if len(fields) == 0 {
		return nil, fmt.Errorf("empty cage")
	}
	cells := make([]grid.Coord, 0, len(fields))
	for _, f := range fields {
		c, err := parseCoord(f)
		if err != nil {
			return nil, fmt.Errorf("invalid cage: %w", err)
		}
		cells = append(cells, c)
	}
	return cells, nil
}

// buildPuzzle constructs a grid from the shared puzzle inputs: a variant
// name, optional extra cage regions, an optional 81-character board
// argument, and repeatable "x,y=d" clue flags applied as manual overrides.
func buildPuzzle(args []string, variantName string, cages, clues []string) (*grid.Grid, error) {
	variant, err := grid.LookupVariant(variantName)
	if err != nil {
		return nil, err
	}
	for _, cage := range cages {
		cells, err := parseCage(cage)
		if err != nil {
			return nil, err
		}
		variant.AddRegion(cells)
	}

	var g *grid.Grid
	if len(args) == 1 {
		g, err = grid.NewFromString(args[0], variant)
	} else {
		g, err = grid.New(variant)
	}
	if err != nil {
		return nil, err
	}

	for _, clue := range clues {
		c, val, err := parseClue(clue)
		if err != nil {
			return nil, err
		}
		if err := g.SetCell(c.X, c.Y, val); err != nil {
			return nil, fmt.Errorf("clue %q: %w", clue, err)
		}
	}
	return g, nil
}

// variantHelp lists the built-in variant names for flag help text.
func variantHelp() string {
	return "Puzzle variant: " + strings.Join(grid.Variants(), ", ")
}
