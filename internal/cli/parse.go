package cli

import (
	"fmt"
	"strconv"
	"strings"
)

// parseCell reads a "row,col" pair
func parseCell(s string) ([2]int, error) {
	parts := strings.Split(strings.TrimSpace(s), ",")
	if len(parts) != 2 {
		return [2]int{}, fmt.Errorf("invalid cell %q: expected row,col", s)
	}

	var cell [2]int
	for i, part := range parts {
		n, err := strconv.Atoi(strings.TrimSpace(part))
		if err != nil {
			return [2]int{}, fmt.Errorf("invalid cell %q: %w", s, err)
		}
		cell[i] = n
	}
	return cell, nil
}

// parsePath reads cells separated by ';'. An empty string is an empty path.
func parsePath(s string) ([][2]int, error) {
	path := [][2]int{}
	if strings.TrimSpace(s) == "" {
		return path, nil
	}

	for _, step := range strings.Split(s, ";") {
		cell, err := parseCell(step)
		if err != nil {
			return nil, err
		}
		path = append(path, cell)
	}
	return path, nil
}

type tileSpec struct {
	Position [2]int `json:"position"`
	Number   int    `json:"number"`
}

// parseTiles reads "row,col=number" specs
func parseTiles(specs []string) ([]tileSpec, error) {
	tiles := make([]tileSpec, 0, len(specs))
	for _, spec := range specs {
		cellPart, numPart, ok := strings.Cut(spec, "=")
		if !ok {
			return nil, fmt.Errorf("invalid tile %q: expected row,col=number", spec)
		}

		cell, err := parseCell(cellPart)
		if err != nil {
			return nil, err
		}
		n, err := strconv.Atoi(strings.TrimSpace(numPart))
		if err != nil {
			return nil, fmt.Errorf("invalid tile %q: %w", spec, err)
		}

		tiles = append(tiles, tileSpec{Position: cell, Number: n})
	}
	return tiles, nil
}
