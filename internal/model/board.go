package model

// Position identifies a cell on the board
type Position struct {
	Row int // 0-indexed from top
	Col int // 0-indexed from left
}

// NewPosition builds a Position from a [row, col] pair
func NewPosition(pair [2]int) Position {
	return Position{Row: pair[0], Col: pair[1]}
}

// Pair returns the position as a [row, col] pair
func (p Position) Pair() [2]int {
	return [2]int{p.Row, p.Col}
}
