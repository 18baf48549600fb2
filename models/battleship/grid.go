package battleship

import "strings"

const (
	GridSize = 10

	GridLowerBound = 1
	GridUpperBound = GridSize
)

// Symbols of a rendered grid cell.
const (
	CellUnknown rune = ' '
	CellMiss    rune = 'O'
	CellHit     rune = 'X'
	CellSunk    rune = '$'
	CellShip    rune = 'S'
)

// Coordinates are 1-based: X is the column (A..J), Y is the row (1..10).
type Coordinates struct {
	X int `json:"x"`
	Y int `json:"y"`
}

func NewCoordinates(x, y int) Coordinates {
	return Coordinates{X: x, Y: y}
}

func (c Coordinates) IsValid() bool {
	return c.X >= GridLowerBound && c.X <= GridUpperBound &&
		c.Y >= GridLowerBound && c.Y <= GridUpperBound
}

// Grid is indexed Grid[y-1][x-1].
type Grid [GridSize][GridSize]rune

func NewGrid() Grid {
	var grid Grid
	for i := range grid {
		for j := range grid[i] {
			grid[i][j] = CellUnknown
		}
	}
	return grid
}

func (g *Grid) Set(c Coordinates, symbol rune) {
	g[c.Y-1][c.X-1] = symbol
}

func (g Grid) At(c Coordinates) rune {
	return g[c.Y-1][c.X-1]
}

// Rows returns one string per row, top to bottom.
func (g Grid) Rows() []string {
	rows := make([]string, 0, GridSize)
	for _, row := range g {
		var sb strings.Builder
		for _, cell := range row {
			sb.WriteRune(cell)
		}
		rows = append(rows, sb.String())
	}
	return rows
}
