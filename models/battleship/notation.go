package battleship

import (
	"fmt"
	"strconv"
	"strings"

	cerr "github.com/saeidalz13/battleship-bots/internal/error"
)

const columnLetterOffset = 'A' - 1

// ParseCoordinates converts text like "B3" or " j10 " into Coordinates.
func ParseCoordinates(input string) (Coordinates, error) {
	s := strings.ToUpper(strings.TrimSpace(input))
	if len(s) < 2 || s[1] < '0' || s[1] > '9' {
		return Coordinates{}, cerr.ErrCoordinatesMalformed(input)
	}

	x := int(rune(s[0]) - columnLetterOffset)
	y, err := strconv.Atoi(s[1:])
	if err != nil {
		return Coordinates{}, cerr.ErrCoordinatesMalformed(input)
	}

	c := NewCoordinates(x, y)
	if !c.IsValid() {
		return Coordinates{}, cerr.ErrCoordinatesMalformed(input)
	}
	return c, nil
}

// FormatCoordinates is the inverse of ParseCoordinates.
func FormatCoordinates(c Coordinates) string {
	return fmt.Sprintf("%c%d", rune(c.X)+columnLetterOffset, c.Y)
}

func ColumnLetter(x int) string {
	return string(rune(x) + columnLetterOffset)
}
