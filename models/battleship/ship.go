package battleship

import (
	"fmt"

	cerr "github.com/saeidalz13/battleship-bots/internal/error"
)

// Ship is a straight segment on the grid. Its geometry is fixed at
// construction; only the damage set changes afterwards.
type Ship struct {
	xStart  int
	yStart  int
	xEnd    int
	yEnd    int
	damages map[Coordinates]struct{}
}

// NewShip accepts the endpoints in any order.
func NewShip(start, end Coordinates) (*Ship, error) {
	sh := &Ship{
		xStart:  min(start.X, end.X),
		xEnd:    max(start.X, end.X),
		yStart:  min(start.Y, end.Y),
		yEnd:    max(start.Y, end.Y),
		damages: make(map[Coordinates]struct{}),
	}

	if !sh.IsHorizontal() && !sh.IsVertical() {
		return nil, cerr.ErrShipNotAligned(sh.xStart, sh.yStart, sh.xEnd, sh.yEnd)
	}
	return sh, nil
}

// NewShipFromNotation builds a ship from two cells written like "B3".
func NewShipFromNotation(start, end string) (*Ship, error) {
	cStart, err := ParseCoordinates(start)
	if err != nil {
		return nil, err
	}
	cEnd, err := ParseCoordinates(end)
	if err != nil {
		return nil, err
	}
	return NewShip(cStart, cEnd)
}

func (sh *Ship) String() string {
	return fmt.Sprintf("Ship(start=(%d,%d), end=(%d,%d))", sh.xStart, sh.yStart, sh.xEnd, sh.yEnd)
}

func (sh *Ship) Start() Coordinates { return NewCoordinates(sh.xStart, sh.yStart) }
func (sh *Ship) End() Coordinates   { return NewCoordinates(sh.xEnd, sh.yEnd) }

// IsVertical reports whether the ship lies on a single column.
func (sh *Ship) IsVertical() bool {
	return sh.xStart == sh.xEnd
}

// IsHorizontal reports whether the ship lies on a single row.
func (sh *Ship) IsHorizontal() bool {
	return sh.yStart == sh.yEnd
}

func (sh *Ship) Length() int {
	return max(sh.xEnd-sh.xStart, sh.yEnd-sh.yStart) + 1
}

func (sh *Ship) IsOnCoordinates(c Coordinates) bool {
	return sh.xStart <= c.X && c.X <= sh.xEnd && sh.yStart <= c.Y && c.Y <= sh.yEnd
}

// TakeDamageAt is a no-op for coordinates the ship does not occupy
// and for coordinates already damaged.
func (sh *Ship) TakeDamageAt(c Coordinates) {
	if sh.IsOnCoordinates(c) {
		sh.damages[c] = struct{}{}
	}
}

func (sh *Ship) IsDamagedAt(c Coordinates) bool {
	_, prs := sh.damages[c]
	return prs
}

func (sh *Ship) DamageCount() int {
	return len(sh.damages)
}

func (sh *Ship) IsSunk() bool {
	return sh.DamageCount() == sh.Length()
}

// Coordinates lists every occupied cell, column by column.
func (sh *Ship) Coordinates() []Coordinates {
	coords := make([]Coordinates, 0, sh.Length())
	for x := sh.xStart; x <= sh.xEnd; x++ {
		for y := sh.yStart; y <= sh.yEnd; y++ {
			coords = append(coords, NewCoordinates(x, y))
		}
	}
	return coords
}

// DamagedCoordinates lists the damaged cells in the same order as Coordinates.
func (sh *Ship) DamagedCoordinates() []Coordinates {
	coords := make([]Coordinates, 0, len(sh.damages))
	for _, c := range sh.Coordinates() {
		if sh.IsDamagedAt(c) {
			coords = append(coords, c)
		}
	}
	return coords
}

// IsNearCoordinates reports whether c touches the ship, corners included:
//
//	|   |   |   |   | x |   |
//	|   | S | S | S | x |   |
//	| x |   | x |   |   |   |
//
// Every x above is near the ship.
func (sh *Ship) IsNearCoordinates(c Coordinates) bool {
	return sh.xStart-1 <= c.X && c.X <= sh.xEnd+1 &&
		sh.yStart-1 <= c.Y && c.Y <= sh.yEnd+1
}

// IsNearShip reports whether any cell of one ship touches a cell of the
// other. Both directions are checked so the result does not depend on
// which ship is the receiver.
func (sh *Ship) IsNearShip(other *Ship) bool {
	return sh.touches(other) || other.touches(sh)
}

func (sh *Ship) touches(other *Ship) bool {
	for _, c := range other.Coordinates() {
		if sh.IsNearCoordinates(c) {
			return true
		}
	}
	return false
}
