package battleship

import (
	"fmt"
	"sort"
	"strings"

	cerr "github.com/saeidalz13/battleship-bots/internal/error"
)

// FleetComposition maps a ship length to the number of ships of that
// length every board must carry.
var FleetComposition = map[int]int{
	1: 1,
	2: 1,
	3: 1,
	4: 1,
	5: 1,
}

// FleetLengths returns the ship lengths of a full fleet in ascending order.
func FleetLengths() []int {
	lengths := make([]int, 0, len(FleetComposition))
	for length, count := range FleetComposition {
		for i := 0; i < count; i++ {
			lengths = append(lengths, length)
		}
	}
	sort.Ints(lengths)
	return lengths
}

type Board struct {
	ships    []*Ship
	attacked map[Coordinates]struct{}
}

// NewBoard validates the fleet once; a board is either fully valid or
// not returned at all.
func NewBoard(ships []*Ship) (*Board, error) {
	for _, sh := range ships {
		if !sh.Start().IsValid() || !sh.End().IsValid() {
			return nil, cerr.ErrShipOutsideGrid(sh, GridSize)
		}
	}
	if err := validateFleetComposition(ships); err != nil {
		return nil, err
	}
	if a, b, found := findShipsTooClose(ships); found {
		return nil, cerr.ErrShipsNear(a, b)
	}

	return &Board{
		ships:    ships,
		attacked: make(map[Coordinates]struct{}),
	}, nil
}

func validateFleetComposition(ships []*Ship) error {
	counts := make(map[int]int, len(FleetComposition))
	for _, sh := range ships {
		counts[sh.Length()]++
	}

	valid := len(counts) == len(FleetComposition)
	for length, count := range FleetComposition {
		if counts[length] != count {
			valid = false
		}
	}
	if valid {
		return nil
	}

	total := 0
	var sb strings.Builder
	for _, length := range fleetLengthsDistinct() {
		total += FleetComposition[length]
		fmt.Fprintf(&sb, " - %d of length %d\n", FleetComposition[length], length)
	}
	return cerr.ErrFleetComposition(fmt.Sprintf("there should be %d ships in total:\n%s", total, sb.String()))
}

// fleetLengthsDistinct returns every length of FleetComposition once, ascending.
func fleetLengthsDistinct() []int {
	lengths := make([]int, 0, len(FleetComposition))
	for length := range FleetComposition {
		lengths = append(lengths, length)
	}
	sort.Ints(lengths)
	return lengths
}

func findShipsTooClose(ships []*Ship) (*Ship, *Ship, bool) {
	for i := range ships {
		for j := i + 1; j < len(ships); j++ {
			if ships[i].IsNearShip(ships[j]) {
				return ships[i], ships[j], true
			}
		}
	}
	return nil, nil, false
}

func (b *Board) Ships() []*Ship {
	return b.ships
}

// Attack damages whatever ship sits on c. hit reports whether a ship was
// there and sunk whether that ship is now sunk. Attacking the same
// coordinates again resolves identically.
func (b *Board) Attack(c Coordinates) (hit, sunk bool) {
	b.attacked[c] = struct{}{}

	for _, sh := range b.ships {
		if sh.IsOnCoordinates(c) {
			hit = true
			sh.TakeDamageAt(c)
			if sh.IsSunk() {
				sunk = true
			}
		}
	}
	return hit, sunk
}

// ShipAt returns the ship occupying c, or nil.
func (b *Board) ShipAt(c Coordinates) *Ship {
	for _, sh := range b.ships {
		if sh.IsOnCoordinates(c) {
			return sh
		}
	}
	return nil
}

func (b *Board) IsAttackedAt(c Coordinates) bool {
	_, prs := b.attacked[c]
	return prs
}

// AttackedCoordinates lists every attacked cell in row-major order.
func (b *Board) AttackedCoordinates() []Coordinates {
	coords := make([]Coordinates, 0, len(b.attacked))
	for c := range b.attacked {
		coords = append(coords, c)
	}
	sort.Slice(coords, func(i, j int) bool {
		if coords[i].Y != coords[j].Y {
			return coords[i].Y < coords[j].Y
		}
		return coords[i].X < coords[j].X
	})
	return coords
}

func (b *Board) AllShipsSunk() bool {
	for _, sh := range b.ships {
		if !sh.IsSunk() {
			return false
		}
	}
	return true
}

func (b *Board) SunkShipsCount() int {
	count := 0
	for _, sh := range b.ships {
		if sh.IsSunk() {
			count++
		}
	}
	return count
}

// GridWithShips is the owner's view: undamaged ship cells are visible.
func (b *Board) GridWithShips() Grid {
	return b.grid(true)
}

// GridWithoutShips is the opponent's view: only misses, hits and sunk
// ships are visible.
func (b *Board) GridWithoutShips() Grid {
	return b.grid(false)
}

func (b *Board) grid(showShips bool) Grid {
	grid := NewGrid()
	for c := range b.attacked {
		if c.IsValid() {
			grid.Set(c, CellMiss)
		}
	}

	for _, sh := range b.ships {
		if sh.IsSunk() {
			for _, c := range sh.Coordinates() {
				grid.Set(c, CellSunk)
			}
			continue
		}
		if showShips {
			for _, c := range sh.Coordinates() {
				grid.Set(c, CellShip)
			}
		}
		for _, c := range sh.DamagedCoordinates() {
			grid.Set(c, CellHit)
		}
	}
	return grid
}
