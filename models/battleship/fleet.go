package battleship

import (
	"math/rand"
	"time"

	cerr "github.com/saeidalz13/battleship-bots/internal/error"
)

const (
	maxShipAttempts  = 1000
	maxFleetAttempts = 10000
)

// Random is the source of randomness for fleet generation and the
// random strategy. *rand.Rand satisfies it.
type Random interface {
	// Intn returns a value in [0, n).
	Intn(n int) int
}

// NewRandom returns a Random seeded with seed, or with the current time
// when seed is 0.
func NewRandom(seed int64) *rand.Rand {
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	return rand.New(rand.NewSource(seed))
}

// NewAutomaticBoard places a full fleet at random.
func NewAutomaticBoard(rnd Random) (*Board, error) {
	ships, err := GenerateFleet(rnd)
	if err != nil {
		return nil, err
	}
	return NewBoard(ships)
}

// GenerateFleet places one ship per length of FleetComposition. Ships are
// first placed without overlapping each other; the whole fleet is then
// discarded and regenerated if any two ships end up too close.
func GenerateFleet(rnd Random) ([]*Ship, error) {
	lengths := FleetLengths()

fleetLoop:
	for attempt := 0; attempt < maxFleetAttempts; attempt++ {
		ships := make([]*Ship, 0, len(lengths))
		taken := make(map[Coordinates]struct{})

		for _, length := range lengths {
			sh, ok := generateShip(rnd, length, taken)
			if !ok {
				continue fleetLoop
			}
			ships = append(ships, sh)
		}

		if _, _, found := findShipsTooClose(ships); found {
			continue
		}
		return ships, nil
	}

	return nil, cerr.ErrFleetPlacement(maxFleetAttempts)
}

// generateShip grows a ship of the given length backwards from a random
// anchor cell. Cells of the new ship are added to taken.
func generateShip(rnd Random, length int, taken map[Coordinates]struct{}) (*Ship, bool) {
	offset := length - 1

shipLoop:
	for attempt := 0; attempt < maxShipAttempts; attempt++ {
		anchor := NewCoordinates(rnd.Intn(GridSize)+1, rnd.Intn(GridSize)+1)
		start := anchor
		if rnd.Intn(2) == 0 {
			start.X -= offset
		} else {
			start.Y -= offset
		}
		if !start.IsValid() {
			continue
		}

		sh, err := NewShip(start, anchor)
		if err != nil {
			continue
		}
		for _, c := range sh.Coordinates() {
			if _, prs := taken[c]; prs {
				continue shipLoop
			}
		}

		for _, c := range sh.Coordinates() {
			taken[c] = struct{}{}
		}
		return sh, true
	}
	return nil, false
}
