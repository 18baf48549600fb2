package battleship

import (
	"strings"

	cerr "github.com/saeidalz13/battleship-bots/internal/error"
)

const (
	StrategyManual = "manual"
	StrategyRandom = "random"
	StrategyHunt   = "hunt"
)

// AttackResult is what an attacker learns about one attack.
type AttackResult struct {
	Coordinates Coordinates
	Hit         bool
	Sunk        bool

	// SunkShip is set when Sunk is true.
	SunkShip *Ship
}

// Strategy decides where a player attacks next.
type Strategy interface {
	// SelectAttackCoordinates returns the next coordinates to attack on
	// the opponent's board.
	SelectAttackCoordinates(opponent *Board) (Coordinates, error)

	// ObserveAttackResult is called with the outcome of the coordinates
	// last returned by SelectAttackCoordinates.
	ObserveAttackResult(result AttackResult)

	Kind() string
}

// NewAutomaticStrategy builds the automated strategy named by kind.
// Manual strategies need an input source and are built with
// NewManualStrategy instead.
func NewAutomaticStrategy(kind string, rnd Random) (Strategy, error) {
	switch strings.ToLower(strings.TrimSpace(kind)) {
	case StrategyRandom:
		return NewRandomStrategy(rnd), nil
	case StrategyHunt:
		return NewHuntStrategy(), nil
	default:
		return nil, cerr.ErrStrategyUnknown(kind)
	}
}

// attackHistory is the set of coordinates a strategy already chose.
type attackHistory map[Coordinates]struct{}

func (h attackHistory) add(c Coordinates) {
	h[c] = struct{}{}
}

func (h attackHistory) contains(c Coordinates) bool {
	_, prs := h[c]
	return prs
}

// firstUnattacked scans the grid row by row.
func (h attackHistory) firstUnattacked() (Coordinates, bool) {
	for y := GridLowerBound; y <= GridUpperBound; y++ {
		for x := GridLowerBound; x <= GridUpperBound; x++ {
			c := NewCoordinates(x, y)
			if !h.contains(c) {
				return c, true
			}
		}
	}
	return Coordinates{}, false
}
