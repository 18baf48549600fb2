package battleship

import (
	cerr "github.com/saeidalz13/battleship-bots/internal/error"
)

// RandomStrategy attacks uniformly at random, never twice at the same
// place and never next to a ship it already sank.
type RandomStrategy struct {
	random         Random
	attacked       attackHistory
	lastAttack     *Coordinates
	sunkShipsFound []*Ship
}

var _ Strategy = (*RandomStrategy)(nil)

func NewRandomStrategy(rnd Random) *RandomStrategy {
	return &RandomStrategy{
		random:   rnd,
		attacked: make(attackHistory),
	}
}

func (s *RandomStrategy) Kind() string { return StrategyRandom }

func (s *RandomStrategy) SelectAttackCoordinates(_ *Board) (Coordinates, error) {
	if !s.hasCandidate() {
		return Coordinates{}, cerr.ErrNoCoordinatesLeft(StrategyRandom)
	}

	for {
		c := NewCoordinates(s.random.Intn(GridSize)+1, s.random.Intn(GridSize)+1)
		if s.isCandidate(c) {
			s.attacked.add(c)
			s.lastAttack = &c
			return c, nil
		}
	}
}

func (s *RandomStrategy) ObserveAttackResult(result AttackResult) {
	if result.Sunk && result.SunkShip != nil {
		s.sunkShipsFound = append(s.sunkShipsFound, result.SunkShip)
	}
}

// LastAttack returns the coordinates of the previous attack, if any.
func (s *RandomStrategy) LastAttack() (Coordinates, bool) {
	if s.lastAttack == nil {
		return Coordinates{}, false
	}
	return *s.lastAttack, true
}

func (s *RandomStrategy) isCandidate(c Coordinates) bool {
	return !s.attacked.contains(c) && !s.isNearSunkShip(c)
}

// hasCandidate guarantees the rejection loop terminates.
func (s *RandomStrategy) hasCandidate() bool {
	for y := GridLowerBound; y <= GridUpperBound; y++ {
		for x := GridLowerBound; x <= GridUpperBound; x++ {
			if s.isCandidate(NewCoordinates(x, y)) {
				return true
			}
		}
	}
	return false
}

func (s *RandomStrategy) isNearSunkShip(c Coordinates) bool {
	for _, sh := range s.sunkShipsFound {
		if sh.IsSunk() && sh.IsNearCoordinates(c) {
			return true
		}
	}
	return false
}
