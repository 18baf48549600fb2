package battleship

import (
	cerr "github.com/saeidalz13/battleship-bots/internal/error"
)

// Probe order around a hit: +x, -x, +y, -y.
var huntDirections = [4]Coordinates{
	{X: 1, Y: 0},
	{X: -1, Y: 0},
	{X: 0, Y: 1},
	{X: 0, Y: -1},
}

var (
	sweepOrigin  = NewCoordinates(0, 0)
	sweepFirst   = NewCoordinates(2, 1)
	sweepLast    = NewCoordinates(9, 10)
	sweepRestart = NewCoordinates(1, 1)
)

// HuntStrategy searches the grid with a checkerboard sweep. After a hit
// that does not sink a ship it switches to hunting: it probes the
// orthogonal neighbours of the last sweep cell until the ship sinks or no
// neighbour is left to try, then resumes the sweep.
type HuntStrategy struct {
	attacked attackHistory

	// cursor is the last cell chosen by the sweep; the origin before the
	// first attack. Probes never move it.
	cursor Coordinates

	hunting bool
}

var _ Strategy = (*HuntStrategy)(nil)

func NewHuntStrategy() *HuntStrategy {
	return &HuntStrategy{
		attacked: make(attackHistory),
		cursor:   sweepOrigin,
	}
}

func (s *HuntStrategy) Kind() string { return StrategyHunt }

func (s *HuntStrategy) IsHunting() bool {
	return s.hunting
}

func (s *HuntStrategy) SelectAttackCoordinates(_ *Board) (Coordinates, error) {
	if s.hunting {
		if c, ok := s.probe(s.cursor); ok {
			s.attacked.add(c)
			return c, nil
		}
		s.hunting = false
	}

	c, ok := s.nextSweep()
	if !ok {
		c, ok = s.attacked.firstUnattacked()
		if !ok {
			return Coordinates{}, cerr.ErrNoCoordinatesLeft(StrategyHunt)
		}
	}

	s.cursor = c
	s.attacked.add(c)
	return c, nil
}

// ObserveAttackResult starts hunting on a hit and stops on a sink. A miss
// while hunting keeps probing the remaining neighbours.
func (s *HuntStrategy) ObserveAttackResult(result AttackResult) {
	switch {
	case result.Sunk:
		s.hunting = false
	case result.Hit:
		s.hunting = true
	}
}

// probe returns the first neighbour of center that is on the grid and
// not attacked yet.
func (s *HuntStrategy) probe(center Coordinates) (Coordinates, bool) {
	for _, d := range huntDirections {
		c := NewCoordinates(center.X+d.X, center.Y+d.Y)
		if c.IsValid() && !s.attacked.contains(c) {
			return c, true
		}
	}
	return Coordinates{}, false
}

// nextSweep advances the checkerboard by two columns, wrapping onto the
// next row so that consecutive rows alternate between odd and even
// columns. Once (9,10) is reached the sweep restarts at (1,1) to cover
// the other colour. ok is false when the computed cell is off the grid or
// already attacked.
func (s *HuntStrategy) nextSweep() (Coordinates, bool) {
	last := s.cursor

	var next Coordinates
	switch {
	case last == sweepOrigin:
		next = sweepFirst
	case last == sweepLast:
		next = sweepRestart
	case last.X+2 <= GridSize:
		next = NewCoordinates(last.X+2, last.Y)
	case last.X%2 == 0:
		next = NewCoordinates(1, last.Y+1)
	default:
		next = NewCoordinates(2, last.Y+1)
	}

	if !next.IsValid() || s.attacked.contains(next) {
		return Coordinates{}, false
	}
	return next, true
}
