package error

import (
	"errors"
	"fmt"
)

// Error kinds. Every constructor below wraps one of these so callers
// can match with errors.Is.
var (
	ErrInvalidGeometry         = errors.New("invalid ship geometry")
	ErrShipOutOfBounds         = errors.New("ship out of grid bounds")
	ErrInvalidFleetComposition = errors.New("invalid fleet composition")
	ErrShipsTooClose           = errors.New("ships too close")
	ErrPlacementUnsatisfiable  = errors.New("fleet placement unsatisfiable")
	ErrCoordinateParse         = errors.New("invalid coordinates")
	ErrNoCandidateCoordinates  = errors.New("no coordinates left to attack")
	ErrGameNotExists           = errors.New("game does not exist")
	ErrGameFinished            = errors.New("game already finished")
	ErrGameNotFinished         = errors.New("game still in progress")
	ErrUnknownStrategy         = errors.New("unknown strategy")
)

func ErrShipNotAligned(xStart, yStart, xEnd, yEnd int) error {
	return fmt.Errorf("%w: the ship needs to have either a horizontal or a vertical orientation, start: (%d,%d) end: (%d,%d)",
		ErrInvalidGeometry, xStart, yStart, xEnd, yEnd)
}

func ErrShipOutsideGrid(ship fmt.Stringer, size int) error {
	return fmt.Errorf("%w: %s does not fit in a %dx%d grid", ErrShipOutOfBounds, ship, size, size)
}

func ErrFleetComposition(details string) error {
	return fmt.Errorf("%w: %s", ErrInvalidFleetComposition, details)
}

func ErrShipsNear(a, b fmt.Stringer) error {
	return fmt.Errorf("%w: %s and %s are too close from each other", ErrShipsTooClose, a, b)
}

func ErrFleetPlacement(attempts int) error {
	return fmt.Errorf("%w: gave up after %d fleets", ErrPlacementUnsatisfiable, attempts)
}

func ErrCoordinatesMalformed(input string) error {
	return fmt.Errorf("%w: %q, expected a column A-J followed by a row 1-10 (e.g. B3)", ErrCoordinateParse, input)
}

func ErrNoCoordinatesLeft(player string) error {
	return fmt.Errorf("%w: %s has attacked every position", ErrNoCandidateCoordinates, player)
}

func ErrGameNotExist(gameUuid string) error {
	return fmt.Errorf("%w, uuid: %s", ErrGameNotExists, gameUuid)
}

func ErrGameIsFinished(gameUuid string) error {
	return fmt.Errorf("%w, uuid: %s", ErrGameFinished, gameUuid)
}

func ErrStrategyUnknown(kind string) error {
	return fmt.Errorf("%w: %q, expected one of manual, random, hunt", ErrUnknownStrategy, kind)
}

func ErrGameUnfinished(gameUuid string) error {
	return fmt.Errorf("%w, uuid: %s", ErrGameNotFinished, gameUuid)
}
