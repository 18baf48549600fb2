package battleship

import (
	"errors"
	"fmt"
	"io"

	cerr "github.com/saeidalz13/battleship-bots/internal/error"
)

const ManualPrompt = "coordinates target = "

// LineReader supplies the raw text a human typed after prompt.
type LineReader interface {
	ReadLine(prompt string) (string, error)
}

// ManualStrategy asks a human for every attack. Malformed input is
// reported and asked for again, without limit; any other read error
// (such as io.EOF) ends the selection.
type ManualStrategy struct {
	reader LineReader
	out    io.Writer
}

var _ Strategy = (*ManualStrategy)(nil)

func NewManualStrategy(reader LineReader, out io.Writer) *ManualStrategy {
	return &ManualStrategy{reader: reader, out: out}
}

func (s *ManualStrategy) Kind() string { return StrategyManual }

func (s *ManualStrategy) SelectAttackCoordinates(_ *Board) (Coordinates, error) {
	for {
		line, err := s.reader.ReadLine(ManualPrompt)
		if err != nil {
			return Coordinates{}, err
		}

		c, err := ParseCoordinates(line)
		if err != nil {
			if errors.Is(err, cerr.ErrCoordinateParse) {
				fmt.Fprintln(s.out, err)
				continue
			}
			return Coordinates{}, err
		}
		return c, nil
	}
}

// ObserveAttackResult is a no-op: the human reads the board.
func (s *ManualStrategy) ObserveAttackResult(AttackResult) {}
