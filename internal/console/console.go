// Package console plays a game in a terminal: it formats boards, prompts
// the human player and narrates each turn.
package console

import (
	"bufio"
	"fmt"
	"io"
	"strings"

	mb "github.com/saeidalz13/battleship-bots/models/battleship"
)

const cellWidth = 6

// FormatGrid lays the grid out with column letters on top and row
// numbers on the left:
//
//	      A     B  ...
//	   -------------...
//	 1 |  $  |     |...
func FormatGrid(grid mb.Grid) string {
	letters := make([]string, 0, mb.GridSize)
	for x := 1; x <= mb.GridSize; x++ {
		letters = append(letters, mb.ColumnLetter(x))
	}

	dashes := "   " + strings.Repeat("-", cellWidth*mb.GridSize) + "-\n"

	var sb strings.Builder
	sb.WriteString(strings.Repeat(" ", cellWidth) + strings.Join(letters, strings.Repeat(" ", cellWidth-1)) + " \n")
	sb.WriteString(dashes)
	for i, row := range grid {
		cells := make([]string, 0, len(row))
		for _, cell := range row {
			cells = append(cells, string(cell))
		}
		fmt.Fprintf(&sb, "%2d |  %s  |\n", i+1, strings.Join(cells, "  |  "))
		sb.WriteString(dashes)
	}
	return sb.String()
}

// LineReader prompts on out and reads one line at a time from in.
type LineReader struct {
	scanner *bufio.Scanner
	out     io.Writer
}

var _ mb.LineReader = (*LineReader)(nil)

func NewLineReader(in io.Reader, out io.Writer) *LineReader {
	return &LineReader{scanner: bufio.NewScanner(in), out: out}
}

func (r *LineReader) ReadLine(prompt string) (string, error) {
	fmt.Fprint(r.out, prompt)
	if !r.scanner.Scan() {
		if err := r.scanner.Err(); err != nil {
			return "", err
		}
		return "", io.EOF
	}
	return r.scanner.Text(), nil
}

// Printer narrates a game.
type Printer struct {
	out io.Writer
}

var _ mb.Observer = (*Printer)(nil)

func NewPrinter(out io.Writer) *Printer {
	return &Printer{out: out}
}

func (p *Printer) TurnStarted(_ *mb.Game, attacker, defender *mb.Player) {
	fmt.Fprintf(p.out, "Here is the current state of %s's board before %s's attack:\n\n", defender, attacker)
	fmt.Fprint(p.out, FormatGrid(defender.Board.GridWithoutShips()))
	if attacker.Strategy.Kind() == mb.StrategyManual {
		fmt.Fprintf(p.out, "It is now %s's turn.\n", attacker)
	}
}

func (p *Printer) TurnEnded(g *mb.Game, event mb.TurnEvent) {
	fmt.Fprintf(p.out, "%s attacks %s at position %s\n",
		event.Attacker, event.Defender, mb.FormatCoordinates(event.Result.Coordinates))

	switch {
	case event.Result.Sunk:
		fmt.Fprintf(p.out, "\nA ship of %s HAS SUNK. %s can play another time.\n", event.Defender, event.Attacker)
	case event.Result.Hit:
		fmt.Fprintf(p.out, "\nA ship of %s HAS BEEN HIT. %s can play another time.\n", event.Defender, event.Attacker)
	default:
		fmt.Fprintln(p.out, "\nMISSED")
	}

	if event.Finished {
		fmt.Fprintf(p.out, "\n%s wins after %d turns. Final boards:\n\n", event.Attacker, g.Turns())
		for _, player := range g.GetPlayers() {
			fmt.Fprintf(p.out, "%s:\n%s\n", player, FormatGrid(player.Board.GridWithShips()))
		}
	}
}
