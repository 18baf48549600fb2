package battleship

import (
	"fmt"
	"strings"
	"sync"
)

type Player struct {
	Name     string
	Board    *Board
	Strategy Strategy
}

func NewPlayer(name string, board *Board, strategy Strategy) *Player {
	return &Player{
		Name:     name,
		Board:    board,
		Strategy: strategy,
	}
}

func (p *Player) String() string {
	return p.Name
}

// Attack lets the strategy pick coordinates, resolves them on the
// opponent's board and reports the outcome back to the strategy.
func (p *Player) Attack(opponent *Player) (AttackResult, error) {
	c, err := p.Strategy.SelectAttackCoordinates(opponent.Board)
	if err != nil {
		return AttackResult{}, err
	}

	hit, sunk := opponent.IsAttackedAt(c)
	result := AttackResult{Coordinates: c, Hit: hit, Sunk: sunk}
	if sunk {
		result.SunkShip = opponent.Board.ShipAt(c)
	}

	p.Strategy.ObserveAttackResult(result)
	return result, nil
}

func (p *Player) IsAttackedAt(c Coordinates) (hit, sunk bool) {
	return p.Board.Attack(c)
}

func (p *Player) HasLost() bool {
	return p.Board.AllShipsSunk()
}

// Session hands out default player names. It replaces a process-wide
// counter: each session numbers its own players from 1.
type Session struct {
	mu          sync.Mutex
	playerIndex int
}

func NewSession() *Session {
	return &Session{}
}

// PlayerName returns name, or "player_N" when name is blank. The
// counter advances on every call, as every call creates a player.
func (s *Session) PlayerName(name string) string {
	s.mu.Lock()
	s.playerIndex++
	index := s.playerIndex
	s.mu.Unlock()

	if strings.TrimSpace(name) == "" {
		return fmt.Sprintf("player_%d", index)
	}
	return name
}

// NewAutomaticPlayer creates a player with a random fleet and the named
// automated strategy.
func (s *Session) NewAutomaticPlayer(name, kind string, rnd Random) (*Player, error) {
	strategy, err := NewAutomaticStrategy(kind, rnd)
	if err != nil {
		return nil, err
	}
	board, err := NewAutomaticBoard(rnd)
	if err != nil {
		return nil, err
	}
	return NewPlayer(s.PlayerName(name), board, strategy), nil
}
