package battleship

import (
	"context"
	"sync"

	"github.com/google/uuid"
	cerr "github.com/saeidalz13/battleship-bots/internal/error"
)

// TurnEvent describes one resolved attack.
type TurnEvent struct {
	GameUuid string
	Turn     int
	Attacker *Player
	Defender *Player
	Result   AttackResult

	// Finished is true when this attack sank the defender's last ship.
	Finished bool
}

// Observer follows a game turn by turn.
type Observer interface {
	TurnStarted(g *Game, attacker, defender *Player)
	TurnEnded(g *Game, event TurnEvent)
}

// Game state written by PlayTurn is guarded by mu so that IsFinished,
// Winner and Turns can be read while another goroutine plays.
type Game struct {
	mu         sync.RWMutex
	isFinished bool
	Uuid       string
	HostPlayer *Player
	JoinPlayer *Player
	hostTurn   bool
	turns      int
	winner     *Player
}

// NewGame starts a game where host attacks first.
func NewGame(host, join *Player) *Game {
	return &Game{
		Uuid:       uuid.NewString()[:6],
		HostPlayer: host,
		JoinPlayer: join,
		hostTurn:   true,
	}
}

// returns a slice of players in the order of host then join.
func (g *Game) GetPlayers() []*Player {
	return []*Player{g.HostPlayer, g.JoinPlayer}
}

// CurrentPlayers returns whose turn it is and whom they attack.
func (g *Game) CurrentPlayers() (attacker, defender *Player) {
	if g.hostTurn {
		return g.HostPlayer, g.JoinPlayer
	}
	return g.JoinPlayer, g.HostPlayer
}

func (g *Game) IsFinished() bool {
	g.mu.RLock()
	defer g.mu.RUnlock()
	return g.isFinished
}

func (g *Game) Winner() *Player {
	g.mu.RLock()
	defer g.mu.RUnlock()
	return g.winner
}

func (g *Game) Turns() int {
	g.mu.RLock()
	defer g.mu.RUnlock()
	return g.turns
}

// PlayTurn resolves a single attack. A hit, sinking or not, lets the
// attacker play again; a miss hands the turn over.
func (g *Game) PlayTurn() (TurnEvent, error) {
	if g.IsFinished() {
		return TurnEvent{}, cerr.ErrGameIsFinished(g.Uuid)
	}

	attacker, defender := g.CurrentPlayers()
	result, err := attacker.Attack(defender)
	if err != nil {
		return TurnEvent{}, err
	}

	g.mu.Lock()
	defer g.mu.Unlock()

	g.turns++
	event := TurnEvent{
		GameUuid: g.Uuid,
		Turn:     g.turns,
		Attacker: attacker,
		Defender: defender,
		Result:   result,
	}

	if defender.HasLost() {
		g.isFinished = true
		g.winner = attacker
		event.Finished = true
		return event, nil
	}

	if !result.Hit {
		g.hostTurn = !g.hostTurn
	}
	return event, nil
}

// Play runs turns until a player has lost or ctx is done. obs may be nil.
func (g *Game) Play(ctx context.Context, obs Observer) (*Player, error) {
	for !g.IsFinished() {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		attacker, defender := g.CurrentPlayers()
		if obs != nil {
			obs.TurnStarted(g, attacker, defender)
		}

		event, err := g.PlayTurn()
		if err != nil {
			return nil, err
		}
		if obs != nil {
			obs.TurnEnded(g, event)
		}
	}
	return g.Winner(), nil
}
