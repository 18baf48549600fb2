package battleship

import (
	"context"
	"sync"

	cerr "github.com/saeidalz13/battleship-bots/internal/error"
)

type GameManager interface {
	AddGame(host, join *Player) *Game
	GetGame(gameUuid string) (*Game, error)
	EndGame(gameUuid string)
	ActiveGames() int
}

// BattleshipGameManager keeps track of the games currently being played.
// Finished games are removed by ManageGameTermination.
type BattleshipGameManager struct {
	games         map[string]*Game
	endGameSignal chan string
	mu            sync.RWMutex
}

var _ GameManager = (*BattleshipGameManager)(nil)

func NewBattleshipGameManager() *BattleshipGameManager {
	return &BattleshipGameManager{
		games:         make(map[string]*Game, 10),
		endGameSignal: make(chan string),
	}
}

func (bgm *BattleshipGameManager) AddGame(host, join *Player) *Game {
	game := NewGame(host, join)

	bgm.mu.Lock()
	bgm.games[game.Uuid] = game
	bgm.mu.Unlock()
	return game
}

func (bgm *BattleshipGameManager) GetGame(gameUuid string) (*Game, error) {
	bgm.mu.RLock()
	game, prs := bgm.games[gameUuid]
	bgm.mu.RUnlock()
	if !prs {
		return nil, cerr.ErrGameNotExist(gameUuid)
	}

	return game, nil
}

func (bgm *BattleshipGameManager) ActiveGames() int {
	bgm.mu.RLock()
	defer bgm.mu.RUnlock()
	return len(bgm.games)
}

// EndGame hands the game to ManageGameTermination, or deletes it right
// away when no terminator is waiting.
func (bgm *BattleshipGameManager) EndGame(gameUuid string) {
	select {
	case bgm.endGameSignal <- gameUuid:
	default:
		bgm.mu.Lock()
		delete(bgm.games, gameUuid)
		bgm.mu.Unlock()
	}
}

// ManageGameTermination deletes ended games until ctx is done.
func (bgm *BattleshipGameManager) ManageGameTermination(ctx context.Context) {
	for {
		select {
		case <-ctx.Done():
			return
		case gameUuid := <-bgm.endGameSignal:
			bgm.mu.Lock()
			delete(bgm.games, gameUuid)
			bgm.mu.Unlock()
		}
	}
}
