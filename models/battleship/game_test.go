package battleship_test

import (
	"context"
	"errors"
	"testing"
	"time"

	cerr "github.com/saeidalz13/battleship-bots/internal/error"
	mb "github.com/saeidalz13/battleship-bots/models/battleship"
)

// scriptedStrategy attacks the given coordinates in order.
type scriptedStrategy struct {
	targets  []mb.Coordinates
	observed []mb.AttackResult
}

func (s *scriptedStrategy) SelectAttackCoordinates(*mb.Board) (mb.Coordinates, error) {
	c := s.targets[0]
	s.targets = s.targets[1:]
	return c, nil
}

func (s *scriptedStrategy) ObserveAttackResult(result mb.AttackResult) {
	s.observed = append(s.observed, result)
}

func (s *scriptedStrategy) Kind() string { return "scripted" }

type recordingObserver struct {
	started int
	events  []mb.TurnEvent
}

func (o *recordingObserver) TurnStarted(*mb.Game, *mb.Player, *mb.Player) { o.started++ }
func (o *recordingObserver) TurnEnded(_ *mb.Game, e mb.TurnEvent)        { o.events = append(o.events, e) }

func TestGamePlayTurnHandsOverOnMiss(t *testing.T) {
	hostStrategy := &scriptedStrategy{targets: []mb.Coordinates{
		mb.NewCoordinates(5, 4),  // hit
		mb.NewCoordinates(1, 1),  // hit and sink
		mb.NewCoordinates(10, 9), // miss
	}}
	joinStrategy := &scriptedStrategy{targets: []mb.Coordinates{
		mb.NewCoordinates(6, 6), // miss
	}}

	host := mb.NewPlayer("host", referenceBoard(t), hostStrategy)
	join := mb.NewPlayer("join", referenceBoard(t), joinStrategy)
	game := mb.NewGame(host, join)

	if len(game.Uuid) != 6 {
		t.Fatalf("expected a 6 character game uuid\t got: %q", game.Uuid)
	}

	expectedAttackers := []*mb.Player{host, host, host, join}
	for i, expected := range expectedAttackers {
		event, err := game.PlayTurn()
		if err != nil {
			t.Fatal(err)
		}
		if event.Attacker != expected {
			t.Fatalf("turn %d expected attacker: %s\t got: %s", i+1, expected, event.Attacker)
		}
		if event.Turn != i+1 {
			t.Fatalf("expected turn: %d\t got: %d", i+1, event.Turn)
		}
	}

	if len(hostStrategy.observed) != 3 {
		t.Fatalf("expected 3 observed results\t got: %d", len(hostStrategy.observed))
	}
	sinking := hostStrategy.observed[1]
	if !sinking.Sunk || sinking.SunkShip == nil || sinking.SunkShip.Length() != 1 {
		t.Fatalf("expected the sunk single cell ship to be reported, got %+v", sinking)
	}
	if game.IsFinished() {
		t.Fatal("game finished too early")
	}
}

func TestGamePlayUntilWinner(t *testing.T) {
	session := mb.NewSession()
	rnd := mb.NewRandom(11)

	host, err := session.NewAutomaticPlayer("", mb.StrategyHunt, rnd)
	if err != nil {
		t.Fatal(err)
	}
	join, err := session.NewAutomaticPlayer("", mb.StrategyRandom, rnd)
	if err != nil {
		t.Fatal(err)
	}
	if host.Name != "player_1" || join.Name != "player_2" {
		t.Fatalf("unexpected default names: %s, %s", host, join)
	}

	game := mb.NewGame(host, join)
	obs := &recordingObserver{}

	ctx, cancel := context.WithTimeout(context.Background(), time.Second*10)
	defer cancel()

	winner, err := game.Play(ctx, obs)
	if err != nil {
		t.Fatal(err)
	}
	if winner == nil || winner != game.Winner() {
		t.Fatalf("unexpected winner: %v", winner)
	}

	loser := host
	if winner == host {
		loser = join
	}
	if !loser.HasLost() || winner.HasLost() {
		t.Fatal("winner and loser are inconsistent with the boards")
	}

	if obs.started != len(obs.events) || len(obs.events) != game.Turns() {
		t.Fatalf("expected %d observed turns\t got: %d started, %d ended", game.Turns(), obs.started, len(obs.events))
	}
	if last := obs.events[len(obs.events)-1]; !last.Finished || last.Attacker != winner {
		t.Fatalf("last event does not finish the game: %+v", last)
	}

	if _, err := game.PlayTurn(); !errors.Is(err, cerr.ErrGameFinished) {
		t.Fatalf("expected error: %v\t got: %v", cerr.ErrGameFinished, err)
	}
}

func TestGamePlayStopsOnCancelledContext(t *testing.T) {
	session := mb.NewSession()
	rnd := mb.NewRandom(2)
	host, _ := session.NewAutomaticPlayer("a", mb.StrategyHunt, rnd)
	join, _ := session.NewAutomaticPlayer("b", mb.StrategyHunt, rnd)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	if _, err := mb.NewGame(host, join).Play(ctx, nil); !errors.Is(err, context.Canceled) {
		t.Fatalf("expected error: %v\t got: %v", context.Canceled, err)
	}
}

func TestSessionPlayerName(t *testing.T) {
	session := mb.NewSession()

	tests := []struct {
		input    string
		expected string
	}{
		{"", "player_1"},
		{"alice", "alice"},
		{"  ", "player_3"},
	}
	for _, test := range tests {
		if got := session.PlayerName(test.input); got != test.expected {
			t.Fatalf("expected: %s\t got: %s", test.expected, got)
		}
	}

	if got := mb.NewSession().PlayerName(""); got != "player_1" {
		t.Fatalf("sessions share a counter, got: %s", got)
	}
}

func TestGameManager(t *testing.T) {
	bgm := mb.NewBattleshipGameManager()
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go bgm.ManageGameTermination(ctx)

	host := mb.NewPlayer("host", referenceBoard(t), mb.NewHuntStrategy())
	join := mb.NewPlayer("join", referenceBoard(t), mb.NewHuntStrategy())
	game := bgm.AddGame(host, join)

	found, err := bgm.GetGame(game.Uuid)
	if err != nil {
		t.Fatal(err)
	}
	if found != game {
		t.Fatal("GetGame returned another game")
	}

	bgm.EndGame(game.Uuid)

	deadline := time.Now().Add(time.Second * 2)
	for bgm.ActiveGames() != 0 {
		if time.Now().After(deadline) {
			t.Fatal("game was not terminated")
		}
		time.Sleep(time.Millisecond * 10)
	}

	if _, err := bgm.GetGame(game.Uuid); !errors.Is(err, cerr.ErrGameNotExists) {
		t.Fatalf("expected error: %v\t got: %v", cerr.ErrGameNotExists, err)
	}
}
