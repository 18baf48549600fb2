package api

import (
	"context"
	"encoding/json"
	"errors"
	"net"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"
	"github.com/saeidalz13/battleship-bots/db/sqlc"
	mb "github.com/saeidalz13/battleship-bots/models/battleship"
	mc "github.com/saeidalz13/battleship-bots/models/connection"
)

var dialer = websocket.Dialer{
	HandshakeTimeout: 5 * time.Second,
}

type recordedMatch struct {
	game        *mb.Game
	serverIpNet *net.IPNet
}

type fakeAnalytics struct {
	recorded chan recordedMatch
	wins     map[string]int64
	matches  []sqlc.MatchResult
	limit    int32
	err      error
}

func (f *fakeAnalytics) RecordMatch(_ context.Context, game *mb.Game, serverIpNet *net.IPNet) (int64, error) {
	f.recorded <- recordedMatch{game: game, serverIpNet: serverIpNet}
	return 1, nil
}

func (f *fakeAnalytics) GetMatchesPlayedCount(context.Context) (int64, error) {
	return int64(len(f.matches)), f.err
}

func (f *fakeAnalytics) GetWinsByStrategy(_ context.Context, strategy string) (int64, error) {
	return f.wins[strategy], f.err
}

func (f *fakeAnalytics) GetRecentMatches(_ context.Context, limit int32) ([]sqlc.MatchResult, error) {
	f.limit = limit
	return f.matches, f.err
}

func watchUrl(srv *httptest.Server, query string) string {
	return "ws" + strings.TrimPrefix(srv.URL, "http") + "/battleship/watch" + query
}

func readFrame(t *testing.T, conn *websocket.Conn) mc.Message[json.RawMessage] {
	t.Helper()

	_ = conn.SetReadDeadline(time.Now().Add(10 * time.Second))
	var msg mc.Message[json.RawMessage]
	if err := conn.ReadJSON(&msg); err != nil {
		t.Fatal(err)
	}
	return msg
}

func TestWatchStreamsFullMatch(t *testing.T) {
	recorder := &fakeAnalytics{recorded: make(chan recordedMatch, 1)}
	server := NewServer(WithSeed(42), WithAnalytics(recorder))
	srv := httptest.NewServer(server.Handler())
	defer srv.Close()

	conn, _, err := dialer.Dial(watchUrl(srv, "?p1=hunt&p2=random"), nil)
	if err != nil {
		t.Fatal(err)
	}
	defer conn.Close()

	first := readFrame(t, conn)
	if first.Code != mc.CodeMatchStarted {
		t.Fatalf("expected code: %d\t got: %d", mc.CodeMatchStarted, first.Code)
	}
	var started mc.RespMatchStarted
	if err := json.Unmarshal(first.Payload, &started); err != nil {
		t.Fatal(err)
	}
	if started.Host.Strategy != mb.StrategyHunt || started.Join.Strategy != mb.StrategyRandom {
		t.Fatalf("unexpected players: %+v", started)
	}
	if started.Host.Name != "player_1" || started.Join.Name != "player_2" {
		t.Fatalf("unexpected default names: %+v", started)
	}

	turns := 0
	lastAttacker := ""
	for {
		msg := readFrame(t, conn)
		if msg.Code == mc.CodeMatchEnded {
			var ended mc.RespMatchEnded
			if err := json.Unmarshal(msg.Payload, &ended); err != nil {
				t.Fatal(err)
			}
			if ended.Turns != turns {
				t.Fatalf("expected turns: %d\t got: %d", turns, ended.Turns)
			}
			if ended.Winner != lastAttacker {
				t.Fatalf("expected winner: %s\t got: %s", lastAttacker, ended.Winner)
			}
			if ended.GameUuid != started.GameUuid {
				t.Fatalf("expected game uuid: %s\t got: %s", started.GameUuid, ended.GameUuid)
			}
			break
		}

		if msg.Code != mc.CodeTurn {
			t.Fatalf("expected code: %d\t got: %d", mc.CodeTurn, msg.Code)
		}
		var turn mc.RespTurn
		if err := json.Unmarshal(msg.Payload, &turn); err != nil {
			t.Fatal(err)
		}
		turns++
		if turn.Turn != turns {
			t.Fatalf("expected turn: %d\t got: %d", turns, turn.Turn)
		}
		if len(turn.DefenderGrid) != mb.GridSize {
			t.Fatalf("expected %d grid rows\t got: %d", mb.GridSize, len(turn.DefenderGrid))
		}
		lastAttacker = turn.Attacker
		if turns > 2*mb.GridSize*mb.GridSize {
			t.Fatal("match never ended")
		}
	}

	select {
	case rec := <-recorder.recorded:
		if !rec.game.IsFinished() || rec.game.Uuid != started.GameUuid {
			t.Fatalf("unexpected recorded game: %s", rec.game.Uuid)
		}
		if rec.serverIpNet == nil || !rec.serverIpNet.IP.Equal(net.ParseIP("127.0.0.1")) {
			t.Fatalf("unexpected server address: %v", rec.serverIpNet)
		}
	case <-time.After(5 * time.Second):
		t.Fatal("match was never recorded")
	}
}

func TestWatchRejectsUnknownStrategy(t *testing.T) {
	server := NewServer()
	srv := httptest.NewServer(server.Handler())
	defer srv.Close()

	tests := []struct {
		name  string
		query string
	}{
		{"unknown", "?p1=sniper"},
		{"manual needs a human", "?p1=hunt&p2=manual"},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			conn, _, err := dialer.Dial(watchUrl(srv, test.query), nil)
			if err != nil {
				t.Fatal(err)
			}
			defer conn.Close()

			msg := readFrame(t, conn)
			if msg.Code != mc.CodeInvalidStrategy || !msg.HasError() {
				t.Fatalf("expected an invalid strategy frame, got: %+v", msg)
			}
			if server.GameManager.ActiveGames() != 0 {
				t.Fatalf("expected no game to be registered\t got: %d", server.GameManager.ActiveGames())
			}
		})
	}
}

func TestHandleHealth(t *testing.T) {
	server := NewServer()
	rec := httptest.NewRecorder()
	server.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/battleship/health", nil))

	if rec.Code != http.StatusOK {
		t.Fatalf("expected status: %d\t got: %d", http.StatusOK, rec.Code)
	}
}

func TestServerOptions(t *testing.T) {
	tests := []struct {
		name    string
		opt     Option
		wantErr bool
	}{
		{"valid port", WithPort("7171"), false},
		{"port not a number", WithPort("http"), true},
		{"port out of range", WithPort("70000"), true},
		{"dev stage", WithStage(StageDev), false},
		{"unknown stage", WithStage("staging"), true},
		{"turn delay", WithTurnDelay(time.Millisecond), false},
		{"negative turn delay", WithTurnDelay(-time.Second), true},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			err := test.opt(&Server{})
			if (err != nil) != test.wantErr {
				t.Fatalf("expected error: %v\t got: %v", test.wantErr, err)
			}
		})
	}
}

func TestNewServerDefaults(t *testing.T) {
	server := NewServer()
	if server.port != defaultPort || server.Stage() != StageDev {
		t.Fatalf("unexpected defaults, port: %s stage: %s", server.port, server.Stage())
	}
	if server.GameManager == nil || server.Session == nil {
		t.Fatal("expected a game manager and a session")
	}
}

func TestGetServerIpNet(t *testing.T) {
	server := NewServer()

	ipNet, err := server.getServerIpNet("127.0.0.1:8000")
	if err != nil {
		t.Fatal(err)
	}
	if ones, bits := ipNet.Mask.Size(); ones != 32 || bits != 32 {
		t.Fatalf("expected a /32 mask\t got: /%d of %d", ones, bits)
	}

	if _, err := server.getServerIpNet("not an address"); err == nil {
		t.Fatal("expected an error for a malformed address")
	}
}

func TestHandleStats(t *testing.T) {
	analytics := &fakeAnalytics{
		wins: map[string]int64{mb.StrategyHunt: 1},
		matches: []sqlc.MatchResult{
			{GameUuid: "a1a1a1", WinnerName: "player_1", WinnerStrategy: mb.StrategyHunt, LoserName: "player_2", LoserStrategy: mb.StrategyRandom, Turns: 90},
		},
	}

	tests := []struct {
		name           string
		server         *Server
		query          string
		expectedStatus int
		expectedPlayed int64
		expectedLimit  int32
	}{
		{"without database", NewServer(), "", http.StatusOK, 0, 0},
		{"default limit", NewServer(WithAnalytics(analytics)), "", http.StatusOK, 1, defaultRecentMatches},
		{"limit capped", NewServer(WithAnalytics(analytics)), "?limit=5000", http.StatusOK, 1, maxRecentMatches},
		{"invalid limit", NewServer(WithAnalytics(analytics)), "?limit=-1", http.StatusBadRequest, 0, 0},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			analytics.limit = 0
			rec := httptest.NewRecorder()
			test.server.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/battleship/stats"+test.query, nil))

			if rec.Code != test.expectedStatus {
				t.Fatalf("expected status: %d\t got: %d", test.expectedStatus, rec.Code)
			}
			if rec.Code != http.StatusOK {
				return
			}

			var stats mc.RespStats
			if err := json.NewDecoder(rec.Body).Decode(&stats); err != nil {
				t.Fatal(err)
			}
			if stats.MatchesPlayed != test.expectedPlayed {
				t.Fatalf("expected matches played: %d\t got: %d", test.expectedPlayed, stats.MatchesPlayed)
			}
			if analytics.limit != test.expectedLimit {
				t.Fatalf("expected limit: %d\t got: %d", test.expectedLimit, analytics.limit)
			}
			if test.expectedPlayed > 0 {
				if stats.WinsByStrategy[mb.StrategyHunt] != 1 || stats.WinsByStrategy[mb.StrategyRandom] != 0 {
					t.Fatalf("unexpected wins: %v", stats.WinsByStrategy)
				}
				if len(stats.RecentMatches) != 1 || stats.RecentMatches[0].GameUuid != "a1a1a1" {
					t.Fatalf("unexpected recent matches: %+v", stats.RecentMatches)
				}
			}
		})
	}
}

func TestHandleStatsDatabaseFailure(t *testing.T) {
	server := NewServer(WithAnalytics(&fakeAnalytics{err: errors.New("connection refused")}))
	rec := httptest.NewRecorder()
	server.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/battleship/stats", nil))

	if rec.Code != http.StatusInternalServerError {
		t.Fatalf("expected status: %d\t got: %d", http.StatusInternalServerError, rec.Code)
	}
}

func TestHandleGame(t *testing.T) {
	server := NewServer()
	rnd := mb.NewRandom(11)
	host, err := server.Session.NewAutomaticPlayer("", mb.StrategyHunt, rnd)
	if err != nil {
		t.Fatal(err)
	}
	join, err := server.Session.NewAutomaticPlayer("", mb.StrategyRandom, rnd)
	if err != nil {
		t.Fatal(err)
	}
	game := server.GameManager.AddGame(host, join)
	if _, err := game.PlayTurn(); err != nil {
		t.Fatal(err)
	}

	tests := []struct {
		name           string
		gameUuid       string
		expectedStatus int
	}{
		{"running game", game.Uuid, http.StatusOK},
		{"unknown game", "zzzzzz", http.StatusNotFound},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			rec := httptest.NewRecorder()
			server.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/battleship/games/"+test.gameUuid, nil))

			if rec.Code != test.expectedStatus {
				t.Fatalf("expected status: %d\t got: %d", test.expectedStatus, rec.Code)
			}
			if rec.Code != http.StatusOK {
				return
			}

			var resp mc.RespGame
			if err := json.NewDecoder(rec.Body).Decode(&resp); err != nil {
				t.Fatal(err)
			}
			if resp.GameUuid != game.Uuid || resp.Turns != 1 || resp.Finished {
				t.Fatalf("unexpected game: %+v", resp)
			}
			if resp.Host.Strategy != mb.StrategyHunt || resp.Join.Strategy != mb.StrategyRandom {
				t.Fatalf("unexpected players: %+v", resp)
			}
		})
	}

	server.GameManager.EndGame(game.Uuid)
	if _, err := server.GameManager.GetGame(game.Uuid); err == nil {
		t.Fatal("expected the ended game to be gone")
	}
}
