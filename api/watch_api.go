package api

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/gorilla/websocket"
	"github.com/saeidalz13/battleship-bots/db/sqlc"
	cerr "github.com/saeidalz13/battleship-bots/internal/error"
	mb "github.com/saeidalz13/battleship-bots/models/battleship"
	mc "github.com/saeidalz13/battleship-bots/models/connection"
)

// streamObserver sends one CodeTurn frame per resolved attack.
type streamObserver struct {
	conn   *websocket.Conn
	ctx    context.Context
	cancel context.CancelFunc
	delay  time.Duration
	err    error
}

func (o *streamObserver) TurnStarted(*mb.Game, *mb.Player, *mb.Player) {}

func (o *streamObserver) TurnEnded(_ *mb.Game, event mb.TurnEvent) {
	if o.err != nil {
		return
	}
	if err := writeJsonWithRetry(o.conn, mc.NewPayloadMessage(mc.CodeTurn, mc.NewRespTurn(event))); err != nil {
		o.err = err
		o.cancel()
		return
	}

	if o.delay == 0 || event.Finished {
		return
	}
	timer := time.NewTimer(o.delay)
	defer timer.Stop()
	select {
	case <-timer.C:
	case <-o.ctx.Done():
	}
}

func strategyQuery(r *http.Request, key, fallback string) string {
	kind := strings.TrimSpace(r.URL.Query().Get(key))
	if kind == "" {
		return fallback
	}
	return kind
}

// HandleWatch runs a bot against bot match and streams it to the spectator.
// The spectator only reads; the match ends early if they disconnect.
func (s *Server) HandleWatch(w http.ResponseWriter, r *http.Request) {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		slog.Error("could not open websocket connection", "err", err)
		return
	}
	defer conn.Close()

	remoteAddr := conn.RemoteAddr().String()
	slog.Info("a new spectator connected", "remote_addr", remoteAddr)

	// one source per match keeps a seeded match reproducible no matter
	// how many matches run at once
	rnd := mb.NewRandom(s.seed)
	players := make([]*mb.Player, 0, 2)
	for _, q := range []struct{ key, fallback string }{
		{URLQueryPlayerOneKeyword, mb.StrategyHunt},
		{URLQueryPlayerTwoKeyword, mb.StrategyRandom},
	} {
		player, err := s.Session.NewAutomaticPlayer("", strategyQuery(r, q.key, q.fallback), rnd)
		if err != nil {
			code := mc.CodeMatchAborted
			if errors.Is(err, cerr.ErrUnknownStrategy) {
				code = mc.CodeInvalidStrategy
			}
			_ = writeJsonWithRetry(conn, mc.NewErrorMessage(code, err, "pick one of random or hunt for p1 and p2"))
			closeConn(conn, websocket.ClosePolicyViolation, "invalid match")
			return
		}
		players = append(players, player)
	}

	game := s.GameManager.AddGame(players[0], players[1])
	defer s.GameManager.EndGame(game.Uuid)

	started := mc.RespMatchStarted{
		GameUuid: game.Uuid,
		Host:     mc.NewRespPlayer(game.HostPlayer),
		Join:     mc.NewRespPlayer(game.JoinPlayer),
	}
	if err := writeJsonWithRetry(conn, mc.NewPayloadMessage(mc.CodeMatchStarted, started)); err != nil {
		slog.Error("failed to start the stream", "game_uuid", game.Uuid, "err", err)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), maxTimeMatch)
	defer cancel()
	go readUntilClosed(conn, cancel)

	obs := &streamObserver{conn: conn, ctx: ctx, cancel: cancel, delay: s.turnDelay}
	winner, err := game.Play(ctx, obs)
	if obs.err != nil {
		slog.Info("stream interrupted", "game_uuid", game.Uuid, "turn", game.Turns(), "err", obs.err)
		return
	}
	if err != nil {
		slog.Warn("match aborted", "game_uuid", game.Uuid, "turn", game.Turns(), "err", err)
		_ = writeJsonWithRetry(conn, mc.NewErrorMessage(mc.CodeMatchAborted, err, "the match could not be completed"))
		closeConn(conn, websocket.CloseGoingAway, "match aborted")
		return
	}

	ended := mc.RespMatchEnded{GameUuid: game.Uuid, Winner: winner.Name, Turns: game.Turns()}
	if err := writeJsonWithRetry(conn, mc.NewPayloadMessage(mc.CodeMatchEnded, ended)); err != nil {
		slog.Info("failed to send the match result", "game_uuid", game.Uuid, "err", err)
	}
	slog.Info("match finished",
		"game_uuid", game.Uuid,
		"winner", winner.Name,
		"strategy", winner.Strategy.Kind(),
		"turns", game.Turns(),
	)

	s.recordMatch(game, conn.LocalAddr().String())
	closeConn(conn, websocket.CloseNormalClosure, "match ended")
}

func (s *Server) recordMatch(game *mb.Game, localAddr string) {
	if s.analytics == nil {
		return
	}

	serverIpNet, err := s.getServerIpNet(localAddr)
	if err != nil {
		slog.Warn("could not resolve server address", "local_addr", localAddr, "err", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), sqlc.QuerierCtxTimeout)
	defer cancel()

	id, err := s.analytics.RecordMatch(ctx, game, serverIpNet)
	if err != nil {
		slog.Error("failed to record match", "game_uuid", game.Uuid, "err", err)
		return
	}
	slog.Info("match recorded", "game_uuid", game.Uuid, "id", id)
}
