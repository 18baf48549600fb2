package main

import (
	"context"
	"database/sql"
	"errors"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/saeidalz13/battleship-bots/api"
	"github.com/saeidalz13/battleship-bots/db"
	"github.com/saeidalz13/battleship-bots/db/sqlc"
	"github.com/saeidalz13/battleship-bots/internal/config"
	"github.com/saeidalz13/battleship-bots/internal/console"
	mb "github.com/saeidalz13/battleship-bots/models/battleship"
)

func main() {
	if err := config.LoadEnvFile(".env"); err != nil {
		panic(err)
	}
	cfg, err := config.Load()
	if err != nil {
		panic(err)
	}

	// the console belongs to the human player, so logs go to stderr there
	var handler slog.Handler = slog.NewTextHandler(os.Stderr, nil)
	if cfg.Stage == api.StageProd {
		handler = slog.NewJSONHandler(os.Stderr, nil)
	}
	slog.SetDefault(slog.New(handler))

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	var analytics *sqlc.AnalyticsManager
	if cfg.DatabaseUrl != "" {
		conn := db.MustConnectToDb(cfg.DatabaseUrl)
		defer conn.Close()
		analytics = newAnalytics(conn)
	}

	switch cfg.Mode {
	case config.ModeSpectate:
		opts := []api.Option{
			api.WithPort(cfg.Port),
			api.WithStage(cfg.Stage),
			api.WithSeed(cfg.Seed),
			api.WithTurnDelay(cfg.TurnDelay),
		}
		if analytics != nil {
			opts = append(opts, api.WithAnalytics(analytics))
		}

		server := api.NewServer(opts...)
		if err := server.Run(ctx); err != nil {
			slog.Error("server stopped", "err", err)
			os.Exit(1)
		}

	case config.ModeConsole:
		if err := playInConsole(ctx, cfg, analytics); err != nil {
			slog.Error("game stopped", "err", err)
			os.Exit(1)
		}
	}
}

func newAnalytics(conn *sql.DB) *sqlc.AnalyticsManager {
	return sqlc.NewDbManager(sqlc.New(conn)).Analytics
}

func playInConsole(ctx context.Context, cfg config.Config, analytics *sqlc.AnalyticsManager) error {
	rnd := mb.NewRandom(cfg.Seed)
	session := mb.NewSession()
	reader := console.NewLineReader(os.Stdin, os.Stdout)

	players := make([]*mb.Player, 0, 2)
	for _, p := range []struct{ name, kind string }{
		{cfg.PlayerOneName, cfg.PlayerOne},
		{cfg.PlayerTwoName, cfg.PlayerTwo},
	} {
		player, err := newConsolePlayer(session, p.name, p.kind, rnd, reader)
		if err != nil {
			return err
		}
		players = append(players, player)
	}

	game := mb.NewGame(players[0], players[1])
	slog.Info("game started", "game_uuid", game.Uuid, "host", game.HostPlayer.Name, "join", game.JoinPlayer.Name)

	if _, err := game.Play(ctx, console.NewPrinter(os.Stdout)); err != nil {
		if errors.Is(err, io.EOF) {
			slog.Info("input closed, leaving the game", "game_uuid", game.Uuid)
			return nil
		}
		return err
	}

	if analytics != nil {
		rctx, cancel := context.WithTimeout(ctx, sqlc.QuerierCtxTimeout)
		defer cancel()
		if _, err := analytics.RecordMatch(rctx, game, nil); err != nil {
			slog.Error("failed to record match", "game_uuid", game.Uuid, "err", err)
		}
	}
	return nil
}

func newConsolePlayer(session *mb.Session, name, kind string, rnd mb.Random, reader *console.LineReader) (*mb.Player, error) {
	if kind != mb.StrategyManual {
		return session.NewAutomaticPlayer(name, kind, rnd)
	}

	board, err := mb.NewAutomaticBoard(rnd)
	if err != nil {
		return nil, err
	}
	return mb.NewPlayer(session.PlayerName(name), board, mb.NewManualStrategy(reader, os.Stdout)), nil
}
