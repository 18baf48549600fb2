package sqlc

import (
	"context"
	"encoding/json"
	"net"

	cerr "github.com/saeidalz13/battleship-bots/internal/error"
	mb "github.com/saeidalz13/battleship-bots/models/battleship"
	"github.com/sqlc-dev/pqtype"
)

// MatchSummary is stored as jsonb next to every match result.
type MatchSummary struct {
	GameUuid string               `json:"game_uuid"`
	Turns    int                  `json:"turns"`
	Players  []MatchSummaryPlayer `json:"players"`
}

type MatchSummaryPlayer struct {
	Name        string   `json:"name"`
	Strategy    string   `json:"strategy"`
	SunkenShips int      `json:"sunken_ships"`
	Shots       int      `json:"shots_received"`
	Grid        []string `json:"grid"`
}

type AnalyticsManager struct {
	queries Querier
}

func NewAnalyticsManager(queries Querier) *AnalyticsManager {
	return &AnalyticsManager{queries: queries}
}

// RecordMatch stores the outcome of a finished game and returns its row id.
// A nil serverIpNet is stored as NULL.
func (a *AnalyticsManager) RecordMatch(ctx context.Context, game *mb.Game, serverIpNet *net.IPNet) (int64, error) {
	if !game.IsFinished() {
		return 0, cerr.ErrGameUnfinished(game.Uuid)
	}

	var serverIp pqtype.Inet
	if serverIpNet != nil {
		serverIp = pqtype.Inet{IPNet: *serverIpNet, Valid: true}
	}

	winner := game.Winner()
	loser := game.HostPlayer
	if winner == game.HostPlayer {
		loser = game.JoinPlayer
	}

	summary := MatchSummary{GameUuid: game.Uuid, Turns: game.Turns()}
	for _, p := range game.GetPlayers() {
		summary.Players = append(summary.Players, MatchSummaryPlayer{
			Name:        p.Name,
			Strategy:    p.Strategy.Kind(),
			SunkenShips: p.Board.SunkShipsCount(),
			Shots:       len(p.Board.AttackedCoordinates()),
			Grid:        p.Board.GridWithShips().Rows(),
		})
	}
	raw, err := json.Marshal(summary)
	if err != nil {
		return 0, err
	}

	return a.queries.CreateMatchResult(ctx, CreateMatchResultParams{
		GameUuid:       game.Uuid,
		ServerIp:       serverIp,
		WinnerName:     winner.Name,
		WinnerStrategy: winner.Strategy.Kind(),
		LoserName:      loser.Name,
		LoserStrategy:  loser.Strategy.Kind(),
		Turns:          int32(game.Turns()),
		Summary:        pqtype.NullRawMessage{RawMessage: raw, Valid: true},
	})
}

func (a *AnalyticsManager) GetMatchesPlayedCount(ctx context.Context) (int64, error) {
	return a.queries.CountMatchesPlayed(ctx)
}

func (a *AnalyticsManager) GetWinsByStrategy(ctx context.Context, strategy string) (int64, error) {
	return a.queries.CountWinsByStrategy(ctx, strategy)
}

func (a *AnalyticsManager) GetRecentMatches(ctx context.Context, limit int32) ([]MatchResult, error) {
	return a.queries.ListRecentMatchResults(ctx, limit)
}
