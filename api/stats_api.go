package api

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/saeidalz13/battleship-bots/db/sqlc"
	cerr "github.com/saeidalz13/battleship-bots/internal/error"
	mb "github.com/saeidalz13/battleship-bots/models/battleship"
	mc "github.com/saeidalz13/battleship-bots/models/connection"
)

const (
	defaultRecentMatches int32 = 10
	maxRecentMatches     int32 = 100

	URLQueryLimitKeyword string = "limit"
)

func writeJson(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		slog.Warn("failed to write response", "err", err)
	}
}

func recentMatchesLimit(r *http.Request) (int32, error) {
	raw := r.URL.Query().Get(URLQueryLimitKeyword)
	if raw == "" {
		return defaultRecentMatches, nil
	}
	limit, err := strconv.Atoi(raw)
	if err != nil || limit < 1 {
		return 0, errors.New("limit must be a positive number")
	}
	return int32(min(limit, int(maxRecentMatches))), nil
}

// HandleStats reports the games being streamed and, with a database,
// the recorded match history.
func (s *Server) HandleStats(w http.ResponseWriter, r *http.Request) {
	limit, err := recentMatchesLimit(r)
	if err != nil {
		writeJson(w, http.StatusBadRequest, mc.NewRespErr(err.Error(), ""))
		return
	}

	stats := mc.RespStats{ActiveGames: s.GameManager.ActiveGames()}
	if s.analytics == nil {
		writeJson(w, http.StatusOK, stats)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), sqlc.QuerierCtxTimeout)
	defer cancel()

	if stats.MatchesPlayed, err = s.analytics.GetMatchesPlayedCount(ctx); err != nil {
		s.statsFailed(w, err)
		return
	}

	stats.WinsByStrategy = make(map[string]int64, 2)
	for _, kind := range []string{mb.StrategyHunt, mb.StrategyRandom} {
		wins, err := s.analytics.GetWinsByStrategy(ctx, kind)
		if err != nil {
			s.statsFailed(w, err)
			return
		}
		stats.WinsByStrategy[kind] = wins
	}

	matches, err := s.analytics.GetRecentMatches(ctx, limit)
	if err != nil {
		s.statsFailed(w, err)
		return
	}
	for _, m := range matches {
		stats.RecentMatches = append(stats.RecentMatches, mc.RespMatchResult{
			GameUuid:       m.GameUuid,
			WinnerName:     m.WinnerName,
			WinnerStrategy: m.WinnerStrategy,
			LoserName:      m.LoserName,
			LoserStrategy:  m.LoserStrategy,
			Turns:          m.Turns,
			CreatedAt:      m.CreatedAt,
		})
	}

	writeJson(w, http.StatusOK, stats)
}

func (s *Server) statsFailed(w http.ResponseWriter, err error) {
	slog.Error("failed to query match analytics", "err", err)
	writeJson(w, http.StatusInternalServerError, mc.NewRespErr(err.Error(), "could not load match history"))
}

// HandleGame reports a game that is currently being streamed.
func (s *Server) HandleGame(w http.ResponseWriter, r *http.Request) {
	game, err := s.GameManager.GetGame(r.PathValue("gameUuid"))
	if err != nil {
		status := http.StatusInternalServerError
		if errors.Is(err, cerr.ErrGameNotExists) {
			status = http.StatusNotFound
		}
		writeJson(w, status, mc.NewRespErr(err.Error(), ""))
		return
	}

	writeJson(w, http.StatusOK, mc.NewRespGame(game))
}
