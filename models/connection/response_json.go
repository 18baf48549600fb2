package connection

import (
	"time"

	mb "github.com/saeidalz13/battleship-bots/models/battleship"
)

type RespPlayer struct {
	Name     string `json:"name"`
	Strategy string `json:"strategy"`
}

func NewRespPlayer(p *mb.Player) RespPlayer {
	return RespPlayer{Name: p.Name, Strategy: p.Strategy.Kind()}
}

type RespMatchStarted struct {
	GameUuid string     `json:"game_uuid"`
	Host     RespPlayer `json:"host"`
	Join     RespPlayer `json:"join"`
}

type RespTurn struct {
	GameUuid     string   `json:"game_uuid"`
	Turn         int      `json:"turn"`
	Attacker     string   `json:"attacker"`
	Defender     string   `json:"defender"`
	X            int      `json:"x"`
	Y            int      `json:"y"`
	Position     string   `json:"position"`
	Hit          bool     `json:"hit"`
	Sunk         bool     `json:"sunk"`
	SunkenShips  int      `json:"sunken_ships"`
	DefenderGrid []string `json:"defender_grid"`
}

func NewRespTurn(event mb.TurnEvent) RespTurn {
	c := event.Result.Coordinates
	return RespTurn{
		GameUuid:     event.GameUuid,
		Turn:         event.Turn,
		Attacker:     event.Attacker.Name,
		Defender:     event.Defender.Name,
		X:            c.X,
		Y:            c.Y,
		Position:     mb.FormatCoordinates(c),
		Hit:          event.Result.Hit,
		Sunk:         event.Result.Sunk,
		SunkenShips:  event.Defender.Board.SunkShipsCount(),
		DefenderGrid: event.Defender.Board.GridWithoutShips().Rows(),
	}
}

type RespMatchEnded struct {
	GameUuid string `json:"game_uuid"`
	Winner   string `json:"winner"`
	Turns    int    `json:"turns"`
}

type RespErr struct {
	ErrorDetails string `json:"error_details,omitempty"`
	Message      string `json:"message,omitempty"`
}

func NewRespErr(errorDetails, message string) *RespErr {
	return &RespErr{
		ErrorDetails: errorDetails,
		Message:      message,
	}
}

// RespGame is the read-only view of a game in progress.
type RespGame struct {
	GameUuid string     `json:"game_uuid"`
	Host     RespPlayer `json:"host"`
	Join     RespPlayer `json:"join"`
	Turns    int        `json:"turns"`
	Finished bool       `json:"finished"`
	Winner   string     `json:"winner,omitempty"`
}

func NewRespGame(g *mb.Game) RespGame {
	resp := RespGame{
		GameUuid: g.Uuid,
		Host:     NewRespPlayer(g.HostPlayer),
		Join:     NewRespPlayer(g.JoinPlayer),
		Turns:    g.Turns(),
		Finished: g.IsFinished(),
	}
	if winner := g.Winner(); winner != nil {
		resp.Winner = winner.Name
	}
	return resp
}

type RespMatchResult struct {
	GameUuid       string    `json:"game_uuid"`
	WinnerName     string    `json:"winner_name"`
	WinnerStrategy string    `json:"winner_strategy"`
	LoserName      string    `json:"loser_name"`
	LoserStrategy  string    `json:"loser_strategy"`
	Turns          int32     `json:"turns"`
	CreatedAt      time.Time `json:"created_at"`
}

type RespStats struct {
	ActiveGames int `json:"active_games"`

	// the fields below stay empty when no database is configured
	MatchesPlayed  int64             `json:"matches_played,omitempty"`
	WinsByStrategy map[string]int64  `json:"wins_by_strategy,omitempty"`
	RecentMatches  []RespMatchResult `json:"recent_matches,omitempty"`
}
