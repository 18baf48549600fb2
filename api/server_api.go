package api

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"strconv"
	"time"

	"github.com/gorilla/websocket"
	"github.com/saeidalz13/battleship-bots/db/sqlc"
	mb "github.com/saeidalz13/battleship-bots/models/battleship"
)

const (
	StageProd = "prod"
	StageDev  = "dev"
)

const (
	maxWriteWsRetries int           = 2
	backOffFactor     int           = 2
	maxTimeMatch      time.Duration = time.Minute * 30
	shutdownTimeout   time.Duration = time.Second * 10

	URLQueryPlayerOneKeyword string = "p1"
	URLQueryPlayerTwoKeyword string = "p2"
)

var (
	defaultPort string = "8000"
	upgrader           = websocket.Upgrader{
		HandshakeTimeout: time.Second * 5,
		ReadBufferSize:   1024,
		WriteBufferSize:  4096,
		CheckOrigin:      func(r *http.Request) bool { return true },
	}
)

// MatchAnalytics persists finished matches and answers the stats endpoint.
type MatchAnalytics interface {
	RecordMatch(ctx context.Context, game *mb.Game, serverIpNet *net.IPNet) (int64, error)
	GetMatchesPlayedCount(ctx context.Context) (int64, error)
	GetWinsByStrategy(ctx context.Context, strategy string) (int64, error)
	GetRecentMatches(ctx context.Context, limit int32) ([]sqlc.MatchResult, error)
}

type Server struct {
	port        string
	stage       string
	seed        int64
	turnDelay   time.Duration
	analytics   MatchAnalytics
	GameManager *mb.BattleshipGameManager
	Session     *mb.Session
}

type Option func(*Server) error

func NewServer(optFuncs ...Option) *Server {
	var server Server
	for _, opt := range optFuncs {
		if err := opt(&server); err != nil {
			panic(err)
		}
	}
	if server.port == "" {
		server.port = defaultPort
	}
	if server.stage == "" {
		server.stage = StageDev
	}

	server.GameManager = mb.NewBattleshipGameManager()
	server.Session = mb.NewSession()

	return &server
}

func WithPort(port string) Option {
	return func(s *Server) error {
		p, err := strconv.Atoi(port)
		if err != nil || p < 1 || p > 65535 {
			return fmt.Errorf("invalid port: %s", port)
		}
		s.port = port
		return nil
	}
}

func WithStage(stage string) Option {
	return func(s *Server) error {
		if stage != StageProd && stage != StageDev {
			return fmt.Errorf("invalid type of development stage: %s", stage)
		}
		s.stage = stage
		return nil
	}
}

// WithAnalytics stores every finished match through analytics and
// reports them on the stats endpoint.
func WithAnalytics(analytics MatchAnalytics) Option {
	return func(s *Server) error {
		s.analytics = analytics
		return nil
	}
}

// WithSeed makes every match on this server replay the same fleets and
// shots. Zero keeps the time based seed.
func WithSeed(seed int64) Option {
	return func(s *Server) error {
		s.seed = seed
		return nil
	}
}

// WithTurnDelay paces the stream so a spectator can follow the match.
func WithTurnDelay(delay time.Duration) Option {
	return func(s *Server) error {
		if delay < 0 {
			return fmt.Errorf("turn delay cannot be negative: %s", delay)
		}
		s.turnDelay = delay
		return nil
	}
}

func (s *Server) Stage() string { return s.stage }

func (s *Server) getServerIpNet(localAddr string) (*net.IPNet, error) {
	host, _, err := net.SplitHostPort(localAddr)
	if err != nil {
		return nil, err
	}

	parsedIP := net.ParseIP(host)
	if parsedIP == nil {
		return nil, fmt.Errorf("invalid local address: %s", localAddr)
	}

	if ip4 := parsedIP.To4(); ip4 != nil {
		return &net.IPNet{IP: ip4, Mask: net.CIDRMask(32, 32)}, nil
	}
	return &net.IPNet{IP: parsedIP, Mask: net.CIDRMask(128, 128)}, nil
}

func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /battleship/watch", s.HandleWatch)
	mux.HandleFunc("GET /battleship/health", s.HandleHealth)
	mux.HandleFunc("GET /battleship/stats", s.HandleStats)
	mux.HandleFunc("GET /battleship/games/{gameUuid}", s.HandleGame)
	return mux
}

func (s *Server) HandleHealth(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("ok"))
}

// Run serves until ctx is done, then shuts the listener down.
func (s *Server) Run(ctx context.Context) error {
	go s.GameManager.ManageGameTermination(ctx)

	httpServer := &http.Server{
		Addr:              "0.0.0.0:" + s.port,
		Handler:           s.Handler(),
		ReadHeaderTimeout: time.Second * 5,
		// matches stream on hijacked connections, which Shutdown does not
		// wait for; they stop with ctx instead.
		BaseContext: func(net.Listener) context.Context { return ctx },
	}

	errCh := make(chan error, 1)
	go func() {
		slog.Info("listening", "port", s.port, "stage", s.stage)
		errCh <- httpServer.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		return err
	}
	if err := <-errCh; !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}
