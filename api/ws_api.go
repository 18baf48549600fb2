package api

import (
	"context"
	"log/slog"
	"time"

	"github.com/gorilla/websocket"
	mc "github.com/saeidalz13/battleship-bots/models/connection"
)

const (
	writeWait time.Duration = time.Second * 10
)

// writeJsonWithRetry writes v, retrying with a growing back off while the
// failure looks temporary.
func writeJsonWithRetry(conn *websocket.Conn, v interface{}) error {
	var err error
	for retries := 0; retries <= maxWriteWsRetries; retries++ {
		_ = conn.SetWriteDeadline(time.Now().Add(writeWait))
		if err = conn.WriteJSON(v); err == nil {
			return nil
		}

		connErr := mc.ClassifyConnErr(err)
		if connErr.Code() == mc.ConnLoopBreak {
			return connErr
		}

		slog.Warn("failed to write to ws conn; retrying...",
			"remote_addr", conn.RemoteAddr().String(),
			"retry", retries+1,
			"err", connErr,
		)
		time.Sleep(time.Duration((retries+1)*backOffFactor) * time.Second)
	}
	return err
}

// readUntilClosed drains incoming frames so control messages are handled,
// and calls cancel once the spectator goes away. Spectators send nothing
// meaningful; any data frame is ignored.
func readUntilClosed(conn *websocket.Conn, cancel context.CancelFunc) {
	defer cancel()
	for {
		if _, _, err := conn.ReadMessage(); err != nil {
			slog.Info("spectator stream closed",
				"remote_addr", conn.RemoteAddr().String(),
				"reason", mc.ClassifyConnErr(err),
			)
			return
		}
	}
}

func closeConn(conn *websocket.Conn, code int, text string) {
	msg := websocket.FormatCloseMessage(code, text)
	_ = conn.WriteControl(websocket.CloseMessage, msg, time.Now().Add(writeWait))
	conn.Close()
}
