package connection

import (
	"errors"
	"fmt"
	"net"

	"github.com/gorilla/websocket"
)

// What a stream loop should do after a connection error.
const (
	ConnLoopBreak uint8 = iota
	ConnLoopRetry
)

type ConnErr struct {
	code uint8
	desc string
}

func NewConnErr(code uint8) ConnErr {
	return ConnErr{code: code}
}

func (c ConnErr) AddDesc(desc string) ConnErr {
	c.desc = desc
	return c
}

func (c ConnErr) Error() string {
	return fmt.Sprintf("Connection error - Code: %d\tdesc: %s", c.code, c.desc)
}

func (c ConnErr) Code() uint8 {
	return c.code
}

// ClassifyConnErr tells a stream whether err is worth another attempt.
// Timeouts and server load are retried; a spectator closing the tab or
// anything else ends the stream.
func ClassifyConnErr(err error) ConnErr {
	var netErr net.Error
	if errors.As(err, &netErr) && netErr.Timeout() {
		return NewConnErr(ConnLoopRetry).AddDesc("timeout: " + err.Error())
	}

	if websocket.IsCloseError(err, websocket.CloseTryAgainLater) {
		return NewConnErr(ConnLoopRetry).AddDesc("high server load: " + err.Error())
	}

	if websocket.IsCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
		return NewConnErr(ConnLoopBreak).AddDesc("spectator left: " + err.Error())
	}

	return NewConnErr(ConnLoopBreak).AddDesc("unexpected: " + err.Error())
}
