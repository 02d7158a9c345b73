package handlers

import (
	"context"
	"encoding/json"
	"time"

	"github.com/coder/websocket"
	"github.com/sirupsen/logrus"
)

// playerConn wraps one websocket with a buffered outbound channel and a
// single writer goroutine, so broadcasts never block the engine and never
// interleave writes on the socket.
type playerConn struct {
	name   string
	ws     *websocket.Conn
	out    chan interface{}
	cancel context.CancelFunc
	logger *logrus.Logger
}

func newPlayerConn(name string, ws *websocket.Conn, cancel context.CancelFunc, logger *logrus.Logger) *playerConn {
	return &playerConn{
		name:   name,
		ws:     ws,
		out:    make(chan interface{}, 64),
		cancel: cancel,
		logger: logger,
	}
}

// send enqueues a payload for the write pump. A full buffer drops the
// message rather than stalling the room lock holder.
func (c *playerConn) send(v interface{}) {
	select {
	case c.out <- v:
	default:
		c.logger.Warnf("conn %s: outbound buffer full, dropping message", c.name)
	}
}

// writePump drains the outbound channel until the context dies.
func (c *playerConn) writePump(ctx context.Context) {
	for {
		select {
		case <-ctx.Done():
			return
		case v := <-c.out:
			data, err := json.Marshal(v)
			if err != nil {
				c.logger.Warnf("conn %s: marshal outbound: %v", c.name, err)
				continue
			}
			wctx, cancel := context.WithTimeout(ctx, 5*time.Second)
			err = c.ws.Write(wctx, websocket.MessageText, data)
			cancel()
			if err != nil {
				c.logger.Infof("conn %s: write failed, closing: %v", c.name, err)
				c.cancel()
				return
			}
		}
	}
}
