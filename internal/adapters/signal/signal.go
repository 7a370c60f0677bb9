package signal

import (
	"context"
	"errors"
	"net/http"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"github.com/rs/zerolog/log"

	"github.com/dkeye/Banter/internal/app"
	"github.com/dkeye/Banter/internal/app/orch"
	"github.com/dkeye/Banter/internal/core"
	"github.com/dkeye/Banter/internal/domain"
)

var ErrBackpressure = errors.New("backpressure")

// ChatWSController owns the websocket side of the event channel: it
// upgrades connections, pumps frames and dispatches inbound events to the
// orchestrator.
type ChatWSController struct {
	Orch       *orch.Orchestrator
	TypingRate *EventRateLimiter
	ReadLimit  int64
	PingPeriod time.Duration
}

func NewChatWSController(o *orch.Orchestrator, typingRate *EventRateLimiter, readLimit int64, pingPeriod time.Duration) *ChatWSController {
	return &ChatWSController{Orch: o, TypingRate: typingRate, ReadLimit: readLimit, PingPeriod: pingPeriod}
}

// WsSignalConn adapts a websocket to core.SignalConnection: sends are
// buffered and never block the caller.
type WsSignalConn struct {
	conn *websocket.Conn
	send chan core.Frame

	mu     sync.RWMutex
	closed bool
}

func (c *WsSignalConn) TrySend(f core.Frame) error {
	c.mu.RLock()
	defer c.mu.RUnlock()
	if c.closed {
		return errors.New("connection closed")
	}
	select {
	case c.send <- f:
	default:
		return ErrBackpressure
	}
	return nil
}

func (c *WsSignalConn) Close() {
	c.mu.Lock()
	if c.closed {
		c.mu.Unlock()
		return
	}
	c.closed = true
	close(c.send)
	_ = c.conn.Close()
	c.mu.Unlock()
}

var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool { return true },
}

func (ctl *ChatWSController) HandleWS(ctx context.Context, c *gin.Context) {
	cid := domain.ConnectionID(c.GetString("client_token"))
	log.Info().Str("module", "signal").Str("cid", string(cid)).Msg("new WS connection")

	ws, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		log.Error().Err(err).Msg("ws upgrade")
		return
	}
	if ctl.ReadLimit > 0 {
		ws.SetReadLimit(ctl.ReadLimit)
	}

	conn := &WsSignalConn{
		conn: ws,
		send: make(chan core.Frame, 32),
	}
	ctx, cancel := context.WithCancel(ctx)

	go ctl.writePump(ctx, conn)
	go ctl.readPump(ctx, cancel, cid, conn)
}

// sendError answers the requesting connection only; broadcasts never carry
// errors.
func (ctl *ChatWSController) sendError(c *WsSignalConn, ue *app.UserError) {
	resp := struct {
		Type   string        `json:"type"`
		Kind   app.ErrorKind `json:"kind"`
		Reason string        `json:"reason"`
	}{
		Type:   "room-error",
		Kind:   ue.Kind,
		Reason: ue.Reason,
	}
	ctl.sendJSON(c, resp)
}
