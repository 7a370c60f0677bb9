package signal

import (
	"context"
	"encoding/json"
	"time"

	"github.com/gorilla/websocket"
	"github.com/rs/zerolog/log"

	"github.com/dkeye/Banter/internal/app"
	"github.com/dkeye/Banter/internal/core"
	"github.com/dkeye/Banter/internal/domain"
)

func (ctl *ChatWSController) writePump(ctx context.Context, c *WsSignalConn) {
	pingPeriod := ctl.PingPeriod
	if pingPeriod <= 0 {
		pingPeriod = 54 * time.Second
	}
	ticker := time.NewTicker(pingPeriod)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			log.Debug().Str("module", "signal").Msg("writePump ctx done")
			return
		case <-ticker.C:
			if err := c.conn.WriteControl(websocket.PingMessage, nil, time.Now().Add(5*time.Second)); err != nil {
				log.Debug().Err(err).Str("module", "signal").Msg("writePump ping error")
				return
			}
		case data, ok := <-c.send:
			if !ok {
				log.Debug().Str("module", "signal").Msg("writePump channel closed")
				return
			}
			if err := c.conn.SetWriteDeadline(time.Now().Add(5 * time.Second)); err != nil {
				log.Error().Err(err).Str("module", "signal").Msg("writePump set deadline")
				return
			}
			if err := c.conn.WriteMessage(websocket.TextMessage, data); err != nil {
				log.Error().Err(err).Str("module", "signal").Msg("writePump write error")
				return
			}
		}
	}
}

func (ctl *ChatWSController) readPump(ctx context.Context, cancel context.CancelFunc, cid domain.ConnectionID, c *WsSignalConn) {
	defer func() {
		log.Info().Str("module", "signal").Str("cid", string(cid)).Msg("readPump closing")
		ctl.Orch.OnDisconnect(cid)
		if ctl.TypingRate != nil {
			ctl.TypingRate.Forget(cid)
		}
		cancel()
		c.Close()
	}()

	for {
		select {
		case <-ctx.Done():
			return
		default:
			_, data, err := c.conn.ReadMessage()
			if err != nil {
				log.Debug().Err(err).Str("module", "signal").Str("cid", string(cid)).Msg("readPump read error")
				return
			}
			ctl.handleFrame(cid, c, data)
		}
	}
}

// handleFrame dispatches one inbound event. A panic inside a handler must
// not take down the connection loop: request/response events answer with
// the closest user-facing error, fire-and-forget events just drop.
func (ctl *ChatWSController) handleFrame(cid domain.ConnectionID, c *WsSignalConn, data []byte) {
	var env struct {
		Type string `json:"type"`
	}
	if err := json.Unmarshal(data, &env); err != nil {
		log.Warn().Err(err).Str("module", "signal").Msg("bad json")
		return
	}

	defer func() {
		if rec := recover(); rec != nil {
			log.Error().Any("panic", rec).Str("module", "signal").Str("type", env.Type).Str("cid", string(cid)).Msg("recovered in event handler")
			switch env.Type {
			case "create-room", "join-room":
				ctl.sendError(c, app.ErrInternal)
			}
		}
	}()

	switch env.Type {
	case "create-room":
		ctl.handleCreateRoom(cid, c, data)
	case "join-room":
		ctl.handleJoinRoom(cid, c, data)
	case "send-message":
		ctl.handleSendMessage(cid, data)
	case "typing":
		ctl.handleTyping(cid, data)
	default:
		log.Warn().Str("module", "signal").Str("type", env.Type).Msg("unknown event")
	}
}

func (ctl *ChatWSController) sendJSON(c *WsSignalConn, v any) {
	b, err := json.Marshal(v)
	if err != nil {
		log.Error().Err(err).Str("module", "signal").Msg("sendJSON marshal")
		return
	}
	_ = c.TrySend(core.Frame(b))
}
