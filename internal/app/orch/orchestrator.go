// Package orch is the operation surface of the core: one method per inbound
// event. It coordinates the room registry, the session directory and the
// reaper, and emits every outbound event itself.
package orch

import (
	"encoding/json"

	"github.com/rs/zerolog/log"

	"github.com/dkeye/Banter/internal/app"
	"github.com/dkeye/Banter/internal/core"
)

type Orchestrator struct {
	Registry *app.Registry
	Rooms    core.RoomManager
	Reaper   *app.Reaper
}

// emit delivers one event to a single connection, best-effort.
func (o *Orchestrator) emit(conn core.SignalConnection, v any) {
	frame, ok := marshalFrame(v)
	if !ok {
		return
	}
	_ = conn.TrySend(frame)
}

func marshalFrame(v any) (core.Frame, bool) {
	b, err := json.Marshal(v)
	if err != nil {
		log.Error().Err(err).Str("module", "app.orch").Msg("marshal frame")
		return nil, false
	}
	return core.Frame(b), true
}
