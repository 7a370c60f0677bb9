package signal

import (
	"encoding/json"

	"github.com/rs/zerolog/log"

	"github.com/dkeye/Banter/internal/domain"
)

func (ctl *ChatWSController) handleCreateRoom(
	cid domain.ConnectionID,
	conn *WsSignalConn,
	data []byte,
) {
	type createPayload struct {
		Type string `json:"type"`
		Name string `json:"name"`
		Code string `json:"code,omitempty"`
	}
	var p createPayload
	if err := json.Unmarshal(data, &p); err != nil {
		log.Warn().Err(err).Str("module", "signal").Msg("bad create-room payload")
		return
	}

	if ue := ctl.Orch.CreateRoom(cid, conn, p.Name, p.Code); ue != nil {
		log.Info().Str("module", "signal").Str("cid", string(cid)).Str("kind", string(ue.Kind)).Msg("create-room rejected")
		ctl.sendError(conn, ue)
	}
}

func (ctl *ChatWSController) handleJoinRoom(
	cid domain.ConnectionID,
	conn *WsSignalConn,
	data []byte,
) {
	type joinPayload struct {
		Type string `json:"type"`
		Room string `json:"room"`
		Name string `json:"name"`
	}
	var p joinPayload
	if err := json.Unmarshal(data, &p); err != nil {
		log.Warn().Err(err).Str("module", "signal").Msg("bad join-room payload")
		return
	}

	if ue := ctl.Orch.Join(cid, conn, p.Room, p.Name); ue != nil {
		log.Info().Str("module", "signal").Str("cid", string(cid)).Str("kind", string(ue.Kind)).Msg("join-room rejected")
		ctl.sendError(conn, ue)
	}
}
