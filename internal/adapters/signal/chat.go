package signal

import (
	"encoding/json"

	"github.com/rs/zerolog/log"

	"github.com/dkeye/Banter/internal/domain"
)

// Malformed payloads on fire-and-forget events drop without a reply; only
// create/join get explicit error responses.

func (ctl *ChatWSController) handleSendMessage(cid domain.ConnectionID, data []byte) {
	type sendPayload struct {
		Type    string `json:"type"`
		Room    string `json:"room"`
		Message struct {
			Text string `json:"text"`
		} `json:"message"`
	}
	var p sendPayload
	if err := json.Unmarshal(data, &p); err != nil {
		log.Debug().Err(err).Str("module", "signal").Msg("bad send-message payload")
		return
	}
	ctl.Orch.Send(cid, p.Room, p.Message.Text)
}

func (ctl *ChatWSController) handleTyping(cid domain.ConnectionID, data []byte) {
	type typingPayload struct {
		Type     string `json:"type"`
		Room     string `json:"room"`
		IsTyping bool   `json:"isTyping"`
	}
	var p typingPayload
	if err := json.Unmarshal(data, &p); err != nil {
		log.Debug().Err(err).Str("module", "signal").Msg("bad typing payload")
		return
	}
	if ctl.TypingRate != nil && !ctl.TypingRate.Allow(cid) {
		log.Debug().Str("module", "signal").Str("cid", string(cid)).Msg("typing rate limited")
		return
	}
	ctl.Orch.Typing(cid, p.Room, p.IsTyping)
}
