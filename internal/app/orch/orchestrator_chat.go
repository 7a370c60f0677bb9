package orch

import (
	"time"

	"github.com/rs/zerolog/log"

	"github.com/dkeye/Banter/internal/domain"
)

// Send stores and fans out one chat message. Fire-and-forget: an unknown
// room, an unregistered sender or a whitespace-only text drops silently,
// which is the intended best-effort chat semantics.
func (o *Orchestrator) Send(cid domain.ConnectionID, roomRaw, text string) {
	room, ok := o.Rooms.Get(domain.NormalizeCode(roomRaw))
	if !ok {
		return
	}
	entry, ok := o.Registry.Lookup(cid)
	if !ok {
		return
	}
	msg, err := domain.NewChatMessage(entry.DisplayName, cid, text, time.Now())
	if err != nil {
		return
	}

	room.Append(msg)
	frame, ok := marshalFrame(receiveMessageEvent{Type: evtReceiveMessage, Message: msg})
	if !ok {
		return
	}
	// The sender gets the message back too: delivery is confirmed by the
	// round trip, not by a local echo.
	res := room.Broadcast(frame)
	log.Debug().Str("module", "app.orch").Str("room", string(room.Code())).Str("sender", entry.DisplayName).Int("sent_to", res.SentTo).Int("dropped", res.Dropped).Msg("message fan-out")
}

// Typing relays a typing indicator to everyone except its sender. No-op if
// the sender has no active session.
func (o *Orchestrator) Typing(cid domain.ConnectionID, roomRaw string, isTyping bool) {
	entry, ok := o.Registry.Lookup(cid)
	if !ok {
		return
	}
	room, ok := o.Rooms.Get(domain.NormalizeCode(roomRaw))
	if !ok {
		return
	}
	frame, ok := marshalFrame(userTypingEvent{Type: evtUserTyping, Name: entry.DisplayName, IsTyping: isTyping})
	if !ok {
		return
	}
	room.BroadcastExcept(cid, frame)
}
