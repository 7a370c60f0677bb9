package app

import (
	"time"

	"github.com/rs/zerolog/log"

	"github.com/dkeye/Banter/internal/core"
	"github.com/dkeye/Banter/internal/domain"
)

// Reaper deletes rooms that stay empty for a grace period, so a brief
// reconnect gap (page reload) does not lose the room.
type Reaper struct {
	rooms core.RoomManager
	grace time.Duration
}

func NewReaper(rooms core.RoomManager, grace time.Duration) *Reaper {
	return &Reaper{rooms: rooms, grace: grace}
}

// RoomEmptied arms a one-shot timer for the code. The timer is never
// cancelled: when it fires it re-reads live registry state, so a rejoin in
// the meantime simply turns it into a no-op. A stale timer lingers
// harmlessly until then.
func (r *Reaper) RoomEmptied(code domain.RoomCode) {
	log.Info().Str("module", "app.reaper").Str("room", string(code)).Dur("grace", r.grace).Msg("room empty, deletion scheduled")
	time.AfterFunc(r.grace, func() {
		room, ok := r.rooms.Get(code)
		if !ok || room.MemberCount() > 0 {
			return
		}
		r.rooms.Delete(code)
		log.Info().Str("module", "app.reaper").Str("room", string(code)).Msg("abandoned room reaped")
	})
}
