package orch

import (
	"errors"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/dkeye/Banter/internal/app"
	"github.com/dkeye/Banter/internal/core"
	"github.com/dkeye/Banter/internal/domain"
)

// CreateRoom registers a fresh room with the caller as host and answers with
// the room-created snapshot. Validation is fully upfront: nothing mutates
// when a UserError is returned.
func (o *Orchestrator) CreateRoom(cid domain.ConnectionID, conn core.SignalConnection, name, code string) *app.UserError {
	host, err := domain.NewParticipant(cid, name, true, time.Now())
	if err != nil {
		return app.ErrNameRequired
	}

	var rc domain.RoomCode
	if code != "" {
		rc = domain.NormalizeCode(code)
		if _, taken := o.Rooms.Get(rc); taken {
			return app.ErrRoomExists
		}
	}

	room, err := o.Rooms.Create(rc, host, conn)
	if err != nil {
		return app.ErrRoomExists
	}

	// Only now that the room exists may a live connection switching rooms
	// leave its old one; a failed create must not touch it.
	if _, bound := o.Registry.Lookup(cid); bound {
		o.detach(cid)
	}
	o.Registry.Bind(cid, host.Name, room.Code(), true)

	o.emit(conn, roomCreatedEvent{
		Type:     evtRoomCreated,
		Code:     room.Code(),
		HostName: host.Name,
		Users:    room.MembersSnapshot(),
	})
	log.Info().Str("module", "app.orch").Str("room", string(room.Code())).Str("host", host.Name).Msg("room created")
	return nil
}

// Join admits the caller into an existing room. Validation order: name,
// code shape, room existence, idempotent rejoin, name collision, capacity.
// First failing check wins; no partial application.
func (o *Orchestrator) Join(cid domain.ConnectionID, conn core.SignalConnection, roomRaw, nameRaw string) *app.UserError {
	p, err := domain.NewParticipant(cid, nameRaw, false, time.Now())
	if err != nil {
		return app.ErrNameRequired
	}
	code := domain.NormalizeCode(roomRaw)
	if !code.Valid() {
		return app.ErrInvalidCode
	}
	room, ok := o.Rooms.Get(code)
	if !ok {
		return app.ErrRoomNotFound
	}

	rejoined, err := room.Join(p, conn)
	switch {
	case errors.Is(err, core.ErrNameTaken):
		return app.ErrNameTaken
	case errors.Is(err, core.ErrRoomFull):
		return app.ErrRoomFull
	}

	if rejoined {
		// Reconnect by the same connection: snapshot only, no presence
		// events, no directory change.
		o.emit(conn, o.joinedSnapshot(room))
		return nil
	}

	// Admitted. Only now may a live connection switching rooms leave its
	// old one; a rejected join must leave the old membership untouched.
	if entry, bound := o.Registry.Lookup(cid); bound && entry.RoomCode != code {
		o.detach(cid)
	}

	o.Registry.Bind(cid, p.Name, code, false)
	o.emit(conn, o.joinedSnapshot(room))

	if frame, ok := marshalFrame(userJoinedEvent{
		Type:  evtUserJoined,
		User:  p,
		Users: room.MembersSnapshot(),
	}); ok {
		room.BroadcastExcept(cid, frame)
	}
	log.Info().Str("module", "app.orch").Str("room", string(code)).Str("name", p.Name).Msg("member joined")
	return nil
}

// OnDisconnect is the only departure path; leaving a room is synonymous
// with disconnecting. Safe to call for connections that never joined.
func (o *Orchestrator) OnDisconnect(cid domain.ConnectionID) {
	o.detach(cid)
}

// detach removes cid from whatever room the directory binds it to. The
// directory entry goes unconditionally; a room deleted concurrently by the
// reaper makes the broadcast a no-op.
func (o *Orchestrator) detach(cid domain.ConnectionID) {
	entry, ok := o.Registry.Lookup(cid)
	if !ok {
		return
	}
	o.Registry.Unbind(cid)

	room, ok := o.Rooms.Get(entry.RoomCode)
	if !ok {
		return
	}
	removed, promoted, remaining, ok := room.Remove(cid)
	if !ok {
		return
	}
	if promoted != nil {
		o.Registry.SetHost(promoted.ID)
	}

	if frame, ok := marshalFrame(userLeftEvent{
		Type:  evtUserLeft,
		Name:  removed.Name,
		Users: room.MembersSnapshot(),
	}); ok {
		room.Broadcast(frame)
	}
	log.Info().Str("module", "app.orch").Str("room", string(entry.RoomCode)).Str("name", removed.Name).Int("remaining", remaining).Msg("member left")

	if remaining == 0 {
		o.Reaper.RoomEmptied(room.Code())
	}
}

func (o *Orchestrator) joinedSnapshot(room core.RoomService) roomJoinedEvent {
	return roomJoinedEvent{
		Type:     evtRoomJoined,
		Room:     room.Code(),
		HostName: room.HostName(),
		Users:    room.MembersSnapshot(),
		Messages: room.History(domain.JoinHistoryLimit),
	}
}
