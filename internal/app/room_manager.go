package app

import (
	"sync"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/dkeye/Banter/internal/core"
	"github.com/dkeye/Banter/internal/domain"
)

// RoomManagerImpl owns the code->room table and the uniqueness rule.
type RoomManagerImpl struct {
	mu         sync.RWMutex
	rooms      map[domain.RoomCode]core.RoomService
	maxMembers int

	// genCode is swappable in tests to force collisions.
	genCode func() domain.RoomCode
}

func NewRoomManager(maxMembers int) *RoomManagerImpl {
	return &RoomManagerImpl{
		rooms:      make(map[domain.RoomCode]core.RoomService),
		maxMembers: maxMembers,
		genCode:    domain.NewRoomCode,
	}
}

// Create registers a new room with the host as its single member. An empty
// code means "generate one": the generator is retried until the code is
// unused. A supplied code that already names a live room fails with
// core.ErrRoomExists.
func (m *RoomManagerImpl) Create(code domain.RoomCode, host domain.Participant, conn core.SignalConnection) (core.RoomService, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if code == "" {
		for {
			code = m.genCode()
			if _, taken := m.rooms[code]; !taken {
				break
			}
		}
	} else if _, taken := m.rooms[code]; taken {
		return nil, core.ErrRoomExists
	}

	room := core.NewRoom(code, m.maxMembers, host, conn, time.Now())
	m.rooms[code] = room
	log.Info().Str("module", "app.rooms").Str("room", string(code)).Str("host", host.Name).Msg("room created")
	return room, nil
}

func (m *RoomManagerImpl) Get(code domain.RoomCode) (core.RoomService, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	room, ok := m.rooms[code]
	return room, ok
}

// Delete is idempotent.
func (m *RoomManagerImpl) Delete(code domain.RoomCode) {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.rooms, code)
	log.Info().Str("module", "app.rooms").Str("room", string(code)).Msg("room deleted")
}

func (m *RoomManagerImpl) List() []core.RoomInfo {
	m.mu.RLock()
	defer m.mu.RUnlock()
	out := make([]core.RoomInfo, 0, len(m.rooms))
	for code, r := range m.rooms {
		out = append(out, core.RoomInfo{Code: code, HostName: r.HostName(), MemberCount: r.MemberCount()})
	}
	return out
}
