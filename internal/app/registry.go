package app

import (
	"sync"

	"github.com/rs/zerolog/log"

	"github.com/dkeye/Banter/internal/domain"
)

// SessionEntry is the inverse index for one connection: which room it sits
// in and under which name. Exists iff the connection is a member somewhere.
type SessionEntry struct {
	DisplayName string
	RoomCode    domain.RoomCode
	IsHost      bool
}

// Registry is the session directory. A connection is bound to at most one
// room at a time; rebinding without an unbind is not a supported transition.
type Registry struct {
	mu      sync.RWMutex
	entries map[domain.ConnectionID]*SessionEntry
}

func NewRegistry() *Registry {
	return &Registry{entries: make(map[domain.ConnectionID]*SessionEntry)}
}

func (r *Registry) Bind(cid domain.ConnectionID, name string, code domain.RoomCode, isHost bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.entries[cid] = &SessionEntry{DisplayName: name, RoomCode: code, IsHost: isHost}
	log.Info().Str("module", "app.registry").Str("cid", string(cid)).Str("room", string(code)).Str("name", name).Msg("bound session")
}

func (r *Registry) Lookup(cid domain.ConnectionID) (SessionEntry, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	if e, ok := r.entries[cid]; ok {
		return *e, true
	}
	return SessionEntry{}, false
}

func (r *Registry) Unbind(cid domain.ConnectionID) {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.entries, cid)
	log.Info().Str("module", "app.registry").Str("cid", string(cid)).Msg("unbound session")
}

// SetHost flips the host flag after an in-room promotion.
func (r *Registry) SetHost(cid domain.ConnectionID) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if e, ok := r.entries[cid]; ok {
		e.IsHost = true
		log.Info().Str("module", "app.registry").Str("cid", string(cid)).Msg("marked as host")
	}
}
