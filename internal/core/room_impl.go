package core

import (
	"strings"
	"sync"
	"time"

	"github.com/rs/zerolog/log"
	"github.com/samber/lo"

	"github.com/dkeye/Banter/internal/domain"
)

// memberEntry pairs a participant with its transport endpoint.
type memberEntry struct {
	p    domain.Participant
	conn SignalConnection
}

// roomImpl is a threadsafe in-memory room. All read-modify-write sequences
// on membership and history run under one mutex, so no two operations on
// the same room interleave. It never closes adapter-owned connections.
type roomImpl struct {
	code       domain.RoomCode
	createdAt  time.Time
	maxMembers int

	mu       sync.RWMutex
	hostCID  domain.ConnectionID
	hostName string
	members  []*memberEntry // insertion order, unique by ConnectionID
	byCID    map[domain.ConnectionID]*memberEntry
	history  []domain.ChatMessage
}

// NewRoom builds a room with the host as its single member.
func NewRoom(code domain.RoomCode, maxMembers int, host domain.Participant, conn SignalConnection, createdAt time.Time) RoomService {
	entry := &memberEntry{p: host, conn: conn}
	return &roomImpl{
		code:       code,
		createdAt:  createdAt,
		maxMembers: maxMembers,
		hostCID:    host.ID,
		hostName:   host.Name,
		members:    []*memberEntry{entry},
		byCID:      map[domain.ConnectionID]*memberEntry{host.ID: entry},
	}
}

func (r *roomImpl) Code() domain.RoomCode { return r.code }
func (r *roomImpl) CreatedAt() int64      { return r.createdAt.UnixMilli() }

func (r *roomImpl) HostName() string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.hostName
}

func (r *roomImpl) MemberCount() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.members)
}

func (r *roomImpl) MembersSnapshot() []domain.Participant {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return lo.Map(r.members, func(m *memberEntry, _ int) domain.Participant { return m.p })
}

func (r *roomImpl) Join(p domain.Participant, conn SignalConnection) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	// A repeat join by the same connection is a reconnect, not an error:
	// swap in the fresh transport and leave membership untouched.
	if entry, ok := r.byCID[p.ID]; ok {
		entry.conn = conn
		log.Debug().Str("module", "core.room").Str("room", string(r.code)).Str("cid", string(p.ID)).Msg("rejoin, transport refreshed")
		return true, nil
	}

	for _, m := range r.members {
		if strings.EqualFold(m.p.Name, p.Name) {
			return false, ErrNameTaken
		}
	}
	if r.maxMembers > 0 && len(r.members) >= r.maxMembers {
		return false, ErrRoomFull
	}

	entry := &memberEntry{p: p, conn: conn}
	r.members = append(r.members, entry)
	r.byCID[p.ID] = entry
	log.Info().Str("module", "core.room").Str("room", string(r.code)).Str("cid", string(p.ID)).Str("name", p.Name).Msg("member added")
	return false, nil
}

func (r *roomImpl) Remove(cid domain.ConnectionID) (domain.Participant, *domain.Participant, int, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()

	entry, ok := r.byCID[cid]
	if !ok {
		return domain.Participant{}, nil, len(r.members), false
	}
	delete(r.byCID, cid)
	for i, m := range r.members {
		if m == entry {
			r.members = append(r.members[:i], r.members[i+1:]...)
			break
		}
	}
	log.Info().Str("module", "core.room").Str("room", string(r.code)).Str("cid", string(cid)).Msg("member removed")

	var promoted *domain.Participant
	if cid == r.hostCID && len(r.members) > 0 {
		// Oldest remaining member inherits the room.
		next := r.members[0]
		next.p.IsHost = true
		r.hostCID = next.p.ID
		r.hostName = next.p.Name
		p := next.p
		promoted = &p
		log.Info().Str("module", "core.room").Str("room", string(r.code)).Str("cid", string(p.ID)).Str("name", p.Name).Msg("host promoted")
	}
	return entry.p, promoted, len(r.members), true
}

func (r *roomImpl) Append(msg domain.ChatMessage) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.history = append(r.history, msg)
	if n := len(r.history); n > domain.HistoryLimit {
		r.history = r.history[n-domain.HistoryLimit:]
	}
}

func (r *roomImpl) History(limit int) []domain.ChatMessage {
	r.mu.RLock()
	defer r.mu.RUnlock()
	start := 0
	if limit > 0 && len(r.history) > limit {
		start = len(r.history) - limit
	}
	out := make([]domain.ChatMessage, len(r.history)-start)
	copy(out, r.history[start:])
	return out
}

func (r *roomImpl) Broadcast(data Frame) PublishResult {
	return r.fanout("", data)
}

func (r *roomImpl) BroadcastExcept(from domain.ConnectionID, data Frame) PublishResult {
	return r.fanout(from, data)
}

func (r *roomImpl) fanout(skip domain.ConnectionID, data Frame) PublishResult {
	r.mu.RLock()
	defer r.mu.RUnlock()
	res := PublishResult{}
	for _, m := range r.members {
		if skip != "" && m.p.ID == skip {
			continue
		}
		if err := m.conn.TrySend(data); err != nil {
			res.Dropped++
			continue
		}
		res.SentTo++
	}
	log.Debug().Str("module", "core.room").Str("room", string(r.code)).Int("sent_to", res.SentTo).Int("dropped", res.Dropped).Msg("broadcast result")
	return res
}
