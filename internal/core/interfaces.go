package core

import (
	"errors"

	"github.com/dkeye/Banter/internal/domain"
)

// Frame is one pre-marshaled outbound event.
type Frame []byte

// Room-level admission failures. The orchestrator maps these onto the
// user-facing error taxonomy.
var (
	ErrRoomExists = errors.New("room already exists")
	ErrNameTaken  = errors.New("name already taken")
	ErrRoomFull   = errors.New("room full")
)

// SignalConnection abstracts the per-connection event channel.
// Owned by the adapter; the adapter must Close() it.
type SignalConnection interface {
	TrySend(Frame) error
	Close()
}

// PublishResult reports delivery stats/backpressure after a fan-out.
type PublishResult struct {
	SentTo  int
	Dropped int
}

// RoomService is the core-facing API of a room. It owns the membership
// sequence and the bounded message history but never closes adapter-owned
// transport resources.
type RoomService interface {
	Code() domain.RoomCode
	HostName() string
	CreatedAt() int64
	MemberCount() int
	MembersSnapshot() []domain.Participant

	// Join admits a participant, or refreshes the transport of one that is
	// already a member (rejoined=true, no state mutation beyond the
	// connection swap). Fails with ErrNameTaken or ErrRoomFull.
	Join(p domain.Participant, conn SignalConnection) (rejoined bool, err error)

	// Remove drops the member for cid. When the host departs and members
	// remain, the oldest remaining member is promoted and returned.
	Remove(cid domain.ConnectionID) (removed domain.Participant, promoted *domain.Participant, remaining int, ok bool)

	Append(msg domain.ChatMessage)
	History(limit int) []domain.ChatMessage

	Broadcast(data Frame) PublishResult
	BroadcastExcept(from domain.ConnectionID, data Frame) PublishResult
}

// RoomInfo is a read-only view for APIs (no transport fields).
type RoomInfo struct {
	Code        domain.RoomCode `json:"code"`
	HostName    string          `json:"host_name"`
	MemberCount int             `json:"member_count"`
}

// RoomManager owns the code->room table: creation with uniqueness,
// lookup, idempotent deletion.
type RoomManager interface {
	Create(code domain.RoomCode, host domain.Participant, conn SignalConnection) (RoomService, error)
	Get(code domain.RoomCode) (RoomService, bool)
	Delete(code domain.RoomCode)
	List() []RoomInfo
}
