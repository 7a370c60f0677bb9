package core

import (
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/dkeye/Banter/internal/domain"
)

type fakeConn struct {
	mu     sync.Mutex
	frames []Frame
}

func (f *fakeConn) TrySend(fr Frame) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.frames = append(f.frames, fr)
	return nil
}

func (f *fakeConn) Close() {}

func (f *fakeConn) count() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.frames)
}

func member(id, name string) domain.Participant {
	p, err := domain.NewParticipant(domain.ConnectionID(id), name, false, time.Now())
	if err != nil {
		panic(err)
	}
	return p
}

func newTestRoom(maxMembers int) (RoomService, *fakeConn) {
	host, _ := domain.NewParticipant("host", "Ana", true, time.Now())
	conn := &fakeConn{}
	return NewRoom("ABC123", maxMembers, host, conn, time.Now()), conn
}

func TestRoom_InitializedWithHost(t *testing.T) {
	req := require.New(t)
	room, _ := newTestRoom(0)

	req.Equal(domain.RoomCode("ABC123"), room.Code())
	req.Equal("Ana", room.HostName())
	req.Equal(1, room.MemberCount())

	users := room.MembersSnapshot()
	req.Len(users, 1)
	req.True(users[0].IsHost)
}

func TestRoom_Join_OrderedDistinctNames(t *testing.T) {
	req := require.New(t)
	room, _ := newTestRoom(0)

	for i := 0; i < 5; i++ {
		rejoined, err := room.Join(member(fmt.Sprintf("c%d", i), fmt.Sprintf("User%d", i)), &fakeConn{})
		req.NoError(err)
		req.False(rejoined)
	}
	req.Equal(6, room.MemberCount())

	users := room.MembersSnapshot()
	req.Equal("Ana", users[0].Name)
	for i := 1; i < len(users); i++ {
		req.Equal(fmt.Sprintf("User%d", i-1), users[i].Name)
	}
}

func TestRoom_Join_NameTakenCaseInsensitive(t *testing.T) {
	req := require.New(t)
	room, _ := newTestRoom(0)

	_, err := room.Join(member("c2", "ana"), &fakeConn{})
	req.ErrorIs(err, ErrNameTaken)

	_, err = room.Join(member("c2", "ANA"), &fakeConn{})
	req.ErrorIs(err, ErrNameTaken)

	req.Equal(1, room.MemberCount())
}

func TestRoom_Join_RejoinRefreshesTransport(t *testing.T) {
	req := require.New(t)
	room, _ := newTestRoom(0)

	_, err := room.Join(member("c2", "Ben"), &fakeConn{})
	req.NoError(err)

	fresh := &fakeConn{}
	rejoined, err := room.Join(member("c2", "Ben"), fresh)
	req.NoError(err)
	req.True(rejoined)
	req.Equal(2, room.MemberCount())

	room.Broadcast(Frame(`x`))
	req.Equal(1, fresh.count())
}

func TestRoom_Join_Full(t *testing.T) {
	req := require.New(t)
	room, _ := newTestRoom(2)

	_, err := room.Join(member("c2", "Ben"), &fakeConn{})
	req.NoError(err)

	_, err = room.Join(member("c3", "Cid"), &fakeConn{})
	req.ErrorIs(err, ErrRoomFull)
	req.Equal(2, room.MemberCount())
}

func TestRoom_Remove_PromotesOldestOnHostLeave(t *testing.T) {
	req := require.New(t)
	room, _ := newTestRoom(0)
	_, err := room.Join(member("c2", "Ben"), &fakeConn{})
	req.NoError(err)
	_, err = room.Join(member("c3", "Cid"), &fakeConn{})
	req.NoError(err)

	removed, promoted, remaining, ok := room.Remove("host")
	req.True(ok)
	req.Equal("Ana", removed.Name)
	req.Equal(2, remaining)
	req.NotNil(promoted)
	req.Equal("Ben", promoted.Name)
	req.Equal("Ben", room.HostName())

	users := room.MembersSnapshot()
	req.True(users[0].IsHost)
	req.False(users[1].IsHost)
}

func TestRoom_Remove_NonHostNoPromotion(t *testing.T) {
	req := require.New(t)
	room, _ := newTestRoom(0)
	_, err := room.Join(member("c2", "Ben"), &fakeConn{})
	req.NoError(err)

	removed, promoted, remaining, ok := room.Remove("c2")
	req.True(ok)
	req.Equal("Ben", removed.Name)
	req.Nil(promoted)
	req.Equal(1, remaining)
	req.Equal("Ana", room.HostName())
}

func TestRoom_Remove_UnknownMember(t *testing.T) {
	req := require.New(t)
	room, _ := newTestRoom(0)

	_, _, remaining, ok := room.Remove("ghost")
	req.False(ok)
	req.Equal(1, remaining)
}

func TestRoom_History_BoundedOldestFirst(t *testing.T) {
	req := require.New(t)
	room, _ := newTestRoom(0)

	for i := 1; i <= 250; i++ {
		msg, err := domain.NewChatMessage("Ana", "host", fmt.Sprintf("m%d", i), time.Now())
		req.NoError(err)
		room.Append(msg)
	}

	all := room.History(0)
	req.Len(all, domain.HistoryLimit)
	req.Equal("m51", all[0].Text)
	req.Equal("m250", all[len(all)-1].Text)

	last := room.History(domain.JoinHistoryLimit)
	req.Len(last, domain.JoinHistoryLimit)
	req.Equal("m151", last[0].Text)
	req.Equal("m250", last[len(last)-1].Text)
}

func TestRoom_BroadcastIncludesAll_ExceptSkipsSender(t *testing.T) {
	req := require.New(t)
	room, hostConn := newTestRoom(0)
	benConn := &fakeConn{}
	_, err := room.Join(member("c2", "Ben"), benConn)
	req.NoError(err)

	res := room.Broadcast(Frame(`all`))
	req.Equal(2, res.SentTo)
	req.Equal(0, res.Dropped)
	req.Equal(1, hostConn.count())
	req.Equal(1, benConn.count())

	res = room.BroadcastExcept("host", Frame(`others`))
	req.Equal(1, res.SentTo)
	req.Equal(1, hostConn.count())
	req.Equal(2, benConn.count())
}
