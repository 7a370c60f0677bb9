// Package domain contains entity without logic, just meta-data
package domain

import (
	"errors"
	"strings"
	"time"
)

const MaxDisplayNameLen = 36

var ErrNameEmpty = errors.New("display name empty")

// ConnectionID identifies one transport connection. Opaque, assigned by the
// transport layer, stable for the lifetime of that connection.
type ConnectionID string

// Participant is one member of a room. Owned by exactly one room at a time;
// the session directory only references it.
type Participant struct {
	ID       ConnectionID `json:"id"`
	Name     string       `json:"name"`
	IsHost   bool         `json:"isHost"`
	JoinedAt int64        `json:"joinedAt"`
}

// NewParticipant is a tiny helper to avoid ad-hoc struct literals in adapters.
// The display name is trimmed and capped at MaxDisplayNameLen runes.
func NewParticipant(id ConnectionID, name string, isHost bool, at time.Time) (Participant, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return Participant{}, ErrNameEmpty
	}
	if runes := []rune(name); len(runes) > MaxDisplayNameLen {
		name = string(runes[:MaxDisplayNameLen])
	}
	return Participant{
		ID:       id,
		Name:     name,
		IsHost:   isHost,
		JoinedAt: at.UnixMilli(),
	}, nil
}
