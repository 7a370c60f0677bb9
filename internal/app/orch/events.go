package orch

import (
	"github.com/dkeye/Banter/internal/domain"
)

// Outbound event names on the wire.
const (
	evtRoomCreated    = "room-created"
	evtRoomJoined     = "room-joined"
	evtUserJoined     = "user-joined"
	evtReceiveMessage = "receive-message"
	evtUserTyping     = "user-typing"
	evtUserLeft       = "user-left"
)

type roomCreatedEvent struct {
	Type     string               `json:"type"`
	Code     domain.RoomCode      `json:"code"`
	HostName string               `json:"hostName"`
	Users    []domain.Participant `json:"users"`
}

type roomJoinedEvent struct {
	Type     string               `json:"type"`
	Room     domain.RoomCode      `json:"room"`
	HostName string               `json:"hostName"`
	Users    []domain.Participant `json:"users"`
	Messages []domain.ChatMessage `json:"messages"`
}

type userJoinedEvent struct {
	Type  string               `json:"type"`
	User  domain.Participant   `json:"user"`
	Users []domain.Participant `json:"users"`
}

type receiveMessageEvent struct {
	Type    string             `json:"type"`
	Message domain.ChatMessage `json:"message"`
}

type userTypingEvent struct {
	Type     string `json:"type"`
	Name     string `json:"name"`
	IsTyping bool   `json:"isTyping"`
}

type userLeftEvent struct {
	Type  string               `json:"type"`
	Name  string               `json:"name"`
	Users []domain.Participant `json:"users"`
}
