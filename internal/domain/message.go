package domain

import (
	"errors"
	"fmt"
	"math/rand"
	"strings"
	"time"
)

var ErrMessageEmpty = errors.New("message empty")

// ChatMessage is immutable once created and retained only in its room's
// bounded history.
type ChatMessage struct {
	ID        string       `json:"id"`
	Sender    string       `json:"sender"`
	SenderID  ConnectionID `json:"senderId"`
	Text      string       `json:"text"`
	Time      string       `json:"time"`
	Timestamp int64        `json:"timestamp"`
	Type      string       `json:"type"`
}

// NewChatMessage stamps a trimmed, non-empty text with the send time.
// The id concatenates the timestamp with a random suffix: it only has to
// avoid collisions within one room's retained window, not globally.
func NewChatMessage(sender string, senderID ConnectionID, text string, at time.Time) (ChatMessage, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return ChatMessage{}, ErrMessageEmpty
	}
	return ChatMessage{
		ID:        fmt.Sprintf("msg_%d_%s", at.UnixMilli(), randSuffix(9)),
		Sender:    sender,
		SenderID:  senderID,
		Text:      text,
		Time:      at.Format("15:04"),
		Timestamp: at.UnixMilli(),
		Type:      "message",
	}, nil
}

const suffixAlphabet = "0123456789abcdefghijklmnopqrstuvwxyz"

func randSuffix(n int) string {
	b := make([]byte, n)
	for i := range b {
		b[i] = suffixAlphabet[rand.Intn(len(suffixAlphabet))]
	}
	return string(b)
}
