package domain

import (
	"math/rand"
	"strings"
)

// codeAlphabet leaves out visually ambiguous symbols (0/O, 1/I).
const codeAlphabet = "ABCDEFGHJKLMNPQRSTUVWXYZ23456789"

const CodeLen = 6

// NewRoomCode draws CodeLen symbols uniformly from codeAlphabet.
// Not cryptographically secure; the room registry enforces uniqueness
// with a collision check, the generator does not.
func NewRoomCode() RoomCode {
	b := make([]byte, CodeLen)
	for i := range b {
		b[i] = codeAlphabet[rand.Intn(len(codeAlphabet))]
	}
	return RoomCode(b)
}

// NormalizeCode uppercases a client-supplied code.
func NormalizeCode(raw string) RoomCode {
	return RoomCode(strings.ToUpper(strings.TrimSpace(raw)))
}

// Valid reports whether the code is exactly CodeLen characters from [A-Z0-9].
func (c RoomCode) Valid() bool {
	if len(c) != CodeLen {
		return false
	}
	for i := 0; i < len(c); i++ {
		ch := c[i]
		if (ch < 'A' || ch > 'Z') && (ch < '0' || ch > '9') {
			return false
		}
	}
	return true
}
