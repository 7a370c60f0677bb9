package domain

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestNewRoomCode_Format(t *testing.T) {
	req := require.New(t)
	for i := 0; i < 200; i++ {
		code := NewRoomCode()
		req.Len(string(code), CodeLen)
		req.True(code.Valid(), "generated code %q must be valid", code)
		for _, ch := range string(code) {
			req.True(strings.ContainsRune(codeAlphabet, ch), "unexpected symbol %q", ch)
		}
	}
}

func TestNewRoomCode_NoAmbiguousSymbols(t *testing.T) {
	req := require.New(t)
	for _, banned := range "0O1I" {
		req.False(strings.ContainsRune(codeAlphabet, banned))
	}
}

func TestNormalizeCode(t *testing.T) {
	req := require.New(t)
	req.Equal(RoomCode("ABC123"), NormalizeCode(" abc123 "))
	req.Equal(RoomCode("PARTY1"), NormalizeCode("party1"))
	req.Equal(RoomCode(""), NormalizeCode("   "))
}

func TestRoomCode_Valid(t *testing.T) {
	req := require.New(t)

	req.True(RoomCode("ABC123").Valid())
	req.True(RoomCode("ZZZZZZ").Valid())

	req.False(RoomCode("").Valid())
	req.False(RoomCode("ABC12").Valid())
	req.False(RoomCode("ABC1234").Valid())
	req.False(RoomCode("abc123").Valid())
	req.False(RoomCode("ABC-12").Valid())
	req.False(RoomCode("ABC 12").Valid())
}
