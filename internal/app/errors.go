package app

// ErrorKind is the closed enumeration of user-facing, non-fatal failures.
// Kinds are wire-stable; the human-readable reason is presentation only.
type ErrorKind string

const (
	KindNameRequired ErrorKind = "name_required"
	KindRoomExists   ErrorKind = "room_exists"
	KindInvalidCode  ErrorKind = "invalid_code"
	KindRoomNotFound ErrorKind = "room_not_found"
	KindNameTaken    ErrorKind = "name_taken"
	KindRoomFull     ErrorKind = "room_full"
	KindInternal     ErrorKind = "internal"
)

// UserError is returned only to the requesting connection; no state has
// been mutated when one fires.
type UserError struct {
	Kind   ErrorKind
	Reason string
}

func (e *UserError) Error() string { return e.Reason }

var (
	ErrNameRequired = &UserError{KindNameRequired, "Please enter your name"}
	ErrRoomExists   = &UserError{KindRoomExists, "Room already exists"}
	ErrInvalidCode  = &UserError{KindInvalidCode, "Invalid room code"}
	ErrRoomNotFound = &UserError{KindRoomNotFound, "Room not found"}
	ErrNameTaken    = &UserError{KindNameTaken, "Name already taken"}
	ErrRoomFull     = &UserError{KindRoomFull, "Room is full"}
	ErrInternal     = &UserError{KindInternal, "Something went wrong"}
)
