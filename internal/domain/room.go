package domain

// RoomCode addresses one live room. Always stored normalized (uppercase).
type RoomCode string

const (
	// DefaultMaxMembers caps room membership unless configured otherwise.
	DefaultMaxMembers = 50

	// HistoryLimit is how many messages a room retains, oldest evicted first.
	HistoryLimit = 200

	// JoinHistoryLimit is how much history a joining member receives.
	JoinHistoryLimit = 100
)
