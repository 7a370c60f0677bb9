package signal

import (
	"sync"
	"time"

	"github.com/dkeye/Banter/internal/domain"
)

// EventRateLimiter caps high-frequency fire-and-forget events per
// connection over a sliding window. Excess events drop silently.
type EventRateLimiter struct {
	mu       sync.Mutex
	history  map[domain.ConnectionID][]time.Time
	limit    int
	interval time.Duration
}

func NewEventRateLimiter(limit int, interval time.Duration) *EventRateLimiter {
	return &EventRateLimiter{
		history:  make(map[domain.ConnectionID][]time.Time),
		limit:    limit,
		interval: interval,
	}
}

func (rl *EventRateLimiter) Allow(cid domain.ConnectionID) bool {
	rl.mu.Lock()
	defer rl.mu.Unlock()

	now := time.Now()
	windowStart := now.Add(-rl.interval)

	attempts := rl.history[cid]
	fresh := make([]time.Time, 0, len(attempts))
	for _, t := range attempts {
		if t.After(windowStart) {
			fresh = append(fresh, t)
		}
	}

	if len(fresh) >= rl.limit {
		rl.history[cid] = fresh
		return false
	}

	fresh = append(fresh, now)
	rl.history[cid] = fresh
	return true
}

// Forget drops per-connection state once the connection goes away.
func (rl *EventRateLimiter) Forget(cid domain.ConnectionID) {
	rl.mu.Lock()
	defer rl.mu.Unlock()
	delete(rl.history, cid)
}
