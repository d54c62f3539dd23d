// Package limiter gates the report submission endpoint per client
// identifier. The policy is a fixed-window-on-expiry counter with a
// cooldown between accepted requests: when a window's age exceeds one hour
// the window resets wholesale instead of sliding. That allows a short burst
// across a window boundary; it is a soft limiter by design, the
// human-verification gate is the primary abuse defense.
package limiter

import (
	"context"
	"sync"
	"time"
)

const (
	Window       = time.Hour
	MaxPerWindow = 3
	Cooldown     = 30 * time.Second

	ReasonCooldown    = "cooldown_active"
	ReasonWindowLimit = "hourly_limit_reached"

	// Courtesy cleanup bound, not a correctness requirement.
	maxTracked = 1000
	staleAfter = 2 * Window
)

// Decision is the outcome of one rate-limit check.
type Decision struct {
	Allowed    bool
	RetryAfter time.Duration
	Reason     string
}

// Limiter decides whether a client identifier may submit right now.
// Accepted checks mutate the identifier's record; rejected checks do not.
type Limiter interface {
	Check(ctx context.Context, identifier string) Decision
}

type record struct {
	count       int
	windowStart time.Time
	lastRequest time.Time
}

// MemoryLimiter keeps rate-limit records in process memory. State is lost
// on restart, which is an accepted trade-off.
type MemoryLimiter struct {
	mu      sync.Mutex
	clients map[string]*record
	now     func() time.Time
}

// NewMemoryLimiter creates an in-memory limiter.
func NewMemoryLimiter() *MemoryLimiter {
	return &MemoryLimiter{
		clients: make(map[string]*record),
		now:     time.Now,
	}
}

// Check applies the window and cooldown policy to the identifier.
func (l *MemoryLimiter) Check(ctx context.Context, identifier string) Decision {
	l.mu.Lock()
	defer l.mu.Unlock()

	now := l.now()
	rec, ok := l.clients[identifier]
	if !ok {
		if len(l.clients) >= maxTracked {
			l.purge(now)
		}
		l.clients[identifier] = &record{count: 1, windowStart: now, lastRequest: now}
		return Decision{Allowed: true}
	}

	d, next := apply(*rec, now)
	if d.Allowed {
		*rec = next
	}
	return d
}

// apply evaluates the policy against a record and returns the decision plus
// the mutated record to store on acceptance. Shared with the Redis limiter
// so the two backends cannot diverge.
func apply(rec record, now time.Time) (Decision, record) {
	if now.Sub(rec.windowStart) > Window {
		return Decision{Allowed: true}, record{count: 1, windowStart: now, lastRequest: now}
	}

	if since := now.Sub(rec.lastRequest); since < Cooldown {
		return Decision{
			Allowed:    false,
			RetryAfter: Cooldown - since,
			Reason:     ReasonCooldown,
		}, rec
	}

	if rec.count >= MaxPerWindow {
		return Decision{
			Allowed:    false,
			RetryAfter: rec.windowStart.Add(Window).Sub(now),
			Reason:     ReasonWindowLimit,
		}, rec
	}

	rec.count++
	rec.lastRequest = now
	return Decision{Allowed: true}, rec
}

// purge drops records idle for more than twice the window. Caller holds the
// lock.
func (l *MemoryLimiter) purge(now time.Time) {
	for id, rec := range l.clients {
		if now.Sub(rec.lastRequest) > staleAfter {
			delete(l.clients, id)
		}
	}
}
