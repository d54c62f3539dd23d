package client

import (
	"encoding/json"
	"os"
	"time"

	"github.com/tasklift/backend/internal/limiter"
)

// LocalLimiter is the client-side duplicate guard: a file-persisted list of
// recent submission timestamps, checked against the same window, cap and
// cooldown constants as the server limiter. It is a weaker, redundant
// backup scoped to this machine only and is never authoritative.
type LocalLimiter struct {
	path string
	now  func() time.Time
}

type localState struct {
	Submissions []time.Time `json:"submissions"`
}

// NewLocalLimiter persists state at the given path.
func NewLocalLimiter(path string) *LocalLimiter {
	return &LocalLimiter{path: path, now: time.Now}
}

// Allow reports whether a submission may be attempted now and, when not,
// how long to wait. It does not record anything; call Record after a
// successful submission.
func (l *LocalLimiter) Allow() (bool, time.Duration) {
	now := l.now()
	recent := l.recent(now)

	if len(recent) >= limiter.MaxPerWindow {
		return false, recent[0].Add(limiter.Window).Sub(now)
	}
	if len(recent) > 0 {
		last := recent[len(recent)-1]
		if since := now.Sub(last); since < limiter.Cooldown {
			return false, limiter.Cooldown - since
		}
	}
	return true, 0
}

// Record appends the current time and persists the pruned state.
func (l *LocalLimiter) Record() error {
	now := l.now()
	state := localState{Submissions: append(l.recent(now), now)}

	data, err := json.Marshal(state)
	if err != nil {
		return err
	}
	return os.WriteFile(l.path, data, 0o600)
}

// recent loads the persisted timestamps still inside the window. A missing
// or corrupt file is treated as empty; the backup limiter must never block
// a user over local state problems.
func (l *LocalLimiter) recent(now time.Time) []time.Time {
	data, err := os.ReadFile(l.path)
	if err != nil {
		return nil
	}
	var state localState
	if err := json.Unmarshal(data, &state); err != nil {
		return nil
	}

	var kept []time.Time
	for _, ts := range state.Submissions {
		if now.Sub(ts) <= limiter.Window {
			kept = append(kept, ts)
		}
	}
	return kept
}
