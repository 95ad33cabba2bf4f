package follower

import (
	"sync"
	"time"
)

// Status is a snapshot of follower progress.
type Status struct {
	StoredHeight uint64    `json:"stored_height"`
	ChainHeight  uint64    `json:"chain_height"`
	Lag          uint64    `json:"lag"`
	UpdatedAt    time.Time `json:"updated_at"`
}

type statusTracker struct {
	mu     sync.RWMutex
	status Status
	now    func() time.Time
}

func newStatusTracker() *statusTracker {
	return &statusTracker{now: time.Now}
}

func (t *statusTracker) set(stored, chain uint64) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.status.StoredHeight = stored
	t.status.ChainHeight = chain
	t.refresh()
}

func (t *statusTracker) setStored(stored uint64) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.status.StoredHeight = stored
	if stored > t.status.ChainHeight {
		t.status.ChainHeight = stored
	}
	t.refresh()
}

func (t *statusTracker) refresh() {
	t.status.Lag = t.status.ChainHeight - t.status.StoredHeight
	t.status.UpdatedAt = t.now().UTC()
}

func (t *statusTracker) get() Status {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return t.status
}
