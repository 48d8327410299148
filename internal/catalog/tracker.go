package catalog

import (
	"context"
	"sync"
)

// Tracker sequences catalog fetches so only the latest one is applied.
// Begin cancels whatever fetch was in flight before it.
type Tracker struct {
	mu     sync.Mutex
	seq    uint64
	cancel context.CancelFunc
}

// Begin starts a new fetch and returns its sequence number and context
func (t *Tracker) Begin(parent context.Context) (uint64, context.Context) {
	t.mu.Lock()
	defer t.mu.Unlock()

	if t.cancel != nil {
		t.cancel()
	}
	t.seq++
	ctx, cancel := context.WithCancel(parent)
	t.cancel = cancel
	return t.seq, ctx
}

// Accept reports whether a result for seq may be applied
func (t *Tracker) Accept(seq uint64) bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	return seq != 0 && seq == t.seq && t.cancel != nil
}

// Done releases the context of seq once its result has been handled
func (t *Tracker) Done(seq uint64) {
	t.mu.Lock()
	defer t.mu.Unlock()
	if seq == t.seq && t.cancel != nil {
		t.cancel()
		t.cancel = nil
	}
}

// Cancel aborts the in-flight fetch. Any late result is rejected by Accept.
func (t *Tracker) Cancel() {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.cancel != nil {
		t.cancel()
		t.cancel = nil
	}
	t.seq++
}

// Latest returns the most recently issued sequence number
func (t *Tracker) Latest() uint64 {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.seq
}
