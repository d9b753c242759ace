// Package barrier implements a single-fire fan-in barrier: a fixed set of
// task ids that complete in any order on any goroutine, and one callback that
// runs when the last of them reports.
//
// A Barrier is allocated per operation and discarded once it fires or is
// cancelled; it is never reset.
package barrier

import (
	"context"
	"fmt"
	"sort"
	"sync"

	"github.com/aiham/dymaxion/pkg/types"
)

// Barrier tracks the completion of a fixed task set.
type Barrier struct {
	mu         sync.Mutex
	tasks      map[string]bool
	remaining  int
	called     bool // fired or cancelled; the callback can no longer run
	fired      bool
	onComplete func()
	done       chan struct{}
	cancelled  chan struct{}
}

// New creates a barrier over ids. onComplete runs once, on the goroutine whose
// MarkDone completes the set; it may be nil. Returns ErrEmptyTaskSet for an
// empty set and ErrDuplicateTaskID when an id repeats.
func New(ids []string, onComplete func()) (*Barrier, error) {
	if len(ids) == 0 {
		return nil, types.ErrEmptyTaskSet
	}
	tasks := make(map[string]bool, len(ids))
	for _, id := range ids {
		if _, ok := tasks[id]; ok {
			return nil, fmt.Errorf("%w: %q", types.ErrDuplicateTaskID, id)
		}
		tasks[id] = false
	}
	return &Barrier{
		tasks:      tasks,
		remaining:  len(ids),
		onComplete: onComplete,
		done:       make(chan struct{}),
		cancelled:  make(chan struct{}),
	}, nil
}

// MarkDone records that the task id finished. Marking the same id twice is
// harmless. Returns ErrUnknownTaskID if id was not part of the set, even after
// the barrier fired.
func (b *Barrier) MarkDone(id string) error {
	b.mu.Lock()
	finished, ok := b.tasks[id]
	if !ok {
		b.mu.Unlock()
		return fmt.Errorf("%w: %q", types.ErrUnknownTaskID, id)
	}
	if finished {
		b.mu.Unlock()
		return nil
	}
	b.tasks[id] = true
	b.remaining--
	if b.remaining > 0 || b.called {
		b.mu.Unlock()
		return nil
	}
	b.called = true
	b.fired = true
	cb := b.onComplete
	b.onComplete = nil
	b.mu.Unlock()

	// The callback runs outside the lock so it may query the barrier.
	if cb != nil {
		cb()
	}
	close(b.done)
	return nil
}

// Reporter returns a func that marks id done, for collaborators that only
// accept a plain completion callback. An id outside the set panics when the
// returned func is called.
func (b *Barrier) Reporter(id string) func() {
	return func() {
		if err := b.MarkDone(id); err != nil {
			panic(err)
		}
	}
}

// Cancel stops the callback from ever running. Later MarkDone calls are
// still validated and counted. Cancel after the barrier fired has no effect.
func (b *Barrier) Cancel() {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.called {
		return
	}
	b.called = true
	b.onComplete = nil
	close(b.cancelled)
}

// Done returns a channel closed after the callback has returned.
func (b *Barrier) Done() <-chan struct{} {
	return b.done
}

// Wait blocks until the barrier fires. Returns ErrBarrierCancelled if it was
// cancelled first, or the context error.
func (b *Barrier) Wait(ctx context.Context) error {
	select {
	case <-b.done:
		return nil
	case <-b.cancelled:
		return types.ErrBarrierCancelled
	case <-ctx.Done():
		return ctx.Err()
	}
}

// Fired reports whether the callback has been triggered.
func (b *Barrier) Fired() bool {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.fired
}

// Cancelled reports whether Cancel suppressed the callback.
func (b *Barrier) Cancelled() bool {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.called && !b.fired
}

// Pending returns the ids not yet marked done, sorted.
func (b *Barrier) Pending() []string {
	b.mu.Lock()
	defer b.mu.Unlock()
	var ids []string
	for id, finished := range b.tasks {
		if !finished {
			ids = append(ids, id)
		}
	}
	sort.Strings(ids)
	return ids
}
