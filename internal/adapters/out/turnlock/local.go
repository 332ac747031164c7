package turnlock

import (
	"context"
	"sync"

	"github.com/u44592/hni/internal/core/domain/model/kernel"
	"github.com/u44592/hni/internal/core/ports"
)

var _ ports.TurnLocker = (*LocalLocker)(nil)

// LocalLocker is a keyed mutex. Entries are dropped once nobody holds or waits
// for them.
type LocalLocker struct {
	mu    sync.Mutex
	slots map[kernel.UUID]*slot
}

type slot struct {
	held chan struct{}
	refs int
}

func NewLocalLocker() *LocalLocker {
	return &LocalLocker{slots: make(map[kernel.UUID]*slot)}
}

// Lock blocks until the user's slot is free or ctx is done.
func (l *LocalLocker) Lock(ctx context.Context, userID kernel.UUID) (func(), error) {
	s := l.acquireSlot(userID)

	select {
	case s.held <- struct{}{}:
	case <-ctx.Done():
		l.releaseSlot(userID)
		return nil, ctx.Err()
	}

	var once sync.Once
	return func() {
		once.Do(func() {
			<-s.held
			l.releaseSlot(userID)
		})
	}, nil
}

// Waiting reports how many turns hold or wait for the user's lock.
func (l *LocalLocker) Waiting(userID kernel.UUID) int {
	l.mu.Lock()
	defer l.mu.Unlock()
	if s, ok := l.slots[userID]; ok {
		return s.refs
	}
	return 0
}

func (l *LocalLocker) acquireSlot(userID kernel.UUID) *slot {
	l.mu.Lock()
	defer l.mu.Unlock()

	s, ok := l.slots[userID]
	if !ok {
		s = &slot{held: make(chan struct{}, 1)}
		l.slots[userID] = s
	}
	s.refs++
	return s
}

func (l *LocalLocker) releaseSlot(userID kernel.UUID) {
	l.mu.Lock()
	defer l.mu.Unlock()

	s := l.slots[userID]
	s.refs--
	if s.refs == 0 {
		delete(l.slots, userID)
	}
}
