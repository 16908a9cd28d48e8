package session

import (
	"context"
	"sync"
)

// Locker serializes operations on a single session
type Locker interface {
	Lock(ctx context.Context, id string) (unlock func(), err error)
}

type keyedLock struct {
	mu   sync.Mutex
	refs int
}

// MemoryLocker is an in-process Locker keyed by session id
type MemoryLocker struct {
	mu    sync.Mutex
	locks map[string]*keyedLock
}

// NewMemoryLocker creates an in-process locker
func NewMemoryLocker() *MemoryLocker {
	return &MemoryLocker{locks: make(map[string]*keyedLock)}
}

// Lock blocks until the session lock is held or ctx is done
func (l *MemoryLocker) Lock(ctx context.Context, id string) (func(), error) {
	l.mu.Lock()
	k, ok := l.locks[id]
	if !ok {
		k = &keyedLock{}
		l.locks[id] = k
	}
	k.refs++
	l.mu.Unlock()

	acquired := make(chan struct{})
	go func() {
		k.mu.Lock()
		close(acquired)
	}()

	select {
	case <-acquired:
		return func() { l.release(id, k) }, nil
	case <-ctx.Done():
		// hand the lock back once the pending acquisition completes
		go func() {
			<-acquired
			l.release(id, k)
		}()
		return nil, ctx.Err()
	}
}

func (l *MemoryLocker) release(id string, k *keyedLock) {
	k.mu.Unlock()

	l.mu.Lock()
	k.refs--
	if k.refs == 0 {
		delete(l.locks, id)
	}
	l.mu.Unlock()
}
