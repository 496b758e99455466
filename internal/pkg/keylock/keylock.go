// Package keylock provides mutual exclusion scoped to a key.
//
// Each key gets its own mutex while at least one caller holds or waits for it;
// the entry is dropped once the last caller releases, so the arena does not
// grow with the number of keys ever seen.
package keylock

import (
	"context"
	"sync"
)

type entry struct {
	sem  chan struct{}
	refs int
}

type Arena[K comparable] struct {
	mu      sync.Mutex
	entries map[K]*entry
}

func New[K comparable]() *Arena[K] {
	return &Arena[K]{entries: make(map[K]*entry)}
}

// Lock blocks until the key is held or ctx is done. The returned func releases it.
func (a *Arena[K]) Lock(ctx context.Context, key K) (func(), error) {
	e := a.acquire(key)

	select {
	case e.sem <- struct{}{}:
	case <-ctx.Done():
		a.release(key, e)
		return nil, ctx.Err()
	}

	var once sync.Once
	return func() {
		once.Do(func() {
			<-e.sem
			a.release(key, e)
		})
	}, nil
}

func (a *Arena[K]) acquire(key K) *entry {
	a.mu.Lock()
	defer a.mu.Unlock()

	e, ok := a.entries[key]
	if !ok {
		e = &entry{sem: make(chan struct{}, 1)}
		a.entries[key] = e
	}
	e.refs++
	return e
}

func (a *Arena[K]) release(key K, e *entry) {
	a.mu.Lock()
	defer a.mu.Unlock()

	e.refs--
	if e.refs == 0 {
		delete(a.entries, key)
	}
}

// Len is the number of keys currently held or waited on.
func (a *Arena[K]) Len() int {
	a.mu.Lock()
	defer a.mu.Unlock()
	return len(a.entries)
}
