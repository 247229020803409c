// Package slotlock serializes writers of the same therapist slot, within
// one process (Local) or across instances (Redis).
package slotlock

import (
	"context"
	"errors"
	"fmt"
	"sync"
)

var ErrTimeout = errors.New("slot lock wait timed out")

type Locker interface {
	// Lock blocks until key is held or ctx ends. The returned func
	// releases it.
	Lock(ctx context.Context, key string) (func(), error)
}

func Key(therapistID uint, date, hm string) string {
	return fmt.Sprintf("slot:%d:%s:%s", therapistID, date, hm)
}

// ===============================
// Local
// ===============================

type entry struct {
	ch   chan struct{}
	refs int
}

type Local struct {
	mu   sync.Mutex
	keys map[string]*entry
}

func NewLocal() *Local {
	return &Local{keys: make(map[string]*entry)}
}

func (l *Local) Lock(ctx context.Context, key string) (func(), error) {
	l.mu.Lock()
	e, ok := l.keys[key]
	if !ok {
		e = &entry{ch: make(chan struct{}, 1)}
		l.keys[key] = e
	}
	e.refs++
	l.mu.Unlock()

	select {
	case e.ch <- struct{}{}:
	case <-ctx.Done():
		l.release(key, e, false)
		return nil, ctx.Err()
	}

	var once sync.Once
	return func() {
		once.Do(func() { l.release(key, e, true) })
	}, nil
}

func (l *Local) release(key string, e *entry, held bool) {
	if held {
		<-e.ch
	}
	l.mu.Lock()
	e.refs--
	if e.refs == 0 {
		delete(l.keys, key)
	}
	l.mu.Unlock()
}
