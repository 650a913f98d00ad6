package keylock

import "sync"

// KeyLock provides mutual exclusion per key. Holders of different keys never
// block one another; entries are dropped once the last holder releases.
type KeyLock struct {
	mu    sync.Mutex
	locks map[int64]*entry
}

type entry struct {
	mu   sync.Mutex
	refs int
}

func New() *KeyLock {
	return &KeyLock{
		locks: make(map[int64]*entry),
	}
}

// Lock blocks until the key is held and returns the release func.
func (k *KeyLock) Lock(key int64) func() {
	k.mu.Lock()
	e, ok := k.locks[key]
	if !ok {
		e = &entry{}
		k.locks[key] = e
	}
	e.refs++
	k.mu.Unlock()

	e.mu.Lock()

	return func() {
		e.mu.Unlock()
		k.mu.Lock()
		e.refs--
		if e.refs == 0 {
			delete(k.locks, key)
		}
		k.mu.Unlock()
	}
}
