// Package keyedmutex serializes work per string key. Keys are held only
// while locked; the map does not grow with the keyspace.
package keyedmutex

import "sync"

type entry struct {
	mu   sync.Mutex
	refs int
}

type KeyedMutex struct {
	mu      sync.Mutex
	entries map[string]*entry
}

func New() *KeyedMutex {
	return &KeyedMutex{entries: make(map[string]*entry)}
}

func (km *KeyedMutex) Lock(key string) {
	km.mu.Lock()
	e, ok := km.entries[key]
	if !ok {
		e = &entry{}
		km.entries[key] = e
	}
	e.refs++
	km.mu.Unlock()

	e.mu.Lock()
}

func (km *KeyedMutex) Unlock(key string) {
	km.mu.Lock()
	e, ok := km.entries[key]
	if !ok {
		km.mu.Unlock()
		panic("keyedmutex: unlock of unheld key " + key)
	}
	e.refs--
	if e.refs == 0 {
		delete(km.entries, key)
	}
	km.mu.Unlock()

	e.mu.Unlock()
}
