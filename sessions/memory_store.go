package sessions

import (
	"context"
	"sync"
)

var _ Provider = (*MemoryStore)(nil)

// MemoryStore holds a single session for an in-process client.
type MemoryStore struct {
	session *Session
	lock    sync.RWMutex
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{}
}

// Set replaces the current session.
func (ms *MemoryStore) Set(session *Session) {
	ms.lock.Lock()
	defer ms.lock.Unlock()
	ms.session = session
}

// Clear forgets the current session.
func (ms *MemoryStore) Clear() {
	ms.Set(nil)
}

func (ms *MemoryStore) Current(_ context.Context) (*Session, error) {
	ms.lock.RLock()
	defer ms.lock.RUnlock()
	return ms.session, nil
}
