package app

import (
	"sync"

	"github.com/mentorlink/webicast/internal/domain"
)

// keyLock hands out one mutex per session id so a start/join/end/disconnect
// sequence is never interleaved with another sequence for the same session,
// even across a verifier or store call. Entries are reference counted and
// dropped when idle.
type keyLock struct {
	mu    sync.Mutex
	locks map[domain.SessionID]*keyLockEntry
}

type keyLockEntry struct {
	mu   sync.Mutex
	refs int
}

func newKeyLock() *keyLock {
	return &keyLock{locks: make(map[domain.SessionID]*keyLockEntry)}
}

// lock blocks until the session lock is held and returns its release func.
func (l *keyLock) lock(id domain.SessionID) func() {
	l.mu.Lock()
	e, ok := l.locks[id]
	if !ok {
		e = &keyLockEntry{}
		l.locks[id] = e
	}
	e.refs++
	l.mu.Unlock()

	e.mu.Lock()
	return func() {
		e.mu.Unlock()
		l.mu.Lock()
		e.refs--
		if e.refs == 0 {
			delete(l.locks, id)
		}
		l.mu.Unlock()
	}
}
