package auth

import (
	"sync"
	"time"
)

// sessionTable holds live sessions by token.
// Expired entries are dropped on lookup and in bulk by sweep.
type sessionTable struct {
	mu      sync.RWMutex
	byToken map[string]*Session
}

func newSessionTable() *sessionTable {
	return &sessionTable{byToken: make(map[string]*Session)}
}

func (t *sessionTable) put(session *Session) {
	t.mu.Lock()
	t.byToken[session.Token] = session
	t.mu.Unlock()
}

func (t *sessionTable) lookup(token string, now time.Time) (*Session, bool) {
	t.mu.RLock()
	session, ok := t.byToken[token]
	t.mu.RUnlock()
	if !ok {
		return nil, false
	}
	if session.Expired(now) {
		t.drop(token)
		return nil, false
	}
	return session, true
}

func (t *sessionTable) drop(token string) {
	t.mu.Lock()
	delete(t.byToken, token)
	t.mu.Unlock()
}

// sweep removes every session expired at now and reports how many went
func (t *sessionTable) sweep(now time.Time) int {
	t.mu.Lock()
	defer t.mu.Unlock()
	n := 0
	for token, session := range t.byToken {
		if session.Expired(now) {
			delete(t.byToken, token)
			n++
		}
	}
	return n
}
