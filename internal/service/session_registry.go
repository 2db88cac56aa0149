package service

import (
	"sync"
	"time"

	"github.com/outlinedev/outline/internal/document"
)

// SessionRegistry keeps one live editing session per open document. A
// session holds in-memory editor state (collapse set, slash menu, assist
// table) that is not persisted; block content is written through to the
// document store on every mutation, so evicting an idle session loses
// nothing durable.
type SessionRegistry struct {
	mu      sync.Mutex
	entries map[string]*sessionEntry
	ttl     time.Duration
	now     func() time.Time
}

type sessionEntry struct {
	session    *document.Session
	userID     string
	lastAccess time.Time
}

func NewSessionRegistry(ttl time.Duration) *SessionRegistry {
	return &SessionRegistry{
		entries: make(map[string]*sessionEntry),
		ttl:     ttl,
		now:     time.Now,
	}
}

// Get returns the live session for docID, refreshing its idle clock.
func (r *SessionRegistry) Get(docID string) (*document.Session, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	entry, ok := r.entries[docID]
	if !ok {
		return nil, false
	}
	entry.lastAccess = r.now()
	return entry.session, true
}

func (r *SessionRegistry) Put(docID, userID string, session *document.Session) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.entries[docID] = &sessionEntry{
		session:    session,
		userID:     userID,
		lastAccess: r.now(),
	}
}

func (r *SessionRegistry) Remove(docID string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.entries, docID)
}

func (r *SessionRegistry) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.entries)
}

// ExpireIdle evicts sessions untouched past the TTL and returns them so the
// caller can run a final persist.
func (r *SessionRegistry) ExpireIdle() []ExpiredSession {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.ttl <= 0 {
		return nil
	}
	cutoff := r.now().Add(-r.ttl)
	expired := make([]ExpiredSession, 0)
	for docID, entry := range r.entries {
		if entry.lastAccess.After(cutoff) {
			continue
		}
		expired = append(expired, ExpiredSession{
			DocID:   docID,
			UserID:  entry.userID,
			Session: entry.session,
		})
		delete(r.entries, docID)
	}
	return expired
}

// Drain evicts every session regardless of idle time. Used on shutdown.
func (r *SessionRegistry) Drain() []ExpiredSession {
	r.mu.Lock()
	defer r.mu.Unlock()
	drained := make([]ExpiredSession, 0, len(r.entries))
	for docID, entry := range r.entries {
		drained = append(drained, ExpiredSession{
			DocID:   docID,
			UserID:  entry.userID,
			Session: entry.session,
		})
		delete(r.entries, docID)
	}
	return drained
}

type ExpiredSession struct {
	DocID   string
	UserID  string
	Session *document.Session
}
