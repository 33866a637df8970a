package dashboard

import (
	"sync"
	"time"

	"github.com/lifewood/careers-api/internal/model"
)

const (
	sessionMaxIdle       = 2 * time.Hour
	sessionSweepInterval = time.Minute
)

// SessionStore persists the admin identity and last-activity timestamp
// across dashboard restarts. The reference deployment keeps this in
// browser-local storage; MemorySessionStore stands in for it here.
type SessionStore interface {
	Load() (admin *model.AdminUser, lastActive time.Time, ok bool)
	Save(admin *model.AdminUser, lastActive time.Time)
	Clear()
}

type MemorySessionStore struct {
	mu         sync.Mutex
	admin      *model.AdminUser
	lastActive time.Time
}

func NewMemorySessionStore() *MemorySessionStore {
	return &MemorySessionStore{}
}

func (s *MemorySessionStore) Load() (*model.AdminUser, time.Time, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.admin == nil {
		return nil, time.Time{}, false
	}
	return s.admin, s.lastActive, true
}

func (s *MemorySessionStore) Save(admin *model.AdminUser, lastActive time.Time) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.admin = admin
	s.lastActive = lastActive
}

func (s *MemorySessionStore) Clear() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.admin = nil
	s.lastActive = time.Time{}
}

// Session is the one owner of admin-login state: initialized on login,
// touched on activity, expired after two hours idle. A background sweep
// checks idleness once a minute.
type Session struct {
	mu         sync.Mutex
	store      SessionStore
	admin      *model.AdminUser
	lastActive time.Time
	maxIdle    time.Duration
	now        func() time.Time

	sweepStop chan struct{}
	sweepOnce sync.Once
}

func NewSession(store SessionStore) *Session {
	s := &Session{
		store:     store,
		maxIdle:   sessionMaxIdle,
		now:       time.Now,
		sweepStop: make(chan struct{}),
	}
	// Resume a persisted session if it has not gone idle.
	if admin, last, ok := store.Load(); ok && s.now().Sub(last) < s.maxIdle {
		s.admin = admin
		s.lastActive = last
	} else {
		store.Clear()
	}
	return s
}

// Init starts a session for the given admin.
func (s *Session) Init(admin *model.AdminUser) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.admin = admin
	s.lastActive = s.now()
	s.store.Save(admin, s.lastActive)
}

// Touch records activity, pushing expiry out.
func (s *Session) Touch() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.admin == nil {
		return
	}
	s.lastActive = s.now()
	s.store.Save(s.admin, s.lastActive)
}

// Admin returns the logged-in admin, expiring the session first if it has
// been idle too long.
func (s *Session) Admin() (*model.AdminUser, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.admin == nil {
		return nil, false
	}
	if s.now().Sub(s.lastActive) >= s.maxIdle {
		s.expireLocked()
		return nil, false
	}
	return s.admin, true
}

// Expire logs the session out immediately.
func (s *Session) Expire() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.expireLocked()
}

func (s *Session) expireLocked() {
	s.admin = nil
	s.lastActive = time.Time{}
	s.store.Clear()
}

// StartSweep runs the periodic idle check until StopSweep is called.
func (s *Session) StartSweep() {
	go func() {
		ticker := time.NewTicker(sessionSweepInterval)
		defer ticker.Stop()
		for {
			select {
			case <-ticker.C:
				s.Admin()
			case <-s.sweepStop:
				return
			}
		}
	}()
}

func (s *Session) StopSweep() {
	s.sweepOnce.Do(func() { close(s.sweepStop) })
}
