package httpserver

import (
	"sync"
	"sync/atomic"
	"time"

	"github.com/google/uuid"

	"github.com/lixenwraith/gridpath/engine"
	"github.com/lixenwraith/gridpath/events"
)

// boardSession pairs a core session with the queue it emits into
// mu serializes every command so the session keeps a single owner
type boardSession struct {
	mu      sync.Mutex
	id      string
	session *engine.Session
	queue   *events.EventQueue

	// Unix nanos of the last request, read without mu by the janitor
	lastUsed atomic.Int64
}

func (bs *boardSession) touch(now time.Time) {
	bs.lastUsed.Store(now.UnixNano())
}

// sessionRegistry holds live sessions keyed by id
type sessionRegistry struct {
	mu       sync.RWMutex
	sessions map[string]*boardSession
	cfg      engine.SessionConfig
	now      func() time.Time
}

func newSessionRegistry(cfg engine.SessionConfig) *sessionRegistry {
	return &sessionRegistry{
		sessions: make(map[string]*boardSession),
		cfg:      cfg,
		now:      time.Now,
	}
}

// create registers a fresh session and returns it
func (r *sessionRegistry) create() *boardSession {
	q := events.NewEventQueue()
	bs := &boardSession{
		id:      uuid.NewString(),
		session: engine.NewSession(r.cfg, q),
		queue:   q,
	}
	bs.touch(r.now())

	r.mu.Lock()
	r.sessions[bs.id] = bs
	r.mu.Unlock()
	return bs
}

// get looks up a session by id
func (r *sessionRegistry) get(id string) (*boardSession, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	bs, ok := r.sessions[id]
	return bs, ok
}

// remove drops a session, reporting whether it existed
func (r *sessionRegistry) remove(id string) bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.sessions[id]; !ok {
		return false
	}
	delete(r.sessions, id)
	return true
}

// expire drops sessions idle for longer than ttl and returns how many were removed
func (r *sessionRegistry) expire(ttl time.Duration) int {
	cutoff := r.now().Add(-ttl).UnixNano()

	r.mu.Lock()
	defer r.mu.Unlock()
	n := 0
	for id, bs := range r.sessions {
		if bs.lastUsed.Load() < cutoff {
			delete(r.sessions, id)
			n++
		}
	}
	return n
}

func (r *sessionRegistry) count() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.sessions)
}
