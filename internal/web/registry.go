package web

import (
	"context"
	"io"
	"sync"
	"time"

	"github.com/charmbracelet/log"
	"github.com/coder/quartz"

	"github.com/nier2kirito/PokerBots/internal/game"
	"github.com/nier2kirito/PokerBots/internal/sessionid"
	"github.com/nier2kirito/PokerBots/internal/store"
)

// HandRecorder persists resolved hands. *store.DB implements it.
type HandRecorder interface {
	RecordHand(ctx context.Context, sessionID string, r store.HandRecord) error
}

// SessionFactory builds the game for a new visitor.
type SessionFactory func() *game.Session

const recordTimeout = 5 * time.Second

// Entry is one visitor's session. All access goes through Do.
type Entry struct {
	ID string

	mu       sync.Mutex
	session  *game.Session
	lastSeen time.Time
	watchers map[chan game.View]struct{}
}

// Do runs fn with exclusive access to the session, then pushes the new view
// to every websocket watching it.
func (e *Entry) Do(fn func(*game.Session)) game.View {
	e.mu.Lock()
	defer e.mu.Unlock()
	fn(e.session)
	view := e.session.State()
	for ch := range e.watchers {
		select {
		case ch <- view:
		default:
			// A slow reader catches up on the next change.
		}
	}
	return view
}

// View returns the current state.
func (e *Entry) View() game.View {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.session.State()
}

// Watch registers a channel that receives the view after every change. The
// returned func unregisters it.
func (e *Entry) Watch() (<-chan game.View, func()) {
	ch := make(chan game.View, 8)
	e.mu.Lock()
	e.watchers[ch] = struct{}{}
	e.mu.Unlock()
	return ch, func() {
		e.mu.Lock()
		delete(e.watchers, ch)
		e.mu.Unlock()
	}
}

// Registry holds every live session.
type Registry struct {
	mu       sync.Mutex
	sessions map[string]*Entry
	factory  SessionFactory
	ttl      time.Duration
	clock    quartz.Clock
	ids      *sessionid.Generator
	recorder HandRecorder
	logger   *log.Logger
}

// RegistryOption configures a Registry.
type RegistryOption func(*Registry)

// WithClock sets the clock used for idle expiry.
func WithClock(clock quartz.Clock) RegistryOption {
	return func(r *Registry) { r.clock = clock }
}

// WithRecorder stores every resolved hand.
func WithRecorder(rec HandRecorder) RegistryOption {
	return func(r *Registry) { r.recorder = rec }
}

// WithLogger sets the logger.
func WithLogger(logger *log.Logger) RegistryOption {
	return func(r *Registry) { r.logger = logger }
}

// NewRegistry creates a registry expiring sessions idle for longer than ttl.
func NewRegistry(factory SessionFactory, ttl time.Duration, opts ...RegistryOption) *Registry {
	if factory == nil {
		panic("web: session factory is required")
	}
	if ttl <= 0 {
		panic("web: session ttl must be positive")
	}
	r := &Registry{
		sessions: make(map[string]*Entry),
		factory:  factory,
		ttl:      ttl,
		clock:    quartz.NewReal(),
		logger:   log.NewWithOptions(io.Discard, log.Options{}),
	}
	for _, opt := range opts {
		opt(r)
	}
	r.ids = sessionid.NewGenerator(r.clock, nil)
	r.logger = r.logger.WithPrefix("web")
	return r
}

// Acquire returns the session for id, creating a new one (with a new id) when
// id is unknown or expired. It marks the session as used.
func (r *Registry) Acquire(id string) *Entry {
	r.mu.Lock()
	defer r.mu.Unlock()

	now := r.clock.Now()
	if e, ok := r.sessions[id]; ok {
		e.lastSeen = now
		return e
	}

	e := &Entry{
		ID:       r.ids.New(),
		session:  r.factory(),
		lastSeen: now,
		watchers: make(map[chan game.View]struct{}),
	}
	if r.recorder != nil {
		e.session.Subscribe(game.EventSubscriberFunc(func(event game.GameEvent) {
			if resolved, ok := event.(game.HandResolvedEvent); ok {
				r.record(e.ID, resolved)
			}
		}))
	}
	r.sessions[e.ID] = e
	r.logger.Info("Session created", "session", e.ID, "active", len(r.sessions))
	return e
}

func (r *Registry) record(id string, e game.HandResolvedEvent) {
	ctx, cancel := context.WithTimeout(context.Background(), recordTimeout)
	defer cancel()
	if err := r.recorder.RecordHand(ctx, id, store.RecordFromEvent(e)); err != nil {
		r.logger.Warn("Failed to record hand", "session", id, "number", e.HandNumber, "error", err)
	}
}

// Len returns the number of live sessions.
func (r *Registry) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.sessions)
}

// Reap drops sessions idle for longer than the TTL and returns how many went.
func (r *Registry) Reap() int {
	r.mu.Lock()
	defer r.mu.Unlock()

	now := r.clock.Now()
	removed := 0
	for id, e := range r.sessions {
		if now.Sub(e.lastSeen) > r.ttl {
			delete(r.sessions, id)
			removed++
		}
	}
	if removed > 0 {
		r.logger.Info("Expired idle sessions", "removed", removed, "active", len(r.sessions))
	}
	return removed
}

// Run reaps idle sessions every half TTL until ctx is done.
func (r *Registry) Run(ctx context.Context) error {
	ticker := r.clock.NewTicker(r.ttl/2, "registry", "reap")
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
			r.Reap()
		}
	}
}
