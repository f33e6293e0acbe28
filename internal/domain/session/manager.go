// Package session owns the per-client store containers. Each browser
// session gets one explicitly constructed container holding its cart
// store and favorites store, so store lifetime is a property of the
// session rather than of process-wide globals.
package session

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"github.com/your-org/storefront-backend/internal/domain/cart"
	"github.com/your-org/storefront-backend/internal/domain/favorites"
	"github.com/your-org/storefront-backend/internal/pkg/kv"
	"github.com/your-org/storefront-backend/internal/pkg/notify"
)

// Container bundles the state stores scoped to one client session.
// The cart is session-scoped and survives sign-out; the favorites store
// is identity-scoped and resets on every identity change.
type Container struct {
	Cart      *cart.Store
	Favorites *favorites.Store
}

const (
	// containerIdleTTL bounds how long an untouched container stays
	// cached. The cart snapshot lives in storage, so a swept session
	// rehydrates on its next request.
	containerIdleTTL = 30 * time.Minute

	sweepInterval = 5 * time.Minute
)

type containerEntry struct {
	container *Container
	lastSeen  time.Time
}

// Manager creates and caches containers by session id
type Manager struct {
	storage  kv.Store
	remote   favorites.Remote
	notifier notify.Notifier
	log      *logrus.Logger

	mu         sync.Mutex
	containers map[string]*containerEntry
	lastSweep  time.Time
}

// NewManager creates a session manager
func NewManager(storage kv.Store, remote favorites.Remote, notifier notify.Notifier, log *logrus.Logger) *Manager {
	return &Manager{
		storage:    storage,
		remote:     remote,
		notifier:   notifier,
		log:        log,
		containers: make(map[string]*containerEntry),
		lastSweep:  time.Now(),
	}
}

// NewSessionID issues a fresh session identifier
func (m *Manager) NewSessionID() string {
	return uuid.NewString()
}

// Container returns the container for a session, creating it on first
// use. The cart rehydrates its snapshot from storage at that point.
func (m *Manager) Container(ctx context.Context, sessionID string) *Container {
	m.mu.Lock()
	defer m.mu.Unlock()

	now := time.Now()
	m.sweepLocked(now)

	if e, ok := m.containers[sessionID]; ok {
		e.lastSeen = now
		return e.container
	}

	c := &Container{
		Cart:      cart.NewStore(ctx, m.storage, CartKey(sessionID), m.log),
		Favorites: favorites.NewStore(m.remote, m.notifier, m.log),
	}
	m.containers[sessionID] = &containerEntry{container: c, lastSeen: now}
	return c
}

// SetIdentity pushes an identity change into the session's favorites
// store. An empty userID signs the session out.
func (m *Manager) SetIdentity(ctx context.Context, sessionID, userID string) {
	m.Container(ctx, sessionID).Favorites.SetIdentity(ctx, userID)
}

// Evict drops a session's container from the cache. The persisted cart
// snapshot is left behind so the session rehydrates on its next request.
func (m *Manager) Evict(sessionID string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.containers, sessionID)
}

// sweepLocked drops containers idle past the TTL. Session ids are
// client-supplied, so the cache must not grow with every id a client
// invents. Caller holds m.mu.
func (m *Manager) sweepLocked(now time.Time) {
	if now.Sub(m.lastSweep) < sweepInterval {
		return
	}
	m.lastSweep = now
	for id, e := range m.containers {
		if now.Sub(e.lastSeen) > containerIdleTTL {
			delete(m.containers, id)
		}
	}
}

// CartKey is the storage key for a session's cart snapshot
func CartKey(sessionID string) string {
	return fmt.Sprintf("cart:session:%s", sessionID)
}
