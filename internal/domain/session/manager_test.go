package session

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/your-org/storefront-backend/internal/domain/cart"
	"github.com/your-org/storefront-backend/internal/pkg/kv"
	"github.com/your-org/storefront-backend/internal/pkg/notify"
)

type stubRemote struct {
	mu    sync.Mutex
	rows  map[string][]string
	lists []string
}

func (s *stubRemote) List(_ context.Context, userID string) ([]string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.lists = append(s.lists, userID)
	return s.rows[userID], nil
}

func (s *stubRemote) Add(_ context.Context, userID, productID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.rows == nil {
		s.rows = make(map[string][]string)
	}
	s.rows[userID] = append(s.rows[userID], productID)
	return nil
}

func (s *stubRemote) Remove(_ context.Context, userID, productID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	kept := s.rows[userID][:0]
	for _, id := range s.rows[userID] {
		if id != productID {
			kept = append(kept, id)
		}
	}
	s.rows[userID] = kept
	return nil
}

func newTestManager(remote *stubRemote) (*Manager, kv.Store) {
	log := logrus.New()
	log.SetLevel(logrus.PanicLevel)
	storage := kv.NewMemoryStore()
	return NewManager(storage, remote, notify.NopNotifier{}, log), storage
}

func TestContainerIsStablePerSession(t *testing.T) {
	m, _ := newTestManager(&stubRemote{})
	ctx := context.Background()

	a := m.Container(ctx, "s1")
	b := m.Container(ctx, "s1")
	other := m.Container(ctx, "s2")

	assert.Same(t, a, b)
	assert.NotSame(t, a, other)
}

func TestCartsAreIsolatedBetweenSessions(t *testing.T) {
	m, _ := newTestManager(&stubRemote{})
	ctx := context.Background()

	m.Container(ctx, "s1").Cart.AddItem(ctx, cart.Product{ID: "A", Price: 100})

	assert.Equal(t, 1, m.Container(ctx, "s1").Cart.TotalItems())
	assert.Equal(t, 0, m.Container(ctx, "s2").Cart.TotalItems())
}

func TestEvictedSessionRehydratesCart(t *testing.T) {
	m, _ := newTestManager(&stubRemote{})
	ctx := context.Background()

	m.Container(ctx, "s1").Cart.AddItem(ctx, cart.Product{ID: "A", Price: 100})
	m.Evict("s1")

	// A fresh container reloads the persisted snapshot
	c := m.Container(ctx, "s1")
	require.Equal(t, 1, c.Cart.TotalItems())
}

func TestIdleContainersAreSwept(t *testing.T) {
	m, _ := newTestManager(&stubRemote{})
	ctx := context.Background()

	m.Container(ctx, "s1").Cart.AddItem(ctx, cart.Product{ID: "A", Price: 100})
	m.Container(ctx, "s2")

	// Age s1 past the idle TTL and make the next access sweep
	m.mu.Lock()
	m.containers["s1"].lastSeen = time.Now().Add(-containerIdleTTL - time.Minute)
	m.lastSweep = time.Time{}
	m.mu.Unlock()

	m.Container(ctx, "s3")

	m.mu.Lock()
	_, s1Alive := m.containers["s1"]
	_, s2Alive := m.containers["s2"]
	m.mu.Unlock()
	assert.False(t, s1Alive, "idle container must be evicted")
	assert.True(t, s2Alive, "recently used container stays cached")

	// The swept session rehydrates its cart from the persisted snapshot
	assert.Equal(t, 1, m.Container(ctx, "s1").Cart.TotalItems())
}

func TestIdentitySwitchReloadsFavorites(t *testing.T) {
	remote := &stubRemote{rows: map[string][]string{
		"alice": {"p1"},
		"bob":   {"p2"},
	}}
	m, _ := newTestManager(remote)
	ctx := context.Background()

	m.SetIdentity(ctx, "s1", "alice")
	assert.Equal(t, []string{"p1"}, m.Container(ctx, "s1").Favorites.Favorites())

	m.SetIdentity(ctx, "s1", "bob")
	assert.Equal(t, []string{"p2"}, m.Container(ctx, "s1").Favorites.Favorites())

	// Sign-out clears without another remote load
	m.SetIdentity(ctx, "s1", "")
	assert.Empty(t, m.Container(ctx, "s1").Favorites.Favorites())
	assert.Equal(t, []string{"alice", "bob"}, remote.lists)
}

func TestCartSurvivesSignOut(t *testing.T) {
	m, _ := newTestManager(&stubRemote{})
	ctx := context.Background()

	m.SetIdentity(ctx, "s1", "alice")
	m.Container(ctx, "s1").Cart.AddItem(ctx, cart.Product{ID: "A", Price: 100})

	m.SetIdentity(ctx, "s1", "")

	assert.Equal(t, 1, m.Container(ctx, "s1").Cart.TotalItems())
}
