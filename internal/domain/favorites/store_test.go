package favorites

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/your-org/storefront-backend/internal/pkg/notify"
)

// fakeRemote is an in-memory Remote with per-operation error injection
// and call recording.
type fakeRemote struct {
	mu      sync.Mutex
	rows    map[string]map[string]bool // userID -> productID -> present
	listErr error
	addErr  error
	delErr  error
	calls   []string

	// hooks fire once, just before the wrapped call returns
	onList func(userID string)
	onAdd  func(userID, productID string)
}

func newFakeRemote() *fakeRemote {
	return &fakeRemote{rows: make(map[string]map[string]bool)}
}

func (f *fakeRemote) seed(userID string, productIDs ...string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.rows[userID] == nil {
		f.rows[userID] = make(map[string]bool)
	}
	for _, id := range productIDs {
		f.rows[userID][id] = true
	}
}

func (f *fakeRemote) List(_ context.Context, userID string) ([]string, error) {
	f.mu.Lock()
	f.calls = append(f.calls, "list:"+userID)
	hook := f.onList
	f.onList = nil
	var out []string
	for id := range f.rows[userID] {
		out = append(out, id)
	}
	err := f.listErr
	f.mu.Unlock()

	if hook != nil {
		hook(userID)
	}
	if err != nil {
		return nil, err
	}
	return out, nil
}

func (f *fakeRemote) Add(_ context.Context, userID, productID string) error {
	f.mu.Lock()
	f.calls = append(f.calls, "add:"+userID+":"+productID)
	hook := f.onAdd
	f.onAdd = nil
	if f.addErr != nil {
		f.mu.Unlock()
		return f.addErr
	}
	if f.rows[userID] == nil {
		f.rows[userID] = make(map[string]bool)
	}
	f.rows[userID][productID] = true
	f.mu.Unlock()

	if hook != nil {
		hook(userID, productID)
	}
	return nil
}

func (f *fakeRemote) Remove(_ context.Context, userID, productID string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls = append(f.calls, "remove:"+userID+":"+productID)
	if f.delErr != nil {
		return f.delErr
	}
	delete(f.rows[userID], productID)
	return nil
}

func (f *fakeRemote) callCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.calls)
}

// captureNotifier records notifications for assertions
type captureNotifier struct {
	mu     sync.Mutex
	titles []string
}

func (c *captureNotifier) Notify(title, _ string, _ notify.Severity) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.titles = append(c.titles, title)
}

func (c *captureNotifier) last() string {
	c.mu.Lock()
	defer c.mu.Unlock()
	if len(c.titles) == 0 {
		return ""
	}
	return c.titles[len(c.titles)-1]
}

func newFavoritesStore(remote Remote, notifier notify.Notifier) *Store {
	log := logrus.New()
	log.SetLevel(logrus.PanicLevel)
	return NewStore(remote, notifier, log)
}

func TestToggleRequiresAuthentication(t *testing.T) {
	remote := newFakeRemote()
	notifier := &captureNotifier{}
	s := newFavoritesStore(remote, notifier)

	_, err := s.Toggle(context.Background(), "p1")

	require.ErrorIs(t, err, ErrAuthRequired)
	assert.Empty(t, s.Favorites())
	assert.Zero(t, remote.callCount(), "must not touch the remote store")
	assert.Equal(t, "Login required", notifier.last())
}

func TestSetIdentityLoadsFavorites(t *testing.T) {
	remote := newFakeRemote()
	remote.seed("alice", "p1", "p2")
	s := newFavoritesStore(remote, &captureNotifier{})

	s.SetIdentity(context.Background(), "alice")

	assert.False(t, s.Loading())
	assert.Equal(t, []string{"p1", "p2"}, s.Favorites())
	assert.True(t, s.IsFavorite("p1"))
	assert.False(t, s.IsFavorite("p9"))
}

func TestSetIdentityLoadFailureYieldsEmptyReadySet(t *testing.T) {
	remote := newFakeRemote()
	remote.seed("alice", "p1")
	remote.listErr = errors.New("network down")
	s := newFavoritesStore(remote, &captureNotifier{})

	s.SetIdentity(context.Background(), "alice")

	assert.False(t, s.Loading(), "load failure must still end the loading state")
	assert.Empty(t, s.Favorites())

	// Toggles are accepted afterwards
	remote.listErr = nil
	added, err := s.Toggle(context.Background(), "p2")
	require.NoError(t, err)
	assert.True(t, added)
}

func TestToggleAddsAndRemoves(t *testing.T) {
	remote := newFakeRemote()
	notifier := &captureNotifier{}
	s := newFavoritesStore(remote, notifier)
	ctx := context.Background()
	s.SetIdentity(ctx, "alice")

	added, err := s.Toggle(ctx, "p1")
	require.NoError(t, err)
	assert.True(t, added)
	assert.True(t, s.IsFavorite("p1"))
	assert.Equal(t, "Added to favorites", notifier.last())

	added, err = s.Toggle(ctx, "p1")
	require.NoError(t, err)
	assert.False(t, added)
	assert.False(t, s.IsFavorite("p1"), "toggling twice returns to the original state")
	assert.Equal(t, "Removed from favorites", notifier.last())

	assert.False(t, remote.rows["alice"]["p1"], "remote row removed")
}

func TestToggleFailureLeavesMembershipUnchanged(t *testing.T) {
	ctx := context.Background()

	t.Run("insert failure", func(t *testing.T) {
		remote := newFakeRemote()
		notifier := &captureNotifier{}
		s := newFavoritesStore(remote, notifier)
		s.SetIdentity(ctx, "alice")

		remote.addErr = errors.New("constraint violation")
		_, err := s.Toggle(ctx, "p1")

		require.Error(t, err)
		assert.False(t, s.IsFavorite("p1"))
		assert.Equal(t, "Error", notifier.last())
	})

	t.Run("delete failure", func(t *testing.T) {
		remote := newFakeRemote()
		remote.seed("alice", "p1")
		notifier := &captureNotifier{}
		s := newFavoritesStore(remote, notifier)
		s.SetIdentity(ctx, "alice")

		remote.delErr = errors.New("network down")
		_, err := s.Toggle(ctx, "p1")

		require.Error(t, err)
		assert.True(t, s.IsFavorite("p1"), "no optimistic removal before confirmation")
		assert.Equal(t, "Error", notifier.last())
	})
}

func TestIdentitySwitchClearsAndReloads(t *testing.T) {
	remote := newFakeRemote()
	remote.seed("alice", "p1")
	remote.seed("bob", "p2", "p3")
	s := newFavoritesStore(remote, &captureNotifier{})
	ctx := context.Background()

	s.SetIdentity(ctx, "alice")
	assert.Equal(t, []string{"p1"}, s.Favorites())

	s.SetIdentity(ctx, "bob")
	assert.Equal(t, []string{"p2", "p3"}, s.Favorites())
	assert.False(t, s.IsFavorite("p1"), "previous user's favorites must not leak")
}

func TestSignOutTearsDownState(t *testing.T) {
	remote := newFakeRemote()
	remote.seed("alice", "p1")
	s := newFavoritesStore(remote, &captureNotifier{})
	ctx := context.Background()

	s.SetIdentity(ctx, "alice")
	s.SetIdentity(ctx, "")

	assert.Empty(t, s.Favorites())
	assert.False(t, s.Loading())

	_, err := s.Toggle(ctx, "p1")
	assert.ErrorIs(t, err, ErrAuthRequired)
}

func TestSetIdentitySameUserIsNoop(t *testing.T) {
	remote := newFakeRemote()
	remote.seed("alice", "p1")
	s := newFavoritesStore(remote, &captureNotifier{})
	ctx := context.Background()

	s.SetIdentity(ctx, "alice")
	before := remote.callCount()
	s.SetIdentity(ctx, "alice")

	assert.Equal(t, before, remote.callCount())
}

func TestStaleLoadResultIsDiscarded(t *testing.T) {
	remote := newFakeRemote()
	remote.seed("alice", "p1")
	remote.seed("bob", "p2")
	s := newFavoritesStore(remote, &captureNotifier{})
	ctx := context.Background()

	// Switch identities while alice's load is still in flight; her
	// result arrives late and must not clobber bob's set.
	remote.onList = func(userID string) {
		if userID == "alice" {
			s.SetIdentity(ctx, "bob")
		}
	}

	s.SetIdentity(ctx, "alice")

	assert.Equal(t, []string{"p2"}, s.Favorites())
	assert.False(t, s.IsFavorite("p1"))
}

func TestStaleToggleResultIsDiscarded(t *testing.T) {
	remote := newFakeRemote()
	remote.seed("bob", "p2")
	notifier := &captureNotifier{}
	s := newFavoritesStore(remote, notifier)
	ctx := context.Background()

	s.SetIdentity(ctx, "alice")

	// Switch identities while alice's insert is still in flight; the
	// confirmed write must not mutate bob's set, notify, or report an
	// added favorite.
	remote.onAdd = func(_, _ string) {
		s.SetIdentity(ctx, "bob")
	}

	favorited, err := s.Toggle(ctx, "p1")

	require.NoError(t, err)
	assert.False(t, favorited)
	assert.False(t, s.IsFavorite("p1"))
	assert.Equal(t, []string{"p2"}, s.Favorites())
	assert.Equal(t, "", notifier.last(), "no outcome notification for a discarded result")
	assert.True(t, remote.rows["alice"]["p1"], "the remote write for the old identity still happened")
}
