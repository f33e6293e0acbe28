package favorites

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"sync"

	"github.com/sirupsen/logrus"
	"github.com/your-org/storefront-backend/internal/pkg/notify"
)

// ErrAuthRequired is returned when a mutation is attempted without an
// authenticated identity.
var ErrAuthRequired = errors.New("authentication required")

// ErrLoading is returned when a toggle arrives before the initial load
// for the current identity has finished.
var ErrLoading = errors.New("favorites are still loading")

// Store mirrors one user's favorite-product set against the remote
// store. Mutations are confirm-then-apply: the local set changes only
// after the remote operation succeeds, so a failure never leaves the
// mirror ahead of the source of truth.
//
// The set is scoped to the authenticated identity. Any identity change
// discards it; a superseded load or toggle result is never applied to
// the new identity's set.
type Store struct {
	remote   Remote
	notifier notify.Notifier
	log      *logrus.Logger

	// toggleMu serializes toggles end to end so two in-flight toggles
	// on the same product cannot leave the mirror and the remote store
	// disagreeing about the final state.
	toggleMu sync.Mutex

	mu         sync.Mutex
	userID     string
	generation uint64
	loading    bool
	set        map[string]struct{}
}

// NewStore creates a favorites store in the unauthenticated state
func NewStore(remote Remote, notifier notify.Notifier, log *logrus.Logger) *Store {
	return &Store{
		remote:   remote,
		notifier: notifier,
		log:      log,
		set:      make(map[string]struct{}),
	}
}

// SetIdentity switches the store to a new authenticated identity. An
// empty userID means signed out. The current set is always discarded;
// with a non-empty identity the favorites are reloaded from the remote
// store. A load failure leaves the set empty and is logged, not fatal.
func (s *Store) SetIdentity(ctx context.Context, userID string) {
	s.mu.Lock()
	if s.userID == userID {
		s.mu.Unlock()
		return
	}

	s.userID = userID
	s.generation++
	s.set = make(map[string]struct{})

	if userID == "" {
		s.loading = false
		s.mu.Unlock()
		return
	}

	s.loading = true
	gen := s.generation
	s.mu.Unlock()

	productIDs, err := s.remote.List(ctx, userID)

	s.mu.Lock()
	defer s.mu.Unlock()

	// Another identity change happened while the load was in flight;
	// its result belongs to a dead generation.
	if s.generation != gen {
		return
	}

	s.loading = false
	if err != nil {
		s.log.WithError(err).WithField("user_id", userID).Error("failed to load favorites")
		return
	}

	for _, id := range productIDs {
		s.set[id] = struct{}{}
	}
}

// Toggle flips membership of a product in the user's favorites. It
// reports whether the product ended up favorited. The local set is
// mutated only after the remote confirms; on any failure membership is
// unchanged from before the call. A result superseded by an identity
// change is discarded without applying or notifying.
func (s *Store) Toggle(ctx context.Context, productID string) (bool, error) {
	s.toggleMu.Lock()
	defer s.toggleMu.Unlock()

	s.mu.Lock()
	if s.userID == "" {
		s.mu.Unlock()
		s.notifier.Notify("Login required", "Sign in to favorite products.", notify.SeverityError)
		return false, ErrAuthRequired
	}
	if s.loading {
		s.mu.Unlock()
		return false, ErrLoading
	}

	userID := s.userID
	gen := s.generation
	_, isFav := s.set[productID]
	s.mu.Unlock()

	var err error
	if isFav {
		err = s.remote.Remove(ctx, userID, productID)
	} else {
		err = s.remote.Add(ctx, userID, productID)
	}

	if err != nil {
		s.log.WithError(err).WithFields(logrus.Fields{
			"user_id":    userID,
			"product_id": productID,
		}).Error("favorite toggle failed")
		s.notifier.Notify("Error", err.Error(), notify.SeverityError)
		return isFav, fmt.Errorf("failed to toggle favorite: %w", err)
	}

	s.mu.Lock()
	if s.generation != gen {
		// The identity changed while the write was in flight. The result
		// belongs to the previous user, so the new set stays untouched
		// and no outcome is reported.
		s.mu.Unlock()
		return false, nil
	}
	if isFav {
		delete(s.set, productID)
	} else {
		s.set[productID] = struct{}{}
	}
	s.mu.Unlock()

	if isFav {
		s.notifier.Notify("Removed from favorites", "Product removed from your list.", notify.SeveritySuccess)
	} else {
		s.notifier.Notify("Added to favorites", "Product added to your list.", notify.SeveritySuccess)
	}
	return !isFav, nil
}

// IsFavorite reports membership against the current local set. It never
// triggers a fetch.
func (s *Store) IsFavorite(productID string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	_, ok := s.set[productID]
	return ok
}

// Favorites returns the favorited product ids, sorted for stable output
func (s *Store) Favorites() []string {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make([]string, 0, len(s.set))
	for id := range s.set {
		out = append(out, id)
	}
	sort.Strings(out)
	return out
}

// Loading reports whether the initial load for the current identity is
// still in flight.
func (s *Store) Loading() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.loading
}
