// internal/domain/cart/store.go
package cart

import (
	"context"
	"encoding/json"
	"sync"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/your-org/storefront-backend/internal/pkg/kv"
)

// Store owns the ordered line-item collection for one client session.
// All mutations are synchronous and local; the only I/O is the snapshot
// write after each mutation and the snapshot read on construction.
//
// Insertion order is preserved for display. At most one line item exists
// per product id; adding an existing id increments its quantity.
type Store struct {
	mu      sync.Mutex
	items   []LineItem
	storage kv.Store
	key     string
	log     *logrus.Logger
}

// NewStore creates a cart store bound to one storage key and rehydrates
// the previous snapshot if one exists. A missing, unreadable or malformed
// snapshot yields an empty cart; it is never an error.
func NewStore(ctx context.Context, storage kv.Store, key string, log *logrus.Logger) *Store {
	s := &Store{
		storage: storage,
		key:     key,
		log:     log,
	}
	s.restore(ctx)
	return s
}

// AddItem adds one unit of the given product. If the product is already
// in the cart its quantity is incremented; otherwise a new line item is
// appended. Invalid products (empty id, negative price) are ignored.
func (s *Store) AddItem(ctx context.Context, p Product) {
	if p.ID == "" || p.Price < 0 {
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	for i := range s.items {
		if s.items[i].ProductID == p.ID {
			s.items[i].Quantity++
			s.persist(ctx)
			return
		}
	}

	s.items = append(s.items, LineItem{
		ProductID: p.ID,
		Name:      p.Name,
		Price:     p.Price,
		Image:     p.Image,
		Quantity:  1,
		AddedAt:   time.Now().UTC(),
	})
	s.persist(ctx)
}

// RemoveItem deletes the line item for the given product id. Removing an
// id that is not in the cart is a no-op.
func (s *Store) RemoveItem(ctx context.Context, productID string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.removeLocked(ctx, productID)
}

// UpdateQuantity sets the quantity of a line item to an absolute value.
// A quantity of zero or less removes the item. Updating an id that is
// not in the cart is a no-op.
func (s *Store) UpdateQuantity(ctx context.Context, productID string, quantity int) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if quantity <= 0 {
		s.removeLocked(ctx, productID)
		return
	}

	for i := range s.items {
		if s.items[i].ProductID == productID {
			s.items[i].Quantity = quantity
			s.persist(ctx)
			return
		}
	}
}

// Clear empties the cart and deletes the persisted snapshot
func (s *Store) Clear(ctx context.Context) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.items = nil
	if err := s.storage.Delete(ctx, s.key); err != nil {
		s.log.WithError(err).WithField("key", s.key).Error("failed to delete cart snapshot")
	}
}

// Items returns the line items in insertion order
func (s *Store) Items() []LineItem {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make([]LineItem, len(s.items))
	copy(out, s.items)
	return out
}

// TotalItems returns the sum of all quantities
func (s *Store) TotalItems() int {
	s.mu.Lock()
	defer s.mu.Unlock()

	total := 0
	for _, item := range s.items {
		total += item.Quantity
	}
	return total
}

// TotalPrice returns the sum of price * quantity over all line items
func (s *Store) TotalPrice() int64 {
	s.mu.Lock()
	defer s.mu.Unlock()

	var total int64
	for _, item := range s.items {
		total += item.Price * int64(item.Quantity)
	}
	return total
}

// GetTotals returns all derived totals in one read
func (s *Store) GetTotals() Totals {
	s.mu.Lock()
	defer s.mu.Unlock()

	totals := Totals{ItemCount: len(s.items)}
	for _, item := range s.items {
		totals.TotalQuantity += item.Quantity
		totals.TotalPrice += item.Price * int64(item.Quantity)
	}
	return totals
}

// removeLocked deletes a line item; caller holds s.mu
func (s *Store) removeLocked(ctx context.Context, productID string) {
	for i := range s.items {
		if s.items[i].ProductID == productID {
			s.items = append(s.items[:i], s.items[i+1:]...)
			s.persist(ctx)
			return
		}
	}
}

// persist writes the full snapshot; caller holds s.mu. A failed write is
// logged and the in-memory state stays authoritative for the session.
func (s *Store) persist(ctx context.Context) {
	snap := snapshot{
		Items:     s.items,
		UpdatedAt: time.Now().UTC(),
	}

	data, err := json.Marshal(&snap)
	if err != nil {
		s.log.WithError(err).WithField("key", s.key).Error("failed to encode cart snapshot")
		return
	}

	if err := s.storage.Set(ctx, s.key, data); err != nil {
		s.log.WithError(err).WithField("key", s.key).Error("failed to persist cart snapshot")
	}
}

// restore loads the prior snapshot, dropping entries that fail validation
func (s *Store) restore(ctx context.Context) {
	data, ok, err := s.storage.Get(ctx, s.key)
	if err != nil {
		s.log.WithError(err).WithField("key", s.key).Error("failed to read cart snapshot")
		return
	}
	if !ok {
		return
	}

	var snap snapshot
	if err := json.Unmarshal(data, &snap); err != nil {
		s.log.WithError(err).WithField("key", s.key).Warn("discarding malformed cart snapshot")
		return
	}

	items := make([]LineItem, 0, len(snap.Items))
	seen := make(map[string]bool, len(snap.Items))
	for _, item := range snap.Items {
		if item.ProductID == "" || item.Quantity < 1 || item.Price < 0 || seen[item.ProductID] {
			continue
		}
		seen[item.ProductID] = true
		items = append(items, item)
	}
	s.items = items
}
