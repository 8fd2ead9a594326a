// Package cart implements the persisted shopping cart store. A single
// process-wide Store instance is created at startup and restored from its
// last snapshot, so a cart survives a restart.
package cart

import (
	"context"
	"log/slog"
	"sync"
)

// LineItem is one product entry in the cart with its own quantity.
type LineItem struct {
	ID        string  `json:"id"`
	Name      string  `json:"name"`
	UnitPrice float64 `json:"price"`
	Quantity  int     `json:"quantity"`
	ImageURL  string  `json:"image,omitempty"`
}

// Snapshot is the full cart state as persisted and as handed to subscribers.
type Snapshot struct {
	Items     []LineItem `json:"items"`
	ItemCount int        `json:"item_count"`
	Total     float64    `json:"total"`
}

// Snapshotter persists and restores cart snapshots under a fixed namespace.
type Snapshotter interface {
	Save(ctx context.Context, snap Snapshot) error
	Load(ctx context.Context) (*Snapshot, error)
}

// Store holds the cart line items and their derived aggregates. All
// mutations funnel through recompute, so ItemCount and Total can never be
// observed stale relative to Items.
type Store struct {
	mu        sync.Mutex
	items     []LineItem
	itemCount int
	total     float64

	snap Snapshotter

	nextSubID int
	subs      map[int]func(Snapshot)
}

// New creates a Store and restores the last persisted snapshot, if any.
// A Load failure is logged and yields an empty cart rather than an error:
// losing a stale snapshot must not keep the service from starting.
func New(ctx context.Context, snap Snapshotter) *Store {
	s := &Store{
		snap: snap,
		subs: make(map[int]func(Snapshot)),
	}
	if snap == nil {
		return s
	}

	restored, err := snap.Load(ctx)
	if err != nil {
		slog.Error("Failed to restore cart snapshot", "err", err)
		return s
	}
	if restored != nil {
		s.items = restored.Items
		s.recompute()
	}
	return s
}

// AddItem puts a product into the cart. If a line with the same id already
// exists its quantity is incremented by exactly 1; otherwise the item is
// appended with quantity forced to 1, whatever quantity the input carried.
func (s *Store) AddItem(ctx context.Context, item LineItem) {
	s.mu.Lock()
	for i := range s.items {
		if s.items[i].ID == item.ID {
			s.items[i].Quantity++
			s.finishMutation(ctx)
			return
		}
	}
	item.Quantity = 1
	s.items = append(s.items, item)
	s.finishMutation(ctx)
}

// RemoveItem deletes the line with the given id. Removing an absent id is a
// no-op, not an error.
func (s *Store) RemoveItem(ctx context.Context, id string) {
	s.mu.Lock()
	for i := range s.items {
		if s.items[i].ID == id {
			s.items = append(s.items[:i], s.items[i+1:]...)
			break
		}
	}
	s.finishMutation(ctx)
}

// UpdateQuantity sets the quantity on the matching line verbatim. Zero and
// negative values are stored as given; whether they should remove the line
// is a policy question this store does not decide.
func (s *Store) UpdateQuantity(ctx context.Context, id string, quantity int) {
	s.mu.Lock()
	for i := range s.items {
		if s.items[i].ID == id {
			s.items[i].Quantity = quantity
			break
		}
	}
	s.finishMutation(ctx)
}

// Clear empties the cart and resets both aggregates to zero.
func (s *Store) Clear(ctx context.Context) {
	s.mu.Lock()
	s.items = nil
	s.finishMutation(ctx)
}

// Items returns a copy of the current line items.
func (s *Store) Items() []LineItem {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]LineItem, len(s.items))
	copy(out, s.items)
	return out
}

// ItemCount returns the sum of quantities over all line items.
func (s *Store) ItemCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.itemCount
}

// Total returns the sum of unit price times quantity over all line items.
func (s *Store) Total() float64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.total
}

// Snapshot returns the current state as a value.
func (s *Store) Snapshot() Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.snapshotLocked()
}

// Subscribe registers fn to be called with the post-mutation snapshot after
// every mutating operation. The returned func cancels the subscription.
func (s *Store) Subscribe(fn func(Snapshot)) (cancel func()) {
	s.mu.Lock()
	defer s.mu.Unlock()
	id := s.nextSubID
	s.nextSubID++
	s.subs[id] = fn
	return func() {
		s.mu.Lock()
		defer s.mu.Unlock()
		delete(s.subs, id)
	}
}

// finishMutation recomputes aggregates, persists the snapshot and notifies
// subscribers. It must be entered with the mutex held and releases it.
// Save happens under the lock so concurrent mutations persist in mutation
// order; the store can never hold a newer state than the snapshotter.
func (s *Store) finishMutation(ctx context.Context) {
	s.recompute()
	snap := s.snapshotLocked()
	fns := make([]func(Snapshot), 0, len(s.subs))
	for _, fn := range s.subs {
		fns = append(fns, fn)
	}

	if s.snap != nil {
		if err := s.snap.Save(ctx, snap); err != nil {
			slog.Error("Failed to persist cart snapshot", "err", err)
		}
	}
	s.mu.Unlock()

	for _, fn := range fns {
		fn(snap)
	}
}

// recompute folds the item list into both aggregates. Every mutating entry
// point goes through here; nothing else writes itemCount or total.
func (s *Store) recompute() {
	count := 0
	total := 0.0
	for _, item := range s.items {
		count += item.Quantity
		total += item.UnitPrice * float64(item.Quantity)
	}
	s.itemCount = count
	s.total = total
}

func (s *Store) snapshotLocked() Snapshot {
	items := make([]LineItem, len(s.items))
	copy(items, s.items)
	return Snapshot{Items: items, ItemCount: s.itemCount, Total: s.total}
}
