// Package register owns the canonical in-memory receipt collection and its
// only sanctioned mutation surface. Every mutation produces a fresh internal
// slice, so snapshots handed out earlier are never aliased by later edits.
package register

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"

	"jeopsu/internal/core"
)

// Repository is the durable storage port. Load returns the stored
// collection (empty when nothing was stored yet); Save rewrites it in full.
type Repository interface {
	Load(ctx context.Context) ([]core.ReceiptItem, error)
	Save(ctx context.Context, items []core.ReceiptItem) error
}

// Store holds the receipt collection. All operations are safe for
// concurrent use; mutations are write-through to the repository, and
// persistence failures are logged but never fail the mutation.
type Store struct {
	mu      sync.Mutex
	items   []core.ReceiptItem
	repo    Repository
	version int64

	// overridable in tests
	now   func() time.Time
	newID func() string
}

func New(repo Repository) *Store {
	return &Store{
		repo:  repo,
		now:   time.Now,
		newID: uuid.NewString,
	}
}

// LoadInitial restores the collection from the repository. A load failure
// is non-fatal: the store starts empty and keeps operating in memory.
func (s *Store) LoadInitial(ctx context.Context) {
	if s.repo == nil {
		return
	}
	items, err := s.repo.Load(ctx)
	if err != nil {
		slog.WarnContext(ctx, "Failed to load receipts, starting empty", "error", err)
		items = nil
	}

	s.mu.Lock()
	s.items = items
	s.mu.Unlock()
}

// Create validates the draft, assigns identity and initial workflow state,
// and prepends the new receipt (newest-first ordering).
func (s *Store) Create(ctx context.Context, draft core.Draft) (core.ReceiptItem, error) {
	if err := draft.Validate(); err != nil {
		return core.ReceiptItem{}, err
	}
	if draft.Qty <= 0 {
		draft.Qty = 1
	}

	item := draft.Apply(core.ReceiptItem{
		ID:        s.newID(),
		Status:    core.StatusReceived,
		DoneDate:  "",
		CreatedAt: s.now().UnixMilli(),
	})

	s.mu.Lock()
	next := make([]core.ReceiptItem, 0, len(s.items)+1)
	next = append(next, item)
	next = append(next, s.items...)
	s.items = next
	s.version++
	s.mu.Unlock()

	s.persist(ctx)

	slog.InfoContext(ctx, "Receipt created",
		"receipt_id", item.ID,
		"receipt_type", string(item.Type),
		"customer", item.Customer,
		"qty", item.Qty)
	return item, nil
}

// Update merges the draft into the receipt with the given id. Status and
// DoneDate are untouched by this path, and the position in the ordered
// collection does not change.
func (s *Store) Update(ctx context.Context, id string, draft core.Draft) (core.ReceiptItem, error) {
	if err := draft.Validate(); err != nil {
		return core.ReceiptItem{}, err
	}

	s.mu.Lock()
	idx := s.indexOf(id)
	if idx < 0 {
		s.mu.Unlock()
		return core.ReceiptItem{}, core.ErrNotFound
	}

	next := make([]core.ReceiptItem, len(s.items))
	copy(next, s.items)
	next[idx] = draft.Apply(next[idx])
	updated := next[idx]
	s.items = next
	s.version++
	s.mu.Unlock()

	s.persist(ctx)

	slog.InfoContext(ctx, "Receipt updated", "receipt_id", id)
	return updated, nil
}

// Delete removes the receipt with the given id. Irreversible.
func (s *Store) Delete(ctx context.Context, id string) error {
	s.mu.Lock()
	idx := s.indexOf(id)
	if idx < 0 {
		s.mu.Unlock()
		return core.ErrNotFound
	}

	next := make([]core.ReceiptItem, 0, len(s.items)-1)
	next = append(next, s.items[:idx]...)
	next = append(next, s.items[idx+1:]...)
	s.items = next
	s.version++
	s.mu.Unlock()

	s.persist(ctx)

	slog.InfoContext(ctx, "Receipt deleted", "receipt_id", id)
	return nil
}

// SetStatus moves the receipt to the new status. Completed-class statuses
// stamp DoneDate with today's local date; all other statuses leave DoneDate
// at its prior value, even when moving away from a completed status. That
// one-way behavior is intentional and relied on by the display layer.
func (s *Store) SetStatus(ctx context.Context, id string, status core.ReceiptStatus) (core.ReceiptItem, error) {
	if err := status.Validate(); err != nil {
		return core.ReceiptItem{}, err
	}

	s.mu.Lock()
	idx := s.indexOf(id)
	if idx < 0 {
		s.mu.Unlock()
		return core.ReceiptItem{}, core.ErrNotFound
	}

	next := make([]core.ReceiptItem, len(s.items))
	copy(next, s.items)
	next[idx].Status = status
	if status.IsCompleted() {
		next[idx].DoneDate = s.now().Format("2006-01-02")
	}
	updated := next[idx]
	s.items = next
	s.version++
	s.mu.Unlock()

	s.persist(ctx)

	slog.InfoContext(ctx, "Receipt status changed",
		"receipt_id", id,
		"receipt_status", string(status),
		"done_date", updated.DoneDate)
	return updated, nil
}

// Get returns the receipt with the given id.
func (s *Store) Get(id string) (core.ReceiptItem, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if idx := s.indexOf(id); idx >= 0 {
		return s.items[idx], nil
	}
	return core.ReceiptItem{}, core.ErrNotFound
}

// Snapshot returns a point-in-time copy of the ordered collection.
func (s *Store) Snapshot() []core.ReceiptItem {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]core.ReceiptItem, len(s.items))
	copy(out, s.items)
	return out
}

// Version increments on every successful mutation. Used for change events
// and as a cache key for derived views.
func (s *Store) Version() int64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.version
}

func (s *Store) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.items)
}

// indexOf must be called with s.mu held.
func (s *Store) indexOf(id string) int {
	for i, it := range s.items {
		if it.ID == id {
			return i
		}
	}
	return -1
}

// persist writes the current collection through to the repository.
// Failures are logged and swallowed; the store keeps serving from memory.
func (s *Store) persist(ctx context.Context) {
	if s.repo == nil {
		return
	}
	snapshot := s.Snapshot()
	if err := s.repo.Save(ctx, snapshot); err != nil {
		slog.ErrorContext(ctx, "Failed to persist receipts", "error", err, "count", len(snapshot))
	}
}
