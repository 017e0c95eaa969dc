// Package catalog provides the time-cached, read-only view of the supplement catalog.
package catalog

import (
	"context"
	"fmt"
	"time"

	"example.com/supplementstack/internal/cache"
	"example.com/supplementstack/internal/domain"
)

// DefaultTTL is how long a loaded snapshot is served before a reload.
const DefaultTTL = 15 * time.Minute

// Data is a full load of the catalog store. Items are in catalog order.
type Data struct {
	Items      []domain.CatalogItem
	Archetypes []domain.Archetype
}

// Store loads the complete catalog. It is implemented outside the core.
type Store interface {
	Load(ctx context.Context) (Data, error)
}

type snapshot struct {
	items      []domain.CatalogItem
	byID       map[string]int
	archetypes []domain.Archetype
}

func newSnapshot(d Data) *snapshot {
	s := &snapshot{
		items:      make([]domain.CatalogItem, len(d.Items)),
		byID:       make(map[string]int, len(d.Items)),
		archetypes: make([]domain.Archetype, len(d.Archetypes)),
	}
	copy(s.items, d.Items)
	copy(s.archetypes, d.Archetypes)
	for i, item := range s.items {
		s.byID[item.ID] = i
	}
	return s
}

// View is the shared catalog dependency read by the matcher and selector.
// Returned slices are copies; the CatalogItem.Tiers maps are shared and must
// not be modified.
type View struct {
	snap *cache.Snapshot[*snapshot]
}

// ViewOption configures a View.
type ViewOption = cache.Option

// NewView constructs a View over store with the given TTL.
func NewView(store Store, ttl time.Duration, opts ...ViewOption) *View {
	load := func(ctx context.Context) (*snapshot, error) {
		data, err := store.Load(ctx)
		if err != nil {
			return nil, err
		}
		return newSnapshot(data), nil
	}
	return &View{snap: cache.New[*snapshot](load, ttl, opts...)}
}

func (v *View) current(ctx context.Context) (*snapshot, error) {
	s, err := v.snap.Get(ctx)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrCatalogUnavailable, err)
	}
	return s, nil
}

// ListItemsForGoal returns the items ranked for goal, in catalog order.
func (v *View) ListItemsForGoal(ctx context.Context, goal domain.Goal) ([]domain.CatalogItem, error) {
	s, err := v.current(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]domain.CatalogItem, 0)
	for _, item := range s.items {
		if item.TierFor(goal) != domain.TierNone {
			out = append(out, item)
		}
	}
	if len(out) == 0 {
		return nil, fmt.Errorf("%w: no catalog items for goal %q", domain.ErrNoCandidate, goal)
	}
	return out, nil
}

// GetItems returns the items with the given ids, in the order requested.
func (v *View) GetItems(ctx context.Context, ids []string) ([]domain.CatalogItem, error) {
	s, err := v.current(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]domain.CatalogItem, 0, len(ids))
	for _, id := range ids {
		idx, ok := s.byID[id]
		if !ok {
			return nil, fmt.Errorf("%w: catalog item %q not found", domain.ErrNoCandidate, id)
		}
		out = append(out, s.items[idx])
	}
	return out, nil
}

// ListArchetypes returns the archetypes of the current snapshot.
func (v *View) ListArchetypes(ctx context.Context) ([]domain.Archetype, error) {
	s, err := v.current(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]domain.Archetype, len(s.archetypes))
	copy(out, s.archetypes)
	return out, nil
}

// Invalidate marks the snapshot stale so the next read triggers a reload.
func (v *View) Invalidate(ctx context.Context, key string) error {
	return v.snap.Invalidate(ctx, key)
}

// Refresh reloads the snapshot and waits for it.
func (v *View) Refresh(ctx context.Context) error {
	if _, err := v.snap.Refresh(ctx); err != nil {
		return fmt.Errorf("%w: %v", domain.ErrCatalogUnavailable, err)
	}
	return nil
}

// LoadedAt reports when the served snapshot was loaded.
func (v *View) LoadedAt() time.Time {
	return v.snap.LoadedAt()
}
