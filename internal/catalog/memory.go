package catalog

import (
	"context"
	"errors"
	"strings"
	"sync"

	"example.com/supplementstack/internal/domain"
)

// MemoryStore keeps the catalog in memory for local development and tests.
type MemoryStore struct {
	mu         sync.RWMutex
	order      []string
	items      map[string]domain.CatalogItem
	archetypes []domain.Archetype
}

// NewMemoryStore constructs a store populated with the reference catalog.
func NewMemoryStore() *MemoryStore {
	s := NewEmptyMemoryStore()
	for _, item := range SeedItems() {
		_ = s.Upsert(context.Background(), item)
	}
	s.archetypes = SeedArchetypes()
	return s
}

// NewEmptyMemoryStore constructs a store with no items or archetypes.
func NewEmptyMemoryStore() *MemoryStore {
	return &MemoryStore{items: make(map[string]domain.CatalogItem)}
}

// Load implements Store. The result is a copy in insertion order.
func (s *MemoryStore) Load(ctx context.Context) (Data, error) {
	if err := ctx.Err(); err != nil {
		return Data{}, err
	}
	s.mu.RLock()
	defer s.mu.RUnlock()

	data := Data{
		Items:      make([]domain.CatalogItem, 0, len(s.order)),
		Archetypes: make([]domain.Archetype, len(s.archetypes)),
	}
	for _, id := range s.order {
		data.Items = append(data.Items, cloneItem(s.items[id]))
	}
	copy(data.Archetypes, s.archetypes)
	return data, nil
}

// Upsert adds or replaces an item. New items are appended to catalog order.
func (s *MemoryStore) Upsert(ctx context.Context, item domain.CatalogItem) error {
	if strings.TrimSpace(item.ID) == "" {
		return errors.New("item id is required")
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.items[item.ID]; !ok {
		s.order = append(s.order, item.ID)
	}
	s.items[item.ID] = cloneItem(item)
	return nil
}

// Delete removes an item.
func (s *MemoryStore) Delete(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.items[id]; !ok {
		return nil
	}
	delete(s.items, id)
	for i, existing := range s.order {
		if existing == id {
			s.order = append(s.order[:i], s.order[i+1:]...)
			break
		}
	}
	return nil
}

// SetArchetypes replaces the archetype list.
func (s *MemoryStore) SetArchetypes(archetypes []domain.Archetype) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.archetypes = append([]domain.Archetype(nil), archetypes...)
}

func cloneItem(item domain.CatalogItem) domain.CatalogItem {
	if item.Tiers != nil {
		tiers := make(map[domain.Goal]domain.Tier, len(item.Tiers))
		for g, t := range item.Tiers {
			tiers[g] = t
		}
		item.Tiers = tiers
	}
	return item
}
