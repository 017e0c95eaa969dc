// Package selector assembles a stack from the catalog under a hard budget ceiling.
package selector

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"example.com/supplementstack/internal/domain"
)

// SkipReason explains why a candidate was left out.
type SkipReason string

const (
	SkipOverBudget       SkipReason = "over_budget"
	SkipDietIncompatible SkipReason = "diet_incompatible"
	SkipAlreadyTaking    SkipReason = "already_taking"
	SkipDuplicate        SkipReason = "duplicate"
)

// Skip is one entry of the packing trace.
type Skip struct {
	ItemID string      `json:"item_id"`
	Tier   domain.Tier `json:"tier"`
	Reason SkipReason  `json:"reason"`
}

// Tiered holds candidate items per tier, each list in catalog order.
type Tiered map[domain.Tier][]domain.CatalogItem

// Rules are the per-profile constraints applied while packing.
type Rules struct {
	Diet []domain.DietaryRestriction
	// Taking lists supplements the user already takes, matched
	// case-insensitively against item id, name and category.
	Taking []string
	// Substitute resolves a designated substitute id. Nil disables substitution.
	Substitute func(id string) (domain.CatalogItem, bool)
}

// Selection is the packing result.
type Selection struct {
	Items   []domain.CatalogItem
	Total   domain.Cents
	Skipped []Skip
}

// Pack walks the tiers in domain.PackingOrder and greedily includes every
// candidate that keeps the running total within budget. Diet-incompatible
// candidates are swapped for their substitute before the budget check.
// Essential items that do not fit are skipped like any other.
func Pack(tiered Tiered, budget domain.Cents, rules Rules) Selection {
	var sel Selection
	chosen := make(map[string]struct{})
	taking := make(map[string]struct{}, len(rules.Taking))
	for _, s := range rules.Taking {
		if t := strings.ToLower(strings.TrimSpace(s)); t != "" {
			taking[t] = struct{}{}
		}
	}

	for _, tier := range domain.PackingOrder {
		for _, candidate := range tiered[tier] {
			item := candidate
			if !item.CompatibleWith(rules.Diet) {
				sub, ok := substitute(item, rules)
				if !ok {
					sel.Skipped = append(sel.Skipped, Skip{ItemID: item.ID, Tier: tier, Reason: SkipDietIncompatible})
					continue
				}
				item = sub
			}
			if _, dup := chosen[item.ID]; dup {
				sel.Skipped = append(sel.Skipped, Skip{ItemID: item.ID, Tier: tier, Reason: SkipDuplicate})
				continue
			}
			if alreadyTaking(item, taking) {
				sel.Skipped = append(sel.Skipped, Skip{ItemID: item.ID, Tier: tier, Reason: SkipAlreadyTaking})
				continue
			}
			if sel.Total+item.Price > budget {
				sel.Skipped = append(sel.Skipped, Skip{ItemID: item.ID, Tier: tier, Reason: SkipOverBudget})
				continue
			}
			chosen[item.ID] = struct{}{}
			sel.Items = append(sel.Items, item)
			sel.Total += item.Price
		}
	}
	return sel
}

func substitute(item domain.CatalogItem, rules Rules) (domain.CatalogItem, bool) {
	if item.SubstituteID == "" || rules.Substitute == nil {
		return domain.CatalogItem{}, false
	}
	sub, ok := rules.Substitute(item.SubstituteID)
	if !ok || !sub.CompatibleWith(rules.Diet) {
		return domain.CatalogItem{}, false
	}
	return sub, true
}

func alreadyTaking(item domain.CatalogItem, taking map[string]struct{}) bool {
	if len(taking) == 0 {
		return false
	}
	for _, key := range []string{item.ID, item.Name, item.Category} {
		if _, ok := taking[strings.ToLower(key)]; ok {
			return true
		}
	}
	return false
}

// Selector binds Pack to the catalog.
type Selector struct {
	catalog domain.CatalogReader
}

// New constructs a Selector over the catalog reader.
func New(catalog domain.CatalogReader) *Selector {
	return &Selector{catalog: catalog}
}

// Select packs a stack for the profile's primary goal. Catalog failures are
// returned wrapped; ErrNoCandidate means the goal has no ranked items.
func (s *Selector) Select(ctx context.Context, profile domain.NormalizedProfile) (Selection, error) {
	goal := profile.PrimaryGoal()
	items, err := s.catalog.ListItemsForGoal(ctx, goal)
	if err != nil {
		return Selection{}, fmt.Errorf("list items for %s: %w", goal, err)
	}

	tiered := make(Tiered, len(domain.PackingOrder))
	subIDs := make([]string, 0)
	for _, item := range items {
		tier := item.TierFor(goal)
		tiered[tier] = append(tiered[tier], item)
		if item.SubstituteID != "" && !item.CompatibleWith(profile.Diet) {
			subIDs = append(subIDs, item.SubstituteID)
		}
	}

	subs := make(map[string]domain.CatalogItem, len(subIDs))
	for _, id := range subIDs {
		found, err := s.catalog.GetItems(ctx, []string{id})
		if errors.Is(err, domain.ErrNoCandidate) {
			// A missing substitute leaves the original to be skipped as incompatible.
			continue
		}
		if err != nil {
			return Selection{}, fmt.Errorf("get substitute %s: %w", id, err)
		}
		if len(found) == 0 {
			continue
		}
		subs[id] = found[0]
	}

	rules := Rules{
		Diet:   profile.Diet,
		Taking: profile.Profile.CurrentSupplements,
		Substitute: func(id string) (domain.CatalogItem, bool) {
			item, ok := subs[id]
			return item, ok
		},
	}
	return Pack(tiered, profile.Profile.BudgetMonthly, rules), nil
}
