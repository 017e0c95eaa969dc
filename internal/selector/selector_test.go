package selector

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"example.com/supplementstack/internal/catalog"
	"example.com/supplementstack/internal/domain"
	"example.com/supplementstack/internal/normalize"
)

func seededSelector() *Selector {
	return New(catalog.NewView(catalog.NewMemoryStore(), catalog.DefaultTTL))
}

func ids(items []domain.CatalogItem) []string {
	out := make([]string, 0, len(items))
	for _, item := range items {
		out = append(out, item.ID)
	}
	return out
}

func profile(goal string, budget domain.Cents, diet ...string) domain.NormalizedProfile {
	return normalize.Profile(domain.UserProfile{
		Age:                 28,
		Gender:              domain.GenderMale,
		Goals:               []string{goal},
		DietaryRestrictions: diet,
		BudgetMonthly:       budget,
		ActivityLevel:       domain.ActivityActive,
	})
}

func TestSelectMuscleBuildingWithinBudget(t *testing.T) {
	sel, err := seededSelector().Select(context.Background(), profile("weight-lifting", 10000))
	require.NoError(t, err)

	require.Equal(t, []string{
		catalog.ItemWheyProtein,
		catalog.ItemCreatine,
		catalog.ItemVitaminD3,
		catalog.ItemMagnesium,
		catalog.ItemZinc,
	}, ids(sel.Items))
	require.Equal(t, domain.Cents(9995), sel.Total)
	require.LessOrEqual(t, sel.Total, domain.Cents(10000))
}

func TestSelectVeganSubstitutesPlantProtein(t *testing.T) {
	sel, err := seededSelector().Select(context.Background(), profile("muscle-building", 10000, "vegan"))
	require.NoError(t, err)

	got := ids(sel.Items)
	require.Contains(t, got, catalog.ItemPlantProtein)
	require.NotContains(t, got, catalog.ItemWheyProtein)
	require.Contains(t, got, catalog.ItemVeganD3)
	require.Equal(t, domain.Cents(9696), sel.Total)
	for _, item := range sel.Items {
		require.True(t, item.Dietary.VeganSafe, item.ID)
	}
}

func TestSelectVegetarianSubstitutesPlantProtein(t *testing.T) {
	sel, err := seededSelector().Select(context.Background(), profile("muscle-building", 10000, "vegetarian"))
	require.NoError(t, err)

	got := ids(sel.Items)
	require.Contains(t, got, catalog.ItemPlantProtein)
	require.NotContains(t, got, catalog.ItemWheyProtein)
	require.Contains(t, got, catalog.ItemVitaminD3, "lanolin D3 is vegetarian-safe")
	require.LessOrEqual(t, sel.Total, domain.Cents(10000))
	for _, item := range sel.Items {
		require.True(t, item.CompatibleWith([]domain.DietaryRestriction{domain.DietVegetarian}), item.ID)
	}
}

func TestSelectTinyBudgetYieldsEmptySelection(t *testing.T) {
	sel, err := seededSelector().Select(context.Background(), profile("general-health", 500))
	require.NoError(t, err)
	require.Empty(t, sel.Items)
	require.Equal(t, domain.Cents(0), sel.Total)
	require.NotEmpty(t, sel.Skipped)
	for _, skip := range sel.Skipped {
		require.Equal(t, SkipOverBudget, skip.Reason)
	}
}

func TestSelectUnknownGoalReturnsNoCandidate(t *testing.T) {
	_, err := seededSelector().Select(context.Background(), profile("underwater-basket-weaving", 10000))
	require.ErrorIs(t, err, domain.ErrNoCandidate)
}

func TestSelectPropagatesCatalogFailure(t *testing.T) {
	s := New(failingReader{err: domain.ErrCatalogUnavailable})
	_, err := s.Select(context.Background(), profile("endurance", 10000))
	require.ErrorIs(t, err, domain.ErrCatalogUnavailable)
}

func TestPackNeverExceedsBudget(t *testing.T) {
	items := catalog.SeedItems()
	for _, goal := range domain.CanonicalGoals() {
		tiered := Tiered{}
		for _, item := range items {
			if tier := item.TierFor(goal); tier != domain.TierNone {
				tiered[tier] = append(tiered[tier], item)
			}
		}
		for budget := domain.Cents(0); budget <= 20000; budget += 733 {
			sel := Pack(tiered, budget, Rules{})
			require.LessOrEqual(t, sel.Total, budget, "goal %s budget %s", goal, budget)

			var sum domain.Cents
			for _, item := range sel.Items {
				sum += item.Price
			}
			require.Equal(t, sum, sel.Total)
		}
	}
}

func TestPackUsesSubstitutePriceForBudget(t *testing.T) {
	dairy := domain.CatalogItem{ID: "dairy", Price: 1000, SubstituteID: "plant"}
	plant := domain.CatalogItem{ID: "plant", Price: 1500, Dietary: domain.DietaryFlags{VeganSafe: true, DairyFree: true}}
	rules := Rules{
		Diet: []domain.DietaryRestriction{domain.DietVegan},
		Substitute: func(id string) (domain.CatalogItem, bool) {
			return plant, id == "plant"
		},
	}

	sel := Pack(Tiered{domain.TierEssential: {dairy}}, 1200, rules)
	require.Empty(t, sel.Items)
	require.Equal(t, []Skip{{ItemID: "plant", Tier: domain.TierEssential, Reason: SkipOverBudget}}, sel.Skipped)

	sel = Pack(Tiered{domain.TierEssential: {dairy}}, 1500, rules)
	require.Equal(t, []string{"plant"}, ids(sel.Items))
}

func TestPackSkipsIncompatibleWithoutSubstitute(t *testing.T) {
	collagen := domain.CatalogItem{ID: "collagen", Price: 100}
	sel := Pack(Tiered{domain.TierSupportive: {collagen}}, 1000, Rules{Diet: []domain.DietaryRestriction{domain.DietVegetarian}})
	require.Empty(t, sel.Items)
	require.Equal(t, SkipDietIncompatible, sel.Skipped[0].Reason)
}

func TestPackSkipsAlreadyTakingAndDuplicates(t *testing.T) {
	creatine := domain.CatalogItem{ID: "creatine-monohydrate", Name: "Creatine", Category: "creatine", Price: 100}
	magnesium := domain.CatalogItem{ID: "magnesium", Category: "magnesium", Price: 100}
	tiered := Tiered{
		domain.TierEssential:  {creatine, magnesium},
		domain.TierBeneficial: {magnesium},
	}

	sel := Pack(tiered, 1000, Rules{Taking: []string{" CREATINE "}})
	require.Equal(t, []string{"magnesium"}, ids(sel.Items))
	require.Equal(t, []Skip{
		{ItemID: "creatine-monohydrate", Tier: domain.TierEssential, Reason: SkipAlreadyTaking},
		{ItemID: "magnesium", Tier: domain.TierBeneficial, Reason: SkipDuplicate},
	}, sel.Skipped)
}

func TestPackContinuesPastExpensiveEssential(t *testing.T) {
	expensive := domain.CatalogItem{ID: "expensive", Price: 5000}
	cheap := domain.CatalogItem{ID: "cheap", Price: 500}

	sel := Pack(Tiered{domain.TierEssential: {expensive, cheap}}, 1000, Rules{})
	require.Equal(t, []string{"cheap"}, ids(sel.Items))
}

type failingReader struct {
	err error
}

func (f failingReader) ListItemsForGoal(context.Context, domain.Goal) ([]domain.CatalogItem, error) {
	return nil, f.err
}

func (f failingReader) GetItems(context.Context, []string) ([]domain.CatalogItem, error) {
	return nil, f.err
}
