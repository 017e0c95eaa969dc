package annotate

import (
	"testing"

	"github.com/stretchr/testify/require"

	"example.com/supplementstack/internal/catalog"
	"example.com/supplementstack/internal/domain"
)

func items(t *testing.T, ids ...string) []domain.CatalogItem {
	t.Helper()
	byID := make(map[string]domain.CatalogItem)
	for _, item := range catalog.SeedItems() {
		byID[item.ID] = item
	}
	out := make([]domain.CatalogItem, 0, len(ids))
	for _, id := range ids {
		item, ok := byID[id]
		require.True(t, ok, "unknown seed item %s", id)
		out = append(out, item)
	}
	return out
}

func TestAnnotateLifterStack(t *testing.T) {
	syn, warnings := Annotate(items(t,
		catalog.ItemWheyProtein,
		catalog.ItemCreatine,
		catalog.ItemVitaminD3,
		catalog.ItemMagnesium,
		catalog.ItemZinc,
	))

	require.Equal(t, []string{
		synergies[0].note,
		synergies[1].note,
		synergies[3].note,
	}, syn)

	require.Equal(t, []string{
		warningRules[0].warning,
		warningRules[1].warning,
		warningRules[6].warning,
		WarningConsultProvider,
		WarningStartLow,
	}, warnings)
}

func TestAnnotatePlantProteinHasNoLactoseWarning(t *testing.T) {
	_, warnings := Annotate(items(t, catalog.ItemPlantProtein, catalog.ItemCreatine))
	require.NotContains(t, warnings, warningRules[1].warning)
	require.Contains(t, warnings, warningRules[0].warning)
}

func TestAnnotateEmptyItemsKeepsUniversalWarnings(t *testing.T) {
	syn, warnings := Annotate(nil)
	require.NotNil(t, syn)
	require.Empty(t, syn)
	require.Equal(t, []string{WarningConsultProvider, WarningStartLow}, warnings)
}

func TestAnnotateWarningsAppearOnce(t *testing.T) {
	_, warnings := Annotate(items(t, catalog.ItemCaffeine, catalog.ItemGreenTea, catalog.ItemFishOil, catalog.ItemAlgaeOmega3))

	seen := make(map[string]int)
	for _, w := range warnings {
		seen[w]++
	}
	for w, n := range seen {
		require.Equal(t, 1, n, w)
	}
	require.Len(t, warnings, 4)
}

func TestAnnotateSynergyPairIsOrderIndependent(t *testing.T) {
	forward, _ := Annotate(items(t, catalog.ItemMagnesium, catalog.ItemMelatonin))
	reverse, _ := Annotate(items(t, catalog.ItemMelatonin, catalog.ItemMagnesium))
	require.Equal(t, forward, reverse)
	require.Equal(t, []string{synergies[6].note}, forward)
}
