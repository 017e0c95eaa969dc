// Package annotate derives synergy notes and safety warnings for a set of items.
package annotate

import (
	"example.com/supplementstack/internal/domain"
)

// Universal warnings close every contraindication list.
const (
	WarningConsultProvider = "Consult a healthcare provider before starting any new supplement, especially if you are pregnant, nursing, or take prescription medication."
	WarningStartLow        = "Start at the recommended dose and increase gradually while monitoring how you respond."
)

type synergy struct {
	a, b string
	note string
}

// Pairs are keyed by category and matched in either order.
var synergies = []synergy{
	{"protein", "creatine", "Protein and creatine work together to support muscle growth and strength gains."},
	{"vitamin-d", "magnesium", "Magnesium is required to convert vitamin D into its active form."},
	{"vitamin-d", "omega-3", "Vitamin D is fat-soluble and absorbs better when taken with omega-3 fats."},
	{"zinc", "magnesium", "Zinc and magnesium together support recovery and sleep quality."},
	{"caffeine", "l-theanine", "L-theanine smooths the energy from caffeine and reduces jitters."},
	{"beta-alanine", "creatine", "Beta-alanine and creatine combine for greater high-intensity training capacity."},
	{"magnesium", "melatonin", "Magnesium and melatonin together support falling and staying asleep."},
	{"ashwagandha", "l-theanine", "Ashwagandha and L-theanine complement each other for stress relief."},
	{"probiotic", "fiber", "Fiber feeds probiotic bacteria and supports digestive health."},
}

type warningRule struct {
	applies func(domain.CatalogItem) bool
	warning string
}

func category(names ...string) func(domain.CatalogItem) bool {
	return func(item domain.CatalogItem) bool {
		for _, n := range names {
			if item.Category == n {
				return true
			}
		}
		return false
	}
}

var warningRules = []warningRule{
	{category("creatine"), "Creatine: drink plenty of water throughout the day to stay hydrated."},
	{
		func(item domain.CatalogItem) bool { return item.Category == "protein" && !item.Dietary.DairyFree },
		"Dairy-based protein may cause digestive discomfort if you are lactose sensitive.",
	},
	{category("caffeine", "green-tea"), "Contains stimulants: avoid in the evening and limit other sources of caffeine."},
	{category("omega-3"), "Omega-3: consult your doctor if you take blood thinners."},
	{category("melatonin"), "Melatonin may cause drowsiness: do not drive or operate machinery after taking it."},
	{category("ashwagandha"), "Ashwagandha: avoid with thyroid conditions or sedative medication unless cleared by a doctor."},
	{category("zinc"), "Long-term zinc supplementation can deplete copper; do not exceed 40mg per day."},
	{category("beta-alanine"), "Beta-alanine may cause a harmless tingling sensation (paresthesia)."},
}

// Annotate returns the synergies present among items and the applicable
// warnings. Synergies follow table order; warnings follow rule order, each at
// most once, and always end with the universal warnings.
func Annotate(items []domain.CatalogItem) (synergyNotes, contraindications []string) {
	categories := make(map[string]struct{}, len(items))
	for _, item := range items {
		categories[item.Category] = struct{}{}
	}

	synergyNotes = make([]string, 0)
	for _, s := range synergies {
		_, hasA := categories[s.a]
		_, hasB := categories[s.b]
		if hasA && hasB {
			synergyNotes = append(synergyNotes, s.note)
		}
	}

	contraindications = make([]string, 0, len(warningRules)+2)
	for _, rule := range warningRules {
		for _, item := range items {
			if rule.applies(item) {
				contraindications = append(contraindications, rule.warning)
				break
			}
		}
	}
	contraindications = append(contraindications, WarningConsultProvider, WarningStartLow)
	return synergyNotes, contraindications
}
