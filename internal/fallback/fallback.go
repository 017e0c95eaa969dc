// Package fallback provides the fixed stack returned when every other path fails.
package fallback

import (
	"example.com/supplementstack/internal/annotate"
	"example.com/supplementstack/internal/domain"
)

// StackID identifies the static stack.
const StackID = "fallback-essentials"

const evidenceScore = 85

var items = []domain.StackItem{
	{
		CatalogItemID: "multivitamin",
		Name:          "Daily Multivitamin",
		Brand:         "Garden of Life",
		Category:      "multivitamin",
		Dosage:        "1 serving daily",
		Timing:        "With breakfast",
		Reasoning:     "Covers common micronutrient gaps as a foundation for any goal",
		Price:         2999,
	},
	{
		CatalogItemID: "fish-oil-omega-3",
		Name:          "Omega-3 Fish Oil",
		Brand:         "Nordic Naturals",
		Category:      "omega-3",
		Dosage:        "1-2g EPA+DHA daily",
		Timing:        "With meals",
		Reasoning:     "Supports heart, brain and joint health",
		Price:         2499,
	},
	{
		CatalogItemID: "magnesium-glycinate",
		Name:          "Magnesium Glycinate",
		Brand:         "Doctor's Best",
		Category:      "magnesium",
		Dosage:        "200-400mg daily",
		Timing:        "Evening, 1 hour before bed",
		Reasoning:     "Supports sleep, muscle relaxation and recovery",
		Price:         1599,
	},
}

var synergies = []string{
	"Omega-3 fats improve absorption of the fat-soluble vitamins in the multivitamin.",
	"Magnesium supports the conversion of vitamin D from the multivitamin into its active form.",
}

var contraindications = []string{
	"Omega-3: consult your doctor if you take blood thinners.",
	annotate.WarningConsultProvider,
	annotate.WarningStartLow,
}

// Stack returns a fresh copy of the static stack. It cannot fail.
func Stack() domain.RecommendationStack {
	stackItems := make([]domain.StackItem, len(items))
	copy(stackItems, items)
	return domain.RecommendationStack{
		ID:                StackID,
		Name:              "Essential Foundation Stack",
		Description:       "A safe, well-researched foundation of three essentials that suits most adults.",
		Items:             stackItems,
		TotalMonthlyCost:  domain.SumPrices(stackItems),
		EvidenceScore:     evidenceScore,
		Synergies:         append([]string(nil), synergies...),
		Contraindications: append([]string(nil), contraindications...),
		Source:            domain.SourceFallback,
	}
}
