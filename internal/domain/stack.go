package domain

// Source tags which tier of the fallback chain produced a stack.
type Source string

const (
	SourceCached    Source = "cached"
	SourceGenerated Source = "generated"
	SourceFallback  Source = "fallback"
)

// ScoreBreakdown itemizes a match score. Demographics covers age, gender and activity.
type ScoreBreakdown struct {
	Budget       int `json:"budget"`
	Goals        int `json:"goals"`
	Concerns     int `json:"concerns"`
	Demographics int `json:"demographics"`
}

// Total sums the sub-scores.
func (b ScoreBreakdown) Total() int {
	return b.Budget + b.Goals + b.Concerns + b.Demographics
}

// MatchResult is the best archetype for a profile.
type MatchResult struct {
	ArchetypeID string         `json:"archetype_id"`
	Score       int            `json:"score"`
	Breakdown   ScoreBreakdown `json:"score_breakdown"`
}

// StackItem is one line of a recommendation.
type StackItem struct {
	CatalogItemID string `json:"catalog_item_id"`
	Name          string `json:"name"`
	Brand         string `json:"brand"`
	Category      string `json:"category"`
	Dosage        string `json:"dosage"`
	Timing        string `json:"timing"`
	Reasoning     string `json:"reasoning"`
	Price         Cents  `json:"price"`
}

// RecommendationStack is the sole output of resolution.
type RecommendationStack struct {
	ID                string      `json:"id"`
	Name              string      `json:"name"`
	Description       string      `json:"description"`
	Items             []StackItem `json:"items"`
	TotalMonthlyCost  Cents       `json:"total_monthly_cost"`
	EvidenceScore     int         `json:"evidence_score"`
	Synergies         []string    `json:"synergies"`
	Contraindications []string    `json:"contraindications"`
	Source            Source      `json:"source"`
	MatchScore        *int        `json:"match_score,omitempty"`
	ArchetypeID       string      `json:"archetype_id,omitempty"`
}

// ItemIDs returns the catalog ids in stack order.
func (s RecommendationStack) ItemIDs() []string {
	ids := make([]string, 0, len(s.Items))
	for _, item := range s.Items {
		ids = append(ids, item.CatalogItemID)
	}
	return ids
}

// SumPrices totals the item prices.
func SumPrices(items []StackItem) Cents {
	var total Cents
	for _, item := range items {
		total += item.Price
	}
	return total
}

// EvidenceScore averages the evidence of the given items, 0 for none.
func EvidenceScore(items []CatalogItem) int {
	if len(items) == 0 {
		return 0
	}
	total := 0
	for _, item := range items {
		total += item.EvidenceLevel.Score()
	}
	return (total + len(items)/2) / len(items)
}
