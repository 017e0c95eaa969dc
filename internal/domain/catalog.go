package domain

import "context"

// Tier ranks a catalog item for one goal.
type Tier string

const (
	TierEssential  Tier = "essential"
	TierBeneficial Tier = "beneficial"
	TierSupportive Tier = "supportive"
	TierNone       Tier = "none"
)

// PackingOrder is the order in which tiers are consumed under a budget.
var PackingOrder = []Tier{TierEssential, TierBeneficial, TierSupportive}

// EvidenceLevel rates the scientific support behind an item.
type EvidenceLevel string

const (
	EvidenceVeryHigh EvidenceLevel = "very_high"
	EvidenceHigh     EvidenceLevel = "high"
	EvidenceModerate EvidenceLevel = "moderate"
	EvidenceLimited  EvidenceLevel = "limited"
)

// Score maps the level onto a 0-100 scale.
func (e EvidenceLevel) Score() int {
	switch e {
	case EvidenceVeryHigh:
		return 95
	case EvidenceHigh:
		return 85
	case EvidenceModerate:
		return 70
	case EvidenceLimited:
		return 50
	default:
		return 40
	}
}

// DietaryFlags records which diets an item is compatible with.
type DietaryFlags struct {
	VeganSafe      bool `json:"vegan_safe"`
	VegetarianSafe bool `json:"vegetarian_safe"`
	DairyFree      bool `json:"dairy_free"`
	GlutenFree     bool `json:"gluten_free"`
}

// Satisfies reports whether the flags meet one restriction. Unknown
// restrictions are treated as satisfied.
func (f DietaryFlags) Satisfies(r DietaryRestriction) bool {
	switch r {
	case DietVegan:
		return f.VeganSafe
	case DietVegetarian:
		return f.VegetarianSafe || f.VeganSafe
	case DietDairyFree:
		return f.DairyFree
	case DietGlutenFree:
		return f.GlutenFree
	default:
		return true
	}
}

// CatalogItem is one purchasable supplement from the catalog snapshot.
type CatalogItem struct {
	ID            string        `json:"id"`
	Name          string        `json:"name"`
	Brand         string        `json:"brand"`
	Category      string        `json:"category"`
	Price         Cents         `json:"price"`
	Tiers         map[Goal]Tier `json:"tiers"`
	EvidenceLevel EvidenceLevel `json:"evidence_level"`
	StudyCount    int           `json:"study_count"`
	Dietary       DietaryFlags  `json:"dietary"`
	SubstituteID  string        `json:"substitute_id,omitempty"`
	Dosage        string        `json:"dosage"`
	Timing        string        `json:"timing"`
	Rationale     string        `json:"rationale"`
}

// TierFor returns the item's tier for goal, TierNone when unranked.
func (i CatalogItem) TierFor(goal Goal) Tier {
	if t, ok := i.Tiers[goal]; ok {
		return t
	}
	return TierNone
}

// CompatibleWith reports whether the item satisfies every restriction.
func (i CatalogItem) CompatibleWith(restrictions []DietaryRestriction) bool {
	for _, r := range restrictions {
		if !i.Dietary.Satisfies(r) {
			return false
		}
	}
	return true
}

// Archetype is a precomputed persona with a ready-made stack.
type Archetype struct {
	ID              string          `json:"id"`
	Name            string          `json:"name"`
	AgeMin          int             `json:"age_min"`
	AgeMax          int             `json:"age_max"`
	Gender          Gender          `json:"gender"`
	ActivityLevels  []ActivityLevel `json:"activity_levels"`
	Goals           []Goal          `json:"goals"`
	BudgetReference Cents           `json:"budget_reference"`
	SupplementIDs   []string        `json:"supplement_ids"`
}

// CatalogReader is the read contract the core consumes from the catalog view.
type CatalogReader interface {
	ListItemsForGoal(ctx context.Context, goal Goal) ([]CatalogItem, error)
	GetItems(ctx context.Context, ids []string) ([]CatalogItem, error)
}

// ArchetypeReader lists the precomputed archetypes.
type ArchetypeReader interface {
	ListArchetypes(ctx context.Context) ([]Archetype, error)
}
