package api

import (
	"time"

	"example.com/supplementstack/internal/domain"
	"example.com/supplementstack/internal/resolver"
	"example.com/supplementstack/internal/selector"
)

// ResolveRequest is the payload for POST /v1/recommendations. The budget is
// in dollars.
type ResolveRequest struct {
	Age                 int          `json:"age"`
	Gender              string       `json:"gender"`
	Goals               []string     `json:"goals"`
	HealthConcerns      []string     `json:"health_concerns"`
	DietaryRestrictions []string     `json:"dietary_restrictions"`
	BudgetMonthly       domain.Cents `json:"budget_monthly"`
	ActivityLevel       string       `json:"activity_level"`
	ExperienceLevel     string       `json:"experience_level"`
	CurrentSupplements  []string     `json:"current_supplements"`
}

// Profile converts the request to the domain profile.
func (r ResolveRequest) Profile() domain.UserProfile {
	return domain.UserProfile{
		Age:                 r.Age,
		Gender:              domain.Gender(r.Gender),
		Goals:               r.Goals,
		HealthConcerns:      r.HealthConcerns,
		DietaryRestrictions: r.DietaryRestrictions,
		BudgetMonthly:       r.BudgetMonthly,
		ActivityLevel:       domain.ActivityLevel(r.ActivityLevel),
		ExperienceLevel:     domain.ExperienceLevel(r.ExperienceLevel),
		CurrentSupplements:  r.CurrentSupplements,
	}
}

// ExplainedView adds the resolution trace to a stack.
type ExplainedView struct {
	Stack   domain.RecommendationStack `json:"stack"`
	States  []string                   `json:"states"`
	Match   *domain.MatchResult        `json:"match,omitempty"`
	Skipped []selector.Skip            `json:"skipped"`
	Cause   string                     `json:"fallback_cause,omitempty"`
}

// Explain builds the detailed view of a resolution.
func Explain(res resolver.Result) ExplainedView {
	view := ExplainedView{
		Stack:   res.Stack,
		States:  make([]string, 0, len(res.States)),
		Match:   res.Match,
		Skipped: res.Skipped,
	}
	for _, s := range res.States {
		view.States = append(view.States, string(s))
	}
	if view.Skipped == nil {
		view.Skipped = []selector.Skip{}
	}
	if res.Cause != nil {
		view.Cause = res.Cause.Error()
	}
	return view
}

// CatalogItemView is one catalog entry as listed for a goal.
type CatalogItemView struct {
	ID            string               `json:"id"`
	Name          string               `json:"name"`
	Brand         string               `json:"brand"`
	Category      string               `json:"category"`
	Price         domain.Cents         `json:"price"`
	EvidenceLevel domain.EvidenceLevel `json:"evidence_level"`
	Dietary       domain.DietaryFlags  `json:"dietary"`
	Dosage        string               `json:"dosage"`
	Timing        string               `json:"timing"`
}

// CatalogResponse lists the items ranked for a goal, grouped by tier.
type CatalogResponse struct {
	Goal      domain.Goal                       `json:"goal"`
	Canonical bool                              `json:"canonical"`
	Tiers     map[domain.Tier][]CatalogItemView `json:"tiers"`
	LoadedAt  time.Time                         `json:"loaded_at"`
}

func toCatalogView(goal domain.Goal, items []domain.CatalogItem, loadedAt time.Time) CatalogResponse {
	resp := CatalogResponse{
		Goal:      goal,
		Canonical: goal.Known(),
		Tiers:     make(map[domain.Tier][]CatalogItemView, len(domain.PackingOrder)),
		LoadedAt:  loadedAt,
	}
	for _, tier := range domain.PackingOrder {
		resp.Tiers[tier] = []CatalogItemView{}
	}
	for _, item := range items {
		tier := item.TierFor(goal)
		resp.Tiers[tier] = append(resp.Tiers[tier], CatalogItemView{
			ID:            item.ID,
			Name:          item.Name,
			Brand:         item.Brand,
			Category:      item.Category,
			Price:         item.Price,
			EvidenceLevel: item.EvidenceLevel,
			Dietary:       item.Dietary,
			Dosage:        item.Dosage,
			Timing:        item.Timing,
		})
	}
	return resp
}
