// Package matcher scores precomputed archetypes against a normalized profile.
package matcher

import (
	"example.com/supplementstack/internal/domain"
)

// Weights are the point values of each scoring dimension. The defaults sum to 100.
type Weights struct {
	Budget   int `koanf:"budget" json:"budget"`
	Concerns int `koanf:"concerns" json:"concerns"`
	Goals    int `koanf:"goals" json:"goals"`
	Age      int `koanf:"age" json:"age"`
	Gender   int `koanf:"gender" json:"gender"`
	Activity int `koanf:"activity" json:"activity"`
}

// Sum returns the maximum achievable score.
func (w Weights) Sum() int {
	return w.Budget + w.Concerns + w.Goals + w.Age + w.Gender + w.Activity
}

// BudgetBand awards Points when the absolute difference between the user's
// budget and the archetype reference is at most Within.
type BudgetBand struct {
	Within domain.Cents `koanf:"within" json:"within"`
	Points int          `koanf:"points" json:"points"`
}

// Policy is the tunable scoring policy.
type Policy struct {
	Weights Weights `koanf:"weights" json:"weights"`
	// BudgetBands must be ordered by ascending Within. A difference beyond
	// the last band scores zero.
	BudgetBands []BudgetBand `koanf:"budget_bands" json:"budget_bands"`
	// ConcernPartialPercent is the share of the concern weight awarded when
	// the user declares any concern.
	ConcernPartialPercent int `koanf:"concern_partial_percent" json:"concern_partial_percent"`
}

// DefaultPolicy returns the reference weights and budget bands.
func DefaultPolicy() Policy {
	return Policy{
		Weights: Weights{
			Budget:   35,
			Concerns: 25,
			Goals:    20,
			Age:      10,
			Gender:   5,
			Activity: 5,
		},
		BudgetBands: []BudgetBand{
			{Within: 1000, Points: 35},
			{Within: 2000, Points: 25},
			{Within: 4000, Points: 15},
			{Within: 6000, Points: 5},
		},
		ConcernPartialPercent: 60,
	}
}

// Matcher evaluates archetypes under a policy. It is safe for concurrent use.
type Matcher struct {
	policy Policy
}

// New constructs a Matcher. A zero-weight policy falls back to DefaultPolicy.
func New(policy Policy) *Matcher {
	if policy.Weights.Sum() == 0 {
		policy = DefaultPolicy()
	}
	return &Matcher{policy: policy}
}

// Policy returns the active policy.
func (m *Matcher) Policy() Policy {
	return m.policy
}

// Match scores every archetype and returns the best one. The first archetype
// wins ties. ok is false when archetypes is empty.
func (m *Matcher) Match(profile domain.NormalizedProfile, archetypes []domain.Archetype) (result domain.MatchResult, ok bool) {
	for i, a := range archetypes {
		b := m.Score(profile, a)
		if i == 0 || b.Total() > result.Score {
			result = domain.MatchResult{ArchetypeID: a.ID, Score: b.Total(), Breakdown: b}
		}
	}
	return result, len(archetypes) > 0
}

// Score computes the breakdown for one archetype.
func (m *Matcher) Score(profile domain.NormalizedProfile, a domain.Archetype) domain.ScoreBreakdown {
	w := m.policy.Weights
	p := profile.Profile

	var b domain.ScoreBreakdown
	b.Budget = m.budgetScore(p.BudgetMonthly, a.BudgetReference)

	if len(profile.Concerns) == 0 {
		b.Concerns = w.Concerns
	} else {
		b.Concerns = w.Concerns * m.policy.ConcernPartialPercent / 100
	}

	if sharesGoal(profile.Goals, a.Goals) {
		b.Goals = w.Goals
	}

	if p.Age >= a.AgeMin && p.Age <= a.AgeMax {
		b.Demographics += w.Age
	}
	if a.Gender == domain.GenderAny || a.Gender == p.Gender {
		b.Demographics += w.Gender
	}
	for _, level := range a.ActivityLevels {
		if level == p.ActivityLevel {
			b.Demographics += w.Activity
			break
		}
	}
	return b
}

func (m *Matcher) budgetScore(budget, reference domain.Cents) int {
	diff := budget - reference
	if diff < 0 {
		diff = -diff
	}
	for _, band := range m.policy.BudgetBands {
		if diff <= band.Within {
			return band.Points
		}
	}
	return 0
}

func sharesGoal(user, archetype []domain.Goal) bool {
	for _, g := range user {
		for _, ag := range archetype {
			if g == ag {
				return true
			}
		}
	}
	return false
}
