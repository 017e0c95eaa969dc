// Package normalize maps free-text goals, concerns and diets onto canonical categories.
//
// Unmapped tokens are never an error: they pass through in their cleaned form
// as degraded values, which Known() on the domain type reports as false.
// Normalization is idempotent because every canonical value maps to itself and
// Token is a fixed point on its own output.
package normalize

import (
	"regexp"
	"strings"

	"example.com/supplementstack/internal/domain"
)

var separators = regexp.MustCompile(`[\s_]+`)

// Token lower-cases s, trims it and joins words with single hyphens.
func Token(s string) string {
	t := strings.ToLower(strings.TrimSpace(s))
	t = separators.ReplaceAllString(t, "-")
	t = strings.Trim(t, "-")
	for strings.Contains(t, "--") {
		t = strings.ReplaceAll(t, "--", "-")
	}
	return t
}

// Normalize maps raw goals and concerns. Goal order is preserved and the first
// entry is the primary goal; an empty goal list yields general-health.
func Normalize(rawGoals, rawConcerns []string) ([]domain.Goal, []domain.Concern) {
	return Goals(rawGoals), Concerns(rawConcerns)
}

// Goals normalizes and de-duplicates goals, keeping first occurrences.
func Goals(raw []string) []domain.Goal {
	out := make([]domain.Goal, 0, len(raw))
	seen := make(map[domain.Goal]struct{}, len(raw))
	for _, r := range raw {
		t := Token(r)
		if t == "" {
			continue
		}
		g := domain.Goal(t)
		if canonical, ok := goalSynonyms[t]; ok {
			g = canonical
		}
		if _, dup := seen[g]; dup {
			continue
		}
		seen[g] = struct{}{}
		out = append(out, g)
	}
	if len(out) == 0 {
		out = append(out, domain.GoalGeneralHealth)
	}
	return out
}

// Concerns normalizes and de-duplicates concerns. Unlike goals, an empty input stays empty.
func Concerns(raw []string) []domain.Concern {
	out := make([]domain.Concern, 0, len(raw))
	seen := make(map[domain.Concern]struct{}, len(raw))
	for _, r := range raw {
		t := Token(r)
		if t == "" || t == "none" {
			continue
		}
		c := domain.Concern(t)
		if canonical, ok := concernSynonyms[t]; ok {
			c = canonical
		}
		if _, dup := seen[c]; dup {
			continue
		}
		seen[c] = struct{}{}
		out = append(out, c)
	}
	return out
}

// Diet normalizes dietary restrictions. "vegan" implies "vegetarian".
func Diet(raw []string) []domain.DietaryRestriction {
	out := make([]domain.DietaryRestriction, 0, len(raw))
	seen := make(map[domain.DietaryRestriction]struct{}, len(raw))
	add := func(r domain.DietaryRestriction) {
		if _, dup := seen[r]; dup {
			return
		}
		seen[r] = struct{}{}
		out = append(out, r)
	}
	for _, r := range raw {
		t := Token(r)
		if t == "" || t == "none" {
			continue
		}
		d := domain.DietaryRestriction(t)
		if canonical, ok := dietSynonyms[t]; ok {
			d = canonical
		}
		add(d)
		if d == domain.DietVegan {
			add(domain.DietVegetarian)
			add(domain.DietDairyFree)
		}
	}
	return out
}

// Profile normalizes every categorical field of p.
func Profile(p domain.UserProfile) domain.NormalizedProfile {
	goals, concerns := Normalize(p.Goals, p.HealthConcerns)
	return domain.NormalizedProfile{
		Profile:  p,
		Goals:    goals,
		Concerns: concerns,
		Diet:     Diet(p.DietaryRestrictions),
	}
}

// GoalStrings converts goals back to raw strings.
func GoalStrings(goals []domain.Goal) []string {
	out := make([]string, len(goals))
	for i, g := range goals {
		out[i] = string(g)
	}
	return out
}

// ConcernStrings converts concerns back to raw strings.
func ConcernStrings(concerns []domain.Concern) []string {
	out := make([]string, len(concerns))
	for i, c := range concerns {
		out[i] = string(c)
	}
	return out
}
