// Package narrative produces the human-readable description of a stack.
//
// Enrichment is optional. The resolver always starts from Template and only
// replaces it with a Describer's output when that call succeeds in time.
package narrative

import (
	"context"
	"fmt"
	"strings"

	"example.com/supplementstack/internal/domain"
)

// Describer writes a description for a stack.
type Describer interface {
	Describe(ctx context.Context, stack domain.RecommendationStack, profile domain.NormalizedProfile) (string, error)
}

// Noop never enriches.
type Noop struct{}

// Describe returns an empty description.
func (Noop) Describe(context.Context, domain.RecommendationStack, domain.NormalizedProfile) (string, error) {
	return "", nil
}

// Template renders the deterministic description used when no enrichment is available.
func Template(stack domain.RecommendationStack, profile domain.NormalizedProfile) string {
	goal := GoalTitle(profile.PrimaryGoal())
	if len(stack.Items) == 0 {
		return fmt.Sprintf("No %s supplements fit a monthly budget of %s. Consider raising the budget to include the essentials.",
			strings.ToLower(goal), profile.Profile.BudgetMonthly)
	}
	names := make([]string, 0, len(stack.Items))
	for _, item := range stack.Items {
		names = append(names, item.Name)
	}
	return fmt.Sprintf("A %d-item %s stack for %s per month: %s.",
		len(stack.Items), strings.ToLower(goal), stack.TotalMonthlyCost, strings.Join(names, ", "))
}

// GoalTitle renders a goal as title-cased words: "muscle-building" -> "Muscle Building".
func GoalTitle(goal domain.Goal) string {
	words := strings.Split(string(goal), "-")
	for i, w := range words {
		if w == "" {
			continue
		}
		words[i] = strings.ToUpper(w[:1]) + w[1:]
	}
	return strings.Join(words, " ")
}

func prompt(stack domain.RecommendationStack, profile domain.NormalizedProfile) string {
	var b strings.Builder
	p := profile.Profile
	fmt.Fprintf(&b, "Write a two sentence summary of a monthly supplement stack for a %d year old %s ", p.Age, p.Gender)
	fmt.Fprintf(&b, "with a %s activity level whose goals are %s.\n", p.ActivityLevel, joinGoals(profile.Goals))
	fmt.Fprintf(&b, "Monthly cost: %s.\nItems:\n", stack.TotalMonthlyCost)
	for _, item := range stack.Items {
		fmt.Fprintf(&b, "- %s (%s): %s\n", item.Name, item.Dosage, item.Reasoning)
	}
	b.WriteString("Do not give medical advice and do not mention prices.")
	return b.String()
}

func joinGoals(goals []domain.Goal) string {
	parts := make([]string, len(goals))
	for i, g := range goals {
		parts[i] = strings.ToLower(GoalTitle(g))
	}
	return strings.Join(parts, ", ")
}
