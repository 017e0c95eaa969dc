package domain

import (
	"encoding/json"
	"errors"
	"math"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestCentsJSONUsesDollars(t *testing.T) {
	raw, err := json.Marshal(Cents(9995))
	require.NoError(t, err)
	require.JSONEq(t, `99.95`, string(raw))

	var c Cents
	require.NoError(t, json.Unmarshal([]byte(`100.1`), &c))
	require.Equal(t, Cents(10010), c)
	require.Error(t, json.Unmarshal([]byte(`"ten"`), &c))
}

func TestCentsRejectsOutOfRangeAmounts(t *testing.T) {
	var c Cents
	require.ErrorContains(t, json.Unmarshal([]byte(`1e20`), &c), "out of range")
	require.ErrorContains(t, json.Unmarshal([]byte(`-1e20`), &c), "out of range")
	require.Zero(t, c)

	require.Equal(t, Cents(math.MaxInt64), DollarsToCents(1e20))
	require.Equal(t, Cents(math.MinInt64), DollarsToCents(-1e20))
	require.Equal(t, MaxBudget, DollarsToCents(1_000_000))
}

func TestCentsString(t *testing.T) {
	require.Equal(t, "$0.05", Cents(5).String())
	require.Equal(t, "$71.00", Cents(7100).String())
	require.Equal(t, "-$1.50", Cents(-150).String())
}

func TestDietarySatisfies(t *testing.T) {
	vegan := DietaryFlags{VeganSafe: true}
	require.True(t, vegan.Satisfies(DietVegetarian))
	require.False(t, vegan.Satisfies(DietGlutenFree))
	require.True(t, DietaryFlags{}.Satisfies("paleo"))

	item := CatalogItem{Dietary: DietaryFlags{VegetarianSafe: true, GlutenFree: true}}
	require.True(t, item.CompatibleWith([]DietaryRestriction{DietVegetarian, DietGlutenFree}))
	require.False(t, item.CompatibleWith([]DietaryRestriction{DietVegan}))
	require.True(t, item.CompatibleWith(nil))
}

func TestTierForDefaultsToNone(t *testing.T) {
	item := CatalogItem{Tiers: map[Goal]Tier{GoalEndurance: TierBeneficial}}
	require.Equal(t, TierBeneficial, item.TierFor(GoalEndurance))
	require.Equal(t, TierNone, item.TierFor(GoalFatLoss))
}

func TestEvidenceScore(t *testing.T) {
	require.Zero(t, EvidenceScore(nil))
	items := []CatalogItem{{EvidenceLevel: EvidenceVeryHigh}, {EvidenceLevel: EvidenceModerate}}
	require.Equal(t, 83, EvidenceScore(items))
}

func TestPrimaryGoal(t *testing.T) {
	require.Equal(t, GoalGeneralHealth, NormalizedProfile{}.PrimaryGoal())
	n := NormalizedProfile{Goals: []Goal{GoalEndurance, GoalFatLoss}}
	require.Equal(t, GoalEndurance, n.PrimaryGoal())
	require.True(t, n.HasGoal(GoalFatLoss))
	require.False(t, n.HasGoal(GoalSleepOptimization))
}

func TestValidateReportsEveryField(t *testing.T) {
	err := UserProfile{Age: 200, Gender: "robot", ActivityLevel: ActivityActive, BudgetMonthly: -1}.Validate()
	var verr *ValidationError
	require.True(t, errors.As(err, &verr))
	fields := make([]string, 0, len(verr.Fields))
	for _, f := range verr.Fields {
		fields = append(fields, f.Field)
	}
	require.ElementsMatch(t, []string{"age", "gender", "budget_monthly"}, fields)
	require.Contains(t, verr.Error(), "age must be at most 120")

	ok := UserProfile{Age: 30, Gender: GenderFemale, ActivityLevel: ActivityLight}
	require.NoError(t, ok.Validate())
}

func TestValidateBoundsBudget(t *testing.T) {
	p := UserProfile{Age: 30, Gender: GenderFemale, ActivityLevel: ActivityLight, BudgetMonthly: MaxBudget}
	require.NoError(t, p.Validate())

	p.BudgetMonthly = DollarsToCents(1e20)
	var verr *ValidationError
	require.True(t, errors.As(p.Validate(), &verr))
	require.Len(t, verr.Fields, 1)
	require.Equal(t, "budget_monthly", verr.Fields[0].Field)
	require.Equal(t, "lte", verr.Fields[0].Tag)
}

func TestErrorsUnwrap(t *testing.T) {
	gen := &GenerationError{Stage: "generating", Err: ErrCatalogUnavailable}
	require.ErrorIs(t, gen, ErrCatalogUnavailable)
	require.Contains(t, gen.Error(), "generating")

	enr := &EnrichmentError{Err: errors.New("timeout")}
	require.Equal(t, "narrative enrichment failed: timeout", enr.Error())
}
