// Package domain defines the types shared by the recommendation core.
package domain

import (
	"encoding/json"
	"fmt"
	"math"
	"strconv"
)

// Cents is a monetary amount in US cents. It marshals to JSON as a dollar number.
type Cents int64

// MaxBudget is the largest accepted monthly budget, $1,000,000.
const MaxBudget Cents = 100_000_000

// maxDollars bounds decoded amounts well inside the int64 cent range.
const maxDollars = 1e12

// DollarsToCents converts a dollar amount, rounding to the nearest cent.
// Amounts beyond the int64 cent range saturate instead of wrapping.
func DollarsToCents(dollars float64) Cents {
	cents := math.Round(dollars * 100)
	switch {
	case math.IsNaN(cents):
		return 0
	case cents >= math.MaxInt64:
		return Cents(math.MaxInt64)
	case cents <= math.MinInt64:
		return Cents(math.MinInt64)
	}
	return Cents(cents)
}

// Dollars returns the amount in dollars.
func (c Cents) Dollars() float64 {
	return float64(c) / 100
}

// String renders the amount as "$12.34".
func (c Cents) String() string {
	sign := ""
	v := int64(c)
	if v < 0 {
		sign = "-"
		v = -v
	}
	cents := strconv.FormatInt(v%100, 10)
	if len(cents) == 1 {
		cents = "0" + cents
	}
	return sign + "$" + strconv.FormatInt(v/100, 10) + "." + cents
}

// MarshalJSON implements json.Marshaler.
func (c Cents) MarshalJSON() ([]byte, error) {
	return json.Marshal(c.Dollars())
}

// UnmarshalJSON implements json.Unmarshaler.
func (c *Cents) UnmarshalJSON(data []byte) error {
	var dollars float64
	if err := json.Unmarshal(data, &dollars); err != nil {
		return err
	}
	if math.Abs(dollars) > maxDollars {
		return fmt.Errorf("amount %g out of range", dollars)
	}
	*c = DollarsToCents(dollars)
	return nil
}

// Gender of the profile owner, or GenderAny on an archetype predicate.
type Gender string

const (
	GenderMale   Gender = "male"
	GenderFemale Gender = "female"
	GenderOther  Gender = "other"
	GenderAny    Gender = "any"
)

// ActivityLevel describes how much the user trains.
type ActivityLevel string

const (
	ActivitySedentary  ActivityLevel = "sedentary"
	ActivityLight      ActivityLevel = "light"
	ActivityModerate   ActivityLevel = "moderate"
	ActivityActive     ActivityLevel = "active"
	ActivityVeryActive ActivityLevel = "very_active"
)

// ExperienceLevel describes familiarity with supplementation.
type ExperienceLevel string

const (
	ExperienceBeginner     ExperienceLevel = "beginner"
	ExperienceIntermediate ExperienceLevel = "intermediate"
	ExperienceAdvanced     ExperienceLevel = "advanced"
)

// UserProfile is the raw, per-request input to resolution.
type UserProfile struct {
	Age                 int             `json:"age" validate:"gte=13,lte=120"`
	Gender              Gender          `json:"gender" validate:"required,oneof=male female other"`
	Goals               []string        `json:"goals" validate:"max=10,dive,max=64"`
	HealthConcerns      []string        `json:"health_concerns" validate:"max=20,dive,max=64"`
	DietaryRestrictions []string        `json:"dietary_restrictions" validate:"max=10,dive,max=64"`
	BudgetMonthly       Cents           `json:"budget_monthly" validate:"gte=0,lte=100000000"`
	ActivityLevel       ActivityLevel   `json:"activity_level" validate:"required,oneof=sedentary light moderate active very_active"`
	ExperienceLevel     ExperienceLevel `json:"experience_level" validate:"omitempty,oneof=beginner intermediate advanced"`
	CurrentSupplements  []string        `json:"current_supplements" validate:"max=50,dive,max=64"`
}

// NormalizedProfile pairs a profile with its canonical categories.
type NormalizedProfile struct {
	Profile  UserProfile
	Goals    []Goal
	Concerns []Concern
	Diet     []DietaryRestriction
}

// PrimaryGoal is the first normalized goal. It drives tier selection.
func (n NormalizedProfile) PrimaryGoal() Goal {
	if len(n.Goals) == 0 {
		return GoalGeneralHealth
	}
	return n.Goals[0]
}

// HasGoal reports whether goal is among the normalized goals.
func (n NormalizedProfile) HasGoal(goal Goal) bool {
	for _, g := range n.Goals {
		if g == goal {
			return true
		}
	}
	return false
}
