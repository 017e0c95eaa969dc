package domain

// Goal is a canonical fitness goal. Values outside CanonicalGoals are degraded
// pass-through tokens produced for unmapped input.
type Goal string

const (
	GoalMuscleBuilding    Goal = "muscle-building"
	GoalFatLoss           Goal = "fat-loss"
	GoalEndurance         Goal = "endurance"
	GoalGeneralHealth     Goal = "general-health"
	GoalStressManagement  Goal = "stress-management"
	GoalSleepOptimization Goal = "sleep-optimization"
)

var canonicalGoals = []Goal{
	GoalMuscleBuilding,
	GoalFatLoss,
	GoalEndurance,
	GoalGeneralHealth,
	GoalStressManagement,
	GoalSleepOptimization,
}

// CanonicalGoals returns the closed goal set in declaration order.
func CanonicalGoals() []Goal {
	out := make([]Goal, len(canonicalGoals))
	copy(out, canonicalGoals)
	return out
}

// Known reports whether g is part of the closed goal set.
func (g Goal) Known() bool {
	for _, c := range canonicalGoals {
		if c == g {
			return true
		}
	}
	return false
}

// Concern is a canonical health concern.
type Concern string

const (
	ConcernJointHealth       Concern = "joint-health"
	ConcernHeartHealth       Concern = "heart-health"
	ConcernDigestiveHealth   Concern = "digestive-health"
	ConcernImmuneSupport     Concern = "immune-support"
	ConcernCognitiveFunction Concern = "cognitive-function"
	ConcernEnergy            Concern = "energy"
	ConcernStress            Concern = "stress"
	ConcernSleep             Concern = "sleep"
)

var canonicalConcerns = []Concern{
	ConcernJointHealth,
	ConcernHeartHealth,
	ConcernDigestiveHealth,
	ConcernImmuneSupport,
	ConcernCognitiveFunction,
	ConcernEnergy,
	ConcernStress,
	ConcernSleep,
}

// CanonicalConcerns returns the closed concern set in declaration order.
func CanonicalConcerns() []Concern {
	out := make([]Concern, len(canonicalConcerns))
	copy(out, canonicalConcerns)
	return out
}

// Known reports whether c is part of the closed concern set.
func (c Concern) Known() bool {
	for _, k := range canonicalConcerns {
		if k == c {
			return true
		}
	}
	return false
}

// DietaryRestriction is a canonical diet constraint.
type DietaryRestriction string

const (
	DietVegan      DietaryRestriction = "vegan"
	DietVegetarian DietaryRestriction = "vegetarian"
	DietDairyFree  DietaryRestriction = "dairy-free"
	DietGlutenFree DietaryRestriction = "gluten-free"
)
