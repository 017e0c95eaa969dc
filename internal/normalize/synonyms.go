package normalize

import "example.com/supplementstack/internal/domain"

// Keys are Token-normalized. Every canonical value maps to itself.
var goalSynonyms = map[string]domain.Goal{
	"muscle-building":   domain.GoalMuscleBuilding,
	"weight-lifting":    domain.GoalMuscleBuilding,
	"weightlifting":     domain.GoalMuscleBuilding,
	"bodybuilding":      domain.GoalMuscleBuilding,
	"bulking":           domain.GoalMuscleBuilding,
	"build-muscle":      domain.GoalMuscleBuilding,
	"muscle-gain":       domain.GoalMuscleBuilding,
	"muscle":            domain.GoalMuscleBuilding,
	"strength":          domain.GoalMuscleBuilding,
	"strength-training": domain.GoalMuscleBuilding,
	"hypertrophy":       domain.GoalMuscleBuilding,

	"fat-loss":    domain.GoalFatLoss,
	"weight-loss": domain.GoalFatLoss,
	"lose-weight": domain.GoalFatLoss,
	"cutting":     domain.GoalFatLoss,
	"fat-burning": domain.GoalFatLoss,
	"leaning-out": domain.GoalFatLoss,
	"toning":      domain.GoalFatLoss,

	"endurance":            domain.GoalEndurance,
	"cardio":               domain.GoalEndurance,
	"running":              domain.GoalEndurance,
	"marathon":             domain.GoalEndurance,
	"cycling":              domain.GoalEndurance,
	"stamina":              domain.GoalEndurance,
	"endurance-training":   domain.GoalEndurance,
	"athletic-performance": domain.GoalEndurance,

	"general-health":   domain.GoalGeneralHealth,
	"health":           domain.GoalGeneralHealth,
	"wellness":         domain.GoalGeneralHealth,
	"general-wellness": domain.GoalGeneralHealth,
	"overall-health":   domain.GoalGeneralHealth,
	"longevity":        domain.GoalGeneralHealth,
	"immunity":         domain.GoalGeneralHealth,

	"stress-management": domain.GoalStressManagement,
	"stress":            domain.GoalStressManagement,
	"stress-relief":     domain.GoalStressManagement,
	"anxiety":           domain.GoalStressManagement,
	"relaxation":        domain.GoalStressManagement,
	"mood":              domain.GoalStressManagement,

	"sleep-optimization": domain.GoalSleepOptimization,
	"sleep":              domain.GoalSleepOptimization,
	"better-sleep":       domain.GoalSleepOptimization,
	"sleep-quality":      domain.GoalSleepOptimization,
	"insomnia":           domain.GoalSleepOptimization,
	"recovery-sleep":     domain.GoalSleepOptimization,
}

var concernSynonyms = map[string]domain.Concern{
	"joint-health": domain.ConcernJointHealth,
	"joints":       domain.ConcernJointHealth,
	"joint-pain":   domain.ConcernJointHealth,
	"arthritis":    domain.ConcernJointHealth,
	"mobility":     domain.ConcernJointHealth,

	"heart-health":   domain.ConcernHeartHealth,
	"heart":          domain.ConcernHeartHealth,
	"cholesterol":    domain.ConcernHeartHealth,
	"blood-pressure": domain.ConcernHeartHealth,
	"cardiovascular": domain.ConcernHeartHealth,

	"digestive-health": domain.ConcernDigestiveHealth,
	"digestion":        domain.ConcernDigestiveHealth,
	"gut-health":       domain.ConcernDigestiveHealth,
	"gut":              domain.ConcernDigestiveHealth,
	"bloating":         domain.ConcernDigestiveHealth,

	"immune-support": domain.ConcernImmuneSupport,
	"immunity":       domain.ConcernImmuneSupport,
	"immune":         domain.ConcernImmuneSupport,
	"frequent-colds": domain.ConcernImmuneSupport,

	"cognitive-function": domain.ConcernCognitiveFunction,
	"focus":              domain.ConcernCognitiveFunction,
	"memory":             domain.ConcernCognitiveFunction,
	"brain-fog":          domain.ConcernCognitiveFunction,
	"brain-health":       domain.ConcernCognitiveFunction,

	"energy":     domain.ConcernEnergy,
	"fatigue":    domain.ConcernEnergy,
	"low-energy": domain.ConcernEnergy,
	"tiredness":  domain.ConcernEnergy,

	"stress":  domain.ConcernStress,
	"anxiety": domain.ConcernStress,
	"burnout": domain.ConcernStress,

	"sleep":        domain.ConcernSleep,
	"insomnia":     domain.ConcernSleep,
	"poor-sleep":   domain.ConcernSleep,
	"sleep-issues": domain.ConcernSleep,
}

var dietSynonyms = map[string]domain.DietaryRestriction{
	"vegan":       domain.DietVegan,
	"plant-based": domain.DietVegan,

	"vegetarian": domain.DietVegetarian,
	"lacto-ovo":  domain.DietVegetarian,
	"no-meat":    domain.DietVegetarian,

	"dairy-free":         domain.DietDairyFree,
	"no-dairy":           domain.DietDairyFree,
	"lactose-free":       domain.DietDairyFree,
	"lactose-intolerant": domain.DietDairyFree,

	"gluten-free": domain.DietGlutenFree,
	"no-gluten":   domain.DietGlutenFree,
	"celiac":      domain.DietGlutenFree,
}
