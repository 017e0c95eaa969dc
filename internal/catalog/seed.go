package catalog

import "example.com/supplementstack/internal/domain"

// Reference item ids used by archetypes, substitutions and the tests.
const (
	ItemWheyProtein  = "whey-protein-isolate"
	ItemPlantProtein = "pea-rice-protein"
	ItemCreatine     = "creatine-monohydrate"
	ItemVitaminD3    = "vitamin-d3"
	ItemVeganD3      = "vegan-vitamin-d3"
	ItemFishOil      = "fish-oil-omega-3"
	ItemAlgaeOmega3  = "algae-omega-3"
	ItemMagnesium    = "magnesium-glycinate"
	ItemZinc         = "zinc-picolinate"
	ItemMultivitamin = "multivitamin"
	ItemBetaAlanine  = "beta-alanine"
	ItemCitrulline   = "l-citrulline"
	ItemCaffeine     = "caffeine"
	ItemElectrolytes = "electrolytes"
	ItemGreenTea     = "green-tea-extract"
	ItemCarnitine    = "l-carnitine"
	ItemPsyllium     = "psyllium-fiber"
	ItemProbiotic    = "probiotic"
	ItemAshwagandha  = "ashwagandha"
	ItemTheanine     = "l-theanine"
	ItemMelatonin    = "melatonin"
	ItemCollagen     = "collagen-peptides"
)

var allDiets = domain.DietaryFlags{VeganSafe: true, VegetarianSafe: true, DairyFree: true, GlutenFree: true}

func everyActivityLevel() []domain.ActivityLevel {
	return []domain.ActivityLevel{
		domain.ActivitySedentary,
		domain.ActivityLight,
		domain.ActivityModerate,
		domain.ActivityActive,
		domain.ActivityVeryActive,
	}
}

type tierRow struct {
	goal domain.Goal
	tier domain.Tier
}

func ranks(rows ...tierRow) map[domain.Goal]domain.Tier {
	m := make(map[domain.Goal]domain.Tier, len(rows))
	for _, r := range rows {
		m[r.goal] = r.tier
	}
	return m
}

func essential(g domain.Goal) tierRow  { return tierRow{g, domain.TierEssential} }
func beneficial(g domain.Goal) tierRow { return tierRow{g, domain.TierBeneficial} }
func supportive(g domain.Goal) tierRow { return tierRow{g, domain.TierSupportive} }

// SeedItems returns the reference catalog in catalog order. Tier lists per
// goal follow this order, so moving an entry changes selection priority.
// Substitutes carry no tiers of their own; they inherit the tier of the item
// they replace.
func SeedItems() []domain.CatalogItem {
	return []domain.CatalogItem{
		{
			ID:            ItemWheyProtein,
			Name:          "Whey Protein Isolate",
			Brand:         "Optimum Nutrition",
			Category:      "protein",
			Price:         3999,
			Tiers:         ranks(essential(domain.GoalMuscleBuilding), essential(domain.GoalFatLoss)),
			EvidenceLevel: domain.EvidenceHigh,
			StudyCount:    410,
			Dietary:       domain.DietaryFlags{GlutenFree: true},
			SubstituteID:  ItemPlantProtein,
			Dosage:        "25-30g per serving",
			Timing:        "Within 2 hours after training",
			Rationale:     "Complete, fast-digesting protein that supports muscle protein synthesis",
		},
		{
			ID:            ItemPlantProtein,
			Name:          "Pea & Rice Protein Blend",
			Brand:         "Garden of Life",
			Category:      "protein",
			Price:         4299,
			EvidenceLevel: domain.EvidenceModerate,
			StudyCount:    60,
			Dietary:       allDiets,
			Dosage:        "30g per serving",
			Timing:        "Within 2 hours after training",
			Rationale:     "Plant protein blend with a complete amino acid profile",
		},
		{
			ID:            ItemCreatine,
			Name:          "Creatine Monohydrate",
			Brand:         "Thorne",
			Category:      "creatine",
			Price:         2499,
			Tiers:         ranks(essential(domain.GoalMuscleBuilding)),
			EvidenceLevel: domain.EvidenceVeryHigh,
			StudyCount:    700,
			Dietary:       allDiets,
			Dosage:        "5g daily",
			Timing:        "Any time, consistently each day",
			Rationale:     "The most researched supplement for strength and lean mass",
		},
		{
			ID:       ItemVitaminD3,
			Name:     "Vitamin D3 2000 IU",
			Brand:    "NOW Foods",
			Category: "vitamin-d",
			Price:    999,
			Tiers: ranks(
				beneficial(domain.GoalMuscleBuilding),
				essential(domain.GoalGeneralHealth),
				supportive(domain.GoalEndurance),
				supportive(domain.GoalStressManagement),
			),
			EvidenceLevel: domain.EvidenceHigh,
			StudyCount:    350,
			Dietary:       domain.DietaryFlags{VegetarianSafe: true, DairyFree: true, GlutenFree: true},
			SubstituteID:  ItemVeganD3,
			Dosage:        "2000 IU daily",
			Timing:        "With a meal containing fat",
			Rationale:     "Supports bone health, immunity and muscle function; deficiency is common",
		},
		{
			ID:            ItemVeganD3,
			Name:          "Vegan Vitamin D3 (Lichen)",
			Brand:         "Global Healing",
			Category:      "vitamin-d",
			Price:         1299,
			EvidenceLevel: domain.EvidenceHigh,
			StudyCount:    40,
			Dietary:       allDiets,
			Dosage:        "2000 IU daily",
			Timing:        "With a meal containing fat",
			Rationale:     "Plant-sourced D3 with the same activity as lanolin-derived D3",
		},
		{
			ID:       ItemFishOil,
			Name:     "Omega-3 Fish Oil",
			Brand:    "Nordic Naturals",
			Category: "omega-3",
			Price:    2499,
			Tiers: ranks(
				supportive(domain.GoalMuscleBuilding),
				supportive(domain.GoalFatLoss),
				beneficial(domain.GoalEndurance),
				essential(domain.GoalGeneralHealth),
				beneficial(domain.GoalStressManagement),
			),
			EvidenceLevel: domain.EvidenceHigh,
			StudyCount:    500,
			Dietary:       domain.DietaryFlags{DairyFree: true, GlutenFree: true},
			SubstituteID:  ItemAlgaeOmega3,
			Dosage:        "1-2g EPA+DHA daily",
			Timing:        "With meals",
			Rationale:     "Supports heart health and helps manage exercise-induced inflammation",
		},
		{
			ID:            ItemAlgaeOmega3,
			Name:          "Algae Omega-3",
			Brand:         "Ovega-3",
			Category:      "omega-3",
			Price:         3299,
			EvidenceLevel: domain.EvidenceModerate,
			StudyCount:    45,
			Dietary:       allDiets,
			Dosage:        "500mg EPA+DHA daily",
			Timing:        "With meals",
			Rationale:     "Plant-based EPA and DHA straight from the algae fish get it from",
		},
		{
			ID:       ItemMagnesium,
			Name:     "Magnesium Glycinate",
			Brand:    "Doctor's Best",
			Category: "magnesium",
			Price:    1599,
			Tiers: ranks(
				beneficial(domain.GoalMuscleBuilding),
				supportive(domain.GoalEndurance),
				beneficial(domain.GoalGeneralHealth),
				essential(domain.GoalStressManagement),
				essential(domain.GoalSleepOptimization),
			),
			EvidenceLevel: domain.EvidenceHigh,
			StudyCount:    300,
			Dietary:       allDiets,
			Dosage:        "200-400mg daily",
			Timing:        "Evening, 1 hour before bed",
			Rationale:     "Supports muscle relaxation, sleep quality and over 300 enzymatic reactions",
		},
		{
			ID:       ItemZinc,
			Name:     "Zinc Picolinate 30mg",
			Brand:    "Thorne",
			Category: "zinc",
			Price:    899,
			Tiers: ranks(
				beneficial(domain.GoalMuscleBuilding),
				supportive(domain.GoalGeneralHealth),
				supportive(domain.GoalSleepOptimization),
			),
			EvidenceLevel: domain.EvidenceModerate,
			StudyCount:    150,
			Dietary:       allDiets,
			Dosage:        "15-30mg daily",
			Timing:        "With dinner, away from calcium",
			Rationale:     "Supports testosterone production, immunity and recovery",
		},
		{
			ID:       ItemMultivitamin,
			Name:     "Daily Multivitamin",
			Brand:    "Garden of Life",
			Category: "multivitamin",
			Price:    2999,
			Tiers: ranks(
				supportive(domain.GoalFatLoss),
				essential(domain.GoalGeneralHealth),
				supportive(domain.GoalStressManagement),
			),
			EvidenceLevel: domain.EvidenceModerate,
			StudyCount:    200,
			Dietary:       allDiets,
			Dosage:        "1 serving daily",
			Timing:        "With breakfast",
			Rationale:     "Fills common micronutrient gaps in everyday diets",
		},
		{
			ID:            ItemBetaAlanine,
			Name:          "Beta-Alanine",
			Brand:         "NOW Foods",
			Category:      "beta-alanine",
			Price:         1999,
			Tiers:         ranks(supportive(domain.GoalMuscleBuilding), essential(domain.GoalEndurance)),
			EvidenceLevel: domain.EvidenceHigh,
			StudyCount:    120,
			Dietary:       allDiets,
			Dosage:        "3.2-6.4g daily, split doses",
			Timing:        "Split across the day",
			Rationale:     "Raises muscle carnosine to delay fatigue in 1-4 minute efforts",
		},
		{
			ID:            ItemCitrulline,
			Name:          "L-Citrulline",
			Brand:         "Bulk Supplements",
			Category:      "citrulline",
			Price:         2499,
			Tiers:         ranks(supportive(domain.GoalMuscleBuilding), beneficial(domain.GoalEndurance)),
			EvidenceLevel: domain.EvidenceModerate,
			StudyCount:    70,
			Dietary:       allDiets,
			Dosage:        "6-8g",
			Timing:        "30-60 minutes before training",
			Rationale:     "Increases nitric oxide production for blood flow and work capacity",
		},
		{
			ID:            ItemCaffeine,
			Name:          "Caffeine 200mg",
			Brand:         "ProLab",
			Category:      "caffeine",
			Price:         999,
			Tiers:         ranks(beneficial(domain.GoalFatLoss), beneficial(domain.GoalEndurance)),
			EvidenceLevel: domain.EvidenceVeryHigh,
			StudyCount:    600,
			Dietary:       allDiets,
			Dosage:        "100-200mg",
			Timing:        "30-60 minutes before training, not after 2pm",
			Rationale:     "Improves endurance performance and increases energy expenditure",
		},
		{
			ID:            ItemElectrolytes,
			Name:          "Electrolyte Mix",
			Brand:         "LMNT",
			Category:      "electrolytes",
			Price:         1999,
			Tiers:         ranks(essential(domain.GoalEndurance)),
			EvidenceLevel: domain.EvidenceHigh,
			StudyCount:    90,
			Dietary:       allDiets,
			Dosage:        "1 packet per hour of training",
			Timing:        "During long sessions",
			Rationale:     "Replaces sodium and potassium lost in sweat to sustain performance",
		},
		{
			ID:            ItemGreenTea,
			Name:          "Green Tea Extract (EGCG)",
			Brand:         "NOW Foods",
			Category:      "green-tea",
			Price:         1799,
			Tiers:         ranks(essential(domain.GoalFatLoss)),
			EvidenceLevel: domain.EvidenceModerate,
			StudyCount:    110,
			Dietary:       allDiets,
			Dosage:        "400-500mg EGCG",
			Timing:        "Morning with food",
			Rationale:     "Modestly increases fat oxidation, especially combined with training",
		},
		{
			ID:            ItemCarnitine,
			Name:          "L-Carnitine L-Tartrate",
			Brand:         "Jarrow",
			Category:      "carnitine",
			Price:         2299,
			Tiers:         ranks(beneficial(domain.GoalFatLoss)),
			EvidenceLevel: domain.EvidenceLimited,
			StudyCount:    55,
			Dietary:       allDiets,
			Dosage:        "2g daily",
			Timing:        "With a carbohydrate-containing meal",
			Rationale:     "Supports fatty acid transport and recovery from training",
		},
		{
			ID:            ItemPsyllium,
			Name:          "Psyllium Husk Fiber",
			Brand:         "Metamucil",
			Category:      "fiber",
			Price:         1299,
			Tiers:         ranks(beneficial(domain.GoalFatLoss)),
			EvidenceLevel: domain.EvidenceHigh,
			StudyCount:    180,
			Dietary:       allDiets,
			Dosage:        "5-10g daily",
			Timing:        "Before meals with a full glass of water",
			Rationale:     "Increases satiety and supports digestive regularity",
		},
		{
			ID:            ItemProbiotic,
			Name:          "Probiotic 50 Billion CFU",
			Brand:         "Culturelle",
			Category:      "probiotic",
			Price:         2999,
			Tiers:         ranks(beneficial(domain.GoalGeneralHealth)),
			EvidenceLevel: domain.EvidenceModerate,
			StudyCount:    250,
			Dietary:       domain.DietaryFlags{VegetarianSafe: true, GlutenFree: true},
			Dosage:        "1 capsule daily",
			Timing:        "Morning on an empty stomach",
			Rationale:     "Supports gut microbiome balance and digestion",
		},
		{
			ID:            ItemAshwagandha,
			Name:          "Ashwagandha KSM-66",
			Brand:         "Jarrow",
			Category:      "ashwagandha",
			Price:         1999,
			Tiers:         ranks(essential(domain.GoalStressManagement), beneficial(domain.GoalSleepOptimization)),
			EvidenceLevel: domain.EvidenceModerate,
			StudyCount:    85,
			Dietary:       allDiets,
			Dosage:        "300-600mg daily",
			Timing:        "Evening with food",
			Rationale:     "Adaptogen shown to lower cortisol and perceived stress",
		},
		{
			ID:            ItemTheanine,
			Name:          "L-Theanine",
			Brand:         "Sports Research",
			Category:      "l-theanine",
			Price:         1499,
			Tiers:         ranks(beneficial(domain.GoalStressManagement), beneficial(domain.GoalSleepOptimization)),
			EvidenceLevel: domain.EvidenceModerate,
			StudyCount:    60,
			Dietary:       allDiets,
			Dosage:        "200mg",
			Timing:        "As needed or 30 minutes before bed",
			Rationale:     "Promotes calm alertness without sedation",
		},
		{
			ID:            ItemMelatonin,
			Name:          "Melatonin 1mg",
			Brand:         "Natrol",
			Category:      "melatonin",
			Price:         699,
			Tiers:         ranks(essential(domain.GoalSleepOptimization)),
			EvidenceLevel: domain.EvidenceHigh,
			StudyCount:    320,
			Dietary:       allDiets,
			Dosage:        "0.5-1mg",
			Timing:        "30-60 minutes before bed",
			Rationale:     "Helps regulate sleep onset and circadian rhythm",
		},
		{
			ID:            ItemCollagen,
			Name:          "Collagen Peptides",
			Brand:         "Vital Proteins",
			Category:      "collagen",
			Price:         3499,
			Tiers:         ranks(supportive(domain.GoalGeneralHealth)),
			EvidenceLevel: domain.EvidenceLimited,
			StudyCount:    40,
			Dietary:       domain.DietaryFlags{DairyFree: true, GlutenFree: true},
			Dosage:        "10g daily",
			Timing:        "Any time, mixed into a drink",
			Rationale:     "May support joint and skin health",
		},
	}
}

// SeedArchetypes returns the precomputed personas. Each archetype's budget
// reference equals the cost of its supplement list rounded to the dollar.
func SeedArchetypes() []domain.Archetype {
	return []domain.Archetype{
		{
			ID:              "young-male-lifter",
			Name:            "Strength Builder Stack",
			AgeMin:          18,
			AgeMax:          35,
			Gender:          domain.GenderMale,
			ActivityLevels:  []domain.ActivityLevel{domain.ActivityActive, domain.ActivityVeryActive},
			Goals:           []domain.Goal{domain.GoalMuscleBuilding},
			BudgetReference: 10000,
			SupplementIDs:   []string{ItemWheyProtein, ItemCreatine, ItemVitaminD3, ItemMagnesium, ItemZinc},
		},
		{
			ID:              "female-strength-starter",
			Name:            "Lean Strength Starter",
			AgeMin:          18,
			AgeMax:          40,
			Gender:          domain.GenderFemale,
			ActivityLevels:  []domain.ActivityLevel{domain.ActivityModerate, domain.ActivityActive},
			Goals:           []domain.Goal{domain.GoalMuscleBuilding, domain.GoalFatLoss},
			BudgetReference: 7500,
			SupplementIDs:   []string{ItemWheyProtein, ItemCreatine, ItemVitaminD3},
		},
		{
			ID:              "endurance-athlete",
			Name:            "Endurance Performance Stack",
			AgeMin:          18,
			AgeMax:          50,
			Gender:          domain.GenderAny,
			ActivityLevels:  []domain.ActivityLevel{domain.ActivityActive, domain.ActivityVeryActive},
			Goals:           []domain.Goal{domain.GoalEndurance},
			BudgetReference: 10000,
			SupplementIDs:   []string{ItemElectrolytes, ItemBetaAlanine, ItemFishOil, ItemCaffeine, ItemCitrulline},
		},
		{
			ID:              "busy-professional",
			Name:            "Everyday Wellness Foundation",
			AgeMin:          30,
			AgeMax:          65,
			Gender:          domain.GenderAny,
			ActivityLevels:  []domain.ActivityLevel{domain.ActivitySedentary, domain.ActivityLight, domain.ActivityModerate},
			Goals:           []domain.Goal{domain.GoalGeneralHealth, domain.GoalStressManagement},
			BudgetReference: 7100,
			SupplementIDs:   []string{ItemMultivitamin, ItemFishOil, ItemMagnesium},
		},
		{
			ID:              "restful-sleeper",
			Name:            "Deep Sleep Stack",
			AgeMin:          25,
			AgeMax:          70,
			Gender:          domain.GenderAny,
			ActivityLevels:  everyActivityLevel(),
			Goals:           []domain.Goal{domain.GoalSleepOptimization},
			BudgetReference: 3800,
			SupplementIDs:   []string{ItemMagnesium, ItemMelatonin, ItemTheanine},
		},
		{
			ID:              "weight-loss-beginner",
			Name:            "Metabolic Kickstart",
			AgeMin:          25,
			AgeMax:          55,
			Gender:          domain.GenderAny,
			ActivityLevels:  []domain.ActivityLevel{domain.ActivitySedentary, domain.ActivityLight, domain.ActivityModerate},
			Goals:           []domain.Goal{domain.GoalFatLoss},
			BudgetReference: 5800,
			SupplementIDs:   []string{ItemWheyProtein, ItemGreenTea},
		},
	}
}
