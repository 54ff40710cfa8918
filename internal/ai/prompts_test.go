package ai

import (
	"testing"

	"alcyxob/fitness-planner/internal/domain"

	"github.com/stretchr/testify/assert"
)

func TestGenerationPrompt(t *testing.T) {
	prefs := domain.UserPreferences{
		Goal: domain.GoalFatLoss, DaysPerWeek: 4, SessionTime: 45,
		Equipment: domain.EquipmentGym, DietType: domain.DietVegetarian,
		Allergies: []string{"nuts", "soy"}, MealsPerDay: 4, Style: domain.StyleStrict,
	}
	p := GenerationPrompt(prefs, nil, domain.DefaultValidationRules())

	for _, want := range []string{
		"fat loss (moderate calorie deficit)",
		"Training days per week: 4",
		"Time per session: 45 minutes",
		"full gym",
		"vegetarian (no meat or fish",
		"Allergies/intolerances: nuts, soy",
		"Meals per day: 4",
		"strict (detailed tracking)",
		"Experience level: beginner",
		"Minimum calories: 1200 kcal/day",
		"protein 20-40%, carbs 25-60%, fat 20-40%",
		"8-25 sets per muscle group",
		`"weeklyStructure"`,
		"all 7 days",
	} {
		assert.Contains(t, p, want)
	}
	assert.NotContains(t, p, "BASE TEMPLATE")
	assert.NotContains(t, p, "Bodyweight")

	prefs.Allergies = nil
	prefs.Style = domain.StyleSimple
	prefs.Weight = 82
	base := &BaseTemplate{
		Training:  &domain.TrainingTemplate{ID: "t", WeeklyStructure: []domain.WorkoutDay{{Day: "Mon", Name: "Legs"}}},
		Nutrition: &domain.NutritionTemplate{ID: "n", DailyCalories: 1700, MacroDistribution: domain.MacroDistribution{Protein: 30, Carbs: 40, Fat: 30}},
	}
	p = GenerationPrompt(prefs, base, domain.DefaultValidationRules())
	assert.Contains(t, p, "Allergies/intolerances: none")
	assert.Contains(t, p, "quick and simple")
	assert.Contains(t, p, "Bodyweight: 82.0 kg")
	assert.Contains(t, p, "BASE TEMPLATE")
	assert.Contains(t, p, `"name":"Legs"`)
	assert.Contains(t, p, "1700 kcal/day")
}

func TestPescatarianDescriptionAllowsFish(t *testing.T) {
	prefs := domain.UserPreferences{Goal: domain.GoalMaintenance, DaysPerWeek: 3, SessionTime: 45,
		Equipment: domain.EquipmentNone, DietType: domain.DietPescatarian, MealsPerDay: 3}
	p := GenerationPrompt(prefs, nil, domain.DefaultValidationRules())

	assert.Contains(t, p, "pescatarian (no meat; fish, eggs and dairy allowed)")
}

func TestRegenerationPromptListsOnlyPresentConstraints(t *testing.T) {
	plan := &domain.WeeklyPlan{
		Preferences: domain.UserPreferences{Goal: domain.GoalMuscleGain, DaysPerWeek: 5, SessionTime: 60, DietType: domain.DietOmnivore},
		Nutrition:   domain.NutritionSection{DailyCalories: 2800},
	}
	p := RegenerationPrompt(plan, domain.RegenerationConstraints{
		ExcludeFoods: []string{"tuna", "eggs"},
		MaxCalories:  2500,
		Notes:        "  travelling this week ",
	})

	assert.Contains(t, p, "Goal: muscle-gain")
	assert.Contains(t, p, "Allergies: none")
	assert.Contains(t, p, "EXCLUDE foods: tuna, eggs")
	assert.Contains(t, p, "Maximum daily calories: 2500 kcal")
	assert.Contains(t, p, "Additional notes: travelling this week\n")
	assert.NotContains(t, p, "Minimum protein")
	assert.NotContains(t, p, "Maximum carbohydrates")
	assert.NotContains(t, p, "Maximum time per session")
	assert.NotContains(t, p, "Avoid exercises")
	assert.Contains(t, p, "KEEP the overall structure")
}
