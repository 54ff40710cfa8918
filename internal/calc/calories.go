// Package calc holds the pure metric calculations behind a plan: calorie
// targets, macro grams and weekly training volume.
package calc

import (
	"math"

	"alcyxob/fitness-planner/internal/domain"
)

// defaultCalories is used per goal when biometrics are incomplete.
var defaultCalories = map[domain.Goal]int{
	domain.GoalFatLoss:     1800,
	domain.GoalMuscleGain:  2800,
	domain.GoalMaintenance: 2200,
	domain.GoalPerformance: 2500,
}

const unknownGoalCalories = 2000

// activityMultipliers scale BMR to daily expenditure.
var activityMultipliers = map[domain.ActivityLevel]float64{
	domain.ActivitySedentary:  1.2,
	domain.ActivityLight:      1.375,
	domain.ActivityModerate:   1.55,
	domain.ActivityActive:     1.725,
	domain.ActivityVeryActive: 1.9,
}

const unknownActivityMultiplier = 1.375

var goalMultipliers = map[domain.Goal]float64{
	domain.GoalFatLoss:     0.80,
	domain.GoalMuscleGain:  1.15,
	domain.GoalMaintenance: 1.00,
	domain.GoalPerformance: 1.10,
}

// DefaultCalories returns the fixed target for a goal.
func DefaultCalories(goal domain.Goal) int {
	if kcal, ok := defaultCalories[goal]; ok {
		return kcal
	}
	return unknownGoalCalories
}

// BMR is the Mifflin-St Jeor basal metabolic rate in kcal.
func BMR(b domain.Biometrics) float64 {
	bmr := 10*b.Weight + 6.25*b.Height - 5*float64(b.Age)
	if b.Sex == domain.SexMale {
		return bmr + 5
	}
	return bmr - 161
}

// DailyCalories returns the daily calorie target for goal. Any missing
// biometric yields the per-goal default.
func DailyCalories(goal domain.Goal, b domain.Biometrics) int {
	if !b.Complete() {
		return DefaultCalories(goal)
	}
	activity, ok := activityMultipliers[b.ActivityLevel]
	if !ok {
		activity = unknownActivityMultiplier
	}
	adjust, ok := goalMultipliers[goal]
	if !ok {
		adjust = 1.0
	}
	return int(math.Round(BMR(b) * activity * adjust))
}

// MacroGrams converts a calorie target and percentage split into grams,
// rounded to one decimal.
func MacroGrams(calories int, dist domain.MacroDistribution) domain.Macros {
	kcal := float64(calories)
	return domain.Macros{
		Protein: Round1(kcal * dist.Protein / 100 / 4),
		Carbs:   Round1(kcal * dist.Carbs / 100 / 4),
		Fat:     Round1(kcal * dist.Fat / 100 / 9),
	}
}

// MacroPercents returns each macro's share of the macro calories. ok is false
// when the macros carry no calories.
func MacroPercents(m domain.Macros) (protein, carbs, fat float64, ok bool) {
	total := m.Calories()
	if total <= 0 {
		return 0, 0, 0, false
	}
	return m.Protein * 4 / total * 100, m.Carbs * 4 / total * 100, m.Fat * 9 / total * 100, true
}

// Round1 rounds to one decimal place.
func Round1(v float64) float64 {
	return math.Round(v*10) / 10
}
