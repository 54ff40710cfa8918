package planner

import (
	"fmt"
	"math"

	"alcyxob/fitness-planner/internal/calc"
	"alcyxob/fitness-planner/internal/domain"
	"alcyxob/fitness-planner/internal/validation"
)

// AutoFix returns a corrected copy of plan and a description of each change.
// Only the calorie floor and the per-kg protein floor are corrected; other
// failed checks need a structural change and are left for the caller to see.
// Applying AutoFix twice changes nothing the second time.
func AutoFix(plan *domain.WeeklyPlan, checks []domain.ValidationCheck, rules domain.ValidationRules) (*domain.WeeklyPlan, []string) {
	out := plan.Clone()
	var fixes []string

	for _, c := range checks {
		if c.Passed || c.Severity != domain.SeverityError {
			continue
		}
		switch c.Name {
		case validation.CheckCaloriesMin:
			if out.Nutrition.DailyCalories < rules.MinCalories {
				fixes = append(fixes, fmt.Sprintf("raised daily calories from %d to %d kcal", out.Nutrition.DailyCalories, rules.MinCalories))
				out.Nutrition.DailyCalories = rules.MinCalories
			}
		case validation.CheckProteinMin:
			weight := out.EffectivePreferences().Weight
			if weight <= 0 {
				continue
			}
			floor := proteinFloor(weight, rules.MinProteinPerKg)
			if out.Nutrition.MacroTargets.Protein < floor {
				fixes = append(fixes, fmt.Sprintf("raised protein from %.1f g to %.1f g", out.Nutrition.MacroTargets.Protein, floor))
				out.Nutrition.MacroTargets.Protein = floor
			}
		}
	}
	return out, fixes
}

// applyClamps enforces the numeric regeneration constraints on the plan's
// nutrition targets in place and reports what changed.
func applyClamps(plan *domain.WeeklyPlan, c *domain.RegenerationConstraints) []string {
	if c == nil {
		return nil
	}
	var clamps []string
	n := &plan.Nutrition

	if c.MaxCalories > 0 && n.DailyCalories > c.MaxCalories {
		clamps = append(clamps, fmt.Sprintf("capped daily calories from %d to %d kcal", n.DailyCalories, c.MaxCalories))
		n.DailyCalories = c.MaxCalories
	}
	if weight := plan.Preferences.Weight; c.MinProtein > 0 && weight > 0 {
		floor := proteinFloor(weight, c.MinProtein)
		if n.MacroTargets.Protein < floor {
			clamps = append(clamps, fmt.Sprintf("raised protein from %.1f g to %.1f g", n.MacroTargets.Protein, floor))
			n.MacroTargets.Protein = floor
		}
	}
	if c.MaxCarbs > 0 && n.MacroTargets.Carbs > c.MaxCarbs {
		clamps = append(clamps, fmt.Sprintf("capped carbohydrates from %.1f g to %.1f g", n.MacroTargets.Carbs, c.MaxCarbs))
		n.MacroTargets.Carbs = c.MaxCarbs
	}
	return clamps
}

// proteinFloor is weight*perKg rounded up to a tenth of a gram, so the
// stored value never falls below perKg once divided by weight again.
func proteinFloor(weight, perKg float64) float64 {
	floor := math.Ceil(weight*perKg*10-1e-6) / 10
	for floor/weight < perKg {
		floor = calc.Round1(floor + 0.1)
	}
	return floor
}
