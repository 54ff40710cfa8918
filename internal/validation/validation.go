// Package validation checks a weekly plan against physiological safety rules.
// Every pass produces a fresh list of checks; nothing is patched in place.
package validation

import (
	"fmt"
	"math"
	"sort"

	"alcyxob/fitness-planner/internal/calc"
	"alcyxob/fitness-planner/internal/domain"
)

// Check names. Per-muscle and per-day checks append the muscle or day label.
const (
	CheckCaloriesMin        = "calories_min"
	CheckCaloriesMax        = "calories_max"
	CheckCaloriesRange      = "calories_range"
	CheckProteinMin         = "protein_min"
	CheckProteinMax         = "protein_max"
	CheckProteinRange       = "protein_range"
	CheckMacroProteinMin    = "macro_protein_min"
	CheckMacroProteinMax    = "macro_protein_max"
	CheckMacroCarbsMin      = "macro_carbs_min"
	CheckMacroFatMin        = "macro_fat_min"
	CheckCalorieConsistency = "calorie_consistency"

	CheckSessionsMin      = "sessions_min"
	CheckSessionsMax      = "sessions_max"
	CheckSessionsRange    = "sessions_range"
	CheckRestDaysMin      = "rest_days_min"
	CheckRestDaysMax      = "rest_days_max"
	CheckRestDaysRange    = "rest_days_range"
	CheckVolumeMinPrefix  = "volume_min_"
	CheckVolumeMaxPrefix  = "volume_max_"
	CheckDurationPrefix   = "duration_max_"
	CheckCoherencePrefix  = "duration_coherence_"
	CheckDaysMatch        = "days_match"
	CheckSessionTimeMatch = "session_time_match"
)

const (
	maxCalorieVariance  = 200.0 // kcal between menu average and target
	maxCoherenceDrift   = 15.0  // minutes between estimated and declared duration
	maxSessionTimeDrift = 10.0  // minutes between average session and requested time
)

// Validate runs the nutrition and training rule groups over plan. userWeight
// is in kg; zero means unknown and skips the per-kg protein rule. Training
// coherence is checked against the plan's effective preferences.
func Validate(plan *domain.WeeklyPlan, rules domain.ValidationRules, userWeight float64) []domain.ValidationCheck {
	checks := validateNutrition(plan, rules, userWeight)
	return append(checks, validateTraining(plan, rules, plan.EffectivePreferences())...)
}

// IsValid is false iff some failed check has error severity.
func IsValid(checks []domain.ValidationCheck) bool {
	for _, c := range checks {
		if !c.Passed && c.Severity == domain.SeverityError {
			return false
		}
	}
	return true
}

// Summarize builds the plan's validation section from a check list.
func Summarize(checks []domain.ValidationCheck) domain.ValidationSection {
	out := domain.ValidationSection{
		Passed:   IsValid(checks),
		Errors:   []string{},
		Warnings: []string{},
		Checks:   append([]domain.ValidationCheck{}, checks...),
	}
	for _, c := range checks {
		if c.Passed {
			continue
		}
		switch c.Severity {
		case domain.SeverityError:
			out.Errors = append(out.Errors, c.Message)
		case domain.SeverityWarning:
			out.Warnings = append(out.Warnings, c.Message)
		}
	}
	return out
}

// Failed returns the names of failed checks with the given severity.
func Failed(checks []domain.ValidationCheck, severity domain.Severity) []string {
	var names []string
	for _, c := range checks {
		if !c.Passed && c.Severity == severity {
			names = append(names, c.Name)
		}
	}
	return names
}

func pass(name, msg string) domain.ValidationCheck {
	return domain.ValidationCheck{Name: name, Passed: true, Message: msg, Severity: domain.SeverityInfo}
}

func fail(name string, severity domain.Severity, msg string) domain.ValidationCheck {
	return domain.ValidationCheck{Name: name, Passed: false, Message: msg, Severity: severity}
}

func validateNutrition(plan *domain.WeeklyPlan, rules domain.ValidationRules, userWeight float64) []domain.ValidationCheck {
	var checks []domain.ValidationCheck
	n := plan.Nutrition

	switch {
	case n.DailyCalories < rules.MinCalories:
		checks = append(checks, fail(CheckCaloriesMin, domain.SeverityError,
			fmt.Sprintf("Daily calories (%d) are below the safe minimum of %d kcal.", n.DailyCalories, rules.MinCalories)))
	case n.DailyCalories > rules.MaxCalories:
		checks = append(checks, fail(CheckCaloriesMax, domain.SeverityWarning,
			fmt.Sprintf("Daily calories (%d) exceed the reasonable maximum of %d kcal.", n.DailyCalories, rules.MaxCalories)))
	default:
		checks = append(checks, pass(CheckCaloriesRange,
			fmt.Sprintf("Daily calories (%d kcal) are within the safe range.", n.DailyCalories)))
	}

	if userWeight > 0 {
		perKg := n.MacroTargets.Protein / userWeight
		switch {
		case perKg < rules.MinProteinPerKg:
			checks = append(checks, fail(CheckProteinMin, domain.SeverityError,
				fmt.Sprintf("Protein (%.1f g/kg) is below the recommended minimum of %.1f g/kg.", perKg, rules.MinProteinPerKg)))
		case perKg > rules.MaxProteinPerKg:
			checks = append(checks, fail(CheckProteinMax, domain.SeverityWarning,
				fmt.Sprintf("Protein (%.1f g/kg) exceeds the useful maximum of %.1f g/kg.", perKg, rules.MaxProteinPerKg)))
		default:
			checks = append(checks, pass(CheckProteinRange,
				fmt.Sprintf("Protein (%.1f g/kg) is within the optimal range.", perKg)))
		}
	}

	// Too little protein or fat is a safety error; too much protein or too
	// few carbs is advisory only.
	if protein, carbs, fat, ok := calc.MacroPercents(n.MacroTargets); ok {
		if protein < rules.ProteinPercent.Min {
			checks = append(checks, fail(CheckMacroProteinMin, domain.SeverityError,
				fmt.Sprintf("Protein supplies only %.1f%% of calories; minimum is %.0f%%.", protein, rules.ProteinPercent.Min)))
		} else if protein > rules.ProteinPercent.Max {
			checks = append(checks, fail(CheckMacroProteinMax, domain.SeverityWarning,
				fmt.Sprintf("Protein supplies %.1f%% of calories; maximum is %.0f%%.", protein, rules.ProteinPercent.Max)))
		}
		if carbs < rules.CarbsPercent.Min {
			checks = append(checks, fail(CheckMacroCarbsMin, domain.SeverityWarning,
				fmt.Sprintf("Carbohydrates supply only %.1f%% of calories; minimum is %.0f%%.", carbs, rules.CarbsPercent.Min)))
		}
		if fat < rules.FatPercent.Min {
			checks = append(checks, fail(CheckMacroFatMin, domain.SeverityError,
				fmt.Sprintf("Fat supplies only %.1f%% of calories; minimum is %.0f%%.", fat, rules.FatPercent.Min)))
		}
	}

	if len(n.WeeklyMenu) > 0 {
		total := 0
		for _, day := range n.WeeklyMenu {
			total += day.TotalCalories
		}
		avg := float64(total) / float64(len(n.WeeklyMenu))
		if diff := math.Abs(avg - float64(n.DailyCalories)); diff > maxCalorieVariance {
			checks = append(checks, fail(CheckCalorieConsistency, domain.SeverityWarning,
				fmt.Sprintf("The menu averages %.0f kcal per day, %.0f kcal away from the %d kcal target.", avg, diff, n.DailyCalories)))
		}
	}

	return checks
}

func validateTraining(plan *domain.WeeklyPlan, rules domain.ValidationRules, prefs domain.UserPreferences) []domain.ValidationCheck {
	var checks []domain.ValidationCheck
	week := plan.Training.WeeklyStructure

	trainingDays := plan.TrainingDays()
	restDays := len(week) - trainingDays

	switch {
	case trainingDays < rules.MinSessionsPerWeek:
		checks = append(checks, fail(CheckSessionsMin, domain.SeverityError,
			fmt.Sprintf("Only %d training days; at least %d per week are recommended.", trainingDays, rules.MinSessionsPerWeek)))
	case trainingDays > rules.MaxSessionsPerWeek:
		checks = append(checks, fail(CheckSessionsMax, domain.SeverityWarning,
			fmt.Sprintf("%d training days exceed the recommended maximum of %d.", trainingDays, rules.MaxSessionsPerWeek)))
	default:
		checks = append(checks, pass(CheckSessionsRange,
			fmt.Sprintf("%d training days per week is within the optimal range.", trainingDays)))
	}

	switch {
	case restDays < rules.RestDaysPerWeek.Min:
		checks = append(checks, fail(CheckRestDaysMin, domain.SeverityError,
			fmt.Sprintf("Only %d rest day(s); at least %d are needed for recovery.", restDays, rules.RestDaysPerWeek.Min)))
	case restDays > rules.RestDaysPerWeek.Max:
		checks = append(checks, fail(CheckRestDaysMax, domain.SeverityWarning,
			fmt.Sprintf("%d rest days may be too many to reach the goal; at most %d are recommended.", restDays, rules.RestDaysPerWeek.Max)))
	default:
		checks = append(checks, pass(CheckRestDaysRange,
			fmt.Sprintf("%d rest day(s) per week is within the recommended range.", restDays)))
	}

	volume := calc.MuscleGroupVolume(week)
	muscles := make([]string, 0, len(volume))
	for m := range volume {
		muscles = append(muscles, m)
	}
	sort.Strings(muscles)
	for _, m := range muscles {
		sets := volume[m]
		if sets < rules.MinVolumePerMuscleGroup {
			checks = append(checks, fail(CheckVolumeMinPrefix+m, domain.SeverityWarning,
				fmt.Sprintf("%q gets only %d sets per week; at least %d are recommended.", m, sets, rules.MinVolumePerMuscleGroup)))
		} else if sets > rules.MaxVolumePerMuscleGroup {
			checks = append(checks, fail(CheckVolumeMaxPrefix+m, domain.SeverityError,
				fmt.Sprintf("%q gets %d sets per week; more than %d risks overtraining.", m, sets, rules.MaxVolumePerMuscleGroup)))
		}
	}

	for _, day := range week {
		if day.Duration > rules.MaxSessionDuration {
			checks = append(checks, fail(CheckDurationPrefix+day.Day, domain.SeverityWarning,
				fmt.Sprintf("The %s session lasts %d minutes; the maximum is %d.", day.Day, day.Duration, rules.MaxSessionDuration)))
		}
		if len(day.Exercises) == 0 {
			continue
		}
		estimated := calc.EstimatedMinutes(day)
		if math.Abs(estimated-float64(day.Duration)) > maxCoherenceDrift {
			checks = append(checks, fail(CheckCoherencePrefix+day.Day, domain.SeverityWarning,
				fmt.Sprintf("Estimated duration (%.0f min) does not match the declared %d min on %s.", estimated, day.Duration, day.Day)))
		}
	}

	if trainingDays != prefs.DaysPerWeek {
		checks = append(checks, fail(CheckDaysMatch, domain.SeverityError,
			fmt.Sprintf("The plan has %d training days but %d were requested.", trainingDays, prefs.DaysPerWeek)))
	}

	sum, counted := 0, 0
	for _, day := range week {
		if day.Duration > 0 {
			sum += day.Duration
			counted++
		}
	}
	if counted > 0 {
		avg := float64(sum) / float64(counted)
		if math.Abs(avg-float64(prefs.SessionTime)) > maxSessionTimeDrift {
			checks = append(checks, fail(CheckSessionTimeMatch, domain.SeverityWarning,
				fmt.Sprintf("Average session time (%.0f min) does not match the requested %d min.", avg, prefs.SessionTime)))
		}
	}

	return checks
}
