package calc

import (
	"testing"

	"alcyxob/fitness-planner/internal/domain"

	"github.com/stretchr/testify/assert"
)

func TestDailyCaloriesDefaultsWhenBiometricsMissing(t *testing.T) {
	partial := []domain.Biometrics{
		{},
		{Weight: 80, Height: 180, Age: 30, Sex: domain.SexMale},
		{Weight: 80, Height: 180, Sex: domain.SexMale, ActivityLevel: domain.ActivityModerate},
		{Height: 180, Age: 30, Sex: domain.SexMale, ActivityLevel: domain.ActivityModerate},
		{Weight: 80, Height: 180, Age: 30, ActivityLevel: domain.ActivityModerate},
	}
	want := map[domain.Goal]int{
		domain.GoalFatLoss:     1800,
		domain.GoalMuscleGain:  2800,
		domain.GoalMaintenance: 2200,
		domain.GoalPerformance: 2500,
		"unknown":              2000,
	}

	for goal, kcal := range want {
		for _, b := range partial {
			assert.Equal(t, kcal, DailyCalories(goal, b), "goal %s biometrics %+v", goal, b)
		}
	}
}

func TestDailyCaloriesMifflinStJeor(t *testing.T) {
	male := domain.Biometrics{Weight: 80, Height: 180, Age: 30, Sex: domain.SexMale, ActivityLevel: domain.ActivityModerate}
	female := domain.Biometrics{Weight: 60, Height: 165, Age: 25, Sex: domain.SexFemale, ActivityLevel: domain.ActivitySedentary}

	assert.InDelta(t, 1780.0, BMR(male), 1e-9)
	assert.InDelta(t, 1345.25, BMR(female), 1e-9)

	tests := []struct {
		name string
		goal domain.Goal
		b    domain.Biometrics
		want int
	}{
		{"male moderate maintenance", domain.GoalMaintenance, male, 2759},
		{"female sedentary fat loss", domain.GoalFatLoss, female, 1291},
		{"male active muscle gain", domain.GoalMuscleGain, withActivity(male, domain.ActivityActive), 3531},
		{"male very active performance", domain.GoalPerformance, withActivity(male, domain.ActivityVeryActive), 3720},
		{"unknown activity uses light", domain.GoalMaintenance, withActivity(male, "couch"), 2448},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, DailyCalories(tt.goal, tt.b))
		})
	}
}

func withActivity(b domain.Biometrics, level domain.ActivityLevel) domain.Biometrics {
	b.ActivityLevel = level
	return b
}

func TestMacroGrams(t *testing.T) {
	m := MacroGrams(1800, domain.DefaultMacroDistribution)
	assert.Equal(t, domain.Macros{Protein: 135, Carbs: 180, Fat: 60}, m)

	m = MacroGrams(2800, domain.MacroDistribution{Protein: 30, Carbs: 45, Fat: 25})
	assert.Equal(t, domain.Macros{Protein: 210, Carbs: 315, Fat: 77.8}, m)
}

func TestMacroPercents(t *testing.T) {
	p, c, f, ok := MacroPercents(domain.Macros{Protein: 135, Carbs: 180, Fat: 60})
	assert.True(t, ok)
	assert.InDelta(t, 30, p, 0.01)
	assert.InDelta(t, 40, c, 0.01)
	assert.InDelta(t, 30, f, 0.01)

	_, _, _, ok = MacroPercents(domain.Macros{})
	assert.False(t, ok)
}

func TestMuscleGroupVolume(t *testing.T) {
	assert.Empty(t, MuscleGroupVolume(nil))
	assert.Empty(t, MuscleGroupVolume([]domain.WorkoutDay{{Day: "Mon"}, {Day: "Tue", Focus: domain.FocusRest}}))

	var week []domain.WorkoutDay
	for i := 0; i < 4; i++ {
		week = append(week, domain.WorkoutDay{Exercises: []domain.Exercise{{Name: "x", Sets: 3, MuscleGroups: []string{"A"}}}})
	}
	assert.Equal(t, map[string]int{"A": 12}, MuscleGroupVolume(week))

	mixed := []domain.WorkoutDay{{Exercises: []domain.Exercise{
		{Name: "bench", Sets: 4, MuscleGroups: []string{"chest", "triceps"}},
		{Name: "unknown", Sets: 5},
		{Name: "dips", Sets: 3, MuscleGroups: []string{"triceps", " "}},
	}}}
	assert.Equal(t, map[string]int{"chest": 4, "triceps": 7}, MuscleGroupVolume(mixed))
}

func TestRepSeconds(t *testing.T) {
	cases := map[string]int{
		"8-12":   8,
		"30s":    30,
		"20 min": 1200,
		"10 MIN": 600,
		"10":     10,
		"AMRAP":  30,
		"":       30,
		"0":      30,
	}
	for in, want := range cases {
		assert.Equal(t, want, RepSeconds(in), in)
	}
}

func TestEstimatedMinutes(t *testing.T) {
	day := domain.WorkoutDay{Exercises: []domain.Exercise{
		{Sets: 3, Reps: "30s", Rest: 30},
		{Sets: 1, Reps: "20 min"},
	}}
	// 3*30+3*30 + 1*1200+1*60 = 1440s
	assert.InDelta(t, 24.0, EstimatedMinutes(day), 1e-9)
	assert.Zero(t, EstimatedMinutes(domain.WorkoutDay{}))
}
