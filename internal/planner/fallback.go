package planner

import "alcyxob/fitness-planner/internal/domain"

const fallbackProgression = "Add one or two reps per set each week; once you reach the top of the range, increase the load and start again at the bottom."

var fallbackArchetypes = []domain.Focus{domain.FocusUpper, domain.FocusLower, domain.FocusFull, domain.FocusCardio}

var archetypeNames = map[domain.Focus]string{
	domain.FocusUpper:  "Upper body",
	domain.FocusLower:  "Lower body",
	domain.FocusFull:   "Full body",
	domain.FocusCardio: "Cardio",
}

// mainExercises picks one generic movement per archetype and equipment tier.
var mainExercises = map[domain.Focus]map[domain.Equipment]string{
	domain.FocusUpper: {
		domain.EquipmentNone:  "Push-ups",
		domain.EquipmentBasic: "Dumbbell bench press",
		domain.EquipmentGym:   "Barbell bench press",
	},
	domain.FocusLower: {
		domain.EquipmentNone:  "Bodyweight squats",
		domain.EquipmentBasic: "Goblet squat",
		domain.EquipmentGym:   "Barbell back squat",
	},
	domain.FocusFull: {
		domain.EquipmentNone:  "Burpees",
		domain.EquipmentBasic: "Dumbbell thrusters",
		domain.EquipmentGym:   "Deadlift",
	},
	domain.FocusCardio: {
		domain.EquipmentNone:  "Brisk walk or jog",
		domain.EquipmentBasic: "Jump rope intervals",
		domain.EquipmentGym:   "Stationary bike intervals",
	},
}

var mainMuscles = map[domain.Focus][]string{
	domain.FocusUpper:  {"chest", "triceps", "shoulders"},
	domain.FocusLower:  {"quads", "glutes", "hamstrings"},
	domain.FocusFull:   {"full-body"},
	domain.FocusCardio: {"cardio"},
}

// FallbackWeek fabricates a minimal seven-day week: daysPerWeek workouts
// spread across the week, rest days for the remainder. Each workout is a
// warm-up, one main exercise for the equipment tier and a cool-down.
func FallbackWeek(prefs domain.UserPreferences) []domain.WorkoutDay {
	days := len(domain.WeekDays)
	n := prefs.DaysPerWeek
	if n < 1 {
		n = 1
	}
	if n > days {
		n = days
	}
	duration := prefs.SessionTime
	if duration <= 0 {
		duration = 45
	}

	week := make([]domain.WorkoutDay, days)
	for i, label := range domain.WeekDays {
		week[i] = domain.WorkoutDay{Day: label, Name: "Rest", Focus: domain.FocusRest, Intensity: domain.IntensityLow}
	}
	for i := 0; i < n; i++ {
		slot := i * days / n
		focus := fallbackArchetypes[i%len(fallbackArchetypes)]
		week[slot] = domain.WorkoutDay{
			Day:       domain.WeekDays[slot],
			Name:      archetypeNames[focus],
			Duration:  duration,
			Focus:     focus,
			Intensity: domain.IntensityMedium,
			Exercises: []domain.Exercise{
				{Name: "Warm-up", Sets: 1, Reps: "5 min", MuscleGroups: []string{"mobility"}},
				mainExercise(focus, prefs.Equipment),
				{Name: "Cool-down stretch", Sets: 1, Reps: "5 min", MuscleGroups: []string{"mobility"}},
			},
		}
	}
	return week
}

func mainExercise(focus domain.Focus, equipment domain.Equipment) domain.Exercise {
	byTier := mainExercises[focus]
	name, ok := byTier[equipment]
	if !ok {
		name = byTier[domain.EquipmentNone]
	}
	ex := domain.Exercise{
		Name:         name,
		Sets:         3,
		Reps:         "8-12",
		Rest:         90,
		MuscleGroups: append([]string(nil), mainMuscles[focus]...),
	}
	if focus == domain.FocusCardio {
		ex.Sets, ex.Reps, ex.Rest = 1, "20 min", 0
	}
	return ex
}
