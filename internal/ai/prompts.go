package ai

import (
	"encoding/json"
	"fmt"
	"strings"

	"alcyxob/fitness-planner/internal/domain"
)

const systemPrompt = "You are a fitness and nutrition expert grounded in scientific evidence. " +
	"Always respond with valid, well-structured JSON."

// BaseTemplate is the template content the model is asked to personalise.
// Either half may be nil.
type BaseTemplate struct {
	Training  *domain.TrainingTemplate
	Nutrition *domain.NutritionTemplate
}

func (b *BaseTemplate) empty() bool {
	return b == nil || (b.Training == nil && b.Nutrition == nil)
}

var goalDescriptions = map[domain.Goal]string{
	domain.GoalFatLoss:     "fat loss (moderate calorie deficit)",
	domain.GoalMuscleGain:  "muscle gain (calorie surplus)",
	domain.GoalMaintenance: "maintain current weight",
	domain.GoalPerformance: "improve athletic performance",
}

var equipmentDescriptions = map[domain.Equipment]string{
	domain.EquipmentNone:  "no equipment (bodyweight only)",
	domain.EquipmentBasic: "basic equipment (dumbbells, resistance bands)",
	domain.EquipmentGym:   "full gym (barbells, machines, free weights)",
}

var dietDescriptions = map[domain.DietType]string{
	domain.DietOmnivore:    "omnivore (meat, fish, eggs and dairy)",
	domain.DietVegetarian:  "vegetarian (no meat or fish, eggs and dairy allowed)",
	domain.DietPescatarian: "pescatarian (no meat; fish, eggs and dairy allowed)",
	domain.DietKeto:        "ketogenic (very low carb, high fat)",
}

func describe[K comparable](table map[K]string, key K) string {
	if d, ok := table[key]; ok {
		return d
	}
	return fmt.Sprint(key)
}

func listOrNone(items []string) string {
	if len(items) == 0 {
		return "none"
	}
	return strings.Join(items, ", ")
}

const responseShape = `{
  "training": {
    "weeklyStructure": [
      {
        "day": "Mon",
        "name": "Workout name",
        "duration": 45,
        "focus": "upper|lower|full|cardio|rest",
        "intensity": "low|medium|high",
        "exercises": [
          {
            "name": "Exercise name",
            "sets": 3,
            "reps": "8-12",
            "rest": 60,
            "muscleGroups": ["chest", "triceps"],
            "equipment": ["barbell", "bench"],
            "notes": "Optional notes"
          }
        ]
      }
    ],
    "progression": "How to progress week to week"
  },
  "nutrition": {
    "weeklyMenu": [
      {
        "day": "Mon",
        "totalCalories": 1800,
        "protein": 158,
        "carbs": 158,
        "fat": 60,
        "meals": [
          {
            "name": "Breakfast",
            "calories": 450,
            "protein": 25,
            "carbs": 50,
            "fat": 15,
            "description": "Dish description",
            "ingredients": ["ingredient 1", "ingredient 2"],
            "recipe": {"instructions": ["Step 1", "Step 2"], "prepTime": 5, "cookTime": 10}
          }
        ]
      }
    ],
    "mealPrepTips": ["Tip 1", "Tip 2"]
  },
  "reasoning": "Short explanation of the decisions taken"
}`

// GenerationPrompt builds the prompt for a plan built from scratch or from a
// base template.
func GenerationPrompt(prefs domain.UserPreferences, base *BaseTemplate, rules domain.ValidationRules) string {
	var b strings.Builder

	b.WriteString("You are a fitness and nutrition expert grounded in scientific evidence.\n\n")
	b.WriteString("Your task is to generate a complete weekly training and nutrition plan for the following user:\n\n")

	b.WriteString("## USER GOAL\n")
	fmt.Fprintf(&b, "- Goal: %s\n", describe(goalDescriptions, prefs.Goal))
	fmt.Fprintf(&b, "- Training days per week: %d\n", prefs.DaysPerWeek)
	fmt.Fprintf(&b, "- Time per session: %d minutes\n", prefs.SessionTime)
	fmt.Fprintf(&b, "- Available equipment: %s\n", describe(equipmentDescriptions, prefs.Equipment))
	fmt.Fprintf(&b, "- Diet: %s\n", describe(dietDescriptions, prefs.DietType))
	fmt.Fprintf(&b, "- Allergies/intolerances: %s\n", listOrNone(prefs.Allergies))
	fmt.Fprintf(&b, "- Meals per day: %d\n", prefs.MealsPerDay)
	fmt.Fprintf(&b, "- Experience level: %s\n", prefs.ExperienceLevel())
	if prefs.Style == domain.StyleStrict {
		b.WriteString("- Style: strict (detailed tracking)\n")
	} else {
		b.WriteString("- Style: quick and simple (short routines, easy meals)\n")
	}
	if prefs.Weight > 0 {
		fmt.Fprintf(&b, "- Bodyweight: %.1f kg\n", prefs.Weight)
	}

	if !base.empty() {
		b.WriteString("\n## BASE TEMPLATE\n")
		b.WriteString("Use this base template as a reference and personalise it to the user's needs.\n")
		writeBaseTemplate(&b, base)
	}

	b.WriteString("\n## TECHNICAL REQUIREMENTS\n\n### TRAINING\n")
	fmt.Fprintf(&b, "- Generate %d training days per week, listing all 7 days and marking the others as rest\n", prefs.DaysPerWeek)
	fmt.Fprintf(&b, "- Each session should last about %d minutes\n", prefs.SessionTime)
	b.WriteString("- Give every exercise a name, sets, reps, rest (seconds) and the muscle groups worked\n")
	b.WriteString("- Spread training volume evenly\n")
	b.WriteString("- Include appropriate rest days\n")
	b.WriteString("- For beginners focus on technique and basic movements; intermediate and advanced users may get more complex exercises\n")

	b.WriteString("\n### NUTRITION\n")
	b.WriteString("- Generate a menu for all 7 days of the week\n")
	fmt.Fprintf(&b, "- Each day has %d meals\n", prefs.MealsPerDay)
	b.WriteString("- Compute calories and macros (protein, carbs, fat) for every meal\n")
	b.WriteString("- Keep each daily total consistent with the goal\n")
	b.WriteString("- Include dish descriptions and ingredient lists, with preparation steps where relevant\n")
	b.WriteString("- Completely avoid foods the user is allergic to\n")
	b.WriteString("- Respect the diet type\n")

	writeSafetyRestrictions(&b, rules)

	b.WriteString("\n## RESPONSE FORMAT\nRespond ONLY with valid JSON in exactly this format:\n\n```json\n")
	b.WriteString(responseShape)
	b.WriteString("\n```\n\nIMPORTANT:\n")
	b.WriteString("- Respond with the JSON only, no text before or after it\n")
	b.WriteString("- Make sure the JSON is valid\n")
	b.WriteString("- Fill in all 7 days of the week for nutrition\n")
	b.WriteString("- Fill in every requested training day\n")
	return b.String()
}

func writeSafetyRestrictions(b *strings.Builder, rules domain.ValidationRules) {
	b.WriteString("\n## SAFETY RESTRICTIONS\n")
	fmt.Fprintf(b, "- Minimum protein: %.1f g/kg bodyweight (assume 70 kg if no weight is given)\n", rules.MinProteinPerKg)
	fmt.Fprintf(b, "- Minimum calories: %d kcal/day (never less)\n", rules.MinCalories)
	fmt.Fprintf(b, "- Reasonable macro split: protein %.0f-%.0f%%, carbs %.0f-%.0f%%, fat %.0f-%.0f%%\n",
		rules.ProteinPercent.Min, rules.ProteinPercent.Max,
		rules.CarbsPercent.Min, rules.CarbsPercent.Max,
		rules.FatPercent.Min, rules.FatPercent.Max)
	fmt.Fprintf(b, "- Training volume: %d-%d sets per muscle group per week\n", rules.MinVolumePerMuscleGroup, rules.MaxVolumePerMuscleGroup)
	fmt.Fprintf(b, "- Rest days: %d-%d per week\n", rules.RestDaysPerWeek.Min, rules.RestDaysPerWeek.Max)
}

func writeBaseTemplate(b *strings.Builder, base *BaseTemplate) {
	if base.Training != nil {
		if data, err := json.Marshal(base.Training.WeeklyStructure); err == nil {
			b.WriteString("Training week:\n")
			b.Write(data)
			b.WriteString("\n")
		}
	}
	if base.Nutrition != nil {
		n := base.Nutrition
		fmt.Fprintf(b, "Nutrition: %d kcal/day, macro split protein %.0f%% / carbs %.0f%% / fat %.0f%%\n",
			n.DailyCalories, n.MacroDistribution.Protein, n.MacroDistribution.Carbs, n.MacroDistribution.Fat)
		if len(n.WeeklyMenu) > 0 {
			if data, err := json.Marshal(n.WeeklyMenu[0]); err == nil {
				b.WriteString("Sample day:\n")
				b.Write(data)
				b.WriteString("\n")
			}
		}
	}
}

// RegenerationPrompt asks the model to adjust an existing plan to the given
// constraints. Only the constraints that are present are listed.
func RegenerationPrompt(plan *domain.WeeklyPlan, c domain.RegenerationConstraints) string {
	var b strings.Builder
	p := plan.Preferences

	b.WriteString("You are a fitness and nutrition expert.\n\n")
	b.WriteString("You need to REGENERATE and ADJUST an existing plan by applying the user's additional constraints.\n\n")

	b.WriteString("## CURRENT PLAN\n")
	fmt.Fprintf(&b, "- Goal: %s\n", p.Goal)
	fmt.Fprintf(&b, "- Training days: %d\n", p.DaysPerWeek)
	fmt.Fprintf(&b, "- Time per session: %d minutes\n", p.SessionTime)
	fmt.Fprintf(&b, "- Diet: %s\n", p.DietType)
	fmt.Fprintf(&b, "- Allergies: %s\n", listOrNone(p.Allergies))
	fmt.Fprintf(&b, "- Daily calories: %d kcal\n", plan.Nutrition.DailyCalories)

	b.WriteString("\n## ADDITIONAL CONSTRAINTS\n")
	if len(c.ExcludeFoods) > 0 {
		fmt.Fprintf(&b, "- EXCLUDE foods: %s\n", strings.Join(c.ExcludeFoods, ", "))
	}
	if c.MaxCalories > 0 {
		fmt.Fprintf(&b, "- Maximum daily calories: %d kcal\n", c.MaxCalories)
	}
	if c.MinProtein > 0 {
		fmt.Fprintf(&b, "- Minimum protein: %g g/kg bodyweight\n", c.MinProtein)
	}
	if c.MaxCarbs > 0 {
		fmt.Fprintf(&b, "- Maximum carbohydrates: %g g/day\n", c.MaxCarbs)
	}
	if len(c.CookingMethods) > 0 {
		fmt.Fprintf(&b, "- Preferred cooking methods: %s\n", strings.Join(c.CookingMethods, ", "))
	}
	if c.MaxSessionTime > 0 {
		fmt.Fprintf(&b, "- Maximum time per session: %d minutes\n", c.MaxSessionTime)
	}
	if len(c.PreferredExercises) > 0 {
		fmt.Fprintf(&b, "- Preferred exercises: %s\n", strings.Join(c.PreferredExercises, ", "))
	}
	if len(c.AvoidExercises) > 0 {
		fmt.Fprintf(&b, "- Avoid exercises: %s\n", strings.Join(c.AvoidExercises, ", "))
	}
	if len(c.FocusAreas) > 0 {
		fmt.Fprintf(&b, "- Focus areas: %s\n", strings.Join(c.FocusAreas, ", "))
	}
	if notes := strings.TrimSpace(c.Notes); notes != "" {
		fmt.Fprintf(&b, "- Additional notes: %s\n", notes)
	}

	b.WriteString("\n## INSTRUCTIONS\n")
	b.WriteString("1. KEEP the overall structure of the plan (goal, days, diet type)\n")
	b.WriteString("2. ADJUST only what is needed to satisfy the constraints\n")
	b.WriteString("3. PRESERVE nutritional and training coherence\n")
	b.WriteString("4. If a constraint conflicts with the goal, prioritise the user's safety and health\n")

	b.WriteString("\n## RESPONSE FORMAT\n")
	b.WriteString("Respond ONLY with valid JSON in the same format as the original plan, with the adjustments applied:\n\n```json\n")
	b.WriteString(responseShape)
	b.WriteString("\n```\n")
	return b.String()
}
