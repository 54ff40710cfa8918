package domain

// SectionSource tags where a plan section's content came from.
type SectionSource string

const (
	SourceUnset    SectionSource = ""
	SourceTemplate SectionSource = "template"
	SourceAI       SectionSource = "ai"
	SourceFallback SectionSource = "fallback"
)

// TrainingFragment is the training part of an AI response.
type TrainingFragment struct {
	WeeklyStructure []WorkoutDay `json:"weeklyStructure"`
	Progression     string       `json:"progression"`
}

// NutritionFragment is the nutrition part of an AI response.
type NutritionFragment struct {
	WeeklyMenu   []DailyNutrition `json:"weeklyMenu"`
	MealPrepTips []string         `json:"mealPrepTips"`
}

// PlanFragment is a parsed AI response. A nil section was absent.
type PlanFragment struct {
	Training  *TrainingFragment  `json:"training,omitempty"`
	Nutrition *NutritionFragment `json:"nutrition,omitempty"`
	Reasoning string             `json:"reasoning,omitempty"`
}

// HasTraining reports whether the fragment carries a usable training week.
func (f *PlanFragment) HasTraining() bool {
	return f != nil && f.Training != nil && len(f.Training.WeeklyStructure) > 0
}

// HasNutrition reports whether the fragment carries a usable menu.
func (f *PlanFragment) HasNutrition() bool {
	return f != nil && f.Nutrition != nil && len(f.Nutrition.WeeklyMenu) > 0
}
