package domain

import "time"

// GeneratedBy records where a plan's content came from.
type GeneratedBy string

const (
	GeneratedByTemplate GeneratedBy = "template"
	GeneratedByAI       GeneratedBy = "ai"
	GeneratedByHybrid   GeneratedBy = "hybrid"
)

type Severity string

const (
	SeverityError   Severity = "error"
	SeverityWarning Severity = "warning"
	SeverityInfo    Severity = "info"
)

// ValidationCheck is the outcome of one rule. Checks are produced fresh on
// every validation pass and identified by Name.
type ValidationCheck struct {
	Name     string   `bson:"name" json:"name"`
	Passed   bool     `bson:"passed" json:"passed"`
	Message  string   `bson:"message" json:"message"`
	Severity Severity `bson:"severity" json:"severity"`
}

// TrainingSection is the training half of a weekly plan.
type TrainingSection struct {
	WeeklyStructure []WorkoutDay   `bson:"weeklyStructure" json:"weeklyStructure"`
	TotalVolume     map[string]int `bson:"totalVolume" json:"totalVolume"` // sets per muscle group
	Progression     string         `bson:"progression" json:"progression"`
}

// NutritionSection is the nutrition half of a weekly plan.
type NutritionSection struct {
	DailyCalories int              `bson:"dailyCalories" json:"dailyCalories"`
	MacroTargets  Macros           `bson:"macroTargets" json:"macroTargets"`
	WeeklyMenu    []DailyNutrition `bson:"weeklyMenu" json:"weeklyMenu"`
	MealPrepTips  []string         `bson:"mealPrepTips,omitempty" json:"mealPrepTips,omitempty"`
}

// ValidationSection summarises the last validation pass over a plan.
type ValidationSection struct {
	Passed   bool              `bson:"passed" json:"passed"`
	Errors   []string          `bson:"errors" json:"errors"`
	Warnings []string          `bson:"warnings" json:"warnings"`
	Checks   []ValidationCheck `bson:"checks" json:"checks"`
}

type PlanMetadata struct {
	GeneratedBy     GeneratedBy   `bson:"generatedBy" json:"generatedBy"`
	AIModel         string        `bson:"aiModel,omitempty" json:"aiModel,omitempty"`
	TemplateIDs     []string      `bson:"templateIds,omitempty" json:"templateIds,omitempty"`
	GenerationTime  int64         `bson:"generationTime" json:"generationTime"` // milliseconds
	TrainingSource  SectionSource `bson:"trainingSource" json:"trainingSource"`
	NutritionSource SectionSource `bson:"nutritionSource" json:"nutritionSource"`
	AutoFixes       []string      `bson:"autoFixes,omitempty" json:"autoFixes,omitempty"`
	AIReasoning     string        `bson:"aiReasoning,omitempty" json:"aiReasoning,omitempty"`
}

// WeeklyPlan is one week of training and nutrition for one user.
type WeeklyPlan struct {
	ID          string                   `bson:"_id" json:"id"`
	ParentID    string                   `bson:"parentId,omitempty" json:"parentId,omitempty"` // plan this version was regenerated from
	UserID      string                   `bson:"userId" json:"userId"`
	WeekNumber  int                      `bson:"weekNumber" json:"weekNumber"`
	CreatedAt   time.Time                `bson:"createdAt" json:"createdAt"`
	Version     int                      `bson:"version" json:"version"`
	Preferences UserPreferences          `bson:"preferences" json:"preferences"`
	Constraints *RegenerationConstraints `bson:"constraints,omitempty" json:"constraints,omitempty"` // applied by the call that produced this version
	Training    TrainingSection          `bson:"training" json:"training"`
	Nutrition   NutritionSection         `bson:"nutrition" json:"nutrition"`
	Validation  ValidationSection        `bson:"validation" json:"validation"`
	Metadata    PlanMetadata             `bson:"metadata" json:"metadata"`
	ArchiveKey  string                   `bson:"archiveKey,omitempty" json:"archiveKey,omitempty"` // object key of the stored snapshot
}

// EffectivePreferences are the preferences narrowed by the constraints
// applied to this version.
func (p *WeeklyPlan) EffectivePreferences() UserPreferences {
	return p.Preferences.WithConstraints(p.Constraints)
}

// Clone returns a deep copy so callers can derive a new version without
// touching the original.
func (p *WeeklyPlan) Clone() *WeeklyPlan {
	if p == nil {
		return nil
	}
	out := *p
	out.Preferences.Allergies = append([]string(nil), p.Preferences.Allergies...)
	if p.Constraints != nil {
		c := *p.Constraints
		c.ExcludeFoods = append([]string(nil), c.ExcludeFoods...)
		c.CookingMethods = append([]string(nil), c.CookingMethods...)
		c.PreferredExercises = append([]string(nil), c.PreferredExercises...)
		c.AvoidExercises = append([]string(nil), c.AvoidExercises...)
		c.FocusAreas = append([]string(nil), c.FocusAreas...)
		out.Constraints = &c
	}
	out.Training.WeeklyStructure = CloneWeek(p.Training.WeeklyStructure)
	if p.Training.TotalVolume != nil {
		out.Training.TotalVolume = make(map[string]int, len(p.Training.TotalVolume))
		for k, v := range p.Training.TotalVolume {
			out.Training.TotalVolume[k] = v
		}
	}
	out.Nutrition.WeeklyMenu = CloneMenu(p.Nutrition.WeeklyMenu)
	out.Nutrition.MealPrepTips = append([]string(nil), p.Nutrition.MealPrepTips...)
	out.Validation.Errors = append([]string(nil), p.Validation.Errors...)
	out.Validation.Warnings = append([]string(nil), p.Validation.Warnings...)
	out.Validation.Checks = append([]ValidationCheck(nil), p.Validation.Checks...)
	out.Metadata.TemplateIDs = append([]string(nil), p.Metadata.TemplateIDs...)
	out.Metadata.AutoFixes = append([]string(nil), p.Metadata.AutoFixes...)
	return &out
}

// TrainingDays counts days whose focus is not rest.
func (p *WeeklyPlan) TrainingDays() int {
	n := 0
	for _, d := range p.Training.WeeklyStructure {
		if d.IsTraining() {
			n++
		}
	}
	return n
}
