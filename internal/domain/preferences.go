package domain

import (
	"fmt"
	"strings"
)

// Goal is the user's primary training objective.
type Goal string

const (
	GoalFatLoss     Goal = "fat-loss"
	GoalMuscleGain  Goal = "muscle-gain"
	GoalMaintenance Goal = "maintenance"
	GoalPerformance Goal = "performance"
)

// Equipment is the equipment tier available to the user.
type Equipment string

const (
	EquipmentNone  Equipment = "none"
	EquipmentBasic Equipment = "basic"
	EquipmentGym   Equipment = "gym"
)

type DietType string

const (
	DietOmnivore    DietType = "omnivore"
	DietVegetarian  DietType = "vegetarian"
	DietPescatarian DietType = "pescatarian"
	DietKeto        DietType = "keto"
)

// Style controls how prescriptive the generated plan is.
type Style string

const (
	StyleSimple Style = "simple"
	StyleStrict Style = "strict"
)

type Level string

const (
	LevelBeginner     Level = "beginner"
	LevelIntermediate Level = "intermediate"
	LevelAdvanced     Level = "advanced"
)

type Sex string

const (
	SexMale   Sex = "male"
	SexFemale Sex = "female"
)

type ActivityLevel string

const (
	ActivitySedentary  ActivityLevel = "sedentary"
	ActivityLight      ActivityLevel = "light"
	ActivityModerate   ActivityLevel = "moderate"
	ActivityActive     ActivityLevel = "active"
	ActivityVeryActive ActivityLevel = "very-active"
)

// Biometrics are optional. A zero field means the value is unknown.
type Biometrics struct {
	Weight        float64       `bson:"weight,omitempty" json:"weight,omitempty"` // kg
	Height        float64       `bson:"height,omitempty" json:"height,omitempty"` // cm
	Age           int           `bson:"age,omitempty" json:"age,omitempty"`
	Sex           Sex           `bson:"sex,omitempty" json:"sex,omitempty"`
	ActivityLevel ActivityLevel `bson:"activityLevel,omitempty" json:"activityLevel,omitempty"`
}

// Complete reports whether every biometric needed for a BMR estimate is present.
func (b Biometrics) Complete() bool {
	return b.Weight > 0 && b.Height > 0 && b.Age > 0 && b.Sex != "" && b.ActivityLevel != ""
}

// UserPreferences is the onboarding input to a generation run.
type UserPreferences struct {
	Goal        Goal      `bson:"goal" json:"goal"`
	DaysPerWeek int       `bson:"daysPerWeek" json:"daysPerWeek"`
	SessionTime int       `bson:"sessionTime" json:"sessionTime"` // minutes
	Equipment   Equipment `bson:"equipment" json:"equipment"`
	DietType    DietType  `bson:"dietType" json:"dietType"`
	Allergies   []string  `bson:"allergies,omitempty" json:"allergies"`
	MealsPerDay int       `bson:"mealsPerDay" json:"mealsPerDay"`
	Style       Style     `bson:"style,omitempty" json:"style,omitempty"`
	Level       Level     `bson:"level,omitempty" json:"level,omitempty"` // defaults to beginner

	Biometrics `bson:",inline"`
}

// ExperienceLevel returns the declared level, falling back to beginner.
func (p UserPreferences) ExperienceLevel() Level {
	if p.Level == "" {
		return LevelBeginner
	}
	return p.Level
}

// Validate checks the enumerations and numeric ranges accepted at onboarding.
func (p UserPreferences) Validate() error {
	switch p.Goal {
	case GoalFatLoss, GoalMuscleGain, GoalMaintenance, GoalPerformance:
	default:
		return fmt.Errorf("unknown goal %q", p.Goal)
	}
	if p.DaysPerWeek < 3 || p.DaysPerWeek > 6 {
		return fmt.Errorf("daysPerWeek must be between 3 and 6, got %d", p.DaysPerWeek)
	}
	if p.SessionTime <= 0 {
		return fmt.Errorf("sessionTime must be positive, got %d", p.SessionTime)
	}
	switch p.Equipment {
	case EquipmentNone, EquipmentBasic, EquipmentGym:
	default:
		return fmt.Errorf("unknown equipment %q", p.Equipment)
	}
	switch p.DietType {
	case DietOmnivore, DietVegetarian, DietPescatarian, DietKeto:
	default:
		return fmt.Errorf("unknown dietType %q", p.DietType)
	}
	if p.MealsPerDay < 3 || p.MealsPerDay > 5 {
		return fmt.Errorf("mealsPerDay must be between 3 and 5, got %d", p.MealsPerDay)
	}
	switch p.Style {
	case "", StyleSimple, StyleStrict:
	default:
		return fmt.Errorf("unknown style %q", p.Style)
	}
	switch p.Level {
	case "", LevelBeginner, LevelIntermediate, LevelAdvanced:
	default:
		return fmt.Errorf("unknown level %q", p.Level)
	}
	if p.Sex != "" && p.Sex != SexMale && p.Sex != SexFemale {
		return fmt.Errorf("unknown sex %q", p.Sex)
	}
	if p.Weight < 0 || p.Height < 0 || p.Age < 0 {
		return fmt.Errorf("biometrics must not be negative")
	}
	return nil
}

// RegenerationConstraints narrow or override preferences for a single
// regeneration call. A zero field is not present.
type RegenerationConstraints struct {
	ExcludeFoods       []string `bson:"excludeFoods,omitempty" json:"excludeFoods,omitempty"`
	MaxCalories        int      `bson:"maxCalories,omitempty" json:"maxCalories,omitempty"`
	MinProtein         float64  `bson:"minProtein,omitempty" json:"minProtein,omitempty"` // g per kg bodyweight
	MaxCarbs           float64  `bson:"maxCarbs,omitempty" json:"maxCarbs,omitempty"`     // grams
	CookingMethods     []string `bson:"cookingMethods,omitempty" json:"cookingMethods,omitempty"`
	MaxSessionTime     int      `bson:"maxSessionTime,omitempty" json:"maxSessionTime,omitempty"`
	PreferredExercises []string `bson:"preferredExercises,omitempty" json:"preferredExercises,omitempty"`
	AvoidExercises     []string `bson:"avoidExercises,omitempty" json:"avoidExercises,omitempty"`
	FocusAreas         []string `bson:"focusAreas,omitempty" json:"focusAreas,omitempty"`
	Notes              string   `bson:"notes,omitempty" json:"notes,omitempty"`
}

func (c RegenerationConstraints) IsEmpty() bool {
	return len(c.ExcludeFoods) == 0 && c.MaxCalories == 0 && c.MinProtein == 0 &&
		c.MaxCarbs == 0 && len(c.CookingMethods) == 0 && c.MaxSessionTime == 0 &&
		len(c.PreferredExercises) == 0 && len(c.AvoidExercises) == 0 &&
		len(c.FocusAreas) == 0 && strings.TrimSpace(c.Notes) == ""
}

// WithConstraints returns the preferences as narrowed by c. The receiver is
// left untouched.
func (p UserPreferences) WithConstraints(c *RegenerationConstraints) UserPreferences {
	out := p
	out.Allergies = append([]string(nil), p.Allergies...)
	if c == nil {
		return out
	}
	if c.MaxSessionTime > 0 && (out.SessionTime == 0 || c.MaxSessionTime < out.SessionTime) {
		out.SessionTime = c.MaxSessionTime
	}
	for _, food := range c.ExcludeFoods {
		if !containsFold(out.Allergies, food) {
			out.Allergies = append(out.Allergies, food)
		}
	}
	return out
}

func containsFold(list []string, v string) bool {
	v = strings.TrimSpace(v)
	for _, item := range list {
		if strings.EqualFold(strings.TrimSpace(item), v) {
			return true
		}
	}
	return false
}
