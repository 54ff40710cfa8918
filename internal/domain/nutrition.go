package domain

// Macros are daily macronutrient grams.
type Macros struct {
	Protein float64 `bson:"protein" json:"protein"`
	Carbs   float64 `bson:"carbs" json:"carbs"`
	Fat     float64 `bson:"fat" json:"fat"`
}

// Calories converts the grams to kcal at 4/4/9 per gram.
func (m Macros) Calories() float64 {
	return m.Protein*4 + m.Carbs*4 + m.Fat*9
}

// MacroDistribution is a protein/carbs/fat percentage triple.
type MacroDistribution struct {
	Protein float64 `bson:"protein" json:"protein" yaml:"protein"`
	Carbs   float64 `bson:"carbs" json:"carbs" yaml:"carbs"`
	Fat     float64 `bson:"fat" json:"fat" yaml:"fat"`
}

// DefaultMacroDistribution is used when no nutrition template matched.
var DefaultMacroDistribution = MacroDistribution{Protein: 30, Carbs: 40, Fat: 30}

type Recipe struct {
	Instructions []string `bson:"instructions" json:"instructions" yaml:"instructions"`
	PrepTime     int      `bson:"prepTime" json:"prepTime" yaml:"prepTime"` // minutes
	CookTime     int      `bson:"cookTime" json:"cookTime" yaml:"cookTime"`
}

// Meal is one slot of a day's menu.
type Meal struct {
	Name          string   `bson:"name" json:"name" yaml:"name"` // breakfast, lunch...
	Calories      int      `bson:"calories" json:"calories" yaml:"calories"`
	Protein       float64  `bson:"protein" json:"protein" yaml:"protein"`
	Carbs         float64  `bson:"carbs" json:"carbs" yaml:"carbs"`
	Fat           float64  `bson:"fat" json:"fat" yaml:"fat"`
	Description   string   `bson:"description,omitempty" json:"description,omitempty" yaml:"description"`
	Ingredients   []string `bson:"ingredients,omitempty" json:"ingredients,omitempty" yaml:"ingredients"`
	Recipe        *Recipe  `bson:"recipe,omitempty" json:"recipe,omitempty" yaml:"recipe,omitempty"`
	Substitutions []string `bson:"substitutions,omitempty" json:"substitutions,omitempty" yaml:"substitutions,omitempty"`
}

func (m Meal) Clone() Meal {
	out := m
	out.Ingredients = append([]string(nil), m.Ingredients...)
	out.Substitutions = append([]string(nil), m.Substitutions...)
	if m.Recipe != nil {
		r := *m.Recipe
		r.Instructions = append([]string(nil), m.Recipe.Instructions...)
		out.Recipe = &r
	}
	return out
}

// DailyNutrition is one day of the weekly menu. TotalCalories should
// approximate the sum of the meal calories; that is validated, not enforced.
type DailyNutrition struct {
	Day           string  `bson:"day" json:"day" yaml:"day"`
	TotalCalories int     `bson:"totalCalories" json:"totalCalories" yaml:"totalCalories"`
	Protein       float64 `bson:"protein" json:"protein" yaml:"protein"`
	Carbs         float64 `bson:"carbs" json:"carbs" yaml:"carbs"`
	Fat           float64 `bson:"fat" json:"fat" yaml:"fat"`
	Meals         []Meal  `bson:"meals" json:"meals" yaml:"meals"`
}

func (d DailyNutrition) Macros() Macros {
	return Macros{Protein: d.Protein, Carbs: d.Carbs, Fat: d.Fat}
}

func (d DailyNutrition) Clone() DailyNutrition {
	out := d
	out.Meals = make([]Meal, len(d.Meals))
	for i, m := range d.Meals {
		out.Meals[i] = m.Clone()
	}
	return out
}

// CloneMenu deep-copies a weekly menu.
func CloneMenu(days []DailyNutrition) []DailyNutrition {
	if days == nil {
		return nil
	}
	out := make([]DailyNutrition, len(days))
	for i, d := range days {
		out[i] = d.Clone()
	}
	return out
}

// NutritionTemplate is a pre-authored weekly menu with its macro split.
// ExcludedAllergens lists the allergens the menu contains; a user allergic to
// any of them must not be matched to the template.
type NutritionTemplate struct {
	ID                string            `json:"id" yaml:"id"`
	Goal              Goal              `json:"goal" yaml:"goal"`
	DietType          DietType          `json:"dietType" yaml:"dietType"`
	MealsPerDay       int               `json:"mealsPerDay" yaml:"mealsPerDay"`
	DailyCalories     int               `json:"dailyCalories" yaml:"dailyCalories"`
	MacroDistribution MacroDistribution `json:"macroDistribution" yaml:"macroDistribution"`
	ExcludedAllergens []string          `json:"excludedAllergens" yaml:"excludedAllergens"`
	WeeklyMenu        []DailyNutrition  `json:"weeklyMenu" yaml:"weeklyMenu"`
	MealPrepTips      []string          `json:"mealPrepTips,omitempty" yaml:"mealPrepTips,omitempty"`
}

func (t NutritionTemplate) Clone() NutritionTemplate {
	out := t
	out.ExcludedAllergens = append([]string(nil), t.ExcludedAllergens...)
	out.WeeklyMenu = CloneMenu(t.WeeklyMenu)
	out.MealPrepTips = append([]string(nil), t.MealPrepTips...)
	return out
}
