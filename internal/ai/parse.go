package ai

import (
	"encoding/json"
	"math"
	"regexp"
	"strconv"
	"strings"

	"alcyxob/fitness-planner/internal/domain"
)

var (
	codeFenceRegex  = regexp.MustCompile("(?s)`{3}(?:json|javascript|js)?\\s*\\n?([\\s\\S]*?)\\n?`{3}")
	jsonObjectRegex = regexp.MustCompile(`(?s)\{[\s\S]*\}`)
)

// ExtractJSON returns the JSON object embedded in a model answer, tolerating
// markdown code fences and leading or trailing prose.
func ExtractJSON(text string) (string, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return "", &ResponseFormatError{Reason: "empty content"}
	}
	if m := codeFenceRegex.FindStringSubmatch(text); m != nil {
		text = strings.TrimSpace(m[1])
	}
	if json.Valid([]byte(text)) {
		return text, nil
	}
	if obj := jsonObjectRegex.FindString(text); obj != "" && json.Valid([]byte(obj)) {
		return obj, nil
	}
	return "", &ResponseFormatError{Reason: "no JSON object in content"}
}

// ParseFragment decodes a model answer into a plan fragment. Malformed days,
// exercises and meals are dropped rather than failing the whole answer; a
// section that cannot be decoded at all is left nil.
func ParseFragment(text string) (*domain.PlanFragment, error) {
	raw, err := ExtractJSON(text)
	if err != nil {
		return nil, err
	}
	var top struct {
		Training  json.RawMessage `json:"training"`
		Nutrition json.RawMessage `json:"nutrition"`
		Reasoning looseString     `json:"reasoning"`
	}
	if err := json.Unmarshal([]byte(raw), &top); err != nil {
		return nil, &ResponseFormatError{Reason: "decode plan fragment", Err: err}
	}

	frag := &domain.PlanFragment{
		Training:  parseTraining(top.Training),
		Nutrition: parseNutrition(top.Nutrition),
		Reasoning: string(top.Reasoning),
	}
	if frag.Training == nil && frag.Nutrition == nil {
		return nil, &ResponseFormatError{Reason: "neither training nor nutrition present"}
	}
	return frag, nil
}

// looseInt accepts a JSON number or a numeric string. Anything else is zero.
type looseInt int

func (n *looseInt) UnmarshalJSON(b []byte) error {
	*n = looseInt(math.Round(float64(parseLooseNumber(b))))
	return nil
}

type looseFloat float64

func (f *looseFloat) UnmarshalJSON(b []byte) error {
	*f = looseFloat(parseLooseNumber(b))
	return nil
}

func parseLooseNumber(b []byte) float64 {
	var v any
	if json.Unmarshal(b, &v) != nil {
		return 0
	}
	switch x := v.(type) {
	case float64:
		return x
	case string:
		f, err := strconv.ParseFloat(strings.TrimSpace(x), 64)
		if err != nil || math.IsNaN(f) || math.IsInf(f, 0) {
			return 0
		}
		return f
	}
	return 0
}

// looseString accepts a string or a number; "reps": 10 is common.
type looseString string

func (s *looseString) UnmarshalJSON(b []byte) error {
	var v any
	if json.Unmarshal(b, &v) != nil {
		*s = ""
		return nil
	}
	switch x := v.(type) {
	case string:
		*s = looseString(strings.TrimSpace(x))
	case float64:
		*s = looseString(strconv.FormatFloat(x, 'f', -1, 64))
	default:
		*s = ""
	}
	return nil
}

// stringList keeps the string items of a JSON list. A non-list is empty.
type stringList []string

func (l *stringList) UnmarshalJSON(b []byte) error {
	var items []any
	if json.Unmarshal(b, &items) != nil {
		*l = nil
		return nil
	}
	out := make([]string, 0, len(items))
	for _, it := range items {
		if s, ok := it.(string); ok && strings.TrimSpace(s) != "" {
			out = append(out, strings.TrimSpace(s))
		}
	}
	*l = out
	return nil
}

type wireExercise struct {
	Name         looseString `json:"name"`
	Sets         looseInt    `json:"sets"`
	Reps         looseString `json:"reps"`
	Rest         looseInt    `json:"rest"`
	MuscleGroups stringList  `json:"muscleGroups"`
	Equipment    stringList  `json:"equipment"`
	Notes        looseString `json:"notes"`
}

type wireDay struct {
	Day       looseString       `json:"day"`
	Name      looseString       `json:"name"`
	Duration  looseInt          `json:"duration"`
	Focus     looseString       `json:"focus"`
	Intensity looseString       `json:"intensity"`
	Exercises []json.RawMessage `json:"exercises"`
}

func parseTraining(raw json.RawMessage) *domain.TrainingFragment {
	if isAbsent(raw) {
		return nil
	}
	var wire struct {
		WeeklyStructure []json.RawMessage `json:"weeklyStructure"`
		Progression     json.RawMessage   `json:"progression"`
	}
	if json.Unmarshal(raw, &wire) != nil {
		return nil
	}

	out := &domain.TrainingFragment{Progression: parseProgression(wire.Progression)}
	for i, rawDay := range wire.WeeklyStructure {
		var d wireDay
		if json.Unmarshal(rawDay, &d) != nil {
			continue
		}
		day := domain.WorkoutDay{
			Day:       dayLabel(string(d.Day), i),
			Name:      string(d.Name),
			Duration:  int(d.Duration),
			Intensity: intensity(string(d.Intensity)),
		}
		for _, rawEx := range d.Exercises {
			var e wireExercise
			if json.Unmarshal(rawEx, &e) != nil || e.Name == "" {
				continue
			}
			day.Exercises = append(day.Exercises, domain.Exercise{
				Name:         string(e.Name),
				Sets:         int(e.Sets),
				Reps:         string(e.Reps),
				Rest:         int(e.Rest),
				MuscleGroups: []string(e.MuscleGroups),
				Equipment:    []string(e.Equipment),
				Notes:        string(e.Notes),
			})
		}
		day.Focus = focus(string(d.Focus), len(day.Exercises) > 0)
		out.WeeklyStructure = append(out.WeeklyStructure, day)
	}
	return out
}

// parseProgression accepts plain text or a {"week1": ...} object, in which
// case the first non-empty week wins.
func parseProgression(raw json.RawMessage) string {
	if isAbsent(raw) {
		return ""
	}
	var s looseString
	_ = json.Unmarshal(raw, &s)
	if s != "" {
		return string(s)
	}
	var weeks map[string]looseString
	if json.Unmarshal(raw, &weeks) != nil {
		return ""
	}
	for _, key := range []string{"week1", "week2", "week3", "week4"} {
		if v := weeks[key]; v != "" {
			return string(v)
		}
	}
	return ""
}

func dayLabel(label string, index int) string {
	if len(label) >= 3 {
		for _, d := range domain.WeekDays {
			if strings.EqualFold(label[:3], d) {
				return d
			}
		}
		return label
	}
	if label == "" && index < len(domain.WeekDays) {
		return domain.WeekDays[index]
	}
	return label
}

func focus(v string, hasExercises bool) domain.Focus {
	v = strings.ToLower(strings.TrimSpace(v))
	switch v {
	case "upper", "lower", "full", "cardio", "rest":
		return domain.Focus(v)
	case "full body", "full-body", "fullbody":
		return domain.FocusFull
	case "recovery", "active recovery", "off":
		return domain.FocusRest
	}
	if hasExercises {
		return domain.FocusFull
	}
	return domain.FocusRest
}

func intensity(v string) domain.Intensity {
	switch i := domain.Intensity(strings.ToLower(strings.TrimSpace(v))); i {
	case domain.IntensityLow, domain.IntensityMedium, domain.IntensityHigh:
		return i
	}
	return ""
}

type wireRecipe struct {
	Instructions stringList `json:"instructions"`
	PrepTime     looseInt   `json:"prepTime"`
	CookTime     looseInt   `json:"cookTime"`
}

type wireMeal struct {
	Name          looseString     `json:"name"`
	Calories      looseInt        `json:"calories"`
	Protein       looseFloat      `json:"protein"`
	Carbs         looseFloat      `json:"carbs"`
	Fat           looseFloat      `json:"fat"`
	Description   looseString     `json:"description"`
	Ingredients   stringList      `json:"ingredients"`
	Recipe        json.RawMessage `json:"recipe"`
	Substitutions stringList      `json:"substitutions"`
}

type wireDailyNutrition struct {
	Day           looseString       `json:"day"`
	TotalCalories looseInt          `json:"totalCalories"`
	Protein       looseFloat        `json:"protein"`
	Carbs         looseFloat        `json:"carbs"`
	Fat           looseFloat        `json:"fat"`
	Meals         []json.RawMessage `json:"meals"`
}

func parseNutrition(raw json.RawMessage) *domain.NutritionFragment {
	if isAbsent(raw) {
		return nil
	}
	var wire struct {
		WeeklyMenu   []json.RawMessage `json:"weeklyMenu"`
		MealPrepTips stringList        `json:"mealPrepTips"`
	}
	if json.Unmarshal(raw, &wire) != nil {
		return nil
	}

	out := &domain.NutritionFragment{MealPrepTips: []string(wire.MealPrepTips)}
	for i, rawDay := range wire.WeeklyMenu {
		var d wireDailyNutrition
		if json.Unmarshal(rawDay, &d) != nil {
			continue
		}
		day := domain.DailyNutrition{
			Day:           dayLabel(string(d.Day), i),
			TotalCalories: int(d.TotalCalories),
			Protein:       float64(d.Protein),
			Carbs:         float64(d.Carbs),
			Fat:           float64(d.Fat),
		}
		var mealKcal int
		var mealMacros domain.Macros
		for _, rawMeal := range d.Meals {
			var m wireMeal
			if json.Unmarshal(rawMeal, &m) != nil {
				continue
			}
			meal := domain.Meal{
				Name:          string(m.Name),
				Calories:      int(m.Calories),
				Protein:       float64(m.Protein),
				Carbs:         float64(m.Carbs),
				Fat:           float64(m.Fat),
				Description:   string(m.Description),
				Ingredients:   []string(m.Ingredients),
				Substitutions: []string(m.Substitutions),
			}
			var r wireRecipe
			if !isAbsent(m.Recipe) && json.Unmarshal(m.Recipe, &r) == nil {
				meal.Recipe = &domain.Recipe{
					Instructions: []string(r.Instructions),
					PrepTime:     int(r.PrepTime),
					CookTime:     int(r.CookTime),
				}
			}
			mealKcal += meal.Calories
			mealMacros.Protein += meal.Protein
			mealMacros.Carbs += meal.Carbs
			mealMacros.Fat += meal.Fat
			day.Meals = append(day.Meals, meal)
		}
		if day.TotalCalories == 0 {
			day.TotalCalories = mealKcal
		}
		if day.Protein == 0 && day.Carbs == 0 && day.Fat == 0 {
			day.Protein, day.Carbs, day.Fat = mealMacros.Protein, mealMacros.Carbs, mealMacros.Fat
		}
		out.WeeklyMenu = append(out.WeeklyMenu, day)
	}
	return out
}

func isAbsent(raw json.RawMessage) bool {
	s := strings.TrimSpace(string(raw))
	return s == "" || s == "null"
}
