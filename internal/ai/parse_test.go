package ai

import (
	"testing"

	"alcyxob/fitness-planner/internal/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExtractJSON(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"bare", `{"a":1}`, `{"a":1}`},
		{"fenced", "```json\n{\"a\":1}\n```", `{"a":1}`},
		{"fenced without language", "```\n{\"a\":1}\n```", `{"a":1}`},
		{"prose around", "Here is your plan:\n{\"a\":1}\nEnjoy!", `{"a":1}`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ExtractJSON(tt.in)
			require.NoError(t, err)
			assert.JSONEq(t, tt.want, got)
		})
	}

	for _, bad := range []string{"", "   ", "no json here", "{broken"} {
		_, err := ExtractJSON(bad)
		var fmtErr *ResponseFormatError
		assert.ErrorAs(t, err, &fmtErr, bad)
	}
}

func TestParseFragmentFull(t *testing.T) {
	text := "```json\n" + `{
  "training": {
    "weeklyStructure": [
      {"day": "Monday", "name": "Upper", "duration": "45", "focus": "upper", "intensity": "HIGH",
       "exercises": [
         {"name": "Bench press", "sets": 4.0, "reps": 10, "rest": "90", "muscleGroups": ["chest", "triceps"]},
         {"name": "Row", "sets": 3, "reps": "8-12", "rest": 60, "muscleGroups": "back"},
         "garbage",
         {"sets": 3}
       ]},
      {"day": "Tue", "focus": "rest"},
      "not a day",
      {"day": "Wed", "focus": "Full Body", "exercises": 7}
    ],
    "progression": {"week1": "", "week2": "Add a set"}
  },
  "nutrition": {
    "weeklyMenu": [
      {"day": "Mon", "meals": [
        {"name": "Breakfast", "calories": 500, "protein": 30, "carbs": "60", "fat": 12, "recipe": "just cook it"},
        {"name": "Dinner", "calories": 700, "protein": 50, "carbs": 70, "fat": 20,
         "recipe": {"instructions": ["Grill"], "prepTime": 5, "cookTime": "15"}}
      ]},
      {"day": "Tue", "totalCalories": 1800, "protein": 150, "carbs": 160, "fat": 60, "meals": []}
    ],
    "mealPrepTips": ["Batch cook", 3, ""]
  },
  "reasoning": "Balanced week"
}` + "\n```"

	frag, err := ParseFragment(text)
	require.NoError(t, err)
	require.True(t, frag.HasTraining())
	require.True(t, frag.HasNutrition())
	assert.Equal(t, "Balanced week", frag.Reasoning)

	week := frag.Training.WeeklyStructure
	require.Len(t, week, 2, "undecodable days are dropped")

	mon := week[0]
	assert.Equal(t, "Mon", mon.Day)
	assert.Equal(t, 45, mon.Duration)
	assert.Equal(t, domain.FocusUpper, mon.Focus)
	assert.Equal(t, domain.IntensityHigh, mon.Intensity)
	require.Len(t, mon.Exercises, 2, "undecodable and nameless exercises are dropped")
	assert.Equal(t, domain.Exercise{Name: "Bench press", Sets: 4, Reps: "10", Rest: 90, MuscleGroups: []string{"chest", "triceps"}}, mon.Exercises[0])
	assert.Empty(t, mon.Exercises[1].MuscleGroups, "non-list muscle groups become empty")

	assert.Equal(t, domain.FocusRest, week[1].Focus)
	assert.Equal(t, "Add a set", frag.Training.Progression)

	menu := frag.Nutrition.WeeklyMenu
	require.Len(t, menu, 2)
	assert.Equal(t, 1200, menu[0].TotalCalories, "total filled from meals")
	assert.Equal(t, domain.Macros{Protein: 80, Carbs: 130, Fat: 32}, menu[0].Macros())
	assert.Nil(t, menu[0].Meals[0].Recipe)
	require.NotNil(t, menu[0].Meals[1].Recipe)
	assert.Equal(t, 15, menu[0].Meals[1].Recipe.CookTime)
	assert.Equal(t, 1800, menu[1].TotalCalories)
	assert.Equal(t, []string{"Batch cook"}, frag.Nutrition.MealPrepTips)
}

func TestParseFragmentPartialSections(t *testing.T) {
	frag, err := ParseFragment(`{"training": {"weeklyStructure": [{"day": "Mon", "focus": "cardio"}], "progression": "Run longer"}, "nutrition": "later"}`)
	require.NoError(t, err)
	assert.True(t, frag.HasTraining())
	assert.Nil(t, frag.Nutrition)
	assert.False(t, frag.HasNutrition())

	frag, err = ParseFragment(`{"nutrition": {"weeklyMenu": []}}`)
	require.NoError(t, err)
	assert.NotNil(t, frag.Nutrition)
	assert.False(t, frag.HasNutrition(), "an empty menu is not usable")
}

func TestParseFragmentUnknownFocus(t *testing.T) {
	frag, err := ParseFragment(`{"training": {"weeklyStructure": [
		{"focus": "yoga", "exercises": [{"name": "Flow", "sets": 1, "reps": "20 min"}]},
		{"focus": "yoga"}
	]}}`)
	require.NoError(t, err)
	week := frag.Training.WeeklyStructure
	require.Len(t, week, 2)
	assert.Equal(t, domain.FocusFull, week[0].Focus)
	assert.Equal(t, domain.FocusRest, week[1].Focus)
	assert.Equal(t, "Mon", week[0].Day, "missing labels follow position")
	assert.Equal(t, "Tue", week[1].Day)
}

func TestParseFragmentRejectsGarbage(t *testing.T) {
	for _, text := range []string{`[1,2,3]`, `{"reasoning": "nothing else"}`, `"just a string"`} {
		_, err := ParseFragment(text)
		var fmtErr *ResponseFormatError
		assert.ErrorAs(t, err, &fmtErr, text)
	}
}
