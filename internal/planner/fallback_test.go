package planner

import (
	"testing"

	"alcyxob/fitness-planner/internal/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFallbackWeekSpreadsTrainingDays(t *testing.T) {
	tests := []struct {
		days  int
		slots []string
	}{
		{3, []string{"Mon", "Wed", "Fri"}},
		{4, []string{"Mon", "Tue", "Thu", "Sat"}},
		{5, []string{"Mon", "Tue", "Wed", "Fri", "Sat"}},
		{6, []string{"Mon", "Tue", "Wed", "Thu", "Fri", "Sat"}},
	}
	for _, tt := range tests {
		week := FallbackWeek(domain.UserPreferences{DaysPerWeek: tt.days, SessionTime: 40, Equipment: domain.EquipmentBasic})
		require.Len(t, week, 7)

		var got []string
		for _, d := range week {
			if d.IsTraining() {
				got = append(got, d.Day)
				assert.Equal(t, 40, d.Duration)
				require.Len(t, d.Exercises, 3)
				assert.Equal(t, "Warm-up", d.Exercises[0].Name)
				assert.Equal(t, "Cool-down stretch", d.Exercises[2].Name)
			} else {
				assert.Empty(t, d.Exercises)
			}
		}
		assert.Equal(t, tt.slots, got, "%d days", tt.days)
	}
}

func TestFallbackWeekArchetypesAndEquipment(t *testing.T) {
	week := FallbackWeek(domain.UserPreferences{DaysPerWeek: 5, SessionTime: 45, Equipment: domain.EquipmentGym})

	var focuses []domain.Focus
	for _, d := range week {
		if d.IsTraining() {
			focuses = append(focuses, d.Focus)
		}
	}
	assert.Equal(t, []domain.Focus{domain.FocusUpper, domain.FocusLower, domain.FocusFull, domain.FocusCardio, domain.FocusUpper}, focuses)

	assert.Equal(t, "Barbell bench press", week[0].Exercises[1].Name)
	assert.Equal(t, 3, week[0].Exercises[1].Sets)
	assert.Equal(t, "8-12", week[0].Exercises[1].Reps)

	none := FallbackWeek(domain.UserPreferences{DaysPerWeek: 3})
	assert.Equal(t, "Push-ups", none[0].Exercises[1].Name)
	assert.Equal(t, 45, none[0].Duration, "missing session time defaults")
}

func TestFallbackWeekClampsDayCount(t *testing.T) {
	count := func(week []domain.WorkoutDay) int {
		n := 0
		for _, d := range week {
			if d.IsTraining() {
				n++
			}
		}
		return n
	}
	assert.Equal(t, 1, count(FallbackWeek(domain.UserPreferences{DaysPerWeek: 0})))
	assert.Equal(t, 7, count(FallbackWeek(domain.UserPreferences{DaysPerWeek: 9})))
}
