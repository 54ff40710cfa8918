package calc

import (
	"strconv"
	"strings"
	"unicode"

	"alcyxob/fitness-planner/internal/domain"
)

// MuscleGroupVolume sums the weekly sets per muscle group. Each exercise adds
// its sets to every group it lists; exercises listing none are skipped.
func MuscleGroupVolume(days []domain.WorkoutDay) map[string]int {
	volume := make(map[string]int)
	for _, day := range days {
		for _, ex := range day.Exercises {
			for _, group := range ex.MuscleGroups {
				group = strings.TrimSpace(group)
				if group == "" {
					continue
				}
				volume[group] += ex.Sets
			}
		}
	}
	return volume
}

const (
	defaultRepSeconds  = 30
	defaultRestSeconds = 60
)

// RepSeconds estimates the working time of one set from its reps string. The
// leading integer is taken as seconds, or minutes with a "min" suffix.
// Anything unparseable counts as 30 seconds.
func RepSeconds(reps string) int {
	s := strings.TrimSpace(strings.ToLower(reps))
	end := strings.IndexFunc(s, func(r rune) bool { return !unicode.IsDigit(r) })
	if end == -1 {
		end = len(s)
	}
	n, err := strconv.Atoi(s[:end])
	if err != nil || n <= 0 {
		return defaultRepSeconds
	}
	if strings.Contains(s[end:], "min") {
		return n * 60
	}
	return n
}

// EstimatedMinutes estimates a day's elapsed time as the sum of
// sets*(rep time + rest) over its exercises. A zero rest counts as 60s.
func EstimatedMinutes(day domain.WorkoutDay) float64 {
	total := 0
	for _, ex := range day.Exercises {
		rest := ex.Rest
		if rest <= 0 {
			rest = defaultRestSeconds
		}
		total += ex.Sets*RepSeconds(ex.Reps) + ex.Sets*rest
	}
	return float64(total) / 60
}
