package domain

// Range is an inclusive integer bound.
type Range struct {
	Min int `json:"min" mapstructure:"min"`
	Max int `json:"max" mapstructure:"max"`
}

// PercentBand is an inclusive percentage bound.
type PercentBand struct {
	Min float64 `json:"min" mapstructure:"min"`
	Max float64 `json:"max" mapstructure:"max"`
}

// ValidationRules is the threshold set plans are checked against.
type ValidationRules struct {
	MinProteinPerKg         float64     `json:"minProteinPerKg" mapstructure:"min_protein_per_kg"`
	MaxProteinPerKg         float64     `json:"maxProteinPerKg" mapstructure:"max_protein_per_kg"`
	MinCalories             int         `json:"minCalories" mapstructure:"min_calories"`
	MaxCalories             int         `json:"maxCalories" mapstructure:"max_calories"`
	ProteinPercent          PercentBand `json:"proteinPercent" mapstructure:"protein_percent"`
	CarbsPercent            PercentBand `json:"carbsPercent" mapstructure:"carbs_percent"`
	FatPercent              PercentBand `json:"fatPercent" mapstructure:"fat_percent"`
	MinSessionsPerWeek      int         `json:"minSessionsPerWeek" mapstructure:"min_sessions_per_week"`
	MaxSessionsPerWeek      int         `json:"maxSessionsPerWeek" mapstructure:"max_sessions_per_week"`
	MinVolumePerMuscleGroup int         `json:"minVolumePerMuscleGroup" mapstructure:"min_volume_per_muscle_group"`
	MaxVolumePerMuscleGroup int         `json:"maxVolumePerMuscleGroup" mapstructure:"max_volume_per_muscle_group"`
	MaxSessionDuration      int         `json:"maxSessionDuration" mapstructure:"max_session_duration"`
	RestDaysPerWeek         Range       `json:"restDaysPerWeek" mapstructure:"rest_days_per_week"`
}

// DefaultValidationRules returns a fresh copy of the built-in thresholds.
func DefaultValidationRules() ValidationRules {
	return ValidationRules{
		MinProteinPerKg:         1.6,
		MaxProteinPerKg:         2.5,
		MinCalories:             1200,
		MaxCalories:             4000,
		ProteinPercent:          PercentBand{Min: 20, Max: 40},
		CarbsPercent:            PercentBand{Min: 25, Max: 60},
		FatPercent:              PercentBand{Min: 20, Max: 40},
		MinSessionsPerWeek:      2,
		MaxSessionsPerWeek:      6,
		MinVolumePerMuscleGroup: 8,
		MaxVolumePerMuscleGroup: 25,
		MaxSessionDuration:      120,
		RestDaysPerWeek:         Range{Min: 1, Max: 3},
	}
}
