package domain

// Exercise is a single prescribed movement within a workout day.
type Exercise struct {
	Name         string   `bson:"name" json:"name" yaml:"name"`
	Sets         int      `bson:"sets" json:"sets" yaml:"sets"`
	Reps         string   `bson:"reps" json:"reps" yaml:"reps"` // "8-12", "30s", "20 min"
	Rest         int      `bson:"rest" json:"rest" yaml:"rest"` // seconds
	MuscleGroups []string `bson:"muscleGroups" json:"muscleGroups" yaml:"muscleGroups"`
	Equipment    []string `bson:"equipment,omitempty" json:"equipment,omitempty" yaml:"equipment,omitempty"`
	Notes        string   `bson:"notes,omitempty" json:"notes,omitempty" yaml:"notes,omitempty"`
}

// Clone returns a deep copy of the exercise.
func (e Exercise) Clone() Exercise {
	out := e
	out.MuscleGroups = append([]string(nil), e.MuscleGroups...)
	out.Equipment = append([]string(nil), e.Equipment...)
	return out
}
