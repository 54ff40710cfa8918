package domain

// Focus tags what a workout day trains.
type Focus string

const (
	FocusUpper  Focus = "upper"
	FocusLower  Focus = "lower"
	FocusFull   Focus = "full"
	FocusCardio Focus = "cardio"
	FocusRest   Focus = "rest"
)

type Intensity string

const (
	IntensityLow    Intensity = "low"
	IntensityMedium Intensity = "medium"
	IntensityHigh   Intensity = "high"
)

// WeekDays are the day labels of a plan week, Monday first.
var WeekDays = []string{"Mon", "Tue", "Wed", "Thu", "Fri", "Sat", "Sun"}

// WorkoutDay is one day of the weekly training structure. Rest days carry no
// exercises, though an active-rest day may list light work.
type WorkoutDay struct {
	Day       string     `bson:"day" json:"day" yaml:"day"`
	Name      string     `bson:"name" json:"name" yaml:"name"`
	Duration  int        `bson:"duration" json:"duration" yaml:"duration"` // minutes
	Focus     Focus      `bson:"focus" json:"focus" yaml:"focus"`
	Intensity Intensity  `bson:"intensity" json:"intensity" yaml:"intensity"`
	Exercises []Exercise `bson:"exercises" json:"exercises" yaml:"exercises"`
}

// IsTraining reports whether the day counts as a training session.
func (d WorkoutDay) IsTraining() bool {
	return d.Focus != FocusRest
}

func (d WorkoutDay) Clone() WorkoutDay {
	out := d
	out.Exercises = make([]Exercise, len(d.Exercises))
	for i, ex := range d.Exercises {
		out.Exercises[i] = ex.Clone()
	}
	return out
}

// CloneWeek deep-copies a weekly structure.
func CloneWeek(days []WorkoutDay) []WorkoutDay {
	if days == nil {
		return nil
	}
	out := make([]WorkoutDay, len(days))
	for i, d := range days {
		out[i] = d.Clone()
	}
	return out
}

// Progression holds the four-week progression narrative of a template.
type Progression struct {
	Week1 string `bson:"week1" json:"week1" yaml:"week1"`
	Week2 string `bson:"week2" json:"week2" yaml:"week2"`
	Week3 string `bson:"week3" json:"week3" yaml:"week3"`
	Week4 string `bson:"week4" json:"week4" yaml:"week4"`
}

// ForWeek picks the narrative for a plan week, cycling every four weeks.
func (p Progression) ForWeek(week int) string {
	if week < 1 {
		week = 1
	}
	switch (week-1)%4 + 1 {
	case 2:
		return p.Week2
	case 3:
		return p.Week3
	case 4:
		return p.Week4
	default:
		return p.Week1
	}
}

// TrainingTemplate is a pre-authored weekly training structure.
type TrainingTemplate struct {
	ID              string       `json:"id" yaml:"id"`
	Goal            Goal         `json:"goal" yaml:"goal"`
	Level           Level        `json:"level" yaml:"level"`
	DaysPerWeek     int          `json:"daysPerWeek" yaml:"daysPerWeek"`
	SessionTime     int          `json:"sessionTime" yaml:"sessionTime"`
	Equipment       Equipment    `json:"equipment" yaml:"equipment"`
	WeeklyStructure []WorkoutDay `json:"weeklyStructure" yaml:"weeklyStructure"`
	Progression     Progression  `json:"progression" yaml:"progression"`
}

func (t TrainingTemplate) Clone() TrainingTemplate {
	out := t
	out.WeeklyStructure = CloneWeek(t.WeeklyStructure)
	return out
}
