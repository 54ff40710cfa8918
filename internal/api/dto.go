package api

import (
	"time"

	"alcyxob/fitness-planner/internal/domain"
)

// GeneratePlanRequest is the body of POST /plans. weekNumber defaults to 1
// and useAI to true.
type GeneratePlanRequest struct {
	Preferences domain.UserPreferences `json:"preferences"`
	WeekNumber  int                    `json:"weekNumber"`
	UseAI       *bool                  `json:"useAI"`
}

// PlanSummary is the history view of a plan.
type PlanSummary struct {
	ID            string             `json:"id"`
	ParentID      string             `json:"parentId,omitempty"`
	WeekNumber    int                `json:"weekNumber"`
	Version       int                `json:"version"`
	CreatedAt     time.Time          `json:"createdAt"`
	GeneratedBy   domain.GeneratedBy `json:"generatedBy"`
	Passed        bool               `json:"passed"`
	DailyCalories int                `json:"dailyCalories"`
	TrainingDays  int                `json:"trainingDays"`
}

func toPlanSummary(p *domain.WeeklyPlan) PlanSummary {
	return PlanSummary{
		ID:            p.ID,
		ParentID:      p.ParentID,
		WeekNumber:    p.WeekNumber,
		Version:       p.Version,
		CreatedAt:     p.CreatedAt,
		GeneratedBy:   p.Metadata.GeneratedBy,
		Passed:        p.Validation.Passed,
		DailyCalories: p.Nutrition.DailyCalories,
		TrainingDays:  p.TrainingDays(),
	}
}
