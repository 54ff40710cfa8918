package repository

import (
	"context"

	"alcyxob/fitness-planner/internal/domain"
)

var (
	ErrNotFound     = RepositoryError("not found")
	ErrUpdateFailed = RepositoryError("update failed")
)

// RepositoryError helps distinguish repository errors
type RepositoryError string

func (e RepositoryError) Error() string {
	return string(e)
}

// WeeklyPlanRepository stores weekly plans. Every regeneration is saved as a
// new document; plans are never overwritten wholesale.
type WeeklyPlanRepository interface {
	Save(ctx context.Context, plan *domain.WeeklyPlan) error
	GetByID(ctx context.Context, id string) (*domain.WeeklyPlan, error)
	// GetLatest returns the most recently created plan of the user, or ErrNotFound.
	GetLatest(ctx context.Context, userID string) (*domain.WeeklyPlan, error)
	// GetAll returns the user's plans, newest first. No plans is not an error.
	GetAll(ctx context.Context, userID string) ([]domain.WeeklyPlan, error)
	// Update rewrites the mutable parts of a stored plan: validation,
	// metadata and archive key.
	Update(ctx context.Context, plan *domain.WeeklyPlan) error
}
