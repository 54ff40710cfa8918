package storage

import (
	"context"
	"errors"
	"fmt"
	"time"

	"alcyxob/fitness-planner/internal/domain"
)

// Default expiry duration for presigned URLs
const DefaultPresignedURLExpiry = 15 * time.Minute

// ErrArchiveDisabled is returned by NewPlanArchive when archiving is switched off.
var ErrArchiveDisabled = errors.New("plan archive disabled")

// PlanArchive stores immutable JSON snapshots of weekly plans in object storage.
type PlanArchive interface {
	// PutPlan uploads the plan as JSON and returns its object key.
	PutPlan(ctx context.Context, plan *domain.WeeklyPlan) (string, error)

	// GeneratePresignedDownloadURL creates a temporary URL that allows GET requests
	// for downloading an object directly from the storage provider.
	GeneratePresignedDownloadURL(ctx context.Context, objectKey string, expires time.Duration) (string, error)
}

// PlanKey is the object key of a plan snapshot.
func PlanKey(userID, planID string) string {
	return fmt.Sprintf("plans/%s/%s.json", userID, planID)
}
