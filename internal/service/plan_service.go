package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"alcyxob/fitness-planner/internal/domain"
	"alcyxob/fitness-planner/internal/repository"
	"alcyxob/fitness-planner/internal/storage"
)

var (
	ErrInvalidPreferences = errors.New("invalid preferences")
	ErrPlanNotFound       = errors.New("plan not found")
	ErrPlanAccessDenied   = errors.New("access denied to this plan")
	ErrExportUnavailable  = errors.New("plan export unavailable")
)

// PlanGenerator builds plans. *planner.Engine satisfies it.
type PlanGenerator interface {
	GenerateWeeklyPlan(ctx context.Context, userID string, prefs domain.UserPreferences, weekNumber int, useAI bool) (*domain.WeeklyPlan, error)
	RegeneratePlan(ctx context.Context, existing *domain.WeeklyPlan, constraints domain.RegenerationConstraints) (*domain.WeeklyPlan, error)
}

type PlanService interface {
	GeneratePlan(ctx context.Context, userID string, prefs domain.UserPreferences, weekNumber int, useAI bool) (*domain.WeeklyPlan, error)
	RegeneratePlan(ctx context.Context, userID, planID string, constraints domain.RegenerationConstraints) (*domain.WeeklyPlan, error)
	GetLatestPlan(ctx context.Context, userID string) (*domain.WeeklyPlan, error)
	GetPlanHistory(ctx context.Context, userID string) ([]domain.WeeklyPlan, error)
	GetPlan(ctx context.Context, userID, planID string) (*domain.WeeklyPlan, error)
	GetPlanExportURL(ctx context.Context, userID, planID string) (*ExportLink, error)
}

// ExportLink is a presigned download URL for a plan snapshot.
type ExportLink struct {
	URL       string    `json:"url"`
	ExpiresAt time.Time `json:"expiresAt"`
}

type planService struct {
	generator     PlanGenerator
	planRepo      repository.WeeklyPlanRepository
	archive       storage.PlanArchive // nil when archiving is disabled
	presignExpiry time.Duration
	logger        *slog.Logger
	now           func() time.Time
}

// NewPlanService wires the plan use cases. archive may be nil.
func NewPlanService(
	generator PlanGenerator,
	planRepo repository.WeeklyPlanRepository,
	archive storage.PlanArchive,
	presignExpiry time.Duration,
	logger *slog.Logger,
) PlanService {
	if presignExpiry <= 0 {
		presignExpiry = storage.DefaultPresignedURLExpiry
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &planService{
		generator:     generator,
		planRepo:      planRepo,
		archive:       archive,
		presignExpiry: presignExpiry,
		logger:        logger,
		now:           time.Now,
	}
}

func (s *planService) GeneratePlan(ctx context.Context, userID string, prefs domain.UserPreferences, weekNumber int, useAI bool) (*domain.WeeklyPlan, error) {
	if userID == "" {
		return nil, errors.New("user ID is required")
	}
	if err := prefs.Validate(); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidPreferences, err)
	}

	plan, err := s.generator.GenerateWeeklyPlan(ctx, userID, prefs, weekNumber, useAI)
	if err != nil {
		return nil, err
	}
	if err := s.planRepo.Save(ctx, plan); err != nil {
		return nil, fmt.Errorf("save plan: %w", err)
	}
	s.logger.Info("plan generated",
		"user_id", userID, "plan_id", plan.ID,
		"generated_by", plan.Metadata.GeneratedBy, "passed", plan.Validation.Passed)

	s.archivePlan(ctx, plan)
	return plan, nil
}

func (s *planService) RegeneratePlan(ctx context.Context, userID, planID string, constraints domain.RegenerationConstraints) (*domain.WeeklyPlan, error) {
	existing, err := s.GetPlan(ctx, userID, planID)
	if err != nil {
		return nil, err
	}

	plan, err := s.generator.RegeneratePlan(ctx, existing, constraints)
	if err != nil {
		return nil, err
	}
	if err := s.planRepo.Save(ctx, plan); err != nil {
		return nil, fmt.Errorf("save plan: %w", err)
	}
	s.logger.Info("plan regenerated",
		"user_id", userID, "plan_id", plan.ID, "parent_id", plan.ParentID, "version", plan.Version)

	s.archivePlan(ctx, plan)
	return plan, nil
}

func (s *planService) GetLatestPlan(ctx context.Context, userID string) (*domain.WeeklyPlan, error) {
	plan, err := s.planRepo.GetLatest(ctx, userID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrPlanNotFound
		}
		return nil, err
	}
	return plan, nil
}

func (s *planService) GetPlanHistory(ctx context.Context, userID string) ([]domain.WeeklyPlan, error) {
	return s.planRepo.GetAll(ctx, userID)
}

// GetPlan loads a plan and checks that userID owns it.
func (s *planService) GetPlan(ctx context.Context, userID, planID string) (*domain.WeeklyPlan, error) {
	plan, err := s.planRepo.GetByID(ctx, planID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrPlanNotFound
		}
		return nil, err
	}
	if plan.UserID != userID {
		return nil, ErrPlanAccessDenied
	}
	return plan, nil
}

// GetPlanExportURL presigns the plan snapshot, archiving it first when an
// earlier upload did not succeed.
func (s *planService) GetPlanExportURL(ctx context.Context, userID, planID string) (*ExportLink, error) {
	if s.archive == nil {
		return nil, ErrExportUnavailable
	}
	plan, err := s.GetPlan(ctx, userID, planID)
	if err != nil {
		return nil, err
	}
	if plan.ArchiveKey == "" {
		key, err := s.archive.PutPlan(ctx, plan)
		if err != nil {
			return nil, fmt.Errorf("archive plan: %w", err)
		}
		plan.ArchiveKey = key
		if err := s.planRepo.Update(ctx, plan); err != nil {
			s.logger.Warn("failed to record archive key", "plan_id", plan.ID, "error", err)
		}
	}

	url, err := s.archive.GeneratePresignedDownloadURL(ctx, plan.ArchiveKey, s.presignExpiry)
	if err != nil {
		return nil, fmt.Errorf("presign export: %w", err)
	}
	return &ExportLink{URL: url, ExpiresAt: s.now().Add(s.presignExpiry)}, nil
}

// archivePlan uploads a snapshot. Failures are logged; the saved plan stands.
func (s *planService) archivePlan(ctx context.Context, plan *domain.WeeklyPlan) {
	if s.archive == nil {
		return
	}
	key, err := s.archive.PutPlan(ctx, plan)
	if err != nil {
		s.logger.Warn("plan archive failed", "plan_id", plan.ID, "error", err)
		return
	}
	plan.ArchiveKey = key
	if err := s.planRepo.Update(ctx, plan); err != nil {
		s.logger.Warn("failed to record archive key", "plan_id", plan.ID, "error", err)
	}
}
