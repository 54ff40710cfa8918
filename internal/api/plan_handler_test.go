package api

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"alcyxob/fitness-planner/internal/ai"
	"alcyxob/fitness-planner/internal/domain"
	"alcyxob/fitness-planner/internal/planner"
	"alcyxob/fitness-planner/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testSecret = "test-secret"

type fakePlanService struct {
	plans      map[string]*domain.WeeklyPlan
	genErr     error
	regenErr   error
	exportErr  error
	lastWeek   int
	lastUseAI  bool
	lastUserID string
	lastConstr domain.RegenerationConstraints
}

func newFakePlanService() *fakePlanService {
	return &fakePlanService{plans: map[string]*domain.WeeklyPlan{
		"p1": {ID: "p1", UserID: "u1", WeekNumber: 1, Version: 1,
			Metadata:  domain.PlanMetadata{GeneratedBy: domain.GeneratedByTemplate},
			Nutrition: domain.NutritionSection{DailyCalories: 1800}},
		"p2": {ID: "p2", UserID: "u1", ParentID: "p1", WeekNumber: 1, Version: 2},
	}}
}

func (f *fakePlanService) GeneratePlan(_ context.Context, userID string, prefs domain.UserPreferences, week int, useAI bool) (*domain.WeeklyPlan, error) {
	f.lastUserID, f.lastWeek, f.lastUseAI = userID, week, useAI
	if f.genErr != nil {
		return nil, f.genErr
	}
	if err := prefs.Validate(); err != nil {
		return nil, fmt.Errorf("%w: %v", service.ErrInvalidPreferences, err)
	}
	return &domain.WeeklyPlan{ID: "new", UserID: userID, WeekNumber: week, Preferences: prefs}, nil
}

func (f *fakePlanService) RegeneratePlan(ctx context.Context, userID, planID string, c domain.RegenerationConstraints) (*domain.WeeklyPlan, error) {
	f.lastConstr = c
	existing, err := f.GetPlan(ctx, userID, planID)
	if err != nil {
		return nil, err
	}
	if f.regenErr != nil {
		return nil, f.regenErr
	}
	return &domain.WeeklyPlan{ID: "regen", UserID: userID, ParentID: existing.ID, Version: existing.Version + 1}, nil
}

func (f *fakePlanService) GetLatestPlan(_ context.Context, userID string) (*domain.WeeklyPlan, error) {
	if userID != "u1" {
		return nil, service.ErrPlanNotFound
	}
	return f.plans["p2"], nil
}

func (f *fakePlanService) GetPlanHistory(_ context.Context, userID string) ([]domain.WeeklyPlan, error) {
	if userID != "u1" {
		return []domain.WeeklyPlan{}, nil
	}
	return []domain.WeeklyPlan{*f.plans["p2"], *f.plans["p1"]}, nil
}

func (f *fakePlanService) GetPlan(_ context.Context, userID, planID string) (*domain.WeeklyPlan, error) {
	p, ok := f.plans[planID]
	if !ok {
		return nil, service.ErrPlanNotFound
	}
	if p.UserID != userID {
		return nil, service.ErrPlanAccessDenied
	}
	return p, nil
}

func (f *fakePlanService) GetPlanExportURL(ctx context.Context, userID, planID string) (*service.ExportLink, error) {
	if f.exportErr != nil {
		return nil, f.exportErr
	}
	if _, err := f.GetPlan(ctx, userID, planID); err != nil {
		return nil, err
	}
	return &service.ExportLink{URL: "https://s3.local/" + planID, ExpiresAt: time.Date(2025, 3, 3, 12, 0, 0, 0, time.UTC)}, nil
}

func setupRouter(svc service.PlanService) *gin.Engine {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	SetupRoutes(router, testSecret, svc, slog.New(slog.NewTextHandler(io.Discard, nil)))
	return router
}

func signToken(t *testing.T, secret, userID string, expires time.Time) string {
	t.Helper()
	claims := jwtClaims{
		UserID: userID,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(expires),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
		},
	}
	s, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(secret))
	require.NoError(t, err)
	return s
}

func do(t *testing.T, router *gin.Engine, method, path, userID string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var reader *bytes.Reader
	if body != nil {
		b, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(b)
	} else {
		reader = bytes.NewReader(nil)
	}
	req := httptest.NewRequest(method, path, reader)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if userID != "" {
		req.Header.Set("Authorization", "Bearer "+signToken(t, testSecret, userID, time.Now().Add(time.Hour)))
	}
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func validPrefs() domain.UserPreferences {
	return domain.UserPreferences{
		Goal: domain.GoalFatLoss, DaysPerWeek: 4, SessionTime: 45,
		Equipment: domain.EquipmentGym, DietType: domain.DietOmnivore, MealsPerDay: 4,
	}
}

func TestPing(t *testing.T) {
	w := do(t, setupRouter(newFakePlanService()), http.MethodGet, "/ping", "", nil)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"message":"pong"}`, w.Body.String())
}

func TestAuthMiddleware(t *testing.T) {
	router := setupRouter(newFakePlanService())

	w := do(t, router, http.MethodGet, "/api/v1/plans", "", nil)
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	tests := []struct {
		name   string
		header string
	}{
		{"wrong scheme", "Token abc"},
		{"wrong secret", "Bearer " + signToken(t, "other", "u1", time.Now().Add(time.Hour))},
		{"expired", "Bearer " + signToken(t, testSecret, "u1", time.Now().Add(-time.Hour))},
		{"missing uid", "Bearer " + signToken(t, testSecret, "", time.Now().Add(time.Hour))},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/api/v1/plans", nil)
			req.Header.Set("Authorization", tt.header)
			w := httptest.NewRecorder()
			router.ServeHTTP(w, req)
			assert.Equal(t, http.StatusUnauthorized, w.Code)
		})
	}
}

func TestGeneratePlanHandler(t *testing.T) {
	svc := newFakePlanService()
	router := setupRouter(svc)

	w := do(t, router, http.MethodPost, "/api/v1/plans", "u1", GeneratePlanRequest{Preferences: validPrefs()})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	assert.Equal(t, "u1", svc.lastUserID)
	assert.Equal(t, 1, svc.lastWeek)
	assert.True(t, svc.lastUseAI)

	useAI := false
	w = do(t, router, http.MethodPost, "/api/v1/plans", "u1", GeneratePlanRequest{Preferences: validPrefs(), WeekNumber: 3, UseAI: &useAI})
	require.Equal(t, http.StatusCreated, w.Code)
	assert.Equal(t, 3, svc.lastWeek)
	assert.False(t, svc.lastUseAI)

	bad := validPrefs()
	bad.Goal = "bulk"
	w = do(t, router, http.MethodPost, "/api/v1/plans", "u1", GeneratePlanRequest{Preferences: bad})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	req := httptest.NewRequest(http.MethodPost, "/api/v1/plans", bytes.NewBufferString("{not json"))
	req.Header.Set("Authorization", "Bearer "+signToken(t, testSecret, "u1", time.Now().Add(time.Hour)))
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	svc.genErr = context.DeadlineExceeded
	w = do(t, router, http.MethodPost, "/api/v1/plans", "u1", GeneratePlanRequest{Preferences: validPrefs()})
	assert.Equal(t, http.StatusInternalServerError, w.Code)
}

func TestPlanReadHandlers(t *testing.T) {
	router := setupRouter(newFakePlanService())

	w := do(t, router, http.MethodGet, "/api/v1/plans/latest", "u1", nil)
	require.Equal(t, http.StatusOK, w.Code)
	var latest domain.WeeklyPlan
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &latest))
	assert.Equal(t, "p2", latest.ID)

	w = do(t, router, http.MethodGet, "/api/v1/plans/latest", "u9", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)

	w = do(t, router, http.MethodGet, "/api/v1/plans", "u1", nil)
	require.Equal(t, http.StatusOK, w.Code)
	var history []PlanSummary
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &history))
	require.Len(t, history, 2)
	assert.Equal(t, "p2", history[0].ID)
	assert.Equal(t, "p1", history[0].ParentID)
	assert.Equal(t, 1800, history[1].DailyCalories)

	w = do(t, router, http.MethodGet, "/api/v1/plans", "u9", nil)
	assert.JSONEq(t, `[]`, w.Body.String())

	w = do(t, router, http.MethodGet, "/api/v1/plans/p1", "u1", nil)
	assert.Equal(t, http.StatusOK, w.Code)
	w = do(t, router, http.MethodGet, "/api/v1/plans/p1", "u2", nil)
	assert.Equal(t, http.StatusForbidden, w.Code)
	w = do(t, router, http.MethodGet, "/api/v1/plans/nope", "u1", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestRegeneratePlanHandler(t *testing.T) {
	svc := newFakePlanService()
	router := setupRouter(svc)

	w := do(t, router, http.MethodPost, "/api/v1/plans/p1/regenerate", "u1", domain.RegenerationConstraints{MaxCalories: 1600})
	require.Equal(t, http.StatusCreated, w.Code)
	assert.Equal(t, 1600, svc.lastConstr.MaxCalories)

	w = do(t, router, http.MethodPost, "/api/v1/plans/p1/regenerate", "u1", nil)
	assert.Equal(t, http.StatusCreated, w.Code, "constraints are optional")

	svc.regenErr = fmt.Errorf("%w: %w", planner.ErrRegenerationFailed, &ai.ServiceError{StatusCode: 500})
	w = do(t, router, http.MethodPost, "/api/v1/plans/p1/regenerate", "u1", nil)
	assert.Equal(t, http.StatusBadGateway, w.Code)

	svc.regenErr = &ai.ConfigurationError{Setting: "ai.api_key"}
	w = do(t, router, http.MethodPost, "/api/v1/plans/p1/regenerate", "u1", nil)
	assert.Equal(t, http.StatusServiceUnavailable, w.Code)
}

func TestExportPlanHandler(t *testing.T) {
	svc := newFakePlanService()
	router := setupRouter(svc)

	w := do(t, router, http.MethodGet, "/api/v1/plans/p1/export", "u1", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"url":"https://s3.local/p1","expiresAt":"2025-03-03T12:00:00Z"}`, w.Body.String())

	svc.exportErr = service.ErrExportUnavailable
	w = do(t, router, http.MethodGet, "/api/v1/plans/p1/export", "u1", nil)
	assert.Equal(t, http.StatusNotImplemented, w.Code)
}

func TestUnexpectedErrorsAreLogged(t *testing.T) {
	gin.SetMode(gin.TestMode)
	var buf bytes.Buffer
	svc := newFakePlanService()
	svc.genErr = errors.New("mongo unreachable")
	router := gin.New()
	SetupRoutes(router, testSecret, svc, slog.New(slog.NewJSONHandler(&buf, nil)))

	w := do(t, router, http.MethodPost, "/api/v1/plans", "u1", GeneratePlanRequest{Preferences: validPrefs()})
	require.Equal(t, http.StatusInternalServerError, w.Code)
	assert.NotContains(t, w.Body.String(), "mongo unreachable")

	var entry map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
	assert.Equal(t, "ERROR", entry["level"])
	assert.Equal(t, "generate plan", entry["op"])
	assert.Equal(t, "mongo unreachable", entry["error"])
}
