package api

import (
	"errors"
	"log/slog"
	"net/http"

	"alcyxob/fitness-planner/internal/ai"
	"alcyxob/fitness-planner/internal/domain"
	"alcyxob/fitness-planner/internal/planner"
	"alcyxob/fitness-planner/internal/service"

	"github.com/gin-gonic/gin"
)

type PlanHandler struct {
	planService service.PlanService
	logger      *slog.Logger
}

func NewPlanHandler(planService service.PlanService, logger *slog.Logger) *PlanHandler {
	if logger == nil {
		logger = slog.Default()
	}
	return &PlanHandler{planService: planService, logger: logger}
}

// GeneratePlan handles POST /api/v1/plans
func (h *PlanHandler) GeneratePlan(c *gin.Context) {
	userID, err := getUserIDFromContext(c)
	if err != nil {
		abortWithError(c, http.StatusInternalServerError, "Failed to get user ID from token")
		return
	}

	var req GeneratePlanRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, http.StatusBadRequest, "Invalid request body: "+err.Error())
		return
	}
	week := req.WeekNumber
	if week <= 0 {
		week = 1
	}
	useAI := req.UseAI == nil || *req.UseAI

	plan, err := h.planService.GeneratePlan(c.Request.Context(), userID, req.Preferences, week, useAI)
	if err != nil {
		h.respondError(c, "generate plan", err)
		return
	}
	c.JSON(http.StatusCreated, plan)
}

// RegeneratePlan handles POST /api/v1/plans/:planId/regenerate
func (h *PlanHandler) RegeneratePlan(c *gin.Context) {
	userID, err := getUserIDFromContext(c)
	if err != nil {
		abortWithError(c, http.StatusInternalServerError, "Failed to get user ID from token")
		return
	}

	var constraints domain.RegenerationConstraints
	if c.Request.ContentLength != 0 {
		if err := c.ShouldBindJSON(&constraints); err != nil {
			abortWithError(c, http.StatusBadRequest, "Invalid request body: "+err.Error())
			return
		}
	}

	plan, err := h.planService.RegeneratePlan(c.Request.Context(), userID, c.Param("planId"), constraints)
	if err != nil {
		h.respondError(c, "regenerate plan", err)
		return
	}
	c.JSON(http.StatusCreated, plan)
}

// GetPlanHistory handles GET /api/v1/plans
func (h *PlanHandler) GetPlanHistory(c *gin.Context) {
	userID, err := getUserIDFromContext(c)
	if err != nil {
		abortWithError(c, http.StatusInternalServerError, "Failed to get user ID from token")
		return
	}

	plans, err := h.planService.GetPlanHistory(c.Request.Context(), userID)
	if err != nil {
		h.respondError(c, "plan history", err)
		return
	}
	out := make([]PlanSummary, 0, len(plans))
	for i := range plans {
		out = append(out, toPlanSummary(&plans[i]))
	}
	c.JSON(http.StatusOK, out)
}

// GetLatestPlan handles GET /api/v1/plans/latest
func (h *PlanHandler) GetLatestPlan(c *gin.Context) {
	userID, err := getUserIDFromContext(c)
	if err != nil {
		abortWithError(c, http.StatusInternalServerError, "Failed to get user ID from token")
		return
	}

	plan, err := h.planService.GetLatestPlan(c.Request.Context(), userID)
	if err != nil {
		h.respondError(c, "latest plan", err)
		return
	}
	c.JSON(http.StatusOK, plan)
}

// GetPlan handles GET /api/v1/plans/:planId
func (h *PlanHandler) GetPlan(c *gin.Context) {
	userID, err := getUserIDFromContext(c)
	if err != nil {
		abortWithError(c, http.StatusInternalServerError, "Failed to get user ID from token")
		return
	}

	plan, err := h.planService.GetPlan(c.Request.Context(), userID, c.Param("planId"))
	if err != nil {
		h.respondError(c, "get plan", err)
		return
	}
	c.JSON(http.StatusOK, plan)
}

// ExportPlan handles GET /api/v1/plans/:planId/export
func (h *PlanHandler) ExportPlan(c *gin.Context) {
	userID, err := getUserIDFromContext(c)
	if err != nil {
		abortWithError(c, http.StatusInternalServerError, "Failed to get user ID from token")
		return
	}

	link, err := h.planService.GetPlanExportURL(c.Request.Context(), userID, c.Param("planId"))
	if err != nil {
		h.respondError(c, "export plan", err)
		return
	}
	c.JSON(http.StatusOK, link)
}

// respondError maps service and planner errors to status codes.
func (h *PlanHandler) respondError(c *gin.Context, op string, err error) {
	var cfgErr *ai.ConfigurationError
	switch {
	case errors.Is(err, service.ErrInvalidPreferences):
		abortWithError(c, http.StatusBadRequest, err.Error())
	case errors.Is(err, service.ErrPlanNotFound):
		abortWithError(c, http.StatusNotFound, err.Error())
	case errors.Is(err, service.ErrPlanAccessDenied):
		abortWithError(c, http.StatusForbidden, err.Error())
	case errors.Is(err, service.ErrExportUnavailable):
		abortWithError(c, http.StatusNotImplemented, err.Error())
	case errors.As(err, &cfgErr):
		abortWithError(c, http.StatusServiceUnavailable, "AI enrichment is not configured")
	case errors.Is(err, planner.ErrRegenerationFailed):
		h.logger.Warn("request failed", "op", op, "error", err)
		abortWithError(c, http.StatusBadGateway, "Plan regeneration failed, please retry later")
	default:
		h.logger.Error("request failed", "op", op, "error", err)
		abortWithError(c, http.StatusInternalServerError, "Internal server error")
	}
}
