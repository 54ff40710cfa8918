package api

import (
	"log/slog"
	"net/http"

	"alcyxob/fitness-planner/internal/service"

	"github.com/gin-gonic/gin"
)

func SetupRoutes(
	router *gin.Engine,
	jwtSecret string,
	planService service.PlanService,
	logger *slog.Logger,
) {
	planHandler := NewPlanHandler(planService, logger)
	authMiddleware := AuthMiddleware(jwtSecret)

	router.GET("/ping", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"message": "pong"})
	})

	apiV1 := router.Group("/api/v1")
	protected := apiV1.Group("")
	protected.Use(authMiddleware)
	{
		plans := protected.Group("/plans")
		{
			plans.POST("", planHandler.GeneratePlan)
			plans.GET("", planHandler.GetPlanHistory)
			plans.GET("/latest", planHandler.GetLatestPlan)
			plans.GET("/:planId", planHandler.GetPlan)
			plans.POST("/:planId/regenerate", planHandler.RegeneratePlan)
			plans.GET("/:planId/export", planHandler.ExportPlan)
		}
	}
}
