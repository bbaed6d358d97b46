package routes

import (
	"github.com/gin-gonic/gin"

	"github.com/oakkaya/degreeplan/internal/app/controllers"
	"github.com/oakkaya/degreeplan/internal/middleware"
)

// SetupRouter configures all application routes
func SetupRouter(
	router *gin.Engine,
	planController *controllers.PlanController,
	authMiddleware *middleware.AuthMiddleware,
) {
	// API version group
	v1 := router.Group("/api/v1")

	// --- Public offering routes ---
	offerings := v1.Group("/offerings")
	{
		offerings.GET("/:year/:term", planController.GetTermOfferings)
	}

	// --- Planning routes ---
	plan := v1.Group("/plan")
	if authMiddleware != nil {
		plan.Use(authMiddleware.JWTAuth())
	}
	{
		plan.POST("", planController.CreatePlan)
	}
}
