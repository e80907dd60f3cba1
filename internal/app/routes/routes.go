package routes

import (
	"github.com/gin-gonic/gin"
	"github.com/yigit/prereqplanner/internal/app/controllers"
	"github.com/yigit/prereqplanner/internal/app/models"
	"github.com/yigit/prereqplanner/internal/middleware"
	"github.com/yigit/prereqplanner/internal/pkg/validation"
)

// SetupRouter registers the custom binding rules and configures all
// application routes
func SetupRouter(
	router *gin.Engine,
	catalogController *controllers.CatalogController,
	planController *controllers.PlanController,
	healthController *controllers.HealthController,
	authMiddleware *middleware.AuthMiddleware,
) error {
	if err := validation.RegisterBindingRules(); err != nil {
		return err
	}

	// API version group
	v1 := router.Group("/api/v1")

	v1.GET("/health", healthController.Health)

	// --- Public catalog routes ---
	catalog := v1.Group("/catalog")
	{
		catalog.GET("", catalogController.GetCatalogInfo)
		catalog.GET("/courses", catalogController.ListCourses)
		catalog.GET("/courses/:id", catalogController.GetCourse)
		catalog.GET("/prereq-map", catalogController.GetPrereqMap)
		catalog.GET("/diagnostics", catalogController.GetDiagnostics)
		catalog.POST("/parse", catalogController.ParsePreview)
	}

	plans := v1.Group("/plans")
	{
		plans.POST("/validate", planController.ValidatePlan)
	}

	// --- Admin routes ---
	admin := v1.Group("")
	admin.Use(authMiddleware.JWTAuth(), authMiddleware.RoleRequired(models.RoleAdmin))
	{
		admin.POST("/catalog/reload", catalogController.Reload)
	}
	return nil
}
