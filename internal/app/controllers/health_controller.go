package controllers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/yigit/prereqplanner/internal/app/services"
)

// HealthController reports liveness and catalog readiness
type HealthController struct {
	catalogService *services.CatalogService
}

// NewHealthController creates a new HealthController
func NewHealthController(catalogService *services.CatalogService) *HealthController {
	return &HealthController{catalogService: catalogService}
}

// Health responds 200 when a catalog is loaded, 503 otherwise
// @Summary Health check
// @Tags health
// @Produce json
// @Router /health [get]
func (h *HealthController) Health(ctx *gin.Context) {
	body := gin.H{"status": "ok", "time": time.Now()}
	snap, err := h.catalogService.Snapshot(ctx)
	if err != nil {
		body["status"] = "degraded"
		body["catalog"] = err.Error()
		ctx.JSON(http.StatusServiceUnavailable, body)
		return
	}
	body["catalogVersion"] = snap.Version
	ctx.JSON(http.StatusOK, body)
}
