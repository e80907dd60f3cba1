package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/yigit/prereqplanner/internal/app/models/dto"
	"github.com/yigit/prereqplanner/internal/app/services"
	"github.com/yigit/prereqplanner/internal/middleware"
)

// PlanController handles plan validation
type PlanController struct {
	planService *services.PlanService
}

// NewPlanController creates a new PlanController
func NewPlanController(planService *services.PlanService) *PlanController {
	return &PlanController{planService: planService}
}

// ValidatePlan checks a multi-year plan against the live catalog
// @Summary Validate a course plan
// @Description Reports unmet prerequisite groups per course. Courses in the same semester never satisfy each other.
// @Tags plans
// @Accept json
// @Produce json
// @Param request body dto.ValidatePlanRequest true "Plan"
// @Success 200 {object} dto.APIResponse{data=models.ValidationReport}
// @Failure 400 {object} dto.ErrorResponse "Invalid plan"
// @Failure 503 {object} dto.ErrorResponse "Catalog not loaded"
// @Router /plans/validate [post]
func (c *PlanController) ValidatePlan(ctx *gin.Context) {
	var req dto.ValidatePlanRequest
	if !middleware.BindJSON(ctx, &req) {
		return
	}

	report, err := c.planService.Validate(ctx.Request.Context(), req.ToPlan(), req.Overrides)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.NewAPIResponse(report))
}
