package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/yigit/prereqplanner/internal/app/models/dto"
	"github.com/yigit/prereqplanner/internal/app/services"
	"github.com/yigit/prereqplanner/internal/middleware"
	"github.com/yigit/prereqplanner/internal/pkg/helpers"
)

// CatalogController serves the compiled course catalog
type CatalogController struct {
	catalogService *services.CatalogService
}

// NewCatalogController creates a new CatalogController
func NewCatalogController(catalogService *services.CatalogService) *CatalogController {
	return &CatalogController{
		catalogService: catalogService,
	}
}

// GetCatalogInfo returns metadata about the live snapshot
// @Summary Catalog snapshot info
// @Tags catalog
// @Produce json
// @Success 200 {object} dto.APIResponse{data=dto.CatalogInfoResponse}
// @Failure 503 {object} dto.ErrorResponse "Catalog not loaded"
// @Router /catalog [get]
func (c *CatalogController) GetCatalogInfo(ctx *gin.Context) {
	snap, err := c.catalogService.Snapshot(ctx)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.NewAPIResponse(dto.NewCatalogInfoResponse(snap)))
}

// ListCourses returns one page of catalog courses
// @Summary List catalog courses
// @Tags catalog
// @Produce json
// @Param page query int false "Page number (1-based)"
// @Param size query int false "Page size"
// @Success 200 {object} dto.APIResponse{data=dto.PaginatedResponse{items=[]dto.CourseSummary}}
// @Failure 503 {object} dto.ErrorResponse "Catalog not loaded"
// @Router /catalog/courses [get]
func (c *CatalogController) ListCourses(ctx *gin.Context) {
	courses, err := c.catalogService.ListCourses(ctx)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	page, size := helpers.ParsePaginationParams(ctx)
	start, end := helpers.CalculateSliceIndices(page, size, len(courses))

	items := make([]dto.CourseSummary, 0, end-start)
	for _, course := range courses[start:end] {
		items = append(items, dto.CourseSummary{
			ID:          course.ID,
			CourseName:  course.CourseName,
			SubjectName: course.SubjectName,
			Credits:     course.Credits,
		})
	}

	ctx.JSON(http.StatusOK, dto.NewAPIResponse(dto.PaginatedResponse{
		Items:      items,
		Pagination: helpers.NewPaginationInfo(int64(len(courses)), page, size),
	}))
}

// GetCourse returns a course with its parsed requirements
// @Summary Get a catalog course
// @Tags catalog
// @Produce json
// @Param id path string true "Course id, spaced or unspaced (e.g. MATH 221 or MATH221)"
// @Success 200 {object} dto.APIResponse{data=dto.CourseResponse}
// @Failure 404 {object} dto.ErrorResponse "Course not found"
// @Router /catalog/courses/{id} [get]
func (c *CatalogController) GetCourse(ctx *gin.Context) {
	entry, satisfies, err := c.catalogService.GetCourse(ctx, ctx.Param("id"))
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.NewAPIResponse(dto.NewCourseResponse(entry, satisfies)))
}

// GetPrereqMap returns the compiled prerequisite map
// @Summary Compiled prerequisite map
// @Description Normalized course id => list of OR-groups of course aliases
// @Tags catalog
// @Produce json
// @Success 200 {object} dto.APIResponse
// @Router /catalog/prereq-map [get]
func (c *CatalogController) GetPrereqMap(ctx *gin.Context) {
	prereqs, version, err := c.catalogService.PrereqMap(ctx)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.Header("ETag", `"`+version+`"`)
	if match := ctx.GetHeader("If-None-Match"); match == `"`+version+`"` {
		ctx.Status(http.StatusNotModified)
		return
	}
	ctx.JSON(http.StatusOK, dto.NewAPIResponse(prereqs))
}

// GetDiagnostics lists parse and reference diagnostics
// @Summary Catalog diagnostics
// @Tags catalog
// @Produce json
// @Param kind query string false "ambiguous | dangling_reference | empty_prerequisite | duplicate_course"
// @Success 200 {object} dto.APIResponse
// @Failure 400 {object} dto.ErrorResponse "Unknown kind"
// @Router /catalog/diagnostics [get]
func (c *CatalogController) GetDiagnostics(ctx *gin.Context) {
	diags, err := c.catalogService.Diagnostics(ctx, ctx.Query("kind"))
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.NewAPIResponse(diags))
}

// ParsePreview parses prerequisite text without touching the catalog
// @Summary Parse prerequisite text
// @Tags catalog
// @Accept json
// @Produce json
// @Param request body dto.ParseRequest true "Prerequisite text"
// @Success 200 {object} dto.APIResponse{data=dto.ParseResponse}
// @Failure 400 {object} dto.ErrorResponse "Invalid request data"
// @Router /catalog/parse [post]
func (c *CatalogController) ParsePreview(ctx *gin.Context) {
	var req dto.ParseRequest
	if !middleware.BindJSON(ctx, &req) {
		return
	}
	ctx.JSON(http.StatusOK, dto.NewAPIResponse(dto.NewParseResponse(req.Text)))
}

// Reload rebuilds the catalog from its source
// @Summary Reload the catalog
// @Tags catalog
// @Produce json
// @Security BearerAuth
// @Success 200 {object} dto.APIResponse{data=dto.ReloadResponse}
// @Failure 401 {object} dto.ErrorResponse "Unauthorized"
// @Failure 403 {object} dto.ErrorResponse "Forbidden"
// @Failure 502 {object} dto.ErrorResponse "Catalog source unavailable"
// @Router /catalog/reload [post]
func (c *CatalogController) Reload(ctx *gin.Context) {
	previous, current, err := c.catalogService.Reload(ctx.Request.Context())
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	resp := dto.ReloadResponse{Current: dto.NewCatalogInfoResponse(current)}
	if previous != nil {
		resp.Previous = previous.Version
	}
	ctx.JSON(http.StatusOK, dto.NewAPIResponse(resp))
}
