package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/yigit/prereqplanner/internal/app/models/dto"
)

// BindJSON binds and validates the request body into obj. On failure it
// writes a VAL_001 response, aborts the request and returns false.
func BindJSON(c *gin.Context, obj interface{}) bool {
	if err := c.ShouldBindJSON(obj); err != nil {
		c.AbortWithStatusJSON(http.StatusBadRequest, dto.NewErrorResponse(dto.HandleValidationError(err)))
		return false
	}
	return true
}
