package middleware

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"
	"github.com/yigit/prereqplanner/internal/app/models/dto"
	"github.com/yigit/prereqplanner/internal/pkg/apperrors"
)

// HandleAPIError maps service errors to HTTP statuses and error details
func HandleAPIError(c *gin.Context, err error) {
	status, detail := errorDetailFor(err)

	var custom *apperrors.CustomError
	if errors.As(err, &custom) {
		if custom.Message != "" && status != http.StatusInternalServerError {
			detail.Message = custom.Message
		}
		if custom.Details != nil {
			detail = detail.WithDetails(custom.Details)
		}
	}

	if status >= http.StatusInternalServerError {
		log.Error().Err(err).Str("path", c.FullPath()).Msg("Request failed")
		if gin.Mode() != gin.ReleaseMode {
			detail = detail.WithDebugInfo("%v", err)
		}
	}

	c.AbortWithStatusJSON(status, dto.NewErrorResponse(detail))
}

func errorDetailFor(err error) (int, *dto.ErrorDetail) {
	switch {
	case apperrors.Is(err, apperrors.ErrCourseNotFound, apperrors.ErrResourceNotFound):
		return http.StatusNotFound, dto.NewErrorDetail(dto.ErrorCodeResourceNotFound, "Resource not found")
	case errors.Is(err, apperrors.ErrCatalogNotLoaded):
		return http.StatusServiceUnavailable, dto.NewErrorDetail(dto.ErrorCodeCatalogNotLoaded, "Catalog is not loaded yet")
	case errors.Is(err, apperrors.ErrCatalogSource):
		return http.StatusBadGateway, dto.NewErrorDetail(dto.ErrorCodeCatalogSource, "Catalog source unavailable").
			WithSeverity(dto.ErrorSeverityCritical)
	case errors.Is(err, apperrors.ErrUnsupportedInput):
		return http.StatusUnprocessableEntity, dto.NewErrorDetail(dto.ErrorCodeUnsupportedFormat, "Unsupported input format")
	case errors.Is(err, apperrors.ErrPermissionDenied):
		return http.StatusForbidden, dto.NewErrorDetail(dto.ErrorCodeForbidden, "Permission denied")
	case errors.Is(err, apperrors.ErrTokenExpired):
		return http.StatusUnauthorized, dto.NewErrorDetail(dto.ErrorCodeExpiredToken, "Token expired")
	case apperrors.Is(err, apperrors.ErrTokenInvalid, apperrors.ErrInvalidFormat):
		return http.StatusUnauthorized, dto.NewErrorDetail(dto.ErrorCodeInvalidToken, "Invalid token")
	case errors.Is(err, apperrors.ErrTokenNotFound):
		return http.StatusUnauthorized, dto.NewErrorDetail(dto.ErrorCodeTokenNotFound, "Token not found")
	case apperrors.Is(err, apperrors.ErrValidationFailed, apperrors.ErrInvalidPlan):
		return http.StatusBadRequest, dto.NewErrorDetail(dto.ErrorCodeValidationFailed, "Validation failed")
	case errors.Is(err, apperrors.ErrBadRequest):
		return http.StatusBadRequest, dto.NewErrorDetail(dto.ErrorCodeBadRequest, "Bad request")
	case errors.Is(err, apperrors.ErrConflict):
		return http.StatusConflict, dto.NewErrorDetail(dto.ErrorCodeConflict, "Conflict")
	default:
		return http.StatusInternalServerError, dto.NewErrorDetail(dto.ErrorCodeInternalServer, "Internal server error")
	}
}
