package apperrors

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCustomErrorUnwrap(t *testing.T) {
	err := NewCustomError(ErrCourseNotFound, "course MATH 221 not found").
		WithDetails(map[string]interface{}{"id": "MATH 221"})

	wrapped := fmt.Errorf("lookup: %w", err)
	assert.True(t, errors.Is(wrapped, ErrCourseNotFound))
	assert.Equal(t, "course MATH 221 not found", err.Error())

	var custom *CustomError
	assert.True(t, errors.As(wrapped, &custom))
	assert.Equal(t, "MATH 221", custom.Details["id"])
}

func TestIs(t *testing.T) {
	err := fmt.Errorf("reload: %w", ErrCatalogSource)
	assert.True(t, Is(err, ErrCatalogNotLoaded, ErrCatalogSource))
	assert.False(t, Is(err, ErrCatalogNotLoaded, ErrCourseNotFound))
	assert.Equal(t, "unknown error", (&CustomError{}).Error())
	assert.Equal(t, "bad request", (&CustomError{Err: ErrBadRequest}).Error())
}
