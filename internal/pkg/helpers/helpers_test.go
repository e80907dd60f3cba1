package helpers

import (
	"database/sql"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

func TestCalculateSliceIndices(t *testing.T) {
	tests := []struct {
		page, size, total int
		start, end        int
	}{
		{1, 10, 25, 0, 10},
		{3, 10, 25, 20, 25},
		{4, 10, 25, 25, 25},
		{0, 0, 5, 0, 5},
	}
	for _, tt := range tests {
		start, end := CalculateSliceIndices(tt.page, tt.size, tt.total)
		assert.Equal(t, tt.start, start)
		assert.Equal(t, tt.end, end)
	}
}

func TestNewPaginationInfo(t *testing.T) {
	info := NewPaginationInfo(25, 5, 10)
	assert.Equal(t, 3, info.TotalPages)
	assert.Equal(t, 3, info.CurrentPage)

	empty := NewPaginationInfo(0, 1, 10)
	assert.Equal(t, 1, empty.TotalPages)
}

func TestParsePaginationParams(t *testing.T) {
	gin.SetMode(gin.TestMode)
	c, _ := gin.CreateTestContext(httptest.NewRecorder())
	c.Request = httptest.NewRequest("GET", "/?page=2&size=9999", nil)

	page, size := ParsePaginationParams(c)
	assert.Equal(t, 2, page)
	assert.Equal(t, DefaultPageSize, size)
}

func TestNullStrings(t *testing.T) {
	assert.False(t, GetNullString(nil).Valid)
	assert.Nil(t, StringPtr(sql.NullString{}))
	assert.Equal(t, "x", *StringPtr(GetNullString(OptionalString("x"))))
	assert.Nil(t, OptionalString(""))
}

func TestParseDuration(t *testing.T) {
	assert.Equal(t, 2*time.Second, ParseDuration("2s", time.Minute))
	assert.Equal(t, time.Minute, ParseDuration("later", time.Minute))
}
