package handler

import (
	"net/http/httptest"
	"testing"

	"github.com/eventease/manager/internal/errdef"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGetPathParameter(t *testing.T) {
	gin.SetMode(gin.TestMode)

	t.Run("parses a numeric id", func(t *testing.T) {
		c, _ := gin.CreateTestContext(httptest.NewRecorder())
		c.Params = gin.Params{{Key: "id", Value: "42"}}

		id, ok := GetPathParameter(c, "id")

		assert.True(t, ok)
		assert.Equal(t, uint(42), id)
		assert.Empty(t, c.Errors)
	})

	t.Run("rejects a non numeric id", func(t *testing.T) {
		c, _ := gin.CreateTestContext(httptest.NewRecorder())
		c.Params = gin.Params{{Key: "id", Value: "latest"}}

		_, ok := GetPathParameter(c, "id")

		assert.False(t, ok)
		require.Len(t, c.Errors, 1)
		assert.True(t, errdef.IsBadRequest(c.Errors.Last()))
	})
}
