package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"

	"github.com/nanokit/bedrock-relay/common/ctxkey"
)

func TestRequestIdSetsContextAndHeaderUnderOneKey(t *testing.T) {
	gin.SetMode(gin.TestMode)
	engine := gin.New()
	engine.Use(RequestId())

	var fromCtx string
	engine.GET("/", func(c *gin.Context) {
		fromCtx = c.GetString(ctxkey.RequestId)
		c.Status(http.StatusOK)
	})

	recorder := httptest.NewRecorder()
	engine.ServeHTTP(recorder, httptest.NewRequest(http.MethodGet, "/", nil))

	require.NotEmpty(t, fromCtx)
	require.Equal(t, fromCtx, recorder.Header().Get(ctxkey.RequestId))
}
