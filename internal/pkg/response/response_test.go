package response

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func parseResponse(t *testing.T, w *httptest.ResponseRecorder) Response {
	var resp Response
	err := json.Unmarshal(w.Body.Bytes(), &resp)
	require.NoError(t, err)
	return resp
}

func serve(handler gin.HandlerFunc) *httptest.ResponseRecorder {
	router := gin.New()
	router.GET("/test", handler)

	req := httptest.NewRequest("GET", "/test", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func TestSuccess(t *testing.T) {
	w := serve(func(c *gin.Context) {
		Success(c, gin.H{"key": "value"})
	})

	assert.Equal(t, http.StatusOK, w.Code)

	resp := parseResponse(t, w)
	assert.Equal(t, CodeSuccess, resp.Code)
	assert.Equal(t, "success", resp.Message)

	data, ok := resp.Data.(map[string]interface{})
	require.True(t, ok)
	assert.Equal(t, "value", data["key"])
}

func TestSuccess_NilData(t *testing.T) {
	w := serve(func(c *gin.Context) {
		Success(c, nil)
	})

	resp := parseResponse(t, w)
	assert.Equal(t, CodeSuccess, resp.Code)
	assert.Nil(t, resp.Data)
}

func TestCreated(t *testing.T) {
	w := serve(func(c *gin.Context) {
		Created(c, gin.H{"id": "d1"})
	})

	assert.Equal(t, http.StatusCreated, w.Code)
	assert.Equal(t, CodeSuccess, parseResponse(t, w).Code)
}

func TestError_StatusMapping(t *testing.T) {
	tests := []struct {
		name   string
		write  func(c *gin.Context)
		code   int
		status int
	}{
		{"param", func(c *gin.Context) { ParamError(c, "") }, CodeParamError, http.StatusBadRequest},
		{"auth", func(c *gin.Context) { AuthError(c, "") }, CodeAuthFailed, http.StatusUnauthorized},
		{"permission", func(c *gin.Context) { PermissionError(c, "") }, CodePermissionDenied, http.StatusForbidden},
		{"not found", func(c *gin.Context) { NotFoundError(c, "") }, CodeResourceNotFound, http.StatusNotFound},
		{"rate limited", func(c *gin.Context) { RateLimitError(c, "", nil) }, CodeRateLimited, http.StatusTooManyRequests},
		{"unavailable", func(c *gin.Context) { UnavailableError(c, "") }, CodeUnavailable, http.StatusServiceUnavailable},
		{"unknown code", func(c *gin.Context) { Error(c, 4242, "boom", nil) }, 4242, http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := serve(tt.write)

			assert.Equal(t, tt.status, w.Code)
			resp := parseResponse(t, w)
			assert.Equal(t, tt.code, resp.Code)
			assert.NotEmpty(t, resp.Message)
		})
	}
}

func TestError_DefaultAndCustomMessage(t *testing.T) {
	w := serve(func(c *gin.Context) { NotFoundError(c, "") })
	assert.Equal(t, "资源不存在", parseResponse(t, w).Message)

	w = serve(func(c *gin.Context) { NotFoundError(c, "草稿不存在") })
	assert.Equal(t, "草稿不存在", parseResponse(t, w).Message)
}

func TestError_Aborts(t *testing.T) {
	router := gin.New()
	reached := false
	router.GET("/test", func(c *gin.Context) {
		PermissionError(c, "")
	}, func(c *gin.Context) {
		reached = true
	})

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest("GET", "/test", nil))

	assert.Equal(t, http.StatusForbidden, w.Code)
	assert.False(t, reached)
}

func TestRateLimitError_Data(t *testing.T) {
	w := serve(func(c *gin.Context) {
		RateLimitError(c, "今日发布次数已达上限", gin.H{"error": "DAILY_LIMIT_EXCEEDED", "maxDailyCasts": 10})
	})

	assert.Equal(t, http.StatusTooManyRequests, w.Code)
	resp := parseResponse(t, w)
	data, ok := resp.Data.(map[string]interface{})
	require.True(t, ok)
	assert.Equal(t, "DAILY_LIMIT_EXCEEDED", data["error"])
	assert.EqualValues(t, 10, data["maxDailyCasts"])
}

func TestServerError(t *testing.T) {
	w := serve(func(c *gin.Context) { ServerError(c, errors.New("connection refused")) })
	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.Equal(t, "connection refused", parseResponse(t, w).Message)

	w = serve(func(c *gin.Context) { ServerError(c, nil) })
	assert.Equal(t, "服务器内部错误", parseResponse(t, w).Message)
}

func TestServerError_ReleaseHidesCause(t *testing.T) {
	gin.SetMode(gin.ReleaseMode)
	defer gin.SetMode(gin.TestMode)

	w := serve(func(c *gin.Context) { ServerError(c, errors.New("pq: password authentication failed")) })
	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.Equal(t, "服务器内部错误", parseResponse(t, w).Message)
}
