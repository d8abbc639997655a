package handler

import (
	"errors"
	"net/http"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/qs3c/castquest_server/internal/service"
)

func contentRouter(ctx *testContext) *gin.Engine {
	h := NewContentHandler(ctx.Content, ctx.Images)
	router := gin.New()
	router.POST("/content/generate", h.Generate)
	router.GET("/generate", h.GenerateFromPrompt)
	router.POST("/images/suggest-search", h.SuggestSearch)
	router.GET("/images/search", h.SearchImages)
	router.GET("/images/featured", h.FeaturedImages)
	return router
}

func TestContentHandler_Generate(t *testing.T) {
	ctx, cleanup := setupTestContext(t)
	defer cleanup()

	w := performJSON(contentRouter(ctx), "POST", "/content/generate", gin.H{
		"topic": "base", "contentType": "post", "tone": "witty",
	})
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "[witty post] base", dataMap(t, parseResponse(t, w))["content"])

	w = performJSON(contentRouter(ctx), "POST", "/content/generate", gin.H{"topic": "base"})
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestContentHandler_Generate_Unconfigured(t *testing.T) {
	ctx, cleanup := setupTestContext(t)
	defer cleanup()

	ctx.Content = service.NewContentService(nil, zap.NewNop())

	w := performJSON(contentRouter(ctx), "POST", "/content/generate", gin.H{
		"topic": "base", "contentType": "post", "tone": "witty",
	})
	assert.Equal(t, http.StatusServiceUnavailable, w.Code)

	w = performJSON(contentRouter(ctx), "GET", "/generate?prompt=gm", nil)
	assert.Equal(t, http.StatusServiceUnavailable, w.Code)
}

func TestContentHandler_GenerateFromPrompt(t *testing.T) {
	ctx, cleanup := setupTestContext(t)
	defer cleanup()

	w := performJSON(contentRouter(ctx), "GET", "/generate?prompt=what%20is%20base", nil)
	require.Equal(t, http.StatusOK, w.Code)
	data := dataMap(t, parseResponse(t, w))
	assert.Equal(t, true, data["ok"])
	assert.Equal(t, "gemini", data["provider"])
	assert.Equal(t, "gemini-test", data["model"])
	assert.Equal(t, "en", data["lang"])
	assert.Equal(t, "Base is cheap.\n\nFees\nGas is low.", data["text"])
	assert.Equal(t, data["text"], data["content"])

	w = performJSON(contentRouter(ctx), "GET", "/generate?prompt=what%20is%20base&lang=tr", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "tr", dataMap(t, parseResponse(t, w))["lang"])

	w = performJSON(contentRouter(ctx), "GET", "/generate", nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	ctx.Content = service.NewContentService(&fakeGenerator{err: errors.New("upstream 429")}, zap.NewNop())
	w = performJSON(contentRouter(ctx), "GET", "/generate?prompt=gm", nil)
	assert.Equal(t, http.StatusInternalServerError, w.Code)
}

func TestContentHandler_SuggestSearch(t *testing.T) {
	ctx, cleanup := setupTestContext(t)
	defer cleanup()

	w := performJSON(contentRouter(ctx), "POST", "/images/suggest-search", gin.H{"content": "early morning run"})
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "sunrise", dataMap(t, parseResponse(t, w))["searchTerm"])

	ctx.Content = service.NewContentService(&fakeGenerator{err: errors.New("quota exceeded")}, zap.NewNop())
	w = performJSON(contentRouter(ctx), "POST", "/images/suggest-search", gin.H{"content": "anything"})
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "technology", dataMap(t, parseResponse(t, w))["searchTerm"])

	w = performJSON(contentRouter(ctx), "POST", "/images/suggest-search", gin.H{"content": ""})
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestContentHandler_SearchImages(t *testing.T) {
	ctx, cleanup := setupTestContext(t)
	defer cleanup()

	w := performJSON(contentRouter(ctx), "GET", "/images/search?q=ocean", nil)
	require.Equal(t, http.StatusOK, w.Code)
	photos := dataMap(t, parseResponse(t, w))["photos"].([]interface{})
	assert.Len(t, photos, 12)

	w = performJSON(contentRouter(ctx), "GET", "/images/search?q=ocean&per_page=3", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Len(t, dataMap(t, parseResponse(t, w))["photos"], 3)

	w = performJSON(contentRouter(ctx), "GET", "/images/search", nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = performJSON(contentRouter(ctx), "GET", "/images/search?q=ocean&per_page=abc", nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestContentHandler_FeaturedImages(t *testing.T) {
	ctx, cleanup := setupTestContext(t)
	defer cleanup()

	w := performJSON(contentRouter(ctx), "GET", "/images/featured", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Len(t, dataMap(t, parseResponse(t, w))["photos"], 8)
}
