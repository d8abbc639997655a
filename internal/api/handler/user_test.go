package handler

import (
	"errors"
	"net/http"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/qs3c/castquest_server/internal/api/middleware"
	"github.com/qs3c/castquest_server/internal/pkg/farcaster"
	"github.com/qs3c/castquest_server/internal/pkg/response"
	"github.com/qs3c/castquest_server/internal/testutil"
)

func userRouter(ctx *testContext, authUser string) *gin.Engine {
	h := NewUserHandler(ctx.Users)
	router := gin.New()
	if authUser != "" {
		router.Use(mockAuth(authUser))
	}
	router.POST("/users", h.Connect)
	router.GET("/users/:walletAddress", h.GetByWallet)
	router.PATCH("/users/:id", middleware.RequireSameUser("id"), h.Update)
	return router
}

func TestUserHandler_Connect(t *testing.T) {
	ctx, cleanup := setupTestContext(t)
	defer cleanup()

	router := userRouter(ctx, "")

	w := performJSON(router, "POST", "/users", gin.H{"walletAddress": "0xaaa", "farcasterUsername": "alice"})
	assert.Equal(t, http.StatusOK, w.Code)

	data := dataMap(t, parseResponse(t, w))
	assert.Equal(t, "0xaaa", data["walletAddress"])
	assert.Equal(t, "alice", data["farcasterUsername"])
	assert.NotEmpty(t, data["token"])
	firstID := data["id"]

	// 同一钱包再次连接返回同一用户
	w = performJSON(router, "POST", "/users", gin.H{"walletAddress": "0xaaa"})
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, firstID, dataMap(t, parseResponse(t, w))["id"])
}

func TestUserHandler_Connect_MissingWallet(t *testing.T) {
	ctx, cleanup := setupTestContext(t)
	defer cleanup()

	w := performJSON(userRouter(ctx, ""), "POST", "/users", gin.H{})
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, response.CodeParamError, parseResponse(t, w).Code)
}

func TestUserHandler_GetByWallet(t *testing.T) {
	ctx, cleanup := setupTestContext(t)
	defer cleanup()

	score := 55
	ctx.Directory.profile = &farcaster.Profile{Fid: "42", Username: "alice", NeynarScore: &score}
	testutil.TestUser(t, ctx.DB, testutil.WithWallet("0xbbb"))

	w := performJSON(userRouter(ctx, ""), "GET", "/users/0xbbb", nil)
	require.Equal(t, http.StatusOK, w.Code)

	data := dataMap(t, parseResponse(t, w))
	assert.Equal(t, "42", data["farcasterFid"])
	assert.Equal(t, "alice", data["farcasterUsername"])
	assert.EqualValues(t, 55, data["neynarScore"])
}

func TestUserHandler_GetByWallet_EnrichFailureStillReturnsUser(t *testing.T) {
	ctx, cleanup := setupTestContext(t)
	defer cleanup()

	ctx.Directory.err = errors.New("neynar down")
	testutil.TestUser(t, ctx.DB, testutil.WithWallet("0xccc"))

	w := performJSON(userRouter(ctx, ""), "GET", "/users/0xccc", nil)
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestUserHandler_GetByWallet_NotFound(t *testing.T) {
	ctx, cleanup := setupTestContext(t)
	defer cleanup()

	w := performJSON(userRouter(ctx, ""), "GET", "/users/0xnone", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Equal(t, response.CodeResourceNotFound, parseResponse(t, w).Code)
}

func TestUserHandler_Update(t *testing.T) {
	ctx, cleanup := setupTestContext(t)
	defer cleanup()

	user := testutil.TestUser(t, ctx.DB)

	w := performJSON(userRouter(ctx, user.ID), "PATCH", "/users/"+user.ID, gin.H{"githubUrl": "https://github.com/alice"})
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "https://github.com/alice", dataMap(t, parseResponse(t, w))["githubUrl"])
}

func TestUserHandler_Update_OtherUserForbidden(t *testing.T) {
	ctx, cleanup := setupTestContext(t)
	defer cleanup()

	user := testutil.TestUser(t, ctx.DB)

	w := performJSON(userRouter(ctx, "someone-else"), "PATCH", "/users/"+user.ID, gin.H{"githubUrl": "x"})
	assert.Equal(t, http.StatusForbidden, w.Code)
	assert.Equal(t, response.CodePermissionDenied, parseResponse(t, w).Code)
}
