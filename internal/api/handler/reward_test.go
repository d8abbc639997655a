package handler

import (
	"net/http"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/qs3c/castquest_server/internal/service"
	"github.com/qs3c/castquest_server/internal/testutil"
)

func rewardRouter(ctx *testContext, authUser string) *gin.Engine {
	h := NewRewardHandler(ctx.Sbt, ctx.Rewards)
	router := gin.New()
	if authUser != "" {
		router.Use(mockAuth(authUser))
	}
	router.POST("/sbt/mint", h.MintSbt)
	router.GET("/sbt/user/:userId", h.GetBadge)
	router.POST("/rewards/claim-degen", h.ClaimDegen)
	return router
}

func TestRewardHandler_GetBadge_None(t *testing.T) {
	ctx, cleanup := setupTestContext(t)
	defer cleanup()

	user := testutil.TestUser(t, ctx.DB)

	w := performJSON(rewardRouter(ctx, ""), "GET", "/sbt/user/"+user.ID, nil)
	require.Equal(t, http.StatusOK, w.Code)

	data := dataMap(t, parseResponse(t, w))
	assert.EqualValues(t, 0, data["mintCount"])
	assert.Equal(t, "0", data["totalPaid"])
}

func TestRewardHandler_MintSbt(t *testing.T) {
	ctx, cleanup := setupTestContext(t)
	defer cleanup()

	user := testutil.TestUser(t, ctx.DB)
	router := rewardRouter(ctx, user.ID)

	w := performJSON(router, "POST", "/sbt/mint", gin.H{"userId": user.ID, "transactionHash": "0xfeed"})
	require.Equal(t, http.StatusOK, w.Code)

	data := dataMap(t, parseResponse(t, w))
	assert.Equal(t, "50", data["pointsEarned"])
	badge := data["badge"].(map[string]interface{})
	assert.EqualValues(t, 1, badge["mintCount"])
	assert.Equal(t, "0.00125", badge["totalPaid"])

	w = performJSON(router, "GET", "/sbt/user/"+user.ID, nil)
	require.Equal(t, http.StatusOK, w.Code)
	meta := dataMap(t, parseResponse(t, w))["badgeMetadata"].(map[string]interface{})
	assert.Equal(t, "ContentCastAI Profile SBT", meta["name"])
}

func TestRewardHandler_MintSbt_OtherUserForbidden(t *testing.T) {
	ctx, cleanup := setupTestContext(t)
	defer cleanup()

	user := testutil.TestUser(t, ctx.DB)

	w := performJSON(rewardRouter(ctx, "intruder"), "POST", "/sbt/mint", gin.H{"userId": user.ID, "transactionHash": "0x1"})
	assert.Equal(t, http.StatusForbidden, w.Code)
}

func TestRewardHandler_ClaimDegen(t *testing.T) {
	ctx, cleanup := setupTestContext(t)
	defer cleanup()

	router := rewardRouter(ctx, "")

	tests := []struct {
		name   string
		body   gin.H
		status int
		amount float64
	}{
		{"missing points", gin.H{"userId": "u1"}, http.StatusBadRequest, 0},
		{"zero points", gin.H{"userId": "u1", "points": 0}, http.StatusBadRequest, 0},
		{"below threshold", gin.H{"userId": "u1", "points": 249}, http.StatusBadRequest, 0},
		{"eligible", gin.H{"userId": "u1", "points": 305.5}, http.StatusOK, 30},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := performJSON(router, "POST", "/rewards/claim-degen", tt.body)
			assert.Equal(t, tt.status, w.Code)
			if tt.status != http.StatusOK {
				return
			}
			data := dataMap(t, parseResponse(t, w))
			assert.Equal(t, tt.amount, data["degenAmount"])
			assert.Equal(t, service.DegenContractAddress, data["contractAddress"])
			assert.EqualValues(t, service.BaseChainID, data["chainId"])
		})
	}
}
