package handler

import (
	"github.com/gin-gonic/gin"

	"github.com/qs3c/castquest_server/internal/model/dto"
	"github.com/qs3c/castquest_server/internal/pkg/response"
	"github.com/qs3c/castquest_server/internal/service"
)

type UserHandler struct {
	userService *service.UserService
}

func NewUserHandler(userService *service.UserService) *UserHandler {
	return &UserHandler{
		userService: userService,
	}
}

// Connect 连接钱包
// POST /api/users
func (h *UserHandler) Connect(c *gin.Context) {
	var req dto.ConnectWalletRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.ParamError(c, err.Error())
		return
	}

	resp, err := h.userService.Connect(c.Request.Context(), &req)
	if err != nil {
		handleServiceError(c, err)
		return
	}

	response.Success(c, resp)
}

// GetByWallet 按钱包地址获取用户
// GET /api/users/:walletAddress
func (h *UserHandler) GetByWallet(c *gin.Context) {
	user, err := h.userService.GetByWallet(c.Request.Context(), c.Param("walletAddress"))
	if err != nil {
		handleServiceError(c, err)
		return
	}

	response.Success(c, user)
}

// Update 更新用户资料
// PATCH /api/users/:id
func (h *UserHandler) Update(c *gin.Context) {
	var req dto.UpdateUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.ParamError(c, err.Error())
		return
	}

	user, err := h.userService.Update(c.Request.Context(), c.Param("id"), &req)
	if err != nil {
		handleServiceError(c, err)
		return
	}

	response.Success(c, user)
}
