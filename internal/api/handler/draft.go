package handler

import (
	"github.com/gin-gonic/gin"

	"github.com/qs3c/castquest_server/internal/api/middleware"
	"github.com/qs3c/castquest_server/internal/model/dto"
	"github.com/qs3c/castquest_server/internal/pkg/response"
	"github.com/qs3c/castquest_server/internal/service"
)

type DraftHandler struct {
	draftService *service.DraftService
}

func NewDraftHandler(draftService *service.DraftService) *DraftHandler {
	return &DraftHandler{
		draftService: draftService,
	}
}

// Create 创建草稿
// POST /api/drafts
func (h *DraftHandler) Create(c *gin.Context) {
	var req dto.CreateDraftRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.ParamError(c, err.Error())
		return
	}
	if !middleware.SameUser(c, req.UserID) {
		return
	}

	draft, err := h.draftService.Create(c.Request.Context(), &req)
	if err != nil {
		handleServiceError(c, err)
		return
	}

	response.Created(c, draft)
}

// ListByUser 用户草稿列表
// GET /api/drafts/user/:userId
func (h *DraftHandler) ListByUser(c *gin.Context) {
	drafts, err := h.draftService.ListByUser(c.Request.Context(), c.Param("userId"))
	if err != nil {
		handleServiceError(c, err)
		return
	}

	response.Success(c, drafts)
}

// Get 草稿详情
// GET /api/drafts/:id
func (h *DraftHandler) Get(c *gin.Context) {
	draft, err := h.draftService.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		handleServiceError(c, err)
		return
	}

	response.Success(c, draft)
}

// Update 更新草稿
// PATCH /api/drafts/:id
func (h *DraftHandler) Update(c *gin.Context) {
	var req dto.UpdateDraftRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.ParamError(c, err.Error())
		return
	}

	draft, err := h.draftService.Update(c.Request.Context(), c.Param("id"), &req)
	if err != nil {
		handleServiceError(c, err)
		return
	}

	response.Success(c, draft)
}

// Delete 删除草稿
// DELETE /api/drafts/:id
func (h *DraftHandler) Delete(c *gin.Context) {
	if err := h.draftService.Delete(c.Request.Context(), c.Param("id")); err != nil {
		handleServiceError(c, err)
		return
	}

	response.Success(c, gin.H{"success": true})
}
