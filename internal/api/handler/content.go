package handler

import (
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/qs3c/castquest_server/internal/model/dto"
	"github.com/qs3c/castquest_server/internal/pkg/response"
	"github.com/qs3c/castquest_server/internal/service"
)

type ContentHandler struct {
	contentService *service.ContentService
	imageService   *service.ImageService
}

func NewContentHandler(contentService *service.ContentService, imageService *service.ImageService) *ContentHandler {
	return &ContentHandler{
		contentService: contentService,
		imageService:   imageService,
	}
}

// Generate AI 生成文案
// POST /api/content/generate
func (h *ContentHandler) Generate(c *gin.Context) {
	var req dto.GenerateContentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.ParamError(c, err.Error())
		return
	}

	content, err := h.contentService.Generate(c.Request.Context(), req.Topic, req.ContentType, req.Tone)
	if err != nil {
		handleServiceError(c, err)
		return
	}

	response.Success(c, dto.GenerateContentResponse{Content: content})
}

// GenerateFromPrompt 自由提示生成短文，自动识别 tr/en
// GET /api/generate?prompt=&lang=
func (h *ContentHandler) GenerateFromPrompt(c *gin.Context) {
	var req dto.PromptContentRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		response.ParamError(c, "prompt 参数不能为空")
		return
	}

	resp, err := h.contentService.GenerateFromPrompt(c.Request.Context(), req.Prompt, req.Lang)
	if err != nil {
		handleServiceError(c, err)
		return
	}

	response.Success(c, resp)
}

// SuggestSearch 推荐图片搜索词
// POST /api/images/suggest-search
func (h *ContentHandler) SuggestSearch(c *gin.Context) {
	var req dto.SuggestSearchRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.ParamError(c, err.Error())
		return
	}

	term, err := h.contentService.SuggestSearchTerm(c.Request.Context(), req.Content)
	if err != nil {
		handleServiceError(c, err)
		return
	}

	response.Success(c, dto.SuggestSearchResponse{SearchTerm: term})
}

// SearchImages 图片搜索
// GET /api/images/search?q=&per_page=
func (h *ContentHandler) SearchImages(c *gin.Context) {
	perPage, ok := perPageQuery(c)
	if !ok {
		return
	}

	photos, err := h.imageService.Search(c.Request.Context(), c.Query("q"), perPage)
	if err != nil {
		handleServiceError(c, err)
		return
	}

	response.Success(c, dto.PhotosResponse{Photos: photos})
}

// FeaturedImages 精选图片
// GET /api/images/featured?per_page=
func (h *ContentHandler) FeaturedImages(c *gin.Context) {
	perPage, ok := perPageQuery(c)
	if !ok {
		return
	}

	photos, err := h.imageService.Featured(c.Request.Context(), perPage)
	if err != nil {
		handleServiceError(c, err)
		return
	}

	response.Success(c, dto.PhotosResponse{Photos: photos})
}

func perPageQuery(c *gin.Context) (int, bool) {
	raw := c.Query("per_page")
	if raw == "" {
		return 0, true
	}
	n, err := strconv.Atoi(raw)
	if err != nil || n < 0 || n > 80 {
		response.ParamError(c, "per_page 必须在 0 到 80 之间")
		return 0, false
	}
	return n, true
}
