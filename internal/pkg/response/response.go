package response

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// 错误码定义
const (
	CodeSuccess          = 0
	CodeParamError       = 1000
	CodeAuthFailed       = 1001
	CodePermissionDenied = 1002
	CodeResourceNotFound = 1003
	CodeRateLimited      = 1004
	CodeServerError      = 5000
	CodeUnavailable      = 5003
)

// 错误码对应的默认消息
var codeMessages = map[int]string{
	CodeSuccess:          "success",
	CodeParamError:       "参数错误",
	CodeAuthFailed:       "认证失败",
	CodePermissionDenied: "权限不足",
	CodeResourceNotFound: "资源不存在",
	CodeRateLimited:      "操作过于频繁",
	CodeServerError:      "服务器内部错误",
	CodeUnavailable:      "服务暂不可用",
}

// 错误码对应的 HTTP 状态
var codeStatus = map[int]int{
	CodeSuccess:          http.StatusOK,
	CodeParamError:       http.StatusBadRequest,
	CodeAuthFailed:       http.StatusUnauthorized,
	CodePermissionDenied: http.StatusForbidden,
	CodeResourceNotFound: http.StatusNotFound,
	CodeRateLimited:      http.StatusTooManyRequests,
	CodeServerError:      http.StatusInternalServerError,
	CodeUnavailable:      http.StatusServiceUnavailable,
}

// Response 统一响应结构
type Response struct {
	Code    int         `json:"code"`
	Message string      `json:"message"`
	Data    interface{} `json:"data"`
}

// Success 成功响应
func Success(c *gin.Context, data interface{}) {
	c.JSON(http.StatusOK, Response{
		Code:    CodeSuccess,
		Message: "success",
		Data:    data,
	})
}

// Created 创建成功
func Created(c *gin.Context, data interface{}) {
	c.JSON(http.StatusCreated, Response{
		Code:    CodeSuccess,
		Message: "success",
		Data:    data,
	})
}

// Error 错误响应，data 可携带额外信息（如剩余冷却时间）
func Error(c *gin.Context, code int, message string, data interface{}) {
	if message == "" {
		message = codeMessages[code]
	}
	status, ok := codeStatus[code]
	if !ok {
		status = http.StatusInternalServerError
	}
	c.AbortWithStatusJSON(status, Response{
		Code:    code,
		Message: message,
		Data:    data,
	})
}

// ParamError 参数错误
func ParamError(c *gin.Context, message string) {
	Error(c, CodeParamError, message, nil)
}

// AuthError 认证失败
func AuthError(c *gin.Context, message string) {
	Error(c, CodeAuthFailed, message, nil)
}

// PermissionError 权限不足
func PermissionError(c *gin.Context, message string) {
	Error(c, CodePermissionDenied, message, nil)
}

// NotFoundError 资源不存在
func NotFoundError(c *gin.Context, message string) {
	Error(c, CodeResourceNotFound, message, nil)
}

// RateLimitError 冷却中或达到每日上限
func RateLimitError(c *gin.Context, message string, data interface{}) {
	Error(c, CodeRateLimited, message, data)
}

// ServerError 服务器错误，release 模式下隐藏具体原因
func ServerError(c *gin.Context, err error) {
	message := ""
	if err != nil && gin.Mode() != gin.ReleaseMode {
		message = err.Error()
	}
	Error(c, CodeServerError, message, nil)
}

// UnavailableError 依赖的外部服务未配置
func UnavailableError(c *gin.Context, message string) {
	Error(c, CodeUnavailable, message, nil)
}
