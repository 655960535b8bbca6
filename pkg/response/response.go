package response

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	apperrors "github.com/beluleung/ISOM5260-project/pkg/errors"
)

// Response 统一响应结构
//
// Code 为 0 表示成功；失败时 Error 携带业务错误码（如 DUPLICATE_EMAIL），
// 持久化错误在 Details 中附带数据库返回的信息。
type Response struct {
	Code    int         `json:"code"`
	Message string      `json:"message"`
	Error   string      `json:"error,omitempty"`
	Data    interface{} `json:"data,omitempty"`
	Details string      `json:"details,omitempty"`
}

// 错误响应码
const (
	CodeBadRequest      = 10001 // 请求参数无法解析
	CodeTooManyRequests = 10004
	CodeBodyTooLarge    = 10005
	CodeValidation      = 40000
	CodeAuthorization   = 40300
	CodeNotFound        = 40400
	CodeConflict        = 40900
	CodePersistence     = 50000
)

// ── 成功响应 ──

// OK 200 成功响应
func OK(c *gin.Context, data interface{}) {
	c.JSON(http.StatusOK, Response{
		Code:    0,
		Message: "success",
		Data:    data,
	})
}

// Created 201 创建成功
func Created(c *gin.Context, data interface{}) {
	c.JSON(http.StatusCreated, Response{
		Code:    0,
		Message: "success",
		Data:    data,
	})
}

// ── 错误响应 ──

// Error 通用错误响应
func Error(c *gin.Context, httpStatus int, code int, message string) {
	c.JSON(httpStatus, Response{
		Code:    code,
		Message: message,
	})
}

// BadRequest 400，请求体或路径参数无法解析
func BadRequest(c *gin.Context, message string) {
	Error(c, http.StatusBadRequest, CodeBadRequest, message)
}

// FromError 按错误分类渲染响应
//
//	validation → 400, authorization → 403, not_found → 404,
//	conflict → 409, persistence / 未分类 → 500
func FromError(c *gin.Context, err error) {
	kind := apperrors.KindOf(err)
	status, code := statusOf(kind)

	resp := Response{Code: code, Message: "服务器内部错误"}
	var appErr *apperrors.AppError
	if errors.As(err, &appErr) {
		resp.Message = appErr.Message
		resp.Error = appErr.Code
	}
	if kind == apperrors.KindPersistence || kind == apperrors.KindAuthorization {
		resp.Details = apperrors.Details(err)
	}

	_ = c.Error(err)
	c.JSON(status, resp)
}

func statusOf(kind apperrors.Kind) (int, int) {
	switch kind {
	case apperrors.KindValidation:
		return http.StatusBadRequest, CodeValidation
	case apperrors.KindAuthorization:
		return http.StatusForbidden, CodeAuthorization
	case apperrors.KindNotFound:
		return http.StatusNotFound, CodeNotFound
	case apperrors.KindConflict:
		return http.StatusConflict, CodeConflict
	default:
		return http.StatusInternalServerError, CodePersistence
	}
}
