package handler

import (
	"github.com/gin-gonic/gin"

	"github.com/beluleung/ISOM5260-project/internal/dto"
	"github.com/beluleung/ISOM5260-project/internal/service"
	"github.com/beluleung/ISOM5260-project/pkg/response"
)

// SignUpHandler 报名模块 HTTP 处理器
type SignUpHandler struct {
	signUpSvc service.SignUpService
}

// NewSignUpHandler 创建 SignUpHandler
func NewSignUpHandler(signUpSvc service.SignUpService) *SignUpHandler {
	return &SignUpHandler{signUpSvc: signUpSvc}
}

// Enroll 活动报名
// POST /api/v1/signups
func (h *SignUpHandler) Enroll(c *gin.Context) {
	var req dto.EnrollRequest
	if !bindJSON(c, &req) {
		return
	}

	result, err := h.signUpSvc.Enroll(c.Request.Context(), &req)
	if err != nil {
		response.FromError(c, err)
		return
	}

	response.Created(c, result)
}
