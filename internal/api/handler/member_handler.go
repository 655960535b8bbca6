package handler

import (
	"github.com/gin-gonic/gin"

	"github.com/beluleung/ISOM5260-project/internal/dto"
	"github.com/beluleung/ISOM5260-project/internal/service"
	"github.com/beluleung/ISOM5260-project/pkg/response"
)

// MemberHandler 会员模块 HTTP 处理器
type MemberHandler struct {
	memberSvc service.MemberService
}

// NewMemberHandler 创建 MemberHandler
func NewMemberHandler(memberSvc service.MemberService) *MemberHandler {
	return &MemberHandler{memberSvc: memberSvc}
}

// Register 会员注册
// POST /api/v1/members
func (h *MemberHandler) Register(c *gin.Context) {
	var req dto.RegisterMemberRequest
	if !bindJSON(c, &req) {
		return
	}

	member, err := h.memberSvc.Register(c.Request.Context(), &req)
	if err != nil {
		response.FromError(c, err)
		return
	}

	response.Created(c, member)
}

// GetMember 会员详情
// GET /api/v1/members/:id
func (h *MemberHandler) GetMember(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	member, err := h.memberSvc.GetByID(c.Request.Context(), id)
	if err != nil {
		response.FromError(c, err)
		return
	}

	response.OK(c, member)
}
