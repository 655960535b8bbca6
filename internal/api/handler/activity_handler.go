package handler

import (
	"github.com/gin-gonic/gin"

	"github.com/beluleung/ISOM5260-project/internal/dto"
	"github.com/beluleung/ISOM5260-project/internal/service"
	"github.com/beluleung/ISOM5260-project/pkg/response"
)

// ActivityHandler 活动模块 HTTP 处理器
type ActivityHandler struct {
	activitySvc service.ActivityService
}

// NewActivityHandler 创建 ActivityHandler
func NewActivityHandler(activitySvc service.ActivityService) *ActivityHandler {
	return &ActivityHandler{activitySvc: activitySvc}
}

// ListActivities 活动浏览列表
// GET /api/v1/activities
func (h *ActivityHandler) ListActivities(c *gin.Context) {
	activities, err := h.activitySvc.List(c.Request.Context())
	if err != nil {
		response.FromError(c, err)
		return
	}

	response.OK(c, gin.H{"list": activities})
}

// ListOptions 活动选项
// GET /api/v1/activities/options
func (h *ActivityHandler) ListOptions(c *gin.Context) {
	options, err := h.activitySvc.ListOptions(c.Request.Context())
	if err != nil {
		response.FromError(c, err)
		return
	}

	response.OK(c, gin.H{"list": options})
}

// GetActivity 活动详情
// GET /api/v1/activities/:id
func (h *ActivityHandler) GetActivity(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	activity, err := h.activitySvc.GetByID(c.Request.Context(), id)
	if err != nil {
		response.FromError(c, err)
		return
	}

	response.OK(c, activity)
}

// CreateActivity 创建活动
// POST /api/v1/admin/activities
func (h *ActivityHandler) CreateActivity(c *gin.Context) {
	var req dto.ActivityRequest
	if !bindJSON(c, &req) {
		return
	}

	activity, err := h.activitySvc.Create(c.Request.Context(), &req)
	if err != nil {
		response.FromError(c, err)
		return
	}

	response.Created(c, activity)
}

// UpdateActivity 更新活动
// PUT /api/v1/admin/activities/:id
func (h *ActivityHandler) UpdateActivity(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	var req dto.ActivityRequest
	if !bindJSON(c, &req) {
		return
	}

	activity, err := h.activitySvc.Update(c.Request.Context(), id, &req)
	if err != nil {
		response.FromError(c, err)
		return
	}

	response.OK(c, activity)
}

// DeleteActivity 删除活动（存在报名时拒绝）
// DELETE /api/v1/admin/activities/:id
func (h *ActivityHandler) DeleteActivity(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	if err := h.activitySvc.Delete(c.Request.Context(), id); err != nil {
		response.FromError(c, err)
		return
	}

	response.OK(c, nil)
}

// HasSignups 删除前检查是否存在报名
// GET /api/v1/admin/activities/:id/has-signups
func (h *ActivityHandler) HasSignups(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	response.OK(c, dto.HasSignupsResponse{
		ActivityID: id,
		HasSignups: h.activitySvc.HasChildRecords(c.Request.Context(), id),
	})
}
