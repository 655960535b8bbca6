package handler

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/beluleung/ISOM5260-project/internal/service"
	"github.com/beluleung/ISOM5260-project/pkg/response"
)

// Handler 所有 Handler 的聚合入口
type Handler struct {
	Health   *HealthHandler
	Member   *MemberHandler
	Activity *ActivityHandler
	SignUp   *SignUpHandler
	Report   *ReportHandler
	Export   *ExportHandler
}

// NewHandler 创建 Handler 聚合
func NewHandler(svc *service.Service, health *HealthHandler) *Handler {
	return &Handler{
		Health:   health,
		Member:   NewMemberHandler(svc.Member),
		Activity: NewActivityHandler(svc.Activity),
		SignUp:   NewSignUpHandler(svc.SignUp),
		Report:   NewReportHandler(svc.Report),
		Export:   NewExportHandler(svc.Export),
	}
}

// ── 公共辅助 ──

// bindJSON 解析请求体；失败时写入 400（超出大小限制时写入 413）并返回 false
func bindJSON(c *gin.Context, req interface{}) bool {
	if err := c.ShouldBindJSON(req); err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			response.Error(c, http.StatusRequestEntityTooLarge, response.CodeBodyTooLarge, "请求体过大")
			return false
		}
		response.BadRequest(c, "参数校验失败")
		return false
	}
	return true
}

// parseIDParam 解析路径中的正整数 ID
func parseIDParam(c *gin.Context, name string) (int64, bool) {
	id, err := strconv.ParseInt(c.Param(name), 10, 64)
	if err != nil || id <= 0 {
		response.BadRequest(c, "ID 必须为正整数")
		return 0, false
	}
	return id, true
}
