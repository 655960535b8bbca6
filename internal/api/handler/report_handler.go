package handler

import (
	"github.com/gin-gonic/gin"

	"github.com/beluleung/ISOM5260-project/internal/dto"
	"github.com/beluleung/ISOM5260-project/internal/service"
	"github.com/beluleung/ISOM5260-project/pkg/response"
)

// ReportHandler 报表与即席查询 HTTP 处理器
type ReportHandler struct {
	reportSvc service.ReportService
}

// NewReportHandler 创建 ReportHandler
func NewReportHandler(reportSvc service.ReportService) *ReportHandler {
	return &ReportHandler{reportSvc: reportSvc}
}

// SignupReport 报名报表
// GET /api/v1/admin/reports/signups
func (h *ReportHandler) SignupReport(c *gin.Context) {
	rows, err := h.reportSvc.SignupReport(c.Request.Context())
	if err != nil {
		response.FromError(c, err)
		return
	}

	response.OK(c, gin.H{"list": rows})
}

// RunQuery 执行只读即席查询
// POST /api/v1/admin/query
func (h *ReportHandler) RunQuery(c *gin.Context) {
	var req dto.QueryRequest
	if !bindJSON(c, &req) {
		return
	}

	result, err := h.reportSvc.RunReadOnlyQuery(c.Request.Context(), req.SQL)
	if err != nil {
		response.FromError(c, err)
		return
	}

	response.OK(c, dto.QueryResponse{
		Columns:  result.Columns,
		Rows:     result.Rows,
		RowCount: len(result.Rows),
	})
}
